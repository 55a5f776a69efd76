package env

import (
	"fxgym/broker"
	"fxgym/indicators"
)

// ObsSize is the length of the observation vector.
const ObsSize = 12

// Observation is the normalized feature vector handed to the policy.
// Field order is fixed: balance, equity, free margin, margin, profit,
// ask, bid, session open, session close, rsi, sma, ema. Every
// component lies in [0,1].
type Observation [ObsSize]float64

// Vector returns the observation as a fresh slice.
func (o Observation) Vector() []float64 {
	out := make([]float64, ObsSize)
	copy(out, o[:])
	return out
}

// Ranges holds the reference bounds the raw features are rescaled
// against. BalanceBand is a static band for the account-size features;
// AllTimeHigh anchors every price-denominated feature.
type Ranges struct {
	BalanceBand float64
	AllTimeHigh float64
}

// BuildObservation linearly rescales the three snapshots into [0,1].
// It is a pure function of its inputs: equity and profit scale against
// the current balance, free margin against the reserved margin, and
// degenerate (zero-width) ranges map to 0 instead of dividing by zero.
func BuildObservation(acct broker.Account, sym broker.Symbol, ind indicators.Snapshot, r Ranges) Observation {
	return Observation{
		interp(acct.Balance, 0, r.BalanceBand),
		interp(acct.Equity, 0, acct.Balance),
		interp(acct.FreeMargin, 0, acct.Margin),
		interp(acct.Margin, 0, r.BalanceBand),
		interp(acct.Profit, 0, acct.Balance),
		interp(sym.Ask, 0, r.AllTimeHigh),
		interp(sym.Bid, 0, r.AllTimeHigh),
		interp(sym.SessionOpen, 0, r.AllTimeHigh),
		interp(sym.SessionClose, 0, r.AllTimeHigh),
		interp(ind.RSI, 0, 100),
		interp(ind.SMA, 0, r.AllTimeHigh),
		interp(ind.EMA, 0, r.AllTimeHigh),
	}
}

// interp maps x from [lo,hi] onto [0,1], clamping values outside the
// range. A degenerate range maps to 0.
func interp(x, lo, hi float64) float64 {
	if hi <= lo {
		return 0
	}
	switch {
	case x <= lo:
		return 0
	case x >= hi:
		return 1
	}
	return (x - lo) / (hi - lo)
}
