// Package indicators computes the lagging technical indicators fed
// into the observation vector: SMA, EMA and RSI over a closing-price
// window, most recent value only.
//
// Under-populated windows never fail: the moving averages fall back to
// the mean of whatever closes exist and RSI to its neutral midpoint.
// That trades correctness for availability, matching the fill-forward
// behavior the training loop was built against; callers that need
// strict values must supply a full window.
package indicators

import "github.com/markcheno/go-talib"

// Default lookbacks for the three indicators.
const (
	DefaultSMAPeriod = 20
	DefaultEMAPeriod = 20
	DefaultRSIPeriod = 14
)

// NeutralRSI is the no-signal midpoint used when RSI is undefined.
const NeutralRSI = 50.0

// Snapshot holds the most recent value of each indicator. It is
// derived purely from the closes passed at call time; there is no
// internal state.
type Snapshot struct {
	SMA float64
	EMA float64
	RSI float64
}

// Compute builds a Snapshot from a closing-price series, oldest first.
func Compute(closes []float64, smaPeriod, emaPeriod, rsiPeriod int) Snapshot {
	return Snapshot{
		SMA: SMA(closes, smaPeriod),
		EMA: EMA(closes, emaPeriod),
		RSI: RSI(closes, rsiPeriod),
	}
}

// SMA returns the most recent simple moving average of the closes.
func SMA(closes []float64, period int) float64 {
	if len(closes) == 0 || period <= 0 {
		return 0
	}
	if len(closes) < period {
		return mean(closes)
	}
	out := talib.Sma(closes, period)
	return out[len(out)-1]
}

// EMA returns the most recent exponential moving average of the
// closes, seeded with the SMA of the first period values.
func EMA(closes []float64, period int) float64 {
	if len(closes) == 0 || period <= 0 {
		return 0
	}
	if len(closes) < period {
		return mean(closes)
	}
	out := talib.Ema(closes, period)
	return out[len(out)-1]
}

// RSI returns the most recent relative strength index of the closes.
// RSI is undefined on a window with no price movement; that case (and
// an under-populated window) reports NeutralRSI rather than the
// library's division-guard output.
func RSI(closes []float64, period int) float64 {
	if period <= 0 || len(closes) < period+1 {
		return NeutralRSI
	}
	if flat(closes[len(closes)-period-1:]) {
		return NeutralRSI
	}
	out := talib.Rsi(closes, period)
	return out[len(out)-1]
}

func mean(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func flat(xs []float64) bool {
	for i := 1; i < len(xs); i++ {
		if xs[i] != xs[0] {
			return false
		}
	}
	return true
}
