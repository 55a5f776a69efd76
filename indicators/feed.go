package indicators

import (
	"context"
	"fmt"

	"fxgym/broker"
	"fxgym/market"
)

// Feed pulls the recent close window from a gateway and computes the
// indicator snapshot. Values are recomputed from scratch on every call;
// the windows are small enough that incremental updates would buy
// nothing here.
type Feed struct {
	gw        broker.Gateway
	symbol    string
	tf        market.Timeframe
	smaPeriod int
	emaPeriod int
	rsiPeriod int
}

// NewFeed wires a feed for symbol at timeframe tf. Zero periods fall
// back to the package defaults.
func NewFeed(gw broker.Gateway, symbol string, tf market.Timeframe, smaPeriod, emaPeriod, rsiPeriod int) *Feed {
	if smaPeriod <= 0 {
		smaPeriod = DefaultSMAPeriod
	}
	if emaPeriod <= 0 {
		emaPeriod = DefaultEMAPeriod
	}
	if rsiPeriod <= 0 {
		rsiPeriod = DefaultRSIPeriod
	}
	return &Feed{
		gw:        gw,
		symbol:    symbol,
		tf:        tf,
		smaPeriod: smaPeriod,
		emaPeriod: emaPeriod,
		rsiPeriod: rsiPeriod,
	}
}

// Window is the number of bars a snapshot needs: the longest lookback
// plus one, since RSI differences consecutive closes.
func (f *Feed) Window() int {
	w := f.smaPeriod
	if f.emaPeriod > w {
		w = f.emaPeriod
	}
	if f.rsiPeriod > w {
		w = f.rsiPeriod
	}
	return w + 1
}

// Snapshot fetches the window and computes the three indicators. When
// the terminal has no history at all the gateway error is passed
// through (broker.ErrNoHistory); a short window neutral-fills per the
// package policy.
func (f *Feed) Snapshot(ctx context.Context) (Snapshot, error) {
	candles, err := f.gw.Candles(ctx, f.symbol, f.tf, f.Window())
	if err != nil {
		return Snapshot{}, fmt.Errorf("indicator feed: %w", err)
	}
	return Compute(market.Closes(candles), f.smaPeriod, f.emaPeriod, f.rsiPeriod), nil
}
