package indicators

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fxgym/broker"
	"fxgym/market"
)

// candleGateway serves a fixed candle series; the other Gateway
// methods are never reached from a feed.
type candleGateway struct {
	candles   []market.Candle
	lastCount int
	err       error
}

func (g *candleGateway) AccountSnapshot(ctx context.Context) (broker.Account, error) {
	panic("not used")
}

func (g *candleGateway) SymbolSnapshot(ctx context.Context, symbol string) (broker.Symbol, error) {
	panic("not used")
}

func (g *candleGateway) Candles(ctx context.Context, symbol string, tf market.Timeframe, count int) ([]market.Candle, error) {
	g.lastCount = count
	if g.err != nil {
		return nil, g.err
	}
	return g.candles, nil
}

func (g *candleGateway) SendOrder(ctx context.Context, req broker.OrderRequest) (broker.OrderResult, error) {
	panic("not used")
}

func TestFeedWindow(t *testing.T) {
	f := NewFeed(&candleGateway{}, "EURUSD", market.M5, 20, 20, 14)
	assert.Equal(t, 21, f.Window())

	f = NewFeed(&candleGateway{}, "EURUSD", market.M5, 10, 30, 14)
	assert.Equal(t, 31, f.Window())
}

func TestFeedDefaultsPeriods(t *testing.T) {
	f := NewFeed(&candleGateway{}, "EURUSD", market.M5, 0, 0, 0)
	assert.Equal(t, DefaultSMAPeriod+1, f.Window())
}

func TestFeedSnapshot(t *testing.T) {
	series := make([]market.Candle, 30)
	for i := range series {
		series[i].Close = 2.0
	}
	gw := &candleGateway{candles: series}

	f := NewFeed(gw, "EURUSD", market.M5, 20, 20, 14)
	snap, err := f.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, f.Window(), gw.lastCount)
	assert.InDelta(t, 2.0, snap.SMA, 1e-9)
	assert.InDelta(t, 2.0, snap.EMA, 1e-9)
	assert.Equal(t, NeutralRSI, snap.RSI)
}

func TestFeedSnapshotPropagatesNoHistory(t *testing.T) {
	gw := &candleGateway{err: broker.ErrNoHistory}
	f := NewFeed(gw, "EURUSD", market.M5, 0, 0, 0)

	_, err := f.Snapshot(context.Background())
	assert.ErrorIs(t, err, broker.ErrNoHistory)
}
