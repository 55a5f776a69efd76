// Package sim is an in-memory broker.Gateway over a fixed candle
// series. It backs tests, demos and offline episode runs with the same
// account arithmetic a terminal session would report.
package sim

import (
	"context"
	"fmt"
	"sync"

	"fxgym/broker"
	"fxgym/market"
)

// retCodeInvalid is the rejection status the engine reports for a
// structurally valid request it cannot fill (unknown ticket, bad
// volume). Mirrors the terminal's invalid-request code.
const retCodeInvalid = 10013

// Engine replays a candle series bar by bar. The bar at the cursor is
// the current market: bid is its close, ask is bid plus the configured
// spread. Advance moves the cursor and revalues the account.
type Engine struct {
	mu         sync.Mutex
	acct       broker.Account
	symbol     string
	series     []market.Candle
	cursor     int
	positions  map[int64]*Position
	nextTicket int64

	// Market model knobs, fixed at construction.
	spread       float64
	point        float64
	contractSize float64
	marginRate   float64
}

// Options tune the engine's market model. Zero values fall back to
// defaults suitable for a small FX-style symbol.
type Options struct {
	Spread       float64 // ask = bid + Spread, default 0.0002
	Point        float64 // symbol point size, default 0.0001
	ContractSize float64 // units per lot, default 100000
	MarginRate   float64 // margin = notional * rate, default 0.02
}

func NewEngine(acct broker.Account, symbol string, series []market.Candle, opts Options) *Engine {
	if opts.Spread == 0 {
		opts.Spread = 0.0002
	}
	if opts.Point == 0 {
		opts.Point = 0.0001
	}
	if opts.ContractSize == 0 {
		opts.ContractSize = 100000
	}
	if opts.MarginRate == 0 {
		opts.MarginRate = 0.02
	}

	e := &Engine{
		acct:         acct,
		symbol:       symbol,
		series:       series,
		cursor:       len(series) - 1,
		positions:    make(map[int64]*Position),
		nextTicket:   1000,
		spread:       opts.Spread,
		point:        opts.Point,
		contractSize: opts.ContractSize,
		marginRate:   opts.MarginRate,
	}
	e.revalueLocked()
	return e
}

// SetCursor positions the replay at bar index i, so Candles exposes
// only history up to i and Advance walks forward from there.
func (e *Engine) SetCursor(i int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if i < 0 || i >= len(e.series) {
		return fmt.Errorf("sim: cursor %d out of range [0,%d)", i, len(e.series))
	}
	e.cursor = i
	e.revalueLocked()
	return nil
}

// Advance moves to the next bar and revalues open positions. It
// reports false once the series is exhausted.
func (e *Engine) Advance() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cursor+1 >= len(e.series) {
		return false
	}
	e.cursor++
	e.revalueLocked()
	return true
}

func (e *Engine) bidLocked() float64 { return e.series[e.cursor].Close }
func (e *Engine) askLocked() float64 { return e.series[e.cursor].Close + e.spread }

func (e *Engine) AccountSnapshot(ctx context.Context) (broker.Account, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.acct, nil
}

func (e *Engine) SymbolSnapshot(ctx context.Context, symbol string) (broker.Symbol, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if symbol != e.symbol {
		return broker.Symbol{}, fmt.Errorf("%q: %w", symbol, broker.ErrSymbolNotFound)
	}
	cur := e.series[e.cursor]
	return broker.Symbol{
		Name:         e.symbol,
		Bid:          e.bidLocked(),
		Ask:          e.askLocked(),
		SessionOpen:  cur.Open,
		SessionClose: cur.Close,
		Point:        e.point,
	}, nil
}

func (e *Engine) Candles(ctx context.Context, symbol string, tf market.Timeframe, count int) ([]market.Candle, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if symbol != e.symbol {
		return nil, fmt.Errorf("%q: %w", symbol, broker.ErrSymbolNotFound)
	}
	if count <= 0 {
		return nil, fmt.Errorf("sim: count must be positive, got %d", count)
	}

	end := e.cursor + 1
	start := end - count
	if start < 0 {
		start = 0
	}
	if start == end {
		return nil, broker.ErrNoHistory
	}

	out := make([]market.Candle, end-start)
	copy(out, e.series[start:end])
	return out, nil
}

// revalueLocked marks open positions to the current bar and rebuilds
// the account snapshot, mirroring what the terminal reports.
func (e *Engine) revalueLocked() {
	if len(e.series) == 0 {
		return
	}

	profit := 0.0
	margin := 0.0
	for _, p := range e.positions {
		profit += p.unrealized(e.bidLocked(), e.askLocked(), e.contractSize)
		margin += p.Volume * e.contractSize * e.bidLocked() * e.marginRate
	}

	e.acct.Profit = profit
	e.acct.Equity = e.acct.Balance + profit
	e.acct.Margin = margin
	e.acct.FreeMargin = e.acct.Equity - margin
}

var _ broker.Gateway = (*Engine)(nil)
