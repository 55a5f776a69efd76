// Package broker defines the gateway contract between the trading
// environment and a terminal session, plus the snapshot and order
// types that cross it.
package broker

import (
	"context"

	"fxgym/market"
)

// Gateway is the synchronous call surface the environment drives.
//
// A gateway never retries on its own. A rejected order (non-success
// retcode) is returned as a normal OrderResult; only transport and
// session failures surface as errors. Implementations backed by a
// shared terminal session must serialize calls internally: the session
// is process-wide, singly-owned mutable state.
type Gateway interface {
	// AccountSnapshot returns the current account metrics.
	AccountSnapshot(ctx context.Context) (Account, error)

	// SymbolSnapshot returns the current quote and session data for a
	// resolved, visible symbol. Returns ErrSymbolNotFound otherwise.
	SymbolSnapshot(ctx context.Context, symbol string) (Symbol, error)

	// Candles returns the most recent count closed bars for the symbol
	// at the given timeframe, oldest first. Returns ErrNoHistory when
	// the terminal has nothing for the request.
	Candles(ctx context.Context, symbol string, tf market.Timeframe, count int) ([]market.Candle, error)

	// SendOrder submits a market order. Close sides require a position
	// ticket; SendOrder returns ErrMissingPosition when it is absent.
	SendOrder(ctx context.Context, req OrderRequest) (OrderResult, error)
}

// Account is a point-in-time snapshot of the trading account,
// refreshed by polling before every decision. Values are in the
// account currency.
type Account struct {
	Balance    float64
	Equity     float64
	FreeMargin float64
	Margin     float64
	Profit     float64
}

// Symbol is a point-in-time snapshot of a trading symbol. Last write
// wins; nothing is versioned.
type Symbol struct {
	Name         string
	Ask          float64
	Bid          float64
	SessionOpen  float64
	SessionClose float64
	Point        float64
}
