package sim

import (
	"context"

	"fxgym/broker"
)

// SendOrder fills buys at ask and sells at bid on the current bar.
// Closes realize P/L into the balance and free the ticket. Requests
// the engine cannot fill come back with a rejection retcode, never an
// error, so callers exercise the same retcode handling they need
// against a live terminal.
func (e *Engine) SendOrder(ctx context.Context, req broker.OrderRequest) (broker.OrderResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if req.Side.Closing() && req.Position == 0 {
		return broker.OrderResult{}, broker.ErrMissingPosition
	}

	reject := func(comment string) (broker.OrderResult, error) {
		return broker.OrderResult{
			RetCode: retCodeInvalid,
			Bid:     e.bidLocked(),
			Ask:     e.askLocked(),
			Comment: comment,
			Request: req,
		}, nil
	}

	if req.Symbol != e.symbol {
		return reject("unknown symbol")
	}
	if req.Volume <= 0 {
		return reject("invalid volume")
	}

	switch req.Side {
	case broker.Buy, broker.Sell:
		return e.openLocked(req)
	case broker.CloseBuy, broker.CloseSell:
		return e.closeLocked(req)
	}
	return reject("unknown side")
}

func (e *Engine) openLocked(req broker.OrderRequest) (broker.OrderResult, error) {
	long := req.Side == broker.Buy
	fill := e.askLocked()
	if !long {
		fill = e.bidLocked()
	}

	e.nextTicket++
	ticket := e.nextTicket

	e.positions[ticket] = &Position{
		Ticket:     ticket,
		Symbol:     req.Symbol,
		Long:       long,
		Volume:     req.Volume,
		EntryPrice: fill,
		StopLoss:   req.StopLoss,
		TakeProfit: req.TakeProfit,
		OpenTime:   e.series[e.cursor].Time,
	}
	e.revalueLocked()

	return broker.OrderResult{
		RetCode: broker.RetCodeDone,
		Order:   ticket,
		Deal:    ticket,
		Volume:  req.Volume,
		Price:   fill,
		Bid:     e.bidLocked(),
		Ask:     e.askLocked(),
		Request: req,
	}, nil
}

func (e *Engine) closeLocked(req broker.OrderRequest) (broker.OrderResult, error) {
	p, ok := e.positions[req.Position]
	if !ok {
		return broker.OrderResult{
			RetCode: retCodeInvalid,
			Bid:     e.bidLocked(),
			Ask:     e.askLocked(),
			Comment: "position not found",
			Request: req,
		}, nil
	}

	// Direction must match the side being closed.
	if p.Long != (req.Side == broker.CloseBuy) {
		return broker.OrderResult{
			RetCode: retCodeInvalid,
			Comment: "position direction mismatch",
			Request: req,
		}, nil
	}

	fill := e.bidLocked()
	if !p.Long {
		fill = e.askLocked()
	}

	e.acct.Balance += p.unrealized(e.bidLocked(), e.askLocked(), e.contractSize)
	delete(e.positions, req.Position)
	e.revalueLocked()

	return broker.OrderResult{
		RetCode: broker.RetCodeDone,
		Order:   req.Position,
		Deal:    req.Position,
		Volume:  p.Volume,
		Price:   fill,
		Bid:     e.bidLocked(),
		Ask:     e.askLocked(),
		Request: req,
	}, nil
}

// OpenPositions reports the number of open tickets. Test helper.
func (e *Engine) OpenPositions() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.positions)
}
