package env

import (
	"context"
	"time"

	"fxgym/broker"
	"fxgym/journal"
)

// trade dispatches one action against the gateway. Hold returns
// without touching the order path. A close with no tracked ticket is
// a logged no-op: there is nothing to close, and Position 0 must never
// reach the gateway. Opening a side that already has an open ticket is
// likewise skipped, keeping at most one position per side.
func (e *Env) trade(ctx context.Context, action Action, s snapshot) error {
	switch action {
	case Hold:
		return nil

	case Buy:
		if e.buyTicket != 0 {
			e.log.Warn().Int64("ticket", e.buyTicket).Msg("buy position already open, skipping")
			return nil
		}
		req := broker.OrderRequest{
			Symbol:    e.cfg.Symbol,
			Side:      broker.Buy,
			Volume:    e.cfg.Lot,
			Price:     s.Symbol.Ask,
			Deviation: e.cfg.Deviation,
			Comment:   e.episodeID,
		}
		if e.cfg.StopPoints > 0 {
			req.StopLoss = s.Symbol.Ask - e.cfg.StopPoints*e.point
		}
		if e.cfg.TakePoints > 0 {
			req.TakeProfit = s.Symbol.Ask + e.cfg.TakePoints*e.point
		}
		ticket, err := e.submit(ctx, req)
		if err != nil {
			return err
		}
		e.buyTicket = ticket
		return nil

	case Sell:
		if e.sellTicket != 0 {
			e.log.Warn().Int64("ticket", e.sellTicket).Msg("sell position already open, skipping")
			return nil
		}
		req := broker.OrderRequest{
			Symbol:    e.cfg.Symbol,
			Side:      broker.Sell,
			Volume:    e.cfg.Lot,
			Price:     s.Symbol.Bid,
			Deviation: e.cfg.Deviation,
			Comment:   e.episodeID,
		}
		if e.cfg.StopPoints > 0 {
			req.StopLoss = s.Symbol.Bid + e.cfg.StopPoints*e.point
		}
		if e.cfg.TakePoints > 0 {
			req.TakeProfit = s.Symbol.Bid - e.cfg.TakePoints*e.point
		}
		ticket, err := e.submit(ctx, req)
		if err != nil {
			return err
		}
		e.sellTicket = ticket
		return nil

	case CloseBuy:
		if e.buyTicket == 0 {
			e.log.Error().Msg("no open buy position to close")
			return nil
		}
		ticket, err := e.submit(ctx, broker.OrderRequest{
			Symbol:    e.cfg.Symbol,
			Side:      broker.CloseBuy,
			Volume:    e.cfg.Lot,
			Price:     s.Symbol.Bid,
			Deviation: e.cfg.Deviation,
			Position:  e.buyTicket,
			Comment:   e.episodeID,
		})
		if err != nil {
			return err
		}
		if ticket != 0 {
			e.buyTicket = 0
		}
		return nil

	case CloseSell:
		if e.sellTicket == 0 {
			e.log.Error().Msg("no open sell position to close")
			return nil
		}
		ticket, err := e.submit(ctx, broker.OrderRequest{
			Symbol:    e.cfg.Symbol,
			Side:      broker.CloseSell,
			Volume:    e.cfg.Lot,
			Price:     s.Symbol.Ask,
			Deviation: e.cfg.Deviation,
			Position:  e.sellTicket,
			Comment:   e.episodeID,
		})
		if err != nil {
			return err
		}
		if ticket != 0 {
			e.sellTicket = 0
		}
		return nil
	}
	return nil
}

// submit sends the order and journals the fill. A rejected order
// (non-success retcode) yields ticket 0 and no error: the gateway has
// already dumped the result, and the caller decides whether to try
// again next step.
func (e *Env) submit(ctx context.Context, req broker.OrderRequest) (int64, error) {
	result, err := e.gw.SendOrder(ctx, req)
	if err != nil {
		return 0, err
	}
	if !result.Succeeded() {
		e.log.Warn().
			Int("retcode", result.RetCode).
			Str("side", req.Side.String()).
			Str("comment", result.Comment).
			Msg("order rejected")
		return 0, nil
	}

	if err := e.jrnl.RecordTrade(journal.TradeRecord{
		Ticket:    result.Order,
		EpisodeID: e.episodeID,
		Symbol:    req.Symbol,
		Side:      req.Side.String(),
		Volume:    result.Volume,
		Price:     result.Price,
		Time:      time.Now().UTC(),
		Comment:   result.Comment,
	}); err != nil {
		e.log.Error().Err(err).Msg("journal trade")
	}
	return result.Order, nil
}
