package mt5

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"fxgym/broker"
)

// magic tags orders sent by this application so the terminal side can
// tell them apart from manual trades.
const magic = 234000

type orderPayload struct {
	Symbol     string  `json:"symbol"`
	Type       string  `json:"type"` // "buy" or "sell"
	Volume     float64 `json:"volume"`
	Price      float64 `json:"price"`
	StopLoss   float64 `json:"sl,omitempty"`
	TakeProfit float64 `json:"tp,omitempty"`
	Deviation  int     `json:"deviation"`
	Position   int64   `json:"position,omitempty"`
	Magic      int     `json:"magic"`
	Comment    string  `json:"comment,omitempty"`
	// Fixed by contract: GTC time-in-force, IOC fill policy.
	TypeTime    string `json:"type_time"`
	TypeFilling string `json:"type_filling"`
}

type orderResponse struct {
	RetCode int     `json:"retcode"`
	Order   int64   `json:"order"`
	Deal    int64   `json:"deal"`
	Volume  float64 `json:"volume"`
	Price   float64 `json:"price"`
	Bid     float64 `json:"bid"`
	Ask     float64 `json:"ask"`
	Comment string  `json:"comment"`
}

// SendOrder submits a market order through the bridge. A non-success
// retcode is logged field by field and returned in the result; the
// caller decides whether to retry.
func (c *Client) SendOrder(ctx context.Context, req broker.OrderRequest) (broker.OrderResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loggedIn {
		return broker.OrderResult{}, broker.ErrNotLoggedIn
	}
	if req.Side.Closing() && req.Position == 0 {
		return broker.OrderResult{}, broker.ErrMissingPosition
	}

	// A close is a deal in the opposite direction against the ticket.
	dealType := "buy"
	switch req.Side {
	case broker.Sell, broker.CloseBuy:
		dealType = "sell"
	}

	payload := orderPayload{
		Symbol:      req.Symbol,
		Type:        dealType,
		Volume:      req.Volume,
		Price:       req.Price,
		Deviation:   req.Deviation,
		Magic:       magic,
		Comment:     req.Comment,
		TypeTime:    "GTC",
		TypeFilling: "IOC",
	}
	if !req.Side.Closing() {
		payload.StopLoss = req.StopLoss
		payload.TakeProfit = req.TakeProfit
	} else {
		payload.Position = req.Position
	}

	var resp orderResponse
	if err := c.post(ctx, "/order", payload, &resp); err != nil {
		return broker.OrderResult{}, fmt.Errorf("mt5 order send: %w", err)
	}

	result := broker.OrderResult{
		RetCode: resp.RetCode,
		Order:   resp.Order,
		Deal:    resp.Deal,
		Volume:  resp.Volume,
		Price:   resp.Price,
		Bid:     resp.Bid,
		Ask:     resp.Ask,
		Comment: resp.Comment,
		Request: req,
	}

	if !result.Succeeded() {
		// Full field dump, mirroring the terminal's result structure.
		log.Error().
			Int("retcode", result.RetCode).
			Int64("order", result.Order).
			Int64("deal", result.Deal).
			Float64("volume", result.Volume).
			Float64("price", result.Price).
			Float64("bid", result.Bid).
			Float64("ask", result.Ask).
			Str("comment", result.Comment).
			Str("request_symbol", req.Symbol).
			Str("request_side", req.Side.String()).
			Float64("request_volume", req.Volume).
			Float64("request_price", req.Price).
			Float64("request_sl", req.StopLoss).
			Float64("request_tp", req.TakeProfit).
			Int("request_deviation", req.Deviation).
			Int64("request_position", req.Position).
			Msg("order send failed")
		return result, nil
	}

	log.Info().
		Str("symbol", req.Symbol).
		Str("side", req.Side.String()).
		Float64("volume", req.Volume).
		Float64("price", result.Price).
		Int64("order", result.Order).
		Msg("order filled")
	return result, nil
}
