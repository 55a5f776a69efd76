package mt5

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"fxgym/broker"
	"fxgym/market"
)

type candlesResponse struct {
	Symbol  string `json:"symbol"`
	Candles []struct {
		Time       int64   `json:"time"` // unix seconds
		Open       float64 `json:"open"`
		High       float64 `json:"high"`
		Low        float64 `json:"low"`
		Close      float64 `json:"close"`
		TickVolume float64 `json:"tick_volume"`
	} `json:"candles"`
}

// Candles fetches the most recent count closed bars, oldest first. An
// empty answer from the bridge is logged and surfaced as
// broker.ErrNoHistory so callers check before use.
func (c *Client) Candles(ctx context.Context, symbol string, tf market.Timeframe, count int) ([]market.Candle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loggedIn {
		return nil, broker.ErrNotLoggedIn
	}
	if !tf.Valid() {
		return nil, fmt.Errorf("mt5 candles: unknown timeframe %q", string(tf))
	}
	if count <= 0 {
		return nil, fmt.Errorf("mt5 candles: count must be positive, got %d", count)
	}

	var resp candlesResponse
	err := c.get(ctx, "/candles", map[string]string{
		"symbol":    symbol,
		"timeframe": string(tf),
		"count":     strconv.Itoa(count),
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("mt5 candles: %w", err)
	}

	if len(resp.Candles) == 0 {
		log.Warn().Str("symbol", symbol).Str("timeframe", string(tf)).Int("count", count).
			Msg("no historical data, check terminal connection")
		return nil, broker.ErrNoHistory
	}

	out := make([]market.Candle, len(resp.Candles))
	for i, rc := range resp.Candles {
		out[i] = market.Candle{
			Time:   time.Unix(rc.Time, 0).UTC(),
			Open:   rc.Open,
			High:   rc.High,
			Low:    rc.Low,
			Close:  rc.Close,
			Volume: rc.TickVolume,
		}
	}
	return out, nil
}
