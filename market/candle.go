// Package market holds the value types shared by the broker gateway,
// the indicator feed and the trading environment.
package market

import "time"

// Candle represents OHLC (Open, High, Low, Close) candlestick data
// for a single closed bar.
type Candle struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Closes extracts the closing-price series from a candle slice,
// preserving order.
func Closes(candles []Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.Close
	}
	return out
}

// HighestClose returns the maximum close over the series, or 0 for an
// empty series.
func HighestClose(candles []Candle) float64 {
	high := 0.0
	for _, c := range candles {
		if c.Close > high {
			high = c.Close
		}
	}
	return high
}
