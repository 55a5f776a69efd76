package sim

import (
	"math/rand"
	"time"

	"fxgym/market"
)

// Walk builds a deterministic random-walk candle series for demos and
// tests: n bars at interval step, starting at price start, with
// per-bar moves of at most vol.
func Walk(n int, start, vol float64, step time.Duration, seed int64) []market.Candle {
	rng := rand.New(rand.NewSource(seed))
	t0 := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	out := make([]market.Candle, n)
	price := start
	for i := range out {
		open := price
		move := (rng.Float64()*2 - 1) * vol
		price += move
		if price <= 0 {
			price = open
		}

		high, low := open, price
		if low > high {
			high, low = low, high
		}

		out[i] = market.Candle{
			Time:   t0.Add(time.Duration(i) * step),
			Open:   open,
			High:   high + rng.Float64()*vol/2,
			Low:    low - rng.Float64()*vol/2,
			Close:  price,
			Volume: float64(50 + rng.Intn(200)),
		}
	}
	return out
}
