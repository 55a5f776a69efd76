package sim

import "time"

// Position is an open simulated position addressed by ticket.
type Position struct {
	Ticket     int64
	Symbol     string
	Long       bool
	Volume     float64 // lots
	EntryPrice float64
	StopLoss   float64
	TakeProfit float64
	OpenTime   time.Time
}

// unrealized marks the position to market: longs close on bid, shorts
// on ask.
func (p *Position) unrealized(bid, ask, contractSize float64) float64 {
	if p.Long {
		return (bid - p.EntryPrice) * p.Volume * contractSize
	}
	return (p.EntryPrice - ask) * p.Volume * contractSize
}
