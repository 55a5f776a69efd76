// Package journal records environment steps and executed trades for
// post-run analysis. Nothing in the trading loop reads it back.
package journal

import "time"

// StepRecord captures one environment step: the action taken, the
// reward received, and the account metrics observed at that step.
type StepRecord struct {
	EpisodeID  string
	Step       int
	Action     string
	Reward     float64
	Balance    float64
	Equity     float64
	FreeMargin float64
	Margin     float64
	Profit     float64
	Terminated bool
	Time       time.Time
}

// TradeRecord captures one filled order.
type TradeRecord struct {
	Ticket    int64
	EpisodeID string
	Symbol    string
	Side      string
	Volume    float64
	Price     float64
	Time      time.Time
	Comment   string
}

type Journal interface {
	RecordStep(StepRecord) error
	RecordTrade(TradeRecord) error
	Close() error
}

// Discard is a Journal that drops everything. Useful when running
// without persistence configured.
type Discard struct{}

func (Discard) RecordStep(StepRecord) error   { return nil }
func (Discard) RecordTrade(TradeRecord) error { return nil }
func (Discard) Close() error                  { return nil }
