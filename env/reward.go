package env

import "fxgym/broker"

// RewardFunc maps the previous and current account snapshots to a
// scalar reward. The reward shape is a training decision, so it is
// injected rather than hard-wired.
type RewardFunc func(prev, cur broker.Account) float64

// AbsoluteProfit rewards the account's current open profit. Note this
// is the absolute figure, not a per-step gain: an agent holding a
// profitable position keeps collecting it every step.
func AbsoluteProfit(_, cur broker.Account) float64 {
	return cur.Profit
}

// ProfitDelta rewards the change in open profit since the previous
// step.
func ProfitDelta(prev, cur broker.Account) float64 {
	return cur.Profit - prev.Profit
}
