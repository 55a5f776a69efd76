package broker

import "fmt"

// Side is the order direction, including the two close directions. A
// close-buy sells out an open buy position; a close-sell buys back an
// open sell position.
type Side int

const (
	Buy Side = iota
	Sell
	CloseBuy
	CloseSell
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	case CloseBuy:
		return "close-buy"
	case CloseSell:
		return "close-sell"
	}
	return fmt.Sprintf("side(%d)", int(s))
}

// Closing reports whether the side closes an existing position.
func (s Side) Closing() bool {
	return s == CloseBuy || s == CloseSell
}

// RetCodeDone is the terminal's success status for a completed deal.
const RetCodeDone = 10009

// OrderRequest carries the logical fields of a market-order deal
// request. Time-in-force is good-till-cancelled and the fill policy is
// immediate-or-cancel on the terminal side; both are fixed, not chosen
// per call.
type OrderRequest struct {
	Symbol     string
	Side       Side
	Volume     float64 // lots
	Price      float64
	StopLoss   float64 // absolute price, 0 = none
	TakeProfit float64 // absolute price, 0 = none
	Deviation  int     // allowed slippage, points
	Position   int64   // ticket being closed; required for close sides
	Comment    string
}

// OrderResult is the terminal's structured answer to an order request,
// echoing the request it answered.
type OrderResult struct {
	RetCode int
	Order   int64 // assigned order/position ticket
	Deal    int64
	Volume  float64
	Price   float64
	Bid     float64
	Ask     float64
	Comment string
	Request OrderRequest
}

// Succeeded reports whether the terminal completed the deal.
func (r OrderResult) Succeeded() bool {
	return r.RetCode == RetCodeDone
}
