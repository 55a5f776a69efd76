package env

import "fmt"

// Action is the discrete decision an agent can take each step. The
// numeric values are the policy's output indices and must not change.
type Action int

const (
	Hold Action = iota
	Buy
	CloseBuy
	Sell
	CloseSell

	// NumActions is the size of the discrete action space.
	NumActions = 5
)

func (a Action) String() string {
	switch a {
	case Hold:
		return "hold"
	case Buy:
		return "buy"
	case CloseBuy:
		return "close-buy"
	case Sell:
		return "sell"
	case CloseSell:
		return "close-sell"
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// Valid reports whether a is inside the action space.
func (a Action) Valid() bool {
	return a >= Hold && a <= CloseSell
}
