package broker

import "errors"

// Session and configuration failures are typed so embedding callers
// can recover instead of the process exiting.
var (
	// ErrLoginFailed means the terminal refused the credentials.
	ErrLoginFailed = errors.New("broker: login failed")

	// ErrNotLoggedIn means a call was made before Login succeeded.
	ErrNotLoggedIn = errors.New("broker: not logged in")

	// ErrSymbolNotFound means the symbol could not be resolved to a
	// visible instrument.
	ErrSymbolNotFound = errors.New("broker: symbol not found")

	// ErrNoHistory means the terminal returned no bars for a candle
	// request. Callers must check before use.
	ErrNoHistory = errors.New("broker: no historical data")

	// ErrMissingPosition means a close was requested without a
	// position ticket. There is nothing to close; it is not a success.
	ErrMissingPosition = errors.New("broker: close requires a position ticket")
)
