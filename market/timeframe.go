package market

import "fmt"

// Timeframe is a bar sampling interval, named after the terminal's
// chart periods.
type Timeframe string

const (
	M1  Timeframe = "M1"
	M5  Timeframe = "M5"
	M15 Timeframe = "M15"
	M30 Timeframe = "M30"
	H1  Timeframe = "H1"
	H4  Timeframe = "H4"
	D1  Timeframe = "D1"
)

var timeframeMinutes = map[Timeframe]int{
	M1:  1,
	M5:  5,
	M15: 15,
	M30: 30,
	H1:  60,
	H4:  240,
	D1:  1440,
}

// Minutes returns the bar duration in minutes, or an error for an
// unknown timeframe.
func (tf Timeframe) Minutes() (int, error) {
	m, ok := timeframeMinutes[tf]
	if !ok {
		return 0, fmt.Errorf("unknown timeframe %q", string(tf))
	}
	return m, nil
}

// Valid reports whether tf is one of the supported chart periods.
func (tf Timeframe) Valid() bool {
	_, ok := timeframeMinutes[tf]
	return ok
}
