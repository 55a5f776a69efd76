package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloses(t *testing.T) {
	candles := []Candle{
		{Close: 1.1},
		{Close: 1.2},
		{Close: 1.05},
	}

	closes := Closes(candles)
	assert.Equal(t, []float64{1.1, 1.2, 1.05}, closes)
}

func TestClosesEmpty(t *testing.T) {
	closes := Closes(nil)
	assert.Empty(t, closes)
}

func TestHighestClose(t *testing.T) {
	candles := []Candle{
		{Close: 1.1},
		{Close: 1.35},
		{Close: 1.2},
	}

	assert.Equal(t, 1.35, HighestClose(candles))
	assert.Equal(t, 0.0, HighestClose(nil))
}

func TestTimeframeValid(t *testing.T) {
	for _, tf := range []Timeframe{M1, M5, M15, M30, H1, H4, D1} {
		assert.True(t, tf.Valid(), "timeframe %s", tf)
	}

	assert.False(t, Timeframe("M2").Valid())
	assert.False(t, Timeframe("").Valid())
}

func TestTimeframeMinutes(t *testing.T) {
	m, err := M5.Minutes()
	require.NoError(t, err)
	assert.Equal(t, 5, m)

	m, err = D1.Minutes()
	require.NoError(t, err)
	assert.Equal(t, 1440, m)

	_, err = Timeframe("W1").Minutes()
	assert.Error(t, err)
}
