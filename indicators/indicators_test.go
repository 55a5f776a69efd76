package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func constant(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestSMAConstantSeries(t *testing.T) {
	closes := constant(30, 5.0)
	assert.InDelta(t, 5.0, SMA(closes, 20), 1e-9)
}

func TestSMAShortWindowFallsBackToMean(t *testing.T) {
	closes := []float64{1, 2, 3}
	assert.InDelta(t, 2.0, SMA(closes, 20), 1e-9)
}

func TestSMAEmpty(t *testing.T) {
	assert.Equal(t, 0.0, SMA(nil, 20))
	assert.Equal(t, 0.0, SMA([]float64{1, 2}, 0))
}

func TestSMAExactWindow(t *testing.T) {
	closes := []float64{1, 2, 3, 4}
	assert.InDelta(t, 2.5, SMA(closes, 4), 1e-9)
}

func TestEMAConstantSeries(t *testing.T) {
	closes := constant(30, 5.0)
	assert.InDelta(t, 5.0, EMA(closes, 20), 1e-9)
}

func TestEMAShortWindowFallsBackToMean(t *testing.T) {
	closes := []float64{2, 4}
	assert.InDelta(t, 3.0, EMA(closes, 20), 1e-9)
}

func TestEMATracksRecentCloses(t *testing.T) {
	// A rising series keeps the EMA above the SMA.
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 1.0 + float64(i)*0.01
	}
	assert.Greater(t, EMA(closes, 20), SMA(closes, 20))
}

func TestRSIConstantSeriesIsNeutral(t *testing.T) {
	closes := constant(30, 5.0)
	assert.Equal(t, NeutralRSI, RSI(closes, 14))
}

func TestRSIShortWindowIsNeutral(t *testing.T) {
	closes := []float64{1, 2, 3, 4, 5}
	assert.Equal(t, NeutralRSI, RSI(closes, 14))
}

func TestRSIAllGainsSaturates(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 1.0 + float64(i)*0.05
	}
	assert.InDelta(t, 100.0, RSI(closes, 14), 1e-6)
}

func TestRSIAllLossesSaturates(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 10.0 - float64(i)*0.05
	}
	assert.InDelta(t, 0.0, RSI(closes, 14), 1e-6)
}

func TestComputeBundlesAllThree(t *testing.T) {
	closes := constant(30, 2.5)

	snap := Compute(closes, 20, 20, 14)
	assert.InDelta(t, 2.5, snap.SMA, 1e-9)
	assert.InDelta(t, 2.5, snap.EMA, 1e-9)
	assert.Equal(t, NeutralRSI, snap.RSI)
}
