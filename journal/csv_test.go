package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestCSVJournal(t *testing.T) {
	dir := t.TempDir()
	stepsPath := filepath.Join(dir, "steps.csv")
	tradesPath := filepath.Join(dir, "trades.csv")

	j, err := NewCSV(stepsPath, tradesPath)
	require.NoError(t, err)

	now := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)
	require.NoError(t, j.RecordStep(StepRecord{
		EpisodeID:  "ep-1",
		Step:       1,
		Action:     "buy",
		Reward:     2.5,
		Balance:    1000,
		Equity:     1002.5,
		FreeMargin: 980,
		Margin:     22.5,
		Profit:     2.5,
		Time:       now,
	}))
	require.NoError(t, j.RecordStep(StepRecord{
		EpisodeID:  "ep-1",
		Step:       2,
		Action:     "close-buy",
		Terminated: true,
		Time:       now.Add(time.Minute),
	}))
	require.NoError(t, j.RecordTrade(TradeRecord{
		Ticket:    42,
		EpisodeID: "ep-1",
		Symbol:    "USDJPY",
		Side:      "buy",
		Volume:    0.01,
		Price:     149.52,
		Time:      now,
	}))
	require.NoError(t, j.Close())

	steps := readCSV(t, stepsPath)
	require.Len(t, steps, 3)
	assert.Equal(t, "episode_id", steps[0][0])
	assert.Equal(t, []string{"ep-1", "1", "buy"}, steps[1][:3])
	assert.Equal(t, "true", steps[2][9])

	trades := readCSV(t, tradesPath)
	require.Len(t, trades, 2)
	assert.Equal(t, "42", trades[1][0])
	assert.Equal(t, "USDJPY", trades[1][2])
}

func TestCSVJournalBadPath(t *testing.T) {
	_, err := NewCSV("/no/such/dir/steps.csv", "/no/such/dir/trades.csv")
	assert.Error(t, err)
}

func TestDiscard(t *testing.T) {
	var j Journal = Discard{}
	assert.NoError(t, j.RecordStep(StepRecord{}))
	assert.NoError(t, j.RecordTrade(TradeRecord{}))
	assert.NoError(t, j.Close())
}
