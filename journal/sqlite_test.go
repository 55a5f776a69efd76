package journal

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteJournal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")

	j, err := NewSQLite(path)
	require.NoError(t, err)

	now := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)
	require.NoError(t, j.RecordStep(StepRecord{
		EpisodeID: "ep-1",
		Step:      1,
		Action:    "sell",
		Reward:    -1.25,
		Balance:   1000,
		Equity:    998.75,
		Profit:    -1.25,
		Time:      now,
	}))
	require.NoError(t, j.RecordTrade(TradeRecord{
		Ticket:    7,
		EpisodeID: "ep-1",
		Symbol:    "USDJPY",
		Side:      "sell",
		Volume:    0.01,
		Price:     149.50,
		Time:      now,
	}))
	require.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	var action string
	var reward float64
	var terminated bool
	err = db.QueryRow(`SELECT action, reward, terminated FROM steps WHERE episode_id = ? AND step = ?`, "ep-1", 1).
		Scan(&action, &reward, &terminated)
	require.NoError(t, err)
	assert.Equal(t, "sell", action)
	assert.Equal(t, -1.25, reward)
	assert.False(t, terminated)

	var ticket int64
	var symbol string
	err = db.QueryRow(`SELECT ticket, symbol FROM trades WHERE episode_id = ?`, "ep-1").Scan(&ticket, &symbol)
	require.NoError(t, err)
	assert.Equal(t, int64(7), ticket)
	assert.Equal(t, "USDJPY", symbol)
}

func TestSQLiteDuplicateStepFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")

	j, err := NewSQLite(path)
	require.NoError(t, err)
	defer j.Close()

	rec := StepRecord{EpisodeID: "ep-1", Step: 1, Action: "hold", Time: time.Now()}
	require.NoError(t, j.RecordStep(rec))
	assert.Error(t, j.RecordStep(rec))
}
