package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) RecordStep(s StepRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO steps
		(episode_id, step, action, reward, balance, equity, free_margin, margin, profit, terminated, time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.EpisodeID, s.Step, s.Action, s.Reward, s.Balance, s.Equity,
		s.FreeMargin, s.Margin, s.Profit, s.Terminated, s.Time,
	)
	return err
}

func (j *SQLiteJournal) RecordTrade(t TradeRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(ticket, episode_id, symbol, side, volume, price, time, comment)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.Ticket, t.EpisodeID, t.Symbol, t.Side, t.Volume, t.Price, t.Time, t.Comment,
	)
	return err
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
