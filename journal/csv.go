package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

type CSVJournal struct {
	steps  *csv.Writer
	trades *csv.Writer
	sf, tf *os.File
}

func NewCSV(stepsPath, tradesPath string) (*CSVJournal, error) {
	sf, err := os.Create(stepsPath)
	if err != nil {
		return nil, err
	}
	tf, err := os.Create(tradesPath)
	if err != nil {
		sf.Close()
		return nil, err
	}

	sw := csv.NewWriter(sf)
	tw := csv.NewWriter(tf)

	if err := sw.Write([]string{"episode_id", "step", "action", "reward", "balance", "equity", "free_margin", "margin", "profit", "terminated", "time"}); err != nil {
		return nil, err
	}
	if err := tw.Write([]string{"ticket", "episode_id", "symbol", "side", "volume", "price", "time", "comment"}); err != nil {
		return nil, err
	}

	sw.Flush()
	if err := sw.Error(); err != nil {
		return nil, err
	}
	tw.Flush()
	if err := tw.Error(); err != nil {
		return nil, err
	}

	return &CSVJournal{sw, tw, sf, tf}, nil
}

func (j *CSVJournal) RecordStep(s StepRecord) error {
	err := j.steps.Write([]string{
		s.EpisodeID,
		strconv.Itoa(s.Step),
		s.Action,
		f(s.Reward),
		f(s.Balance),
		f(s.Equity),
		f(s.FreeMargin),
		f(s.Margin),
		f(s.Profit),
		strconv.FormatBool(s.Terminated),
		s.Time.Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	j.steps.Flush()
	return j.steps.Error()
}

func (j *CSVJournal) RecordTrade(t TradeRecord) error {
	err := j.trades.Write([]string{
		strconv.FormatInt(t.Ticket, 10),
		t.EpisodeID,
		t.Symbol,
		t.Side,
		f(t.Volume),
		f(t.Price),
		t.Time.Format(time.RFC3339),
		t.Comment,
	})
	if err != nil {
		return err
	}
	j.trades.Flush()
	return j.trades.Error()
}

func (j *CSVJournal) Close() error {
	j.steps.Flush()
	if err := j.steps.Error(); err != nil {
		return err
	}
	j.trades.Flush()
	if err := j.trades.Error(); err != nil {
		return err
	}

	if err := j.sf.Close(); err != nil {
		return err
	}
	return j.tf.Close()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
