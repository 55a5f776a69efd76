// Package env exposes a live trading account as a Gym-contract
// environment: Reset and Step drive a cycle of observe, act, reward
// against a broker gateway, with indicator features folded into the
// observation.
//
// The environment is not safe for concurrent steps. One instance owns
// its gateway's session; the training driver parallelizes environments,
// never calls into one environment from two goroutines.
package env

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"fxgym/broker"
	"fxgym/indicators"
	"fxgym/internal/id"
	"fxgym/journal"
	"fxgym/market"
)

// Defaults for Config fields left zero.
const (
	DefaultEquityFloor = 20.0
	DefaultHistoryBars = 13000
	DefaultBalanceBand = 200.0
	DefaultLot         = 0.01
	DefaultDeviation   = 20
)

// Config describes one environment instance. Symbol is required;
// everything else has a default.
type Config struct {
	Symbol    string
	Timeframe market.Timeframe

	// Order parameters applied to every open.
	Lot        float64
	StopPoints float64 // stop-loss offset in points, 0 = none
	TakePoints float64 // take-profit offset in points, 0 = none
	Deviation  int     // allowed slippage, points

	// Episode parameters.
	EquityFloor float64 // terminate when equity drops below
	HistoryBars int     // bars fetched once for the all-time high
	BalanceBand float64 // static normalization band for balance/margin

	// Indicator lookbacks, 0 = package defaults.
	SMAPeriod int
	EMAPeriod int
	RSIPeriod int

	// Reward shape, nil = AbsoluteProfit.
	Reward RewardFunc
}

func (c *Config) applyDefaults() {
	if c.Timeframe == "" {
		c.Timeframe = market.M5
	}
	if c.Lot == 0 {
		c.Lot = DefaultLot
	}
	if c.Deviation == 0 {
		c.Deviation = DefaultDeviation
	}
	if c.EquityFloor == 0 {
		c.EquityFloor = DefaultEquityFloor
	}
	if c.HistoryBars == 0 {
		c.HistoryBars = DefaultHistoryBars
	}
	if c.BalanceBand == 0 {
		c.BalanceBand = DefaultBalanceBand
	}
	if c.Reward == nil {
		c.Reward = AbsoluteProfit
	}
}

// Info is the auxiliary mapping returned alongside observations.
type Info map[string]any

// snapshot bundles the three per-step reads. It is built once per
// step and never mutated afterwards.
type snapshot struct {
	Account    broker.Account
	Symbol     broker.Symbol
	Indicators indicators.Snapshot
}

// Env is the trading environment state machine. Construction resolves
// the symbol and anchors normalization; Reset starts an episode; Step
// advances it until the equity floor terminates it.
type Env struct {
	gw   broker.Gateway
	feed *indicators.Feed
	cfg  Config
	jrnl journal.Journal
	log  zerolog.Logger

	allTimeHigh float64
	point       float64

	episodeID string
	stepCount int
	// At most one open ticket per side; 0 means none.
	buyTicket  int64
	sellTicket int64
	prevAcct   broker.Account
}

// New builds an environment over gw. It requires a live session and a
// resolvable, visible symbol: an unknown symbol fails with
// broker.ErrSymbolNotFound, and missing history with
// broker.ErrNoHistory, both typed so callers can recover.
func New(gw broker.Gateway, cfg Config, jrnl journal.Journal) (*Env, error) {
	cfg.applyDefaults()
	if cfg.Symbol == "" {
		return nil, fmt.Errorf("env: symbol is required")
	}
	if !cfg.Timeframe.Valid() {
		return nil, fmt.Errorf("env: unknown timeframe %q", string(cfg.Timeframe))
	}
	if jrnl == nil {
		jrnl = journal.Discard{}
	}

	ctx := context.Background()

	sym, err := gw.SymbolSnapshot(ctx, cfg.Symbol)
	if err != nil {
		return nil, fmt.Errorf("env: resolve symbol: %w", err)
	}

	history, err := gw.Candles(ctx, cfg.Symbol, cfg.Timeframe, cfg.HistoryBars)
	if err != nil {
		return nil, fmt.Errorf("env: load history: %w", err)
	}

	return &Env{
		gw:          gw,
		feed:        indicators.NewFeed(gw, cfg.Symbol, cfg.Timeframe, cfg.SMAPeriod, cfg.EMAPeriod, cfg.RSIPeriod),
		cfg:         cfg,
		jrnl:        jrnl,
		log:         log.With().Str("component", "env").Str("symbol", cfg.Symbol).Logger(),
		allTimeHigh: market.HighestClose(history),
		point:       sym.Point,
	}, nil
}

// Reset starts a new episode: snapshots are re-fetched, counters and
// position tickets cleared, and the initial observation returned. The
// seed is accepted for contract compatibility; the environment holds
// no internal randomness.
func (e *Env) Reset(ctx context.Context, seed int64) (Observation, Info, error) {
	_ = seed

	e.episodeID = id.New()
	e.stepCount = 0
	e.buyTicket = 0
	e.sellTicket = 0

	s, err := e.refresh(ctx)
	if err != nil {
		return Observation{}, nil, fmt.Errorf("env reset: %w", err)
	}
	e.prevAcct = s.Account

	obs := e.observe(s)
	e.log.Debug().Str("episode", e.episodeID).
		Float64("balance", s.Account.Balance).
		Float64("equity", s.Account.Equity).
		Msg("episode reset")

	return obs, Info{
		"episode_id": e.episodeID,
		"balance":    s.Account.Balance,
		"equity":     s.Account.Equity,
	}, nil
}

// Step refreshes the snapshots, executes the action against the
// gateway (Hold never touches the order path), and returns the Gym
// tuple. Truncated is always false; episodes end only at the equity
// floor.
func (e *Env) Step(ctx context.Context, action Action) (Observation, float64, bool, bool, Info, error) {
	if !action.Valid() {
		return Observation{}, 0, false, false, nil, fmt.Errorf("env step: invalid action %d", int(action))
	}

	s, err := e.refresh(ctx)
	if err != nil {
		return Observation{}, 0, false, false, nil, fmt.Errorf("env step: %w", err)
	}

	if err := e.trade(ctx, action, s); err != nil {
		return Observation{}, 0, false, false, nil, fmt.Errorf("env step: %w", err)
	}

	reward := e.cfg.Reward(e.prevAcct, s.Account)
	terminated := s.Account.Equity < e.cfg.EquityFloor
	e.prevAcct = s.Account
	e.stepCount++

	e.log.Debug().
		Str("episode", e.episodeID).
		Int("step", e.stepCount).
		Str("action", action.String()).
		Float64("reward", reward).
		Float64("balance", s.Account.Balance).
		Float64("equity", s.Account.Equity).
		Float64("free_margin", s.Account.FreeMargin).
		Float64("margin", s.Account.Margin).
		Float64("profit", s.Account.Profit).
		Float64("ask", s.Symbol.Ask).
		Float64("bid", s.Symbol.Bid).
		Float64("sma", s.Indicators.SMA).
		Float64("ema", s.Indicators.EMA).
		Float64("rsi", s.Indicators.RSI).
		Bool("terminated", terminated).
		Msg("step")

	if err := e.jrnl.RecordStep(journal.StepRecord{
		EpisodeID:  e.episodeID,
		Step:       e.stepCount,
		Action:     action.String(),
		Reward:     reward,
		Balance:    s.Account.Balance,
		Equity:     s.Account.Equity,
		FreeMargin: s.Account.FreeMargin,
		Margin:     s.Account.Margin,
		Profit:     s.Account.Profit,
		Terminated: terminated,
		Time:       time.Now().UTC(),
	}); err != nil {
		e.log.Error().Err(err).Msg("journal step")
	}

	return e.observe(s), reward, terminated, false, Info{}, nil
}

// Observe returns the current observation without acting. It is a
// pure read: broker state is polled, never mutated, so calling it
// immediately after Reset yields the same vector.
func (e *Env) Observe(ctx context.Context) (Observation, error) {
	s, err := e.refresh(ctx)
	if err != nil {
		return Observation{}, fmt.Errorf("env observe: %w", err)
	}
	return e.observe(s), nil
}

// EpisodeID identifies the episode started by the last Reset.
func (e *Env) EpisodeID() string { return e.episodeID }

func (e *Env) refresh(ctx context.Context) (snapshot, error) {
	acct, err := e.gw.AccountSnapshot(ctx)
	if err != nil {
		return snapshot{}, fmt.Errorf("account snapshot: %w", err)
	}
	sym, err := e.gw.SymbolSnapshot(ctx, e.cfg.Symbol)
	if err != nil {
		return snapshot{}, fmt.Errorf("symbol snapshot: %w", err)
	}
	ind, err := e.feed.Snapshot(ctx)
	if err != nil {
		return snapshot{}, err
	}
	return snapshot{Account: acct, Symbol: sym, Indicators: ind}, nil
}

func (e *Env) observe(s snapshot) Observation {
	return BuildObservation(s.Account, s.Symbol, s.Indicators, Ranges{
		BalanceBand: e.cfg.BalanceBand,
		AllTimeHigh: e.allTimeHigh,
	})
}
