// Package config loads the application configuration from YAML or
// JSON. Credentials never live in the file; they come from the
// process environment (optionally seeded from a .env file).
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"fxgym/market"
)

// Config represents the complete runner configuration.
type Config struct {
	Broker  BrokerConfig  `json:"broker" yaml:"broker"`
	Env     EnvConfig     `json:"env" yaml:"env"`
	Journal JournalConfig `json:"journal" yaml:"journal"`
	Policy  PolicyConfig  `json:"policy" yaml:"policy"`
	Run     RunConfig     `json:"run" yaml:"run"`
}

// BrokerConfig locates the terminal bridge. Login, password and
// server come from the environment, not this file.
type BrokerConfig struct {
	BridgeURL string `json:"bridge_url" yaml:"bridge_url"`
	Timeout   string `json:"timeout,omitempty" yaml:"timeout,omitempty"` // e.g. "10s"
}

// ParseTimeout converts the timeout string to a duration; empty means
// no override.
func (b BrokerConfig) ParseTimeout() (time.Duration, error) {
	if b.Timeout == "" {
		return 0, nil
	}
	return time.ParseDuration(b.Timeout)
}

// EnvConfig contains the trading-environment parameters.
type EnvConfig struct {
	Symbol      string  `json:"symbol" yaml:"symbol"`
	Timeframe   string  `json:"timeframe" yaml:"timeframe"`
	Lot         float64 `json:"lot" yaml:"lot"`
	StopPoints  float64 `json:"stop_points,omitempty" yaml:"stop_points,omitempty"`
	TakePoints  float64 `json:"take_points,omitempty" yaml:"take_points,omitempty"`
	Deviation   int     `json:"deviation" yaml:"deviation"`
	EquityFloor float64 `json:"equity_floor" yaml:"equity_floor"`
	HistoryBars int     `json:"history_bars" yaml:"history_bars"`
	BalanceBand float64 `json:"balance_band" yaml:"balance_band"`
	SMAPeriod   int     `json:"sma_period" yaml:"sma_period"`
	EMAPeriod   int     `json:"ema_period" yaml:"ema_period"`
	RSIPeriod   int     `json:"rsi_period" yaml:"rsi_period"`
	Reward      string  `json:"reward" yaml:"reward"` // "profit" or "delta"
}

// JournalConfig contains journaling parameters.
type JournalConfig struct {
	Type       string `json:"type" yaml:"type"` // "csv", "sqlite" or "none"
	StepsFile  string `json:"steps_file,omitempty" yaml:"steps_file,omitempty"`
	TradesFile string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// PolicyConfig locates the exported policy model.
type PolicyConfig struct {
	ModelPath  string `json:"model_path" yaml:"model_path"`
	HiddenSize int    `json:"hidden_size,omitempty" yaml:"hidden_size,omitempty"`
}

// RunConfig bounds the episode loop.
type RunConfig struct {
	Episodes int `json:"episodes" yaml:"episodes"`
	MaxSteps int `json:"max_steps" yaml:"max_steps"`
}

// LoadFromFile loads configuration from a file (YAML or JSON).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON.
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Broker.BridgeURL == "" {
		return fmt.Errorf("broker.bridge_url is required")
	}
	if _, err := c.Broker.ParseTimeout(); err != nil {
		return fmt.Errorf("broker.timeout: %w", err)
	}
	if c.Env.Symbol == "" {
		return fmt.Errorf("env.symbol is required")
	}
	if !market.Timeframe(c.Env.Timeframe).Valid() {
		return fmt.Errorf("unknown timeframe: %s", c.Env.Timeframe)
	}
	if c.Env.Lot <= 0 {
		return fmt.Errorf("env.lot must be positive")
	}
	if c.Env.EquityFloor < 0 {
		return fmt.Errorf("env.equity_floor must not be negative")
	}
	switch c.Env.Reward {
	case "", "profit", "delta":
	default:
		return fmt.Errorf("env.reward must be 'profit' or 'delta'")
	}
	switch c.Journal.Type {
	case "csv":
		if c.Journal.StepsFile == "" || c.Journal.TradesFile == "" {
			return fmt.Errorf("journal steps_file and trades_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	case "", "none":
	default:
		return fmt.Errorf("journal.type must be 'csv', 'sqlite' or 'none'")
	}
	if c.Run.Episodes <= 0 {
		return fmt.Errorf("run.episodes must be positive")
	}
	if c.Run.MaxSteps <= 0 {
		return fmt.Errorf("run.max_steps must be positive")
	}
	return nil
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Broker: BrokerConfig{
			BridgeURL: "http://127.0.0.1:5001",
			Timeout:   "10s",
		},
		Env: EnvConfig{
			Symbol:      "USDJPY",
			Timeframe:   "M5",
			Lot:         0.01,
			Deviation:   20,
			EquityFloor: 20,
			HistoryBars: 13000,
			BalanceBand: 200,
			SMAPeriod:   20,
			EMAPeriod:   20,
			RSIPeriod:   14,
			Reward:      "profit",
		},
		Journal: JournalConfig{
			Type:       "csv",
			StepsFile:  "./steps.csv",
			TradesFile: "./trades.csv",
		},
		Policy: PolicyConfig{
			ModelPath: "./policy.onnx",
		},
		Run: RunConfig{
			Episodes: 1,
			MaxSteps: 1000,
		},
	}
}

// SaveToFile saves configuration to a file (JSON or YAML based on
// extension).
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
