package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFileYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
broker:
  bridge_url: http://127.0.0.1:5001
  timeout: 5s
env:
  symbol: USDJPY
  timeframe: M5
  lot: 0.01
  equity_floor: 20
journal:
  type: sqlite
  db_path: ./run.db
policy:
  model_path: ./policy.onnx
  hidden_size: 128
run:
  episodes: 3
  max_steps: 500
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "USDJPY", cfg.Env.Symbol)
	assert.Equal(t, 128, cfg.Policy.HiddenSize)
	assert.Equal(t, 3, cfg.Run.Episodes)

	timeout, err := cfg.Broker.ParseTimeout()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, timeout)
}

func TestLoadFromFileJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{
  "broker": {"bridge_url": "http://127.0.0.1:5001"},
  "env": {"symbol": "EURUSD", "timeframe": "H1", "lot": 0.1},
  "journal": {"type": "none"},
  "run": {"episodes": 1, "max_steps": 100}
}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "EURUSD", cfg.Env.Symbol)
	assert.Equal(t, "H1", cfg.Env.Timeframe)
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile("/no/such/config.yaml")
	assert.Error(t, err)
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roundtrip.yaml")

	cfg := Default()
	cfg.Env.Symbol = "GBPUSD"
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "GBPUSD", loaded.Env.Symbol)
	assert.Equal(t, cfg.Journal.Type, loaded.Journal.Type)
}

func TestValidateRejectsBadConfigs(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing bridge url", func(c *Config) { c.Broker.BridgeURL = "" }},
		{"bad timeout", func(c *Config) { c.Broker.Timeout = "soon" }},
		{"missing symbol", func(c *Config) { c.Env.Symbol = "" }},
		{"bad timeframe", func(c *Config) { c.Env.Timeframe = "M7" }},
		{"zero lot", func(c *Config) { c.Env.Lot = 0 }},
		{"negative floor", func(c *Config) { c.Env.EquityFloor = -1 }},
		{"bad reward", func(c *Config) { c.Env.Reward = "sharpe" }},
		{"csv without paths", func(c *Config) { c.Journal = JournalConfig{Type: "csv"} }},
		{"sqlite without db", func(c *Config) { c.Journal = JournalConfig{Type: "sqlite"} }},
		{"bad journal type", func(c *Config) { c.Journal.Type = "parquet" }},
		{"zero episodes", func(c *Config) { c.Run.Episodes = 0 }},
		{"zero max steps", func(c *Config) { c.Run.MaxSteps = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadCredentials(t *testing.T) {
	t.Setenv("MT5_LOGIN", "12345")
	t.Setenv("MT5_PASSWORD", "secret")
	t.Setenv("MT5_SERVER", "Demo-Server")

	creds, err := LoadCredentials()
	require.NoError(t, err)
	assert.Equal(t, int64(12345), creds.Login)
	assert.Equal(t, "secret", creds.Password)
	assert.Equal(t, "Demo-Server", creds.Server)
}

func TestLoadCredentialsMissing(t *testing.T) {
	t.Setenv("MT5_LOGIN", "")
	t.Setenv("MT5_PASSWORD", "")
	t.Setenv("MT5_SERVER", "")

	_, err := LoadCredentials()
	assert.Error(t, err)
}

func TestLoadCredentialsBadLogin(t *testing.T) {
	t.Setenv("MT5_LOGIN", "not-a-number")
	t.Setenv("MT5_PASSWORD", "secret")
	t.Setenv("MT5_SERVER", "Demo-Server")

	_, err := LoadCredentials()
	assert.Error(t, err)
}
