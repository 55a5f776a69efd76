package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"fxgym/broker/mt5"
	"fxgym/config"
	"fxgym/env"
	"fxgym/journal"
	"fxgym/market"
	"fxgym/policy"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a trained policy against the terminal bridge",
	Long: `Run episodes of a trained ONNX policy against a live terminal bridge.

The config file specifies the bridge address, environment parameters,
journaling and the exported model. Login credentials come from the
MT5_LOGIN, MT5_PASSWORD and MT5_SERVER environment variables (a .env
file is honored).

Example:
  fxgym run -f examples/config.yaml`,
	RunE: runRun,
}

var runConfigPath string

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runConfigPath, "config", "f", "", "path to config file (YAML or JSON) (required)")
	runCmd.MarkFlagRequired("config")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(runConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	creds, err := config.LoadCredentials()
	if err != nil {
		return fmt.Errorf("load credentials: %w", err)
	}

	ctx := context.Background()

	client := mt5.NewClient(cfg.Broker.BridgeURL)
	if timeout, _ := cfg.Broker.ParseTimeout(); timeout > 0 {
		client.HTTP.Timeout = timeout
	}
	if err := client.Login(ctx, creds.Login, creds.Password, creds.Server); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	defer client.Shutdown(ctx)

	jrnl, err := buildJournal(cfg.Journal)
	if err != nil {
		return fmt.Errorf("create journal: %w", err)
	}
	defer jrnl.Close()

	e, err := env.New(client, envConfig(cfg.Env), jrnl)
	if err != nil {
		return fmt.Errorf("create environment: %w", err)
	}

	if err := policy.InitRuntime(); err != nil {
		return fmt.Errorf("init onnxruntime: %w", err)
	}
	pol, err := policy.NewONNX(policy.ONNXConfig{
		ModelPath:  cfg.Policy.ModelPath,
		HiddenSize: cfg.Policy.HiddenSize,
	})
	if err != nil {
		return fmt.Errorf("load policy: %w", err)
	}
	defer pol.Close()

	fmt.Printf("Running %d episode(s) of %s %s (max %d steps)\n",
		cfg.Run.Episodes, cfg.Env.Symbol, cfg.Env.Timeframe, cfg.Run.MaxSteps)

	for ep := 0; ep < cfg.Run.Episodes; ep++ {
		total, steps, err := runEpisode(ctx, e, pol, cfg.Run.MaxSteps)
		if err != nil {
			return fmt.Errorf("episode %d: %w", ep, err)
		}
		fmt.Printf("Episode %d [%s]: %d steps, total reward %.2f\n",
			ep, e.EpisodeID(), steps, total)
	}
	return nil
}

// runEpisode drives one reset-step loop until termination or the step
// cap, returning the accumulated reward and step count.
func runEpisode(ctx context.Context, e *env.Env, pol policy.Policy, maxSteps int) (float64, int, error) {
	pol.Reset()

	obs, _, err := e.Reset(ctx, 0)
	if err != nil {
		return 0, 0, err
	}

	var total float64
	for step := 0; step < maxSteps; step++ {
		action, err := pol.Predict(obs)
		if err != nil {
			return total, step, err
		}

		next, reward, terminated, truncated, _, err := e.Step(ctx, action)
		if err != nil {
			return total, step, err
		}
		total += reward
		obs = next

		if terminated || truncated {
			return total, step + 1, nil
		}
	}
	return total, maxSteps, nil
}

func buildJournal(jc config.JournalConfig) (journal.Journal, error) {
	switch jc.Type {
	case "csv":
		return journal.NewCSV(jc.StepsFile, jc.TradesFile)
	case "sqlite":
		return journal.NewSQLite(jc.DBPath)
	default:
		return journal.Discard{}, nil
	}
}

func envConfig(ec config.EnvConfig) env.Config {
	reward := env.AbsoluteProfit
	if ec.Reward == "delta" {
		reward = env.ProfitDelta
	}
	return env.Config{
		Symbol:      ec.Symbol,
		Timeframe:   market.Timeframe(ec.Timeframe),
		Lot:         ec.Lot,
		StopPoints:  ec.StopPoints,
		TakePoints:  ec.TakePoints,
		Deviation:   ec.Deviation,
		EquityFloor: ec.EquityFloor,
		HistoryBars: ec.HistoryBars,
		BalanceBand: ec.BalanceBand,
		SMAPeriod:   ec.SMAPeriod,
		EMAPeriod:   ec.EMAPeriod,
		RSIPeriod:   ec.RSIPeriod,
		Reward:      reward,
	}
}
