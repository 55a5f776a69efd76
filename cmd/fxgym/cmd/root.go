package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fxgym",
	Short: "A Gym-style trading environment over a MetaTrader terminal bridge",
	Long: `fxgym exposes a live or simulated trading account as a Gym-contract
environment and drives a trained policy against it.

It provides tools for:
  - Running a trained ONNX policy against a terminal bridge
  - Demo episodes on a simulated random-walk market
  - Journaling steps and fills to CSV or SQLite
  - Generating and validating configuration files`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		if verbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	},
}

var verbose bool

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable per-step debug logging")
}
