package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the fxgym CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("fxgym version %s\n", version)
		fmt.Println("A Gym-style trading environment over a MetaTrader terminal bridge")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
