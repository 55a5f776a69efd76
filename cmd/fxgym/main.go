package main

import (
	"os"

	"fxgym/cmd/fxgym/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
