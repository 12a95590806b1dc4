package main

import (
	"os"

	"github.com/bkmeneguello/tedit/internal/cli"
	"github.com/fatih/color"
)

func main() {
	if err := cli.Execute(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, "tedit:", err)
		os.Exit(1)
	}
}
