// Package main is the entry point for the fintrack CLI.
package main

import (
	"os"

	"github.com/azhovnerik/personal-finance-mobile/cmd/fintrack/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
