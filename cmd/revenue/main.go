package main

import (
	"os"

	"github.com/wonny/revenue-risk/cmd/revenue/commands"
)

// main is the entry point for the revenue CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/revenue [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
