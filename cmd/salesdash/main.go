package main

import (
	"log/slog"
	"os"

	"github.com/usestring/salesdash-mcp/cmd/salesdash/commands"
)

func main() {
	a := commands.New()
	os.Exit(run(a))
}

type app interface {
	Run() error
	UsageError() bool
}

func run(a app) int {
	if err := a.Run(); err != nil {
		slog.Error(err.Error())

		if a.UsageError() {
			return 2
		}
		return 1
	}

	return 0
}
