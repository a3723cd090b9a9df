package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/yukikurage/quest-tracker-api/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		if !errors.Is(err, cli.ErrIntegrityViolations) {
			slog.Error("command failed", "error", err)
		}
		os.Exit(1)
	}
}
