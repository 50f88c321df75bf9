package main

import (
	"errors"
	"log/slog"
	"os"
)

// exitCoder lets a subcommand's RunE carry a specific exit code up through
// cobra's generic error return without reparsing error classes in main.
type exitCoder interface {
	ExitCode() int
}

func main() {
	os.Exit(run())
}

func run() int {
	if err := Execute(); err != nil {
		slog.Error("reviewlens failed", "error", err)
		var ec exitCoder
		if errors.As(err, &ec) {
			return ec.ExitCode()
		}
		return 3
	}
	return 0
}
