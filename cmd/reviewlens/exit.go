package main

import (
	"errors"

	"github.com/reviewlens/reviewlens/internal/config"
	"github.com/reviewlens/reviewlens/internal/engine"
)

// cliError wraps an error with the exit code the check subcommand's
// contract assigns to it: 2 for configuration errors, 3 for any other
// engine error.
type cliError struct {
	err  error
	code int
}

func (e *cliError) Error() string { return e.err.Error() }
func (e *cliError) Unwrap() error { return e.err }
func (e *cliError) ExitCode() int { return e.code }

// classifyEngineError maps an engine error to its CLI exit code: 2 for a
// configuration problem, 3 for everything else (diff parsing, scanning,
// LLM transport, token budget, report serialization, I/O).
func classifyEngineError(err error) error {
	if err == nil {
		return nil
	}
	var cfgErr *engine.ConfigError
	if errors.As(err, &cfgErr) {
		return &cliError{err: err, code: 2}
	}
	return &cliError{err: err, code: 3}
}

// thresholdExceeded reports whether any issue in issues meets or exceeds
// threshold, the minimum severity that fails the gate.
func thresholdExceeded(issues []config.Severity, threshold config.Severity) bool {
	for _, sev := range issues {
		if sev >= threshold {
			return true
		}
	}
	return false
}
