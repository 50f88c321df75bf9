package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reviewlens/reviewlens/internal/config"
	"github.com/reviewlens/reviewlens/internal/engine"
	"github.com/reviewlens/reviewlens/internal/redact"
)

var printConfigCmd = &cobra.Command{
	Use:   "print-config",
	Short: "Print the effective, redacted configuration as JSON",
	RunE:  runPrintConfig,
}

func runPrintConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return classifyEngineError(&engine.ConfigError{Message: "load configuration", Cause: err})
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cfg); err != nil {
		return classifyEngineError(&engine.ConfigError{Message: "encode configuration", Cause: err})
	}

	fmt.Println(redact.Redact(cfg, buf.String()))
	return nil
}
