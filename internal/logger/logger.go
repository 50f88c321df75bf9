package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// defaultLogFile is where "output = file" writes when the repository under
// review doesn't otherwise dictate a log location; it sits alongside the
// index cache under the same dotdir, matching config.go's
// ".reviewlens/index/index.json" convention for where this tool keeps its
// own state inside a reviewed repo.
const defaultLogFile = ".reviewlens/reviewlens.log"

// Config holds the logger configuration.
type Config struct {
	Level  string `mapstructure:"level" json:"level"`
	Format string `mapstructure:"format" json:"format"`
	Output string `mapstructure:"output" json:"output"`

	// Verbose is not part of the TOML schema; the CLI front-end sets it from
	// --verbose to force debug-level output regardless of the configured
	// level.
	Verbose bool `mapstructure:"-" json:"-"`
}

// NewLogger initializes a new slog logger based on the provided configuration.
func NewLogger(cfg Config, output io.Writer) *slog.Logger {
	var handler slog.Handler

	if output == nil {
		switch cfg.Output {
		case "stdout":
			output = os.Stdout
		case "stderr":
			output = os.Stderr
		case "file":
			if err := os.MkdirAll(filepath.Dir(defaultLogFile), 0o755); err != nil {
				fmt.Printf("Failed to create log directory: %v\n", err)
				output = os.Stdout
				break
			}
			file, err := os.OpenFile(defaultLogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
			if err != nil {
				fmt.Printf("Failed to open log file: %v\n", err)
				output = os.Stdout
			} else {
				output = file
			}
		default:
			output = os.Stdout
		}
	}

	level := new(slog.Level)
	if cfg.Verbose {
		*level = slog.LevelDebug
	} else if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = new(slog.Level)
	}

	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(output, &slog.HandlerOptions{
			Level: level,
		})
	case "text":
		fallthrough
	default:
		handler = slog.NewTextHandler(output, &slog.HandlerOptions{
			Level: level,
		})
	}

	return slog.New(handler)
}
