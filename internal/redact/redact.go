// Package redact applies pattern-based replacement to any text about to
// leave the process: LLM prompts, retrieval snippets, and serialized
// reports.
package redact

import (
	"regexp"

	"github.com/reviewlens/reviewlens/internal/config"
)

const placeholder = "[REDACTED]"

// Redact replaces every match of every configured pattern in text with
// [REDACTED]. Disabled redaction or an empty pattern list is a no-op.
// Patterns are applied in configuration order; an invalid pattern is
// skipped rather than treated as fatal.
func Redact(cfg *config.Config, text string) string {
	if cfg == nil || !cfg.Privacy.Redaction.Enabled || len(cfg.Privacy.Redaction.Patterns) == 0 {
		return text
	}

	result := text
	for _, pattern := range cfg.Privacy.Redaction.Patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			continue
		}
		result = re.ReplaceAllString(result, placeholder)
	}
	return result
}
