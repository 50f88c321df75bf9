package redact

import (
	"testing"

	"github.com/reviewlens/reviewlens/internal/config"
	"github.com/stretchr/testify/assert"
)

func defaultCfg() *config.Config {
	return &config.Config{Privacy: config.PrivacyConfig{Redaction: config.RedactionConfig{
		Enabled:  true,
		Patterns: []string{`(?i)api[_-]?key`, `aws_secret_access_key`, `(?i)token`},
	}}}
}

func TestRedact_DisabledIsNoop(t *testing.T) {
	cfg := defaultCfg()
	cfg.Privacy.Redaction.Enabled = false
	text := "api_key = abc"
	assert.Equal(t, text, Redact(cfg, text))
}

func TestRedact_NoPatternsIsNoop(t *testing.T) {
	cfg := &config.Config{Privacy: config.PrivacyConfig{Redaction: config.RedactionConfig{Enabled: true}}}
	text := "api_key = abc"
	assert.Equal(t, text, Redact(cfg, text))
}

func TestRedact_ReplacesMatches(t *testing.T) {
	cfg := defaultCfg()
	out := Redact(cfg, "my api_key is secret, my token is also secret")
	assert.NotContains(t, out, "api_key")
	assert.NotContains(t, out, "token")
	assert.Contains(t, out, "[REDACTED]")
}

func TestRedact_InvalidPatternSkipped(t *testing.T) {
	cfg := &config.Config{Privacy: config.PrivacyConfig{Redaction: config.RedactionConfig{
		Enabled:  true,
		Patterns: []string{"(unterminated", "token"},
	}}}
	out := Redact(cfg, "token=abc")
	assert.Equal(t, "[REDACTED]=abc", out)
}

func TestRedact_IsIdempotent(t *testing.T) {
	cfg := defaultCfg()
	text := "api_key=abc token=def"
	once := Redact(cfg, text)
	twice := Redact(cfg, once)
	assert.Equal(t, once, twice)
}
