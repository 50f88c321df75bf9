// Package config loads and validates the reviewlens TOML configuration.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gobwas/glob"
	"github.com/reviewlens/reviewlens/internal/logger"
	"github.com/spf13/viper"
)

// Severity is a finding's severity level, ordered Critical > High > Medium > Low.
type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

// ParseSeverity maps a lowercase severity name onto its Severity value.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "critical":
		return SeverityCritical, nil
	case "high":
		return SeverityHigh, nil
	case "medium":
		return SeverityMedium, nil
	case "low":
		return SeverityLow, nil
	default:
		return 0, fmt.Errorf("unknown severity %q", s)
	}
}

func (s Severity) String() string {
	switch s {
	case SeverityCritical:
		return "critical"
	case SeverityHigh:
		return "high"
	case SeverityMedium:
		return "medium"
	default:
		return "low"
	}
}

// MarshalJSON renders a Severity as its lowercase name so reports are
// self-describing instead of leaking the underlying int ordering.
func (s Severity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON parses a Severity from its lowercase name.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	sev, err := ParseSeverity(name)
	if err != nil {
		return err
	}
	*s = sev
	return nil
}

// Provider names a pluggable LLM backend.
type Provider string

const (
	ProviderNull      Provider = "null"
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderDeepSeek  Provider = "deepseek"
)

// Config is the top-level, immutable configuration tree consumed by the engine.
type Config struct {
	LLM        LLMConfig             `mapstructure:"llm" json:"llm"`
	Budget     BudgetConfig          `mapstructure:"budget" json:"budget"`
	Generation GenerationConfig      `mapstructure:"generation" json:"generation"`
	Privacy    PrivacyConfig         `mapstructure:"privacy" json:"privacy"`
	Paths      PathsConfig           `mapstructure:"paths" json:"paths"`
	Index      IndexConfig           `mapstructure:"index" json:"index"`
	Report     ReportConfig          `mapstructure:"report" json:"report"`
	Rules      map[string]RuleConfig `mapstructure:"rules" json:"rules"`
	Logging    logger.Config         `mapstructure:"logging" json:"logging"`

	// FailOn is the minimum severity that fails the gate. Default "low".
	FailOn string `mapstructure:"fail-on" json:"fail_on"`

	// IndexPathLegacy is the deprecated top-level index-path key, kept for
	// backward compatibility with configs predating the [index] table.
	IndexPathLegacy string `mapstructure:"index-path" json:"index_path_legacy,omitempty"`

	// CI forces generation temperature to 0 when true. Not part of the TOML
	// schema; set by the check subcommand from its --ci flag.
	CI bool `mapstructure:"-" json:"ci"`
}

type LLMConfig struct {
	Provider string `mapstructure:"provider" json:"provider"`
	Model    string `mapstructure:"model" json:"model,omitempty"`
	APIKey   string `mapstructure:"api-key" json:"-"`
	BaseURL  string `mapstructure:"base-url" json:"base_url,omitempty"`
}

type BudgetConfig struct {
	Tokens TokenBudgetConfig `mapstructure:"tokens" json:"tokens"`
}

type TokenBudgetConfig struct {
	MaxPerRun *uint64 `mapstructure:"max-per-run" json:"max_per_run,omitempty"`
}

type GenerationConfig struct {
	Temperature *float64 `mapstructure:"temperature" json:"temperature,omitempty"`
}

type PrivacyConfig struct {
	Redaction RedactionConfig `mapstructure:"redaction" json:"redaction"`
}

type RedactionConfig struct {
	Enabled  bool     `mapstructure:"enabled" json:"enabled"`
	Patterns []string `mapstructure:"patterns" json:"patterns"`
}

type PathsConfig struct {
	Allow []string `mapstructure:"allow" json:"allow"`
	Deny  []string `mapstructure:"deny" json:"deny"`
}

type IndexConfig struct {
	Path string `mapstructure:"path" json:"path"`
}

type ReportConfig struct {
	HotspotWeights HotspotWeights `mapstructure:"hotspot-weights" json:"hotspot_weights"`
}

type HotspotWeights struct {
	Severity *int `mapstructure:"severity" json:"severity,omitempty"`
	Churn    *int `mapstructure:"churn" json:"churn,omitempty"`
}

type RuleConfig struct {
	Enabled  bool   `mapstructure:"enabled" json:"enabled"`
	Severity string `mapstructure:"severity" json:"severity,omitempty"`
}

const defaultIndexPath = ".reviewlens/index/index.json"

// IndexPath returns the configured index path, falling back to the
// deprecated top-level index-path key when [index] is unset.
func (c *Config) IndexPath() string {
	if c.Index.Path != "" {
		return c.Index.Path
	}
	if c.IndexPathLegacy != "" {
		return c.IndexPathLegacy
	}
	return defaultIndexPath
}

// FailOnSeverity parses FailOn, defaulting to Low on an empty value.
func (c *Config) FailOnSeverity() (Severity, error) {
	if strings.TrimSpace(c.FailOn) == "" {
		return SeverityLow, nil
	}
	return ParseSeverity(c.FailOn)
}

// Load reads configuration from defaults, an optional TOML file, and the
// environment, in that order of increasing precedence, and unmarshals it
// into a Config.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("reviewlens")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		slog.Debug("no config file found, using defaults and environment")
	} else {
		slog.Debug("loaded configuration", "file", v.ConfigFileUsed())
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	// The index.path default would otherwise always shadow the legacy key.
	if cfg.IndexPathLegacy != "" && !v.InConfig("index") {
		cfg.Index.Path = ""
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("llm.provider", string(ProviderNull))

	v.SetDefault("privacy.redaction.enabled", true)
	v.SetDefault("privacy.redaction.patterns", []string{
		`(?i)api[_-]?key`,
		`aws_secret_access_key`,
		`(?i)token`,
	})

	v.SetDefault("paths.allow", []string{"**/*"})
	v.SetDefault("paths.deny", []string{})

	v.SetDefault("index.path", defaultIndexPath)

	v.SetDefault("report.hotspot-weights.severity", 3)
	v.SetDefault("report.hotspot-weights.churn", 1)

	v.SetDefault("fail-on", "low")

	v.SetDefault("rules.secrets.enabled", true)
	v.SetDefault("rules.secrets.severity", "high")
	v.SetDefault("rules.sql-injection-go.enabled", true)
	v.SetDefault("rules.sql-injection-go.severity", "critical")
	v.SetDefault("rules.http-timeouts-go.enabled", true)
	v.SetDefault("rules.http-timeouts-go.severity", "medium")
	v.SetDefault("rules.server-xss-go.enabled", true)
	v.SetDefault("rules.server-xss-go.severity", "medium")
	v.SetDefault("rules.conventions.enabled", true)
	v.SetDefault("rules.conventions.severity", "medium")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.output", "stdout")
}

// Validate checks provider-specific requirements and reports invalid globs
// early as a Config-class error.
func (c *Config) Validate() error {
	switch Provider(strings.ToLower(c.LLM.Provider)) {
	case ProviderNull, "":
		// no requirements
	case ProviderOpenAI, ProviderAnthropic, ProviderDeepSeek:
		if c.LLM.APIKey == "" {
			return fmt.Errorf("llm.api-key is required for provider %q", c.LLM.Provider)
		}
		if c.LLM.Model == "" {
			return fmt.Errorf("llm.model is required for provider %q", c.LLM.Provider)
		}
	default:
		return fmt.Errorf("unknown llm.provider %q", c.LLM.Provider)
	}

	if _, err := c.FailOnSeverity(); err != nil {
		return fmt.Errorf("fail-on: %w", err)
	}

	for name, rule := range c.Rules {
		if rule.Severity == "" {
			continue
		}
		if _, err := ParseSeverity(rule.Severity); err != nil {
			return fmt.Errorf("rules.%s.severity: %w", name, err)
		}
	}

	for _, p := range append(append([]string{}, c.Paths.Allow...), c.Paths.Deny...) {
		if _, err := glob.Compile(p, '/'); err != nil {
			return fmt.Errorf("paths: invalid glob %q: %w", p, err)
		}
	}

	return nil
}
