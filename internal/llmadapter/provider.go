// Package llmadapter provides a provider-agnostic interface to pluggable
// LLM backends (Null, OpenAI, Anthropic, DeepSeek) under a per-run token
// budget.
package llmadapter

import (
	"context"
	"fmt"

	"github.com/reviewlens/reviewlens/internal/config"
)

// Response is the result of a single generation call.
type Response struct {
	Content    string
	TokenUsage uint64
}

// Provider is the capability set every LLM backend implements.
type Provider interface {
	Generate(ctx context.Context, prompt string) (Response, error)
}

// ConfigError reports a missing or invalid provider configuration field.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string { return "llm config: " + e.Message }

// ProviderError reports a transport or response-parsing failure from a
// remote provider. It cannot occur under the Null provider.
type ProviderError struct {
	Provider string
	Message  string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("llm provider %s: %s", e.Provider, e.Message)
}

// New constructs the Provider selected by cfg.LLM.Provider. Temperature is
// forced to 0 when cfg.CI is set, per the CI-normalization rule.
func New(cfg *config.Config) (Provider, error) {
	temperature := 0.7
	if cfg.Generation.Temperature != nil {
		temperature = *cfg.Generation.Temperature
	}
	if cfg.CI {
		temperature = 0
	}

	switch config.Provider(cfg.LLM.Provider) {
	case config.ProviderNull, "":
		return &NullProvider{}, nil
	case config.ProviderOpenAI:
		if cfg.LLM.APIKey == "" || cfg.LLM.Model == "" {
			return nil, &ConfigError{Message: "llm.api-key and llm.model are required for provider \"openai\""}
		}
		return newRESTProvider("openai", cfg.LLM.APIKey, cfg.LLM.Model, cfg.LLM.BaseURL, temperature), nil
	case config.ProviderAnthropic:
		if cfg.LLM.APIKey == "" || cfg.LLM.Model == "" {
			return nil, &ConfigError{Message: "llm.api-key and llm.model are required for provider \"anthropic\""}
		}
		return newRESTProvider("anthropic", cfg.LLM.APIKey, cfg.LLM.Model, cfg.LLM.BaseURL, temperature), nil
	case config.ProviderDeepSeek:
		if cfg.LLM.APIKey == "" || cfg.LLM.Model == "" {
			return nil, &ConfigError{Message: "llm.api-key and llm.model are required for provider \"deepseek\""}
		}
		return newRESTProvider("deepseek", cfg.LLM.APIKey, cfg.LLM.Model, cfg.LLM.BaseURL, temperature), nil
	default:
		return nil, &ConfigError{Message: fmt.Sprintf("unknown llm.provider %q", cfg.LLM.Provider)}
	}
}
