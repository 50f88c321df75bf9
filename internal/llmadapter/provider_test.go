package llmadapter

import (
	"testing"

	"github.com/reviewlens/reviewlens/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DefaultsToNullProvider(t *testing.T) {
	p, err := New(&config.Config{})
	require.NoError(t, err)
	_, ok := p.(*NullProvider)
	assert.True(t, ok)
}

func TestNew_OpenAIRequiresAPIKeyAndModel(t *testing.T) {
	_, err := New(&config.Config{LLM: config.LLMConfig{Provider: "openai"}})
	require.Error(t, err)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestNew_OpenAIConfiguredSucceeds(t *testing.T) {
	p, err := New(&config.Config{LLM: config.LLMConfig{Provider: "openai", APIKey: "sk-x", Model: "gpt-4o"}})
	require.NoError(t, err)
	assert.NotNil(t, p)
}

func TestNew_UnknownProviderFails(t *testing.T) {
	_, err := New(&config.Config{LLM: config.LLMConfig{Provider: "ollama"}})
	require.Error(t, err)
}
