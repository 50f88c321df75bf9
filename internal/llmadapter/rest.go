package llmadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultOpenAIBaseURL    = "https://api.openai.com/v1/chat/completions"
	defaultAnthropicBaseURL = "https://api.anthropic.com/v1/messages"
	defaultDeepSeekBaseURL  = "https://api.deepseek.com/chat/completions"

	anthropicVersion = "2023-06-01"
)

// restProvider implements the OpenAI, Anthropic and DeepSeek variants: they
// share a request shape (model, single user message, temperature) and
// differ only in endpoint, auth header, and response parsing.
type restProvider struct {
	name        string
	apiKey      string
	model       string
	baseURL     string
	temperature float64
	httpClient  *http.Client
}

func newRESTProvider(name, apiKey, model, baseURL string, temperature float64) *restProvider {
	if baseURL == "" {
		switch name {
		case "anthropic":
			baseURL = defaultAnthropicBaseURL
		case "deepseek":
			baseURL = defaultDeepSeekBaseURL
		default:
			baseURL = defaultOpenAIBaseURL
		}
	}
	return &restProvider{
		name:        name,
		apiKey:      apiKey,
		model:       model,
		baseURL:     baseURL,
		temperature: temperature,
		httpClient:  &http.Client{Timeout: 60 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage *struct {
		TotalTokens uint64 `json:"total_tokens"`
	} `json:"usage"`
}

type anthropicResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

func (p *restProvider) Generate(ctx context.Context, prompt string) (Response, error) {
	body, err := json.Marshal(chatCompletionRequest{
		Model:       p.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: p.temperature,
	})
	if err != nil {
		return Response{}, &ProviderError{Provider: p.name, Message: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL, bytes.NewReader(body))
	if err != nil {
		return Response{}, &ProviderError{Provider: p.name, Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	if p.name == "anthropic" {
		req.Header.Set("x-api-key", p.apiKey)
		req.Header.Set("anthropic-version", anthropicVersion)
	} else {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return Response{}, &ProviderError{Provider: p.name, Message: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, &ProviderError{Provider: p.name, Message: err.Error()}
	}

	if resp.StatusCode >= 400 {
		return Response{}, &ProviderError{Provider: p.name, Message: fmt.Sprintf("status %d: %s", resp.StatusCode, string(data))}
	}

	if p.name == "anthropic" {
		var parsed anthropicResponse
		if err := json.Unmarshal(data, &parsed); err != nil {
			return Response{}, &ProviderError{Provider: p.name, Message: err.Error()}
		}
		var content string
		if len(parsed.Content) > 0 {
			content = parsed.Content[0].Text
		}
		// Anthropic's response carries no token usage field.
		return Response{Content: sanitizeNarrative(content), TokenUsage: 0}, nil
	}

	var parsed chatCompletionResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return Response{}, &ProviderError{Provider: p.name, Message: err.Error()}
	}
	var content string
	if len(parsed.Choices) > 0 {
		content = parsed.Choices[0].Message.Content
	}
	var usage uint64
	if parsed.Usage != nil {
		usage = parsed.Usage.TotalTokens
	}
	return Response{Content: sanitizeNarrative(content), TokenUsage: usage}, nil
}
