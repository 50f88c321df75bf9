package llmadapter

import (
	"context"
	"fmt"
)

// NullProvider is the non-network adapter used when no remote provider is
// configured. It always returns fabricated content and TokenUsage 0; the
// token budget is never enforced against it.
type NullProvider struct{}

func (p *NullProvider) Generate(_ context.Context, prompt string) (Response, error) {
	return Response{
		Content:    fmt.Sprintf("Null provider review (no remote LLM configured).\n\n%s", prompt),
		TokenUsage: 0,
	}, nil
}
