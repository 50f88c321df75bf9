package llmadapter

import (
	"context"
	"fmt"
	"sync"
)

// TokenBudgetExceededError reports that a per-run token cap has been hit,
// either before a remote call (used already at/over max) or after one
// (the call's usage brought used to or past max).
type TokenBudgetExceededError struct {
	Used uint64
	Max  uint64
}

func (e *TokenBudgetExceededError) Error() string {
	return fmt.Sprintf("token budget exceeded: used %d, max %d", e.Used, e.Max)
}

// BudgetedProvider wraps a remote Provider with enforcement of
// budget.tokens.max-per-run. It must never wrap the Null provider, which
// is exempt from budget enforcement entirely.
type BudgetedProvider struct {
	inner Provider
	max   *uint64

	mu   sync.Mutex
	used uint64
}

// NewBudgeted wraps inner with enforcement against max (nil means
// unbounded).
func NewBudgeted(inner Provider, max *uint64) *BudgetedProvider {
	return &BudgetedProvider{inner: inner, max: max}
}

func (b *BudgetedProvider) Generate(ctx context.Context, prompt string) (Response, error) {
	b.mu.Lock()
	if b.max != nil && b.used >= *b.max {
		used, max := b.used, *b.max
		b.mu.Unlock()
		return Response{}, &TokenBudgetExceededError{Used: used, Max: max}
	}
	b.mu.Unlock()

	resp, err := b.inner.Generate(ctx, prompt)
	if err != nil {
		return Response{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.used = saturatingAdd(b.used, resp.TokenUsage)
	if b.max != nil && b.used >= *b.max {
		return resp, &TokenBudgetExceededError{Used: b.used, Max: *b.max}
	}
	return resp, nil
}

func saturatingAdd(a, b uint64) uint64 {
	sum := a + b
	if sum < a {
		return ^uint64(0)
	}
	return sum
}
