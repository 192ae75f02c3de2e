package response

import (
	"context"
	"errors"
	"fmt"
	"time"

	"study-tutor-be/pkg/llm"
)

// ErrRetriesExhausted marks a generation that stayed rate limited through
// every retry attempt. It wraps the provider's last error.
var ErrRetriesExhausted = errors.New("generation retries exhausted")

const (
	defaultMaxAttempts = 3
	defaultBaseDelay   = 2 * time.Second
)

// Generator invokes the generative model with exponential-backoff retry on
// rate limiting. Any non-rate-limit failure is returned immediately.
type Generator struct {
	llmProvider llm.LLMProvider
	maxAttempts int
	baseDelay   time.Duration

	// sleep is swappable so tests can record waits instead of waiting.
	sleep func(ctx context.Context, d time.Duration) error
}

func NewGenerator(llmProvider llm.LLMProvider) *Generator {
	return &Generator{
		llmProvider: llmProvider,
		maxAttempts: defaultMaxAttempts,
		baseDelay:   defaultBaseDelay,
		sleep:       sleepCtx,
	}
}

// Generate sends [systemInstruction, query] to the model. On a rate-limit
// signal the call is retried up to maxAttempts times total, waiting
// baseDelay, 2*baseDelay, 4*baseDelay... between attempts.
func (g *Generator) Generate(ctx context.Context, systemInstruction string, query string) (string, error) {
	history := []llm.Message{
		{Role: "user", Content: systemInstruction},
		{Role: "user", Content: query},
	}

	var lastErr error
	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		text, err := g.llmProvider.Chat(ctx, history)
		if err == nil {
			return text, nil
		}

		if !errors.Is(err, llm.ErrRateLimited) {
			return "", err
		}

		lastErr = err
		if attempt == g.maxAttempts-1 {
			break
		}

		// 2s, 4s, 8s for the default base delay
		wait := g.baseDelay * (1 << attempt)
		if err := g.sleep(ctx, wait); err != nil {
			return "", err
		}
	}

	return "", fmt.Errorf("%w: %v", ErrRetriesExhausted, lastErr)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
