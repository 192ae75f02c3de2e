package response

import (
	"context"
	"errors"
	"testing"
	"time"

	"study-tutor-be/pkg/llm"
)

type scriptedProvider struct {
	calls   int
	answers []func() (string, error)
}

func (p *scriptedProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	idx := p.calls
	p.calls++
	if idx >= len(p.answers) {
		return "", errors.New("unexpected extra call")
	}
	return p.answers[idx]()
}

func (p *scriptedProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}})
}

func rateLimited() (string, error) {
	return "", llm.ErrRateLimited
}

func newTestGenerator(provider llm.LLMProvider, waits *[]time.Duration) *Generator {
	g := NewGenerator(provider)
	g.sleep = func(ctx context.Context, d time.Duration) error {
		*waits = append(*waits, d)
		return nil
	}
	return g
}

func TestGenerateRetriesOnRateLimit(t *testing.T) {
	provider := &scriptedProvider{
		answers: []func() (string, error){
			rateLimited,
			rateLimited,
			func() (string, error) { return "third time lucky", nil },
		},
	}

	var waits []time.Duration
	g := newTestGenerator(provider, &waits)

	text, err := g.Generate(context.Background(), "system", "query")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if text != "third time lucky" {
		t.Errorf("Generate() = %q", text)
	}
	if provider.calls != 3 {
		t.Errorf("provider called %d times, want 3", provider.calls)
	}
	if len(waits) != 2 || waits[0] != 2*time.Second || waits[1] != 4*time.Second {
		t.Errorf("waits = %v, want [2s 4s]", waits)
	}
}

func TestGenerateNonRateLimitFailsImmediately(t *testing.T) {
	boom := errors.New("model refused")
	provider := &scriptedProvider{
		answers: []func() (string, error){
			func() (string, error) { return "", boom },
		},
	}

	var waits []time.Duration
	g := newTestGenerator(provider, &waits)

	_, err := g.Generate(context.Background(), "system", "query")
	if !errors.Is(err, boom) {
		t.Errorf("Generate() error = %v, want %v", err, boom)
	}
	if provider.calls != 1 {
		t.Errorf("provider called %d times, want 1", provider.calls)
	}
	if len(waits) != 0 {
		t.Errorf("waits = %v, want none", waits)
	}
}

func TestGenerateExhaustsRetries(t *testing.T) {
	provider := &scriptedProvider{
		answers: []func() (string, error){rateLimited, rateLimited, rateLimited},
	}

	var waits []time.Duration
	g := newTestGenerator(provider, &waits)

	_, err := g.Generate(context.Background(), "system", "query")
	if !errors.Is(err, ErrRetriesExhausted) {
		t.Errorf("Generate() error = %v, want ErrRetriesExhausted", err)
	}
	if provider.calls != 3 {
		t.Errorf("provider called %d times, want 3", provider.calls)
	}
	if len(waits) != 2 {
		t.Errorf("waits = %v, want 2 entries", waits)
	}
}

func TestGenerateRespectsCancellation(t *testing.T) {
	provider := &scriptedProvider{
		answers: []func() (string, error){rateLimited, rateLimited, rateLimited},
	}

	g := NewGenerator(provider)
	ctx, cancel := context.WithCancel(context.Background())
	g.sleep = func(ctx context.Context, d time.Duration) error {
		cancel()
		return ctx.Err()
	}

	_, err := g.Generate(ctx, "system", "query")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Generate() error = %v, want context.Canceled", err)
	}
	if provider.calls != 1 {
		t.Errorf("provider called %d times, want 1", provider.calls)
	}
}
