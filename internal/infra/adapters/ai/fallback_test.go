package ai

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/rs/zerolog"

	"github.com/kristina93ostapenko-larek/food-bot/internal/domain/ports/adapter"
)

func newTestLogger() *zerolog.Logger {
	logger := zerolog.New(io.Discard)
	return &logger
}

// scriptedAI returns canned answers per method and records calls.
type scriptedAI struct {
	NoopAI

	streamReplies []string // consumed in order; "" means failure
	streamCalls   int
	chatReplies   map[string]string // by model; missing means error
	chatUsage     adapter.Usage
	chatCalls     []string
}

func (s *scriptedAI) ChatStream(ctx context.Context, model string, messages []adapter.Message, fn adapter.StreamFunc) (string, error) {
	idx := s.streamCalls
	s.streamCalls++
	if idx >= len(s.streamReplies) || s.streamReplies[idx] == "" {
		return "", errors.New("stream broke")
	}
	return s.streamReplies[idx], nil
}

func (s *scriptedAI) ChatWithUsage(ctx context.Context, model string, messages []adapter.Message) (string, adapter.Usage, error) {
	s.chatCalls = append(s.chatCalls, model)
	reply, ok := s.chatReplies[model]
	if !ok {
		return "", adapter.Usage{}, errors.New("chat unavailable")
	}
	return reply, s.chatUsage, nil
}

func (s *scriptedAI) Chat(ctx context.Context, model string, messages []adapter.Message) (string, error) {
	text, _, err := s.ChatWithUsage(ctx, model, messages)
	return text, err
}

func TestFallbackChain(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()
	messages := []adapter.Message{{Role: "user", Content: "тест"}}

	t.Run("stream success on first attempt", func(t *testing.T) {
		ai := &scriptedAI{streamReplies: []string{"рецепт"}}
		chain := NewFallbackChain(ai, "gpt-4", "gpt-3.5-turbo", 2, logger)

		text, usedModel, _, err := chain.Generate(ctx, messages, nil)
		if err != nil {
			t.Fatal(err)
		}
		if text != "рецепт" || usedModel != "gpt-4" {
			t.Errorf("got %q from %q", text, usedModel)
		}
		if len(ai.chatCalls) != 0 {
			t.Error("non-stream path must not run after stream success")
		}
	})

	t.Run("stream retried then succeeds", func(t *testing.T) {
		ai := &scriptedAI{streamReplies: []string{"", "рецепт"}}
		chain := NewFallbackChain(ai, "gpt-4", "gpt-3.5-turbo", 2, logger)

		text, _, _, err := chain.Generate(ctx, messages, nil)
		if err != nil {
			t.Fatal(err)
		}
		if text != "рецепт" {
			t.Errorf("got %q", text)
		}
		if ai.streamCalls != 2 {
			t.Errorf("expected 2 stream attempts, got %d", ai.streamCalls)
		}
	})

	t.Run("falls back to non-streaming primary", func(t *testing.T) {
		ai := &scriptedAI{
			streamReplies: []string{"", ""},
			chatReplies:   map[string]string{"gpt-4": "рецепт без стрима"},
		}
		chain := NewFallbackChain(ai, "gpt-4", "gpt-3.5-turbo", 2, logger)

		text, usedModel, _, err := chain.Generate(ctx, messages, nil)
		if err != nil {
			t.Fatal(err)
		}
		if text != "рецепт без стрима" || usedModel != "gpt-4" {
			t.Errorf("got %q from %q", text, usedModel)
		}
	})

	t.Run("non-streaming stages report provider usage", func(t *testing.T) {
		want := adapter.Usage{PromptTokens: 120, CompletionTokens: 340, TotalTokens: 460}
		ai := &scriptedAI{
			streamReplies: []string{"", ""},
			chatReplies:   map[string]string{"gpt-4": "рецепт"},
			chatUsage:     want,
		}
		chain := NewFallbackChain(ai, "gpt-4", "gpt-3.5-turbo", 2, logger)

		_, _, usage, err := chain.Generate(ctx, messages, nil)
		if err != nil {
			t.Fatal(err)
		}
		if usage != want {
			t.Errorf("usage = %+v, want %+v", usage, want)
		}
	})

	t.Run("falls back to the fallback model", func(t *testing.T) {
		ai := &scriptedAI{
			streamReplies: []string{"", ""},
			chatReplies:   map[string]string{"gpt-3.5-turbo": "запасной рецепт"},
		}
		chain := NewFallbackChain(ai, "gpt-4", "gpt-3.5-turbo", 2, logger)

		text, usedModel, _, err := chain.Generate(ctx, messages, nil)
		if err != nil {
			t.Fatal(err)
		}
		if text != "запасной рецепт" || usedModel != "gpt-3.5-turbo" {
			t.Errorf("got %q from %q", text, usedModel)
		}
		want := []string{"gpt-4", "gpt-3.5-turbo"}
		if len(ai.chatCalls) != 2 || ai.chatCalls[0] != want[0] || ai.chatCalls[1] != want[1] {
			t.Errorf("chat calls %v, want %v", ai.chatCalls, want)
		}
	})

	t.Run("all stages exhausted returns an error", func(t *testing.T) {
		ai := &scriptedAI{streamReplies: []string{"", ""}}
		chain := NewFallbackChain(ai, "gpt-4", "gpt-3.5-turbo", 2, logger)

		if _, _, _, err := chain.Generate(ctx, messages, nil); err == nil {
			t.Fatal("expected an error when every stage fails")
		}
	})

	t.Run("empty stream completion advances the chain", func(t *testing.T) {
		ai := &scriptedAI{
			streamReplies: []string{"   ", "   "},
			chatReplies:   map[string]string{"gpt-4": "настоящий рецепт"},
		}
		chain := NewFallbackChain(ai, "gpt-4", "gpt-3.5-turbo", 2, logger)

		text, _, _, err := chain.Generate(ctx, messages, nil)
		if err != nil {
			t.Fatal(err)
		}
		if text != "настоящий рецепт" {
			t.Errorf("got %q", text)
		}
	})

	t.Run("canceled context stops retrying", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		ai := &scriptedAI{streamReplies: []string{""}}
		chain := NewFallbackChain(ai, "gpt-4", "gpt-3.5-turbo", 5, logger)

		if _, _, _, err := chain.Generate(cctx, messages, nil); err == nil {
			t.Fatal("expected an error with canceled context")
		}
		if ai.streamCalls > 1 {
			t.Errorf("retries continued after cancel: %d attempts", ai.streamCalls)
		}
	})
}

var _ adapter.AIServiceAdapter = (*scriptedAI)(nil)

// Sanity check against the consumer interface in the usecase layer.
var _ interface {
	Generate(ctx context.Context, messages []adapter.Message, fn adapter.StreamFunc) (string, string, adapter.Usage, error)
} = (*FallbackChain)(nil)

func TestNewStreamBackoffNeverGivesUp(t *testing.T) {
	bo := newStreamBackoff()
	for i := 0; i < 10; i++ {
		if d := bo.NextBackOff(); d < 0 {
			t.Fatalf("backoff stopped at attempt %d", i)
		}
	}
}
