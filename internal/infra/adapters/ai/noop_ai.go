package ai

import (
	"context"

	"github.com/kristina93ostapenko-larek/food-bot/internal/domain/ports/adapter"
)

var _ adapter.AIServiceAdapter = (*NoopAI)(nil)

// NoopAI answers every chat with a fixed string. Used in dev mode and tests.
type NoopAI struct {
	Reply string
}

func (n *NoopAI) reply() string {
	if n.Reply == "" {
		return "*Тестовое блюдо*\nИнгредиенты:\n  - вода - 1 л\nШаги:\n1) Налейте воду."
	}
	return n.Reply
}

func (n *NoopAI) ListModels(ctx context.Context) ([]string, error) {
	return []string{"noop"}, nil
}

func (n *NoopAI) GetModelInfo(model string) (adapter.ModelInfo, error) {
	return adapter.ModelInfo{Name: "noop", Description: "no-op adapter"}, nil
}

func (n *NoopAI) CountTokens(ctx context.Context, model string, messages []adapter.Message) (int, error) {
	total := 0
	for _, m := range messages {
		total += len(m.Content) / 4
	}
	return total, nil
}

func (n *NoopAI) Chat(ctx context.Context, model string, messages []adapter.Message) (string, error) {
	return n.reply(), nil
}

func (n *NoopAI) ChatWithUsage(ctx context.Context, model string, messages []adapter.Message) (string, adapter.Usage, error) {
	return n.reply(), adapter.Usage{}, nil
}

func (n *NoopAI) ChatStream(ctx context.Context, model string, messages []adapter.Message, fn adapter.StreamFunc) (string, error) {
	if fn != nil {
		if err := fn(n.reply()); err != nil {
			return "", err
		}
	}
	return n.reply(), nil
}
