package usecase

import (
	"context"
	"io"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/kristina93ostapenko-larek/food-bot/internal/domain"
	"github.com/kristina93ostapenko-larek/food-bot/internal/domain/model"
	"github.com/kristina93ostapenko-larek/food-bot/internal/domain/ports/adapter"
	"github.com/kristina93ostapenko-larek/food-bot/internal/domain/ports/repository"
)

// newTestLogger creates a silent zerolog.Logger for use in tests.
func newTestLogger() *zerolog.Logger {
	logger := zerolog.New(io.Discard)
	return &logger
}

// fakeGenerator lets tests script the completion chain outcome.
type fakeGenerator struct {
	text  string
	model string
	usage adapter.Usage
	err   error
	calls int
}

func (f *fakeGenerator) Generate(ctx context.Context, messages []adapter.Message, fn adapter.StreamFunc) (string, string, adapter.Usage, error) {
	f.calls++
	if f.err != nil {
		return "", f.model, adapter.Usage{}, f.err
	}
	return f.text, f.model, f.usage, nil
}

// memRecipeLogRepo is a small in-memory implementation used by unit tests.
type memRecipeLogRepo struct {
	mu      sync.RWMutex
	store   map[string]*model.RecipeRequest
	saveErr error
}

func newMemRecipeLogRepo() *memRecipeLogRepo {
	return &memRecipeLogRepo{store: make(map[string]*model.RecipeRequest)}
}

func (m *memRecipeLogRepo) Save(ctx context.Context, _ repository.Tx, req *model.RecipeRequest) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *req
	m.store[req.ID] = &cp
	return nil
}

func (m *memRecipeLogRepo) FindByID(ctx context.Context, _ repository.Tx, id string) (*model.RecipeRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	req, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *req
	return &cp, nil
}

func (m *memRecipeLogRepo) FindRecentByTelegramID(ctx context.Context, _ repository.Tx, tgID int64, limit int) ([]*model.RecipeRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.RecipeRequest
	for _, req := range m.store {
		if req.TelegramID == tgID {
			cp := *req
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memRecipeLogRepo) CountByStatus(ctx context.Context, _ repository.Tx) (int64, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var ok, failed int64
	for _, req := range m.store {
		switch req.Status {
		case model.RecipeRequestOK:
			ok++
		case model.RecipeRequestFailed:
			failed++
		}
	}
	return ok, failed, nil
}

// memFeedbackRepo collects votes in memory.
type memFeedbackRepo struct {
	mu      sync.RWMutex
	store   map[string]*model.Feedback
	saveErr error
}

func newMemFeedbackRepo() *memFeedbackRepo {
	return &memFeedbackRepo{store: make(map[string]*model.Feedback)}
}

func (m *memFeedbackRepo) Save(ctx context.Context, _ repository.Tx, fb *model.Feedback) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *fb
	m.store[fb.ID] = &cp
	return nil
}

func (m *memFeedbackRepo) Stats(ctx context.Context, _ repository.Tx) (*model.FeedbackStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	stats := &model.FeedbackStats{}
	for _, fb := range m.store {
		switch fb.Vote {
		case model.VoteUp:
			stats.Up++
		case model.VoteDown:
			stats.Down++
		}
	}
	return stats, nil
}

// fakeTxManager passes a marker tx through without a real database.
type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) WithTx(ctx context.Context, fn func(ctx context.Context, tx repository.Tx) error) error {
	f.calls++
	return fn(ctx, struct{}{})
}

// fakeCache is an in-memory ResultCache.
type fakeCache struct {
	mu    sync.RWMutex
	store map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: make(map[string]string)}
}

func (c *fakeCache) Get(ctx context.Context, key string) (string, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.store[key]
	return v, ok, nil
}

func (c *fakeCache) Set(ctx context.Context, key, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[key] = text
	return nil
}
