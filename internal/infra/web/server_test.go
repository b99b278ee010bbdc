package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/kristina93ostapenko-larek/food-bot/internal/config"
	"github.com/kristina93ostapenko-larek/food-bot/internal/domain"
	"github.com/kristina93ostapenko-larek/food-bot/internal/domain/model"
	"github.com/kristina93ostapenko-larek/food-bot/internal/usecase"
)

func newTestLogger() *zerolog.Logger {
	logger := zerolog.New(io.Discard)
	return &logger
}

type fakeFeedbackUC struct {
	stats usecase.BotStats
	err   error
}

func (f *fakeFeedbackUC) Record(ctx context.Context, tgID int64, vote model.FeedbackVote) error {
	return nil
}

func (f *fakeFeedbackUC) Stats(ctx context.Context) (*usecase.BotStats, error) {
	if f.err != nil {
		return nil, f.err
	}
	cp := f.stats
	return &cp, nil
}

type fakeRecipeUC struct {
	requests map[string]*model.RecipeRequest
}

func (f *fakeRecipeUC) Generate(ctx context.Context, tgID int64, meal model.MealType, rawText string) (string, error) {
	return "", nil
}

func (f *fakeRecipeUC) RequestByID(ctx context.Context, id string) (*model.RecipeRequest, error) {
	req, ok := f.requests[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return req, nil
}

func (f *fakeRecipeUC) RecentRequests(ctx context.Context, tgID int64, limit int) ([]*model.RecipeRequest, error) {
	return nil, nil
}

func newTestServer(uc usecase.FeedbackUseCase, recipes usecase.RecipeUseCase, apiKey string) *Server {
	cfg := &config.AdminConfig{Port: 0, APIKey: apiKey}
	if recipes == nil {
		recipes = &fakeRecipeUC{}
	}
	return NewServer(cfg, uc, recipes, newTestLogger())
}

func TestAdminServer(t *testing.T) {
	t.Run("health is open", func(t *testing.T) {
		srv := newTestServer(&fakeFeedbackUC{}, nil, "key")
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d", rec.Code)
		}
	})

	t.Run("metrics is open", func(t *testing.T) {
		srv := newTestServer(&fakeFeedbackUC{}, nil, "key")
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d", rec.Code)
		}
	})

	t.Run("stats requires the bearer token", func(t *testing.T) {
		srv := newTestServer(&fakeFeedbackUC{}, nil, "secret")

		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("no token: status = %d", rec.Code)
		}

		rec = httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
		req.Header.Set("Authorization", "Bearer wrong")
		srv.Handler().ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("wrong token: status = %d", rec.Code)
		}
	})

	t.Run("stats returns the aggregate as json", func(t *testing.T) {
		uc := &fakeFeedbackUC{stats: usecase.BotStats{VotesUp: 3, VotesDown: 1, RequestsOK: 7, RequestsFailed: 2}}
		srv := newTestServer(uc, nil, "secret")

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
		req.Header.Set("Authorization", "Bearer secret")
		srv.Handler().ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var got usecase.BotStats
		if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
			t.Fatal(err)
		}
		if got != uc.stats {
			t.Errorf("got %+v, want %+v", got, uc.stats)
		}
	})

	t.Run("stats backend failure maps to 500", func(t *testing.T) {
		srv := newTestServer(&fakeFeedbackUC{err: errors.New("db down")}, nil, "secret")

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
		req.Header.Set("Authorization", "Bearer secret")
		srv.Handler().ServeHTTP(rec, req)
		if rec.Code != http.StatusInternalServerError {
			t.Errorf("status = %d", rec.Code)
		}
	})

	t.Run("request lookup returns the logged row", func(t *testing.T) {
		req := &model.RecipeRequest{
			ID:         "01J0TEST",
			TelegramID: 42,
			Meal:       model.MealDinner,
			Products:   []string{"курица", "рис"},
			Model:      "gpt-4o-mini",
			Status:     model.RecipeRequestOK,
		}
		recipes := &fakeRecipeUC{requests: map[string]*model.RecipeRequest{req.ID: req}}
		srv := newTestServer(&fakeFeedbackUC{}, recipes, "secret")

		rec := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/v1/requests/01J0TEST", nil)
		r.Header.Set("Authorization", "Bearer secret")
		srv.Handler().ServeHTTP(rec, r)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var got model.RecipeRequest
		if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
			t.Fatal(err)
		}
		if got.ID != req.ID || got.TelegramID != req.TelegramID || got.Model != req.Model {
			t.Errorf("got %+v, want %+v", got, *req)
		}
	})

	t.Run("unknown request id maps to 404", func(t *testing.T) {
		srv := newTestServer(&fakeFeedbackUC{}, nil, "secret")

		rec := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/api/v1/requests/missing", nil)
		r.Header.Set("Authorization", "Bearer secret")
		srv.Handler().ServeHTTP(rec, r)
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d", rec.Code)
		}
	})

	t.Run("request lookup requires the bearer token", func(t *testing.T) {
		srv := newTestServer(&fakeFeedbackUC{}, nil, "secret")

		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/requests/01J0TEST", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status = %d", rec.Code)
		}
	})

	t.Run("empty api key disables the admin api", func(t *testing.T) {
		srv := newTestServer(&fakeFeedbackUC{}, nil, "")

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
		req.Header.Set("Authorization", "Bearer ")
		srv.Handler().ServeHTTP(rec, req)
		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("status = %d", rec.Code)
		}
	})
}
