package model

import (
	"strings"
	"time"
)

type RecipeRequestStatus string

const (
	RecipeRequestOK     RecipeRequestStatus = "ok"
	RecipeRequestFailed RecipeRequestStatus = "failed"
)

// RecipeRequest is one generation attempt: what the user asked for and
// what the model answered. Persisted for history and /stats.
type RecipeRequest struct {
	ID         string              `json:"id"`
	TelegramID int64               `json:"telegram_id"`
	Meal       MealType            `json:"meal"`
	Products   []string            `json:"products"`
	Model      string              `json:"model"` // model that actually produced the reply
	Reply      string              `json:"reply"`
	Status     RecipeRequestStatus `json:"status"`
	CreatedAt  time.Time           `json:"created_at"`
	FinishedAt time.Time           `json:"finished_at"`
}

func NewRecipeRequest(id string, tgID int64, meal MealType, products []string) *RecipeRequest {
	return &RecipeRequest{
		ID:         id,
		TelegramID: tgID,
		Meal:       meal,
		Products:   products,
		Status:     RecipeRequestFailed,
		CreatedAt:  time.Now(),
	}
}

// Finish marks the request complete with the reply produced by model.
func (r *RecipeRequest) Finish(model, reply string) {
	r.Model = model
	r.Reply = reply
	if strings.TrimSpace(reply) != "" {
		r.Status = RecipeRequestOK
	}
	r.FinishedAt = time.Now()
}

// CacheKey is stable for identical meal+product combinations, so repeat
// requests can be served from the result cache.
func (r *RecipeRequest) CacheKey() string {
	return string(r.Meal) + "|" + strings.Join(r.Products, ",")
}
