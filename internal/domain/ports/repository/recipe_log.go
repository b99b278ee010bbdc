package repository

import (
	"context"

	"github.com/kristina93ostapenko-larek/food-bot/internal/domain/model"
)

// RecipeLogRepository persists generation requests and their outcomes.
type RecipeLogRepository interface {
	Save(ctx context.Context, tx Tx, req *model.RecipeRequest) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.RecipeRequest, error)
	FindRecentByTelegramID(ctx context.Context, tx Tx, tgID int64, limit int) ([]*model.RecipeRequest, error)
	CountByStatus(ctx context.Context, tx Tx) (ok int64, failed int64, err error)
}
