package repository

import (
	"context"

	"github.com/kristina93ostapenko-larek/food-bot/internal/domain/model"
)

// FeedbackRepository persists recipe feedback votes.
type FeedbackRepository interface {
	Save(ctx context.Context, tx Tx, fb *model.Feedback) error
	Stats(ctx context.Context, tx Tx) (*model.FeedbackStats, error)
}
