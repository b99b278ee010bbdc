package repository

import (
	"context"

	"github.com/kristina93ostapenko-larek/food-bot/internal/domain/model"
)

// DialogStateRepository keeps per-user conversational state.
// Implementations are expected to expire state after a TTL.
type DialogStateRepository interface {
	SetState(ctx context.Context, tgID int64, state *model.DialogState) error
	GetState(ctx context.Context, tgID int64) (*model.DialogState, error)
	ClearState(ctx context.Context, tgID int64) error
}
