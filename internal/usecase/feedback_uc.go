package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kristina93ostapenko-larek/food-bot/internal/domain/model"
	"github.com/kristina93ostapenko-larek/food-bot/internal/domain/ports/repository"
	"github.com/kristina93ostapenko-larek/food-bot/internal/infra/metrics"
)

var _ FeedbackUseCase = (*feedbackUC)(nil)

type FeedbackUseCase interface {
	Record(ctx context.Context, tgID int64, vote model.FeedbackVote) error
	Stats(ctx context.Context) (*BotStats, error)
}

// BotStats is the aggregate shown by the admin /stats command and API.
type BotStats struct {
	VotesUp        int64 `json:"votes_up"`
	VotesDown      int64 `json:"votes_down"`
	RequestsOK     int64 `json:"requests_ok"`
	RequestsFailed int64 `json:"requests_failed"`
}

type feedbackUC struct {
	feedback repository.FeedbackRepository
	recipes  repository.RecipeLogRepository
	txm      repository.TransactionManager // nil: read without a tx
	logger   *zerolog.Logger
}

func NewFeedbackUseCase(feedback repository.FeedbackRepository, recipes repository.RecipeLogRepository, txm repository.TransactionManager, logger *zerolog.Logger) *feedbackUC {
	return &feedbackUC{feedback: feedback, recipes: recipes, txm: txm, logger: logger}
}

func (u *feedbackUC) Record(ctx context.Context, tgID int64, vote model.FeedbackVote) error {
	fb := &model.Feedback{
		ID:         uuid.NewString(),
		TelegramID: tgID,
		Vote:       vote,
		CreatedAt:  time.Now(),
	}
	if err := u.feedback.Save(ctx, nil, fb); err != nil {
		return err
	}
	metrics.IncFeedback(string(vote))
	return nil
}

// Stats reads both aggregates inside one transaction when a manager is
// configured, so /stats never mixes snapshots.
func (u *feedbackUC) Stats(ctx context.Context) (*BotStats, error) {
	var out *BotStats
	read := func(ctx context.Context, tx repository.Tx) error {
		votes, err := u.feedback.Stats(ctx, tx)
		if err != nil {
			return err
		}
		ok, failed, err := u.recipes.CountByStatus(ctx, tx)
		if err != nil {
			return err
		}
		out = &BotStats{
			VotesUp:        votes.Up,
			VotesDown:      votes.Down,
			RequestsOK:     ok,
			RequestsFailed: failed,
		}
		return nil
	}

	if u.txm != nil {
		if err := u.txm.WithTx(ctx, read); err != nil {
			return nil, err
		}
		return out, nil
	}
	if err := read(ctx, nil); err != nil {
		return nil, err
	}
	return out, nil
}
