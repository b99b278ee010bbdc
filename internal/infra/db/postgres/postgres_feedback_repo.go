package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/kristina93ostapenko-larek/food-bot/internal/domain"
	"github.com/kristina93ostapenko-larek/food-bot/internal/domain/model"
	"github.com/kristina93ostapenko-larek/food-bot/internal/domain/ports/repository"
)

var _ repository.FeedbackRepository = (*feedbackRepo)(nil)

type feedbackRepo struct{ pool *pgxpool.Pool }

func NewFeedbackRepo(pool *pgxpool.Pool) *feedbackRepo {
	return &feedbackRepo{pool: pool}
}

func (r *feedbackRepo) Save(ctx context.Context, tx repository.Tx, fb *model.Feedback) error {
	const q = `
INSERT INTO feedback (id, telegram_id, vote, created_at)
VALUES ($1,$2,$3,$4) ON CONFLICT (id) DO NOTHING;`

	_, err := execSQL(ctx, r.pool, tx, q, fb.ID, fb.TelegramID, string(fb.Vote), fb.CreatedAt)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidArgument) || errors.Is(err, domain.ErrInvalidExecContext) {
			return err
		}
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *feedbackRepo) Stats(ctx context.Context, tx repository.Tx) (*model.FeedbackStats, error) {
	const q = `SELECT
  COUNT(*) FILTER (WHERE vote='up'),
  COUNT(*) FILTER (WHERE vote='down')
FROM feedback;`
	row, err := pickRow(ctx, r.pool, tx, q)
	if err != nil {
		return nil, err
	}
	stats := &model.FeedbackStats{}
	if err := row.Scan(&stats.Up, &stats.Down); err != nil {
		return nil, domain.ErrReadDatabaseRow
	}
	return stats, nil
}
