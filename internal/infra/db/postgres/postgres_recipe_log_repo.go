package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/kristina93ostapenko-larek/food-bot/internal/domain"
	"github.com/kristina93ostapenko-larek/food-bot/internal/domain/model"
	"github.com/kristina93ostapenko-larek/food-bot/internal/domain/ports/repository"
)

var _ repository.RecipeLogRepository = (*recipeLogRepo)(nil)

type recipeLogRepo struct{ pool *pgxpool.Pool }

func NewRecipeLogRepo(pool *pgxpool.Pool) *recipeLogRepo {
	return &recipeLogRepo{pool: pool}
}

func (r *recipeLogRepo) Save(ctx context.Context, tx repository.Tx, req *model.RecipeRequest) error {
	const q = `
INSERT INTO recipe_requests (
  id, telegram_id, meal, products, model, reply, status, created_at, finished_at
) VALUES (
  $1,$2,$3,$4,$5,$6,$7,$8,$9
) ON CONFLICT (id) DO UPDATE SET
  model=$5, reply=$6, status=$7, finished_at=$9;`

	_, err := execSQL(ctx, r.pool, tx, q,
		req.ID, req.TelegramID, string(req.Meal), req.Products,
		req.Model, req.Reply, string(req.Status), req.CreatedAt, req.FinishedAt)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidArgument) || errors.Is(err, domain.ErrInvalidExecContext) {
			return err
		}
		return domain.ErrOperationFailed
	}
	return nil
}

func (r *recipeLogRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.RecipeRequest, error) {
	const q = `SELECT id, telegram_id, meal, products, model, reply, status, created_at, finished_at
FROM recipe_requests WHERE id=$1;`
	row, err := pickRow(ctx, r.pool, tx, q, id)
	if err != nil {
		return nil, err
	}
	return scanRecipeRequest(row)
}

func (r *recipeLogRepo) FindRecentByTelegramID(ctx context.Context, tx repository.Tx, tgID int64, limit int) ([]*model.RecipeRequest, error) {
	if limit <= 0 {
		limit = 10
	}
	const q = `SELECT id, telegram_id, meal, products, model, reply, status, created_at, finished_at
FROM recipe_requests WHERE telegram_id=$1 ORDER BY created_at DESC LIMIT $2;`
	rows, err := pickRows(ctx, r.pool, tx, q, tgID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.RecipeRequest
	for rows.Next() {
		req, err := scanRecipeRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

func (r *recipeLogRepo) CountByStatus(ctx context.Context, tx repository.Tx) (int64, int64, error) {
	const q = `SELECT
  COUNT(*) FILTER (WHERE status='ok'),
  COUNT(*) FILTER (WHERE status='failed')
FROM recipe_requests;`
	row, err := pickRow(ctx, r.pool, tx, q)
	if err != nil {
		return 0, 0, err
	}
	var ok, failed int64
	if err := row.Scan(&ok, &failed); err != nil {
		return 0, 0, domain.ErrReadDatabaseRow
	}
	return ok, failed, nil
}

func scanRecipeRequest(row pgx.Row) (*model.RecipeRequest, error) {
	req := &model.RecipeRequest{}
	var meal, status string
	if err := row.Scan(&req.ID, &req.TelegramID, &meal, &req.Products,
		&req.Model, &req.Reply, &status, &req.CreatedAt, &req.FinishedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.ErrReadDatabaseRow
	}
	req.Meal = model.MealType(meal)
	req.Status = model.RecipeRequestStatus(status)
	return req, nil
}
