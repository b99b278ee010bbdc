package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kristina93ostapenko-larek/food-bot/internal/domain"
	"github.com/kristina93ostapenko-larek/food-bot/internal/domain/model"
	"github.com/kristina93ostapenko-larek/food-bot/internal/domain/ports/repository"
)

var _ repository.DialogStateRepository = (*DialogStateRepo)(nil)

// DialogStateRepo keeps the recipe-flow state per Telegram user.
// State expires after ttl so abandoned dialogs restart cleanly.
type DialogStateRepo struct {
	client RedisClient
	ttl    time.Duration
}

func NewDialogStateRepo(client RedisClient, ttl time.Duration) *DialogStateRepo {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &DialogStateRepo{client: client, ttl: ttl}
}

func (s *DialogStateRepo) stateKey(tgID int64) string {
	return fmt.Sprintf("dialog_state:%d", tgID)
}

func (s *DialogStateRepo) SetState(ctx context.Context, tgID int64, state *model.DialogState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.stateKey(tgID), data, s.ttl)
}

func (s *DialogStateRepo) GetState(ctx context.Context, tgID int64) (*model.DialogState, error) {
	data, err := s.client.Get(ctx, s.stateKey(tgID))
	if err != nil {
		if IsNil(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	var state model.DialogState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *DialogStateRepo) ClearState(ctx context.Context, tgID int64) error {
	return s.client.Del(ctx, s.stateKey(tgID))
}
