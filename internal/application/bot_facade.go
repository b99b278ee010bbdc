package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/kristina93ostapenko-larek/food-bot/internal/domain"
	"github.com/kristina93ostapenko-larek/food-bot/internal/domain/model"
	"github.com/kristina93ostapenko-larek/food-bot/internal/domain/ports/repository"
	"github.com/kristina93ostapenko-larek/food-bot/internal/infra/logging"
	"github.com/kristina93ostapenko-larek/food-bot/internal/usecase"
)

// BotFacade composes usecases into high-level bot operations.
// Methods return ready-to-send strings so the Telegram adapter just
// forwards them to the chat.
type BotFacade struct {
	RecipeUC    usecase.RecipeUseCase
	FeedbackUC  usecase.FeedbackUseCase
	States      repository.DialogStateRepository
	MaxProducts int

	log *zerolog.Logger
}

func NewBotFacade(
	recipeUC usecase.RecipeUseCase,
	feedbackUC usecase.FeedbackUseCase,
	states repository.DialogStateRepository,
	maxProducts int,
	logger *zerolog.Logger,
) *BotFacade {
	if maxProducts <= 0 {
		maxProducts = model.MaxProducts
	}
	return &BotFacade{
		RecipeUC:    recipeUC,
		FeedbackUC:  feedbackUC,
		States:      states,
		MaxProducts: maxProducts,
		log:         logger,
	}
}

// HandleStart resets the dialog and returns the welcome text. The
// adapter attaches the meal keyboard.
func (b *BotFacade) HandleStart(ctx context.Context, tgID int64) (string, error) {
	state := &model.DialogState{Step: model.StepChoosingMeal}
	if err := b.States.SetState(ctx, tgID, state); err != nil {
		return "", fmt.Errorf("set dialog state: %w", err)
	}
	return Welcome, nil
}

// HandleMealChosen stores the chosen meal and asks for ingredients.
func (b *BotFacade) HandleMealChosen(ctx context.Context, tgID int64, payload string) (string, error) {
	meal := model.ParseMealType(payload)
	state := &model.DialogState{Step: model.StepEnteringIngredients, Meal: meal}
	if err := b.States.SetState(ctx, tgID, state); err != nil {
		return "", fmt.Errorf("set dialog state: %w", err)
	}
	return RenderHeader(meal) + MsgAskIngredients, nil
}

// CurrentStep reports where the user is in the flow. A missing or
// expired state maps to StepChoosingMeal.
func (b *BotFacade) CurrentStep(ctx context.Context, tgID int64) model.DialogStep {
	state, err := b.States.GetState(ctx, tgID)
	if err != nil || state == nil {
		return model.StepChoosingMeal
	}
	return state.Step
}

// HandleIngredients runs the generation pipeline for the user's
// ingredient list and returns the complete formatted reply.
func (b *BotFacade) HandleIngredients(ctx context.Context, tgID int64, rawText string) (string, error) {
	meal := model.MealSurprise
	if state, err := b.States.GetState(ctx, tgID); err == nil && state != nil && state.Meal != "" {
		meal = state.Meal
	}

	text, err := b.RecipeUC.Generate(ctx, tgID, meal, rawText)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoProducts):
			return MsgNoProducts, nil
		case errors.Is(err, domain.ErrTooManyProducts):
			return TooManyProductsText(b.MaxProducts), nil
		default:
			b.log.Error().Err(err).Int64("tg_id", tgID).
				Str("input", logging.Redact(rawText)).
				Msg("generation failed")
			return MsgGenerationError, nil
		}
	}

	// Dialog complete; next message starts over.
	if err := b.States.ClearState(ctx, tgID); err != nil {
		b.log.Warn().Err(err).Int64("tg_id", tgID).Msg("clear dialog state failed")
	}
	return RenderHeader(meal) + text + RenderFooter(), nil
}

// HandleFeedback records a vote and thanks the user.
func (b *BotFacade) HandleFeedback(ctx context.Context, tgID int64, vote model.FeedbackVote) (string, error) {
	if err := b.FeedbackUC.Record(ctx, tgID, vote); err != nil {
		b.log.Warn().Err(err).Int64("tg_id", tgID).Msg("feedback save failed")
	}
	return MsgThanksFeedback, nil
}

// HandleRestart drops any state and starts the flow over.
func (b *BotFacade) HandleRestart(ctx context.Context, tgID int64) (string, error) {
	if err := b.States.ClearState(ctx, tgID); err != nil {
		b.log.Warn().Err(err).Int64("tg_id", tgID).Msg("clear dialog state failed")
	}
	return b.HandleStart(ctx, tgID)
}

// HandleStats formats aggregate totals for the admin command.
func (b *BotFacade) HandleStats(ctx context.Context) (string, error) {
	stats, err := b.FeedbackUC.Stats(ctx)
	if err != nil {
		return "", fmt.Errorf("collect stats: %w", err)
	}
	return fmt.Sprintf(
		"📊 Статистика\nЗапросов OK: %d\nЗапросов с ошибкой: %d\n👍 %d  👎 %d",
		stats.RequestsOK, stats.RequestsFailed, stats.VotesUp, stats.VotesDown,
	), nil
}
