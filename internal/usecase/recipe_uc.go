package usecase

import (
	"context"
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/kristina93ostapenko-larek/food-bot/internal/domain"
	"github.com/kristina93ostapenko-larek/food-bot/internal/domain/model"
	"github.com/kristina93ostapenko-larek/food-bot/internal/domain/ports/adapter"
	"github.com/kristina93ostapenko-larek/food-bot/internal/domain/ports/repository"
	"github.com/kristina93ostapenko-larek/food-bot/internal/infra/logging"
	"github.com/kristina93ostapenko-larek/food-bot/internal/infra/metrics"
)

// Compile-time check
var _ RecipeUseCase = (*recipeUC)(nil)

// Generator produces a completion and reports the model that made it
// plus provider-reported token usage. Satisfied by ai.FallbackChain.
type Generator interface {
	Generate(ctx context.Context, messages []adapter.Message, fn adapter.StreamFunc) (text string, usedModel string, usage adapter.Usage, err error)
}

// ResultCache caches finished recipe texts. Satisfied by redis.RecipeCache.
type ResultCache interface {
	Get(ctx context.Context, cacheKey string) (string, bool, error)
	Set(ctx context.Context, cacheKey, text string) error
}

type RecipeUseCase interface {
	Generate(ctx context.Context, tgID int64, meal model.MealType, rawText string) (string, error)
	RequestByID(ctx context.Context, id string) (*model.RecipeRequest, error)
	RecentRequests(ctx context.Context, tgID int64, limit int) ([]*model.RecipeRequest, error)
}

type recipeUC struct {
	gen         Generator
	tokens      adapter.AIServiceAdapter // used for CountTokens only
	cache       ResultCache
	log         repository.RecipeLogRepository
	maxProducts int
	timeout     time.Duration
	logger      *zerolog.Logger
}

func NewRecipeUseCase(
	gen Generator,
	tokens adapter.AIServiceAdapter,
	cache ResultCache,
	logRepo repository.RecipeLogRepository,
	maxProducts int,
	timeout time.Duration,
	logger *zerolog.Logger,
) *recipeUC {
	if maxProducts <= 0 {
		maxProducts = model.MaxProducts
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &recipeUC{
		gen:         gen,
		tokens:      tokens,
		cache:       cache,
		log:         logRepo,
		maxProducts: maxProducts,
		timeout:     timeout,
		logger:      logger,
	}
}

// Generate runs the full pipeline: normalize, validate, cache lookup,
// model call with fallback, post-format, persist.
func (u *recipeUC) Generate(ctx context.Context, tgID int64, meal model.MealType, rawText string) (string, error) {
	log := logging.With(ctx, u.logger)
	defer logging.TraceDuration(log, "RecipeUC.Generate")()

	products := model.NormalizeProducts(rawText)
	if len(products) == 0 {
		return "", domain.ErrNoProducts
	}
	if len(products) > u.maxProducts {
		return "", domain.ErrTooManyProducts
	}

	req := model.NewRecipeRequest(newRequestID(), tgID, meal, products)

	if u.cache != nil {
		if text, ok, err := u.cache.Get(ctx, req.CacheKey()); err == nil && ok {
			metrics.IncCache("hit")
			req.Finish("cache", text)
			u.persist(ctx, req)
			return text, nil
		} else if err != nil {
			log.Warn().Err(err).Msg("recipe cache lookup failed")
		}
		metrics.IncCache("miss")
	}

	messages := BuildMessages(meal, products)
	promptTokens := 0
	if n, err := u.tokens.CountTokens(ctx, "", messages); err == nil {
		promptTokens = n
		log.Debug().Int("prompt_tokens", n).Int("products", len(products)).Msg("prompt prepared")
	}

	genCtx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	start := time.Now()
	text, usedModel, usage, err := u.gen.Generate(genCtx, messages, nil)
	latency := time.Since(start).Milliseconds()
	if err != nil {
		metrics.ObserveAICall(usedModel, 0, 0, 0, latency, false)
		metrics.IncRecipeRequest(string(meal), string(model.RecipeRequestFailed))
		req.Finish(usedModel, "")
		u.persist(ctx, req)
		return "", err
	}
	// Streamed replies carry no provider usage; fall back to the local
	// prompt count so ai_tokens_in still moves.
	if usage.TotalTokens == 0 && usage.PromptTokens == 0 {
		usage.PromptTokens = promptTokens
		usage.TotalTokens = promptTokens
	}
	metrics.ObserveAICall(usedModel, usage.PromptTokens, usage.CompletionTokens, usage.TotalTokens, latency, true)

	text = FormatDishNames(text)
	req.Finish(usedModel, text)
	metrics.IncRecipeRequest(string(meal), string(req.Status))
	u.persist(ctx, req)

	if u.cache != nil {
		if err := u.cache.Set(ctx, req.CacheKey(), text); err != nil {
			log.Warn().Err(err).Msg("recipe cache store failed")
		}
	}
	return text, nil
}

// RequestByID backs the admin API lookup of a single logged request.
func (u *recipeUC) RequestByID(ctx context.Context, id string) (*model.RecipeRequest, error) {
	return u.log.FindByID(ctx, nil, id)
}

func (u *recipeUC) RecentRequests(ctx context.Context, tgID int64, limit int) ([]*model.RecipeRequest, error) {
	return u.log.FindRecentByTelegramID(ctx, nil, tgID, limit)
}

// persist is best-effort: losing a log row must not fail the reply.
func (u *recipeUC) persist(ctx context.Context, req *model.RecipeRequest) {
	if u.log == nil {
		return
	}
	if err := u.log.Save(ctx, nil, req); err != nil {
		logging.With(ctx, u.logger).Warn().Err(err).Str("request_id", req.ID).Msg("recipe log save failed")
	}
}

func newRequestID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}
