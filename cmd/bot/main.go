package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/kristina93ostapenko-larek/food-bot/internal/application"
	"github.com/kristina93ostapenko-larek/food-bot/internal/config"
	"github.com/kristina93ostapenko-larek/food-bot/internal/domain/ports/adapter"
	aiadapter "github.com/kristina93ostapenko-larek/food-bot/internal/infra/adapters/ai"
	"github.com/kristina93ostapenko-larek/food-bot/internal/infra/db/postgres"
	"github.com/kristina93ostapenko-larek/food-bot/internal/infra/logging"
	"github.com/kristina93ostapenko-larek/food-bot/internal/infra/metrics"
	red "github.com/kristina93ostapenko-larek/food-bot/internal/infra/redis"
	"github.com/kristina93ostapenko-larek/food-bot/internal/infra/telegram"
	"github.com/kristina93ostapenko-larek/food-bot/internal/infra/web"
	"github.com/kristina93ostapenko-larek/food-bot/internal/infra/worker"
	"github.com/kristina93ostapenko-larek/food-bot/internal/usecase"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config")
	dev := flag.Bool("dev", false, "dev mode: console logs, no-op AI allowed")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath, *dev)
	if err != nil {
		fallbackLogger := zerolog.New(os.Stderr)
		fallbackLogger.Fatal().Err(err).Msg("config load failed")
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	logger.Info().Bool("dev", cfg.Runtime.Dev).Msg("starting food bot")

	metrics.MustRegister()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPgxPool(ctx, cfg.Database.URL, 8)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres connect failed")
	}
	defer pool.Close()

	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis connect failed")
	}
	defer redisClient.Close()

	recipeRepo := postgres.NewRecipeLogRepo(pool)
	feedbackRepo := postgres.NewFeedbackRepo(pool)
	txManager := postgres.NewTxManager(pool)
	states := red.NewDialogStateRepo(redisClient, cfg.Redis.StateTTL)
	cache := red.NewRecipeCache(redisClient, cfg.Redis.CacheTTL)
	limiter := red.NewRateLimiter(redisClient)

	aiSvc, err := buildAIService(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("ai service init failed")
	}

	chain := aiadapter.NewFallbackChain(aiSvc, cfg.AI.PrimaryModel, cfg.AI.FallbackModel, cfg.AI.StreamRetries, logger)

	recipeUC := usecase.NewRecipeUseCase(chain, aiSvc, cache, recipeRepo, cfg.Limits.MaxProducts, cfg.AI.RequestTimeout, logger)
	feedbackUC := usecase.NewFeedbackUseCase(feedbackRepo, recipeRepo, txManager, logger)

	facade := application.NewBotFacade(recipeUC, feedbackUC, states, cfg.Limits.MaxProducts, logger)

	genPool := worker.NewPool(cfg.Bot.Workers, logger)
	genPool.Start(ctx)
	defer genPool.Stop()

	bot, err := telegram.NewRealTelegramBotAdapter(&cfg.Bot, &cfg.Limits, facade, limiter, genPool, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("telegram init failed")
	}

	adminSrv := web.NewServer(&cfg.Admin, feedbackUC, recipeUC, logger)
	go func() {
		if err := adminSrv.Start(); err != nil {
			logger.Error().Err(err).Msg("admin server failed")
			stop()
		}
	}()

	// tgbotapi retries transient long-poll errors internally, so
	// StartPolling only returns on shutdown or a fatal failure.
	go func() {
		if err := bot.StartPolling(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("polling stopped")
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	bot.StopPolling()
	if err := adminSrv.Shutdown(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("admin server shutdown failed")
	}
	logger.Info().Msg("bye")
}

// buildAIService picks the provider by configured credentials. OpenAI
// wins when both keys are set; dev mode without keys gets the no-op
// adapter so the bot can run offline.
func buildAIService(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (adapter.AIServiceAdapter, error) {
	switch {
	case cfg.AI.OpenAIKey != "":
		logger.Info().Str("provider", "openai").Str("model", cfg.AI.PrimaryModel).Msg("ai provider selected")
		return aiadapter.NewOpenAIAdapter(cfg.AI.OpenAIKey, cfg.AI.PrimaryModel, cfg.AI.MaxTokens)
	case cfg.AI.GeminiKey != "":
		logger.Info().Str("provider", "gemini").Msg("ai provider selected")
		return aiadapter.NewGeminiAdapter(ctx, cfg.AI.GeminiKey, cfg.AI.GeminiURL, cfg.AI.PrimaryModel, cfg.AI.MaxTokens)
	case cfg.Runtime.Dev:
		logger.Warn().Msg("no ai credentials, using no-op adapter")
		return &aiadapter.NoopAI{}, nil
	default:
		return nil, errors.New("no ai credentials configured")
	}
}
