package ai

import (
	"context"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"

	"github.com/kristina93ostapenko-larek/food-bot/internal/domain"
	"github.com/kristina93ostapenko-larek/food-bot/internal/domain/ports/adapter"
	"github.com/kristina93ostapenko-larek/food-bot/internal/infra/metrics"
)

// FallbackChain produces a completion with degradation stages:
//  1. stream the primary model, retrying with exponential backoff,
//  2. non-streaming request to the primary model,
//  3. non-streaming request to the fallback model.
//
// Empty completions count as failures and advance the chain.
type FallbackChain struct {
	ai            adapter.AIServiceAdapter
	primaryModel  string
	fallbackModel string
	streamRetries int
	log           *zerolog.Logger
}

func NewFallbackChain(ai adapter.AIServiceAdapter, primaryModel, fallbackModel string, streamRetries int, logger *zerolog.Logger) *FallbackChain {
	if streamRetries <= 0 {
		streamRetries = 2
	}
	return &FallbackChain{
		ai:            ai,
		primaryModel:  primaryModel,
		fallbackModel: fallbackModel,
		streamRetries: streamRetries,
		log:           logger,
	}
}

// Generate returns the completion text, the model that produced it and
// the token usage the provider reported. Streamed completions carry no
// usage; the caller falls back to its own prompt count for those.
func (f *FallbackChain) Generate(ctx context.Context, messages []adapter.Message, fn adapter.StreamFunc) (string, string, adapter.Usage, error) {
	// Stage 1: primary, streaming, with retries.
	var text string
	bo := backoff.WithContext(newStreamBackoff(), ctx)
	attempt := 0
	err := backoff.Retry(func() error {
		attempt++
		var err error
		text, err = f.ai.ChatStream(ctx, f.primaryModel, messages, fn)
		if err != nil {
			f.log.Warn().Err(err).Int("attempt", attempt).Str("model", f.primaryModel).Msg("stream attempt failed")
			return err
		}
		if strings.TrimSpace(text) == "" {
			return domain.ErrEmptyCompletion
		}
		return nil
	}, backoff.WithMaxRetries(bo, uint64(f.streamRetries-1)))
	if err == nil {
		return text, f.primaryModel, adapter.Usage{}, nil
	}

	// Stage 2: primary, non-streaming.
	var usage adapter.Usage
	if text, usage, err = f.ai.ChatWithUsage(ctx, f.primaryModel, messages); err == nil && strings.TrimSpace(text) != "" {
		metrics.IncFallback(f.primaryModel, "non_stream")
		return text, f.primaryModel, usage, nil
	}
	f.log.Warn().Err(err).Str("model", f.primaryModel).Msg("primary non-stream failed")

	// Stage 3: fallback model, non-streaming.
	if text, usage, err = f.ai.ChatWithUsage(ctx, f.fallbackModel, messages); err == nil && strings.TrimSpace(text) != "" {
		metrics.IncFallback(f.fallbackModel, "fallback_model")
		return text, f.fallbackModel, usage, nil
	}

	f.log.Error().Err(err).
		Str("primary", f.primaryModel).
		Str("fallback", f.fallbackModel).
		Msg("all generation attempts failed")
	if err == nil {
		err = domain.ErrEmptyCompletion
	}
	return "", f.fallbackModel, adapter.Usage{}, err
}

// newStreamBackoff mirrors the retry cadence of the long-poll reconnects:
// 1s doubling, capped at 4s between stream attempts.
func newStreamBackoff() backoff.BackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = time.Second
	bo.MaxInterval = 4 * time.Second
	bo.MaxElapsedTime = 0
	return bo
}
