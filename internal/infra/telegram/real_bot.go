package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kristina93ostapenko-larek/food-bot/internal/application"
	"github.com/kristina93ostapenko-larek/food-bot/internal/config"
	"github.com/kristina93ostapenko-larek/food-bot/internal/domain/model"
	"github.com/kristina93ostapenko-larek/food-bot/internal/domain/ports/adapter"
	"github.com/kristina93ostapenko-larek/food-bot/internal/infra/logging"
	"github.com/kristina93ostapenko-larek/food-bot/internal/infra/metrics"
	red "github.com/kristina93ostapenko-larek/food-bot/internal/infra/redis"
	"github.com/kristina93ostapenko-larek/food-bot/internal/infra/worker"
)

var _ adapter.TelegramBotAdapter = (*RealTelegramBotAdapter)(nil)

// RealTelegramBotAdapter polls updates with tgbotapi and delegates to
// BotFacade. Updates fan out to updateWorkers goroutines; generation
// runs on the shared worker pool so update handling stays responsive.
type RealTelegramBotAdapter struct {
	bot         *tgbotapi.BotAPI
	cfg         *config.BotConfig
	limits      *config.LimitsConfig
	facade      *application.BotFacade
	rateLimiter *red.RateLimiter
	pool        *worker.Pool
	log         *zerolog.Logger

	adminIDsMap   map[int64]struct{}
	updateWorkers int
	cancelPolling context.CancelFunc
}

func NewRealTelegramBotAdapter(
	cfg *config.BotConfig,
	limits *config.LimitsConfig,
	facade *application.BotFacade,
	rateLimiter *red.RateLimiter,
	pool *worker.Pool,
	logger *zerolog.Logger,
) (*RealTelegramBotAdapter, error) {
	if cfg == nil {
		return nil, errors.New("bot config is nil")
	}
	if facade == nil {
		return nil, errors.New("bot facade is nil")
	}
	if pool == nil {
		return nil, errors.New("worker pool is nil")
	}

	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, err
	}

	adminMap := map[int64]struct{}{}
	for _, id := range cfg.AdminIDs {
		adminMap[id] = struct{}{}
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = 5
	}

	return &RealTelegramBotAdapter{
		bot:           bot,
		cfg:           cfg,
		limits:        limits,
		facade:        facade,
		rateLimiter:   rateLimiter,
		pool:          pool,
		log:           logger,
		adminIDsMap:   adminMap,
		updateWorkers: workers,
	}, nil
}

// StartPolling drops any stale webhook and consumes the update stream
// until ctx is canceled.
func (r *RealTelegramBotAdapter) StartPolling(ctx context.Context) error {
	if _, err := r.bot.Request(tgbotapi.DeleteWebhookConfig{DropPendingUpdates: true}); err != nil {
		r.log.Warn().Err(err).Msg("delete webhook failed")
	}
	r.log.Info().Str("bot", r.bot.Self.UserName).Msg("polling started")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = r.cfg.PollingTimeout
	updates := r.bot.GetUpdatesChan(u)

	ctx, cancel := context.WithCancel(ctx)
	r.cancelPolling = cancel

	var wg sync.WaitGroup
	updateChan := make(chan tgbotapi.Update, 100)

	for i := 0; i < r.updateWorkers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case up := <-updateChan:
					if err := r.handleUpdate(ctx, up); err != nil {
						r.log.Error().Err(err).Int("worker", id).Msg("update handling failed")
					}
				}
			}
		}(i)
	}

	for {
		select {
		case <-ctx.Done():
			r.bot.StopReceivingUpdates()
			close(updateChan)
			wg.Wait()
			return ctx.Err()
		case up := <-updates:
			updateChan <- up
		}
	}
}

func (r *RealTelegramBotAdapter) StopPolling() {
	if r.cancelPolling != nil {
		r.cancelPolling()
	}
}

func (r *RealTelegramBotAdapter) SendMessage(ctx context.Context, tgID int64, text string) error {
	msg := tgbotapi.NewMessage(tgID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	_, err := r.bot.Send(msg)
	return err
}

// SendButtons sends a message with inline buttons.
// - If btn.URL is set, the button opens a link
// - Else if btn.Data is set, the button sends callback data
// - Else a safe fallback uses btn.Text as callback data
func (r *RealTelegramBotAdapter) SendButtons(ctx context.Context, tgID int64, text string, rows [][]adapter.InlineButton) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	msg := tgbotapi.NewMessage(tgID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = buildMarkup(rows)
	_, err := r.bot.Send(msg)
	return err
}

func buildMarkup(rows [][]adapter.InlineButton) tgbotapi.InlineKeyboardMarkup {
	kbRows := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		kbRow := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, btn := range row {
			label := strings.TrimSpace(btn.Text)
			if label == "" {
				label = "•"
			}
			var kb tgbotapi.InlineKeyboardButton
			switch {
			case btn.URL != "":
				kb = tgbotapi.NewInlineKeyboardButtonURL(label, btn.URL)
			case btn.Data != "":
				kb = tgbotapi.NewInlineKeyboardButtonData(label, btn.Data)
			default:
				kb = tgbotapi.NewInlineKeyboardButtonData(label, label)
			}
			kbRow = append(kbRow, kb)
		}
		kbRows = append(kbRows, kbRow)
	}
	return tgbotapi.NewInlineKeyboardMarkup(kbRows...)
}

// routeKey maps a message to its command route, or "message" for plain
// text. Only the "message" route counts against the per-user rate
// limit; commands like /ping and /help must always answer.
func routeKey(msg *tgbotapi.Message) string {
	if msg.IsCommand() {
		return "/" + msg.Command()
	}
	return "message"
}

func (r *RealTelegramBotAdapter) handleUpdate(ctx context.Context, update tgbotapi.Update) error {
	if update.CallbackQuery != nil {
		return r.handleQuery(ctx, update.CallbackQuery)
	}
	if update.Message == nil || update.Message.From == nil {
		return nil
	}

	tgID := update.Message.From.ID
	ctx = logging.WithTgID(logging.WithRequestID(ctx, uuid.NewString()), tgID)

	text := update.Message.Text

	switch routeKey(update.Message) {
	case "/start":
		text, err := r.facade.HandleStart(ctx, tgID)
		if err != nil {
			return r.SendMessage(ctx, tgID, application.MsgGenerationError)
		}
		return r.SendButtons(ctx, tgID, text, mealKeyboard())

	case "/help":
		return r.SendMessage(ctx, tgID, application.HelpText(r.facade.MaxProducts))

	case "/ping":
		return r.SendMessage(ctx, tgID, "pong 🟢")

	case "/id":
		return r.SendMessage(ctx, tgID, fmt.Sprintf("Ваш chat_id: `%d`", update.Message.Chat.ID))

	case "/stats":
		if !r.isAdmin(tgID) {
			return r.SendMessage(ctx, tgID, application.MsgNotUnderstood)
		}
		statsText, err := r.facade.HandleStats(ctx)
		if err != nil {
			r.log.Error().Err(err).Msg("stats failed")
			return r.SendMessage(ctx, tgID, "Не удалось собрать статистику.")
		}
		return r.SendMessage(ctx, tgID, statsText)

	case "message":
		// Only plain text hits the generation path; commands stay free.
		if !r.allow(ctx, tgID, "message", r.limits.MessagesPerMin) {
			return r.SendMessage(ctx, tgID, application.MsgRateLimited)
		}
		if r.facade.CurrentStep(ctx, tgID) == model.StepEnteringIngredients {
			return r.submitGeneration(ctx, tgID, text)
		}
		return r.SendMessage(ctx, tgID, application.MsgNotUnderstood)

	default:
		return r.SendMessage(ctx, tgID, application.MsgNotUnderstood)
	}
}

// submitGeneration sends the placeholder and queues the model call on
// the worker pool. The placeholder is edited in place with the result.
func (r *RealTelegramBotAdapter) submitGeneration(ctx context.Context, tgID int64, rawText string) error {
	placeholder := tgbotapi.NewMessage(tgID, application.MsgGenerating)
	placeholder.ParseMode = tgbotapi.ModeMarkdown
	sent, err := r.bot.Send(placeholder)
	if err != nil {
		return err
	}

	task := func(taskCtx context.Context) error {
		taskCtx = logging.WithTgID(taskCtx, tgID)
		_, _ = r.bot.Request(tgbotapi.NewChatAction(tgID, tgbotapi.ChatTyping))

		reply, err := r.facade.HandleIngredients(taskCtx, tgID, rawText)
		if err != nil {
			reply = application.MsgGenerationError
		}
		return r.deliver(taskCtx, tgID, sent.MessageID, reply)
	}

	if err := r.pool.Submit(task); err != nil {
		r.log.Warn().Err(err).Msg("generation queue full")
		edit := tgbotapi.NewEditMessageText(tgID, sent.MessageID, application.MsgRateLimited)
		_, editErr := r.bot.Send(edit)
		return editErr
	}
	return nil
}

// deliver replaces the placeholder with the reply, splitting messages
// that exceed the Telegram limit. The feedback keyboard goes on the
// final part only.
func (r *RealTelegramBotAdapter) deliver(ctx context.Context, tgID int64, placeholderID int, reply string) error {
	markup := buildMarkup(feedbackKeyboard())

	parts := SplitMessage(reply, MessageLimit)
	if len(parts) == 1 {
		edit := tgbotapi.NewEditMessageTextAndMarkup(tgID, placeholderID, reply, markup)
		edit.ParseMode = tgbotapi.ModeMarkdown
		if _, err := r.bot.Send(edit); err != nil {
			// Markdown can be broken by model output; retry as plain text.
			plain := tgbotapi.NewEditMessageTextAndMarkup(tgID, placeholderID, reply, markup)
			_, err = r.bot.Send(plain)
			return err
		}
		return nil
	}

	if _, err := r.bot.Request(tgbotapi.NewDeleteMessage(tgID, placeholderID)); err != nil {
		r.log.Warn().Err(err).Msg("placeholder delete failed")
	}
	for i, part := range parts {
		msg := tgbotapi.NewMessage(tgID, part)
		msg.ParseMode = tgbotapi.ModeMarkdown
		if i == len(parts)-1 {
			msg.ReplyMarkup = markup
		}
		if _, err := r.bot.Send(msg); err != nil {
			return err
		}
	}
	return nil
}

type cbHandler func(ctx context.Context, tgID int64, data string) error

// Exact-match callbacks
func (r *RealTelegramBotAdapter) cbRoutes() map[string]cbHandler {
	return map[string]cbHandler{
		"restart": func(ctx context.Context, id int64, _ string) error {
			text, err := r.facade.HandleRestart(ctx, id)
			if err != nil {
				return r.SendMessage(ctx, id, application.MsgGenerationError)
			}
			return r.SendButtons(ctx, id, text, mealKeyboard())
		},
		"fb:up": func(ctx context.Context, id int64, _ string) error {
			text, _ := r.facade.HandleFeedback(ctx, id, model.VoteUp)
			return r.SendMessage(ctx, id, text)
		},
		"fb:down": func(ctx context.Context, id int64, _ string) error {
			text, _ := r.facade.HandleFeedback(ctx, id, model.VoteDown)
			return r.SendMessage(ctx, id, text)
		},
	}
}

// Prefix-match callbacks
func (r *RealTelegramBotAdapter) cbPrefixRoutes() []struct {
	Prefix string
	Fn     cbHandler
} {
	return []struct {
		Prefix string
		Fn     cbHandler
	}{
		{
			Prefix: "meal:",
			Fn: func(ctx context.Context, id int64, data string) error {
				payload := strings.TrimPrefix(data, "meal:")
				text, err := r.facade.HandleMealChosen(ctx, id, payload)
				if err != nil {
					return r.SendMessage(ctx, id, application.MsgGenerationError)
				}
				return r.SendMessage(ctx, id, text)
			},
		},
	}
}

func (r *RealTelegramBotAdapter) handleQuery(ctx context.Context, query *tgbotapi.CallbackQuery) error {
	if query == nil || query.From == nil {
		return errors.New("invalid callback query")
	}

	// Stop the telegram spinner when we return
	defer func() { _, _ = r.bot.Request(tgbotapi.NewCallback(query.ID, "")) }()

	var tgID int64
	if query.Message != nil && query.Message.Chat != nil {
		tgID = query.Message.Chat.ID
	} else {
		tgID = query.From.ID
	}
	if tgID == 0 {
		return nil
	}
	ctx = logging.WithTgID(logging.WithRequestID(ctx, uuid.NewString()), tgID)

	data := strings.TrimSpace(query.Data)
	if !r.allow(ctx, tgID, "callback", r.limits.CallbacksPerMin) {
		return r.SendMessage(ctx, tgID, application.MsgRateLimited)
	}

	// Detach the tapped keyboard so votes are not repeated.
	if query.Message != nil && (data == "fb:up" || data == "fb:down" || data == "restart") {
		edit := tgbotapi.NewEditMessageReplyMarkup(tgID, query.Message.MessageID,
			tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}})
		if _, err := r.bot.Request(edit); err != nil {
			r.log.Debug().Err(err).Msg("keyboard detach failed")
		}
	}

	if fn, ok := r.cbRoutes()[data]; ok {
		return fn(ctx, tgID, data)
	}
	for _, pr := range r.cbPrefixRoutes() {
		if strings.HasPrefix(data, pr.Prefix) {
			return pr.Fn(ctx, tgID, data)
		}
	}
	r.log.Debug().Str("data", data).Msg("unknown callback data")
	return nil
}

// allow fails open: a Redis hiccup must not silence the bot.
func (r *RealTelegramBotAdapter) allow(ctx context.Context, tgID int64, scope string, limit int) bool {
	if r.rateLimiter == nil || limit <= 0 {
		return true
	}
	allowed, err := r.rateLimiter.Allow(ctx, red.UserScopeKey(tgID, scope), limit, time.Minute)
	if err != nil {
		r.log.Warn().Err(err).Msg("rate limit check failed")
		return true
	}
	if !allowed {
		metrics.IncRateLimitBlock(scope)
	}
	return allowed
}

func (r *RealTelegramBotAdapter) isAdmin(tgID int64) bool {
	_, ok := r.adminIDsMap[tgID]
	return ok
}
