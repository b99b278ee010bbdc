package adapter

import "context"

// InlineButton is a transport-agnostic inline keyboard button.
// Exactly one of URL or Data should be set.
type InlineButton struct {
	Text string
	URL  string
	Data string
}

// TelegramBotAdapter is the port for the chat transport.
type TelegramBotAdapter interface {
	StartPolling(ctx context.Context) error
	StopPolling()

	SendMessage(ctx context.Context, tgID int64, text string) error
	SendButtons(ctx context.Context, tgID int64, text string, rows [][]InlineButton) error
}
