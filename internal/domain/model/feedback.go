package model

import "time"

type FeedbackVote string

const (
	VoteUp   FeedbackVote = "up"
	VoteDown FeedbackVote = "down"
)

// Feedback is one 👍/👎 tap under a generated recipe.
type Feedback struct {
	ID         string
	TelegramID int64
	Vote       FeedbackVote
	CreatedAt  time.Time
}

// FeedbackStats are aggregate vote totals.
type FeedbackStats struct {
	Up   int64
	Down int64
}
