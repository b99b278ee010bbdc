package telegram

import "strings"

// MessageLimit is Telegram's maximum message length in characters.
const MessageLimit = 4096

// SplitMessage breaks text into parts that each fit limit characters,
// splitting on line boundaries. A single line longer than the limit is
// hard-split by runes.
func SplitMessage(text string, limit int) []string {
	if limit <= 0 {
		limit = MessageLimit
	}
	if len([]rune(text)) <= limit {
		return []string{text}
	}

	var parts []string
	var cur strings.Builder
	curLen := 0

	// Telegram rejects empty message texts, so a run of blank lines at a
	// flush boundary must not become its own part.
	flush := func() {
		if curLen > 0 {
			part := strings.TrimRight(cur.String(), "\n")
			cur.Reset()
			curLen = 0
			if strings.TrimSpace(part) != "" {
				parts = append(parts, part)
			}
		}
	}

	for _, line := range strings.Split(text, "\n") {
		runes := []rune(line)
		for len(runes) > limit {
			flush()
			parts = append(parts, string(runes[:limit]))
			runes = runes[limit:]
		}
		line = string(runes)
		lineLen := len(runes)

		// +1 for the newline separator
		if curLen > 0 && curLen+lineLen+1 > limit {
			flush()
		}
		cur.WriteString(line)
		cur.WriteString("\n")
		curLen += lineLen + 1
	}
	flush()
	return parts
}
