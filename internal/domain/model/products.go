package model

import (
	"regexp"
	"strings"
)

// MaxProducts is the hard cap on ingredients per request.
const MaxProducts = 15

// Users write lists like "курица и рис, брокколи; сыр": unify every
// separator (commas, semicolons, newlines, the standalone conjunction
// "и") into a single comma before splitting. The conjunction must be
// surrounded by whitespace, otherwise it would split words like "рис".
var separatorRe = regexp.MustCompile(`\s+и\s+|\s*[,;\r\n]\s*`)

// NormalizeProducts lowercases the raw ingredient text, splits it on the
// supported separators and deduplicates entries preserving first
// occurrence order. It never returns empty items.
func NormalizeProducts(text string) []string {
	lowered := strings.ToLower(strings.TrimSpace(text))
	if lowered == "" {
		return nil
	}
	unified := separatorRe.ReplaceAllString(lowered, ",")

	seen := make(map[string]struct{})
	var uniq []string
	for _, p := range strings.Split(unified, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		uniq = append(uniq, p)
	}
	return uniq
}
