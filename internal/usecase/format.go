package usecase

import (
	"regexp"
	"strings"
)

var stepNumberRe = regexp.MustCompile(`^\d+[\)\.]`)

// FormatDishNames wraps bare dish-name lines in Markdown bold markers.
// A line counts as a dish name when it follows a blank line (or opens
// the text), is not a list item, step, section header or tip, is not
// already bold, and is reasonably short.
func FormatDishNames(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))

	for i, line := range lines {
		stripped := strings.TrimSpace(line)
		if isDishName(lines, i, stripped) {
			out = append(out, "*"+stripped+"*")
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func isDishName(lines []string, i int, stripped string) bool {
	if stripped == "" || len([]rune(stripped)) >= 100 {
		return false
	}
	if strings.HasPrefix(stripped, "-") ||
		strings.HasPrefix(stripped, "*") ||
		strings.HasPrefix(stripped, "Шаги:") ||
		strings.HasPrefix(stripped, "Ингредиенты:") ||
		strings.HasPrefix(stripped, "_Совет:") {
		return false
	}
	if stepNumberRe.MatchString(stripped) {
		return false
	}
	// Must open the text or follow a blank line.
	return i == 0 || strings.TrimSpace(lines[i-1]) == ""
}
