package validators

import "strings"

// SanitizeString trims whitespace and truncates to maxLen runes. Search terms
// and free-text filters pass through here before reaching a query.
func SanitizeString(input string, maxLen int) string {
	trimmed := strings.TrimSpace(input)
	if maxLen <= 0 {
		return trimmed
	}
	if runes := []rune(trimmed); len(runes) > maxLen {
		return string(runes[:maxLen])
	}
	return trimmed
}
