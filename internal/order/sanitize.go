package order

import (
	"regexp"
	"strings"
)

// Free-text fields may later be rendered as HTML or interpreted as links
// elsewhere, so markup and script-scheme fragments are stripped before
// anything is persisted.
var (
	angleBrackets  = strings.NewReplacer("<", "", ">", "")
	scriptScheme   = regexp.MustCompile(`(?i)javascript:`)
	inlineHandlers = regexp.MustCompile(`(?i)on\w+=`)
	phoneGarbage   = regexp.MustCompile(`[^0-9+\-\s]`)
)

func sanitizeText(s string) string {
	s = angleBrackets.Replace(s)
	s = scriptScheme.ReplaceAllString(s, "")
	s = inlineHandlers.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

func sanitizePhone(s string) string {
	return strings.TrimSpace(phoneGarbage.ReplaceAllString(s, ""))
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
