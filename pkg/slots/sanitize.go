package slots

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// PlainText strips markup from slot content and normalises line endings.
// Entities are decoded so renderers can apply their own escaping.
func PlainText(raw string) string {
	if raw == "" {
		return ""
	}
	normalised := strings.ReplaceAll(raw, "\r\n", "\n")
	cleaned := textSanitizer().Sanitize(normalised)
	return strings.TrimSpace(html.UnescapeString(cleaned))
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}
