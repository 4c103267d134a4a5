package slots

import (
	"net/url"
	"strings"
)

// IsImageRef reports whether value can be rendered as an image source
// directly: an http(s) URL, a root-relative path or an image data URI.
func IsImageRef(value string) bool {
	v := strings.TrimSpace(value)
	lower := strings.ToLower(v)
	switch {
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		return true
	case strings.HasPrefix(lower, "data:image/"):
		return true
	case strings.HasPrefix(v, "/") && !strings.HasPrefix(v, "//"):
		return true
	default:
		return false
	}
}

// SafeLink returns value when it is an absolute http(s) URL, "" otherwise.
func SafeLink(value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return ""
	}
	u, err := url.Parse(v)
	if err != nil || u.Host == "" {
		return ""
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return v
	default:
		return ""
	}
}
