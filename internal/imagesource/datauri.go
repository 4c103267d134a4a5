package imagesource

import (
	"encoding/base64"
	"errors"
	"net/http"
	"net/url"
	"strings"
)

// DefaultAvatar is a neutral grey avatar used when a review has no picture.
const DefaultAvatar = "data:image/svg+xml;base64,PHN2ZyB4bWxucz0iaHR0cDovL3d3dy53My5vcmcvMjAwMC9zdmciIHdpZHRoPSIxNDgiIGhlaWdodD0iMTQ4IiB2aWV3Qm94PSIwIDAgMTQ4IDE0OCI+PGNpcmNsZSBjeD0iNzQiIGN5PSI3NCIgcj0iNzQiIGZpbGw9IiNlMGUwZTAiLz48Y2lyY2xlIGN4PSI3NCIgY3k9IjU1IiByPSIyNSIgZmlsbD0iI2JkYmRiZCIvPjxwYXRoIGQ9Ik0yNSAxMzBjMC0yNyAyMi00OSA0OS00OXM0OSAyMiA0OSA0OSIgZmlsbD0iI2JkYmRiZCIvPjwvc3ZnPg=="

// DecodeDataURI parses a base64 or percent-encoded data URI.
func DecodeDataURI(ref string) ([]byte, string, error) {
	value := strings.TrimSpace(ref)
	if len(value) < 5 || !strings.EqualFold(value[:5], "data:") {
		return nil, "", errors.New("imagesource: not a data uri")
	}
	header, payload, ok := strings.Cut(value[5:], ",")
	if !ok {
		return nil, "", errors.New("imagesource: data uri has no payload")
	}

	params := strings.Split(header, ";")
	mime := strings.ToLower(strings.TrimSpace(params[0]))
	encoded := false
	for _, p := range params[1:] {
		if strings.EqualFold(strings.TrimSpace(p), "base64") {
			encoded = true
		}
	}

	if encoded {
		data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
		if err != nil {
			data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(strings.TrimSpace(payload), "="))
			if err != nil {
				return nil, "", errors.New("imagesource: invalid base64 payload")
			}
		}
		return data, mime, nil
	}

	text, err := url.PathUnescape(payload)
	if err != nil {
		return nil, "", errors.New("imagesource: invalid percent-encoded payload")
	}
	return []byte(text), mime, nil
}

// EncodeDataURI returns data as a base64 data URI.
func EncodeDataURI(mime string, data []byte) string {
	return "data:" + sniffMIME(mime, data) + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// sniffMIME keeps an explicit image type and otherwise detects one from the
// payload, defaulting to JPEG.
func sniffMIME(declared string, data []byte) string {
	mime := strings.ToLower(strings.TrimSpace(declared))
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}
	if strings.HasPrefix(mime, "image/") {
		return mime
	}
	if looksLikeSVG(data) {
		return "image/svg+xml"
	}
	if detected := http.DetectContentType(data); strings.HasPrefix(detected, "image/") {
		return detected
	}
	return "image/jpeg"
}

func looksLikeSVG(data []byte) bool {
	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	return strings.Contains(strings.ToLower(string(head)), "<svg")
}
