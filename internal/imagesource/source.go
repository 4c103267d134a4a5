// Package imagesource loads image references (data URIs, http(s) URLs and
// local paths) into bytes for export and inlining.
package imagesource

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultTimeout bounds a single remote fetch.
	DefaultTimeout = 15 * time.Second
	// DefaultUserAgent is sent with remote fetches; some hosts refuse
	// requests without a browser agent.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	// DefaultMaxBytes caps the size of a fetched or read image.
	DefaultMaxBytes int64 = 20 << 20
)

// ErrUnsupported reports a reference that is none of the known kinds.
var ErrUnsupported = errors.New("imagesource: unsupported image reference")

// ErrTooLarge reports an image exceeding the configured size cap.
var ErrTooLarge = errors.New("imagesource: image exceeds size limit")

// ErrUnrooted reports a local path loaded by a Source with no base directory
// or filesystem.
var ErrUnrooted = errors.New("imagesource: local paths need a base directory or filesystem")

// Kind classifies an image reference.
type Kind int

const (
	KindUnknown Kind = iota
	KindDataURI
	KindURL
	KindPath
)

// Classify returns the kind of ref.
func Classify(ref string) Kind {
	value := strings.TrimSpace(ref)
	lower := strings.ToLower(value)
	switch {
	case strings.HasPrefix(lower, "data:"):
		return KindDataURI
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		return KindURL
	case strings.HasPrefix(value, "/"), strings.HasPrefix(value, "./"), strings.HasPrefix(value, "file://"):
		return KindPath
	default:
		return KindUnknown
	}
}

// Option customises a Source.
type Option func(*Source)

// WithHTTPClient sets the client used for remote fetches.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Source) {
		if client != nil {
			s.http = client
		}
	}
}

// WithTimeout overrides DefaultTimeout. Non-positive values disable the
// per-request deadline.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Source) {
		s.timeout = timeout
	}
}

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(agent string) Option {
	return func(s *Source) {
		if agent != "" {
			s.userAgent = agent
		}
	}
}

// WithMaxBytes overrides DefaultMaxBytes.
func WithMaxBytes(limit int64) Option {
	return func(s *Source) {
		if limit > 0 {
			s.maxBytes = limit
		}
	}
}

// WithBaseDir roots local paths in dir. Without a base directory or
// filesystem local paths are refused with ErrUnrooted.
func WithBaseDir(dir string) Option {
	return func(s *Source) {
		s.baseDir = dir
	}
}

// WithFS resolves local paths against files instead of the OS filesystem.
func WithFS(files fs.FS) Option {
	return func(s *Source) {
		s.fs = files
	}
}

// WithoutRemote disables http(s) fetches.
func WithoutRemote() Option {
	return func(s *Source) {
		s.allowHTTP = false
	}
}

// Source loads image references. The zero value is not usable; call New.
type Source struct {
	fs        fs.FS
	baseDir   string
	http      *http.Client
	allowHTTP bool
	timeout   time.Duration
	userAgent string
	maxBytes  int64
}

// New constructs a Source with remote fetching enabled.
func New(options ...Option) *Source {
	s := &Source{
		allowHTTP: true,
		timeout:   DefaultTimeout,
		userAgent: DefaultUserAgent,
		maxBytes:  DefaultMaxBytes,
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.http == nil {
		s.http = &http.Client{}
	}
	return s
}

// Load returns the bytes and MIME type behind ref.
func (s *Source) Load(ctx context.Context, ref string) ([]byte, string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, "", errors.New("imagesource: reference is empty")
	}

	var (
		data []byte
		mime string
		err  error
	)
	switch Classify(ref) {
	case KindDataURI:
		data, mime, err = DecodeDataURI(ref)
	case KindURL:
		if !s.allowHTTP {
			return nil, "", errors.New("imagesource: remote fetching disabled")
		}
		data, mime, err = loadHTTP(ctx, s.http, ref, s.timeout, s.userAgent, s.maxBytes)
	case KindPath:
		switch {
		case s.fs != nil:
			data, err = loadFromFS(ctx, s.fs, ref)
		case s.baseDir != "":
			data, err = loadFile(ctx, s.baseDir, ref)
		default:
			return nil, "", fmt.Errorf("%w: %q", ErrUnrooted, truncateRef(ref))
		}
	default:
		return nil, "", fmt.Errorf("%w: %q", ErrUnsupported, truncateRef(ref))
	}
	if err != nil {
		return nil, "", err
	}
	if int64(len(data)) > s.maxBytes {
		return nil, "", ErrTooLarge
	}
	return data, sniffMIME(mime, data), nil
}

// DataURI loads ref and returns it as a base64 data URI. Data URIs are
// returned unchanged.
func (s *Source) DataURI(ctx context.Context, ref string) (string, error) {
	if Classify(ref) == KindDataURI {
		return strings.TrimSpace(ref), nil
	}
	data, mime, err := s.Load(ctx, ref)
	if err != nil {
		return "", err
	}
	return EncodeDataURI(mime, data), nil
}

func truncateRef(ref string) string {
	const limit = 60
	runes := []rune(ref)
	if len(runes) <= limit {
		return ref
	}
	return string(runes[:limit]) + "..."
}
