package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/goliatone/go-slidegen/pkg/model"
)

// DefaultDigestLimit caps the digest sent to the model, in runes.
const DefaultDigestLimit = 12000

// ChatModel is the part of an eino chat model the extractor uses.
type ChatModel interface {
	Generate(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.Message, error)
}

// ModelConfig configures the OpenAI-compatible chat model.
type ModelConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// NewOpenAIChatModel builds an eino OpenAI-compatible chat model.
func NewOpenAIChatModel(ctx context.Context, cfg ModelConfig) (ChatModel, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("extract: api key is required")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, errors.New("extract: model name is required")
	}
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Model:   cfg.Model,
		Timeout: cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("extract: create chat model: %w", err)
	}
	return chatModel, nil
}

// Option customises an Extractor.
type Option func(*Extractor)

// WithDigestLimit overrides DefaultDigestLimit.
func WithDigestLimit(limit int) Option {
	return func(e *Extractor) {
		if limit > 0 {
			e.digestLimit = limit
		}
	}
}

// WithBaseURL resolves relative article URLs against base.
func WithBaseURL(base string) Option {
	return func(e *Extractor) {
		e.baseURL = base
	}
}

// Extractor asks a chat model to summarise articles for a template. It makes
// a single call per article and never retries.
type Extractor struct {
	model       ChatModel
	digestLimit int
	baseURL     string
}

// New constructs an Extractor around model.
func New(chatModel ChatModel, options ...Option) (*Extractor, error) {
	if chatModel == nil {
		return nil, errors.New("extract: chat model is required")
	}
	e := &Extractor{model: chatModel, digestLimit: DefaultDigestLimit}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}
	return e, nil
}

// Analyze digests the article and asks the model for an Analysis.
func (e *Extractor) Analyze(ctx context.Context, article io.Reader, tpl model.Template) (Analysis, error) {
	digest, err := BuildDigest(article, e.baseURL)
	if err != nil {
		return Analysis{}, err
	}

	messages := []*schema.Message{
		{Role: schema.System, Content: SystemPrompt(tpl)},
		{Role: schema.User, Content: "Analyze this article:\n\n" + Truncate(digest.String(), e.digestLimit)},
	}
	reply, err := e.model.Generate(ctx, messages)
	if err != nil {
		return Analysis{}, fmt.Errorf("extract: model call: %w", err)
	}
	if reply == nil || strings.TrimSpace(reply.Content) == "" {
		return Analysis{}, errors.New("extract: model returned an empty reply")
	}
	return ParseAnalysis(reply.Content)
}

// SystemPrompt describes the template and the expected JSON reply.
func SystemPrompt(tpl model.Template) string {
	var text, images []string
	for _, el := range tpl.Elements {
		switch el.Kind {
		case model.ElementText:
			text = append(text, el.Key())
		case model.ElementImage:
			images = append(images, el.Key())
		case model.ElementBackground:
			if el.ImageQuery != "" {
				images = append(images, el.Key())
			}
		}
	}

	var b strings.Builder
	b.WriteString("You are an expert content analyzer for presentation slides.\n")
	b.WriteString("Extract key information from the user's article to fill a slide template.\n\n")
	fmt.Fprintf(&b, "Template: %q (%s), %gx%g\n", tpl.Name, tpl.ID, tpl.Size.Width, tpl.Size.Height)
	fmt.Fprintf(&b, "Text slots: %s\n", strings.Join(text, ", "))
	fmt.Fprintf(&b, "Image slots: %s\n", strings.Join(images, ", "))
	for _, hint := range tpl.PromptHints {
		fmt.Fprintf(&b, "Hint: %s\n", hint)
	}
	b.WriteString(`
Extract:
- title: a short, punchy title (max 5 words).
- rating: a numeric rating 1-5 based on sentiment (5 = excellent).
- review: a short quote or summary sentence from the article (max 150 chars).
- product_url: the main product URL to buy or view the product. Must start with http.
- background_image_url: the main product or lifestyle image URL. Must start with http.
- avatar_image_url: the reviewer avatar URL, or null when there is none.

Return ONLY a JSON object with the keys title, rating, review, product_url, background_image_url, avatar_image_url.`)
	return b.String()
}
