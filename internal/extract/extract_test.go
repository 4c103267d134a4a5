package extract

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-slidegen/pkg/model"
)

const article = `<!doctype html>
<html><head>
<title>  Kitchen Blender X  Review </title>
<meta name="description" content="We tested the Blender X for a month.">
<meta property="og:image" content="/img/hero.jpg">
<script>var tracking = "ignore me";</script>
</head><body>
<h1>Blender X</h1>
<p>The Blender X crushed ice in seconds and stayed quiet doing it.</p>
<p>short</p>
<p>The Blender X crushed ice in seconds and stayed quiet doing it.</p>
<img src="https://cdn.example.com/avatar.png" alt="Reviewer">
<img src="data:image/png;base64,AAAA">
<a href="/buy/blender-x">Buy it</a>
<a href="javascript:void(0)">nope</a>
<a href="#top">top</a>
</body></html>`

func TestBuildDigest(t *testing.T) {
	d, err := BuildDigest(strings.NewReader(article), "https://shop.example.com/reviews/")
	if err != nil {
		t.Fatalf("digest: %v", err)
	}
	want := Digest{
		Title:       "Kitchen Blender X Review",
		Description: "We tested the Blender X for a month.",
		Paragraphs:  []string{"The Blender X crushed ice in seconds and stayed quiet doing it."},
		Images: []Image{
			{Src: "https://shop.example.com/img/hero.jpg", Alt: "og:image"},
			{Src: "https://cdn.example.com/avatar.png", Alt: "Reviewer"},
		},
		Links: []Link{{Href: "https://shop.example.com/buy/blender-x", Text: "Buy it"}},
	}
	if diff := cmp.Diff(want, d); diff != "" {
		t.Fatalf("digest mismatch (-want +got):\n%s", diff)
	}
	if strings.Contains(d.String(), "tracking") {
		t.Fatalf("scripts should be stripped")
	}
	if got := Truncate("héllo", 2); got != "hé" {
		t.Fatalf("unexpected truncate %q", got)
	}
}

func TestRatingStars(t *testing.T) {
	cases := map[string]string{
		`{"rating": 4}`:      "⭐⭐⭐⭐",
		`{"rating": "3"}`:    "⭐⭐⭐",
		`{"rating": 4.8}`:    "⭐⭐⭐⭐",
		`{"rating": 0}`:      "⭐",
		`{"rating": 9}`:      "⭐⭐⭐⭐⭐",
		`{"rating": "good"}`: "⭐",
		`{"rating": null}`:   "⭐",
		`{}`:                 "⭐",
	}
	for reply, want := range cases {
		a, err := ParseAnalysis(reply)
		if err != nil {
			t.Fatalf("parse %s: %v", reply, err)
		}
		if got := a.Rating.Stars(); got != want {
			t.Fatalf("%s: got %q want %q", reply, got, want)
		}
	}
	if got := Rating(math.NaN()).Stars(); got != Star {
		t.Fatalf("NaN should be one star, got %q", got)
	}
}

func TestParseAnalysis_StripsFences(t *testing.T) {
	reply := "Here you go:\n```json\n{\"title\": \" Great \", \"rating\": 5, \"review\": \"Loved it\", \"product_url\": \"https://shop.example.com/x\", \"background_image_url\": \"https://img.example.com/bg.jpg\", \"avatar_image_url\": null}\n```"
	a, err := ParseAnalysis(reply)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if a.Title != "Great" || a.Review != "Loved it" || a.AvatarImageURL != nil {
		t.Fatalf("unexpected analysis %+v", a)
	}

	if _, err := ParseAnalysis("no json here"); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestAnalysisSlide(t *testing.T) {
	product := "https://shop.example.com/x"
	bg := "https://img.example.com/bg.jpg"
	avatar := "not-a-url"
	a := Analysis{Title: "Great", Rating: 5, Review: "Loved it", ProductURL: &product, BackgroundImageURL: &bg, AvatarImageURL: &avatar}

	slide := a.Slide("canvas-template-1")
	if slide.ID == "" || slide.TemplateID != "canvas-template-1" {
		t.Fatalf("unexpected identity %+v", slide)
	}
	wantContent := map[string]string{"title": "Great", "rating": "⭐⭐⭐⭐⭐", "review": "Loved it", "social": BuyLabel}
	if diff := cmp.Diff(wantContent, slide.Content); diff != "" {
		t.Fatalf("content mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[string]string{"background-image": bg}, slide.Images); diff != "" {
		t.Fatalf("images mismatch (-want +got):\n%s", diff)
	}
	if slide.Links["social"] != product {
		t.Fatalf("expected product link, got %v", slide.Links)
	}
}

type stubChatModel struct {
	reply    string
	err      error
	messages []*schema.Message
}

func (s *stubChatModel) Generate(_ context.Context, input []*schema.Message, _ ...einomodel.Option) (*schema.Message, error) {
	s.messages = input
	if s.err != nil {
		return nil, s.err
	}
	return &schema.Message{Role: schema.Assistant, Content: s.reply}, nil
}

func TestExtractor_Analyze(t *testing.T) {
	chat := &stubChatModel{reply: "```json\n{\"title\": \"Blender X\", \"rating\": \"4\", \"review\": \"Quiet and fast\"}\n```"}
	ex, err := New(chat, WithBaseURL("https://shop.example.com/"), WithDigestLimit(5000))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	tpl := model.Template{
		ID:          "review",
		Name:        "Review",
		Size:        model.Size{Width: 1080, Height: 1080},
		PromptHints: []string{"Keep the review warm"},
		Elements: []model.Element{
			{ID: "bg", Kind: model.ElementBackground, Slot: "background-image", ImageQuery: "kitchen"},
			{ID: "card", Kind: model.ElementBackground, Style: model.Style{BackgroundColor: "#fff"}},
			{ID: "title", Kind: model.ElementText, Slot: "title"},
			{ID: "avatar", Kind: model.ElementImage, Slot: "avatar-image"},
		},
	}

	a, err := ex.Analyze(context.Background(), strings.NewReader(article), tpl)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if a.Title != "Blender X" || a.Rating.Stars() != "⭐⭐⭐⭐" {
		t.Fatalf("unexpected analysis %+v", a)
	}

	if len(chat.messages) != 2 || chat.messages[0].Role != schema.System {
		t.Fatalf("expected system + user messages, got %d", len(chat.messages))
	}
	system := chat.messages[0].Content
	for _, want := range []string{"Text slots: title", "Image slots: background-image, avatar-image", "Hint: Keep the review warm"} {
		if !strings.Contains(system, want) {
			t.Fatalf("system prompt missing %q:\n%s", want, system)
		}
	}
	if !strings.Contains(chat.messages[1].Content, "https://shop.example.com/buy/blender-x") {
		t.Fatalf("user prompt should carry resolved links")
	}
}

func TestExtractor_Errors(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatalf("expected nil model error")
	}
	ex, _ := New(&stubChatModel{err: errors.New("rate limited")})
	if _, err := ex.Analyze(context.Background(), strings.NewReader(article), model.Template{}); err == nil || !strings.Contains(err.Error(), "rate limited") {
		t.Fatalf("expected model error, got %v", err)
	}
	ex, _ = New(&stubChatModel{reply: "  "})
	if _, err := ex.Analyze(context.Background(), strings.NewReader(article), model.Template{}); err == nil {
		t.Fatalf("expected empty reply error")
	}
	if _, err := NewOpenAIChatModel(context.Background(), ModelConfig{Model: "gpt"}); err == nil {
		t.Fatalf("expected missing api key error")
	}
}
