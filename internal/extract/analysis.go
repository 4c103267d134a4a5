package extract

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goliatone/go-slidegen/pkg/model"
	"github.com/goliatone/go-slidegen/pkg/slots"
)

// Star is the glyph repeated for ratings.
const Star = "⭐"

// BuyLabel is the text shown on the product link.
const BuyLabel = "点击购买"

// Analysis is the model's summary of an article.
type Analysis struct {
	Title              string  `json:"title"`
	Rating             Rating  `json:"rating"`
	Review             string  `json:"review"`
	ProductURL         *string `json:"product_url"`
	BackgroundImageURL *string `json:"background_image_url"`
	AvatarImageURL     *string `json:"avatar_image_url"`
}

// Rating accepts a JSON number or numeric string. Invalid values decode to
// NaN so Stars clamps them to one star.
type Rating float64

// UnmarshalJSON implements json.Unmarshaler.
func (r *Rating) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" || raw == "" {
		*r = Rating(math.NaN())
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		*r = Rating(math.NaN())
		return nil
	}
	*r = Rating(v)
	return nil
}

// Stars renders the rating as 1 to 5 star glyphs. Fractions are truncated.
func (r Rating) Stars() string {
	v := float64(r)
	if math.IsNaN(v) || v < 1 {
		return Star
	}
	if v > 5 {
		return strings.Repeat(Star, 5)
	}
	return strings.Repeat(Star, int(v))
}

// ParseAnalysis decodes a model reply, tolerating markdown code fences and
// prose around the JSON object.
func ParseAnalysis(reply string) (Analysis, error) {
	text := strings.TrimSpace(reply)
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	text = strings.TrimSpace(text)
	if start, end := strings.Index(text, "{"), strings.LastIndex(text, "}"); start >= 0 && end > start {
		text = text[start : end+1]
	}

	var a Analysis
	if err := json.Unmarshal([]byte(text), &a); err != nil {
		return Analysis{}, fmt.Errorf("extract: decode model reply: %w", err)
	}
	a.Title = strings.TrimSpace(a.Title)
	a.Review = strings.TrimSpace(a.Review)
	return a, nil
}

// Slide maps the analysis onto the review slot names shared by the built-in
// templates. Image values are the raw URLs; callers inline them.
func (a Analysis) Slide(templateID string) model.Slide {
	slide := model.Slide{
		ID:         model.NewSlideID(),
		TemplateID: templateID,
		Content: map[string]string{
			"title":  a.Title,
			"rating": a.Rating.Stars(),
			"review": a.Review,
			"social": BuyLabel,
		},
		Images: map[string]string{},
		Links:  map[string]string{},
	}
	if link := slots.SafeLink(deref(a.ProductURL)); link != "" {
		slide.Links["social"] = link
	}
	if bg := httpURL(deref(a.BackgroundImageURL)); bg != "" {
		slide.Images["background-image"] = bg
	}
	if avatar := httpURL(deref(a.AvatarImageURL)); avatar != "" {
		slide.Images["avatar-image"] = avatar
	}
	return slide
}

func httpURL(v string) string {
	v = strings.TrimSpace(v)
	if strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") {
		return v
	}
	return ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
