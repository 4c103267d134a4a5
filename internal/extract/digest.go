// Package extract turns an HTML article into slide content by asking a chat
// model for a small JSON summary.
package extract

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	maxParagraphs = 40
	maxImages     = 20
	maxLinks      = 20
	minParagraph  = 20
)

// Digest is the compact view of an article sent to the model.
type Digest struct {
	Title       string
	Description string
	Paragraphs  []string
	Images      []Image
	Links       []Link
}

// Image is an article image with absolute src.
type Image struct {
	Src string
	Alt string
}

// Link is an outbound anchor with absolute href.
type Link struct {
	Href string
	Text string
}

// BuildDigest parses HTML and keeps the parts useful for a review slide.
// Relative image and link URLs resolve against base when it is set; only
// http(s) URLs are kept.
func BuildDigest(r io.Reader, base string) (Digest, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return Digest{}, fmt.Errorf("extract: parse html: %w", err)
	}
	baseURL, _ := url.Parse(base)

	doc.Find("script, style, noscript, svg, iframe").Remove()

	d := Digest{Title: collapse(doc.Find("title").First().Text())}
	if d.Title == "" {
		d.Title = collapse(doc.Find("h1").First().Text())
	}
	doc.Find("meta[name='description'], meta[property='og:description']").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if desc, ok := s.Attr("content"); ok && strings.TrimSpace(desc) != "" {
			d.Description = collapse(desc)
			return false
		}
		return true
	})

	seen := make(map[string]struct{})
	doc.Find("p, blockquote, li").Each(func(_ int, s *goquery.Selection) {
		if len(d.Paragraphs) >= maxParagraphs {
			return
		}
		text := collapse(s.Text())
		if len([]rune(text)) < minParagraph {
			return
		}
		if _, dup := seen[text]; dup {
			return
		}
		seen[text] = struct{}{}
		d.Paragraphs = append(d.Paragraphs, text)
	})

	if og, ok := doc.Find("meta[property='og:image']").Attr("content"); ok {
		if src := absoluteURL(baseURL, og); src != "" {
			d.Images = append(d.Images, Image{Src: src, Alt: "og:image"})
		}
	}
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		if len(d.Images) >= maxImages {
			return
		}
		raw, ok := s.Attr("src")
		if !ok || strings.TrimSpace(raw) == "" {
			raw, _ = s.Attr("data-src")
		}
		src := absoluteURL(baseURL, raw)
		if src == "" {
			return
		}
		alt, _ := s.Attr("alt")
		d.Images = append(d.Images, Image{Src: src, Alt: collapse(alt)})
	})

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		if len(d.Links) >= maxLinks {
			return
		}
		href, _ := s.Attr("href")
		abs := absoluteURL(baseURL, href)
		if abs == "" {
			return
		}
		d.Links = append(d.Links, Link{Href: abs, Text: collapse(s.Text())})
	})

	return d, nil
}

// String renders the digest as plain text, capped at limit runes when limit
// is positive.
func (d Digest) String() string {
	var b strings.Builder
	if d.Title != "" {
		fmt.Fprintf(&b, "TITLE: %s\n", d.Title)
	}
	if d.Description != "" {
		fmt.Fprintf(&b, "DESCRIPTION: %s\n", d.Description)
	}
	if len(d.Images) > 0 {
		b.WriteString("IMAGES:\n")
		for _, img := range d.Images {
			fmt.Fprintf(&b, "- %s", img.Src)
			if img.Alt != "" {
				fmt.Fprintf(&b, " (alt: %s)", img.Alt)
			}
			b.WriteString("\n")
		}
	}
	if len(d.Links) > 0 {
		b.WriteString("LINKS:\n")
		for _, link := range d.Links {
			fmt.Fprintf(&b, "- %s", link.Href)
			if link.Text != "" {
				fmt.Fprintf(&b, " (%s)", link.Text)
			}
			b.WriteString("\n")
		}
	}
	if len(d.Paragraphs) > 0 {
		b.WriteString("TEXT:\n")
		for _, p := range d.Paragraphs {
			b.WriteString(p)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Truncate returns s cut to limit runes.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func absoluteURL(base *url.URL, raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasPrefix(raw, "#") {
		return ""
	}
	ref, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if base != nil && !ref.IsAbs() {
		ref = base.ResolveReference(ref)
	}
	if ref.Scheme != "http" && ref.Scheme != "https" {
		return ""
	}
	return ref.String()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
