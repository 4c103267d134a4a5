package tui

import "github.com/goliatone/go-slidegen/pkg/model"

// session holds the deck being filled. Slides keep their position until
// the end so review decisions can drop them after every prompt ran.
type session struct {
	deck    model.Deck
	dropped map[int]bool
}

// newSession seeds the deck with the caller-supplied part of each slide:
// values whose source is the caller's content. Example content is offered as
// a prompt default but not written unless accepted.
func newSession(slides []model.ResolvedSlide, title string) *session {
	s := &session{deck: model.Deck{Title: title}, dropped: map[int]bool{}}
	for _, slide := range slides {
		out := model.Slide{ID: slide.SlideID, TemplateID: slide.TemplateID}
		for _, el := range slide.Elements {
			key := el.Element.Key()
			if el.Link != "" {
				put(&out.Links, key, el.Link)
			}
			if el.Source != model.SourceContent {
				continue
			}
			switch {
			case el.Element.Kind == model.ElementText:
				put(&out.Content, key, el.Text)
			case el.ImageURL != "":
				put(&out.Images, key, el.ImageURL)
			default:
				put(&out.Images, key, el.Placeholder)
			}
		}
		s.deck.Slides = append(s.deck.Slides, out)
	}
	return s
}

func (s *session) setText(index int, key, value string) {
	put(&s.deck.Slides[index].Content, key, value)
}

func (s *session) setImage(index int, key, value string) {
	put(&s.deck.Slides[index].Images, key, value)
}

func (s *session) setLink(index int, key, value string) {
	put(&s.deck.Slides[index].Links, key, value)
}

func (s *session) drop(index int) {
	s.dropped[index] = true
}

// result returns the kept slides in their original order.
func (s *session) result() model.Deck {
	out := model.Deck{Title: s.deck.Title, Theme: s.deck.Theme}
	for i, slide := range s.deck.Slides {
		if !s.dropped[i] {
			out.Slides = append(out.Slides, slide)
		}
	}
	return out
}

// put stores value under key, or removes key when value is empty. A map
// left empty is reset to nil.
func put(m *map[string]string, key, value string) {
	if value == "" {
		delete(*m, key)
		if len(*m) == 0 {
			*m = nil
		}
		return
	}
	if *m == nil {
		*m = make(map[string]string)
	}
	(*m)[key] = value
}
