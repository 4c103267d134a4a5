package server

import (
	"encoding/base64"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/m1z23r/drift/pkg/drift"

	"github.com/goliatone/go-slidegen/pkg/export/pptx"
	"github.com/goliatone/go-slidegen/pkg/layout"
	"github.com/goliatone/go-slidegen/pkg/model"
	"github.com/goliatone/go-slidegen/pkg/orchestrator"
	"github.com/goliatone/go-slidegen/pkg/render"
	"github.com/goliatone/go-slidegen/pkg/slots"
	"github.com/goliatone/go-slidegen/pkg/templates"
)

// RandomTemplateID is the reserved template id that returns a random pick.
const RandomTemplateID = "random"

// TemplateSummary is the list view of a template.
type TemplateSummary struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Category    model.Category `json:"category,omitempty"`
	Size        model.Size     `json:"size"`
	Slots       []string       `json:"slots"`
}

// DeckRequest is the body accepted by the render, resolve and export routes.
type DeckRequest struct {
	model.Deck
	ThemeName    string  `json:"themeName,omitempty"`
	ThemeVariant string  `json:"themeVariant,omitempty"`
	Locale       string  `json:"locale,omitempty"`
	Editable     bool    `json:"editable,omitempty"`
	Width        float64 `json:"width,omitempty"`
	Height       float64 `json:"height,omitempty"`
	FileName     string  `json:"fileName,omitempty"`
}

// ExportResponse carries a base64 encoded PPTX.
type ExportResponse struct {
	Success  bool   `json:"success"`
	Data     string `json:"data,omitempty"`
	FileName string `json:"fileName,omitempty"`
	Error    string `json:"error,omitempty"`
}

// RenderResponse wraps non-HTML renderer output.
type RenderResponse struct {
	Renderer    string `json:"renderer"`
	ContentType string `json:"contentType"`
	Data        string `json:"data"`
}

func (s *Server) listTemplates(c *drift.Context) {
	registry := s.orch.Templates()
	var tpls []model.Template
	if category := strings.TrimSpace(c.QueryParam("category")); category != "" {
		cat := model.Category(category)
		if !cat.Valid() {
			c.BadRequest("unknown category " + category)
			return
		}
		tpls = registry.ByCategory(cat)
	} else {
		tpls = registry.Templates()
	}

	out := make([]TemplateSummary, 0, len(tpls))
	for _, tpl := range tpls {
		out = append(out, TemplateSummary{
			ID:          tpl.ID,
			Name:        tpl.Name,
			Description: tpl.Description,
			Category:    tpl.Category,
			Size:        tpl.Size,
			Slots:       tpl.Slots(),
		})
	}
	_ = c.JSON(http.StatusOK, out)
}

func (s *Server) getTemplate(c *drift.Context) {
	id := c.Param("id")
	var (
		tpl model.Template
		err error
	)
	if id == RandomTemplateID {
		tpl, err = s.orch.Templates().Random(nil)
	} else {
		tpl, err = s.orch.Templates().Get(id)
	}
	if err != nil {
		c.NotFound("template not found")
		return
	}
	_ = c.JSON(http.StatusOK, tpl)
}

func (s *Server) renderDeck(c *drift.Context) {
	var req DeckRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	result, err := s.orch.Render(c.Request.Context(), s.request(req, c.Param("renderer")))
	if err != nil {
		s.fail(c, err)
		return
	}
	if strings.HasPrefix(result.ContentType, "text/html") {
		_ = c.HTML(http.StatusOK, string(result.Body))
		return
	}
	_ = c.JSON(http.StatusOK, RenderResponse{
		Renderer:    result.Renderer,
		ContentType: result.ContentType,
		Data:        base64.StdEncoding.EncodeToString(result.Body),
	})
}

func (s *Server) resolveDeck(c *drift.Context) {
	var req DeckRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}
	slides, err := s.orch.Resolve(c.Request.Context(), req.Deck, false)
	if err != nil {
		s.fail(c, err)
		return
	}
	_ = c.JSON(http.StatusOK, slides)
}

func (s *Server) exportDeck(c *drift.Context) {
	var req DeckRequest
	if err := c.BindJSON(&req); err != nil {
		_ = c.JSON(http.StatusBadRequest, ExportResponse{Error: "invalid request body"})
		return
	}

	result, err := s.orch.Render(c.Request.Context(), s.request(req, pptx.Name))
	if err != nil {
		s.logger.Printf("export failed: %v", err)
		message := err.Error()
		if errors.Is(err, render.ErrNoSlides) || errors.Is(err, pptx.ErrNoSlides) {
			message = "No slides found in presentation"
		}
		_ = c.JSON(statusFor(err), ExportResponse{Error: message})
		return
	}
	_ = c.JSON(http.StatusOK, ExportResponse{
		Success:  true,
		Data:     base64.StdEncoding.EncodeToString(result.Body),
		FileName: ExportFileName(req.FileName),
	})
}

func (s *Server) request(req DeckRequest, renderer string) orchestrator.Request {
	name, variant := req.ThemeName, req.ThemeVariant
	if name == "" {
		name, variant = s.themeName, firstNonEmpty(variant, s.themeVariant)
	}
	return orchestrator.Request{
		Deck:     req.Deck,
		Renderer: renderer,
		Options: render.RenderOptions{
			Container: layout.Container{Width: req.Width, Height: req.Height},
			Editable:  req.Editable,
			Locale:    req.Locale,
		},
		ThemeName:    name,
		ThemeVariant: variant,
	}
}

func (s *Server) fail(c *drift.Context, err error) {
	switch statusFor(err) {
	case http.StatusNotFound:
		c.NotFound(err.Error())
	case http.StatusBadRequest:
		c.BadRequest(err.Error())
	default:
		s.logger.Printf("request failed: %v", err)
		c.InternalServerError("failed to render deck")
	}
}

func statusFor(err error) int {
	var (
		unknown    *render.UnknownRendererError
		missing    *slots.MissingSlotError
		constraint *slots.ConstraintError
	)
	switch {
	case errors.As(err, &unknown):
		return http.StatusNotFound
	case errors.As(err, &missing), errors.As(err, &constraint),
		errors.Is(err, templates.ErrTemplateNotFound),
		errors.Is(err, render.ErrNoSlides), errors.Is(err, pptx.ErrNoSlides):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

var unsafeFileChars = regexp.MustCompile(`[\\/:*?"<>|\x00-\x1f]+`)

// ExportFileName derives "<name>.pptx", defaulting to "presentation".
func ExportFileName(name string) string {
	name = strings.TrimSpace(unsafeFileChars.ReplaceAllString(name, "-"))
	name = strings.TrimSuffix(name, ".pptx")
	if name == "" || name == "-" {
		name = "presentation"
	}
	return name + ".pptx"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
