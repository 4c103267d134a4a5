package validation

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-slidegen/pkg/model"
)

// Severity grades a template issue. Errors block registration, warnings are
// surfaced to tooling only.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// TemplateIssue represents a validation problem with optional location
// metadata. Path uses dotted notation rooted at the template, for example
// "elements.review-text.constraints.overflowStrategy".
type TemplateIssue struct {
	Path     string   `json:"path,omitempty"`
	Element  string   `json:"element,omitempty"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

func (i TemplateIssue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// TemplateValidationResult captures validation outcomes for a template.
type TemplateValidationResult struct {
	Valid  bool            `json:"valid"`
	Issues []TemplateIssue `json:"issues,omitempty"`
}

// Errors returns only the blocking issues.
func (r TemplateValidationResult) Errors() []TemplateIssue {
	var out []TemplateIssue
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			out = append(out, issue)
		}
	}
	return out
}

// Error joins blocking issues into a single message, or returns "".
func (r TemplateValidationResult) Error() string {
	errs := r.Errors()
	if len(errs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(errs))
	for _, issue := range errs {
		parts = append(parts, issue.String())
	}
	return strings.Join(parts, "; ")
}

// ValidateTemplate checks a template definition for structural problems.
func ValidateTemplate(tpl model.Template) TemplateValidationResult {
	var issues []TemplateIssue
	add := func(sev Severity, element, path, format string, args ...any) {
		issues = append(issues, TemplateIssue{
			Path:     path,
			Element:  element,
			Message:  fmt.Sprintf(format, args...),
			Severity: sev,
		})
	}

	if strings.TrimSpace(tpl.ID) == "" {
		add(SeverityError, "", "id", "template id is required")
	}
	if tpl.Size.Width <= 0 || tpl.Size.Height <= 0 {
		add(SeverityError, "", "size", "canvas size must be positive, got %vx%v", tpl.Size.Width, tpl.Size.Height)
	}
	if !tpl.Category.Valid() {
		add(SeverityError, "", "category", "unknown category %q", tpl.Category)
	}
	if len(tpl.Elements) == 0 {
		add(SeverityWarning, "", "elements", "template declares no elements")
	}

	seen := make(map[string]struct{}, len(tpl.Elements))
	for idx, el := range tpl.Elements {
		base := elementPath(el, idx)
		if strings.TrimSpace(el.ID) == "" {
			add(SeverityError, "", base+".id", "element id is required")
		} else if _, dup := seen[el.ID]; dup {
			add(SeverityError, el.ID, base+".id", "duplicate element id %q", el.ID)
		} else {
			seen[el.ID] = struct{}{}
		}
		if !el.Kind.Valid() {
			add(SeverityError, el.ID, base+".type", "unknown element type %q", el.Kind)
		}
		if !el.Style.ObjectFit.Valid() {
			add(SeverityError, el.ID, base+".style.objectFit", "unknown object fit %q", el.Style.ObjectFit)
		}
		if el.Constraints != nil {
			c := el.Constraints
			if !c.Overflow.Valid() {
				add(SeverityError, el.ID, base+".constraints.overflowStrategy", "unknown overflow strategy %q", c.Overflow)
			}
			if c.MaxChars < 0 || c.MaxLines < 0 {
				add(SeverityError, el.ID, base+".constraints", "limits must not be negative")
			}
			if el.Kind != model.ElementText && (c.MaxChars > 0 || c.MaxLines > 0) {
				add(SeverityWarning, el.ID, base+".constraints", "text constraints on a %s element are ignored", el.Kind)
			}
		}
		if el.Kind == model.ElementText && el.Style.FontSize <= 0 {
			add(SeverityWarning, el.ID, base+".style.fontSize", "text element has no font size")
		}
		if (!el.Size.Width.Auto && el.Size.Width.Value < 0) || (!el.Size.Height.Auto && el.Size.Height.Value < 0) {
			add(SeverityError, el.ID, base+".size", "element size must not be negative")
		}
		if tpl.Size.Width > 0 && tpl.Size.Height > 0 {
			if el.Position.X < 0 || el.Position.Y < 0 || el.Position.X >= tpl.Size.Width || el.Position.Y >= tpl.Size.Height {
				add(SeverityWarning, el.ID, base+".position", "element starts outside the %vx%v canvas", tpl.Size.Width, tpl.Size.Height)
			}
		}
		if !el.Optional && el.Kind == model.ElementText && el.ExampleContent == "" {
			add(SeverityWarning, el.ID, base+".exampleContent", "required text element has no example content")
		}
	}

	return TemplateValidationResult{
		Valid:  !hasErrors(issues),
		Issues: issues,
	}
}

func elementPath(el model.Element, idx int) string {
	if el.ID != "" {
		return "elements." + el.ID
	}
	return fmt.Sprintf("elements.%d", idx)
}

func hasErrors(issues []TemplateIssue) bool {
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}
