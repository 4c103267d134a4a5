package slots

import (
	"fmt"
	"strings"
)

// MissingSlotError lists required elements that resolved to nothing.
type MissingSlotError struct {
	TemplateID string
	Elements   []string
}

func (e *MissingSlotError) Error() string {
	return fmt.Sprintf("slots: template %q: required elements without content: %s", e.TemplateID, strings.Join(e.Elements, ", "))
}

// ConstraintError reports text rejected by a strict constraint.
type ConstraintError struct {
	TemplateID string
	ElementID  string
	Limit      string
	Max        int
	Got        int
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("slots: template %q element %q: %s %d exceeds limit %d", e.TemplateID, e.ElementID, e.Limit, e.Got, e.Max)
}
