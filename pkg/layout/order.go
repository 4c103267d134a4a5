package layout

import (
	"sort"

	"github.com/goliatone/go-slidegen/pkg/model"
)

// Order returns the elements sorted by ascending z-index. Elements without a
// z-index paint at model.DefaultZIndex; ties keep declaration order.
func Order(elements []model.Element) []model.Element {
	out := make([]model.Element, len(elements))
	copy(out, elements)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Style.Z() < out[j].Style.Z()
	})
	return out
}

// OrderResolved applies Order semantics to resolved elements.
func OrderResolved(elements []model.ResolvedElement) []model.ResolvedElement {
	out := make([]model.ResolvedElement, len(elements))
	copy(out, elements)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Element.Style.Z() < out[j].Element.Style.Z()
	})
	return out
}
