// Package model defines the typed slide template model shared by the template
// registry, the slot resolver, the HTML renderers and the presentation
// exporter. A Template describes a fixed pixel canvas and an ordered list of
// Elements; each Element binds a named slot to a position, a size and a style.
// Slides carry the caller supplied content maps (text, images, links) keyed by
// slot name or element id, and ResolvedSlide is the render-ready result of
// merging the two. Lengths accept either pixel values or the literal `auto`
// in both JSON and YAML documents so templates can be authored by hand.
package model
