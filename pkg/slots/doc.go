// Package slots resolves template elements against caller supplied content.
//
// Lookups try the element slot first and the element id second. Text falls
// back to the element's example content; image slots fall back to a labelled
// placeholder. Required elements that end up empty are reported together in a
// MissingSlotError. Resolved text is reduced to plain text and then held to
// the element constraints (truncate, strict or auto-scale).
package slots
