// Package pptx exports resolved slides as a PowerPoint presentation.
//
// The exporter walks the same resolved elements the HTML renderers draw and
// emits GoPPT shapes in paint order. Template canvases are fitted into the
// 16:9 presentation slide, so a 1280x720 canvas maps onto the slide exactly
// and other aspect ratios are letterboxed. Hyperlinks are not written; the
// link target is kept only in the HTML surfaces.
package pptx
