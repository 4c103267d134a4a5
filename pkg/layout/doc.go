// Package layout turns template geometry into concrete boxes for the render
// targets: absolute pixel boxes for the interactive surface, percentages for
// the static surface and EMU rectangles for presentation export. It also owns
// paint ordering, container scaling and CSS color parsing.
package layout
