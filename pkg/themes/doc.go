// Package themes ships the built-in go-theme manifests and turns a theme
// selection into the renderer configuration the slide renderers consume.
package themes
