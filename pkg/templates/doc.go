// Package templates holds the slide template registry and the loaders that
// populate it from JSON or YAML documents. The built-in templates ship as
// embedded YAML under builtin/ and can be loaded with Builtin, or replaced by
// pointing LoadFS at another filesystem.
package templates
