package themes

import (
	"maps"
	"path"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// RendererConfig flattens a selection into the configuration renderers read:
// fallback partials, then manifest templates, then variant templates; base
// tokens, then variant tokens, then overrides. Every token is also exposed
// as a "--name" CSS variable.
func RendererConfig(sel *theme.Selection, fallbacks, overrides map[string]string) *theme.RendererConfig {
	if sel == nil || sel.Manifest == nil {
		return nil
	}
	m := sel.Manifest
	variant, hasVariant := m.Variants[sel.Variant]

	partials := make(map[string]string, len(fallbacks)+len(m.Templates))
	maps.Copy(partials, fallbacks)
	maps.Copy(partials, m.Templates)
	tokens := make(map[string]string, len(m.Tokens)+len(overrides))
	maps.Copy(tokens, m.Tokens)
	if hasVariant {
		maps.Copy(partials, variant.Templates)
		maps.Copy(tokens, variant.Tokens)
	}
	for k, v := range overrides {
		if strings.TrimSpace(v) != "" {
			tokens[k] = v
		}
	}

	assets := make(map[string]string, len(m.Assets.Files))
	maps.Copy(assets, m.Assets.Files)
	prefix := m.Assets.Prefix
	if hasVariant {
		maps.Copy(assets, variant.Assets.Files)
		if variant.Assets.Prefix != "" {
			prefix = variant.Assets.Prefix
		}
	}

	return &theme.RendererConfig{
		Theme:    sel.Theme,
		Variant:  sel.Variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  CSSVars(tokens),
		AssetURL: assetResolver(prefix, assets),
	}
}

// CSSVars maps token keys to CSS custom properties.
func CSSVars(tokens map[string]string) map[string]string {
	if len(tokens) == 0 {
		return nil
	}
	out := make(map[string]string, len(tokens))
	for k, v := range tokens {
		out["--"+k] = v
	}
	return out
}

func assetResolver(prefix string, files map[string]string) func(string) string {
	return func(key string) string {
		file, ok := files[key]
		if !ok {
			return ""
		}
		if prefix == "" || strings.Contains(file, "://") || strings.HasPrefix(file, "/") {
			return file
		}
		return path.Join(prefix, file)
	}
}
