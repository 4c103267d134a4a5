package themes

import theme "github.com/goliatone/go-theme"

const (
	// DefaultTheme names the built-in theme.
	DefaultTheme = "slidegen"
	// VariantLight and VariantDark are the built-in variants.
	VariantLight = "light"
	VariantDark  = "dark"

	// AssetPrefix is where the HTTP server mounts theme assets.
	AssetPrefix = "/assets/themes"
)

// TokenKeys lists the color tokens every built-in variant defines.
var TokenKeys = []string{"primary", "secondary", "accent", "background", "text", "heading", "muted"}

// Slidegen returns the built-in manifest. The base tokens are the light
// palette; the dark variant overrides them.
func Slidegen() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultTheme,
		Version: "1.0.0",
		Tokens: map[string]string{
			"primary":      "#3B82F6",
			"secondary":    "#1F2937",
			"accent":       "#60A5FA",
			"background":   "#FFFFFF",
			"text":         "#1F2937",
			"heading":      "#111827",
			"muted":        "#6B7280",
			"font-heading": "Inter",
			"font-body":    "Inter",
			"radius":       "8px",
		},
		Assets: theme.Assets{
			Prefix: AssetPrefix + "/" + DefaultTheme,
			Files: map[string]string{
				"interactive.stylesheet": "slidegen-interactive.css",
				"interactive.script":     "slidegen-interactive.js",
			},
		},
		Variants: map[string]theme.Variant{
			VariantLight: {},
			VariantDark: {
				Tokens: map[string]string{
					"primary":    "#60A5FA",
					"secondary":  "#E5E7EB",
					"accent":     "#93C5FD",
					"background": "#111827",
					"text":       "#E5E7EB",
					"heading":    "#F9FAFB",
					"muted":      "#9CA3AF",
				},
			},
		},
	}
}

// Cornflower is a second built-in theme with a single palette.
func Cornflower() *theme.Manifest {
	return &theme.Manifest{
		Name:    "cornflower",
		Version: "1.0.0",
		Tokens: map[string]string{
			"primary":    "#6495ED",
			"secondary":  "#1E3A8A",
			"accent":     "#93C5FD",
			"background": "#F8FAFF",
			"text":       "#1E293B",
			"heading":    "#1E3A8A",
			"muted":      "#64748B",
		},
	}
}

// Builtin returns every built-in manifest.
func Builtin() []*theme.Manifest {
	return []*theme.Manifest{Slidegen(), Cornflower()}
}
