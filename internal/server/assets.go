package server

import (
	"io/fs"
	"net/http"
	"strings"

	"github.com/goliatone/go-slidegen/pkg/renderers/interactive"
	"github.com/goliatone/go-slidegen/pkg/themes"
)

// WithAssets replaces the files served under themes.AssetPrefix.
func WithAssets(files fs.FS) Option {
	return func(s *Server) {
		if files != nil {
			s.assets = files
		}
	}
}

// assetHandler serves <prefix>/<theme>/<file>. Every theme shares the same
// runtime files, so the theme segment only scopes the URL.
func assetHandler(files fs.FS) http.Handler {
	fileServer := http.FileServerFS(files)
	return http.StripPrefix(themes.AssetPrefix, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, "/")
		_, file, ok := strings.Cut(rest, "/")
		if !ok || file == "" || strings.Contains(file, "/") {
			http.NotFound(w, r)
			return
		}
		r2 := r.Clone(r.Context())
		r2.URL.Path = "/" + file
		fileServer.ServeHTTP(w, r2)
	}))
}

func defaultAssets() fs.FS {
	return interactive.AssetsFS()
}
