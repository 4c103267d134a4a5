package main

import (
	"log"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-slidegen/internal/output"
	"github.com/goliatone/go-slidegen/internal/server"
	"github.com/goliatone/go-slidegen/pkg/export/pptx"
	"github.com/goliatone/go-slidegen/pkg/orchestrator"
)

func newServeCmd() *cobra.Command {
	var (
		addr    string
		origins []string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the template, render and export HTTP API",
		Long: `Start the HTTP API:

  GET  /healthz
  GET  /api/templates[?category=]
  GET  /api/templates/:id            ("random" picks one)
  POST /api/render/:renderer
  POST /api/resolve
  POST /api/export                   (base64 PPTX)

Theme assets are served under /assets/themes/. Deck images may be data
URIs, paths under SLIDEGEN_ASSETS_DIR, or http(s) URLs when
SLIDEGEN_REMOTE_IMAGES=true.`,
		Args: cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, _ []string, a *app) error {
			if addr == "" {
				addr = a.cfg.Addr
			}
			exporter := pptx.New(pptx.WithImageSource(a.serverImageSource()))
			orch, err := a.orchestrator("", orchestrator.WithRenderers(exporter))
			if err != nil {
				return err
			}
			srv, err := server.New(orch,
				server.WithLogger(log.New(cmd.ErrOrStderr(), "", log.LstdFlags)),
				server.WithReleaseMode(a.cfg.IsProduction()),
				server.WithAllowedOrigins(origins...),
				server.WithTheme(a.themeName, a.themeVariant),
			)
			if err != nil {
				return output.SystemError("create server", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			if err := srv.ListenAndServe(ctx, addr); err != nil {
				return output.SystemError("serve", err)
			}
			return nil
		}),
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default SLIDEGEN_ADDR or :8080)")
	cmd.Flags().StringSliceVar(&origins, "origin", nil, "Allowed CORS origins (all when empty)")
	return cmd
}
