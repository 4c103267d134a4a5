package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-slidegen/internal/output"
	"github.com/goliatone/go-slidegen/pkg/export/pptx"
	"github.com/goliatone/go-slidegen/pkg/render"
)

func newExportCmd() *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "export <deck>",
		Short: "Export a deck to PowerPoint",
		Long: `Export a JSON or YAML deck to a .pptx file. Slides are letterboxed into
a 16:9 page; images are embedded and unreachable images become placeholders.

Examples:
  slidegen export deck.yaml -o reviews.pptx
  slidegen export deck.yaml --theme slidegen --variant dark`,
		Args: cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			deck, err := loadDeck(cmd, args[0])
			if err != nil {
				return err
			}
			if outPath == "" {
				outPath = defaultExportName(args[0], deck.Title)
			}
			orch, err := a.orchestrator(deckDir(args[0]))
			if err != nil {
				return err
			}
			result, err := orch.Render(cmd.Context(), a.request(deck, pptx.Name, render.RenderOptions{}))
			if err != nil {
				return classify("export deck", err)
			}
			if err := writeOutput(cmd, outPath, result.Body); err != nil {
				return err
			}
			return a.printer.Success(map[string]any{
				"message": fmt.Sprintf("Exported %s to %s", plural(len(deck.Slides), "slide"), outPath),
				"output":  outPath,
				"bytes":   len(result.Body),
			})
		}),
	}
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Output .pptx path (default: <deck>.pptx)")
	return cmd
}

func newThumbnailsCmd() *cobra.Command {
	var (
		outDir string
		width  int
	)
	cmd := &cobra.Command{
		Use:   "thumbnails <deck>",
		Short: "Render PNG previews of every slide",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			deck, err := loadDeck(cmd, args[0])
			if err != nil {
				return err
			}
			orch, err := a.orchestrator(deckDir(args[0]))
			if err != nil {
				return err
			}
			slides, err := orch.Resolve(cmd.Context(), deck, false)
			if err != nil {
				return classify("resolve deck", err)
			}

			exporter := a.exporter(deckDir(args[0]), pptx.WithThumbnailWidth(width))
			images, err := exporter.Thumbnails(cmd.Context(), slides, render.RenderOptions{Title: deck.Title})
			if err != nil {
				return classify("render thumbnails", err)
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return output.SystemError("create output directory", err)
			}
			base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			if args[0] == "-" {
				base = "slide"
			}
			files := make([]string, 0, len(images))
			for i, img := range images {
				path := filepath.Join(outDir, fmt.Sprintf("%s-%02d.png", base, i+1))
				if err := os.WriteFile(path, img, 0o644); err != nil {
					return output.SystemError("write "+path, err)
				}
				files = append(files, path)
			}
			if a.printer.IsJSON() {
				return a.printer.WriteJSON(map[string]any{"files": files})
			}
			for _, f := range files {
				a.printer.Println(f)
			}
			return nil
		}),
	}
	cmd.Flags().StringVarP(&outDir, "output-dir", "o", "thumbnails", "Directory for the PNG files")
	cmd.Flags().IntVar(&width, "width", pptx.DefaultThumbnailWidth, "Thumbnail width in pixels")
	return cmd
}

func defaultExportName(deckPath, title string) string {
	name := strings.TrimSuffix(filepath.Base(deckPath), filepath.Ext(deckPath))
	if deckPath == "-" || name == "" {
		name = strings.TrimSpace(title)
	}
	if name == "" {
		name = "presentation"
	}
	return name + ".pptx"
}
