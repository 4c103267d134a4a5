package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-slidegen/pkg/layout"
	"github.com/goliatone/go-slidegen/pkg/render"
	"github.com/goliatone/go-slidegen/pkg/renderers/interactive"
	"github.com/goliatone/go-slidegen/pkg/renderers/static"
)

func newRenderCmd() *cobra.Command {
	var (
		rendererName string
		outPath      string
		editable     bool
		width        float64
		height       float64
		locale       string
		imageAction  string
	)
	cmd := &cobra.Command{
		Use:   "render <deck>",
		Short: "Render a deck to HTML",
		Long: `Render a JSON or YAML deck ("-" reads stdin) with an HTML renderer.

Examples:
  slidegen render deck.yaml -o preview.html
  slidegen render deck.yaml --renderer static --locale zh
  slidegen render deck.yaml --editable --width 640`,
		Args: cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			deck, err := loadDeck(cmd, args[0])
			if err != nil {
				return err
			}
			orch, err := a.orchestrator(deckDir(args[0]))
			if err != nil {
				return err
			}
			result, err := orch.Render(cmd.Context(), a.request(deck, rendererName, render.RenderOptions{
				Container:   layout.Container{Width: width, Height: height},
				Editable:    editable,
				ImageAction: imageAction,
				Locale:      locale,
			}))
			if err != nil {
				return classify("render deck", err)
			}
			if err := writeOutput(cmd, outPath, result.Body); err != nil {
				return err
			}
			if outPath != "" && outPath != "-" {
				return a.printer.Success(map[string]any{
					"message":  fmt.Sprintf("Rendered %s to %s", plural(len(deck.Slides), "slide"), outPath),
					"renderer": result.Renderer,
					"output":   outPath,
				})
			}
			return nil
		}),
	}
	flags := cmd.Flags()
	flags.StringVarP(&rendererName, "renderer", "r", interactive.Name, fmt.Sprintf("Renderer (%s or %s)", interactive.Name, static.Name))
	flags.StringVarP(&outPath, "output", "o", "", "Output file (stdout if empty)")
	flags.BoolVar(&editable, "editable", false, "Make text editable and image slots clickable")
	flags.Float64Var(&width, "width", 0, "Container width in pixels (native size if 0)")
	flags.Float64Var(&height, "height", 0, "Container height in pixels")
	flags.StringVar(&locale, "locale", "", "Locale for built-in labels (en, zh)")
	flags.StringVar(&imageAction, "image-action", "", "Endpoint editable image slots post to")
	return cmd
}
