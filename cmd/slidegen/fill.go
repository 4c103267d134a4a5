package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-slidegen/internal/output"
	"github.com/goliatone/go-slidegen/pkg/model"
	"github.com/goliatone/go-slidegen/pkg/orchestrator"
	"github.com/goliatone/go-slidegen/pkg/render"
	"github.com/goliatone/go-slidegen/pkg/renderers/tui"
)

func newFillCmd() *cobra.Command {
	var (
		deckPath string
		format   string
		outPath  string
		review   bool
		title    string
	)
	cmd := &cobra.Command{
		Use:   "fill [template-id]...",
		Short: "Fill slide content interactively in the terminal",
		Long: `Prompt for every slot of a deck and write the filled deck as JSON,
YAML or a readable summary. Start from template ids (one slide each) or
from an existing deck with --deck.

Examples:
  slidegen fill canvas-template-1 canvas-template-3 -o deck.yaml --format yaml
  slidegen fill --deck deck.yaml --review`,
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			if a.printer.IsJSON() {
				return output.UserError("fill is interactive and does not support --json", nil)
			}

			var deck model.Deck
			switch {
			case deckPath != "" && len(args) > 0:
				return output.UserError("use either template ids or --deck, not both", nil)
			case deckPath != "":
				loaded, err := loadDeck(cmd, deckPath)
				if err != nil {
					return err
				}
				deck = loaded
			case len(args) > 0:
				for _, id := range args {
					deck.Slides = append(deck.Slides, model.Slide{TemplateID: id})
				}
			default:
				return output.UserError("name at least one template id or pass --deck", nil)
			}
			if title != "" {
				deck.Title = title
			}

			renderer, err := tui.New(
				tui.WithOutputFormat(tui.OutputFormat(format)),
				tui.WithMessages(cmd.ErrOrStderr()),
				tui.WithSlideReview(review),
			)
			if err != nil {
				return output.UserError(fmt.Sprintf("unsupported format %q", format), err)
			}
			orch, err := a.orchestrator("", orchestrator.WithRenderers(renderer))
			if err != nil {
				return err
			}
			result, err := orch.Render(cmd.Context(), a.request(deck, tui.Name, render.RenderOptions{}))
			if err != nil {
				return classify("fill deck", err)
			}
			return writeOutput(cmd, outPath, result.Body)
		}),
	}
	flags := cmd.Flags()
	flags.StringVar(&deckPath, "deck", "", "Existing deck to edit")
	flags.StringVar(&format, "format", string(tui.OutputFormatJSON), "Output format: json, yaml or pretty")
	flags.StringVarP(&outPath, "output", "o", "", "Output file (stdout if empty)")
	flags.BoolVar(&review, "review", false, "Ask whether to keep each slide")
	flags.StringVar(&title, "title", "", "Deck title")
	return cmd
}
