// Package main provides the slidegen command line tool.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-slidegen/internal/output"
)

// Build info set via ldflags.
var (
	version = "dev"
	commit  = "none"
)

func buildVersion() string {
	if commit == "none" {
		return version
	}
	short := commit
	if len(short) > 7 {
		short = short[:7]
	}
	return fmt.Sprintf("%s (%s)", version, short)
}

func main() {
	os.Exit(run())
}

func run() int {
	err := fang.Execute(context.Background(), newRootCmd(), fang.WithVersion(buildVersion()))
	return output.ExitCode(err)
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slidegen",
		Short: "Render template-driven slide decks to HTML and PPTX",
		Long: `slidegen binds slide content to declarative templates and renders the
result as an editable HTML preview, a static HTML page or a PowerPoint file.

Decks are JSON or YAML documents:

  title: Reviews
  slides:
    - templateId: canvas-template-1
      content: { title: "Great kettle", review: "Boils in a minute." }

All commands support --json for structured output.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	flags := cmd.PersistentFlags()
	flags.Bool("json", false, "Output in JSON format")
	flags.String("env-file", "", "Load settings from this .env file (default: ./.env when present)")
	flags.String("templates-dir", "", "Extra template documents to load next to the built-in set")
	flags.String("theme", "", "Theme name (default from SLIDEGEN_THEME)")
	flags.String("variant", "", "Theme variant (default from SLIDEGEN_THEME_VARIANT)")
	flags.String("preset", "", "JSON preset applied to decks before rendering")

	lipgloss.SetHasDarkBackground(true)

	cmd.AddGroup(
		&cobra.Group{ID: "deck", Title: "Deck Commands:"},
		&cobra.Group{ID: "content", Title: "Content Commands:"},
		&cobra.Group{ID: "service", Title: "Service Commands:"},
	)
	addGroupedCommand(cmd, newTemplatesCmd(), "deck")
	addGroupedCommand(cmd, newRenderCmd(), "deck")
	addGroupedCommand(cmd, newExportCmd(), "deck")
	addGroupedCommand(cmd, newThumbnailsCmd(), "deck")
	addGroupedCommand(cmd, newFillCmd(), "content")
	addGroupedCommand(cmd, newBatchCmd(), "content")
	addGroupedCommand(cmd, newServeCmd(), "service")

	return cmd
}

func addGroupedCommand(parent, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}
