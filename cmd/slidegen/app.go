package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-slidegen"
	"github.com/goliatone/go-slidegen/internal/config"
	"github.com/goliatone/go-slidegen/internal/imagesource"
	"github.com/goliatone/go-slidegen/internal/output"
	"github.com/goliatone/go-slidegen/pkg/export/pptx"
	"github.com/goliatone/go-slidegen/pkg/model"
	"github.com/goliatone/go-slidegen/pkg/orchestrator"
	"github.com/goliatone/go-slidegen/pkg/render"
	"github.com/goliatone/go-slidegen/pkg/slots"
	"github.com/goliatone/go-slidegen/pkg/templates"
	"github.com/goliatone/go-slidegen/pkg/themes"
)

// app bundles what every command needs: settings, output and templates.
type app struct {
	cfg          *config.Config
	printer      *output.Printer
	themeName    string
	themeVariant string
	presetPath   string
}

func newApp(cmd *cobra.Command) (*app, error) {
	jsonMode := boolFlag(cmd, "json")
	printer := output.NewPrinter(cmd.OutOrStdout(), jsonMode, output.IsTTY(cmd.OutOrStdout())).WithStderr(cmd.ErrOrStderr())

	var envFiles []string
	if file := stringFlag(cmd, "env-file"); file != "" {
		envFiles = append(envFiles, file)
	}
	cfg, err := config.Load(envFiles...)
	if err != nil {
		return nil, output.UserError("load configuration", err)
	}
	if dir := stringFlag(cmd, "templates-dir"); dir != "" {
		cfg.TemplatesDir = dir
	}

	a := &app{
		cfg:          cfg,
		printer:      printer,
		themeName:    cfg.Theme,
		themeVariant: cfg.ThemeVariant,
		presetPath:   stringFlag(cmd, "preset"),
	}
	if name := stringFlag(cmd, "theme"); name != "" {
		a.themeName = name
		a.themeVariant = ""
	}
	if variant := stringFlag(cmd, "variant"); variant != "" {
		a.themeVariant = variant
	}
	return a, nil
}

func (a *app) templates() (*templates.Registry, error) {
	registry, err := slidegen.LoadTemplates(a.cfg.TemplatesDir)
	if err != nil {
		return nil, output.UserError("load templates", err)
	}
	return registry, nil
}

// imageSource resolves local image paths relative to baseDir. Without one
// local paths are refused.
func (a *app) imageSource(baseDir string) *imagesource.Source {
	opts := []imagesource.Option{imagesource.WithTimeout(a.cfg.ImageTimeout)}
	if baseDir != "" {
		opts = append(opts, imagesource.WithBaseDir(baseDir))
	}
	return imagesource.New(opts...)
}

// serverImageSource loads images for request decks: local paths only under
// SLIDEGEN_ASSETS_DIR, remote URLs only with SLIDEGEN_REMOTE_IMAGES.
func (a *app) serverImageSource() *imagesource.Source {
	opts := []imagesource.Option{imagesource.WithTimeout(a.cfg.ImageTimeout)}
	if a.cfg.AssetsDir != "" {
		opts = append(opts, imagesource.WithBaseDir(a.cfg.AssetsDir))
	}
	if !a.cfg.RemoteImages {
		opts = append(opts, imagesource.WithoutRemote())
	}
	return imagesource.New(opts...)
}

func (a *app) exporter(baseDir string, extra ...pptx.Option) *pptx.Exporter {
	opts := append([]pptx.Option{pptx.WithImageSource(a.imageSource(baseDir))}, extra...)
	return pptx.New(opts...)
}

func (a *app) orchestrator(baseDir string, extra ...orchestrator.Option) (*orchestrator.Orchestrator, error) {
	registry, err := a.templates()
	if err != nil {
		return nil, err
	}
	opts := []orchestrator.Option{
		orchestrator.WithTemplates(registry),
		orchestrator.WithThemeSelector(themes.Default()),
		orchestrator.WithRenderers(a.exporter(baseDir)),
	}
	if a.presetPath != "" {
		data, err := os.ReadFile(a.presetPath)
		if err != nil {
			return nil, output.UserError("read preset "+a.presetPath, err)
		}
		preset, err := orchestrator.NewJSONPresetTransformer(data)
		if err != nil {
			return nil, output.UserError("parse preset "+a.presetPath, err)
		}
		opts = append(opts, orchestrator.WithDeckTransformer(preset))
	}
	return orchestrator.New(append(opts, extra...)...), nil
}

// themeOptions resolves the selected theme for callers that render without
// an orchestrator.
func (a *app) themeOptions() (render.RenderOptions, error) {
	selection, err := themes.Default().Select(a.themeName, a.themeVariant)
	if err != nil {
		return render.RenderOptions{}, output.UserError("select theme", err)
	}
	opts := render.RenderOptions{Theme: themes.RendererConfig(selection, nil, nil)}
	opts.Dark = opts.Theme != nil && opts.Theme.Variant == themes.VariantDark
	return opts, nil
}

func (a *app) request(deck model.Deck, renderer string, opts render.RenderOptions) orchestrator.Request {
	return orchestrator.Request{
		Deck:         deck,
		Renderer:     renderer,
		Options:      opts,
		ThemeName:    a.themeName,
		ThemeVariant: a.themeVariant,
	}
}

// loadDeck reads a JSON or YAML deck from path, or stdin for "-".
func loadDeck(cmd *cobra.Command, path string) (model.Deck, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return model.Deck{}, output.UserError("read deck "+path, err)
	}
	var deck model.Deck
	if err := yaml.Unmarshal(data, &deck); err != nil {
		return model.Deck{}, output.UserError("parse deck "+path, err)
	}
	return deck, nil
}

func deckDir(path string) string {
	if path == "-" {
		return ""
	}
	dir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return ""
	}
	return dir
}

// classify maps library errors onto CLI exit codes.
func classify(message string, err error) error {
	var (
		missing    *slots.MissingSlotError
		constraint *slots.ConstraintError
		unknown    *render.UnknownRendererError
		exitErr    *output.ExitError
	)
	switch {
	case errors.As(err, &exitErr):
		return err
	case errors.As(err, &missing), errors.As(err, &constraint), errors.As(err, &unknown),
		errors.Is(err, templates.ErrTemplateNotFound), errors.Is(err, render.ErrNoSlides):
		return output.UserError(message, err)
	default:
		return output.SystemError(message, err)
	}
}

func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return output.SystemError("create output directory", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return output.SystemError("write "+path, err)
	}
	return nil
}

func boolFlag(cmd *cobra.Command, name string) bool {
	v, err := cmd.Flags().GetBool(name)
	return err == nil && v
}

func stringFlag(cmd *cobra.Command, name string) string {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(v)
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

type runFunc func(cmd *cobra.Command, args []string, a *app) error

// withApp builds the app for a command. In JSON mode failures are also
// written as {"error", "code"} since fang only renders human output.
func withApp(fn runFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			if boolFlag(cmd, "json") {
				output.NewPrinter(cmd.OutOrStdout(), true, false).Error(err)
			}
			return err
		}
		if err := fn(cmd, args, a); err != nil {
			if a.printer.IsJSON() {
				a.printer.Error(err)
			}
			return err
		}
		return nil
	}
}
