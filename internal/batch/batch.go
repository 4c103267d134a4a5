// Package batch turns a directory of HTML articles into one PPTX per article
// and template.
package batch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-slidegen/internal/extract"
	"github.com/goliatone/go-slidegen/internal/imagesource"
	"github.com/goliatone/go-slidegen/pkg/model"
	"github.com/goliatone/go-slidegen/pkg/render"
	"github.com/goliatone/go-slidegen/pkg/slots"
	"github.com/goliatone/go-slidegen/pkg/templates"
)

// Analyzer summarises one article for a template.
type Analyzer interface {
	Analyze(ctx context.Context, article io.Reader, tpl model.Template) (extract.Analysis, error)
}

// Inliner converts image references into data URIs.
type Inliner interface {
	DataURI(ctx context.Context, ref string) (string, error)
}

// Exporter writes resolved slides to a document.
type Exporter interface {
	Render(ctx context.Context, slides []model.ResolvedSlide, opts render.RenderOptions) ([]byte, error)
}

// Item is one article rendered with one template.
type Item struct {
	Source     string
	TemplateID string
	Output     string
	Title      string
}

// Failure records an item that could not be produced.
type Failure struct {
	Source     string
	TemplateID string
	Err        error
}

func (f Failure) Error() string {
	if f.TemplateID == "" {
		return fmt.Sprintf("%s: %v", filepath.Base(f.Source), f.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", filepath.Base(f.Source), f.TemplateID, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

// Report collects the outcome of a run.
type Report struct {
	Items    []Item
	Failures []Failure
}

// Err joins the failures, or returns nil when every item succeeded.
func (r Report) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	errs := make([]error, 0, len(r.Failures))
	for _, f := range r.Failures {
		errs = append(errs, f)
	}
	return errors.Join(errs...)
}

// Option customises a Runner.
type Option func(*Runner)

// WithTemplateIDs limits the run to the given templates. Without it each
// article is rendered with one randomly picked template.
func WithTemplateIDs(ids ...string) Option {
	return func(r *Runner) {
		for _, id := range ids {
			if id = strings.TrimSpace(id); id != "" {
				r.templateIDs = append(r.templateIDs, id)
			}
		}
	}
}

// WithRand sets the source used for random template picks.
func WithRand(rng *rand.Rand) Option {
	return func(r *Runner) {
		if rng != nil {
			r.rng = rng
		}
	}
}

// WithInliner overrides the default image inliner.
func WithInliner(inliner Inliner) Option {
	return func(r *Runner) {
		if inliner != nil {
			r.images = inliner
		}
	}
}

// WithResolver overrides the default slot resolver.
func WithResolver(resolver *slots.Resolver) Option {
	return func(r *Runner) {
		if resolver != nil {
			r.resolver = resolver
		}
	}
}

// WithRenderOptions sets the options passed to the exporter.
func WithRenderOptions(opts render.RenderOptions) Option {
	return func(r *Runner) {
		r.renderOpts = opts
	}
}

// WithProgress registers a callback invoked after every item.
func WithProgress(fn func(Item, error)) Option {
	return func(r *Runner) {
		r.progress = fn
	}
}

// Runner drives extraction, resolution and export for a set of articles.
type Runner struct {
	analyzer    Analyzer
	exporter    Exporter
	templates   *templates.Registry
	resolver    *slots.Resolver
	images      Inliner
	templateIDs []string
	rng         *rand.Rand
	renderOpts  render.RenderOptions
	progress    func(Item, error)
}

// New constructs a Runner.
func New(analyzer Analyzer, exporter Exporter, registry *templates.Registry, options ...Option) (*Runner, error) {
	if analyzer == nil {
		return nil, errors.New("batch: analyzer is required")
	}
	if exporter == nil {
		return nil, errors.New("batch: exporter is required")
	}
	if registry == nil || registry.Len() == 0 {
		return nil, errors.New("batch: template registry is empty")
	}
	r := &Runner{
		analyzer:  analyzer,
		exporter:  exporter,
		templates: registry,
		resolver:  slots.New(),
		images:    imagesource.New(),
		rng:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r, nil
}

// HTMLFiles lists the .html files directly inside dir, sorted by name.
func HTMLFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("batch: read input dir: %w", err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".html") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// OutputName returns the PPTX file name for an article and template.
func OutputName(source, templateID string) string {
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	return base + "_" + templateID + ".pptx"
}

// Run processes every file and writes results into outDir. Item failures are
// collected in the report; only cancellation and output dir errors abort.
func (r *Runner) Run(ctx context.Context, files []string, outDir string) (Report, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return Report{}, fmt.Errorf("batch: create output dir: %w", err)
	}

	var report Report
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		tpls, err := r.pick()
		if err != nil {
			report.Failures = append(report.Failures, Failure{Source: file, Err: err})
			r.notify(Item{Source: file}, err)
			continue
		}
		html, err := os.ReadFile(file)
		if err != nil {
			report.Failures = append(report.Failures, Failure{Source: file, Err: err})
			r.notify(Item{Source: file}, err)
			continue
		}
		for _, tpl := range tpls {
			item, err := r.process(ctx, file, html, tpl, outDir)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return report, ctxErr
				}
				report.Failures = append(report.Failures, Failure{Source: file, TemplateID: tpl.ID, Err: err})
			} else {
				report.Items = append(report.Items, item)
			}
			r.notify(item, err)
		}
	}
	return report, nil
}

func (r *Runner) process(ctx context.Context, file string, html []byte, tpl model.Template, outDir string) (Item, error) {
	item := Item{Source: file, TemplateID: tpl.ID}

	analysis, err := r.analyzer.Analyze(ctx, bytes.NewReader(html), tpl)
	if err != nil {
		return item, err
	}
	item.Title = analysis.Title

	slide := analysis.Slide(tpl.ID)
	r.inline(ctx, &slide)

	resolved, err := r.resolver.Resolve(tpl, slide)
	if err != nil {
		return item, err
	}

	opts := r.renderOpts
	if opts.Title == "" {
		opts.Title = analysis.Title
	}
	data, err := r.exporter.Render(ctx, []model.ResolvedSlide{resolved}, opts)
	if err != nil {
		return item, err
	}

	item.Output = filepath.Join(outDir, OutputName(file, tpl.ID))
	if err := os.WriteFile(item.Output, data, 0o644); err != nil {
		return item, fmt.Errorf("batch: write %s: %w", item.Output, err)
	}
	return item, nil
}

// inline replaces remote images with data URIs. A background that fails to
// load is dropped so the exporter draws its placeholder; the avatar falls
// back to the default avatar.
func (r *Runner) inline(ctx context.Context, slide *model.Slide) {
	if ref := slide.Images["background-image"]; ref != "" {
		if uri, err := r.images.DataURI(ctx, ref); err == nil {
			slide.Images["background-image"] = uri
		} else {
			delete(slide.Images, "background-image")
		}
	}
	avatar := imagesource.DefaultAvatar
	if ref := slide.Images["avatar-image"]; ref != "" {
		if uri, err := r.images.DataURI(ctx, ref); err == nil {
			avatar = uri
		}
	}
	slide.Images["avatar-image"] = avatar
}

func (r *Runner) pick() ([]model.Template, error) {
	if len(r.templateIDs) == 0 {
		tpl, err := r.templates.Random(r.rng)
		if err != nil {
			return nil, err
		}
		return []model.Template{tpl}, nil
	}
	out := make([]model.Template, 0, len(r.templateIDs))
	for _, id := range r.templateIDs {
		tpl, err := r.templates.Get(id)
		if err != nil {
			return nil, err
		}
		out = append(out, tpl)
	}
	return out, nil
}

func (r *Runner) notify(item Item, err error) {
	if r.progress != nil {
		r.progress(item, err)
	}
}
