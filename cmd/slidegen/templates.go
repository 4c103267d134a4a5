package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-slidegen/internal/output"
	"github.com/goliatone/go-slidegen/pkg/model"
	"github.com/goliatone/go-slidegen/pkg/templates"
	"github.com/goliatone/go-slidegen/pkg/validation"
)

func newTemplatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Inspect and validate slide templates",
	}
	cmd.AddCommand(newTemplatesListCmd(), newTemplatesShowCmd(), newTemplatesValidateCmd())
	return cmd
}

func newTemplatesListCmd() *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available templates",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, _ []string, a *app) error {
			registry, err := a.templates()
			if err != nil {
				return err
			}

			tpls := registry.Templates()
			if category != "" {
				if !model.Category(category).Valid() {
					return output.UserError(fmt.Sprintf("unknown category %q", category), nil)
				}
				tpls = registry.ByCategory(model.Category(category))
			}

			if a.printer.IsJSON() {
				type item struct {
					ID       string         `json:"id"`
					Name     string         `json:"name"`
					Category model.Category `json:"category,omitempty"`
					Size     model.Size     `json:"size"`
					Slots    []string       `json:"slots"`
				}
				items := make([]item, 0, len(tpls))
				for _, tpl := range tpls {
					items = append(items, item{ID: tpl.ID, Name: tpl.Name, Category: tpl.Category, Size: tpl.Size, Slots: tpl.Slots()})
				}
				return a.printer.WriteJSON(map[string]any{"templates": items})
			}

			rows := make([][]string, 0, len(tpls))
			for _, tpl := range tpls {
				rows = append(rows, []string{
					tpl.ID,
					tpl.Name,
					string(tpl.Category),
					fmt.Sprintf("%gx%g", tpl.Size.Width, tpl.Size.Height),
				})
			}
			a.printer.Table([]string{"ID", "NAME", "CATEGORY", "SIZE"}, rows)
			return nil
		}),
	}
	cmd.Flags().StringVar(&category, "category", "", "Only list templates in this category")
	return cmd
}

func newTemplatesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <template-id>",
		Short: "Show a template's elements and slots",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			registry, err := a.templates()
			if err != nil {
				return err
			}
			tpl, err := registry.Get(args[0])
			if err != nil {
				return output.UserError(fmt.Sprintf("template %q not found (available: %s)", args[0], strings.Join(registry.List(), ", ")), nil)
			}
			if a.printer.IsJSON() {
				return a.printer.WriteJSON(tpl)
			}

			a.printer.Section(tpl.Name)
			a.printer.KeyValue("id", tpl.ID)
			if tpl.Description != "" {
				a.printer.KeyValue("description", tpl.Description)
			}
			a.printer.KeyValue("category", string(tpl.Category))
			a.printer.KeyValue("size", fmt.Sprintf("%gx%g", tpl.Size.Width, tpl.Size.Height))

			a.printer.Section("Elements")
			rows := make([][]string, 0, len(tpl.Elements))
			for _, el := range tpl.Elements {
				required := "yes"
				if el.Optional {
					required = "no"
				}
				limits := ""
				if c := el.Constraints; c != nil {
					limits = describeLimits(*c)
				}
				rows = append(rows, []string{el.ID, string(el.Kind), el.Key(), required, limits})
			}
			a.printer.Table([]string{"ID", "TYPE", "SLOT", "REQUIRED", "LIMITS"}, rows)
			return nil
		}),
	}
}

func describeLimits(c model.Constraints) string {
	var parts []string
	if c.MaxChars > 0 {
		parts = append(parts, fmt.Sprintf("%d chars", c.MaxChars))
	}
	if c.MaxLines > 0 {
		parts = append(parts, fmt.Sprintf("%d lines", c.MaxLines))
	}
	if c.Overflow != "" {
		parts = append(parts, string(c.Overflow))
	}
	return strings.Join(parts, ", ")
}

type templateReport struct {
	File     string                     `json:"file"`
	Template string                     `json:"template,omitempty"`
	Issues   []validation.TemplateIssue `json:"issues,omitempty"`
	Error    string                     `json:"error,omitempty"`
}

func newTemplatesValidateCmd() *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "validate <path>...",
		Short: "Validate template documents",
		Long: `Validate JSON or YAML template documents. Directories are walked
recursively. Errors fail the command; warnings fail it only with --strict.`,
		Args: cobra.MinimumNArgs(1),
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			files, err := templateFiles(args)
			if err != nil {
				return output.UserError("collect template files", err)
			}

			var (
				reports  []templateReport
				failures int
			)
			for _, file := range files {
				for _, report := range validateFile(file) {
					if report.Error != "" {
						failures++
					}
					for _, issue := range report.Issues {
						if issue.Severity == validation.SeverityError || strict {
							failures++
						}
					}
					reports = append(reports, report)
				}
			}

			if a.printer.IsJSON() {
				if err := a.printer.WriteJSON(map[string]any{"files": len(files), "reports": reports, "failures": failures}); err != nil {
					return err
				}
			} else {
				for _, report := range reports {
					name := report.File
					if report.Template != "" {
						name += " (" + report.Template + ")"
					}
					if report.Error != "" {
						a.printer.Warn("%s: %s", name, report.Error)
					}
					for _, issue := range report.Issues {
						a.printer.Println(fmt.Sprintf("%s: %s %s", name, issue.Severity, issue.String()))
					}
				}
				if failures == 0 {
					_ = a.printer.Success(map[string]any{"message": fmt.Sprintf("%s validated", plural(len(files), "file"))})
				}
			}
			if failures > 0 {
				return output.UserError(fmt.Sprintf("template validation failed with %s", plural(failures, "problem")), nil)
			}
			return nil
		}),
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "Treat warnings as failures")
	return cmd
}

func templateFiles(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			switch strings.ToLower(filepath.Ext(p)) {
			case ".json", ".yaml", ".yml":
				if !d.IsDir() {
					files = append(files, p)
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(files)
	return files, nil
}

func validateFile(path string) []templateReport {
	data, err := os.ReadFile(path)
	if err != nil {
		return []templateReport{{File: path, Error: err.Error()}}
	}
	tpls, err := templates.ParseDocument(data, path)
	if err != nil {
		return []templateReport{{File: path, Error: err.Error()}}
	}
	reports := make([]templateReport, 0, len(tpls))
	for _, tpl := range tpls {
		result := validation.ValidateTemplate(tpl)
		reports = append(reports, templateReport{File: path, Template: tpl.ID, Issues: result.Issues})
	}
	return reports
}
