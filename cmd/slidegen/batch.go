package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-slidegen/internal/batch"
	"github.com/goliatone/go-slidegen/internal/extract"
	"github.com/goliatone/go-slidegen/internal/output"
)

func newBatchCmd() *cobra.Command {
	var (
		inputDir    string
		outputDir   string
		templateIDs []string
		baseURL     string
	)
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Turn a directory of HTML articles into PPTX slides",
		Long: `Summarise every .html file in --input with the configured chat model,
fill the chosen templates (a random one per article when --template is
omitted) and export one <article>_<template>.pptx per pair.

Requires SLIDEGEN_LLM_API_KEY; SLIDEGEN_LLM_BASE_URL and SLIDEGEN_LLM_MODEL
select any OpenAI-compatible endpoint.`,
		Args: cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, _ []string, a *app) error {
			if err := a.cfg.RequireLLM(); err != nil {
				return output.UserError("batch needs a chat model", err)
			}
			if outputDir == "" {
				outputDir = a.cfg.OutputDir
			}
			files, err := batch.HTMLFiles(inputDir)
			if err != nil {
				return output.UserError("list articles", err)
			}
			if len(files) == 0 {
				return output.UserError("no .html files found in "+inputDir, nil)
			}
			registry, err := a.templates()
			if err != nil {
				return err
			}

			chat, err := extract.NewOpenAIChatModel(cmd.Context(), extract.ModelConfig{
				APIKey:  a.cfg.LLM.APIKey,
				BaseURL: a.cfg.LLM.BaseURL,
				Model:   a.cfg.LLM.Model,
			})
			if err != nil {
				return output.SystemError("create chat model", err)
			}
			extractor, err := extract.New(chat, extract.WithBaseURL(baseURL))
			if err != nil {
				return output.SystemError("create extractor", err)
			}

			renderOpts, err := a.themeOptions()
			if err != nil {
				return err
			}
			runner, err := batch.New(extractor, a.exporter(inputDir), registry,
				batch.WithTemplateIDs(templateIDs...),
				batch.WithInliner(a.imageSource(inputDir)),
				batch.WithRenderOptions(renderOpts),
				batch.WithProgress(func(item batch.Item, err error) {
					if a.printer.IsJSON() {
						return
					}
					if err != nil {
						a.printer.Warn("%s [%s]: %v", item.Source, item.TemplateID, err)
						return
					}
					a.printer.KeyValue(item.TemplateID, item.Output)
				}),
			)
			if err != nil {
				return output.SystemError("create batch runner", err)
			}

			report, err := runner.Run(cmd.Context(), files, outputDir)
			if err != nil {
				return output.SystemError("batch interrupted", err)
			}

			if a.printer.IsJSON() {
				failures := make([]map[string]string, 0, len(report.Failures))
				for _, f := range report.Failures {
					failures = append(failures, map[string]string{"source": f.Source, "template": f.TemplateID, "error": f.Err.Error()})
				}
				if err := a.printer.WriteJSON(map[string]any{"items": report.Items, "failures": failures}); err != nil {
					return err
				}
			} else {
				_ = a.printer.Success(map[string]any{"message": fmt.Sprintf("Generated %s in %s", plural(len(report.Items), "deck"), outputDir)})
			}
			if len(report.Failures) > 0 {
				return output.SystemError(fmt.Sprintf("%s failed", plural(len(report.Failures), "item")), report.Err())
			}
			return nil
		}),
	}
	flags := cmd.Flags()
	flags.StringVarP(&inputDir, "input", "i", "html", "Directory holding the .html articles")
	flags.StringVarP(&outputDir, "output", "o", "", "Output directory (default SLIDEGEN_OUTPUT_DIR)")
	flags.StringSliceVarP(&templateIDs, "template", "t", nil, "Template ids to render each article with")
	flags.StringVar(&baseURL, "base-url", "", "Base URL for resolving relative links in the articles")
	return cmd
}
