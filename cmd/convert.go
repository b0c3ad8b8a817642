// Package cmd: convert command.
// This is the main command that orchestrates the pipeline:
// fetch → extract → convert → render → write.
//
// It handles flag validation, renderer selection and the --all batch mode.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/jj-sm/html2wikijs/batch"
	"github.com/jj-sm/html2wikijs/config"
	"github.com/jj-sm/html2wikijs/core"
	"github.com/jj-sm/html2wikijs/core/extract"
	"github.com/jj-sm/html2wikijs/core/fetch"
	"github.com/jj-sm/html2wikijs/core/output"
	"github.com/jj-sm/html2wikijs/core/render"
	"github.com/jj-sm/html2wikijs/core/wiki"
)

type convertFlags struct {
	all       bool
	format    string
	output    string
	outputDir string
	workers   int
}

func newConvertCmd() *cobra.Command {
	var flags convertFlags
	cmd := &cobra.Command{
		Use:   "convert <input>",
		Short: "Convert a Google Docs HTML export to Wiki.js markdown",
		Long: `Convert reads an HTML export (local file or published URL), interprets the
style rules of the export and writes Wiki.js markdown, a JSON structure
summary or a PDF preview.

Examples:
  html2wikijs convert Doc.html
  html2wikijs convert Doc.html --output wiki/page.md
  html2wikijs convert https://docs.google.com/document/d/e/.../pub --format json
  html2wikijs convert ./exports --all --output_dir ./wiki --workers 4`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args[0], flags)
		},
	}

	cmd.Flags().BoolVar(&flags.all, "all", false, "convert every HTML export below the input directory")
	cmd.Flags().StringVar(&flags.format, "format", "", "output format: markdown, json or pdf (default from config)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write the result to `FILE` (single document only)")
	cmd.Flags().StringVar(&flags.outputDir, "output_dir", "", "output `DIR` (default: config output.dir, then current directory)")
	cmd.Flags().IntVar(&flags.workers, "workers", 0, "parallel conversions in --all mode (default from config)")
	return cmd
}

// pipeline runs single documents through every stage.
type pipeline struct {
	log       *zap.Logger
	fetcher   core.Fetcher
	extractor core.Extractor
	converter core.Converter
	renderer  core.Renderer
	now       func() time.Time
}

func newPipeline(cfg *config.Config, log *zap.Logger, renderer core.Renderer) (*pipeline, error) {
	callouts, err := cfg.Convert.CalloutRules()
	if err != nil {
		return nil, err
	}
	return &pipeline{
		log:       log,
		fetcher:   fetch.New(),
		extractor: extract.New(),
		converter: wiki.New(
			wiki.WithLogger(log),
			wiki.WithCallouts(callouts...),
			wiki.WithCodeKeywords(cfg.Convert.CodeKeywords),
		),
		renderer: renderer,
		now:      time.Now,
	}, nil
}

// process converts the export at location and returns the rendered bytes.
func (p *pipeline) process(ctx context.Context, location string) ([]byte, core.DocumentMetadata, error) {
	result, err := p.fetcher.Fetch(ctx, location)
	if err != nil {
		return nil, core.DocumentMetadata{}, fmt.Errorf("fetch: %w", err)
	}

	doc, err := p.extractor.Extract(result.HTML)
	if err != nil {
		return nil, core.DocumentMetadata{}, fmt.Errorf("extract: %w", err)
	}
	// metadata first, conversion strips <head>
	meta := extract.Metadata(doc, result.Source)
	meta.ConvertedAt = p.now().UTC().Format(time.RFC3339)

	markup, err := p.converter.Convert(doc)
	if err != nil {
		return nil, meta, err
	}

	data, err := p.renderer.Render(markup, meta)
	if err != nil {
		return nil, meta, fmt.Errorf("render: %w", err)
	}
	return data, meta, nil
}

func runConvert(cmd *cobra.Command, input string, flags convertFlags) error {
	env := envFrom(cmd.Context())
	cfg, log := env.cfg, env.log.Named("convert")

	if err := applyFlags(cmd, cfg, flags); err != nil {
		return err
	}

	renderer, err := render.ForFormat(cfg.Output.Format)
	if err != nil {
		return err
	}
	p, err := newPipeline(cfg, log, renderer)
	if err != nil {
		return err
	}
	writer, err := output.New(cfg.Output.Dir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	if flags.all {
		return runAll(cmd, input, cfg.Batch.Workers, p, writer, log)
	}
	return runOnly(cmd, input, flags.output, p, writer)
}

// applyFlags lays explicitly set flags over the configuration.
func applyFlags(cmd *cobra.Command, cfg *config.Config, flags convertFlags) error {
	if flags.all && flags.output != "" {
		return errors.New("--output cannot be used with --all, use --output_dir")
	}
	if cmd.Flags().Changed("format") {
		cfg.Output.Format = flags.format
	}
	if cmd.Flags().Changed("output_dir") {
		cfg.Output.Dir = flags.outputDir
	}
	if cmd.Flags().Changed("workers") {
		cfg.Batch.Workers = flags.workers
	}
	return cfg.Validate()
}

// runOnly processes a single export.
func runOnly(cmd *cobra.Command, input, target string, p *pipeline, writer *output.Writer) error {
	data, meta, err := p.process(cmd.Context(), input)
	if err != nil {
		return err
	}

	var path string
	if target != "" {
		path, err = output.WriteFile(target, data)
	} else {
		path, err = writer.WriteNamed(output.NameFor(meta.Title, meta.Source), data, p.renderer.Extension())
	}
	if err != nil {
		return fmt.Errorf("write: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Written: %s\n", path)
	return nil
}

// runAll converts every export below root, mirroring its layout.
func runAll(cmd *cobra.Command, root string, workers int, p *pipeline, writer *output.Writer, log *zap.Logger) error {
	jobs, err := batch.Discover(root, log)
	if err != nil {
		return fmt.Errorf("discovering exports: %w", err)
	}
	if len(jobs) == 0 {
		return fmt.Errorf("no HTML exports found in %s", root)
	}
	log.Info("Converting exports", zap.Int("count", len(jobs)), zap.String("root", root))

	results, err := batch.NewRunner(log, workers).Run(cmd.Context(), jobs, func(ctx context.Context, job batch.Job) (string, error) {
		data, _, err := p.process(ctx, job.Path)
		if err != nil {
			return "", err
		}
		path, err := writer.WriteTree(job.Rel, data, p.renderer.Extension())
		if err != nil {
			return "", fmt.Errorf("write: %w", err)
		}
		return path, nil
	})

	for _, res := range results {
		if res.Err == nil {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Written: %s\n", res.Output)
		}
	}
	if err != nil {
		failed := len(multierr.Errors(err))
		return fmt.Errorf("%d/%d exports failed: %w", failed, len(jobs), err)
	}
	return nil
}
