package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/insightdeck/insightdeck/pkg/deck/sink"
	"github.com/insightdeck/insightdeck/pkg/pipeline"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	output      string   // output file path (single format) or base path (multiple)
	formats     []string // output formats: svg, json, png, pdf
	configPath  string   // optional TOML layout config
	title       string   // summary slide title
	chartTitle  string   // trend chart title
	footer      string   // footer text on both slides
	pngScale    float64  // raster scale factor for PNG output
	noCache     bool     // disable the stage cache entirely
	refresh     bool     // bypass cache reads, recompute, write back
	interactive bool     // pick output formats interactively
}

// generateCommand creates the generate command: CSV in, deck artifacts out.
func (c *CLI) generateCommand() *cobra.Command {
	var formatsStr string
	opts := generateOpts{}

	cmd := &cobra.Command{
		Use:   "generate <csv>",
		Short: "Generate a two-slide deck from a usage CSV",
		Long: `Generate ingests a usage/cost CSV export and produces a two-slide deck:
a summary slide with KPI tiles and the daily trend chart, and an appendix
slide with method and findings. Output formats: svg (default), json, png,
pdf, and chart-png (the trend chart alone, rasterized without librsvg).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if opts.interactive {
				picked, err := pickFormats(opts.formats)
				if err != nil {
					return err
				}
				if picked == nil {
					printInfo("Aborted")
					return nil
				}
				opts.formats = picked
			}
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runGenerate(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "formats", "f", "", "output format(s): svg (default), json, png, pdf, chart-png (comma-separated)")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "TOML layout configuration file")
	cmd.Flags().StringVar(&opts.title, "title", "", "summary slide title")
	cmd.Flags().StringVar(&opts.chartTitle, "chart-title", "", "trend chart title")
	cmd.Flags().StringVar(&opts.footer, "footer", "", "footer text")
	cmd.Flags().Float64Var(&opts.pngScale, "png-scale", 0, "PNG raster scale factor")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the stage cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute all stages, ignoring cached results")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "pick output formats interactively")

	return cmd
}

// runGenerate runs the pipeline on the input CSV and writes the artifacts.
func (c *CLI) runGenerate(ctx context.Context, input string, opts *generateOpts) error {
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}

	pipeOpts := pipeline.Options{
		Title:      opts.title,
		ChartTitle: opts.chartTitle,
		Footer:     opts.footer,
		Formats:    opts.formats,
		PNGScale:   opts.pngScale,
		Refresh:    opts.refresh,
		Logger:     logger,
	}
	if opts.configPath != "" {
		cfg, err := pipeline.LoadConfig(opts.configPath)
		if err != nil {
			return err
		}
		cfg.Apply(&pipeOpts)
		logger.Debugf("Loaded layout config from %s", opts.configPath)
	}

	f, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Building deck from %s", filepath.Base(input)))
	spinner.Start()

	result, err := runner.Execute(ctx, f, pipeOpts)
	spinner.Stop()
	if spinner.Cancelled() {
		return ctx.Err()
	}
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Deck assembled (%d slides)", len(result.Document.Slides)))

	base := basePath(opts.output, input)
	for _, name := range opts.formats {
		format, err := sink.ParseFormat(name)
		if err != nil {
			return err
		}
		path := outputPath(base, opts.output, format, len(opts.formats))
		if err := writeArtifact(path, result.Artifacts[string(format)]); err != nil {
			return err
		}
		printFile(path)
	}

	printKPITable(result.Analysis.KPIs)
	allCached := result.CacheInfo.AnalyzeHit && result.CacheInfo.AssembleHit && result.CacheInfo.RenderHit
	printRunStats(result.Stats.Rows, result.Stats.Days, allCached)
	printSuccess("Generated %d artifact(s)", len(opts.formats))
	printDetail("document %s", result.DocumentHash[:12])
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input. If output carries a
// known format extension, that extension is stripped too.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := strings.TrimPrefix(filepath.Ext(output), ".")
	if _, err := sink.ParseFormat(ext); err == nil {
		return strings.TrimSuffix(output, "."+ext)
	}
	return output
}

// outputPath builds the output file name for one format. A single format with
// an explicit --output keeps the user's path verbatim.
func outputPath(base, explicit string, format sink.Format, nFormats int) string {
	if nFormats == 1 && explicit != "" && filepath.Ext(explicit) != "" {
		return explicit
	}
	return base + format.Ext()
}

// writeArtifact writes data to path, creating parent directories as needed.
func writeArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
