// Package pipeline runs the complete ingest → analyze → assemble → render
// flow behind both the CLI and the HTTP API. Centralizing it here keeps
// caching and stage behavior identical across entry points.
//
// Usage:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, csvReader, pipeline.Options{
//	    Formats: []string{"svg"},
//	})
//	svg := result.Artifacts["svg"]
//
// The Runner is stateless apart from its cache and logger; one Runner can
// serve concurrent requests with different options.
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/insightdeck/insightdeck/pkg/canvas"
	"github.com/insightdeck/insightdeck/pkg/chart"
	"github.com/insightdeck/insightdeck/pkg/deck"
	"github.com/insightdeck/insightdeck/pkg/deck/sink"
	"github.com/insightdeck/insightdeck/pkg/errors"
	"github.com/insightdeck/insightdeck/pkg/layout"
	"github.com/insightdeck/insightdeck/pkg/report"
)

// Defaults shared by CLI and API.
const (
	DefaultTitle      = "Usage & Cost Summary"
	DefaultAppendix   = "Appendix — Method & Findings"
	DefaultChartTitle = "Daily usage"
)

// DefaultFormats is what Execute renders when no formats are requested.
var DefaultFormats = []string{string(sink.FormatSVG)}

// Options configures one pipeline run. The zero value is usable: defaults
// are applied by Execute.
type Options struct {
	// Deck content.
	Title      string `json:"title,omitempty"`
	ChartTitle string `json:"chart_title,omitempty"`
	Footer     string `json:"footer,omitempty"`

	// Output formats (svg, json, png, pdf) and PNG scale factor.
	Formats  []string `json:"formats,omitempty"`
	PNGScale float64  `json:"png_scale,omitempty"`

	// Refresh bypasses cache reads (results are still written back).
	Refresh bool `json:"refresh,omitempty"`

	// Layout configuration. Zero values mean package defaults.
	Canvas *canvas.Spec        `json:"-"`
	Tiles  *layout.TileOptions `json:"-"`
	Text   *layout.TextOptions `json:"-"`
	Chart  *chart.Options      `json:"-"`
	Logger *log.Logger         `json:"-"`
}

// setDefaults fills unset fields. Idempotent.
func (o *Options) setDefaults() error {
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.ChartTitle == "" {
		o.ChartTitle = DefaultChartTitle
	}
	if len(o.Formats) == 0 {
		o.Formats = DefaultFormats
	}
	if o.PNGScale <= 0 {
		o.PNGScale = sink.DefaultPNGScale
	}
	for _, f := range o.Formats {
		if _, err := sink.ParseFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// assemblerOptions translates the configured layout overrides into deck
// assembler options.
func (o *Options) assemblerOptions() []deck.Option {
	var opts []deck.Option
	if o.Canvas != nil {
		opts = append(opts, deck.WithCanvas(*o.Canvas))
	}
	if o.Tiles != nil {
		opts = append(opts, deck.WithTileOptions(*o.Tiles))
	}
	if o.Text != nil {
		opts = append(opts, deck.WithTextOptions(*o.Text))
	}
	if o.Chart != nil {
		opts = append(opts, deck.WithChartOptions(*o.Chart))
	}
	return opts
}

// Result is the output of one pipeline run.
type Result struct {
	// Analysis is the computed content (KPIs, series, narrative).
	Analysis *report.Analysis

	// Document is the assembled two-slide deck.
	Document *deck.Document

	// Hashes fingerprint intermediate results for cache keys and clients.
	DatasetHash  string
	AnalysisHash string
	DocumentHash string

	// Artifacts holds rendered outputs keyed by format name.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats carries timing and size information for one run.
type Stats struct {
	Rows         int
	Days         int
	IngestTime   time.Duration
	AnalyzeTime  time.Duration
	AssembleTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks which stages were served from cache.
type CacheInfo struct {
	AnalyzeHit  bool
	AssembleHit bool
	RenderHit   bool
}

// ValidateFormats checks a format list without running the pipeline. The
// CLI uses this for early flag validation.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if _, err := sink.ParseFormat(f); err != nil {
			return err
		}
	}
	if len(formats) == 0 {
		return errors.New(errors.ErrCodeInvalidFormat, "at least one output format is required")
	}
	return nil
}
