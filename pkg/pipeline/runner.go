package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/insightdeck/insightdeck/pkg/cache"
	"github.com/insightdeck/insightdeck/pkg/dataset"
	"github.com/insightdeck/insightdeck/pkg/deck"
	"github.com/insightdeck/insightdeck/pkg/deck/sink"
	"github.com/insightdeck/insightdeck/pkg/errors"
	"github.com/insightdeck/insightdeck/pkg/report"
)

// Runner executes the pipeline with caching. It is stateless apart from the
// cache and logger, so one Runner can serve concurrent runs.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// uses the default key derivation, a nil logger uses the global logger.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs ingest → analyze → assemble → render over one CSV dataset.
func (r *Runner) Execute(ctx context.Context, csv io.Reader, opts Options) (*Result, error) {
	if err := opts.setDefaults(); err != nil {
		return nil, err
	}
	logger := r.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	}

	raw, err := io.ReadAll(csv)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "reading dataset")
	}

	result := &Result{
		DatasetHash: cache.Hash(raw),
		Artifacts:   make(map[string][]byte),
	}

	ingestStart := time.Now()
	table, err := dataset.Read(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	result.Stats.IngestTime = time.Since(ingestStart)
	result.Stats.Rows = len(table.Rows)

	analyzeStart := time.Now()
	analysis, analyzeHit, err := r.analyze(ctx, table, result.DatasetHash, opts.Refresh)
	if err != nil {
		return nil, err
	}
	result.Analysis = analysis
	result.CacheInfo.AnalyzeHit = analyzeHit
	result.Stats.AnalyzeTime = time.Since(analyzeStart)
	result.Stats.Days = len(analysis.Series)

	analysisData, err := json.Marshal(analysis)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshaling analysis")
	}
	result.AnalysisHash = cache.Hash(analysisData)

	logger.Info("analyzed dataset",
		"rows", result.Stats.Rows,
		"days", result.Stats.Days,
		"cached", analyzeHit,
		"duration", result.Stats.AnalyzeTime)

	assembleStart := time.Now()
	doc, assembleHit, err := r.assemble(ctx, analysis, result.AnalysisHash, opts)
	if err != nil {
		return nil, err
	}
	result.Document = doc
	result.CacheInfo.AssembleHit = assembleHit
	result.Stats.AssembleTime = time.Since(assembleStart)

	docData, err := json.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshaling document")
	}
	result.DocumentHash = cache.Hash(docData)

	logger.Info("assembled deck",
		"slides", len(doc.Slides),
		"cached", assembleHit,
		"duration", result.Stats.AssembleTime)

	renderStart := time.Now()
	artifacts, renderHit, err := r.render(ctx, doc, result.DocumentHash, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = renderHit
	result.Stats.RenderTime = time.Since(renderStart)

	logger.Info("rendered artifacts",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// analyze computes the analysis, consulting the cache keyed by the dataset
// content hash.
func (r *Runner) analyze(ctx context.Context, table *dataset.Table, datasetHash string, refresh bool) (*report.Analysis, bool, error) {
	key := r.Keyer.AnalysisKey(datasetHash)

	if !refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var cached report.Analysis
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, true, nil
			}
		}
	}

	analysis := report.Analyze(table)
	if data, err := json.Marshal(analysis); err == nil {
		_ = r.Cache.Set(ctx, key, data, cache.TTLAnalysis)
	}
	return analysis, false, nil
}

// assemble lays out the deck, consulting the cache keyed by the analysis
// hash and the layout configuration.
func (r *Runner) assemble(ctx context.Context, analysis *report.Analysis, analysisHash string, opts Options) (*deck.Document, bool, error) {
	canvasData, _ := json.Marshal(struct {
		Canvas interface{} `json:"canvas"`
		Tiles  interface{} `json:"tiles"`
		Text   interface{} `json:"text"`
		Chart  interface{} `json:"chart"`
	}{opts.Canvas, opts.Tiles, opts.Text, opts.Chart})

	key := r.Keyer.DocumentKey(analysisHash, cache.DocumentKeyOpts{
		CanvasHash: cache.Hash(canvasData),
		Title:      opts.Title,
	})

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var cached deck.Document
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, true, nil
			}
		}
	}

	doc, err := deck.New(opts.assemblerOptions()...).Assemble(summaryInputs(analysis, opts), appendixInputs(analysis))
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(doc); err == nil {
		_ = r.Cache.Set(ctx, key, data, cache.TTLDocument)
	}
	return doc, false, nil
}

// render serializes the document into every requested format, consulting
// the artifact cache per format.
func (r *Runner) render(ctx context.Context, doc *deck.Document, documentHash string, opts Options) (map[string][]byte, bool, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	allHit := true

	for _, name := range opts.Formats {
		format, err := sink.ParseFormat(name)
		if err != nil {
			return nil, false, err
		}

		key := r.Keyer.ArtifactKey(documentHash, cache.ArtifactKeyOpts{
			Format: string(format),
			Scale:  pngScaleFor(format, opts.PNGScale),
		})

		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				artifacts[string(format)] = data
				continue
			}
		}
		allHit = false

		data, err := sink.Render(ctx, doc, format, opts.PNGScale)
		if err != nil {
			return nil, false, err
		}
		artifacts[string(format)] = data
		_ = r.Cache.Set(ctx, key, data, cache.TTLArtifact)
	}

	return artifacts, allHit, nil
}

// pngScaleFor keeps the scale out of cache keys for formats it cannot
// affect.
func pngScaleFor(f sink.Format, scale float64) float64 {
	if f == sink.FormatPNG || f == sink.FormatChartPNG {
		return scale
	}
	return 0
}

func summaryInputs(a *report.Analysis, opts Options) deck.SummaryInputs {
	footer := opts.Footer
	if footer == "" {
		footer = fmt.Sprintf("insightdeck · %s to %s", a.From.Format("2006-01-02"), a.To.Format("2006-01-02"))
	}
	return deck.SummaryInputs{
		Title:      opts.Title,
		Subtitle:   fmt.Sprintf("%s to %s", a.From.Format("2006-01-02"), a.To.Format("2006-01-02")),
		Footer:     footer,
		KPIs:       a.KPIs,
		Series:     a.Series,
		ChartTitle: opts.ChartTitle,
	}
}

func appendixInputs(a *report.Analysis) deck.AppendixInputs {
	return deck.AppendixInputs{
		Title:    DefaultAppendix,
		Subtitle: "",
		Sections: a.Sections,
	}
}
