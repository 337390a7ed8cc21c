package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/insightdeck/insightdeck/pkg/cache"
	"github.com/insightdeck/insightdeck/pkg/errors"
)

const sampleCSV = `day,service,usage_units,cost_gbp,incidents,sla_pct
2026-03-01,api,1000,120.50,1,99.95
2026-03-01,batch,400,80.00,0,99.99
2026-03-02,api,1100,130.25,0,99.97
2026-03-02,batch,420,82.10,1,99.90
2026-03-03,api,1250,140.75,0,99.98
2026-03-03,batch,430,84.60,0,99.95
`

func TestExecuteEndToEnd(t *testing.T) {
	runner := NewRunner(nil, nil, nil)

	result, err := runner.Execute(context.Background(), strings.NewReader(sampleCSV), Options{
		Formats: []string{"svg", "json"},
	})
	if err != nil {
		t.Fatal(err)
	}

	if result.Stats.Rows != 6 || result.Stats.Days != 3 {
		t.Errorf("stats rows=%d days=%d, want 6 and 3", result.Stats.Rows, result.Stats.Days)
	}
	if len(result.Document.Slides) != 2 {
		t.Errorf("got %d slides, want 2", len(result.Document.Slides))
	}
	if len(result.Artifacts["svg"]) == 0 || len(result.Artifacts["json"]) == 0 {
		t.Error("missing rendered artifacts")
	}
	if result.DatasetHash == "" || result.AnalysisHash == "" || result.DocumentHash == "" {
		t.Error("missing content hashes")
	}
	if result.CacheInfo.AnalyzeHit || result.CacheInfo.AssembleHit || result.CacheInfo.RenderHit {
		t.Error("cold run reported cache hits")
	}
}

func TestExecuteIdempotent(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	ctx := context.Background()

	first, err := runner.Execute(ctx, strings.NewReader(sampleCSV), Options{Formats: []string{"json"}})
	if err != nil {
		t.Fatal(err)
	}
	second, err := runner.Execute(ctx, strings.NewReader(sampleCSV), Options{Formats: []string{"json"}})
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(first.Artifacts["json"], second.Artifacts["json"]) {
		t.Error("identical inputs produced different JSON artifacts")
	}
	if first.DocumentHash != second.DocumentHash {
		t.Error("identical inputs produced different document hashes")
	}
}

func TestExecuteUsesCache(t *testing.T) {
	fileCache, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer fileCache.Close()

	runner := NewRunner(fileCache, nil, nil)
	ctx := context.Background()
	opts := Options{Formats: []string{"svg"}}

	cold, err := runner.Execute(ctx, strings.NewReader(sampleCSV), opts)
	if err != nil {
		t.Fatal(err)
	}
	warm, err := runner.Execute(ctx, strings.NewReader(sampleCSV), opts)
	if err != nil {
		t.Fatal(err)
	}

	if !warm.CacheInfo.AnalyzeHit || !warm.CacheInfo.AssembleHit || !warm.CacheInfo.RenderHit {
		t.Errorf("warm run missed cache: %+v", warm.CacheInfo)
	}
	if !bytes.Equal(cold.Artifacts["svg"], warm.Artifacts["svg"]) {
		t.Error("cached artifact differs from rendered artifact")
	}

	refreshed, err := runner.Execute(ctx, strings.NewReader(sampleCSV), Options{Formats: []string{"svg"}, Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if refreshed.CacheInfo.AnalyzeHit || refreshed.CacheInfo.RenderHit {
		t.Error("refresh run should bypass cache reads")
	}
}

func TestExecuteRejectsBadInput(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	ctx := context.Background()

	_, err := runner.Execute(ctx, strings.NewReader("not,a,valid,dataset\n1,2,3,4\n"), Options{})
	if errors.GetCode(err) != errors.ErrCodeInvalidDataset {
		t.Errorf("got %v, want INVALID_DATASET", err)
	}

	_, err = runner.Execute(ctx, strings.NewReader(sampleCSV), Options{Formats: []string{"pptx"}})
	if errors.GetCode(err) != errors.ErrCodeInvalidFormat {
		t.Errorf("got %v, want INVALID_FORMAT", err)
	}
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "insightdeck.toml")
	content := "[canvas]\nwidth = 1920.0\nheight = 1080.0\n\n[tiles]\nmax_tiles = 8\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Canvas.Width != 1920 || cfg.Canvas.Height != 1080 {
		t.Errorf("canvas %vx%v, want 1920x1080", cfg.Canvas.Width, cfg.Canvas.Height)
	}
	if cfg.Tiles.MaxTiles != 8 {
		t.Errorf("max tiles %d, want 8", cfg.Tiles.MaxTiles)
	}
	// Untouched sections keep their defaults.
	if cfg.Text.Columns != 2 {
		t.Errorf("text columns %d, want default 2", cfg.Text.Columns)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	if errors.GetCode(err) != errors.ErrCodeInvalidConfig {
		t.Fatalf("got %v, want INVALID_CONFIG", err)
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "pdf"}); err != nil {
		t.Errorf("valid formats rejected: %v", err)
	}
	if err := ValidateFormats([]string{"docx"}); errors.GetCode(err) != errors.ErrCodeInvalidFormat {
		t.Errorf("got %v, want INVALID_FORMAT", err)
	}
	if err := ValidateFormats(nil); errors.GetCode(err) != errors.ErrCodeInvalidFormat {
		t.Errorf("got %v, want INVALID_FORMAT", err)
	}
}
