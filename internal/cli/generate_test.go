package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleCSV = `day,service,usage_units,cost_gbp,incidents,sla_pct
2026-03-01,api,1000,120.50,1,99.95
2026-03-01,batch,400,80.00,0,99.99
2026-03-02,api,1100,130.25,0,99.97
2026-03-02,batch,420,82.10,1,99.90
2026-03-03,api,1250,140.75,0,99.98
2026-03-03,batch,430,84.60,0,99.95
`

func writeSampleCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "usage.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.Execute()
}

func TestGenerateWritesSVG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	input := writeSampleCSV(t)
	out := filepath.Join(t.TempDir(), "deck.svg")

	if err := execute(t, "generate", input, "-o", out, "--no-cache"); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<svg") {
		t.Error("output should be an SVG document")
	}
}

func TestGenerateMultipleFormats(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	input := writeSampleCSV(t)
	base := filepath.Join(t.TempDir(), "deck")

	err := execute(t, "generate", input, "-o", base, "-f", "svg,json", "--no-cache")
	if err != nil {
		t.Fatal(err)
	}

	for _, ext := range []string{".svg", ".json"} {
		if _, err := os.Stat(base + ext); err != nil {
			t.Errorf("expected artifact %s: %v", base+ext, err)
		}
	}
}

func TestGenerateDefaultsOutputToInputName(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	dir := t.TempDir()
	input := filepath.Join(dir, "march.csv")
	if err := os.WriteFile(input, []byte(sampleCSV), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := execute(t, "generate", input, "--no-cache"); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(filepath.Join(dir, "march.svg")); err != nil {
		t.Errorf("expected march.svg next to input: %v", err)
	}
}

func TestGenerateRejectsBadFormat(t *testing.T) {
	input := writeSampleCSV(t)

	if err := execute(t, "generate", input, "-f", "pptx"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestGenerateMissingInput(t *testing.T) {
	if err := execute(t, "generate", filepath.Join(t.TempDir(), "nope.csv"), "--no-cache"); err == nil {
		t.Fatal("expected error for missing input file")
	}
}

func TestGenerateUsesConfigFile(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	input := writeSampleCSV(t)
	dir := t.TempDir()

	cfgPath := filepath.Join(dir, "layout.toml")
	cfg := "[canvas]\nwidth = 1920.0\nheight = 1080.0\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "deck.json")
	err := execute(t, "generate", input, "-o", out, "-f", "json", "--config", cfgPath, "--no-cache")
	if err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "1920") {
		t.Error("config canvas width should show up in the layout document")
	}
}
