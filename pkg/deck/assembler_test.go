package deck

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/insightdeck/insightdeck/pkg/canvas"
	"github.com/insightdeck/insightdeck/pkg/errors"
	"github.com/insightdeck/insightdeck/pkg/report"
)

func testInputs() (SummaryInputs, AppendixInputs) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	series := make(report.Series, 14)
	for i := range series {
		series[i] = report.Point{T: start.AddDate(0, 0, i), V: float64(1000 + 20*i)}
	}

	summary := SummaryInputs{
		Title:    "Usage & Cost Summary",
		Subtitle: "2026-03-01 to 2026-03-14",
		Footer:   "Generated by insightdeck",
		KPIs: []report.KPI{
			{Label: "Total Cost", Value: "£410.50"},
			{Label: "Total Usage", Value: "1,900"},
			{Label: "Avg SLA", Value: "99.92%"},
			{Label: "Incidents", Value: "2"},
		},
		Series:     series,
		ChartTitle: "Daily usage",
	}
	appendix := AppendixInputs{
		Title: "Appendix",
		Sections: []report.TextSection{
			{Heading: "Key Insights", Bullets: []string{"Usage grew steadily."}},
			{Heading: "Key Risks", Bullets: []string{"None material."}},
			{Heading: "Recommended Actions", Bullets: []string{"Keep monitoring."}},
			{Heading: "Method Notes", Bullets: []string{"Daily aggregation."}},
		},
	}
	return summary, appendix
}

func TestAssembleTwoSlides(t *testing.T) {
	summary, appendix := testInputs()

	doc, err := New().Assemble(summary, appendix)
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Slides) != 2 {
		t.Fatalf("got %d slides, want 2", len(doc.Slides))
	}
	if doc.Slides[0].Kind != canvas.SlideSummary || doc.Slides[1].Kind != canvas.SlideAppendix {
		t.Errorf("slide kinds %v, %v", doc.Slides[0].Kind, doc.Slides[1].Kind)
	}

	counts := map[ElementKind]int{}
	for _, el := range doc.Slides[0].Elements {
		counts[el.Kind]++
	}
	if counts[ElementTile] != 4 {
		t.Errorf("summary slide has %d tiles, want 4", counts[ElementTile])
	}
	if counts[ElementChart] != 1 {
		t.Errorf("summary slide has %d charts, want 1", counts[ElementChart])
	}
	if counts[ElementTitle] != 1 || counts[ElementAccentBar] != 1 || counts[ElementFooter] != 1 {
		t.Errorf("summary chrome incomplete: %v", counts)
	}

	sections := 0
	for _, el := range doc.Slides[1].Elements {
		if el.Kind == ElementSection {
			sections++
		}
	}
	if sections != 4 {
		t.Errorf("appendix has %d sections, want 4", sections)
	}
}

func TestAssembleElementsStayOnCanvas(t *testing.T) {
	summary, appendix := testInputs()
	spec := canvas.DefaultSpec()

	doc, err := New(WithCanvas(spec)).Assemble(summary, appendix)
	if err != nil {
		t.Fatal(err)
	}

	page := canvas.Region{W: spec.Width, H: spec.Height}
	for si, slide := range doc.Slides {
		for ei, el := range slide.Elements {
			if !page.Contains(el.Rect) {
				t.Errorf("slide %d element %d (%s) escapes the canvas: %+v", si, ei, el.Kind, el.Rect)
			}
		}
	}
}

func TestAssembleAllOrNothing(t *testing.T) {
	summary, appendix := testInputs()
	summary.Series = nil // chart layout will fail

	_, err := New().Assemble(summary, appendix)
	if errors.GetCode(err) != errors.ErrCodeLayoutFailed {
		t.Fatalf("got %v, want LAYOUT_FAILED", err)
	}
	if !errors.Is(err, errors.ErrCodeEmptySeries) {
		t.Errorf("cause EMPTY_SERIES not preserved: %v", err)
	}
}

func TestAssembleIdempotent(t *testing.T) {
	summary, appendix := testInputs()

	first, err := New().Assemble(summary, appendix)
	if err != nil {
		t.Fatal(err)
	}
	second, err := New().Assemble(summary, appendix)
	if err != nil {
		t.Fatal(err)
	}

	a, err := json.Marshal(first)
	if err != nil {
		t.Fatal(err)
	}
	b, err := json.Marshal(second)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("repeated assemblies are not byte-identical")
	}
}
