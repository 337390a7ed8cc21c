package report

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/insightdeck/insightdeck/pkg/dataset"
)

func day(d int) time.Time {
	return time.Date(2025, 6, d, 0, 0, 0, 0, time.UTC)
}

// tableFor builds a one-service table with the given number of days and a
// usage value per day index (1-based).
func tableFor(t *testing.T, days int, usage func(int) float64) *dataset.Table {
	t.Helper()
	var b strings.Builder
	b.WriteString("day,service,usage_units,cost_gbp,incidents,sla_pct\n")
	for i := 1; i <= days; i++ {
		fmt.Fprintf(&b, "%s,compute,%g,100.0,1,99.9\n", day(i).Format("2006-01-02"), usage(i))
	}
	table, err := dataset.Read(strings.NewReader(b.String()))
	if err != nil {
		t.Fatalf("building table: %v", err)
	}
	return table
}

func TestAnalyze(t *testing.T) {
	table := tableFor(t, 10, func(i int) float64 { return float64(1000 + 100*i) })
	a := Analyze(table)

	if len(a.KPIs) != 4 {
		t.Fatalf("got %d KPIs, want 4", len(a.KPIs))
	}
	if a.KPIs[0].Label != "Total Cost" || a.KPIs[3].Label != "Incidents" {
		t.Errorf("unexpected KPI order: %v, %v", a.KPIs[0].Label, a.KPIs[3].Label)
	}
	if a.KPIs[0].Value != "£1.0K" {
		t.Errorf("total cost = %q, want £1.0K", a.KPIs[0].Value)
	}

	if len(a.Series) != 10 {
		t.Fatalf("series length = %d, want 10", len(a.Series))
	}
	if a.Series[0].V != 1100 || a.Series[9].V != 2000 {
		t.Errorf("series endpoints = %g, %g", a.Series[0].V, a.Series[9].V)
	}

	// Growth from 1100 to 2000.
	want := (2000.0 - 1100.0) / 1100.0 * 100
	if diff := a.Metrics.UsageGrowthPct - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("usage growth = %g, want %g", a.Metrics.UsageGrowthPct, want)
	}
	if a.From != day(1) || a.To != day(10) {
		t.Errorf("window = %v..%v", a.From, a.To)
	}
}

func TestAnalyzeSectionsOrder(t *testing.T) {
	table := tableFor(t, 5, func(int) float64 { return 100 })
	a := Analyze(table)

	want := []string{SectionInsights, SectionRisks, SectionActions, SectionMethod}
	if len(a.Sections) != len(want) {
		t.Fatalf("got %d sections, want %d", len(a.Sections), len(want))
	}
	for i, s := range a.Sections {
		if s.Heading != want[i] {
			t.Errorf("section %d = %q, want %q", i, s.Heading, want[i])
		}
		if len(s.Bullets) == 0 {
			t.Errorf("section %q has no bullets", s.Heading)
		}
	}
}

func TestMomentumNeedsTwoWeeks(t *testing.T) {
	short := Analyze(tableFor(t, 10, func(int) float64 { return 100 }))
	found := false
	for _, b := range short.Sections[0].Bullets {
		if strings.Contains(b, "insufficient history") {
			found = true
		}
	}
	if !found {
		t.Error("10-day dataset should report insufficient momentum history")
	}

	long := Analyze(tableFor(t, 14, func(i int) float64 { return float64(100 * i) }))
	found = false
	for _, b := range long.Sections[0].Bullets {
		if strings.Contains(b, "last 7-day avg") {
			found = true
		}
	}
	if !found {
		t.Error("14-day dataset should report a week-over-week signal")
	}
}

func TestRollingMean(t *testing.T) {
	s := Series{
		{T: day(1), V: 10},
		{T: day(2), V: 20},
		{T: day(3), V: 30},
		{T: day(4), V: 40},
	}
	smooth := s.RollingMean(2)
	wantVals := []float64{10, 15, 25, 35}
	for i, w := range wantVals {
		if smooth[i].V != w {
			t.Errorf("smooth[%d] = %g, want %g", i, smooth[i].V, w)
		}
	}
}

func TestFormatGBP(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{42, "£42"},
		{999, "£999"},
		{1500, "£1.5K"},
		{2_340_000, "£2.34M"},
	}
	for _, tt := range tests {
		if got := FormatGBP(tt.in); got != tt.want {
			t.Errorf("FormatGBP(%g) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatCount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-123, "-123"},
		{-500, "-500"},
		{-1000, "-1,000"},
		{-1234567, "-1,234,567"},
	}
	for _, tt := range tests {
		if got := FormatCount(tt.in); got != tt.want {
			t.Errorf("FormatCount(%g) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
