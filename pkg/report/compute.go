package report

import (
	"time"

	"github.com/insightdeck/insightdeck/pkg/dataset"
)

// Metrics holds the scalar rollups computed from a dataset.
type Metrics struct {
	TotalCost      float64 `json:"total_cost"`
	TotalUsage     float64 `json:"total_usage"`
	AvgSLA         float64 `json:"avg_sla"`
	SLALatest      float64 `json:"sla_latest"`
	TotalIncidents int     `json:"total_incidents"`
	UsageGrowthPct float64 `json:"usage_growth_pct"`
	CostGrowthPct  float64 `json:"cost_growth_pct"`
}

// Analysis is everything the deck needs from one dataset: KPI tiles for the
// summary slide, the trend series for the chart, and narrative sections for
// the appendix.
type Analysis struct {
	Metrics  Metrics       `json:"metrics"`
	KPIs     []KPI         `json:"kpis"`
	Series   Series        `json:"series"`
	Sections []TextSection `json:"sections"`
	From     time.Time     `json:"from"`
	To       time.Time     `json:"to"`
}

// Analyze computes KPIs, the daily usage series, and the narrative from a
// validated table. The table is guaranteed non-empty by the dataset package,
// so Analyze cannot fail.
func Analyze(t *dataset.Table) *Analysis {
	daily := t.Daily()
	services := t.PerService()

	m := computeMetrics(daily)
	series := make(Series, len(daily))
	for i, d := range daily {
		series[i] = Point{T: d.Day, V: d.TotalUsage}
	}

	a := &Analysis{
		Metrics: m,
		KPIs:    buildKPIs(m),
		Series:  series,
		From:    daily[0].Day,
		To:      daily[len(daily)-1].Day,
	}
	a.Sections = buildNarrative(m, daily, services)
	return a
}

func computeMetrics(daily []dataset.DailyRow) Metrics {
	var m Metrics
	for _, d := range daily {
		m.TotalCost += d.TotalCost
		m.TotalUsage += d.TotalUsage
		m.AvgSLA += d.AvgSLA
		m.TotalIncidents += d.Incidents
	}
	m.AvgSLA /= float64(len(daily))

	first, last := daily[0], daily[len(daily)-1]
	m.SLALatest = last.AvgSLA
	if first.TotalUsage != 0 {
		m.UsageGrowthPct = (last.TotalUsage - first.TotalUsage) / first.TotalUsage * 100
	}
	if first.TotalCost != 0 {
		m.CostGrowthPct = (last.TotalCost - first.TotalCost) / first.TotalCost * 100
	}
	return m
}

// buildKPIs assembles the fixed ordered tile set for the summary slide.
func buildKPIs(m Metrics) []KPI {
	return []KPI{
		{Label: "Total Cost", Value: FormatGBP(m.TotalCost), Hint: "period total"},
		{Label: "Total Usage", Value: FormatCount(m.TotalUsage), Unit: "units", Hint: "period total"},
		{Label: "Avg SLA", Value: FormatPct(m.AvgSLA, 2), Hint: "target ≥ 99.7%"},
		{Label: "Incidents", Value: FormatCount(float64(m.TotalIncidents)), Hint: "total volume"},
	}
}
