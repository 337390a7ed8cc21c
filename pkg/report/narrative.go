package report

import (
	"fmt"

	"github.com/insightdeck/insightdeck/pkg/dataset"
)

// Thresholds for the risk narrative.
const (
	slaRiskThreshold      = 99.5
	incidentRiskThreshold = 120
	momentumWindow        = 7
	momentumMinDays       = 2 * momentumWindow
)

// Section headings in their fixed appendix order.
const (
	SectionInsights = "Key Insights"
	SectionRisks    = "Key Risks"
	SectionActions  = "Recommended Actions"
	SectionMethod   = "Method Notes"
)

// buildNarrative produces the four appendix sections from the computed
// metrics. The text is deterministic: same input, same bullets.
func buildNarrative(m Metrics, daily []dataset.DailyRow, services []dataset.ServiceRow) []TextSection {
	return []TextSection{
		{Heading: SectionInsights, Bullets: insightBullets(m, daily, services)},
		{Heading: SectionRisks, Bullets: riskBullets(m)},
		{Heading: SectionActions, Bullets: actionBullets()},
		{Heading: SectionMethod, Bullets: methodBullets()},
	}
}

func insightBullets(m Metrics, daily []dataset.DailyRow, services []dataset.ServiceRow) []string {
	bullets := []string{
		fmt.Sprintf("Adoption: usage %s across the period.", FormatSignedPct(m.UsageGrowthPct, 1)),
		fmt.Sprintf("Spend: cost %s (monitor cost-to-consumption).", FormatSignedPct(m.CostGrowthPct, 1)),
		fmt.Sprintf("Reliability: latest SLA %s vs overall %s.", FormatPct(m.SLALatest, 3), FormatPct(m.AvgSLA, 3)),
		momentumBullet(daily),
		fmt.Sprintf("Operations: %d incidents logged across the period.", m.TotalIncidents),
	}

	if drivers := driverBullets(services); len(drivers) > 0 {
		bullets = append(bullets, "Top drivers: "+drivers[0])
		for _, d := range drivers[1:] {
			bullets = append(bullets, "Additional driver: "+d)
		}
	}
	return bullets
}

// momentumBullet compares the trailing week's mean usage against the week
// before it. With fewer than two full weeks of history there is no signal.
func momentumBullet(daily []dataset.DailyRow) string {
	if len(daily) < momentumMinDays {
		return fmt.Sprintf("Momentum: insufficient history for week-over-week signal (needs ≥%d days).", momentumMinDays)
	}

	mean := func(rows []dataset.DailyRow) float64 {
		var sum float64
		for _, r := range rows {
			sum += r.TotalUsage
		}
		return sum / float64(len(rows))
	}

	last := mean(daily[len(daily)-momentumWindow:])
	prev := mean(daily[len(daily)-momentumMinDays : len(daily)-momentumWindow])

	var wow float64
	if prev != 0 {
		wow = (last - prev) / prev * 100
	}
	return fmt.Sprintf("Momentum: last 7-day avg %s vs prior %s (%s).",
		FormatCount(last), FormatCount(prev), FormatSignedPct(wow, 1))
}

// driverBullets describes up to three services by usage share.
func driverBullets(services []dataset.ServiceRow) []string {
	if len(services) == 0 {
		return nil
	}

	var total float64
	for _, s := range services {
		total += s.TotalUsage
	}
	if total == 0 {
		total = 1
	}

	n := len(services)
	if n > 3 {
		n = 3
	}
	out := make([]string, 0, n)
	for _, s := range services[:n] {
		share := s.TotalUsage / total * 100
		out = append(out, fmt.Sprintf("%s: %.0f%% usage share, %d incidents, SLA %s",
			s.Service, share, s.Incidents, FormatPct(s.AvgSLA, 3)))
	}
	return out
}

func riskBullets(m Metrics) []string {
	var bullets []string

	if m.SLALatest < slaRiskThreshold {
		bullets = append(bullets, "SLA below threshold; customer impact risk if trend persists.")
	} else {
		bullets = append(bullets, "SLA within tolerance; continue proactive monitoring and post-deploy checks.")
	}

	if m.TotalIncidents > incidentRiskThreshold {
		bullets = append(bullets, "Incident volume elevated; risk of response fatigue and delivery drag.")
	} else {
		bullets = append(bullets, "Incident volume manageable; keep RCA cadence and clear ownership for top drivers.")
	}
	return bullets
}

func actionBullets() []string {
	return []string{
		"Implement weekly cost-to-consumption governance and anomaly alerting.",
		"Run RCA on top incident drivers; add preventive checks in deployment gates.",
		"Introduce service-level SLOs per domain with clear owners and escalation paths.",
		"Publish a 5-minute exec snapshot weekly (WoW usage, SLA, incidents, cost).",
	}
}

func methodBullets() []string {
	return []string{
		"Input: CSV with day/service/usage/cost/incidents/SLA, validated on load.",
		"Daily aggregation feeds the trend chart and KPI rollups.",
		"Chart and text are auto-fitted into fixed regions (no overflow).",
		"Narrative is deterministic today; the generator is swappable.",
	}
}
