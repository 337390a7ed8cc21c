package dataset

import (
	"sort"
	"time"
)

// DailyRow is the per-day rollup across all services.
type DailyRow struct {
	Day        time.Time
	TotalUsage float64
	TotalCost  float64
	Incidents  int
	AvgSLA     float64
}

// ServiceRow is the per-service rollup across the whole period.
type ServiceRow struct {
	Service    string
	TotalUsage float64
	Incidents  int
	AvgSLA     float64
}

// Daily aggregates the table by day: usage, cost, and incidents are summed,
// SLA is averaged over the day's rows. The result is sorted by day.
func (t *Table) Daily() []DailyRow {
	type acc struct {
		DailyRow
		n int
	}
	byDay := make(map[time.Time]*acc)
	for _, r := range t.Rows {
		a, ok := byDay[r.Day]
		if !ok {
			a = &acc{DailyRow: DailyRow{Day: r.Day}}
			byDay[r.Day] = a
		}
		a.TotalUsage += r.Usage
		a.TotalCost += r.CostGBP
		a.Incidents += r.Incidents
		a.AvgSLA += r.SLAPct
		a.n++
	}

	out := make([]DailyRow, 0, len(byDay))
	for _, a := range byDay {
		a.AvgSLA /= float64(a.n)
		out = append(out, a.DailyRow)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day.Before(out[j].Day) })
	return out
}

// PerService aggregates the table by service, sorted by total usage
// descending (ties broken by name for determinism).
func (t *Table) PerService() []ServiceRow {
	type acc struct {
		ServiceRow
		n int
	}
	bySvc := make(map[string]*acc)
	for _, r := range t.Rows {
		a, ok := bySvc[r.Service]
		if !ok {
			a = &acc{ServiceRow: ServiceRow{Service: r.Service}}
			bySvc[r.Service] = a
		}
		a.TotalUsage += r.Usage
		a.Incidents += r.Incidents
		a.AvgSLA += r.SLAPct
		a.n++
	}

	out := make([]ServiceRow, 0, len(bySvc))
	for _, a := range bySvc {
		a.AvgSLA /= float64(a.n)
		out = append(out, a.ServiceRow)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalUsage != out[j].TotalUsage {
			return out[i].TotalUsage > out[j].TotalUsage
		}
		return out[i].Service < out[j].Service
	})
	return out
}
