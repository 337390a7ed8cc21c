// Package dataset loads and validates the tabular operational data that
// feeds deck generation.
//
// The expected input is a CSV file with one row per service per day:
//
//	day,service,usage_units,cost_gbp,incidents,sla_pct
//	2025-06-01,compute,1200,410.50,1,99.92
//
// Parsing is strict: missing columns, malformed dates, and non-numeric
// metrics reject the whole dataset with an INVALID_DATASET error naming the
// offending row. Downstream components receive a typed, day-sorted table.
package dataset

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/insightdeck/insightdeck/pkg/errors"
)

// Column names required in the input CSV, in no particular order.
const (
	ColDay      = "day"
	ColService  = "service"
	ColUsage    = "usage_units"
	ColCost     = "cost_gbp"
	ColIncident = "incidents"
	ColSLA      = "sla_pct"
)

// requiredColumns lists every column a valid dataset must carry.
var requiredColumns = []string{ColDay, ColService, ColUsage, ColCost, ColIncident, ColSLA}

// dayFormat is the accepted date layout for the day column.
const dayFormat = "2006-01-02"

// Row is one validated record: one service's metrics for one day.
type Row struct {
	Day       time.Time
	Service   string
	Usage     float64
	CostGBP   float64
	Incidents int
	SLAPct    float64
}

// Table is a validated dataset, sorted by day (stable within a day).
type Table struct {
	Rows []Row
}

// Read parses and validates a CSV dataset from r.
// The returned table is sorted by day; input order is preserved within a day.
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New(errors.ErrCodeInvalidDataset, "dataset is empty")
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "read CSV header")
	}

	cols, err := indexColumns(header)
	if err != nil {
		return nil, err
	}

	var rows []Row
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "read CSV line %d", line)
		}

		row, err := parseRow(record, cols, line)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidDataset, "dataset has a header but no data rows")
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Day.Before(rows[j].Day) })
	return &Table{Rows: rows}, nil
}

// indexColumns maps required column names to their positions in the header.
func indexColumns(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if err := errors.ValidateColumnName(name); err != nil {
			return nil, err
		}
		cols[name] = i
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidDataset, "CSV missing required columns: %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

func parseRow(record []string, cols map[string]int, line int) (Row, error) {
	field := func(name string) (string, error) {
		idx := cols[name]
		if idx >= len(record) {
			return "", errors.New(errors.ErrCodeInvalidDataset, "line %d: missing field %q", line, name)
		}
		return strings.TrimSpace(record[idx]), nil
	}

	var row Row

	dayStr, err := field(ColDay)
	if err != nil {
		return Row{}, err
	}
	row.Day, err = time.Parse(dayFormat, dayStr)
	if err != nil {
		return Row{}, errors.New(errors.ErrCodeInvalidDataset, "line %d: invalid date %q (use YYYY-MM-DD)", line, dayStr)
	}

	row.Service, err = field(ColService)
	if err != nil {
		return Row{}, err
	}
	if row.Service == "" {
		return Row{}, errors.New(errors.ErrCodeInvalidDataset, "line %d: empty service name", line)
	}

	numeric := []struct {
		col string
		dst *float64
	}{
		{ColUsage, &row.Usage},
		{ColCost, &row.CostGBP},
		{ColSLA, &row.SLAPct},
	}
	for _, n := range numeric {
		s, err := field(n.col)
		if err != nil {
			return Row{}, err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Row{}, errors.New(errors.ErrCodeInvalidDataset, "line %d: column %s has non-numeric value %q", line, n.col, s)
		}
		*n.dst = v
	}

	incStr, err := field(ColIncident)
	if err != nil {
		return Row{}, err
	}
	row.Incidents, err = strconv.Atoi(incStr)
	if err != nil {
		return Row{}, errors.New(errors.ErrCodeInvalidDataset, "line %d: column %s has non-integer value %q", line, ColIncident, incStr)
	}

	return row, nil
}
