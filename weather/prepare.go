package weather

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"weatherdash/datatable"
)

// Series is one named value column of a prepared chart.
type Series struct {
	Name   string
	Label  string
	Colour string
	// Values line up with PreparedSeries.Dates. Null cells are NaN.
	Values []float64
}

// PreparedSeries is everything a display needs to draw one chart.
type PreparedSeries struct {
	Spec    ChartSpec
	Dates   []time.Time
	Series  []Series
	Caption string
}

// Len returns the number of points on the date axis.
func (p *PreparedSeries) Len() int {
	return len(p.Dates)
}

// Prepare checks table against the required schema, coerces its Date column
// and projects the columns of the requested chart in chronological order.
// The table itself is never modified.
func Prepare(table *datatable.Table, kind ChartKind) (*PreparedSeries, error) {
	dates, err := validated(table)
	if err != nil {
		return nil, err
	}

	spec, err := Spec(kind)
	if err != nil {
		return nil, err
	}

	columns := make([]*datatable.Column, len(spec.Series))
	for i, s := range spec.Series {
		col, err := table.Column(s.Column)
		if err != nil {
			return nil, err
		}
		if err := checkNumeric(col); err != nil {
			return nil, err
		}
		columns[i] = col
	}

	order := chronological(dates)

	prepared := &PreparedSeries{
		Spec:    spec,
		Dates:   make([]time.Time, len(order)),
		Series:  make([]Series, len(spec.Series)),
		Caption: spec.Caption,
	}
	for i, row := range order {
		prepared.Dates[i] = dates[row]
	}
	for i, s := range spec.Series {
		values := make([]float64, len(order))
		for j, row := range order {
			f, ok := columns[i].Values[row].Float()
			if !ok {
				f = math.NaN()
			}
			values[j] = f
		}
		prepared.Series[i] = Series{Name: s.Column, Label: s.Label, Colour: s.Colour, Values: values}
	}
	return prepared, nil
}

// Summary describes a table that passed validation.
type Summary struct {
	Rows    int
	Columns int
	First   time.Time
	Last    time.Time
}

// Validate runs the checks shared by every chart: a table is present, has
// the required columns, its Date column parses and the value columns are
// numeric.
func Validate(table *datatable.Table) (Summary, error) {
	dates, err := validated(table)
	if err != nil {
		return Summary{}, err
	}
	for _, name := range RequiredColumns[1:] {
		col, err := table.Column(name)
		if err != nil {
			return Summary{}, err
		}
		if err := checkNumeric(col); err != nil {
			return Summary{}, err
		}
	}

	summary := Summary{Rows: table.RowCount(), Columns: table.ColumnCount()}
	for i, d := range dates {
		if i == 0 || d.Before(summary.First) {
			summary.First = d
		}
		if i == 0 || d.After(summary.Last) {
			summary.Last = d
		}
	}
	return summary, nil
}

// checkNumeric accepts float columns and columns with no values at all,
// which is what a header-only or all-blank column loads as.
func checkNumeric(col *datatable.Column) error {
	if col.Type == datatable.TypeFloat {
		return nil
	}
	for _, v := range col.Values {
		if !v.IsNull && strings.TrimSpace(v.Text()) != "" {
			return &ColumnTypeError{Column: col.Name, Type: col.Type}
		}
	}
	return nil
}

func validated(table *datatable.Table) ([]time.Time, error) {
	if table == nil {
		return nil, ErrNoData
	}
	if missing := table.Missing(RequiredColumns...); len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}

	dateCol, err := table.Column(ColumnDate)
	if err != nil {
		return nil, err
	}
	dates, err := coerceDates(dateCol)
	if err != nil {
		return nil, fmt.Errorf("invalid %s column: %w", ColumnDate, err)
	}
	return dates, nil
}

// chronological returns row indices ordered by date. Rows with equal dates
// keep their file order.
func chronological(dates []time.Time) []int {
	order := make([]int, len(dates))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return dates[order[a]].Before(dates[order[b]])
	})
	return order
}
