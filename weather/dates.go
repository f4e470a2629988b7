package weather

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"weatherdash/datatable"
)

// dateLayouts are tried in order for text Date cells.
// Single digit forms also accept zero padded input.
var dateLayouts = []string{
	"2006-1-2",
	"2006/1/2",
	time.DateTime,
	"2006-01-02 15:04",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02T15:04:05",
	time.RFC3339Nano,
	"1/2/2006",
	"1/2/06",
	"1/2/06 15:04",
	"01-02-06",
	"2-Jan-2006",
	"2-Jan-06",
	"Jan 2, 2006",
	"January 2, 2006",
	"20060102",
}

var errEmptyDate = errors.New("empty date")

// ParseDate interprets s as a calendar date or timestamp. Ambiguous
// numeric dates are read month first. Dates without a zone are UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errEmptyDate
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	// dateparse reads bare digit runs as epoch timestamps.
	if strings.Trim(s, "0123456789") == "" {
		return time.Time{}, fmt.Errorf("no known date layout matches %q", s)
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("no known date layout matches %q: %w", s, err)
	}
	return t, nil
}

// coerceDates converts the Date column into times. A single bad cell fails
// the whole column.
func coerceDates(col *datatable.Column) ([]time.Time, error) {
	dates := make([]time.Time, col.Len())
	for row, v := range col.Values {
		if t, ok := v.Time(); ok {
			dates[row] = t
			continue
		}
		if v.IsNull {
			return nil, &DateParseError{Row: row, Value: "", Err: errEmptyDate}
		}
		if col.Type != datatable.TypeString {
			return nil, &DateParseError{Row: row, Value: v.Formatted, Err: fmt.Errorf("%s value is not a date", col.Type)}
		}
		t, err := ParseDate(v.Text())
		if err != nil {
			return nil, &DateParseError{Row: row, Value: v.Text(), Err: err}
		}
		dates[row] = t
	}
	return dates, nil
}
