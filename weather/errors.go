package weather

import (
	"errors"
	"fmt"
	"strings"

	"weatherdash/datatable"
)

// ErrNoData is returned when a chart is requested before any dataset has
// been loaded.
var ErrNoData = errors.New("no file uploaded yet")

// SchemaError lists the required columns a table lacks.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return "file is missing required columns: " + strings.Join(e.Missing, ", ")
}

// DateParseError reports a Date cell that is not a calendar date. Row is
// zero based.
type DateParseError struct {
	Row   int
	Value string
	Err   error
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("row %d: cannot parse %q as a date", e.Row+1, e.Value)
}

func (e *DateParseError) Unwrap() error {
	return e.Err
}

// ColumnTypeError reports a chart column that does not hold numbers.
type ColumnTypeError struct {
	Column string
	Type   datatable.DataType
}

func (e *ColumnTypeError) Error() string {
	return fmt.Sprintf("column %s must be numeric, found %s values", e.Column, e.Type)
}
