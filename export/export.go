// Copyright 2025 Magnus Pierre
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package export writes prepared chart series to CSV, JSON or Parquet.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"weatherdash/weather"
)

// Format represents the supported export formats
type Format int

const (
	FormatParquet Format = iota
	FormatCSV
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatParquet:
		return "parquet"
	case FormatCSV:
		return "csv"
	case FormatJSON:
		return "json"
	default:
		return fmt.Sprintf("unknown(%d)", int(f))
	}
}

// ParseFormat accepts the names returned by Format.String.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "parquet":
		return FormatParquet, nil
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	}
	return 0, fmt.Errorf("unknown export format %q (want csv, json or parquet)", s)
}

// FormatFromPath picks the format matching the file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return 0, fmt.Errorf("cannot tell export format of %q", path)
	}
	return ParseFormat(ext)
}

var writers = map[Format]func(arrow.Table, *os.File) error{
	FormatParquet: writeParquet,
	FormatCSV:     writeCSV,
	FormatJSON:    writeJSON,
}

// Write exports s to filePath in the given format. A failed export leaves
// no file behind.
func Write(filePath string, format Format, s *weather.PreparedSeries) error {
	write, ok := writers[format]
	if !ok {
		return fmt.Errorf("unknown export format %d", int(format))
	}

	table := SeriesTable(s)
	defer table.Release()

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create %s file: %w", format, err)
	}
	if err := write(table, file); err != nil {
		_ = file.Close()
		_ = os.Remove(filePath)
		return fmt.Errorf("failed to export %s: %w", format, err)
	}
	// The parquet writer closes the file itself.
	if err := file.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		return fmt.Errorf("failed to export %s: %w", format, err)
	}
	return nil
}

// SeriesTable builds an Arrow table with a date32 Date column followed by
// one float64 column per series. NaN and infinite values are stored as
// nulls.
func SeriesTable(s *weather.PreparedSeries) arrow.Table {
	fields := []arrow.Field{{Name: weather.ColumnDate, Type: arrow.FixedWidthTypes.Date32}}
	for _, vs := range s.Series {
		fields = append(fields, arrow.Field{Name: vs.Name, Type: arrow.PrimitiveTypes.Float64, Nullable: true})
	}
	schema := arrow.NewSchema(fields, nil)

	b := array.NewRecordBuilder(memory.NewGoAllocator(), schema)
	defer b.Release()

	dates := b.Field(0).(*array.Date32Builder)
	for _, d := range s.Dates {
		dates.Append(arrow.Date32FromTime(d))
	}
	for i, vs := range s.Series {
		fb := b.Field(i + 1).(*array.Float64Builder)
		for _, v := range vs.Values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				fb.AppendNull()
				continue
			}
			fb.Append(v)
		}
	}

	rec := b.NewRecord()
	defer rec.Release()
	return array.NewTableFromRecords(schema, []arrow.Record{rec})
}

// writeParquet stores the table snappy compressed, with the Arrow schema
// embedded so date columns read back as dates.
func writeParquet(table arrow.Table, file *os.File) error {
	props := parquet.NewWriterProperties(parquet.WithCompression(compress.Codecs.Snappy))
	arrowProps := pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema())

	writer, err := pqarrow.NewFileWriter(table.Schema(), file, props, arrowProps)
	if err != nil {
		return fmt.Errorf("failed to create parquet writer: %w", err)
	}
	if err := writer.WriteTable(table, chunkSize(table)); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write table to parquet: %w", err)
	}
	return writer.Close()
}

func writeCSV(table arrow.Table, file *os.File) error {
	w := csv.NewWriter(file)
	if err := w.Write(columnNames(table)); err != nil {
		return err
	}

	row := make([]string, table.NumCols())
	err := eachRow(table, func(rec arrow.Record, i int) error {
		for c, col := range rec.Columns() {
			row[c] = formatValue(col, i)
		}
		return w.Write(row)
	})
	if err != nil {
		return err
	}

	w.Flush()
	return w.Error()
}

// writeJSON writes an indented array with one object per date.
func writeJSON(table arrow.Table, file *os.File) error {
	names := columnNames(table)
	records := make([]map[string]interface{}, 0, table.NumRows())
	err := eachRow(table, func(rec arrow.Record, i int) error {
		record := make(map[string]interface{}, len(names))
		for c, col := range rec.Columns() {
			record[names[c]] = typedValue(col, i)
		}
		records = append(records, record)
		return nil
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

func columnNames(table arrow.Table) []string {
	fields := table.Schema().Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}

// eachRow calls fn for every row of every record batch of table.
func eachRow(table arrow.Table, fn func(rec arrow.Record, row int) error) error {
	tr := array.NewTableReader(table, chunkSize(table))
	defer tr.Release()

	for tr.Next() {
		rec := tr.Record()
		for i := 0; i < int(rec.NumRows()); i++ {
			if err := fn(rec, i); err != nil {
				return err
			}
		}
	}
	return tr.Err()
}

// chunkSize reads a whole table as one chunk; empty tables still need a
// positive size.
func chunkSize(table arrow.Table) int64 {
	if n := table.NumRows(); n > 0 {
		return n
	}
	return 1
}

// formatValue renders a cell for CSV. Nulls are empty.
func formatValue(col arrow.Array, pos int) string {
	if col.IsNull(pos) {
		return ""
	}
	switch c := col.(type) {
	case *array.Date32:
		return c.Value(pos).ToTime().Format(time.DateOnly)
	case *array.Float64:
		return strconv.FormatFloat(c.Value(pos), 'f', -1, 64)
	default:
		return col.ValueStr(pos)
	}
}

// typedValue keeps numbers as JSON numbers and nulls as null.
func typedValue(col arrow.Array, pos int) interface{} {
	if f, ok := col.(*array.Float64); ok && f.IsValid(pos) {
		return f.Value(pos)
	}
	if col.IsNull(pos) {
		return nil
	}
	return formatValue(col, pos)
}
