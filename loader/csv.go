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

package loader

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	arrowcsv "github.com/apache/arrow-go/v18/arrow/csv"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"weatherdash/datatable"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// nullValues are read as empty cells.
var nullValues = []string{"", "NA", "N/A", "NaN", "nan", "null", "NULL"}

// DetectSeparator guesses the separator from the first line
func DetectSeparator(data []byte) rune {
	firstLine := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		firstLine = data[:i]
	}
	if len(bytes.TrimSpace(firstLine)) == 0 {
		return ','
	}

	// Count occurrences of common separators
	counts := map[rune]int{
		',':  bytes.Count(firstLine, []byte(",")),
		';':  bytes.Count(firstLine, []byte(";")),
		'\t': bytes.Count(firstLine, []byte("\t")),
		'|':  bytes.Count(firstLine, []byte("|")),
	}

	// Ties go to the earlier entry so the result does not depend on map order
	detected := ','
	maxCount := 0
	for _, sep := range []rune{',', ';', '\t', '|'} {
		if counts[sep] > maxCount {
			maxCount = counts[sep]
			detected = sep
		}
	}
	return detected
}

// SeparatorName returns a human-readable name for the separator
func SeparatorName(sep rune) string {
	switch sep {
	case ',':
		return "comma"
	case ';':
		return "semicolon"
	case '\t':
		return "tab"
	case '|':
		return "pipe"
	default:
		return string(sep)
	}
}

// loadCSVFile reads delimited text through the Arrow CSV reader. Every
// column is read as a string; types are inferred afterwards.
func loadCSVFile(filePath string) (*datatable.Table, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	separator := DetectSeparator(data)

	header, err := readHeader(data, separator)
	if err != nil {
		return nil, err
	}

	fields := make([]arrow.Field, len(header))
	for i, name := range header {
		fields[i] = arrow.Field{Name: name, Type: arrow.BinaryTypes.String, Nullable: true}
	}
	schema := arrow.NewSchema(fields, nil)

	reader := arrowcsv.NewReader(bytes.NewReader(data), schema,
		arrowcsv.WithHeader(true),
		arrowcsv.WithComma(separator),
		arrowcsv.WithChunk(1024),
		arrowcsv.WithNullReader(true, nullValues...),
		arrowcsv.WithAllocator(memory.NewGoAllocator()),
	)
	defer reader.Release()

	var records [][]string
	for reader.Next() {
		rec := reader.Record()
		for row := 0; row < int(rec.NumRows()); row++ {
			record := make([]string, rec.NumCols())
			for col := range record {
				record[col] = stringAt(rec.Column(col), row)
			}
			records = append(records, record)
		}
	}
	if err := reader.Err(); err != nil {
		return nil, fmt.Errorf("failed to parse CSV file: %w", err)
	}

	meta := metadata(filePath, FileTypeCSV)
	meta[datatable.MetaSeparator] = SeparatorName(separator)

	table, err := datatable.FromRecords(header, records, meta)
	if err != nil {
		return nil, fmt.Errorf("failed to create table: %w", err)
	}
	return table, nil
}

// readHeader returns the first record of the file.
func readHeader(data []byte, separator rune) ([]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = separator
	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("no header row: %w", datatable.ErrEmptyData)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV header: %w", err)
	}
	return header, nil
}

// stringAt copies the cell out of the Arrow buffer so the table does not
// keep record memory alive.
func stringAt(col arrow.Array, row int) string {
	if col.IsNull(row) {
		return ""
	}
	if s, ok := col.(*array.String); ok {
		return strings.Clone(s.Value(row))
	}
	return col.ValueStr(row)
}
