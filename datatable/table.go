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

package datatable

import (
	"fmt"
	"strconv"
	"strings"
)

// Column is a named, homogeneously typed sequence of values.
type Column struct {
	Name   string
	Type   DataType
	Values []Value
}

// Len returns the number of values in the column.
func (c *Column) Len() int {
	return len(c.Values)
}

// Table is an ordered collection of equally long columns.
// A Table is never modified after construction.
type Table struct {
	columns []*Column
	index   map[string]int
	rows    int
	meta    Metadata
}

// New builds a table from columns. All columns must have the same length.
// Column names are made unique the same way as FromRecords does.
func New(columns []*Column, meta Metadata) (*Table, error) {
	rows := 0
	if len(columns) > 0 {
		rows = columns[0].Len()
	}

	names := make([]string, len(columns))
	for i, c := range columns {
		if c.Len() != rows {
			return nil, fmt.Errorf("%w: column %q has %d values, expected %d", ErrRaggedColumns, c.Name, c.Len(), rows)
		}
		names[i] = c.Name
	}
	names = UniqueNames(names)

	t := &Table{
		columns: make([]*Column, len(columns)),
		index:   make(map[string]int, len(columns)),
		rows:    rows,
		meta:    Metadata{},
	}
	for i, c := range columns {
		t.columns[i] = &Column{Name: names[i], Type: c.Type, Values: c.Values}
		t.index[names[i]] = i
	}
	for k, v := range meta {
		t.meta[k] = v
	}
	return t, nil
}

// FromRecords builds a table from a header row and text records, inferring
// the type of every column. A column is TypeFloat when each of its non-empty
// cells parses as a number; empty cells of such a column become nulls.
// Every other column is TypeString and keeps its text verbatim.
func FromRecords(header []string, records [][]string, meta Metadata) (*Table, error) {
	if len(header) == 0 {
		return nil, ErrEmptyData
	}

	columns := make([]*Column, len(header))
	for col, name := range header {
		cells := make([]string, len(records))
		for row, rec := range records {
			if len(rec) != len(header) {
				return nil, fmt.Errorf("%w: row %d has %d fields, header has %d", ErrRaggedColumns, row+1, len(rec), len(header))
			}
			cells[row] = rec[col]
		}
		columns[col] = inferColumn(name, cells)
	}
	return New(columns, meta)
}

// inferColumn picks the narrowest type that holds every cell.
func inferColumn(name string, cells []string) *Column {
	numeric := false
	floats := make([]float64, len(cells))
	for i, cell := range cells {
		s := strings.TrimSpace(cell)
		if s == "" {
			continue
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			numeric = false
			break
		}
		floats[i] = f
		numeric = true
	}

	if numeric {
		values := make([]Value, len(cells))
		for i, cell := range cells {
			if strings.TrimSpace(cell) == "" {
				values[i] = NewNullValue(TypeFloat)
				continue
			}
			values[i] = NewValue(floats[i], TypeFloat)
		}
		return &Column{Name: name, Type: TypeFloat, Values: values}
	}

	values := make([]Value, len(cells))
	for i, cell := range cells {
		values[i] = NewValue(cell, TypeString)
	}
	return &Column{Name: name, Type: TypeString, Values: values}
}

// UniqueNames disambiguates repeated column names by appending ".1", ".2", ...
// to later occurrences, and names empty headers "Unnamed: N".
func UniqueNames(names []string) []string {
	out := make([]string, len(names))
	seen := make(map[string]int, len(names))
	taken := make(map[string]bool, len(names))
	for _, n := range names {
		taken[n] = true
	}
	for i, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			n = fmt.Sprintf("Unnamed: %d", i)
		}
		name := n
		for seen[name] > 0 || (name != n && taken[name]) {
			name = fmt.Sprintf("%s.%d", n, seen[n])
			seen[n]++
		}
		seen[name]++
		out[i] = name
	}
	return out
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int {
	return t.rows
}

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int {
	return len(t.columns)
}

// ColumnNames returns the column names in table order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// ColumnName returns the name of the column at index col.
func (t *Table) ColumnName(col int) (string, error) {
	if col < 0 || col >= len(t.columns) {
		return "", ErrInvalidColumn
	}
	return t.columns[col].Name, nil
}

// ColumnType returns the type of the column at index col.
func (t *Table) ColumnType(col int) (DataType, error) {
	if col < 0 || col >= len(t.columns) {
		return TypeString, ErrInvalidColumn
	}
	return t.columns[col].Type, nil
}

// Column looks a column up by its exact, case-sensitive name.
func (t *Table) Column(name string) (*Column, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrColumnNotFound, name)
	}
	return t.columns[i], nil
}

// HasColumn reports whether a column with the exact name exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Missing returns the names from required that the table lacks, in the
// order they were given.
func (t *Table) Missing(required ...string) []string {
	var missing []string
	for _, name := range required {
		if !t.HasColumn(name) {
			missing = append(missing, name)
		}
	}
	return missing
}

// Cell returns the value at row, col.
func (t *Table) Cell(row, col int) (Value, error) {
	if row < 0 || row >= t.rows {
		return Value{}, ErrInvalidRow
	}
	if col < 0 || col >= len(t.columns) {
		return Value{}, ErrInvalidColumn
	}
	return t.columns[col].Values[row], nil
}

// Row returns all values of a row in column order.
func (t *Table) Row(row int) ([]Value, error) {
	if row < 0 || row >= t.rows {
		return nil, ErrInvalidRow
	}
	values := make([]Value, len(t.columns))
	for i, c := range t.columns {
		values[i] = c.Values[row]
	}
	return values, nil
}

// Metadata returns a copy of the table metadata.
func (t *Table) Metadata() Metadata {
	meta := make(Metadata, len(t.meta))
	for k, v := range t.meta {
		meta[k] = v
	}
	return meta
}
