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
	"context"
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"weatherdash/datatable"
)

// loadParquetFile reads a Parquet file into an Arrow table and converts it
// column by column.
func loadParquetFile(filePath string) (*datatable.Table, error) {
	pf, err := file.OpenParquetFile(filePath, false)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer pf.Close()

	mem := memory.NewGoAllocator()
	arrowReader, err := pqarrow.NewFileReader(pf, pqarrow.ArrowReadProperties{}, mem)
	if err != nil {
		return nil, fmt.Errorf("failed to create arrow reader: %w", err)
	}

	tbl, err := arrowReader.ReadTable(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet data: %w", err)
	}
	defer tbl.Release()

	table, err := FromArrowTable(tbl, metadata(filePath, FileTypeParquet))
	if err != nil {
		return nil, fmt.Errorf("failed to create table: %w", err)
	}
	return table, nil
}

// FromArrowTable copies an Arrow table into a datatable.Table. Numeric
// columns become TypeFloat, date and timestamp columns TypeDate, anything
// else TypeString.
func FromArrowTable(tbl arrow.Table, meta datatable.Metadata) (*datatable.Table, error) {
	schema := tbl.Schema()
	columns := make([]*datatable.Column, 0, tbl.NumCols())

	for i := 0; i < int(tbl.NumCols()); i++ {
		field := schema.Field(i)
		dataType := columnType(field.Type)

		values := make([]datatable.Value, 0, tbl.NumRows())
		for _, chunk := range tbl.Column(i).Data().Chunks() {
			for pos := 0; pos < chunk.Len(); pos++ {
				values = append(values, arrowValue(chunk, pos, dataType))
			}
		}
		columns = append(columns, &datatable.Column{Name: field.Name, Type: dataType, Values: values})
	}

	return datatable.New(columns, meta)
}

func columnType(dt arrow.DataType) datatable.DataType {
	switch dt.ID() {
	case arrow.INT8, arrow.INT16, arrow.INT32, arrow.INT64,
		arrow.UINT8, arrow.UINT16, arrow.UINT32, arrow.UINT64,
		arrow.FLOAT16, arrow.FLOAT32, arrow.FLOAT64:
		return datatable.TypeFloat
	case arrow.DATE32, arrow.DATE64, arrow.TIMESTAMP:
		return datatable.TypeDate
	default:
		return datatable.TypeString
	}
}

// arrowValue converts an Arrow column value at a specific position
func arrowValue(col arrow.Array, pos int, dataType datatable.DataType) datatable.Value {
	if col.IsNull(pos) {
		return datatable.NewNullValue(dataType)
	}

	switch c := col.(type) {
	case *array.Int8:
		return datatable.NewValue(float64(c.Value(pos)), dataType)
	case *array.Int16:
		return datatable.NewValue(float64(c.Value(pos)), dataType)
	case *array.Int32:
		return datatable.NewValue(float64(c.Value(pos)), dataType)
	case *array.Int64:
		return datatable.NewValue(float64(c.Value(pos)), dataType)
	case *array.Uint8:
		return datatable.NewValue(float64(c.Value(pos)), dataType)
	case *array.Uint16:
		return datatable.NewValue(float64(c.Value(pos)), dataType)
	case *array.Uint32:
		return datatable.NewValue(float64(c.Value(pos)), dataType)
	case *array.Uint64:
		return datatable.NewValue(float64(c.Value(pos)), dataType)
	case *array.Float16:
		return datatable.NewValue(float64(c.Value(pos).Float32()), dataType)
	case *array.Float32:
		return datatable.NewValue(float64(c.Value(pos)), dataType)
	case *array.Float64:
		return datatable.NewValue(c.Value(pos), dataType)
	case *array.Date32:
		return datatable.NewValue(c.Value(pos).ToTime().UTC(), dataType)
	case *array.Date64:
		return datatable.NewValue(c.Value(pos).ToTime().UTC(), dataType)
	case *array.Timestamp:
		unit := c.DataType().(*arrow.TimestampType).Unit
		return datatable.NewValue(c.Value(pos).ToTime(unit).UTC(), dataType)
	case *array.String:
		return datatable.NewValue(c.Value(pos), datatable.TypeString)
	default:
		return datatable.NewValue(col.ValueStr(pos), datatable.TypeString)
	}
}
