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

// Package datatable holds the in-memory table a weather dataset is loaded into.
package datatable

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// DataType is the type shared by all values of a column.
type DataType int

const (
	TypeString DataType = iota
	TypeFloat           // float64
	TypeDate            // time.Time
)

func (dt DataType) String() string {
	switch dt {
	case TypeString:
		return "String"
	case TypeFloat:
		return "Float"
	case TypeDate:
		return "Date"
	default:
		return fmt.Sprintf("Unknown(%d)", dt)
	}
}

// Value is one cell. Raw holds a string, float64 or time.Time matching
// Type, and is nil when IsNull is set. Formatted is the display text.
type Value struct {
	Raw       interface{}
	Type      DataType
	IsNull    bool
	Formatted string
}

// NewValue wraps raw. A nil raw gives a null of dataType.
func NewValue(raw interface{}, dataType DataType) Value {
	if raw == nil {
		return NewNullValue(dataType)
	}
	return Value{Raw: raw, Type: dataType, Formatted: formatValue(raw)}
}

func NewNullValue(dataType DataType) Value {
	return Value{Type: dataType, IsNull: true}
}

// Float returns the numeric value. Null and non-numeric values yield NaN
// and false.
func (v Value) Float() (float64, bool) {
	if v.IsNull {
		return math.NaN(), false
	}
	f, ok := v.Raw.(float64)
	if !ok {
		return math.NaN(), false
	}
	return f, true
}

// Time returns the date value of a TypeDate cell.
func (v Value) Time() (time.Time, bool) {
	if v.IsNull {
		return time.Time{}, false
	}
	t, ok := v.Raw.(time.Time)
	return t, ok
}

// Text returns the string value of a TypeString cell, or the formatted form
// of any other cell.
func (v Value) Text() string {
	if s, ok := v.Raw.(string); ok {
		return s
	}
	return v.Formatted
}

// Midnight timestamps print as plain dates.
func formatValue(raw interface{}) string {
	switch v := raw.(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case time.Time:
		if h, m, sec := v.Clock(); h == 0 && m == 0 && sec == 0 && v.Nanosecond() == 0 {
			return v.Format(time.DateOnly)
		}
		return v.Format(time.DateTime)
	case string:
		return v
	default:
		return fmt.Sprint(raw)
	}
}

// Metadata describes the origin of a table.
type Metadata map[string]string

// Keys set by the loader.
const (
	MetaSource    = "source"
	MetaFormat    = "format"
	MetaSeparator = "separator"
	MetaSheet     = "sheet"
)
