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

package windows

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"weatherdash/datatable"
)

const previewColumnWidth = 140

// DataPreview shows the rows of a data source in a scrollable table.
type DataPreview struct {
	source datatable.DataSource
	table  *widget.Table
}

// NewDataPreview creates an empty preview.
func NewDataPreview() *DataPreview {
	p := &DataPreview{}

	p.table = widget.NewTable(
		func() (int, int) {
			if p.source == nil {
				return 0, 0
			}
			return p.source.RowCount(), p.source.ColumnCount()
		},
		func() fyne.CanvasObject {
			label := widget.NewLabel("template")
			label.Truncation = fyne.TextTruncateEllipsis
			return label
		},
		func(id widget.TableCellID, obj fyne.CanvasObject) {
			obj.(*widget.Label).SetText(p.CellText(id.Row, id.Col))
		},
	)

	p.table.ShowHeaderRow = true
	p.table.CreateHeader = func() fyne.CanvasObject {
		label := widget.NewLabel("header")
		label.TextStyle = fyne.TextStyle{Bold: true}
		return label
	}
	p.table.UpdateHeader = func(id widget.TableCellID, obj fyne.CanvasObject) {
		label := obj.(*widget.Label)
		if id.Row >= 0 || p.source == nil {
			label.SetText("")
			return
		}
		name, err := p.source.ColumnName(id.Col)
		if err != nil {
			label.SetText("")
			return
		}
		label.SetText(name)
	}

	return p
}

// SetSource replaces the previewed data and resets column widths.
func (p *DataPreview) SetSource(src datatable.DataSource) {
	p.source = src
	if src != nil {
		for col := 0; col < src.ColumnCount(); col++ {
			p.table.SetColumnWidth(col, previewColumnWidth)
		}
	}
	p.table.Refresh()
}

// CellText returns the text shown for a cell; nulls are blank.
func (p *DataPreview) CellText(row, col int) string {
	if p.source == nil {
		return ""
	}
	v, err := p.source.Cell(row, col)
	if err != nil || v.IsNull {
		return ""
	}
	return v.Formatted
}

// Summary describes the previewed data for the tab title.
func (p *DataPreview) Summary() string {
	if p.source == nil {
		return "No data"
	}
	return fmt.Sprintf("%d columns x %d rows", p.source.ColumnCount(), p.source.RowCount())
}

// Widget returns the canvas object to embed.
func (p *DataPreview) Widget() fyne.CanvasObject {
	return p.table
}
