package loader

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"weatherdash/datatable"
)

// loadXLSXFile reads the first sheet of a workbook. The first row is the
// header. Cells are read as stored, not as displayed; numbers under a date
// format become dates, and a column holding only such cells is TypeDate.
func loadXLSXFile(filePath string) (*datatable.Table, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets: %w", datatable.ErrEmptyData)
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	// Trailing rows without any content are formatting leftovers.
	for len(rows) > 0 && isBlankRow(rows[len(rows)-1]) {
		rows = rows[:len(rows)-1]
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q has no header row: %w", sheet, datatable.ErrEmptyData)
	}

	header := rows[0]
	width := len(header)
	for _, row := range rows[1:] {
		if len(row) > width {
			width = len(row)
		}
	}
	header = pad(header, width)

	dc := newDateCells(f, sheet)
	records := make([][]string, 0, len(rows)-1)
	for r, row := range rows[1:] {
		rec := pad(row, width)
		for c, cell := range rec {
			// Sheet rows are 1-based and the header is row 1.
			if t, ok := dc.read(r+2, c+1, cell); ok {
				dc.times[cellKey{r, c}] = t
				rec[c] = datatable.NewValue(t, datatable.TypeDate).Formatted
			}
		}
		records = append(records, rec)
	}

	meta := metadata(filePath, FileTypeXLSX)
	meta[datatable.MetaSheet] = sheet

	table, err := datatable.FromRecords(header, records, meta)
	if err != nil {
		return nil, fmt.Errorf("failed to create table: %w", err)
	}
	if len(dc.times) == 0 {
		return table, nil
	}
	return dc.apply(table, records)
}

type cellKey struct{ row, col int }

// dateCells finds numeric cells whose number format shows a date.
type dateCells struct {
	f        *excelize.File
	sheet    string
	date1904 bool
	styles   map[int]bool
	times    map[cellKey]time.Time
}

func newDateCells(f *excelize.File, sheet string) *dateCells {
	dc := &dateCells{
		f:      f,
		sheet:  sheet,
		styles: make(map[int]bool),
		times:  make(map[cellKey]time.Time),
	}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		dc.date1904 = *props.Date1904
	}
	return dc
}

// read converts the raw serial in the cell at (row, col) when the cell is
// styled as a date.
func (dc *dateCells) read(row, col int, raw string) (time.Time, bool) {
	serial, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return time.Time{}, false
	}
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return time.Time{}, false
	}
	styleID, err := dc.f.GetCellStyle(dc.sheet, name)
	if err != nil || !dc.isDateStyle(styleID) {
		return time.Time{}, false
	}
	t, err := excelize.ExcelDateToTime(serial, dc.date1904)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (dc *dateCells) isDateStyle(styleID int) bool {
	if isDate, ok := dc.styles[styleID]; ok {
		return isDate
	}
	isDate := false
	if style, err := dc.f.GetStyle(styleID); err == nil && style != nil {
		if style.CustomNumFmt != nil {
			isDate = isDateFormatCode(*style.CustomNumFmt)
		} else {
			isDate = isBuiltInDateFormat(style.NumFmt)
		}
	}
	dc.styles[styleID] = isDate
	return isDate
}

// apply turns columns whose every non-blank cell is a date into TypeDate.
func (dc *dateCells) apply(table *datatable.Table, records [][]string) (*datatable.Table, error) {
	columns := make([]*datatable.Column, table.ColumnCount())
	for c, name := range table.ColumnNames() {
		col, err := table.Column(name)
		if err != nil {
			return nil, err
		}
		columns[c] = col

		dated, blank := 0, 0
		for r, rec := range records {
			if _, ok := dc.times[cellKey{r, c}]; ok {
				dated++
			} else if strings.TrimSpace(rec[c]) == "" {
				blank++
			}
		}
		if dated == 0 || dated+blank != len(records) {
			continue
		}

		values := make([]datatable.Value, len(records))
		for r := range records {
			if t, ok := dc.times[cellKey{r, c}]; ok {
				values[r] = datatable.NewValue(t, datatable.TypeDate)
			} else {
				values[r] = datatable.NewNullValue(datatable.TypeDate)
			}
		}
		columns[c] = &datatable.Column{Name: name, Type: datatable.TypeDate, Values: values}
	}
	return datatable.New(columns, table.Metadata())
}

// isBuiltInDateFormat reports the built-in number formats that show a
// calendar date, including the East Asian ones.
func isBuiltInDateFormat(id int) bool {
	return (id >= 14 && id <= 22) || (id >= 27 && id <= 36) || (id >= 50 && id <= 58)
}

// isDateFormatCode looks for day or year tokens outside quoted text,
// escapes and bracketed sections such as colours and locales.
func isDateFormatCode(code string) bool {
	var b strings.Builder
	quoted, bracket := false, false
	for i := 0; i < len(code); i++ {
		ch := code[i]
		switch {
		case quoted:
			quoted = ch != '"'
		case bracket:
			bracket = ch != ']'
		case ch == '"':
			quoted = true
		case ch == '[':
			bracket = true
		case ch == '\\':
			i++
		default:
			b.WriteByte(ch)
		}
	}
	plain := strings.ToLower(b.String())
	return strings.ContainsAny(plain, "dy")
}

// pad extends row with empty cells; GetRows omits trailing empty cells.
func pad(row []string, width int) []string {
	if len(row) >= width {
		return row
	}
	out := make([]string, width)
	copy(out, row)
	return out
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
