package loader

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"weatherdash/datatable"
)

const weatherCSV = `Date,Temperature_Max,Temperature_Min,Precipitation,Wind,Station
2024-01-01,10,2,0,5,north
2024-01-02,12,3,1.5,7,north
2024-01-03,9,-1,4.2,11,north
`

var requiredColumns = []string{"Date", "Temperature_Max", "Temperature_Min", "Precipitation", "Wind"}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDetectFileType(t *testing.T) {
	tests := map[string]FileType{
		"data.csv":         FileTypeCSV,
		"DATA.CSV":         FileTypeCSV,
		"data.txt":         FileTypeCSV,
		"book.xlsx":        FileTypeXLSX,
		"book.xlsm":        FileTypeXLSX,
		"part-0.parquet":   FileTypeParquet,
		"rows.json":        FileTypeJSON,
		"archive.tar.gz":   FileTypeUnknown,
		"no-extension":     FileTypeUnknown,
		"/tmp/x/weather.X": FileTypeUnknown,
	}
	for path, want := range tests {
		assert.Equal(t, want, DetectFileType(path), path)
	}
}

func TestDetectSeparator(t *testing.T) {
	tests := []struct {
		line string
		want rune
	}{
		{"a,b,c\n1,2,3", ','},
		{"a;b;c\n1;2;3", ';'},
		{"a\tb\tc", '\t'},
		{"a|b|c", '|'},
		{"single", ','},
		{"", ','},
		{"a,b;c", ','},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectSeparator([]byte(tt.line)), tt.line)
	}
	assert.Equal(t, "semicolon", SeparatorName(';'))

	// Header lines longer than a bufio token.
	wide := strings.Repeat("Station;", 20000) + "Date\n" + strings.Repeat("x,", 10)
	assert.Equal(t, ';', DetectSeparator([]byte(wide)))
	assert.Equal(t, "tab", SeparatorName('\t'))
}

func TestLoadCSV(t *testing.T) {
	path := writeFile(t, "weather.csv", weatherCSV)

	tbl, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3, tbl.RowCount())
	assert.Empty(t, tbl.Missing(requiredColumns...))
	assert.True(t, tbl.HasColumn("Station"))

	precip, err := tbl.Column("Precipitation")
	require.NoError(t, err)
	assert.Equal(t, datatable.TypeFloat, precip.Type)
	v, _ := precip.Values[2].Float()
	assert.Equal(t, 4.2, v)

	date, err := tbl.Column("Date")
	require.NoError(t, err)
	assert.Equal(t, datatable.TypeString, date.Type)
	assert.Equal(t, "2024-01-03", date.Values[2].Text())

	meta := tbl.Metadata()
	assert.Equal(t, "csv", meta[datatable.MetaFormat])
	assert.Equal(t, "comma", meta[datatable.MetaSeparator])
	assert.Equal(t, path, meta[datatable.MetaSource])
}

func TestLoadCSVSemicolonWithBOM(t *testing.T) {
	path := writeFile(t, "weather.csv", "\xEF\xBB\xBFDate;Wind\n2024-01-01;5\n2024-01-02;NA\n")

	tbl, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Date", "Wind"}, tbl.ColumnNames())
	assert.Equal(t, "semicolon", tbl.Metadata()[datatable.MetaSeparator])

	wind, err := tbl.Column("Wind")
	require.NoError(t, err)
	assert.Equal(t, datatable.TypeFloat, wind.Type)
	assert.True(t, wind.Values[1].IsNull)
}

func TestLoadCSVHeaderOnly(t *testing.T) {
	path := writeFile(t, "empty.csv", "Date,Wind\n")

	tbl, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.RowCount())
	assert.Equal(t, 2, tbl.ColumnCount())
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name   string
		path   string
		target error
	}{
		{"unsupported", writeFile(t, "weather.xml", "<x/>"), ErrUnsupportedFormat},
		{"missing file", filepath.Join(dir, "absent.csv"), os.ErrNotExist},
		{"empty file", writeFile(t, "blank.csv", ""), datatable.ErrEmptyData},
		{"empty json", writeFile(t, "blank.json", "[]"), datatable.ErrEmptyData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := Load(tt.path)
			assert.Nil(t, tbl)

			var loadErr *LoadError
			require.True(t, errors.As(err, &loadErr), "expected LoadError, got %v", err)
			assert.Equal(t, tt.path, loadErr.Path)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestLoadCSVRaggedRows(t *testing.T) {
	path := writeFile(t, "ragged.csv", "Date,Wind\n2024-01-01,5\n2024-01-02\n")

	tbl, err := Load(path)
	assert.Nil(t, tbl)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, FileTypeCSV, loadErr.Format)
}

func TestLoadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weather.xlsx")

	f := excelize.NewFile()
	rows := [][]interface{}{
		{"Date", "Temperature_Max", "Temperature_Min", "Precipitation", "Wind"},
		{"2024-01-01", 10, 2, 0, 5},
		{"2024-01-02", 12, 3, 1.5, 7},
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &rows[i]))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	tbl, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2, tbl.RowCount())
	assert.Empty(t, tbl.Missing(requiredColumns...))
	assert.Equal(t, "Sheet1", tbl.Metadata()[datatable.MetaSheet])

	precip, err := tbl.Column("Precipitation")
	require.NoError(t, err)
	assert.Equal(t, datatable.TypeFloat, precip.Type)
	v, _ := precip.Values[1].Float()
	assert.Equal(t, 1.5, v)
}

func TestLoadParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weather.parquet")

	mem := memory.NewGoAllocator()
	schema := arrow.NewSchema([]arrow.Field{
		{Name: "Date", Type: arrow.FixedWidthTypes.Date32},
		{Name: "Wind", Type: arrow.PrimitiveTypes.Float64, Nullable: true},
		{Name: "Station", Type: arrow.BinaryTypes.String},
	}, nil)

	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	b.Field(0).(*array.Date32Builder).AppendValues([]arrow.Date32{
		arrow.Date32FromTime(day), arrow.Date32FromTime(day.AddDate(0, 0, 1)),
	}, nil)
	b.Field(1).(*array.Float64Builder).AppendValues([]float64{5, 0}, []bool{true, false})
	b.Field(2).(*array.StringBuilder).AppendValues([]string{"north", "south"}, nil)

	rec := b.NewRecord()
	defer rec.Release()
	tbl := array.NewTableFromRecords(schema, []arrow.Record{rec})
	defer tbl.Release()

	out, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, pqarrow.WriteTable(tbl, out, 1024, parquet.NewWriterProperties(), pqarrow.DefaultWriterProps()))
	_ = out.Close()

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.RowCount())

	date, err := loaded.Column("Date")
	require.NoError(t, err)
	assert.Equal(t, datatable.TypeDate, date.Type)
	got, ok := date.Values[1].Time()
	require.True(t, ok)
	assert.True(t, got.Equal(day.AddDate(0, 0, 1)))

	wind, err := loaded.Column("Wind")
	require.NoError(t, err)
	assert.Equal(t, datatable.TypeFloat, wind.Type)
	assert.True(t, wind.Values[1].IsNull)

	station, err := loaded.Column("Station")
	require.NoError(t, err)
	assert.Equal(t, "south", station.Values[1].Text())
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "weather.json", `[
		{"Date": "2024-01-01", "Wind": 5, "Precipitation": 0},
		{"Date": "2024-01-02", "Wind": 7.25, "Precipitation": null}
	]`)

	tbl, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Date", "Precipitation", "Wind"}, tbl.ColumnNames())
	wind, err := tbl.Column("Wind")
	require.NoError(t, err)
	v, _ := wind.Values[1].Float()
	assert.Equal(t, 7.25, v)

	precip, err := tbl.Column("Precipitation")
	require.NoError(t, err)
	assert.True(t, precip.Values[1].IsNull)
}

func TestLoadJSONSingleObject(t *testing.T) {
	path := writeFile(t, "day.json", `{"Date": "2024-01-01", "Wind": 5}`)

	tbl, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.RowCount())
}

func saveWorkbook(t *testing.T, f *excelize.File) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "weather.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}

func numFmtStyle(t *testing.T, f *excelize.File, id int) int {
	t.Helper()
	style, err := f.NewStyle(&excelize.Style{NumFmt: id})
	require.NoError(t, err)
	return style
}

func TestLoadXLSXDateCells(t *testing.T) {
	f := excelize.NewFile()
	const sheet = "Sheet1"
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"Date", "Temperature_Max", "Temperature_Min", "Precipitation", "Wind"}))

	dates := []time.Time{
		time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC),
		time.Date(1950, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC),
	}
	// d-mmm-yy, mm-dd-yy, m/d/yy h:mm, and the style excelize picks for time.Time.
	formats := []int{15, 14, 22, 0}
	integer := numFmtStyle(t, f, 1)
	for i, d := range dates {
		row := i + 2
		cell, err := excelize.CoordinatesToCellName(1, row)
		require.NoError(t, err)
		require.NoError(t, f.SetCellValue(sheet, cell, d))
		if formats[i] != 0 {
			require.NoError(t, f.SetCellStyle(sheet, cell, cell, numFmtStyle(t, f, formats[i])))
		}

		start, err := excelize.CoordinatesToCellName(2, row)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, start, &[]interface{}{10.6 + float64(i), 2.4, 0.25, 5}))
		end, err := excelize.CoordinatesToCellName(3, row)
		require.NoError(t, err)
		require.NoError(t, f.SetCellStyle(sheet, start, end, integer))
	}

	tbl, err := Load(saveWorkbook(t, f))
	require.NoError(t, err)
	require.Equal(t, 4, tbl.RowCount())

	date, err := tbl.Column("Date")
	require.NoError(t, err)
	require.Equal(t, datatable.TypeDate, date.Type)
	for i, want := range dates {
		got, ok := date.Values[i].Time()
		require.True(t, ok)
		assert.True(t, got.Equal(want), "row %d: got %v, want %v", i, got, want)
	}

	// Values come through as stored, not as the integer format shows them.
	tmax, err := tbl.Column("Temperature_Max")
	require.NoError(t, err)
	assert.Equal(t, datatable.TypeFloat, tmax.Type)
	v, _ := tmax.Values[0].Float()
	assert.Equal(t, 10.6, v)
	tmin, err := tbl.Column("Temperature_Min")
	require.NoError(t, err)
	v, _ = tmin.Values[0].Float()
	assert.Equal(t, 2.4, v)
}

func TestLoadXLSXMixedDateColumn(t *testing.T) {
	f := excelize.NewFile()
	const sheet = "Sheet1"
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"Date", "Wind"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), 5}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{"2024-01-06", 7}))

	tbl, err := Load(saveWorkbook(t, f))
	require.NoError(t, err)

	date, err := tbl.Column("Date")
	require.NoError(t, err)
	assert.Equal(t, datatable.TypeString, date.Type)
	assert.Equal(t, "2024-01-05", date.Values[0].Text())
	assert.Equal(t, "2024-01-06", date.Values[1].Text())

	// Plain numbers are not mistaken for dates.
	wind, err := tbl.Column("Wind")
	require.NoError(t, err)
	assert.Equal(t, datatable.TypeFloat, wind.Type)
}

func TestIsDateFormatCode(t *testing.T) {
	tests := map[string]bool{
		"yyyy-mm-dd":       true,
		"[$-409]d-mmm-yy":  true,
		"dd/mm/yyyy hh:mm": true,
		"0.00":             false,
		"#,##0 \"days\"":   false,
		"[Red]0.0":         false,
		"hh:mm:ss":         false,
		"General":          false,
	}
	for code, want := range tests {
		assert.Equal(t, want, isDateFormatCode(code), code)
	}
	assert.True(t, isBuiltInDateFormat(14))
	assert.True(t, isBuiltInDateFormat(22))
	assert.False(t, isBuiltInDateFormat(1))
}
