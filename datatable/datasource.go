package datatable

// DataSource is the read-only view a display needs to show a table.
// Out of range indexes yield ErrInvalidRow or ErrInvalidColumn.
type DataSource interface {
	RowCount() int
	ColumnCount() int
	ColumnName(col int) (string, error)
	ColumnType(col int) (DataType, error)
	Cell(row, col int) (Value, error)
	Row(row int) ([]Value, error)

	// Metadata describes where the data came from; see the Meta keys.
	Metadata() Metadata
}

var _ DataSource = (*Table)(nil)
