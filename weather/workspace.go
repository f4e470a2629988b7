package weather

import (
	"weatherdash/datatable"
)

// LoadFunc reads a dataset from path. loader.Load satisfies it.
type LoadFunc func(path string) (*datatable.Table, error)

// Workspace is the handle a display keeps to the currently loaded dataset.
// It is not safe for concurrent use; displays call it from one goroutine.
type Workspace struct {
	load   LoadFunc
	table  *datatable.Table
	source string
}

// NewWorkspace returns an empty workspace that loads files with load.
func NewWorkspace(load LoadFunc) *Workspace {
	return &Workspace{load: load}
}

// Load reads path and, only if that succeeds, replaces the current table.
func (w *Workspace) Load(path string) error {
	table, err := w.load(path)
	if err != nil {
		return err
	}
	w.table = table
	w.source = path
	return nil
}

// Loaded reports whether a table has been loaded.
func (w *Workspace) Loaded() bool {
	return w.table != nil
}

// Table returns the current table, or nil before the first successful load.
func (w *Workspace) Table() *datatable.Table {
	return w.table
}

// Source returns the path the current table was loaded from.
func (w *Workspace) Source() string {
	return w.source
}

// Prepare prepares kind from the current table.
func (w *Workspace) Prepare(kind ChartKind) (*PreparedSeries, error) {
	return Prepare(w.table, kind)
}
