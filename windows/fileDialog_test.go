package windows

import (
	"os"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{"b.xlsx", "a.csv", "notes.doc", "rows.json", "Readme"} {
		writeFile(t, dir, name, "x")
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "station"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	writeFile(t, filepath.Join(dir, "station"), "wind.parquet", "x")
	return dir
}

func TestListDataFiles(t *testing.T) {
	entries, err := listDataFiles(dataDir(t))
	require.NoError(t, err)
	assert.Equal(t, []dirEntry{
		{name: "station", isDir: true},
		{name: "a.csv"},
		{name: "b.xlsx"},
		{name: "rows.json"},
	}, entries)

	_, err = listDataFiles(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}

func TestDataFileDialogChoosesFile(t *testing.T) {
	w := test.NewTempApp(t).NewWindow("test")
	dir := dataDir(t)

	var chosen string
	pd := NewDataFileDialog(w, dir, func(path string, err error) {
		require.NoError(t, err)
		chosen = path
	})
	pd.Show()
	assert.Equal(t, []string{"station", "a.csv", "b.xlsx", "rows.json"}, pd.Files())

	pd.fileList.Select(1)
	assert.Equal(t, filepath.Join(dir, "a.csv"), chosen)
}

func TestDataFileDialogEntersDirectory(t *testing.T) {
	w := test.NewTempApp(t).NewWindow("test")
	dir := dataDir(t)

	pd := NewDataFileDialog(w, dir, func(string, error) {
		t.Fatal("no file should be chosen")
	})
	pd.Show()

	pd.fileList.Select(0)
	assert.Equal(t, filepath.Join(dir, "station"), pd.currentPath)
	assert.Equal(t, []string{"wind.parquet"}, pd.Files())

	pd.open(filepath.Join(dir, "absent"))
	assert.Equal(t, filepath.Join(dir, "station"), pd.currentPath)
}
