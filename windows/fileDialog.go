package windows

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"weatherdash/loader"
)

// dirEntry is one row of the file dialog.
type dirEntry struct {
	name  string
	isDir bool
}

// listDataFiles returns the visible subdirectories of dir followed by the
// files the loader can read, each group sorted by name.
func listDataFiles(dir string) ([]dirEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var dirs, files []dirEntry
	for _, e := range entries {
		switch {
		case e.IsDir() && !strings.HasPrefix(e.Name(), "."):
			dirs = append(dirs, dirEntry{name: e.Name(), isDir: true})
		case !e.IsDir() && loader.DetectFileType(e.Name()) != loader.FileTypeUnknown:
			files = append(files, dirEntry{name: e.Name()})
		}
	}
	byName := func(s []dirEntry) func(i, j int) bool {
		return func(i, j int) bool { return s[i].name < s[j].name }
	}
	sort.Slice(dirs, byName(dirs))
	sort.Slice(files, byName(files))
	return append(dirs, files...), nil
}

// DataFileDialog lets the user browse to a weather data file.
type DataFileDialog struct {
	dialog      dialog.Dialog
	window      fyne.Window
	onChosen    func(string, error)
	fileList    *widget.List
	entries     []dirEntry
	homeDir     string
	currentPath string
	pathLabel   *widget.Label
}

// NewDataFileDialog creates a dialog starting in startDir, or the home
// directory when startDir is empty. onChosen receives the selected path.
func NewDataFileDialog(w fyne.Window, startDir string, onChosen func(string, error)) *DataFileDialog {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	if startDir == "" {
		startDir = home
	}
	return &DataFileDialog{
		window:      w,
		onChosen:    onChosen,
		homeDir:     home,
		currentPath: startDir,
	}
}

// Show builds the dialog and lists the start directory.
func (pd *DataFileDialog) Show() {
	pd.pathLabel = widget.NewLabel(pd.currentPath)
	pd.pathLabel.Truncation = fyne.TextTruncateEllipsis
	pd.pathLabel.TextStyle = fyne.TextStyle{Bold: true}

	pd.fileList = widget.NewList(
		func() int { return len(pd.entries) },
		func() fyne.CanvasObject {
			return container.NewHBox(widget.NewIcon(theme.DocumentIcon()), widget.NewLabel("template"))
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			row := obj.(*fyne.Container)
			e := pd.entries[id]
			icon := theme.DocumentIcon()
			if e.isDir {
				icon = theme.FolderIcon()
			}
			row.Objects[0].(*widget.Icon).SetResource(icon)
			row.Objects[1].(*widget.Label).SetText(e.name)
		},
	)
	pd.fileList.OnSelected = pd.choose

	toolbar := widget.NewToolbar(
		widget.NewToolbarAction(theme.HomeIcon(), func() { pd.open(pd.homeDir) }),
		widget.NewToolbarAction(theme.NavigateBackIcon(), func() { pd.open(filepath.Dir(pd.currentPath)) }),
		widget.NewToolbarAction(theme.ViewRefreshIcon(), func() { pd.open(pd.currentPath) }),
	)

	hint := widget.NewLabel("Showing " + strings.Join(loader.SupportedExtensions(), ", ") + " files")
	hint.TextStyle = fyne.TextStyle{Italic: true}

	content := container.NewBorder(
		container.NewVBox(
			container.NewBorder(nil, nil, toolbar, nil, pd.pathLabel),
			widget.NewSeparator(),
		),
		hint, nil, nil,
		pd.fileList,
	)

	pd.dialog = dialog.NewCustom("Browse File", "Cancel", content, pd.window)
	pd.dialog.Resize(fyne.NewSize(700, 500))
	pd.open(pd.currentPath)
	pd.dialog.Show()
}

// Files returns the names currently listed.
func (pd *DataFileDialog) Files() []string {
	names := make([]string, len(pd.entries))
	for i, e := range pd.entries {
		names[i] = e.name
	}
	return names
}

func (pd *DataFileDialog) choose(id widget.ListItemID) {
	e := pd.entries[id]
	path := filepath.Join(pd.currentPath, e.name)
	if e.isDir {
		pd.open(path)
		return
	}
	pd.dialog.Hide()
	pd.onChosen(path, nil)
}

// open lists dir. On error the previous listing stays.
func (pd *DataFileDialog) open(dir string) {
	entries, err := listDataFiles(dir)
	if err != nil {
		dialog.ShowError(err, pd.window)
		return
	}
	pd.currentPath = dir
	pd.entries = entries
	pd.pathLabel.SetText(dir)
	pd.fileList.UnselectAll()
	pd.fileList.Refresh()
}
