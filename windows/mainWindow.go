package windows

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	log "github.com/sirupsen/logrus"

	"weatherdash/datatable"
	"weatherdash/export"
	"weatherdash/loader"
	"weatherdash/render"
	"weatherdash/weather"
)

const (
	windowTitle  = "Weather Analysis Dashboard"
	chartWidth   = 900
	chartHeight  = 450
	tabChart     = "Chart"
	tabDataTable = "Data"
)

var chartButtonLabels = map[weather.ChartKind]string{
	weather.Temperature:   "Temperature Trends",
	weather.Precipitation: "Precipitation Trends",
	weather.Wind:          "Wind Trends",
}

// ChartLabel returns the button label for a chart kind.
func ChartLabel(kind weather.ChartKind) string {
	return chartButtonLabels[kind]
}

// Dashboard is the main window: upload a file, then pick a chart.
type Dashboard struct {
	a         fyne.App
	w         fyne.Window
	workspace *weather.Workspace
	current   *weather.PreparedSeries

	statusBar     *widget.Label
	captionLabel  *widget.Label
	chartImage    *canvas.Image
	preview       *DataPreview
	tabs          *container.AppTabs
	dataTab       *container.TabItem
	browseButton  *widget.Button
	exportButton  *widget.Button
	chartButtons  map[weather.ChartKind]*widget.Button
	lastDirectory string
}

// NewDashboard builds the dashboard window on a. Call ShowAndRun to start it.
func NewDashboard(a fyne.App) *Dashboard {
	t := &Dashboard{
		a:            a,
		workspace:    weather.NewWorkspace(loader.Load),
		chartButtons: make(map[weather.ChartKind]*widget.Button),
	}
	t.a.Settings().SetTheme(&DashboardTheme{})

	t.w = t.a.NewWindow(windowTitle)
	t.w.Resize(fyne.NewSize(1000, 700))

	// Create status bar
	t.statusBar = widget.NewLabel("Ready")
	t.statusBar.TextStyle = fyne.TextStyle{Italic: true}
	bottom := container.NewHBox(t.statusBar)

	title := canvas.NewText(windowTitle, colorHeaderText)
	title.TextSize = 22
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.Alignment = fyne.TextAlignCenter
	top := container.NewStack(canvas.NewRectangle(colorHeader), container.NewPadded(title))

	t.browseButton = widget.NewButtonWithIcon("Browse File", theme.FolderOpenIcon(), t.OpenFile)
	t.browseButton.Importance = widget.HighImportance

	buttons := container.NewVBox(widget.NewLabel("Upload weather data"), t.browseButton, widget.NewSeparator())
	for _, kind := range weather.ChartKinds {
		b := widget.NewButton(ChartLabel(kind), func() {
			_ = t.ShowChart(kind)
		})
		t.chartButtons[kind] = b
		buttons.Add(b)
	}

	t.exportButton = widget.NewButtonWithIcon("Export Chart Data", theme.DocumentSaveIcon(), t.SaveChartData)
	t.exportButton.Disable()
	buttons.Add(widget.NewSeparator())
	buttons.Add(t.exportButton)

	t.chartImage = canvas.NewImageFromImage(nil)
	t.chartImage.FillMode = canvas.ImageFillContain
	t.chartImage.SetMinSize(fyne.NewSize(chartWidth/2, chartHeight/2))

	t.captionLabel = widget.NewLabel("Upload a file and choose a chart.")
	t.captionLabel.Alignment = fyne.TextAlignCenter
	t.captionLabel.Wrapping = fyne.TextWrapWord

	chartPane := container.NewBorder(nil, t.captionLabel, nil, nil, t.chartImage)

	t.preview = NewDataPreview()
	t.dataTab = container.NewTabItem(tabDataTable, t.preview.Widget())
	t.tabs = container.NewAppTabs(container.NewTabItem(tabChart, chartPane), t.dataTab)

	left := container.NewPadded(buttons)
	center := widget.NewCard("", "", t.tabs)

	t.w.SetContent(container.NewBorder(top, bottom, left, nil, center))
	return t
}

// Window returns the dashboard window.
func (t *Dashboard) Window() fyne.Window {
	return t.w
}

// ShowAndRun shows the window and runs the application loop.
func (t *Dashboard) ShowAndRun() {
	t.w.ShowAndRun()
}

// SetStatus updates the status bar message
func (t *Dashboard) SetStatus(message string) {
	if t.statusBar != nil {
		t.statusBar.SetText(message)
	}
}

// Status returns the status bar message.
func (t *Dashboard) Status() string {
	return t.statusBar.Text
}

// Caption returns the text under the chart.
func (t *Dashboard) Caption() string {
	return t.captionLabel.Text
}

// OpenFile shows the data file dialog and loads the chosen file.
func (t *Dashboard) OpenFile() {
	pd := NewDataFileDialog(t.w, t.lastDirectory, func(path string, err error) {
		if err != nil {
			t.showError("Error opening file", err)
			return
		}
		if path == "" {
			return
		}
		_ = t.LoadFile(path)
	})
	pd.Show()
}

// LoadFile loads path into the workspace and previews it. A failed load
// keeps the previous data and chart.
func (t *Dashboard) LoadFile(path string) error {
	t.SetStatus("Loading file: " + filepath.Base(path))
	if err := t.workspace.Load(path); err != nil {
		t.showError("Error loading file", err)
		return err
	}
	t.lastDirectory = filepath.Dir(path)

	table := t.workspace.Table()
	t.preview.SetSource(table)
	t.dataTab.Text = fmt.Sprintf("%s (%s)", tabDataTable, t.preview.Summary())
	t.tabs.Refresh()

	t.current = nil
	t.chartImage.Image = nil
	t.chartImage.Refresh()
	t.captionLabel.SetText("Choose a chart.")
	t.exportButton.Disable()

	t.SetStatus(loadedStatus(path, table))
	log.WithField("path", path).Info("file uploaded")
	return nil
}

func loadedStatus(path string, table *datatable.Table) string {
	meta := table.Metadata()
	status := fmt.Sprintf("Loaded %s file: %s (%d rows, %d columns",
		strings.ToUpper(meta[datatable.MetaFormat]), filepath.Base(path), table.RowCount(), table.ColumnCount())
	if sep, ok := meta[datatable.MetaSeparator]; ok {
		status += ", separator: " + sep
	}
	if sheet, ok := meta[datatable.MetaSheet]; ok {
		status += ", sheet: " + sheet
	}
	return status + ")"
}

// ShowChart prepares and draws kind from the loaded data.
func (t *Dashboard) ShowChart(kind weather.ChartKind) error {
	prepared, err := t.workspace.Prepare(kind)
	if err != nil {
		t.showError("Cannot draw "+ChartLabel(kind), err)
		return err
	}

	img, err := render.Image(prepared, render.Options{Width: chartWidth, Height: chartHeight})
	if err != nil {
		t.showError("Cannot draw "+ChartLabel(kind), err)
		return err
	}

	t.current = prepared
	t.chartImage.Image = img
	t.chartImage.Refresh()
	t.captionLabel.SetText(prepared.Caption)
	t.tabs.SelectIndex(0)
	t.exportButton.Enable()

	t.SetStatus(fmt.Sprintf("%s: %d days", ChartLabel(kind), prepared.Len()))
	return nil
}

// SaveChartData asks for a file name and exports the shown chart data.
func (t *Dashboard) SaveChartData() {
	if t.current == nil {
		dialog.ShowInformation("No chart", "Choose a chart first", t.w)
		return
	}
	save := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			t.showError("Error saving file", err)
			return
		}
		if writer == nil {
			return
		}
		path := writer.URI().Path()
		_ = writer.Close()
		_ = t.ExportChart(path)
	}, t.w)
	save.SetFileName(t.current.Spec.Kind.String() + ".csv")
	save.Show()
}

// ExportChart writes the shown chart data to path, in the format its
// extension names.
func (t *Dashboard) ExportChart(path string) error {
	if t.current == nil {
		err := errors.New("no chart to export")
		t.showError("Error exporting", err)
		return err
	}
	format, err := export.FormatFromPath(path)
	if err != nil {
		t.showError("Error exporting", err)
		return err
	}
	if err := export.Write(path, format, t.current); err != nil {
		t.showError("Error exporting", err)
		return err
	}
	t.SetStatus(fmt.Sprintf("Exported %s data to %s", ChartLabel(t.current.Spec.Kind), filepath.Base(path)))
	return nil
}

func (t *Dashboard) showError(title string, err error) {
	log.WithError(err).Error(title)
	t.SetStatus(title + ": " + userMessage(err))
	dialog.ShowError(err, t.w)
}

func userMessage(err error) string {
	if errors.Is(err, weather.ErrNoData) {
		return "Please upload a file first"
	}
	return err.Error()
}
