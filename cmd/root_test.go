package cmd

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weatherdash/loader"
	"weatherdash/weather"
)

const weatherCSV = "Date,Temperature_Max,Temperature_Min,Precipitation,Wind\n" +
	"2024-01-02,12,3,1.5,7\n" +
	"2024-01-01,10,2,0,5\n"

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	tc := NewRootCmd("test_weatherdash", "", "")
	stdout := &bytes.Buffer{}
	tc.SetArgs(args)
	tc.SetOut(stdout)
	tc.SetErr(&bytes.Buffer{})
	err := tc.Execute()
	return stdout.String(), err
}

func TestRootOpensDashboard(t *testing.T) {
	var opened []string
	orig := openDashboard
	openDashboard = func(path string) error {
		opened = append(opened, path)
		return nil
	}
	t.Cleanup(func() { openDashboard = orig })

	_, err := execute(t)
	require.NoError(t, err)
	_, err = execute(t, "weather.csv")
	require.NoError(t, err)
	assert.Equal(t, []string{"", "weather.csv"}, opened)

	_, err = execute(t, "a.csv", "b.csv")
	assert.Error(t, err)
}

func TestVerboseFlag(t *testing.T) {
	t.Cleanup(func() { log.SetLevel(log.InfoLevel) })

	path := writeFile(t, "weather.csv", weatherCSV)
	_, err := execute(t, "validate", "-v", path)
	require.NoError(t, err)
	assert.Equal(t, log.DebugLevel, log.GetLevel())
}

func TestVersionFlag(t *testing.T) {
	Version = "v1.2.3"
	t.Cleanup(func() { Version = "" })

	out, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "v1.2.3")
}

func TestValidateCmd(t *testing.T) {
	path := writeFile(t, "weather.csv", weatherCSV)

	out, err := execute(t, "validate", path)
	require.NoError(t, err)
	assert.Equal(t, "rows:    2\ncolumns: 5\ndates:   2024-01-01 to 2024-01-02\n", out)
}

func TestValidateCmdErrors(t *testing.T) {
	_, err := execute(t, "validate", writeFile(t, "wind.csv", "Date,Wind\n2024-01-01,5\n"))
	var schemaErr *weather.SchemaError
	assert.ErrorAs(t, err, &schemaErr)

	_, err = execute(t, "validate", writeFile(t, "bad.csv", "Date,Temperature_Max,Temperature_Min,Precipitation,Wind\nsoon,1,1,1,1\n"))
	var dateErr *weather.DateParseError
	assert.ErrorAs(t, err, &dateErr)

	_, err = execute(t, "validate", filepath.Join(t.TempDir(), "absent.csv"))
	var loadErr *loader.LoadError
	assert.ErrorAs(t, err, &loadErr)

	_, err = execute(t, "validate")
	assert.Error(t, err)
}

func TestRenderCmd(t *testing.T) {
	path := writeFile(t, "weather.csv", weatherCSV)
	out := filepath.Join(t.TempDir(), "precipitation.png")

	_, err := execute(t, "render", path, "--chart", "precipitation", "--out", out, "--width", "640", "--height", "320")
	require.NoError(t, err)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 640, cfg.Width)
	assert.Equal(t, 320, cfg.Height)
}

func TestRenderCmdErrors(t *testing.T) {
	path := writeFile(t, "weather.csv", weatherCSV)

	_, err := execute(t, "render", path)
	assert.Error(t, err, "--out is required")

	_, err = execute(t, "render", path, "--chart", "humidity", "--out", filepath.Join(t.TempDir(), "x.png"))
	assert.Error(t, err)
}

func TestExportCmd(t *testing.T) {
	path := writeFile(t, "weather.csv", weatherCSV)
	dir := t.TempDir()

	out := filepath.Join(dir, "wind.csv")
	_, err := execute(t, "export", path, "-c", "wind", "-o", out)
	require.NoError(t, err)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "Date,Wind\n2024-01-01,5\n2024-01-02,7\n", string(data))

	// An explicit format wins over the extension.
	out = filepath.Join(dir, "temperature.out")
	_, err = execute(t, "export", path, "--out", out, "--format", "parquet")
	require.NoError(t, err)
	require.NoError(t, os.Rename(out, out+".parquet"))
	tbl, err := loader.Load(out + ".parquet")
	require.NoError(t, err)
	assert.Equal(t, []string{"Date", "Temperature_Max", "Temperature_Min"}, tbl.ColumnNames())

	_, err = execute(t, "export", path, "--out", filepath.Join(dir, "noext"))
	assert.Error(t, err)
}
