// Package weather validates a loaded weather table and prepares the series
// behind the dashboard's temperature, precipitation and wind charts.
package weather

import (
	"fmt"
	"strings"
)

// Required column names. Matching is exact and case-sensitive.
const (
	ColumnDate           = "Date"
	ColumnTemperatureMax = "Temperature_Max"
	ColumnTemperatureMin = "Temperature_Min"
	ColumnPrecipitation  = "Precipitation"
	ColumnWind           = "Wind"
)

// RequiredColumns is the schema every dataset must contain. Extra columns are
// ignored.
var RequiredColumns = []string{
	ColumnDate,
	ColumnTemperatureMax,
	ColumnTemperatureMin,
	ColumnPrecipitation,
	ColumnWind,
}

// ChartKind selects one of the canned charts.
type ChartKind int

const (
	Temperature ChartKind = iota
	Precipitation
	Wind
)

// ChartKinds lists every kind in display order.
var ChartKinds = []ChartKind{Temperature, Precipitation, Wind}

func (k ChartKind) String() string {
	switch k {
	case Temperature:
		return "temperature"
	case Precipitation:
		return "precipitation"
	case Wind:
		return "wind"
	default:
		return fmt.Sprintf("unknown(%d)", k)
	}
}

// ParseChartKind accepts the names returned by ChartKind.String, ignoring case.
func ParseChartKind(s string) (ChartKind, error) {
	for _, k := range ChartKinds {
		if strings.EqualFold(strings.TrimSpace(s), k.String()) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown chart %q (want temperature, precipitation or wind)", s)
}

// Style is how a chart draws its values.
type Style int

const (
	StyleLine Style = iota
	StyleBar
)

func (s Style) String() string {
	if s == StyleBar {
		return "bar"
	}
	return "line"
}

// SeriesSpec describes one value column of a chart.
type SeriesSpec struct {
	// Column is the table column the values come from.
	Column string
	// Label is the legend text.
	Label string
	// Colour is a 3 byte hex colour without the #.
	Colour string
}

// ChartSpec is the fixed definition of a chart kind.
type ChartSpec struct {
	Kind    ChartKind
	Title   string
	XLabel  string
	YLabel  string
	Style   Style
	Series  []SeriesSpec
	Caption string
}

var chartSpecs = map[ChartKind]ChartSpec{
	Temperature: {
		Kind:   Temperature,
		Title:  "Temperature Trends",
		XLabel: ColumnDate,
		YLabel: "Temperature (°C)",
		Style:  StyleLine,
		Series: []SeriesSpec{
			{Column: ColumnTemperatureMax, Label: "Max Temperature", Colour: "FF5733"},
			{Column: ColumnTemperatureMin, Label: "Min Temperature", Colour: "33C9FF"},
		},
		Caption: "Daily temperature trends, showcasing maximum and minimum values.",
	},
	Precipitation: {
		Kind:   Precipitation,
		Title:  "Precipitation Trends",
		XLabel: ColumnDate,
		YLabel: "Precipitation (mm)",
		Style:  StyleBar,
		Series: []SeriesSpec{
			{Column: ColumnPrecipitation, Label: "Precipitation", Colour: "87CEEB"},
		},
		Caption: "Daily precipitation levels in millimeters.",
	},
	Wind: {
		Kind:   Wind,
		Title:  "Wind Speed Trends",
		XLabel: ColumnDate,
		YLabel: "Wind Speed (km/h)",
		Style:  StyleLine,
		Series: []SeriesSpec{
			{Column: ColumnWind, Label: "Wind", Colour: "FFB6C1"},
		},
		Caption: "Daily wind speed measured in kilometers per hour.",
	},
}

// Spec returns the chart definition for k.
func Spec(k ChartKind) (ChartSpec, error) {
	spec, ok := chartSpecs[k]
	if !ok {
		return ChartSpec{}, fmt.Errorf("unknown chart kind %d", int(k))
	}
	return spec, nil
}
