// Package render draws prepared weather series as PNG charts.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"weatherdash/weather"
)

const (
	DefaultWidth  = 1000
	DefaultHeight = 500
)

// ErrNothingToDraw is returned for a series without any finite point.
var ErrNothingToDraw = errors.New("nothing to draw")

// Options control the size of the rendered chart.
type Options struct {
	Width  int
	Height int
}

func (o Options) size() (int, int) {
	w, h := o.Width, o.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return w, h
}

// PNG writes the chart for s to w.
func PNG(w io.Writer, s *weather.PreparedSeries, opts Options) error {
	if s == nil || s.Len() == 0 {
		return ErrNothingToDraw
	}
	switch s.Spec.Style {
	case weather.StyleBar:
		return renderBar(w, s, opts)
	default:
		return renderLine(w, s, opts)
	}
}

// Image renders s and decodes the result, for displays that show images.
func Image(s *weather.PreparedSeries, opts Options) (image.Image, error) {
	var buf bytes.Buffer
	if err := PNG(&buf, s, opts); err != nil {
		return nil, err
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("failed to decode chart: %w", err)
	}
	return img, nil
}

func renderLine(w io.Writer, s *weather.PreparedSeries, opts Options) error {
	width, height := opts.size()

	var series []chart.Series
	var first, last time.Time
	for _, vs := range s.Series {
		xs, ys := finitePoints(s.Dates, vs.Values)
		if len(xs) == 0 {
			continue
		}
		for _, x := range xs {
			if first.IsZero() || x.Before(first) {
				first = x
			}
			if last.IsZero() || x.After(last) {
				last = x
			}
		}
		colour := drawing.ColorFromHex(vs.Colour)
		series = append(series, chart.TimeSeries{
			Name:    vs.Label,
			Style:   chart.Style{StrokeColor: colour, StrokeWidth: 2},
			XValues: xs,
			YValues: ys,
		})
	}
	if len(series) == 0 {
		return ErrNothingToDraw
	}

	graph := chart.Chart{
		Title:      s.Spec.Title,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 40}},
		XAxis: chart.XAxis{
			Name:           s.Spec.XLabel,
			ValueFormatter: chart.TimeValueFormatterWithFormat(time.DateOnly),
		},
		YAxis: chart.YAxis{
			Name:  s.Spec.YLabel,
			Range: valueRange(s, false),
		},
		Series: series,
	}
	if !last.After(first) {
		// A single day has no width; give it one either side.
		graph.XAxis.Range = &chart.ContinuousRange{
			Min: float64(first.Add(-12 * time.Hour).UnixNano()),
			Max: float64(first.Add(12 * time.Hour).UnixNano()),
		}
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph), caption(s.Caption, width, height)}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render %s chart: %w", s.Spec.Kind, err)
	}
	return nil
}

func renderBar(w io.Writer, s *weather.PreparedSeries, opts Options) error {
	width, height := opts.size()

	var bars []chart.Value
	for _, vs := range s.Series {
		colour := drawing.ColorFromHex(vs.Colour)
		for i, v := range vs.Values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			bars = append(bars, chart.Value{
				Label: s.Dates[i].Format(time.DateOnly),
				Value: v,
				Style: chart.Style{FillColor: colour, StrokeColor: colour},
			})
		}
	}
	if len(bars) == 0 {
		return ErrNothingToDraw
	}

	spacing := 4
	barWidth := (width-120)/len(bars) - spacing
	if barWidth < 1 {
		barWidth, spacing = 1, 0
	}

	graph := chart.BarChart{
		Title:      s.Spec.Title,
		Width:      width,
		Height:     height,
		BarWidth:   barWidth,
		BarSpacing: spacing,
		Background: chart.Style{Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 40}},
		YAxis: chart.YAxis{
			Name:  s.Spec.YLabel,
			Range: valueRange(s, true),
		},
		Bars: bars,
	}
	graph.Elements = []chart.Renderable{caption(s.Caption, width, height)}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render %s chart: %w", s.Spec.Kind, err)
	}
	return nil
}

// finitePoints drops NaN and infinite values together with their dates.
func finitePoints(dates []time.Time, values []float64) ([]time.Time, []float64) {
	xs := make([]time.Time, 0, len(values))
	ys := make([]float64, 0, len(values))
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		xs = append(xs, dates[i])
		ys = append(ys, v)
	}
	return xs, ys
}

// valueRange spans every finite value with some headroom. Bars always
// include zero.
func valueRange(s *weather.PreparedSeries, fromZero bool) *chart.ContinuousRange {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, vs := range s.Series {
		for _, v := range vs.Values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if math.IsInf(lo, 1) {
		lo, hi = 0, 1
	}
	if fromZero {
		lo = math.Min(lo, 0)
		hi = math.Max(hi, 0)
	}

	pad := (hi - lo) * 0.1
	if pad == 0 {
		pad = 1
	}
	r := &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
	if fromZero && lo >= 0 {
		r.Min = 0
	}
	return r
}

// caption writes text centred along the bottom edge of the image.
func caption(text string, width, height int) chart.Renderable {
	return func(r chart.Renderer, _ chart.Box, defaults chart.Style) {
		if text == "" {
			return
		}
		font := defaults.Font
		if font == nil {
			f, err := chart.GetDefaultFont()
			if err != nil {
				return
			}
			font = f
		}
		style := chart.Style{Font: font, FontSize: 10, FontColor: drawing.ColorFromHex("555555")}
		style.WriteTextOptionsToRenderer(r)

		box := r.MeasureText(text)
		x := (width - box.Width()) / 2
		if x < 0 {
			x = 0
		}
		r.Text(text, x, height-10)
	}
}
