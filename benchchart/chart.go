// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchchart draws line charts of benchmark tables.
//
// A chart plots one or more series columns of a table against a
// shared x column. Each series is a line with circular point markers;
// the x axis is ticked at every x value in the data and padded 10% on
// either side.
package benchchart

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"strconv"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/stats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgsvg"
)

// Legend selects where a chart's legend goes.
type Legend int

const (
	// LegendUpperLeft anchors the legend in the upper left corner.
	LegendUpperLeft Legend = iota
	// LegendBest puts the legend in the corner covering the fewest
	// data points.
	LegendBest
)

func (l Legend) String() string {
	switch l {
	case LegendUpperLeft:
		return "upper-left"
	case LegendBest:
		return "best"
	}
	return fmt.Sprintf("Legend(%d)", int(l))
}

// Options describes what to chart and how to label it.
type Options struct {
	Title  string
	X      string   // x column; also the x-axis label
	YLabel string   // y-axis label
	Series []string // y columns, one line each, labeled by name

	// LogX selects a base 2 logarithmic x axis.
	LogX bool

	Legend Legend
}

var (
	ErrNoSeries = errors.New("no series to plot")
	ErrNoRows   = errors.New("table has no rows")
	ErrLogScale = errors.New("log scale requires positive x values")
)

// A MissingColumnError reports a column the table does not have.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("unknown column %q", e.Column)
}

// A NonNumericColumnError reports a column that cannot be plotted
// because its values are not numbers.
type NonNumericColumnError struct {
	Column string
	Type   string // Go type of the column's slice
}

func (e *NonNumericColumnError) Error() string {
	return fmt.Sprintf("column %q is %s, not numeric", e.Column, e.Type)
}

// A Chart is a plot built from a table, ready to be drawn.
//
// A Chart does not refer back to its table.
type Chart struct {
	Plot *plot.Plot

	// XMin and XMax are the padded bounds of the x axis.
	XMin, XMax float64

	// Ticks are the x values that carry tick marks.
	Ticks []float64

	// Legend is the corner the legend was put in.
	Legend Corner

	title string
}

// Title returns the chart's title.
func (c *Chart) Title() string {
	return c.title
}

// New builds the chart described by opts from t. t is not modified.
func New(t *table.Table, opts Options) (*Chart, error) {
	if len(opts.Series) == 0 {
		return nil, ErrNoSeries
	}
	xs, err := Float64s(t, opts.X)
	if err != nil {
		return nil, err
	}
	series := make([]plotter.XYs, len(opts.Series))
	for i, name := range opts.Series {
		ys, err := Float64s(t, name)
		if err != nil {
			return nil, err
		}
		xys := make(plotter.XYs, len(xs))
		for j := range xys {
			xys[j].X, xys[j].Y = xs[j], ys[j]
		}
		series[i] = xys
	}
	if len(xs) == 0 {
		return nil, ErrNoRows
	}
	xmin, xmax := XRange(xs)
	if opts.LogX {
		for _, x := range xs {
			if !(x > 0) {
				return nil, ErrLogScale
			}
		}
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = opts.X
	p.Y.Label.Text = opts.YLabel
	if opts.LogX {
		p.X.Scale = plot.LogScale{}
	}

	colors := seriesColors(len(series))
	var thumbs [][]plot.Thumbnailer
	for i, xys := range series {
		l, s, err := plotter.NewLinePoints(xys)
		if err != nil {
			return nil, fmt.Errorf("series %q: %w", opts.Series[i], err)
		}
		l.LineStyle.Color = colors[i]
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		s.GlyphStyle.Color = colors[i]
		s.GlyphStyle.Radius = vg.Points(3)
		p.Add(l, s)
		thumbs = append(thumbs, []plot.Thumbnailer{l, s})
	}

	// Add widened the axes to fit the data; override that.
	p.X.Min, p.X.Max = xmin, xmax
	ticks := Ticks(xs)
	p.X.Tick.Marker = constantTicks(ticks)

	corner := UpperLeft
	if opts.Legend == LegendBest {
		corner = bestCorner(series, p.X.Min, p.X.Max, p.Y.Min, p.Y.Max, opts.LogX)
	}
	p.Legend.Top, p.Legend.Left = corner.top(), corner.left()
	for i, name := range opts.Series {
		p.Legend.Add(name, thumbs[i]...)
	}

	return &Chart{
		Plot:   p,
		XMin:   xmin,
		XMax:   xmax,
		Ticks:  ticks,
		Legend: corner,
		title:  opts.Title,
	}, nil
}

// Float64s returns column name of t as float64s. The column must hold
// ints or float64s.
func Float64s(t *table.Table, name string) ([]float64, error) {
	col := t.Column(name)
	if col == nil {
		return nil, &MissingColumnError{name}
	}
	switch col := col.(type) {
	case []float64:
		return col, nil
	case []int:
		var xs []float64
		slice.Convert(&xs, col)
		return xs, nil
	}
	return nil, &NonNumericColumnError{name, fmt.Sprintf("%T", col)}
}

// XRange returns the padded x-axis bounds for xs: 0.9 times the least
// value and 1.1 times the greatest. xs must not be empty.
func XRange(xs []float64) (min, max float64) {
	min, max = stats.Bounds(xs)
	return 0.9 * min, 1.1 * max
}

// Ticks returns the distinct values of xs in order of first
// appearance.
func Ticks(xs []float64) []float64 {
	return slice.Nub(xs).([]float64)
}

func constantTicks(xs []float64) plot.ConstantTicks {
	ticks := make(plot.ConstantTicks, len(xs))
	for i, x := range xs {
		ticks[i] = plot.Tick{Value: x, Label: strconv.FormatFloat(x, 'g', -1, 64)}
	}
	return ticks
}

// seriesColors returns n qualitative colors, cycling if n exceeds the
// palette.
func seriesColors(n int) []color.Color {
	const paletteMax = 9
	size := n
	if size < 3 {
		size = 3
	} else if size > paletteMax {
		size = paletteMax
	}
	pal, err := brewer.GetPalette(brewer.TypeQualitative, "Set1", size)
	if err != nil {
		// Set1 exists in every size from 3 to 9.
		panic(err)
	}
	colors := make([]color.Color, n)
	for i := range colors {
		colors[i] = pal.Colors()[i%size]
	}
	return colors
}

// WriteSVG draws c as SVG of the given size to w.
func (c *Chart) WriteSVG(w io.Writer, width, height vg.Length) error {
	can := vgsvg.New(width, height)
	c.Plot.Draw(draw.New(can))
	_, err := can.WriteTo(w)
	return err
}

// WritePNG draws c as PNG of the given size and resolution to w.
func (c *Chart) WritePNG(w io.Writer, width, height vg.Length, dpi int) error {
	can := vgimg.PngCanvas{Canvas: vgimg.NewWith(vgimg.UseWH(width, height),
		vgimg.UseDPI(dpi), vgimg.UseBackgroundColor(color.White))}
	c.Plot.Draw(draw.New(can))
	_, err := can.WriteTo(w)
	return err
}
