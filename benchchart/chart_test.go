// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchchart

import (
	"bytes"
	"context"
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/aclements/go-gg/table"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

func threadsTable() *table.Table {
	return new(table.Builder).
		Add("Threads", []int{1, 2, 4, 8}).
		Add("libcuckoo", []float64{10, 20, 15, 30}).
		Add("tbb", []float64{5, 9, 12, 13}).
		Add("Label", []string{"a", "b", "c", "d"}).
		Done()
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestXRange(t *testing.T) {
	min, max := XRange([]float64{4, 1, 8, 2})
	if !near(min, 0.9) || !near(max, 8.8) {
		t.Errorf("want [0.9, 8.8], got [%v, %v]", min, max)
	}
}

func TestTicks(t *testing.T) {
	got := Ticks([]float64{1, 1, 2, 4, 2, 8})
	if want := []float64{1, 2, 4, 8}; !reflect.DeepEqual(got, want) {
		t.Errorf("want %v, got %v", want, got)
	}
}

func TestNew(t *testing.T) {
	tab := threadsTable()
	c, err := New(tab, Options{
		Title:  "Insert throughput",
		X:      "Threads",
		YLabel: "Mops/sec",
		Series: []string{"libcuckoo", "tbb"},
	})
	if err != nil {
		t.Fatal(err)
	}

	if !near(c.XMin, 0.9) || !near(c.XMax, 8.8) {
		t.Errorf("x range: want [0.9, 8.8], got [%v, %v]", c.XMin, c.XMax)
	}
	p := c.Plot
	if !near(p.X.Min, 0.9) || !near(p.X.Max, 8.8) {
		t.Errorf("plot x range: want [0.9, 8.8], got [%v, %v]", p.X.Min, p.X.Max)
	}
	if p.Title.Text != "Insert throughput" || c.Title() != "Insert throughput" {
		t.Errorf("wrong title %q", p.Title.Text)
	}
	if p.X.Label.Text != "Threads" || p.Y.Label.Text != "Mops/sec" {
		t.Errorf("wrong axis labels %q, %q", p.X.Label.Text, p.Y.Label.Text)
	}
	if _, ok := p.X.Scale.(plot.LogScale); ok {
		t.Errorf("unexpected log scale")
	}

	var ticks []float64
	for _, tk := range p.X.Tick.Marker.Ticks(p.X.Min, p.X.Max) {
		ticks = append(ticks, tk.Value)
	}
	if want := []float64{1, 2, 4, 8}; !reflect.DeepEqual(ticks, want) || !reflect.DeepEqual(c.Ticks, want) {
		t.Errorf("ticks: want %v, got %v (chart %v)", want, ticks, c.Ticks)
	}

	if c.Legend != UpperLeft || !p.Legend.Top || !p.Legend.Left {
		t.Errorf("want upper left legend, got %v (top=%v left=%v)", c.Legend, p.Legend.Top, p.Legend.Left)
	}

	// The table must be untouched.
	if got := tab.Column("Threads"); !reflect.DeepEqual(got, []int{1, 2, 4, 8}) {
		t.Errorf("x column modified: %v", got)
	}
	if got := tab.Column("libcuckoo"); !reflect.DeepEqual(got, []float64{10, 20, 15, 30}) {
		t.Errorf("series column modified: %v", got)
	}
}

func TestNewLogX(t *testing.T) {
	tab := new(table.Builder).
		Add("Hashpower", []int{1024, 4096, 16384}).
		Add("tbb", []float64{1, 2, 3}).
		Done()
	c, err := New(tab, Options{X: "Hashpower", Series: []string{"tbb"}, LogX: true})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Plot.X.Scale.(plot.LogScale); !ok {
		t.Errorf("want log scale, got %T", c.Plot.X.Scale)
	}

	tab = new(table.Builder).
		Add("x", []float64{0, 1, 2}).
		Add("y", []float64{1, 2, 3}).
		Done()
	if _, err := New(tab, Options{X: "x", Series: []string{"y"}, LogX: true}); err != ErrLogScale {
		t.Errorf("want ErrLogScale, got %v", err)
	}
}

func TestNewErrors(t *testing.T) {
	tab := threadsTable()
	for _, test := range []struct {
		name string
		opts Options
		want error
	}{
		{"missing series", Options{X: "Threads", Series: []string{"libcuckoo", "cuckoo"}}, &MissingColumnError{"cuckoo"}},
		{"missing x", Options{X: "Cores", Series: []string{"tbb"}}, &MissingColumnError{"Cores"}},
		{"text x", Options{X: "Label", Series: []string{"tbb"}}, &NonNumericColumnError{"Label", "[]string"}},
		{"text series", Options{X: "Threads", Series: []string{"Label"}}, &NonNumericColumnError{"Label", "[]string"}},
		{"no series", Options{X: "Threads"}, ErrNoSeries},
	} {
		t.Run(test.name, func(t *testing.T) {
			c, err := New(tab, test.opts)
			if c != nil {
				t.Errorf("want no chart")
			}
			if !reflect.DeepEqual(err, test.want) {
				t.Errorf("want %v, got %v", test.want, err)
			}
		})
	}

	empty := new(table.Builder).Add("Threads", []int{}).Add("tbb", []float64{}).Done()
	if _, err := New(empty, Options{X: "Threads", Series: []string{"tbb"}}); err != ErrNoRows {
		t.Errorf("want ErrNoRows, got %v", err)
	}
}

func TestLegendBest(t *testing.T) {
	// Falling data crowds the upper left and lower right.
	tab := new(table.Builder).
		Add("x", []int{1, 2, 3, 4}).
		Add("y", []float64{10, 7, 4, 1}).
		Done()
	c, err := New(tab, Options{X: "x", Series: []string{"y"}, Legend: LegendBest})
	if err != nil {
		t.Fatal(err)
	}
	if c.Legend != UpperRight || !c.Plot.Legend.Top || c.Plot.Legend.Left {
		t.Errorf("want upper right legend, got %v", c.Legend)
	}
}

func TestBestCorner(t *testing.T) {
	for _, test := range []struct {
		pts  plotter.XYs
		want Corner
	}{
		{nil, UpperRight},
		{plotter.XYs{{1, 1}}, UpperLeft},
		{plotter.XYs{{1, 1}, {0, 1}}, LowerLeft},
		{plotter.XYs{{1, 1}, {0, 1}, {0, 0}}, LowerRight},
		{plotter.XYs{{1, 1}, {0, 1}, {0, 0}, {1, 0}, {0.5, 0.5}}, UpperRight},
	} {
		got := bestCorner([]plotter.XYs{test.pts}, 0, 1, 0, 1, false)
		if got != test.want {
			t.Errorf("%v: want %v, got %v", test.pts, test.want, got)
		}
	}

	// In log space, 2 is the middle of [1, 4].
	got := bestCorner([]plotter.XYs{{{1, 1}, {2, 1}}}, 1, 4, 0, 1, true)
	if got != UpperRight {
		t.Errorf("log x: want %v, got %v", UpperRight, got)
	}
}

func TestWrite(t *testing.T) {
	c, err := New(threadsTable(), Options{X: "Threads", Series: []string{"libcuckoo"}})
	if err != nil {
		t.Fatal(err)
	}
	var svg, png bytes.Buffer
	if err := c.WriteSVG(&svg, 4*vg.Inch, 3*vg.Inch); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(svg.String(), "<svg") {
		t.Errorf("SVG output has no <svg> element")
	}
	if err := c.WritePNG(&png, 4*vg.Inch, 3*vg.Inch, 72); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(png.Bytes(), []byte("\x89PNG")) {
		t.Errorf("PNG output lacks PNG signature")
	}
}

type recordDisplay struct {
	shown []*Chart
}

func (d *recordDisplay) Show(ctx context.Context, c *Chart) error {
	d.shown = append(d.shown, c)
	return nil
}

func TestRenderTo(t *testing.T) {
	tab := threadsTable()
	d := new(recordDisplay)
	opts := Options{X: "Threads", Series: []string{"tbb"}}
	for i := 0; i < 2; i++ {
		if err := RenderTo(context.Background(), tab, opts, d); err != nil {
			t.Fatal(err)
		}
	}
	if len(d.shown) != 2 || d.shown[0] == d.shown[1] || d.shown[0].Plot == d.shown[1].Plot {
		t.Errorf("want two independent charts, got %v", d.shown)
	}

	opts.Series = append(opts.Series, "missing")
	err := RenderTo(context.Background(), tab, opts, d)
	var merr *MissingColumnError
	if !errors.As(err, &merr) {
		t.Errorf("want *MissingColumnError, got %v", err)
	}
	if len(d.shown) != 2 {
		t.Errorf("chart shown despite error")
	}
}
