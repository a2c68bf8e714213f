// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchchart

import (
	"math"

	"gonum.org/v1/plot/plotter"
)

// A Corner is a corner of the plot area.
type Corner int

const (
	UpperRight Corner = iota
	UpperLeft
	LowerLeft
	LowerRight
)

var cornerNames = [...]string{"upper right", "upper left", "lower left", "lower right"}

func (c Corner) String() string {
	return cornerNames[c]
}

func (c Corner) top() bool  { return c == UpperRight || c == UpperLeft }
func (c Corner) left() bool { return c == UpperLeft || c == LowerLeft }

// legendFrac is the fraction of each axis a legend is assumed to
// cover when counting the points it would hide.
const legendFrac = 0.35

// bestCorner returns the corner whose legend-sized region holds the
// fewest points. Ties go to the earliest corner in Corner order.
func bestCorner(series []plotter.XYs, xmin, xmax, ymin, ymax float64, logX bool) Corner {
	norm := func(v, min, max float64) float64 {
		if max == min {
			return 0.5
		}
		return (v - min) / (max - min)
	}
	if logX {
		xmin, xmax = math.Log2(xmin), math.Log2(xmax)
	}

	var counts [4]int
	for _, xys := range series {
		for _, pt := range xys {
			x := pt.X
			if logX {
				x = math.Log2(x)
			}
			nx, ny := norm(x, xmin, xmax), norm(pt.Y, ymin, ymax)
			left, right := nx <= legendFrac, nx >= 1-legendFrac
			bottom, top := ny <= legendFrac, ny >= 1-legendFrac
			if top && right {
				counts[UpperRight]++
			}
			if top && left {
				counts[UpperLeft]++
			}
			if bottom && left {
				counts[LowerLeft]++
			}
			if bottom && right {
				counts[LowerRight]++
			}
		}
	}

	best := UpperRight
	for c := UpperLeft; c <= LowerRight; c++ {
		if counts[c] < counts[best] {
			best = c
		}
	}
	return best
}
