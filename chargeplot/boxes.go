// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"image/color"
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// boxStats summarizes one distribution of charges.
type boxStats struct {
	N                        int
	Min, Q1, Median, Q3, Max float64
	Mean                     float64

	// AdjLow and AdjHigh are the most extreme values within the
	// whisker reach of the box. Fliers are the values beyond them.
	AdjLow, AdjHigh float64
	Fliers          []float64
}

// newBoxStats computes box statistics of xs with whiskers reaching
// whis times the interquartile range past the quartiles. xs must not
// be empty.
func newBoxStats(xs []float64, whis float64) boxStats {
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	s := stats.Sample{Xs: sorted, Sorted: true}

	var b boxStats
	b.N = len(sorted)
	b.Min, b.Max = s.Bounds()
	b.Q1 = linearQuantile(sorted, 0.25)
	b.Median = linearQuantile(sorted, 0.5)
	b.Q3 = linearQuantile(sorted, 0.75)
	b.Mean = stats.Mean(sorted)

	iqr := b.Q3 - b.Q1
	lo, hi := b.Q1-whis*iqr, b.Q3+whis*iqr
	b.AdjLow, b.AdjHigh = b.Q1, b.Q3
	for _, x := range sorted {
		if x >= lo {
			b.AdjLow = x
			break
		}
	}
	for i := len(sorted) - 1; i >= 0; i-- {
		if sorted[i] <= hi {
			b.AdjHigh = sorted[i]
			break
		}
	}
	for _, x := range sorted {
		if x < b.AdjLow || x > b.AdjHigh {
			b.Fliers = append(b.Fliers, x)
		}
	}
	return b
}

// linearQuantile returns the q'th quantile of sorted, interpolating
// linearly between the two closest ranks (Hyndman and Fan type 7).
// sorted must not be empty.
func linearQuantile(sorted []float64, q float64) float64 {
	h := float64(len(sorted)-1) * q
	k := int(math.Floor(h))
	if k < 0 {
		return sorted[0]
	}
	if k >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	return sorted[k] + (h-float64(k))*(sorted[k+1]-sorted[k])
}

// chargeBox is a horizontal box plot of the charges of one atom
// under one method. It implements plot.Plotter, plot.DataRanger, and
// plot.Thumbnailer.
type chargeBox struct {
	boxStats

	// Loc is the center of the box on the atom axis and Width its
	// extent, both in data units.
	Loc, Width float64

	// Fill is the box fill, or nil for a transparent box.
	Fill color.Color

	BoxStyle     draw.LineStyle
	MedianStyle  draw.LineStyle
	WhiskerStyle draw.LineStyle
	FlierStyle   draw.GlyphStyle
}

func (b *chargeBox) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	y := trY(b.Loc)
	y0, y1 := trY(b.Loc-b.Width/2), trY(b.Loc+b.Width/2)
	q1, q3 := trX(b.Q1), trX(b.Q3)

	rect := []vg.Point{{X: q1, Y: y0}, {X: q1, Y: y1}, {X: q3, Y: y1}, {X: q3, Y: y0}}
	if b.Fill != nil {
		c.FillPolygon(b.Fill, c.ClipPolygonXY(rect))
	}
	edge := []vg.Point{rect[0], rect[1], rect[2], rect[3], rect[0]}
	c.StrokeLines(b.BoxStyle, c.ClipLinesXY(edge)...)

	med := trX(b.Median)
	c.StrokeLines(b.MedianStyle, c.ClipLinesXY([]vg.Point{{X: med, Y: y0}, {X: med, Y: y1}})...)

	lo, hi := trX(b.AdjLow), trX(b.AdjHigh)
	c0, c1 := trY(b.Loc-b.Width/4), trY(b.Loc+b.Width/4)
	c.StrokeLines(b.WhiskerStyle, c.ClipLinesXY(
		[]vg.Point{{X: q1, Y: y}, {X: lo, Y: y}},
		[]vg.Point{{X: q3, Y: y}, {X: hi, Y: y}},
		[]vg.Point{{X: lo, Y: c0}, {X: lo, Y: c1}},
		[]vg.Point{{X: hi, Y: c0}, {X: hi, Y: c1}},
	)...)

	for _, x := range b.Fliers {
		pt := vg.Point{X: trX(x), Y: y}
		if c.Contains(pt) {
			c.DrawGlyph(b.FlierStyle, pt)
		}
	}
}

func (b *chargeBox) DataRange() (xmin, xmax, ymin, ymax float64) {
	return b.Min, b.Max, b.Loc - b.Width/2, b.Loc + b.Width/2
}

func (b *chargeBox) Thumbnail(c *draw.Canvas) {
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	}
	if b.Fill != nil {
		c.FillPolygon(b.Fill, pts)
	}
	c.StrokeLines(b.BoxStyle, append(pts, pts[0]))
}

// outline turns filled boxes into outlines: the fill color of each
// box becomes the color of its outline, median, whiskers, caps, and
// fliers, and the fill becomes transparent.
func outline(boxes []*chargeBox) {
	for _, b := range boxes {
		col := b.Fill
		if col == nil {
			continue
		}
		b.BoxStyle.Color = col
		b.MedianStyle.Color = col
		b.WhiskerStyle.Color = col
		b.FlierStyle.Color = col
		b.Fill = nil
	}
}
