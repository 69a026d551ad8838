// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"image/color"
	"math"
	"sort"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/stats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// palette is black followed by the "tab10" categorical colors.
var palette = []color.Color{
	color.RGBA{0, 0, 0, 255},
	color.RGBA{31, 119, 180, 255},
	color.RGBA{255, 127, 14, 255},
	color.RGBA{44, 160, 44, 255},
	color.RGBA{214, 39, 40, 255},
	color.RGBA{148, 103, 189, 255},
	color.RGBA{140, 86, 75, 255},
	color.RGBA{227, 119, 194, 255},
	color.RGBA{127, 127, 127, 255},
	color.RGBA{188, 189, 34, 255},
	color.RGBA{23, 190, 207, 255},
}

func paletteColor(i int) color.Color {
	return palette[i%len(palette)]
}

// boxSlot is the share of an atom's row covered by its boxes.
const boxSlot = 0.8

var errNoCharges = errors.New("no charges to plot")

// chargeKey identifies the charges of one atom under one method.
type chargeKey struct {
	atom, method string
}

// chargeLayout is the placement of a pair of charge tables on the
// plot: which atoms and methods appear, in order, and the charges of
// each (atom, method).
type chargeLayout struct {
	atoms        []string
	pointMethods []string
	boxMethods   []string
	points       map[chargeKey][]float64
	boxes        map[chargeKey][]float64
}

func newChargeLayout(box, point *table.Table) (*chargeLayout, error) {
	if err := requireColumns("point", point, colAtom, colCharges, colMethod); err != nil {
		return nil, err
	}
	if err := requireColumns("box", box, colAtom, colCharges, colMethod); err != nil {
		return nil, err
	}

	l := &chargeLayout{}
	l.points, l.pointMethods = groupCharges(point, &l.atoms)
	l.boxes, l.boxMethods = groupCharges(box, &l.atoms)
	if len(l.atoms) == 0 {
		return nil, errNoCharges
	}
	return l, nil
}

// groupCharges collects the charges of t by atom and method, leaving
// out missing (NaN) charges. Atoms not yet in *atoms are appended to
// it in order of first appearance.
func groupCharges(t *table.Table, atoms *[]string) (map[chargeKey][]float64, []string) {
	as := t.MustColumn(colAtom).([]string)
	cs := t.MustColumn(colCharges).([]float64)
	ms := t.MustColumn(colMethod).([]string)

	groups := make(map[chargeKey][]float64)
	var methods []string
	for i, atom := range as {
		if slice.Index(*atoms, atom) < 0 {
			*atoms = append(*atoms, atom)
		}
		if slice.Index(methods, ms[i]) < 0 {
			methods = append(methods, ms[i])
		}
		if math.IsNaN(cs[i]) {
			continue
		}
		k := chargeKey{atom, ms[i]}
		groups[k] = append(groups[k], cs[i])
	}
	return groups, methods
}

// dodge returns n offsets evenly spread over total and centered on 0.
func dodge(n int, total float64) []float64 {
	offs := make([]float64, n)
	if n < 2 {
		return offs
	}
	for i := range offs {
		offs[i] = total*float64(i)/float64(n-1) - total/2
	}
	return offs
}

type legendEntry struct {
	label string
	thumb plot.Thumbnailer
}

// sortLegend orders legend entries by label.
func sortLegend(legend []legendEntry) {
	sort.SliceStable(legend, func(i, j int) bool {
		return legend[i].label < legend[j].label
	})
}

// pointBoxPlot renders point as per-method mean markers and box as
// per-method outlined box plots on shared axes, and saves the chart
// to out.
//
// Atoms run down the vertical axis in order of first appearance.
// Point methods take the first colors of the palette and box methods
// the colors after them, so the two layers never share a color.
func pointBoxPlot(box, point *table.Table, out string, st Style) error {
	l, err := newChargeLayout(box, point)
	if err != nil {
		return err
	}

	return withStyle(st, func(fig *figure) error {
		p := fig.p
		p.X.Label.Text = colCharges
		p.Y.Label.Text = colAtom

		var legend []legendEntry

		points, err := pointLayer(l, st)
		if err != nil {
			return err
		}
		for i, s := range points {
			if err := fig.add(s); err != nil {
				return err
			}
			legend = append(legend, legendEntry{l.pointMethods[i], s})
		}

		boxes, keys := boxLayer(l, st)
		outline(boxes)
		for _, b := range boxes {
			if err := fig.add(b); err != nil {
				return err
			}
		}
		legend = append(legend, keys...)

		// First atom at the top.
		p.Y.Scale = plot.InvertedScale{Normalizer: p.Y.Scale}
		ticks := make([]plot.Tick, len(l.atoms))
		for i, atom := range l.atoms {
			ticks[i] = plot.Tick{Value: float64(i), Label: atom}
		}
		p.Y.Tick.Marker = plot.ConstantTicks(ticks)

		sortLegend(legend)
		p.Legend.Top = true
		for _, e := range legend {
			p.Legend.Add(e.label, e.thumb)
		}

		p.Y.Min -= 1
		p.Y.Max += 1

		return fig.save(out)
	})
}

// pointLayer returns one scatter of per-atom mean charges for each
// point method.
func pointLayer(l *chargeLayout, st Style) ([]*plotter.Scatter, error) {
	offs := dodge(len(l.pointMethods), st.Dodge)
	radius := vg.Points(4 * st.lineScale() * st.MarkerScale)

	var layer []*plotter.Scatter
	for j, method := range l.pointMethods {
		var xys plotter.XYs
		for i, atom := range l.atoms {
			cs := l.points[chargeKey{atom, method}]
			if len(cs) == 0 {
				continue
			}
			xys = append(xys, plotter.XY{X: stats.Mean(cs), Y: float64(i) + offs[j]})
		}
		s, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, err
		}
		s.GlyphStyle = draw.GlyphStyle{
			Color:  paletteColor(j),
			Radius: radius,
			Shape:  draw.CircleGlyph{},
		}
		layer = append(layer, s)
	}
	return layer, nil
}

// boxLayer returns filled boxes for every (atom, box method) with
// charges, in rendering order, and a legend entry for the first box
// of each method.
func boxLayer(l *chargeLayout, st Style) (boxes []*chargeBox, keys []legendEntry) {
	n := len(l.boxMethods)
	if n == 0 {
		return nil, nil
	}
	each := boxSlot / float64(n)
	offs := dodge(n, boxSlot-each)
	lw := vg.Points(baseLineWidth * st.lineScale())
	nPoint := len(l.pointMethods)

	for j, method := range l.boxMethods {
		first := true
		for i, atom := range l.atoms {
			cs := l.boxes[chargeKey{atom, method}]
			if len(cs) == 0 {
				continue
			}
			b := &chargeBox{
				boxStats:     newBoxStats(cs, st.Whis),
				Loc:          float64(i) + offs[j],
				Width:        each * 0.98,
				Fill:         paletteColor(nPoint + j),
				BoxStyle:     draw.LineStyle{Color: color.Black, Width: lw},
				MedianStyle:  draw.LineStyle{Color: color.Black, Width: lw},
				WhiskerStyle: draw.LineStyle{Color: color.Black, Width: lw},
				FlierStyle: draw.GlyphStyle{
					Color:  color.Black,
					Radius: vg.Points(2.5 * st.lineScale()),
					Shape:  draw.RingGlyph{},
				},
			}
			boxes = append(boxes, b)
			if first {
				keys = append(keys, legendEntry{method, b})
				first = false
			}
		}
	}
	return boxes, keys
}
