// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/aclements/go-gg/table"
)

// summarize returns the statistics behind each glyph of the point/box
// chart, one row per (layer, method, atom) in rendering order.
func summarize(box, point *table.Table, whis float64) (*table.Table, error) {
	l, err := newChargeLayout(box, point)
	if err != nil {
		return nil, err
	}

	var (
		layers, methods, atoms            []string
		ns                                []int
		mins, q1s, medians, q3s, maxs, mu []float64
	)
	add := func(layer string, ms []string, groups map[chargeKey][]float64) {
		for _, method := range ms {
			for _, atom := range l.atoms {
				cs := groups[chargeKey{atom, method}]
				if len(cs) == 0 {
					continue
				}
				b := newBoxStats(cs, whis)
				layers = append(layers, layer)
				methods = append(methods, method)
				atoms = append(atoms, atom)
				ns = append(ns, b.N)
				mins = append(mins, b.Min)
				q1s = append(q1s, b.Q1)
				medians = append(medians, b.Median)
				q3s = append(q3s, b.Q3)
				maxs = append(maxs, b.Max)
				mu = append(mu, b.Mean)
			}
		}
	}
	add("point", l.pointMethods, l.points)
	add("box", l.boxMethods, l.boxes)

	return new(table.Builder).
		Add("layer", layers).
		Add(colMethod, methods).
		Add(colAtom, atoms).
		Add("n", ns).
		Add("min", mins).
		Add("q1", q1s).
		Add("median", medians).
		Add("q3", q3s).
		Add("max", maxs).
		Add("mean", mu).
		Done(), nil
}
