// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gopkg.in/yaml.v2"
)

// Style is the global appearance of a chart.
type Style struct {
	// FigSize is the edge length of the square canvas in inches.
	FigSize float64 `yaml:"figsize"`

	// Context scales text and lines for the intended medium:
	// "paper", "notebook", "talk", or "poster".
	Context string `yaml:"context"`

	// FontScale further scales text on top of Context.
	FontScale float64 `yaml:"font_scale"`

	// XMin and XMax fix the range of the charge axis.
	XMin float64 `yaml:"xmin"`
	XMax float64 `yaml:"xmax"`

	// GridAlpha is the opacity of grid lines, in [0, 1].
	GridAlpha float64 `yaml:"grid_alpha"`

	// MarkerScale scales the point markers.
	MarkerScale float64 `yaml:"marker_scale"`

	// Dodge is the total vertical spread of point markers that
	// share an atom.
	Dodge float64 `yaml:"dodge"`

	// Whis is the whisker reach in multiples of the interquartile
	// range. Data beyond the whiskers is drawn as fliers.
	Whis float64 `yaml:"whis"`
}

// defaultStyle is the style of the point/box chart.
var defaultStyle = Style{
	FigSize:     18,
	Context:     "talk",
	FontScale:   0.9,
	XMin:        -3,
	XMax:        3,
	GridAlpha:   0.2,
	MarkerScale: 0.7,
	Dodge:       0.7,
	Whis:        100,
}

var contextScales = map[string]float64{
	"paper":    0.8,
	"notebook": 1,
	"talk":     1.5,
	"poster":   2,
}

// Text sizes in points at the "notebook" context.
const (
	baseLabelSize  = 12
	baseTickSize   = 11
	baseLegendSize = 10
	baseLineWidth  = 1.25
)

// loadStyle reads YAML style overrides from path on top of
// defaultStyle.
func loadStyle(path string) (Style, error) {
	st := defaultStyle
	data, err := os.ReadFile(path)
	if err != nil {
		return st, err
	}
	if err := yaml.UnmarshalStrict(data, &st); err != nil {
		return st, fmt.Errorf("%s: %w", path, err)
	}
	if err := st.validate(); err != nil {
		return st, fmt.Errorf("%s: %w", path, err)
	}
	return st, nil
}

func (st Style) validate() error {
	if _, ok := contextScales[st.Context]; !ok {
		return fmt.Errorf("unknown context %q", st.Context)
	}
	if !(st.FigSize > 0) {
		return fmt.Errorf("figsize must be positive, got %v", st.FigSize)
	}
	if !(st.XMin < st.XMax) {
		return fmt.Errorf("xmin %v must be less than xmax %v", st.XMin, st.XMax)
	}
	if st.GridAlpha < 0 || st.GridAlpha > 1 {
		return fmt.Errorf("grid_alpha %v out of range [0, 1]", st.GridAlpha)
	}
	if st.Whis < 0 {
		return fmt.Errorf("whis must not be negative, got %v", st.Whis)
	}
	return nil
}

// lineScale returns the multiplier for line widths and marker sizes.
func (st Style) lineScale() float64 {
	return contextScales[st.Context]
}

// textScale returns the multiplier for text sizes.
func (st Style) textScale() float64 {
	return contextScales[st.Context] * st.FontScale
}

var errFigureReleased = errors.New("figure already released")

// A figure is a styled plot that is alive for the duration of one
// withStyle call.
type figure struct {
	p  *plot.Plot
	st Style
}

// withStyle creates a new figure with the appearance described by
// st, passes it to fn, and releases the figure when fn returns or
// panics.
func withStyle(st Style, fn func(*figure) error) error {
	if err := st.validate(); err != nil {
		return err
	}
	fig := newFigure(st)
	defer fig.release()
	return fn(fig)
}

func newFigure(st Style) *figure {
	p := plot.New()

	ts := st.textScale()
	p.Title.TextStyle.Font.Size = vg.Points(baseLabelSize * ts)
	p.X.Label.TextStyle.Font.Size = vg.Points(baseLabelSize * ts)
	p.Y.Label.TextStyle.Font.Size = vg.Points(baseLabelSize * ts)
	p.X.Tick.Label.Font.Size = vg.Points(baseTickSize * ts)
	p.Y.Tick.Label.Font.Size = vg.Points(baseTickSize * ts)
	p.Legend.TextStyle.Font.Size = vg.Points(baseLegendSize * ts)

	lw := vg.Points(baseLineWidth * st.lineScale())
	p.X.LineStyle.Width = lw
	p.Y.LineStyle.Width = lw

	p.X.Min, p.X.Max = st.XMin, st.XMax

	grid := plotter.NewGrid()
	gridColor := color.NRGBA{A: uint8(math.Round(st.GridAlpha * 255))}
	grid.Vertical.Color = gridColor
	grid.Horizontal.Color = gridColor
	p.Add(grid)

	return &figure{p: p, st: st}
}

// add adds plotters to the figure. The charge axis keeps its fixed
// range regardless of the data.
func (f *figure) add(ps ...plot.Plotter) error {
	if f.p == nil {
		return errFigureReleased
	}
	f.p.Add(ps...)
	f.p.X.Min, f.p.X.Max = f.st.XMin, f.st.XMax
	return nil
}

// save writes the figure to path in the format implied by its
// extension. The directory of path must already exist.
func (f *figure) save(path string) error {
	if f.p == nil {
		return errFigureReleased
	}
	dir := filepath.Dir(path)
	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		return fmt.Errorf("%s: %w", dir, errOutputDirNotFound)
	}
	size := vg.Length(f.st.FigSize) * vg.Inch
	return f.p.Save(size, size, path)
}

func (f *figure) release() {
	f.p = nil
}
