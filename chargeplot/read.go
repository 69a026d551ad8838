// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aclements/go-gg/table"
)

var (
	errInputNotFound     = errors.New("input file not found")
	errMissingColumn     = errors.New("missing expected column")
	errBadValue          = errors.New("malformed charge value")
	errOutputDirNotFound = errors.New("output directory not found")
)

// Column names of a long-format charge table.
const (
	colAtom     = "Atom_Names"
	colResid    = "resid"
	colVariable = "variable"
	colCharges  = "Charges"
	colMethod   = "Method"
)

// readCharges reads a wide charge table from the CSV file at path and
// returns it in long format.
//
// The file must have "atom" and "resid" identifier columns and at
// least one value column. Columns with "Mean" in their name are
// summaries and are dropped. Every remaining value becomes one row
// with columns Atom_Names, resid, variable (the source column),
// Charges, and Method (the base name of path without its extension).
// Empty value cells become NaN charges.
func readCharges(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, errInputNotFound)
		}
		return nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: no header: %w", path, errMissingColumn)
	}
	header := rows[0]
	for _, id := range []string{"atom", "resid"} {
		if indexOf(header, id) < 0 {
			return nil, fmt.Errorf("%s: column %q: %w", path, id, errMissingColumn)
		}
	}

	var valueCols, meanCols []string
	for _, col := range header {
		switch {
		case strings.Contains(col, "Mean"):
			meanCols = append(meanCols, col)
		case col != "atom" && col != "resid":
			valueCols = append(valueCols, col)
		}
	}
	if len(valueCols) == 0 {
		return nil, fmt.Errorf("%s: no value columns: %w", path, errMissingColumn)
	}
	if len(rows) == 1 {
		return emptyCharges(), nil
	}

	var g table.Grouping = table.TableFromStrings(header, rows[1:], false)
	for _, col := range meanCols {
		g = table.Remove(g, col)
	}

	// Unpivot needs all value columns to share a type.
	t := g.Table(table.RootGroupID)
	b := table.NewBuilder(t)
	for _, col := range valueCols {
		strs := t.MustColumn(col).([]string)
		vals := make([]float64, len(strs))
		for i, s := range strs {
			s = strings.TrimSpace(s)
			if s == "" {
				// Missing charge; kept as a row but not plotted.
				vals[i] = math.NaN()
				continue
			}
			vals[i], err = strconv.ParseFloat(s, 64)
			if err != nil {
				// Line 1 is the header.
				return nil, fmt.Errorf("%s: column %q line %d: %q: %w", path, col, i+2, s, errBadValue)
			}
		}
		b.Add(col, vals)
	}
	g = b.Done()

	g = table.Unpivot(g, colVariable, colCharges, valueCols...)
	g = table.Rename(g, "atom", colAtom)
	t = g.Table(table.RootGroupID)

	return withMethod(t, methodName(path)), nil
}

// methodName derives the Method label of a table from its file name.
func methodName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func withMethod(t *table.Table, method string) *table.Table {
	methods := make([]string, t.Len())
	for i := range methods {
		methods[i] = method
	}
	return table.NewBuilder(t).Add(colMethod, methods).Done()
}

func emptyCharges() *table.Table {
	return new(table.Builder).
		Add(colAtom, []string{}).
		Add(colResid, []string{}).
		Add(colVariable, []string{}).
		Add(colCharges, []float64{}).
		Add(colMethod, []string{}).
		Done()
}

func indexOf(xs []string, x string) int {
	for i, y := range xs {
		if y == x {
			return i
		}
	}
	return -1
}

// requireColumns checks that t has every column in cols.
func requireColumns(what string, t *table.Table, cols ...string) error {
	for _, col := range cols {
		if t == nil || t.Column(col) == nil {
			return fmt.Errorf("%s table: column %q: %w", what, col, errMissingColumn)
		}
	}
	return nil
}
