// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(data), 0666); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadCharges(t *testing.T) {
	dir := t.TempDir()
	for _, test := range []struct {
		name, data string
		rows       int
		variables  []string
	}{
		{"one.csv", "atom,resid,q\nC1,1,0.5\nH1,1,-0.1\n", 2, []string{"q"}},
		{"three.csv", "atom,resid,a,b,c\nC1,1,1,2,3\nH1,1,4,5,6\n", 6, []string{"a", "b", "c"}},
		{"mean.csv", "Mean,atom,resid,a,a Mean\nx,C1,1,1,y\n", 1, []string{"a"}},
		{"means.csv", "atom,xMeany,resid,a,MeanB,b\nC1,9,1,1,9,2\nH1,9,1,3,9,4\nO1,9,1,5,9,6\n", 6, []string{"a", "b"}},
		{"header.csv", "atom,resid,a,b\n", 0, nil},
	} {
		path := writeFile(t, dir, test.name, test.data)
		tab, err := readCharges(path)
		if err != nil {
			t.Errorf("%s: %v", test.name, err)
			continue
		}
		if tab.Len() != test.rows {
			t.Errorf("%s: got %d rows; want %d", test.name, tab.Len(), test.rows)
		}
		for _, col := range tab.Columns() {
			if strings.Contains(col, "Mean") {
				t.Errorf("%s: summary column %q survived", test.name, col)
			}
		}
		want := strings.TrimSuffix(test.name, ".csv")
		for i, m := range tab.MustColumn(colMethod).([]string) {
			if m != want {
				t.Errorf("%s: row %d Method = %q; want %q", test.name, i, m, want)
			}
		}
		seen := map[string]bool{}
		var vars []string
		for _, v := range tab.MustColumn(colVariable).([]string) {
			if !seen[v] {
				seen[v] = true
				vars = append(vars, v)
			}
		}
		if !reflect.DeepEqual(vars, test.variables) {
			t.Errorf("%s: variables %v; want %v", test.name, vars, test.variables)
		}
	}
}

func TestReadChargesLong(t *testing.T) {
	path := writeFile(t, t.TempDir(), "cycle.csv", "atom,resid,a,b\nC1,7,1.5,2.5\nH1,8,-0.25,0\n")
	tab, err := readCharges(path)
	if err != nil {
		t.Fatal(err)
	}
	wantCols := []string{colAtom, colCharges, colMethod, colResid, colVariable}
	gotCols := append([]string(nil), tab.Columns()...)
	sort.Strings(gotCols)
	if !reflect.DeepEqual(gotCols, wantCols) {
		t.Fatalf("columns %v; want %v", gotCols, wantCols)
	}

	type row struct {
		atom, resid, variable string
		charge                float64
	}
	got := map[row]bool{}
	atoms := tab.MustColumn(colAtom).([]string)
	resids := tab.MustColumn(colResid).([]string)
	vars := tab.MustColumn(colVariable).([]string)
	charges := tab.MustColumn(colCharges).([]float64)
	for i := range atoms {
		got[row{atoms[i], resids[i], vars[i], charges[i]}] = true
	}
	for _, want := range []row{
		{"C1", "7", "a", 1.5},
		{"C1", "7", "b", 2.5},
		{"H1", "8", "a", -0.25},
		{"H1", "8", "b", 0},
	} {
		if !got[want] {
			t.Errorf("missing row %+v in %v", want, got)
		}
	}
	if len(got) != 4 {
		t.Errorf("got %d distinct rows; want 4", len(got))
	}
}

func TestReadChargesErrors(t *testing.T) {
	dir := t.TempDir()
	for _, test := range []struct {
		name, data string
		want       error
	}{
		{"noatom.csv", "name,resid,q\nC1,1,0.5\n", errMissingColumn},
		{"noresid.csv", "atom,q\nC1,0.5\n", errMissingColumn},
		{"novalues.csv", "atom,resid,qMean\nC1,1,0.5\n", errMissingColumn},
		{"empty.csv", "", errMissingColumn},
		{"bad.csv", "atom,resid,q\nC1,1,x\n", errBadValue},
		{"space.csv", "atom,resid,q\nC1,1,0.5\nH1,1,- 1\n", errBadValue},
	} {
		path := writeFile(t, dir, test.name, test.data)
		_, err := readCharges(path)
		if !errors.Is(err, test.want) {
			t.Errorf("%s: got error %v; want %v", test.name, err, test.want)
		}
	}

	_, err := readCharges(filepath.Join(dir, "missing.csv"))
	if !errors.Is(err, errInputNotFound) {
		t.Errorf("missing file: got error %v; want %v", err, errInputNotFound)
	}
}

func TestReadChargesBadValueLine(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.csv", "atom,resid,q\nC1,1,0.5\nH1,1,oops\n")
	_, err := readCharges(path)
	if !errors.Is(err, errBadValue) {
		t.Fatalf("got error %v; want %v", err, errBadValue)
	}
	// The bad cell is on the third line of the file.
	if !strings.Contains(err.Error(), "line 3") {
		t.Errorf("error %q does not name line 3", err)
	}
}

func TestReadChargesEmptyCell(t *testing.T) {
	path := writeFile(t, t.TempDir(), "gaps.csv", "atom,resid,a,b\nC1,1,0.5,\nH1,1,,0.25\n")
	tab, err := readCharges(path)
	if err != nil {
		t.Fatal(err)
	}
	if tab.Len() != 4 {
		t.Fatalf("got %d rows; want 4", tab.Len())
	}
	nan := 0
	for _, c := range tab.MustColumn(colCharges).([]float64) {
		if math.IsNaN(c) {
			nan++
		}
	}
	if nan != 2 {
		t.Errorf("got %d missing charges; want 2", nan)
	}

	// Missing charges are left out of the plot.
	l, err := newChargeLayout(tab, tab)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := l.points[chargeKey{"C1", "gaps"}], []float64{0.5}; !reflect.DeepEqual(got, want) {
		t.Errorf("C1 charges %v; want %v", got, want)
	}
	if got, want := l.boxes[chargeKey{"H1", "gaps"}], []float64{0.25}; !reflect.DeepEqual(got, want) {
		t.Errorf("H1 charges %v; want %v", got, want)
	}
}

func TestMethodName(t *testing.T) {
	for _, test := range []struct {
		path, want string
	}{
		{"data/ATB_ESP.csv", "ATB_ESP"},
		{"first_cycle.csv", "first_cycle"},
		{"/a/b/c.d.csv", "c.d"},
		{"noext", "noext"},
	} {
		if got := methodName(test.path); got != test.want {
			t.Errorf("methodName(%q) = %q; want %q", test.path, got, test.want)
		}
	}
}
