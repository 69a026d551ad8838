// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command chargeplot plots partial charges of atoms computed by
// several methods.
//
// chargeplot reads a reference table, ATB_ESP.csv, and three charge
// cycle tables, first_cycle.csv, second_cycle.csv, and
// third_cycle.csv, from the data directory. Each table has an "atom"
// and a "resid" column and one or more charge columns; columns whose
// name contains "Mean" are ignored. The reference charges are drawn
// as one marker per atom and the cycle charges as one box plot per
// atom and cycle. The second and third cycles are shifted by +0.2 and
// -0.2 along the charge axis so their boxes do not overlap.
//
// By default the chart is written to img/point_box.png. The img
// directory must exist.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"

	"github.com/aclements/go-gg/table"
	"github.com/simlab/chargeplot/internal/thumb"
)

// pointTable is the reference table drawn as markers.
const pointTable = "ATB_ESP"

// cycles are the tables drawn as boxes and their charge offsets.
var cycles = []struct {
	name  string
	shift float64
}{
	{"first_cycle", 0},
	{"second_cycle", 0.2},
	{"third_cycle", -0.2},
}

func main() {
	log.SetPrefix("chargeplot: ")
	log.SetFlags(0)

	var (
		flagCPUProfile = flag.String("cpuprofile", "", "write CPU profile to `file`")
		flagMemProfile = flag.String("memprofile", "", "write heap profile to `file`")
		flagData       = flag.String("data", "data", "read input tables from `dir`")
		flagOut        = flag.String("o", "img/point_box.png", "write plot to `file`")
		flagStyle      = flag.String("style", "", "read style overrides from YAML `file`")
		flagTable      = flag.Bool("table", false, "print plot statistics instead of a plot")
		flagThumb      = flag.String("thumb", "", "also write a half-size preview to `file`")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 0 {
		flag.Usage()
		os.Exit(2)
	}

	if *flagCPUProfile != "" {
		f, err := os.Create(*flagCPUProfile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	if *flagMemProfile != "" {
		defer func() {
			runtime.GC()
			f, err := os.Create(*flagMemProfile)
			if err != nil {
				log.Fatal(err)
			}
			pprof.WriteHeapProfile(f)
			f.Close()
		}()
	}

	st := defaultStyle
	if *flagStyle != "" {
		var err error
		st, err = loadStyle(*flagStyle)
		if err != nil {
			log.Fatal(err)
		}
	}

	log.Print("Reading ...")
	box, point, err := readAll(*flagData)
	if err != nil {
		log.Fatal(err)
	}

	if *flagTable {
		tab, err := summarize(box, point, st.Whis)
		if err != nil {
			log.Fatal(err)
		}
		table.Fprint(os.Stdout, tab)
		return
	}

	log.Print("Plotting ...")
	if err := pointBoxPlot(box, point, *flagOut, st); err != nil {
		log.Fatal(err)
	}
	if *flagThumb != "" {
		if err := thumb.WriteFile(*flagThumb, *flagOut); err != nil {
			log.Fatal(err)
		}
	}

	log.Print("Done.")
}

// readAll reads the point table and the cycle tables from dir. It
// returns the shifted cycle tables concatenated into one box table.
func readAll(dir string) (box, point *table.Table, err error) {
	point, err = readCharges(filepath.Join(dir, pointTable+".csv"))
	if err != nil {
		return nil, nil, err
	}

	parts := make([]table.Grouping, len(cycles))
	for i, c := range cycles {
		t, err := readCharges(filepath.Join(dir, c.name+".csv"))
		if err != nil {
			return nil, nil, err
		}
		parts[i] = shiftCharges(t, c.shift)
	}
	box = table.Concat(parts...).Table(table.RootGroupID)
	return box, point, nil
}

// shiftCharges returns t with shift added to every charge.
func shiftCharges(t *table.Table, shift float64) *table.Table {
	if shift == 0 {
		return t
	}
	cs := t.MustColumn(colCharges).([]float64)
	shifted := make([]float64, len(cs))
	for i, c := range cs {
		shifted[i] = c + shift
	}
	return table.NewBuilder(t).Add(colCharges, shifted).Done()
}
