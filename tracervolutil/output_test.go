/*
Copyright © 2018 the tracervol authors.
This file is part of tracervol.

tracervol is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

tracervol is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with tracervol.  If not, see <http://www.gnu.org/licenses/>.
*/

package tracervolutil

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/tealeg/xlsx"
)

func TestWriteSeries(t *testing.T) {
	dir, err := ioutil.TempDir("", "tracervolutil")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	t.Run("csv", func(t *testing.T) {
		f := filepath.Join(dir, "out.csv")
		if err := WriteSeries(f, []string{"A", "B"}, []float64{1, 2.5}, []float64{-3, 1e-9}); err != nil {
			t.Fatal(err)
		}
		want := [][]string{{"Time", "A", "B"}, {"0", "1", "-3"}, {"1", "2.5", "1e-09"}}
		if have := readCSV(t, f); !reflect.DeepEqual(have, want) {
			t.Errorf("have %v, want %v", have, want)
		}
	})
	t.Run("xlsx", func(t *testing.T) {
		f := filepath.Join(dir, "out.xlsx")
		if err := WriteSeries(f, []string{"Volume"}, []float64{4, 8}); err != nil {
			t.Fatal(err)
		}
		x, err := xlsx.OpenFile(f)
		if err != nil {
			t.Fatal(err)
		}
		sheet, ok := x.Sheet["tracervol"]
		if !ok {
			t.Fatal("missing sheet")
		}
		if len(sheet.Rows) != 3 {
			t.Fatalf("have %d rows, want 3", len(sheet.Rows))
		}
		if h := sheet.Rows[0].Cells[1].Value; h != "Volume" {
			t.Errorf("header: have %q", h)
		}
		v, err := sheet.Rows[2].Cells[1].Float()
		if err != nil {
			t.Fatal(err)
		}
		if v != 8 {
			t.Errorf("have %g, want 8", v)
		}
	})
	t.Run("length mismatch", func(t *testing.T) {
		err := WriteSeries(filepath.Join(dir, "bad.csv"), []string{"A", "B"}, []float64{1, 2}, []float64{1})
		if err == nil {
			t.Error("want error")
		}
	})
	t.Run("header mismatch", func(t *testing.T) {
		if err := WriteSeries(filepath.Join(dir, "bad.csv"), []string{"A"}); err == nil {
			t.Error("want error")
		}
	})
}

func TestPlotSeries(t *testing.T) {
	dir, err := ioutil.TempDir("", "tracervolutil")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	f := filepath.Join(dir, "series.png")
	err = PlotSeries(f, "test", "value", map[string][]float64{
		"a": {1, 2, 3},
		"b": {3, 2, 1},
	})
	if err != nil {
		t.Fatal(err)
	}
	if fi, err := os.Stat(f); err != nil || fi.Size() == 0 {
		t.Errorf("plot was not written: %v", err)
	}
}
