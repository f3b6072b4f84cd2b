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
	"os"
	"strings"
	"testing"

	"github.com/kr/pretty"
	"github.com/spatialmodel/tracervol"
)

const regionFileText = `
[all]
Z = [0, -1]
Y = [0, -1]
X = [0, -1]

[canyon]
Z = [0, 29]
Y = [227, 267]
X = [120, 240]
`

func TestReadRegionFile(t *testing.T) {
	regions, err := ReadRegionFile(strings.NewReader(regionFileText))
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]tracervol.Region{
		"all":    {Z0: 0, Z1: -1, Y0: 0, Y1: -1, X0: 0, X1: -1},
		"canyon": {Z0: 0, Z1: 29, Y0: 227, Y1: 267, X0: 120, X1: 240},
	}
	if diff := pretty.Diff(regions, want); len(diff) != 0 {
		t.Errorf("regions differ: %v", diff)
	}

	t.Run("incomplete", func(t *testing.T) {
		_, err := ReadRegionFile(strings.NewReader("[shelf]\nZ = [0, 29]\nY = [227]\nX = [0, -1]\n"))
		if err == nil {
			t.Error("want error")
		}
	})
	t.Run("invalid", func(t *testing.T) {
		if _, err := ReadRegionFile(strings.NewReader("[shelf\n")); err == nil {
			t.Error("want error")
		}
	})
}

func TestRegionConfig(t *testing.T) {
	defer func() {
		Cfg.Set("Region", []int{0, 29, 227, -1, 0, -1})
		Cfg.Set("Hole", []int{})
		Cfg.Set("RegionFile", "")
	}()
	Cfg.Set("RegionFile", "")

	t.Run("default", func(t *testing.T) {
		Cfg.Set("Region", []int{0, 29, 227, -1, 0, -1})
		Cfg.Set("Hole", []int{0, 29, 227, 267, 120, 240})
		r, h, err := regionConfig(Cfg)
		if err != nil {
			t.Fatal(err)
		}
		if r != tracervol.Shelf(29, 227) {
			t.Errorf("region: have %v", r)
		}
		if h == nil || *h != tracervol.CanyonBox(29, 227, 267, 120, 240) {
			t.Errorf("hole: have %v", h)
		}
	})
	t.Run("string form", func(t *testing.T) {
		Cfg.Set("Region", "[0,2,0,3,0,-1]")
		Cfg.Set("Hole", "[]")
		r, h, err := regionConfig(Cfg)
		if err != nil {
			t.Fatal(err)
		}
		want := tracervol.Region{Z0: 0, Z1: 2, Y0: 0, Y1: 3, X0: 0, X1: -1}
		if r != want {
			t.Errorf("region: have %v, want %v", r, want)
		}
		if h != nil {
			t.Errorf("hole: have %v, want nil", h)
		}
	})
	t.Run("not integers", func(t *testing.T) {
		Cfg.Set("Region", "[0,a,0,3,0,-1]")
		if _, _, err := regionConfig(Cfg); err == nil {
			t.Error("want error")
		}
	})
}

func TestSectionWindow(t *testing.T) {
	w, err := sectionWindow([]int{0, 29, 227, 227, 0, -1})
	if err != nil {
		t.Fatal(err)
	}
	want := tracervol.Window{T0: 0, T1: -1, K0: 0, K1: 29, J0: 227, J1: 227, I0: 0, I1: -1}
	if w != want {
		t.Errorf("have %+v, want %+v", w, want)
	}
	if _, err := sectionWindow([]int{1, 2}); err == nil {
		t.Error("want error")
	}
}

func TestCheckOutputFile(t *testing.T) {
	if _, err := checkOutputFile(""); err == nil {
		t.Error("empty file name should fail")
	}
	if _, err := checkOutputFile("/this/does/not/exist/out.csv"); err == nil {
		t.Error("missing directory should fail")
	}
}

func TestNoHoleByDefault(t *testing.T) {
	for _, cmd := range []string{"volume", "hcw"} {
		c, _, err := Root.Find([]string{cmd})
		if err != nil {
			t.Fatal(err)
		}
		f := c.Flags().Lookup("Hole")
		if f == nil {
			t.Fatalf("%s has no Hole flag", cmd)
		}
		if f.DefValue != "[]" {
			t.Errorf("%s: default hole is %s", cmd, f.DefValue)
		}
	}
}

func TestEnvironmentVariables(t *testing.T) {
	os.Setenv("TRACERVOL_LOGLEVEL", "debug")
	defer os.Unsetenv("TRACERVOL_LOGLEVEL")
	if l := Cfg.GetString("LogLevel"); l != "debug" {
		t.Errorf("LogLevel: have %q, want debug", l)
	}

	os.Setenv("TRACERVOL_THRESHOLD_CELL", "1,2,3")
	defer os.Unsetenv("TRACERVOL_THRESHOLD_CELL")
	cell, err := getIntSlice(Cfg, "Threshold.Cell")
	if err != nil {
		t.Fatal(err)
	}
	if len(cell) != 3 || cell[0] != 1 || cell[1] != 2 || cell[2] != 3 {
		t.Errorf("Threshold.Cell: have %v, want [1 2 3]", cell)
	}
}
