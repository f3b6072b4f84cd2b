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

package tracervol

import (
	"errors"
	"reflect"
	"testing"

	"github.com/ctessum/sparse"
)

func indexField(shape ...int) *sparse.DenseArray {
	f := sparse.ZerosDense(shape...)
	for i := range f.Elements {
		f.Elements[i] = float64(i)
	}
	return f
}

func TestSliceField(t *testing.T) {
	f := indexField(2, 3, 4, 5)
	tests := []struct {
		name  string
		w     Window
		shape []int
		first float64
		last  float64
	}{
		{
			name:  "full",
			w:     Window{T1: End, K1: End, J1: End, I1: End},
			shape: []int{2, 3, 4, 5},
			first: 0, last: 119,
		},
		{
			name:  "meridional section",
			w:     Window{T1: End, K0: 1, K1: End, J0: 1, J1: 3, I0: 2, I1: 2},
			shape: []int{2, 2, 2},
			first: f.Get(0, 1, 1, 2), last: f.Get(1, 2, 2, 2),
		},
		{
			name:  "single time",
			w:     Window{T0: 1, T1: 1, K1: End, J1: End, I1: End},
			shape: []int{3, 4, 5},
			first: 60, last: 119,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s, err := SliceField(f, test.w)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(s.Shape, test.shape) {
				t.Errorf("shape: have %v, want %v", s.Shape, test.shape)
			}
			if s.Elements[0] != test.first || s.Elements[len(s.Elements)-1] != test.last {
				t.Errorf("have %g..%g, want %g..%g", s.Elements[0], s.Elements[len(s.Elements)-1],
					test.first, test.last)
			}
		})
	}

	_, err := SliceField(f, Window{T1: End, K1: End, J0: 4, J1: 4, I1: End})
	if !errors.Is(err, ErrBounds) {
		t.Errorf("want ErrBounds, have %v", err)
	}
}

func TestProfile(t *testing.T) {
	f := indexField(2, 3, 4, 5)
	p, err := Profile(f, 1, 2, 3, 0, End)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{f.Get(1, 0, 2, 3), f.Get(1, 1, 2, 3), f.Get(1, 2, 2, 3)}
	if !reflect.DeepEqual(p, want) {
		t.Errorf("have %v, want %v", p, want)
	}
}

func TestThresholdMask(t *testing.T) {
	f := indexField(1, 2, 2, 2)
	w := Window{T1: End, K1: End, J1: End, I1: End}
	m, err := ThresholdMask(f, 3, w)
	if err != nil {
		t.Fatal(err)
	}
	if m.Count() != 3 {
		t.Errorf("have %d excluded, want 3", m.Count())
	}
	if m.Get(0, 0, 1, 1) {
		t.Error("value equal to threshold should be retained")
	}
	again := (&MaskedArray{Data: f, Mask: m}).MaskLess(3).Mask
	if !again.Equal(m) {
		t.Error("masking twice should not change the mask")
	}
}

func TestTransport(t *testing.T) {
	f := sparse.ZerosDense(3, 2, 2, 2)
	for i := range f.Elements {
		f.Elements[i] = 1
	}
	tr, err := Transport(f, Window{T1: End, K1: End, J1: End, I0: 0, I1: 0})
	if err != nil {
		t.Fatal(err)
	}
	if want := []float64{4, 4, 4}; !reflect.DeepEqual(tr, want) {
		t.Errorf("have %v, want %v", tr, want)
	}
	if _, err := Transport(f, Window{T0: 1, T1: 1, K1: End, J1: End, I1: End}); err == nil {
		t.Error("collapsed time axis should fail")
	}
}

func TestSectionArea(t *testing.T) {
	g := shelfGrid()
	t.Run("meridional", func(t *testing.T) {
		a, err := g.SectionArea(Window{K1: End, J1: End, I0: 2, I1: 2})
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(a.Shape, []int{4, 6}) {
			t.Fatalf("shape: have %v", a.Shape)
		}
		for k := 0; k < 4; k++ {
			for j := 0; j < 6; j++ {
				want := g.OpenFraction.Get(k, j, 2) * g.DY.Get(j, 2) * g.Thickness.Get(k)
				if have := a.Get(k, j); have != want {
					t.Errorf("[%d,%d]: have %g, want %g", k, j, have, want)
				}
			}
		}
	})
	t.Run("zonal", func(t *testing.T) {
		a, err := g.SectionArea(Window{K1: 2, J0: 3, J1: 3, I1: End})
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(a.Shape, []int{2, 5}) {
			t.Fatalf("shape: have %v", a.Shape)
		}
		for k := 0; k < 2; k++ {
			for i := 0; i < 5; i++ {
				want := g.OpenFraction.Get(k, 3, i) * g.DX.Get(3, i) * g.Thickness.Get(k)
				if have := a.Get(k, i); have != want {
					t.Errorf("[%d,%d]: have %g, want %g", k, i, have, want)
				}
			}
		}
	})
	t.Run("horizontal", func(t *testing.T) {
		a, err := g.SectionArea(Window{K0: 1, K1: 3, J1: End, I1: End})
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(a.Shape, []int{6, 5}) {
			t.Fatalf("shape: have %v", a.Shape)
		}
		for j := 0; j < 6; j++ {
			for i := 0; i < 5; i++ {
				want := g.OpenFraction.Get(1, j, i) * g.Area.Get(j, i)
				if have := a.Get(j, i); have != want {
					t.Errorf("[%d,%d]: have %g, want %g", j, i, have, want)
				}
			}
		}
	})
	t.Run("missing metric", func(t *testing.T) {
		g := shelfGrid()
		g.DY = nil
		if _, err := g.SectionArea(Window{K1: End, J1: End, I0: 2, I1: 2}); err == nil {
			t.Error("want error")
		}
	})
}
