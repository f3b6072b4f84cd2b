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
	"testing"

	"github.com/ctessum/sparse"
)

func TestMaskBelowThreshold(t *testing.T) {
	g := shelfGrid()
	field := shelfTracer(2)
	mask := LandMask(g)
	r := Shelf(3, 1)

	ex, err := MaskBelowThreshold(field, mask, 1, r)
	if err != nil {
		t.Fatal(err)
	}
	if want := []int{2, 3, 5, 5}; !sameShape(ex.Shape, want) {
		t.Fatalf("shape: have %v, want %v", ex.Shape, want)
	}
	for tt := 0; tt < 2; tt++ {
		for k := 0; k < 3; k++ {
			for j := 0; j < 5; j++ {
				for i := 0; i < 5; i++ {
					want := mask.Get(k, j+1, i) != 0 || field.Get(tt, k, j+1, i) < 1
					if have := ex.Get(tt, k, j, i); have != want {
						t.Errorf("[%d,%d,%d,%d]: have %v, want %v", tt, k, j, i, have, want)
					}
				}
			}
		}
	}

	t.Run("idempotent", func(t *testing.T) {
		m, err := NewMaskedArray(field, mask)
		if err != nil {
			t.Fatal(err)
		}
		m, err = m.Region(r)
		if err != nil {
			t.Fatal(err)
		}
		once := m.MaskLess(1)
		twice := once.MaskLess(1)
		if !twice.Mask.Equal(once.Mask) || !once.Mask.Equal(ex) {
			t.Error("masks differ")
		}
	})
	t.Run("boundary", func(t *testing.T) {
		f := denseFrom([]int{1, 1, 1, 2}, 1, 0.999)
		ex, err := MaskBelowThreshold(f, nil, 1, everywhere)
		if err != nil {
			t.Fatal(err)
		}
		if ex.Get(0, 0, 0, 0) || !ex.Get(0, 0, 0, 1) {
			t.Errorf("have %v", ex.Elements)
		}
	})
	t.Run("shape", func(t *testing.T) {
		_, err := MaskBelowThreshold(field, sparse.ZerosDense(3, 6, 5), 1, r)
		if !errors.Is(err, ErrShape) {
			t.Errorf("want ErrShape, have %v", err)
		}
	})
}

func TestThreshold(t *testing.T) {
	g := shelfGrid()
	m, err := NewMaskedArray(shelfTracer(2), LandMask(g))
	if err != nil {
		t.Fatal(err)
	}
	v, err := Threshold(m, 0, 1, 3, 2)
	if err != nil {
		t.Fatal(err)
	}
	if v != 1.25 {
		t.Errorf("have %g, want 1.25", v)
	}
	if _, err := Threshold(m, 0, 3, 0, 2); err == nil {
		t.Error("masked reference cell should fail")
	}
	if _, err := Threshold(m, 2, 0, 0, 0); !errors.Is(err, ErrBounds) {
		t.Errorf("want ErrBounds, have %v", err)
	}
}
