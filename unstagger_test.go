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

func TestUnstagger(t *testing.T) {
	t.Run("matching", func(t *testing.T) {
		u := denseFrom([]int{1, 1, 2, 3}, 0, 2, 4, 6, 8, 10)
		v := denseFrom([]int{1, 1, 3, 2}, 0, 2, 4, 6, 8, 10)
		uc, vc, err := Unstagger(u, v)
		if err != nil {
			t.Fatal(err)
		}
		if want := []float64{1, 3, 7, 9}; !reflect.DeepEqual(uc.Elements, want) {
			t.Errorf("u: have %v, want %v", uc.Elements, want)
		}
		if want := []float64{2, 4, 6, 8}; !reflect.DeepEqual(vc.Elements, want) {
			t.Errorf("v: have %v, want %v", vc.Elements, want)
		}
	})
	t.Run("crop", func(t *testing.T) {
		u := sparse.ZerosDense(2, 1, 2, 4)
		v := denseFrom([]int{1, 1, 3, 4}, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11)
		uc, vc, err := Unstagger(u, v)
		if err != nil {
			t.Fatal(err)
		}
		want := []int{1, 1, 2, 3}
		if !reflect.DeepEqual(uc.Shape, want) || !reflect.DeepEqual(vc.Shape, want) {
			t.Fatalf("shapes: have %v and %v, want %v", uc.Shape, vc.Shape, want)
		}
		if w := []float64{2, 3, 4, 6, 7, 8}; !reflect.DeepEqual(vc.Elements, w) {
			t.Errorf("v: have %v, want %v", vc.Elements, w)
		}
	})
	t.Run("too short", func(t *testing.T) {
		_, _, err := Unstagger(sparse.ZerosDense(1, 1, 2, 1), sparse.ZerosDense(1, 1, 2, 2))
		if !errors.Is(err, ErrShape) {
			t.Errorf("want ErrShape, have %v", err)
		}
	})
}
