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
	"github.com/ctessum/sparse"
)

// Unstagger converts face-centered u (longitude-direction) and v
// (latitude-direction) velocities or fluxes to cell centers by averaging
// each pair of adjacent faces. u is averaged along its last axis and v
// along its second-to-last axis. Both results are then cropped to their
// common shape, starting from the lowest indices.
func Unstagger(u, v *sparse.DenseArray) (uc, vc *sparse.DenseArray, err error) {
	if len(u.Shape) < 2 || len(u.Shape) != len(v.Shape) {
		return nil, nil, &ShapeError{Array: "v", Axis: -1, Got: v.Shape, Want: u.Shape}
	}
	nd := len(u.Shape)
	uc, err = unstaggerAxis(u, "u", nd-1)
	if err != nil {
		return nil, nil, err
	}
	vc, err = unstaggerAxis(v, "v", nd-2)
	if err != nil {
		return nil, nil, err
	}
	shape := make([]int, nd)
	for i := range shape {
		shape[i] = minInt(uc.Shape[i], vc.Shape[i])
	}
	zeros := make([]int, nd)
	return subset(uc, zeros, shape), subset(vc, zeros, shape), nil
}

// unstaggerAxis averages adjacent elements of a along axis ax.
func unstaggerAxis(a *sparse.DenseArray, name string, ax int) (*sparse.DenseArray, error) {
	if a.Shape[ax] < 2 {
		return nil, &ShapeError{Array: name, Axis: ax, Got: a.Shape, Want: nil}
	}
	shape := copyInts(a.Shape)
	shape[ax]--
	out := sparse.ZerosDense(shape...)
	stride := strides(a.Shape)[ax]
	st := strides(a.Shape)
	idx := make([]int, len(shape))
	for o := range out.Elements {
		src := 0
		for i, v := range idx {
			src += v * st[i]
		}
		out.Elements[o] = (a.Elements[src] + a.Elements[src+stride]) / 2
		increment(idx, shape)
	}
	return out, nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
