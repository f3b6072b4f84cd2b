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

// Broadcast returns a copy of a expanded to the given shape. The shape
// of a is aligned with the trailing axes of shape, and each axis of a
// must either have length 1 or match the corresponding output axis.
// Missing leading axes are repeated, which is how time-invariant masks
// and grid metrics are matched to time-varying fields. name identifies
// a in any returned ShapeError.
func Broadcast(a *sparse.DenseArray, name string, shape ...int) (*sparse.DenseArray, error) {
	if len(a.Shape) > len(shape) {
		return nil, &ShapeError{Array: name, Axis: -1, Got: a.Shape, Want: shape}
	}
	offset := len(shape) - len(a.Shape)
	for i, n := range a.Shape {
		if n != 1 && n != shape[offset+i] {
			return nil, &ShapeError{Array: name, Axis: offset + i, Got: a.Shape, Want: shape}
		}
	}

	// Strides of a expressed along the output axes; broadcast axes have
	// a stride of zero.
	aStrides := strides(a.Shape)
	st := make([]int, len(shape))
	for i, n := range a.Shape {
		if n != 1 {
			st[offset+i] = aStrides[i]
		}
	}

	out := sparse.ZerosDense(copyInts(shape)...)
	idx := make([]int, len(shape))
	for o := range out.Elements {
		src := 0
		for ax, v := range idx {
			src += v * st[ax]
		}
		out.Elements[o] = a.Elements[src]
		increment(idx, shape)
	}
	return out, nil
}

// reshape returns an array sharing the elements of a with a new shape
// holding the same number of elements.
func reshape(a *sparse.DenseArray, shape ...int) *sparse.DenseArray {
	out := sparse.ZerosDense(shape...)
	if len(out.Elements) != len(a.Elements) {
		panic("tracervol: invalid reshape")
	}
	out.Elements = a.Elements
	return out
}

// subset returns the block of a between start (inclusive) and end
// (exclusive) along every axis.
func subset(a *sparse.DenseArray, start, end []int) *sparse.DenseArray {
	shape := make([]int, len(start))
	for i := range start {
		shape[i] = end[i] - start[i]
	}
	out := sparse.ZerosDense(shape...)
	st := strides(a.Shape)
	idx := make([]int, len(shape))
	for o := range out.Elements {
		src := 0
		for ax, v := range idx {
			src += (start[ax] + v) * st[ax]
		}
		out.Elements[o] = a.Elements[src]
		increment(idx, shape)
	}
	return out
}

// strides returns the row-major strides of an array with the given shape.
func strides(shape []int) []int {
	s := make([]int, len(shape))
	n := 1
	for i := len(shape) - 1; i >= 0; i-- {
		s[i] = n
		n *= shape[i]
	}
	return s
}

// increment advances the row-major index idx within shape.
func increment(idx, shape []int) {
	for ax := len(shape) - 1; ax >= 0; ax-- {
		idx[ax]++
		if idx[ax] < shape[ax] {
			return
		}
		idx[ax] = 0
	}
}

func copyInts(s []int) []int {
	o := make([]int, len(s))
	copy(o, s)
	return o
}

func sameShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i, v := range a {
		if b[i] != v {
			return false
		}
	}
	return true
}
