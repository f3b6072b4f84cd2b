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
	"fmt"

	"github.com/ctessum/sparse"
)

// Exclusion is a boolean mask. Elements that are true are excluded
// from all reductions.
type Exclusion struct {
	Shape    []int
	Elements []bool
}

// newExclusion returns an Exclusion with the given shape that excludes
// nothing.
func newExclusion(shape ...int) *Exclusion {
	n := 1
	for _, v := range shape {
		n *= v
	}
	return &Exclusion{Shape: copyInts(shape), Elements: make([]bool, n)}
}

// Get returns whether the element at the given index is excluded.
func (e *Exclusion) Get(index ...int) bool {
	i := 0
	st := strides(e.Shape)
	for ax, v := range index {
		i += v * st[ax]
	}
	return e.Elements[i]
}

// Count returns the number of excluded elements.
func (e *Exclusion) Count() int {
	var n int
	for _, v := range e.Elements {
		if v {
			n++
		}
	}
	return n
}

// Equal returns whether e and o have the same shape and exclude the same
// elements.
func (e *Exclusion) Equal(o *Exclusion) bool {
	if !sameShape(e.Shape, o.Shape) {
		return false
	}
	for i, v := range e.Elements {
		if o.Elements[i] != v {
			return false
		}
	}
	return true
}

// MaskedArray pairs a data array with the Exclusion mask that
// determines which of its elements take part in reductions.
// The two always have the same shape.
type MaskedArray struct {
	Data *sparse.DenseArray
	Mask *Exclusion
}

// NewMaskedArray broadcasts mask to the shape of data and returns the
// pair. Elements where the broadcast mask is nonzero are excluded.
// A nil mask excludes nothing. data is not copied.
func NewMaskedArray(data, mask *sparse.DenseArray) (*MaskedArray, error) {
	ex := newExclusion(data.Shape...)
	if mask != nil {
		m, err := Broadcast(mask, "mask", data.Shape...)
		if err != nil {
			return nil, err
		}
		for i, v := range m.Elements {
			ex.Elements[i] = v != 0
		}
	}
	return &MaskedArray{Data: data, Mask: ex}, nil
}

// Get returns the value at the given index and whether it is retained.
func (m *MaskedArray) Get(index ...int) (float64, bool) {
	return m.Data.Get(index...), !m.Mask.Get(index...)
}

// Subset returns a copy of the block of m between start (inclusive) and
// end (exclusive) along every axis.
func (m *MaskedArray) Subset(start, end []int) *MaskedArray {
	d := subset(m.Data, start, end)
	ex := newExclusion(d.Shape...)
	st := strides(m.Mask.Shape)
	idx := make([]int, len(d.Shape))
	for o := range ex.Elements {
		src := 0
		for ax, v := range idx {
			src += (start[ax] + v) * st[ax]
		}
		ex.Elements[o] = m.Mask.Elements[src]
		increment(idx, d.Shape)
	}
	return &MaskedArray{Data: d, Mask: ex}
}

// Region returns the spatial region r of the 4-D (time, depth, latitude,
// longitude) array m for every time step.
func (m *MaskedArray) Region(r Region) (*MaskedArray, error) {
	if len(m.Data.Shape) != 4 {
		return nil, &ShapeError{Array: "field", Axis: -1, Got: m.Data.Shape, Want: []int{-1, -1, -1, -1}}
	}
	r, err := r.Resolve(m.Data.Shape[1], m.Data.Shape[2], m.Data.Shape[3])
	if err != nil {
		return nil, err
	}
	return m.Subset(
		[]int{0, r.Z0, r.Y0, r.X0},
		[]int{m.Data.Shape[0], r.Z1, r.Y1, r.X1},
	), nil
}

// MaskLess returns a copy of m in which every element with a value
// strictly less than threshold is also excluded. Elements equal to the
// threshold are retained. m is not modified.
func (m *MaskedArray) MaskLess(threshold float64) *MaskedArray {
	ex := &Exclusion{Shape: copyInts(m.Mask.Shape), Elements: make([]bool, len(m.Mask.Elements))}
	for i, v := range m.Data.Elements {
		ex.Elements[i] = m.Mask.Elements[i] || v < threshold
	}
	return &MaskedArray{Data: m.Data, Mask: ex}
}

// MaskBelowThreshold applies mask to the 4-D (time, depth, latitude,
// longitude) field and returns the exclusion mask of the cells in region
// r that are either masked or have a concentration strictly less than
// threshold. mask may have three or fewer dimensions, in which case it
// is repeated over time.
func MaskBelowThreshold(field, mask *sparse.DenseArray, threshold float64, r Region) (*Exclusion, error) {
	m, err := NewMaskedArray(field, mask)
	if err != nil {
		return nil, err
	}
	m, err = m.Region(r)
	if err != nil {
		return nil, err
	}
	return m.MaskLess(threshold).Mask, nil
}

// Threshold returns the value of field at time t, depth index k,
// latitude index j and longitude index i, for use as a fixed
// concentration threshold for a whole time series.
func Threshold(field *MaskedArray, t, k, j, i int) (float64, error) {
	s := field.Data.Shape
	if len(s) != 4 {
		return 0, &ShapeError{Array: "field", Axis: -1, Got: s, Want: []int{-1, -1, -1, -1}}
	}
	for ax, name := range []string{"time", "depth", "latitude", "longitude"} {
		v := []int{t, k, j, i}[ax]
		if v < 0 || v >= s[ax] {
			return 0, &BoundsError{Axis: name, Start: v, End: v + 1, Len: s[ax]}
		}
	}
	v, ok := field.Get(t, k, j, i)
	if !ok {
		return 0, fmt.Errorf("tracervol: threshold reference cell [%d, %d, %d, %d] is masked", t, k, j, i)
	}
	return v, nil
}
