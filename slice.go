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
	"gonum.org/v1/gonum/floats"
)

// Window selects index ranges along the (time, depth, latitude,
// longitude) axes of a field. Ranges are half-open and a negative end
// means the end of the axis. An axis whose start equals its end is
// collapsed to the single index start, which is how cross sections
// are selected.
type Window struct {
	T0, T1 int
	K0, K1 int
	J0, J1 int
	I0, I1 int
}

// axis is a resolved Window range.
type axis struct {
	start, end int
	collapse   bool
}

func (a axis) len() int { return a.end - a.start }

// resolve returns the ranges of w within an array of the given 4-D shape.
func (w Window) resolve(shape []int) ([4]axis, error) {
	var out [4]axis
	if len(shape) != 4 {
		return out, &ShapeError{Array: "field", Axis: -1, Got: shape, Want: []int{-1, -1, -1, -1}}
	}
	names := [4]string{"time", "depth", "latitude", "longitude"}
	ranges := [4][2]int{{w.T0, w.T1}, {w.K0, w.K1}, {w.J0, w.J1}, {w.I0, w.I1}}
	for ax, rng := range ranges {
		start, end := rng[0], rng[1]
		if start == end {
			if start < 0 || start >= shape[ax] {
				return out, &BoundsError{Axis: names[ax], Start: start, End: start + 1, Len: shape[ax]}
			}
			out[ax] = axis{start: start, end: start + 1, collapse: true}
			continue
		}
		s, e, err := resolveAxis(names[ax], start, end, shape[ax])
		if err != nil {
			return out, err
		}
		out[ax] = axis{start: s, end: e}
	}
	return out, nil
}

// slice copies window w out of field, dropping collapsed axes.
func (w Window) slice(field *sparse.DenseArray) (*sparse.DenseArray, [4]axis, error) {
	axes, err := w.resolve(field.Shape)
	if err != nil {
		return nil, axes, err
	}
	var start, end, shape []int
	for _, a := range axes {
		start = append(start, a.start)
		end = append(end, a.end)
		if !a.collapse {
			shape = append(shape, a.len())
		}
	}
	s := subset(field, start, end)
	return reshape(s, shape...), axes, nil
}

// SliceField returns a copy of the window w of the 4-D field. Axes that w
// collapses to a single index are removed from the result.
func SliceField(field *sparse.DenseArray, w Window) (*sparse.DenseArray, error) {
	s, _, err := w.slice(field)
	return s, err
}

// ThresholdMask returns the Exclusion mask of window w of field that
// excludes elements with concentrations strictly less than threshold.
func ThresholdMask(field *sparse.DenseArray, threshold float64, w Window) (*Exclusion, error) {
	s, err := SliceField(field, w)
	if err != nil {
		return nil, err
	}
	m := &MaskedArray{Data: s, Mask: newExclusion(s.Shape...)}
	return m.MaskLess(threshold).Mask, nil
}

// Profile returns the vertical profile of field at time t, latitude
// index j and longitude index i between depth indices k0 (inclusive)
// and k1 (exclusive).
func Profile(field *sparse.DenseArray, t, j, i, k0, k1 int) ([]float64, error) {
	s, err := SliceField(field, Window{T0: t, T1: t, K0: k0, K1: k1, J0: j, J1: j, I0: i, I1: i})
	if err != nil {
		return nil, err
	}
	return s.Elements, nil
}

// Transport returns the time series of the sum of flux over the spatial
// part of window w, for example the tracer transport through a cross
// section. The time axis of w must not be collapsed.
func Transport(flux *sparse.DenseArray, w Window) ([]float64, error) {
	s, axes, err := w.slice(flux)
	if err != nil {
		return nil, err
	}
	if axes[0].collapse {
		return nil, fmt.Errorf("tracervol: transport window must span a time range, got [%d, %d]", w.T0, w.T1)
	}
	nt := axes[0].len()
	out := make([]float64, nt)
	if nt == 0 {
		return out, nil
	}
	n := len(s.Elements) / nt
	for t := range out {
		out[t] = floats.Sum(s.Elements[t*n : (t+1)*n])
	}
	return out, nil
}

// SectionArea returns the open area of the cells in a section of the
// grid [m²]. The time range of w is ignored.
// If w collapses the longitude axis, the result is the area of a
// meridional vertical section (OpenFraction × DY × Thickness). If w
// collapses the latitude axis, it is the area of a zonal vertical
// section (OpenFraction × DX × Thickness). Otherwise it is the area of
// the horizontal plane at depth index K0 (OpenFraction × Area).
// Collapsed axes are removed from the result.
func (g *Grid) SectionArea(w Window) (*sparse.DenseArray, error) {
	if err := g.checkShapes(); err != nil {
		return nil, err
	}
	nz, ny, nx := g.Dims()
	w.T0, w.T1 = 0, 0
	if w.I0 != w.I1 && w.J0 != w.J1 {
		// Horizontal plane.
		w.K1 = w.K0
	}
	axes, err := w.resolve([]int{1, nz, ny, nx})
	if err != nil {
		return nil, err
	}
	k, j, i := axes[1], axes[2], axes[3]

	var edge *sparse.DenseArray
	var vertical bool
	switch {
	case i.collapse:
		if g.DY == nil {
			return nil, fmt.Errorf("tracervol: grid has no dy metric for a meridional section")
		}
		edge, vertical = g.DY, true
	case j.collapse:
		if g.DX == nil {
			return nil, fmt.Errorf("tracervol: grid has no dx metric for a zonal section")
		}
		edge, vertical = g.DX, true
	default:
		edge = g.Area
	}

	var shape []int
	for _, a := range []axis{k, j, i} {
		if !a.collapse {
			shape = append(shape, a.len())
		}
	}
	out := sparse.ZerosDense(shape...)
	o := 0
	for kk := k.start; kk < k.end; kk++ {
		dz := 1.
		if vertical {
			dz = g.Thickness.Get(kk)
		}
		for jj := j.start; jj < j.end; jj++ {
			for ii := i.start; ii < i.end; ii++ {
				out.Elements[o] = g.OpenFraction.Get(kk, jj, ii) * edge.Get(jj, ii) * dz
				o++
			}
		}
	}
	return out, nil
}
