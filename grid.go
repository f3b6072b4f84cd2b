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

// Grid holds the metrics of a structured ocean-model grid on
// cell centres. Array axes are ordered (depth, latitude, longitude).
type Grid struct {
	// Area is the horizontal area of each cell [m²], shape (ny, nx).
	Area *sparse.DenseArray

	// Thickness is the distance between the upper and lower faces of
	// each vertical level [m], shape (nz).
	Thickness *sparse.DenseArray

	// OpenFraction is the fraction of each cell that is not blocked by
	// topography, in [0, 1], shape (nz, ny, nx). Partially open ("shaved")
	// bottom cells have values between 0 and 1.
	OpenFraction *sparse.DenseArray

	// DX and DY are the cell edge lengths in the longitude and latitude
	// directions [m], shape (ny, nx). They are only needed for
	// SectionArea and may be nil.
	DX, DY *sparse.DenseArray
}

// Dims returns the number of grid cells in the depth, latitude and
// longitude directions.
func (g *Grid) Dims() (nz, ny, nx int) {
	s := g.OpenFraction.Shape
	return s[0], s[1], s[2]
}

// checkShapes makes sure the grid metrics are consistent with each other.
func (g *Grid) checkShapes() error {
	if g.OpenFraction == nil || g.Area == nil || g.Thickness == nil {
		return fmt.Errorf("tracervol: grid is missing area, thickness, or open fraction")
	}
	if len(g.OpenFraction.Shape) != 3 {
		return &ShapeError{Array: "open fraction", Axis: -1, Got: g.OpenFraction.Shape, Want: []int{-1, -1, -1}}
	}
	nz, ny, nx := g.Dims()
	if !sameShape(g.Area.Shape, []int{ny, nx}) {
		return &ShapeError{Array: "cell area", Axis: mismatchAxis(g.Area.Shape, []int{ny, nx}),
			Got: g.Area.Shape, Want: []int{ny, nx}}
	}
	if !sameShape(g.Thickness.Shape, []int{nz}) {
		return &ShapeError{Array: "cell thickness", Axis: mismatchAxis(g.Thickness.Shape, []int{nz}),
			Got: g.Thickness.Shape, Want: []int{nz}}
	}
	for _, l := range []struct {
		name string
		a    *sparse.DenseArray
	}{{"dx", g.DX}, {"dy", g.DY}} {
		if l.a != nil && !sameShape(l.a.Shape, []int{ny, nx}) {
			return &ShapeError{Array: l.name, Axis: mismatchAxis(l.a.Shape, []int{ny, nx}),
				Got: l.a.Shape, Want: []int{ny, nx}}
		}
	}
	return nil
}

// mismatchAxis returns the first axis where got and want differ, or -1 if
// they have different ranks.
func mismatchAxis(got, want []int) int {
	if len(got) != len(want) {
		return -1
	}
	for i, v := range want {
		if got[i] != v {
			return i
		}
	}
	return -1
}

// Check makes sure the grid metrics have consistent shapes and that
// all open fractions are within [0, 1].
func (g *Grid) Check() error {
	if err := g.checkShapes(); err != nil {
		return err
	}
	for i, v := range g.OpenFraction.Elements {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: open fraction %g at %v", ErrRange, v, g.OpenFraction.IndexNd(i))
		}
	}
	return nil
}

// CellVolumes returns the open volume of each grid cell in region r
// [m³]: OpenFraction × Thickness × Area. The returned array has the
// (depth, latitude, longitude) shape of the region.
func (g *Grid) CellVolumes(r Region) (*sparse.DenseArray, error) {
	if err := g.checkShapes(); err != nil {
		return nil, err
	}
	r, err := r.Resolve(g.Dims())
	if err != nil {
		return nil, err
	}
	hFac := subset(g.OpenFraction, []int{r.Z0, r.Y0, r.X0}, []int{r.Z1, r.Y1, r.X1})

	area, err := Broadcast(subset(g.Area, []int{r.Y0, r.X0}, []int{r.Y1, r.X1}), "cell area", hFac.Shape...)
	if err != nil {
		return nil, err
	}
	dz := subset(g.Thickness, []int{r.Z0}, []int{r.Z1})
	thick, err := Broadcast(reshape(dz, r.Z1-r.Z0, 1, 1), "cell thickness", hFac.Shape...)
	if err != nil {
		return nil, err
	}

	vol := sparse.ZerosDense(hFac.Shape...)
	for i, f := range hFac.Elements {
		vol.Elements[i] = f * thick.Elements[i] * area.Elements[i]
	}
	return vol, nil
}

// TotalVolume returns the open volume of region r excluding the
// optional hole [m³], as well as the volume of the hole itself.
// The hole must be contained in r.
func (g *Grid) TotalVolume(r Region, hole *Region) (net, holeVolume float64, err error) {
	if err := g.checkShapes(); err != nil {
		return 0, 0, err
	}
	nz, ny, nx := g.Dims()
	r, hole, err = resolveHole(r, hole, nz, ny, nx)
	if err != nil {
		return 0, 0, err
	}
	v, err := g.CellVolumes(r)
	if err != nil {
		return 0, 0, err
	}
	total := floats.Sum(v.Elements)
	if hole == nil {
		return total, 0, nil
	}
	hv, err := g.CellVolumes(*hole)
	if err != nil {
		return 0, 0, err
	}
	holeVolume = floats.Sum(hv.Elements)
	return total - holeVolume, holeVolume, nil
}

// LandMask returns a mask that is 1 for cells that are completely
// blocked by topography and 0 elsewhere, suitable for use with
// NewMaskedArray.
func LandMask(g *Grid) *sparse.DenseArray {
	m := sparse.ZerosDense(copyInts(g.OpenFraction.Shape)...)
	for i, f := range g.OpenFraction.Elements {
		if f == 0 {
			m.Elements[i] = 1
		}
	}
	return m
}
