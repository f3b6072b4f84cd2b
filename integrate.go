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
	"gonum.org/v1/gonum/floats"
)

// litersPerCubicMeter converts cell volumes to liters so that
// volume × concentration gives tracer mass in the concentration's
// per-liter units.
const litersPerCubicMeter = 1000.

// Result holds per-time-step integrals over a region.
type Result struct {
	// Volume is the volume of retained cells in the region, net of the
	// hole if there is one [m³].
	Volume []float64

	// Mass is the tracer mass in the retained cells of the region, net
	// of the hole if there is one.
	Mass []float64

	// TotalMass is the tracer mass in every unmasked cell of the region,
	// regardless of the threshold, net of the hole if there is one.
	TotalMass []float64

	// HoleVolume, HoleMass and HoleTotalMass are the same quantities for
	// the hole alone. They are zero when there is no hole.
	HoleVolume, HoleMass, HoleTotalMass []float64
}

// Integrate computes, for each time step of the 4-D (time, depth,
// latitude, longitude) field, the volume of the cells in region r that
// are not masked and whose concentration is at least threshold, and the
// tracer mass within those same cells. TotalMass is the tracer mass in
// all of the unmasked cells of r, whatever their concentration. mask is
// broadcast to the shape of
// field and a nonzero value excludes a cell; it may be nil.
//
// If hole is not nil, the same integrals are computed over the hole,
// which must be contained in r, and subtracted from the region results.
func Integrate(field, mask *sparse.DenseArray, g *Grid, threshold float64, r Region, hole *Region) (*Result, error) {
	if err := g.checkShapes(); err != nil {
		return nil, err
	}
	if len(field.Shape) != 4 {
		return nil, &ShapeError{Array: "field", Axis: -1, Got: field.Shape, Want: []int{-1, -1, -1, -1}}
	}
	nz, ny, nx := g.Dims()
	if want := []int{field.Shape[0], nz, ny, nx}; !sameShape(field.Shape, want) {
		return nil, &ShapeError{Array: "field", Axis: mismatchAxis(field.Shape, want), Got: field.Shape, Want: want}
	}
	r, hole, err := resolveHole(r, hole, nz, ny, nx)
	if err != nil {
		return nil, err
	}
	m, err := NewMaskedArray(field, mask)
	if err != nil {
		return nil, err
	}

	res := new(Result)
	res.Volume, res.Mass, res.TotalMass, err = integrateRegion(m, g, threshold, r)
	if err != nil {
		return nil, err
	}
	nt := field.Shape[0]
	res.HoleVolume = make([]float64, nt)
	res.HoleMass = make([]float64, nt)
	res.HoleTotalMass = make([]float64, nt)
	if hole == nil {
		return res, nil
	}
	res.HoleVolume, res.HoleMass, res.HoleTotalMass, err = integrateRegion(m, g, threshold, *hole)
	if err != nil {
		return nil, err
	}
	floats.Sub(res.Volume, res.HoleVolume)
	floats.Sub(res.Mass, res.HoleMass)
	floats.Sub(res.TotalMass, res.HoleTotalMass)
	return res, nil
}

// integrateRegion returns the volume and mass time series of the
// retained cells of m in resolved region r, and the mass time series of
// all of its unmasked cells.
func integrateRegion(m *MaskedArray, g *Grid, threshold float64, r Region) (volume, mass, total []float64, err error) {
	nt := m.Data.Shape[0]
	volume = make([]float64, nt)
	mass = make([]float64, nt)
	total = make([]float64, nt)
	if r.Empty() || nt == 0 {
		return volume, mass, total, nil
	}
	sub, err := m.Region(r)
	if err != nil {
		return nil, nil, nil, err
	}
	above := sub.MaskLess(threshold)

	cv, err := g.CellVolumes(r)
	if err != nil {
		return nil, nil, nil, err
	}
	v, err := Broadcast(cv, "cell volume", sub.Data.Shape...)
	if err != nil {
		return nil, nil, nil, err
	}

	n := len(sub.Data.Elements) / nt
	for t := 0; t < nt; t++ {
		for i := t * n; i < (t+1)*n; i++ {
			if sub.Mask.Elements[i] {
				continue
			}
			cellMass := v.Elements[i] * sub.Data.Elements[i] * litersPerCubicMeter
			total[t] += cellMass
			if above.Mask.Elements[i] {
				continue
			}
			volume[t] += v.Elements[i]
			mass[t] += cellMass
		}
	}
	return volume, mass, total, nil
}
