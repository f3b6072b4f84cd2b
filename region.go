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

import "fmt"

// End can be used as the end index of a Region or Window axis to
// indicate that the range extends through the last index of the axis.
const End = -1

// Region is a rectangular control volume over the (depth, latitude,
// longitude) axes of a grid. All ranges are half-open: [Z0, Z1) and so on.
// A negative end index is interpreted as the length of the axis.
type Region struct {
	Z0, Z1 int // depth index range
	Y0, Y1 int // latitude (across-shore) index range
	X0, X1 int // longitude (along-shore) index range
}

// Shelf returns the region above the shelf break: all depth levels
// shallower than zfin, all latitude indices from yin onward and all
// longitudes.
func Shelf(zfin, yin int) Region {
	return Region{Z1: zfin, Y0: yin, Y1: End, X1: End}
}

// CanyonBox returns the region between longitude indices x0 and x1 and
// latitude indices y0 and y1 above depth index zfin, which is
// typically excluded from the shelf as a hole.
func CanyonBox(zfin, y0, y1, x0, x1 int) Region {
	return Region{Z1: zfin, Y0: y0, Y1: y1, X0: x0, X1: x1}
}

func (r Region) String() string {
	return fmt.Sprintf("[%d:%s, %d:%s, %d:%s]", r.Z0, endString(r.Z1), r.Y0, endString(r.Y1), r.X0, endString(r.X1))
}

func endString(e int) string {
	if e < 0 {
		return ""
	}
	return fmt.Sprint(e)
}

// Resolve replaces negative end indices with the given axis lengths and
// checks that every range lies within the grid.
func (r Region) Resolve(nz, ny, nx int) (Region, error) {
	var err error
	if r.Z0, r.Z1, err = resolveAxis("depth", r.Z0, r.Z1, nz); err != nil {
		return r, err
	}
	if r.Y0, r.Y1, err = resolveAxis("latitude", r.Y0, r.Y1, ny); err != nil {
		return r, err
	}
	if r.X0, r.X1, err = resolveAxis("longitude", r.X0, r.X1, nx); err != nil {
		return r, err
	}
	return r, nil
}

func resolveAxis(name string, start, end, n int) (int, int, error) {
	if end < 0 {
		end = n
	}
	if start < 0 || start > end || end > n {
		return start, end, &BoundsError{Axis: name, Start: start, End: end, Len: n}
	}
	return start, end, nil
}

// Shape returns the (depth, latitude, longitude) shape of a resolved
// region.
func (r Region) Shape() []int {
	return []int{r.Z1 - r.Z0, r.Y1 - r.Y0, r.X1 - r.X0}
}

// Empty returns whether a resolved region contains no cells.
func (r Region) Empty() bool {
	return r.Z1 <= r.Z0 || r.Y1 <= r.Y0 || r.X1 <= r.X0
}

// Contains returns whether resolved region h lies entirely within
// resolved region r. An empty h is contained in any region.
func (r Region) Contains(h Region) bool {
	if h.Empty() {
		return true
	}
	return h.Z0 >= r.Z0 && h.Z1 <= r.Z1 &&
		h.Y0 >= r.Y0 && h.Y1 <= r.Y1 &&
		h.X0 >= r.X0 && h.X1 <= r.X1
}

// resolveHole resolves region r and the optional hole h against a grid
// with the given dimensions and checks that h is contained in r.
func resolveHole(r Region, h *Region, nz, ny, nx int) (Region, *Region, error) {
	rr, err := r.Resolve(nz, ny, nx)
	if err != nil {
		return rr, nil, err
	}
	if h == nil {
		return rr, nil, nil
	}
	hh, err := h.Resolve(nz, ny, nx)
	if err != nil {
		return rr, nil, err
	}
	if !rr.Contains(hh) {
		return rr, nil, &ContainmentError{Region: rr, Hole: hh}
	}
	return rr, &hh, nil
}
