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
	"fmt"
)

// Sentinel errors. The typed errors below match them with errors.Is.
var (
	// ErrShape is returned when array shapes cannot be broadcast together.
	ErrShape = errors.New("tracervol: shape mismatch")

	// ErrBounds is returned when an index range lies outside the grid.
	ErrBounds = errors.New("tracervol: index out of bounds")

	// ErrHole is returned when a hole is not contained in its region.
	ErrHole = errors.New("tracervol: hole not contained in region")

	// ErrRange is returned when grid values are outside their valid range.
	ErrRange = errors.New("tracervol: value out of range")
)

// ShapeError reports which array and axis failed to broadcast.
type ShapeError struct {
	Array string // name of the offending array
	Axis  int    // axis of the mismatch, or -1 for a rank mismatch
	Got   []int  // shape of the offending array
	Want  []int  // shape it was expected to match
}

func (e *ShapeError) Error() string {
	if e.Axis < 0 {
		return fmt.Sprintf("tracervol: %s has shape %v, which cannot be broadcast to %v", e.Array, e.Got, e.Want)
	}
	return fmt.Sprintf("tracervol: %s has shape %v, which cannot be broadcast to %v (axis %d)",
		e.Array, e.Got, e.Want, e.Axis)
}

// Is allows errors.Is(err, ErrShape).
func (e *ShapeError) Is(target error) bool { return target == ErrShape }

// BoundsError reports an index range outside of a grid axis.
type BoundsError struct {
	Axis       string // axis name, e.g. "depth"
	Start, End int    // requested half-open range
	Len        int    // length of the axis
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("tracervol: %s range [%d, %d) is outside of [0, %d)", e.Axis, e.Start, e.End, e.Len)
}

// Is allows errors.Is(err, ErrBounds).
func (e *BoundsError) Is(target error) bool { return target == ErrBounds }

// ContainmentError reports a hole that is not a subset of its region.
type ContainmentError struct {
	Region, Hole Region
}

func (e *ContainmentError) Error() string {
	return fmt.Sprintf("tracervol: hole %v is not contained in region %v", e.Hole, e.Region)
}

// Is allows errors.Is(err, ErrHole).
func (e *ContainmentError) Is(target error) bool { return target == ErrHole }
