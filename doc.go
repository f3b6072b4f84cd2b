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

// Package tracervol computes diagnostic quantities from four-dimensional
// (time, depth, latitude, longitude) ocean model output: the volume of
// water in which a passive tracer meets or exceeds a threshold
// concentration, the tracer mass within that water, the geometric volume
// of control volumes, and tracer transport through cross sections.
//
// Grids follow the finite-volume convention of z-level ocean models with
// partially open ("shaved") bottom cells: the open volume of a cell is
// its open fraction multiplied by its thickness and horizontal area.
package tracervol

// Version gives the version number.
const Version = "0.1.0"
