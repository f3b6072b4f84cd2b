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
	"os"
	"path/filepath"

	"github.com/ctessum/cdf"
	"github.com/ctessum/sparse"
)

// Dataset is an open NetCDF (classic or 64-bit offset) file.
type Dataset struct {
	Path string
	f    *os.File
	nc   *cdf.File
}

// OpenDataset opens the NetCDF file at path.
func OpenDataset(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tracervol: opening dataset: %v", err)
	}
	nc, err := cdf.Open(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("tracervol: reading NetCDF header of %s: %v", path, err)
	}
	return &Dataset{Path: path, f: f, nc: nc}, nil
}

// Close closes the underlying file.
func (d *Dataset) Close() error {
	return d.f.Close()
}

// Has returns whether the dataset contains the named variable.
func (d *Dataset) Has(name string) bool {
	return d.nc.Header.Lengths(name) != nil
}

// Variables returns the names of the variables in the dataset.
func (d *Dataset) Variables() []string {
	return d.nc.Header.Variables()
}

// Units returns the "units" attribute of the named variable, or an
// empty string if there is none.
func (d *Dataset) Units(name string) string {
	u, ok := d.nc.Header.GetAttribute(name, "units").(string)
	if !ok {
		return ""
	}
	return u
}

// NumRecords returns the number of records (time steps) in the dataset.
func (d *Dataset) NumRecords() (int, error) {
	fi, err := d.f.Stat()
	if err != nil {
		return 0, fmt.Errorf("tracervol: %s: %v", d.Path, err)
	}
	return int(d.nc.Header.NumRecs(fi.Size())), nil
}

// Shape returns the shape of the named variable. For record variables
// the length of the first axis is the number of records.
func (d *Dataset) Shape(name string) ([]int, error) {
	l := d.nc.Header.Lengths(name)
	if l == nil {
		return nil, fmt.Errorf("tracervol: variable %s not in %s", name, d.Path)
	}
	shape := copyInts(l)
	if d.nc.Header.IsRecordVariable(name) {
		n, err := d.NumRecords()
		if err != nil {
			return nil, err
		}
		shape[0] = n
	}
	return shape, nil
}

// Var reads the whole of the named variable.
func (d *Dataset) Var(name string) (*sparse.DenseArray, error) {
	shape, err := d.Shape(name)
	if err != nil {
		return nil, err
	}
	if !d.nc.Header.IsRecordVariable(name) {
		return d.read(name, nil, nil, shape)
	}
	out := sparse.ZerosDense(shape...)
	n := 0
	for t := 0; t < shape[0]; t++ {
		rec, err := d.Record(name, t)
		if err != nil {
			return nil, err
		}
		n += copy(out.Elements[n:], rec.Elements)
	}
	return out, nil
}

// Record reads time step t of the named record variable. The result
// does not have a time axis.
func (d *Dataset) Record(name string, t int) (*sparse.DenseArray, error) {
	if !d.nc.Header.IsRecordVariable(name) {
		return nil, fmt.Errorf("tracervol: %s in %s is not a record variable", name, d.Path)
	}
	nrec, err := d.NumRecords()
	if err != nil {
		return nil, err
	}
	if t < 0 || t >= nrec {
		return nil, &BoundsError{Axis: "time", Start: t, End: t + 1, Len: nrec}
	}
	dims := copyInts(d.nc.Header.Lengths(name)[1:])
	start, end := make([]int, len(dims)+1), make([]int, len(dims)+1)
	start[0], end[0] = t, t+1
	return d.read(name, start, end, dims)
}

// read reads the block of variable name between start and end into
// an array with the given shape.
func (d *Dataset) read(name string, start, end, shape []int) (*sparse.DenseArray, error) {
	out := sparse.ZerosDense(shape...)
	if len(out.Elements) == 0 {
		return out, nil
	}
	r := d.nc.Reader(name, start, end)
	buf := r.Zero(len(out.Elements))
	if _, err := r.Read(buf); err != nil {
		return nil, fmt.Errorf("tracervol: reading %s from %s: %v", name, d.Path, err)
	}
	switch b := buf.(type) {
	case []float64:
		copy(out.Elements, b)
	case []float32:
		for i, v := range b {
			out.Elements[i] = float64(v)
		}
	case []int32:
		for i, v := range b {
			out.Elements[i] = float64(v)
		}
	case []int16:
		for i, v := range b {
			out.Elements[i] = float64(v)
		}
	case []uint8:
		for i, v := range b {
			out.Elements[i] = float64(v)
		}
	default:
		return nil, fmt.Errorf("tracervol: variable %s in %s has unsupported type %T", name, d.Path, buf)
	}
	return out, nil
}

// Names of the files that make up a model run.
const (
	GridFile     = "gridGlob.nc"
	StateFile    = "stateGlob.nc"
	PtracersFile = "ptracersGlob.nc"
)

// Run holds the open datasets of a model run: grid metrics, model
// state and passive tracers.
type Run struct {
	Grid, State, Ptracers *Dataset
}

// OpenRun opens the grid, state and tracer datasets of run runName in
// experiment directory expPath.
func OpenRun(expPath, runName string) (*Run, error) {
	dir := filepath.Join(expPath, runName)
	r := new(Run)
	for _, f := range []struct {
		name string
		ds   **Dataset
	}{
		{GridFile, &r.Grid},
		{StateFile, &r.State},
		{PtracersFile, &r.Ptracers},
	} {
		d, err := OpenDataset(filepath.Join(dir, f.name))
		if err != nil {
			r.Close()
			return nil, err
		}
		*f.ds = d
	}
	return r, nil
}

// Close closes all open datasets of the run.
func (r *Run) Close() error {
	var err error
	for _, d := range []*Dataset{r.Grid, r.State, r.Ptracers} {
		if d == nil {
			continue
		}
		if e := d.Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}

// Tracer reads the named passive tracer, with shape (time, depth,
// latitude, longitude).
func (r *Run) Tracer(name string) (*sparse.DenseArray, error) {
	return r.Ptracers.Var(name)
}

// TracerFluxes reads the vertical (keyW), latitude-direction (keyV) and
// longitude-direction (keyU) tracer fluxes from flux and returns them
// on cell centers. The horizontal fluxes are unstaggered with
// Unstagger and all three are cropped to the shape of the run's grid.
func (r *Run) TracerFluxes(flux *Dataset, keyW, keyV, keyU string) (w, v, u *sparse.DenseArray, err error) {
	g, err := LoadGrid(r.Grid)
	if err != nil {
		return nil, nil, nil, err
	}
	nz, ny, nx := g.Dims()
	if w, err = flux.Var(keyW); err != nil {
		return nil, nil, nil, err
	}
	if v, err = flux.Var(keyV); err != nil {
		return nil, nil, nil, err
	}
	if u, err = flux.Var(keyU); err != nil {
		return nil, nil, nil, err
	}
	u, v, err = Unstagger(u, v)
	if err != nil {
		return nil, nil, nil, err
	}
	crop := func(a *sparse.DenseArray, name string) (*sparse.DenseArray, error) {
		if len(a.Shape) != 4 || a.Shape[1] < nz || a.Shape[2] < ny || a.Shape[3] < nx {
			return nil, &ShapeError{Array: name, Axis: -1, Got: a.Shape, Want: []int{a.Shape[0], nz, ny, nx}}
		}
		return subset(a, []int{0, 0, 0, 0}, []int{a.Shape[0], nz, ny, nx}), nil
	}
	if w, err = crop(w, keyW); err != nil {
		return nil, nil, nil, err
	}
	if v, err = crop(v, keyV); err != nil {
		return nil, nil, nil, err
	}
	if u, err = crop(u, keyU); err != nil {
		return nil, nil, nil, err
	}
	return w, v, u, nil
}

// LoadGrid reads the grid metrics from a dataset with MITgcm variable
// names: rA (cell area), drF (level thickness), HFacC (open fraction) and
// optionally dxG and dyG (cell edge lengths). Metrics defined on a
// staggered grid with an extra point are cropped to the cell-center
// shape of HFacC.
func LoadGrid(d *Dataset) (*Grid, error) {
	g := new(Grid)
	var err error
	if g.OpenFraction, err = d.Var("HFacC"); err != nil {
		return nil, err
	}
	if len(g.OpenFraction.Shape) != 3 {
		return nil, &ShapeError{Array: "HFacC", Axis: -1, Got: g.OpenFraction.Shape, Want: []int{-1, -1, -1}}
	}
	nz, ny, nx := g.Dims()
	if g.Thickness, err = d.Var("drF"); err != nil {
		return nil, err
	}
	if g.Area, err = d.Var("rA"); err != nil {
		return nil, err
	}
	if g.Area, err = cropHorizontal(g.Area, "rA", ny, nx); err != nil {
		return nil, err
	}
	if d.Has("dxG") {
		if g.DX, err = d.Var("dxG"); err != nil {
			return nil, err
		}
		if g.DX, err = cropHorizontal(g.DX, "dxG", ny, nx); err != nil {
			return nil, err
		}
	}
	if d.Has("dyG") {
		if g.DY, err = d.Var("dyG"); err != nil {
			return nil, err
		}
		if g.DY, err = cropHorizontal(g.DY, "dyG", ny, nx); err != nil {
			return nil, err
		}
	}
	if len(g.Thickness.Shape) != 1 || g.Thickness.Shape[0] != nz {
		return nil, &ShapeError{Array: "drF", Axis: 0, Got: g.Thickness.Shape, Want: []int{nz}}
	}
	return g, g.Check()
}

// cropHorizontal crops a (latitude, longitude) array with possibly one
// extra staggered point along either axis to shape (ny, nx).
func cropHorizontal(a *sparse.DenseArray, name string, ny, nx int) (*sparse.DenseArray, error) {
	if len(a.Shape) != 2 || a.Shape[0] < ny || a.Shape[1] < nx {
		return nil, &ShapeError{Array: name, Axis: -1, Got: a.Shape, Want: []int{ny, nx}}
	}
	if a.Shape[0] == ny && a.Shape[1] == nx {
		return a, nil
	}
	return subset(a, []int{0, 0}, []int{ny, nx}), nil
}
