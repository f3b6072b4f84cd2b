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

package tracervolutil

import (
	"fmt"
	"path/filepath"

	"github.com/ctessum/sparse"
	"github.com/ctessum/unit"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/tracervol"
)

// Volume calculates the open water volume of region r in the model run
// runName within experiment directory expPath, excluding hole, as well as
// the volume of hole itself.
func Volume(expPath, runName string, r tracervol.Region, hole *tracervol.Region) (net, holeVolume *unit.Unit, err error) {
	run, err := tracervol.OpenRun(expPath, runName)
	if err != nil {
		return nil, nil, err
	}
	defer run.Close()

	g, err := tracervol.LoadGrid(run.Grid)
	if err != nil {
		return nil, nil, err
	}
	v, hv, err := g.TotalVolume(r, hole)
	if err != nil {
		return nil, nil, err
	}
	net = unit.New(v, unit.Meter3)
	holeVolume = unit.New(hv, unit.Meter3)
	Log.WithFields(logrus.Fields{
		"region": r.String(),
		"hole":   holeString(hole),
		"volume": net,
	}).Info("control volume")
	return net, holeVolume, nil
}

// HCW calculates the time series of the volume and tracer mass of water
// in region r (excluding hole) whose concentration of the named tracer is
// at least its initial concentration in reference cell (k, j, i).
func HCW(expPath, runName, tracer string, k, j, i int, r tracervol.Region, hole *tracervol.Region) (*tracervol.Result, error) {
	run, err := tracervol.OpenRun(expPath, runName)
	if err != nil {
		return nil, err
	}
	defer run.Close()

	g, err := tracervol.LoadGrid(run.Grid)
	if err != nil {
		return nil, err
	}
	field, err := run.Tracer(tracer)
	if err != nil {
		return nil, err
	}
	land := tracervol.LandMask(g)
	m, err := tracervol.NewMaskedArray(field, land)
	if err != nil {
		return nil, err
	}
	threshold, err := tracervol.Threshold(m, 0, k, j, i)
	if err != nil {
		return nil, fmt.Errorf("tracervol: reading threshold concentration: %v", err)
	}
	Log.WithFields(logrus.Fields{
		"tracer":    tracer,
		"cell":      []int{k, j, i},
		"threshold": threshold,
		"units":     run.Ptracers.Units(tracer),
	}).Info("tracer limit concentration")

	res, err := tracervol.Integrate(field, land, g, threshold, r, hole)
	if err != nil {
		return nil, err
	}
	Log.WithFields(logrus.Fields{
		"region":    r.String(),
		"hole":      holeString(hole),
		"timesteps": len(res.Volume),
	}).Info("integrated tracer volume and mass")
	return res, nil
}

// TransportSeries calculates the time series of tracer transport through
// the section of a model run specified by w, using the vertical (keyW),
// latitude-direction (keyV) and longitude-direction (keyU) flux variables
// in fluxFile. Vertical flux is used for horizontal sections,
// latitude-direction flux for sections at a single latitude index, and
// longitude-direction flux for sections at a single longitude index.
func TransportSeries(expPath, runName, fluxFile, keyW, keyV, keyU string, w tracervol.Window) ([]float64, error) {
	run, err := tracervol.OpenRun(expPath, runName)
	if err != nil {
		return nil, err
	}
	defer run.Close()

	flux, err := tracervol.OpenDataset(filepath.Join(expPath, runName, fluxFile))
	if err != nil {
		return nil, err
	}
	defer flux.Close()

	fw, fv, fu, err := run.TracerFluxes(flux, keyW, keyV, keyU)
	if err != nil {
		return nil, err
	}
	var f *sparse.DenseArray
	var kind string
	switch {
	case w.I0 == w.I1:
		f, kind = fu, keyU
	case w.J0 == w.J1:
		f, kind = fv, keyV
	default:
		// Horizontal plane at depth index K0.
		w.K1 = w.K0
		f, kind = fw, keyW
	}
	tr, err := tracervol.Transport(f, w)
	if err != nil {
		return nil, err
	}
	Log.WithFields(logrus.Fields{
		"flux":      kind,
		"timesteps": len(tr),
	}).Info("calculated tracer transport")
	return tr, nil
}

func holeString(h *tracervol.Region) string {
	if h == nil {
		return "none"
	}
	return h.String()
}
