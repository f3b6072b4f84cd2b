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
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// PlotSeries saves a line plot of the time series in series, keyed by
// legend name, to path. The image format is chosen by the file extension.
func PlotSeries(path, title, ylabel string, series map[string][]float64) error {
	p, err := plot.New()
	if err != nil {
		return err
	}
	p.Title.Text = title
	p.X.Label.Text = "Time step"
	p.Y.Label.Text = ylabel

	names := make([]string, 0, len(series))
	for name := range series {
		names = append(names, name)
	}
	sort.Strings(names)

	var lines []interface{}
	for _, name := range names {
		vals := series[name]
		xy := make(plotter.XYs, len(vals))
		for i, v := range vals {
			xy[i].X = float64(i)
			xy[i].Y = v
		}
		lines = append(lines, name, xy)
	}
	if err = plotutil.AddLinePoints(p, lines...); err != nil {
		return err
	}
	if err = p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("tracervol: saving plot: %v", err)
	}
	return nil
}
