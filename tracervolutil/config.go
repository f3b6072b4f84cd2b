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
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lnashier/viper"
	"github.com/spatialmodel/tracervol"
	"github.com/spf13/cast"
)

// regionSpec is a control volume as written in a region file. Each
// field holds a half-open [start, end) index range, where an end of -1
// extends the range to the end of the axis.
type regionSpec struct {
	Z, Y, X []int
}

// ReadRegionFile reads a TOML file of named control volumes, for example:
//
//	[shelf]
//	Z = [0, 29]
//	Y = [227, -1]
//	X = [0, -1]
//
//	[canyon]
//	Z = [0, 29]
//	Y = [227, 267]
//	X = [120, 240]
func ReadRegionFile(r io.Reader) (map[string]tracervol.Region, error) {
	specs := make(map[string]regionSpec)
	if _, err := toml.DecodeReader(r, &specs); err != nil {
		return nil, fmt.Errorf("tracervol: reading region file: %v", err)
	}
	o := make(map[string]tracervol.Region, len(specs))
	for name, s := range specs {
		if len(s.Z) != 2 || len(s.Y) != 2 || len(s.X) != 2 {
			return nil, fmt.Errorf("tracervol: region %s: Z, Y, and X each need a start and end index", name)
		}
		o[name] = tracervol.Region{
			Z0: s.Z[0], Z1: s.Z[1],
			Y0: s.Y[0], Y1: s.Y[1],
			X0: s.X[0], X1: s.X[1],
		}
	}
	return o, nil
}

// getIntSlice returns the named list of integers from cfg. Values
// set by command-line flags may arrive in their string form, e.g. "[1,2]".
func getIntSlice(cfg *viper.Viper, name string) ([]int, error) {
	v := cfg.Get(name)
	s, ok := v.(string)
	if !ok {
		return cast.ToIntSliceE(v)
	}
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(s), "["), "]"))
	if s == "" {
		return nil, nil
	}
	var o []int
	for _, f := range strings.Split(s, ",") {
		i, err := cast.ToIntE(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("tracervol: reading '%s': %v", name, err)
		}
		o = append(o, i)
	}
	return o, nil
}

// regionFromInts converts six indices (depth start, depth end, latitude
// start, latitude end, longitude start, longitude end) to a Region.
func regionFromInts(name string, v []int) (tracervol.Region, error) {
	if len(v) != 6 {
		return tracervol.Region{}, fmt.Errorf("tracervol: %s needs 6 indices but has %d", name, len(v))
	}
	return tracervol.Region{Z0: v[0], Z1: v[1], Y0: v[2], Y1: v[3], X0: v[4], X1: v[5]}, nil
}

// regionConfig returns the region and optional hole specified in cfg,
// either directly by the Region and Hole options or by name from
// RegionFile.
func regionConfig(cfg *viper.Viper) (tracervol.Region, *tracervol.Region, error) {
	if f := os.ExpandEnv(cfg.GetString("RegionFile")); f != "" {
		return regionsFromFile(f, cfg.GetString("RegionName"), cfg.GetString("HoleName"))
	}
	rv, err := getIntSlice(cfg, "Region")
	if err != nil {
		return tracervol.Region{}, nil, fmt.Errorf("tracervol: reading 'Region': %v", err)
	}
	r, err := regionFromInts("Region", rv)
	if err != nil {
		return r, nil, err
	}
	hv, err := getIntSlice(cfg, "Hole")
	if err != nil {
		return r, nil, fmt.Errorf("tracervol: reading 'Hole': %v", err)
	}
	if len(hv) == 0 {
		return r, nil, nil
	}
	h, err := regionFromInts("Hole", hv)
	if err != nil {
		return r, nil, err
	}
	return r, &h, nil
}

func regionsFromFile(file, regionName, holeName string) (tracervol.Region, *tracervol.Region, error) {
	f, err := os.Open(file)
	if err != nil {
		return tracervol.Region{}, nil, fmt.Errorf("tracervol: opening RegionFile: %v", err)
	}
	defer f.Close()
	regions, err := ReadRegionFile(f)
	if err != nil {
		return tracervol.Region{}, nil, err
	}
	r, ok := regions[regionName]
	if !ok {
		return r, nil, fmt.Errorf("tracervol: region %q is not in %s", regionName, file)
	}
	if holeName == "" {
		return r, nil, nil
	}
	h, ok := regions[holeName]
	if !ok {
		return r, nil, fmt.Errorf("tracervol: hole %q is not in %s", holeName, file)
	}
	return r, &h, nil
}

// sectionWindow converts six section indices in the same format as
// Region to a window over all time steps.
func sectionWindow(v []int) (tracervol.Window, error) {
	r, err := regionFromInts("Section", v)
	if err != nil {
		return tracervol.Window{}, err
	}
	return tracervol.Window{
		T0: 0, T1: tracervol.End,
		K0: r.Z0, K1: r.Z1,
		J0: r.Y0, J1: r.Y1,
		I0: r.X0, I1: r.X1,
	}, nil
}

// checkOutputFile makes sure that the output file is specified and its
// directory exists, and expand any environment variables.
func checkOutputFile(f string) (string, error) {
	if f == "" {
		return "", fmt.Errorf(`you need to specify an output file configuration variable (for example: OutputFile="output.csv")`)
	}
	f = os.ExpandEnv(f)
	outdir := filepath.Dir(f)
	if _, err := os.Stat(outdir); err != nil {
		return f, fmt.Errorf("tracervol: the OutputFile directory doesn't exist: %v", err)
	}
	return f, nil
}
