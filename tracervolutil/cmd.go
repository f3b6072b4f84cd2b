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

// Package tracervolutil contains the command-line interface for tracervol.
package tracervolutil

import (
	"fmt"
	"os"
	"strings"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/tracervol"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

// Log receives progress and result messages.
var Log logrus.FieldLogger = logrus.StandardLogger()

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to tracervol.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "LogLevel",
			usage: `
              LogLevel is the minimum level of log messages to print. Valid
              values are "debug", "info", "warning", and "error".`,
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "ExpPath",
			usage: `
              ExpPath is the path to the directory holding the model experiment.
              It can include environment variables.`,
			shorthand:  "e",
			defaultVal: ".",
			flagsets:   []*pflag.FlagSet{volumeCmd.Flags(), hcwCmd.Flags(), transportCmd.Flags()},
		},
		{
			name: "RunName",
			usage: `
              RunName is the name of the run directory within ExpPath that holds
              the gridGlob.nc, stateGlob.nc, and ptracersGlob.nc files.`,
			shorthand:  "r",
			defaultVal: "run01",
			flagsets:   []*pflag.FlagSet{volumeCmd.Flags(), hcwCmd.Flags(), transportCmd.Flags()},
		},
		{
			name: "Tracer",
			usage: `
              Tracer is the name of the passive tracer variable to integrate.`,
			defaultVal: "Tr1",
			flagsets:   []*pflag.FlagSet{hcwCmd.Flags()},
		},
		{
			name: "Threshold.Cell",
			usage: `
              Threshold.Cell gives the (depth, latitude, longitude) indices of the
              reference cell whose initial tracer concentration is used as the
              threshold concentration for the whole time series.`,
			defaultVal: []int{29, 50, 180},
			flagsets:   []*pflag.FlagSet{hcwCmd.Flags()},
		},
		{
			name: "Region",
			usage: `
              Region gives the control volume as six indices:
              depth start, depth end, latitude start, latitude end, longitude start,
              and longitude end. Ranges are half-open and an end of -1 extends the
              range to the end of the axis. The default is the shelf above depth
              index 29 and onshore of latitude index 227.`,
			defaultVal: []int{0, 29, 227, -1, 0, -1},
			flagsets:   []*pflag.FlagSet{volumeCmd.Flags(), hcwCmd.Flags()},
		},
		{
			name: "Hole",
			usage: `
              Hole gives a sub-volume of Region to be excluded from the results,
              in the same format as Region. Its own results are reported
              separately. By default there is no hole; the canyon below the
              default shelf is, for example, --Hole=0,29,227,267,120,240.`,
			defaultVal: []int{},
			flagsets:   []*pflag.FlagSet{volumeCmd.Flags(), hcwCmd.Flags()},
		},
		{
			name: "RegionFile",
			usage: `
              RegionFile is the path to an optional TOML file of named control
              volumes. If it is specified, RegionName and HoleName select the
              region and hole from it instead of Region and Hole.
              It can include environment variables.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{volumeCmd.Flags(), hcwCmd.Flags()},
		},
		{
			name: "RegionName",
			usage: `
              RegionName is the name of the region in RegionFile.`,
			defaultVal: "shelf",
			flagsets:   []*pflag.FlagSet{volumeCmd.Flags(), hcwCmd.Flags()},
		},
		{
			name: "HoleName",
			usage: `
              HoleName is the name of the hole in RegionFile. Leave empty for no hole.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{volumeCmd.Flags(), hcwCmd.Flags()},
		},
		{
			name: "FluxFile",
			usage: `
              FluxFile is the name of the tracer flux file within the run directory.`,
			defaultVal: "fluxTr01Glob.nc",
			flagsets:   []*pflag.FlagSet{transportCmd.Flags()},
		},
		{
			name: "FluxVariables",
			usage: `
              FluxVariables gives the names of the vertical, latitude-direction,
              and longitude-direction advective tracer fluxes in FluxFile.`,
			defaultVal: []string{"ADVrTr01", "ADVyTr01", "ADVxTr01"},
			flagsets:   []*pflag.FlagSet{transportCmd.Flags()},
		},
		{
			name: "Section",
			usage: `
              Section gives the cross section to compute transport through as
              six indices in the same format as Region. A latitude or longitude
              range whose start equals its end selects a single vertical section;
              otherwise the horizontal plane at the depth start index is used.
              The default is the shelf break at latitude index 227.`,
			defaultVal: []int{0, 29, 227, 227, 0, -1},
			flagsets:   []*pflag.FlagSet{transportCmd.Flags()},
		},
		{
			name: "OutputFile",
			usage: `
              OutputFile is the path to the desired output file. Files ending in
              ".xlsx" are written as spreadsheets and all others as CSV. It can
              include environment variables.`,
			shorthand:  "o",
			defaultVal: "tracervol_output.csv",
			flagsets:   []*pflag.FlagSet{volumeCmd.Flags(), hcwCmd.Flags(), transportCmd.Flags()},
		},
		{
			name: "PlotFile",
			usage: `
              PlotFile is the path to an optional PNG plot of the output time
              series. It can include environment variables.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{hcwCmd.Flags(), transportCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("TRACERVOL")
	Cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	Cfg.AutomaticEnv()

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case []string:
				if option.shorthand == "" {
					set.StringSlice(option.name, option.defaultVal.([]string), option.usage)
				} else {
					set.StringSliceP(option.name, option.shorthand, option.defaultVal.([]string), option.usage)
				}
			case []int:
				if option.shorthand == "" {
					set.IntSlice(option.name, option.defaultVal.([]int), option.usage)
				} else {
					set.IntSliceP(option.name, option.shorthand, option.defaultVal.([]int), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(volumeCmd)
	Root.AddCommand(hcwCmd)
	Root.AddCommand(transportCmd)
}

// setConfig finds and reads in the configuration file, if there is one,
// and sets the logging level.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(os.ExpandEnv(cfgpath))
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("tracervol: problem reading configuration file: %v", err)
		}
	}
	level, err := logrus.ParseLevel(Cfg.GetString("LogLevel"))
	if err != nil {
		return fmt.Errorf("tracervol: invalid LogLevel: %v", err)
	}
	if l, ok := Log.(*logrus.Logger); ok {
		l.SetLevel(level)
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "tracervol",
	Short: "Tracer volume and mass diagnostics for ocean model output.",
	Long: `tracervol computes the volume of water with tracer concentrations above a
threshold, the tracer mass within it, and tracer transport through cross sections
from MITgcm-style NetCDF output. Use the subcommands specified below to access
the functionality.

Refer to the subcommand documentation for configuration options and default settings.
Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'TRACERVOL_var' where 'var' is the
name of the variable to be set, with any '.' replaced by '_'. Many configuration
variables are additionally allowed to contain environment variables within them.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of tracervol.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("tracervol v%s\n", tracervol.Version)
	},
	DisableAutoGenTag: true,
}

// volumeCmd is a command that calculates the geometric volume of a
// control volume.
var volumeCmd = &cobra.Command{
	Use:   "volume",
	Short: "Calculate the volume of a control volume.",
	Long: `volume calculates the open water volume of the control volume specified
by Region (or RegionFile), excluding the Hole, along with the volume of the Hole.
Partially blocked cells are weighted by their open fraction.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, hole, err := regionConfig(Cfg)
		if err != nil {
			return err
		}
		outputFile, err := checkOutputFile(Cfg.GetString("OutputFile"))
		if err != nil {
			return err
		}
		net, holeVol, err := Volume(os.ExpandEnv(Cfg.GetString("ExpPath")), Cfg.GetString("RunName"), r, hole)
		if err != nil {
			return err
		}
		return WriteSeries(outputFile, []string{"Volume", "HoleVolume"},
			[]float64{net.Value()}, []float64{holeVol.Value()})
	},
	DisableAutoGenTag: true,
}

// hcwCmd is a command that calculates the volume and mass of water
// above a tracer concentration threshold.
var hcwCmd = &cobra.Command{
	Use:   "hcw",
	Short: "Calculate tracer volume and mass time series.",
	Long: `hcw calculates, for each time step, the volume of water within the control
volume whose Tracer concentration is at least the initial concentration at the
reference cell Threshold.Cell, and the mass of tracer within that water. If a
Hole is specified, the results for the control volume exclude it and the
results for the hole are reported separately.

	Output columns:
	Time: Time step index
	Volume: Volume above the threshold [m³]
	Mass: Tracer mass above the threshold (tracer units × liters)
	TotalMass: Tracer mass in all water, regardless of the threshold
	HoleVolume, HoleMass, HoleTotalMass: The same quantities for the hole`,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, hole, err := regionConfig(Cfg)
		if err != nil {
			return err
		}
		ref, err := getIntSlice(Cfg, "Threshold.Cell")
		if err != nil {
			return fmt.Errorf("tracervol: reading 'Threshold.Cell': %v", err)
		}
		if len(ref) != 3 {
			return fmt.Errorf("tracervol: Threshold.Cell needs 3 indices but has %d", len(ref))
		}
		outputFile, err := checkOutputFile(Cfg.GetString("OutputFile"))
		if err != nil {
			return err
		}
		res, err := HCW(os.ExpandEnv(Cfg.GetString("ExpPath")), Cfg.GetString("RunName"),
			Cfg.GetString("Tracer"), ref[0], ref[1], ref[2], r, hole)
		if err != nil {
			return err
		}
		if err := WriteSeries(outputFile,
			[]string{"Volume", "Mass", "TotalMass", "HoleVolume", "HoleMass", "HoleTotalMass"},
			res.Volume, res.Mass, res.TotalMass, res.HoleVolume, res.HoleMass, res.HoleTotalMass); err != nil {
			return err
		}
		if plotFile := os.ExpandEnv(Cfg.GetString("PlotFile")); plotFile != "" {
			return PlotSeries(plotFile, "Volume above threshold", "Volume (m³)",
				map[string][]float64{"Region": res.Volume, "Hole": res.HoleVolume})
		}
		return nil
	},
	DisableAutoGenTag: true,
}

// transportCmd is a command that calculates tracer transport through a
// cross section.
var transportCmd = &cobra.Command{
	Use:   "transport",
	Short: "Calculate tracer transport through a section.",
	Long: `transport calculates the time series of the advective tracer flux through
the cross section specified by Section, using the fluxes in FluxFile. Fluxes on
cell faces are first interpolated to cell centers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sec, err := getIntSlice(Cfg, "Section")
		if err != nil {
			return fmt.Errorf("tracervol: reading 'Section': %v", err)
		}
		w, err := sectionWindow(sec)
		if err != nil {
			return err
		}
		vars := Cfg.GetStringSlice("FluxVariables")
		if len(vars) != 3 {
			return fmt.Errorf("tracervol: FluxVariables needs 3 names but has %d", len(vars))
		}
		outputFile, err := checkOutputFile(Cfg.GetString("OutputFile"))
		if err != nil {
			return err
		}
		tr, err := TransportSeries(os.ExpandEnv(Cfg.GetString("ExpPath")), Cfg.GetString("RunName"),
			Cfg.GetString("FluxFile"), vars[0], vars[1], vars[2], w)
		if err != nil {
			return err
		}
		if err := WriteSeries(outputFile, []string{"Transport"}, tr); err != nil {
			return err
		}
		if plotFile := os.ExpandEnv(Cfg.GetString("PlotFile")); plotFile != "" {
			return PlotSeries(plotFile, "Tracer transport", "Transport",
				map[string][]float64{"Section": tr})
		}
		return nil
	},
	DisableAutoGenTag: true,
}
