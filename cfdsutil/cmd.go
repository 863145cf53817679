/*
Copyright © 2021 the CFDS authors.
This file is part of CFDS.

CFDS is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

CFDS is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with CFDS.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package cfdsutil holds the configuration and command-line wiring for the
// cfds tool.
package cfdsutil

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/earthsci/cfds"
	"github.com/earthsci/cfds/ncout"
	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to the cfds tool.
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
			name: "schema",
			usage: `
              schema specifies the TOML file holding the format
              definitions.`,
			shorthand:  "s",
			defaultVal: "schema.toml",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "format",
			usage: `
              format specifies which of the formats defined in the schema
              file to build a template for.`,
			shorthand:  "f",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{templateCmd.Flags()},
		},
		{
			name: "dims",
			usage: `
              dims specifies the dataset dimension sizes as name=size
              pairs, for example --dims x=3 --dims y=2.`,
			shorthand:  "d",
			defaultVal: []string{},
			flagsets:   []*pflag.FlagSet{templateCmd.Flags()},
		},
		{
			name: "output",
			usage: `
              output specifies the NetCDF file to create.`,
			shorthand:  "o",
			defaultVal: "template.nc",
			flagsets:   []*pflag.FlagSet{templateCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("CFDS")

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
	Root.AddCommand(formatsCmd)
	Root.AddCommand(templateCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("cfds: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "cfds",
	Short: "A generator for CF-convention dataset templates.",
	Long: `cfds builds empty, metadata-complete dataset templates from format
schemas and writes them as NetCDF files, ready for data production
pipelines to fill in.

Configuration can be changed by using a configuration file (and providing
the path to the file using the --config flag), by using command-line
arguments, or by setting environment variables in the format 'CFDS_var'
where 'var' is the name of the variable to be set.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of CFDS.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("CFDS v%s\n", cfds.Version)
	},
	DisableAutoGenTag: true,
}

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List the formats defined in the schema file",
	Long: `formats reads the schema file and prints each format it defines,
together with its variables and the dimensions that need sizes before a
template can be built.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := LoadSchema(Cfg.GetString("schema"))
		if err != nil {
			return err
		}
		for _, format := range reg.Formats() {
			vars, err := reg.Variables(format)
			if err != nil {
				return err
			}
			dims, err := reg.RequiredDims(format)
			if err != nil {
				return err
			}
			dimNames := make([]string, 0, len(dims))
			for dim := range dims {
				dimNames = append(dimNames, dim)
			}
			sort.Strings(dimNames)
			cmd.Printf("%s:\n  variables: %s\n  dimensions: %s\n",
				format, strings.Join(vars, ", "), strings.Join(dimNames, ", "))
		}
		return nil
	},
	DisableAutoGenTag: true,
}

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Build a template dataset and write it as NetCDF",
	Long: `template builds an empty template dataset for the chosen format,
with the dimension sizes given on the command line, and writes it to the
output file in the classic NetCDF format.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := LoadSchema(Cfg.GetString("schema"))
		if err != nil {
			return err
		}
		format := Cfg.GetString("format")
		dimSizes, err := parseDimSizes(Cfg.GetStringSlice("dims"))
		if err != nil {
			return err
		}
		ds, err := reg.Build(format, dimSizes)
		if err != nil {
			var missing *cfds.MissingMetadataError
			if !errors.As(err, &missing) {
				return err
			}
			logrus.WithField("format", format).Warn(err)
		}
		output := Cfg.GetString("output")
		logrus.WithFields(logrus.Fields{
			"format": format,
			"output": output,
		}).Info("writing template")
		return ncout.WriteFile(output, ds)
	},
	DisableAutoGenTag: true,
}

// parseDimSizes converts name=size pairs to a dimension-size map.
func parseDimSizes(pairs []string) (map[string]int, error) {
	sizes := make(map[string]int, len(pairs))
	for _, pair := range pairs {
		i := strings.Index(pair, "=")
		if i <= 0 {
			return nil, fmt.Errorf("cfds: dimension size %q is not in name=size form", pair)
		}
		size, err := cast.ToIntE(pair[i+1:])
		if err != nil {
			return nil, fmt.Errorf("cfds: dimension size %q: %v", pair, err)
		}
		sizes[pair[:i]] = size
	}
	return sizes, nil
}
