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

package cfdsutil

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/earthsci/cfds"
	"github.com/spf13/cast"
)

// A schema file declares formats in TOML:
//
//	[formats.swath.metadata]
//	conventions = "CF-1.8"
//
//	[formats.swath.variables.radiance]
//	dtype = "float32"
//	dim = ["y", "x"]
//	  [formats.swath.variables.radiance.attributes]
//	  units = "W m-2 sr-1"
//
// Formats, variables, and attributes keep the order they have in the file.

type schemaFile struct {
	Formats map[string]formatFile `toml:"formats"`
}

type formatFile struct {
	Metadata  map[string]interface{}  `toml:"metadata"`
	Variables map[string]variableFile `toml:"variables"`
}

type variableFile struct {
	DType        string                 `toml:"dtype"`
	Dim          []string               `toml:"dim"`
	Attributes   map[string]interface{} `toml:"attributes"`
	Encoding     *encodingFile          `toml:"encoding"`
	ErrCorr      []errCorrFile          `toml:"err_corr"`
	FlagMeanings []string               `toml:"flag_meanings"`
}

type encodingFile struct {
	DType       string   `toml:"dtype"`
	ScaleFactor *float64 `toml:"scale_factor"`
	Offset      *float64 `toml:"offset"`
	FillValue   *float64 `toml:"fill_value"`
	ChunkSizes  []int    `toml:"chunk_sizes"`
}

type errCorrFile struct {
	Dim    interface{} `toml:"dim"` // a dimension name or a list of them
	Form   string      `toml:"form"`
	Params []float64   `toml:"params"`
	Units  []string    `toml:"units"`
}

// LoadSchema reads a TOML schema file and returns a registry with every
// format it declares.
func LoadSchema(filename string) (*cfds.Registry, error) {
	var sf schemaFile
	md, err := toml.DecodeFile(filename, &sf)
	if err != nil {
		return nil, fmt.Errorf("cfdsutil: reading schema %s: %v", filename, err)
	}
	r, err := buildRegistry(&sf, md)
	if err != nil {
		return nil, fmt.Errorf("cfdsutil: schema %s: %v", filename, err)
	}
	return r, nil
}

// LoadSchemaString parses TOML schema text, as LoadSchema does for a file.
func LoadSchemaString(text string) (*cfds.Registry, error) {
	var sf schemaFile
	md, err := toml.Decode(text, &sf)
	if err != nil {
		return nil, fmt.Errorf("cfdsutil: parsing schema: %v", err)
	}
	return buildRegistry(&sf, md)
}

func buildRegistry(sf *schemaFile, md toml.MetaData) (*cfds.Registry, error) {
	r := cfds.NewRegistry()
	for _, format := range subKeys(md, "formats") {
		ff := sf.Formats[format]
		var defs []cfds.VariableDef
		for _, name := range subKeys(md, "formats", format, "variables") {
			def, err := ff.Variables[name].toDef(name, md, format)
			if err != nil {
				return nil, err
			}
			defs = append(defs, def)
		}
		var meta *cfds.Attributes
		if md.IsDefined("formats", format, "metadata") {
			meta = orderedAttrs(ff.Metadata, md, "formats", format, "metadata")
		}
		r.Register(format, defs, meta)
	}
	return r, nil
}

func (vf variableFile) toDef(name string, md toml.MetaData, format string) (cfds.VariableDef, error) {
	dtype, err := cfds.ParseDType(vf.DType)
	if err != nil {
		return cfds.VariableDef{}, fmt.Errorf("variable %s: %v", name, err)
	}
	def := cfds.VariableDef{
		Name:         name,
		DType:        dtype,
		Dims:         vf.Dim,
		FlagMeanings: vf.FlagMeanings,
	}
	if vf.Attributes != nil {
		def.Attributes = orderedAttrs(vf.Attributes, md, "formats", format, "variables", name, "attributes")
	}
	for _, cf := range vf.ErrCorr {
		dims, err := errCorrDims(cf.Dim)
		if err != nil {
			return cfds.VariableDef{}, fmt.Errorf("variable %s: %v", name, err)
		}
		def.ErrCorr = append(def.ErrCorr, cfds.ErrCorr{
			Dims:   dims,
			Form:   cf.Form,
			Params: cf.Params,
			Units:  cf.Units,
		})
	}
	if vf.Encoding != nil {
		enc, err := vf.Encoding.toEncoding()
		if err != nil {
			return cfds.VariableDef{}, fmt.Errorf("variable %s: %v", name, err)
		}
		def.Encoding = enc
	}
	return def, nil
}

func (ef *encodingFile) toEncoding() (*cfds.Encoding, error) {
	dtype, err := cfds.ParseDType(ef.DType)
	if err != nil {
		return nil, fmt.Errorf("encoding: %v", err)
	}
	enc := &cfds.Encoding{
		DType:       dtype,
		ScaleFactor: 1.0,
		AddOffset:   0.0,
		ChunkSizes:  ef.ChunkSizes,
	}
	if ef.ScaleFactor != nil {
		enc.ScaleFactor = *ef.ScaleFactor
	}
	if ef.Offset != nil {
		enc.AddOffset = *ef.Offset
	}
	if ef.FillValue != nil {
		enc.FillValue = *ef.FillValue
	}
	return enc, nil
}

func errCorrDims(dim interface{}) ([]string, error) {
	switch d := dim.(type) {
	case string:
		return []string{d}, nil
	case []interface{}:
		dims, err := cast.ToStringSliceE(d)
		if err != nil {
			return nil, fmt.Errorf("err_corr dim %v: %v", dim, err)
		}
		return dims, nil
	}
	return nil, fmt.Errorf("err_corr dim must be a dimension name or a list of names (got %T)", dim)
}

// subKeys returns the immediate child key names under path, in file order.
func subKeys(md toml.MetaData, path ...string) []string {
	var keys []string
	seen := make(map[string]bool)
	for _, key := range md.Keys() {
		if len(key) != len(path)+1 || !hasPrefix(key, path) {
			continue
		}
		k := key[len(path)]
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	return keys
}

func hasPrefix(key toml.Key, path []string) bool {
	for i, p := range path {
		if key[i] != p {
			return false
		}
	}
	return true
}

// orderedAttrs converts a decoded TOML table to an attribute map keyed in
// file order.
func orderedAttrs(m map[string]interface{}, md toml.MetaData, path ...string) *cfds.Attributes {
	a := cfds.NewAttributes()
	for _, k := range subKeys(md, path...) {
		if v, ok := m[k]; ok {
			a.Set(k, v)
		}
	}
	// Anything the metadata walk missed still gets carried.
	for k, v := range m {
		if _, ok := a.Get(k); !ok {
			a.Set(k, v)
		}
	}
	return a
}
