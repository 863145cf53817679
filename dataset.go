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

package cfds

import "strings"

// A VariableKind classifies a variable definition after validation.
type VariableKind int

// The variable kinds a definition can resolve to.
const (
	KindPlain VariableKind = iota
	KindUncertainty
	KindFlag
)

// A VariableDef is one entry of a format schema. DType Flag together with
// FlagMeanings declares a flag variable; a non-empty ErrCorr declares an
// uncertainty variable; anything else is a plain variable. ErrCorr and
// FlagMeanings are mutually exclusive.
type VariableDef struct {
	Name         string
	DType        DType
	Dims         []string
	Attributes   *Attributes
	Encoding     *Encoding
	ErrCorr      []ErrCorr
	FlagMeanings []string
}

// resolve validates the definition and classifies it, returning the kind, a
// private copy of the attribute map with schema-level keys extracted, and
// the effective flag meanings. The definition itself is never modified.
func (d *VariableDef) resolve() (VariableKind, *Attributes, []string, error) {
	attrs := d.Attributes.Clone()
	meanings := append([]string(nil), d.FlagMeanings...)
	if attrs != nil {
		// Schema conventions allow flag_meanings inside the attribute
		// map; it belongs to the flag encoder, not the attributes.
		if v, ok := attrs.Del(FlagMeaningsAttr); ok && len(meanings) == 0 {
			switch m := v.(type) {
			case []string:
				meanings = m
			case string:
				meanings = strings.Fields(m)
			}
		}
	}

	switch {
	case d.DType == Flag:
		if len(d.ErrCorr) > 0 {
			return 0, nil, nil, &InvalidSchemaError{Variable: d.Name,
				Reason: "flag variables cannot declare an error-correlation structure"}
		}
		if d.Encoding != nil {
			return 0, nil, nil, &InvalidSchemaError{Variable: d.Name,
				Reason: "flag variables cannot carry encoding hints"}
		}
		if len(meanings) == 0 {
			return 0, nil, nil, &InvalidSchemaError{Variable: d.Name,
				Reason: "flag variables require flag_meanings"}
		}
		return KindFlag, attrs, meanings, nil
	case len(meanings) > 0:
		return 0, nil, nil, &InvalidSchemaError{Variable: d.Name,
			Reason: `flag_meanings requires dtype "flag"`}
	case len(d.ErrCorr) > 0:
		return KindUncertainty, attrs, nil, nil
	}
	return KindPlain, attrs, nil, nil
}

// A Dataset is an ordered collection of named variables plus dataset-level
// attributes. Datasets are assembled in one call and are not meant to be
// mutated afterwards.
type Dataset struct {
	names []string
	vars  map[string]*Variable
	attrs *Attributes
}

// Variables returns the variable names in the order they were added.
func (ds *Dataset) Variables() []string {
	return append([]string(nil), ds.names...)
}

// Variable returns the variable stored under name.
func (ds *Dataset) Variable(name string) (*Variable, bool) {
	v, ok := ds.vars[name]
	return v, ok
}

// Len returns the number of variables.
func (ds *Dataset) Len() int { return len(ds.names) }

// Attrs returns the dataset-level attribute map.
func (ds *Dataset) Attrs() *Attributes { return ds.attrs }

func (ds *Dataset) add(name string, v *Variable) {
	if _, ok := ds.vars[name]; !ok {
		ds.names = append(ds.names, name)
	}
	ds.vars[name] = v
}

// AssembleDataset builds one variable per definition, in declaration order,
// and merges the dataset-level metadata last. Dimension names are resolved
// against dimSizes; a reference to an unbound dimension is an
// UnknownDimensionError. Assembly is fail-fast: the first error aborts the
// call and no partial dataset is returned. A repeated variable name
// overwrites the earlier variable silently.
func AssembleDataset(defs []VariableDef, dimSizes map[string]int, metadata *Attributes) (*Dataset, error) {
	ds := &Dataset{vars: make(map[string]*Variable), attrs: NewAttributes()}

	for i := range defs {
		def := &defs[i]
		if def.Name == "" {
			return nil, &InvalidSchemaError{Reason: "variable name must be a non-empty string"}
		}

		shape := make([]int, len(def.Dims))
		for j, dim := range def.Dims {
			size, ok := dimSizes[dim]
			if !ok {
				return nil, &UnknownDimensionError{Variable: def.Name, Dim: dim}
			}
			shape[j] = size
		}

		kind, attrs, meanings, err := def.resolve()
		if err != nil {
			return nil, err
		}

		var v *Variable
		switch kind {
		case KindFlag:
			v, err = NewFlagsVariable(shape, meanings, def.Dims, attrs)
		case KindUncertainty:
			v, err = NewUncertaintyVariable(shape, def.DType, def.Dims, attrs, "", def.ErrCorr)
		default:
			v, err = NewVariable(shape, def.DType, def.Dims, attrs, nil)
		}
		if err != nil {
			return nil, err
		}
		if kind != KindFlag && def.Encoding != nil {
			e := def.Encoding
			v.AddEncoding(e.DType, e.ScaleFactor, e.AddOffset, e.FillValue, e.ChunkSizes)
		}

		ds.add(def.Name, v)
	}

	ds.attrs.Merge(metadata)
	return ds, nil
}
