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

import "fmt"

// A FormatDef is one registered output format: its variable definitions in
// declaration order and its dataset-level metadata.
type FormatDef struct {
	Variables []VariableDef
	Metadata  *Attributes
}

// A Registry maps format names to schemas and builds dataset templates from
// them. Registries are ordinary owned values, not global state; create as
// many as needed. Register calls require external locking if a registry is
// shared across goroutines; the read-only methods do not, as long as no
// concurrent Register runs.
type Registry struct {
	order   []string
	formats map[string]FormatDef
}

// NewRegistry returns an empty format registry.
func NewRegistry() *Registry {
	return &Registry{formats: make(map[string]FormatDef)}
}

// Register stores a schema under the format name. Re-registering a name
// replaces the earlier schema. A nil metadata map marks the format as
// having no metadata, which Build reports. The definitions and metadata are
// copied; later changes by the caller do not affect the registry.
func (r *Registry) Register(format string, defs []VariableDef, metadata *Attributes) {
	if _, ok := r.formats[format]; !ok {
		r.order = append(r.order, format)
	}
	r.formats[format] = FormatDef{
		Variables: append([]VariableDef(nil), defs...),
		Metadata:  metadata.Clone(),
	}
}

// Build assembles a dataset template for the named format with the given
// dimension sizes.
//
// An unregistered format name is an UnknownFormatError. A format registered
// without metadata still builds: the dataset is returned together with a
// *MissingMetadataError, and the caller chooses between treating that as
// fatal and proceeding with empty metadata.
func (r *Registry) Build(format string, dimSizes map[string]int) (*Dataset, error) {
	f, ok := r.formats[format]
	if !ok {
		return nil, &UnknownFormatError{Format: format, Known: r.Formats()}
	}
	ds, err := AssembleDataset(f.Variables, dimSizes, f.Metadata)
	if err != nil {
		return nil, err
	}
	if f.Metadata == nil {
		return ds, &MissingMetadataError{Format: format}
	}
	return ds, nil
}

// Formats returns the registered format names in registration order.
func (r *Registry) Formats() []string {
	return append([]string(nil), r.order...)
}

// Variables returns the variable names of the named format in declaration
// order.
func (r *Registry) Variables(format string) ([]string, error) {
	f, ok := r.formats[format]
	if !ok {
		return nil, &UnknownFormatError{Format: format, Known: r.Formats()}
	}
	names := make([]string, len(f.Variables))
	for i, d := range f.Variables {
		names[i] = d.Name
	}
	return names, nil
}

// VariableDefinition returns the definition of one variable of the named
// format.
func (r *Registry) VariableDefinition(format, variable string) (*VariableDef, error) {
	f, ok := r.formats[format]
	if !ok {
		return nil, &UnknownFormatError{Format: format, Known: r.Formats()}
	}
	for i := range f.Variables {
		if f.Variables[i].Name == variable {
			return &f.Variables[i], nil
		}
	}
	return nil, fmt.Errorf("cfds: format %q has no variable %q", format, variable)
}

// RequiredDims returns the set of dimension names the named format needs
// sizes for: the union of the dimension lists of all its variables.
func (r *Registry) RequiredDims(format string) (map[string]struct{}, error) {
	f, ok := r.formats[format]
	if !ok {
		return nil, &UnknownFormatError{Format: format, Known: r.Formats()}
	}
	dims := make(map[string]struct{})
	for _, d := range f.Variables {
		for _, dim := range d.Dims {
			dims[dim] = struct{}{}
		}
	}
	return dims, nil
}

// EmptyDimSizes returns a dimension-size map with an entry per required
// dimension of the named format, each left at the zero placeholder for the
// caller to fill in before calling Build.
func (r *Registry) EmptyDimSizes(format string) (map[string]int, error) {
	dims, err := r.RequiredDims(format)
	if err != nil {
		return nil, err
	}
	sizes := make(map[string]int, len(dims))
	for dim := range dims {
		sizes[dim] = 0
	}
	return sizes, nil
}
