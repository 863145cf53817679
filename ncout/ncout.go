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

// Package ncout writes assembled dataset templates to files in the classic
// NetCDF format.
//
// The classic format stores six element types (byte, char, short, int,
// float, double). Unsigned 16 and 32 bit variables are widened losslessly
// to int and double; 64 bit integer variables have no lossless
// representation and are rejected. Chunk-size encoding hints do not apply
// to the classic format and are ignored. An encoding that narrows the
// on-disk type should carry its own fill value override; otherwise the CF
// default for the on-disk type is used.
package ncout

import (
	"fmt"
	"os"
	"strings"

	"github.com/ctessum/cdf"
	"github.com/earthsci/cfds"
	"github.com/spf13/cast"
)

// WriteFile creates (or truncates) the named file and serializes ds to it.
func WriteFile(filename string, ds *cfds.Dataset) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("ncout: creating %s: %v", filename, err)
	}
	defer f.Close()
	return Write(f, ds)
}

// Write serializes ds to w in the classic NetCDF format: one file dimension
// per distinct variable dimension, one file variable per dataset variable
// with its attributes and fill-initialized data, and the dataset attributes
// as global attributes.
func Write(w cdf.ReaderWriterAt, ds *cfds.Dataset) error {
	h, err := header(ds)
	if err != nil {
		return err
	}
	f, err := cdf.Create(w, h)
	if err != nil {
		return fmt.Errorf("ncout: creating netcdf file: %v", err)
	}
	for _, name := range ds.Variables() {
		v, _ := ds.Variable(name)
		buf, err := storageData(v)
		if err != nil {
			return fmt.Errorf("ncout: variable %s: %v", name, err)
		}
		wr := f.Writer(name, make([]int, len(v.Shape())), v.Shape())
		if _, err := wr.Write(buf); err != nil {
			return fmt.Errorf("ncout: writing variable %s: %v", name, err)
		}
	}
	return nil
}

func header(ds *cfds.Dataset) (*cdf.Header, error) {
	var dimNames []string
	var lengths []int
	seen := make(map[string]int)
	for _, name := range ds.Variables() {
		v, _ := ds.Variable(name)
		for i, dim := range v.Dims() {
			size := v.Shape()[i]
			if prev, ok := seen[dim]; ok {
				if prev != size {
					return nil, fmt.Errorf("ncout: dimension %q has conflicting sizes %d and %d", dim, prev, size)
				}
				continue
			}
			seen[dim] = size
			dimNames = append(dimNames, dim)
			lengths = append(lengths, size)
		}
	}

	h := cdf.NewHeader(dimNames, lengths)
	for _, name := range ds.Variables() {
		v, _ := ds.Variable(name)
		st := storageDType(v)
		zero, err := carrierZero(st)
		if err != nil {
			return nil, fmt.Errorf("ncout: variable %s: %v", name, err)
		}
		h.AddVariable(name, v.Dims(), zero)
		if err := addVarAttributes(h, name, v, st); err != nil {
			return nil, err
		}
	}
	for _, key := range ds.Attrs().Keys() {
		val, _ := ds.Attrs().Get(key)
		av, err := attrValue(val)
		if err != nil {
			return nil, fmt.Errorf("ncout: global attribute %s: %v", key, err)
		}
		h.AddAttribute("", key, av)
	}

	h.Define()
	for _, err := range h.Check() {
		return nil, fmt.Errorf("ncout: invalid netcdf header: %v", err)
	}
	return h, nil
}

func addVarAttributes(h *cdf.Header, name string, v *cfds.Variable, st cfds.DType) error {
	enc := v.Encoding()
	for _, key := range v.Attrs().Keys() {
		val, _ := v.Attrs().Get(key)
		if key == cfds.FillValueAttr {
			// The on-disk fill must match the on-disk type for readers
			// to recognize it.
			fv, err := diskFill(v, st)
			if err != nil {
				return fmt.Errorf("ncout: variable %s: %v", name, err)
			}
			h.AddAttribute(name, key, fv)
			continue
		}
		av, err := attrValue(val)
		if err != nil {
			return fmt.Errorf("ncout: variable %s attribute %s: %v", name, key, err)
		}
		h.AddAttribute(name, key, av)
	}
	if enc != nil {
		h.AddAttribute(name, "scale_factor", []float64{enc.ScaleFactor})
		h.AddAttribute(name, "add_offset", []float64{enc.AddOffset})
	}
	return nil
}

// storageDType returns the on-disk element type for v.
func storageDType(v *cfds.Variable) cfds.DType {
	if enc := v.Encoding(); enc != nil {
		return enc.DType
	}
	return v.DType()
}

// diskFill returns the variable's on-disk fill value as a one-element
// carrier slice of the storage type.
func diskFill(v *cfds.Variable, st cfds.DType) (interface{}, error) {
	var fill interface{}
	if enc := v.Encoding(); enc != nil {
		fill = enc.FillValue
		if fill == nil {
			var err error
			if fill, err = cfds.DefaultFillValue(st); err != nil {
				return nil, err
			}
		}
	} else {
		fill = v.FillValue()
	}
	buf, err := cfds.Filled(st, 1, fill)
	if err != nil {
		return nil, err
	}
	return carrierData(buf)
}

// storageData returns the full fill-initialized on-disk buffer for v.
func storageData(v *cfds.Variable) (interface{}, error) {
	enc := v.Encoding()
	if enc == nil {
		return carrierData(v.Data())
	}
	fill := enc.FillValue
	if fill == nil {
		var err error
		if fill, err = cfds.DefaultFillValue(enc.DType); err != nil {
			return nil, err
		}
	}
	buf, err := cfds.Filled(enc.DType, v.Len(), fill)
	if err != nil {
		return nil, err
	}
	return carrierData(buf)
}

// carrierZero returns a one-element slice of the cdf carrier type for d,
// used to declare the variable's file type.
func carrierZero(d cfds.DType) (interface{}, error) {
	switch d {
	case cfds.Int8, cfds.Uint8:
		return []uint8{0}, nil
	case cfds.Int16:
		return []int16{0}, nil
	case cfds.Uint16, cfds.Int32:
		return []int32{0}, nil
	case cfds.Uint32:
		return []float64{0}, nil
	case cfds.Float32:
		return []float32{0}, nil
	case cfds.Float64:
		return []float64{0}, nil
	}
	return nil, fmt.Errorf("type %v has no classic NetCDF representation", d)
}

// carrierData converts a typed data buffer to the slice type cdf stores
// for it.
func carrierData(data interface{}) (interface{}, error) {
	switch d := data.(type) {
	case []uint8, []int16, []int32, []float32, []float64:
		return d, nil
	case []int8:
		out := make([]uint8, len(d))
		for i, e := range d {
			out[i] = uint8(e)
		}
		return out, nil
	case []uint16:
		out := make([]int32, len(d))
		for i, e := range d {
			out[i] = int32(e)
		}
		return out, nil
	case []uint32:
		out := make([]float64, len(d))
		for i, e := range d {
			out[i] = float64(e)
		}
		return out, nil
	}
	return nil, fmt.Errorf("buffer type %T has no classic NetCDF representation", data)
}

// attrValue converts a template attribute value to a type cdf accepts.
// String lists are joined with spaces, per the CF convention for
// list-valued string attributes.
func attrValue(val interface{}) (interface{}, error) {
	switch v := val.(type) {
	case string:
		return v, nil
	case []string:
		return strings.Join(v, " "), nil
	case bool:
		if v {
			return []int32{1}, nil
		}
		return []int32{0}, nil
	case []float64:
		return v, nil
	case []float32:
		return v, nil
	case []int32:
		return v, nil
	case []int:
		out := make([]int32, len(v))
		for i, e := range v {
			out[i] = int32(e)
		}
		return out, nil
	case []interface{}:
		strs := make([]string, 0, len(v))
		for _, e := range v {
			s, ok := e.(string)
			if !ok {
				strs = nil
				break
			}
			strs = append(strs, s)
		}
		if strs != nil {
			return strings.Join(strs, " "), nil
		}
		out := make([]float64, len(v))
		for i, e := range v {
			f, err := cast.ToFloat64E(e)
			if err != nil {
				return nil, fmt.Errorf("value %v is not storable: %v", val, err)
			}
			out[i] = f
		}
		return out, nil
	case float32, float64:
		return []float64{cast.ToFloat64(v)}, nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		if n, err := cast.ToInt32E(v); err == nil {
			return []int32{n}, nil
		}
		return []float64{cast.ToFloat64(v)}, nil
	}
	return fmt.Sprint(val), nil
}
