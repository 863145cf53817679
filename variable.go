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

import (
	"fmt"

	"github.com/ctessum/sparse"
)

// FillValueAttr is the attribute key under which a variable's fill value is
// recorded, per the CF conventions.
const FillValueAttr = "_FillValue"

// defaultDimNames is the reserved alphabet used when a caller builds a
// variable without naming its dimensions. Names are assigned
// innermost-first, so "x" is always the fastest-varying dimension.
// Intended for convenience and testing; production schemas name their
// dimensions explicitly.
var defaultDimNames = []string{
	"x", "y", "z", "a", "b", "c", "d", "e", "f", "g", "h", "i", "j",
	"k", "l", "m", "n", "o", "p", "q", "r", "s", "t", "u", "v", "w",
}

func defaultNames(n int) ([]string, error) {
	if n > len(defaultDimNames) {
		return nil, &InvalidSchemaError{
			Reason: fmt.Sprintf("%d dimensions exceed the %d default dimension names; name the dimensions explicitly", n, len(defaultDimNames)),
		}
	}
	names := make([]string, n)
	for i := range names {
		names[i] = defaultDimNames[n-1-i]
	}
	return names, nil
}

// An Encoding describes how a variable should be represented when it is
// serialized: the on-disk type, the packing transform, and optional fill
// and chunking overrides. It is advisory metadata for the writer; attaching
// one never changes the in-memory data.
type Encoding struct {
	DType       DType
	ScaleFactor float64
	AddOffset   float64
	FillValue   interface{} // optional on-disk fill override; nil means none
	ChunkSizes  []int       // optional chunk shape; nil means unchunked
}

// A Variable is a typed, named-dimension, fill-initialized array together
// with its attribute map and an optional serialization encoding. Variables
// are created once per build call and are not meant to be mutated after the
// dataset holding them has been returned.
type Variable struct {
	dtype DType
	dims  []string
	shape []int
	data  interface{} // typed slice, row-major
	attrs *Attributes
	enc   *Encoding
}

// NewVariable builds a fill-initialized variable.
//
// dimNames may be nil, in which case names are drawn from the reserved
// default alphabet. attrs may be nil; it is copied, never retained or
// modified. A nil fillValue selects the CF default fill value for the
// type. The resolved fill value is recorded under the FillValueAttr key
// before the caller's attributes are merged, so a caller attribute with
// that key wins.
func NewVariable(dimSizes []int, dtype DType, dimNames []string, attrs *Attributes, fillValue interface{}) (*Variable, error) {
	if dtype == Flag {
		return nil, &UnsupportedTypeError{Type: dtype.String()}
	}
	if dimNames == nil {
		var err error
		if dimNames, err = defaultNames(len(dimSizes)); err != nil {
			return nil, err
		}
	} else if len(dimNames) != len(dimSizes) {
		return nil, &InvalidSchemaError{
			Reason: fmt.Sprintf("%d dimension names given for %d dimensions", len(dimNames), len(dimSizes)),
		}
	} else {
		dimNames = append([]string(nil), dimNames...)
	}

	n := 1
	for i, size := range dimSizes {
		if size <= 0 {
			return nil, &InvalidSchemaError{
				Reason: fmt.Sprintf("dimension %q has non-positive size %d", dimNames[i], size),
			}
		}
		n *= size
	}

	var fill interface{}
	var err error
	if fillValue == nil {
		fill, err = DefaultFillValue(dtype)
	} else {
		fill, err = dtype.coerce(fillValue)
	}
	if err != nil {
		return nil, err
	}

	va := NewAttributes()
	va.Set(FillValueAttr, fill)
	va.Merge(attrs)

	return &Variable{
		dtype: dtype,
		dims:  dimNames,
		shape: append([]int(nil), dimSizes...),
		data:  dtype.filled(n, fill),
		attrs: va,
	}, nil
}

// DType returns the variable's element type.
func (v *Variable) DType() DType { return v.dtype }

// Dims returns the ordered dimension names.
func (v *Variable) Dims() []string { return v.dims }

// Shape returns the dimension sizes, ordered as Dims.
func (v *Variable) Shape() []int { return v.shape }

// Len returns the total number of elements.
func (v *Variable) Len() int {
	n := 1
	for _, s := range v.shape {
		n *= s
	}
	return n
}

// Data returns the variable's backing buffer: a row-major typed slice
// ([]int8, []uint8, ..., []float64 according to DType).
func (v *Variable) Data() interface{} { return v.data }

// Attrs returns the variable's attribute map.
func (v *Variable) Attrs() *Attributes { return v.attrs }

// FillValue returns the recorded fill value.
func (v *Variable) FillValue() interface{} {
	f, _ := v.attrs.Get(FillValueAttr)
	return f
}

// Encoding returns the attached serialization encoding, or nil.
func (v *Variable) Encoding() *Encoding { return v.enc }

// AddEncoding attaches a serialization encoding to v: the type to encode
// as, the packing scale factor and offset, an optional on-disk fill value
// override (nil for none) and optional chunk sizes (nil for unchunked).
func (v *Variable) AddEncoding(dtype DType, scaleFactor, addOffset float64, fillValue interface{}, chunkSizes []int) {
	v.enc = &Encoding{
		DType:       dtype,
		ScaleFactor: scaleFactor,
		AddOffset:   addOffset,
		FillValue:   fillValue,
		ChunkSizes:  append([]int(nil), chunkSizes...),
	}
}

// Dense returns a copy of the variable's data as a dense float array, for
// hand-off to numerical pipelines. Only float32 and float64 variables can
// be viewed this way.
func (v *Variable) Dense() (*sparse.DenseArray, error) {
	a := sparse.ZerosDense(v.shape...)
	switch data := v.data.(type) {
	case []float64:
		copy(a.Elements, data)
	case []float32:
		for i, e := range data {
			a.Elements[i] = float64(e)
		}
	default:
		return nil, fmt.Errorf("cfds: %v variable cannot be viewed as a dense float array", v.dtype)
	}
	return a, nil
}
