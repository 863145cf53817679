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
	"math"

	"github.com/spf13/cast"
)

// A DType identifies the element type of a variable's data array.
type DType int

// The supported element types. Flag is a schema-level sentinel: flag
// variables declare it in place of a concrete type, and the smallest
// unsigned type that holds the requested number of masks is substituted
// when the variable is built.
const (
	Int8 DType = iota + 1
	Uint8
	Int16
	Uint16
	Int32
	Uint32
	Int64
	Uint64
	Float32
	Float64
	Flag
)

var dtypeNames = [...]string{"", "int8", "uint8", "int16", "uint16",
	"int32", "uint32", "int64", "uint64", "float32", "float64", "flag"}

func (d DType) String() string {
	if d >= Int8 && d <= Flag {
		return dtypeNames[d]
	}
	return fmt.Sprintf("<%d>", int(d))
}

// ParseDType converts a type name as it appears in a schema file ("int8",
// "float32", "flag", ...) to the corresponding DType.
func ParseDType(s string) (DType, error) {
	for d := Int8; d <= Flag; d++ {
		if dtypeNames[d] == s {
			return d, nil
		}
	}
	return 0, &UnsupportedTypeError{Type: s}
}

// DefaultFillValue returns the CF-conforming default fill value for d.
// The returned scalar has exactly the Go type corresponding to d. Signed
// types use a sentinel one inside the representable extreme; unsigned types
// use the all-ones maximum; floats use the conventional 9.97e36 sentinels.
func DefaultFillValue(d DType) (interface{}, error) {
	switch d {
	case Int8:
		return int8(-127), nil
	case Uint8:
		return uint8(math.MaxUint8), nil
	case Int16:
		return int16(-32767), nil
	case Uint16:
		return uint16(math.MaxUint16), nil
	case Int32:
		return int32(-2147483647), nil
	case Uint32:
		return uint32(math.MaxUint32), nil
	case Int64:
		return int64(-9223372036854775806), nil
	case Uint64:
		return uint64(math.MaxUint64), nil
	case Float32:
		return float32(9.96921e36), nil
	case Float64:
		return float64(9.969209968386869e36), nil
	}
	return nil, &UnsupportedTypeError{Type: d.String()}
}

// FlagDType returns the narrowest unsigned type able to hold nMasks
// independent flag bits. It fails with a TooManyFlagsError when nMasks
// exceeds 64.
func FlagDType(nMasks int) (DType, error) {
	switch {
	case nMasks <= 8:
		return Uint8, nil
	case nMasks <= 16:
		return Uint16, nil
	case nMasks <= 32:
		return Uint32, nil
	case nMasks <= 64:
		return Uint64, nil
	}
	return 0, &TooManyFlagsError{NMasks: nMasks}
}

// Bits returns the storage width of d in bits, or 0 for Flag and invalid
// types.
func (d DType) Bits() int {
	switch d {
	case Int8, Uint8:
		return 8
	case Int16, Uint16:
		return 16
	case Int32, Uint32, Float32:
		return 32
	case Int64, Uint64, Float64:
		return 64
	}
	return 0
}

// coerce converts an arbitrary scalar to the exact Go type for d.
func (d DType) coerce(v interface{}) (interface{}, error) {
	var out interface{}
	var err error
	switch d {
	case Int8:
		out, err = cast.ToInt8E(v)
	case Uint8:
		out, err = cast.ToUint8E(v)
	case Int16:
		out, err = cast.ToInt16E(v)
	case Uint16:
		out, err = cast.ToUint16E(v)
	case Int32:
		out, err = cast.ToInt32E(v)
	case Uint32:
		out, err = cast.ToUint32E(v)
	case Int64:
		out, err = cast.ToInt64E(v)
	case Uint64:
		out, err = cast.ToUint64E(v)
	case Float32:
		out, err = cast.ToFloat32E(v)
	case Float64:
		out, err = cast.ToFloat64E(v)
	default:
		return nil, &UnsupportedTypeError{Type: d.String()}
	}
	if err != nil {
		return nil, fmt.Errorf("cfds: fill value %v is not valid for type %v: %v", v, d, err)
	}
	return out, nil
}

// Filled returns a length-n slice of the Go type for d with every element
// set to fill. The fill scalar is coerced to d first. This is the array
// construction primitive consumed by serialization collaborators.
func Filled(d DType, n int, fill interface{}) (interface{}, error) {
	f, err := d.coerce(fill)
	if err != nil {
		return nil, err
	}
	return d.filled(n, f), nil
}

// filled builds the typed buffer; fill must already have the exact Go type
// for d.
func (d DType) filled(n int, fill interface{}) interface{} {
	switch d {
	case Int8:
		s := make([]int8, n)
		v := fill.(int8)
		for i := range s {
			s[i] = v
		}
		return s
	case Uint8:
		s := make([]uint8, n)
		v := fill.(uint8)
		for i := range s {
			s[i] = v
		}
		return s
	case Int16:
		s := make([]int16, n)
		v := fill.(int16)
		for i := range s {
			s[i] = v
		}
		return s
	case Uint16:
		s := make([]uint16, n)
		v := fill.(uint16)
		for i := range s {
			s[i] = v
		}
		return s
	case Int32:
		s := make([]int32, n)
		v := fill.(int32)
		for i := range s {
			s[i] = v
		}
		return s
	case Uint32:
		s := make([]uint32, n)
		v := fill.(uint32)
		for i := range s {
			s[i] = v
		}
		return s
	case Int64:
		s := make([]int64, n)
		v := fill.(int64)
		for i := range s {
			s[i] = v
		}
		return s
	case Uint64:
		s := make([]uint64, n)
		v := fill.(uint64)
		for i := range s {
			s[i] = v
		}
		return s
	case Float32:
		s := make([]float32, n)
		v := fill.(float32)
		for i := range s {
			s[i] = v
		}
		return s
	case Float64:
		s := make([]float64, n)
		v := fill.(float64)
		for i := range s {
			s[i] = v
		}
		return s
	}
	panic(fmt.Errorf("cfds: cannot allocate data for type %v", d))
}
