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
	"errors"
	"reflect"
	"testing"
)

func TestDefaultFillValue(t *testing.T) {
	tests := []struct {
		dtype DType
		want  interface{}
	}{
		{Int8, int8(-127)},
		{Uint8, uint8(255)},
		{Int16, int16(-32767)},
		{Uint16, uint16(65535)},
		{Int32, int32(-2147483647)},
		{Uint32, uint32(4294967295)},
		{Int64, int64(-9223372036854775806)},
		{Uint64, uint64(18446744073709551615)},
		{Float32, float32(9.96921e36)},
		{Float64, float64(9.969209968386869e36)},
	}
	for _, test := range tests {
		have, err := DefaultFillValue(test.dtype)
		if err != nil {
			t.Errorf("%v: %v", test.dtype, err)
			continue
		}
		if have != test.want {
			t.Errorf("%v: have %v (%T), want %v (%T)", test.dtype, have, have, test.want, test.want)
		}
		if reflect.TypeOf(have) != reflect.TypeOf(test.want) {
			t.Errorf("%v: fill value has type %T, want %T", test.dtype, have, test.want)
		}
	}

	if _, err := DefaultFillValue(Flag); err == nil {
		t.Error("expected error for flag sentinel type")
	} else {
		var typeErr *UnsupportedTypeError
		if !errors.As(err, &typeErr) {
			t.Errorf("have %T, want *UnsupportedTypeError", err)
		}
	}
}

func TestFlagDType(t *testing.T) {
	for n := 1; n <= 64; n++ {
		have, err := FlagDType(n)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		var want DType
		switch {
		case n <= 8:
			want = Uint8
		case n <= 16:
			want = Uint16
		case n <= 32:
			want = Uint32
		default:
			want = Uint64
		}
		if have != want {
			t.Errorf("n=%d: have %v, want %v", n, have, want)
		}
		if have.Bits() < n {
			t.Errorf("n=%d: %d bits do not hold %d masks", n, have.Bits(), n)
		}
	}

	_, err := FlagDType(65)
	var tooMany *TooManyFlagsError
	if !errors.As(err, &tooMany) {
		t.Fatalf("n=65: have %v, want *TooManyFlagsError", err)
	}
	if tooMany.NMasks != 65 {
		t.Errorf("have NMasks=%d, want 65", tooMany.NMasks)
	}
}

func TestParseDType(t *testing.T) {
	for d := Int8; d <= Flag; d++ {
		have, err := ParseDType(d.String())
		if err != nil {
			t.Fatalf("%v: %v", d, err)
		}
		if have != d {
			t.Errorf("have %v, want %v", have, d)
		}
	}
	if _, err := ParseDType("complex128"); err == nil {
		t.Error("expected error for unknown type name")
	}
}

func TestFilled(t *testing.T) {
	have, err := Filled(Int16, 4, -7)
	if err != nil {
		t.Fatal(err)
	}
	want := []int16{-7, -7, -7, -7}
	if !reflect.DeepEqual(have, want) {
		t.Errorf("have %#v, want %#v", have, want)
	}

	if _, err := Filled(Uint8, 2, -1); err == nil {
		t.Error("expected error coercing -1 to uint8")
	}
}
