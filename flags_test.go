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

func TestNewFlagsVariable(t *testing.T) {
	v, err := NewFlagsVariable([]int{5}, []string{"a", "b", "c"}, []string{"d"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if v.DType() != Uint8 {
		t.Errorf("have %v, want uint8", v.DType())
	}
	if !reflect.DeepEqual(v.Data(), make([]uint8, 5)) {
		t.Errorf("have %v, want all zeros", v.Data())
	}
	if v.FillValue() != uint8(0) {
		t.Errorf("have fill %v, want 0", v.FillValue())
	}
	if m, _ := v.Attrs().Get(FlagMeaningsAttr); m != "a b c" {
		t.Errorf("have %q, want \"a b c\"", m)
	}
	if m, _ := v.Attrs().Get(FlagMasksAttr); m != "1, 2, 4" {
		t.Errorf("have %q, want \"1, 2, 4\"", m)
	}
}

func TestFlagsWidthSelection(t *testing.T) {
	meanings := make([]string, 0, 33)
	for _, test := range []struct {
		n    int
		want DType
	}{{8, Uint8}, {9, Uint16}, {17, Uint32}, {33, Uint64}} {
		meanings = meanings[:0]
		for i := 0; i < test.n; i++ {
			meanings = append(meanings, string(rune('a'+i%26)))
		}
		v, err := NewFlagsVariable([]int{2}, meanings, []string{"x"}, nil)
		if err != nil {
			t.Fatal(err)
		}
		if v.DType() != test.want {
			t.Errorf("n=%d: have %v, want %v", test.n, v.DType(), test.want)
		}
	}
}

func TestFlagsDuplicateMeaningsPassThrough(t *testing.T) {
	v, err := NewFlagsVariable([]int{1}, []string{"bad", "bad"}, []string{"x"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if m, _ := v.Attrs().Get(FlagMeaningsAttr); m != "bad bad" {
		t.Errorf("have %q, want \"bad bad\"", m)
	}
}

func TestFlagsErrors(t *testing.T) {
	if _, err := NewFlagsVariable([]int{1}, nil, []string{"x"}, nil); err == nil {
		t.Error("expected error for empty meanings")
	}

	meanings := make([]string, 65)
	for i := range meanings {
		meanings[i] = string(rune('a' + i%26))
	}
	_, err := NewFlagsVariable([]int{1}, meanings, []string{"x"}, nil)
	var tooMany *TooManyFlagsError
	if !errors.As(err, &tooMany) {
		t.Fatalf("have %v, want *TooManyFlagsError", err)
	}
}
