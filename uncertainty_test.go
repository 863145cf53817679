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

func attrOrFatal(t *testing.T, v *Variable, key string) interface{} {
	t.Helper()
	val, ok := v.Attrs().Get(key)
	if !ok {
		t.Fatalf("missing attribute %s", key)
	}
	return val
}

func TestUncertaintyAttributes(t *testing.T) {
	errCorr := []ErrCorr{{
		Dims:   []string{"x"},
		Form:   ErrCorrFormRectangleAbsolute,
		Params: []float64{1, 2},
		Units:  []string{"m", "m"},
	}}
	v, err := NewUncertaintyVariable([]int{3, 2}, Float64, []string{"x", "y"}, nil, "", errCorr)
	if err != nil {
		t.Fatal(err)
	}

	if have := attrOrFatal(t, v, "err_corr_1_name"); have != "x" {
		t.Errorf("have %v, want x", have)
	}
	if have := attrOrFatal(t, v, "err_corr_1_form"); have != "rectangle_absolute" {
		t.Errorf("have %v, want rectangle_absolute", have)
	}
	if have := attrOrFatal(t, v, "err_corr_1_params"); !reflect.DeepEqual(have, []float64{1, 2}) {
		t.Errorf("have %v, want [1 2]", have)
	}
	if have := attrOrFatal(t, v, "err_corr_1_units"); !reflect.DeepEqual(have, []string{"m", "m"}) {
		t.Errorf("have %v, want [m m]", have)
	}

	// The uncovered dimension y defaults to random at its declared
	// position.
	if have := attrOrFatal(t, v, "err_corr_2_name"); have != "y" {
		t.Errorf("have %v, want y", have)
	}
	if have := attrOrFatal(t, v, "err_corr_2_form"); have != "random" {
		t.Errorf("have %v, want random", have)
	}
	if have := attrOrFatal(t, v, "err_corr_2_params"); !reflect.DeepEqual(have, []float64{}) {
		t.Errorf("have %v, want []", have)
	}
	if have := attrOrFatal(t, v, "err_corr_2_units"); !reflect.DeepEqual(have, []string{}) {
		t.Errorf("have %v, want []", have)
	}

	if have := attrOrFatal(t, v, "pdf_shape"); have != "gaussian" {
		t.Errorf("have %v, want gaussian", have)
	}
}

func TestUncertaintyDeclarationOrder(t *testing.T) {
	// The group index follows the order dimensions are declared, not the
	// order of the correlation entries.
	errCorr := []ErrCorr{
		{Dims: []string{"y"}, Form: "custom_form", Params: []float64{3}, Units: []string{"s"}},
		{Dims: []string{"x"}, Form: ErrCorrFormRandom},
	}
	v, err := NewUncertaintyVariable([]int{3, 2}, Float32, []string{"x", "y"}, nil, "", errCorr)
	if err != nil {
		t.Fatal(err)
	}
	if have := attrOrFatal(t, v, "err_corr_1_name"); have != "x" {
		t.Errorf("have %v, want x", have)
	}
	if have := attrOrFatal(t, v, "err_corr_2_name"); have != "y" {
		t.Errorf("have %v, want y", have)
	}
	// Unrecognized forms skip the parameter-count check.
	if have := attrOrFatal(t, v, "err_corr_2_form"); have != "custom_form" {
		t.Errorf("have %v, want custom_form", have)
	}
}

func TestUncertaintyDimensionGroup(t *testing.T) {
	errCorr := []ErrCorr{{
		Dims:   []string{"y", "x"},
		Form:   ErrCorrFormTriangularRelative,
		Params: []float64{0.5, 1.5},
		Units:  []string{"m", "m"},
	}}
	v, err := NewUncertaintyVariable([]int{3, 2, 4}, Float64, []string{"y", "x", "t"}, nil, "lognormal", errCorr)
	if err != nil {
		t.Fatal(err)
	}
	if have := attrOrFatal(t, v, "err_corr_1_name"); !reflect.DeepEqual(have, []string{"y", "x"}) {
		t.Errorf("have %v, want [y x]", have)
	}
	if have := attrOrFatal(t, v, "err_corr_2_name"); have != "t" {
		t.Errorf("have %v, want t", have)
	}
	if have := attrOrFatal(t, v, "pdf_shape"); have != "lognormal" {
		t.Errorf("have %v, want lognormal", have)
	}
}

func TestUncertaintyParamCountValidation(t *testing.T) {
	errCorr := []ErrCorr{{
		Dims:   []string{"x"},
		Form:   ErrCorrFormRectangleAbsolute,
		Params: []float64{1, 2, 3},
		Units:  []string{"m", "m", "m"},
	}}
	_, err := NewUncertaintyVariable([]int{3}, Float64, []string{"x"}, nil, "", errCorr)
	var corrErr *InvalidErrorCorrelationError
	if !errors.As(err, &corrErr) {
		t.Fatalf("have %v, want *InvalidErrorCorrelationError", err)
	}
	if corrErr.Form != "rectangle_absolute" || corrErr.Want != 2 || corrErr.Have != 3 {
		t.Errorf("have %+v, want form rectangle_absolute want 2 have 3", corrErr)
	}
}

func TestUncertaintyDoesNotMutateCallerAttributes(t *testing.T) {
	attrs := NewAttributes()
	attrs.Set("units", "%")
	_, err := NewUncertaintyVariable([]int{3}, Float64, []string{"x"}, attrs, "", nil)
	if err != nil {
		t.Fatal(err)
	}
	if attrs.Len() != 1 {
		t.Errorf("caller attributes gained keys: %v", attrs.Keys())
	}
}

func TestUncertaintyDeterministicKeys(t *testing.T) {
	errCorr := []ErrCorr{{Dims: []string{"x"}, Form: ErrCorrFormRandom}}
	var first []string
	for i := 0; i < 3; i++ {
		v, err := NewUncertaintyVariable([]int{3, 2}, Float64, []string{"x", "y"}, nil, "", errCorr)
		if err != nil {
			t.Fatal(err)
		}
		if first == nil {
			first = v.Attrs().Keys()
			continue
		}
		if !reflect.DeepEqual(v.Attrs().Keys(), first) {
			t.Fatalf("run %d: have %v, want %v", i, v.Attrs().Keys(), first)
		}
	}
}
