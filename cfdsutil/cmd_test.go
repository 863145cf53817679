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
	"reflect"
	"testing"
)

func TestParseDimSizes(t *testing.T) {
	sizes, err := parseDimSizes([]string{"x=3", "y=2"})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(sizes, map[string]int{"x": 3, "y": 2}) {
		t.Errorf("have %v, want map[x:3 y:2]", sizes)
	}

	for _, bad := range []string{"x", "=3", "x=three"} {
		if _, err := parseDimSizes([]string{bad}); err == nil {
			t.Errorf("%q: expected error", bad)
		}
	}
}
