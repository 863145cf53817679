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
	"strconv"
	"strings"
)

// The reserved flag attribute keys, per the CF conventions.
const (
	FlagMeaningsAttr = "flag_meanings"
	FlagMasksAttr    = "flag_masks"
)

// NewFlagsVariable builds a packed bitmask variable. The element type is
// the narrowest unsigned type holding len(meanings) bits, and the fill
// value is always 0, meaning "no flags set" (flags deliberately bypass the
// CF default fill table). Meaning i corresponds to mask value 2^i.
//
// The meanings are recorded space-joined under FlagMeaningsAttr and the
// masks comma-joined under FlagMasksAttr. Meanings are passed through
// uninterpreted: order is preserved and duplicates are not rejected.
func NewFlagsVariable(dimSizes []int, meanings []string, dimNames []string, attrs *Attributes) (*Variable, error) {
	if len(meanings) == 0 {
		return nil, &InvalidSchemaError{Reason: "flag variables require at least one flag meaning"}
	}
	dtype, err := FlagDType(len(meanings))
	if err != nil {
		return nil, err
	}

	v, err := NewVariable(dimSizes, dtype, dimNames, attrs, 0)
	if err != nil {
		return nil, err
	}

	masks := make([]string, len(meanings))
	for i := range meanings {
		masks[i] = strconv.FormatUint(uint64(1)<<uint(i), 10)
	}
	v.attrs.Set(FlagMeaningsAttr, strings.Join(meanings, " "))
	v.attrs.Set(FlagMasksAttr, strings.Join(masks, ", "))

	return v, nil
}
