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

// UnsupportedTypeError reports a data type outside the supported numeric set.
type UnsupportedTypeError struct {
	Type string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("cfds: unsupported data type %q", e.Type)
}

// TooManyFlagsError reports a flag variable with more meanings than fit in
// the widest supported unsigned integer type.
type TooManyFlagsError struct {
	NMasks int
}

func (e *TooManyFlagsError) Error() string {
	return fmt.Sprintf("cfds: %d flag meanings exceed the maximum of 64", e.NMasks)
}

// InvalidErrorCorrelationError reports a recognized error-correlation form
// declared with the wrong number of parameters.
type InvalidErrorCorrelationError struct {
	Form       string
	Want, Have int
}

func (e *InvalidErrorCorrelationError) Error() string {
	return fmt.Sprintf("cfds: error-correlation form %q requires %d parameters (got %d)",
		e.Form, e.Want, e.Have)
}

// InvalidSchemaError reports a malformed variable definition.
type InvalidSchemaError struct {
	Variable string
	Reason   string
}

func (e *InvalidSchemaError) Error() string {
	if e.Variable == "" {
		return "cfds: invalid variable definition: " + e.Reason
	}
	return fmt.Sprintf("cfds: invalid definition for variable %q: %s", e.Variable, e.Reason)
}

// UnknownDimensionError reports a variable referencing a dimension that was
// not bound to a size.
type UnknownDimensionError struct {
	Variable string
	Dim      string
}

func (e *UnknownDimensionError) Error() string {
	return fmt.Sprintf("cfds: variable %q references dimension %q, which has no size",
		e.Variable, e.Dim)
}

// UnknownFormatError reports a request for a format that was never
// registered.
type UnknownFormatError struct {
	Format string
	Known  []string
}

func (e *UnknownFormatError) Error() string {
	return fmt.Sprintf("cfds: unknown format %q; registered formats are %v", e.Format, e.Known)
}

// MissingMetadataError reports a format registered without metadata. It is
// advisory: Registry.Build returns the assembled dataset alongside it, and
// the caller decides whether to fail or continue with empty metadata.
type MissingMetadataError struct {
	Format string
}

func (e *MissingMetadataError) Error() string {
	return fmt.Sprintf("cfds: no metadata registered for format %q", e.Format)
}
