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

// The recognized error-correlation forms. Forms outside this set pass
// through with their parameters unchecked.
const (
	ErrCorrFormRandom              = "random"
	ErrCorrFormRectangleAbsolute   = "rectangle_absolute"
	ErrCorrFormRectangularRelative = "rectangular_relative"
	ErrCorrFormTriangularRelative  = "triangular_relative"
)

// errCorrParams gives the required parameter count per recognized form.
var errCorrParams = map[string]int{
	ErrCorrFormRandom:              0,
	ErrCorrFormRectangleAbsolute:   2,
	ErrCorrFormRectangularRelative: 2,
	ErrCorrFormTriangularRelative:  2,
}

// DefaultPDFShape is the probability distribution recorded for uncertainty
// variables that do not specify one.
const DefaultPDFShape = "gaussian"

// An ErrCorr describes the error-correlation structure along one dimension,
// or along an ordered group of dimensions that share a structure. Units are
// ordered as Params.
type ErrCorr struct {
	Dims   []string
	Form   string
	Params []float64
	Units  []string
}

func (c *ErrCorr) validate() error {
	want, ok := errCorrParams[c.Form]
	if !ok {
		return nil
	}
	if len(c.Params) != want {
		return &InvalidErrorCorrelationError{Form: c.Form, Want: want, Have: len(c.Params)}
	}
	return nil
}

// NewUncertaintyVariable builds a fill-initialized uncertainty variable,
// recording the error-correlation structure of its dimensions as
// attributes.
//
// Correlation groups are numbered 1-based in the order their dimensions
// appear in dimNames, and each group i contributes the attributes
// err_corr_i_name, err_corr_i_form, err_corr_i_units and err_corr_i_params.
// Dimensions not covered by errCorr are recorded with the "random" form and
// empty parameters. An empty pdfShape selects DefaultPDFShape. The
// attribute key set is deterministic for a fixed dimension declaration
// order.
func NewUncertaintyVariable(dimSizes []int, dtype DType, dimNames []string, attrs *Attributes, pdfShape string, errCorr []ErrCorr) (*Variable, error) {
	if pdfShape == "" {
		pdfShape = DefaultPDFShape
	}
	if dimNames == nil {
		var err error
		if dimNames, err = defaultNames(len(dimSizes)); err != nil {
			return nil, err
		}
	}
	for i := range errCorr {
		if err := errCorr[i].validate(); err != nil {
			return nil, err
		}
	}

	out := attrs.Clone()
	if out == nil {
		out = NewAttributes()
	}
	for i, g := range orderErrCorr(dimNames, errCorr) {
		prefix := fmt.Sprintf("err_corr_%d_", i+1)
		if len(g.Dims) == 1 {
			out.Set(prefix+"name", g.Dims[0])
		} else {
			out.Set(prefix+"name", append([]string(nil), g.Dims...))
		}
		out.Set(prefix+"form", g.Form)
		out.Set(prefix+"units", append([]string{}, g.Units...))
		out.Set(prefix+"params", append([]float64{}, g.Params...))
	}
	out.Set("pdf_shape", pdfShape)

	return NewVariable(dimSizes, dtype, dimNames, out, nil)
}

// orderErrCorr arranges correlation entries by the declaration order of the
// dimensions they cover, synthesizing "random" entries for uncovered
// dimensions. Entries naming only undeclared dimensions pass through at the
// end, in their given order.
func orderErrCorr(dimNames []string, defs []ErrCorr) []ErrCorr {
	covered := make(map[string]bool)
	used := make([]bool, len(defs))
	groups := make([]ErrCorr, 0, len(dimNames))
	for _, dim := range dimNames {
		if covered[dim] {
			continue
		}
		matched := false
		for j := range defs {
			if used[j] || !containsDim(defs[j].Dims, dim) {
				continue
			}
			groups = append(groups, defs[j])
			used[j] = true
			for _, d := range defs[j].Dims {
				covered[d] = true
			}
			matched = true
			break
		}
		if !matched {
			groups = append(groups, ErrCorr{Dims: []string{dim}, Form: ErrCorrFormRandom})
			covered[dim] = true
		}
	}
	for j := range defs {
		if !used[j] {
			groups = append(groups, defs[j])
		}
	}
	return groups
}

func containsDim(dims []string, dim string) bool {
	for _, d := range dims {
		if d == dim {
			return true
		}
	}
	return false
}
