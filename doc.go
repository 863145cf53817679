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

// Package cfds assembles empty, metadata-complete dataset templates that
// follow the Climate and Forecast (CF) metadata conventions.
//
// A template dataset holds fill-initialized variables — measurements,
// their uncertainties, and packed quality flags — shaped by
// externally-supplied dimension sizes and carrying the attributes
// downstream readers rely on: CF fill values, flag masks and meanings, and
// per-dimension error-correlation structure. A Registry maps named output
// formats to variable schemas, so data production pipelines can request
// "an empty Level-1 product with x=3000 scanlines" and receive a dataset
// ready to be filled in and serialized.
//
// The package performs no I/O; see package ncout for writing templates to
// NetCDF files.
package cfds

// Version is the version of this library.
const Version = "1.1.0"
