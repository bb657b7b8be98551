// This file is part of Goric.
//
// Goric is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Goric is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Goric.  If not, see <https://www.gnu.org/licenses/>.

// Package curated is a helper package for the plain Go language error type.
// Curated errors are created with the Errorf() function, which takes a
// formatting pattern and placeholder values, like fmt.Errorf().
//
// The pattern is also the identity of the error. The Is() function checks
// whether an error was created from a specific pattern. The Has() function is
// similar but checks the entire error chain. For example:
//
//	e := curated.Errorf("disk: %v", curated.Errorf("controller busy"))
//
//	curated.Is(e, "disk: %v")          -> true
//	curated.Has(e, "controller busy")  -> true
//
// The Error() function normalises the message chain by removing duplicate
// adjacent parts, which means errors can be wrapped freely at every level of
// the call stack without the final message stuttering.
package curated
