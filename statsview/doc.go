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

// Package statsview is an optional package that will be built only when the
// statsview build constraint is present. It provides a locally running HTTP
// server offering runtime statistics, useful when watching the emulation
// run at warp speed. Underlying functionality is provided by
// "github.com/go-echarts/statsview".
//
// After launch, graphical statistics are viewable at:
//
//	localhost:12610/debug/statsview
//
// And standard Go pprof statistics at:
//
//	localhost:12610/debug/pprof/
//
// Without the build constraint, Launch() is a stub that reports the
// statsview is not available and Available() returns false.
package statsview
