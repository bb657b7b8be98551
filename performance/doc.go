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

// Package performance contains helper functions relating to performance.
//
// Check() runs the emulation flat out for a fixed duration of time and
// reports the achieved frame rate. It will optionally generate profiling
// information.
//
// CalcFPS() calculates frames-per-second in aggregate along with an
// accuracy value, as compared to the raster specification. Probably not
// suitable for "live" FPS monitoring.
package performance
