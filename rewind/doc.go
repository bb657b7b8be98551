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

// Package rewind keeps a frame-by-frame history of machine snapshots so
// the machine can be wound back to an earlier point in the emulation.
// History is kept in a fixed size circular buffer; the oldest states are
// forgotten as new ones are recorded. Stepping back truncates the history
// from that point forward, so recorded history always leads up to the
// machine's current state.
package rewind
