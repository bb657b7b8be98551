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

package memory

// RAM is the machine's main memory. A full sized array is allocated even for
// the smaller RAM variant; the routing in the Memory type decides which
// addresses are populated.
type RAM struct {
	data []uint8
}

func newRAM() *RAM {
	return &RAM{
		data: make([]uint8, int(MemtopRAM)+1),
	}
}

// Label is an implementation of the Area interface.
func (r *RAM) Label() string {
	return "RAM"
}

// Origin is an implementation of the Area interface.
func (r *RAM) Origin() uint16 {
	return OriginRAM
}

// Memtop is an implementation of the Area interface.
func (r *RAM) Memtop() uint16 {
	return MemtopRAM
}

func (r *RAM) read(address uint16) uint8 {
	return r.data[address]
}

func (r *RAM) write(address uint16, data uint8) {
	r.data[address] = data
}

// Snapshot returns a copy of the RAM contents.
func (r *RAM) Snapshot() []uint8 {
	s := make([]uint8, len(r.data))
	copy(s, r.data)
	return s
}

// Restore replaces the RAM contents with a previously taken Snapshot().
func (r *RAM) Restore(data []uint8) {
	copy(r.data, data)
}
