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

package disassembly_test

import (
	"testing"

	"github.com/jtallis/goric/disassembly"
	"github.com/jtallis/goric/test"
)

func peeker(origin uint16, code []uint8) disassembly.PeekFunc {
	return func(address uint16) uint8 {
		i := int(address - origin)
		if i < 0 || i >= len(code) {
			return 0xff
		}
		return code[i]
	}
}

func TestDisassemble(t *testing.T) {
	code := []uint8{
		0xa9, 0x07, // LDA #$07
		0x8d, 0x80, 0xbb, // STA $bb80
		0xd0, 0xf9, // BNE $bb80 (branches backwards)
		0x4a,             // LSR A
		0xb1, 0x10,       // LDA ($10),Y
		0x6c, 0xfe, 0x02, // JMP ($02fe)
		0x60, // RTS
	}
	peek := peeker(0xbb80, code)

	entries := disassembly.Block(peek, 0xbb80, 7)
	test.Equate(t, len(entries), 7)

	test.Equate(t, entries[0].String(), "bb80  a9 07     LDA #$07")
	test.Equate(t, entries[1].String(), "bb82  8d 80 bb  STA $bb80")
	test.Equate(t, entries[2].String(), "bb85  d0 f9     BNE $bb80")
	test.Equate(t, entries[3].String(), "bb87  4a        LSR A")
	test.Equate(t, entries[4].String(), "bb88  b1 10     LDA ($10),Y")
	test.Equate(t, entries[5].String(), "bb8a  6c fe 02  JMP ($02fe)")
	test.Equate(t, entries[6].String(), "bb8d  60        RTS")

	// entries advance by instruction length
	test.Equate(t, entries[6].Address, 0xbb8d)
	test.Equate(t, entries[6].Length, 1)
}

func TestDisassembleUndocumented(t *testing.T) {
	peek := peeker(0x0400, []uint8{0x02})
	e := disassembly.Disassemble(peek, 0x0400)
	test.Equate(t, e.Defn.Operator.String(), "NOP")
	test.ExpectedSuccess(t, e.Defn.Undocumented)
}
