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

package disassembly

import (
	"fmt"
	"strings"

	"github.com/jtallis/goric/hardware/cpu/instructions"
)

// PeekFunc is how the disassembler reads memory. It must be free of side
// effects on the machine.
type PeekFunc func(address uint16) uint8

// Entry is a single disassembled instruction.
type Entry struct {
	Address uint16
	Defn    *instructions.Definition

	// the instruction's bytes, including the opcode. only the first
	// Length entries are meaningful
	Bytes  [3]uint8
	Length int

	// formatted operand, empty for implied instructions
	Operand string
}

// String returns the entry in the traditional monitor listing format.
func (e Entry) String() string {
	b := make([]string, e.Length)
	for i := 0; i < e.Length; i++ {
		b[i] = fmt.Sprintf("%02x", e.Bytes[i])
	}
	return strings.TrimRight(fmt.Sprintf("%04x  %-8s  %s %s",
		e.Address, strings.Join(b, " "), e.Defn.Operator, e.Operand), " ")
}

// length of an instruction in bytes, including the opcode.
func length(mode instructions.AddressingMode) int {
	switch mode {
	case instructions.Implied, instructions.Accumulator:
		return 1
	case instructions.Absolute, instructions.AbsoluteIndexedX,
		instructions.AbsoluteIndexedY, instructions.Indirect:
		return 3
	}
	return 2
}

// Disassemble decodes a single instruction at the given address.
func Disassemble(peek PeekFunc, address uint16) Entry {
	defn := instructions.GetDefinitions()[peek(address)]

	e := Entry{Address: address, Defn: defn}
	e.Length = length(defn.AddressingMode)
	for i := 0; i < e.Length; i++ {
		e.Bytes[i] = peek(address + uint16(i))
	}

	lo := uint16(e.Bytes[1])
	hi := uint16(e.Bytes[2])

	switch defn.AddressingMode {
	case instructions.Implied:
		// no operand
	case instructions.Accumulator:
		e.Operand = "A"
	case instructions.Immediate:
		e.Operand = fmt.Sprintf("#$%02x", lo)
	case instructions.Relative:
		// branch target relative to the following instruction
		e.Operand = fmt.Sprintf("$%04x", address+2+uint16(int8(e.Bytes[1])))
	case instructions.ZeroPage:
		e.Operand = fmt.Sprintf("$%02x", lo)
	case instructions.ZeroPageIndexedX:
		e.Operand = fmt.Sprintf("$%02x,X", lo)
	case instructions.ZeroPageIndexedY:
		e.Operand = fmt.Sprintf("$%02x,Y", lo)
	case instructions.Absolute:
		e.Operand = fmt.Sprintf("$%04x", hi<<8|lo)
	case instructions.AbsoluteIndexedX:
		e.Operand = fmt.Sprintf("$%04x,X", hi<<8|lo)
	case instructions.AbsoluteIndexedY:
		e.Operand = fmt.Sprintf("$%04x,Y", hi<<8|lo)
	case instructions.Indirect:
		e.Operand = fmt.Sprintf("($%04x)", hi<<8|lo)
	case instructions.IndexedIndirect:
		e.Operand = fmt.Sprintf("($%02x,X)", lo)
	case instructions.IndirectIndexed:
		e.Operand = fmt.Sprintf("($%02x),Y", lo)
	}

	return e
}

// Block disassembles a run of instructions starting at the given address.
func Block(peek PeekFunc, address uint16, numInstructions int) []Entry {
	entries := make([]Entry, 0, numInstructions)
	for i := 0; i < numInstructions; i++ {
		e := Disassemble(peek, address)
		entries = append(entries, e)
		address += uint16(e.Length)
	}
	return entries
}
