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

// Package instructions defines every opcode of the 6502 as data. The CPU
// package uses the definition table as a guide for decoding and timing;
// the table says nothing about how an operator is actually performed.
package instructions

// AddressingMode describes how an instruction's operand is to be
// interpreted.
type AddressingMode int

// List of valid addressing modes.
const (
	Implied AddressingMode = iota
	Accumulator
	Immediate
	Relative
	ZeroPage
	ZeroPageIndexedX
	ZeroPageIndexedY
	Absolute
	AbsoluteIndexedX
	AbsoluteIndexedY
	Indirect
	IndexedIndirect // (zp,x)
	IndirectIndexed // (zp),y
)

// Effect categorises an instruction by how it interacts with memory.
type Effect int

// List of valid effect categories.
const (
	Read Effect = iota
	Write
	RMW
	Flow
	Subroutine
)

// Operator describes an instruction's operation, distinct from any
// addressing mode.
type Operator int

// List of valid operators.
const (
	Adc Operator = iota
	And
	Asl
	Bcc
	Bcs
	Beq
	Bit
	Bmi
	Bne
	Bpl
	Brk
	Bvc
	Bvs
	Clc
	Cld
	Cli
	Clv
	Cmp
	Cpx
	Cpy
	Dec
	Dex
	Dey
	Eor
	Inc
	Inx
	Iny
	Jmp
	Jsr
	Lda
	Ldx
	Ldy
	Lsr
	Nop
	Ora
	Pha
	Php
	Pla
	Plp
	Rol
	Ror
	Rti
	Rts
	Sbc
	Sec
	Sed
	Sei
	Sta
	Stx
	Sty
	Tax
	Tay
	Tsx
	Txa
	Txs
	Tya
)

var operatorNames = []string{
	"ADC", "AND", "ASL", "BCC", "BCS", "BEQ", "BIT", "BMI", "BNE", "BPL",
	"BRK", "BVC", "BVS", "CLC", "CLD", "CLI", "CLV", "CMP", "CPX", "CPY",
	"DEC", "DEX", "DEY", "EOR", "INC", "INX", "INY", "JMP", "JSR", "LDA",
	"LDX", "LDY", "LSR", "NOP", "ORA", "PHA", "PHP", "PLA", "PLP", "ROL",
	"ROR", "RTI", "RTS", "SBC", "SEC", "SED", "SEI", "STA", "STX", "STY",
	"TAX", "TAY", "TSX", "TXA", "TXS", "TYA",
}

func (op Operator) String() string {
	return operatorNames[op]
}

// Definition describes a single opcode.
type Definition struct {
	OpCode         uint8
	Operator       Operator
	AddressingMode AddressingMode
	Effect         Effect
	Cycles         int

	// a PageSensitive instruction takes an extra cycle when the effective
	// address crosses a page boundary
	PageSensitive bool

	// opcodes not part of the documented instruction set. these are filled
	// in by GetDefinitions() with the fixed no-op policy
	Undocumented bool
}

// the documented instruction set. undocumented opcodes are not listed; they
// are backfilled by GetDefinitions().
var definitions = []Definition{
	// ADC
	{OpCode: 0x69, Operator: Adc, AddressingMode: Immediate, Effect: Read, Cycles: 2},
	{OpCode: 0x65, Operator: Adc, AddressingMode: ZeroPage, Effect: Read, Cycles: 3},
	{OpCode: 0x75, Operator: Adc, AddressingMode: ZeroPageIndexedX, Effect: Read, Cycles: 4},
	{OpCode: 0x6d, Operator: Adc, AddressingMode: Absolute, Effect: Read, Cycles: 4},
	{OpCode: 0x7d, Operator: Adc, AddressingMode: AbsoluteIndexedX, Effect: Read, Cycles: 4, PageSensitive: true},
	{OpCode: 0x79, Operator: Adc, AddressingMode: AbsoluteIndexedY, Effect: Read, Cycles: 4, PageSensitive: true},
	{OpCode: 0x61, Operator: Adc, AddressingMode: IndexedIndirect, Effect: Read, Cycles: 6},
	{OpCode: 0x71, Operator: Adc, AddressingMode: IndirectIndexed, Effect: Read, Cycles: 5, PageSensitive: true},

	// AND
	{OpCode: 0x29, Operator: And, AddressingMode: Immediate, Effect: Read, Cycles: 2},
	{OpCode: 0x25, Operator: And, AddressingMode: ZeroPage, Effect: Read, Cycles: 3},
	{OpCode: 0x35, Operator: And, AddressingMode: ZeroPageIndexedX, Effect: Read, Cycles: 4},
	{OpCode: 0x2d, Operator: And, AddressingMode: Absolute, Effect: Read, Cycles: 4},
	{OpCode: 0x3d, Operator: And, AddressingMode: AbsoluteIndexedX, Effect: Read, Cycles: 4, PageSensitive: true},
	{OpCode: 0x39, Operator: And, AddressingMode: AbsoluteIndexedY, Effect: Read, Cycles: 4, PageSensitive: true},
	{OpCode: 0x21, Operator: And, AddressingMode: IndexedIndirect, Effect: Read, Cycles: 6},
	{OpCode: 0x31, Operator: And, AddressingMode: IndirectIndexed, Effect: Read, Cycles: 5, PageSensitive: true},

	// ASL
	{OpCode: 0x0a, Operator: Asl, AddressingMode: Accumulator, Effect: Read, Cycles: 2},
	{OpCode: 0x06, Operator: Asl, AddressingMode: ZeroPage, Effect: RMW, Cycles: 5},
	{OpCode: 0x16, Operator: Asl, AddressingMode: ZeroPageIndexedX, Effect: RMW, Cycles: 6},
	{OpCode: 0x0e, Operator: Asl, AddressingMode: Absolute, Effect: RMW, Cycles: 6},
	{OpCode: 0x1e, Operator: Asl, AddressingMode: AbsoluteIndexedX, Effect: RMW, Cycles: 7},

	// branch instructions. cycle counts are the base count; the CPU adds one
	// cycle when the branch is taken and another when it crosses a page
	{OpCode: 0x90, Operator: Bcc, AddressingMode: Relative, Effect: Flow, Cycles: 2},
	{OpCode: 0xb0, Operator: Bcs, AddressingMode: Relative, Effect: Flow, Cycles: 2},
	{OpCode: 0xf0, Operator: Beq, AddressingMode: Relative, Effect: Flow, Cycles: 2},
	{OpCode: 0x30, Operator: Bmi, AddressingMode: Relative, Effect: Flow, Cycles: 2},
	{OpCode: 0xd0, Operator: Bne, AddressingMode: Relative, Effect: Flow, Cycles: 2},
	{OpCode: 0x10, Operator: Bpl, AddressingMode: Relative, Effect: Flow, Cycles: 2},
	{OpCode: 0x50, Operator: Bvc, AddressingMode: Relative, Effect: Flow, Cycles: 2},
	{OpCode: 0x70, Operator: Bvs, AddressingMode: Relative, Effect: Flow, Cycles: 2},

	// BIT
	{OpCode: 0x24, Operator: Bit, AddressingMode: ZeroPage, Effect: Read, Cycles: 3},
	{OpCode: 0x2c, Operator: Bit, AddressingMode: Absolute, Effect: Read, Cycles: 4},

	// BRK
	{OpCode: 0x00, Operator: Brk, AddressingMode: Implied, Effect: Flow, Cycles: 7},

	// flag instructions
	{OpCode: 0x18, Operator: Clc, AddressingMode: Implied, Effect: Read, Cycles: 2},
	{OpCode: 0xd8, Operator: Cld, AddressingMode: Implied, Effect: Read, Cycles: 2},
	{OpCode: 0x58, Operator: Cli, AddressingMode: Implied, Effect: Read, Cycles: 2},
	{OpCode: 0xb8, Operator: Clv, AddressingMode: Implied, Effect: Read, Cycles: 2},
	{OpCode: 0x38, Operator: Sec, AddressingMode: Implied, Effect: Read, Cycles: 2},
	{OpCode: 0xf8, Operator: Sed, AddressingMode: Implied, Effect: Read, Cycles: 2},
	{OpCode: 0x78, Operator: Sei, AddressingMode: Implied, Effect: Read, Cycles: 2},

	// CMP
	{OpCode: 0xc9, Operator: Cmp, AddressingMode: Immediate, Effect: Read, Cycles: 2},
	{OpCode: 0xc5, Operator: Cmp, AddressingMode: ZeroPage, Effect: Read, Cycles: 3},
	{OpCode: 0xd5, Operator: Cmp, AddressingMode: ZeroPageIndexedX, Effect: Read, Cycles: 4},
	{OpCode: 0xcd, Operator: Cmp, AddressingMode: Absolute, Effect: Read, Cycles: 4},
	{OpCode: 0xdd, Operator: Cmp, AddressingMode: AbsoluteIndexedX, Effect: Read, Cycles: 4, PageSensitive: true},
	{OpCode: 0xd9, Operator: Cmp, AddressingMode: AbsoluteIndexedY, Effect: Read, Cycles: 4, PageSensitive: true},
	{OpCode: 0xc1, Operator: Cmp, AddressingMode: IndexedIndirect, Effect: Read, Cycles: 6},
	{OpCode: 0xd1, Operator: Cmp, AddressingMode: IndirectIndexed, Effect: Read, Cycles: 5, PageSensitive: true},

	// CPX
	{OpCode: 0xe0, Operator: Cpx, AddressingMode: Immediate, Effect: Read, Cycles: 2},
	{OpCode: 0xe4, Operator: Cpx, AddressingMode: ZeroPage, Effect: Read, Cycles: 3},
	{OpCode: 0xec, Operator: Cpx, AddressingMode: Absolute, Effect: Read, Cycles: 4},

	// CPY
	{OpCode: 0xc0, Operator: Cpy, AddressingMode: Immediate, Effect: Read, Cycles: 2},
	{OpCode: 0xc4, Operator: Cpy, AddressingMode: ZeroPage, Effect: Read, Cycles: 3},
	{OpCode: 0xcc, Operator: Cpy, AddressingMode: Absolute, Effect: Read, Cycles: 4},

	// DEC
	{OpCode: 0xc6, Operator: Dec, AddressingMode: ZeroPage, Effect: RMW, Cycles: 5},
	{OpCode: 0xd6, Operator: Dec, AddressingMode: ZeroPageIndexedX, Effect: RMW, Cycles: 6},
	{OpCode: 0xce, Operator: Dec, AddressingMode: Absolute, Effect: RMW, Cycles: 6},
	{OpCode: 0xde, Operator: Dec, AddressingMode: AbsoluteIndexedX, Effect: RMW, Cycles: 7},

	{OpCode: 0xca, Operator: Dex, AddressingMode: Implied, Effect: Read, Cycles: 2},
	{OpCode: 0x88, Operator: Dey, AddressingMode: Implied, Effect: Read, Cycles: 2},

	// EOR
	{OpCode: 0x49, Operator: Eor, AddressingMode: Immediate, Effect: Read, Cycles: 2},
	{OpCode: 0x45, Operator: Eor, AddressingMode: ZeroPage, Effect: Read, Cycles: 3},
	{OpCode: 0x55, Operator: Eor, AddressingMode: ZeroPageIndexedX, Effect: Read, Cycles: 4},
	{OpCode: 0x4d, Operator: Eor, AddressingMode: Absolute, Effect: Read, Cycles: 4},
	{OpCode: 0x5d, Operator: Eor, AddressingMode: AbsoluteIndexedX, Effect: Read, Cycles: 4, PageSensitive: true},
	{OpCode: 0x59, Operator: Eor, AddressingMode: AbsoluteIndexedY, Effect: Read, Cycles: 4, PageSensitive: true},
	{OpCode: 0x41, Operator: Eor, AddressingMode: IndexedIndirect, Effect: Read, Cycles: 6},
	{OpCode: 0x51, Operator: Eor, AddressingMode: IndirectIndexed, Effect: Read, Cycles: 5, PageSensitive: true},

	// INC
	{OpCode: 0xe6, Operator: Inc, AddressingMode: ZeroPage, Effect: RMW, Cycles: 5},
	{OpCode: 0xf6, Operator: Inc, AddressingMode: ZeroPageIndexedX, Effect: RMW, Cycles: 6},
	{OpCode: 0xee, Operator: Inc, AddressingMode: Absolute, Effect: RMW, Cycles: 6},
	{OpCode: 0xfe, Operator: Inc, AddressingMode: AbsoluteIndexedX, Effect: RMW, Cycles: 7},

	{OpCode: 0xe8, Operator: Inx, AddressingMode: Implied, Effect: Read, Cycles: 2},
	{OpCode: 0xc8, Operator: Iny, AddressingMode: Implied, Effect: Read, Cycles: 2},

	// JMP
	{OpCode: 0x4c, Operator: Jmp, AddressingMode: Absolute, Effect: Flow, Cycles: 3},
	{OpCode: 0x6c, Operator: Jmp, AddressingMode: Indirect, Effect: Flow, Cycles: 5},

	// JSR
	{OpCode: 0x20, Operator: Jsr, AddressingMode: Absolute, Effect: Subroutine, Cycles: 6},

	// LDA
	{OpCode: 0xa9, Operator: Lda, AddressingMode: Immediate, Effect: Read, Cycles: 2},
	{OpCode: 0xa5, Operator: Lda, AddressingMode: ZeroPage, Effect: Read, Cycles: 3},
	{OpCode: 0xb5, Operator: Lda, AddressingMode: ZeroPageIndexedX, Effect: Read, Cycles: 4},
	{OpCode: 0xad, Operator: Lda, AddressingMode: Absolute, Effect: Read, Cycles: 4},
	{OpCode: 0xbd, Operator: Lda, AddressingMode: AbsoluteIndexedX, Effect: Read, Cycles: 4, PageSensitive: true},
	{OpCode: 0xb9, Operator: Lda, AddressingMode: AbsoluteIndexedY, Effect: Read, Cycles: 4, PageSensitive: true},
	{OpCode: 0xa1, Operator: Lda, AddressingMode: IndexedIndirect, Effect: Read, Cycles: 6},
	{OpCode: 0xb1, Operator: Lda, AddressingMode: IndirectIndexed, Effect: Read, Cycles: 5, PageSensitive: true},

	// LDX
	{OpCode: 0xa2, Operator: Ldx, AddressingMode: Immediate, Effect: Read, Cycles: 2},
	{OpCode: 0xa6, Operator: Ldx, AddressingMode: ZeroPage, Effect: Read, Cycles: 3},
	{OpCode: 0xb6, Operator: Ldx, AddressingMode: ZeroPageIndexedY, Effect: Read, Cycles: 4},
	{OpCode: 0xae, Operator: Ldx, AddressingMode: Absolute, Effect: Read, Cycles: 4},
	{OpCode: 0xbe, Operator: Ldx, AddressingMode: AbsoluteIndexedY, Effect: Read, Cycles: 4, PageSensitive: true},

	// LDY
	{OpCode: 0xa0, Operator: Ldy, AddressingMode: Immediate, Effect: Read, Cycles: 2},
	{OpCode: 0xa4, Operator: Ldy, AddressingMode: ZeroPage, Effect: Read, Cycles: 3},
	{OpCode: 0xb4, Operator: Ldy, AddressingMode: ZeroPageIndexedX, Effect: Read, Cycles: 4},
	{OpCode: 0xac, Operator: Ldy, AddressingMode: Absolute, Effect: Read, Cycles: 4},
	{OpCode: 0xbc, Operator: Ldy, AddressingMode: AbsoluteIndexedX, Effect: Read, Cycles: 4, PageSensitive: true},

	// LSR
	{OpCode: 0x4a, Operator: Lsr, AddressingMode: Accumulator, Effect: Read, Cycles: 2},
	{OpCode: 0x46, Operator: Lsr, AddressingMode: ZeroPage, Effect: RMW, Cycles: 5},
	{OpCode: 0x56, Operator: Lsr, AddressingMode: ZeroPageIndexedX, Effect: RMW, Cycles: 6},
	{OpCode: 0x4e, Operator: Lsr, AddressingMode: Absolute, Effect: RMW, Cycles: 6},
	{OpCode: 0x5e, Operator: Lsr, AddressingMode: AbsoluteIndexedX, Effect: RMW, Cycles: 7},

	// NOP
	{OpCode: 0xea, Operator: Nop, AddressingMode: Implied, Effect: Read, Cycles: 2},

	// ORA
	{OpCode: 0x09, Operator: Ora, AddressingMode: Immediate, Effect: Read, Cycles: 2},
	{OpCode: 0x05, Operator: Ora, AddressingMode: ZeroPage, Effect: Read, Cycles: 3},
	{OpCode: 0x15, Operator: Ora, AddressingMode: ZeroPageIndexedX, Effect: Read, Cycles: 4},
	{OpCode: 0x0d, Operator: Ora, AddressingMode: Absolute, Effect: Read, Cycles: 4},
	{OpCode: 0x1d, Operator: Ora, AddressingMode: AbsoluteIndexedX, Effect: Read, Cycles: 4, PageSensitive: true},
	{OpCode: 0x19, Operator: Ora, AddressingMode: AbsoluteIndexedY, Effect: Read, Cycles: 4, PageSensitive: true},
	{OpCode: 0x01, Operator: Ora, AddressingMode: IndexedIndirect, Effect: Read, Cycles: 6},
	{OpCode: 0x11, Operator: Ora, AddressingMode: IndirectIndexed, Effect: Read, Cycles: 5, PageSensitive: true},

	// stack instructions
	{OpCode: 0x48, Operator: Pha, AddressingMode: Implied, Effect: Read, Cycles: 3},
	{OpCode: 0x08, Operator: Php, AddressingMode: Implied, Effect: Read, Cycles: 3},
	{OpCode: 0x68, Operator: Pla, AddressingMode: Implied, Effect: Read, Cycles: 4},
	{OpCode: 0x28, Operator: Plp, AddressingMode: Implied, Effect: Read, Cycles: 4},

	// ROL
	{OpCode: 0x2a, Operator: Rol, AddressingMode: Accumulator, Effect: Read, Cycles: 2},
	{OpCode: 0x26, Operator: Rol, AddressingMode: ZeroPage, Effect: RMW, Cycles: 5},
	{OpCode: 0x36, Operator: Rol, AddressingMode: ZeroPageIndexedX, Effect: RMW, Cycles: 6},
	{OpCode: 0x2e, Operator: Rol, AddressingMode: Absolute, Effect: RMW, Cycles: 6},
	{OpCode: 0x3e, Operator: Rol, AddressingMode: AbsoluteIndexedX, Effect: RMW, Cycles: 7},

	// ROR
	{OpCode: 0x6a, Operator: Ror, AddressingMode: Accumulator, Effect: Read, Cycles: 2},
	{OpCode: 0x66, Operator: Ror, AddressingMode: ZeroPage, Effect: RMW, Cycles: 5},
	{OpCode: 0x76, Operator: Ror, AddressingMode: ZeroPageIndexedX, Effect: RMW, Cycles: 6},
	{OpCode: 0x6e, Operator: Ror, AddressingMode: Absolute, Effect: RMW, Cycles: 6},
	{OpCode: 0x7e, Operator: Ror, AddressingMode: AbsoluteIndexedX, Effect: RMW, Cycles: 7},

	// interrupt/subroutine returns
	{OpCode: 0x40, Operator: Rti, AddressingMode: Implied, Effect: Flow, Cycles: 6},
	{OpCode: 0x60, Operator: Rts, AddressingMode: Implied, Effect: Flow, Cycles: 6},

	// SBC
	{OpCode: 0xe9, Operator: Sbc, AddressingMode: Immediate, Effect: Read, Cycles: 2},
	{OpCode: 0xe5, Operator: Sbc, AddressingMode: ZeroPage, Effect: Read, Cycles: 3},
	{OpCode: 0xf5, Operator: Sbc, AddressingMode: ZeroPageIndexedX, Effect: Read, Cycles: 4},
	{OpCode: 0xed, Operator: Sbc, AddressingMode: Absolute, Effect: Read, Cycles: 4},
	{OpCode: 0xfd, Operator: Sbc, AddressingMode: AbsoluteIndexedX, Effect: Read, Cycles: 4, PageSensitive: true},
	{OpCode: 0xf9, Operator: Sbc, AddressingMode: AbsoluteIndexedY, Effect: Read, Cycles: 4, PageSensitive: true},
	{OpCode: 0xe1, Operator: Sbc, AddressingMode: IndexedIndirect, Effect: Read, Cycles: 6},
	{OpCode: 0xf1, Operator: Sbc, AddressingMode: IndirectIndexed, Effect: Read, Cycles: 5, PageSensitive: true},

	// STA. writes are never page sensitive; the indexing cycle is always paid
	{OpCode: 0x85, Operator: Sta, AddressingMode: ZeroPage, Effect: Write, Cycles: 3},
	{OpCode: 0x95, Operator: Sta, AddressingMode: ZeroPageIndexedX, Effect: Write, Cycles: 4},
	{OpCode: 0x8d, Operator: Sta, AddressingMode: Absolute, Effect: Write, Cycles: 4},
	{OpCode: 0x9d, Operator: Sta, AddressingMode: AbsoluteIndexedX, Effect: Write, Cycles: 5},
	{OpCode: 0x99, Operator: Sta, AddressingMode: AbsoluteIndexedY, Effect: Write, Cycles: 5},
	{OpCode: 0x81, Operator: Sta, AddressingMode: IndexedIndirect, Effect: Write, Cycles: 6},
	{OpCode: 0x91, Operator: Sta, AddressingMode: IndirectIndexed, Effect: Write, Cycles: 6},

	// STX
	{OpCode: 0x86, Operator: Stx, AddressingMode: ZeroPage, Effect: Write, Cycles: 3},
	{OpCode: 0x96, Operator: Stx, AddressingMode: ZeroPageIndexedY, Effect: Write, Cycles: 4},
	{OpCode: 0x8e, Operator: Stx, AddressingMode: Absolute, Effect: Write, Cycles: 4},

	// STY
	{OpCode: 0x84, Operator: Sty, AddressingMode: ZeroPage, Effect: Write, Cycles: 3},
	{OpCode: 0x94, Operator: Sty, AddressingMode: ZeroPageIndexedX, Effect: Write, Cycles: 4},
	{OpCode: 0x8c, Operator: Sty, AddressingMode: Absolute, Effect: Write, Cycles: 4},

	// transfer instructions
	{OpCode: 0xaa, Operator: Tax, AddressingMode: Implied, Effect: Read, Cycles: 2},
	{OpCode: 0xa8, Operator: Tay, AddressingMode: Implied, Effect: Read, Cycles: 2},
	{OpCode: 0xba, Operator: Tsx, AddressingMode: Implied, Effect: Read, Cycles: 2},
	{OpCode: 0x8a, Operator: Txa, AddressingMode: Implied, Effect: Read, Cycles: 2},
	{OpCode: 0x9a, Operator: Txs, AddressingMode: Implied, Effect: Read, Cycles: 2},
	{OpCode: 0x98, Operator: Tya, AddressingMode: Implied, Effect: Read, Cycles: 2},
}

// GetDefinitions returns the complete opcode table. Opcodes that are not
// part of the documented instruction set are given the fixed policy of a two
// cycle no-op; precise undocumented behaviour is not knowable from the
// machines this emulation has been tested against.
func GetDefinitions() [256]*Definition {
	var table [256]*Definition

	for i := range definitions {
		d := definitions[i]
		table[d.OpCode] = &d
	}

	for i := 0; i < 256; i++ {
		if table[i] == nil {
			table[i] = &Definition{
				OpCode:         uint8(i),
				Operator:       Nop,
				AddressingMode: Implied,
				Effect:         Read,
				Cycles:         2,
				Undocumented:   true,
			}
		}
	}

	return table
}
