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

package cpu

import (
	"fmt"

	"github.com/jtallis/goric/hardware/cpu/instructions"
	"github.com/jtallis/goric/hardware/cpu/registers"
	"github.com/jtallis/goric/logger"
)

// Bus defines the memory operations required by the CPU. The memory
// implementation never faults; unmapped addresses behave like a floating
// data bus.
type Bus interface {
	Read(address uint16) uint8
	Write(address uint16, data uint8)
}

// Interrupt vector addresses.
const (
	NMI   = uint16(0xfffa)
	Reset = uint16(0xfffc)
	IRQ   = uint16(0xfffe)
)

// the stack occupies a fixed page of memory.
const stackPage = uint16(0x0100)

// cycles consumed when servicing an interrupt (hardware or BRK).
const interruptCycles = 7

// CPU implements the 6502 found in many home computers of the early 1980s.
// Register logic is implemented by the types in the registers sub-package.
//
// The CPU is driven one machine cycle at a time with the Step() function. An
// instruction is decoded and performed in full on its first cycle; the
// remaining cycles of the instruction burn down before the next decode.
// Interrupt lines are sampled at instruction boundaries only.
type CPU struct {
	PC     registers.ProgramCounter
	A      registers.Register
	X      registers.Register
	Y      registers.Register
	SP     registers.Register
	Status registers.StatusRegister

	// PendingNMI latches a rising edge on the NMI line until the next
	// instruction boundary. NMI is never masked
	PendingNMI bool

	// previous state of the NMI line, for edge detection
	LastNMI bool

	// CyclesRemaining is the number of cycles before the current instruction
	// concludes and the next can begin
	CyclesRemaining int

	mem          Bus
	instructions [256]*instructions.Definition

	// interrupt lines. the CPU polls these; the chips never hold a
	// reference back to the CPU
	irqLine func() bool
	nmiLine func() bool

	// some operations only need an accumulator
	acc8 registers.Register

	// undocumented opcodes that have already been reported to the log
	reported [256]bool
}

// NewCPU is the preferred method of initialisation for the CPU structure.
// Interrupt lines are unconnected; use AttachInterruptLines() before the
// first Step().
func NewCPU(mem Bus) *CPU {
	return &CPU{
		mem:          mem,
		PC:           registers.NewProgramCounter(0),
		A:            registers.NewRegister(0, "A"),
		X:            registers.NewRegister(0, "X"),
		Y:            registers.NewRegister(0, "Y"),
		SP:           registers.NewRegister(0xff, "SP"),
		Status:       registers.NewStatusRegister(),
		acc8:         registers.NewRegister(0, "accumulator"),
		instructions: instructions.GetDefinitions(),
		irqLine:      func() bool { return false },
		nmiLine:      func() bool { return false },
	}
}

// AttachInterruptLines connects the functions the CPU uses to sample the
// aggregate IRQ and NMI lines. A nil function means the line is never
// asserted.
func (mc *CPU) AttachInterruptLines(irq func() bool, nmi func() bool) {
	if irq == nil {
		irq = func() bool { return false }
	}
	if nmi == nil {
		nmi = func() bool { return false }
	}
	mc.irqLine = irq
	mc.nmiLine = nmi
}

func (mc *CPU) String() string {
	return fmt.Sprintf("%s=%s %s=%s %s=%s %s=%s %s=%s %s=%s",
		mc.PC.Label(), mc.PC, mc.A.Label(), mc.A,
		mc.X.Label(), mc.X, mc.Y.Label(), mc.Y,
		mc.SP.Label(), mc.SP, mc.Status.Label(), mc.Status)
}

// Reset loads the PC from the reset vector, sets the interrupt disable flag
// and clears decimal mode. No other register is touched; whatever was in
// them before the reset remains.
func (mc *CPU) Reset() {
	lo := mc.mem.Read(Reset)
	hi := mc.mem.Read(Reset + 1)
	mc.PC.Load((uint16(hi) << 8) | uint16(lo))

	mc.Status.InterruptDisable = true
	mc.Status.DecimalMode = false

	mc.PendingNMI = false
	mc.LastNMI = false
	mc.CyclesRemaining = 0
}

// AtBoundary returns true if the CPU is at an instruction boundary - ie. the
// next call to Step() will decode a new instruction (or service a pending
// interrupt).
func (mc *CPU) AtBoundary() bool {
	return mc.CyclesRemaining == 0
}

// Step runs the CPU for one machine cycle. The NMI line is watched for a
// rising edge on every cycle; the latched edge (and the level of the IRQ
// line) is acted on at the next instruction boundary.
func (mc *CPU) Step() {
	nmi := mc.nmiLine()
	if nmi && !mc.LastNMI {
		mc.PendingNMI = true
	}
	mc.LastNMI = nmi

	if mc.CyclesRemaining > 0 {
		mc.CyclesRemaining--
		return
	}

	// instruction boundary. NMI is always honoured and takes priority over
	// IRQ, which is only honoured when the interrupt disable flag is clear
	if mc.PendingNMI {
		mc.PendingNMI = false
		mc.interrupt(NMI)
		mc.CyclesRemaining = interruptCycles - 1
		return
	}

	if mc.irqLine() && !mc.Status.InterruptDisable {
		mc.interrupt(IRQ)
		mc.CyclesRemaining = interruptCycles - 1
		return
	}

	mc.CyclesRemaining = mc.executeInstruction() - 1
}

// interrupt services a hardware interrupt: return address and status pushed,
// interrupt disable set, PC loaded from the corresponding vector. The break
// flag is clear in the pushed status, distinguishing a hardware interrupt
// from BRK.
func (mc *CPU) interrupt(vector uint16) {
	mc.push(uint8(mc.PC.Address() >> 8))
	mc.push(uint8(mc.PC.Address()))
	mc.push(mc.Status.Value() &^ 0x10)
	mc.Status.InterruptDisable = true

	lo := mc.mem.Read(vector)
	hi := mc.mem.Read(vector + 1)
	mc.PC.Load((uint16(hi) << 8) | uint16(lo))
}

// push a value onto the stack. the stack pointer wraps silently within the
// stack page.
func (mc *CPU) push(val uint8) {
	mc.mem.Write(stackPage|mc.SP.Address(), val)
	mc.SP.Add(0xff, false)
}

// pull a value from the stack, wrapping silently.
func (mc *CPU) pull() uint8 {
	mc.SP.Add(1, false)
	return mc.mem.Read(stackPage | mc.SP.Address())
}

// read8BitPC reads the byte at the PC and advances the PC.
func (mc *CPU) read8BitPC() uint8 {
	v := mc.mem.Read(mc.PC.Address())
	mc.PC.Add(1)
	return v
}

// read16BitPC reads two bytes at the PC and advances the PC.
func (mc *CPU) read16BitPC() uint16 {
	lo := mc.read8BitPC()
	hi := mc.read8BitPC()
	return (uint16(hi) << 8) | uint16(lo)
}

// read16Bit reads a 16 bit value from the specified address.
func (mc *CPU) read16Bit(address uint16) uint16 {
	lo := mc.mem.Read(address)
	hi := mc.mem.Read(address + 1)
	return (uint16(hi) << 8) | uint16(lo)
}

// read16BitZeroPage reads a 16 bit value from the zero page. the second byte
// of the address wraps inside the zero page, as it does on the real CPU.
func (mc *CPU) read16BitZeroPage(address uint8) uint16 {
	lo := mc.mem.Read(uint16(address))
	hi := mc.mem.Read(uint16(address + 1))
	return (uint16(hi) << 8) | uint16(lo)
}

// branch adjusts the PC by the (sign extended) offset if flag is true.
// Returns the number of additional cycles consumed: one for a taken branch
// and another if the branch crosses a page.
func (mc *CPU) branch(flag bool, offset uint8) int {
	if !flag {
		return 0
	}

	// sign extend the offset into the most significant bits of the 16bit
	// value before the addition
	address := uint16(offset)
	if address&0x0080 == 0x0080 {
		address |= 0xff00
	}

	oldPC := mc.PC.Address()
	mc.PC.Add(address)

	if oldPC&0xff00 != mc.PC.Address()&0xff00 {
		return 2
	}
	return 1
}

// executeInstruction decodes and performs one instruction in full, returning
// the total number of cycles the instruction costs. The basic process:
//
//  1. read opcode and look up instruction definition
//  2. resolve the effective address according to the addressing mode
//  3. using the operator as a guide, perform the instruction
//
// All instructions cost at least 2 cycles. Page sensitive instructions cost
// one more when the indexed access crosses a page; branches add their own
// penalties.
func (mc *CPU) executeInstruction() int {
	opcodeAddress := mc.PC.Address()
	opcode := mc.read8BitPC()
	defn := mc.instructions[opcode]

	if defn.Undocumented && !mc.reported[opcode] {
		mc.reported[opcode] = true
		logger.Logf("CPU", "undocumented opcode (%#02x) at (%#04x) treated as NOP", opcode, opcodeAddress)
	}

	cycles := defn.Cycles

	// address is the effective address of the operand (when the addressing
	// mode implies one)
	var address uint16

	// value is read from the program for immediate mode and from memory for
	// other non-implied modes. for read-modify-write instructions the value
	// changes during execution and is written back to memory
	var value uint8

	// whether an indexed access crossed a page boundary
	var pageCross bool

	switch defn.AddressingMode {
	case instructions.Implied, instructions.Accumulator:
		// no operand

	case instructions.Immediate:
		value = mc.read8BitPC()

	case instructions.Relative:
		// branch offset. the branch() function applies it
		value = mc.read8BitPC()

	case instructions.ZeroPage:
		address = uint16(mc.read8BitPC())

	case instructions.ZeroPageIndexedX:
		// indexed zero page addressing never leaves the zero page
		address = uint16(mc.read8BitPC() + mc.X.Value())

	case instructions.ZeroPageIndexedY:
		address = uint16(mc.read8BitPC() + mc.Y.Value())

	case instructions.Absolute:
		if defn.Effect != instructions.Subroutine {
			address = mc.read16BitPC()
		}
		// for JSR the address is read as part of the operator

	case instructions.AbsoluteIndexedX:
		base := mc.read16BitPC()
		address = base + mc.X.Address()
		pageCross = base&0xff00 != address&0xff00

	case instructions.AbsoluteIndexedY:
		base := mc.read16BitPC()
		address = base + mc.Y.Address()
		pageCross = base&0xff00 != address&0xff00

	case instructions.Indirect:
		// indirect addressing (without indexing) is only used by JMP
		indirectAddress := mc.read16BitPC()

		if indirectAddress&0x00ff == 0x00ff {
			// the 6502 JMP bug. the high byte of the target is read from the
			// zero byte of the same page rather than the next page
			lo := mc.mem.Read(indirectAddress)
			hi := mc.mem.Read(indirectAddress & 0xff00)
			address = (uint16(hi) << 8) | uint16(lo)
		} else {
			address = mc.read16Bit(indirectAddress)
		}

	case instructions.IndexedIndirect: // x indexing
		// 8bit addition so that the indexed address never extends past the
		// zero page
		indirectAddress := mc.read8BitPC() + mc.X.Value()
		address = mc.read16BitZeroPage(indirectAddress)

		// never a page cross with pre-index indirect addressing

	case instructions.IndirectIndexed: // y indexing
		indirectAddress := mc.read8BitPC()
		base := mc.read16BitZeroPage(indirectAddress)
		address = base + mc.Y.Address()
		pageCross = base&0xff00 != address&0xff00
	}

	// read value from memory when the addressing mode implies one and the
	// instruction wants it. write instructions only use the address; flow
	// instructions use the address very specifically
	switch defn.Effect {
	case instructions.Read, instructions.RMW:
		switch defn.AddressingMode {
		case instructions.Implied, instructions.Accumulator, instructions.Immediate:
			// no memory read
		default:
			value = mc.mem.Read(address)
		}
	}

	// extra cycles accrued by branch instructions
	var branchCycles int

	// perform instruction based on operator
	switch defn.Operator {
	case instructions.Nop:
		// does nothing

	case instructions.Cli:
		mc.Status.InterruptDisable = false

	case instructions.Sei:
		mc.Status.InterruptDisable = true

	case instructions.Clc:
		mc.Status.Carry = false

	case instructions.Sec:
		mc.Status.Carry = true

	case instructions.Cld:
		mc.Status.DecimalMode = false

	case instructions.Sed:
		mc.Status.DecimalMode = true

	case instructions.Clv:
		mc.Status.Overflow = false

	case instructions.Pha:
		mc.push(mc.A.Value())

	case instructions.Pla:
		mc.A.Load(mc.pull())
		mc.Status.Zero = mc.A.IsZero()
		mc.Status.Sign = mc.A.IsNegative()

	case instructions.Php:
		// the break flag is set in the pushed value, as with BRK
		mc.push(mc.Status.Value() | 0x10)

	case instructions.Plp:
		mc.Status.FromValue(mc.pull())

	case instructions.Txa:
		mc.A.Load(mc.X.Value())
		mc.Status.Zero = mc.A.IsZero()
		mc.Status.Sign = mc.A.IsNegative()

	case instructions.Tax:
		mc.X.Load(mc.A.Value())
		mc.Status.Zero = mc.X.IsZero()
		mc.Status.Sign = mc.X.IsNegative()

	case instructions.Tay:
		mc.Y.Load(mc.A.Value())
		mc.Status.Zero = mc.Y.IsZero()
		mc.Status.Sign = mc.Y.IsNegative()

	case instructions.Tya:
		mc.A.Load(mc.Y.Value())
		mc.Status.Zero = mc.A.IsZero()
		mc.Status.Sign = mc.A.IsNegative()

	case instructions.Tsx:
		mc.X.Load(mc.SP.Value())
		mc.Status.Zero = mc.X.IsZero()
		mc.Status.Sign = mc.X.IsNegative()

	case instructions.Txs:
		mc.SP.Load(mc.X.Value())
		// does not affect status register

	case instructions.Eor:
		mc.A.EOR(value)
		mc.Status.Zero = mc.A.IsZero()
		mc.Status.Sign = mc.A.IsNegative()

	case instructions.Ora:
		mc.A.ORA(value)
		mc.Status.Zero = mc.A.IsZero()
		mc.Status.Sign = mc.A.IsNegative()

	case instructions.And:
		mc.A.AND(value)
		mc.Status.Zero = mc.A.IsZero()
		mc.Status.Sign = mc.A.IsNegative()

	case instructions.Lda:
		mc.A.Load(value)
		mc.Status.Zero = mc.A.IsZero()
		mc.Status.Sign = mc.A.IsNegative()

	case instructions.Ldx:
		mc.X.Load(value)
		mc.Status.Zero = mc.X.IsZero()
		mc.Status.Sign = mc.X.IsNegative()

	case instructions.Ldy:
		mc.Y.Load(value)
		mc.Status.Zero = mc.Y.IsZero()
		mc.Status.Sign = mc.Y.IsNegative()

	case instructions.Sta:
		mc.mem.Write(address, mc.A.Value())

	case instructions.Stx:
		mc.mem.Write(address, mc.X.Value())

	case instructions.Sty:
		mc.mem.Write(address, mc.Y.Value())

	case instructions.Inx:
		mc.X.Add(1, false)
		mc.Status.Zero = mc.X.IsZero()
		mc.Status.Sign = mc.X.IsNegative()

	case instructions.Iny:
		mc.Y.Add(1, false)
		mc.Status.Zero = mc.Y.IsZero()
		mc.Status.Sign = mc.Y.IsNegative()

	case instructions.Dex:
		mc.X.Add(0xff, false)
		mc.Status.Zero = mc.X.IsZero()
		mc.Status.Sign = mc.X.IsNegative()

	case instructions.Dey:
		mc.Y.Add(0xff, false)
		mc.Status.Zero = mc.Y.IsZero()
		mc.Status.Sign = mc.Y.IsNegative()

	case instructions.Asl:
		var r *registers.Register
		if defn.AddressingMode == instructions.Accumulator {
			r = &mc.A
		} else {
			r = &mc.acc8
			r.Load(value)
		}
		mc.Status.Carry = r.ASL()
		mc.Status.Zero = r.IsZero()
		mc.Status.Sign = r.IsNegative()
		value = r.Value()

	case instructions.Lsr:
		var r *registers.Register
		if defn.AddressingMode == instructions.Accumulator {
			r = &mc.A
		} else {
			r = &mc.acc8
			r.Load(value)
		}
		mc.Status.Carry = r.LSR()
		mc.Status.Zero = r.IsZero()
		mc.Status.Sign = r.IsNegative()
		value = r.Value()

	case instructions.Rol:
		var r *registers.Register
		if defn.AddressingMode == instructions.Accumulator {
			r = &mc.A
		} else {
			r = &mc.acc8
			r.Load(value)
		}
		mc.Status.Carry = r.ROL(mc.Status.Carry)
		mc.Status.Zero = r.IsZero()
		mc.Status.Sign = r.IsNegative()
		value = r.Value()

	case instructions.Ror:
		var r *registers.Register
		if defn.AddressingMode == instructions.Accumulator {
			r = &mc.A
		} else {
			r = &mc.acc8
			r.Load(value)
		}
		mc.Status.Carry = r.ROR(mc.Status.Carry)
		mc.Status.Zero = r.IsZero()
		mc.Status.Sign = r.IsNegative()
		value = r.Value()

	case instructions.Adc:
		if mc.Status.DecimalMode {
			mc.Status.Carry,
				mc.Status.Zero,
				mc.Status.Overflow,
				mc.Status.Sign = mc.A.AddDecimal(value, mc.Status.Carry)
		} else {
			mc.Status.Carry, mc.Status.Overflow = mc.A.Add(value, mc.Status.Carry)
			mc.Status.Zero = mc.A.IsZero()
			mc.Status.Sign = mc.A.IsNegative()
		}

	case instructions.Sbc:
		if mc.Status.DecimalMode {
			mc.Status.Carry,
				mc.Status.Zero,
				mc.Status.Overflow,
				mc.Status.Sign = mc.A.SubtractDecimal(value, mc.Status.Carry)
		} else {
			mc.Status.Carry, mc.Status.Overflow = mc.A.Subtract(value, mc.Status.Carry)
			mc.Status.Zero = mc.A.IsZero()
			mc.Status.Sign = mc.A.IsNegative()
		}

	case instructions.Inc:
		r := mc.acc8
		r.Load(value)
		r.Add(1, false)
		mc.Status.Zero = r.IsZero()
		mc.Status.Sign = r.IsNegative()
		value = r.Value()

	case instructions.Dec:
		r := mc.acc8
		r.Load(value)
		r.Add(0xff, false)
		mc.Status.Zero = r.IsZero()
		mc.Status.Sign = r.IsNegative()
		value = r.Value()

	case instructions.Cmp:
		r := mc.acc8
		r.Load(mc.A.Value())

		// CMP is implemented with binary subtract even if decimal mode is
		// active (the meaning is the same)
		mc.Status.Carry, _ = r.Subtract(value, true)
		mc.Status.Zero = r.IsZero()
		mc.Status.Sign = r.IsNegative()

	case instructions.Cpx:
		r := mc.acc8
		r.Load(mc.X.Value())
		mc.Status.Carry, _ = r.Subtract(value, true)
		mc.Status.Zero = r.IsZero()
		mc.Status.Sign = r.IsNegative()

	case instructions.Cpy:
		r := mc.acc8
		r.Load(mc.Y.Value())
		mc.Status.Carry, _ = r.Subtract(value, true)
		mc.Status.Zero = r.IsZero()
		mc.Status.Sign = r.IsNegative()

	case instructions.Bit:
		r := mc.acc8
		r.Load(value)
		mc.Status.Sign = r.IsNegative()
		mc.Status.Overflow = r.IsBitV()
		r.AND(mc.A.Value())
		mc.Status.Zero = r.IsZero()

	case instructions.Jmp:
		mc.PC.Load(address)

	case instructions.Bcc:
		branchCycles = mc.branch(!mc.Status.Carry, value)

	case instructions.Bcs:
		branchCycles = mc.branch(mc.Status.Carry, value)

	case instructions.Beq:
		branchCycles = mc.branch(mc.Status.Zero, value)

	case instructions.Bmi:
		branchCycles = mc.branch(mc.Status.Sign, value)

	case instructions.Bne:
		branchCycles = mc.branch(!mc.Status.Zero, value)

	case instructions.Bpl:
		branchCycles = mc.branch(!mc.Status.Sign, value)

	case instructions.Bvc:
		branchCycles = mc.branch(!mc.Status.Overflow, value)

	case instructions.Bvs:
		branchCycles = mc.branch(mc.Status.Overflow, value)

	case instructions.Jsr:
		// the return address pushed by JSR is the address of the last byte
		// of the instruction. RTS corrects the PC when it is pulled
		lo := mc.read8BitPC()
		mc.push(uint8(mc.PC.Address() >> 8))
		mc.push(uint8(mc.PC.Address()))
		hi := mc.read8BitPC()
		mc.PC.Load((uint16(hi) << 8) | uint16(lo))

	case instructions.Rts:
		lo := mc.pull()
		hi := mc.pull()
		mc.PC.Load((uint16(hi) << 8) | uint16(lo))
		mc.PC.Add(1)

	case instructions.Brk:
		// BRK advances the return address by two despite being a single
		// byte instruction. the byte after the opcode is skipped
		mc.PC.Add(1)

		mc.push(uint8(mc.PC.Address() >> 8))
		mc.push(uint8(mc.PC.Address()))

		// the break flag is set in the pushed status register
		mc.Status.Break = true
		mc.push(mc.Status.Value() | 0x10)
		mc.Status.InterruptDisable = true

		mc.PC.Load(mc.read16Bit(IRQ))

	case instructions.Rti:
		mc.Status.FromValue(mc.pull())
		lo := mc.pull()
		hi := mc.pull()
		mc.PC.Load((uint16(hi) << 8) | uint16(lo))
		// unlike RTS there is no need to add one to the return address
	}

	// for RMW instructions: write altered value back to memory
	if defn.Effect == instructions.RMW {
		mc.mem.Write(address, value)
	}

	if pageCross && defn.PageSensitive {
		cycles++
	}

	return cycles + branchCycles
}
