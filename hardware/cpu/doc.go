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

// Package cpu emulates the 6502 microprocessor. The CPU is initialised with
// a reference to a memory bus:
//
//	mc := cpu.NewCPU(mem)
//
// and driven one machine cycle at a time:
//
//	mc.Step()
//
// An instruction is performed in full at the instruction boundary and the
// cost of the instruction is burned down over the following cycles, so
// memory accesses are not distributed over the cycles exactly as they are on
// the real processor. For the machines this package is used in, only the
// boundaries are observable and the simplification holds up.
//
// The IRQ and NMI lines are sampled through functions supplied with
// AttachInterruptLines(). NMI is edge triggered and latched until the next
// instruction boundary; IRQ is level triggered and honoured only when the
// interrupt disable flag is clear. NMI always has priority.
//
// Undocumented opcodes are performed as two cycle no-ops. Software for the
// machines in this emulator has no business executing them so we prefer a
// predictable fiction over a partial implementation; the first encounter of
// each such opcode is noted in the log.
package cpu
