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

// Package hardware assembles the emulated components into a single
// machine. The Machine type owns the CPU, the memory map, the ULA, the
// VIA, the disk controller and the attached peripherals, and wires them
// together: the ULA's vsync output feeds the VIA's CB1 input, the VIA and
// disk interrupt outputs are ORed onto the CPU's IRQ line, and the disk
// controller's ROM select output drives the pageable slot ROM.
//
// The machine advances through the Update() function, which steps every
// component in lockstep, one cycle at a time, and returns when the ULA
// reports a completed frame. A driver wanting video output calls
// GetFramePixels() after each Update().
//
// Snapshot() and RestoreSnapshot() capture and rehydrate the complete
// machine state between frames.
package hardware
