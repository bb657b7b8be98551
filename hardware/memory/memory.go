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

// The memory map. Area boundaries are inclusive.
const (
	OriginRAM  = uint16(0x0000)
	MemtopRAM  = uint16(0xbfff)
	OriginVIA  = uint16(0x0300)
	MemtopVIA  = uint16(0x030f)
	OriginDisk = uint16(0x0310)
	MemtopDisk = uint16(0x031f)
	OriginOS   = uint16(0xc000)
	MemtopOS   = uint16(0xdfff)
	OriginSlot = uint16(0xe000)
	MemtopSlot = uint16(0xffff)
)

// in the smaller RAM variant, addresses from this point up to MemtopRAM are
// not populated
const ramTop16k = uint16(0x4000)

// the value of the data bus when nothing is driving it
const floatingBus = uint8(0xff)

// ChipBus defines the operations for a chip that claims a window in the
// memory map. Register addresses are relative to the window origin.
//
// ChipPeek reads a register without the side effects of a bus access. It
// exists for the benefit of the monitor.
type ChipBus interface {
	ChipRead(register uint16) uint8
	ChipWrite(register uint16, data uint8)
	ChipPeek(register uint16) uint8
}

// Area is the metadata common to all memory areas.
type Area interface {
	Label() string
	Origin() uint16
	Memtop() uint16
}

// Size of the RAM fitted to the machine.
type Size int

// List of valid Size values.
const (
	RAM48k Size = iota
	RAM16k
)

func (s Size) String() string {
	switch s {
	case RAM48k:
		return "48k"
	case RAM16k:
		return "16k"
	}
	return "unknown"
}

// Memory is the address space of the machine. It routes CPU accesses to the
// RAM, the two ROM areas and the chip windows. Reads never fault; an access
// to an unpopulated address sees a floating data bus.
type Memory struct {
	RAM  *RAM
	OS   *ROM
	Slot *Slot

	via  ChipBus
	disk ChipBus

	// exclusive upper bound of populated RAM
	ramTop uint16
}

// NewMemory is the preferred method of initialisation for the Memory
// structure. The chip windows are unconnected until AttachVIA() and
// AttachDisk() are called; unconnected windows behave like unpopulated
// addresses.
func NewMemory(size Size) *Memory {
	mem := &Memory{
		RAM:    newRAM(),
		OS:     newROM("OS", OriginOS, MemtopOS),
		Slot:   newSlot(),
		ramTop: uint16(MemtopRAM) + 1,
	}
	if size == RAM16k {
		mem.ramTop = ramTop16k
	}
	return mem
}

// AttachVIA connects the VIA chip window.
func (mem *Memory) AttachVIA(via ChipBus) {
	mem.via = via
}

// AttachDisk connects the disk controller chip window.
func (mem *Memory) AttachDisk(disk ChipBus) {
	mem.disk = disk
}

// Read is an implementation of the CPU bus.
func (mem *Memory) Read(address uint16) uint8 {
	switch {
	case address >= OriginSlot:
		return mem.Slot.read(address)
	case address >= OriginOS:
		return mem.OS.read(address)
	case address >= OriginVIA && address <= MemtopVIA:
		if mem.via == nil {
			return floatingBus
		}
		return mem.via.ChipRead(address - OriginVIA)
	case address >= OriginDisk && address <= MemtopDisk:
		if mem.disk == nil {
			return floatingBus
		}
		return mem.disk.ChipRead(address - OriginDisk)
	}
	if address >= mem.ramTop {
		return floatingBus
	}
	return mem.RAM.read(address)
}

// Write is an implementation of the CPU bus. Writes to ROM areas and to
// unpopulated addresses are discarded silently.
func (mem *Memory) Write(address uint16, data uint8) {
	switch {
	case address >= OriginOS:
		// both ROM areas
		return
	case address >= OriginVIA && address <= MemtopVIA:
		if mem.via != nil {
			mem.via.ChipWrite(address-OriginVIA, data)
		}
		return
	case address >= OriginDisk && address <= MemtopDisk:
		if mem.disk != nil {
			mem.disk.ChipWrite(address-OriginDisk, data)
		}
		return
	}
	if address >= mem.ramTop {
		return
	}
	mem.RAM.write(address, data)
}

// Peek reads an address without the side effects of a bus access.
func (mem *Memory) Peek(address uint16) uint8 {
	switch {
	case address >= OriginSlot:
		return mem.Slot.read(address)
	case address >= OriginOS:
		return mem.OS.read(address)
	case address >= OriginVIA && address <= MemtopVIA:
		if mem.via == nil {
			return floatingBus
		}
		return mem.via.ChipPeek(address - OriginVIA)
	case address >= OriginDisk && address <= MemtopDisk:
		if mem.disk == nil {
			return floatingBus
		}
		return mem.disk.ChipPeek(address - OriginDisk)
	}
	if address >= mem.ramTop {
		return floatingBus
	}
	return mem.RAM.read(address)
}

// Poke writes an address directly, bypassing the chip windows and ROM write
// protection. Pokes to chip windows and unpopulated addresses are discarded.
func (mem *Memory) Poke(address uint16, data uint8) {
	switch {
	case address >= OriginSlot:
		mem.Slot.poke(address, data)
		return
	case address >= OriginOS:
		mem.OS.poke(address, data)
		return
	case address >= OriginVIA && address <= MemtopVIA:
		return
	case address >= OriginDisk && address <= MemtopDisk:
		return
	}
	if address >= mem.ramTop {
		return
	}
	mem.RAM.write(address, data)
}

// VideoRead gives the video chip its own port into RAM. The video chip never
// sees the chip windows or the ROMs; addresses outside populated RAM read as
// a floating bus, as they do for the CPU.
func (mem *Memory) VideoRead(address uint16) uint8 {
	if address >= mem.ramTop {
		return floatingBus
	}
	return mem.RAM.read(address)
}

// Areas returns the memory areas in ascending address order. Used by the
// monitor for its memory map display.
func (mem *Memory) Areas() []Area {
	return []Area{mem.RAM, mem.OS, mem.Slot}
}
