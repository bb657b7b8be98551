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

package memory_test

import (
	"testing"

	"github.com/jtallis/goric/curated"
	"github.com/jtallis/goric/hardware/memory"
	"github.com/jtallis/goric/test"
)

// mockChip records the last register access made through the chip window.
type mockChip struct {
	lastRegister uint16
	lastData     uint8
	readValue    uint8
}

func (c *mockChip) ChipRead(register uint16) uint8 {
	c.lastRegister = register
	return c.readValue
}

func (c *mockChip) ChipWrite(register uint16, data uint8) {
	c.lastRegister = register
	c.lastData = data
}

func (c *mockChip) ChipPeek(register uint16) uint8 {
	return c.readValue
}

func TestRAMReadWrite(t *testing.T) {
	mem := memory.NewMemory(memory.RAM48k)

	mem.Write(0x0400, 0xaa)
	test.Equate(t, mem.Read(0x0400), 0xaa)

	// addresses below the chip windows
	mem.Write(0x02ff, 0x12)
	test.Equate(t, mem.Read(0x02ff), 0x12)

	// addresses between the disk window and the top of the zero page block
	mem.Write(0x0320, 0x34)
	test.Equate(t, mem.Read(0x0320), 0x34)
}

func TestRAM16kVariant(t *testing.T) {
	mem := memory.NewMemory(memory.RAM16k)

	mem.Write(0x3fff, 0x56)
	test.Equate(t, mem.Read(0x3fff), 0x56)

	// unpopulated addresses read as a floating bus and discard writes
	mem.Write(0x4000, 0x56)
	test.Equate(t, mem.Read(0x4000), 0xff)
	test.Equate(t, mem.Read(0x8000), 0xff)
}

func TestChipWindows(t *testing.T) {
	mem := memory.NewMemory(memory.RAM48k)

	// unattached windows behave like unpopulated memory
	test.Equate(t, mem.Read(0x0300), 0xff)

	via := &mockChip{readValue: 0x11}
	disk := &mockChip{readValue: 0x22}
	mem.AttachVIA(via)
	mem.AttachDisk(disk)

	test.Equate(t, mem.Read(0x0304), 0x11)
	test.Equate(t, int(via.lastRegister), 4)

	mem.Write(0x030f, 0x77)
	test.Equate(t, int(via.lastRegister), 15)
	test.Equate(t, via.lastData, 0x77)

	test.Equate(t, mem.Read(0x0313), 0x22)
	test.Equate(t, int(disk.lastRegister), 3)
}

func TestROMWriteProtect(t *testing.T) {
	mem := memory.NewMemory(memory.RAM48k)

	rom := make([]uint8, 0x2000)
	rom[0x0100] = 0x99
	test.ExpectedSuccess(t, mem.OS.Load(rom))

	test.Equate(t, mem.Read(0xc100), 0x99)

	// writes to ROM are discarded
	mem.Write(0xc100, 0x00)
	test.Equate(t, mem.Read(0xc100), 0x99)

	// a poke gets through
	mem.Poke(0xc100, 0x42)
	test.Equate(t, mem.Read(0xc100), 0x42)
}

func TestROMWrongSize(t *testing.T) {
	mem := memory.NewMemory(memory.RAM48k)

	err := mem.OS.Load(make([]uint8, 0x1000))
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Is(err, memory.WrongROMSize))
}

func TestSlotBanking(t *testing.T) {
	mem := memory.NewMemory(memory.RAM48k)

	basic := make([]uint8, 0x2000)
	basic[0] = 0x01
	boot := make([]uint8, 0x2000)
	boot[0] = 0x02

	test.ExpectedSuccess(t, mem.Slot.Fit(0, basic))
	test.ExpectedSuccess(t, mem.Slot.Fit(1, boot))

	test.Equate(t, mem.Read(0xe000), 0x01)

	mem.Slot.SelectBank(1)
	test.Equate(t, mem.Read(0xe000), 0x02)
	test.Equate(t, mem.Slot.CurrentBank(), 1)

	// out of range selections are ignored
	mem.Slot.SelectBank(5)
	test.Equate(t, mem.Slot.CurrentBank(), 1)

	mem.Slot.SelectBank(0)
	test.Equate(t, mem.Read(0xe000), 0x01)
}

func TestSnapshotRestore(t *testing.T) {
	mem := memory.NewMemory(memory.RAM48k)

	mem.Write(0x1000, 0xab)
	s := mem.RAM.Snapshot()

	mem.Write(0x1000, 0xcd)
	test.Equate(t, mem.Read(0x1000), 0xcd)

	mem.RAM.Restore(s)
	test.Equate(t, mem.Read(0x1000), 0xab)

	// the snapshot is a copy; later writes do not alter it
	test.Equate(t, s[0x1000], 0xab)
}
