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

package hardware_test

import (
	"bytes"
	"testing"

	"github.com/jtallis/goric/curated"
	"github.com/jtallis/goric/hardware"
	"github.com/jtallis/goric/hardware/memory"
	"github.com/jtallis/goric/programloader"
	"github.com/jtallis/goric/test"
)

func newTestMachine(t *testing.T) *hardware.Machine {
	t.Helper()
	m, err := hardware.NewMachine(hardware.Config{})
	if err != nil {
		t.Fatalf("NewMachine: %v", err)
	}
	return m
}

func TestConfigValidation(t *testing.T) {
	_, err := hardware.NewMachine(hardware.Config{Variant: "SECAM"})
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Is(err, hardware.InvalidVariant))

	_, err = hardware.NewMachine(hardware.Config{RAM: memory.Size(99)})
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Is(err, hardware.InvalidRAM))

	_, err = hardware.NewMachine(hardware.Config{Variant: "ntsc"})
	test.ExpectedSuccess(t, err)
}

func TestStartupFailureIsNotFatal(t *testing.T) {
	ld := programloader.NewLoader("no_such_file.rom", programloader.KindAuto)
	m, err := hardware.NewMachine(hardware.Config{Startup: &ld})
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, m != nil)
}

func TestUpdateProducesOneFrame(t *testing.T) {
	m := newTestMachine(t)

	for i := 0; i < 3; i++ {
		m.Update(false)
		test.Equate(t, m.FrameCount, uint64(i+1))

		// exactly one frame available per update
		px := m.GetFramePixels()
		test.ExpectedSuccess(t, px != nil)
		test.ExpectedSuccess(t, m.GetFramePixels() == nil)
	}
}

func TestStepInstruction(t *testing.T) {
	m := newTestMachine(t)

	// the machine always settles on an instruction boundary
	for i := 0; i < 10; i++ {
		m.StepInstruction()
		test.ExpectedSuccess(t, m.CPU.AtBoundary())
	}
}

func TestRAMSize(t *testing.T) {
	m, err := hardware.NewMachine(hardware.Config{RAM: memory.RAM16k})
	test.ExpectedSuccess(t, err)

	m.Mem.Poke(0x2000, 0x42)
	test.Equate(t, m.Mem.Peek(0x2000), 0x42)

	// addresses above the fitted RAM read as floating bus
	m.Mem.Write(0x5000, 0x42)
	test.Equate(t, m.Mem.Peek(0x5000), 0xff)
}

func TestSnapshotRoundTrip(t *testing.T) {
	m := newTestMachine(t)

	// establish some distinctive state
	m.Mem.Poke(0x1234, 0xab)
	m.Keyboard.KeyDown(3, 4)
	m.Update(false)
	_ = m.GetFramePixels()

	snap, err := m.Snapshot()
	test.ExpectedSuccess(t, err)

	// mutate everything the snapshot covers
	for i := 0; i < 5; i++ {
		m.Update(false)
	}
	m.Mem.Poke(0x1234, 0x00)
	m.Keyboard.Reset()
	m.CPU.Reset()

	test.ExpectedSuccess(t, m.RestoreSnapshot(snap))

	// a snapshot of the restored machine is bit-identical to the original
	again, err := m.Snapshot()
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, bytes.Equal(snap, again))

	test.Equate(t, m.Mem.Peek(0x1234), 0xab)
	test.Equate(t, m.FrameCount, uint64(1))
}

func TestSnapshotResumesIdentically(t *testing.T) {
	m := newTestMachine(t)
	m.Update(false)

	snap, err := m.Snapshot()
	test.ExpectedSuccess(t, err)

	m.Update(false)
	first := append([]uint8(nil), m.GetFramePixels()...)

	test.ExpectedSuccess(t, m.RestoreSnapshot(snap))
	m.Update(false)
	second := m.GetFramePixels()

	// the frame after restoring must match the frame after saving
	test.ExpectedSuccess(t, bytes.Equal(first, second))
}

func TestSnapshotRejection(t *testing.T) {
	m := newTestMachine(t)
	snap, err := m.Snapshot()
	test.ExpectedSuccess(t, err)

	err = m.RestoreSnapshot([]byte("not a snapshot at all"))
	test.ExpectedSuccess(t, curated.Is(err, hardware.NotASnapshot))

	// version byte nobody supports
	bad := append([]uint8(nil), snap...)
	bad[4] = 0xff
	err = m.RestoreSnapshot(bad)
	test.ExpectedSuccess(t, curated.Is(err, hardware.WrongVersion))

	// truncation inside the compressed payload
	err = m.RestoreSnapshot(snap[:len(snap)-3])
	test.ExpectedFailure(t, err)

	// a snapshot from a differently configured machine
	other, err := hardware.NewMachine(hardware.Config{Variant: "NTSC"})
	test.ExpectedSuccess(t, err)
	otherSnap, err := other.Snapshot()
	test.ExpectedSuccess(t, err)
	err = m.RestoreSnapshot(otherSnap)
	test.ExpectedSuccess(t, curated.Is(err, hardware.SnapshotMismatch))
}

func TestSnapshotFailureLeavesMachineUntouched(t *testing.T) {
	m := newTestMachine(t)
	m.Mem.Poke(0x1000, 0x99)
	m.Update(false)

	before, err := m.Snapshot()
	test.ExpectedSuccess(t, err)

	err = m.RestoreSnapshot(before[:len(before)-10])
	test.ExpectedFailure(t, err)

	after, err := m.Snapshot()
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, bytes.Equal(before, after))
}

func TestAttachROM(t *testing.T) {
	m := newTestMachine(t)

	// a 16k attachment is split between OS ROM and slot bank 0
	rom := make([]byte, 0x4000)
	rom[0x0000] = 0x11
	rom[0x2000] = 0x22
	test.ExpectedSuccess(t, m.AttachROM(rom))
	test.Equate(t, m.Mem.Peek(0xc000), 0x11)
	test.Equate(t, m.Mem.Peek(0xe000), 0x22)

	// an 8k attachment goes to the slot alone
	slot := make([]byte, 0x2000)
	slot[0] = 0x33
	test.ExpectedSuccess(t, m.AttachROM(slot))
	test.Equate(t, m.Mem.Peek(0xe000), 0x33)
}
