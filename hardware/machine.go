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

package hardware

import (
	"github.com/jtallis/goric/hardware/cpu"
	"github.com/jtallis/goric/hardware/disk"
	"github.com/jtallis/goric/hardware/memory"
	"github.com/jtallis/goric/hardware/peripherals"
	"github.com/jtallis/goric/hardware/ula"
	"github.com/jtallis/goric/hardware/via"
	"github.com/jtallis/goric/logger"
	"github.com/jtallis/goric/programloader"
)

// Machine is the complete emulated home computer. It owns every chip
// exclusively; nothing outside the machine mutates chip state except
// through the machine's own functions.
type Machine struct {
	Config Config

	CPU  *cpu.CPU
	Mem  *memory.Memory
	Ula  *ula.Ula
	Via  *via.Via
	Disk *disk.Controller

	Keyboard *peripherals.Keyboard
	Joystick *peripherals.Joystick

	// number of frames produced since creation
	FrameCount uint64

	// Paused is inspected by the driver before calling Update(); the
	// machine itself never checks it mid frame
	Paused bool
}

// NewMachine is the preferred method of initialisation for the Machine
// structure. The machine arrives reset and, if the configuration names a
// startup program, with that program attached.
func NewMachine(config Config) (*Machine, error) {
	spec, err := config.validate()
	if err != nil {
		return nil, err
	}

	m := &Machine{Config: config}

	m.Mem = memory.NewMemory(config.RAM)

	m.Via = via.NewVia()
	m.Mem.AttachVIA(m.Via)

	m.Disk = disk.NewController(m.Mem.Slot)
	m.Mem.AttachDisk(m.Disk)

	m.Ula = ula.NewUla(spec, m.Mem)
	m.Ula.AttachVSync(m.Via.CB1)

	m.Keyboard = peripherals.NewKeyboard()
	m.Joystick = peripherals.NewJoystick(m.Keyboard)
	m.Via.AttachKeyboard(m.Keyboard)

	m.CPU = cpu.NewCPU(m.Mem)
	m.CPU.AttachInterruptLines(m.irqLine, nil)

	if config.Startup != nil {
		m.attachStartup(config.Startup)
	}

	m.CPU.Reset()

	return m, nil
}

// irqLine folds the interrupt outputs of the interrupt capable chips onto
// the single line the CPU samples.
func (m *Machine) irqLine() bool {
	return m.Via.IRQ() || m.Disk.IRQ()
}

// attachStartup loads and attaches the startup program. Failures are
// deliberately not fatal: the machine boots bare, as the real one does with
// a faulty tape or disk, and the failure is logged.
func (m *Machine) attachStartup(ld *programloader.Loader) {
	if err := ld.Load(); err != nil {
		logger.Logf("machine", "startup program not attached: %v", err)
		return
	}

	var err error
	switch ld.Kind {
	case programloader.KindROM:
		err = m.AttachROM(ld.Data)
	case programloader.KindDisk:
		err = m.AttachDisk(ld.ShortName(), ld.Data)
	case programloader.KindTape:
		err = m.AttachTape(*ld)
	default:
		logger.Logf("machine", "startup program of unknown kind (%s)", ld.Kind)
		return
	}

	if err != nil {
		logger.Logf("machine", "startup program not attached: %v", err)
	}
}

// AttachROM overrides the machine's default ROM content before boot. An
// image the size of the pageable slot replaces the system ROM bank; an
// image twice that size also replaces the fixed OS ROM beneath it.
func (m *Machine) AttachROM(data []byte) error {
	if len(data) == int(memory.MemtopSlot-memory.OriginOS)+1 {
		if err := m.Mem.OS.Load(data[:int(memory.MemtopOS-memory.OriginOS)+1]); err != nil {
			return err
		}
		return m.Mem.Slot.Fit(0, data[int(memory.MemtopOS-memory.OriginOS)+1:])
	}
	return m.Mem.Slot.Fit(0, data)
}

// AttachDisk builds an image from a dump and mounts it. The machine does
// not boot the disk; that is the operating system's business once the
// machine runs.
func (m *Machine) AttachDisk(name string, dump []byte) error {
	img, err := disk.FromDump(name, dump)
	if err != nil {
		return err
	}
	return m.Disk.Mount(img)
}

// AttachTape quick loads a tape: the file blocks on it are poked directly
// into memory, sidestepping the real load process.
func (m *Machine) AttachTape(ld programloader.Loader) error {
	var blocks []programloader.Block
	var err error

	if ld.IsSoundData {
		blocks, err = programloader.DecodeAudioTape(ld)
	} else {
		blocks, err = programloader.ParseTape(ld.ShortName(), ld.Data)
	}
	if err != nil {
		return err
	}

	for _, b := range blocks {
		for i, d := range b.Data {
			m.Mem.Poke(b.Start+uint16(i), d)
		}
		logger.Logf("machine", "tape block %s loaded at %#04x", b.Name, b.Start)
	}

	return nil
}

// Reset the machine. ROM contents, mounted disks and the keyboard matrix
// survive a reset; the CPU restarts from the reset vector.
func (m *Machine) Reset() {
	m.CPU.Reset()
}

// Update runs the machine until the video chip completes exactly one
// frame. The chips step in a fixed order every machine cycle; the order is
// part of the machine's observable behaviour and never varies.
//
// The warp argument is a hint from the driver that it is running the
// machine as fast as possible. It does not change anything about how the
// frame is produced.
func (m *Machine) Update(warp bool) {
	for {
		frame := m.Ula.Step()
		m.CPU.Step()
		m.Via.Step()
		m.Disk.Step()

		if frame {
			m.FrameCount++
			return
		}
	}
}

// StepInstruction advances the machine by a single CPU instruction,
// keeping every chip in lockstep with the CPU. Frames completed during
// the instruction are counted as normal.
func (m *Machine) StepInstruction() {
	for {
		frame := m.Ula.Step()
		m.CPU.Step()
		m.Via.Step()
		m.Disk.Step()

		if frame {
			m.FrameCount++
		}
		if m.CPU.AtBoundary() {
			return
		}
	}
}

// GetFramePixels returns the most recently completed frame, or nil if no
// new frame has completed since the last call.
func (m *Machine) GetFramePixels() []uint8 {
	return m.Ula.GetFramePixels()
}
