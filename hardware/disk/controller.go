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

package disk

import (
	"github.com/jtallis/goric/curated"
	"github.com/jtallis/goric/hardware/memory"
	"github.com/jtallis/goric/logger"
)

// error messages from the controller.
const (
	MountBusy = "disk: cannot mount %s: controller is busy"
)

// Register addresses, relative to the chip window. The command register
// reads back as the status register.
const (
	Command = uint16(0x00)
	Track   = uint16(0x01)
	Sector  = uint16(0x02)
	Data    = uint16(0x03)
	Control = uint16(0x04)
)

// Status register bits.
const (
	StatusBusy         = uint8(0x01)
	StatusDRQ          = uint8(0x02)
	StatusTrack0       = uint8(0x04)
	StatusCRCError     = uint8(0x08)
	StatusNotFound     = uint8(0x10)
	StatusWriteProtect = uint8(0x40)
)

// Control register bits.
const (
	// completion interrupts are delivered only when enabled
	CtrlIRQEnable = uint8(0x01)

	// selects the pageable ROM slot bank: set for the system ROM, clear
	// for the controller's boot EPROM
	CtrlROMSelect = uint8(0x02)

	// which side of the disk the head is over
	CtrlSide = uint8(0x10)
)

// Latency constants, in machine cycles.
const (
	cyclesPerTrackStep = 500
	cyclesPerByte      = 32
	minSeekCycles      = 100
)

type state int

const (
	stateIdle state = iota
	stateSeeking
	stateTransferring
)

// Controller is the machine's floppy disk controller. It processes commands
// written through its chip window, modelling seek and transfer latency with
// cycle countdowns, and reports outcomes through its status register. Disk
// errors are status bits, never faults; emulation always continues.
//
// The controller also owns the machine's ROM bank selection: bits in its
// control register switch the pageable ROM slot between the system ROM and
// the controller's boot EPROM.
type Controller struct {
	image  *Image
	banker memory.Banker

	status  uint8
	track   uint8
	sector  uint8
	data    uint8
	control uint8

	// physical head position, which the track register shadows only after
	// a seek completes
	head int

	state     state
	countdown int

	// seek target
	target int

	// sector transfer in progress
	buffer  []uint8
	bufIdx  int
	writing bool

	// completion interrupt latch, gated by CtrlIRQEnable
	intrq bool
}

// NewController is the preferred method of initialisation for the
// Controller structure. The banker is the pageable ROM slot that the
// control register switches; it may be nil when no slot is fitted.
func NewController(banker memory.Banker) *Controller {
	return &Controller{
		banker: banker,
		status: StatusTrack0,
	}
}

// Mount inserts a disk image. Fails with a busy condition if the controller
// is mid-command; the in-flight operation is unaffected.
func (dc *Controller) Mount(image *Image) error {
	if dc.state != stateIdle {
		return curated.Errorf(MountBusy, image.name)
	}
	dc.image = image
	logger.Logf("disk", "mounted %s", image.name)
	return nil
}

// Eject removes the mounted image. As with Mount(), fails if the controller
// is busy.
func (dc *Controller) Eject() error {
	if dc.state != stateIdle {
		return curated.Errorf(MountBusy, "(eject)")
	}
	dc.image = nil
	return nil
}

// Image returns the mounted image, or nil.
func (dc *Controller) Image() *Image {
	return dc.image
}

// IRQ returns the state of the controller's interrupt output. The
// completion latch only reaches the CPU when interrupts are enabled in the
// control register.
func (dc *Controller) IRQ() bool {
	return dc.intrq && dc.control&CtrlIRQEnable == CtrlIRQEnable
}

// side of the disk selected by the control register.
func (dc *Controller) side() int {
	if dc.control&CtrlSide == CtrlSide {
		return 1
	}
	return 0
}

// Step runs the controller for one machine cycle, advancing whatever
// command is in flight.
func (dc *Controller) Step() {
	if dc.state == stateIdle {
		return
	}

	dc.countdown--
	if dc.countdown > 0 {
		return
	}

	switch dc.state {
	case stateSeeking:
		dc.completeSeek()
	case stateTransferring:
		dc.advanceTransfer()
	}
}

func (dc *Controller) completeSeek() {
	dc.head = dc.target
	dc.track = uint8(dc.head)
	dc.status &^= StatusBusy
	if dc.head == 0 {
		dc.status |= StatusTrack0
	} else {
		dc.status &^= StatusTrack0
	}

	if dc.image == nil {
		dc.status |= StatusNotFound
	} else {
		_, tracks := dc.image.Geometry()
		if dc.head >= tracks {
			dc.status |= StatusNotFound
		}
	}

	dc.state = stateIdle
	dc.intrq = true
}

// advanceTransfer moves one byte between the data register and the sector
// buffer, or concludes the transfer when the buffer is exhausted.
func (dc *Controller) advanceTransfer() {
	if dc.writing {
		if dc.bufIdx >= len(dc.buffer) {
			// the buffer content was collected through the data register;
			// commit it to the image
			err := dc.image.WriteSector(dc.side(), dc.head, int(dc.sector), dc.buffer)
			if err != nil {
				dc.status |= StatusWriteProtect
			}
			dc.concludeTransfer()
			return
		}
		// waiting on the CPU to supply the next byte. DRQ remains set
		dc.status |= StatusDRQ
		dc.countdown = cyclesPerByte
		return
	}

	if dc.bufIdx >= len(dc.buffer) {
		dc.concludeTransfer()
		return
	}

	// next byte becomes readable
	dc.data = dc.buffer[dc.bufIdx]
	dc.bufIdx++
	dc.status |= StatusDRQ
	dc.countdown = cyclesPerByte
}

func (dc *Controller) concludeTransfer() {
	dc.status &^= StatusBusy | StatusDRQ
	dc.state = stateIdle
	dc.buffer = nil
	dc.intrq = true
}

// beginCommand initialises common command state.
func (dc *Controller) beginCommand() {
	dc.status = StatusBusy
	dc.intrq = false
	dc.writing = false
	dc.buffer = nil
}

func (dc *Controller) seekTo(target int) {
	dc.beginCommand()
	dc.target = target

	distance := target - dc.head
	if distance < 0 {
		distance = -distance
	}
	dc.countdown = distance * cyclesPerTrackStep
	if dc.countdown < minSeekCycles {
		dc.countdown = minSeekCycles
	}
	dc.state = stateSeeking
}

// beginTransfer starts a sector read or write. A missing image or sector
// concludes immediately with the not found bit; a write to a protected
// image concludes with the write protect bit.
func (dc *Controller) beginTransfer(writing bool) {
	dc.beginCommand()

	if dc.image == nil {
		dc.status = StatusNotFound
		dc.intrq = true
		return
	}

	if writing {
		if dc.image.WriteProtected() {
			dc.status = StatusWriteProtect
			dc.intrq = true
			return
		}
		dc.writing = true
		dc.buffer = make([]uint8, dc.image.SectorSize())
		dc.bufIdx = 0
		dc.status |= StatusDRQ
		dc.state = stateTransferring
		dc.countdown = cyclesPerByte
		return
	}

	s, ok := dc.image.Sector(dc.side(), dc.head, int(dc.sector))
	if !ok {
		dc.status = StatusNotFound
		dc.intrq = true
		return
	}

	dc.buffer = s
	dc.bufIdx = 0
	dc.state = stateTransferring
	dc.countdown = cyclesPerByte
}

// command decodes and begins a command. Commands arriving while the
// controller is busy are dropped, except for the force interrupt command
// which always terminates whatever is in flight.
func (dc *Controller) command(data uint8) {
	if data&0xf0 == 0xd0 {
		// force interrupt
		dc.state = stateIdle
		dc.buffer = nil
		dc.status &^= StatusBusy | StatusDRQ
		dc.intrq = true
		return
	}

	if dc.state != stateIdle {
		return
	}

	switch {
	case data&0xf0 == 0x00:
		// restore: seek to track zero
		dc.seekTo(0)

	case data&0xf0 == 0x10:
		// seek: target track is in the data register
		dc.seekTo(int(dc.data))

	case data&0xe0 == 0x80:
		dc.beginTransfer(false)

	case data&0xe0 == 0xa0:
		dc.beginTransfer(true)

	default:
		logger.Logf("disk", "unsupported command (%#02x)", data)
		dc.intrq = true
	}
}

// ChipRead is an implementation of the memory.ChipBus interface.
func (dc *Controller) ChipRead(register uint16) uint8 {
	switch register {
	case Command:
		// reading status clears the completion interrupt
		dc.intrq = false
		return dc.status
	case Track:
		return dc.track
	case Sector:
		return dc.sector
	case Data:
		dc.status &^= StatusDRQ
		return dc.data
	case Control:
		return dc.control
	}
	return 0
}

// ChipWrite is an implementation of the memory.ChipBus interface.
func (dc *Controller) ChipWrite(register uint16, data uint8) {
	switch register {
	case Command:
		dc.command(data)
	case Track:
		dc.track = data
	case Sector:
		dc.sector = data
	case Data:
		if dc.writing && dc.status&StatusDRQ == StatusDRQ && dc.bufIdx < len(dc.buffer) {
			dc.buffer[dc.bufIdx] = data
			dc.bufIdx++
			dc.status &^= StatusDRQ
		}
		dc.data = data
	case Control:
		dc.control = data
		if dc.banker != nil {
			if data&CtrlROMSelect == CtrlROMSelect {
				dc.banker.SelectBank(0)
			} else {
				dc.banker.SelectBank(1)
			}
		}
	}
}

// ChipPeek is an implementation of the memory.ChipBus interface. Registers
// are read without the side effects of a bus access.
func (dc *Controller) ChipPeek(register uint16) uint8 {
	switch register {
	case Command:
		return dc.status
	case Track:
		return dc.track
	case Sector:
		return dc.sector
	case Data:
		return dc.data
	case Control:
		return dc.control
	}
	return 0
}
