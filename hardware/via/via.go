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

package via

// Register addresses, relative to the chip window.
const (
	ORB uint16 = iota
	ORA
	DDRB
	DDRA
	T1CL
	T1CH
	T1LL
	T1LH
	T2CL
	T2CH
	SR
	ACR
	PCR
	IFR
	IER
	ORAnh
)

// Bits in the interrupt flag and interrupt enable registers.
const (
	IntCA2 = uint8(0x01)
	IntCA1 = uint8(0x02)
	IntSR  = uint8(0x04)
	IntCB2 = uint8(0x08)
	IntCB1 = uint8(0x10)
	IntT2  = uint8(0x20)
	IntT1  = uint8(0x40)
)

// RowReader is how the VIA senses the keyboard matrix. RowState returns the
// bit pattern of held keys in the selected row.
type RowReader interface {
	RowState(row int) uint8
}

// Via is the 6522 versatile interface adapter. The machine's timers and the
// keyboard hang off it; it is also the machine's main interrupt source.
//
// The chip is driven one machine cycle at a time with the Step() function.
type Via struct {
	// port registers
	orb   uint8
	ora   uint8
	ddrb  uint8
	ddra  uint8
	sr    uint8
	acr   uint8
	pcr   uint8
	ifr   uint8
	ier   uint8

	// timer 1. the counter is wider than 16 bits so that the fire point is
	// one cycle after the counter passes zero
	t1Counter int
	t1Latch   uint16
	t1Fired   bool

	// timer 2
	t2Counter int
	t2Latch   uint16
	t2Fired   bool

	// state of the CB1 input line (vertical sync from the video chip)
	cb1 bool

	keyboard RowReader
}

// NewVia is the preferred method of initialisation for the Via structure.
func NewVia() *Via {
	return &Via{
		t1Counter: 0xffff,
		t2Counter: 0xffff,
		t1Fired:   true,
		t2Fired:   true,
	}
}

// AttachKeyboard connects the keyboard matrix to port A.
func (v *Via) AttachKeyboard(k RowReader) {
	v.keyboard = k
}

// IRQ returns the state of the chip's interrupt output: asserted whenever an
// enabled interrupt flag is set.
func (v *Via) IRQ() bool {
	return v.ifr&v.ier&0x7f != 0
}

// Step runs the chip for one machine cycle, counting down both timers.
func (v *Via) Step() {
	v.t1Counter--
	if v.t1Counter < 0 {
		if v.acr&0x40 == 0x40 {
			// continuous mode: the timer reloads from the latch and
			// interrupts on every pass
			v.t1Counter = int(v.t1Latch)
			v.ifr |= IntT1
		} else {
			// one shot: a single interrupt, then the counter free runs
			if !v.t1Fired {
				v.t1Fired = true
				v.ifr |= IntT1
			}
			v.t1Counter = 0xffff
		}
	}

	v.t2Counter--
	if v.t2Counter < 0 {
		// timer 2 is always one shot
		if !v.t2Fired {
			v.t2Fired = true
			v.ifr |= IntT2
		}
		v.t2Counter = 0xffff
	}
}

// CB1 drives the chip's CB1 input line. An active transition, as selected by
// the PCR, sets the corresponding interrupt flag. The video chip uses this
// line to signal vertical sync.
func (v *Via) CB1(level bool) {
	if level != v.cb1 {
		positive := v.pcr&0x10 == 0x10
		if level == positive {
			v.ifr |= IntCB1
		}
	}
	v.cb1 = level
}

// selected keyboard row. the low three bits of port B drive the row lines.
func (v *Via) row() int {
	return int(v.orb & 0x07)
}

// portA returns the input state of port A: the inverted state of the
// selected keyboard row.
func (v *Via) portA() uint8 {
	if v.keyboard == nil {
		return 0xff
	}
	return ^v.keyboard.RowState(v.row())
}

// ChipRead is an implementation of the memory.ChipBus interface.
func (v *Via) ChipRead(register uint16) uint8 {
	switch register {
	case ORB:
		v.ifr &^= IntCB1 | IntCB2
		return v.orb

	case ORA:
		v.ifr &^= IntCA1 | IntCA2
		fallthrough
	case ORAnh:
		// input pins override the output register where the data direction
		// is set to input
		return (v.ora & v.ddra) | (v.portA() &^ v.ddra)

	case DDRB:
		return v.ddrb
	case DDRA:
		return v.ddra

	case T1CL:
		v.ifr &^= IntT1
		return uint8(v.t1Counter & 0xff)
	case T1CH:
		return uint8((v.t1Counter >> 8) & 0xff)
	case T1LL:
		return uint8(v.t1Latch & 0xff)
	case T1LH:
		return uint8(v.t1Latch >> 8)

	case T2CL:
		v.ifr &^= IntT2
		return uint8(v.t2Counter & 0xff)
	case T2CH:
		return uint8((v.t2Counter >> 8) & 0xff)

	case SR:
		v.ifr &^= IntSR
		return v.sr
	case ACR:
		return v.acr
	case PCR:
		return v.pcr

	case IFR:
		r := v.ifr & 0x7f
		if v.IRQ() {
			r |= 0x80
		}
		return r

	case IER:
		return v.ier | 0x80
	}

	return 0
}

// ChipWrite is an implementation of the memory.ChipBus interface.
func (v *Via) ChipWrite(register uint16, data uint8) {
	switch register {
	case ORB:
		v.ifr &^= IntCB1 | IntCB2
		v.orb = data

	case ORA:
		v.ifr &^= IntCA1 | IntCA2
		v.ora = data
	case ORAnh:
		v.ora = data

	case DDRB:
		v.ddrb = data
	case DDRA:
		v.ddra = data

	case T1CL, T1LL:
		v.t1Latch = (v.t1Latch & 0xff00) | uint16(data)

	case T1CH:
		// loading the high order counter starts the timer from the full
		// latch value and clears any previous timer 1 interrupt
		v.t1Latch = (v.t1Latch & 0x00ff) | (uint16(data) << 8)
		v.t1Counter = int(v.t1Latch)
		v.t1Fired = false
		v.ifr &^= IntT1

	case T1LH:
		v.t1Latch = (v.t1Latch & 0x00ff) | (uint16(data) << 8)
		v.ifr &^= IntT1

	case T2CL:
		v.t2Latch = (v.t2Latch & 0xff00) | uint16(data)

	case T2CH:
		v.t2Latch = (v.t2Latch & 0x00ff) | (uint16(data) << 8)
		v.t2Counter = int(v.t2Latch)
		v.t2Fired = false
		v.ifr &^= IntT2

	case SR:
		v.sr = data
	case ACR:
		v.acr = data
	case PCR:
		v.pcr = data

	case IFR:
		// writing a one clears the corresponding flag. bit seven is not a
		// real flag and cannot be cleared directly
		v.ifr &^= data & 0x7f

	case IER:
		if data&0x80 == 0x80 {
			v.ier |= data & 0x7f
		} else {
			v.ier &^= data & 0x7f
		}
	}
}

// State is the serialisable state of the chip. All fields are fixed size
// for the benefit of the snapshot encoder.
type State struct {
	ORB, ORA, DDRB, DDRA uint8
	SR, ACR, PCR         uint8
	IFR, IER             uint8
	T1Counter            int32
	T1Latch              uint16
	T1Fired              bool
	T2Counter            int32
	T2Latch              uint16
	T2Fired              bool
	CB1                  bool
}

// SaveState returns the serialisable state of the chip.
func (v *Via) SaveState() State {
	return State{
		ORB: v.orb, ORA: v.ora, DDRB: v.ddrb, DDRA: v.ddra,
		SR: v.sr, ACR: v.acr, PCR: v.pcr,
		IFR: v.ifr, IER: v.ier,
		T1Counter: int32(v.t1Counter), T1Latch: v.t1Latch, T1Fired: v.t1Fired,
		T2Counter: int32(v.t2Counter), T2Latch: v.t2Latch, T2Fired: v.t2Fired,
		CB1: v.cb1,
	}
}

// LoadState restores chip state saved with SaveState().
func (v *Via) LoadState(s State) {
	v.orb, v.ora, v.ddrb, v.ddra = s.ORB, s.ORA, s.DDRB, s.DDRA
	v.sr, v.acr, v.pcr = s.SR, s.ACR, s.PCR
	v.ifr, v.ier = s.IFR, s.IER
	v.t1Counter, v.t1Latch, v.t1Fired = int(s.T1Counter), s.T1Latch, s.T1Fired
	v.t2Counter, v.t2Latch, v.t2Fired = int(s.T2Counter), s.T2Latch, s.T2Fired
	v.cb1 = s.CB1
}

// ChipPeek is an implementation of the memory.ChipBus interface. Registers
// are read without the side effects of a bus access.
func (v *Via) ChipPeek(register uint16) uint8 {
	switch register {
	case ORB:
		return v.orb
	case ORA, ORAnh:
		return (v.ora & v.ddra) | (v.portA() &^ v.ddra)
	case T1CL:
		return uint8(v.t1Counter & 0xff)
	case T2CL:
		return uint8(v.t2Counter & 0xff)
	case SR:
		return v.sr
	case IFR:
		r := v.ifr & 0x7f
		if v.IRQ() {
			r |= 0x80
		}
		return r
	}
	return v.ChipRead(register)
}
