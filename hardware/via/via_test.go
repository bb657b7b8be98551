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

package via_test

import (
	"testing"

	"github.com/jtallis/goric/hardware/via"
	"github.com/jtallis/goric/test"
)

type mockKeyboard struct {
	rows [8]uint8
}

func (k *mockKeyboard) RowState(row int) uint8 {
	return k.rows[row]
}

// stepN runs the chip for n cycles.
func stepN(v *via.Via, n int) {
	for i := 0; i < n; i++ {
		v.Step()
	}
}

func TestTimer1OneShot(t *testing.T) {
	v := via.NewVia()

	// enable timer 1 interrupt
	v.ChipWrite(via.IER, 0x80|via.IntT1)

	// load timer with 10. the interrupt fires on the cycle after the
	// counter passes zero: 10+1 cycles
	v.ChipWrite(via.T1CL, 10)
	v.ChipWrite(via.T1CH, 0)

	stepN(v, 10)
	test.ExpectedFailure(t, v.IRQ())

	v.Step()
	test.ExpectedSuccess(t, v.IRQ())

	// one shot: clearing the flag, no further interrupts
	test.Equate(t, v.ChipRead(via.IFR)&via.IntT1, via.IntT1)
	v.ChipWrite(via.IFR, via.IntT1)
	test.ExpectedFailure(t, v.IRQ())

	stepN(v, 0x20000)
	test.ExpectedFailure(t, v.IRQ())
}

func TestTimer1Continuous(t *testing.T) {
	v := via.NewVia()

	v.ChipWrite(via.IER, 0x80|via.IntT1)
	v.ChipWrite(via.ACR, 0x40)

	v.ChipWrite(via.T1CL, 99)
	v.ChipWrite(via.T1CH, 0)

	// the first interval is 99+1 cycles; each subsequent interval is the
	// same because the counter reloads from the latch
	for i := 0; i < 5; i++ {
		stepN(v, 99)
		test.ExpectedFailure(t, v.IRQ())
		v.Step()
		test.ExpectedSuccess(t, v.IRQ())

		// reading the low order counter clears the flag
		_ = v.ChipRead(via.T1CL)
		test.ExpectedFailure(t, v.IRQ())
	}
}

func TestTimer1Masked(t *testing.T) {
	v := via.NewVia()

	// flag is set even with the interrupt disabled; the IRQ line stays low
	v.ChipWrite(via.T1CL, 5)
	v.ChipWrite(via.T1CH, 0)

	stepN(v, 6)
	test.Equate(t, v.ChipRead(via.IFR)&via.IntT1, via.IntT1)
	test.ExpectedFailure(t, v.IRQ())

	// enabling the interrupt with the flag already set asserts the line
	// immediately
	v.ChipWrite(via.IER, 0x80|via.IntT1)
	test.ExpectedSuccess(t, v.IRQ())
}

func TestTimer2(t *testing.T) {
	v := via.NewVia()

	v.ChipWrite(via.IER, 0x80|via.IntT2)
	v.ChipWrite(via.T2CL, 0x10)
	v.ChipWrite(via.T2CH, 0x00)

	stepN(v, 0x10)
	test.ExpectedFailure(t, v.IRQ())
	v.Step()
	test.ExpectedSuccess(t, v.IRQ())

	// timer 2 is always one shot
	_ = v.ChipRead(via.T2CL)
	stepN(v, 0x20000)
	test.ExpectedFailure(t, v.IRQ())
}

func TestInterruptEnableProtocol(t *testing.T) {
	v := via.NewVia()

	// set bits with bit seven high
	v.ChipWrite(via.IER, 0x80|via.IntT1|via.IntCB1)
	test.Equate(t, v.ChipRead(via.IER), 0x80|via.IntT1|via.IntCB1)

	// clear bits with bit seven low
	v.ChipWrite(via.IER, via.IntCB1)
	test.Equate(t, v.ChipRead(via.IER), 0x80|via.IntT1)
}

func TestIFRSummaryBit(t *testing.T) {
	v := via.NewVia()

	v.ChipWrite(via.T1CL, 2)
	v.ChipWrite(via.T1CH, 0)
	stepN(v, 3)

	// flag set, interrupt not enabled: no summary bit
	test.Equate(t, v.ChipRead(via.IFR), via.IntT1)

	v.ChipWrite(via.IER, 0x80|via.IntT1)
	test.Equate(t, v.ChipRead(via.IFR), 0x80|via.IntT1)
}

func TestCB1Edge(t *testing.T) {
	v := via.NewVia()
	v.ChipWrite(via.IER, 0x80|via.IntCB1)

	// PCR bit four clear: negative edges are active
	v.CB1(true)
	test.ExpectedFailure(t, v.IRQ())
	v.CB1(false)
	test.ExpectedSuccess(t, v.IRQ())

	// reading port B clears the flag
	_ = v.ChipRead(via.ORB)
	test.ExpectedFailure(t, v.IRQ())

	// positive edges with PCR bit four set
	v.ChipWrite(via.PCR, 0x10)
	v.CB1(true)
	test.ExpectedSuccess(t, v.IRQ())
}

func TestKeyboardRowSelect(t *testing.T) {
	v := via.NewVia()
	k := &mockKeyboard{}
	v.AttachKeyboard(k)

	// port A all inputs
	v.ChipWrite(via.DDRA, 0x00)

	// hold a key in row three
	k.rows[3] = 0x08

	// select row three through the low bits of port B
	v.ChipWrite(via.ORB, 0x03)
	test.Equate(t, v.ChipRead(via.ORA), 0xf7)

	// a row with nothing held reads all high
	v.ChipWrite(via.ORB, 0x05)
	test.Equate(t, v.ChipRead(via.ORA), 0xff)
}

func TestStateRoundTrip(t *testing.T) {
	v := via.NewVia()

	v.ChipWrite(via.IER, 0x80|via.IntT1)
	v.ChipWrite(via.ACR, 0x40)
	v.ChipWrite(via.T1CL, 0x34)
	v.ChipWrite(via.T1CH, 0x12)
	stepN(v, 0x100)

	s := v.SaveState()

	w := via.NewVia()
	w.LoadState(s)
	test.Equate(t, w.ChipRead(via.ACR), 0x40)
	test.Equate(t, w.ChipRead(via.T1CH), v.ChipRead(via.T1CH))
	test.Equate(t, w.ChipRead(via.T1CL), v.ChipPeek(via.T1CL))
}
