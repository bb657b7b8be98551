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

package peripherals_test

import (
	"testing"

	"github.com/jtallis/goric/hardware/peripherals"
	"github.com/jtallis/goric/test"
)

func TestKeyboardMatrix(t *testing.T) {
	k := peripherals.NewKeyboard()

	test.Equate(t, k.RowState(3), 0x00)

	k.KeyDown(3, 5)
	test.Equate(t, k.RowState(3), 0x20)

	// a second key in the same row
	k.KeyDown(3, 0)
	test.Equate(t, k.RowState(3), 0x21)

	// other rows unaffected
	test.Equate(t, k.RowState(2), 0x00)

	k.KeyUp(3, 5)
	test.Equate(t, k.RowState(3), 0x01)

	k.Reset()
	test.Equate(t, k.RowState(3), 0x00)
}

func TestKeyboardBounds(t *testing.T) {
	k := peripherals.NewKeyboard()

	// out of range coordinates are dropped
	k.KeyDown(9, 0)
	k.KeyDown(0, 9)
	k.KeyDown(-1, -1)
	for r := 0; r < peripherals.NumRows; r++ {
		test.Equate(t, k.RowState(r), 0x00)
	}
}

func TestJoystick(t *testing.T) {
	k := peripherals.NewKeyboard()
	j := peripherals.NewJoystick(k)

	j.Set(peripherals.Fire, true)
	test.Equate(t, k.RowState(2), 0x01)

	j.Set(peripherals.Fire, false)
	test.Equate(t, k.RowState(2), 0x00)
}

func TestJoystickDisable(t *testing.T) {
	k := peripherals.NewKeyboard()
	j := peripherals.NewJoystick(k)

	j.Set(peripherals.Left, true)
	test.Equate(t, k.RowState(4), 0x01)

	// disabling releases the held direction
	j.SetEnabled(false)
	test.Equate(t, k.RowState(4), 0x00)

	// and further events are dropped
	j.Set(peripherals.Right, true)
	test.Equate(t, k.RowState(4), 0x00)

	j.SetEnabled(true)
	j.Set(peripherals.Right, true)
	test.Equate(t, k.RowState(4), 0x02)
}

func TestJoystickRemap(t *testing.T) {
	k := peripherals.NewKeyboard()
	j := peripherals.NewJoystick(k)

	j.Remap(peripherals.Fire, 6, 7)
	j.Set(peripherals.Fire, true)
	test.Equate(t, k.RowState(6), 0x80)
	test.Equate(t, k.RowState(2), 0x00)
}

func TestStateRoundTrip(t *testing.T) {
	k := peripherals.NewKeyboard()
	k.KeyDown(1, 1)
	k.KeyDown(7, 7)

	s := k.SaveState()

	w := peripherals.NewKeyboard()
	w.LoadState(s)
	test.Equate(t, w.RowState(1), 0x02)
	test.Equate(t, w.RowState(7), 0x80)
}
