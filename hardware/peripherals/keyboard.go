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

// Package peripherals implements the machine's input devices. The keyboard
// is an eight by eight switch matrix addressed by (row, column); the I/O
// chip selects a row and senses which of its switches are closed. The
// joystick has no lines of its own on this machine; its directions and fire
// button close switches in the same matrix.
package peripherals

// matrix dimensions.
const (
	NumRows    = 8
	NumColumns = 8
)

// Keyboard is the state of the keyboard switch matrix.
type Keyboard struct {
	rows [NumRows]uint8
}

// NewKeyboard is the preferred method of initialisation for the Keyboard
// structure. All switches begin open.
func NewKeyboard() *Keyboard {
	return &Keyboard{}
}

// KeyDown closes the switch at the matrix coordinate. Out of range
// coordinates are ignored.
func (k *Keyboard) KeyDown(row int, column int) {
	if row < 0 || row >= NumRows || column < 0 || column >= NumColumns {
		return
	}
	k.rows[row] |= 1 << column
}

// KeyUp opens the switch at the matrix coordinate.
func (k *Keyboard) KeyUp(row int, column int) {
	if row < 0 || row >= NumRows || column < 0 || column >= NumColumns {
		return
	}
	k.rows[row] &^= 1 << column
}

// Reset opens every switch in the matrix.
func (k *Keyboard) Reset() {
	k.rows = [NumRows]uint8{}
}

// RowState is an implementation of the via.RowReader interface. A set bit
// means the switch in that column of the selected row is closed.
func (k *Keyboard) RowState(row int) uint8 {
	return k.rows[row&0x07]
}

// SaveState returns the serialisable state of the matrix.
func (k *Keyboard) SaveState() [NumRows]uint8 {
	return k.rows
}

// LoadState restores matrix state saved with SaveState().
func (k *Keyboard) LoadState(rows [NumRows]uint8) {
	k.rows = rows
}
