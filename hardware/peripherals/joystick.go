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

package peripherals

// Direction enumerates the joystick's switches.
type Direction int

// List of valid Direction values.
const (
	Up Direction = iota
	Down
	Left
	Right
	Fire
	numDirections
)

// coordinate in the keyboard matrix.
type coord struct {
	row    int
	column int
}

// the default mapping puts the stick on the cursor keys and fire on the
// space bar.
var defaultMapping = [numDirections]coord{
	Up:    {row: 4, column: 3},
	Down:  {row: 4, column: 2},
	Left:  {row: 4, column: 0},
	Right: {row: 4, column: 1},
	Fire:  {row: 2, column: 0},
}

// Joystick maps stick movement onto keyboard matrix coordinates. While the
// joystick is disabled its events are dropped rather than queued.
type Joystick struct {
	matrix  *Keyboard
	mapping [numDirections]coord
	held    [numDirections]bool
	enabled bool
}

// NewJoystick is the preferred method of initialisation for the Joystick
// structure. The supplied keyboard is the matrix the stick's switches close.
func NewJoystick(matrix *Keyboard) *Joystick {
	return &Joystick{
		matrix:  matrix,
		mapping: defaultMapping,
		enabled: true,
	}
}

// Remap changes the matrix coordinate a direction closes.
func (j *Joystick) Remap(d Direction, row int, column int) {
	if d < 0 || d >= numDirections {
		return
	}
	j.mapping[d] = coord{row: row, column: column}
}

// SetEnabled turns the joystick on or off. Disabling releases anything the
// stick is holding in the matrix.
func (j *Joystick) SetEnabled(enabled bool) {
	if !enabled {
		for d := Direction(0); d < numDirections; d++ {
			if j.held[d] {
				j.Set(d, false)
			}
		}
	}
	j.enabled = enabled
}

// Set closes or opens the matrix switch mapped to the direction.
func (j *Joystick) Set(d Direction, held bool) {
	if d < 0 || d >= numDirections {
		return
	}
	if !j.enabled && held {
		return
	}
	j.held[d] = held
	c := j.mapping[d]
	if held {
		j.matrix.KeyDown(c.row, c.column)
	} else {
		j.matrix.KeyUp(c.row, c.column)
	}
}
