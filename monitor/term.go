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

package monitor

import (
	"fmt"
	"os"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

// list of ASCII codes for the non-alphanumeric characters the monitor
// responds to.
const (
	keyCtrlC          = 3
	keyCarriageReturn = 13
	keyLineFeed       = 10
	keyEsc            = 27
	keyBackspace      = 127
)

// terminal wraps "github.com/pkg/term/termios", giving the termios
// methods friendlier names and remembering the attributes needed to
// switch between canonical and cbreak modes.
type terminal struct {
	input  *os.File
	output *os.File

	canAttr    unix.Termios
	cbreakAttr unix.Termios
}

// initialise the fields in the terminal struct.
func (pt *terminal) initialise(inputFile, outputFile *os.File) error {
	if inputFile == nil || outputFile == nil {
		return fmt.Errorf("terminal requires input and output files")
	}

	pt.input = inputFile
	pt.output = outputFile

	// prepare the attributes for the terminal modes we'll be using
	if err := termios.Tcgetattr(pt.input.Fd(), &pt.canAttr); err != nil {
		return err
	}
	termios.Cfmakecbreak(&pt.cbreakAttr)

	return nil
}

// canonicalMode puts terminal into normal, everyday canonical mode.
func (pt *terminal) canonicalMode() {
	termios.Tcsetattr(pt.input.Fd(), termios.TCIFLUSH, &pt.canAttr)
}

// cbreakMode puts terminal into cbreak mode.
func (pt *terminal) cbreakMode() {
	termios.Tcsetattr(pt.input.Fd(), termios.TCIFLUSH, &pt.cbreakAttr)
}

// print writes the formatted string to the output file.
func (pt *terminal) print(s string, a ...interface{}) {
	fmt.Fprintf(pt.output, s, a...)
	pt.output.Sync()
}

// readLine reads a line of input a byte at a time, echoing as it goes.
// Intended for use in cbreak mode. Returns false if the session has been
// interrupted with ctrl-c.
func (pt *terminal) readLine() (string, bool) {
	line := make([]byte, 0, 64)
	b := make([]byte, 1)

	for {
		n, err := pt.input.Read(b)
		if err != nil || n == 0 {
			return string(line), false
		}

		switch b[0] {
		case keyCtrlC:
			pt.print("\n")
			return string(line), false

		case keyCarriageReturn, keyLineFeed:
			pt.print("\n")
			return string(line), true

		case keyBackspace:
			if len(line) > 0 {
				line = line[:len(line)-1]
				pt.print("\b \b")
			}

		case keyEsc:
			// swallow. no cursor handling in the monitor

		default:
			if b[0] >= 32 && b[0] < 127 {
				line = append(line, b[0])
				pt.print("%c", b[0])
			}
		}
	}
}
