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

package programloader

import (
	"github.com/jtallis/goric/curated"
)

// error messages from tape parsing.
const (
	NotATape = "programloader: %s: not a recognisable tape"
)

// tape stream framing bytes.
const (
	tapeSync      = 0x16
	tapeSyncMin   = 3
	tapeEndOfSync = 0x24
)

// Block is one file recovered from a tape: a span of bytes with the memory
// range it loads to.
type Block struct {
	Name    string
	Start   uint16
	End     uint16
	Autorun bool
	Data    []uint8
}

// ParseTape recovers the file blocks from a tape byte stream. A tape
// carries one or more files, each introduced by a run of sync bytes and a
// header giving the load addresses.
func ParseTape(name string, data []byte) ([]Block, error) {
	blocks := []Block{}

	i := 0
	for i < len(data) {
		// find a run of sync bytes
		run := 0
		for i < len(data) && data[i] == tapeSync {
			run++
			i++
		}
		if run < tapeSyncMin || i >= len(data) || data[i] != tapeEndOfSync {
			if len(blocks) > 0 {
				// trailing noise after the last file
				break
			}
			i++
			continue
		}
		i++

		// header: two reserved bytes, program type, autorun flag, end and
		// start addresses (big endian), one more reserved byte
		if i+9 > len(data) {
			break
		}
		autorun := data[i+3] != 0
		end := uint16(data[i+4])<<8 | uint16(data[i+5])
		start := uint16(data[i+6])<<8 | uint16(data[i+7])
		i += 9

		// filename, terminated by a zero byte
		j := i
		for j < len(data) && data[j] != 0 {
			j++
		}
		if j >= len(data) {
			break
		}
		blockName := string(data[i:j])
		i = j + 1

		if end < start {
			return nil, curated.Errorf(NotATape, name)
		}
		length := int(end) - int(start) + 1
		if i+length > len(data) {
			// a truncated final block still loads what is there
			length = len(data) - i
		}

		b := Block{
			Name:    blockName,
			Start:   start,
			End:     end,
			Autorun: autorun,
			Data:    make([]uint8, length),
		}
		copy(b.Data, data[i:i+length])
		blocks = append(blocks, b)
		i += length
	}

	if len(blocks) == 0 {
		return nil, curated.Errorf(NotATape, name)
	}

	return blocks, nil
}
