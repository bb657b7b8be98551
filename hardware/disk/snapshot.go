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
	"bytes"
	"encoding/binary"
	"io"

	"github.com/jtallis/goric/curated"
)

// error messages from snapshot decoding.
const (
	BadSnapshot = "disk: %s: snapshot does not decode"
)

// the fixed size register/state portion of a controller snapshot.
type controllerState struct {
	Status, Track, Sector, Data, Control uint8
	Head                                 int32
	State                                int32
	Countdown                            int32
	Target                               int32
	BufIdx                               int32
	Writing                              bool
	Intrq                                bool
}

// MarshalBinary implements the encoding.BinaryMarshaler interface. The
// mounted image, if any, is captured alongside the controller state so that
// an in-flight transfer survives the round trip.
func (dc *Controller) MarshalBinary() ([]byte, error) {
	b := &bytes.Buffer{}

	s := controllerState{
		Status: dc.status, Track: dc.track, Sector: dc.sector,
		Data: dc.data, Control: dc.control,
		Head:      int32(dc.head),
		State:     int32(dc.state),
		Countdown: int32(dc.countdown),
		Target:    int32(dc.target),
		BufIdx:    int32(dc.bufIdx),
		Writing:   dc.writing,
		Intrq:     dc.intrq,
	}
	_ = binary.Write(b, binary.LittleEndian, s)

	_ = binary.Write(b, binary.LittleEndian, uint32(len(dc.buffer)))
	b.Write(dc.buffer)

	if dc.image == nil {
		_ = binary.Write(b, binary.LittleEndian, false)
	} else {
		_ = binary.Write(b, binary.LittleEndian, true)
		img, err := dc.image.MarshalBinary()
		if err != nil {
			return nil, err
		}
		_ = binary.Write(b, binary.LittleEndian, uint32(len(img)))
		b.Write(img)
	}

	return b.Bytes(), nil
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface.
func (dc *Controller) UnmarshalBinary(data []byte) error {
	b := bytes.NewReader(data)

	var s controllerState
	if err := binary.Read(b, binary.LittleEndian, &s); err != nil {
		return curated.Errorf(BadSnapshot, "controller")
	}

	var bufLen uint32
	if err := binary.Read(b, binary.LittleEndian, &bufLen); err != nil {
		return curated.Errorf(BadSnapshot, "controller")
	}
	buffer := make([]uint8, bufLen)
	if _, err := io.ReadFull(b, buffer); err != nil {
		return curated.Errorf(BadSnapshot, "controller")
	}

	var mounted bool
	if err := binary.Read(b, binary.LittleEndian, &mounted); err != nil {
		return curated.Errorf(BadSnapshot, "controller")
	}

	var image *Image
	if mounted {
		var imgLen uint32
		if err := binary.Read(b, binary.LittleEndian, &imgLen); err != nil {
			return curated.Errorf(BadSnapshot, "image")
		}
		imgData := make([]byte, imgLen)
		if _, err := io.ReadFull(b, imgData); err != nil {
			return curated.Errorf(BadSnapshot, "image")
		}
		image = &Image{}
		if err := image.UnmarshalBinary(imgData); err != nil {
			return err
		}
	}

	dc.status, dc.track, dc.sector = s.Status, s.Track, s.Sector
	dc.data, dc.control = s.Data, s.Control
	dc.head = int(s.Head)
	dc.state = state(s.State)
	dc.countdown = int(s.Countdown)
	dc.target = int(s.Target)
	dc.bufIdx = int(s.BufIdx)
	dc.writing = s.Writing
	dc.intrq = s.Intrq
	if bufLen == 0 {
		dc.buffer = nil
	} else {
		dc.buffer = buffer
	}
	dc.image = image

	return nil
}

// MarshalBinary implements the encoding.BinaryMarshaler interface.
func (img *Image) MarshalBinary() ([]byte, error) {
	b := &bytes.Buffer{}

	name := []byte(img.name)
	_ = binary.Write(b, binary.LittleEndian, uint32(len(name)))
	b.Write(name)

	_ = binary.Write(b, binary.LittleEndian, int32(img.sides))
	_ = binary.Write(b, binary.LittleEndian, int32(img.tracks))
	_ = binary.Write(b, binary.LittleEndian, int32(img.sectorSize))
	_ = binary.Write(b, binary.LittleEndian, img.writeProtected)

	ids := img.sectorIDs()
	_ = binary.Write(b, binary.LittleEndian, uint32(len(ids)))
	for _, id := range ids {
		_ = binary.Write(b, binary.LittleEndian, int32(id.side))
		_ = binary.Write(b, binary.LittleEndian, int32(id.track))
		_ = binary.Write(b, binary.LittleEndian, int32(id.sector))
		s := img.sectors[id]
		_ = binary.Write(b, binary.LittleEndian, uint32(len(s)))
		b.Write(s)
	}

	return b.Bytes(), nil
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface.
func (img *Image) UnmarshalBinary(data []byte) error {
	b := bytes.NewReader(data)

	var nameLen uint32
	if err := binary.Read(b, binary.LittleEndian, &nameLen); err != nil {
		return curated.Errorf(BadSnapshot, "image")
	}
	name := make([]byte, nameLen)
	if _, err := io.ReadFull(b, name); err != nil {
		return curated.Errorf(BadSnapshot, "image")
	}

	var sides, tracks, sectorSize int32
	var protected bool
	if err := binary.Read(b, binary.LittleEndian, &sides); err != nil {
		return curated.Errorf(BadSnapshot, "image")
	}
	if err := binary.Read(b, binary.LittleEndian, &tracks); err != nil {
		return curated.Errorf(BadSnapshot, "image")
	}
	if err := binary.Read(b, binary.LittleEndian, &sectorSize); err != nil {
		return curated.Errorf(BadSnapshot, "image")
	}
	if err := binary.Read(b, binary.LittleEndian, &protected); err != nil {
		return curated.Errorf(BadSnapshot, "image")
	}

	var numSectors uint32
	if err := binary.Read(b, binary.LittleEndian, &numSectors); err != nil {
		return curated.Errorf(BadSnapshot, "image")
	}

	sectors := make(map[sectorID][]uint8, numSectors)
	for i := uint32(0); i < numSectors; i++ {
		var side, track, sector int32
		var size uint32
		if err := binary.Read(b, binary.LittleEndian, &side); err != nil {
			return curated.Errorf(BadSnapshot, "image")
		}
		if err := binary.Read(b, binary.LittleEndian, &track); err != nil {
			return curated.Errorf(BadSnapshot, "image")
		}
		if err := binary.Read(b, binary.LittleEndian, &sector); err != nil {
			return curated.Errorf(BadSnapshot, "image")
		}
		if err := binary.Read(b, binary.LittleEndian, &size); err != nil {
			return curated.Errorf(BadSnapshot, "image")
		}
		s := make([]uint8, size)
		if _, err := io.ReadFull(b, s); err != nil {
			return curated.Errorf(BadSnapshot, "image")
		}
		sectors[sectorID{int(side), int(track), int(sector)}] = s
	}

	img.name = string(name)
	img.sides = int(sides)
	img.tracks = int(tracks)
	img.sectorSize = int(sectorSize)
	img.writeProtected = protected
	img.sectors = sectors

	return nil
}
