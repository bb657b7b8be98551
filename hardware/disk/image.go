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
	"sort"

	"github.com/jtallis/goric/curated"
)

// error messages from image handling.
const (
	UnrecognisedImage = "disk: %s: unrecognised image format"
	NoSuchSector      = "disk: no sector (side %d, track %d, sector %d)"
	ImageProtected    = "disk: %s: image is write protected"
)

// default geometry for raw sector dumps.
const (
	rawSectorsPerTrack = 17
	rawSectorSize      = 256
)

// marks and layout constants of the MFM image format.
const (
	mfmSignature  = "MFM_DISK"
	mfmTrackSize  = 6400
	mfmDataOffset = 256
	idAddressMark = 0xfe
	dataMark      = 0xfb
)

type sectorID struct {
	side   int
	track  int
	sector int
}

// Image is a mounted disk: a collection of addressable sectors plus the
// geometry the controller uses for seek timing and bounds checks.
type Image struct {
	name           string
	sides          int
	tracks         int
	sectorSize     int
	writeProtected bool

	sectors map[sectorID][]uint8
}

// NewImage creates a blank, fully formatted image. Sector numbering starts
// at zero.
func NewImage(name string, sides int, tracks int, sectorsPerTrack int) *Image {
	img := &Image{
		name:       name,
		sides:      sides,
		tracks:     tracks,
		sectorSize: rawSectorSize,
		sectors:    make(map[sectorID][]uint8),
	}
	for sd := 0; sd < sides; sd++ {
		for tr := 0; tr < tracks; tr++ {
			for sc := 0; sc < sectorsPerTrack; sc++ {
				img.sectors[sectorID{sd, tr, sc}] = make([]uint8, rawSectorSize)
			}
		}
	}
	return img
}

// FromDump builds an Image from the bytes of an image file. Two formats are
// recognised: the MFM container (identified by its signature) and a raw
// concatenation of sectors in standard geometry.
func FromDump(name string, dump []byte) (*Image, error) {
	if len(dump) > len(mfmSignature) && string(dump[:len(mfmSignature)]) == mfmSignature {
		return fromMFM(name, dump)
	}

	trackSize := rawSectorsPerTrack * rawSectorSize
	if len(dump) == 0 || len(dump)%trackSize != 0 {
		return nil, curated.Errorf(UnrecognisedImage, name)
	}

	img := NewImage(name, 1, len(dump)/trackSize, rawSectorsPerTrack)
	for i := 0; i < len(dump); i += rawSectorSize {
		tr := i / trackSize
		sc := (i % trackSize) / rawSectorSize
		copy(img.sectors[sectorID{0, tr, sc}], dump[i:i+rawSectorSize])
	}
	return img, nil
}

// fromMFM decodes the MFM container: a header giving side and track counts
// followed by fixed size blocks of raw track data. Sectors are recovered by
// scanning each block for ID address marks.
func fromMFM(name string, dump []byte) (*Image, error) {
	if len(dump) < mfmDataOffset {
		return nil, curated.Errorf(UnrecognisedImage, name)
	}

	sides := int(uint32(dump[8]) | uint32(dump[9])<<8 | uint32(dump[10])<<16 | uint32(dump[11])<<24)
	tracks := int(uint32(dump[12]) | uint32(dump[13])<<8 | uint32(dump[14])<<16 | uint32(dump[15])<<24)

	if sides < 1 || sides > 2 || tracks < 1 || tracks > 128 {
		return nil, curated.Errorf(UnrecognisedImage, name)
	}
	if len(dump) < mfmDataOffset+sides*tracks*mfmTrackSize {
		return nil, curated.Errorf(UnrecognisedImage, name)
	}

	img := &Image{
		name:       name,
		sides:      sides,
		tracks:     tracks,
		sectorSize: rawSectorSize,
		sectors:    make(map[sectorID][]uint8),
	}

	for sd := 0; sd < sides; sd++ {
		for tr := 0; tr < tracks; tr++ {
			o := mfmDataOffset + (sd*tracks+tr)*mfmTrackSize
			img.decodeTrack(sd, dump[o:o+mfmTrackSize])
		}
	}

	if len(img.sectors) == 0 {
		return nil, curated.Errorf(UnrecognisedImage, name)
	}

	return img, nil
}

// decodeTrack scans a raw track for ID address marks and lifts out the
// sector data that follows each one.
func (img *Image) decodeTrack(side int, raw []uint8) {
	i := 0
	for i < len(raw) {
		if raw[i] != idAddressMark {
			i++
			continue
		}
		if i+5 >= len(raw) {
			return
		}

		tr := int(raw[i+1])
		sc := int(raw[i+3])
		size := rawSectorSize
		if raw[i+4] <= 3 {
			size = 128 << raw[i+4]
		}

		// skip the ID field and its checksum, then find the data mark
		// within the gap that follows
		i += 7
		j := i
		for j < len(raw) && j < i+50 && raw[j] != dataMark {
			j++
		}
		if j >= len(raw) || raw[j] != dataMark || j+1+size > len(raw) {
			continue
		}

		s := make([]uint8, size)
		copy(s, raw[j+1:j+1+size])
		img.sectors[sectorID{side, tr, sc}] = s
		if size > img.sectorSize {
			img.sectorSize = size
		}

		i = j + 1 + size + 2
	}
}

func (img *Image) String() string {
	return img.name
}

// Geometry returns the side and track counts of the image.
func (img *Image) Geometry() (sides int, tracks int) {
	return img.sides, img.tracks
}

// SectorSize returns the size of the largest sector in the image.
func (img *Image) SectorSize() int {
	return img.sectorSize
}

// SetWriteProtect marks the image read only or read write.
func (img *Image) SetWriteProtect(protected bool) {
	img.writeProtected = protected
}

// WriteProtected returns whether the image is read only.
func (img *Image) WriteProtected() bool {
	return img.writeProtected
}

// Sector returns a copy of the addressed sector's bytes. The second return
// value is false if no such sector exists on the image.
func (img *Image) Sector(side int, track int, sector int) ([]uint8, bool) {
	s, ok := img.sectors[sectorID{side, track, sector}]
	if !ok {
		return nil, false
	}
	c := make([]uint8, len(s))
	copy(c, s)
	return c, true
}

// WriteSector replaces the addressed sector's bytes.
func (img *Image) WriteSector(side int, track int, sector int, data []uint8) error {
	if img.writeProtected {
		return curated.Errorf(ImageProtected, img.name)
	}
	s, ok := img.sectors[sectorID{side, track, sector}]
	if !ok {
		return curated.Errorf(NoSuchSector, side, track, sector)
	}
	copy(s, data)
	return nil
}

// sectorIDs returns the image's sector addresses in a stable order. The
// snapshot encoder relies on the ordering being deterministic.
func (img *Image) sectorIDs() []sectorID {
	ids := make([]sectorID, 0, len(img.sectors))
	for id := range img.sectors {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(a, b int) bool {
		if ids[a].side != ids[b].side {
			return ids[a].side < ids[b].side
		}
		if ids[a].track != ids[b].track {
			return ids[a].track < ids[b].track
		}
		return ids[a].sector < ids[b].sector
	})
	return ids
}
