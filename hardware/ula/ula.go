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

package ula

// Spec is the raster timing of a television standard.
type Spec struct {
	ID            string
	CyclesPerLine int
	LinesPerFrame int

	// frames per second, for the benefit of frame rate limiting in the
	// driver. not used inside the chip
	FramesPerSecond float64
}

// The available specifications.
var (
	SpecPAL  = Spec{ID: "PAL", CyclesPerLine: 64, LinesPerFrame: 312, FramesPerSecond: 50.08}
	SpecNTSC = Spec{ID: "NTSC", CyclesPerLine: 64, LinesPerFrame: 264, FramesPerSecond: 60.0}
)

// Dimensions of the visible area. One pixel is produced per dot clock; six
// dot clocks per fetched byte.
const (
	Width  = 240
	Height = 224
)

// Display memory layout.
const (
	textScreen      = uint16(0xbb80)
	textCharset     = uint16(0xb400)
	textAltCharset  = uint16(0xb800)
	hiresScreen     = uint16(0xa000)
	hiresFooter     = uint16(0xbf68)
	hiresCharset    = uint16(0x9800)
	hiresAltCharset = uint16(0x9c00)

	// raster lines of bitmapped display in the high resolution mode; the
	// remaining visible lines show three rows of text
	hiresLines = 200

	bytesPerLine = 40
	pixelsPerByte = 6
)

// duration of the vertical sync pulse, in raster lines.
const vsyncLines = 3

// VideoBus is the chip's port into display memory.
type VideoBus interface {
	VideoRead(address uint16) uint8
}

// Ula is the video timing chip. Every machine cycle advances the raster one
// byte position; at the end of each visible line a row of pixels is fetched
// from display memory and serialised into the frame buffer. On vertical
// wrap the chip marks a frame ready and pulses the vertical sync line.
//
// Display attributes are serial: attribute bytes sit in display memory
// among the character codes and take effect from their own screen position
// to the end of the line. The ink and paper colours reset at the start of
// every line; the display mode holds until changed.
type Ula struct {
	spec Spec
	mem  VideoBus

	hcount int
	vcount int

	// display mode. serial attributes switch this at any screen position
	hires bool

	frameReady  bool
	framebuffer []uint8

	// vertical sync output line, normally high
	vsync func(level bool)
}

// NewUla is the preferred method of initialisation for the Ula structure.
func NewUla(spec Spec, mem VideoBus) *Ula {
	return &Ula{
		spec:        spec,
		mem:         mem,
		framebuffer: make([]uint8, Width*Height),
		vsync:       func(_ bool) {},
	}
}

// AttachVSync connects the vertical sync output. The line is driven low for
// the duration of the sync pulse at the top of each frame.
func (u *Ula) AttachVSync(vsync func(level bool)) {
	if vsync == nil {
		vsync = func(_ bool) {}
	}
	u.vsync = vsync
}

// Spec returns the chip's timing specification.
func (u *Ula) Spec() Spec {
	return u.spec
}

// Step runs the chip for one machine cycle. Returns true on the cycle that
// completes a frame.
func (u *Ula) Step() bool {
	u.hcount++
	if u.hcount < u.spec.CyclesPerLine {
		return false
	}
	u.hcount = 0

	if u.vcount < Height {
		u.renderLine(u.vcount)
	}

	u.vcount++
	if u.vcount >= u.spec.LinesPerFrame {
		u.vcount = 0
		u.frameReady = true
		u.vsync(false)
		return true
	}
	if u.vcount == vsyncLines {
		u.vsync(true)
	}
	return false
}

// GetFramePixels returns the most recently completed frame, or nil if no
// new frame has completed since the last call. The returned buffer is row
// major, one colour index per pixel, and is reused for the next frame.
func (u *Ula) GetFramePixels() []uint8 {
	if !u.frameReady {
		return nil
	}
	u.frameReady = false
	return u.framebuffer
}

// lineState is the attribute state rebuilt at the start of every raster
// line.
type lineState struct {
	ink        uint8
	paper      uint8
	altCharset bool
}

// applyAttribute decodes a serial attribute byte into the line state.
// Attributes with bits five and six clear are recognised; the group is
// selected by bits three and four.
func (u *Ula) applyAttribute(v uint8, ls *lineState) {
	switch v & 0x18 {
	case 0x00:
		ls.ink = v & 0x07
	case 0x08:
		ls.altCharset = v&0x01 == 0x01
	case 0x10:
		ls.paper = v & 0x07
	case 0x18:
		u.hires = v&0x04 == 0x04
	}
}

// renderLine fetches and serialises one visible raster line into the frame
// buffer.
func (u *Ula) renderLine(line int) {
	ls := lineState{ink: 7, paper: 0}

	if u.hires && line < hiresLines {
		base := hiresScreen + uint16(line*bytesPerLine)
		for col := 0; col < bytesPerLine; col++ {
			v := u.mem.VideoRead(base + uint16(col))
			if v&0x60 == 0 {
				u.applyAttribute(v&0x7f, &ls)
				u.paint(line, col, 0x00, v&0x80 == 0x80, &ls)
				continue
			}
			u.paint(line, col, v&0x3f, v&0x80 == 0x80, &ls)
		}
		return
	}

	// text line: either the whole screen in text mode or the footer rows
	// below the bitmapped area in high resolution mode
	var screen uint16
	var row, scan int

	if u.hires {
		screen = hiresFooter
		row = (line - hiresLines) / 8
		scan = (line - hiresLines) % 8
	} else {
		screen = textScreen
		row = line / 8
		scan = line % 8
	}

	base := screen + uint16(row*bytesPerLine)
	for col := 0; col < bytesPerLine; col++ {
		v := u.mem.VideoRead(base + uint16(col))
		if v&0x60 == 0 {
			u.applyAttribute(v&0x7f, &ls)
			u.paint(line, col, 0x00, v&0x80 == 0x80, &ls)
			continue
		}

		// the character generator address depends on the mode and on the
		// charset attribute, either of which can change mid line
		cs := textCharset
		if u.hires {
			cs = hiresCharset
			if ls.altCharset {
				cs = hiresAltCharset
			}
		} else if ls.altCharset {
			cs = textAltCharset
		}

		glyph := u.mem.VideoRead(cs + uint16(v&0x7f)*8 + uint16(scan))
		u.paint(line, col, glyph&0x3f, v&0x80 == 0x80, &ls)
	}
}

// paint serialises six pixels into the frame buffer. Set bits take the ink
// colour, clear bits the paper colour; inverse video complements both.
func (u *Ula) paint(line int, col int, bits uint8, inverse bool, ls *lineState) {
	o := line*Width + col*pixelsPerByte
	for b := 5; b >= 0; b-- {
		c := ls.paper
		if bits&(1<<b) != 0 {
			c = ls.ink
		}
		if inverse {
			c ^= 0x07
		}
		u.framebuffer[o] = c
		o++
	}
}

// State is the serialisable state of the chip. The frame buffer is not part
// of the state; it is regenerated within one frame of stepping.
type State struct {
	HCount     int32
	VCount     int32
	Hires      bool
	FrameReady bool
}

// SaveState returns the serialisable state of the chip.
func (u *Ula) SaveState() State {
	return State{
		HCount:     int32(u.hcount),
		VCount:     int32(u.vcount),
		Hires:      u.hires,
		FrameReady: u.frameReady,
	}
}

// LoadState restores chip state saved with SaveState().
func (u *Ula) LoadState(s State) {
	u.hcount = int(s.HCount)
	u.vcount = int(s.VCount)
	u.hires = s.Hires
	u.frameReady = s.FrameReady
}
