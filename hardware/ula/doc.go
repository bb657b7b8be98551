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

// Package ula emulates the video timing chip. The chip owns the raster: one
// step per machine cycle advances the horizontal counter, lines wrap into
// the vertical counter, and the vertical counter wrapping marks a completed
// frame and pulses the vertical sync line that is wired to the I/O chip.
//
// Pixels are produced a visible line at a time, fetched from display memory
// through the chip's own memory port. The frame buffer holds one colour
// index per pixel; colour lookup is the concern of whatever presents the
// frame. A frame is complete after exactly CyclesPerLine*LinesPerFrame
// steps, which is what makes the emulation as a whole deterministic.
package ula
