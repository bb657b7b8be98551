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

package digest

import (
	"crypto/sha1"
	"fmt"

	"github.com/jtallis/goric/hardware/ula"
)

// Video generates a SHA-1 value over every frame passed to it. The value
// for each frame is chained with the value of the frame before it, so a
// single hash identifies an entire sequence of video output.
//
// Note that the use of SHA-1 is fine for this application because this is
// not a cryptographic task.
type Video struct {
	digest [sha1.Size]byte
	pixels []byte
	frames int
}

// NewVideo is the preferred method of initialisation for the Video type.
func NewVideo() *Video {
	dig := &Video{}

	// room for the previous frame's digest value ahead of the frame data
	dig.pixels = make([]byte, sha1.Size+ula.Width*ula.Height)

	return dig
}

// Hash implements the Digest interface.
func (dig Video) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements the Digest interface.
func (dig *Video) ResetDigest() {
	for i := range dig.digest {
		dig.digest[i] = 0
	}
	dig.frames = 0
}

// NumFrames returns the number of frames folded into the hash since the
// last reset.
func (dig Video) NumFrames() int {
	return dig.frames
}

// WriteFrame folds a completed frame into the hash. Frames shorter than
// expected are accepted; the tail of the previous frame shows through.
func (dig *Video) WriteFrame(frame []uint8) {
	// chain fingerprints by copying the value of the last fingerprint to
	// the head of the video data
	copy(dig.pixels, dig.digest[:])
	copy(dig.pixels[sha1.Size:], frame)
	dig.digest = sha1.Sum(dig.pixels)
	dig.frames++
}
