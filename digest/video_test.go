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

package digest_test

import (
	"testing"

	"github.com/jtallis/goric/digest"
	"github.com/jtallis/goric/hardware/ula"
	"github.com/jtallis/goric/test"
)

func TestVideoChaining(t *testing.T) {
	frame := make([]uint8, ula.Width*ula.Height)

	dig := digest.NewVideo()
	empty := dig.Hash()

	dig.WriteFrame(frame)
	one := dig.Hash()
	test.ExpectedSuccess(t, one != empty)

	// the same frame again produces a different hash because of chaining
	dig.WriteFrame(frame)
	two := dig.Hash()
	test.ExpectedSuccess(t, two != one)
	test.Equate(t, dig.NumFrames(), 2)

	// identical sequences produce identical hashes
	other := digest.NewVideo()
	other.WriteFrame(frame)
	other.WriteFrame(frame)
	test.Equate(t, other.Hash(), two)

	// different content produces a different hash
	frame[100] = 0x07
	other.ResetDigest()
	other.WriteFrame(frame)
	test.ExpectedSuccess(t, other.Hash() != one)

	dig.ResetDigest()
	test.Equate(t, dig.Hash(), empty)
	test.Equate(t, dig.NumFrames(), 0)
}
