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

// Package digest fingerprints emulator output. A fingerprint is a
// cryptographic hash accumulated over successive frames - if a hash
// differs from a previously recorded value then the emulation has
// diverged. We use this as the basis for performance checks and
// regression comparison.
package digest

// Digest implementations produce a cryptographic hash in response to a
// Hash() request.
type Digest interface {
	Hash() string
	ResetDigest()
}
