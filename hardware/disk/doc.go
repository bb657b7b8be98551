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

// Package disk emulates the machine's floppy disk interface: a command
// driven controller and the image mounted in its drive.
//
// Commands do not complete instantaneously. Seeks and sector transfers burn
// down cycle countdowns sized from the distance travelled or the bytes
// moved, so software that polls the busy bit or counts on transfer timing
// behaves as it does on hardware. All disk errors are reported through
// status register bits; nothing the controller does ever halts emulation.
//
// Disk images arrive as byte dumps through FromDump(), which understands
// the MFM container format as well as raw sector concatenations.
package disk
