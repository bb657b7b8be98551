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

// Package programloader is responsible for everything required in loading a
// program file for use with the emulation: ROM overrides, disk images and
// tapes. The kind of program is inferred from the file extension unless
// stated explicitly.
//
// Tapes can be supplied either as tape byte streams or as audio recordings
// (wav or mp3). Recordings are demodulated back into tape bytes before the
// file blocks are recovered from them.
package programloader
