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

// Package monitor implements a machine-language monitor in the style of
// the tools that shipped with the home computers of the period: a bare
// prompt at which memory can be dumped and poked, CPU registers viewed,
// and the machine stepped by the instruction or by the frame.
//
// Memory access goes through the machine's Peek() and Poke() functions so
// inspecting the machine never disturbs chip state.
//
// The monitor works on the calling terminal, using cbreak mode for input.
// It is a posix-only package.
package monitor
