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

// Package disassembly decodes 6502 machine code into readable assembly.
// It is a linear disassembler: it decodes whatever bytes it is pointed
// at, without trying to distinguish code from data. Reads go through a
// side effect free peek function so a live machine can be disassembled
// safely.
package disassembly
