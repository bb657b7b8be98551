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

// Package registers implements the three types of register found in the
// 6502: the general purpose 8 bit Register, the 16 bit ProgramCounter and
// the StatusRegister. All arithmetic performed by the CPU happens through
// the functions defined on these types, including the binary coded decimal
// addition and subtraction used when the CPU's decimal flag is set.
package registers
