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

// Package memory implements the address space of the machine and routes
// accesses to the areas that make it up: the main RAM, the fixed OS ROM, the
// pageable ROM slot and the two chip windows (VIA and disk controller).
//
// The address space never faults. Reads from unpopulated addresses return
// the floating bus value and writes to ROM or unpopulated addresses are
// discarded. The chip windows are attached after initialisation; an
// unattached window behaves like unpopulated memory.
//
// The Peek() and Poke() functions access memory without bus side effects and
// exist for the monitor and for program loading.
package memory
