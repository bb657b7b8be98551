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

// Package via emulates the 6522 versatile interface adapter. In this machine
// the VIA provides the two interval timers that drive almost all system
// software timing, senses the keyboard matrix through its ports, and folds
// its interrupt flags onto the CPU's IRQ line.
//
// Not every corner of the real chip is implemented. The shift register
// stores and recalls its value but does not shift, and the handshake modes
// of the peripheral control lines are reduced to the edge detection that the
// machine's vertical sync wiring needs. These are the same liberties most
// emulators of this machine take; nothing in the system software notices.
package via
