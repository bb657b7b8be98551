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

package memory

import (
	"github.com/jtallis/goric/curated"
)

// error messages from ROM loading.
const (
	WrongROMSize = "memory: %s rom: wrong size (%d bytes)"
)

// ROM is a fixed, write protected memory area.
type ROM struct {
	label  string
	origin uint16
	memtop uint16
	data   []uint8
}

func newROM(label string, origin uint16, memtop uint16) *ROM {
	return &ROM{
		label:  label,
		origin: origin,
		memtop: memtop,
		data:   make([]uint8, int(memtop-origin)+1),
	}
}

// Label is an implementation of the Area interface.
func (r *ROM) Label() string {
	return r.label
}

// Origin is an implementation of the Area interface.
func (r *ROM) Origin() uint16 {
	return r.origin
}

// Memtop is an implementation of the Area interface.
func (r *ROM) Memtop() uint16 {
	return r.memtop
}

// Load replaces the ROM contents. The data must fill the area exactly.
func (r *ROM) Load(data []uint8) error {
	if len(data) != len(r.data) {
		return curated.Errorf(WrongROMSize, r.label, len(data))
	}
	copy(r.data, data)
	return nil
}

// Snapshot returns a copy of the ROM contents.
func (r *ROM) Snapshot() []uint8 {
	s := make([]uint8, len(r.data))
	copy(s, r.data)
	return s
}

// Restore replaces the ROM contents with a previously taken Snapshot().
func (r *ROM) Restore(data []uint8) {
	copy(r.data, data)
}

func (r *ROM) read(address uint16) uint8 {
	return r.data[address-r.origin]
}

func (r *ROM) poke(address uint16, data uint8) {
	r.data[address-r.origin] = data
}

// Banker is the interface through which the pageable ROM slot is switched.
// On the real machine the bank selection lines are driven by the disk
// controller's control register.
type Banker interface {
	SelectBank(bank int)
	CurrentBank() int
}

// number of banks the slot can address.
const NumSlotBanks = 2

// Slot is the pageable ROM area at the top of the address space. Bank 0
// holds the BASIC ROM; bank 1, when fitted, holds the disk controller's boot
// EPROM. Banks that are not fitted behave like unpopulated addresses.
type Slot struct {
	banks   [NumSlotBanks][]uint8
	current int
}

func newSlot() *Slot {
	return &Slot{}
}

// Label is an implementation of the Area interface.
func (s *Slot) Label() string {
	return "Slot"
}

// Origin is an implementation of the Area interface.
func (s *Slot) Origin() uint16 {
	return OriginSlot
}

// Memtop is an implementation of the Area interface.
func (s *Slot) Memtop() uint16 {
	return MemtopSlot
}

// Fit installs a ROM image into the numbered bank. The data must fill the
// area exactly.
func (s *Slot) Fit(bank int, data []uint8) error {
	if len(data) != int(MemtopSlot-OriginSlot)+1 {
		return curated.Errorf(WrongROMSize, s.Label(), len(data))
	}
	s.banks[bank] = make([]uint8, len(data))
	copy(s.banks[bank], data)
	return nil
}

// SelectBank is an implementation of the Banker interface. Out of range
// banks are ignored.
func (s *Slot) SelectBank(bank int) {
	if bank < 0 || bank >= NumSlotBanks {
		return
	}
	s.current = bank
}

// CurrentBank is an implementation of the Banker interface.
func (s *Slot) CurrentBank() int {
	return s.current
}

// SnapshotBank returns a copy of the numbered bank's contents, or nil if
// the bank is not fitted.
func (s *Slot) SnapshotBank(bank int) []uint8 {
	if bank < 0 || bank >= NumSlotBanks || s.banks[bank] == nil {
		return nil
	}
	c := make([]uint8, len(s.banks[bank]))
	copy(c, s.banks[bank])
	return c
}

// RestoreBank replaces the numbered bank's contents. A nil data unfits the
// bank.
func (s *Slot) RestoreBank(bank int, data []uint8) {
	if bank < 0 || bank >= NumSlotBanks {
		return
	}
	if data == nil {
		s.banks[bank] = nil
		return
	}
	s.banks[bank] = make([]uint8, len(data))
	copy(s.banks[bank], data)
}

func (s *Slot) read(address uint16) uint8 {
	b := s.banks[s.current]
	if b == nil {
		return floatingBus
	}
	return b[address-OriginSlot]
}

func (s *Slot) poke(address uint16, data uint8) {
	b := s.banks[s.current]
	if b == nil {
		return
	}
	b[address-OriginSlot] = data
}
