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

package hardware

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"io"

	"github.com/jtallis/goric/curated"
	"github.com/jtallis/goric/hardware/memory"
	"github.com/jtallis/goric/hardware/peripherals"
	"github.com/jtallis/goric/hardware/ula"
	"github.com/jtallis/goric/hardware/via"
)

// error messages from snapshot handling.
const (
	NotASnapshot      = "snapshot: not a snapshot"
	WrongVersion      = "snapshot: unsupported version (%d)"
	SnapshotMismatch  = "snapshot: machine configuration does not match"
	TruncatedSnapshot = "snapshot: truncated"
)

// snapshot file identification.
var snapshotMagic = []byte("GORC")

const snapshotVersion = uint8(1)

// fixed size CPU portion of a snapshot.
type cpuState struct {
	PC              uint16
	A, X, Y, SP     uint8
	Status          uint8
	CyclesRemaining int32
	PendingNMI      bool
	LastNMI         bool
}

// fixed size configuration portion of a snapshot, used to reject restoring
// into a differently built machine.
type configState struct {
	NTSC bool
	RAM  int32
}

// Snapshot captures the machine's complete state as an opaque byte blob.
// Must be called between Update() calls, never during one.
func (m *Machine) Snapshot() ([]byte, error) {
	inner := &bytes.Buffer{}

	spec := m.Ula.Spec()
	_ = binary.Write(inner, binary.LittleEndian, configState{
		NTSC: spec.ID == "NTSC",
		RAM:  int32(m.Config.RAM),
	})

	_ = binary.Write(inner, binary.LittleEndian, cpuState{
		PC: m.CPU.PC.Address(),
		A:  m.CPU.A.Value(), X: m.CPU.X.Value(), Y: m.CPU.Y.Value(),
		SP:              m.CPU.SP.Value(),
		Status:          m.CPU.Status.Value(),
		CyclesRemaining: int32(m.CPU.CyclesRemaining),
		PendingNMI:      m.CPU.PendingNMI,
		LastNMI:         m.CPU.LastNMI,
	})

	writeChunk(inner, m.Mem.RAM.Snapshot())
	writeChunk(inner, m.Mem.OS.Snapshot())
	for bank := 0; bank < memory.NumSlotBanks; bank++ {
		writeChunk(inner, m.Mem.Slot.SnapshotBank(bank))
	}
	_ = binary.Write(inner, binary.LittleEndian, int32(m.Mem.Slot.CurrentBank()))

	_ = binary.Write(inner, binary.LittleEndian, m.Ula.SaveState())
	_ = binary.Write(inner, binary.LittleEndian, m.Via.SaveState())
	_ = binary.Write(inner, binary.LittleEndian, m.Keyboard.SaveState())

	dc, err := m.Disk.MarshalBinary()
	if err != nil {
		return nil, err
	}
	writeChunk(inner, dc)

	_ = binary.Write(inner, binary.LittleEndian, m.FrameCount)

	// the blob proper: magic, version, then the gzip compressed state
	out := &bytes.Buffer{}
	out.Write(snapshotMagic)
	out.WriteByte(snapshotVersion)

	gz := gzip.NewWriter(out)
	if _, err := gz.Write(inner.Bytes()); err != nil {
		return nil, err
	}
	if err := gz.Close(); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

// RestoreSnapshot rehydrates the machine from a Snapshot() blob. The
// restore is all or nothing: any decode failure leaves the machine's
// current state untouched.
func (m *Machine) RestoreSnapshot(data []byte) error {
	if len(data) < len(snapshotMagic)+1 || !bytes.Equal(data[:len(snapshotMagic)], snapshotMagic) {
		return curated.Errorf(NotASnapshot)
	}
	if data[len(snapshotMagic)] != snapshotVersion {
		return curated.Errorf(WrongVersion, data[len(snapshotMagic)])
	}

	gz, err := gzip.NewReader(bytes.NewReader(data[len(snapshotMagic)+1:]))
	if err != nil {
		return curated.Errorf(NotASnapshot)
	}
	inner, err := io.ReadAll(gz)
	if err != nil {
		return curated.Errorf(TruncatedSnapshot)
	}
	b := bytes.NewReader(inner)

	// decode everything into temporaries before touching the machine

	var cfg configState
	if err := binary.Read(b, binary.LittleEndian, &cfg); err != nil {
		return curated.Errorf(TruncatedSnapshot)
	}
	spec := m.Ula.Spec()
	if cfg.NTSC != (spec.ID == "NTSC") || memory.Size(cfg.RAM) != m.Config.RAM {
		return curated.Errorf(SnapshotMismatch)
	}

	var cs cpuState
	if err := binary.Read(b, binary.LittleEndian, &cs); err != nil {
		return curated.Errorf(TruncatedSnapshot)
	}

	ram, err := readChunk(b)
	if err != nil {
		return err
	}
	os, err := readChunk(b)
	if err != nil {
		return err
	}
	banks := make([][]uint8, memory.NumSlotBanks)
	for bank := 0; bank < memory.NumSlotBanks; bank++ {
		banks[bank], err = readChunk(b)
		if err != nil {
			return err
		}
	}
	var currentBank int32
	if err := binary.Read(b, binary.LittleEndian, &currentBank); err != nil {
		return curated.Errorf(TruncatedSnapshot)
	}

	var us ula.State
	if err := binary.Read(b, binary.LittleEndian, &us); err != nil {
		return curated.Errorf(TruncatedSnapshot)
	}
	var vs via.State
	if err := binary.Read(b, binary.LittleEndian, &vs); err != nil {
		return curated.Errorf(TruncatedSnapshot)
	}
	var ks [peripherals.NumRows]uint8
	if err := binary.Read(b, binary.LittleEndian, &ks); err != nil {
		return curated.Errorf(TruncatedSnapshot)
	}

	dc, err := readChunk(b)
	if err != nil {
		return err
	}
	probe := *m.Disk
	if err := (&probe).UnmarshalBinary(dc); err != nil {
		return err
	}

	var frameCount uint64
	if err := binary.Read(b, binary.LittleEndian, &frameCount); err != nil {
		return curated.Errorf(TruncatedSnapshot)
	}

	// everything decoded; apply

	m.CPU.PC.Load(cs.PC)
	m.CPU.A.Load(cs.A)
	m.CPU.X.Load(cs.X)
	m.CPU.Y.Load(cs.Y)
	m.CPU.SP.Load(cs.SP)
	m.CPU.Status.FromValue(cs.Status)
	m.CPU.CyclesRemaining = int(cs.CyclesRemaining)
	m.CPU.PendingNMI = cs.PendingNMI
	m.CPU.LastNMI = cs.LastNMI

	m.Mem.RAM.Restore(ram)
	m.Mem.OS.Restore(os)
	for bank := 0; bank < memory.NumSlotBanks; bank++ {
		m.Mem.Slot.RestoreBank(bank, banks[bank])
	}
	m.Mem.Slot.SelectBank(int(currentBank))

	m.Ula.LoadState(us)
	m.Via.LoadState(vs)
	m.Keyboard.LoadState(ks)
	*m.Disk = probe
	m.FrameCount = frameCount

	return nil
}

// writeChunk writes a length prefixed block of bytes. A nil block is
// distinguished from an empty one so that unfitted ROM banks round trip.
func writeChunk(w *bytes.Buffer, b []uint8) {
	if b == nil {
		_ = binary.Write(w, binary.LittleEndian, int32(-1))
		return
	}
	_ = binary.Write(w, binary.LittleEndian, int32(len(b)))
	w.Write(b)
}

// readChunk reads a block written with writeChunk().
func readChunk(r *bytes.Reader) ([]uint8, error) {
	var n int32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, curated.Errorf(TruncatedSnapshot)
	}
	if n < 0 {
		return nil, nil
	}
	b := make([]uint8, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, curated.Errorf(TruncatedSnapshot)
	}
	return b, nil
}
