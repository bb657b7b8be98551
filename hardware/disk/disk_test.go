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

package disk_test

import (
	"testing"

	"github.com/jtallis/goric/curated"
	"github.com/jtallis/goric/hardware/disk"
	"github.com/jtallis/goric/test"
)

// runUntilIdle steps the controller until the busy bit clears. the limit
// stops a broken state machine from hanging the test.
func runUntilIdle(t *testing.T, dc *disk.Controller) {
	t.Helper()
	for i := 0; i < 1000000; i++ {
		if dc.ChipPeek(disk.Command)&disk.StatusBusy != disk.StatusBusy {
			return
		}
		dc.Step()
	}
	t.Fatal("controller never returned to idle")
}

// readSector drives a full read sector command, collecting bytes as DRQ
// reports them.
func readSector(t *testing.T, dc *disk.Controller, sector uint8, n int) []uint8 {
	t.Helper()

	dc.ChipWrite(disk.Sector, sector)
	dc.ChipWrite(disk.Command, 0x80)

	r := []uint8{}
	for i := 0; i < 1000000; i++ {
		status := dc.ChipPeek(disk.Command)
		if status&disk.StatusDRQ == disk.StatusDRQ {
			if len(r) < n {
				r = append(r, dc.ChipRead(disk.Data))
			} else {
				_ = dc.ChipRead(disk.Data)
			}
		}
		if status&disk.StatusBusy != disk.StatusBusy {
			return r
		}
		dc.Step()
	}
	t.Fatal("read sector never completed")
	return nil
}

func TestReadSector(t *testing.T) {
	img := disk.NewImage("test", 1, 40, 17)
	test.ExpectedSuccess(t, img.WriteSector(0, 0, 0, []uint8{0x4c, 0x00, 0x80}))

	dc := disk.NewController(nil)
	test.ExpectedSuccess(t, dc.Mount(img))

	r := readSector(t, dc, 0, 3)

	test.Equate(t, len(r), 3)
	test.Equate(t, r[0], 0x4c)
	test.Equate(t, r[1], 0x00)
	test.Equate(t, r[2], 0x80)

	// completion with no error bits
	status := dc.ChipRead(disk.Command)
	test.Equate(t, status&(disk.StatusNotFound|disk.StatusCRCError|disk.StatusWriteProtect), 0)
}

func TestReadTakesTime(t *testing.T) {
	img := disk.NewImage("test", 1, 40, 17)
	dc := disk.NewController(nil)
	test.ExpectedSuccess(t, dc.Mount(img))

	dc.ChipWrite(disk.Sector, 0)
	dc.ChipWrite(disk.Command, 0x80)

	// the command is modelled with latency; the busy bit holds for a while
	test.Equate(t, dc.ChipPeek(disk.Command)&disk.StatusBusy, disk.StatusBusy)
	for i := 0; i < 10; i++ {
		dc.Step()
	}
	test.Equate(t, dc.ChipPeek(disk.Command)&disk.StatusBusy, disk.StatusBusy)
}

func TestMountWhileBusy(t *testing.T) {
	img := disk.NewImage("first", 1, 40, 17)
	test.ExpectedSuccess(t, img.WriteSector(0, 0, 5, []uint8{0xaa}))

	dc := disk.NewController(nil)
	test.ExpectedSuccess(t, dc.Mount(img))

	dc.ChipWrite(disk.Sector, 5)
	dc.ChipWrite(disk.Command, 0x80)

	// mid-transfer, a second mount fails with a busy condition
	second := disk.NewImage("second", 1, 40, 17)
	err := dc.Mount(second)
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Is(err, disk.MountBusy))

	// and the in-flight transfer is unaffected
	runUntilIdle(t, dc)
	test.Equate(t, dc.Image().String(), "first")
	status := dc.ChipRead(disk.Command)
	test.Equate(t, status&disk.StatusNotFound, 0)
}

func TestSectorNotFound(t *testing.T) {
	img := disk.NewImage("test", 1, 40, 17)
	dc := disk.NewController(nil)
	test.ExpectedSuccess(t, dc.Mount(img))

	dc.ChipWrite(disk.Sector, 99)
	dc.ChipWrite(disk.Command, 0x80)

	runUntilIdle(t, dc)
	test.Equate(t, dc.ChipRead(disk.Command)&disk.StatusNotFound, disk.StatusNotFound)
}

func TestNoImage(t *testing.T) {
	dc := disk.NewController(nil)

	dc.ChipWrite(disk.Command, 0x80)
	runUntilIdle(t, dc)
	test.Equate(t, dc.ChipRead(disk.Command)&disk.StatusNotFound, disk.StatusNotFound)
}

func TestWriteProtect(t *testing.T) {
	img := disk.NewImage("test", 1, 40, 17)
	img.SetWriteProtect(true)

	dc := disk.NewController(nil)
	test.ExpectedSuccess(t, dc.Mount(img))

	dc.ChipWrite(disk.Sector, 0)
	dc.ChipWrite(disk.Command, 0xa0)

	runUntilIdle(t, dc)
	test.Equate(t, dc.ChipRead(disk.Command)&disk.StatusWriteProtect, disk.StatusWriteProtect)

	// image untouched
	s, ok := img.Sector(0, 0, 0)
	test.ExpectedSuccess(t, ok)
	test.Equate(t, s[0], 0x00)
}

func TestWriteSector(t *testing.T) {
	img := disk.NewImage("test", 1, 40, 17)
	dc := disk.NewController(nil)
	test.ExpectedSuccess(t, dc.Mount(img))

	dc.ChipWrite(disk.Sector, 2)
	dc.ChipWrite(disk.Command, 0xa0)

	// feed bytes whenever DRQ asks for one
	written := 0
	for i := 0; i < 1000000; i++ {
		status := dc.ChipPeek(disk.Command)
		if status&disk.StatusBusy != disk.StatusBusy {
			break
		}
		if status&disk.StatusDRQ == disk.StatusDRQ {
			dc.ChipWrite(disk.Data, uint8(written))
			written++
		}
		dc.Step()
	}

	test.Equate(t, written, 256)

	s, ok := img.Sector(0, 0, 2)
	test.ExpectedSuccess(t, ok)
	test.Equate(t, s[0], 0x00)
	test.Equate(t, s[1], 0x01)
	test.Equate(t, s[255], 0xff)
}

func TestSeekAndRestore(t *testing.T) {
	img := disk.NewImage("test", 1, 40, 17)
	test.ExpectedSuccess(t, img.WriteSector(0, 20, 0, []uint8{0x99}))

	dc := disk.NewController(nil)
	test.ExpectedSuccess(t, dc.Mount(img))

	// seek to track 20. the target is supplied through the data register
	dc.ChipWrite(disk.Data, 20)
	dc.ChipWrite(disk.Command, 0x10)
	runUntilIdle(t, dc)

	test.Equate(t, dc.ChipRead(disk.Track), 20)
	test.Equate(t, dc.ChipRead(disk.Command)&disk.StatusTrack0, 0)

	// the head is over track 20; sector reads come from there
	r := readSector(t, dc, 0, 1)
	test.Equate(t, r[0], 0x99)

	// restore brings the head back to track zero
	dc.ChipWrite(disk.Command, 0x00)
	runUntilIdle(t, dc)
	test.Equate(t, dc.ChipRead(disk.Track), 0)
	test.Equate(t, dc.ChipRead(disk.Command)&disk.StatusTrack0, disk.StatusTrack0)
}

func TestForceInterrupt(t *testing.T) {
	img := disk.NewImage("test", 1, 40, 17)
	dc := disk.NewController(nil)
	test.ExpectedSuccess(t, dc.Mount(img))

	dc.ChipWrite(disk.Data, 30)
	dc.ChipWrite(disk.Command, 0x10)
	test.Equate(t, dc.ChipPeek(disk.Command)&disk.StatusBusy, disk.StatusBusy)

	dc.ChipWrite(disk.Command, 0xd0)
	test.Equate(t, dc.ChipPeek(disk.Command)&disk.StatusBusy, 0)
}

func TestCompletionInterrupt(t *testing.T) {
	img := disk.NewImage("test", 1, 40, 17)
	dc := disk.NewController(nil)
	test.ExpectedSuccess(t, dc.Mount(img))

	// interrupts disabled: no IRQ on completion
	dc.ChipWrite(disk.Command, 0x00)
	runUntilIdle(t, dc)
	test.ExpectedFailure(t, dc.IRQ())

	// enable completion interrupts in the control register
	dc.ChipWrite(disk.Control, disk.CtrlIRQEnable|disk.CtrlROMSelect)
	dc.ChipWrite(disk.Data, 5)
	dc.ChipWrite(disk.Command, 0x10)
	runUntilIdle(t, dc)
	test.ExpectedSuccess(t, dc.IRQ())

	// reading status acknowledges the interrupt
	_ = dc.ChipRead(disk.Command)
	test.ExpectedFailure(t, dc.IRQ())
}

func TestControllerSnapshot(t *testing.T) {
	img := disk.NewImage("test", 1, 40, 17)
	test.ExpectedSuccess(t, img.WriteSector(0, 0, 0, []uint8{0x12, 0x34}))

	dc := disk.NewController(nil)
	test.ExpectedSuccess(t, dc.Mount(img))

	// snapshot mid-seek
	dc.ChipWrite(disk.Data, 10)
	dc.ChipWrite(disk.Command, 0x10)
	for i := 0; i < 100; i++ {
		dc.Step()
	}

	b, err := dc.MarshalBinary()
	test.ExpectedSuccess(t, err)

	restored := disk.NewController(nil)
	test.ExpectedSuccess(t, restored.UnmarshalBinary(b))

	// both controllers complete the seek identically
	runUntilIdle(t, dc)
	runUntilIdle(t, restored)
	test.Equate(t, restored.ChipRead(disk.Track), dc.ChipRead(disk.Track))

	// the image came along with the controller
	s, ok := restored.Image().Sector(0, 0, 0)
	test.ExpectedSuccess(t, ok)
	test.Equate(t, s[0], 0x12)
	test.Equate(t, s[1], 0x34)
}

func TestSnapshotCorruption(t *testing.T) {
	dc := disk.NewController(nil)
	err := dc.UnmarshalBinary([]byte{0x01, 0x02})
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Is(err, disk.BadSnapshot))
}

func TestImageFromRawDump(t *testing.T) {
	dump := make([]byte, 17*256*40)
	dump[0] = 0xde
	dump[256] = 0xad

	img, err := disk.FromDump("raw", dump)
	test.ExpectedSuccess(t, err)

	_, tracks := img.Geometry()
	test.Equate(t, tracks, 40)

	s, ok := img.Sector(0, 0, 0)
	test.ExpectedSuccess(t, ok)
	test.Equate(t, s[0], 0xde)

	s, ok = img.Sector(0, 0, 1)
	test.ExpectedSuccess(t, ok)
	test.Equate(t, s[0], 0xad)
}

func TestImageUnrecognised(t *testing.T) {
	_, err := disk.FromDump("bad", []byte{0x01, 0x02, 0x03})
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Is(err, disk.UnrecognisedImage))
}
