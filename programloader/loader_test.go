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

package programloader_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jtallis/goric/curated"
	"github.com/jtallis/goric/programloader"
	"github.com/jtallis/goric/test"
)

func TestKindInference(t *testing.T) {
	ld := programloader.NewLoader("basic.rom", programloader.KindAuto)
	test.Equate(t, string(ld.Kind), string(programloader.KindROM))

	ld = programloader.NewLoader("game.dsk", programloader.KindAuto)
	test.Equate(t, string(ld.Kind), string(programloader.KindDisk))

	ld = programloader.NewLoader("game.TAP", programloader.KindAuto)
	test.Equate(t, string(ld.Kind), string(programloader.KindTape))
	test.ExpectedFailure(t, ld.IsSoundData)

	ld = programloader.NewLoader("game.wav", programloader.KindAuto)
	test.Equate(t, string(ld.Kind), string(programloader.KindTape))
	test.ExpectedSuccess(t, ld.IsSoundData)

	// an explicit kind wins over the extension
	ld = programloader.NewLoader("game.dsk", programloader.KindROM)
	test.Equate(t, string(ld.Kind), string(programloader.KindROM))
}

func TestShortName(t *testing.T) {
	ld := programloader.NewLoader("/a/long/path/to/game.dsk", programloader.KindAuto)
	test.Equate(t, ld.ShortName(), "game")
}

func TestLoad(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "prog.rom")
	if err := os.WriteFile(fn, []byte{0x01, 0x02, 0x03}, 0o644); err != nil {
		t.Fatal(err)
	}

	ld := programloader.NewLoader(fn, programloader.KindAuto)
	test.ExpectedSuccess(t, ld.Load())
	test.ExpectedSuccess(t, ld.HasLoaded())
	test.Equate(t, len(ld.Data), 3)
	test.ExpectedSuccess(t, ld.Hash != "")

	// a wrong expected hash fails the load
	ld = programloader.NewLoader(fn, programloader.KindAuto)
	ld.Hash = "0000"
	err := ld.Load()
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Is(err, programloader.UnexpectedHash))
}

func TestLoadMissingFile(t *testing.T) {
	ld := programloader.NewLoader("/no/such/file.rom", programloader.KindAuto)
	test.ExpectedFailure(t, ld.Load())
}

// buildTape assembles a synthetic tape stream with a single file block.
func buildTape(name string, start uint16, payload []uint8, autorun bool) []byte {
	b := []byte{0x16, 0x16, 0x16, 0x16, 0x24}

	end := start + uint16(len(payload)) - 1
	auto := uint8(0x00)
	if autorun {
		auto = 0xc7
	}
	b = append(b, 0x00, 0x00, 0x80, auto,
		uint8(end>>8), uint8(end), uint8(start>>8), uint8(start), 0x00)
	b = append(b, []byte(name)...)
	b = append(b, 0x00)
	b = append(b, payload...)
	return b
}

func TestParseTape(t *testing.T) {
	payload := []uint8{0x4c, 0x00, 0x80}
	tape := buildTape("GAME", 0x0501, payload, true)

	blocks, err := programloader.ParseTape("game.tap", tape)
	test.ExpectedSuccess(t, err)
	test.Equate(t, len(blocks), 1)

	test.Equate(t, blocks[0].Name, "GAME")
	test.Equate(t, blocks[0].Start, 0x0501)
	test.Equate(t, blocks[0].End, 0x0503)
	test.ExpectedSuccess(t, blocks[0].Autorun)
	test.Equate(t, len(blocks[0].Data), 3)
	test.Equate(t, blocks[0].Data[0], 0x4c)
}

func TestParseTapeMultipleBlocks(t *testing.T) {
	tape := buildTape("ONE", 0x0501, []uint8{0x01}, false)
	tape = append(tape, buildTape("TWO", 0x0600, []uint8{0x02, 0x03}, false)...)

	blocks, err := programloader.ParseTape("multi.tap", tape)
	test.ExpectedSuccess(t, err)
	test.Equate(t, len(blocks), 2)
	test.Equate(t, blocks[1].Name, "TWO")
	test.Equate(t, len(blocks[1].Data), 2)
}

func TestParseTapeGarbage(t *testing.T) {
	_, err := programloader.ParseTape("bad.tap", []byte{0x01, 0x02, 0x03, 0x04})
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Is(err, programloader.NotATape))
}
