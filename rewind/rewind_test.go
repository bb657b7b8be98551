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

package rewind_test

import (
	"testing"

	"github.com/jtallis/goric/curated"
	"github.com/jtallis/goric/hardware"
	"github.com/jtallis/goric/rewind"
	"github.com/jtallis/goric/test"
)

func newTestMachine(t *testing.T) *hardware.Machine {
	t.Helper()
	m, err := hardware.NewMachine(hardware.Config{})
	if err != nil {
		t.Fatalf("NewMachine: %v", err)
	}
	return m
}

func TestStepBack(t *testing.T) {
	m := newTestMachine(t)
	r := rewind.NewRewind(m)

	for i := 0; i < 10; i++ {
		m.Update(false)
		test.ExpectedSuccess(t, r.RecordFrame())
	}
	test.Equate(t, r.NumStates(), 10)
	test.Equate(t, m.FrameCount, uint64(10))

	test.ExpectedSuccess(t, r.StepBack(4))
	test.Equate(t, m.FrameCount, uint64(6))

	// history beyond the restored state has been forgotten
	test.Equate(t, r.NumStates(), 6)

	// the machine can continue from the restored state
	m.Update(false)
	test.Equate(t, m.FrameCount, uint64(7))
}

func TestGotoFrame(t *testing.T) {
	m := newTestMachine(t)
	r := rewind.NewRewind(m)

	for i := 0; i < 5; i++ {
		m.Update(false)
		test.ExpectedSuccess(t, r.RecordFrame())
	}

	test.ExpectedSuccess(t, r.GotoFrame(2))
	test.Equate(t, m.FrameCount, uint64(2))

	err := r.GotoFrame(100)
	test.ExpectedSuccess(t, curated.Is(err, rewind.NoSuchFrame))
}

func TestEmptyHistory(t *testing.T) {
	m := newTestMachine(t)
	r := rewind.NewRewind(m)

	err := r.StepBack(1)
	test.ExpectedSuccess(t, curated.Is(err, rewind.EmptyHistory))
}

func TestHistoryLimit(t *testing.T) {
	m := newTestMachine(t)
	r := rewind.NewRewind(m)

	// record more states than the buffer can hold. the earliest states
	// are forgotten but recording never fails
	for i := 0; i < 250; i++ {
		m.Update(false)
		test.ExpectedSuccess(t, r.RecordFrame())
	}
	test.ExpectedSuccess(t, r.NumStates() < 250)

	// the oldest surviving state is still restorable
	test.ExpectedSuccess(t, r.StepBack(r.NumStates()))
	m.Update(false)
}
