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

package rewind

import (
	"github.com/jtallis/goric/curated"
	"github.com/jtallis/goric/hardware"
)

// error messages from the rewind system.
const (
	EmptyHistory = "rewind: no recorded states"
	NoSuchFrame  = "rewind: no state at frame %d"
)

// the maximum number of entries to store before the earliest states are
// forgotten. there is an overhead of two entries to facilitate appending.
const overhead = 2
const maxEntries = 200 + overhead

type entry struct {
	frame uint64
	state []byte
}

// Rewind contains a history of frame-aligned machine states. Recording a
// state after every Update() call gives a frame-by-frame history that the
// machine can be wound back through.
type Rewind struct {
	m *hardware.Machine

	// circular array of snapshotted entries
	entries [maxEntries]*entry
	start   int
	end     int
}

// NewRewind is the preferred method of initialisation for the Rewind type.
func NewRewind(m *hardware.Machine) *Rewind {
	return &Rewind{m: m}
}

// Reset forgets all recorded states.
func (r *Rewind) Reset() {
	r.start = 0
	r.end = 0
}

// NumStates returns the number of recorded states in the history.
func (r *Rewind) NumStates() int {
	if r.end >= r.start {
		return r.end - r.start
	}
	return maxEntries - r.start + r.end
}

// RecordFrame takes a snapshot of the machine and appends it to the
// history. Call this between Update() calls, never during one.
func (r *Rewind) RecordFrame() error {
	state, err := r.m.Snapshot()
	if err != nil {
		return err
	}

	r.entries[r.end] = &entry{frame: r.m.FrameCount, state: state}
	r.end = (r.end + 1) % maxEntries
	if r.end == r.start {
		r.entries[r.start] = nil
		r.start = (r.start + 1) % maxEntries
	}

	return nil
}

// StepBack restores the machine to the state it was in the given number
// of recorded frames ago. The states stepped over are forgotten, so the
// machine resumes with history consistent with what it is about to redo.
func (r *Rewind) StepBack(numFrames int) error {
	n := r.NumStates()
	if n == 0 {
		return curated.Errorf(EmptyHistory)
	}

	// the newest recorded state is the machine's current state, so
	// stepping back cannot reach past the oldest entry
	if numFrames >= n {
		numFrames = n - 1
	}

	idx := (r.end - 1 - numFrames + 2*maxEntries) % maxEntries
	if err := r.m.RestoreSnapshot(r.entries[idx].state); err != nil {
		return err
	}

	// truncate the history after the restored state
	for i := (idx + 1) % maxEntries; i != r.end; i = (i + 1) % maxEntries {
		r.entries[i] = nil
	}
	r.end = (idx + 1) % maxEntries

	return nil
}

// GotoFrame restores the machine to the recorded state for the specified
// frame number.
func (r *Rewind) GotoFrame(frame uint64) error {
	for i := r.start; i != r.end; i = (i + 1) % maxEntries {
		if r.entries[i].frame == frame {
			return r.StepBack((r.end - 1 - i + 2*maxEntries) % maxEntries)
		}
	}
	return curated.Errorf(NoSuchFrame, frame)
}
