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

// Package limiter provides a rough and ready way of limiting events to a
// fixed rate. A new FpsLimiter is created with the required rate and
// operations are then stalled with the Wait() function:
//
//	lim := limiter.NewFPSLimiter(50.08)
//	for {
//		lim.Wait()
//		machine.Update(false)
//	}
package limiter

import (
	"time"
)

// FpsLimiter triggers at the requested number of events per second.
// Probably only any good if base performance of the host is well above
// the required rate.
type FpsLimiter struct {
	secondsPerFrame time.Duration
	tick            chan bool
}

// NewFPSLimiter is the preferred method of initialisation for the
// FpsLimiter type.
func NewFPSLimiter(framesPerSecond float64) *FpsLimiter {
	lim := &FpsLimiter{}
	lim.SetLimit(framesPerSecond)
	lim.tick = make(chan bool)

	// run ticker concurrently. the sleep period is adjusted every tick to
	// absorb the drift caused by the channel send and the sleep overhead
	go func() {
		adjustedSecondsPerFrame := lim.secondsPerFrame
		t := time.Now()
		for {
			lim.tick <- true
			time.Sleep(adjustedSecondsPerFrame)
			nt := time.Now()
			adjustedSecondsPerFrame -= nt.Sub(t) - lim.secondsPerFrame
			t = nt
		}
	}()

	return lim
}

// SetLimit changes the rate at which the FpsLimiter triggers.
func (lim *FpsLimiter) SetLimit(framesPerSecond float64) {
	lim.secondsPerFrame = time.Duration(float64(time.Second) / framesPerSecond)
}

// Wait blocks until the next trigger.
func (lim *FpsLimiter) Wait() {
	<-lim.tick
}

// HasWaited returns true if the trigger has already elapsed and false if
// it is still to happen.
func (lim *FpsLimiter) HasWaited() bool {
	select {
	case <-lim.tick:
		return true
	default:
		return false
	}
}
