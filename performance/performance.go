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

package performance

import (
	"fmt"
	"io"
	"time"

	"github.com/jtallis/goric/curated"
	"github.com/jtallis/goric/hardware"
	"github.com/jtallis/goric/programloader"
)

// error messages from performance checking.
const CheckError = "performance: %v"

// Check measures the performance of the emulator with the supplied
// program attached. The machine runs flat out for the specified duration,
// after a short leadtime for the runtime to settle, and the achieved
// frame rate is written to output.
//
// The profile argument causes cpu and memory profiles to be written to
// the working directory.
func Check(output io.Writer, profile bool, ld *programloader.Loader, variant string, duration string) error {
	m, err := hardware.NewMachine(hardware.Config{Variant: variant, Startup: ld})
	if err != nil {
		return curated.Errorf(CheckError, err)
	}

	dur, err := time.ParseDuration(duration)
	if err != nil {
		return curated.Errorf(CheckError, err)
	}

	startFrame := m.FrameCount

	err = cpuProfile(profile, "cpu.profile", func() error {
		// expires when the measurement duration has elapsed. a false value
		// marks the end of the leadtime and the start of measurement proper
		timerChan := make(chan bool)

		// force a two second leadtime to allow the runtime to settle down
		// and then restart the timer for the specified duration
		go func() {
			time.AfterFunc(2*time.Second, func() {
				timerChan <- false
				time.AfterFunc(dur, func() {
					timerChan <- true
				})
			})
		}()

		for {
			m.Update(true)
			select {
			case v := <-timerChan:
				if v {
					return nil
				}
				startFrame = m.FrameCount
			default:
			}
		}
	})
	if err != nil {
		return curated.Errorf(CheckError, err)
	}

	numFrames := int(m.FrameCount - startFrame)
	fps, accuracy := CalcFPS(m.Ula.Spec(), numFrames, dur.Seconds())
	fmt.Fprintf(output, "%.2f fps (%d frames in %.2f seconds) %.1f%%\n", fps, numFrames, dur.Seconds(), accuracy)

	return memProfile(profile, "mem.profile")
}
