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

package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/jtallis/goric/digest"
	"github.com/jtallis/goric/hardware"
	"github.com/jtallis/goric/logger"
	"github.com/jtallis/goric/modalflag"
	"github.com/jtallis/goric/monitor"
	"github.com/jtallis/goric/performance"
	"github.com/jtallis/goric/performance/limiter"
	"github.com/jtallis/goric/programloader"
	"github.com/jtallis/goric/statsview"
	"github.com/jtallis/goric/version"
)

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("RUN", "MONITOR", "PERFORMANCE", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "RUN":
		err = run(md)

	case "MONITOR":
		err = monitorMode(md)

	case "PERFORMANCE":
		err = perform(md)

	case "VERSION":
		vrsn, revision := version.Version()
		fmt.Printf("%s %s (%s)\n", version.ApplicationName, vrsn, revision)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		os.Exit(20)
	}
}

// startup builds the optional program loader from the remaining command
// line arguments. zero arguments means the machine boots bare.
func startup(md *modalflag.Modes) (*programloader.Loader, error) {
	switch len(md.RemainingArgs()) {
	case 0:
		return nil, nil
	case 1:
		ld := programloader.NewLoader(md.GetArg(0), programloader.KindAuto)
		return &ld, nil
	default:
		return nil, fmt.Errorf("too many arguments for %s mode", md)
	}
}

func run(md *modalflag.Modes) error {
	md.NewMode()

	variant := md.AddString("variant", "PAL", "machine variant: PAL, NTSC")
	fpsCap := md.AddBool("fpscap", true, "cap frame rate to specification")
	log := md.AddBool("log", false, "echo debugging log to stdout")
	stats := md.AddBool("statsview", false, "run stats server")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stdout)
	} else {
		logger.SetEcho(nil)
	}

	if *stats {
		statsview.Launch(os.Stdout)
	}

	ld, err := startup(md)
	if err != nil {
		return err
	}

	m, err := hardware.NewMachine(hardware.Config{Variant: *variant, Startup: ld})
	if err != nil {
		return err
	}

	lim := limiter.NewFPSLimiter(m.Ula.Spec().FramesPerSecond)
	dig := digest.NewVideo()

	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	startTime := time.Now()
	startFrame := m.FrameCount

	for {
		if *fpsCap {
			lim.Wait()
		}
		m.Update(!*fpsCap)
		if px := m.GetFramePixels(); px != nil {
			dig.WriteFrame(px)
		}

		select {
		case <-intChan:
			fmt.Println("\r")
			dur := time.Since(startTime).Seconds()
			numFrames := int(m.FrameCount - startFrame)
			fps, accuracy := performance.CalcFPS(m.Ula.Spec(), numFrames, dur)
			fmt.Printf("%.2f fps (%d frames in %.2f seconds) %.1f%%\n", fps, numFrames, dur, accuracy)
			fmt.Printf("video digest: %s\n", dig.Hash())
			return nil
		default:
		}
	}
}

func monitorMode(md *modalflag.Modes) error {
	md.NewMode()

	variant := md.AddString("variant", "PAL", "machine variant: PAL, NTSC")
	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stdout)
	} else {
		logger.SetEcho(nil)
	}

	ld, err := startup(md)
	if err != nil {
		return err
	}

	m, err := hardware.NewMachine(hardware.Config{Variant: *variant, Startup: ld})
	if err != nil {
		return err
	}

	mon, err := monitor.NewMonitor(m)
	if err != nil {
		return err
	}

	return mon.Run()
}

func perform(md *modalflag.Modes) error {
	md.NewMode()

	variant := md.AddString("variant", "PAL", "machine variant: PAL, NTSC")
	duration := md.AddString("duration", "5s", "run duration (note: there is a 2s overhead)")
	profile := md.AddBool("profile", false, "perform cpu and memory profiling")
	log := md.AddBool("log", false, "echo debugging log to stdout")
	stats := md.AddBool("statsview", false, "run stats server")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stdout)
	} else {
		logger.SetEcho(nil)
	}

	if *stats {
		statsview.Launch(os.Stdout)
	}

	ld, err := startup(md)
	if err != nil {
		return err
	}

	return performance.Check(os.Stdout, *profile, ld, *variant, *duration)
}
