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

package monitor

import (
	"os"
	"strconv"
	"strings"

	"github.com/jtallis/goric/curated"
	"github.com/jtallis/goric/disassembly"
	"github.com/jtallis/goric/hardware"
	"github.com/jtallis/goric/paths"
	"github.com/jtallis/goric/rewind"
)

// error messages from the monitor.
const (
	TerminalError = "monitor: %v"
	BadArgument   = "monitor: bad argument (%s)"
)

const prompt = "] "

const helpText = `r              show cpu registers
m ADDR [LEN]   dump memory from hex ADDR (default 64 bytes)
l [ADDR] [N]   list N instructions from hex ADDR (default pc, 8)
p ADDR VAL     poke hex VAL into hex ADDR
s [N]          step N cpu instructions (default 1)
f [N]          run N frames (default 1)
b [N]          wind back N recorded frames (default 1)
w [NAME]       write machine snapshot to the resource directory
o NAME         restore machine snapshot from the resource directory
i              machine information
q              quit the monitor`

// Monitor is an interactive, terminal based inspector for a machine. It
// reads commands a line at a time and peeks and pokes the machine between
// updates, so the machine only ever advances on whole instructions or
// whole frames.
type Monitor struct {
	term terminal
	m    *hardware.Machine
	rwnd *rewind.Rewind
}

// NewMonitor is the preferred method of initialisation for the Monitor
// type. The monitor takes over the calling terminal until Run() returns.
func NewMonitor(m *hardware.Machine) (*Monitor, error) {
	mon := &Monitor{m: m, rwnd: rewind.NewRewind(m)}
	if err := mon.term.initialise(os.Stdin, os.Stdout); err != nil {
		return nil, curated.Errorf(TerminalError, err)
	}
	return mon, nil
}

// Run the monitor's input loop until the user quits or interrupts it. The
// terminal is restored to canonical mode before returning.
func (mon *Monitor) Run() error {
	mon.term.cbreakMode()
	defer mon.term.canonicalMode()

	mon.term.print("goric monitor. h for help\n")

	for {
		mon.term.print(prompt)
		line, ok := mon.term.readLine()
		if !ok {
			return nil
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch strings.ToLower(fields[0]) {
		case "h", "?":
			mon.term.print("%s\n", helpText)

		case "q":
			return nil

		case "r":
			mon.term.print("%s\n", mon.m.CPU.String())

		case "m":
			if err := mon.dump(fields[1:]); err != nil {
				mon.term.print("%s\n", err)
			}

		case "l":
			if err := mon.list(fields[1:]); err != nil {
				mon.term.print("%s\n", err)
			}

		case "p":
			if err := mon.poke(fields[1:]); err != nil {
				mon.term.print("%s\n", err)
			}

		case "s":
			n, err := count(fields[1:])
			if err != nil {
				mon.term.print("%s\n", err)
				continue
			}
			for i := 0; i < n; i++ {
				mon.m.StepInstruction()
			}
			mon.term.print("%s\n", mon.m.CPU.String())

		case "f":
			n, err := count(fields[1:])
			if err != nil {
				mon.term.print("%s\n", err)
				continue
			}
			for i := 0; i < n; i++ {
				mon.m.Update(false)
				if err := mon.rwnd.RecordFrame(); err != nil {
					mon.term.print("%s\n", err)
					break
				}
			}
			mon.term.print("frame %d\n", mon.m.FrameCount)

		case "b":
			n, err := count(fields[1:])
			if err != nil {
				mon.term.print("%s\n", err)
				continue
			}
			if err := mon.rwnd.StepBack(n); err != nil {
				mon.term.print("%s\n", err)
				continue
			}
			mon.term.print("frame %d\n", mon.m.FrameCount)

		case "w":
			if err := mon.writeSnapshot(fields[1:]); err != nil {
				mon.term.print("%s\n", err)
			}

		case "o":
			if err := mon.openSnapshot(fields[1:]); err != nil {
				mon.term.print("%s\n", err)
			}

		case "i":
			mon.term.print("variant: %s\n", mon.m.Ula.Spec().ID)
			mon.term.print("ram: %s\n", mon.m.Config.RAM)
			mon.term.print("frame: %d\n", mon.m.FrameCount)
			mon.term.print("slot bank: %d\n", mon.m.Mem.Slot.CurrentBank())

		default:
			mon.term.print("unknown command (%s). h for help\n", fields[0])
		}
	}
}

// dump prints a hex listing of memory. no side effects on the machine.
func (mon *Monitor) dump(args []string) error {
	if len(args) < 1 {
		return curated.Errorf(BadArgument, "m ADDR [LEN]")
	}

	addr, err := parseAddress(args[0])
	if err != nil {
		return err
	}

	length := 64
	if len(args) > 1 {
		l, err := strconv.ParseUint(args[1], 16, 16)
		if err != nil {
			return curated.Errorf(BadArgument, args[1])
		}
		length = int(l)
	}

	for i := 0; i < length; i += 16 {
		mon.term.print("%04x ", addr+uint16(i))
		for j := 0; j < 16 && i+j < length; j++ {
			mon.term.print(" %02x", mon.m.Mem.Peek(addr+uint16(i+j)))
		}
		mon.term.print("\n")
	}

	return nil
}

// list disassembles from the given address, or from the program counter
// if no address is given.
func (mon *Monitor) list(args []string) error {
	addr := mon.m.CPU.PC.Address()
	if len(args) > 0 {
		a, err := parseAddress(args[0])
		if err != nil {
			return err
		}
		addr = a
	}

	num := 8
	if len(args) > 1 {
		n, err := count(args[1:])
		if err != nil {
			return err
		}
		num = n
	}

	for _, e := range disassembly.Block(mon.m.Mem.Peek, addr, num) {
		mon.term.print("%s\n", e.String())
	}

	return nil
}

func (mon *Monitor) poke(args []string) error {
	if len(args) != 2 {
		return curated.Errorf(BadArgument, "p ADDR VAL")
	}

	addr, err := parseAddress(args[0])
	if err != nil {
		return err
	}

	val, err := strconv.ParseUint(args[1], 16, 8)
	if err != nil {
		return curated.Errorf(BadArgument, args[1])
	}

	mon.m.Mem.Poke(addr, uint8(val))
	return nil
}

const snapshotDir = "snapshots"

func (mon *Monitor) writeSnapshot(args []string) error {
	name := paths.UniqueFilename("snapshot", "")
	if len(args) > 0 {
		name = args[0]
	}

	state, err := mon.m.Snapshot()
	if err != nil {
		return err
	}

	p, err := paths.ResourcePath(snapshotDir, name)
	if err != nil {
		return err
	}
	if err := os.WriteFile(p, state, 0600); err != nil {
		return err
	}

	mon.term.print("written %s\n", p)
	return nil
}

func (mon *Monitor) openSnapshot(args []string) error {
	if len(args) != 1 {
		return curated.Errorf(BadArgument, "o NAME")
	}

	p, err := paths.ResourcePath(snapshotDir, args[0])
	if err != nil {
		return err
	}
	state, err := os.ReadFile(p)
	if err != nil {
		return err
	}

	if err := mon.m.RestoreSnapshot(state); err != nil {
		return err
	}

	// history recorded before the restore no longer leads to the
	// machine's current state
	mon.rwnd.Reset()

	mon.term.print("frame %d\n", mon.m.FrameCount)
	return nil
}

func parseAddress(s string) (uint16, error) {
	a, err := strconv.ParseUint(strings.TrimPrefix(s, "$"), 16, 16)
	if err != nil {
		return 0, curated.Errorf(BadArgument, s)
	}
	return uint16(a), nil
}

// count parses the optional repeat argument used by the step and frame
// commands. note that unlike addresses, the repeat count is decimal.
func count(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return 0, curated.Errorf(BadArgument, args[0])
	}
	return n, nil
}
