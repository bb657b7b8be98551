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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It provides a convenient method of handling program modes (and
// sub-modes) and allows different flags for each mode.
//
// Whereas with flag.FlagSet you call Parse() with the array of strings as
// the only argument, with modalflag you first NewArgs() with the array of
// arguments and then Parse() with no arguments:
//
//	md = Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	_, _ = md.Parse()
//
// The reason for this difference is to allow effective parsing of modes and
// sub-modes.
//
// Once the arguments have been parsed, non-flag arguments can be retrieved
// with the RemainingArgs() or GetArg() function. For example, handling an
// optional single argument, as the emulator does for the startup program:
//
//	switch len(md.RemainingArgs()) {
//	case 0:
//	case 1:
//		attach(md.GetArg(0))
//	default:
//		return fmt.Errorf("too many arguments")
//	}
//
// Adding flags is similar to the flag package. These functions return a
// pointer to a variable of the specified type, set by Parse():
//
//	variant := md.AddString("variant", "PAL", "television standard")
//
// The important difference to the standard flag package is the handling of
// "modes": a special command line argument that puts the program into a
// different mode of operation, in the manner of the go command's build,
// test, doc, etc. Each mode can carry its own set of flags and arguments.
//
// Sub-modes are declared with the AddSubModes() function. Comparisons are
// case insensitive:
//
//	md.AddSubModes("run", "monitor", "performance", "version")
//
// Parse() will then process flags in the normal way but, unlike the regular
// flag.Parse() function, will check whether the first argument after the
// flags is one of these modes. Once a mode has been selected, NewMode()
// followed by another Parse() processes that mode's own flags:
//
//	_, _ = md.Parse()
//	switch md.Mode() {
//	case "PERFORMANCE":
//		md.NewMode()
//		duration := md.AddString("duration", "5s", "run duration")
//		p, err := md.Parse()
//		switch p {
//		case ParseError:
//			fmt.Println(err)
//			return
//		case ParseHelp:
//			return
//		}
//		perform(*duration)
//	default:
//		fmt.Printf("%s not yet implemented", md.Mode())
//	}
//
// Modes can be chained as deep as required; each NewMode() call may itself
// declare further sub-modes.
package modalflag
