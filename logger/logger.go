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

// Package logger is the central log for the entire application. Log entries
// are kept in memory and written to an io.Writer on request. An echo writer
// can be attached for immediate output.
package logger

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// Entry represents a single line/entry in the log.
type Entry struct {
	Timestamp time.Time
	Tag       string
	Detail    string
	repeated  int
}

func (e Entry) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%s: %s", e.Tag, e.Detail))
	if e.repeated > 0 {
		s.WriteString(fmt.Sprintf(" (repeat x%d)", e.repeated+1))
	}
	s.WriteString("\n")
	return s.String()
}

type logger struct {
	maxEntries int
	entries    []Entry
	echo       io.Writer
}

// only allowing one central log for the entire application. there's no need
// to allow more than one log.
var central *logger

// maximum number of entries in the central logger.
const maxCentral = 256

func init() {
	central = &logger{
		maxEntries: maxCentral,
		entries:    make([]Entry, 0, maxCentral),
	}
}

func (l *logger) log(tag, detail string) {
	// remove all newline characters from tag and detail strings
	tag = strings.ReplaceAll(tag, "\n", "")
	detail = strings.ReplaceAll(detail, "\n", "")

	// compress runs of identical entries
	if len(l.entries) > 0 {
		e := &l.entries[len(l.entries)-1]
		if e.Tag == tag && e.Detail == detail {
			e.repeated++
			e.Timestamp = time.Now()
			return
		}
	}

	l.entries = append(l.entries, Entry{Timestamp: time.Now(), Tag: tag, Detail: detail})

	// maintain maximum length
	if len(l.entries) > l.maxEntries {
		l.entries = l.entries[len(l.entries)-l.maxEntries:]
	}

	if l.echo != nil {
		io.WriteString(l.echo, l.entries[len(l.entries)-1].String())
	}
}

// Log adds an entry to the central logger.
func Log(tag, detail string) {
	central.log(tag, detail)
}

// Logf adds a formatted entry to the central logger.
func Logf(tag, detail string, args ...interface{}) {
	central.log(tag, fmt.Sprintf(detail, args...))
}

// Clear all entries from the central logger.
func Clear() {
	central.entries = central.entries[:0]
}

// SetEcho prints entries to the io.Writer as they are added. A nil writer
// turns echoing off.
func SetEcho(output io.Writer) {
	central.echo = output
}

// Write contents of central logger to io.Writer. Returns true if anything
// was written.
func Write(output io.Writer) bool {
	if len(central.entries) == 0 {
		return false
	}
	for _, e := range central.entries {
		io.WriteString(output, e.String())
	}
	return true
}

// Tail writes the last number of entries to io.Writer.
func Tail(output io.Writer, number int) {
	if number > len(central.entries) {
		number = len(central.entries)
	}
	for _, e := range central.entries[len(central.entries)-number:] {
		io.WriteString(output, e.String())
	}
}
