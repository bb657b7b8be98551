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

package logger_test

import (
	"strings"
	"testing"

	"github.com/jtallis/goric/logger"
	"github.com/jtallis/goric/test"
)

func TestLogger(t *testing.T) {
	logger.Clear()

	b := &strings.Builder{}
	test.ExpectedFailure(t, logger.Write(b))
	test.Equate(t, b.String(), "")

	logger.Log("test", "this is a test")
	test.ExpectedSuccess(t, logger.Write(b))
	test.Equate(t, b.String(), "test: this is a test\n")
}

func TestLoggerRepeats(t *testing.T) {
	logger.Clear()

	logger.Log("test", "this is a test")
	logger.Log("test", "this is a test")
	logger.Log("test", "this is a test")

	b := &strings.Builder{}
	test.ExpectedSuccess(t, logger.Write(b))
	test.Equate(t, b.String(), "test: this is a test (repeat x3)\n")
}

func TestLoggerTail(t *testing.T) {
	logger.Clear()

	logger.Log("test", "this is a test")
	logger.Log("test2", "this is another test")
	logger.Log("test3", "this is a finel test")

	b := &strings.Builder{}
	logger.Tail(b, 2)
	test.Equate(t, b.String(), "test2: this is another test\ntest3: this is a finel test\n")
}
