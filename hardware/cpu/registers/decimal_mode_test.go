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

package registers_test

import (
	"testing"

	"github.com/jtallis/goric/hardware/cpu/registers"
	"github.com/jtallis/goric/test"
)

func TestDecimalModeCarry(t *testing.T) {
	var rcarry bool

	r8 := registers.NewRegister(0, "test")

	// addition without carry
	rcarry, _, _, _ = r8.AddDecimal(1, false)
	test.Equate(t, r8.Value(), 0x01)
	test.Equate(t, rcarry, false)

	// addition with carry
	rcarry, _, _, _ = r8.AddDecimal(1, true)
	test.Equate(t, r8.Value(), 0x03)
	test.Equate(t, rcarry, false)

	// subtraction with carry (subtract value)
	r8.Load(9)
	r8.SubtractDecimal(1, true)
	test.Equate(t, r8.Value(), 0x08)

	// subtraction without carry (subtract value and another 1)
	r8.SubtractDecimal(1, false)
	test.Equate(t, r8.Value(), 0x06)

	// addition on tens boundary
	r8.Load(9)
	r8.AddDecimal(1, false)
	test.Equate(t, r8.Value(), 0x10)

	// subtraction on tens boundary
	r8.SubtractDecimal(1, true)
	test.Equate(t, r8.Value(), 0x09)

	// addition on hundreds boundary
	r8.Load(0x99)
	rcarry, _, _, _ = r8.AddDecimal(1, false)
	test.Equate(t, r8.Value(), 0x00)
	test.Equate(t, rcarry, true)

	// subtraction on hundreds boundary
	r8.Load(0x00)
	rcarry, _, _, _ = r8.SubtractDecimal(1, true)
	test.Equate(t, r8.Value(), 0x99)
	test.Equate(t, rcarry, false)
}
