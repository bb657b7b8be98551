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

package test

import "testing"

// Equate is used to test equality between one value and another. Generally,
// both values must be of the same type but if value is of type uint8 or
// uint16, the expected value can be an int. The reason for this is that a
// literal number is of type int and it is convenient to write:
//
//	var r uint16
//	r = someFunction()
//	test.Equate(t, r, 10)
//
// without having to cast the expected number.
func Equate(t *testing.T, value, expectedValue interface{}) {
	t.Helper()

	switch v := value.(type) {
	default:
		t.Fatalf("unhandled type for Equate() function (%T)", v)

	case bool:
		ev, ok := expectedValue.(bool)
		if !ok {
			t.Fatalf("values for Equate() are not the same type (%T and %T)", v, expectedValue)
		}
		if v != ev {
			t.Errorf("equation of type %T failed (%v - wanted %v)", v, v, ev)
		}

	case int:
		ev, ok := expectedValue.(int)
		if !ok {
			t.Fatalf("values for Equate() are not the same type (%T and %T)", v, expectedValue)
		}
		if v != ev {
			t.Errorf("equation of type %T failed (%d - wanted %d)", v, v, ev)
		}

	case uint8:
		switch ev := expectedValue.(type) {
		case uint8:
			if v != ev {
				t.Errorf("equation of type %T failed (%#02x - wanted %#02x)", v, v, ev)
			}
		case int:
			if v != uint8(ev) {
				t.Errorf("equation of type %T failed (%#02x - wanted %#02x)", v, v, uint8(ev))
			}
		default:
			t.Fatalf("values for Equate() are not the same type (%T and %T)", v, expectedValue)
		}

	case uint16:
		switch ev := expectedValue.(type) {
		case uint16:
			if v != ev {
				t.Errorf("equation of type %T failed (%#04x - wanted %#04x)", v, v, ev)
			}
		case int:
			if v != uint16(ev) {
				t.Errorf("equation of type %T failed (%#04x - wanted %#04x)", v, v, uint16(ev))
			}
		default:
			t.Fatalf("values for Equate() are not the same type (%T and %T)", v, expectedValue)
		}

	case uint64:
		switch ev := expectedValue.(type) {
		case uint64:
			if v != ev {
				t.Errorf("equation of type %T failed (%d - wanted %d)", v, v, ev)
			}
		case int:
			if v != uint64(ev) {
				t.Errorf("equation of type %T failed (%d - wanted %d)", v, v, ev)
			}
		default:
			t.Fatalf("values for Equate() are not the same type (%T and %T)", v, expectedValue)
		}

	case string:
		ev, ok := expectedValue.(string)
		if !ok {
			t.Fatalf("values for Equate() are not the same type (%T and %T)", v, expectedValue)
		}
		if v != ev {
			t.Errorf("equation of type %T failed (%s - wanted %s)", v, v, ev)
		}
	}
}
