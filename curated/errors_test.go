// This file is part of Cartboot.
//
// Cartboot is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Cartboot is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Cartboot.  If not, see <https://www.gnu.org/licenses/>.

package curated_test

import (
	"errors"
	"testing"

	"github.com/jetsetilly/cartboot/curated"
	"github.com/jetsetilly/cartboot/test"
)

const testPattern = "boot: %v"
const testFatal = "no kernel configured"

func TestDuplicateParts(t *testing.T) {
	e := curated.Errorf(testPattern, "no kernel configured")
	test.ExpectEquality(t, e.Error(), "boot: no kernel configured")

	// wrapping an error of the same prefix does not duplicate the prefix
	f := curated.Errorf(testPattern, e)
	test.ExpectEquality(t, f.Error(), "boot: no kernel configured")

	// different prefixes are kept
	g := curated.Errorf("emulation: %v", f)
	test.ExpectEquality(t, g.Error(), "emulation: boot: no kernel configured")
}

func TestIs(t *testing.T) {
	e := curated.Errorf(testFatal)
	test.ExpectSuccess(t, curated.Is(e, testFatal))
	test.ExpectSuccess(t, curated.IsAny(e))

	f := curated.Errorf(testPattern, e)
	test.ExpectFailure(t, curated.Is(f, testFatal))
	test.ExpectSuccess(t, curated.Is(f, testPattern))
}

func TestHas(t *testing.T) {
	e := curated.Errorf(testFatal)
	f := curated.Errorf(testPattern, e)
	g := curated.Errorf("emulation: %v", f)

	test.ExpectSuccess(t, curated.Has(g, testFatal))
	test.ExpectSuccess(t, curated.Has(g, testPattern))
	test.ExpectFailure(t, curated.Has(g, "not a pattern"))
}

func TestPlainErrors(t *testing.T) {
	e := errors.New("plain error")
	test.ExpectFailure(t, curated.IsAny(e))
	test.ExpectFailure(t, curated.Is(e, "plain error"))
	test.ExpectFailure(t, curated.Has(e, "plain error"))
	test.ExpectFailure(t, curated.IsAny(nil))

	// curated errors unwrap to the first error value
	f := curated.Errorf("storage: %v", e)
	test.ExpectSuccess(t, errors.Is(f, e))
}
