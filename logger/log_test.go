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

package logger_test

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/jetsetilly/cartboot/logger"
	"github.com/jetsetilly/cartboot/test"
)

func TestLogger(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	log.Write(w)
	test.ExpectEquality(t, w.String(), "")

	log.Log(logger.Allow, "boot", "metadata read")
	log.Write(w)
	test.ExpectEquality(t, w.String(), "boot: metadata read\n")

	w.Reset()
	log.Log(logger.Allow, "emulated", "dma of odd length")
	log.Write(w)
	test.ExpectEquality(t, w.String(), "boot: metadata read\nemulated: dma of odd length\n")

	// asking for too many entries in a Tail() should be okay
	w.Reset()
	log.Tail(w, 100)
	test.ExpectEquality(t, w.String(), "boot: metadata read\nemulated: dma of odd length\n")

	// asking for fewer entries is okay too
	w.Reset()
	log.Tail(w, 1)
	test.ExpectEquality(t, w.String(), "emulated: dma of odd length\n")

	// and no entries
	w.Reset()
	log.Tail(w, 0)
	test.ExpectEquality(t, w.String(), "")
}

func TestRepeatedEntries(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	log.Log(logger.Allow, "boot", "waiting")
	log.Log(logger.Allow, "boot", "waiting")
	log.Log(logger.Allow, "boot", "waiting")
	log.Write(w)
	test.ExpectEquality(t, w.String(), "boot: waiting (repeat x3)\n")
}

func TestMaximumEntries(t *testing.T) {
	log := logger.NewLogger(2)
	w := &strings.Builder{}

	log.Logf(logger.Allow, "boot", "entry %d", 1)
	log.Logf(logger.Allow, "boot", "entry %d", 2)
	log.Logf(logger.Allow, "boot", "entry %d", 3)
	log.Write(w)
	test.ExpectEquality(t, w.String(), "boot: entry 2\nboot: entry 3\n")
}

func TestEcho(t *testing.T) {
	log := logger.NewLogger(10)
	echo := &test.CompareWriter{}

	log.SetEcho(echo)
	log.Log(logger.Allow, "diagnostic", "Entry: 0x80000400")
	test.ExpectSuccess(t, echo.Compare("diagnostic: Entry: 0x80000400\n"))

	log.SetEcho(nil)
	log.Log(logger.Allow, "diagnostic", "Jumping: 0x80000400")
	test.ExpectSuccess(t, echo.Compare("diagnostic: Entry: 0x80000400\n"))
}

// permission is randomised. there's no need to do the randomisation but it
// exercises both sides of the permission check
type prohibitLogging struct {
	allow int
}

func (p prohibitLogging) AllowLogging() bool {
	return p.allow > 50
}

func TestPermissions(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	var p prohibitLogging

	for range 100 {
		p.allow = rand.IntN(100)
		log.Clear()
		w.Reset()
		log.Log(p, "tag", "detail")
		log.Write(w)
		if p.AllowLogging() {
			test.ExpectEquality(t, w.String(), "tag: detail\n")
		} else {
			test.ExpectEquality(t, w.String(), "")
		}
	}
}

type stringerTest struct{}

func (_ stringerTest) String() string {
	return "stringer test"
}

func TestDetailTypes(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	log.Log(logger.Allow, "tag", errors.New("test error"))
	log.Log(logger.Allow, "tag", stringerTest{})
	log.Log(logger.Allow, "tag", 100)
	log.Logf(logger.Allow, "tag", "wrapped: %v", errors.New("test error"))
	log.Write(w)
	test.ExpectEquality(t, w.String(), "tag: test error\ntag: stringer test\ntag: 100\ntag: wrapped: test error\n")
}

func TestColorizer(t *testing.T) {
	w := &test.CompareWriter{}
	c := logger.NewColorizer(w)

	// no pen registered for tag
	c.Write([]byte("boot: state Start\n"))
	test.ExpectSuccess(t, w.Compare("boot: state Start\n"))

	w.Clear()
	c.Pen("boot", "red")
	c.Write([]byte("boot: state Start\n"))
	test.ExpectInequality(t, w.String(), "boot: state Start\n")
	test.ExpectSuccess(t, strings.HasSuffix(w.String(), ": state Start\n"))
}
