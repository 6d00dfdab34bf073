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

package main

import (
	"bytes"
	"debug/elf"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/cartboot/modalflag"
	"github.com/jetsetilly/cartboot/romimage"
	"github.com/jetsetilly/cartboot/test"
)

// prepare a Modes instance in the same way as launch() and return it after
// the top level parse
func modes(t *testing.T, out *test.CompareWriter, args ...string) *modalflag.Modes {
	t.Helper()
	md := &modalflag.Modes{Output: out}
	md.NewArgs(args)
	md.NewMode()
	md.AddSubModes("BOOT", "PACK", "PADSIZE", "PERFORMANCE")
	p, err := md.Parse()
	test.DemandSuccess(t, err)
	test.DemandEquality(t, p, modalflag.ParseContinue)
	return md
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	test.DemandSuccess(t, os.WriteFile(fn, data, 0644))
	return fn
}

func kernel() []byte {
	return romimage.Kernel(0x80000400, romimage.Segment{
		Type:    elf.PT_LOAD,
		PAddr:   0x80000400,
		Data:    bytes.Repeat([]byte{0xaa}, 100),
		MemSize: 150,
	})
}

func TestPadSize(t *testing.T) {
	var out test.CompareWriter

	fn := writeFile(t, "kernel", make([]byte, 5000))
	md := modes(t, &out, "PADSIZE", fn)
	test.ExpectEquality(t, md.Mode(), "PADSIZE")
	test.ExpectSuccess(t, padSize(md))
	test.ExpectEquality(t, out.String(), "1056768")

	// size record
	out.Clear()
	rec := filepath.Join(t.TempDir(), "size.bin")
	md = modes(t, &out, "PADSIZE", fn, rec)
	test.ExpectSuccess(t, padSize(md))
	test.ExpectEquality(t, out.String(), "1056768")

	d, err := os.ReadFile(rec)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, bytes.Equal(d, []byte{0x00, 0x00, 0x13, 0x88}))
}

func TestPadSizeUsage(t *testing.T) {
	var out test.CompareWriter

	md := modes(t, &out, "PADSIZE")
	err := padSize(md)
	test.ExpectEquality(t, err, errQuiet)
	test.ExpectSuccess(t, strings.HasPrefix(out.String(), "Usage: "))
	test.ExpectEquality(t, strings.Count(out.String(), "Usage: "), 2)
	test.ExpectSuccess(t, strings.Contains(out.String(), " file size.bin\n"))

	out.Clear()
	md = modes(t, &out, "PADSIZE", filepath.Join(t.TempDir(), "missing"))
	err = padSize(md)
	test.ExpectEquality(t, err, errQuiet)
	test.ExpectEquality(t, out.String(), "Can't stat\n")

	out.Clear()
	md = modes(t, &out, "PADSIZE", "a", "b", "c")
	test.ExpectFailure(t, padSize(md))
}

func TestPack(t *testing.T) {
	var out test.CompareWriter

	k := writeFile(t, "kernel", kernel())
	d := writeFile(t, "disk", []byte("disk image"))
	rom := filepath.Join(t.TempDir(), "cart.z64")

	md := modes(t, &out, "PACK", "-kernel", k, "-disk", d, rom)
	test.ExpectEquality(t, md.Mode(), "PACK")
	test.DemandSuccess(t, pack(md))
	test.ExpectSuccess(t, strings.HasSuffix(out.String(), "disk 10 bytes at 0x102000\n"))

	data, err := os.ReadFile(rom)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(data), 0x102000+10)
	test.ExpectEquality(t, string(data[0x102000:]), "disk image")

	// output file is required
	md = modes(t, &out, "PACK", "-kernel", k)
	test.ExpectFailure(t, pack(md))

	// missing part
	md = modes(t, &out, "PACK", "-kernel", filepath.Join(t.TempDir(), "missing"), rom)
	test.ExpectFailure(t, pack(md))
}

func TestBootMode(t *testing.T) {
	var out test.CompareWriter

	k := writeFile(t, "kernel", kernel())
	d := writeFile(t, "disk", make([]byte, 1024))

	md := modes(t, &out, "BOOT", "-kernel", k, "-disk", d)
	test.ExpectEquality(t, md.Mode(), "BOOT")
	test.DemandSuccess(t, bootMode(md, &mainSync{}))

	s := out.String()
	test.ExpectSuccess(t, strings.HasPrefix(s, "Found 8192 kb of RAM\n"))
	test.ExpectSuccess(t, strings.Contains(s, "Jumping: 0x80000400\n"))
	test.ExpectSuccess(t, strings.Contains(s, "* state: Transferred\n"))
	test.ExpectSuccess(t, strings.Contains(s, "* entry: 0x80000400\n"))
	test.ExpectSuccess(t, strings.Contains(s, "* argv: hello n64cart.start=2953846784 n64cart.size=1024 root=/dev/n64cart\n"))
	test.ExpectSuccess(t, strings.Contains(s, "* segment: "))
	test.ExpectSuccess(t, !strings.Contains(s, "* fault: "))
}

func TestBootModeHalt(t *testing.T) {
	var out test.CompareWriter

	// a cartridge image with no kernel
	rom := writeFile(t, "cart.z64", make([]byte, romimage.OffsetKernel))

	md := modes(t, &out, "BOOT", rom)
	test.DemandSuccess(t, bootMode(md, &mainSync{}))

	s := out.String()
	test.ExpectSuccess(t, strings.Contains(s, "No kernel configured\n"))
	test.ExpectSuccess(t, strings.Contains(s, "* halted: "))
	test.ExpectSuccess(t, strings.Contains(s, "* state: Halted\n"))
	test.ExpectSuccess(t, !strings.Contains(s, "* entry: "))
}

func TestBootModeArguments(t *testing.T) {
	var out test.CompareWriter

	k := writeFile(t, "kernel", kernel())

	// no cartridge
	md := modes(t, &out, "BOOT")
	test.ExpectFailure(t, bootMode(md, &mainSync{}))

	// disk without kernel
	md = modes(t, &out, "BOOT", "-disk", k)
	test.ExpectFailure(t, bootMode(md, &mainSync{}))

	// cartridge and kernel together
	md = modes(t, &out, "BOOT", "-kernel", k, k)
	test.ExpectFailure(t, bootMode(md, &mainSync{}))

	// unsupported ram size
	md = modes(t, &out, "BOOT", "-ram", "6", "-kernel", k)
	test.ExpectFailure(t, bootMode(md, &mainSync{}))

	// unexpected hash
	rom := writeFile(t, "cart.z64", make([]byte, romimage.OffsetKernel))
	md = modes(t, &out, "BOOT", "-hash", "0000", rom)
	test.ExpectFailure(t, bootMode(md, &mainSync{}))
}

func TestPerformanceMode(t *testing.T) {
	var out test.CompareWriter

	k := writeFile(t, "kernel", kernel())

	md := modes(t, &out, "PERFORMANCE", "-duration", "10ms", "-ram", "4", "-kernel", k)
	test.ExpectEquality(t, md.Mode(), "PERFORMANCE")
	test.ExpectSuccess(t, perform(md))
	test.ExpectSuccess(t, strings.Contains(out.String(), "boots per second"))

	// unsupported ram size is an error as it is for the BOOT mode
	out.Clear()
	md = modes(t, &out, "PERFORMANCE", "-duration", "10ms", "-ram", "5", "-kernel", k)
	test.ExpectFailure(t, perform(md))
	test.ExpectEquality(t, out.Len(), 0)

	// nothing is measured in zero time
	md = modes(t, &out, "PERFORMANCE", "-duration", "0s", "-kernel", k)
	test.ExpectFailure(t, perform(md))
	test.ExpectSuccess(t, !strings.Contains(out.String(), "NaN"))
}
