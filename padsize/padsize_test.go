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

package padsize_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/cartboot/curated"
	"github.com/jetsetilly/cartboot/padsize"
	"github.com/jetsetilly/cartboot/test"
)

func TestPaddedSize(t *testing.T) {
	test.ExpectEquality(t, padsize.PaddedSize(0), int64(1048576))
	test.ExpectEquality(t, padsize.PaddedSize(1), int64(1048576+4096))
	test.ExpectEquality(t, padsize.PaddedSize(4096), int64(1048576+4096))
	test.ExpectEquality(t, padsize.PaddedSize(4097), int64(1048576+8192))

	for s := int64(0); s < 20000; s += 333 {
		test.ExpectEquality(t, padsize.PaddedSize(s), ((s+4095)&^4095)+1048576, s)
	}
}

func TestWriteSizeRecord(t *testing.T) {
	w := &test.CompareWriter{}
	test.ExpectSuccess(t, padsize.WriteSizeRecord(w, 0x00012345))
	test.ExpectEquality(t, w.String(), "\x00\x01\x23\x45")
}

func TestFile(t *testing.T) {
	dir := t.TempDir()

	kernel := filepath.Join(dir, "vmlinux")
	test.DemandSuccess(t, os.WriteFile(kernel, make([]byte, 5000), 0644))

	size, padded, err := padsize.File(kernel)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, size, int64(5000))
	test.ExpectEquality(t, padded, int64(8192+1048576))

	record := filepath.Join(dir, "size.bin")
	test.DemandSuccess(t, padsize.Record(record, size))
	d, err := os.ReadFile(record)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, string(d), "\x00\x00\x13\x88")

	_, _, err = padsize.File(filepath.Join(dir, "missing"))
	test.ExpectSuccess(t, curated.Is(err, padsize.CannotStat))
}
