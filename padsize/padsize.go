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

package padsize

import (
	"encoding/binary"
	"io"
	"os"

	"github.com/jetsetilly/cartboot/curated"
)

// Sentinel error patterns.
const (
	CannotStat   = "Can't stat"
	CannotRecord = "padsize: %v"
)

// the padded size includes one megabyte for the ROM header and the
// bootloader
const bootloaderRegion = 1024 * 1024

// page alignment of the kernel image
const pageSize = 4096

// PaddedSize returns the size rounded up to a page boundary plus one
// megabyte.
func PaddedSize(size int64) int64 {
	return ((size + pageSize - 1) &^ (pageSize - 1)) + bootloaderRegion
}

// WriteSizeRecord writes the size as a four byte big-endian record.
func WriteSizeRecord(w io.Writer, size uint32) error {
	err := binary.Write(w, binary.BigEndian, size)
	if err != nil {
		return curated.Errorf(CannotRecord, err)
	}
	return nil
}

// File returns the size of the named file and its padded size.
func File(filename string) (int64, int64, error) {
	st, err := os.Stat(filename)
	if err != nil {
		return 0, 0, curated.Errorf(CannotStat)
	}
	return st.Size(), PaddedSize(st.Size()), nil
}

// Record writes the size record for the file size to the named file. The
// file is created or truncated.
func Record(filename string, size int64) error {
	f, err := os.Create(filename)
	if err != nil {
		return curated.Errorf(CannotRecord, err)
	}
	defer f.Close()

	return WriteSizeRecord(f, uint32(size))
}
