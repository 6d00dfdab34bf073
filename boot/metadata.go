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

package boot

import (
	"encoding/binary"

	"github.com/jetsetilly/cartboot/hardware/hal"
	"github.com/jetsetilly/cartboot/hardware/memorymap"
)

// Metadata is the information about the kernel and disk images written by
// the packaging step.
type Metadata struct {
	KernelSize uint32
	DiskSize   uint32

	// offset of the disk image from the base address
	DiskOffset uint32
}

// DiskOffset returns the offset of the disk image from the base address. The
// disk image follows the kernel image, aligned to a page.
func DiskOffset(kernelSize uint32) uint32 {
	return memorymap.AlignUp(kernelSize, memorymap.PageSize)
}

// dma is the part of the platform used to read from storage.
type dma interface {
	hal.Storage
	hal.Cache
}

// readSizeRecord reads one big-endian word from storage. the record buffer
// is written back and invalidated before the transfer so that the CPU does
// not see stale data.
func readSizeRecord(plt dma, src uint32) uint32 {
	rec := make([]byte, 4)
	plt.WritebackInvalidateBuffer(rec)
	plt.ReadStorage(rec, src)
	return binary.BigEndian.Uint32(rec)
}

// readMetadata reads the size records that precede the base address.
func readMetadata(plt dma, base uint32) Metadata {
	md := Metadata{
		KernelSize: readSizeRecord(plt, base-4),
		DiskSize:   readSizeRecord(plt, base-8),
	}
	md.DiskOffset = DiskOffset(md.KernelSize)
	return md
}
