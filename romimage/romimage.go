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

package romimage

import (
	"encoding/binary"

	"github.com/jetsetilly/cartboot/curated"
	"github.com/jetsetilly/cartboot/hardware/memorymap"
)

// Sentinel error patterns.
const (
	HeaderTooLarge     = "romimage: header is too large (%d bytes, maximum %d)"
	BootloaderTooLarge = "romimage: bootloader is too large (%d bytes, maximum %d)"
)

// Offsets of each part of the image from the start of the ROM.
const (
	OffsetBootloader = memorymap.HeaderSize
	OffsetDiskSize   = memorymap.HeaderSize + memorymap.BootloaderSize - 8
	OffsetKernelSize = memorymap.HeaderSize + memorymap.BootloaderSize - 4
	OffsetKernel     = memorymap.HeaderSize + memorymap.BootloaderSize
)

// Layout contains the parts of the image. Any part can be empty.
type Layout struct {
	Header     []byte
	Bootloader []byte
	Kernel     []byte
	Disk       []byte
}

// DiskOffset returns the offset of the disk image from the start of the ROM.
func (l Layout) DiskOffset() uint32 {
	return OffsetKernel + memorymap.AlignUp(uint32(len(l.Kernel)), memorymap.PageSize)
}

// Build the image. The kernel and disk size records are taken from the
// length of the Kernel and Disk fields.
func Build(l Layout) ([]byte, error) {
	if len(l.Header) > int(memorymap.HeaderSize) {
		return nil, curated.Errorf(HeaderTooLarge, len(l.Header), memorymap.HeaderSize)
	}
	if len(l.Bootloader) > int(memorymap.BootloaderSize-8) {
		return nil, curated.Errorf(BootloaderTooLarge, len(l.Bootloader), memorymap.BootloaderSize-8)
	}

	diskOffset := l.DiskOffset()
	rom := make([]byte, int(diskOffset)+len(l.Disk))

	copy(rom, l.Header)
	copy(rom[OffsetBootloader:], l.Bootloader)
	binary.BigEndian.PutUint32(rom[OffsetDiskSize:], uint32(len(l.Disk)))
	binary.BigEndian.PutUint32(rom[OffsetKernelSize:], uint32(len(l.Kernel)))
	copy(rom[OffsetKernel:], l.Kernel)
	copy(rom[diskOffset:], l.Disk)

	return rom, nil
}
