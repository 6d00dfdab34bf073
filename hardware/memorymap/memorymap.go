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

package memorymap

import "fmt"

// Area represents the different areas of physical memory.
type Area int

func (a Area) String() string {
	switch a {
	case RDRAM:
		return "RDRAM"
	case Cartridge:
		return "Cartridge"
	case ISViewer:
		return "ISViewer"
	}

	return "undefined"
}

// List of valid Area values.
const (
	Undefined Area = iota
	RDRAM
	Cartridge
	ISViewer
)

// CPU address windows onto physical memory.
const (
	KSEG0       = uint32(0x80000000)
	KSEG1       = uint32(0xa0000000)
	SegmentMask = uint32(0x1fffffff)
)

// The origin and memory top for each area of physical memory. RDRAM memtop
// is the largest possible size (with the expansion pak). The actual size of
// installed RDRAM is written by the IPL to the OSMemSize word.
//
// The ISViewer sits inside the cartridge domain. MapAddress() gives it
// precedence.
const (
	OriginRDRAM    = uint32(0x00000000)
	MemtopRDRAM    = uint32(0x007fffff)
	OriginCart     = uint32(0x10000000)
	MemtopCart     = uint32(0x1fbfffff)
	OriginISViewer = uint32(0x13ff0000)
	MemtopISViewer = uint32(0x13ffffff)
)

// Installed RDRAM size in bytes, as written by the IPL. Consoles booted with
// a 6105 CIC store the value at a different location.
const (
	OSMemSize     = uint32(0xa0000318)
	OSMemSize6105 = uint32(0xa00003f0)
	CIC6105       = 6105
)

// Cartridge layout.
const (
	KernelBase       = uint32(0xb0101000)
	KernelSizeRecord = KernelBase - 4
	DiskSizeRecord   = KernelBase - 8

	// the bootloader occupies the area between the 4k ROM header and
	// KernelBase. the size records are the last 8 bytes of that area
	OriginBootloader = uint32(0xb0001000)
	HeaderSize       = OriginBootloader - (KSEG1 | OriginCart)
	BootloaderSize   = KernelBase - OriginBootloader
)

// PageSize is the alignment of the disk image that follows the kernel image.
const PageSize = uint32(4096)

// ISViewer registers. The buffer is written as big-endian 32bit words and is
// consumed when the number of bytes is written to the WriteLen register.
const (
	ISViewerWriteLen  = uint32(0xb3ff0014)
	ISViewerBuffer    = uint32(0xb3ff0020)
	ISViewerBufferLen = uint32(0x0000ff7f)
	ISViewerProbe     = uint32(0x12345678)
)

// AlignUp rounds v up to the next multiple of align, which must be a power
// of two.
func AlignUp(v uint32, align uint32) uint32 {
	return (v + align - 1) &^ (align - 1)
}

// MapAddress translates the address from either CPU window to a physical
// address and reports the area it falls within.
func MapAddress(address uint32) (uint32, Area) {
	phys := address & SegmentMask

	// note that the order of these filters is important
	if phys >= OriginISViewer && phys <= MemtopISViewer {
		return phys, ISViewer
	}

	if phys >= OriginCart && phys <= MemtopCart {
		return phys, Cartridge
	}

	if phys <= MemtopRDRAM {
		return phys, RDRAM
	}

	return phys, Undefined
}

// Summary returns a short description of the address. Useful for diagnostics.
func Summary(address uint32) string {
	phys, area := MapAddress(address)
	return fmt.Sprintf("%#08x (%s %#08x)", address, area, phys)
}
