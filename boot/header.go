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
	"debug/elf"
	"encoding/binary"
	"fmt"
	"strings"
)

// HeaderBufferSize is the size of the window read from the start of the
// kernel image.
const HeaderBufferSize = 256

// size of an ELF32 program header. the e_phentsize field is not consulted.
const progHeaderSize = 32

// HeaderBuffer is the scratch memory used to inspect the kernel's image
// header. Once the loadable segment has been materialized the same memory is
// reused for the kernel arguments by calling IntoArgumentStrings().
type HeaderBuffer struct {
	data []byte
}

// NewHeaderBuffer is the preferred method of initialisation for the
// HeaderBuffer type.
func NewHeaderBuffer() *HeaderBuffer {
	return &HeaderBuffer{
		data: make([]byte, HeaderBufferSize),
	}
}

// Bytes returns the underlying memory. Panics if the memory has been handed
// over to the argument strings.
func (hb *HeaderBuffer) Bytes() []byte {
	if hb.data == nil {
		panic("header buffer used after conversion to argument strings")
	}
	return hb.data
}

// ImageHeader is the part of the ELF32 file header that is needed to find and
// start the kernel.
type ImageHeader struct {
	Ident [elf.EI_NIDENT]byte
	Entry uint32
	Phoff uint32
	Phnum uint16
}

// Problems returns a list of reasons why the header is not a 32bit ELF
// header. An empty list means the header is good.
func (hdr ImageHeader) Problems() []string {
	var p []string
	if string(hdr.Ident[1:4]) != elf.ELFMAG[1:4] {
		p = append(p, "Not an ELF kernel?")
	}
	if elf.Class(hdr.Ident[elf.EI_CLASS]) != elf.ELFCLASS32 {
		p = append(p, "Not a 32-bit kernel?")
	}
	return p
}

func (hdr ImageHeader) String() string {
	if p := hdr.Problems(); len(p) > 0 {
		return strings.Join(p, " ")
	}
	return fmt.Sprintf("entry %#08x, %d program headers at %#x", hdr.Entry, hdr.Phnum, hdr.Phoff)
}

// Segment is a loadable program header entry.
type Segment struct {
	Type     elf.ProgType
	Offset   uint32
	PAddr    uint32
	FileSize uint32
	MemSize  uint32
}

func (seg Segment) String() string {
	return fmt.Sprintf("%s offset %#x paddr %#08x filesz %d memsz %d",
		seg.Type, seg.Offset, seg.PAddr, seg.FileSize, seg.MemSize)
}

// decodeHeader interprets the start of the header buffer as an ELF32 file
// header. the kernel is big-endian.
func decodeHeader(data []byte) ImageHeader {
	var hdr ImageHeader
	copy(hdr.Ident[:], data)
	hdr.Entry = binary.BigEndian.Uint32(data[0x18:])
	hdr.Phoff = binary.BigEndian.Uint32(data[0x1c:])
	hdr.Phnum = binary.BigEndian.Uint16(data[0x2c:])
	return hdr
}

// findSegment scans the program header table for the first loadable entry.
// the scan stops after Phnum entries or at the end of the header buffer,
// whichever comes first. the second return value is the number of entries
// examined.
func findSegment(data []byte, hdr ImageHeader) (Segment, int, bool) {
	var n int
	for i := 0; i < int(hdr.Phnum); i++ {
		o := uint64(hdr.Phoff) + uint64(i)*progHeaderSize
		if o+progHeaderSize > uint64(len(data)) {
			break
		}
		n++

		ph := data[o : o+progHeaderSize]
		if elf.ProgType(binary.BigEndian.Uint32(ph)) != elf.PT_LOAD {
			continue
		}

		return Segment{
			Type:     elf.PT_LOAD,
			Offset:   binary.BigEndian.Uint32(ph[0x04:]),
			PAddr:    binary.BigEndian.Uint32(ph[0x0c:]),
			FileSize: binary.BigEndian.Uint32(ph[0x10:]),
			MemSize:  binary.BigEndian.Uint32(ph[0x14:]),
		}, n, true
	}

	return Segment{}, n, false
}

// loadHeader reads the header window from storage. the buffer is
// invalidated after the transfer so the CPU sees the new data.
func loadHeader(plt dma, hb *HeaderBuffer, base uint32) ImageHeader {
	plt.ReadStorage(hb.Bytes(), base)
	plt.InvalidateBuffer(hb.Bytes())
	return decodeHeader(hb.Bytes())
}
