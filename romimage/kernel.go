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
	"bytes"
	"debug/elf"
	"encoding/binary"

	"github.com/jetsetilly/cartboot/hardware/memorymap"
)

// Segment describes one program header and its data for a generated kernel.
type Segment struct {
	Type  elf.ProgType
	PAddr uint32
	Data  []byte

	// MemSize is the size of the segment in memory. It is at least the
	// length of Data
	MemSize uint32
}

// Kernel creates a big-endian 32bit MIPS ELF image with the program headers
// immediately following the file header. The segment data follows the
// program headers in the order the segments are given.
//
// Useful for testing and for checking a cartridge without a real kernel.
func Kernel(entry uint32, segs ...Segment) []byte {
	const (
		ehsize    = 52
		phentsize = 32
	)

	hdr := elf.Header32{
		Type:      uint16(elf.ET_EXEC),
		Machine:   uint16(elf.EM_MIPS),
		Version:   uint32(elf.EV_CURRENT),
		Entry:     entry,
		Phoff:     ehsize,
		Ehsize:    ehsize,
		Phentsize: phentsize,
		Phnum:     uint16(len(segs)),
	}
	copy(hdr.Ident[:], elf.ELFMAG)
	hdr.Ident[elf.EI_CLASS] = byte(elf.ELFCLASS32)
	hdr.Ident[elf.EI_DATA] = byte(elf.ELFDATA2MSB)
	hdr.Ident[elf.EI_VERSION] = byte(elf.EV_CURRENT)

	var b bytes.Buffer
	binary.Write(&b, binary.BigEndian, hdr)

	offset := uint32(ehsize + phentsize*len(segs))
	for _, s := range segs {
		memsz := s.MemSize
		if memsz < uint32(len(s.Data)) {
			memsz = uint32(len(s.Data))
		}
		binary.Write(&b, binary.BigEndian, elf.Prog32{
			Type:   uint32(s.Type),
			Off:    offset,
			Vaddr:  s.PAddr | memorymap.KSEG0,
			Paddr:  s.PAddr,
			Filesz: uint32(len(s.Data)),
			Memsz:  memsz,
			Flags:  uint32(elf.PF_R | elf.PF_W | elf.PF_X),
			Align:  4,
		})
		offset += uint32(len(s.Data))
	}

	for _, s := range segs {
		b.Write(s.Data)
	}

	return b.Bytes()
}
