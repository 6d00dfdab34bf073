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

package emulated

import (
	"encoding/binary"
	"io"

	"github.com/jetsetilly/cartboot/hardware/memorymap"
)

// isViewer emulates the ISViewer debugging device. The device is a buffer in
// the cartridge domain which is written with 32bit words. Writing a length to
// the WriteLen register sends that many bytes from the start of the buffer to
// the host.
type isViewer struct {
	out io.Writer
	mem []byte
}

func newISViewer(out io.Writer) *isViewer {
	return &isViewer{
		out: out,
		mem: make([]byte, memorymap.MemtopISViewer-memorymap.OriginISViewer+1),
	}
}

// offset of the address in the device memory. the address has already been
// mapped
func (isv *isViewer) offset(phys uint32) uint32 {
	return phys - memorymap.OriginISViewer
}

func (isv *isViewer) read32(phys uint32) uint32 {
	o := isv.offset(phys)
	return binary.BigEndian.Uint32(isv.mem[o : o+4])
}

func (isv *isViewer) write32(phys uint32, value uint32) {
	o := isv.offset(phys)
	binary.BigEndian.PutUint32(isv.mem[o:o+4], value)

	writeLen, _ := memorymap.MapAddress(memorymap.ISViewerWriteLen)
	if phys != writeLen {
		return
	}

	if value > memorymap.ISViewerBufferLen {
		value = memorymap.ISViewerBufferLen
	}

	buffer := isv.offset(memorymap.ISViewerBuffer & memorymap.SegmentMask)
	if isv.out != nil {
		isv.out.Write(isv.mem[buffer : buffer+value])
	}
}
