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

package diagnostic

import (
	"github.com/jetsetilly/cartboot/hardware/hal"
	"github.com/jetsetilly/cartboot/hardware/memorymap"
)

// ISViewer is the external debug channel. It implements the io.Writer
// interface.
//
// Writes are fire-and-forget. The device does not acknowledge data and so
// Write() always succeeds.
type ISViewer struct {
	mmio hal.MMIO
}

// ProbeISViewer checks for the presence of an ISViewer. Returns nil if there
// is no device.
func ProbeISViewer(mmio hal.MMIO) *ISViewer {
	// if there is memory at the buffer address then the value can be read
	// back. if there is no memory then the read returns something else
	mmio.Write32(memorymap.ISViewerBuffer, memorymap.ISViewerProbe)
	if mmio.Read32(memorymap.ISViewerBuffer) != memorymap.ISViewerProbe {
		return nil
	}
	return &ISViewer{mmio: mmio}
}

// Write implements the io.Writer interface. Data is sent in chunks no larger
// than the device buffer. Each chunk is packed into big-endian words, with
// the final word padded with zero bytes, and is then flushed by writing the
// exact number of bytes in the chunk to the length register.
func (isv *ISViewer) Write(p []byte) (int, error) {
	n := len(p)

	for len(p) > 0 {
		l := len(p)
		if l > int(memorymap.ISViewerBufferLen) {
			l = int(memorymap.ISViewerBufferLen)
		}

		for i := 0; i < l; i += 4 {
			var w uint32
			for j := 0; j < 4; j++ {
				w <<= 8
				if i+j < l {
					w |= uint32(p[i+j])
				}
			}
			isv.mmio.Write32(memorymap.ISViewerBuffer+uint32(i), w)
		}

		isv.mmio.Write32(memorymap.ISViewerWriteLen, uint32(l))
		p = p[l:]
	}

	return n, nil
}
