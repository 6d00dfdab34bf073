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
	"github.com/jetsetilly/cartboot/hardware/hal"
)

// Materialized is proof that a segment has been copied into RAM. Only
// loadSegment() can create a valid instance and it is required by
// HeaderBuffer.IntoArgumentStrings().
type Materialized struct {
	seg   Segment
	valid bool
}

// Segment returns the segment that was materialized.
func (m Materialized) Segment() Segment {
	return m.seg
}

// materializer is the part of the platform used to load a segment.
type materializer interface {
	hal.Storage
	hal.Cache
	hal.Memory
}

// loadSegment copies the file part of the segment from storage to RAM and
// zero fills the remainder of the memory part.
//
// the DMA length is rounded up to two bytes, which is the transfer unit. the
// cache maintenance length is rounded up to four bytes.
func loadSegment(plt materializer, base uint32, seg Segment) Materialized {
	plt.LoadStorage(seg.PAddr, base+seg.Offset, (seg.FileSize+1)&^1)
	plt.WritebackInvalidate(seg.PAddr, (seg.FileSize+3)&^3)

	if seg.FileSize < seg.MemSize {
		plt.Fill(seg.PAddr+seg.FileSize, 0, seg.MemSize-seg.FileSize)
	}

	return Materialized{seg: seg, valid: true}
}
