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

// bufferCache models the data cache for buffers owned by the caller. The Go
// slice is the CPU view of the buffer. Data written by DMA is only visible in
// the slice if the cache lines for the buffer were discarded before the DMA
// or if the cache lines are discarded after the DMA.
type bufferCache struct {
	// buffers which have no cache lines. buffers are keyed by the address of
	// their first element
	uncached map[*byte]bool

	// DMA data which has not yet been seen by the CPU
	pending map[*byte][]byte
}

func newBufferCache() bufferCache {
	return bufferCache{
		uncached: make(map[*byte]bool),
		pending:  make(map[*byte][]byte),
	}
}

func (bc *bufferCache) dma(buf []byte, data []byte) {
	key := &buf[0]
	if bc.uncached[key] {
		copy(buf, data)
		delete(bc.pending, key)
		return
	}
	p := make([]byte, len(data))
	copy(p, data)
	bc.pending[key] = p
}

func (bc *bufferCache) invalidate(buf []byte) {
	key := &buf[0]
	if p, ok := bc.pending[key]; ok {
		copy(buf, p)
		delete(bc.pending, key)
	}
	bc.uncached[key] = true
}

func (bc *bufferCache) stale() int {
	return len(bc.pending)
}

// ramRange is a range of physical RAM written by DMA which has not been
// written back from the data cache.
type ramRange struct {
	origin uint32
	memtop uint32
}

// ramCache models the data cache for physical RAM. Code loaded by DMA must
// be written back and invalidated before it is executed.
type ramCache struct {
	unmaintained []ramRange
}

func (rc *ramCache) dma(origin uint32, length uint32) {
	if length == 0 {
		return
	}
	rc.unmaintained = append(rc.unmaintained, ramRange{origin: origin, memtop: origin + length - 1})
}

func (rc *ramCache) writebackInvalidate(origin uint32, length uint32) {
	if length == 0 {
		return
	}
	memtop := origin + length - 1

	n := rc.unmaintained[:0]
	for _, r := range rc.unmaintained {
		if r.origin >= origin && r.memtop <= memtop {
			continue
		}
		n = append(n, r)
	}
	rc.unmaintained = n
}
