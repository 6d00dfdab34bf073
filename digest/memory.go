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

package digest

import (
	"crypto/sha1"
	"fmt"

	"github.com/jetsetilly/cartboot/curated"
)

// Sentinel error patterns.
const (
	RegionUnavailable = "digest: region at %#08x (%d bytes) is not available"
)

// Peeker is the memory interface required by the Memory digest.
type Peeker interface {
	Peek(addr uint32, length uint32) []byte
}

// Memory is an implementation of the Digest interface. It generates a SHA-1
// value of regions of memory. Each region is chained with the digest of the
// previous region.
//
// Note that the use of SHA-1 is fine for this application because this is not
// a cryptographic task.
type Memory struct {
	mem    Peeker
	digest [sha1.Size]byte
}

// NewMemory is the preferred method of initialisation for the Memory type.
func NewMemory(mem Peeker) *Memory {
	return &Memory{mem: mem}
}

// Hash implements digest.Digest interface.
func (dig Memory) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements digest.Digest interface.
func (dig *Memory) ResetDigest() {
	for i := range dig.digest {
		dig.digest[i] = 0
	}
}

// Region adds the memory region to the digest.
func (dig *Memory) Region(addr uint32, length uint32) error {
	data := dig.mem.Peek(addr, length)
	if data == nil {
		return curated.Errorf(RegionUnavailable, addr, length)
	}

	// chain fingerprints by copying the value of the last fingerprint
	// to the head of the memory data
	b := make([]byte, 0, len(dig.digest)+len(data))
	b = append(b, dig.digest[:]...)
	b = append(b, data...)
	dig.digest = sha1.Sum(b)

	return nil
}
