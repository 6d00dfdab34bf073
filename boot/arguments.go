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
	"bytes"
	"fmt"
)

// the argument strings are at fixed offsets in the header buffer. each
// string, including the terminating NUL, fits in one stride.
const argumentStride = 128

// ArgumentStrings is the header buffer reused to hold the two disk arguments
// given to the kernel. Each argument is a NUL terminated string, the first at
// offset 0 and the second at offset 128.
type ArgumentStrings struct {
	data []byte
}

// IntoArgumentStrings converts the header buffer to argument strings. The
// HeaderBuffer must not be used after the conversion. The Materialized value
// shows that the image header is no longer needed.
func (hb *HeaderBuffer) IntoArgumentStrings(m Materialized) *ArgumentStrings {
	if !m.valid {
		panic("header buffer converted before the segment was materialized")
	}
	as := &ArgumentStrings{data: hb.Bytes()}
	hb.data = nil
	return as
}

// Pack clears the memory and writes the argument strings describing the disk
// image. Packing the same Metadata twice results in identical memory.
func (as *ArgumentStrings) Pack(md Metadata, cfg Config) {
	clear(as.data)
	as.put(0, fmt.Sprintf("%s.start=%d", cfg.Device, cfg.Base+md.DiskOffset))
	as.put(1, fmt.Sprintf("%s.size=%d", cfg.Device, md.DiskSize))
}

// put string in the indexed stride. the string is truncated if necessary to
// leave room for the NUL
func (as *ArgumentStrings) put(idx int, s string) {
	o := idx * argumentStride
	copy(as.data[o:o+argumentStride-1], s)
}

// get the NUL terminated string in the indexed stride
func (as *ArgumentStrings) get(idx int) string {
	s := as.data[idx*argumentStride : (idx+1)*argumentStride]
	if i := bytes.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}
	return string(s)
}

// Start returns the argument giving the location of the disk image.
func (as *ArgumentStrings) Start() string {
	return as.get(0)
}

// Size returns the argument giving the size of the disk image.
func (as *ArgumentStrings) Size() string {
	return as.get(1)
}

// Bytes returns the underlying memory, including the NUL padding.
func (as *ArgumentStrings) Bytes() []byte {
	return as.data
}

// ArgumentVector is the argument and environment vectors given to the
// kernel's entry point.
type ArgumentVector struct {
	Argv []string
	Envp []string
}

// packArguments writes the argument strings and returns the vectors for the
// control transfer. The environment is empty.
func packArguments(as *ArgumentStrings, md Metadata, cfg Config) ArgumentVector {
	as.Pack(md, cfg)
	return ArgumentVector{
		Argv: []string{
			cfg.ProgramName,
			as.Start(),
			as.Size(),
			fmt.Sprintf("root=%s", cfg.DevicePath),
		},
		Envp: []string{},
	}
}
