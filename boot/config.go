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
	"time"

	"github.com/jetsetilly/cartboot/hardware/memorymap"
)

// Config for the boot sequencer.
type Config struct {
	// kernel image location in the cartridge domain. the size records
	// precede this address
	Base uint32

	// name of the block device that exposes the disk image to the kernel.
	// used to build the argument strings
	Device string

	// the device path is given to the kernel as the root filesystem
	DevicePath string

	// the first entry in the argument vector
	ProgramName string

	// how long to wait before disabling interrupts and jumping to the
	// kernel. external devices may need the time to settle
	Settle time.Duration

	// the CIC used to boot the console. the 6105 CIC stores the installed
	// RAM size at a different location
	CIC int

	// if Strict is true then an image header that fails validation will halt
	// the sequence. otherwise a warning is emitted and the sequence continues
	Strict bool
}

// NewConfig returns a Config with default values.
func NewConfig() Config {
	return Config{
		Base:        memorymap.KernelBase,
		Device:      "n64cart",
		DevicePath:  "/dev/n64cart",
		ProgramName: "hello",
		Settle:      1024 * time.Millisecond,
		CIC:         6102,
	}
}
