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

package hal

import "time"

// Storage defines the blocking DMA transfers from the cartridge domain.
type Storage interface {
	// ReadStorage copies len(dst) bytes from the storage address into memory
	// owned by the caller. The transfer is complete when the function returns.
	ReadStorage(dst []byte, src uint32)

	// LoadStorage copies length bytes from the storage address to the
	// physical RAM address. The transfer is complete when the function
	// returns.
	LoadStorage(dst uint32, src uint32, length uint32)
}

// Cache defines the data cache maintenance operations. DMA transfers bypass
// the data cache so memory written by DMA must be invalidated before the CPU
// reads it, and memory that will be executed must be written back.
type Cache interface {
	// InvalidateBuffer discards cache lines covering memory owned by the
	// caller.
	InvalidateBuffer(buf []byte)

	// WritebackInvalidateBuffer writes back and then discards cache lines
	// covering memory owned by the caller.
	WritebackInvalidateBuffer(buf []byte)

	// WritebackInvalidate writes back and then discards cache lines covering
	// the physical RAM range.
	WritebackInvalidate(addr uint32, length uint32)
}

// Memory defines CPU writes to physical RAM.
type Memory interface {
	// Fill sets length bytes of physical RAM starting at addr to value.
	Fill(addr uint32, value uint8, length uint32)
}

// MMIO defines access to memory mapped registers.
type MMIO interface {
	Read32(addr uint32) uint32
	Write32(addr uint32, value uint32)
}

// CPU defines the processor control operations.
type CPU interface {
	// DisableInterrupts masks all processor interrupts.
	DisableInterrupts()

	// Halt stops the processor permanently. On the console it never returns.
	Halt()

	// Jump transfers control to the entry point, passing argc, argv, envp and
	// a null fourth argument in the manner of a C main function. On the
	// console it never returns.
	Jump(entry uint32, argv []string, envp []string)
}

// Video defines the video interface operations needed before handing over
// the machine.
type Video interface {
	// SetVideoInterrupt enables or disables the video timing interrupt for the
	// specified scanline.
	SetVideoInterrupt(enabled bool, line uint32)
}

// Timer defines blocking delays.
type Timer interface {
	Wait(d time.Duration)
}

// Console is the display text output primitive.
type Console interface {
	// Print adds text to the console.
	Print(s string)

	// Render draws any pending text to the display.
	Render()
}

// Platform is everything the boot sequencer needs from the machine.
type Platform interface {
	Storage
	Cache
	Memory
	MMIO
	CPU
	Video
	Timer
	Console
}
