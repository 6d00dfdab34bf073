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

// Package boot is the cartridge resident boot sequencer. It loads a
// statically linked 32bit ELF kernel from the cartridge domain into RAM and
// transfers control to it.
//
// The sequence is fixed:
//
//	Start
//	MetadataRead          kernel and disk size records read from storage
//	HeaderValidate        256 byte header window read and checked
//	  (or HeaderInvalidWarned)
//	SegmentScan           first loadable segment found
//	SegmentLoad           segment copied to RAM and zero extended
//	ArgsPacked            header window reused for the kernel arguments
//	Transferred           control given to the kernel entry point
//
// Halted is the alternative terminal state. It is entered if there is no
// kernel or if the header window contains no loadable segment.
//
// All hardware access is through the hal.Platform interface given to
// NewSequencer(). On the console, Halt() and Jump() never return. On a host
// platform they do return and Run() returns with the Sequencer in a terminal
// state.
//
// The sequencer is single threaded and runs to completion. There are no
// retries and no timeouts.
package boot
