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

// Package memorymap describes the physical memory of the console as seen by
// the boot sequencer. The CPU sees physical memory through two windows,
// KSEG0 (cached) and KSEG1 (uncached). MapAddress() strips the window bits
// and reports which area of physical memory an address belongs to.
//
// The cartridge layout constants are a contract with the packaging step. The
// kernel image starts at KernelBase and the two size records sit directly
// below it.
//
//	KernelBase-8   disk image size, big-endian 32bit
//	KernelBase-4   kernel image size, big-endian 32bit
//	KernelBase     kernel image (ELF32)
//	KernelBase + AlignUp(kernel size, PageSize)   disk image
package memorymap
