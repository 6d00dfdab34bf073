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

// Package romimage assembles a flashable cartridge image from its parts:
//
//	0x000000	ROM header, padded to 4k
//	0x001000	bootloader, padded so that the size records end at the kernel base
//	0x100ff8	disk size record (big-endian)
//	0x100ffc	kernel size record (big-endian)
//	0x101000	kernel image, padded to a page boundary
//	...		disk image
//
// The size records are the values read by the boot sequencer to find the
// kernel and the disk image.
package romimage
