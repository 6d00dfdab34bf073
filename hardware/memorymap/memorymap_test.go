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

package memorymap_test

import (
	"testing"

	"github.com/jetsetilly/cartboot/hardware/memorymap"
	"github.com/jetsetilly/cartboot/test"
)

func TestMapAddress(t *testing.T) {
	phys, area := memorymap.MapAddress(0x80000400)
	test.ExpectEquality(t, phys, 0x00000400)
	test.ExpectEquality(t, area, memorymap.RDRAM)

	phys, area = memorymap.MapAddress(0xa0000318)
	test.ExpectEquality(t, phys, 0x00000318)
	test.ExpectEquality(t, area, memorymap.RDRAM)

	phys, area = memorymap.MapAddress(memorymap.KernelBase)
	test.ExpectEquality(t, phys, 0x10101000)
	test.ExpectEquality(t, area, memorymap.Cartridge)

	_, area = memorymap.MapAddress(memorymap.ISViewerBuffer)
	test.ExpectEquality(t, area, memorymap.ISViewer)

	_, area = memorymap.MapAddress(0x80800000)
	test.ExpectEquality(t, area, memorymap.Undefined)
}

func TestAlignUp(t *testing.T) {
	test.ExpectEquality(t, memorymap.AlignUp(0, memorymap.PageSize), 0)
	test.ExpectEquality(t, memorymap.AlignUp(1, memorymap.PageSize), 4096)
	test.ExpectEquality(t, memorymap.AlignUp(4096, memorymap.PageSize), 4096)
	test.ExpectEquality(t, memorymap.AlignUp(65536, memorymap.PageSize), 65536)
	test.ExpectEquality(t, memorymap.AlignUp(101, 2), 102)
	test.ExpectEquality(t, memorymap.AlignUp(101, 4), 104)
}

func TestLayout(t *testing.T) {
	test.ExpectEquality(t, memorymap.HeaderSize, 0x1000)
	test.ExpectEquality(t, memorymap.BootloaderSize, 0x100000)
	test.ExpectEquality(t, memorymap.KernelSizeRecord, 0xb0100ffc)
	test.ExpectEquality(t, memorymap.DiskSizeRecord, 0xb0100ff8)
}
