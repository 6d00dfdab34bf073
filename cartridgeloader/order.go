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

package cartridgeloader

// ByteOrder of a cartridge image file.
type ByteOrder int

// List of valid ByteOrder values. The byte order is detected from the first
// word of the ROM header. Unknown data is assumed to be big-endian.
const (
	BigEndian ByteOrder = iota
	ByteSwapped
	LittleEndian
)

func (o ByteOrder) String() string {
	switch o {
	case BigEndian:
		return "z64"
	case ByteSwapped:
		return "v64"
	case LittleEndian:
		return "n64"
	}
	return ""
}

// DetectOrder returns the byte order of the data.
func DetectOrder(data []byte) ByteOrder {
	if len(data) < 4 {
		return BigEndian
	}

	switch {
	case data[0] == 0x37 && data[1] == 0x80 && data[2] == 0x40 && data[3] == 0x12:
		return ByteSwapped
	case data[0] == 0x40 && data[1] == 0x12 && data[2] == 0x37 && data[3] == 0x80:
		return LittleEndian
	}

	return BigEndian
}

// Normalise converts the data in place from the byte order to big-endian
// order. Trailing bytes that do not make a complete word are not changed.
func Normalise(order ByteOrder, data []byte) {
	switch order {
	case ByteSwapped:
		for i := 0; i+1 < len(data); i += 2 {
			data[i], data[i+1] = data[i+1], data[i]
		}
	case LittleEndian:
		for i := 0; i+3 < len(data); i += 4 {
			data[i], data[i+1], data[i+2], data[i+3] = data[i+3], data[i+2], data[i+1], data[i]
		}
	}
}
