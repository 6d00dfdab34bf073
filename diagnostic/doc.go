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

// Package diagnostic is the output path for status lines during boot. Every
// line is printed on the console display. If an ISViewer is present in the
// cartridge domain then the line is also forwarded to it.
//
// The ISViewer is probed once, when the Sink is created, by writing a known
// pattern to the device buffer and reading it back.
package diagnostic
