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

// Package cartridgeloader is used to specify the cartridge image that is to
// be booted on the emulated platform.
//
// The Load() function handles loading of data from different sources.
// Currently local files and data over HTTP are supported.
//
// Cartridge images are found in three byte orders. The image is always
// converted to the native big-endian order, as found on the cartridge, before
// the hash is created.
//
//	cl := cartridgeloader.NewLoader("roms/linux.z64")
//	err := cl.Load()
package cartridgeloader
