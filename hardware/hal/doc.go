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

// Package hal defines the hardware abstraction used by the boot sequencer.
// The sequencer never touches an address directly. Every storage transfer,
// cache operation, register access and CPU control operation goes through one
// of the interfaces defined here.
//
// The interfaces are deliberately small and are combined into the Platform
// interface. A real console implementation maps each function onto the
// platform primitive of the same name. The emulated package provides an
// implementation backed by in-memory buffers, which is what the tests use.
//
// None of the functions return an error. Storage transfers and cache
// operations on the console are blocking and are assumed to always complete.
// Host implementations record faults rather than fail.
package hal
