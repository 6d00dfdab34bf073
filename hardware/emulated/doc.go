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

// Package emulated implements the hal.Platform interface with in-memory
// buffers. It stands in for the console so that the boot sequencer can be
// run and inspected on the host.
//
// The emulation is deliberately strict about the things the boot sequencer
// can get wrong. DMA transfers of odd length, transfers to or from unmapped
// memory, reading a buffer filled by DMA without invalidating the data cache,
// and jumping into code that was loaded by DMA but not written back from the
// cache are all recorded as faults. Faults do not stop the emulation. Callers
// check Faults() after the sequencer has finished.
//
// Every operation is recorded in order and is available with Trace(). The
// final handoff, if there was one, is available with Handoff().
package emulated
