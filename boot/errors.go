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

package boot

// Sentinel error patterns returned by Sequencer.Run().
const (
	NoKernel          = "boot: no kernel configured"
	NoLoadableSegment = "boot: no loadable segment in %d program headers"
	InvalidHeader     = "boot: invalid image header: %v"
	AlreadyRun        = "boot: sequence has already been run"
)
