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

// State indicates the sequencer's progress.
type State int

// List of possible sequencer states. Transferred and Halted are terminal.
const (
	Start State = iota
	MetadataRead
	HeaderValidate
	HeaderInvalidWarned
	SegmentScan
	SegmentLoad
	ArgsPacked
	Transferred
	Halted
)

func (s State) String() string {
	switch s {
	case Start:
		return "Start"
	case MetadataRead:
		return "MetadataRead"
	case HeaderValidate:
		return "HeaderValidate"
	case HeaderInvalidWarned:
		return "HeaderInvalidWarned"
	case SegmentScan:
		return "SegmentScan"
	case SegmentLoad:
		return "SegmentLoad"
	case ArgsPacked:
		return "ArgsPacked"
	case Transferred:
		return "Transferred"
	case Halted:
		return "Halted"
	}

	return ""
}

// Terminal returns true if no further state can follow.
func (s State) Terminal() bool {
	return s == Transferred || s == Halted
}

// StateIntegrity checks whether the transition from one state to another is
// allowed.
func StateIntegrity(from State, to State) bool {
	if to == Halted {
		return !from.Terminal()
	}

	switch from {
	case Start:
		return to == MetadataRead
	case MetadataRead:
		return to == HeaderValidate || to == HeaderInvalidWarned
	case HeaderValidate, HeaderInvalidWarned:
		return to == SegmentScan
	case SegmentScan:
		return to == SegmentLoad
	case SegmentLoad:
		return to == ArgsPacked
	case ArgsPacked:
		return to == Transferred
	}

	return false
}
