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

package emulated

import "fmt"

// OpKind identifies the platform operation in an Op.
type OpKind int

// List of valid OpKind values.
const (
	OpReadStorage OpKind = iota
	OpLoadStorage
	OpInvalidateBuffer
	OpWritebackInvalidateBuffer
	OpWritebackInvalidate
	OpFill
	OpRead32
	OpWrite32
	OpDisableInterrupts
	OpHalt
	OpJump
	OpSetVideoInterrupt
	OpWait
	OpRender
)

func (k OpKind) String() string {
	switch k {
	case OpReadStorage:
		return "ReadStorage"
	case OpLoadStorage:
		return "LoadStorage"
	case OpInvalidateBuffer:
		return "InvalidateBuffer"
	case OpWritebackInvalidateBuffer:
		return "WritebackInvalidateBuffer"
	case OpWritebackInvalidate:
		return "WritebackInvalidate"
	case OpFill:
		return "Fill"
	case OpRead32:
		return "Read32"
	case OpWrite32:
		return "Write32"
	case OpDisableInterrupts:
		return "DisableInterrupts"
	case OpHalt:
		return "Halt"
	case OpJump:
		return "Jump"
	case OpSetVideoInterrupt:
		return "SetVideoInterrupt"
	case OpWait:
		return "Wait"
	case OpRender:
		return "Render"
	}
	return "unknown"
}

// Op is a single recorded platform operation. Not all fields are meaningful
// for every kind of operation. Operations on caller owned buffers have no
// address.
type Op struct {
	Kind   OpKind
	Addr   uint32
	Src    uint32
	Length uint32
	Value  uint32
}

func (op Op) String() string {
	switch op.Kind {
	case OpReadStorage:
		return fmt.Sprintf("%s %d bytes from %#08x", op.Kind, op.Length, op.Src)
	case OpLoadStorage:
		return fmt.Sprintf("%s %d bytes from %#08x to %#08x", op.Kind, op.Length, op.Src, op.Addr)
	case OpInvalidateBuffer, OpWritebackInvalidateBuffer:
		return fmt.Sprintf("%s %d bytes", op.Kind, op.Length)
	case OpWritebackInvalidate:
		return fmt.Sprintf("%s %d bytes at %#08x", op.Kind, op.Length, op.Addr)
	case OpFill:
		return fmt.Sprintf("%s %d bytes at %#08x with %#02x", op.Kind, op.Length, op.Addr, op.Value)
	case OpRead32, OpWrite32:
		return fmt.Sprintf("%s %#08x = %#08x", op.Kind, op.Addr, op.Value)
	case OpSetVideoInterrupt:
		return fmt.Sprintf("%s %v line %d", op.Kind, op.Value != 0, op.Addr)
	case OpJump:
		return fmt.Sprintf("%s %#08x", op.Kind, op.Addr)
	}
	return op.Kind.String()
}

// Handoff records the state of the machine at the moment of the control
// transfer.
type Handoff struct {
	Entry uint32
	Argv  []string
	Envp  []string

	InterruptsEnabled bool
	VideoInterrupt    bool
	Settled           bool
}
