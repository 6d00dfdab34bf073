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

package diagnostic

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/cartboot/hardware/hal"
	"github.com/jetsetilly/cartboot/logger"
)

// Sink writes diagnostic output to the console and to the ISViewer, if
// present.
type Sink struct {
	console  hal.Console
	isviewer *ISViewer
}

// NewSink is the preferred method of initialisation for the Sink type. The
// ISViewer is probed and if found a line is emitted saying so.
func NewSink(console hal.Console, mmio hal.MMIO) *Sink {
	snk := &Sink{
		console:  console,
		isviewer: ProbeISViewer(mmio),
	}

	if snk.isviewer != nil {
		snk.Printf("Detected IS Viewer-64\n")
	}

	return snk
}

// HasISViewer returns true if the ISViewer was detected.
func (snk *Sink) HasISViewer() bool {
	return snk.isviewer != nil
}

// Emit writes the message to the console and forwards it to the ISViewer.
func (snk *Sink) Emit(msg []byte) {
	snk.Console(string(msg))
	snk.Forward(msg)
}

// Printf formats a message and emits it.
func (snk *Sink) Printf(format string, args ...any) {
	snk.Emit([]byte(fmt.Sprintf(format, args...)))
}

// Console writes the message to the console only.
func (snk *Sink) Console(msg string) {
	logger.Log(logger.Allow, "diagnostic", strings.TrimRight(msg, "\n"))
	snk.console.Print(msg)
}

// Forward sends the message to the ISViewer only. The message is forwarded
// unchanged, including any non-printable bytes.
func (snk *Sink) Forward(msg []byte) {
	if snk.isviewer != nil {
		snk.isviewer.Write(msg)
	}
}

// Render draws any pending console output.
func (snk *Sink) Render() {
	snk.console.Render()
}
