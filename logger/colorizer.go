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

package logger

import (
	"io"
	"strings"

	"github.com/jetsetilly/cartboot/terminal/easyterm/ansi"
)

// Colorizer applies basic coloring rules to echoed log output. The tag of
// each entry is written with the pen registered for that tag. Entries for
// unregistered tags are written without coloring.
type Colorizer struct {
	out  io.Writer
	pens map[string]string
}

// NewColorizer is the preferred method if initialisation for the Colorizer type.
func NewColorizer(out io.Writer) Colorizer {
	return Colorizer{
		out:  out,
		pens: make(map[string]string),
	}
}

// Pen registers the named pen (see the ansi package) for entries with the
// specified tag.
func (c Colorizer) Pen(tag string, pen string) {
	if p, ok := ansi.Pens[pen]; ok {
		c.pens[tag] = p
	}
}

// Write implements the io.Writer interface.
func (c Colorizer) Write(p []byte) (n int, err error) {
	s := string(p)

	tag, detail, ok := strings.Cut(s, ": ")
	if !ok {
		return c.out.Write(p)
	}

	pen, ok := c.pens[tag]
	if !ok {
		return c.out.Write(p)
	}

	_, err = io.WriteString(c.out, pen+tag+ansi.NormalPen+": "+detail)
	if err != nil {
		return 0, err
	}

	return len(p), nil
}
