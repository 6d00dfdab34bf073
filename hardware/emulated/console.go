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

import (
	"io"
	"strings"
)

// console is the emulated text display. In automatic mode text is drawn as
// soon as it is printed. Otherwise text is only drawn by Render().
type console struct {
	out       io.Writer
	automatic bool

	pending strings.Builder
	text    strings.Builder
}

func (con *console) print(s string) {
	con.text.WriteString(s)
	con.pending.WriteString(s)
	if con.automatic {
		con.render()
	}
}

func (con *console) render() {
	if con.out != nil && con.pending.Len() > 0 {
		io.WriteString(con.out, con.pending.String())
	}
	con.pending.Reset()
}
