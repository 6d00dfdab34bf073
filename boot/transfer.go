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

import (
	"github.com/jetsetilly/cartboot/hardware/hal"
)

// transfer is the part of the platform needed to hand over the machine.
type transfer interface {
	hal.Console
	hal.Timer
	hal.CPU
	hal.Video
}

// transferControl hands the machine to the kernel. pending console output is
// drawn and external devices are given time to settle before interrupts are
// disabled.
//
// on the console this function never returns.
func transferControl(plt transfer, cfg Config, entry uint32, args ArgumentVector) {
	plt.Render()
	plt.Wait(cfg.Settle)
	plt.DisableInterrupts()
	plt.SetVideoInterrupt(false, 0)
	plt.Jump(entry, args.Argv, args.Envp)
}
