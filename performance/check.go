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

package performance

import (
	"fmt"
	"io"
	"time"

	"github.com/jetsetilly/cartboot/boot"
	"github.com/jetsetilly/cartboot/hardware/emulated"
)

// Check the performance of the boot sequence using the supplied cartridge
// image. The sequence is run repeatedly on a fresh platform until the
// duration has elapsed.
//
// The settle delay is not waited for in real time. The duration must be
// positive.
func Check(output io.Writer, profile Profile, rom []byte, ramSize uint32, cfg boot.Config, duration string) error {
	dur, err := time.ParseDuration(duration)
	if err != nil {
		return fmt.Errorf("performance: %w", err)
	}
	if dur <= 0 {
		return fmt.Errorf("performance: duration must be positive (%s)", duration)
	}

	var boots int
	var elapsed time.Duration

	runner := func() error {
		start := time.Now()
		for time.Since(start) < dur {
			plt := emulated.NewPlatform(rom, ramSize)
			err := boot.NewSequencer(cfg, plt).Run()
			if err != nil {
				return err
			}
			if faults := plt.Faults(); len(faults) > 0 {
				return faults[0]
			}
			boots++
		}
		elapsed = time.Since(start)
		return nil
	}

	err = RunProfiler(profile, "performance", runner)
	if err != nil {
		return fmt.Errorf("performance: %w", err)
	}

	output.Write([]byte(fmt.Sprintf("%.2f boots per second (%d boots in %.2f seconds)\n",
		float64(boots)/elapsed.Seconds(), boots, elapsed.Seconds())))

	return nil
}
