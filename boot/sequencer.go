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
	"fmt"

	"github.com/jetsetilly/cartboot/curated"
	"github.com/jetsetilly/cartboot/diagnostic"
	"github.com/jetsetilly/cartboot/hardware/hal"
	"github.com/jetsetilly/cartboot/hardware/memorymap"
	"github.com/jetsetilly/cartboot/logger"
)

// Sequencer runs the boot sequence on a platform.
type Sequencer struct {
	cfg Config
	plt hal.Platform
	snk *diagnostic.Sink

	state State

	// OnState is called after every change of state. It may be nil.
	OnState func(State)

	md   Metadata
	hdr  ImageHeader
	seg  Segment
	args ArgumentVector
}

// NewSequencer is the preferred method of initialisation for the Sequencer
// type. The platform is not accessed until Run() is called.
func NewSequencer(cfg Config, plt hal.Platform) *Sequencer {
	return &Sequencer{
		cfg:   cfg,
		plt:   plt,
		state: Start,
	}
}

// State returns the current state of the sequence.
func (sq *Sequencer) State() State {
	return sq.state
}

// Metadata returns the size records read from storage.
func (sq *Sequencer) Metadata() Metadata {
	return sq.md
}

// Header returns the kernel's image header.
func (sq *Sequencer) Header() ImageHeader {
	return sq.hdr
}

// Segment returns the loadable segment.
func (sq *Sequencer) Segment() Segment {
	return sq.seg
}

// Arguments returns the argument vector given to the kernel.
func (sq *Sequencer) Arguments() ArgumentVector {
	return sq.args
}

func (sq *Sequencer) setState(state State) {
	// intentionally panic if the state transition is not allowed
	if !StateIntegrity(sq.state, state) {
		panic(fmt.Sprintf("illegal state transition (%s -> %s)", sq.state, state))
	}

	logger.Logf(logger.Allow, "boot", "%s -> %s", sq.state, state)
	sq.state = state

	if sq.OnState != nil {
		sq.OnState(state)
	}
}

func (sq *Sequencer) halt(err error) error {
	logger.Log(logger.Allow, "boot", err)
	sq.setState(Halted)
	sq.plt.Halt()
	return err
}

// installedRAM returns the size of installed RAM as reported by the IPL.
func (sq *Sequencer) installedRAM() uint32 {
	if sq.cfg.CIC == memorymap.CIC6105 {
		return sq.plt.Read32(memorymap.OSMemSize6105)
	}
	return sq.plt.Read32(memorymap.OSMemSize)
}

// Run the boot sequence. On the console the function never returns. On a
// host platform the function returns when the sequence has reached a
// terminal state. An error is returned if the sequence halted.
//
// Run can only be called once.
func (sq *Sequencer) Run() error {
	if sq.state != Start {
		return curated.Errorf(AlreadyRun)
	}

	ram := sq.installedRAM()
	sq.snk = diagnostic.NewSink(sq.plt, sq.plt)
	sq.snk.Printf("Found %d kb of RAM\n", ram/1024)

	sq.md = readMetadata(sq.plt, sq.cfg.Base)
	sq.setState(MetadataRead)
	if sq.md.KernelSize == 0 {
		sq.snk.Console("No kernel configured\n")
		return sq.halt(curated.Errorf(NoKernel))
	}

	sq.snk.Printf("Booting kernel %d kb, %d kb\n", sq.md.KernelSize/1024, sq.md.DiskSize/1024)

	hb := NewHeaderBuffer()
	sq.snk.Printf("Address: %p\n", &hb.Bytes()[0])

	sq.hdr = loadHeader(sq.plt, hb, sq.cfg.Base)
	if problems := sq.hdr.Problems(); len(problems) > 0 {
		for _, p := range problems {
			sq.snk.Console(fmt.Sprintf("%s\n", p))
		}
		sq.setState(HeaderInvalidWarned)
		if sq.cfg.Strict {
			return sq.halt(curated.Errorf(InvalidHeader, problems))
		}
	} else {
		sq.setState(HeaderValidate)
	}

	seg, n, ok := findSegment(hb.Bytes(), sq.hdr)
	if !ok {
		sq.snk.Printf("No loadable segment\n")
		return sq.halt(curated.Errorf(NoLoadableSegment, n))
	}
	sq.seg = seg
	sq.setState(SegmentScan)

	sq.snk.Printf("LoadAddress: %#x\n", sq.seg.PAddr)
	sq.snk.Printf("LoadOffset: %#x\n", sq.cfg.Base+sq.seg.Offset)

	m := loadSegment(sq.plt, sq.cfg.Base, sq.seg)
	sq.setState(SegmentLoad)

	sq.snk.Printf("Entry: %#x\n", sq.hdr.Entry)

	as := hb.IntoArgumentStrings(m)
	sq.args = packArguments(as, sq.md, sq.cfg)
	sq.setState(ArgsPacked)

	sq.snk.Printf("Disk: %d\n", sq.md.DiskOffset)
	sq.snk.Console(fmt.Sprintf("%s\n", as.Start()))
	sq.snk.Console(fmt.Sprintf("%s\n", as.Size()))
	sq.snk.Forward(as.Bytes())

	sq.snk.Printf("Jumping: %#x\n", sq.hdr.Entry)

	// the state is changed before the transfer because on the console the
	// transfer never returns
	sq.setState(Transferred)
	transferControl(sq.plt, sq.cfg, sq.hdr.Entry, sq.args)

	return nil
}
