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
	"encoding/binary"
	"io"
	"time"

	"github.com/jetsetilly/cartboot/curated"
	"github.com/jetsetilly/cartboot/hardware/memorymap"
	"github.com/jetsetilly/cartboot/logger"
)

// Sentinel error patterns for recorded faults.
const (
	OddLengthDMA       = "emulated: dma length (%d) is not even"
	UnmappedStorage    = "emulated: storage address (%#08x) is not in the cartridge domain"
	UnmappedRAM        = "emulated: ram address (%#08x) is not installed"
	StaleBuffer        = "emulated: %d dma buffers were never invalidated"
	UnmaintainedJump   = "emulated: jump with %d dma ranges not written back"
	InterruptsAtJump   = "emulated: jump with interrupts enabled"
	OperationAfterStop = "emulated: %s after the cpu has stopped"
)

// Installed RDRAM sizes.
const (
	RAM4MB = uint32(0x400000)
	RAM8MB = uint32(0x800000)
)

// Platform is an in-memory implementation of the hal.Platform interface.
type Platform struct {
	rdram []byte
	rom   []byte

	isviewer *isViewer
	con      console

	buffers bufferCache
	ram     ramCache

	interruptsEnabled bool
	videoInterrupt    bool
	videoLine         uint32

	// real time waits are only wanted when the emulation is being watched
	realTime bool
	waited   time.Duration

	halted  bool
	handoff *Handoff

	trace  []Op
	faults []error
}

// NewPlatform is the preferred method of initialisation for the Platform
// type. The ROM is mapped at the start of the cartridge domain. The ramSize
// argument should be either RAM4MB or RAM8MB.
//
// The installed RAM size is written to both of the locations used by the
// IPL, so the platform is suitable for any CIC type.
func NewPlatform(rom []byte, ramSize uint32) *Platform {
	if ramSize != RAM4MB {
		ramSize = RAM8MB
	}

	plt := &Platform{
		rdram:             make([]byte, ramSize),
		rom:               rom,
		buffers:           newBufferCache(),
		interruptsEnabled: true,
		videoInterrupt:    true,
		con:               console{automatic: true},
	}

	for _, a := range []uint32{memorymap.OSMemSize, memorymap.OSMemSize6105} {
		phys, _ := memorymap.MapAddress(a)
		binary.BigEndian.PutUint32(plt.rdram[phys:], ramSize)
	}

	return plt
}

// AttachISViewer connects an ISViewer device to the cartridge domain. Bytes
// sent to the device are written to the io.Writer.
func (plt *Platform) AttachISViewer(out io.Writer) {
	plt.isviewer = newISViewer(out)
}

// SetConsole sets the io.Writer used for the display. Automatic rendering
// draws printed text immediately, otherwise text is only drawn by Render().
func (plt *Platform) SetConsole(out io.Writer, automatic bool) {
	plt.con.out = out
	plt.con.automatic = automatic
}

// SetRealTime specifies whether Wait() should really wait.
func (plt *Platform) SetRealTime(realTime bool) {
	plt.realTime = realTime
}

func (plt *Platform) record(op Op) bool {
	plt.trace = append(plt.trace, op)
	if plt.halted || plt.handoff != nil {
		plt.fault(curated.Errorf(OperationAfterStop, op.Kind))
		return false
	}
	return true
}

func (plt *Platform) fault(err error) {
	logger.Log(logger.Allow, "emulated", err)
	plt.faults = append(plt.faults, err)
}

// ramSlice returns the slice of RDRAM for the address range. the range is
// clipped to installed RAM and a fault is recorded if clipping occurs.
func (plt *Platform) ramSlice(addr uint32, length uint32) []byte {
	phys, area := memorymap.MapAddress(addr)
	if area != memorymap.RDRAM || phys >= uint32(len(plt.rdram)) {
		plt.fault(curated.Errorf(UnmappedRAM, addr))
		return nil
	}
	memtop := uint64(phys) + uint64(length)
	if memtop > uint64(len(plt.rdram)) {
		plt.fault(curated.Errorf(UnmappedRAM, addr+uint32(uint64(len(plt.rdram))-uint64(phys))))
		memtop = uint64(len(plt.rdram))
	}
	return plt.rdram[phys:memtop]
}

// storage returns length bytes of storage starting at the address. storage
// beyond the end of the ROM reads as zero.
func (plt *Platform) storage(src uint32, length uint32) []byte {
	data := make([]byte, length)

	// the ISViewer is in the cartridge domain. when there is no ISViewer
	// attached the ROM is visible
	phys, area := memorymap.MapAddress(src)
	if area != memorymap.Cartridge && area != memorymap.ISViewer {
		plt.fault(curated.Errorf(UnmappedStorage, src))
		return data
	}

	o := uint64(phys - memorymap.OriginCart)
	if o < uint64(len(plt.rom)) {
		copy(data, plt.rom[o:])
	}
	return data
}

// ReadStorage implements the hal.Storage interface.
func (plt *Platform) ReadStorage(dst []byte, src uint32) {
	if !plt.record(Op{Kind: OpReadStorage, Src: src, Length: uint32(len(dst))}) {
		return
	}
	if len(dst) == 0 {
		return
	}
	if len(dst)&1 == 1 {
		plt.fault(curated.Errorf(OddLengthDMA, len(dst)))
	}
	plt.buffers.dma(dst, plt.storage(src, uint32(len(dst))))
}

// LoadStorage implements the hal.Storage interface.
func (plt *Platform) LoadStorage(dst uint32, src uint32, length uint32) {
	if !plt.record(Op{Kind: OpLoadStorage, Addr: dst, Src: src, Length: length}) {
		return
	}
	if length == 0 {
		return
	}
	if length&1 == 1 {
		plt.fault(curated.Errorf(OddLengthDMA, length))
	}
	copy(plt.ramSlice(dst, length), plt.storage(src, length))
	plt.ram.dma(dst&memorymap.SegmentMask, length)
}

// InvalidateBuffer implements the hal.Cache interface.
func (plt *Platform) InvalidateBuffer(buf []byte) {
	if !plt.record(Op{Kind: OpInvalidateBuffer, Length: uint32(len(buf))}) {
		return
	}
	if len(buf) > 0 {
		plt.buffers.invalidate(buf)
	}
}

// WritebackInvalidateBuffer implements the hal.Cache interface.
func (plt *Platform) WritebackInvalidateBuffer(buf []byte) {
	if !plt.record(Op{Kind: OpWritebackInvalidateBuffer, Length: uint32(len(buf))}) {
		return
	}
	if len(buf) > 0 {
		plt.buffers.invalidate(buf)
	}
}

// WritebackInvalidate implements the hal.Cache interface.
func (plt *Platform) WritebackInvalidate(addr uint32, length uint32) {
	if !plt.record(Op{Kind: OpWritebackInvalidate, Addr: addr, Length: length}) {
		return
	}
	plt.ram.writebackInvalidate(addr&memorymap.SegmentMask, length)
}

// Fill implements the hal.Memory interface.
func (plt *Platform) Fill(addr uint32, value uint8, length uint32) {
	if !plt.record(Op{Kind: OpFill, Addr: addr, Length: length, Value: uint32(value)}) {
		return
	}
	if length == 0 {
		return
	}
	m := plt.ramSlice(addr, length)
	for i := range m {
		m[i] = value
	}
}

// Read32 implements the hal.MMIO interface.
func (plt *Platform) Read32(addr uint32) uint32 {
	var v uint32

	phys, area := memorymap.MapAddress(addr)
	switch area {
	case memorymap.ISViewer:
		if plt.isviewer != nil {
			v = plt.isviewer.read32(phys)
		} else {
			v = binary.BigEndian.Uint32(plt.storage(addr, 4))
		}
	case memorymap.Cartridge:
		v = binary.BigEndian.Uint32(plt.storage(addr, 4))
	case memorymap.RDRAM:
		if m := plt.ramSlice(addr, 4); len(m) == 4 {
			v = binary.BigEndian.Uint32(m)
		}
	}

	plt.record(Op{Kind: OpRead32, Addr: addr, Value: v})
	return v
}

// Write32 implements the hal.MMIO interface.
func (plt *Platform) Write32(addr uint32, value uint32) {
	if !plt.record(Op{Kind: OpWrite32, Addr: addr, Value: value}) {
		return
	}

	phys, area := memorymap.MapAddress(addr)
	switch area {
	case memorymap.ISViewer:
		if plt.isviewer != nil {
			plt.isviewer.write32(phys, value)
		}
	case memorymap.RDRAM:
		if m := plt.ramSlice(addr, 4); len(m) == 4 {
			binary.BigEndian.PutUint32(m, value)
		}
	}
}

// DisableInterrupts implements the hal.CPU interface.
func (plt *Platform) DisableInterrupts() {
	if !plt.record(Op{Kind: OpDisableInterrupts}) {
		return
	}
	plt.interruptsEnabled = false
}

// Halt implements the hal.CPU interface. Unlike the console, the function
// returns. Any further operation on the platform is a fault.
func (plt *Platform) Halt() {
	if !plt.record(Op{Kind: OpHalt}) {
		return
	}
	plt.halted = true
	logger.Log(logger.Allow, "emulated", "cpu halted")
}

// Jump implements the hal.CPU interface. Unlike the console, the function
// returns. Any further operation on the platform is a fault.
func (plt *Platform) Jump(entry uint32, argv []string, envp []string) {
	if !plt.record(Op{Kind: OpJump, Addr: entry}) {
		return
	}

	if plt.interruptsEnabled {
		plt.fault(curated.Errorf(InterruptsAtJump))
	}
	if n := len(plt.ram.unmaintained); n > 0 {
		plt.fault(curated.Errorf(UnmaintainedJump, n))
	}
	if n := plt.buffers.stale(); n > 0 {
		plt.fault(curated.Errorf(StaleBuffer, n))
	}

	plt.handoff = &Handoff{
		Entry:             entry,
		Argv:              append([]string{}, argv...),
		Envp:              append([]string{}, envp...),
		InterruptsEnabled: plt.interruptsEnabled,
		VideoInterrupt:    plt.videoInterrupt,
		Settled:           plt.waited > 0,
	}
	logger.Logf(logger.Allow, "emulated", "jump to %#08x", entry)
}

// SetVideoInterrupt implements the hal.Video interface.
func (plt *Platform) SetVideoInterrupt(enabled bool, line uint32) {
	var v uint32
	if enabled {
		v = 1
	}
	if !plt.record(Op{Kind: OpSetVideoInterrupt, Addr: line, Value: v}) {
		return
	}
	plt.videoInterrupt = enabled
	plt.videoLine = line
}

// Wait implements the hal.Timer interface.
func (plt *Platform) Wait(d time.Duration) {
	if !plt.record(Op{Kind: OpWait, Value: uint32(d.Milliseconds())}) {
		return
	}
	plt.waited += d
	if plt.realTime {
		time.Sleep(d)
	}
}

// Print implements the hal.Console interface.
func (plt *Platform) Print(s string) {
	if plt.halted || plt.handoff != nil {
		plt.fault(curated.Errorf(OperationAfterStop, "Print"))
		return
	}
	plt.con.print(s)
}

// Render implements the hal.Console interface.
func (plt *Platform) Render() {
	if !plt.record(Op{Kind: OpRender}) {
		return
	}
	plt.con.render()
}

// Trace returns the list of operations in the order they were performed.
func (plt *Platform) Trace() []Op {
	return plt.trace
}

// Faults returns the list of faults recorded by the platform.
func (plt *Platform) Faults() []error {
	return plt.faults
}

// Handoff returns the state of the machine at the moment of the control
// transfer. Returns nil if there has been no control transfer.
func (plt *Platform) Handoff() *Handoff {
	return plt.handoff
}

// Halted returns true if the CPU has been halted.
func (plt *Platform) Halted() bool {
	return plt.halted
}

// Waited returns the total amount of time spent in Wait().
func (plt *Platform) Waited() time.Duration {
	return plt.waited
}

// ConsoleText returns everything printed to the console.
func (plt *Platform) ConsoleText() string {
	return plt.con.text.String()
}

// Peek returns a copy of length bytes of RAM starting at the address.
func (plt *Platform) Peek(addr uint32, length uint32) []byte {
	phys, area := memorymap.MapAddress(addr)
	if area != memorymap.RDRAM || uint64(phys)+uint64(length) > uint64(len(plt.rdram)) {
		return nil
	}
	p := make([]byte, length)
	copy(p, plt.rdram[phys:])
	return p
}

// Poke writes data to RAM starting at the address. Returns false if the data
// does not fit in installed RAM.
func (plt *Platform) Poke(addr uint32, data []byte) bool {
	phys, area := memorymap.MapAddress(addr)
	if area != memorymap.RDRAM || uint64(phys)+uint64(len(data)) > uint64(len(plt.rdram)) {
		return false
	}
	copy(plt.rdram[phys:], data)
	return true
}
