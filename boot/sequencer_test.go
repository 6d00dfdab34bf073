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

package boot_test

import (
	"debug/elf"
	"fmt"
	"strings"
	"testing"

	"github.com/jetsetilly/cartboot/boot"
	"github.com/jetsetilly/cartboot/curated"
	"github.com/jetsetilly/cartboot/hardware/emulated"
	"github.com/jetsetilly/cartboot/romimage"
	"github.com/jetsetilly/cartboot/test"
)

const entry = uint32(0x80000400)

// segment data with a recognisable pattern
func code(n int) []byte {
	d := make([]byte, n)
	for i := range d {
		d[i] = byte(i) | 0x80
	}
	return d
}

// kernel with a single loadable segment, padded to size bytes
func kernel(size int, fileSize int, memSize uint32) []byte {
	k := romimage.Kernel(entry, romimage.Segment{
		Type:    elf.PT_LOAD,
		PAddr:   entry,
		Data:    code(fileSize),
		MemSize: memSize,
	})
	if len(k) < size {
		k = append(k, make([]byte, size-len(k))...)
	}
	return k
}

func platform(t *testing.T, kernel []byte, disk []byte) *emulated.Platform {
	t.Helper()
	rom, err := romimage.Build(romimage.Layout{Kernel: kernel, Disk: disk})
	test.DemandSuccess(t, err)
	return emulated.NewPlatform(rom, emulated.RAM8MB)
}

// list of operation kinds in the trace, filtered by the list of kinds
func kinds(plt *emulated.Platform, filter ...emulated.OpKind) []emulated.OpKind {
	var k []emulated.OpKind
	for _, op := range plt.Trace() {
		for _, f := range filter {
			if op.Kind == f {
				k = append(k, op.Kind)
				break
			}
		}
	}
	return k
}

func TestDiskOffset(t *testing.T) {
	for _, c := range []struct {
		kernelSize uint32
		expected   uint32
	}{
		{0, 0},
		{1, 4096},
		{4095, 4096},
		{4096, 4096},
		{4097, 8192},
		{65536, 65536},
		{1000000, 1003520},
	} {
		test.ExpectEquality(t, boot.DiskOffset(c.kernelSize), c.expected, c.kernelSize)
		test.ExpectEquality(t, boot.DiskOffset(c.kernelSize), boot.DiskOffset(c.kernelSize), c.kernelSize)
		test.ExpectEquality(t, boot.DiskOffset(c.kernelSize)%4096, uint32(0), c.kernelSize)
	}
}

func TestBoot(t *testing.T) {
	plt := platform(t, kernel(65536, 100, 150), make([]byte, 1048576))

	// RAM that the zero fill should not reach
	fill := make([]byte, 256)
	for i := range fill {
		fill[i] = 0xff
	}
	test.DemandSuccess(t, plt.Poke(entry, fill))

	seq := boot.NewSequencer(boot.NewConfig(), plt)
	err := seq.Run()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, seq.State(), boot.Transferred)
	test.ExpectEquality(t, len(plt.Faults()), 0)

	md := seq.Metadata()
	test.ExpectEquality(t, md.KernelSize, uint32(65536))
	test.ExpectEquality(t, md.DiskSize, uint32(1048576))
	test.ExpectEquality(t, md.DiskOffset, uint32(65536))

	h := plt.Handoff()
	test.DemandSuccess(t, h != nil)
	test.ExpectEquality(t, h.Entry, entry)
	test.ExpectEquality(t, strings.Join(h.Argv, " "),
		"hello n64cart.start=2953908224 n64cart.size=1048576 root=/dev/n64cart")
	test.ExpectEquality(t, len(h.Envp), 0)
	test.ExpectFailure(t, h.InterruptsEnabled)
	test.ExpectFailure(t, h.VideoInterrupt)
	test.ExpectSuccess(t, h.Settled)

	// segment data followed by zero fill. RAM beyond the memory size of the
	// segment is untouched
	ram := plt.Peek(entry, 256)
	test.ExpectEquality(t, string(ram[:100]), string(code(100)))
	test.ExpectEquality(t, string(ram[100:150]), string(make([]byte, 50)))
	test.ExpectEquality(t, string(ram[150:]), string(fill[150:]))
}

func TestDiagnostics(t *testing.T) {
	plt := platform(t, kernel(65536, 100, 150), make([]byte, 1048576))
	seq := boot.NewSequencer(boot.NewConfig(), plt)
	test.DemandSuccess(t, seq.Run())

	lines := strings.Split(plt.ConsoleText(), "\n")
	expected := []string{
		"Found 8192 kb of RAM",
		"Booting kernel 64 kb, 1024 kb",
		"Address: ",
		"LoadAddress: 0x80000400",
		"LoadOffset: 0xb0101054",
		"Entry: 0x80000400",
		"Disk: 65536",
		"n64cart.start=2953908224",
		"n64cart.size=1048576",
		"Jumping: 0x80000400",
		"",
	}
	test.DemandEquality(t, len(lines), len(expected))
	for i := range expected {
		test.ExpectSuccess(t, strings.HasPrefix(lines[i], expected[i]), lines[i])
	}
}

func TestTrace(t *testing.T) {
	plt := platform(t, kernel(4096, 100, 150), nil)
	seq := boot.NewSequencer(boot.NewConfig(), plt)
	test.DemandSuccess(t, seq.Run())

	// the platform operations that are not MMIO
	ops := kinds(plt,
		emulated.OpReadStorage, emulated.OpLoadStorage, emulated.OpInvalidateBuffer,
		emulated.OpWritebackInvalidateBuffer, emulated.OpWritebackInvalidate,
		emulated.OpFill, emulated.OpDisableInterrupts, emulated.OpHalt, emulated.OpJump,
		emulated.OpSetVideoInterrupt, emulated.OpWait, emulated.OpRender)

	expected := []emulated.OpKind{
		emulated.OpWritebackInvalidateBuffer, emulated.OpReadStorage,
		emulated.OpWritebackInvalidateBuffer, emulated.OpReadStorage,
		emulated.OpReadStorage, emulated.OpInvalidateBuffer,
		emulated.OpLoadStorage, emulated.OpWritebackInvalidate, emulated.OpFill,
		emulated.OpRender, emulated.OpWait, emulated.OpDisableInterrupts,
		emulated.OpSetVideoInterrupt, emulated.OpJump,
	}
	test.ExpectEquality(t, fmt.Sprint(ops), fmt.Sprint(expected))

	// storage addresses and lengths
	var reads []string
	for _, op := range plt.Trace() {
		switch op.Kind {
		case emulated.OpReadStorage, emulated.OpLoadStorage,
			emulated.OpWritebackInvalidate, emulated.OpFill:
			reads = append(reads, op.String())
		}
	}
	test.ExpectEquality(t, strings.Join(reads, "\n"), strings.Join([]string{
		"ReadStorage 4 bytes from 0xb0100ffc",
		"ReadStorage 4 bytes from 0xb0100ff8",
		"ReadStorage 256 bytes from 0xb0101000",
		"LoadStorage 100 bytes from 0xb0101054 to 0x80000400",
		"WritebackInvalidate 100 bytes at 0x80000400",
		"Fill 50 bytes at 0x80000464 with 0x00",
	}, "\n"))

	// settle time
	test.ExpectEquality(t, plt.Waited().Milliseconds(), int64(1024))
}

func TestNoKernel(t *testing.T) {
	plt := platform(t, nil, []byte("disk"))
	seq := boot.NewSequencer(boot.NewConfig(), plt)
	err := seq.Run()
	test.ExpectSuccess(t, curated.Is(err, boot.NoKernel))
	test.ExpectEquality(t, seq.State(), boot.Halted)
	test.ExpectSuccess(t, plt.Halted())
	test.ExpectSuccess(t, plt.Handoff() == nil)
	test.ExpectEquality(t, len(plt.Faults()), 0)
	test.ExpectSuccess(t, strings.HasSuffix(plt.ConsoleText(), "No kernel configured\n"))

	// no part of the kernel is read and there is no attempt at a transfer
	test.ExpectEquality(t, len(kinds(plt, emulated.OpLoadStorage, emulated.OpJump,
		emulated.OpDisableInterrupts)), 0)
	test.ExpectEquality(t, len(kinds(plt, emulated.OpReadStorage)), 2)

	trace := plt.Trace()
	test.ExpectEquality(t, trace[len(trace)-1].Kind, emulated.OpHalt)
}

func TestNoLoadableSegment(t *testing.T) {
	k := romimage.Kernel(entry,
		romimage.Segment{Type: elf.PT_NOTE, Data: []byte{1, 2, 3, 4}},
		romimage.Segment{Type: elf.PT_NULL},
	)
	plt := platform(t, k, nil)
	seq := boot.NewSequencer(boot.NewConfig(), plt)
	err := seq.Run()
	test.ExpectSuccess(t, curated.Is(err, boot.NoLoadableSegment))
	test.ExpectEquality(t, err.Error(), "boot: no loadable segment in 2 program headers")
	test.ExpectEquality(t, seq.State(), boot.Halted)
	test.ExpectSuccess(t, strings.HasSuffix(plt.ConsoleText(), "No loadable segment\n"))
	test.ExpectEquality(t, len(kinds(plt, emulated.OpLoadStorage, emulated.OpJump)), 0)
}

func TestUnboundedProgramHeaders(t *testing.T) {
	k := romimage.Kernel(entry, romimage.Segment{Type: elf.PT_NOTE, Data: []byte{1, 2, 3, 4}})

	// claim the maximum number of program headers. the scan must stop at
	// the end of the header window
	k[0x2c] = 0xff
	k[0x2d] = 0xff

	plt := platform(t, k, nil)
	seq := boot.NewSequencer(boot.NewConfig(), plt)
	err := seq.Run()
	test.ExpectSuccess(t, curated.Is(err, boot.NoLoadableSegment))
	test.ExpectEquality(t, err.Error(), "boot: no loadable segment in 6 program headers")
	test.ExpectEquality(t, seq.Header().Phnum, uint16(0xffff))
}

func TestInvalidHeader(t *testing.T) {
	k := kernel(4096, 16, 16)
	k[1] = 'X'
	k[4] = byte(elf.ELFCLASS64)

	// default behaviour is to warn and continue
	plt := platform(t, k, nil)
	seq := boot.NewSequencer(boot.NewConfig(), plt)

	var states []boot.State
	seq.OnState = func(s boot.State) {
		states = append(states, s)
	}

	test.DemandSuccess(t, seq.Run())
	test.ExpectEquality(t, seq.State(), boot.Transferred)
	test.ExpectEquality(t, fmt.Sprint(states),
		"[MetadataRead HeaderInvalidWarned SegmentScan SegmentLoad ArgsPacked Transferred]")
	test.ExpectSuccess(t, strings.Contains(plt.ConsoleText(), "Not an ELF kernel?\nNot a 32-bit kernel?\n"))
	test.ExpectEquality(t, len(seq.Header().Problems()), 2)

	// strict validation halts
	plt = platform(t, k, nil)
	cfg := boot.NewConfig()
	cfg.Strict = true
	seq = boot.NewSequencer(cfg, plt)
	err := seq.Run()
	test.ExpectSuccess(t, curated.Is(err, boot.InvalidHeader))
	test.ExpectEquality(t, seq.State(), boot.Halted)
	test.ExpectSuccess(t, plt.Halted())
	test.ExpectEquality(t, len(kinds(plt, emulated.OpLoadStorage, emulated.OpJump)), 0)
}

func TestStates(t *testing.T) {
	plt := platform(t, kernel(4096, 16, 16), nil)
	seq := boot.NewSequencer(boot.NewConfig(), plt)
	test.ExpectEquality(t, seq.State(), boot.Start)

	var states []boot.State
	seq.OnState = func(s boot.State) {
		states = append(states, s)
	}

	test.DemandSuccess(t, seq.Run())
	test.ExpectEquality(t, fmt.Sprint(states),
		"[MetadataRead HeaderValidate SegmentScan SegmentLoad ArgsPacked Transferred]")

	// the sequence can only be run once
	err := seq.Run()
	test.ExpectSuccess(t, curated.Is(err, boot.AlreadyRun))
	test.ExpectEquality(t, len(plt.Faults()), 0)
}

func TestStateIntegrity(t *testing.T) {
	test.ExpectSuccess(t, boot.StateIntegrity(boot.Start, boot.MetadataRead))
	test.ExpectSuccess(t, boot.StateIntegrity(boot.MetadataRead, boot.Halted))
	test.ExpectSuccess(t, boot.StateIntegrity(boot.HeaderInvalidWarned, boot.SegmentScan))
	test.ExpectSuccess(t, boot.StateIntegrity(boot.ArgsPacked, boot.Transferred))
	test.ExpectFailure(t, boot.StateIntegrity(boot.Start, boot.Transferred))
	test.ExpectFailure(t, boot.StateIntegrity(boot.SegmentScan, boot.ArgsPacked))
	test.ExpectFailure(t, boot.StateIntegrity(boot.Transferred, boot.Halted))
	test.ExpectFailure(t, boot.StateIntegrity(boot.Halted, boot.Halted))
	test.ExpectSuccess(t, boot.Halted.Terminal())
	test.ExpectFailure(t, boot.ArgsPacked.Terminal())
}

func TestInstalledRAM(t *testing.T) {
	plt := platform(t, kernel(4096, 16, 16), nil)

	// a 6105 CIC reads the installed RAM from a different location
	test.DemandSuccess(t, plt.Poke(0xa00003f0, []byte{0x00, 0x40, 0x00, 0x00}))

	cfg := boot.NewConfig()
	cfg.CIC = 6105
	test.DemandSuccess(t, boot.NewSequencer(cfg, plt).Run())
	test.ExpectSuccess(t, strings.HasPrefix(plt.ConsoleText(), "Found 4096 kb of RAM\n"))
}

func TestISViewer(t *testing.T) {
	isv := &test.CompareWriter{}
	plt := platform(t, kernel(65536, 100, 150), make([]byte, 1048576))
	plt.AttachISViewer(isv)

	test.DemandSuccess(t, boot.NewSequencer(boot.NewConfig(), plt).Run())
	test.ExpectEquality(t, len(plt.Faults()), 0)
	test.ExpectSuccess(t, strings.HasPrefix(plt.ConsoleText(), "Detected IS Viewer-64\nFound 8192 kb of RAM\n"))

	out := isv.String()
	test.ExpectSuccess(t, strings.HasPrefix(out, "Detected IS Viewer-64\nFound 8192 kb of RAM\n"))
	test.ExpectSuccess(t, strings.HasSuffix(out, "Jumping: 0x80000400\n"))

	// the argument strings are forwarded as the complete 256 byte buffer.
	// including the NUL padding
	args := make([]byte, 256)
	copy(args, "n64cart.start=2953908224")
	copy(args[128:], "n64cart.size=1048576")
	test.ExpectSuccess(t, strings.Contains(out, "Disk: 65536\n"+string(args)+"Jumping: "))
}
