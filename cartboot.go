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

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/bradleyjkemp/memviz"
	"github.com/jetsetilly/cartboot/boot"
	"github.com/jetsetilly/cartboot/cartridgeloader"
	"github.com/jetsetilly/cartboot/curated"
	"github.com/jetsetilly/cartboot/digest"
	"github.com/jetsetilly/cartboot/hardware/emulated"
	"github.com/jetsetilly/cartboot/logger"
	"github.com/jetsetilly/cartboot/modalflag"
	"github.com/jetsetilly/cartboot/padsize"
	"github.com/jetsetilly/cartboot/performance"
	"github.com/jetsetilly/cartboot/romimage"
	"github.com/jetsetilly/cartboot/statsview"
	"github.com/jetsetilly/cartboot/terminal/easyterm"
)

type stateReq = string

const (
	// main thread should end as soon as possible.
	//
	// takes optional int argument, indicating the status code.
	reqQuit stateReq = "QUIT"

	// reset interrupt signal handling. used when an alternative
	// handler is more appropriate. for example, the step mode of the boot
	// command restores the terminal before quitting.
	//
	// takes no arguments.
	reqNoIntSig stateReq = "NOINTSIG"
)

type stateRequest struct {
	req  stateReq
	args interface{}
}

// communication between the main() function and the launch() function.
type mainSync struct {
	state chan stateRequest
}

// errQuiet is returned by a mode when the failure has already been explained
// to the user. the program exits with status 1 and no further message.
var errQuiet = errors.New("quiet failure")

func main() {
	sync := &mainSync{
		state: make(chan stateRequest),
	}

	// the value to use with os.Exit(). can be changed with reqQuit
	// stateRequest
	exitVal := 0

	// default ctrl-c handler. can be turned off with reqNoIntSig request
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	// launch program as a go routine. further communication is through
	// the mainSync instance
	go launch(sync, os.Args[1:])

	done := false
	for !done {
		select {
		case <-intChan:
			fmt.Println("\r")
			done = true

		case state := <-sync.state:
			switch state.req {
			case reqQuit:
				done = true
				if state.args != nil {
					if v, ok := state.args.(int); ok {
						exitVal = v
					} else {
						panic(fmt.Sprintf("cannot convert %s arguments into int", reqQuit))
					}
				}

			case reqNoIntSig:
				signal.Reset(os.Interrupt)
				if state.args != nil {
					panic(fmt.Sprintf("%s does not accept any arguments", reqNoIntSig))
				}
			}
		}
	}

	os.Exit(exitVal)
}

// launch is called from main() as a goroutine. uses mainSync instance to
// indicate when to quit.
func launch(sync *mainSync, args []string) {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(args)
	md.NewMode()
	md.AddSubModes("BOOT", "PACK", "PADSIZE", "PERFORMANCE")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		sync.state <- stateRequest{req: reqQuit}
		return

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		sync.state <- stateRequest{req: reqQuit, args: 10}
		return
	}

	switch md.Mode() {
	case "BOOT":
		err = bootMode(md, sync)

	case "PACK":
		err = pack(md)

	case "PADSIZE":
		err = padSize(md)

	case "PERFORMANCE":
		err = perform(md)
	}

	if err != nil {
		if errors.Is(err, errQuiet) {
			sync.state <- stateRequest{req: reqQuit, args: 1}
			return
		}
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		sync.state <- stateRequest{req: reqQuit, args: 20}
		return
	}

	sync.state <- stateRequest{req: reqQuit}
}

// bootFlags are the flags shared by the BOOT and PERFORMANCE modes.
type bootFlags struct {
	base   *uint32
	settle *time.Duration
	cic    *int
	strict *bool

	kernel *string
	disk   *string
	hash   *string
	ram    *int
}

func addBootFlags(md *modalflag.Modes) bootFlags {
	def := boot.NewConfig()

	return bootFlags{
		base:   md.AddAddress("base", def.Base, "kernel base address"),
		settle: md.AddDuration("settle", def.Settle, "settle delay before the control transfer"),
		cic:    md.AddInt("cic", def.CIC, "boot CIC type"),
		strict: md.AddBool("strict", def.Strict, "halt if the kernel image header is invalid"),
		kernel: md.AddString("kernel", "", "kernel ELF image (instead of a cartridge image)"),
		disk:   md.AddString("disk", "", "disk image (only valid with -kernel)"),
		hash:   md.AddString("hash", "", "expected SHA-1 hash of the cartridge image"),
		ram:    md.AddInt("ram", 8, "installed RAM in megabytes: 4 or 8"),
	}
}

// config should only be called after the flags have been parsed.
func (f bootFlags) config() boot.Config {
	cfg := boot.NewConfig()
	cfg.Base = *f.base
	cfg.Settle = *f.settle
	cfg.CIC = *f.cic
	cfg.Strict = *f.strict
	return cfg
}

func (f bootFlags) ramSize() (uint32, error) {
	switch *f.ram {
	case 4:
		return emulated.RAM4MB, nil
	case 8:
		return emulated.RAM8MB, nil
	}
	return 0, fmt.Errorf("unsupported RAM size (%dMB)", *f.ram)
}

// cartridge returns the cartridge image. the image is either loaded from the
// single remaining argument or packed from the -kernel and -disk flags.
func (f bootFlags) cartridge(md *modalflag.Modes) ([]byte, error) {
	if *f.kernel != "" {
		if len(md.RemainingArgs()) > 0 {
			return nil, fmt.Errorf("cartridge image not allowed with -kernel for %s mode", md)
		}

		var l romimage.Layout
		var err error

		l.Kernel, err = os.ReadFile(*f.kernel)
		if err != nil {
			return nil, err
		}
		if *f.disk != "" {
			l.Disk, err = os.ReadFile(*f.disk)
			if err != nil {
				return nil, err
			}
		}

		return romimage.Build(l)
	}

	if *f.disk != "" {
		return nil, fmt.Errorf("-disk is only valid with -kernel")
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return nil, fmt.Errorf("cartridge image required for %s mode", md)
	case 1:
		cartload := cartridgeloader.NewLoader(md.GetArg(0))
		cartload.Hash = *f.hash
		err := cartload.Load()
		if err != nil {
			return nil, err
		}
		logger.Logf(logger.Allow, "cartboot", "loaded %s (%s order, sha1 %s)", cartload.ShortName(), cartload.Order, cartload.Hash)
		return cartload.Data, nil
	}

	return nil, fmt.Errorf("too many arguments for %s mode", md)
}

// echo log to the output with colored tags.
func echoLog(output io.Writer) {
	c := logger.NewColorizer(output)
	c.Pen("boot", "CYAN")
	c.Pen("diagnostic", "GREEN")
	c.Pen("emulated", "RED")
	logger.SetEcho(c)
}

func bootMode(md *modalflag.Modes, sync *mainSync) error {
	md.NewMode()
	md.AdditionalHelp("Boots a cartridge image on the emulated platform. The argument is either\n" +
		"a cartridge image file or URL. Alternatively, a cartridge image is packed\n" +
		"from the -kernel and -disk flags.")

	f := addBootFlags(md)
	isviewer := md.AddString("isviewer", "", "attach an ISViewer and write its output to file (- for stdout)")
	realTime := md.AddBool("realtime", false, "wait for the settle delay in real time")
	log := md.AddBool("log", false, "echo debugging log to stdout")
	step := md.AddBool("step", false, "wait for a key press after every state change")
	viz := md.AddString("memviz", "", "write a graphviz diagram of the handoff to file")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))
	profile := md.AddString("profile", "none", "run with profiling: cpu, mem, trace, all (comma separated)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	// set debugging log echo
	if *log {
		echoLog(md.Output)
	} else {
		logger.SetEcho(nil)
	}

	if *stats {
		statsview.Launch(md.Output)
	}

	prf, err := performance.ParseProfileString(*profile)
	if err != nil {
		return err
	}

	rom, err := f.cartridge(md)
	if err != nil {
		return err
	}

	ram, err := f.ramSize()
	if err != nil {
		return err
	}

	plt := emulated.NewPlatform(rom, ram)
	plt.SetConsole(md.Output, true)
	plt.SetRealTime(*realTime)

	switch *isviewer {
	case "":
	case "-":
		plt.AttachISViewer(md.Output)
	default:
		isv, err := os.Create(*isviewer)
		if err != nil {
			return err
		}
		defer isv.Close()
		plt.AttachISViewer(isv)
	}

	seq := boot.NewSequencer(f.config(), plt)

	if *step {
		term, err := stepper(seq, sync)
		if err != nil {
			return err
		}
		defer term.CleanUp()
	}

	// a halt is reported but is not a failure of the program
	err = performance.RunProfiler(prf, "boot", seq.Run)
	if err != nil {
		if !curated.IsAny(err) || curated.Has(err, performance.ProfilingError) {
			return err
		}
		fmt.Fprintf(md.Output, "* halted: %v\n", err)
	}

	return report(md.Output, plt, seq, *viz)
}

// report the result of a boot sequence.
func report(output io.Writer, plt *emulated.Platform, seq *boot.Sequencer, viz string) error {
	fmt.Fprintf(output, "* state: %s\n", seq.State())

	if h := plt.Handoff(); h != nil {
		fmt.Fprintf(output, "* entry: %#08x\n", h.Entry)
		fmt.Fprintf(output, "* argv: %s\n", strings.Join(h.Argv, " "))

		seg := seq.Segment()
		dig := digest.NewMemory(plt)
		err := dig.Region(seg.PAddr, seg.MemSize)
		if err != nil {
			fmt.Fprintf(output, "* segment: %s\n", err)
		} else {
			fmt.Fprintf(output, "* segment: %s (sha1 %s)\n", seg, dig.Hash())
		}

		if viz != "" {
			f, err := os.Create(viz)
			if err != nil {
				return err
			}
			defer f.Close()
			memviz.Map(f, h)
		}
	}

	faults := plt.Faults()
	for _, e := range faults {
		fmt.Fprintf(output, "* fault: %v\n", e)
	}
	if len(faults) > 0 {
		return fmt.Errorf("%d platform faults", len(faults))
	}

	return nil
}

// stepper prepares the terminal and installs a state change hook that waits
// for a key press. pressing ESC stops stepping and ctrl-c ends the program.
func stepper(seq *boot.Sequencer, sync *mainSync) (*easyterm.Terminal, error) {
	term := &easyterm.Terminal{}
	err := term.Initialise(os.Stdin, os.Stdout)
	if err != nil {
		return nil, err
	}

	// the terminal must be restored before the program ends
	sync.state <- stateRequest{req: reqNoIntSig}
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	go func() {
		<-intChan
		term.CleanUp()
		sync.state <- stateRequest{req: reqQuit, args: 30}
	}()

	term.CBreakMode()

	stepping := true
	seq.OnState = func(s boot.State) {
		if !stepping || s.Terminal() {
			return
		}
		term.Print("* %s [any key to continue, ESC to run]\n", s)
		k, err := term.WaitKey()
		if err != nil {
			logger.Log(logger.Allow, "cartboot", err)
			stepping = false
			return
		}
		switch k {
		case easyterm.KeyEsc:
			stepping = false
		case easyterm.KeyCtrlC, easyterm.KeyCtrlD:
			term.CleanUp()
			sync.state <- stateRequest{req: reqQuit, args: 30}
			select {}
		}
	}

	return term, nil
}

func pack(md *modalflag.Modes) error {
	md.NewMode()
	md.AdditionalHelp("Packs the parts of a cartridge image into a single file. The argument is\n" +
		"the output filename.")

	header := md.AddString("header", "", "ROM header (maximum 4096 bytes)")
	bootloader := md.AddString("bootloader", "", "bootloader binary")
	kernel := md.AddString("kernel", "", "kernel ELF image")
	disk := md.AddString("disk", "", "disk image")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("output file required for %s mode", md)
	case 1:
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	var l romimage.Layout
	for _, part := range []struct {
		filename string
		data     *[]byte
	}{
		{*header, &l.Header},
		{*bootloader, &l.Bootloader},
		{*kernel, &l.Kernel},
		{*disk, &l.Disk},
	} {
		if part.filename == "" {
			continue
		}
		*part.data, err = os.ReadFile(part.filename)
		if err != nil {
			return err
		}
	}

	rom, err := romimage.Build(l)
	if err != nil {
		return err
	}

	err = os.WriteFile(md.GetArg(0), rom, 0644)
	if err != nil {
		return err
	}

	fmt.Fprintf(md.Output, "kernel %d bytes, disk %d bytes at %#x\n", len(l.Kernel), len(l.Disk), l.DiskOffset())

	return nil
}

func padSize(md *modalflag.Modes) error {
	md.NewMode()
	md.AdditionalHelp("Prints the size of the file rounded up to 4096 bytes plus one megabyte.\n" +
		"If a second filename is given the unrounded size is written to it as a\n" +
		"big-endian 32bit record.")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	prog := fmt.Sprintf("%s %s", filepath.Base(os.Args[0]), md)

	switch len(md.RemainingArgs()) {
	case 0:
		fmt.Fprintf(md.Output, "Usage: %s file size.bin\n", prog)
		fmt.Fprintf(md.Output, "Usage: %s file \n", prog)
		return errQuiet
	case 1, 2:
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	size, padded, err := padsize.File(md.GetArg(0))
	if err != nil {
		fmt.Fprintln(md.Output, err)
		return errQuiet
	}

	fmt.Fprintf(md.Output, "%d", padded)

	if len(md.RemainingArgs()) == 2 {
		return padsize.Record(md.GetArg(1), size)
	}

	return nil
}

func perform(md *modalflag.Modes) error {
	md.NewMode()

	f := addBootFlags(md)
	duration := md.AddString("duration", "5s", "run duration")
	profile := md.AddString("profile", "none", "run with profiling: cpu, mem, trace, all (comma separated)")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	prf, err := performance.ParseProfileString(*profile)
	if err != nil {
		return err
	}

	rom, err := f.cartridge(md)
	if err != nil {
		return err
	}

	ram, err := f.ramSize()
	if err != nil {
		return err
	}

	return performance.Check(md.Output, prf, rom, ram, f.config(), *duration)
}
