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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It provides a convenient method of handling program modes (and
// sub-modes) and allows different flags for each mode.
//
// Whereas, with flag.FlagSet you call Parse() with the array of strings as
// the only argument, with modalflag you first NewArgs() with the array of
// arguments and then Parse() with no arguments:
//
//	md = Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	_, _ = md.Parse()
//
// A mode is a special command line argument that when specified, puts the
// program into a different mode of operation. Each mode can have a different
// set of flags and expected arguments. Modes are added with AddSubModes(). The
// first mode in the list is the default mode.
//
//	md.AddSubModes("BOOT", "PACK", "PADSIZE")
//
// All sub-mode comparisons are case insensitive.
//
// After Parse() the Mode() function returns the selected mode. NewMode()
// then prepares the Modes struct for the flags of that mode:
//
//	switch md.Mode() {
//	case "BOOT":
//		md.NewMode()
//		strict := md.AddBool("strict", false, "halt on invalid image header")
//		base := md.AddAddress("base", 0xb0101000, "kernel base address")
//		p, err := md.Parse()
//		switch p {
//		case ParseError:
//			return err
//		case ParseHelp:
//			return nil
//		}
//		boot(md.RemainingArgs(), *strict, *base)
//	}
//
// The Path() function returns the series of modes that have been selected,
// separated by a slash. Useful for help messages.
package modalflag
