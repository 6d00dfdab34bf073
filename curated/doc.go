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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. This is similar to
// the Errorf() function in the fmt package. It takes a formatting pattern,
// placeholder values and returns an error.
//
// The Is() function can be used to check whether an error was created with a
// specific pattern. The pattern is what differentiates curated errors. For
// example:
//
//	e := curated.Errorf("boot: segment %d not loadable", 3)
//
//	if curated.Is(e, "boot: segment %d not loadable") {
//		fmt.Println("true")
//	}
//
// The Has() function is similar but checks if a pattern occurs somewhere in
// the error chain.
//
//	e := curated.Errorf("boot: no kernel configured")
//	f := curated.Errorf("emulation: %v", e)
//
//	if curated.Has(f, "boot: no kernel configured") {
//		fmt.Println("true")
//	}
//
// The IsAny() function answers whether the error was created by
// curated.Errorf(). We can think of the difference as being 'expected' and
// 'unexpected' errors depending on how we choose to handle the result of the
// function call.
//
// The Error() implementation normalises the error chain so that it does not
// contain duplicate adjacent parts. Chains are thought of as being composed
// of parts separated by the sub-string ": ". For example, wrapping
//
//	boot: no kernel configured
//
// with the pattern "boot: %v" results in the same message and not:
//
//	boot: boot: no kernel configured
//
// Sentinel patterns should be stored as a const string in the package that
// produces the error, suitably named and commented.
package curated
