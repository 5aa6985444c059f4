// Package mangle implements the trampoline symbol mangling scheme
// spec.md §4.4 calls "part of the ABI": a pure function of a trampoline
// tuple that is stable across runs, injective, and a valid linker
// symbol.
//
// Grounded on the teacher's internal/mono monoName/formatTypeArgs
// escaping approach (base name + escaped/braced type args), generalized
// into a standalone length-prefixed encoder: the teacher's scheme
// suffices for its own closed type-argument grammar but is not provably
// injective over arbitrary class/member names, which spec.md §4.4
// requires. Length-prefixing each escaped field guarantees injectivity
// even when a class or member name itself contains the separator
// sequence.
package mangle

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/width"
)

// ABIVersion is the compatibility marker spec.md §4.4 requires:
// "the mangling scheme is part of the ABI and must not change without
// bumping a compatibility marker."
const ABIVersion = 1

const separator = '$'

// Encode produces the mangled symbol for one trampoline tuple: a kind
// tag byte followed by each present field, length-prefixed and escaped,
// all joined by the reserved separator.
func Encode(tag byte, fields ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "jaotc%c%d%c%c", separator, ABIVersion, separator, tag)
	for _, f := range fields {
		esc := escape(f)
		b.WriteByte(separator)
		b.WriteString(strconv.Itoa(len(esc)))
		b.WriteByte('_')
		b.WriteString(esc)
	}
	return b.String()
}

// escape folds f to a canonical ASCII-width form (so Unicode-equivalent
// but byte-distinct names — e.g. fullwidth vs halfwidth forms — mangle
// identically, matching what a class loader treats as the same name),
// then hex-escapes every byte that is not a valid bare linker-symbol
// character or that collides with the encoder's own separator/prefix
// characters.
func escape(f string) string {
	folded := width.Fold.String(f)
	var b strings.Builder
	b.Grow(len(folded))
	for i := 0; i < len(folded); i++ {
		c := folded[i]
		if isSafe(c) {
			b.WriteByte(c)
			continue
		}
		fmt.Fprintf(&b, "$%02X", c)
	}
	return b.String()
}

func isSafe(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '_':
		return true
	default:
		return false
	}
}
