// Package target models the (architecture, operating system, ABI hint)
// triple that fixes every ABI-relevant parameter the layout engine and
// mapper need: pointer width, endianness-adjacent ARM quirks, and the
// soft/hard float ABI hint carried on some triples.
package target

import (
	"fmt"
	"strings"
)

// Arch is a target CPU architecture.
type Arch uint8

const (
	ArchInvalid Arch = iota
	ArchX86
	ArchX86_64
	ArchARM32
	ArchARM64
)

func (a Arch) String() string {
	switch a {
	case ArchX86:
		return "x86"
	case ArchX86_64:
		return "x86_64"
	case ArchARM32:
		return "arm32"
	case ArchARM64:
		return "arm64"
	default:
		return "invalid"
	}
}

// Is32Bit reports whether values of this architecture's pointer type are
// 4 bytes wide.
func (a Arch) Is32Bit() bool { return a == ArchX86 || a == ArchARM32 }

// IsARM reports whether this architecture is any flavor of ARM.
func (a Arch) IsARM() bool { return a == ArchARM32 || a == ArchARM64 }

// OS is a target operating system.
type OS uint8

const (
	OSInvalid OS = iota
	OSLinux
	OSDarwin
	OSWindows
)

func (o OS) String() string {
	switch o {
	case OSLinux:
		return "linux"
	case OSDarwin:
		return "darwin"
	case OSWindows:
		return "windows"
	default:
		return "invalid"
	}
}

// ABIHint distinguishes float-calling-convention variants that can be
// layered onto the same (arch, os) pair. Named after, but not bound to,
// the SWIG-generated aura.llvm.binding.FloatABIType enum: only the
// three-way distinction is reused here, not any of that binding's
// generated marshalling code (out of this core's scope).
type ABIHint uint8

const (
	ABIDefault ABIHint = iota
	ABISoft
	ABIHard
)

func (h ABIHint) String() string {
	switch h {
	case ABISoft:
		return "soft"
	case ABIHard:
		return "hard"
	default:
		return "default"
	}
}

// Target is a fully-resolved (arch, os, abi) triple.
type Target struct {
	Arch Arch
	OS   OS
	ABI  ABIHint
}

// PointerBytes returns the width in bytes of a pointer on this target.
func (t Target) PointerBytes() int {
	if t.Arch.Is32Bit() {
		return 4
	}
	return 8
}

// IsARM reports whether the target architecture is any flavor of ARM.
func (t Target) IsARM() bool { return t.Arch.IsARM() }

// LongLongAlignOnARM32 reports whether this target requires 8-byte
// alignment for 64-bit integer and double fields despite being a 32-bit
// target — true only for 32-bit ARM (spec.md §3, §4.3.3).
func (t Target) LongLongAlignOnARM32() bool {
	return t.Arch == ArchARM32
}

// String renders the triple in the canonical "arch-os" short form.
func (t Target) String() string {
	return fmt.Sprintf("%s-%s", t.Arch, t.OS)
}

var archAliases = map[string]Arch{
	"x86":     ArchX86,
	"i386":    ArchX86,
	"i486":    ArchX86,
	"i586":    ArchX86,
	"i686":    ArchX86,
	"x86_64":  ArchX86_64,
	"amd64":   ArchX86_64,
	"arm":     ArchARM32,
	"arm32":   ArchARM32,
	"armv7":   ArchARM32,
	"arm64":   ArchARM64,
	"aarch64": ArchARM64,
}

var osAliases = map[string]OS{
	"linux":       OSLinux,
	"linux-gnu":   OSLinux,
	"unknown":     OSLinux, // "x86_64-unknown-linux" style triples with no vendor
	"darwin":      OSDarwin,
	"ios":         OSDarwin,
	"apple":       OSDarwin, // resolved further from the vendor slot, see Parse
	"macos":       OSDarwin,
	"windows":     OSWindows,
	"win32":       OSWindows,
	"windows-gnu": OSWindows,
}

// Parse accepts target triple strings of the shapes spec.md §6 gives as
// examples ("x86_64-unknown-linux", "i386-unknown-linux",
// "arm-apple-ios", "arm64-apple-ios") plus informal two-component
// "arch-os" shorthand. Components are split on '-' and matched
// independently against arch/os alias tables; an unrecognized arch or an
// os token that never resolves is an error (spec.md §7 "Target-triple
// unsupported").
func Parse(triple string) (Target, error) {
	triple = strings.TrimSpace(triple)
	if triple == "" {
		return Target{}, fmt.Errorf("target: empty triple")
	}
	parts := strings.Split(triple, "-")

	arch, ok := archAliases[strings.ToLower(parts[0])]
	if !ok {
		return Target{}, fmt.Errorf("target: unrecognized architecture %q in triple %q", parts[0], triple)
	}

	var os OS
	for _, p := range parts[1:] {
		if o, ok := osAliases[strings.ToLower(p)]; ok && o != OSInvalid {
			// "apple" alone does not resolve to darwin; it's a vendor
			// token that only confirms the os token beside it.
			if strings.ToLower(p) == "apple" {
				continue
			}
			os = o
		}
	}
	if os == OSInvalid {
		return Target{}, fmt.Errorf("target: unrecognized operating system in triple %q", triple)
	}

	abi := ABIDefault
	if os == OSLinux && arch == ArchARM32 {
		abi = ABIHard
	}
	return Target{Arch: arch, OS: os, ABI: abi}, nil
}

// New constructs a Target directly, bypassing string parsing. Useful for
// tests and for callers that already resolved arch/os elsewhere.
func New(arch Arch, os OS, abi ABIHint) Target {
	return Target{Arch: arch, OS: os, ABI: abi}
}
