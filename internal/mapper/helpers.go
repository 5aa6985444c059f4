package mapper

import (
	"fmt"

	"fortio.org/safecast"
)

// mustU32 narrows n to uint32, panicking with msg on overflow — the same
// safecast.Conv-guarded-by-panic idiom internal/ir.mustU32 uses for its
// own arena-index narrowing, applied here to the padding byte counts
// InstanceLayout/StaticLayout feed into ir.Interner.Array.
func mustU32(n int, msg string) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("%s: %w", msg, err))
	}
	return v
}
