package ir

import (
	"fmt"

	"fortio.org/safecast"
)

// mustU32 narrows n to uint32, panicking with msg on overflow. Every arena
// index conversion in this package goes through here, matching the
// teacher's internal/types.internRaw pattern of a safecast.Conv guarded by
// an immediate panic (arena overflow is a programmer error, not a
// recoverable condition).
func mustU32(n int, msg string) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("%s: %w", msg, err))
	}
	return v
}
