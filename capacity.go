package shmap

import (
	"fmt"

	"github.com/Giulio2002/shmap/mapping"
)

// PageSize returns the platform's allocation granularity. Effective map
// capacities are always multiples of it.
func PageSize() int64 {
	return mapping.Platform().PageSize
}

// resolveCapacity turns a requested byte count into the capacity the OS
// will actually reserve: the request rounded up to the page size.
//
// A request above the platform's address-space ceiling is rejected here,
// before any OS call, when the ceiling is knowable (a 32-bit platform asked
// for more than the int width can express). A request within the ceiling
// may still be refused by the kernel at reservation time; that failure
// surfaces as an IOFailure from the reservation itself.
func resolveCapacity(capacity int64) (int64, error) {
	if capacity <= 0 {
		return 0, outOfRange("capacity", "capacity must be positive for a new map")
	}

	caps := mapping.Platform()
	if capacity > caps.MaxCapacity {
		return 0, outOfRange("capacity", fmt.Sprintf("capacity %d exceeds the platform limit of %d", capacity, caps.MaxCapacity))
	}

	rem := capacity % caps.PageSize
	if rem == 0 {
		return capacity, nil
	}
	if capacity > caps.MaxCapacity-(caps.PageSize-rem) {
		// Rounding would overflow the ceiling; let the reservation call
		// refuse the unrounded size instead.
		return capacity, nil
	}
	return capacity + caps.PageSize - rem, nil
}
