package mmm

import "fmt"

// AllocationError reports that aligned packed scratch could not be
// allocated: an impossible alignment request, or a size that overflows
// what the allocator can carve an aligned window out of.
type AllocationError struct {
	Msg string
}

func (e *AllocationError) Error() string { return fmt.Sprintf("mmm: allocation error: %s", e.Msg) }

// MMMUnavailableError reports that no microkernel is registered for the
// requested (T, m, k, n) call shape.
type MMMUnavailableError struct {
	M, K, N int
}

func (e *MMMUnavailableError) Error() string {
	return fmt.Sprintf("mmm: no microkernel available for m=%d k=%d n=%d", e.M, e.K, e.N)
}
