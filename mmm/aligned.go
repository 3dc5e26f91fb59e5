package mmm

import "unsafe"

// NewAlignedBuffer returns a slice of n elements of T whose backing array
// starts at an address that is a multiple of alignment bytes. It never
// zeroes the returned window beyond what make() already zeroes (Go always
// zeroes new slices; the point of this helper is the alignment guarantee,
// not avoiding zero-fill, since Go offers no uninitialized allocation).
// It is a pure-Go, no-cgo stand-in for the aligned-uninitialized-allocation
// primitive the source gets from its tensor library directly.
func NewAlignedBuffer[T Float](n, alignment int) ([]T, error) {
	if alignment <= 0 || alignment&(alignment-1) != 0 {
		return nil, &AllocationError{Msg: "alignment must be a positive power of two"}
	}
	if n < 0 {
		return nil, &AllocationError{Msg: "negative buffer length"}
	}
	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	if elemSize == 0 {
		return nil, &AllocationError{Msg: "zero-sized element type"}
	}

	slack := alignment / elemSize
	if slack == 0 {
		slack = 1
	}
	buf := make([]T, n+slack)
	if n == 0 {
		return buf[:0], nil
	}

	addr := uintptr(unsafe.Pointer(&buf[0]))
	misalignment := int(addr % uintptr(alignment))
	var skip int
	if misalignment != 0 {
		bytesToSkip := alignment - misalignment
		skip = (bytesToSkip + elemSize - 1) / elemSize
	}
	if skip+n > len(buf) {
		return nil, &AllocationError{Msg: "could not carve an aligned window out of the allocated slack"}
	}
	return buf[skip : skip+n : skip+n], nil
}
