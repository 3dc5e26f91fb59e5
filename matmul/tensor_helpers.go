package matmul

import (
	"fmt"

	"github.com/csotherden/gorgonia-matmul/mmm"
	"gorgonia.org/tensor"
)

// denseData recovers t's backing *tensor.Dense and its flat []T storage,
// failing if t is not a Dense of element type T. Every evaluator in this
// package works directly off this raw slice plus manually computed
// offsets, never through tensor.Slice, mirroring the teacher's own
// rowMajor2DToDenseF32-style raw-buffer access.
func denseData[T mmm.Float](t tensor.Tensor) (*tensor.Dense, []T, error) {
	d, ok := t.(*tensor.Dense)
	if !ok {
		return nil, nil, &TypeMismatchError{Msg: fmt.Sprintf("expected *tensor.Dense, got %T", t)}
	}
	data, ok := d.Data().([]T)
	if !ok {
		var zero T
		return nil, nil, &TypeMismatchError{Msg: fmt.Sprintf("expected backing []%T, got %T", zero, d.Data())}
	}
	return d, data, nil
}

// iteratePrefix calls fn once for every row-major multi-index over shape.
// A nil/empty shape means "no batch axes": fn is called exactly once with
// a nil index. A shape containing a zero-sized axis yields no calls at
// all, matching how an empty batch dimension means an empty C.
func iteratePrefix(shape []int, fn func(idx []int) error) error {
	if len(shape) == 0 {
		return fn(nil)
	}
	for _, d := range shape {
		if d == 0 {
			return nil
		}
	}

	idx := make([]int, len(shape))
	for {
		if err := fn(idx); err != nil {
			return err
		}
		pos := len(shape) - 1
		for pos >= 0 {
			idx[pos]++
			if idx[pos] < shape[pos] {
				break
			}
			idx[pos] = 0
			pos--
		}
		if pos < 0 {
			return nil
		}
	}
}

// prefixOffset computes the element offset that idx selects against
// strides. When bcShape is non-nil, each axis is clamped to bcShape[i]-1
// first, implementing the broadcast rule that a size-1 axis is always
// read at index 0 regardless of the logical (larger) index requested.
// Passing a nil bcShape addresses idx exactly, with no clamping.
func prefixOffset(idx, bcShape, strides []int) int {
	off := 0
	for i, ix := range idx {
		d := ix
		if bcShape != nil && d > bcShape[i]-1 {
			d = bcShape[i] - 1
		}
		off += d * strides[i]
	}
	return off
}
