package mmm

import (
	"fmt"

	"github.com/ajroetker/go-highway/hwy/contrib/dot"
	"github.com/pkg/errors"
)

// portableKernel is the default, always-available microkernel. It packs A
// row-major and B column-major so that every output cell reduces to a
// contiguous dot product, computed with go-highway's SIMD-dispatching dot
// package instead of a hand-rolled loop — the exact seam a future
// platform-accelerated Kernel would occupy instead.
type portableKernel[T Float] struct {
	m, k, n int
}

func (k *portableKernel[T]) M() int { return k.m }
func (k *portableKernel[T]) K() int { return k.k }
func (k *portableKernel[T]) N() int { return k.n }

func (k *portableKernel[T]) APack() PackSpec[T] {
	return PackSpec[T]{rows: k.m, cols: k.k, colMajor: false, alignment: cacheLineAlignment}
}

func (k *portableKernel[T]) BPack() PackSpec[T] {
	return PackSpec[T]{rows: k.k, cols: k.n, colMajor: true, alignment: cacheLineAlignment}
}

func (k *portableKernel[T]) FromPackedA(buf []T) PackedA[T] { return PackedA[T]{data: buf, k: k.k} }
func (k *portableKernel[T]) FromPackedB(buf []T) PackedB[T] { return PackedB[T]{data: buf, k: k.k} }

func (k *portableKernel[T]) FromStridedC(buf []T, rowStride, colStride int) StridedC[T] {
	return StridedC[T]{data: buf, rowStride: rowStride, colStride: colStride}
}

func (k *portableKernel[T]) Run(a PackedA[T], b PackedB[T], c StridedC[T], postOps []FusedSpec[T]) error {
	if len(a.data) < k.m*k.k {
		return errors.Errorf("mmm: packed A too small: have %d, need %d", len(a.data), k.m*k.k)
	}
	if len(b.data) < k.n*k.k {
		return errors.Errorf("mmm: packed B too small: have %d, need %d", len(b.data), k.n*k.k)
	}

	contiguousRow := c.colStride == 1
	var scratch []T
	if !contiguousRow {
		scratch = make([]T, k.n)
	}

	for i := 0; i < k.m; i++ {
		rowA := a.data[i*k.k : i*k.k+k.k]
		cRowBase := i * c.rowStride

		var cRow []T
		if contiguousRow {
			cRow = c.data[cRowBase : cRowBase+k.n]
		} else {
			cRow = scratch
		}

		for j := 0; j < k.n; j++ {
			colB := b.data[j*k.k : j*k.k+k.k]
			cRow[j] = dotProduct(rowA, colB)
		}

		if err := applyRow(cRow, postOps); err != nil {
			return err
		}

		if !contiguousRow {
			for j := 0; j < k.n; j++ {
				c.data[cRowBase+j*c.colStride] = cRow[j]
			}
		}
	}
	return nil
}

func (k *portableKernel[T]) String() string {
	var zero T
	return fmt.Sprintf("mmm.portableKernel[%T]{m:%d, k:%d, n:%d}", zero, k.m, k.k, k.n)
}

// dotProduct dispatches to go-highway's float32/float64 dot product
// implementation based on T's concrete type.
func dotProduct[T Float](a, b []T) T {
	switch av := any(a).(type) {
	case []float32:
		return T(dot.Dot(av, any(b).([]float32)))
	case []float64:
		return T(dot.Dot64(av, any(b).([]float64)))
	default:
		panic("mmm: unsupported element type")
	}
}
