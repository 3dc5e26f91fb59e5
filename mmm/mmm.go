// Package mmm is the injected packed-matmul microkernel (MMM) capability.
// It plays the same role for the matmul op that MPSEng plays for the
// tensor engine it wraps: a small capability interface, selected once per
// call shape, behind which a portable body lives today and a platform- or
// SIMD-accelerated body could be swapped in later without touching any
// call site.
package mmm

// Float is the set of element types a microkernel can operate on.
type Float interface {
	~float32 | ~float64
}

// PackSpec describes how to reformat a raw, strided operand submatrix into
// the packed layout a Kernel expects, and how much space that layout
// needs.
type PackSpec[T Float] struct {
	rows, cols int
	// colMajor packs cols contiguous runs of rows elements (used for B, so
	// that each packed column is dot-product-ready against a packed A
	// row). When false, rows contiguous runs of cols elements are packed
	// (used for A).
	colMajor  bool
	alignment int
}

// Len is the number of elements of T the packed buffer occupies.
func (p PackSpec[T]) Len() int { return p.rows * p.cols }

// Alignment is the required byte alignment of the packed buffer.
func (p PackSpec[T]) Alignment() int { return p.alignment }

// Pack reformats the rows x cols submatrix starting at src[0], addressed
// with the given element strides, into dst. dst must have at least Len()
// elements.
func (p PackSpec[T]) Pack(dst, src []T, rowStride, colStride int) {
	if !p.colMajor {
		for i := 0; i < p.rows; i++ {
			rowBase := i * rowStride
			dstBase := i * p.cols
			for j := 0; j < p.cols; j++ {
				dst[dstBase+j] = src[rowBase+j*colStride]
			}
		}
		return
	}
	for j := 0; j < p.cols; j++ {
		colBase := j * colStride
		dstBase := j * p.rows
		for i := 0; i < p.rows; i++ {
			dst[dstBase+i] = src[colBase+i*rowStride]
		}
	}
}

// PackedA is a packed A operand: m panels of k contiguous elements each.
type PackedA[T Float] struct {
	data []T
	k    int
}

// PackedB is a packed B operand: n panels of k contiguous elements each
// (column-major relative to the logical [k, n] submatrix).
type PackedB[T Float] struct {
	data []T
	k    int
}

// StridedC is a writable view over a [m, n] output submatrix addressed by
// element strides, as returned by a tensor's own Strides().
type StridedC[T Float] struct {
	data                 []T
	rowStride, colStride int
}

// Kernel is the capability a Geometry drives: pack descriptors for both
// operands, constructors that wrap raw buffers as kernel operands, and Run
// itself.
type Kernel[T Float] interface {
	M() int
	K() int
	N() int
	APack() PackSpec[T]
	BPack() PackSpec[T]
	FromPackedA(buf []T) PackedA[T]
	FromPackedB(buf []T) PackedB[T]
	FromStridedC(buf []T, rowStride, colStride int) StridedC[T]
	// Run computes C <- A . B, then applies postOps to C in order.
	Run(a PackedA[T], b PackedB[T], c StridedC[T], postOps []FusedSpec[T]) error
	// String is a short debug description, surfaced through Op.Info().
	String() string
}

// cacheLineAlignment is the default alignment requested for packed
// scratch; it matches common SIMD register widths (AVX-512 is 64 bytes)
// without hard-coding a specific instruction set.
const cacheLineAlignment = 64

// For selects the microkernel for a (T, m, k, n) call shape. Today this
// always returns the portable dot-product kernel; a platform-specific
// kernel would register itself here behind its own build tag, exactly as
// engine_darwin.go / engine_other.go do for the tensor engine this module
// is modeled on.
func For[T Float](m, k, n int) (Kernel[T], error) {
	if m <= 0 || k <= 0 || n <= 0 {
		return nil, &MMMUnavailableError{M: m, K: k, N: n}
	}
	return &portableKernel[T]{m: m, k: k, n: n}, nil
}
