package geom

import "github.com/csotherden/gorgonia-matmul/mmm"

// Geometry materializes, for one (A shape, B shape, element type) pair,
// everything the packing/kernel driver needs to run a batched matmul: the
// matrix dimensions, the broadcast-normalized shapes, the selected
// microkernel, and the batch-prefix strides that drive the per-cell loop.
// It is created once (at codegen/first evaluation) and never mutated
// afterward.
type Geometry[T mmm.Float] struct {
	M, K, N int

	AShape, BShape     []int
	BcAShape, BcBShape []int
	CShape             []int
	CShapePrefix       []int

	Padding Padding

	// AStridePrefix, BStridePrefix, CStridePrefix are the row-major
	// element strides of the batch-prefix axes (skipping the trailing two
	// matrix axes), one entry per axis of CShapePrefix.
	AStridePrefix []int
	BStridePrefix []int
	CStridePrefix []int

	Kernel mmm.Kernel[T]
}

// NewGeometry builds a Geometry for a matmul of aShape x bShape.
func NewGeometry[T mmm.Float](aShape, bShape []int) (*Geometry[T], error) {
	bcA, bcB, cShape, pad, err := InferShapes(IntsToDims(aShape), IntsToDims(bShape))
	if err != nil {
		return nil, err
	}

	rank := len(bcA)
	m := int(bcA[rank-2])
	k := int(bcA[rank-1])
	n := int(bcB[rank-1])

	kernel, err := mmm.For[T](m, k, n)
	if err != nil {
		return nil, err
	}

	return &Geometry[T]{
		M: m, K: k, N: n,
		AShape:        append([]int(nil), aShape...),
		BShape:        append([]int(nil), bShape...),
		BcAShape:      DimsToInts(bcA),
		BcBShape:      DimsToInts(bcB),
		CShape:        DimsToInts(cShape),
		CShapePrefix:  DimsToInts(cShape)[:rank-2],
		Padding:       pad,
		AStridePrefix: rowMajorStridePrefix(DimsToInts(bcA)),
		BStridePrefix: rowMajorStridePrefix(DimsToInts(bcB)),
		CStridePrefix: rowMajorStridePrefix(DimsToInts(cShape)),
		Kernel:        kernel,
	}, nil
}

// RowMajorStrides returns the full row-major element strides for shape.
// Callers that need only the batch-prefix entries (all but the trailing
// two axes) should slice the result themselves; rowMajorStridePrefix does
// that for Geometry's own fields.
func RowMajorStrides(shape []int) []int {
	rank := len(shape)
	strides := make([]int, rank)
	acc := 1
	for i := rank - 1; i >= 0; i-- {
		strides[i] = acc
		acc *= shape[i]
	}
	return strides
}

// rowMajorStridePrefix computes row-major element strides for shape,
// returning only the entries for the batch-prefix axes (all but the
// trailing two).
func rowMajorStridePrefix(shape []int) []int {
	strides := RowMajorStrides(shape)
	if len(shape) < 2 {
		return nil
	}
	return strides[:len(shape)-2]
}

// Prod returns the product of shape's dimensions (1 for an empty shape).
func Prod(shape []int) int {
	p := 1
	for _, d := range shape {
		p *= d
	}
	return p
}

// AlignedAStrides and AlignedBStrides splice the insertion bookkeeping from
// InferShapes onto a tensor's own (un-padded) strides, so that raw memory
// access can use BcAShape/BcBShape-rank indices directly: every
// synthesized axis gets a dummy stride of 0, which is safe because a
// synthesized axis is always a unit dimension and is therefore always
// indexed at 0.
func (g *Geometry[T]) AlignedAStrides(original []int) []int {
	return splicePadding(original, g.Padding.AFront, 0)
}

func (g *Geometry[T]) AlignedBStrides(original []int) []int {
	return splicePadding(original, g.Padding.BFront, g.Padding.BBack)
}

func splicePadding(original []int, front, back int) []int {
	out := make([]int, 0, front+len(original)+back)
	for i := 0; i < front; i++ {
		out = append(out, 0)
	}
	out = append(out, original...)
	for i := 0; i < back; i++ {
		out = append(out, 0)
	}
	return out
}
