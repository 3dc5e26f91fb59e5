package matmul

import (
	"github.com/csotherden/gorgonia-matmul/internal/geom"
	"github.com/csotherden/gorgonia-matmul/mmm"
	"gorgonia.org/tensor"
)

// ImplAGeneral is the specialization chosen when B carries its own batch
// prefix (rank > 2): each distinct batch cell of B needs its own packed
// tile, so every tile is pre-packed once at construction into a single
// packedBs buffer, addressed by a row-major index over B's
// broadcast-normalized prefix shape. Eval then only ever packs A.
type ImplAGeneral[T mmm.Float] struct {
	geo       *geom.Geometry[T]
	packedBs  []T
	packedLen int
}

// NewImplAGeneral builds the specialization for an A of aShape against
// constant b.
func NewImplAGeneral[T mmm.Float](aShape []int, b *tensor.Dense) (*ImplAGeneral[T], error) {
	geo, err := geom.NewGeometry[T](aShape, b.Shape())
	if err != nil {
		return nil, mapLowerErr(err)
	}

	bpackSpec := geo.Kernel.BPack()
	packedLen := bpackSpec.Len()

	rank := len(geo.BcBShape)
	bPrefixShape := geo.BcBShape[:rank-2]
	numCells := geom.Prod(bPrefixShape)

	packedBs, err := mmm.NewAlignedBuffer[T](numCells*packedLen, bpackSpec.Alignment())
	if err != nil {
		return nil, mapLowerErr(err)
	}

	_, bdata, err := denseData[T](b)
	if err != nil {
		return nil, err
	}
	bStridesAligned := geo.AlignedBStrides(geom.RowMajorStrides(b.Shape()))
	bRowStride, bColStride := bStridesAligned[rank-2], bStridesAligned[rank-1]

	cell := 0
	err = iteratePrefix(bPrefixShape, func(idx []int) error {
		off := prefixOffset(idx, nil, bStridesAligned[:len(idx)])
		tileStart := cell * packedLen
		bpackSpec.Pack(packedBs[tileStart:tileStart+packedLen], bdata[off:], bRowStride, bColStride)
		cell++
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ImplAGeneral[T]{geo: geo, packedBs: packedBs, packedLen: packedLen}, nil
}

func (*ImplAGeneral[T]) Name() string { return "MatMulUnaryImplA" }

func (op *ImplAGeneral[T]) Info() []string { return []string{op.geo.Kernel.String()} }

// Cost reports the FMA count across every batch cell of the full
// broadcast output.
func (op *ImplAGeneral[T]) Cost() CostEntry {
	cells := geom.Prod(op.geo.CShapePrefix)
	return CostEntry{
		DType:    dtypeTag[T](),
		FMACount: geom.Known(op.geo.M * op.geo.K * op.geo.N * cells),
	}
}

// Eval runs one matmul per batch cell of the broadcast output shape,
// packing A fresh each time and selecting the matching pre-packed B tile
// (broadcasting B's own batch axes against the output's, exactly as A's
// axes are broadcast).
func (op *ImplAGeneral[T]) Eval(a tensor.Tensor) (tensor.Tensor, error) {
	da, adata, err := denseData[T](a)
	if err != nil {
		return nil, err
	}

	aStridesAligned := op.geo.AlignedAStrides(da.Strides())
	cStrides := geom.RowMajorStrides(op.geo.CShape)

	rank := len(op.geo.CShape)
	aRowStride, aColStride := aStridesAligned[rank-2], aStridesAligned[rank-1]
	cRowStride, cColStride := cStrides[rank-2], cStrides[rank-1]

	bPrefixShape := op.geo.BcBShape[:rank-2]
	bTileStridePrefix := geom.RowMajorStrides(bPrefixShape)

	apackSpec := op.geo.Kernel.APack()
	pa, err := mmm.NewAlignedBuffer[T](apackSpec.Len(), apackSpec.Alignment())
	if err != nil {
		return nil, mapLowerErr(err)
	}

	cData := make([]T, geom.Prod(op.geo.CShape))

	err = iteratePrefix(op.geo.CShapePrefix, func(idx []int) error {
		aOff := prefixOffset(idx, op.geo.BcAShape[:len(idx)], aStridesAligned[:len(idx)])
		cOff := prefixOffset(idx, nil, cStrides[:len(idx)])

		tileIdx := prefixOffset(idx, bPrefixShape[:len(idx)], bTileStridePrefix[:len(idx)])
		tileStart := tileIdx * op.packedLen

		apackSpec.Pack(pa, adata[aOff:], aRowStride, aColStride)

		return op.geo.Kernel.Run(
			op.geo.Kernel.FromPackedA(pa),
			op.geo.Kernel.FromPackedB(op.packedBs[tileStart:tileStart+op.packedLen]),
			op.geo.Kernel.FromStridedC(cData[cOff:], cRowStride, cColStride),
			nil,
		)
	})
	if err != nil {
		return nil, err
	}

	return tensor.New(tensor.WithShape(op.geo.CShape...), tensor.WithBacking(cData)), nil
}
