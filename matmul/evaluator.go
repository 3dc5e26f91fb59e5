package matmul

import (
	"github.com/csotherden/gorgonia-matmul/internal/geom"
	"github.com/csotherden/gorgonia-matmul/mmm"
	"gorgonia.org/tensor"
)

// evalGeneric implements MatMul.Eval for a concrete element type: both
// operands are packed fresh for every batch cell, since neither is known
// to be a graph constant worth pre-packing once (that optimization is
// exactly what ImplASimpleB and ImplAGeneral exist to capture).
func evalGeneric[T mmm.Float](a, b tensor.Tensor) (tensor.Tensor, error) {
	da, adata, err := denseData[T](a)
	if err != nil {
		return nil, err
	}
	db, bdata, err := denseData[T](b)
	if err != nil {
		return nil, err
	}

	g, err := geom.NewGeometry[T](da.Shape(), db.Shape())
	if err != nil {
		return nil, mapLowerErr(err)
	}

	aStrides := g.AlignedAStrides(da.Strides())
	bStrides := g.AlignedBStrides(db.Strides())
	cStrides := geom.RowMajorStrides(g.CShape)

	rank := len(g.CShape)
	aRowStride, aColStride := aStrides[rank-2], aStrides[rank-1]
	bRowStride, bColStride := bStrides[rank-2], bStrides[rank-1]
	cRowStride, cColStride := cStrides[rank-2], cStrides[rank-1]

	cData := make([]T, geom.Prod(g.CShape))

	apackSpec := g.Kernel.APack()
	bpackSpec := g.Kernel.BPack()
	pa, err := mmm.NewAlignedBuffer[T](apackSpec.Len(), apackSpec.Alignment())
	if err != nil {
		return nil, mapLowerErr(err)
	}
	pb, err := mmm.NewAlignedBuffer[T](bpackSpec.Len(), bpackSpec.Alignment())
	if err != nil {
		return nil, mapLowerErr(err)
	}

	err = iteratePrefix(g.CShapePrefix, func(idx []int) error {
		aOff := prefixOffset(idx, g.BcAShape[:len(idx)], aStrides[:len(idx)])
		bOff := prefixOffset(idx, g.BcBShape[:len(idx)], bStrides[:len(idx)])
		cOff := prefixOffset(idx, nil, cStrides[:len(idx)])

		apackSpec.Pack(pa, adata[aOff:], aRowStride, aColStride)
		bpackSpec.Pack(pb, bdata[bOff:], bRowStride, bColStride)

		return g.Kernel.Run(
			g.Kernel.FromPackedA(pa),
			g.Kernel.FromPackedB(pb),
			g.Kernel.FromStridedC(cData[cOff:], cRowStride, cColStride),
			nil,
		)
	})
	if err != nil {
		return nil, err
	}

	return tensor.New(tensor.WithShape(g.CShape...), tensor.WithBacking(cData)), nil
}
