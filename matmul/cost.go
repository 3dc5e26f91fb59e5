package matmul

import "github.com/csotherden/gorgonia-matmul/internal/geom"

// CostEntry reports one line item of an operator's resource-usage
// estimate: Count multiply-accumulates of element type DType. Count is
// symbolic because cost estimation runs during graph typing, before every
// axis is necessarily a concrete integer.
type CostEntry struct {
	DType    DType
	FMACount geom.SymDim
}

// symbolicCost computes the FMA-count cost entry for a matmul of aShape x
// bShape, without requiring either shape to be fully resolved yet.
func symbolicCost(dtype DType, aShape, bShape []geom.SymDim) ([]CostEntry, error) {
	bcA, bcB, cShape, _, err := geom.InferShapes(aShape, bShape)
	if err != nil {
		return nil, &ShapeError{Err: err}
	}

	rank := len(bcA)
	m := bcA[rank-2]
	k := bcA[rank-1]
	n := bcB[rank-1]
	prefix := cShape[:rank-2]

	factors := append(append([]geom.SymDim{}, prefix...), m, k, n)
	return []CostEntry{{DType: dtype, FMACount: geom.MulSym(factors...)}}, nil
}
