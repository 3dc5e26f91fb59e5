package matmul

import (
	"github.com/csotherden/gorgonia-matmul/graph"
	"github.com/csotherden/gorgonia-matmul/mmm"
)

// fusedOpsFor pattern-matches a successor op against the fusable pointwise
// table: per-column multiply/add (vector length must equal n, the output's
// trailing axis), and scalar max/min/clamp (rendered as one or two post-ops
// since the kernel's FusedSpec has no combined clamp variant). A successor
// outside the table, or a per-column vector of the wrong length, yields
// nil: that is simply "does not fuse", not a failure.
func fusedOpsFor[T mmm.Float](succ graph.SuccessorOp, n int) []mmm.FusedSpec[T] {
	switch succ.Kind() {
	case graph.SuccessorMul:
		vec := succ.ConstVec()
		if len(vec) != n {
			return nil
		}
		return []mmm.FusedSpec[T]{mmm.PerColMul[T]{Vec: toT[T](vec)}}
	case graph.SuccessorAdd:
		vec := succ.ConstVec()
		if len(vec) != n {
			return nil
		}
		return []mmm.FusedSpec[T]{mmm.PerColAdd[T]{Vec: toT[T](vec)}}
	case graph.SuccessorScalarMax:
		return []mmm.FusedSpec[T]{mmm.Max[T]{V: T(succ.Scalar())}}
	case graph.SuccessorScalarMin:
		return []mmm.FusedSpec[T]{mmm.Min[T]{V: T(succ.Scalar())}}
	case graph.SuccessorScalarClamp:
		lo, hi := succ.ClampBounds()
		return []mmm.FusedSpec[T]{mmm.Min[T]{V: T(hi)}, mmm.Max[T]{V: T(lo)}}
	default:
		return nil
	}
}

// fusionLabel names the successor kind for the fused node's debug name
// (e.g. "MatMulUnaryImplASimpleB+PerColMul"), purely cosmetic.
func fusionLabel(kind graph.SuccessorKind) string {
	switch kind {
	case graph.SuccessorMul:
		return "PerColMul"
	case graph.SuccessorAdd:
		return "PerColAdd"
	case graph.SuccessorScalarMax:
		return "Max"
	case graph.SuccessorScalarMin:
		return "Min"
	case graph.SuccessorScalarClamp:
		return "Clamp"
	default:
		return "Fused"
	}
}

func toT[T mmm.Float](v []float64) []T {
	out := make([]T, len(v))
	for i, x := range v {
		out[i] = T(x)
	}
	return out
}
