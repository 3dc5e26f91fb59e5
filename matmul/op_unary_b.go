package matmul

import "gorgonia.org/tensor"

// MatMulUnaryB is a matmul whose A operand is the graph constant. Unlike
// MatMulUnaryA it is not further specialized: B's shape is rarely static
// at the call sites that produce this op (typically the RHS of a
// batched attention-style product), so there is no analogue of
// ImplASimpleB/ImplAGeneral worth building here — it simply swaps operand
// order into the fully generic evaluator. See the design notes for why
// this asymmetry is intentional rather than a missing feature.
type MatMulUnaryB struct {
	A *tensor.Dense
}

// NewMatMulUnaryB builds a MatMulUnaryB over the constant operand a.
func NewMatMulUnaryB(a *tensor.Dense) *MatMulUnaryB { return &MatMulUnaryB{A: a} }

func (*MatMulUnaryB) Name() string { return "MatMulUnaryB" }

// Eval computes A . b for the constant A against tensor b.
func (op *MatMulUnaryB) Eval(b tensor.Tensor) (tensor.Tensor, error) {
	return MatMul{}.Eval(op.A, b)
}
