package matmul

import (
	"github.com/csotherden/gorgonia-matmul/graph"
	"github.com/csotherden/gorgonia-matmul/internal/geom"
	"github.com/csotherden/gorgonia-matmul/mmm"
	"gorgonia.org/tensor"
)

// Evaluator is the shape a codegen'd matmul specialization exposes once
// A's shape is known: enough to run against a fresh A and describe itself
// in debug output.
type Evaluator interface {
	Name() string
	Info() []string
	Eval(a tensor.Tensor) (tensor.Tensor, error)
}

// MatMulUnaryA is a matmul whose B operand is a graph constant. It defers
// to Codegen to pick the cheaper specialization once A's shape is known:
// ImplASimpleB when B is a bare 2-D matrix (A's leading axes collapse
// freely into M), ImplAGeneral otherwise (B carries its own batch prefix,
// so each batch cell needs its own packed B tile).
type MatMulUnaryA struct {
	B *tensor.Dense
}

// NewMatMulUnaryA builds a MatMulUnaryA over the constant operand b.
func NewMatMulUnaryA(b *tensor.Dense) *MatMulUnaryA { return &MatMulUnaryA{B: b} }

func (*MatMulUnaryA) Name() string { return "MatMulUnaryA" }

// Codegen selects and builds the concrete evaluator for a given A shape,
// dispatching on B's element type and then its rank.
func (op *MatMulUnaryA) Codegen(aShape []int) (Evaluator, error) {
	dt, err := dtypeOf(op.B.Dtype())
	if err != nil {
		return nil, err
	}
	switch dt {
	case Float32:
		return codegenT[float32](aShape, op.B)
	case Float64:
		return codegenT[float64](aShape, op.B)
	default:
		return nil, &TypeMismatchError{Msg: "unreachable"}
	}
}

func codegenT[T mmm.Float](aShape []int, b *tensor.Dense) (Evaluator, error) {
	if b.Dims() == 2 {
		return NewImplASimpleB[T](aShape, b)
	}
	return NewImplAGeneral[T](aShape, b)
}

// Pulsify recomputes a pulsed-stream fact across the matmul, refusing to
// stream over the K axis: K is consumed whole by every single matmul
// call, so a pulse window smaller than K cannot be evaluated independently
// of its neighbors.
func (op *MatMulUnaryA) Pulsify(fact graph.PulsedFact) (graph.PulsedFact, error) {
	rank := len(fact.Shape)
	if fact.Axis >= rank-1 {
		return graph.PulsedFact{}, &PulsifyError{Axis: fact.Axis, Rank: rank}
	}

	bShape := geom.IntsToDims(op.B.Shape())

	_, _, cPulse, _, err := geom.InferShapes(geom.IntsToDims(fact.Shape), bShape)
	if err != nil {
		return graph.PulsedFact{}, &ShapeError{Err: err}
	}
	_, _, cFull, _, err := geom.InferShapes(geom.IntsToDims(fact.StreamingShape), bShape)
	if err != nil {
		return graph.PulsedFact{}, &ShapeError{Err: err}
	}

	out := fact
	out.Shape = geom.DimsToInts(cPulse)
	full := geom.DimsToInts(cFull)
	out.StreamingShape = full
	if fact.Axis < len(full) {
		out.Dim = full[fact.Axis]
	}
	return out, nil
}

// TranslationInvariants reports which axes of an A of the given rank can be
// shifted without changing corresponding output values: every batch axis,
// with the period B's own (broadcast-normalized) size along that axis, plus
// the M axis itself with period 1 (each row of A maps to exactly one row
// of C, so shifting rows shifts output rows identically).
func (op *MatMulUnaryA) TranslationInvariants(aRank int) []graph.TranslationInvariant {
	bShape := op.B.Shape()
	if len(bShape) > aRank {
		return nil
	}

	padded := make([]int, aRank)
	offset := aRank - len(bShape)
	for i := range padded {
		if i < offset {
			padded[i] = 1
		} else {
			padded[i] = bShape[i-offset]
		}
	}

	invars := make([]graph.TranslationInvariant, 0, aRank-1)
	for axis := 0; axis < aRank-2; axis++ {
		invars = append(invars, graph.TranslationInvariant{Axis: axis, Period: padded[axis]})
	}
	invars = append(invars, graph.TranslationInvariant{Axis: aRank - 2, Period: 1})
	return invars
}
