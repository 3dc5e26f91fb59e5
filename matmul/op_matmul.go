package matmul

import (
	"fmt"

	"github.com/csotherden/gorgonia-matmul/internal/geom"
	"gorgonia.org/tensor"
)

// MatMul is the fully generic evaluator: neither operand is known ahead of
// time, so every call packs both A and B fresh, per batch cell, with no
// opportunity for the one-time or per-cell pre-packing the Unary
// specializations exploit. It is the operator a graph builder reaches for
// before either input has been constant-folded.
type MatMul struct{}

func (MatMul) Name() string { return "MatMul" }

// Eval computes C = A . B for tensors a and b, broadcasting their batch
// prefixes and requiring a's innermost axis to match b's second-to-last
// axis. a and b must share an element type.
func (MatMul) Eval(a, b tensor.Tensor) (tensor.Tensor, error) {
	if a.Dtype() != b.Dtype() {
		return nil, &TypeMismatchError{Msg: fmt.Sprintf("a is %v, b is %v", a.Dtype(), b.Dtype())}
	}
	dt, err := dtypeOf(a.Dtype())
	if err != nil {
		return nil, err
	}
	switch dt {
	case Float32:
		return evalGeneric[float32](a, b)
	case Float64:
		return evalGeneric[float64](a, b)
	default:
		return nil, &TypeMismatchError{Msg: fmt.Sprintf("unsupported element type %v", a.Dtype())}
	}
}

// EvalN is the arity-checked entry point a graph executor calls: exactly
// two inputs, exactly one output.
func (op MatMul) EvalN(inputs []tensor.Tensor) ([]tensor.Tensor, error) {
	if len(inputs) != 2 {
		return nil, &ArityError{Kind: "input", Got: len(inputs), Want: 2}
	}
	c, err := op.Eval(inputs[0], inputs[1])
	if err != nil {
		return nil, err
	}
	return []tensor.Tensor{c}, nil
}

// InferShape propagates aShape and bShape to the single output shape,
// failing with ArityError if outputs != 1.
func (MatMul) InferShape(aShape, bShape []geom.SymDim, outputs int) ([]geom.SymDim, error) {
	if outputs != 1 {
		return nil, &ArityError{Kind: "output", Got: outputs, Want: 1}
	}
	_, _, c, _, err := geom.InferShapes(aShape, bShape)
	if err != nil {
		return nil, &ShapeError{Err: err}
	}
	return c, nil
}

// Cost estimates the FMA count for a matmul of aShape x bShape at element
// type dtype, without requiring either shape to be fully resolved.
func (MatMul) Cost(dtype DType, aShape, bShape []geom.SymDim) ([]CostEntry, error) {
	return symbolicCost(dtype, aShape, bShape)
}

