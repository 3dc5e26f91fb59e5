package matmul

import (
	"fmt"

	"github.com/csotherden/gorgonia-matmul/mmm"
	"gorgonia.org/tensor"
)

// DType names the element type a matmul evaluator instance was built for.
type DType int

const (
	Float32 DType = iota
	Float64
)

func (d DType) String() string {
	switch d {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return "unknown"
	}
}

// dtypeOf maps a tensor's dynamic Dtype onto the DType this package
// supports, failing for anything that is not a float32/float64.
func dtypeOf(dt tensor.Dtype) (DType, error) {
	switch dt {
	case tensor.Float32:
		return Float32, nil
	case tensor.Float64:
		return Float64, nil
	default:
		return 0, &TypeMismatchError{Msg: fmt.Sprintf("unsupported element type %v", dt)}
	}
}

// dtypeTag recovers the DType tag for a generic instantiation's concrete T,
// used by the specialized evaluators to report their own DType in a
// CostEntry without threading it through as a separate argument.
func dtypeTag[T mmm.Float]() DType {
	var zero T
	switch any(zero).(type) {
	case float32:
		return Float32
	case float64:
		return Float64
	default:
		return 0
	}
}
