// Package matmul implements the batched, broadcast-aware matmul operator
// family (MatMul, MatMulUnaryA, MatMulUnaryB) and their specialized
// evaluators (ImplASimpleB, ImplAGeneral), driving the pluggable packed
// microkernel in package mmm over geometry computed by package geom.
package matmul

import (
	"fmt"

	"github.com/csotherden/gorgonia-matmul/internal/geom"
	"github.com/csotherden/gorgonia-matmul/mmm"
)

// ArityError reports a wrong input or output count at inference time.
type ArityError struct {
	Kind     string // "input" or "output"
	Got, Want int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("matmul: wrong %s arity: got %d, want %d", e.Kind, e.Got, e.Want)
}

// TypeMismatchError reports that A and B have different element types, or
// an element type outside the supported float set.
type TypeMismatchError struct{ Msg string }

func (e *TypeMismatchError) Error() string { return fmt.Sprintf("matmul: type mismatch: %s", e.Msg) }

// ShapeError wraps a geometry shape-inference failure (K mismatch, or a
// batch prefix that does not broadcast).
type ShapeError struct{ Err error }

func (e *ShapeError) Error() string { return fmt.Sprintf("matmul: shape error: %v", e.Err) }
func (e *ShapeError) Unwrap() error { return e.Err }

// PulsifyError reports an attempt to pulsify MatMulUnaryA on its K axis.
type PulsifyError struct {
	Axis, Rank int
}

func (e *PulsifyError) Error() string {
	return fmt.Sprintf(
		"matmul: cannot pulsify MatMulUnaryA on axis %d of a rank-%d input (the innermost axis is k, consumed whole by a single matmul)",
		e.Axis, e.Rank)
}

// AllocationError wraps a failure to allocate aligned packed scratch.
type AllocationError struct{ Err error }

func (e *AllocationError) Error() string { return fmt.Sprintf("matmul: allocation error: %v", e.Err) }
func (e *AllocationError) Unwrap() error { return e.Err }

// MMMUnavailableError wraps the absence of a registered microkernel for a
// given (T, m, k, n) call shape.
type MMMUnavailableError struct{ Err error }

func (e *MMMUnavailableError) Error() string { return fmt.Sprintf("matmul: %v", e.Err) }
func (e *MMMUnavailableError) Unwrap() error { return e.Err }

// mapLowerErr re-wraps an error surfaced from package geom or package mmm as
// the corresponding matmul-level error type, so callers only ever need to
// errors.As against the six kinds in this file.
func mapLowerErr(err error) error {
	if err == nil {
		return nil
	}
	switch err.(type) {
	case *geom.ShapeError:
		return &ShapeError{Err: err}
	case *mmm.MMMUnavailableError:
		return &MMMUnavailableError{Err: err}
	case *mmm.AllocationError:
		return &AllocationError{Err: err}
	default:
		return err
	}
}
