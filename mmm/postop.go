package mmm

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	"gorgonia.org/vecf32"
	"gorgonia.org/vecf64"
)

// FusedSpec is one pointwise post-op the kernel applies to a C row after
// the multiply-accumulate, in the order the list is given. It is a small
// closed sum type (the idiomatic Go rendering of the source's FusedSpec
// enum): the four concrete types below are the only implementations, and
// each only marks itself so a type switch in applyRow can recover which
// variant it is.
type FusedSpec[T Float] interface {
	isFusedSpec()
}

// PerColMul multiplies every row of C, elementwise, by Vec (length n).
type PerColMul[T Float] struct{ Vec []T }

// PerColAdd adds Vec (length n) to every row of C, elementwise.
type PerColAdd[T Float] struct{ Vec []T }

// Max replaces every element of C with max(element, V) — a lower clamp.
type Max[T Float] struct{ V T }

// Min replaces every element of C with min(element, V) — an upper clamp.
type Min[T Float] struct{ V T }

func (PerColMul[T]) isFusedSpec() {}
func (PerColAdd[T]) isFusedSpec() {}
func (Max[T]) isFusedSpec() {}
func (Min[T]) isFusedSpec() {}

// applyRow applies ops, in order, to a single contiguous row of C.
func applyRow[T Float](row []T, ops []FusedSpec[T]) error {
	for _, op := range ops {
		switch o := op.(type) {
		case PerColMul[T]:
			if err := mulInPlace(row, o.Vec); err != nil {
				return errors.Wrap(err, "mmm: PerColMul")
			}
		case PerColAdd[T]:
			if err := addInPlace(row, o.Vec); err != nil {
				return errors.Wrap(err, "mmm: PerColAdd")
			}
		case Max[T]:
			clampLower(row, o.V)
		case Min[T]:
			clampUpper(row, o.V)
		default:
			return errors.Errorf("mmm: unknown fused op %T", op)
		}
	}
	return nil
}

func mulInPlace[T Float](row, vec []T) error {
	if len(row) != len(vec) {
		return errors.Errorf("length mismatch: row has %d elements, vec has %d", len(row), len(vec))
	}
	switch r := any(row).(type) {
	case []float32:
		vecf32.Mul(r, any(vec).([]float32))
	case []float64:
		vecf64.Mul(r, any(vec).([]float64))
	}
	return nil
}

func addInPlace[T Float](row, vec []T) error {
	if len(row) != len(vec) {
		return errors.Errorf("length mismatch: row has %d elements, vec has %d", len(row), len(vec))
	}
	switch r := any(row).(type) {
	case []float32:
		vecf32.Add(r, any(vec).([]float32))
	case []float64:
		vecf64.Add(r, any(vec).([]float64))
	}
	return nil
}

// clampLower and clampUpper have no vecf32/vecf64 analogue (those packages
// only operate elementwise between two equal-length slices, not against a
// broadcast scalar), so they fall back to a plain loop using math32/math
// for the per-element comparison.
func clampLower[T Float](row []T, v T) {
	switch r := any(row).(type) {
	case []float32:
		vv := any(v).(float32)
		for i := range r {
			r[i] = math32.Max(r[i], vv)
		}
	case []float64:
		vv := any(v).(float64)
		for i := range r {
			r[i] = math.Max(r[i], vv)
		}
	}
}

func clampUpper[T Float](row []T, v T) {
	switch r := any(row).(type) {
	case []float32:
		vv := any(v).(float32)
		for i := range r {
			r[i] = math32.Min(r[i], vv)
		}
	case []float64:
		vv := any(v).(float64)
		for i := range r {
			r[i] = math.Min(r[i], vv)
		}
	}
}
