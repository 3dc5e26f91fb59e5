package geom

import (
	"fmt"
	"strings"
)

// Dim is a single tensor dimension. InferShapes is written once against this
// constraint so the same broadcasting algorithm serves both the concrete
// sizes used by packing (IntDim) and the symbolic sizes used by cost
// estimation and pulsification before a shape is fully known (SymDim) —
// the same split the source draws between concrete usize geometry and the
// polymorphic dimension type its shape-inference solver works with.
type Dim[D any] interface {
	comparable
	// IsOne reports whether this dimension is the broadcastable unit
	// dimension.
	IsOne() bool
	// One returns the unit dimension of the same concrete type as the
	// receiver, used to synthesize padding axes.
	One() D
	// Broadcast resolves the dimensions of corresponding A/B axes into the
	// result dimension. ok is false when neither dimension is 1 and they
	// are not otherwise compatible.
	Broadcast(other D) (result D, ok bool)
	// MatchesK reports whether the receiver (A's K) and other (B's K) are
	// compatible as the contracted dimension. Unlike Broadcast this is not
	// a broadcasting relation: the K axes must actually agree (or, for
	// symbolic dims, not be known to disagree).
	MatchesK(other D) bool
	String() string
}

// IntDim is a concrete, fully-resolved tensor dimension.
type IntDim int

func (d IntDim) IsOne() bool { return d == 1 }

func (d IntDim) One() IntDim { return 1 }

func (d IntDim) Broadcast(other IntDim) (IntDim, bool) {
	switch {
	case d == other:
		return d, true
	case d == 1:
		return other, true
	case other == 1:
		return d, true
	default:
		return 0, false
	}
}

func (d IntDim) MatchesK(other IntDim) bool { return d == other }

func (d IntDim) String() string { return fmt.Sprintf("%d", int(d)) }

// IntsToDims converts a plain int shape into IntDim form.
func IntsToDims(shape []int) []IntDim {
	out := make([]IntDim, len(shape))
	for i, v := range shape {
		out[i] = IntDim(v)
	}
	return out
}

// DimsToInts converts an IntDim shape back into plain ints.
func DimsToInts(shape []IntDim) []int {
	out := make([]int, len(shape))
	for i, v := range shape {
		out[i] = int(v)
	}
	return out
}

// SymDim is a dimension that may not be concretely known yet: either a
// resolved integer, or a named placeholder coming from a shape-inference
// solver (e.g. a streaming axis length that is only known at run time).
type SymDim struct {
	known  bool
	value  int
	symbol string
}

// Known builds a resolved symbolic dimension.
func Known(v int) SymDim { return SymDim{known: true, value: v} }

// KnownDims converts a plain int shape into fully-resolved SymDim form, for
// callers (cost estimation, its tests) that need to drive the symbolic
// shape-inference path from a concrete shape.
func KnownDims(shape []int) []SymDim {
	out := make([]SymDim, len(shape))
	for i, v := range shape {
		out[i] = Known(v)
	}
	return out
}

// Symbol builds an unresolved, named symbolic dimension.
func Symbol(name string) SymDim { return SymDim{symbol: name} }

func (d SymDim) IsOne() bool { return d.known && d.value == 1 }

func (d SymDim) One() SymDim { return Known(1) }

func (d SymDim) Broadcast(other SymDim) (SymDim, bool) {
	switch {
	case d.known && other.known:
		r, ok := IntDim(d.value).Broadcast(IntDim(other.value))
		return Known(int(r)), ok
	case d.known && d.value == 1:
		return other, true
	case other.known && other.value == 1:
		return d, true
	case !d.known && !other.known && d.symbol == other.symbol:
		return d, true
	default:
		// Two distinct unresolved symbols, or a resolved non-1 dimension
		// against an unresolved one: assume the unresolved side will turn
		// out compatible and propagate whichever side carries more
		// information.
		if d.known {
			return d, true
		}
		return other, true
	}
}

func (d SymDim) MatchesK(other SymDim) bool {
	if d.known && other.known {
		return d.value == other.value
	}
	return true
}

func (d SymDim) String() string {
	if d.known {
		return fmt.Sprintf("%d", d.value)
	}
	if d.symbol != "" {
		return d.symbol
	}
	return "?"
}

// Value returns the resolved integer and true, or (0, false) if this
// dimension is still symbolic.
func (d SymDim) Value() (int, bool) { return d.value, d.known }

// MulSym folds dims by multiplication, resolving to a concrete Known value
// when every operand is known, or to a named Symbol spelling out the
// product of each operand's own String() otherwise. Used by cost
// estimation, where the FMA count is a product of axis sizes that may
// still be symbolic ahead of shape inference.
func MulSym(dims ...SymDim) SymDim {
	if len(dims) == 0 {
		return Known(1)
	}
	allKnown := true
	prod := 1
	parts := make([]string, 0, len(dims))
	for _, d := range dims {
		if d.known {
			prod *= d.value
		} else {
			allKnown = false
		}
		parts = append(parts, d.String())
	}
	if allKnown {
		return Known(prod)
	}
	return Symbol(strings.Join(parts, "*"))
}
