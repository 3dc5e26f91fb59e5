package geom

// Padding records how many unit axes InferShapes synthesized around each
// operand, so a caller holding the *original* (un-padded) strides of a
// tensor can align them with the broadcast-normalized shape: every
// synthesized axis is never indexed past 0, so its stride value is
// irrelevant, but the caller needs to know how many placeholder axes to
// splice in, and where.
type Padding struct {
	// AFront is the number of unit axes prepended to A (rank<2 fix-up plus
	// left-padding to match B's rank).
	AFront int
	// BFront is the number of unit axes prepended to B by left-padding to
	// match A's rank (after B's own rank<2 fix-up, if any).
	BFront int
	// BBack is 1 if B's original rank was less than 2 and a trailing unit
	// axis was appended to treat it as a column vector, else 0.
	BBack int
}

// InferShapes normalizes A's and B's ranks, broadcasts their batch
// prefixes, and returns the resulting (bcA, bcB, cShape) alongside the
// insertion bookkeeping needed to align raw strides with the normalized
// shapes. It is generic over the dimension representation so the identical
// algorithm serves concrete packing geometry (IntDim) and the symbolic
// shapes used for cost estimation and pulsification (SymDim).
func InferShapes[D Dim[D]](aShape, bShape []D) (bcA, bcB, cShape []D, pad Padding, err error) {
	a := append([]D(nil), aShape...)
	b := append([]D(nil), bShape...)

	if len(a) == 0 && len(b) == 0 {
		return nil, nil, nil, pad, newShapeErrorFrom(aShape, bShape, "both operands are rank-0")
	}

	var one D
	switch {
	case len(a) > 0:
		one = a[0].One()
	default:
		one = b[0].One()
	}

	if len(a) < 2 {
		a = append([]D{one}, a...)
		pad.AFront++
	}
	if len(b) < 2 {
		b = append(b, one)
		pad.BBack = 1
	}
	for len(a) < len(b) {
		a = append([]D{one}, a...)
		pad.AFront++
	}
	for len(b) < len(a) {
		b = append([]D{one}, b...)
		pad.BFront++
	}

	rank := len(a)
	prefixLen := rank - 2
	prefix := make([]D, prefixLen)
	for i := 0; i < prefixLen; i++ {
		r, ok := a[i].Broadcast(b[i])
		if !ok {
			return nil, nil, nil, pad, newShapeErrorFrom(aShape, bShape,
				"batch axis %d does not broadcast: %s vs %s", i, a[i].String(), b[i].String())
		}
		prefix[i] = r
	}

	k1, k2 := a[rank-1], b[rank-2]
	if !k1.MatchesK(k2) {
		return nil, nil, nil, pad, newShapeErrorFrom(aShape, bShape,
			"inner dimension mismatch: a[-1]=%s, b[-2]=%s", k1.String(), k2.String())
	}

	c := make([]D, 0, prefixLen+2)
	c = append(c, prefix...)
	c = append(c, a[rank-2], b[rank-1])

	return a, b, c, pad, nil
}

func newShapeErrorFrom[D Dim[D]](a, b []D, reason string, args ...interface{}) *ShapeError {
	return newShapeError(stringifyDims(a), stringifyDims(b), reason, args...)
}

func stringifyDims[D Dim[D]](ds []D) []int {
	// Best-effort conversion for error reporting only; symbolic dims render
	// as 0 here, their names are already baked into the reason string.
	out := make([]int, len(ds))
	for i, d := range ds {
		if v, ok := any(d).(IntDim); ok {
			out[i] = int(v)
		}
	}
	return out
}
