package geom

import "fmt"

// ShapeError reports that two shapes could not be reconciled by broadcasting,
// or that the contracted (K) dimension disagreed between A and B.
type ShapeError struct {
	AShape []int
	BShape []int
	Reason string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("geom: shape error: %s (a=%v, b=%v)", e.Reason, e.AShape, e.BShape)
}

func newShapeError(a, b []int, reason string, args ...interface{}) *ShapeError {
	return &ShapeError{AShape: a, BShape: b, Reason: fmt.Sprintf(reason, args...)}
}
