package geom

import (
	"reflect"
	"testing"
)

func infer(t *testing.T, a, b []int) ([]int, []int, []int) {
	t.Helper()
	bcA, bcB, c, _, err := InferShapes(IntsToDims(a), IntsToDims(b))
	if err != nil {
		t.Fatalf("InferShapes(%v, %v): %v", a, b, err)
	}
	return DimsToInts(bcA), DimsToInts(bcB), DimsToInts(c)
}

func TestInferShapesPlain2D(t *testing.T) {
	_, _, c := infer(t, []int{2, 3}, []int{3, 5})
	if !reflect.DeepEqual(c, []int{2, 5}) {
		t.Fatalf("got %v", c)
	}
}

func TestInferShapesBroadcastBatch(t *testing.T) {
	bcA, bcB, c := infer(t, []int{3, 1, 2, 2}, []int{1, 4, 2, 2})
	if !reflect.DeepEqual(bcA, []int{3, 1, 2, 2}) {
		t.Fatalf("bcA = %v", bcA)
	}
	if !reflect.DeepEqual(bcB, []int{1, 4, 2, 2}) {
		t.Fatalf("bcB = %v", bcB)
	}
	if !reflect.DeepEqual(c, []int{3, 4, 2, 2}) {
		t.Fatalf("c = %v", c)
	}
}

func TestInferShapesRankLessThanTwo(t *testing.T) {
	// A is a vector of length 3 -> treated as [1,3]; B is [3,5].
	bcA, _, c := infer(t, []int{3}, []int{3, 5})
	if !reflect.DeepEqual(bcA, []int{1, 3}) {
		t.Fatalf("bcA = %v", bcA)
	}
	if !reflect.DeepEqual(c, []int{1, 5}) {
		t.Fatalf("c = %v", c)
	}

	// B is a vector of length 3 -> treated as [3,1]; A is [2,3].
	_, bcB, c2 := infer(t, []int{2, 3}, []int{3})
	if !reflect.DeepEqual(bcB, []int{3, 1}) {
		t.Fatalf("bcB = %v", bcB)
	}
	if !reflect.DeepEqual(c2, []int{2, 1}) {
		t.Fatalf("c2 = %v", c2)
	}
}

func TestInferShapesKMismatch(t *testing.T) {
	_, _, _, _, err := InferShapes(IntsToDims([]int{2, 3}), IntsToDims([]int{4, 5}))
	if err == nil {
		t.Fatal("expected ShapeError for K mismatch")
	}
	if _, ok := err.(*ShapeError); !ok {
		t.Fatalf("expected *ShapeError, got %T", err)
	}
}

func TestInferShapesBroadcastFailure(t *testing.T) {
	_, _, _, _, err := InferShapes(IntsToDims([]int{2, 2, 2}), IntsToDims([]int{3, 2, 2}))
	if err == nil {
		t.Fatal("expected ShapeError for incompatible batch axes")
	}
}

func TestInferShapesSymbolic(t *testing.T) {
	a := []SymDim{Symbol("N"), Known(2), Known(3)}
	b := []SymDim{Known(1), Known(3), Known(5)}
	_, _, c, _, err := InferShapes(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if len(c) != 3 {
		t.Fatalf("expected rank 3, got %d", len(c))
	}
	// Symbol "N" broadcasts against B's known-1 prefix dim and propagates
	// through unresolved, since the broadcast result must still accept N.
	if _, known := c[0].Value(); known {
		t.Fatalf("expected unresolved prefix dim, got %v", c[0])
	}
}
