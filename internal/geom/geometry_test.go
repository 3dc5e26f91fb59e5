package geom

import (
	"reflect"
	"testing"
)

func TestNewGeometryBasic(t *testing.T) {
	g, err := NewGeometry[float32]([]int{2, 3}, []int{3, 5})
	if err != nil {
		t.Fatal(err)
	}
	if g.M != 2 || g.K != 3 || g.N != 5 {
		t.Fatalf("got m=%d k=%d n=%d", g.M, g.K, g.N)
	}
	if !reflect.DeepEqual(g.CShape, []int{2, 5}) {
		t.Fatalf("c shape = %v", g.CShape)
	}
	if len(g.CShapePrefix) != 0 {
		t.Fatalf("expected empty prefix, got %v", g.CShapePrefix)
	}
	if g.Kernel == nil {
		t.Fatal("expected a selected kernel")
	}
}

func TestNewGeometryBatchStrides(t *testing.T) {
	g, err := NewGeometry[float32]([]int{3, 4, 2, 2}, []int{3, 4, 2, 2})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(g.CShapePrefix, []int{3, 4}) {
		t.Fatalf("prefix = %v", g.CShapePrefix)
	}
	// Row-major strides over [3,4,2,2], skipping the trailing two axes:
	// stride(0) = 4*2*2 = 16, stride(1) = 2*2 = 4.
	if !reflect.DeepEqual(g.CStridePrefix, []int{16, 4}) {
		t.Fatalf("c stride prefix = %v", g.CStridePrefix)
	}
}

func TestNewGeometryKMismatchFails(t *testing.T) {
	if _, err := NewGeometry[float32]([]int{2, 3}, []int{4, 5}); err == nil {
		t.Fatal("expected error")
	}
}

func TestAlignedStridesForRankInsertion(t *testing.T) {
	// A is a bare vector [3] treated as [1,3]; one axis inserted at front.
	g, err := NewGeometry[float32]([]int{3}, []int{3, 5})
	if err != nil {
		t.Fatal(err)
	}
	if g.Padding.AFront != 1 {
		t.Fatalf("expected 1 inserted front axis for A, got %d", g.Padding.AFront)
	}
	aligned := g.AlignedAStrides([]int{1}) // original 1-D tensor stride
	if !reflect.DeepEqual(aligned, []int{0, 1}) {
		t.Fatalf("aligned strides = %v", aligned)
	}
}
