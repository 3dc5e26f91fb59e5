package matmul

import (
	"strings"
	"testing"

	"github.com/csotherden/gorgonia-matmul/graph"
)

// TestFuseRendersDOT fuses a MatMulUnaryImplASimpleB with a scalar clamp
// successor and checks the resulting patch renders as DOT containing both
// the original and fused node names.
func TestFuseRendersDOT(t *testing.T) {
	b := dense([]int{2, 2}, []float32{1, 0, 0, 1})
	op, err := NewImplASimpleB[float32]([]int{2, 2}, b)
	if err != nil {
		t.Fatal(err)
	}

	self := graph.Node{ID: graph.NewNodeID(), Name: op.Name()}
	fused, patch, err := op.Fuse(self, graph.Node{}, fakeSuccessor{kind: graph.SuccessorScalarClamp, lo: 0, hi: 1})
	if err != nil {
		t.Fatal(err)
	}
	if fused == nil || patch == nil {
		t.Fatal("expected a fused op and patch")
	}

	dot, err := graph.RenderDOT(*patch)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(dot, op.Name()) {
		t.Fatalf("expected original op name in dot: %s", dot)
	}
	if !strings.Contains(dot, patch.New.Name) {
		t.Fatalf("expected fused op name in dot: %s", dot)
	}
}
