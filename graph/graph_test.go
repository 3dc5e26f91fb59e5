package graph

import (
	"strings"
	"testing"
)

func TestSingleSuccessor(t *testing.T) {
	out := OutletId{Node: "matmul1", Slot: 0}
	consumers := map[OutletId][]NodeID{
		out: {"clamp1"},
	}
	id, ok := SingleSuccessor(consumers, out)
	if !ok || id != "clamp1" {
		t.Fatalf("got id=%q ok=%v", id, ok)
	}
}

func TestSingleSuccessorFailsWhenShared(t *testing.T) {
	out := OutletId{Node: "matmul1", Slot: 0}
	consumers := map[OutletId][]NodeID{
		out: {"clamp1", "relu1"},
	}
	if _, ok := SingleSuccessor(consumers, out); ok {
		t.Fatal("expected no single successor when output is shared")
	}
}

func TestSingleSuccessorFailsWhenAbsent(t *testing.T) {
	if _, ok := SingleSuccessor(nil, OutletId{Node: "x"}); ok {
		t.Fatal("expected no successor for unknown outlet")
	}
}

func TestRenderDOTContainsBothNodes(t *testing.T) {
	p := Patch{
		Old: Node{ID: NewNodeID(), Name: "MatMulUnaryImplASimpleB"},
		New: Node{ID: NewNodeID(), Name: "MatMulUnaryImplASimpleB+PerColMul"},
	}
	dot, err := RenderDOT(p)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(dot, "MatMulUnaryImplASimpleB") {
		t.Fatalf("expected old node name in dot output: %s", dot)
	}
	if !strings.Contains(dot, "MatMulUnaryImplASimpleB+PerColMul") {
		t.Fatalf("expected new node name in dot output: %s", dot)
	}
	if !strings.Contains(dot, "fused_into") {
		t.Fatalf("expected fused_into edge label in dot output: %s", dot)
	}
}
