// Package graph is a deliberately minimal stand-in for the surrounding
// inference graph/IR, which is out of scope for this module (see §1 of
// the design spec). It models only the slice of the IR contract the
// matmul operators touch: stable node identity, single-successor lookup
// for the fusion pass, and the pulsed-stream facts pulsification reasons
// about. It is not a tensor-compiler and never will be.
package graph

import (
	"github.com/awalterschulze/gographviz"
	"github.com/google/uuid"
)

// NodeID is a stable identity for a graph node.
type NodeID string

// NewNodeID mints a fresh node identity.
func NewNodeID() NodeID { return NodeID(uuid.New().String()) }

// OutletId names one output slot of a node, mirroring the (node, slot)
// addressing real graph IRs use to wire consumers to producers.
type OutletId struct {
	Node NodeID
	Slot int
}

// Node is the minimal description of a graph node this package needs:
// enough identity and a human name to render debug output.
type Node struct {
	ID   NodeID
	Name string
}

// SuccessorKind classifies the pointwise successor ops the fusion pass in
// package matmul knows how to fold into a post-op list.
type SuccessorKind int

const (
	SuccessorNone SuccessorKind = iota
	SuccessorMul
	SuccessorAdd
	SuccessorScalarMax
	SuccessorScalarMin
	SuccessorScalarClamp
)

// SuccessorOp is the minimal shape a pointwise successor op must expose
// for the fusion pass to pattern-match against it (§4.6 of the design
// spec). A real IR node would implement this directly; tests construct
// plain structs satisfying it.
type SuccessorOp interface {
	Kind() SuccessorKind
	// ConstVec returns the per-column constant operand for Mul/Add kinds.
	ConstVec() []float64
	// Scalar returns the scalar bound for ScalarMax/ScalarMin kinds.
	Scalar() float64
	// ClampBounds returns (lo, hi) for the ScalarClamp kind.
	ClampBounds() (lo, hi float64)
}

// Patch is the result of graph surgery: node Old is removed and node New
// takes its place, wired to Old's former consumers. Producing a Patch is
// the only side effect fusion has in this stand-in; applying it to an
// actual model is the real IR's job and out of scope here.
type Patch struct {
	Old Node
	New Node
}

// SingleSuccessor looks up the lone consumer of outlet out in consumers,
// succeeding only if there is exactly one. This is the one piece of real
// graph-sharing analysis this stand-in performs, since fusion must not
// fire when the matmul's output is shared by more than one consumer.
func SingleSuccessor(consumers map[OutletId][]NodeID, out OutletId) (NodeID, bool) {
	ids, ok := consumers[out]
	if !ok || len(ids) != 1 {
		return "", false
	}
	return ids[0], true
}

// RenderDOT renders a patch's old->new edge as Graphviz DOT, for debugging
// a fusion/codegen decision outside of a test assertion.
func RenderDOT(p Patch) (string, error) {
	g := gographviz.NewGraph()
	if err := g.SetName("G"); err != nil {
		return "", err
	}
	if err := g.SetDir(true); err != nil {
		return "", err
	}
	if err := g.AddNode("G", quote(string(p.Old.ID)), map[string]string{"label": quote(p.Old.Name)}); err != nil {
		return "", err
	}
	if err := g.AddNode("G", quote(string(p.New.ID)), map[string]string{"label": quote(p.New.Name)}); err != nil {
		return "", err
	}
	if err := g.AddEdge(quote(string(p.Old.ID)), quote(string(p.New.ID)), true, map[string]string{"label": quote("fused_into")}); err != nil {
		return "", err
	}
	return g.String(), nil
}

func quote(s string) string { return `"` + s + `"` }
