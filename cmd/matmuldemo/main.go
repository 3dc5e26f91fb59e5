// Command matmuldemo runs a small worked matmul example and prints the
// chosen kernel's Info() lines, for manual smoke-checking — the same
// benchmark-as-documentation role the teacher repo's own benchmark suite
// plays, rather than a real CLI surface.
package main

import (
	"fmt"
	"os"

	"github.com/csotherden/gorgonia-matmul/graph"
	"github.com/csotherden/gorgonia-matmul/matmul"
	"gorgonia.org/tensor"
)

// perColMulSuccessor is a minimal graph.SuccessorOp implementation standing
// in for a real per-column-multiply graph node, just enough to drive the
// Fuse demo below.
type perColMulSuccessor struct{ vec []float64 }

func (s perColMulSuccessor) Kind() graph.SuccessorKind { return graph.SuccessorMul }
func (s perColMulSuccessor) ConstVec() []float64 { return s.vec }
func (perColMulSuccessor) Scalar() float64 { return 0 }
func (perColMulSuccessor) ClampBounds() (lo, hi float64) { return 0, 0 }

func main() {
	a := tensor.New(
		tensor.WithShape(2, 2),
		tensor.WithBacking([]float32{1, 2, 3, 4}),
	)
	b := tensor.New(
		tensor.WithShape(2, 2),
		tensor.WithBacking([]float32{1, 0, 0, 0}),
	)

	c, err := (matmul.MatMul{}).Eval(a, b)
	if err != nil {
		fmt.Fprintln(os.Stderr, "matmuldemo:", err)
		os.Exit(1)
	}
	fmt.Printf("A . B = %v\n", c)

	op, err := matmul.NewImplASimpleB[float32]([]int{2, 2}, b)
	if err != nil {
		fmt.Fprintln(os.Stderr, "matmuldemo:", err)
		os.Exit(1)
	}
	for _, line := range op.Info() {
		fmt.Println(line)
	}

	self := graph.Node{ID: graph.NewNodeID(), Name: op.Name()}
	fused, _, err := op.Fuse(self, graph.Node{}, perColMulSuccessor{vec: []float64{2, 0.5}})
	if err != nil {
		fmt.Fprintln(os.Stderr, "matmuldemo:", err)
		os.Exit(1)
	}
	if fused == nil {
		fmt.Println("no fusable successor")
		return
	}
	out, err := fused.Eval(a)
	if err != nil {
		fmt.Fprintln(os.Stderr, "matmuldemo:", err)
		os.Exit(1)
	}
	fmt.Printf("fused PerColMul result = %v\n", out)
	for _, line := range fused.Info() {
		fmt.Println(line)
	}
}
