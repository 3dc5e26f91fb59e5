package matmul

import (
	"fmt"

	"github.com/csotherden/gorgonia-matmul/graph"
	"github.com/csotherden/gorgonia-matmul/internal/geom"
	"github.com/csotherden/gorgonia-matmul/mmm"
	"gorgonia.org/tensor"
)

// ImplASimpleB is the specialization chosen when B is a bare 2-D constant:
// every leading axis of A (batch axes plus M) collapses into a single
// internal M, since a 2-D B has no batch prefix of its own to broadcast
// against. B is packed exactly once, at construction; every Eval call
// packs only A.
type ImplASimpleB[T mmm.Float] struct {
	geoExternal *geom.Geometry[T] // A's own rank, for reporting the true output shape
	geoInternal *geom.Geometry[T] // [mInternal, k] x [k, n], what the kernel actually runs
	packedB     []T
	cShape      []int
	nonLinear   []mmm.FusedSpec[T]
}

// NewImplASimpleB builds the specialization for an A of aShape against
// constant b. b must be rank 2.
func NewImplASimpleB[T mmm.Float](aShape []int, b *tensor.Dense) (*ImplASimpleB[T], error) {
	if b.Dims() != 2 {
		return nil, &ShapeError{Err: fmt.Errorf("ImplASimpleB requires rank(b)=2, got %d", b.Dims())}
	}

	geoExt, err := geom.NewGeometry[T](aShape, b.Shape())
	if err != nil {
		return nil, mapLowerErr(err)
	}

	aLen := geom.Prod(aShape)
	if geoExt.K == 0 || aLen%geoExt.K != 0 {
		return nil, &ShapeError{Err: fmt.Errorf("a's total size %d is not divisible by k=%d", aLen, geoExt.K)}
	}
	mInternal := aLen / geoExt.K

	geoInt, err := geom.NewGeometry[T]([]int{mInternal, geoExt.K}, b.Shape())
	if err != nil {
		return nil, mapLowerErr(err)
	}

	_, bdata, err := denseData[T](b)
	if err != nil {
		return nil, err
	}

	bpackSpec := geoInt.Kernel.BPack()
	packedB, err := mmm.NewAlignedBuffer[T](bpackSpec.Len(), bpackSpec.Alignment())
	if err != nil {
		return nil, mapLowerErr(err)
	}
	bStrides := b.Strides()
	bpackSpec.Pack(packedB, bdata, bStrides[0], bStrides[1])

	return &ImplASimpleB[T]{
		geoExternal: geoExt,
		geoInternal: geoInt,
		packedB:     packedB,
		cShape:      append([]int(nil), geoExt.CShape...),
	}, nil
}

func (*ImplASimpleB[T]) Name() string { return "MatMulUnaryImplASimpleB" }

func (op *ImplASimpleB[T]) Info() []string {
	info := []string{op.geoInternal.Kernel.String()}
	for _, o := range op.nonLinear {
		info = append(info, fmt.Sprintf(" + %#v", o))
	}
	return info
}

// Cost reports the FMA count of the collapsed internal matmul this
// specialization actually runs.
func (op *ImplASimpleB[T]) Cost() CostEntry {
	return CostEntry{
		DType:    dtypeTag[T](),
		FMACount: geom.Known(op.geoInternal.M * op.geoInternal.K * op.geoInternal.N),
	}
}

// Eval runs the collapsed matmul against a, reshaping the flat result back
// to A's true broadcast output shape.
func (op *ImplASimpleB[T]) Eval(a tensor.Tensor) (tensor.Tensor, error) {
	da, adata, err := denseData[T](a)
	if err != nil {
		return nil, err
	}
	if geom.Prod(da.Shape()) != op.geoInternal.M*op.geoInternal.K {
		return nil, &ShapeError{Err: fmt.Errorf(
			"a shape %v does not match the collapsed internal geometry m=%d k=%d",
			da.Shape(), op.geoInternal.M, op.geoInternal.K)}
	}

	apackSpec := op.geoInternal.Kernel.APack()
	pa, err := mmm.NewAlignedBuffer[T](apackSpec.Len(), apackSpec.Alignment())
	if err != nil {
		return nil, mapLowerErr(err)
	}
	// A collapses to a contiguous [mInternal, k] row-major view only when a
	// itself is contiguous row-major, which Eval's caller guarantees: A is
	// always a freshly materialized graph value at this point, never an
	// arbitrary strided view.
	apackSpec.Pack(pa, adata, op.geoInternal.K, 1)

	cData := make([]T, op.geoInternal.M*op.geoInternal.N)
	err = op.geoInternal.Kernel.Run(
		op.geoInternal.Kernel.FromPackedA(pa),
		op.geoInternal.Kernel.FromPackedB(op.packedB),
		op.geoInternal.Kernel.FromStridedC(cData, op.geoInternal.N, 1),
		op.nonLinear,
	)
	if err != nil {
		return nil, err
	}

	return tensor.New(tensor.WithShape(op.cShape...), tensor.WithBacking(cData)), nil
}

// Fuse inspects succ, the op's lone consumer, and folds it into a new
// ImplASimpleB's post-op list when it matches a fusable pointwise pattern.
// It returns (nil, nil, nil) — no error, no fused op, no patch — when succ
// does not match the table; op itself is never mutated.
func (op *ImplASimpleB[T]) Fuse(self graph.Node, fused graph.Node, succOp graph.SuccessorOp) (*ImplASimpleB[T], *graph.Patch, error) {
	appended := fusedOpsFor[T](succOp, op.geoExternal.N)
	if appended == nil {
		return nil, nil, nil
	}

	next := *op
	next.nonLinear = append(append([]mmm.FusedSpec[T]{}, op.nonLinear...), appended...)

	patch := &graph.Patch{
		Old: self,
		New: graph.Node{ID: graph.NewNodeID(), Name: next.Name() + "+" + fusionLabel(succOp.Kind())},
	}
	return &next, patch, nil
}
