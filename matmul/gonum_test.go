package matmul

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

// TestMatMulAgainstGonum cross-validates the plain 2-D path against an
// independent reference implementation, the same way the teacher's own
// suite cross-checks its accelerated path against the CPU fallback.
func TestMatMulAgainstGonum(t *testing.T) {
	aData := []float64{1, 2, 3, 4, 5, 6} // 2x3
	bData := []float64{7, 8, 9, 10, 11, 12} // 3x2

	a := dense64([]int{2, 3}, aData)
	b := dense64([]int{3, 2}, bData)

	got, err := (MatMul{}).Eval(a, b)
	if err != nil {
		t.Fatal(err)
	}
	gotData := got.Data().([]float64)

	gm := mat.NewDense(2, 3, aData)
	gb := mat.NewDense(3, 2, bData)
	var gc mat.Dense
	gc.Mul(gm, gb)

	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			want := gc.At(i, j)
			if !dawsonClose64(gotData[i*2+j], want) {
				t.Fatalf("cell (%d,%d): got %v, want %v", i, j, gotData[i*2+j], want)
			}
		}
	}
}
