package mmm

import (
	"math/rand"
	"testing"
	"unsafe"

	"gorgonia.org/dawson"
)

func naiveMatMul32(a, b []float32, m, k, n int) []float32 {
	c := make([]float32, m*n)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			var sum float32
			for p := 0; p < k; p++ {
				sum += a[i*k+p] * b[p*n+j]
			}
			c[i*n+j] = sum
		}
	}
	return c
}

func allClose32(t *testing.T, got, want []float32, tol float32) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if !dawson.ToleranceF32(got[i], want[i], tol) {
			t.Fatalf("mismatch at %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestPortableKernelMatchesNaive(t *testing.T) {
	const m, k, n = 4, 5, 3
	r := rand.New(rand.NewSource(7))
	a := make([]float32, m*k)
	b := make([]float32, k*n)
	for i := range a {
		a[i] = r.Float32()*2 - 1
	}
	for i := range b {
		b[i] = r.Float32()*2 - 1
	}

	kern, err := For[float32](m, k, n)
	if err != nil {
		t.Fatal(err)
	}

	pa, err := NewAlignedBuffer[float32](kern.APack().Len(), kern.APack().Alignment())
	if err != nil {
		t.Fatal(err)
	}
	pb, err := NewAlignedBuffer[float32](kern.BPack().Len(), kern.BPack().Alignment())
	if err != nil {
		t.Fatal(err)
	}
	kern.APack().Pack(pa, a, k, 1)
	kern.BPack().Pack(pb, b, n, 1)

	c := make([]float32, m*n)
	if err := kern.Run(kern.FromPackedA(pa), kern.FromPackedB(pb), kern.FromStridedC(c, n, 1), nil); err != nil {
		t.Fatal(err)
	}

	want := naiveMatMul32(a, b, m, k, n)
	allClose32(t, c, want, 1e-4)
}

func TestPortableKernelNonContiguousC(t *testing.T) {
	const m, k, n = 2, 3, 2
	a := []float32{1, 2, 3, 4, 5, 6}
	b := []float32{1, 0, 0, 1, 1, 1}

	kern, err := For[float32](m, k, n)
	if err != nil {
		t.Fatal(err)
	}
	pa := make([]float32, kern.APack().Len())
	pb := make([]float32, kern.BPack().Len())
	kern.APack().Pack(pa, a, k, 1)
	kern.BPack().Pack(pb, b, n, 1)

	// Write into every other column of a wider backing buffer: colStride=2.
	c := make([]float32, m*n*2)
	if err := kern.Run(kern.FromPackedA(pa), kern.FromPackedB(pb), kern.FromStridedC(c, n*2, 2), nil); err != nil {
		t.Fatal(err)
	}

	want := naiveMatMul32(a, b, m, k, n)
	got := make([]float32, m*n)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			got[i*n+j] = c[i*n*2+j*2]
		}
	}
	allClose32(t, got, want, 1e-4)
}

func TestRunAppliesPostOpsInOrder(t *testing.T) {
	const m, k, n = 1, 2, 3
	a := []float32{1, 1}
	b := []float32{1, 1, 1, 1, 1, 1}

	kern, err := For[float32](m, k, n)
	if err != nil {
		t.Fatal(err)
	}
	pa := make([]float32, kern.APack().Len())
	pb := make([]float32, kern.BPack().Len())
	kern.APack().Pack(pa, a, k, 1)
	kern.BPack().Pack(pb, b, n, 1)

	c := make([]float32, m*n)
	ops := []FusedSpec[float32]{
		PerColMul[float32]{Vec: []float32{2, 2, 2}},
		Min[float32]{V: 3},
		Max[float32]{V: 1},
	}
	if err := kern.Run(kern.FromPackedA(pa), kern.FromPackedB(pb), kern.FromStridedC(c, n, 1), ops); err != nil {
		t.Fatal(err)
	}
	// raw matmul -> [2,2,2]; *2 -> [4,4,4]; min(.,3) -> [3,3,3]; max(.,1) -> [3,3,3]
	want := []float32{3, 3, 3}
	allClose32(t, c, want, 1e-6)
}

func TestForRejectsNonPositiveDims(t *testing.T) {
	if _, err := For[float32](0, 2, 2); err == nil {
		t.Fatal("expected MMMUnavailableError for m=0")
	}
}

func TestNewAlignedBufferRejectsBadAlignment(t *testing.T) {
	if _, err := NewAlignedBuffer[float32](16, 0); err == nil {
		t.Fatal("expected error for alignment 0")
	}
	if _, err := NewAlignedBuffer[float32](16, 3); err == nil {
		t.Fatal("expected error for non-power-of-two alignment")
	}
}

func TestNewAlignedBufferIsAligned(t *testing.T) {
	buf, err := NewAlignedBuffer[float32](128, 64)
	if err != nil {
		t.Fatal(err)
	}
	if len(buf) != 128 {
		t.Fatalf("expected length 128, got %d", len(buf))
	}
	if addr := uintptr(unsafe.Pointer(&buf[0])); addr%64 != 0 {
		t.Fatalf("expected 64-byte aligned start, got address %#x", addr)
	}
}
