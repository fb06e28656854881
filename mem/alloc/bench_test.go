package alloc

import (
	"math/rand"
	"testing"

	"github.com/heapkit/heapkit/mem"
)

func newBenchAllocator(b *testing.B, cfg *Config) *Allocator {
	b.Helper()
	a, err := New(mem.NewRegion(mem.NewSliceProvider(0)), cfg)
	if err != nil {
		b.Fatal(err)
	}
	return a
}

// BenchmarkAllocateFree measures the hot path: a same-sized allocate/free
// pair that always hits the free lists after warm-up.
func BenchmarkAllocateFree(b *testing.B) {
	a := newBenchAllocator(b, nil)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		ref, _, err := a.Allocate(64)
		if err != nil {
			b.Fatal(err)
		}
		if err := a.Free(ref); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkChurn measures mixed-size steady-state churn with coalescing.
func BenchmarkChurn(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	a := newBenchAllocator(b, nil)

	refs := make([]Ref, 512)
	for i := range refs {
		ref, _, err := a.Allocate(1 + rng.Intn(1024))
		if err != nil {
			b.Fatal(err)
		}
		refs[i] = ref
	}
	b.ResetTimer()

	for n := 0; n < b.N; n++ {
		i := rng.Intn(len(refs))
		if err := a.Free(refs[i]); err != nil {
			b.Fatal(err)
		}
		ref, _, err := a.Allocate(1 + rng.Intn(1024))
		if err != nil {
			b.Fatal(err)
		}
		refs[i] = ref
	}
}

// BenchmarkResizeInPlace measures shrink/grow cycles that never relocate.
func BenchmarkResizeInPlace(b *testing.B) {
	a := newBenchAllocator(b, nil)
	ref, _, err := a.Allocate(4096)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		n := 256
		if i%2 == 0 {
			n = 4096
		}
		ref, _, err = a.Resize(ref, n)
		if err != nil {
			b.Fatal(err)
		}
	}
}
