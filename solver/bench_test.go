package solver_test

import (
	"testing"

	"github.com/katalvlaran/mwpm/codes"
	"github.com/katalvlaran/mwpm/core"
	"github.com/katalvlaran/mwpm/solver"
)

// BenchmarkSolvePlanar measures a full decode episode on the d=7 planar
// code with a fixed random syndrome, engine reused via Clear.
func BenchmarkSolvePlanar(b *testing.B) {
	code, err := codes.CodeCapacityPlanar(7, 500)
	if err != nil {
		b.Fatal(err)
	}
	defects, err := code.SampleSyndrome(0.05, 3)
	if err != nil {
		b.Fatal(err)
	}
	if len(defects) == 0 {
		defects = []core.VertexIndex{code.VertexAt(2, 3), code.VertexAt(4, 3)}
	}
	eng, err := solver.New(code.Initializer(), 32)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		eng.Clear()
		if err := eng.LoadSyndrome(defects); err != nil {
			b.Fatal(err)
		}
		eng.Solve()
	}
}

// BenchmarkSolveRepetitionOffload compares against the offloaded path on
// the repetition code, where trivial pairs dominate.
func BenchmarkSolveRepetitionOffload(b *testing.B) {
	code, err := codes.CodeCapacityRepetition(21, 500)
	if err != nil {
		b.Fatal(err)
	}
	defects, err := code.SampleSyndrome(0.1, 5)
	if err != nil {
		b.Fatal(err)
	}
	if len(defects) == 0 {
		defects = []core.VertexIndex{3, 4}
	}
	eng, err := solver.New(code.Initializer(), 32,
		solver.WithPreMatching(), solver.WithVirtualPreMatching())
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		eng.Clear()
		if err := eng.LoadSyndrome(defects); err != nil {
			b.Fatal(err)
		}
		eng.Solve()
	}
}

// BenchmarkEmitMatching isolates the extraction walk.
func BenchmarkEmitMatching(b *testing.B) {
	code, err := codes.CodeCapacityPlanar(7, 500)
	if err != nil {
		b.Fatal(err)
	}
	eng, err := solver.New(code.Initializer(), 8)
	if err != nil {
		b.Fatal(err)
	}
	if err := eng.LoadSyndrome([]core.VertexIndex{19, 26, 35}); err != nil {
		b.Fatal(err)
	}
	eng.Solve()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		eng.EmitMatching(func(solver.Match) {})
	}
}
