package codes

import (
	"errors"

	"github.com/katalvlaran/mwpm/core"
)

// Sentinel errors for code construction.
var (
	// ErrDistance indicates a code distance below 3.
	ErrDistance = errors.New("codes: code distance must be at least 3")
	// ErrHalfWeight indicates a non-positive half-weight.
	ErrHalfWeight = errors.New("codes: half-weight must be positive")
	// ErrErrorRate indicates an error rate outside [0, 1].
	ErrErrorRate = errors.New("codes: error rate must lie in [0, 1]")
)

type kind uint8

const (
	planarKind kind = iota
	repetitionKind
)

// Code is an immutable decoding graph with its geometry, built once and
// shared by tests and benchmarks.
type Code struct {
	kind       kind
	distance   int
	halfWeight core.Weight
	rows, cols int
	init       core.Initializer
	isVirtual  []bool
}

// CodeCapacityPlanar builds the distance-d planar decoding graph with
// uniform edge weight 2·halfWeight. Complexity: O(d²).
func CodeCapacityPlanar(d int, halfWeight core.Weight) (*Code, error) {
	if d < 3 {
		return nil, ErrDistance
	}
	if halfWeight <= 0 {
		return nil, ErrHalfWeight
	}
	rows, cols := d, d+1
	c := &Code{
		kind:       planarKind,
		distance:   d,
		halfWeight: halfWeight,
		rows:       rows,
		cols:       cols,
	}
	vertexCount := rows * cols
	weight := 2 * halfWeight
	var virtual []core.VertexIndex
	isVirtual := make([]bool, vertexCount)
	for r := 0; r < rows; r++ {
		for _, col := range []int{0, cols - 1} {
			v := core.VertexIndex(r*cols + col)
			virtual = append(virtual, v)
			isVirtual[v] = true
		}
	}
	var edges []core.WeightedEdge
	for r := 0; r < rows; r++ {
		for col := 0; col < cols-1; col++ {
			edges = append(edges, core.WeightedEdge{
				Left:   core.VertexIndex(r*cols + col),
				Right:  core.VertexIndex(r*cols + col + 1),
				Weight: weight,
			})
		}
	}
	for r := 0; r < rows-1; r++ {
		for col := 1; col < cols-1; col++ {
			edges = append(edges, core.WeightedEdge{
				Left:   core.VertexIndex(r*cols + col),
				Right:  core.VertexIndex((r+1)*cols + col),
				Weight: weight,
			})
		}
	}
	c.init = core.Initializer{
		VertexCount:     vertexCount,
		VirtualVertices: virtual,
		Edges:           edges,
	}
	c.isVirtual = isVirtual
	return c, nil
}

// CodeCapacityRepetition builds the distance-d repetition decoding graph:
// a chain 0..d with virtual endpoints. Complexity: O(d).
func CodeCapacityRepetition(d int, halfWeight core.Weight) (*Code, error) {
	if d < 3 {
		return nil, ErrDistance
	}
	if halfWeight <= 0 {
		return nil, ErrHalfWeight
	}
	c := &Code{
		kind:       repetitionKind,
		distance:   d,
		halfWeight: halfWeight,
		rows:       1,
		cols:       d + 1,
	}
	vertexCount := d + 1
	weight := 2 * halfWeight
	isVirtual := make([]bool, vertexCount)
	isVirtual[0], isVirtual[d] = true, true
	edges := make([]core.WeightedEdge, 0, d)
	for i := 0; i < d; i++ {
		edges = append(edges, core.WeightedEdge{
			Left:   core.VertexIndex(i),
			Right:  core.VertexIndex(i + 1),
			Weight: weight,
		})
	}
	c.init = core.Initializer{
		VertexCount:     vertexCount,
		VirtualVertices: []core.VertexIndex{0, core.VertexIndex(d)},
		Edges:           edges,
	}
	c.isVirtual = isVirtual
	return c, nil
}

// Initializer returns the graph description consumed by the dual module.
func (c *Code) Initializer() core.Initializer { return c.init }

// Distance returns the code distance d.
func (c *Code) Distance() int { return c.distance }

// HalfWeight returns the uniform half-weight.
func (c *Code) HalfWeight() core.Weight { return c.halfWeight }

// VertexCount returns the number of vertices, virtual included.
func (c *Code) VertexCount() int { return c.init.VertexCount }

// VertexAt maps grid coordinates to the row-major vertex index.
func (c *Code) VertexAt(row, col int) core.VertexIndex {
	return core.VertexIndex(row*c.cols + col)
}

// Coordinate inverts VertexAt.
func (c *Code) Coordinate(v core.VertexIndex) (row, col int) {
	return int(v) / c.cols, int(v) % c.cols
}

// IsVirtual reports whether a vertex is a boundary absorber.
func (c *Code) IsVirtual(v core.VertexIndex) bool { return c.isVirtual[v] }

// RealVertices appends all non-virtual vertex indices to dst.
func (c *Code) RealVertices(dst []core.VertexIndex) []core.VertexIndex {
	for v := 0; v < c.init.VertexCount; v++ {
		if !c.isVirtual[v] {
			dst = append(dst, core.VertexIndex(v))
		}
	}
	return dst
}

// SampleSyndrome flips each real vertex into a defect independently with
// probability p, deterministically in the seed. Returns the defect list
// in ascending vertex order.
func (c *Code) SampleSyndrome(p float64, seed int64) ([]core.VertexIndex, error) {
	if p < 0 || p > 1 {
		return nil, ErrErrorRate
	}
	rng := rngFromSeed(seed)
	var defects []core.VertexIndex
	for v := 0; v < c.init.VertexCount; v++ {
		if c.isVirtual[v] {
			continue
		}
		if rng.Float64() < p {
			defects = append(defects, core.VertexIndex(v))
		}
	}
	return defects, nil
}
