package refmatch

import (
	"container/heap"
	"errors"
	"fmt"
	"math"
	"math/bits"

	"github.com/katalvlaran/mwpm/core"
)

// MaxDefects bounds the bitmask DP (time/memory guard).
const MaxDefects = 16

// Sentinel errors.
var (
	// ErrTooManyDefects indicates more than MaxDefects defects.
	ErrTooManyDefects = errors.New("refmatch: defect set too large for the exact solver")
	// ErrUnreachable indicates a defect that cannot reach a partner or
	// a boundary (disconnected graph).
	ErrUnreachable = errors.New("refmatch: defect cannot reach any partner or boundary")
)

const infDistance = int64(math.MaxInt64) / 4

// Graph is an immutable adjacency view of a decoding graph.
type Graph struct {
	adjacency [][]halfEdge
	isVirtual []bool

	dist []int64 // scratch reused across Dijkstra runs
}

type halfEdge struct {
	to     core.VertexIndex
	weight core.Weight
}

// New validates the description and builds the adjacency view.
// Complexity: O(V + E).
func New(init core.Initializer) (*Graph, error) {
	if err := init.Validate(); err != nil {
		return nil, err
	}
	g := &Graph{
		adjacency: make([][]halfEdge, init.VertexCount),
		isVirtual: make([]bool, init.VertexCount),
		dist:      make([]int64, init.VertexCount),
	}
	for _, v := range init.VirtualVertices {
		g.isVirtual[v] = true
	}
	for _, e := range init.Edges {
		g.adjacency[e.Left] = append(g.adjacency[e.Left], halfEdge{to: e.Right, weight: e.Weight})
		g.adjacency[e.Right] = append(g.adjacency[e.Right], halfEdge{to: e.Left, weight: e.Weight})
	}
	return g, nil
}

// heap items carry the distance at push time; stale entries are skipped
// on pop (lazy decrease-key, as in the classic heap Dijkstra).
type heapItem struct {
	vertex core.VertexIndex
	dist   int64
}

type minHeap []heapItem

func (h minHeap) Len() int            { return len(h) }
func (h minHeap) Less(i, j int) bool  { return h[i].dist < h[j].dist }
func (h minHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *minHeap) Push(x interface{}) { *h = append(*h, x.(heapItem)) }
func (h *minHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// distancesFrom runs Dijkstra from src over the shared scratch slice.
// Complexity: O((V+E)·log V).
func (g *Graph) distancesFrom(src core.VertexIndex) []int64 {
	for i := range g.dist {
		g.dist[i] = infDistance
	}
	g.dist[src] = 0
	h := minHeap{{vertex: src, dist: 0}}
	for h.Len() > 0 {
		item := heap.Pop(&h).(heapItem)
		if item.dist > g.dist[item.vertex] {
			continue // stale entry
		}
		for _, e := range g.adjacency[item.vertex] {
			cand := item.dist + int64(e.weight)
			if cand < g.dist[e.to] {
				g.dist[e.to] = cand
				heap.Push(&h, heapItem{vertex: e.to, dist: cand})
			}
		}
	}
	return g.dist
}

// Distance returns the shortest-path weight between two vertices, or
// ErrUnreachable when no path exists.
func (g *Graph) Distance(a, b core.VertexIndex) (core.Weight, error) {
	d := g.distancesFrom(a)[b]
	if d >= infDistance {
		return 0, fmt.Errorf("%w: %d to %d", ErrUnreachable, a, b)
	}
	return core.Weight(d), nil
}

// BoundaryDistance returns the distance from a vertex to its nearest
// virtual boundary vertex and that vertex's index.
func (g *Graph) BoundaryDistance(a core.VertexIndex) (core.Weight, core.VertexIndex, error) {
	dist := g.distancesFrom(a)
	best := infDistance
	bestV := core.VertexIndex(0)
	for v, virtual := range g.isVirtual {
		if virtual && dist[v] < best {
			best = dist[v]
			bestV = core.VertexIndex(v)
		}
	}
	if best >= infDistance {
		return 0, 0, fmt.Errorf("%w: %d to boundary", ErrUnreachable, a)
	}
	return core.Weight(best), bestV, nil
}

// Solve computes the exact minimum total weight pairing every defect
// with another defect or with the boundary.
// Complexity: O(k·(V+E)·log V + 2ᵏ·k²) for k defects.
func Solve(init core.Initializer, defects []core.VertexIndex) (core.Weight, error) {
	g, err := New(init)
	if err != nil {
		return 0, err
	}
	return g.Solve(defects)
}

// Solve is the method form reusing an already built graph.
func (g *Graph) Solve(defects []core.VertexIndex) (core.Weight, error) {
	k := len(defects)
	if k == 0 {
		return 0, nil
	}
	if k > MaxDefects {
		return 0, fmt.Errorf("%w: %d > %d", ErrTooManyDefects, k, MaxDefects)
	}

	pair := make([][]int64, k)
	boundary := make([]int64, k)
	for i, v := range defects {
		dist := g.distancesFrom(v)
		pair[i] = make([]int64, k)
		for j, u := range defects {
			pair[i][j] = dist[u]
		}
		boundary[i] = infDistance
		for b, virtual := range g.isVirtual {
			if virtual && dist[b] < boundary[i] {
				boundary[i] = dist[b]
			}
		}
		if boundary[i] >= infDistance {
			hasPartner := false
			for j := range defects {
				if j != i && pair[i][j] < infDistance {
					hasPartner = true
					break
				}
			}
			if !hasPartner {
				return 0, fmt.Errorf("%w: defect vertex %d", ErrUnreachable, v)
			}
		}
	}

	// dp[mask] = minimum weight matching of the defect subset mask.
	dp := make([]int64, 1<<k)
	for mask := 1; mask < len(dp); mask++ {
		dp[mask] = infDistance
		i := bits.TrailingZeros(uint(mask))
		rest := mask &^ (1 << i)
		if boundary[i] < infDistance && dp[rest] < infDistance {
			dp[mask] = boundary[i] + dp[rest]
		}
		for j := i + 1; j < k; j++ {
			if rest&(1<<j) == 0 || pair[i][j] >= infDistance {
				continue
			}
			without := rest &^ (1 << j)
			if dp[without] >= infDistance {
				continue
			}
			if cand := pair[i][j] + dp[without]; cand < dp[mask] {
				dp[mask] = cand
			}
		}
	}
	total := dp[len(dp)-1]
	if total >= infDistance {
		return 0, ErrUnreachable
	}
	return core.Weight(total), nil
}
