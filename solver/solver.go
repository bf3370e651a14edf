package solver

import (
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/mwpm/core"
	"github.com/katalvlaran/mwpm/primal"
	"github.com/katalvlaran/mwpm/rtl"
)

// Sentinel errors for syndrome validation.
var (
	// ErrTooManyDefects indicates a syndrome larger than the arena capacity.
	ErrTooManyDefects = errors.New("solver: syndrome exceeds arena capacity")
	// ErrVertexOutOfRange indicates a defect vertex outside the graph.
	ErrVertexOutOfRange = errors.New("solver: defect vertex out of range")
	// ErrVirtualDefect indicates a defect reported on a virtual vertex.
	ErrVirtualDefect = errors.New("solver: defect on a virtual vertex")
	// ErrDuplicateDefect indicates the same vertex reported twice.
	ErrDuplicateDefect = errors.New("solver: duplicate defect vertex")
)

// solveBudget bounds the obstacle loop; exceeding it means the engine
// stopped making progress, which is a bug, not an input condition.
const solveBudget = 1 << 20

// Option configures the engine.
type Option func(*config)

type config struct {
	preMatching        bool
	virtualPreMatching bool
}

// WithPreMatching enables the dual's defect-pair offload.
func WithPreMatching() Option {
	return func(c *config) { c.preMatching = true }
}

// WithVirtualPreMatching enables the boundary variant of the offload.
func WithVirtualPreMatching() Option {
	return func(c *config) { c.virtualPreMatching = true }
}

// Match is one entry of the emitted matching: a defect vertex paired
// with a peer defect vertex, or with a virtual boundary vertex when
// ToVirtual is set.
type Match struct {
	Source    core.VertexIndex
	Target    core.VertexIndex
	ToVirtual bool
}

// Solver is the decoding engine. It owns the node arena and the dual
// graph; both are mutated only through the public operations.
type Solver struct {
	capacity int
	nodes    *primal.Nodes
	dual     *rtl.Module

	defectVertices []core.VertexIndex
	seen           []bool

	emitScratch []keyedMatch
}

type keyedMatch struct {
	key   core.NodeIndex
	match Match
}

// New builds an engine for a decoding graph with room for at most
// capacity defects (and as many blossoms).
func New(init core.Initializer, capacity int, opts ...Option) (*Solver, error) {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	var dualOpts []rtl.Option
	if c.preMatching {
		dualOpts = append(dualOpts, rtl.WithPreMatching())
	}
	if c.virtualPreMatching {
		dualOpts = append(dualOpts, rtl.WithVirtualPreMatching())
	}
	dual, err := rtl.New(init, capacity, dualOpts...)
	if err != nil {
		return nil, err
	}
	return &Solver{
		capacity:       capacity,
		nodes:          primal.NewNodes(capacity),
		dual:           dual,
		defectVertices: make([]core.VertexIndex, 0, capacity),
		seen:           make([]bool, init.VertexCount),
		emitScratch:    make([]keyedMatch, 0, capacity),
	}, nil
}

// Dual exposes the dual module for inspection (tests, debugging).
func (s *Solver) Dual() *rtl.Module { return s.dual }

// Nodes exposes the primal store for inspection (tests, debugging).
func (s *Solver) Nodes() *primal.Nodes { return s.nodes }

// Clear resets arena and dual state; all buffers are reused.
func (s *Solver) Clear() {
	s.nodes.Clear()
	s.dual.Clear()
	s.defectVertices = s.defectVertices[:0]
	for i := range s.seen {
		s.seen[i] = false
	}
}

// LoadSyndrome registers the reported defects with the dual module, one
// fresh node index per entry. May be called repeatedly to extend the
// syndrome before solving.
func (s *Solver) LoadSyndrome(defects []core.VertexIndex) error {
	if len(s.defectVertices)+len(defects) > s.capacity {
		return fmt.Errorf("%w: %d defects, capacity %d",
			ErrTooManyDefects, len(s.defectVertices)+len(defects), s.capacity)
	}
	marked := 0
	var err error
	for _, v := range defects {
		switch {
		case int(v) >= s.dual.VertexCount():
			err = fmt.Errorf("%w: vertex %d", ErrVertexOutOfRange, v)
		case s.seen[v]:
			err = fmt.Errorf("%w: vertex %d", ErrDuplicateDefect, v)
		case s.dual.IsVirtual(v):
			err = fmt.Errorf("%w: vertex %d", ErrVirtualDefect, v)
		}
		if err != nil {
			for _, u := range defects[:marked] {
				s.seen[u] = false
			}
			return err
		}
		s.seen[v] = true
		marked++
	}
	for _, v := range defects {
		node := core.NodeIndex(len(s.defectVertices))
		s.dual.AddDefect(v, node)
		s.defectVertices = append(s.defectVertices, v)
	}
	return nil
}

// Solve drives the primal-dual loop to completion: every obstacle the
// dual reports is handled until only an unbounded grow length remains,
// at which point every known outer node must be matched.
func (s *Solver) Solve() {
	for iter := 0; ; iter++ {
		if iter >= solveBudget {
			panic("solver: obstacle loop exceeded its budget without converging")
		}
		obs := s.dual.FindObstacle()
		if !obs.IsFinite() {
			break
		}
		switch obs.Kind {
		case core.ObstacleGrowLength:
			s.dual.Grow(obs.Length)
		case core.ObstacleConflict:
			s.nodes.ResolveConflict(s.dual, obs)
		case core.ObstacleBlossomExpand:
			s.nodes.ExpandBlossom(s.dual, obs.Blossom)
		}
	}
	if id, ok := s.nodes.UnmatchedOuter(); ok {
		panic(fmt.Sprintf("solver: node %d left unmatched after solve", id))
	}
}

// EmitMatching invokes sink once per matched pair, pre-matched pairs
// included, ordered by ascending defect node index.
func (s *Solver) EmitMatching(sink func(Match)) {
	out := s.emitScratch[:0]
	for _, pm := range s.dual.PreMatches() {
		if peer, ok := pm.Node2.Get(); ok {
			a, b := pm.Node1, peer
			va, vb := pm.Vertex1, pm.Vertex2
			if b < a {
				a, b = b, a
				va, vb = vb, va
			}
			out = append(out, keyedMatch{key: a, match: Match{Source: va, Target: vb}})
			continue
		}
		out = append(out, keyedMatch{
			key:   pm.Node1,
			match: Match{Source: pm.Vertex1, Target: pm.Vertex2, ToVirtual: true},
		})
	}
	s.nodes.IteratePerfectMatching(func(defect core.NodeIndex, target core.MatchTarget) {
		if peer, ok := target.Peer(); ok {
			a, b := defect, peer
			if b < a {
				a, b = b, a
			}
			out = append(out, keyedMatch{key: a, match: Match{
				Source: s.defectVertices[a],
				Target: s.defectVertices[b],
			}})
			return
		}
		virtualVertex, _ := target.Virtual()
		out = append(out, keyedMatch{key: defect, match: Match{
			Source:    s.defectVertices[defect],
			Target:    virtualVertex,
			ToVirtual: true,
		}})
	})
	sort.Slice(out, func(i, j int) bool { return out[i].key < out[j].key })
	for _, km := range out {
		sink(km.match)
	}
	s.emitScratch = out[:0]
}
