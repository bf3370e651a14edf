package rtl

import (
	"fmt"

	"github.com/katalvlaran/mwpm/core"
)

// Module is the register-transfer-level dual module: double-buffered
// vertex and edge register files driven by single-cycle instructions.
// It implements core.DualDriver.
type Module struct {
	capacity int
	init     core.Initializer

	vertices     []Vertex
	verticesNext []Vertex
	edges        []Edge
	edgesNext    []Edge

	preMatching        bool
	virtualPreMatching bool
	preMatches         []PreMatch

	// growth still permitted by the last reported obstacle
	granted core.Weight
}

// New builds the dual module for a decoding graph and a defect capacity
// (node indices at or above capacity address blossoms). The graph is
// validated once; reconstruction on Clear reuses the stored description.
func New(init core.Initializer, capacity int, opts ...Option) (*Module, error) {
	if capacity <= 0 {
		return nil, ErrBadCapacity
	}
	if err := init.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadGraph, err)
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	m := &Module{
		capacity:           capacity,
		init:               init,
		vertices:           make([]Vertex, init.VertexCount),
		verticesNext:       make([]Vertex, init.VertexCount),
		edges:              make([]Edge, len(init.Edges)),
		edgesNext:          make([]Edge, len(init.Edges)),
		preMatching:        o.preMatching,
		virtualPreMatching: o.virtualPreMatching,
		preMatches:         make([]PreMatch, 0, capacity),
	}
	adjacency := make([][]core.EdgeIndex, init.VertexCount)
	for i, e := range init.Edges {
		adjacency[e.Left] = append(adjacency[e.Left], core.EdgeIndex(i))
		adjacency[e.Right] = append(adjacency[e.Right], core.EdgeIndex(i))
	}
	for i := range m.vertices {
		m.vertices[i] = Vertex{index: core.VertexIndex(i), edges: adjacency[i]}
	}
	m.Clear()
	return m, nil
}

// Clear rebuilds all registers from the stored graph description and
// forgets pre-matches. Buffers are reused.
func (m *Module) Clear() {
	for i := range m.vertices {
		v := &m.vertices[i]
		v.speed = core.Stay
		v.grown = 0
		v.isVirtual = false
		v.isDefect = false
		v.preMatched = false
		v.node = core.None[core.NodeIndex]()
		v.root = core.None[core.NodeIndex]()
	}
	for _, vv := range m.init.VirtualVertices {
		m.vertices[vv].isVirtual = true
	}
	for i, e := range m.init.Edges {
		m.edges[i] = Edge{
			index:  core.EdgeIndex(i),
			weight: e.Weight,
			left:   e.Left,
			right:  e.Right,
		}
	}
	m.preMatches = m.preMatches[:0]
	m.granted = 0
}

// VertexCount and EdgeCount describe the loaded graph.
func (m *Module) VertexCount() int { return len(m.vertices) }
func (m *Module) EdgeCount() int   { return len(m.edges) }

// Grown exposes a vertex dual variable (read-only, for tests and debug).
func (m *Module) Grown(v core.VertexIndex) core.Weight { return m.vertices[v].grown }

// EdgeSlack exposes weight - leftGrown - rightGrown of an edge.
func (m *Module) EdgeSlack(e core.EdgeIndex) core.Weight {
	ed := &m.edges[e]
	return ed.weight - ed.leftGrown - ed.rightGrown
}

// Owner exposes the outer node a vertex currently belongs to.
func (m *Module) Owner(v core.VertexIndex) core.Option[core.NodeIndex] { return m.vertices[v].node }

// IsVirtual reports whether a vertex is a virtual boundary absorber.
func (m *Module) IsVirtual(v core.VertexIndex) bool { return m.vertices[v].isVirtual }

// PreMatches returns the offloaded matches accumulated so far. The slice
// is owned by the module and valid until the next Clear.
func (m *Module) PreMatches() []PreMatch { return m.preMatches }

func (m *Module) isBlossomNode(n core.NodeIndex) bool { return int(n) >= m.capacity }

// AddDefect registers a syndrome vertex under a fresh defect node.
// Part of core.DualDriver.
func (m *Module) AddDefect(vertex core.VertexIndex, node core.NodeIndex) {
	if int(vertex) >= len(m.vertices) {
		panic(fmt.Sprintf("rtl: defect vertex %d out of range", vertex))
	}
	v := &m.vertices[vertex]
	if v.isVirtual {
		panic(fmt.Sprintf("rtl: vertex %d is virtual, cannot host a defect", vertex))
	}
	if v.isDefect {
		panic(fmt.Sprintf("rtl: vertex %d is already a defect", vertex))
	}
	if m.isBlossomNode(node) {
		panic(fmt.Sprintf("rtl: defect node %d collides with the blossom range", node))
	}
	m.step(instruction{op: opAddDefect, vertex: vertex, node: node})
}

// SetGrowState propagates a node speed to all vertices it owns.
// Part of core.DualDriver.
func (m *Module) SetGrowState(node core.NodeIndex, state core.GrowState) {
	m.step(instruction{op: opSetSpeed, node: node, speed: state})
}

// CreateBlossom rewires every member region to the blossom; freshly
// created blossoms always grow. Part of core.DualDriver.
func (m *Module) CreateBlossom(blossom core.NodeIndex, members core.BlossomMembership) {
	members.IterateMembers(blossom, func(member core.NodeIndex) {
		m.step(instruction{op: opSetBlossom, node: member, blossom: blossom})
	})
}

// ExpandBlossom hands each member's region back, keyed by the defect
// roots the ownership originally propagated from. Part of core.DualDriver.
func (m *Module) ExpandBlossom(blossom core.NodeIndex, members core.BlossomMembership) {
	members.IterateMembers(blossom, func(member core.NodeIndex) {
		members.IterateDefectRoots(member, func(root core.NodeIndex) {
			m.step(instruction{op: opSetBlossom, node: root, blossom: member})
		})
	})
}

// FindObstacle runs one detection cycle and returns the reduced obstacle.
// Part of core.DualDriver.
func (m *Module) FindObstacle() core.Obstacle {
	obs := m.step(instruction{op: opFindObstacle})
	if obs.Kind == core.ObstacleGrowLength {
		m.granted = obs.Length
	} else {
		m.granted = 0
	}
	return obs
}

// Grow advances dual time. Growing more than the last reported length is
// a scheduling bug and fatal. Part of core.DualDriver.
func (m *Module) Grow(length core.Weight) {
	if length <= 0 {
		panic(fmt.Sprintf("rtl: grow length must be positive, got %d", length))
	}
	if length > m.granted {
		panic(fmt.Sprintf("rtl: grow %d exceeds the granted length %d", length, m.granted))
	}
	m.granted -= length
	m.step(instruction{op: opGrow, length: length})
}

// step executes one instruction through the three pipeline stages.
func (m *Module) step(ins instruction) core.Obstacle {
	// execute stage: every register computes its next value from the
	// previous snapshot, then both files flip at the barrier.
	copy(m.verticesNext, m.vertices)
	copy(m.edgesNext, m.edges)
	for i := range m.verticesNext {
		m.verticesNext[i].execute(ins)
	}
	for i := range m.edgesNext {
		m.edgesNext[i].execute(m, ins)
	}
	m.vertices, m.verticesNext = m.verticesNext, m.vertices
	m.edges, m.edgesNext = m.edgesNext, m.edges

	// update stage: ownership propagation across fully-grown edges.
	copy(m.verticesNext, m.vertices)
	for i := range m.verticesNext {
		m.verticesNext[i].update(m)
	}
	m.vertices, m.verticesNext = m.verticesNext, m.vertices

	// write stage: obstacle generation, only meaningful for detection.
	if ins.op != opFindObstacle {
		return core.NoObstacle()
	}
	if m.preMatching || m.virtualPreMatching {
		m.collectPreMatches()
	}
	obs := m.reduceObstacles()
	if m.preMatching || m.virtualPreMatching {
		// A conflict that names an offloaded node reverses the offload;
		// the restored pair's own conflict re-enters the reduction.
		for obs.Kind == core.ObstacleConflict && m.cancelPreMatches(obs) {
			obs = m.reduceObstacles()
		}
	}
	return obs
}

// reduceObstacles folds every emitter in sweep order: vertices ascending,
// then edges ascending. The fold is the deterministic total order of
// core.Reduce.
func (m *Module) reduceObstacles() core.Obstacle {
	best := core.NoObstacle()
	for i := range m.vertices {
		best = core.Reduce(best, m.vertices[i].response(m))
	}
	for i := range m.edges {
		best = core.Reduce(best, m.edges[i].response(m))
	}
	return best
}

// propagatingPeer finds the first neighbour (in adjacency order) whose
// side of the shared edge is fully grown and whose speed is Grow.
func (m *Module) propagatingPeer(v core.VertexIndex) (core.VertexIndex, bool) {
	for _, ei := range m.vertices[v].edges {
		e := &m.edges[ei]
		peer := e.peerOf(v)
		if e.isTightFrom(peer) && m.vertices[peer].speed == core.Grow {
			return peer, true
		}
	}
	return 0, false
}

// shadow is the ownership a vertex presents to obstacle detection.
type shadow struct {
	node  core.Option[core.NodeIndex]
	root  core.Option[core.NodeIndex]
	speed core.GrowState
}

// shadowOf attributes a fully retreated shrinking vertex to the region
// about to conquer it, so conflicts across it fire in the same cycle its
// dual reaches zero. Every other vertex presents its own registers.
func (m *Module) shadowOf(v core.VertexIndex) shadow {
	vx := &m.vertices[v]
	if vx.speed == core.Shrink && vx.grown == 0 {
		if peer, ok := m.propagatingPeer(v); ok {
			pv := &m.vertices[peer]
			return shadow{node: pv.node, root: pv.root, speed: core.Grow}
		}
	}
	return shadow{node: vx.node, root: vx.root, speed: vx.speed}
}
