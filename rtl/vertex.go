package rtl

import (
	"fmt"

	"github.com/katalvlaran/mwpm/core"
)

// Vertex is one per-vertex register file. node is the outer owner the
// vertex currently belongs to; root is the propagating grandson defect
// (the innermost defect the ownership spread from). The adjacency slice
// is immutable after construction and shared between register copies.
type Vertex struct {
	index      core.VertexIndex
	edges      []core.EdgeIndex
	speed      core.GrowState
	grown      core.Weight
	isVirtual  bool
	isDefect   bool
	preMatched bool
	node       core.Option[core.NodeIndex]
	root       core.Option[core.NodeIndex]
}

// execute computes the vertex's next registers from the broadcast
// instruction. Reads only its own previous state.
func (v *Vertex) execute(ins instruction) {
	switch ins.op {
	case opAddDefect:
		if ins.vertex == v.index {
			v.isDefect = true
			v.speed = core.Grow
			v.node = core.Some(ins.node)
			v.root = core.Some(ins.node)
		}
	case opSetSpeed:
		if v.node == core.Some(ins.node) {
			v.speed = ins.speed
		}
	case opSetBlossom:
		// New outer blossoms always start growing.
		if v.node == core.Some(ins.node) || v.root == core.Some(ins.node) {
			v.node = core.Some(ins.blossom)
			v.speed = core.Grow
		}
	case opGrow:
		v.grown += v.speed.Speed() * ins.length
		if v.grown < 0 {
			panic(fmt.Sprintf("rtl: vertex %d grown below zero (%d) on grow %d", v.index, v.grown, ins.length))
		}
	}
}

// update inherits ownership from a propagating peer: a neighbour whose
// side of the shared edge is fully grown and whose speed is Grow. Only
// plain vertices at zero dual take part; defects and virtual vertices
// keep their registers.
func (v *Vertex) update(m *Module) {
	if v.isDefect || v.isVirtual || v.grown != 0 {
		return
	}
	if peer, ok := m.propagatingPeer(v.index); ok {
		pv := &m.vertices[peer]
		v.node = pv.node
		v.root = pv.root
		v.speed = pv.speed
		return
	}
	v.node = core.None[core.NodeIndex]()
	v.root = core.None[core.NodeIndex]()
	v.speed = core.Stay
}

// response emits the vertex's obstacle: a shrinking vertex caps growth
// by its remaining dual, and signals expansion once a blossom-owned
// dual reaches zero.
func (v *Vertex) response(m *Module) core.Obstacle {
	if v.speed != core.Shrink {
		return core.NoObstacle()
	}
	if v.grown > 0 {
		return core.GrowLengthObstacle(v.grown)
	}
	if n, ok := v.node.Get(); ok && m.isBlossomNode(n) {
		return core.BlossomExpandObstacle(n)
	}
	return core.NoObstacle()
}
