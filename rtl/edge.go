package rtl

import (
	"fmt"

	"github.com/katalvlaran/mwpm/core"
)

// Edge is one per-edge register file: the static weight and endpoints,
// plus the growth each endpoint's region has contributed to this edge.
type Edge struct {
	index      core.EdgeIndex
	weight     core.Weight
	left       core.VertexIndex
	right      core.VertexIndex
	leftGrown  core.Weight
	rightGrown core.Weight
}

func (e *Edge) isTight() bool {
	return e.leftGrown+e.rightGrown >= e.weight
}

// isTightFrom reports whether the given endpoint's side alone covers the
// full weight, i.e. the far endpoint sits on this region's frontier.
func (e *Edge) isTightFrom(vertex core.VertexIndex) bool {
	switch vertex {
	case e.left:
		return e.leftGrown == e.weight
	case e.right:
		return e.rightGrown == e.weight
	default:
		panic(fmt.Sprintf("rtl: vertex %d is not incident to edge %d", vertex, e.index))
	}
}

func (e *Edge) peerOf(vertex core.VertexIndex) core.VertexIndex {
	switch vertex {
	case e.left:
		return e.right
	case e.right:
		return e.left
	default:
		panic(fmt.Sprintf("rtl: vertex %d is not incident to edge %d", vertex, e.index))
	}
}

// execute accumulates per-side growth while the endpoints belong to
// different regions; an edge interior to one region is frozen. Reads the
// previous stage's vertex snapshot.
func (e *Edge) execute(m *Module, ins instruction) {
	if ins.op != opGrow {
		return
	}
	lv := &m.vertices[e.left]
	rv := &m.vertices[e.right]
	if lv.node == rv.node {
		return
	}
	e.leftGrown += lv.speed.Speed() * ins.length
	e.rightGrown += rv.speed.Speed() * ins.length
	if e.leftGrown < 0 || e.rightGrown < 0 {
		panic(fmt.Sprintf("rtl: edge %d side growth below zero (%d/%d)", e.index, e.leftGrown, e.rightGrown))
	}
	if e.leftGrown+e.rightGrown > e.weight {
		panic(fmt.Sprintf("rtl: edge %d overgrown: %d+%d > %d", e.index, e.leftGrown, e.rightGrown, e.weight))
	}
}

// response compares the shadow owners of the two endpoints: distinct
// regions closing in on each other either report the exact number of
// growth units left or, at zero remaining, a conflict naming both outer
// nodes, their touching defects and the incident vertices. An absent
// owner on one side is a virtual or unowned vertex; a conflict against
// it is a virtual touch.
func (e *Edge) response(m *Module) core.Obstacle {
	left := m.shadowOf(e.left)
	right := m.shadowOf(e.right)
	if left.node == right.node {
		return core.GrowLengthObstacle(core.MaxWeight)
	}
	joint := left.speed.Speed() + right.speed.Speed()
	if joint <= 0 {
		return core.GrowLengthObstacle(core.MaxWeight)
	}
	remaining := e.weight - e.leftGrown - e.rightGrown
	if remaining == 0 {
		return core.Obstacle{
			Kind:    core.ObstacleConflict,
			Node1:   left.node,
			Touch1:  left.root,
			Vertex1: e.left,
			Node2:   right.node,
			Touch2:  right.root,
			Vertex2: e.right,
		}
	}
	if remaining%joint != 0 {
		// Reporting the floor would silently round the schedule.
		panic(fmt.Sprintf("rtl: edge %d remaining %d not divisible by joint speed %d", e.index, remaining, joint))
	}
	return core.GrowLengthObstacle(remaining / joint)
}
