package rtl

import "github.com/katalvlaran/mwpm/core"

// permitPreMatch gates one endpoint of a candidate offload edge: the
// vertex must be a growing, still-trivial defect (it owns only the
// region its own node spread, so node equals root), must not be matched
// already, and the candidate must be its only tight edge facing a
// virtual far endpoint or one owned by another node. Any contention falls through to the
// primal module, which keeps the offload indistinguishable from the
// general path.
func (m *Module) permitPreMatch(v *Vertex, candidate core.EdgeIndex) bool {
	if !v.isDefect || v.preMatched || v.speed != core.Grow {
		return false
	}
	if v.node.IsNone() || v.node != v.root {
		return false
	}
	for _, ei := range v.edges {
		if ei == candidate {
			continue
		}
		e := &m.edges[ei]
		if !e.isTight() {
			continue
		}
		far := &m.vertices[e.peerOf(v.index)]
		if far.isVirtual {
			return false
		}
		if far.node.IsSome() && far.node != v.node {
			return false
		}
	}
	return true
}

// setSpeedForNode mirrors a SetSpeed instruction combinationally: every
// vertex owned by the node changes speed, shell vertices included.
func (m *Module) setSpeedForNode(node core.NodeIndex, speed core.GrowState) {
	for i := range m.vertices {
		if m.vertices[i].node == core.Some(node) {
			m.vertices[i].speed = speed
		}
	}
}

// collectPreMatches scans edges in index order and offloads every tight
// edge whose endpoints both permit it: the pair is recorded, both
// regions freeze, and the primal never learns about them.
func (m *Module) collectPreMatches() {
	for i := range m.edges {
		e := &m.edges[i]
		if !e.isTight() {
			continue
		}
		lv := &m.vertices[e.left]
		rv := &m.vertices[e.right]
		if m.preMatching &&
			lv.node != rv.node &&
			m.permitPreMatch(lv, e.index) && m.permitPreMatch(rv, e.index) {
			lv.preMatched, rv.preMatched = true, true
			m.setSpeedForNode(lv.node.MustGet(), core.Stay)
			m.setSpeedForNode(rv.node.MustGet(), core.Stay)
			m.preMatches = append(m.preMatches, PreMatch{
				Node1:   lv.node.MustGet(),
				Vertex1: e.left,
				Node2:   core.Some(rv.node.MustGet()),
				Vertex2: e.right,
			})
			continue
		}
		if !m.virtualPreMatching || lv.isVirtual == rv.isVirtual {
			continue
		}
		defect, boundary := lv, rv
		if lv.isVirtual {
			defect, boundary = rv, lv
		}
		if m.permitPreMatch(defect, e.index) {
			defect.preMatched = true
			m.setSpeedForNode(defect.node.MustGet(), core.Stay)
			m.preMatches = append(m.preMatches, PreMatch{
				Node1:   defect.node.MustGet(),
				Vertex1: defect.index,
				Node2:   core.None[core.NodeIndex](),
				Vertex2: boundary.index,
			})
		}
	}
}

// cancelPreMatches undoes every offloaded pair a surfaced conflict
// names: the partners resume growing, so the pair's own tight edge
// re-emits its conflict and the primal resolves both nodes through the
// general path. Reports whether anything was cancelled — the caller must
// then re-reduce obstacles within the same cycle.
func (m *Module) cancelPreMatches(obs core.Obstacle) bool {
	named := func(pm PreMatch, node core.Option[core.NodeIndex]) bool {
		n, ok := node.Get()
		if !ok {
			return false
		}
		return pm.Node1 == n || pm.Node2 == core.Some(n)
	}
	cancelled := false
	kept := m.preMatches[:0]
	for _, pm := range m.preMatches {
		if !named(pm, obs.Node1) && !named(pm, obs.Node2) {
			kept = append(kept, pm)
			continue
		}
		cancelled = true
		m.vertices[pm.Vertex1].preMatched = false
		m.setSpeedForNode(pm.Node1, core.Grow)
		if peer, ok := pm.Node2.Get(); ok {
			m.vertices[pm.Vertex2].preMatched = false
			m.setSpeedForNode(peer, core.Grow)
		}
	}
	m.preMatches = kept
	return cancelled
}
