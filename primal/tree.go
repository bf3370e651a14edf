package primal

import (
	"fmt"

	"github.com/katalvlaran/mwpm/core"
)

// conflictSide bundles one side of a reported conflict: the outer node
// (absent when the side is a virtual vertex), the touching inner defect,
// and the incident vertex.
type conflictSide struct {
	node   core.Option[core.NodeIndex]
	touch  core.Option[core.NodeIndex]
	vertex core.VertexIndex
}

// nodeClass is the coarse role a conflict participant can legally have.
type nodeClass uint8

const (
	outerPlus      nodeClass = iota // free or "+" in a tree, growing
	matchedPeer                     // temporarily matched to another node
	matchedVirtual                  // temporarily matched to the boundary
)

func (ns *Nodes) classify(id core.NodeIndex) nodeClass {
	n := ns.node(id)
	state, ok := n.grow.Get()
	if !ok {
		panic(fmt.Sprintf("primal: obstacle names inner node %d", id))
	}
	switch state {
	case core.Grow:
		return outerPlus
	case core.Stay:
		if n.sibling.IsSome() {
			return matchedPeer
		}
		if n.link.PeerThrough.IsSome() {
			return matchedVirtual
		}
		panic(fmt.Sprintf("primal: node %d stays without a match", id))
	default:
		panic(fmt.Sprintf("primal: obstacle names shrinking node %d", id))
	}
}

// ResolveConflict applies the alternating-tree transition demanded by a
// Conflict obstacle: grow a tree over a matched pair, augment between
// trees, form a blossom inside one tree, or match against the boundary.
func (ns *Nodes) ResolveConflict(d core.DualDriver, obs core.Obstacle) {
	if obs.Kind != core.ObstacleConflict {
		panic(fmt.Sprintf("primal: ResolveConflict on %v", obs))
	}
	a := conflictSide{node: obs.Node1, touch: obs.Touch1, vertex: obs.Vertex1}
	b := conflictSide{node: obs.Node2, touch: obs.Touch2, vertex: obs.Vertex2}
	if a.node.IsNone() {
		a, b = b, a
	}
	if a.node.IsNone() {
		panic("primal: conflict between two virtual vertices")
	}
	ns.ensureKnown(a.node.MustGet())
	if b.node.IsSome() {
		ns.ensureKnown(b.node.MustGet())
	}

	if b.node.IsNone() {
		ns.conflictWithVirtual(d, a, b.vertex)
		return
	}

	ca, cb := ns.classify(a.node.MustGet()), ns.classify(b.node.MustGet())
	if ca != outerPlus {
		a, b = b, a
		ca, cb = cb, ca
	}
	if ca != outerPlus {
		panic(fmt.Sprintf("primal: conflict between nodes %v and %v, neither growing", a.node, b.node))
	}

	switch cb {
	case matchedPeer:
		ns.growTree(d, a, b)
	case matchedVirtual:
		// Steal the boundary-matched node: augmenting through it releases
		// its virtual vertex at zero cost.
		ns.augmentPair(d, a, b)
	case outerPlus:
		if ns.rootOf(a.node.MustGet()) == ns.rootOf(b.node.MustGet()) {
			ns.formBlossom(d, a, b)
		} else {
			ns.augmentPair(d, a, b)
		}
	}
}

// conflictWithVirtual matches a growing node against a virtual boundary
// vertex and dissolves its alternating tree.
func (ns *Nodes) conflictWithVirtual(d core.DualDriver, a conflictSide, virtualVertex core.VertexIndex) {
	id := a.node.MustGet()
	if ns.classify(id) != outerPlus {
		panic(fmt.Sprintf("primal: virtual conflict names non-growing node %d", id))
	}
	n := ns.node(id)
	parent, children := n.parent, n.firstChild
	ns.temporaryMatchVirtualVertex(d, id, a.touch.MustGet(), a.vertex, virtualVertex)
	ns.augmentFrom(d, parent, children)
}

// growTree attaches a matched pair below a growing node: the matched node
// becomes a shrinking child, its partner a growing grandchild.
func (ns *Nodes) growTree(d core.DualDriver, plus, matched conflictSide) {
	p := plus.node.MustGet()
	m := matched.node.MustGet()
	mn := ns.node(m)
	q := mn.sibling.MustGet()

	pn := ns.node(p)
	mn.parent = core.Some(p)
	mn.sibling = pn.firstChild
	pn.firstChild = core.Some(m)
	mn.link = Link{
		Touch:       matched.touch,
		Through:     core.Some(matched.vertex),
		PeerTouch:   plus.touch,
		PeerThrough: core.Some(plus.vertex),
	}
	ns.setGrowState(d, m, core.Shrink)

	// The partner's link already records the matched edge towards m.
	qn := ns.node(q)
	qn.parent = core.Some(m)
	qn.sibling = core.None[core.NodeIndex]()
	mn.firstChild = core.Some(q)
	ns.setGrowState(d, q, core.Grow)
}

// augmentPair matches the two conflicting nodes and dissolves both of
// their alternating trees into matched pairs.
func (ns *Nodes) augmentPair(d core.DualDriver, a, b conflictSide) {
	na, nb := a.node.MustGet(), b.node.MustGet()
	an, bn := ns.node(na), ns.node(nb)
	aParent, aChildren := an.parent, an.firstChild
	bParent, bChildren := bn.parent, bn.firstChild
	ns.temporaryMatch(d, na, nb,
		a.touch.MustGet(), b.touch.MustGet(), a.vertex, b.vertex)
	ns.augmentFrom(d, aParent, aChildren)
	ns.augmentFrom(d, bParent, bChildren)
}

// augmentFrom dissolves the alternating tree around a node that was just
// matched externally, given the tree links the node held before the
// match. Children subtrees pair back up; the upward path alternates, each
// shrinking node pairing with its growing parent through the formerly
// unmatched tree edge.
func (ns *Nodes) augmentFrom(d core.DualDriver, parent, firstChild core.Option[core.NodeIndex]) {
	for c := firstChild; c.IsSome(); {
		id := c.MustGet()
		next := ns.node(id).sibling
		ns.freePair(d, id)
		c = next
	}
	p := parent
	for p.IsSome() {
		m := p.MustGet() // shrinking node on the path
		mn := ns.node(m)
		pp := mn.parent.MustGet() // its growing parent
		ppn := ns.node(pp)
		ppParent := ppn.parent
		for c := ppn.firstChild; c.IsSome(); {
			id := c.MustGet()
			next := ns.node(id).sibling
			if id != m {
				ns.freePair(d, id)
			}
			c = next
		}
		ns.matchPairByLink(d, m, pp)
		p = ppParent
	}
}

// freePair restores the temporary match of a shrinking tree node and its
// growing child, recursing through the child's subtrees first.
func (ns *Nodes) freePair(d core.DualDriver, m core.NodeIndex) {
	c := ns.node(m).firstChild.MustGet()
	for g := ns.node(c).firstChild; g.IsSome(); {
		id := g.MustGet()
		next := ns.node(id).sibling
		ns.freePair(d, id)
		g = next
	}
	ns.matchPairByLink(d, c, m)
}

// matchPairByLink temporarily matches x to y through the touch recorded
// in x's link (x's side first).
func (ns *Nodes) matchPairByLink(d core.DualDriver, x, y core.NodeIndex) {
	l := ns.node(x).link
	ns.temporaryMatch(d, x, y,
		l.Touch.MustGet(), l.PeerTouch.MustGet(),
		l.Through.MustGet(), l.PeerThrough.MustGet())
}

// temporaryMatch removes both nodes from any tree, freezes their growth
// and links them as mutual siblings with the symmetric touching record.
func (ns *Nodes) temporaryMatch(
	d core.DualDriver,
	node1, node2 core.NodeIndex,
	touch1, touch2 core.NodeIndex,
	vertex1, vertex2 core.VertexIndex,
) {
	ns.setGrowState(d, node1, core.Stay)
	ns.setGrowState(d, node2, core.Stay)
	n1 := ns.node(node1)
	n1.removeFromAlternatingTree()
	n1.sibling = core.Some(node2)
	n1.link = Link{
		Touch:       core.Some(touch1),
		Through:     core.Some(vertex1),
		PeerTouch:   core.Some(touch2),
		PeerThrough: core.Some(vertex2),
	}
	n2 := ns.node(node2)
	n2.removeFromAlternatingTree()
	n2.sibling = core.Some(node1)
	n2.link = Link{
		Touch:       core.Some(touch2),
		Through:     core.Some(vertex2),
		PeerTouch:   core.Some(touch1),
		PeerThrough: core.Some(vertex1),
	}
}

// temporaryMatchVirtualVertex is the boundary analogue: the peer side is
// absent except for the virtual vertex itself.
func (ns *Nodes) temporaryMatchVirtualVertex(
	d core.DualDriver,
	node, touch core.NodeIndex,
	vertex, virtualVertex core.VertexIndex,
) {
	ns.setGrowState(d, node, core.Stay)
	n := ns.node(node)
	n.removeFromAlternatingTree()
	n.sibling = core.None[core.NodeIndex]()
	n.link = Link{
		Touch:       core.Some(touch),
		Through:     core.Some(vertex),
		PeerTouch:   core.None[core.NodeIndex](),
		PeerThrough: core.Some(virtualVertex),
	}
}
