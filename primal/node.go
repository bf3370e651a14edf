package primal

import "github.com/katalvlaran/mwpm/core"

// Link records the physical contact of a matched or tree-adjacent pair:
// which inner defect on this side touches (Touch), through which vertex
// (Through), and the symmetric fields of the peer. A match against a
// virtual boundary vertex has PeerTouch absent and PeerThrough naming
// the virtual vertex.
type Link struct {
	Touch       core.Option[core.NodeIndex]
	PeerTouch   core.Option[core.NodeIndex]
	Through     core.Option[core.VertexIndex]
	PeerThrough core.Option[core.VertexIndex]
}

// isNone reports a fully absent link.
func (l Link) isNone() bool {
	return l.Touch.IsNone() && l.PeerTouch.IsNone() && l.Through.IsNone() && l.PeerThrough.IsNone()
}

// reversed swaps the two sides of the link.
func (l Link) reversed() Link {
	return Link{
		Touch:       l.PeerTouch,
		PeerTouch:   l.Touch,
		Through:     l.PeerThrough,
		PeerThrough: l.Through,
	}
}

// Node is one primal record. The chain fields are overloaded by role:
//
//   - parent: alternating-tree parent for an outer tree node; the
//     containing blossom for a blossom member.
//   - firstChild: first tree child for an outer node; first tree child
//     hung below a blossom for a blossom node (the blossom's own odd
//     cycle entry lives in the arena's auxiliary array).
//   - sibling: next child of the same tree parent for a tree node; the
//     matched peer for a temporarily matched node; the next member of
//     the odd cycle for a blossom member.
//
// grow is absent exactly when the node is an inner (blossom-member) node.
type Node struct {
	grow       core.Option[core.GrowState]
	parent     core.Option[core.NodeIndex]
	firstChild core.Option[core.NodeIndex]
	sibling    core.Option[core.NodeIndex]
	link       Link
}

func newNode() Node {
	return Node{grow: core.Some(core.Grow)}
}

// isOuter reports whether the node carries a grow state.
func (n *Node) isOuter() bool { return n.grow.IsSome() }

// inAlternatingTree reports tree membership of an outer node.
func (n *Node) inAlternatingTree() bool {
	return n.parent.IsSome() || n.firstChild.IsSome()
}

// isFree: not matched and not in any alternating tree.
func (n *Node) isFree() bool {
	return !n.inAlternatingTree() && n.link.Touch.IsNone()
}

// isMatched reports a match of either kind by the touch field; it does
// not tell them apart (matchTarget does: a peer match keeps sibling set,
// a virtual match leaves sibling absent).
func (n *Node) isMatched() bool {
	return !n.inAlternatingTree() && n.link.Touch.IsSome()
}

func (n *Node) removeFromAlternatingTree() {
	n.parent = core.None[core.NodeIndex]()
	n.firstChild = core.None[core.NodeIndex]()
}

// matchTarget resolves what a matched node is matched to.
func (n *Node) matchTarget() core.MatchTarget {
	if !n.isMatched() {
		panic("primal: matchTarget on an unmatched node")
	}
	if peer, ok := n.sibling.Get(); ok {
		return core.PeerTarget(peer)
	}
	return core.VirtualTarget(n.link.PeerThrough.MustGet())
}
