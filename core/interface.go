package core

// MatchTarget identifies what a node (or defect) is matched to: a peer
// node or a virtual boundary vertex at zero additional cost.
type MatchTarget struct {
	peer    Option[NodeIndex]
	virtual Option[VertexIndex]
}

// PeerTarget builds a target naming a matched peer node.
func PeerTarget(n NodeIndex) MatchTarget {
	return MatchTarget{peer: Some(n), virtual: None[VertexIndex]()}
}

// VirtualTarget builds a target naming a virtual boundary vertex.
func VirtualTarget(v VertexIndex) MatchTarget {
	return MatchTarget{peer: None[NodeIndex](), virtual: Some(v)}
}

// Peer returns the matched peer node, if the target is a peer match.
func (t MatchTarget) Peer() (NodeIndex, bool) { return t.peer.Get() }

// Virtual returns the virtual vertex, if the target is a virtual match.
func (t MatchTarget) Virtual() (VertexIndex, bool) { return t.virtual.Get() }

// BlossomMembership lets the dual walk the primal's blossom structure
// without owning it: direct cycle members of a blossom, and the defect
// roots reachable under any node (the node itself when it is a defect).
type BlossomMembership interface {
	IterateMembers(blossom NodeIndex, f func(member NodeIndex))
	IterateDefectRoots(node NodeIndex, f func(root NodeIndex))
}

// DualDriver is the narrow contract the primal module depends on.
//
//   - SetGrowState propagates a node's speed to every vertex it owns.
//   - AddDefect registers a syndrome vertex under a fresh node index.
//   - CreateBlossom rewires ownership of all member regions to blossom.
//   - ExpandBlossom is the inverse, using the primal's stored membership.
//   - FindObstacle runs one detection cycle and returns the reduced
//     obstacle.
//   - Grow advances dual time; the length must not exceed the last
//     reported GrowLength.
type DualDriver interface {
	SetGrowState(node NodeIndex, state GrowState)
	AddDefect(vertex VertexIndex, node NodeIndex)
	CreateBlossom(blossom NodeIndex, members BlossomMembership)
	ExpandBlossom(blossom NodeIndex, members BlossomMembership)
	FindObstacle() Obstacle
	Grow(length Weight)
}
