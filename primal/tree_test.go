package primal

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mwpm/core"
)

func conflict(n1, t1 core.NodeIndex, v1 core.VertexIndex, n2, t2 core.NodeIndex, v2 core.VertexIndex) core.Obstacle {
	return core.Obstacle{
		Kind:    core.ObstacleConflict,
		Node1:   core.Some(n1),
		Touch1:  core.Some(t1),
		Vertex1: v1,
		Node2:   core.Some(n2),
		Touch2:  core.Some(t2),
		Vertex2: v2,
	}
}

func TestTemporaryMatchIsSymmetric(t *testing.T) {
	ns := NewNodes(4)
	d := &recordingDriver{}
	ns.TouchDefect(0)
	ns.TouchDefect(1)

	ns.temporaryMatch(d, 0, 1, 0, 1, 10, 11)

	n0, n1 := ns.node(0), ns.node(1)
	require.True(t, n0.isMatched())
	require.True(t, n1.isMatched())
	require.Equal(t, core.Some(core.NodeIndex(1)), n0.sibling)
	require.Equal(t, core.Some(core.NodeIndex(0)), n1.sibling)
	require.Equal(t, core.Some(core.NodeIndex(0)), n0.link.Touch)
	require.Equal(t, core.Some(core.NodeIndex(1)), n0.link.PeerTouch)
	require.Equal(t, core.Some(core.VertexIndex(10)), n0.link.Through)
	require.Equal(t, core.Some(core.VertexIndex(11)), n0.link.PeerThrough)
	require.Equal(t, n0.link, n1.link.reversed())

	peer, ok := n0.matchTarget().Peer()
	require.True(t, ok)
	require.Equal(t, core.NodeIndex(1), peer)
}

func TestTemporaryMatchVirtualVertex(t *testing.T) {
	ns := NewNodes(4)
	d := &recordingDriver{}
	ns.TouchDefect(0)

	ns.temporaryMatchVirtualVertex(d, 0, 0, 5, 6)

	n := ns.node(0)
	require.True(t, n.isMatched())
	require.True(t, n.sibling.IsNone())
	vv, ok := n.matchTarget().Virtual()
	require.True(t, ok)
	require.Equal(t, core.VertexIndex(6), vv)
}

// TestGrowTree: a growing free node absorbs a matched pair as child and
// grandchild; states become Shrink and Grow respectively.
func TestGrowTree(t *testing.T) {
	ns := NewNodes(4)
	d := &recordingDriver{}
	for id := core.NodeIndex(0); id < 3; id++ {
		ns.TouchDefect(id)
	}
	ns.temporaryMatch(d, 1, 2, 1, 2, 11, 12)

	ns.ResolveConflict(d, conflict(0, 0, 10, 1, 1, 11))

	n0, n1, n2 := ns.node(0), ns.node(1), ns.node(2)
	require.Equal(t, core.Some(core.NodeIndex(1)), n0.firstChild)
	require.Equal(t, core.Some(core.NodeIndex(0)), n1.parent)
	require.Equal(t, core.Some(core.NodeIndex(2)), n1.firstChild)
	require.Equal(t, core.Some(core.NodeIndex(1)), n2.parent)
	require.Equal(t, core.Some(core.Grow), n0.grow)
	require.Equal(t, core.Some(core.Shrink), n1.grow)
	require.Equal(t, core.Some(core.Grow), n2.grow)
	// The grandchild keeps its match link towards its parent.
	require.Equal(t, core.Some(core.NodeIndex(2)), n2.link.Touch)
	require.Equal(t, core.Some(core.NodeIndex(1)), n2.link.PeerTouch)
}

// TestAugmentDissolvesTree: a conflict between the deep "+" node of a
// three-node tree and a free node flips the matching along the path and
// leaves only matched pairs behind.
func TestAugmentDissolvesTree(t *testing.T) {
	ns := NewNodes(8)
	d := &recordingDriver{}
	for id := core.NodeIndex(0); id < 4; id++ {
		ns.TouchDefect(id)
	}
	// Tree: 0(+) -> 1(-) -> 2(+); node 3 free.
	ns.temporaryMatch(d, 1, 2, 1, 2, 11, 12)
	ns.ResolveConflict(d, conflict(0, 0, 10, 1, 1, 11))
	// Free node 3 touches the deep "+" node 2.
	ns.ResolveConflict(d, conflict(2, 2, 22, 3, 3, 33))

	for id := core.NodeIndex(0); id < 4; id++ {
		n := ns.node(id)
		require.True(t, n.isMatched(), "node %d", id)
		require.False(t, n.inAlternatingTree(), "node %d", id)
		require.Equal(t, core.Some(core.Stay), n.grow, "node %d", id)
	}
	// Pairs: (2,3) across the conflict edge, (0,1) along the old path.
	require.Equal(t, core.Some(core.NodeIndex(3)), ns.node(2).sibling)
	require.Equal(t, core.Some(core.NodeIndex(2)), ns.node(3).sibling)
	require.Equal(t, core.Some(core.NodeIndex(1)), ns.node(0).sibling)
	require.Equal(t, core.Some(core.NodeIndex(0)), ns.node(1).sibling)
}

// TestAugmentBetweenTrees: a conflict between the deep "+" nodes of two
// distinct trees matches them across the conflict edge and re-pairs each
// root with its former "-" child along the path.
func TestAugmentBetweenTrees(t *testing.T) {
	ns := NewNodes(8)
	d := &recordingDriver{}
	for id := core.NodeIndex(0); id < 6; id++ {
		ns.TouchDefect(id)
	}
	// Tree A: 0(+) -> 1(-) -> 2(+); tree B: 3(+) -> 4(-) -> 5(+).
	ns.temporaryMatch(d, 1, 2, 1, 2, 11, 12)
	ns.ResolveConflict(d, conflict(0, 0, 10, 1, 1, 11))
	ns.temporaryMatch(d, 4, 5, 4, 5, 44, 55)
	ns.ResolveConflict(d, conflict(3, 3, 30, 4, 4, 44))

	// The two deep "+" nodes touch.
	ns.ResolveConflict(d, conflict(2, 2, 21, 5, 5, 51))

	require.Equal(t, core.Some(core.NodeIndex(5)), ns.node(2).sibling)
	require.Equal(t, core.Some(core.NodeIndex(1)), ns.node(0).sibling)
	require.Equal(t, core.Some(core.NodeIndex(4)), ns.node(3).sibling)
	for id := core.NodeIndex(0); id < 6; id++ {
		require.True(t, ns.node(id).isMatched(), "node %d", id)
	}
}

// TestStealFromVirtualMatch: a growing node conflicting with a node
// matched to the boundary takes it over; the boundary is released.
func TestStealFromVirtualMatch(t *testing.T) {
	ns := NewNodes(4)
	d := &recordingDriver{}
	ns.TouchDefect(0)
	ns.TouchDefect(1)
	ns.temporaryMatchVirtualVertex(d, 1, 1, 15, 16)

	ns.ResolveConflict(d, conflict(0, 0, 5, 1, 1, 15))

	require.Equal(t, core.Some(core.NodeIndex(1)), ns.node(0).sibling)
	require.Equal(t, core.Some(core.NodeIndex(0)), ns.node(1).sibling)
	_, virtual := ns.node(1).matchTarget().Virtual()
	require.False(t, virtual)
}

// TestConflictBetweenMatchedNodesIsFatal: both participants resting is a
// contract breach of the dual module.
func TestConflictBetweenMatchedNodesIsFatal(t *testing.T) {
	ns := NewNodes(8)
	d := &recordingDriver{}
	for id := core.NodeIndex(0); id < 4; id++ {
		ns.TouchDefect(id)
	}
	ns.temporaryMatch(d, 0, 1, 0, 1, 1, 2)
	ns.temporaryMatch(d, 2, 3, 2, 3, 3, 4)
	require.Panics(t, func() {
		ns.ResolveConflict(d, conflict(0, 0, 1, 2, 2, 3))
	})
}
