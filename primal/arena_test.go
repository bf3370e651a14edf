package primal

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mwpm/core"
)

func TestTouchDefectCreatesLazily(t *testing.T) {
	ns := NewNodes(8)
	require.Equal(t, 0, ns.CountDefects())

	ns.TouchDefect(5)
	require.Equal(t, 6, ns.CountDefects())
	require.True(t, ns.HasNode(5))
	// Intermediate slots stay absent: defects the pre-decoder kept.
	for id := core.NodeIndex(0); id < 5; id++ {
		require.False(t, ns.HasNode(id), "slot %d", id)
	}

	// Touching again is idempotent.
	ns.TouchDefect(5)
	require.Equal(t, 6, ns.CountDefects())

	// A fresh defect starts growing, free, with an empty link.
	n := ns.node(5)
	require.Equal(t, core.Some(core.Grow), n.grow)
	require.True(t, n.isFree())
	require.False(t, n.isMatched())
}

func TestBlossomAllocationAndDisposal(t *testing.T) {
	ns := NewNodes(4)
	ns.TouchDefect(0)

	b := ns.AllocateBlossom(0)
	require.Equal(t, core.NodeIndex(4), b)
	require.True(t, ns.IsBlossom(b))
	require.False(t, ns.IsBlossom(0))
	require.Equal(t, 1, ns.CountBlossoms())

	ns.DisposeBlossom(b)
	require.False(t, ns.HasNode(b))
	// The id is not reused within the episode.
	b2 := ns.AllocateBlossom(0)
	require.Equal(t, core.NodeIndex(5), b2)
}

func TestBlossomArenaExhaustionIsFatal(t *testing.T) {
	ns := NewNodes(3)
	ns.TouchDefect(0)
	for i := 0; i < 3; i++ {
		ns.AllocateBlossom(0)
	}
	require.Panics(t, func() { ns.AllocateBlossom(0) })
}

func TestDisposeNonBlossomIsFatal(t *testing.T) {
	ns := NewNodes(3)
	ns.TouchDefect(1)
	require.Panics(t, func() { ns.DisposeBlossom(1) })
}

func TestAbsentNodeAccessIsFatal(t *testing.T) {
	ns := NewNodes(3)
	require.Panics(t, func() { ns.node(0) })
	ns.TouchDefect(2)
	require.Panics(t, func() { ns.node(1) }) // below the mark but absent
}

func TestClearResetsCountersLogically(t *testing.T) {
	ns := NewNodes(4)
	ns.TouchDefect(2)
	ns.AllocateBlossom(2)
	ns.Clear()
	require.Equal(t, 0, ns.CountDefects())
	require.Equal(t, 0, ns.CountBlossoms())
	require.False(t, ns.HasNode(2))

	// The arena is immediately reusable.
	ns.TouchDefect(0)
	require.True(t, ns.HasNode(0))
	require.Equal(t, core.NodeIndex(4), ns.AllocateBlossom(0))
}
