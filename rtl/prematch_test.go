package rtl_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mwpm/core"
	"github.com/katalvlaran/mwpm/rtl"
)

// TestPreMatchAdjacentPair: two growing defects across a single edge are
// offloaded the cycle the edge becomes tight, and no conflict surfaces.
func TestPreMatchAdjacentPair(t *testing.T) {
	_, m := repetition(t, 7, rtl.WithPreMatching())
	m.AddDefect(2, 0)
	m.AddDefect(3, 1)

	obs := m.FindObstacle()
	require.Equal(t, core.Weight(500), obs.Length) // joint speed 2 on the shared edge
	m.Grow(500)

	obs = m.FindObstacle()
	require.False(t, obs.IsFinite(), "offload must swallow the conflict, got %v", obs)
	pms := m.PreMatches()
	require.Len(t, pms, 1)
	require.Equal(t, core.NodeIndex(0), pms[0].Node1)
	require.Equal(t, core.VertexIndex(2), pms[0].Vertex1)
	require.Equal(t, core.Some(core.NodeIndex(1)), pms[0].Node2)
	require.Equal(t, core.VertexIndex(3), pms[0].Vertex2)
}

// TestPreMatchBlockedByContention: a middle defect with two tight edges
// in the same cycle is contended; nothing is offloaded and the conflict
// reaches the primal.
func TestPreMatchBlockedByContention(t *testing.T) {
	_, m := repetition(t, 7, rtl.WithPreMatching())
	m.AddDefect(2, 0)
	m.AddDefect(3, 1)
	m.AddDefect(4, 2)

	m.FindObstacle()
	m.Grow(500)
	obs := m.FindObstacle()
	require.Equal(t, core.ObstacleConflict, obs.Kind)
	require.Empty(t, m.PreMatches())
}

// TestPreMatchVirtualBoundary: the boundary variant offloads a defect
// touching a virtual vertex, suppressing the virtual conflict.
func TestPreMatchVirtualBoundary(t *testing.T) {
	_, m := repetition(t, 7, rtl.WithVirtualPreMatching())
	m.AddDefect(1, 0)

	obs := m.FindObstacle()
	require.Equal(t, core.Weight(1000), obs.Length)
	m.Grow(1000)

	obs = m.FindObstacle()
	require.False(t, obs.IsFinite())
	pms := m.PreMatches()
	require.Len(t, pms, 1)
	require.Equal(t, core.NodeIndex(0), pms[0].Node1)
	require.True(t, pms[0].Node2.IsNone())
	require.Equal(t, core.VertexIndex(0), pms[0].Vertex2)
}

// TestPreMatchCancellation: a third region reaching an offloaded pair
// reverses the offload; the surfaced conflict involves only real,
// growing regions and the pair's own conflict resurfaces.
func TestPreMatchCancellation(t *testing.T) {
	_, m := repetition(t, 11, rtl.WithPreMatching())
	m.AddDefect(5, 0)
	m.AddDefect(6, 1)
	m.AddDefect(8, 2)

	obs := m.FindObstacle()
	require.Equal(t, core.Weight(500), obs.Length)
	m.Grow(500)
	obs = m.FindObstacle()
	require.False(t, obs.IsFinite())
	require.Len(t, m.PreMatches(), 1) // pair (5,6) offloaded, 8 keeps growing

	for {
		obs = m.FindObstacle()
		if obs.Kind != core.ObstacleGrowLength {
			break
		}
		require.True(t, obs.IsFinite())
		m.Grow(obs.Length)
	}
	require.Equal(t, core.ObstacleConflict, obs.Kind)
	require.Empty(t, m.PreMatches(), "cancellation must drop the offloaded pair")
}
