package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func conflictAt(v1, v2 VertexIndex) Obstacle {
	return Obstacle{
		Kind:    ObstacleConflict,
		Node1:   Some(NodeIndex(1)),
		Touch1:  Some(NodeIndex(1)),
		Vertex1: v1,
		Node2:   Some(NodeIndex(2)),
		Touch2:  Some(NodeIndex(2)),
		Vertex2: v2,
	}
}

// TestReduceTierOrder checks the urgency ladder: conflicts beat
// expansions beat finite grow lengths beat the neutral element.
func TestReduceTierOrder(t *testing.T) {
	conflict := conflictAt(3, 4)
	expand := BlossomExpandObstacle(9)
	grow := GrowLengthObstacle(100)

	require.Equal(t, conflict, Reduce(grow, conflict))
	require.Equal(t, conflict, Reduce(conflict, grow))
	require.Equal(t, conflict, Reduce(expand, conflict))
	require.Equal(t, conflict, Reduce(conflict, expand))
	require.Equal(t, expand, Reduce(grow, expand))
	require.Equal(t, grow, Reduce(NoObstacle(), grow))
	require.Equal(t, grow, Reduce(grow, NoObstacle()))
}

// TestReduceGrowLengths: the minimum finite length wins; saturated
// lengths lose to any smaller one.
func TestReduceGrowLengths(t *testing.T) {
	require.Equal(t, Weight(30), Reduce(GrowLengthObstacle(80), GrowLengthObstacle(30)).Length)
	require.Equal(t, Weight(30), Reduce(GrowLengthObstacle(30), GrowLengthObstacle(80)).Length)
	require.Equal(t, Weight(30), Reduce(GrowLengthObstacle(MaxWeight), GrowLengthObstacle(30)).Length)
}

// TestReduceFirstWinsOnTies: equal candidates keep the earlier source,
// which makes the reduction deterministic under a fixed sweep order.
func TestReduceFirstWinsOnTies(t *testing.T) {
	first := conflictAt(1, 2)
	second := conflictAt(7, 8)
	require.Equal(t, first, Reduce(first, second))

	sameLen := Reduce(GrowLengthObstacle(5), GrowLengthObstacle(5))
	require.Equal(t, Weight(5), sameLen.Length)
}

func TestObstacleIsFinite(t *testing.T) {
	require.False(t, NoObstacle().IsFinite())
	require.False(t, GrowLengthObstacle(MaxWeight).IsFinite())
	require.True(t, GrowLengthObstacle(1).IsFinite())
	require.True(t, conflictAt(0, 1).IsFinite())
	require.True(t, BlossomExpandObstacle(4).IsFinite())
}
