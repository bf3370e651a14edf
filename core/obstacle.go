package core

import "fmt"

// ObstacleKind tags the variant carried by an Obstacle.
type ObstacleKind uint8

const (
	// ObstacleNone: nothing to report from this source.
	ObstacleNone ObstacleKind = iota
	// ObstacleGrowLength: the source permits this much further growth.
	ObstacleGrowLength
	// ObstacleConflict: a tight edge joins two distinct growing regions
	// (or a growing region and a virtual boundary vertex).
	ObstacleConflict
	// ObstacleBlossomExpand: a shrinking blossom reached dual zero.
	ObstacleBlossomExpand
)

// Obstacle is the next event the primal must handle. Exactly one variant
// is meaningful, selected by Kind:
//
//   - GrowLength: Length (MaxWeight saturates: no finite bound).
//   - Conflict:   Node/Touch/Vertex for both sides; an absent Node means
//     that side is a virtual boundary vertex (Vertex still names it).
//   - BlossomExpand: Blossom.
type Obstacle struct {
	Kind    ObstacleKind
	Length  Weight
	Node1   Option[NodeIndex]
	Touch1  Option[NodeIndex]
	Vertex1 VertexIndex
	Node2   Option[NodeIndex]
	Touch2  Option[NodeIndex]
	Vertex2 VertexIndex
	Blossom NodeIndex
}

// NoObstacle is the neutral element of Reduce.
func NoObstacle() Obstacle { return Obstacle{Kind: ObstacleNone} }

// GrowLengthObstacle reports a permitted growth of length l.
func GrowLengthObstacle(l Weight) Obstacle {
	return Obstacle{Kind: ObstacleGrowLength, Length: l}
}

// BlossomExpandObstacle reports that blossom b must expand.
func BlossomExpandObstacle(b NodeIndex) Obstacle {
	return Obstacle{Kind: ObstacleBlossomExpand, Blossom: b}
}

// IsFinite reports whether the obstacle requires action from the primal:
// a conflict, an expansion, or a finite grow length.
func (o Obstacle) IsFinite() bool {
	switch o.Kind {
	case ObstacleConflict, ObstacleBlossomExpand:
		return true
	case ObstacleGrowLength:
		return o.Length < MaxWeight
	default:
		return false
	}
}

// tier maps the kind onto the urgency order used by Reduce.
// Conflicts outrank expansions outrank grow lengths outrank nothing.
func (o Obstacle) tier() int {
	switch o.Kind {
	case ObstacleConflict:
		return 0
	case ObstacleBlossomExpand:
		return 1
	case ObstacleGrowLength:
		return 2
	default:
		return 3
	}
}

// Reduce folds candidate cand into the running best obstacle.
// The order is total and deterministic: lower tier wins; among grow
// lengths the smaller length wins; on exact ties the earlier source wins
// (callers reduce in sweep order: vertices ascending, then edges).
func Reduce(best, cand Obstacle) Obstacle {
	bt, ct := best.tier(), cand.tier()
	if ct < bt {
		return cand
	}
	if ct == bt && ct == 2 && cand.Length < best.Length {
		return cand
	}
	return best
}

func (o Obstacle) String() string {
	switch o.Kind {
	case ObstacleNone:
		return "None"
	case ObstacleGrowLength:
		if o.Length == MaxWeight {
			return "GrowLength(max)"
		}
		return fmt.Sprintf("GrowLength(%d)", o.Length)
	case ObstacleConflict:
		return fmt.Sprintf("Conflict{%v/%v@%d, %v/%v@%d}",
			o.Node1, o.Touch1, o.Vertex1, o.Node2, o.Touch2, o.Vertex2)
	case ObstacleBlossomExpand:
		return fmt.Sprintf("BlossomNeedExpand(%d)", o.Blossom)
	default:
		return fmt.Sprintf("Obstacle(%d)", uint8(o.Kind))
	}
}
