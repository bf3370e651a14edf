package primal

import (
	"fmt"

	"github.com/katalvlaran/mwpm/core"
)

// recordingDriver satisfies core.DualDriver for unit tests: it records
// the instruction trace and otherwise does nothing.
type recordingDriver struct {
	trace []string
}

func (r *recordingDriver) SetGrowState(node core.NodeIndex, state core.GrowState) {
	r.trace = append(r.trace, fmt.Sprintf("speed %d %v", node, state))
}

func (r *recordingDriver) AddDefect(vertex core.VertexIndex, node core.NodeIndex) {
	r.trace = append(r.trace, fmt.Sprintf("defect %d %d", vertex, node))
}

func (r *recordingDriver) CreateBlossom(blossom core.NodeIndex, members core.BlossomMembership) {
	members.IterateMembers(blossom, func(member core.NodeIndex) {
		r.trace = append(r.trace, fmt.Sprintf("blossom %d <- %d", blossom, member))
	})
}

func (r *recordingDriver) ExpandBlossom(blossom core.NodeIndex, members core.BlossomMembership) {
	members.IterateMembers(blossom, func(member core.NodeIndex) {
		members.IterateDefectRoots(member, func(root core.NodeIndex) {
			r.trace = append(r.trace, fmt.Sprintf("expand %d: %d -> %d", blossom, root, member))
		})
	})
}

func (r *recordingDriver) FindObstacle() core.Obstacle { return core.NoObstacle() }

func (r *recordingDriver) Grow(core.Weight) {}
