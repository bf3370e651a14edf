package primal

import (
	"fmt"

	"github.com/katalvlaran/mwpm/core"
)

type slot struct {
	node    Node
	present bool
}

type cycleEntry struct {
	id   core.NodeIndex
	link Link
}

// Nodes is the fixed-capacity primal store: capacity defect slots followed
// by capacity blossom slots. Two monotone counters gate access: the defect
// high-water mark and the bump pointer of the blossom half. Clearing
// resets the counters; slot contents become logically absent without
// being zeroed.
type Nodes struct {
	capacity      int
	buffer        []slot
	countDefects  int
	countBlossoms int

	// firstBlossomChild[b-capacity] is the entry point of blossom b's
	// odd cycle; the cycle itself is chained through member siblings.
	firstBlossomChild []core.Option[core.NodeIndex]

	// scratch areas sized once at construction; no allocation afterwards
	pathA   []core.NodeIndex
	pathB   []core.NodeIndex
	cycle   []cycleEntry
	inCycle []bool
}

// NewNodes builds an arena for at most capacity defects and capacity
// blossoms. Complexity: O(capacity) memory, allocated once.
func NewNodes(capacity int) *Nodes {
	if capacity <= 0 {
		panic(fmt.Sprintf("primal: arena capacity must be positive, got %d", capacity))
	}
	return &Nodes{
		capacity:          capacity,
		buffer:            make([]slot, 2*capacity),
		firstBlossomChild: make([]core.Option[core.NodeIndex], capacity),
		pathA:             make([]core.NodeIndex, 0, 2*capacity),
		pathB:             make([]core.NodeIndex, 0, 2*capacity),
		cycle:             make([]cycleEntry, 0, 2*capacity),
		inCycle:           make([]bool, 2*capacity),
	}
}

// Capacity returns N, the per-kind slot count.
func (ns *Nodes) Capacity() int { return ns.capacity }

// CountDefects is the defect high-water mark (ids ever mentioned).
func (ns *Nodes) CountDefects() int { return ns.countDefects }

// CountBlossoms is the number of blossoms allocated this episode.
func (ns *Nodes) CountBlossoms() int { return ns.countBlossoms }

// Clear resets both counters; contents become logically absent.
func (ns *Nodes) Clear() {
	ns.countDefects = 0
	ns.countBlossoms = 0
}

// IsBlossom reports whether id addresses the blossom half of the arena.
func (ns *Nodes) IsBlossom(id core.NodeIndex) bool {
	if int(id) >= 2*ns.capacity {
		panic(fmt.Sprintf("primal: node index %d overflows the %d-slot arena", id, 2*ns.capacity))
	}
	if int(id) < ns.capacity {
		return false
	}
	if int(id)-ns.capacity >= ns.countBlossoms {
		panic(fmt.Sprintf("primal: blossom %d was never allocated", id))
	}
	return true
}

// HasNode reports slot presence under the episode counters.
func (ns *Nodes) HasNode(id core.NodeIndex) bool {
	if int(id) >= 2*ns.capacity {
		return false
	}
	if int(id) < ns.capacity {
		return int(id) < ns.countDefects && ns.buffer[id].present
	}
	return int(id)-ns.capacity < ns.countBlossoms && ns.buffer[id].present
}

// node is the fail-fast accessor every operation goes through.
func (ns *Nodes) node(id core.NodeIndex) *Node {
	if !ns.HasNode(id) {
		panic(fmt.Sprintf("primal: node %d is absent", id))
	}
	return &ns.buffer[id].node
}

// TouchDefect makes sure defect slot id exists, creating a default
// growing node if absent. Slots between the old high-water mark and id
// stay absent: they are defects the pre-decoder elected not to report.
// This is called whenever an obstacle mentions a defect index.
func (ns *Nodes) TouchDefect(id core.NodeIndex) {
	if int(id) >= ns.capacity {
		panic(fmt.Sprintf("primal: defect %d outside the %d-defect arena", id, ns.capacity))
	}
	if int(id) >= ns.countDefects {
		for i := ns.countDefects; i <= int(id); i++ {
			ns.buffer[i].present = false
		}
		ns.countDefects = int(id) + 1
	}
	if !ns.buffer[id].present {
		ns.buffer[id] = slot{node: newNode(), present: true}
	}
}

// ensureKnown lazily creates defect records named by an obstacle.
// Blossoms must already exist: they are only ever created here.
func (ns *Nodes) ensureKnown(id core.NodeIndex) {
	if int(id) >= ns.capacity {
		ns.IsBlossom(id) // asserts allocation
		return
	}
	ns.TouchDefect(id)
}

// AllocateBlossom bump-allocates the next blossom slot with the given
// odd-cycle entry point and returns its id. Exhaustion is fatal: it
// means the arena was mis-sized for the decoding graph.
func (ns *Nodes) AllocateBlossom(firstChild core.NodeIndex) core.NodeIndex {
	if ns.countBlossoms >= ns.capacity {
		panic(fmt.Sprintf("primal: blossom arena exhausted (capacity %d)", ns.capacity))
	}
	id := core.NodeIndex(ns.capacity + ns.countBlossoms)
	ns.countBlossoms++
	ns.buffer[id] = slot{node: Node{grow: core.Some(core.Grow)}, present: true}
	ns.firstBlossomChild[int(id)-ns.capacity] = core.Some(firstChild)
	return id
}

// DisposeBlossom clears a blossom slot. The id is not reused within the
// current decoding episode.
func (ns *Nodes) DisposeBlossom(id core.NodeIndex) {
	if !ns.IsBlossom(id) {
		panic(fmt.Sprintf("primal: cannot dispose non-blossom node %d", id))
	}
	if !ns.buffer[id].present {
		panic(fmt.Sprintf("primal: blossom %d already disposed", id))
	}
	ns.buffer[id] = slot{}
	ns.firstBlossomChild[int(id)-ns.capacity] = core.None[core.NodeIndex]()
}

// GrowStateOf returns the grow state of an outer node.
func (ns *Nodes) GrowStateOf(id core.NodeIndex) core.GrowState {
	return ns.node(id).grow.MustGet()
}

// setGrowState updates the primal record and forwards the speed change
// to the dual so vertex speeds propagate.
func (ns *Nodes) setGrowState(d core.DualDriver, id core.NodeIndex, s core.GrowState) {
	ns.node(id).grow = core.Some(s)
	d.SetGrowState(id, s)
}
