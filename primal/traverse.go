package primal

import (
	"fmt"

	"github.com/katalvlaran/mwpm/core"
)

// OuterOf climbs parent links from an inner node until an outer node is
// reached. For an outer node it returns the input. O(nesting depth).
func (ns *Nodes) OuterOf(id core.NodeIndex) core.NodeIndex {
	for !ns.node(id).isOuter() {
		id = ns.node(id).parent.MustGet()
	}
	return id
}

// SecondOuterOf returns the last inner node below the outer ancestor
// `outer`: the direct cycle member of `outer` whose subtree contains id.
// Used when expanding matchings across a touch. O(nesting depth).
func (ns *Nodes) SecondOuterOf(id, outer core.NodeIndex) core.NodeIndex {
	for {
		parent := ns.node(id).parent
		if parent.IsNone() {
			panic(fmt.Sprintf("primal: node %d is not nested under %d", id, outer))
		}
		if parent.MustGet() == outer {
			return id
		}
		id = parent.MustGet()
	}
}

// IterateBlossomChildren walks the odd cycle of a blossom from its entry
// point, invoking f with each member and the member's link to its cycle
// successor. The chain terminates with an absent sibling; the cycle is
// closed through the last member's link back to the entry point.
// The odd-length ≥ 3 assumption is checked.
func (ns *Nodes) IterateBlossomChildren(blossom core.NodeIndex, f func(member core.NodeIndex, link Link)) {
	if !ns.IsBlossom(blossom) {
		panic(fmt.Sprintf("primal: node %d is not a blossom", blossom))
	}
	count := 0
	child := ns.firstBlossomChild[int(blossom)-ns.capacity]
	for child.IsSome() {
		id := child.MustGet()
		n := ns.node(id)
		f(id, n.link)
		count++
		child = n.sibling
	}
	if count < 3 || count%2 == 0 {
		panic(fmt.Sprintf("primal: blossom %d cycle has %d members, want odd ≥ 3", blossom, count))
	}
}

// cycleSucc returns the cycle successor of member m inside blossom,
// wrapping from the chain end back to the entry point.
func (ns *Nodes) cycleSucc(blossom, m core.NodeIndex) core.NodeIndex {
	if s, ok := ns.node(m).sibling.Get(); ok {
		return s
	}
	return ns.firstBlossomChild[int(blossom)-ns.capacity].MustGet()
}

// IterateMembers reports the direct cycle members of a blossom.
// Part of the core.BlossomMembership contract.
func (ns *Nodes) IterateMembers(blossom core.NodeIndex, f func(member core.NodeIndex)) {
	ns.IterateBlossomChildren(blossom, func(member core.NodeIndex, _ Link) { f(member) })
}

// IterateDefectRoots reports every defect reachable under a node: the
// node itself when it is a defect, otherwise the roots of all nested
// members. Part of the core.BlossomMembership contract.
func (ns *Nodes) IterateDefectRoots(node core.NodeIndex, f func(root core.NodeIndex)) {
	if !ns.IsBlossom(node) {
		f(node)
		return
	}
	ns.IterateMembers(node, func(member core.NodeIndex) {
		ns.IterateDefectRoots(member, f)
	})
}

// rootOf climbs tree parents of an outer node to its alternating-tree
// root (a free node is its own root).
func (ns *Nodes) rootOf(id core.NodeIndex) core.NodeIndex {
	for {
		p := ns.node(id).parent
		if p.IsNone() {
			return id
		}
		id = p.MustGet()
	}
}
