package primal

import (
	"fmt"

	"github.com/katalvlaran/mwpm/core"
)

// IterateIntermediateMatching walks outer nodes in ascending ID order
// (defects first, then blossoms) and reports each matched outer node
// exactly once: a peer match at its smaller ID end, a virtual match
// directly. Unmatched outer nodes are a contract breach after solving
// and are reported by UnmatchedOuter, not here.
func (ns *Nodes) IterateIntermediateMatching(f func(node core.NodeIndex, target core.MatchTarget)) {
	report := func(id core.NodeIndex) {
		n := ns.node(id)
		if !n.isOuter() || !n.isMatched() {
			return
		}
		target := n.matchTarget()
		if peer, ok := target.Peer(); ok && peer < id {
			return // already reported from the smaller end
		}
		f(id, target)
	}
	for i := 0; i < ns.countDefects; i++ {
		if ns.buffer[i].present {
			report(core.NodeIndex(i))
		}
	}
	for i := 0; i < ns.countBlossoms; i++ {
		id := core.NodeIndex(ns.capacity + i)
		if ns.buffer[id].present {
			report(id)
		}
	}
}

// IteratePerfectMatching refines the intermediate matching into per-defect
// pairings: every outer-level match is expanded through its touching
// defects, and each blossom on either side unrolls its odd cycle — the
// touching member passes upward, the remaining members pair among
// themselves through their cycle links.
func (ns *Nodes) IteratePerfectMatching(f func(defect core.NodeIndex, target core.MatchTarget)) {
	ns.IterateIntermediateMatching(func(id core.NodeIndex, target core.MatchTarget) {
		n := ns.node(id)
		touch := n.link.Touch.MustGet()
		if peer, ok := target.Peer(); ok {
			peerTouch := n.link.PeerTouch.MustGet()
			f(touch, core.PeerTarget(peerTouch))
			ns.expandMatching(f, id, touch)
			ns.expandMatching(f, peer, peerTouch)
			return
		}
		virtualVertex, _ := target.Virtual()
		f(touch, core.VirtualTarget(virtualVertex))
		ns.expandMatching(f, id, touch)
	})
}

// expandMatching emits the internal pairings of every blossom level
// between a touching defect and the outer node stopAt. At each level the
// touching member is left unpaired (it carries the match one level up);
// the other members pair consecutively around the cycle.
func (ns *Nodes) expandMatching(f func(defect core.NodeIndex, target core.MatchTarget), stopAt, touch core.NodeIndex) {
	m := touch
	for m != stopAt {
		blossom := ns.node(m).parent.MustGet()
		a := ns.cycleSucc(blossom, m)
		for a != m {
			b := ns.cycleSucc(blossom, a)
			link := ns.node(a).link // the cycle edge a → b
			ta := link.Touch.MustGet()
			tb := link.PeerTouch.MustGet()
			f(ta, core.PeerTarget(tb))
			ns.expandMatching(f, a, ta)
			ns.expandMatching(f, b, tb)
			a = ns.cycleSucc(blossom, b)
		}
		m = blossom
	}
}

// UnmatchedOuter returns the first present outer node that is not
// matched, if any. After a completed solve this must report none; the
// driver treats a hit as fatal.
func (ns *Nodes) UnmatchedOuter() (core.NodeIndex, bool) {
	found := core.NodeIndex(0)
	ok := false
	check := func(id core.NodeIndex) {
		if ok {
			return
		}
		n := ns.node(id)
		if n.isOuter() && !n.isMatched() {
			found, ok = id, true
		}
	}
	for i := 0; i < ns.countDefects; i++ {
		if ns.buffer[i].present {
			check(core.NodeIndex(i))
		}
	}
	for i := 0; i < ns.countBlossoms; i++ {
		id := core.NodeIndex(ns.capacity + i)
		if ns.buffer[id].present {
			check(id)
		}
	}
	if !ok {
		return 0, false
	}
	return found, true
}

// CheckBlossomCycles verifies the odd-length ≥ 3 invariant of every live
// blossom. Intended for tests and debug sweeps; violations are fatal.
func (ns *Nodes) CheckBlossomCycles() {
	for i := 0; i < ns.countBlossoms; i++ {
		id := core.NodeIndex(ns.capacity + i)
		if !ns.buffer[id].present {
			continue
		}
		count := 0
		ns.IterateBlossomChildren(id, func(core.NodeIndex, Link) { count++ })
		if count < 3 || count%2 == 0 {
			panic(fmt.Sprintf("primal: blossom %d cycle length %d", id, count))
		}
	}
}
