package primal

import (
	"fmt"

	"github.com/katalvlaran/mwpm/core"
)

// collectAncestors fills dst with the tree path id → root (inclusive).
func (ns *Nodes) collectAncestors(id core.NodeIndex, dst []core.NodeIndex) []core.NodeIndex {
	dst = dst[:0]
	for {
		dst = append(dst, id)
		p := ns.node(id).parent
		if p.IsNone() {
			return dst
		}
		id = p.MustGet()
	}
}

// formBlossom contracts the odd cycle between two growing nodes of one
// tree into a fresh blossom node. The cycle runs from node a up to the
// lowest common ancestor, down to node b, and closes through the
// conflicting edge. Each member's link ends up pointing at its cycle
// successor; the blossom takes the ancestor's place in the tree and
// starts growing.
func (ns *Nodes) formBlossom(d core.DualDriver, a, b conflictSide) {
	n1 := a.node.MustGet()
	n2 := b.node.MustGet()

	ns.pathA = ns.collectAncestors(n1, ns.pathA)
	ns.pathB = ns.collectAncestors(n2, ns.pathB)
	ia, ib := -1, -1
	for i, x := range ns.pathA {
		for j, y := range ns.pathB {
			if x == y {
				ia, ib = i, j
				break
			}
		}
		if ia >= 0 {
			break
		}
	}
	if ia < 0 {
		panic(fmt.Sprintf("primal: nodes %d and %d share no tree root", n1, n2))
	}
	lca := ns.pathA[ia]
	lcaNode := ns.node(lca)
	savedParent := lcaNode.parent
	savedTreeSibling := lcaNode.sibling
	savedLink := lcaNode.link

	closing := Link{
		Touch:       b.touch,
		Through:     core.Some(b.vertex),
		PeerTouch:   a.touch,
		PeerThrough: core.Some(a.vertex),
	}

	// Rewrite links so every member points at its cycle successor.
	// Ascending members already do (their link is the edge to the
	// parent); the ancestor and the descending side take the reverse of
	// the link one step closer to n2, which is still untouched when read.
	if ib > 0 {
		lcaNode.link = ns.node(ns.pathB[ib-1]).link.reversed()
		for j := ib - 1; j >= 1; j-- {
			ns.node(ns.pathB[j]).link = ns.node(ns.pathB[j-1]).link.reversed()
		}
		ns.node(n2).link = closing
	} else {
		// lca == n2: the ancestor itself closes the cycle back to n1.
		lcaNode.link = closing
	}

	// Member list in cycle order.
	members := ns.cycle[:0]
	for j := 0; j <= ia; j++ {
		members = append(members, cycleEntry{id: ns.pathA[j]})
	}
	for j := ib - 1; j >= 0; j-- {
		members = append(members, cycleEntry{id: ns.pathB[j]})
	}
	k := len(members)
	if k < 3 || k%2 == 0 {
		panic(fmt.Sprintf("primal: blossom cycle of %d members between %d and %d", k, n1, n2))
	}

	blossom := ns.AllocateBlossom(n1)

	for _, m := range members {
		ns.inCycle[m.id] = true
	}
	// Re-parent members' off-cycle tree children to the blossom.
	bFirst := core.None[core.NodeIndex]()
	for _, m := range members {
		for c := ns.node(m.id).firstChild; c.IsSome(); {
			id := c.MustGet()
			cn := ns.node(id)
			next := cn.sibling
			if !ns.inCycle[id] {
				cn.parent = core.Some(blossom)
				cn.sibling = bFirst
				bFirst = core.Some(id)
			}
			c = next
		}
	}
	for _, m := range members {
		ns.inCycle[m.id] = false
	}

	// Members become inner: no grow state, parent is the blossom,
	// sibling chains the cycle (the last member ends the chain).
	for i, m := range members {
		mn := ns.node(m.id)
		mn.grow = core.None[core.GrowState]()
		mn.parent = core.Some(blossom)
		mn.firstChild = core.None[core.NodeIndex]()
		if i+1 < k {
			mn.sibling = core.Some(members[i+1].id)
		} else {
			mn.sibling = core.None[core.NodeIndex]()
		}
	}

	// The blossom replaces the ancestor in the tree and starts growing.
	bn := ns.node(blossom)
	bn.grow = core.Some(core.Grow)
	bn.parent = savedParent
	bn.firstChild = bFirst
	bn.link = savedLink
	if p, ok := savedParent.Get(); ok {
		pn := ns.node(p)
		if fc, _ := pn.firstChild.Get(); fc == lca {
			pn.firstChild = core.Some(blossom)
		} else {
			x := pn.firstChild.MustGet()
			for {
				xn := ns.node(x)
				if s, _ := xn.sibling.Get(); s == lca {
					xn.sibling = core.Some(blossom)
					break
				}
				x = xn.sibling.MustGet()
			}
		}
		bn.sibling = savedTreeSibling
	} else {
		bn.sibling = core.None[core.NodeIndex]()
	}

	d.CreateBlossom(blossom, ns)
}

// ExpandBlossom restores the odd cycle of a shrinking blossom that
// reached dual zero: the members along the even arc between the parent
// touch and the child touch become the new tree branch, the remaining
// members pair back up, and the blossom slot is disposed.
func (ns *Nodes) ExpandBlossom(d core.DualDriver, blossom core.NodeIndex) {
	bn := ns.node(blossom)
	if state, ok := bn.grow.Get(); !ok || state != core.Shrink {
		panic(fmt.Sprintf("primal: expanding blossom %d that is not shrinking", blossom))
	}
	parent := bn.parent
	treeSibling := bn.sibling
	parentLink := bn.link
	child := bn.firstChild.MustGet() // the blossom's growing tree child
	childNode := ns.node(child)

	touchParent := parentLink.Touch.MustGet()
	touchChild := childNode.link.PeerTouch.MustGet()

	// Snapshot the cycle: the rewiring below overwrites member links.
	cyc := ns.cycle[:0]
	ns.IterateBlossomChildren(blossom, func(member core.NodeIndex, link Link) {
		cyc = append(cyc, cycleEntry{id: member, link: link})
	})
	k := len(cyc)

	mp := ns.SecondOuterOf(touchParent, blossom)
	mc := ns.SecondOuterOf(touchChild, blossom)
	ip, ic := -1, -1
	for i, e := range cyc {
		if e.id == mp {
			ip = i
		}
		if e.id == mc {
			ic = i
		}
	}
	if ip < 0 || ic < 0 {
		panic(fmt.Sprintf("primal: blossom %d touches %d/%d outside its cycle", blossom, mp, mc))
	}

	// Rewire vertex ownership back to the members before any speed change.
	d.ExpandBlossom(blossom, ns)

	forwardLen := (ic - ip + k) % k
	forward := forwardLen%2 == 0
	branchLen := forwardLen + 1
	if !forward {
		branchLen = k - forwardLen + 1
	}
	at := func(j int) int {
		if forward {
			return (ip + j) % k
		}
		return ((ip-j)%k + k) % k
	}

	// Root of the new branch replaces the blossom under its tree parent.
	mpn := ns.node(mp)
	mpn.parent = parent
	mpn.link = parentLink
	mpn.firstChild = core.None[core.NodeIndex]()
	if p, ok := parent.Get(); ok {
		pn := ns.node(p)
		if fc, _ := pn.firstChild.Get(); fc == blossom {
			pn.firstChild = core.Some(mp)
		} else {
			x := pn.firstChild.MustGet()
			for {
				xn := ns.node(x)
				if s, _ := xn.sibling.Get(); s == blossom {
					xn.sibling = core.Some(mp)
					break
				}
				x = xn.sibling.MustGet()
			}
		}
	}
	mpn.sibling = treeSibling
	ns.setGrowState(d, mp, core.Shrink)

	prev := mp
	for j := 1; j < branchLen; j++ {
		y := cyc[at(j)].id
		yn := ns.node(y)
		yn.parent = core.Some(prev)
		ns.node(prev).firstChild = core.Some(y)
		yn.sibling = core.None[core.NodeIndex]()
		yn.firstChild = core.None[core.NodeIndex]()
		if forward {
			yn.link = cyc[at(j-1)].link.reversed()
		} else {
			yn.link = cyc[at(j)].link
		}
		if j%2 == 1 {
			ns.setGrowState(d, y, core.Grow)
		} else {
			ns.setGrowState(d, y, core.Shrink)
		}
		prev = y
	}

	// The branch end takes over the blossom's matched child.
	ns.node(prev).firstChild = core.Some(child)
	childNode.parent = core.Some(prev)

	// Remaining members pair up along the cycle-forward direction, each
	// pair matched through the first member's cycle link.
	start := (ip + 1) % k
	if forward {
		start = (ic + 1) % k
	}
	rest := k - branchLen
	if rest%2 != 0 {
		panic(fmt.Sprintf("primal: blossom %d leaves %d unpaired members", blossom, rest))
	}
	for j := 0; j < rest; j += 2 {
		x := cyc[(start+j)%k]
		y := cyc[(start+j+1)%k]
		ns.temporaryMatch(d, x.id, y.id,
			x.link.Touch.MustGet(), x.link.PeerTouch.MustGet(),
			x.link.Through.MustGet(), x.link.PeerThrough.MustGet())
	}

	ns.DisposeBlossom(blossom)
}
