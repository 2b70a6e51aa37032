package tidy

import "github.com/sibaiper/tidy-tree/pkg/tree"

// separate resolves child i of parent id against the merged block of its
// left siblings. It walks the right contour of the block and the left
// contour of child i level by level, pushing child i right whenever the
// two come closer than the horizontal gap. The insertion-Y list head ih
// tells which earlier sibling owns each depth of the block's contour, so
// extra space can be distributed between the right siblings of that owner.
func (l *layouter) separate(id tree.NodeID, i int, ih iylRef) {
	n := l.t.Node(id)
	sr := n.Children[i-1]
	mssr := l.t.Node(sr).Mod
	cl := n.Children[i]
	mscl := l.t.Node(cl).Mod

	// The cursor walks the list without consuming it; entries stay live
	// for later separate calls on the same parent.
	cursor := ih

	for sr != tree.None && cl != tree.None {
		for cursor != iylNone && l.bottom(sr) > l.iyl[cursor].lowY {
			cursor = l.iyl[cursor].next
			l.stats.IYLScans++
		}

		srn, cln := l.t.Node(sr), l.t.Node(cl)
		dist := (mssr + srn.Prelim + srn.W + l.hGap) - (mscl + cln.Prelim)
		l.stats.DistanceChecks++

		if dist > 0 {
			mscl += dist
			si := i - 1
			if cursor != iylNone {
				si = l.iyl[cursor].index
			}
			l.moveSubtree(id, i, si, dist)
		}

		// Advance whichever contour ends higher; on a tie advance both.
		sy, cy := l.bottom(sr), l.bottom(cl)
		if sy <= cy {
			sr = l.nextRightContour(sr)
			if sr != tree.None {
				mssr += l.t.Node(sr).Mod
			}
			l.stats.ContourSteps++
		}
		if sy >= cy {
			cl = l.nextLeftContour(cl)
			if cl != tree.None {
				mscl += l.t.Node(cl).Mod
			}
			l.stats.ContourSteps++
		}
	}

	// One side ran out: the survivor is the taller subtree. Thread the
	// exhausted contour into it so later separates can keep walking.
	if sr == tree.None && cl != tree.None {
		l.setLeftThread(id, i, cl, mscl)
	} else if sr != tree.None && cl == tree.None {
		l.setRightThread(id, i, sr, mssr)
	}
}

// moveSubtree shifts child i of parent id right by dist. The shift is
// recorded in the child's mod (propagating to its whole subtree) and its
// extreme mod sums, then spread across the siblings between si and i.
func (l *layouter) moveSubtree(id tree.NodeID, i, si int, dist float64) {
	c := l.t.Node(l.t.Node(id).Children[i])
	c.Mod += dist
	c.MSEL += dist
	c.MSER += dist
	l.distributeExtra(id, i, si, dist)
	l.stats.SubtreeMoves++
}

// distributeExtra spreads dist evenly over the siblings strictly between
// si and i using the deferred shift/change encoding, which secondWalk's
// addChildSpacing later folds into their mods. No-op when the conflict
// was with the immediate left sibling.
func (l *layouter) distributeExtra(id tree.NodeID, i, si int, dist float64) {
	if si == i-1 {
		return
	}
	n := l.t.Node(id)
	nr := float64(i - si)
	l.t.Node(n.Children[si+1]).Shift += dist / nr
	l.t.Node(n.Children[i]).Shift -= dist / nr
	l.t.Node(n.Children[i]).Change -= dist - dist/nr
}

// setLeftThread links the left contour of the sibling block through to cl,
// the remainder of child i's deeper left contour. The thread target's mod
// is corrected so that following the thread keeps the accumulated mod sum
// right, and its prelim compensated so the node itself does not move.
func (l *layouter) setLeftThread(id tree.NodeID, i int, cl tree.NodeID, modsumcl float64) {
	n := l.t.Node(id)
	first := l.t.Node(n.Children[0])
	li := l.t.Node(first.EL)
	li.TL = cl
	diff := (modsumcl - l.t.Node(cl).Mod) - first.MSEL
	li.Mod += diff
	li.Prelim -= diff
	first.EL = l.t.Node(n.Children[i]).EL
	first.MSEL = l.t.Node(n.Children[i]).MSEL
	l.stats.ThreadsSet++
}

// setRightThread mirrors setLeftThread for the right contour: the block is
// taller, so child i's extreme right node is threaded into the block's
// remaining right contour sr.
func (l *layouter) setRightThread(id tree.NodeID, i int, sr tree.NodeID, modsumsr float64) {
	n := l.t.Node(id)
	cur := l.t.Node(n.Children[i])
	ri := l.t.Node(cur.ER)
	ri.TR = sr
	diff := (modsumsr - l.t.Node(sr).Mod) - cur.MSER
	ri.Mod += diff
	ri.Prelim -= diff
	cur.ER = l.t.Node(n.Children[i-1]).ER
	cur.MSER = l.t.Node(n.Children[i-1]).MSER
	l.stats.ThreadsSet++
}

// positionRoot centers a parent over the span from its first child's left
// edge to its last child's right edge, in the children's mod frames.
func (l *layouter) positionRoot(id tree.NodeID) {
	n := l.t.Node(id)
	first := l.t.Node(n.Children[0])
	last := l.t.Node(n.Children[len(n.Children)-1])
	n.Prelim = (first.Prelim+first.Mod+last.Mod+last.Prelim+last.W)/2 - n.W/2
}

// setExtremes records the extreme left and right descendants of the node's
// contour and their accumulated mod sums. For a leaf both extremes are the
// node itself.
func (l *layouter) setExtremes(id tree.NodeID) {
	n := l.t.Node(id)
	if n.IsLeaf() {
		n.EL, n.ER = id, id
		n.MSEL, n.MSER = 0, 0
		return
	}
	first := l.t.Node(n.Children[0])
	last := l.t.Node(n.Children[len(n.Children)-1])
	n.EL, n.MSEL = first.EL, first.MSEL
	n.ER, n.MSER = last.ER, last.MSER
}

// nextLeftContour returns the next node down the left contour: the first
// child, or the left thread when the node is a leaf.
func (l *layouter) nextLeftContour(id tree.NodeID) tree.NodeID {
	n := l.t.Node(id)
	if n.IsLeaf() {
		return n.TL
	}
	return n.Children[0]
}

// nextRightContour returns the next node down the right contour: the last
// child, or the right thread when the node is a leaf.
func (l *layouter) nextRightContour(id tree.NodeID) tree.NodeID {
	n := l.t.Node(id)
	if n.IsLeaf() {
		return n.TR
	}
	return n.Children[len(n.Children)-1]
}
