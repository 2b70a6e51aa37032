package tidy

// The insertion-Y list (IYL) remembers, for the children already placed
// under one parent, which child's subtree still reaches down to a given
// depth: a chain of (lowY, index) pairs with strictly decreasing lowY from
// head to tail. When contour resolution finds an overlap at some depth, the
// list names the sibling index to distribute the move against.
//
// Entries live in a slice arena owned by the layouter and addressed by
// iylRef, so one layout call allocates a single backing array no matter
// how many per-parent lists it builds. Lists are persistent: update never
// mutates entries, it links a new head in front of the surviving tail.

// iylRef indexes the layouter's IYL arena. iylNone marks an empty list.
type iylRef int32

const iylNone iylRef = -1

type iylEntry struct {
	lowY  float64
	index int
	next  iylRef
}

// updateIYL drops every head entry dominated by the new bottom (an entry
// with lowY <= minY can never again be the deepest survivor) and prepends
// (minY, index). Each entry is pushed once and dropped at most once, which
// bounds total IYL work per parent by its child count.
func (l *layouter) updateIYL(head iylRef, minY float64, index int) iylRef {
	for head != iylNone && minY >= l.iyl[head].lowY {
		head = l.iyl[head].next
		l.stats.IYLDrops++
	}
	l.iyl = append(l.iyl, iylEntry{lowY: minY, index: index, next: head})
	l.stats.IYLPushes++
	return iylRef(len(l.iyl) - 1)
}
