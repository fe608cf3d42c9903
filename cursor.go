package hiddencols

import "sync/atomic"

// cursor caches the last location used in the interval store so that
// spatially local queries avoid rescanning from the first region.
//
// The cached position is only a hint. locate always produces the same answer
// as a linear scan from region 0; the hint only shortens the walk. The hint
// is stored atomically because readers holding the shared lock update it
// concurrently.
type cursor struct {
	hint atomic.Pointer[CursorPosition]
}

// newCursor creates a cursor positioned at the first region.
func newCursor() *cursor {
	c := &cursor{}
	c.reset(0, 0)
	return c
}

// reset repositions the cursor. Callers must pass a position that is valid
// for the current regions.
func (c *cursor) reset(index, hiddenSoFar int) {
	c.hint.Store(&CursorPosition{RegionIndex: index, HiddenSoFar: hiddenSoFar})
}

// position returns the cached position.
func (c *cursor) position() CursorPosition {
	if p := c.hint.Load(); p != nil {
		return *p
	}
	return CursorPosition{}
}

// passed reports whether a query for column should move past region r,
// given the hidden column count before r.
//
// In absolute mode a region is passed once it ends before the column, so the
// located region is the one containing the column or the first one to its
// right. In visible mode the column must be shifted by the hidden count before
// comparing with absolute region bounds; a region is passed once it starts at
// or before the shifted column.
func passed(r Region, column, hiddenBefore int, mode CoordinateMode) bool {
	if mode == VisibleMode {
		return r.Start <= column+hiddenBefore
	}
	return r.End < column
}

// locate finds the region for column and caches the result as the new hint.
//
// In absolute mode the result is the first region whose end is at or after
// column, with the count of hidden columns before it. In visible mode the
// result is the first region that starts after the absolute position of the
// visible column, so HiddenSoFar is the offset from visible to absolute.
func (c *cursor) locate(regions []Region, column int, mode CoordinateMode) CursorPosition {
	if len(regions) == 0 {
		return CursorPosition{}
	}

	pos := c.position()
	if pos.RegionIndex > len(regions) || pos.RegionIndex < 0 {
		// Stale hint, start again from the left
		pos = CursorPosition{}
	}

	if column < regions[0].Start {
		pos = CursorPosition{}
	} else {
		// Step backward while the previous region should not have been passed
		for pos.RegionIndex > 0 {
			prev := regions[pos.RegionIndex-1]
			before := pos.HiddenSoFar - prev.Width()
			if passed(prev, column, before, mode) {
				break
			}
			pos.RegionIndex--
			pos.HiddenSoFar = before
		}

		// Step forward past every region that lies at or before the column
		for pos.RegionIndex < len(regions) {
			r := regions[pos.RegionIndex]
			if !passed(r, column, pos.HiddenSoFar, mode) {
				break
			}
			pos.HiddenSoFar += r.Width()
			pos.RegionIndex++
		}
	}

	c.hint.Store(&pos)
	return pos
}

// scan computes the locate result with a linear walk from region 0 and no hint.
func scan(regions []Region, column int, mode CoordinateMode) CursorPosition {
	var pos CursorPosition
	for pos.RegionIndex < len(regions) {
		r := regions[pos.RegionIndex]
		if !passed(r, column, pos.HiddenSoFar, mode) {
			break
		}
		pos.HiddenSoFar += r.Width()
		pos.RegionIndex++
	}
	return pos
}
