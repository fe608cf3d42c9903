package hiddencols

import "iter"

// RegionIterator yields column ranges in ascending order.
type RegionIterator interface {
	// HasNext reports whether Next will return another range.
	HasNext() bool

	// Next returns the next range, or ErrIteratorDone when there are no more.
	Next() (Region, error)
}

// RangeIterator iterates over a private copy of hidden regions.
type RangeIterator struct {
	regions []Region
	next    int
}

func newRangeIterator(regions []Region) *RangeIterator {
	return &RangeIterator{regions: regions}
}

// HasNext reports whether Next will return another region.
func (it *RangeIterator) HasNext() bool {
	return it.next < len(it.regions)
}

// Next returns the next region.
func (it *RangeIterator) Next() (Region, error) {
	if !it.HasNext() {
		return Region{}, ErrIteratorDone
	}
	r := it.regions[it.next]
	it.next++
	return r, nil
}

// Iterator returns an iterator over every hidden region.
func (h *HiddenColumns) Iterator() *RangeIterator {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return newRangeIterator(copyRegions(h.regions))
}

// BoundedIterator returns an iterator over the hidden regions that overlap
// the absolute columns [lo, hi]. Regions that cross either bound are returned
// whole.
func (h *HiddenColumns) BoundedIterator(lo, hi int) *RangeIterator {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var regions []Region
	for _, r := range h.regions[firstOverlapping(h.regions, lo):] {
		if r.Start > hi {
			break
		}
		regions = append(regions, r)
	}
	return newRangeIterator(regions)
}

// VisibleContigsIterator iterates over maximal runs of visible columns.
type VisibleContigsIterator struct {
	blocks       []Region
	endsAtHidden []bool
	next         int
}

// HasNext reports whether Next will return another block.
func (it *VisibleContigsIterator) HasNext() bool {
	return it.next < len(it.blocks)
}

// Next returns the next visible block in absolute columns.
func (it *VisibleContigsIterator) Next() (Region, error) {
	if !it.HasNext() {
		return Region{}, ErrIteratorDone
	}
	b := it.blocks[it.next]
	it.next++
	return b, nil
}

// EndsAtHidden reports whether the block most recently returned by Next is
// immediately followed by a hidden region. It is false before the first call
// to Next.
func (it *VisibleContigsIterator) EndsAtHidden() bool {
	if it.next == 0 {
		return false
	}
	return it.endsAtHidden[it.next-1]
}

// VisibleContigsIterator returns an iterator over the visible blocks of the
// columns [start, end). The blocks are always absolute column ranges; when
// useVisible is true start and end are given in visible columns and are
// converted first.
func (h *HiddenColumns) VisibleContigsIterator(start, end int, useVisible bool) *VisibleContigsIterator {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if useVisible {
		start = h.visibleToAbsoluteUnlocked(start)
		end = h.visibleToAbsoluteUnlocked(end)
	}

	it := &VisibleContigsIterator{}
	if end <= start {
		return it
	}

	blockStart := start
	nextHidden := -1
	for _, r := range h.regions[firstOverlapping(h.regions, start):] {
		if r.Start >= end {
			nextHidden = r.Start
			break
		}
		if r.Start > blockStart {
			it.blocks = append(it.blocks, Region{Start: blockStart, End: r.Start - 1})
			it.endsAtHidden = append(it.endsAtHidden, true)
		}
		blockStart = max(blockStart, r.End+1)
	}

	if blockStart < end {
		it.blocks = append(it.blocks, Region{Start: blockStart, End: end - 1})
		it.endsAtHidden = append(it.endsAtHidden, nextHidden == end)
	}
	return it
}

// StartRegionIterator iterates over the visible positions at which hidden
// regions start.
type StartRegionIterator struct {
	positions []int
	next      int
}

// HasNext reports whether Next will return another position.
func (it *StartRegionIterator) HasNext() bool {
	return it.next < len(it.positions)
}

// Next returns the next visible start position.
func (it *StartRegionIterator) Next() (int, error) {
	if !it.HasNext() {
		return 0, ErrIteratorDone
	}
	p := it.positions[it.next]
	it.next++
	return p, nil
}

// StartRegionIterator returns an iterator over the visible start positions of
// the hidden regions inside the visible window [start, end]. A region's
// visible start is the visible column its first hidden column would occupy.
func (h *HiddenColumns) StartRegionIterator(start, end int) *StartRegionIterator {
	return h.StartRegionIteratorFrom(nil, start, end)
}

// StartRegionIteratorFrom is StartRegionIterator with a search hint. pos must
// have come from PositionOf on this HiddenColumns with no mutation since; a
// nil pos searches from the first region.
func (h *HiddenColumns) StartRegionIteratorFrom(pos *CursorPosition, start, end int) *StartRegionIterator {
	h.mu.RLock()
	defer h.mu.RUnlock()

	it := &StartRegionIterator{}
	if len(h.regions) == 0 {
		return it
	}

	absStart := h.visibleToAbsoluteUnlocked(start)

	c := h.cursor
	if pos != nil {
		c = &cursor{}
		c.reset(pos.RegionIndex, pos.HiddenSoFar)
	}
	at := c.locate(h.regions, absStart-1, AbsoluteMode)

	hidden := at.HiddenSoFar
	for _, r := range h.regions[at.RegionIndex:] {
		if r.Start > end+hidden {
			break
		}
		it.positions = append(it.positions, r.Start-hidden)
		hidden += r.Width()
	}
	return it
}

// PositionOf returns the cursor position for the absolute column col: the
// index of the first region ending at or after col and the number of hidden
// columns before that region.
func (h *HiddenColumns) PositionOf(col int) CursorPosition {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.cursor.locate(h.regions, col, AbsoluteMode)
}

// ColumnIterator expands the ranges of a RegionIterator into single columns.
// Ranges are pulled from the underlying iterator only as they are needed.
type ColumnIterator struct {
	ranges  RegionIterator
	current Region
	next    int
	active  bool
}

// NewColumnIterator returns an iterator over every column of ranges.
func NewColumnIterator(ranges RegionIterator) *ColumnIterator {
	return &ColumnIterator{ranges: ranges}
}

// HasNext reports whether Next will return another column.
func (it *ColumnIterator) HasNext() bool {
	if it.active && it.next <= it.current.End {
		return true
	}
	it.active = false
	for it.ranges.HasNext() {
		r, err := it.ranges.Next()
		if err != nil {
			return false
		}
		if r.End >= r.Start {
			it.current = r
			it.next = r.Start
			it.active = true
			return true
		}
	}
	return false
}

// Next returns the next column.
func (it *ColumnIterator) Next() (int, error) {
	if !it.HasNext() {
		return 0, ErrIteratorDone
	}
	col := it.next
	it.next++
	return col, nil
}

// VisibleColumnsIterator returns an iterator over the visible absolute
// columns in [lo, hi].
func (h *HiddenColumns) VisibleColumnsIterator(lo, hi int) *ColumnIterator {
	return NewColumnIterator(h.VisibleContigsIterator(lo, hi+1, false))
}

// VisibleColumns returns the visible absolute columns in [lo, hi] as a
// sequence. The regions are read when the sequence is created, and the
// sequence may be ranged over more than once.
func (h *HiddenColumns) VisibleColumns(lo, hi int) iter.Seq[int] {
	blocks := h.VisibleContigsIterator(lo, hi+1, false).blocks
	return func(yield func(int) bool) {
		it := NewColumnIterator(newRangeIterator(blocks))
		for it.HasNext() {
			col, err := it.Next()
			if err != nil || !yield(col) {
				return
			}
		}
	}
}
