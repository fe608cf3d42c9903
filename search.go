package hiddencols

import "sort"

// NextHiddenBoundary returns the nearest hidden region boundary from the
// absolute column pos.
//
// Searching left returns the end of the last region that lies entirely before
// pos. Searching right returns the start of the first region after pos, or of
// the following region when pos is itself hidden. When there is no such
// region, pos is returned.
func (h *HiddenColumns) NextHiddenBoundary(left bool, pos int) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.regions) == 0 {
		return pos
	}

	index := h.cursor.locate(h.regions, pos, AbsoluteMode).RegionIndex
	if left {
		if index > 0 {
			return h.regions[index-1].End
		}
		return pos
	}

	if index < len(h.regions) {
		r := h.regions[index]
		if pos < r.Start {
			return r.Start
		}
		if pos <= r.End && index+1 < len(h.regions) {
			// pos is hidden, so skip to the next region
			return h.regions[index+1].Start
		}
	}
	return pos
}

// RegionWithEdgeAt returns the hidden region adjacent to the visible column
// col: the region ending just before it, or failing that the region starting
// just after it. This is the region a "reveal here" action at col acts on.
func (h *HiddenColumns) RegionWithEdgeAt(col int) (Region, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.regions) == 0 {
		return Region{}, false
	}

	abs := h.visibleToAbsoluteUnlocked(col)
	index := h.cursor.locate(h.regions, abs-1, AbsoluteMode).RegionIndex
	if index >= len(h.regions) {
		return Region{}, false
	}

	r := h.regions[index]
	if r.End == abs-1 || r.Start == abs+1 {
		return r, true
	}
	return Region{}, false
}

// firstOverlapping returns the index of the first region ending at or after
// col, or len(regions) if there is none.
func firstOverlapping(regions []Region, col int) int {
	return sort.Search(len(regions), func(i int) bool {
		return regions[i].End >= col
	})
}
