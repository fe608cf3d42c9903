package hiddencols

// region_ops.go contains the methods that add and remove hidden regions.

import (
	"slices"

	"github.com/bits-and-blooms/bitset"
)

// HideColumns hides the absolute columns [start, end], merging with any
// hidden region the range overlaps or touches.
func (h *HiddenColumns) HideColumns(start, end int) error {
	if err := validateRange(start, end); err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.hideUnlocked(start, end)
	h.log.Debug().
		Int("start", start).
		Int("end", end).
		Int("regions", len(h.regions)).
		Int("hidden", h.numColumns).
		Msg("hide columns")
	return nil
}

// HideList hides each range in turn. Every range is validated before any is
// applied, so an invalid range leaves the collection unchanged.
func (h *HiddenColumns) HideList(ranges []Region) error {
	for _, r := range ranges {
		if err := validateRange(r.Start, r.End); err != nil {
			return err
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, r := range ranges {
		h.hideUnlocked(r.Start, r.End)
	}
	h.cursor.reset(0, 0)
	h.log.Debug().
		Int("ranges", len(ranges)).
		Int("regions", len(h.regions)).
		Int("hidden", h.numColumns).
		Msg("hide list")
	return nil
}

// HideBits hides the columns whose bits are set.
func (h *HiddenColumns) HideBits(bits *bitset.BitSet) {
	if bits == nil || bits.None() {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.hideBitsUnlocked(bits, 0, int(bits.Len())-1)
}

// ClearAndHideColumns makes every column in [start, end] visible, then hides
// the columns in that range whose bits are set. Bits outside the range are
// ignored. Both steps happen under one lock.
func (h *HiddenColumns) ClearAndHideColumns(bits *bitset.BitSet, start, end int) error {
	if err := validateRange(start, end); err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.clearRangeUnlocked(start, end)
	if bits != nil {
		h.hideBitsUnlocked(bits, start, end)
	}
	h.log.Debug().
		Int("start", start).
		Int("end", end).
		Int("regions", len(h.regions)).
		Int("hidden", h.numColumns).
		Msg("clear and hide columns")
	return nil
}

// ClearRange makes every column in [start, end] visible, whatever its current
// state. Regions inside the range are removed and regions crossing its bounds
// are truncated.
func (h *HiddenColumns) ClearRange(start, end int) error {
	if err := validateRange(start, end); err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.clearRangeUnlocked(start, end)
	h.log.Debug().
		Int("start", start).
		Int("end", end).
		Int("hidden", h.numColumns).
		Msg("clear range")
	return nil
}

// RevealAllHiddenColumns makes every column visible. Each previously hidden
// column is reported to sink, in ascending order, after the lock is released.
func (h *HiddenColumns) RevealAllHiddenColumns(sink SelectionSink) {
	h.mu.Lock()
	revealed := h.regions
	h.regions = nil
	h.numColumns = 0
	h.cursor.reset(0, 0)
	h.log.Debug().Int("regions", len(revealed)).Msg("reveal all hidden columns")
	h.mu.Unlock()

	notify(sink, revealed...)
}

// RevealHiddenColumns reveals the hidden region that starts at the absolute
// column start and reports its columns to sink. If no region starts exactly
// at start, nothing happens.
func (h *HiddenColumns) RevealHiddenColumns(start int, sink SelectionSink) {
	region, ok := h.removeRegionStartingAt(start)
	if ok {
		notify(sink, region)
	}
}

// removeRegionStartingAt removes and returns the region starting at start.
func (h *HiddenColumns) removeRegionStartingAt(start int) (Region, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.regions) == 0 {
		return Region{}, false
	}

	pos := h.cursor.locate(h.regions, start, AbsoluteMode)
	if pos.RegionIndex >= len(h.regions) {
		return Region{}, false
	}

	// The located region either contains start or lies to its right
	region := h.regions[pos.RegionIndex]
	if region.Start != start {
		return Region{}, false
	}

	h.regions = slices.Delete(h.regions, pos.RegionIndex, pos.RegionIndex+1)
	h.numColumns -= region.Width()
	h.cursor.reset(pos.RegionIndex, pos.HiddenSoFar)
	h.log.Debug().
		Int("start", region.Start).
		Int("end", region.End).
		Int("hidden", h.numColumns).
		Msg("reveal hidden columns")
	return region, true
}

// AndNot removes from the hidden set every column whose bit is set in mask.
func (h *HiddenColumns) AndNot(mask *bitset.BitSet) {
	if mask == nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.regions) == 0 {
		return
	}

	hidden := bitset.New(uint(h.regions[len(h.regions)-1].End + 1))
	for _, r := range h.regions {
		for col := r.Start; col <= r.End; col++ {
			hidden.Set(uint(col))
		}
	}
	hidden.InPlaceDifference(mask)

	h.regions = nil
	h.numColumns = 0
	h.hideBitsUnlocked(hidden, 0, int(hidden.Len())-1)
	h.log.Debug().
		Int("regions", len(h.regions)).
		Int("hidden", h.numColumns).
		Msg("and not")
}

// hideUnlocked inserts [start, end] into the regions. The range must be valid.
func (h *HiddenColumns) hideUnlocked(start, end int) {
	prevIndex := 0
	prevHidden := 0
	index := 0

	if len(h.regions) > 0 {
		// Set up the cursor reset values
		pos := h.cursor.locate(h.regions, start, AbsoluteMode)
		index = pos.RegionIndex
		if index > 0 {
			prevIndex = index - 1
			prevHidden = pos.HiddenSoFar - h.regions[prevIndex].Width()
		}
	}

	if len(h.regions) == 0 || start > h.regions[len(h.regions)-1].End+1 {
		// New range follows everything else
		h.regions = append(h.regions, Region{Start: start, End: end})
		h.numColumns += end - start + 1
	} else {
		// The region before index may end just before start, so try it first
		added := false
		if index > 0 {
			added = h.insertRangeAtRegion(index-1, start, end)
		}
		if !added && index < len(h.regions) {
			h.insertRangeAtRegion(index, start, end)
		}
	}

	// Regions before prevIndex are untouched, so this position stays valid
	h.cursor.reset(prevIndex, prevHidden)
}

// insertRangeAtRegion inserts [start, end] at region i if the range can be
// placed there, and reports whether it was.
func (h *HiddenColumns) insertRangeAtRegion(i, start, end int) bool {
	region := h.regions[i]

	switch {
	case end < region.Start-1:
		// Discontiguous range preceding the region
		h.regions = slices.Insert(h.regions, i, Region{Start: start, End: end})
		h.numColumns += end - start + 1
		return true

	case end <= region.End:
		// Range overlaps the region or touches it on the left; only the start moves
		newStart := min(region.Start, start)
		h.numColumns += region.Start - newStart
		h.regions[i].Start = newStart
		return true

	case start <= region.End+1:
		// Range overlaps the region or touches it on the right
		h.insertRangeAtOverlap(i, start, end)
		return true
	}
	return false
}

// insertRangeAtOverlap extends region i to cover [start, end] and absorbs every
// following region that the extended range overlaps or touches.
func (h *HiddenColumns) insertRangeAtOverlap(i, start, end int) {
	region := h.regions[i]
	oldStart := region.Start
	oldEnd := region.End
	region.Start = min(region.Start, start)
	region.End = max(region.End, end)

	h.numColumns += oldStart - region.Start

	last := i
	for last < len(h.regions)-1 {
		next := h.regions[last+1]
		if next.Start > end+1 {
			// Gap to the next region
			break
		}
		h.numColumns -= next.Width()
		region.End = max(next.End, end)
		last++
	}
	h.numColumns += region.End - oldEnd

	h.regions[i] = region
	h.regions = slices.Delete(h.regions, i+1, last+1)
}

// hideBitsUnlocked hides every run of set bits within [start, end].
func (h *HiddenColumns) hideBitsUnlocked(bits *bitset.BitSet, start, end int) {
	start = max(start, 0)
	if end < start {
		return
	}

	first, ok := bits.NextSet(uint(start))
	for ok && int(first) <= end {
		runEnd := int(bits.Len()) - 1
		next, found := bits.NextClear(first)
		if found {
			runEnd = int(next) - 1
		}
		runEnd = min(runEnd, end)

		h.hideUnlocked(int(first), runEnd)

		if !found || runEnd >= end {
			break
		}
		first, ok = bits.NextSet(next)
	}
	h.cursor.reset(0, 0)
}

// clearRangeUnlocked makes [start, end] visible. The range must be valid.
func (h *HiddenColumns) clearRangeUnlocked(start, end int) {
	if len(h.regions) == 0 {
		return
	}

	pos := h.cursor.locate(h.regions, start, AbsoluteMode)
	index := pos.RegionIndex
	if index >= len(h.regions) {
		return
	}

	// The located region either contains start or lies to its right
	region := h.regions[index]
	if region.Start < start {
		left := Region{Start: region.Start, End: start - 1}
		if region.End > end {
			// Range lies strictly inside the region: split it in two
			right := Region{Start: end + 1, End: region.End}
			h.numColumns -= end - start + 1
			h.regions = slices.Replace(h.regions, index, index+1, left, right)
			h.cursor.reset(pos.RegionIndex, pos.HiddenSoFar)
			return
		}

		// Region contains start; truncate so that it ends just before start
		h.numColumns -= region.End - start + 1
		h.regions[index] = left
		index++
	}

	last := index
	for last < len(h.regions) {
		region = h.regions[last]
		if region.End > end {
			if region.Start <= end {
				// Region contains end; truncate so that it starts just after end
				h.numColumns -= end - region.Start + 1
				h.regions[last].Start = end + 1
			}
			break
		}
		h.numColumns -= region.Width()
		last++
	}
	h.regions = slices.Delete(h.regions, index, last)

	// Regions before the located one are unchanged
	h.cursor.reset(pos.RegionIndex, pos.HiddenSoFar)
}

// notify reports every column of regions to sink.
func notify(sink SelectionSink, regions ...Region) {
	if sink == nil {
		return
	}
	for _, r := range regions {
		for col := r.Start; col <= r.End; col++ {
			sink.AddElement(col)
		}
	}
}
