package hiddencols

import "fmt"

// Stats describes the current state of a HiddenColumns.
type Stats struct {
	Regions       int            // number of hidden regions
	HiddenColumns int            // total hidden columns
	Widest        Region         // widest region; zero if there are none
	Cursor        CursorPosition // last cached search position
}

// Stats returns a snapshot of the region and cursor state.
func (h *HiddenColumns) Stats() Stats {
	h.mu.RLock()
	defer h.mu.RUnlock()

	stats := Stats{
		Regions:       len(h.regions),
		HiddenColumns: h.numColumns,
		Cursor:        h.cursor.position(),
	}
	for i, r := range h.regions {
		if i == 0 || r.Width() > stats.Widest.Width() {
			stats.Widest = r
		}
	}
	return stats
}

// CheckInvariants verifies the internal consistency of h: regions ordered,
// disjoint and non-adjacent, the cached hidden count equal to a recount, and
// the cursor hint describing a real position. Any failure wraps
// ErrInvariantViolated.
func (h *HiddenColumns) CheckInvariants() error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for i, r := range h.regions {
		if r.Start < 0 || r.End < r.Start {
			return fmt.Errorf("%w: region %d is %v", ErrInvariantViolated, i, r)
		}
		if i > 0 && h.regions[i-1].End+1 >= r.Start {
			return fmt.Errorf("%w: region %d %v touches or precedes %v",
				ErrInvariantViolated, i, r, h.regions[i-1])
		}
	}

	if total := widthOf(h.regions); total != h.numColumns {
		return fmt.Errorf("%w: cached hidden count %d, regions hold %d",
			ErrInvariantViolated, h.numColumns, total)
	}

	pos := h.cursor.position()
	if pos.RegionIndex < 0 || pos.RegionIndex > len(h.regions) {
		return fmt.Errorf("%w: cursor index %d outside [0, %d]",
			ErrInvariantViolated, pos.RegionIndex, len(h.regions))
	}
	if before := widthOf(h.regions[:pos.RegionIndex]); before != pos.HiddenSoFar {
		return fmt.Errorf("%w: cursor at region %d counts %d hidden, want %d",
			ErrInvariantViolated, pos.RegionIndex, pos.HiddenSoFar, before)
	}
	return nil
}
