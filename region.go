package hiddencols

import "fmt"

// Region is a closed interval [Start, End] of absolute column positions.
type Region struct {
	Start int
	End   int
}

// Width returns the number of columns covered by the region.
func (r Region) Width() int {
	return r.End - r.Start + 1
}

// Contains reports whether col lies inside the region.
func (r Region) Contains(col int) bool {
	return col >= r.Start && col <= r.End
}

// Overlaps reports whether the region shares at least one column with [lo, hi].
func (r Region) Overlaps(lo, hi int) bool {
	return r.End >= lo && r.Start <= hi
}

// String formats the region as "[start, end]".
func (r Region) String() string {
	return fmt.Sprintf("[%d, %d]", r.Start, r.End)
}

// validateRange checks that [start, end] is a legal range to hide or clear.
func validateRange(start, end int) error {
	if start < 0 || end < 0 {
		return fmt.Errorf("%w: [%d, %d]", ErrNegativeColumn, start, end)
	}
	if end < start {
		return fmt.Errorf("%w: end %d precedes start %d", ErrInvalidRange, end, start)
	}
	return nil
}

// copyRegions returns an independent copy of regions.
func copyRegions(regions []Region) []Region {
	if len(regions) == 0 {
		return nil
	}
	out := make([]Region, len(regions))
	copy(out, regions)
	return out
}

// widthOf sums the widths of regions.
func widthOf(regions []Region) int {
	total := 0
	for _, r := range regions {
		total += r.Width()
	}
	return total
}
