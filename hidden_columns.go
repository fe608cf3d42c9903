// Package hiddencols manages the hidden columns of an alignment view.
//
// A HiddenColumns value holds an ordered set of hidden column regions and
// translates between two coordinate spaces: absolute columns, as stored in the
// underlying sequence data, and visible columns, as shown to a user with the
// hidden columns removed. Column numbering starts at 0 throughout.
//
// To walk the collection, or the visible columns around it, use one of the
// iterators:
//
//   - BoundedIterator: hidden regions within some bounds, in absolute positions
//   - StartRegionIterator: start positions of hidden regions, in visible positions
//   - VisibleContigsIterator: visible runs within a range, in absolute positions
//   - VisibleColumnsIterator: individual visible columns
//
// All iterators work on a snapshot taken when they are created, so they stay
// valid while the HiddenColumns is modified.
package hiddencols

import (
	"iter"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

const hashMultiplier = 31

// SelectionSink receives columns that become visible and selected when hidden
// regions are revealed.
type SelectionSink interface {
	AddElement(col int)
}

// Options configures a HiddenColumns instance.
type Options struct {
	// Logger receives debug events for mutations. Nil disables logging.
	Logger *zerolog.Logger
}

// HiddenColumns is the collection of hidden column regions of an alignment.
// It is safe for concurrent use.
//
// Methods that change the regions take the write lock and reposition the
// cursor before releasing it. Methods that only read take the read lock.
type HiddenColumns struct {
	mu sync.RWMutex

	// regions holds disjoint, non-adjacent [start, end] ranges in ascending order
	regions []Region

	// numColumns caches the total width of regions
	numColumns int

	cursor *cursor
	log    zerolog.Logger
}

// New creates an empty HiddenColumns.
func New() *HiddenColumns {
	return NewWithOptions(Options{})
}

// NewWithOptions creates an empty HiddenColumns with the given options.
func NewWithOptions(opts Options) *HiddenColumns {
	h := &HiddenColumns{
		cursor: newCursor(),
		log:    zerolog.Nop(),
	}
	if opts.Logger != nil {
		h.log = opts.Logger.With().Str("cmp", "hiddencols").Logger()
	}
	return h
}

// Copy returns an independent copy of h.
func (h *HiddenColumns) Copy() *HiddenColumns {
	h.mu.RLock()
	defer h.mu.RUnlock()

	c := &HiddenColumns{
		regions:    copyRegions(h.regions),
		numColumns: h.numColumns,
		cursor:     newCursor(),
		log:        h.log,
	}
	return c
}

// CopyWithin returns an independent HiddenColumns holding the regions of h
// that lie entirely within [start, end], with offset subtracted from every
// region bound. It is used to carry hidden regions over to a cropped view whose
// first column is offset.
func (h *HiddenColumns) CopyWithin(start, end, offset int) *HiddenColumns {
	h.mu.RLock()
	defer h.mu.RUnlock()

	c := &HiddenColumns{
		cursor: newCursor(),
		log:    h.log,
	}

	// The bounded search returns overlapping regions; only contained ones are copied
	for _, r := range h.regions[firstOverlapping(h.regions, start):] {
		if r.Start > end {
			break
		}
		if r.Start >= start && r.End <= end {
			c.regions = append(c.regions, Region{Start: r.Start - offset, End: r.End - offset})
			c.numColumns += r.Width()
		}
	}
	return c
}

// Size returns the total number of hidden columns.
func (h *HiddenColumns) Size() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.numColumns
}

// NumberOfRegions returns the number of distinct hidden regions.
func (h *HiddenColumns) NumberOfRegions() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.regions)
}

// HasHiddenColumns reports whether any columns are hidden.
func (h *HiddenColumns) HasHiddenColumns() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.regions) > 0
}

// HasMultipleRegions reports whether there is more than one hidden region.
func (h *HiddenColumns) HasMultipleRegions() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.regions) > 1
}

// Regions returns a copy of the hidden regions in ascending order.
func (h *HiddenColumns) Regions() []Region {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return copyRegions(h.regions)
}

// All returns an iterator over a snapshot of the hidden regions.
func (h *HiddenColumns) All() iter.Seq[Region] {
	regions := h.Regions()
	return func(yield func(Region) bool) {
		for _, r := range regions {
			if !yield(r) {
				return
			}
		}
	}
}

// VisibleToAbsoluteColumn returns the absolute column for a visible column.
func (h *HiddenColumns) VisibleToAbsoluteColumn(col int) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.visibleToAbsoluteUnlocked(col)
}

func (h *HiddenColumns) visibleToAbsoluteUnlocked(col int) int {
	if len(h.regions) == 0 {
		return col
	}
	return col + h.cursor.locate(h.regions, col, VisibleMode).HiddenSoFar
}

// AbsoluteToVisibleColumn returns the position at which an absolute column
// appears in the view. If the column is hidden, the visible column just to the
// left of its hidden region is returned, or 0 when the region starts at
// column 0.
func (h *HiddenColumns) AbsoluteToVisibleColumn(col int) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.absoluteToVisibleUnlocked(col)
}

func (h *HiddenColumns) absoluteToVisibleUnlocked(col int) int {
	if len(h.regions) == 0 {
		return col
	}

	pos := h.cursor.locate(h.regions, col, AbsoluteMode)
	if pos.RegionIndex < len(h.regions) {
		// The located region contains col or lies to its right
		r := h.regions[pos.RegionIndex]
		if col >= r.Start {
			if r.Start == 0 {
				return 0
			}
			return r.Start - 1 - pos.HiddenSoFar
		}
	}
	return col - pos.HiddenSoFar
}

// OffsetByVisibleColumns returns the absolute column that lies distance
// visible columns to the right (positive) or left (negative) of the absolute
// column from. If from is hidden, counting starts at the visible column on
// the left of its hidden region. The result may be negative when counting
// runs off the left edge.
func (h *HiddenColumns) OffsetByVisibleColumns(distance, from int) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	start := h.absoluteToVisibleUnlocked(from)
	return h.visibleToAbsoluteUnlocked(start + distance)
}

// IsVisible reports whether the absolute column col is visible.
func (h *HiddenColumns) IsVisible(col int) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.isVisibleUnlocked(col)
}

func (h *HiddenColumns) isVisibleUnlocked(col int) bool {
	if len(h.regions) == 0 {
		return true
	}
	idx := h.cursor.locate(h.regions, col, AbsoluteMode).RegionIndex
	// The located region already satisfies col <= End
	return idx >= len(h.regions) || col < h.regions[idx].Start
}

// VisibleStartAndEndIndex returns the first and last visible absolute columns
// of an alignment that is width columns wide.
func (h *HiddenColumns) VisibleStartAndEndIndex(width int) (int, int) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	firstVisible := 0
	lastVisible := width - 1

	if len(h.regions) > 0 {
		firstVisible = h.visibleToAbsoluteUnlocked(0)

		// The last visible column precedes the last region only if that region
		// runs to the end of the alignment
		last := h.regions[len(h.regions)-1]
		if last.End == width-1 {
			lastVisible = last.Start - 1
		}
	}
	return firstVisible, lastVisible
}

// RegionsToString formats the regions as start<between>end pairs separated by
// delimiter, for example "3--7,10--10".
func (h *HiddenColumns) RegionsToString(delimiter, between string) string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var sb strings.Builder
	for i, r := range h.regions {
		if i > 0 {
			sb.WriteString(delimiter)
		}
		sb.WriteString(strconv.Itoa(r.Start))
		sb.WriteString(between)
		sb.WriteString(strconv.Itoa(r.End))
	}
	return sb.String()
}

// String returns the regions in the form "[3, 5] [10, 12]".
func (h *HiddenColumns) String() string {
	regions := h.Regions()
	parts := make([]string, len(regions))
	for i, r := range regions {
		parts[i] = r.String()
	}
	return strings.Join(parts, " ")
}

// Equal reports whether h and other hide exactly the same regions.
func (h *HiddenColumns) Equal(other *HiddenColumns) bool {
	if other == nil {
		return false
	}
	if other == h {
		return true
	}

	// Snapshot other first so the two locks are never held together
	theirs := other.Regions()

	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(theirs) != len(h.regions) {
		return false
	}
	for i, r := range h.regions {
		if r != theirs[i] {
			return false
		}
	}
	return true
}

// Hash returns a hash code built from the region bounds. Equal collections
// have equal hashes.
func (h *HiddenColumns) Hash() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	hash := 1
	for _, r := range h.regions {
		hash = hashMultiplier*hash + r.Start
		hash = hashMultiplier*hash + r.End
	}
	return hash
}
