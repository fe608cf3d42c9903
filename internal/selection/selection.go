// Package selection tracks the columns a user has selected in an alignment
// view and links the selection to a hiddencols.HiddenColumns.
package selection

import (
	"slices"
	"sync"

	"github.com/bits-and-blooms/bitset"
	"github.com/phroun/hiddencols"
)

// ColumnSelection is an ordered set of selected absolute columns. Columns are
// kept in the order they were selected; a bitset answers membership queries.
// It is safe for concurrent use and implements hiddencols.SelectionSink, so
// revealed columns can be selected directly.
type ColumnSelection struct {
	mu       sync.Mutex
	order    []int
	selected *bitset.BitSet
}

var _ hiddencols.SelectionSink = (*ColumnSelection)(nil)

// New creates an empty selection.
func New() *ColumnSelection {
	return &ColumnSelection{selected: bitset.New(0)}
}

// Copy returns an independent copy of s.
func (s *ColumnSelection) Copy() *ColumnSelection {
	s.mu.Lock()
	defer s.mu.Unlock()

	return &ColumnSelection{
		order:    slices.Clone(s.order),
		selected: s.selected.Clone(),
	}
}

// AddElement selects col. Negative columns are ignored.
func (s *ColumnSelection) AddElement(col int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addUnlocked(col)
}

func (s *ColumnSelection) addUnlocked(col int) {
	if col < 0 || s.selected.Test(uint(col)) {
		return
	}
	s.order = append(s.order, col)
	s.selected.Set(uint(col))
}

// RemoveElement deselects col.
func (s *ColumnSelection) RemoveElement(col int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeUnlocked(col)
}

func (s *ColumnSelection) removeUnlocked(col int) {
	if col < 0 || !s.selected.Test(uint(col)) {
		return
	}
	s.order = slices.DeleteFunc(s.order, func(c int) bool { return c == col })
	s.selected.Clear(uint(col))
}

// RemoveElements deselects every column in [start, end].
func (s *ColumnSelection) RemoveElements(start, end int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for col := max(start, 0); col <= end; col++ {
		s.removeUnlocked(col)
	}
}

// Clear deselects everything.
func (s *ColumnSelection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearUnlocked()
}

func (s *ColumnSelection) clearUnlocked() {
	s.order = nil
	s.selected.ClearAll()
}

// Contains reports whether col is selected.
func (s *ColumnSelection) Contains(col int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return col >= 0 && s.selected.Test(uint(col))
}

// IsEmpty reports whether no columns are selected.
func (s *ColumnSelection) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order) == 0
}

// Len returns the number of selected columns.
func (s *ColumnSelection) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// Selected returns the selected columns in selection order.
func (s *ColumnSelection) Selected() []int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.order) == 0 {
		return nil
	}
	return slices.Clone(s.order)
}

// Ranges returns the selected columns as ascending runs.
func (s *ColumnSelection) Ranges() []hiddencols.Region {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rangesUnlocked()
}

func (s *ColumnSelection) rangesUnlocked() []hiddencols.Region {
	var ranges []hiddencols.Region
	start, ok := s.selected.NextSet(0)
	for ok {
		end := int(s.selected.Len()) - 1
		next, found := s.selected.NextClear(start)
		if found {
			end = int(next) - 1
		}
		ranges = append(ranges, hiddencols.Region{Start: int(start), End: end})
		if !found {
			break
		}
		start, ok = s.selected.NextSet(next)
	}
	return ranges
}

// Min returns the lowest selected column.
func (s *ColumnSelection) Min() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	col, ok := s.selected.NextSet(0)
	return int(col), ok
}

// Max returns the highest selected column.
func (s *ColumnSelection) Max() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.order) == 0 {
		return 0, false
	}
	return slices.Max(s.order), true
}

// HideSelectedColumns hides every selected column in hc and clears the
// selection.
func (s *ColumnSelection) HideSelectedColumns(hc *hiddencols.HiddenColumns) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := hc.HideList(s.rangesUnlocked()); err != nil {
		return err
	}
	s.clearUnlocked()
	return nil
}

// HideSelectedColumnsAt hides col together with the run of selected columns
// around it, and deselects them.
func (s *ColumnSelection) HideSelectedColumnsAt(col int, hc *hiddencols.HiddenColumns) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.removeUnlocked(col)

	lo := col
	for lo-1 >= 0 && s.selected.Test(uint(lo-1)) {
		lo--
		s.removeUnlocked(lo)
	}
	hi := col
	for s.selected.Test(uint(hi + 1)) {
		hi++
		s.removeUnlocked(hi)
	}

	return hc.HideColumns(lo, hi)
}

// InvertColumnSelection inverts the selection of the columns
// [first, first+width). Hidden columns are never newly selected.
func (s *ColumnSelection) InvertColumnSelection(first, width int, hc *hiddencols.HiddenColumns) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for col := max(first, 0); col < first+width; col++ {
		switch {
		case s.selected.Test(uint(col)):
			s.removeUnlocked(col)
		case hc == nil || hc.IsVisible(col):
			s.addUnlocked(col)
		}
	}
}

// SetElementsFrom replaces the selection with the columns of other that are
// visible in hc.
func (s *ColumnSelection) SetElementsFrom(other *ColumnSelection, hc *hiddencols.HiddenColumns) {
	cols := other.Selected()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.clearUnlocked()
	for _, col := range cols {
		if hc == nil || hc.IsVisible(col) {
			s.addUnlocked(col)
		}
	}
}

// CompensateForEdits shifts every selected column at or after start left by
// change, following an edit of the alignment. A negative change shifts right.
// Columns moved below zero are dropped.
func (s *ColumnSelection) CompensateForEdits(start, change int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	shifted := bitset.New(s.selected.Len())
	order := s.order[:0]
	for _, col := range s.order {
		if col >= start {
			col -= change
		}
		if col < 0 || shifted.Test(uint(col)) {
			continue
		}
		shifted.Set(uint(col))
		order = append(order, col)
	}
	s.order = order
	s.selected = shifted
}

// MarkColumns selects the columns of bits within [start, end], or the unset
// columns when invert is true. Unless extend or toggle is set, the existing
// selection is cleared first. With toggle, marked columns that are already
// selected are deselected instead. MarkColumns reports whether the selection
// changed.
func (s *ColumnSelection) MarkColumns(bits *bitset.BitSet, start, end int, invert, extend, toggle bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := false
	if !extend && !toggle {
		changed = len(s.order) > 0
		s.clearUnlocked()
	}

	for col := max(start, 0); col <= end; col++ {
		if bits.Test(uint(col)) == invert {
			continue
		}
		changed = true
		if toggle && s.selected.Test(uint(col)) {
			s.removeUnlocked(col)
		} else {
			s.addUnlocked(col)
		}
	}
	return changed
}
