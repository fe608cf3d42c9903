package hiddencols

import (
	"fmt"
	"slices"
)

// EditType indicates how an edit changed the column space.
type EditType int

const (
	// ColumnsInserted indicates new columns were inserted.
	ColumnsInserted EditType = iota

	// ColumnsDeleted indicates existing columns were removed.
	ColumnsDeleted
)

// String returns a human-readable description of the edit type.
func (t EditType) String() string {
	switch t {
	case ColumnsInserted:
		return "inserted"
	case ColumnsDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// ColumnEdit describes an insertion or deletion of Count columns at the
// absolute column At.
type ColumnEdit struct {
	Type  EditType
	At    int
	Count int
}

// ApplyEdit shifts the hidden regions to follow an edit of the column space.
func (h *HiddenColumns) ApplyEdit(edit ColumnEdit) error {
	switch edit.Type {
	case ColumnsInserted:
		return h.InsertColumns(edit.At, edit.Count)
	case ColumnsDeleted:
		return h.DeleteColumns(edit.At, edit.Count)
	default:
		return fmt.Errorf("%w: unknown edit type %d", ErrInvalidEdit, edit.Type)
	}
}

// InsertColumns records that count columns were inserted before the absolute
// column at. Regions starting at or after at move right by count. A region
// that strictly contains at grows by count, so columns inserted inside a
// hidden block stay hidden.
func (h *HiddenColumns) InsertColumns(at, count int) error {
	if err := validateEdit(at, count); err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for i := range h.regions {
		r := &h.regions[i]
		switch {
		case r.Start >= at:
			r.Start += count
			r.End += count
		case r.End >= at:
			r.End += count
			h.numColumns += count
		}
	}
	h.cursor.reset(0, 0)

	h.log.Debug().
		Int("at", at).
		Int("count", count).
		Int("hidden", h.numColumns).
		Msg("insert columns")
	return nil
}

// DeleteColumns records that the columns [at, at+count-1] were removed.
// Hidden columns in that range are dropped, later regions move left by count,
// and regions brought together by the deletion are merged.
func (h *HiddenColumns) DeleteColumns(at, count int) error {
	if err := validateEdit(at, count); err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	last := at + count - 1
	shifted := h.regions[:0]
	for _, r := range h.regions {
		switch {
		case r.End < at:
			// Entirely before the deletion
		case r.Start > last:
			r.Start -= count
			r.End -= count
		default:
			// Overlaps the deletion; keep whatever lies outside it
			h.numColumns -= min(r.End, last) - max(r.Start, at) + 1
			if r.Start > at {
				r.Start = at
			}
			if r.End > last {
				r.End -= count
			} else {
				r.End = at - 1
			}
			if r.End < r.Start {
				continue
			}
		}

		if n := len(shifted); n > 0 && shifted[n-1].End+1 >= r.Start {
			// Joined by the deletion
			shifted[n-1].End = max(shifted[n-1].End, r.End)
			continue
		}
		shifted = append(shifted, r)
	}
	h.regions = slices.Clip(shifted)
	if len(h.regions) == 0 {
		h.regions = nil
	}
	h.cursor.reset(0, 0)

	h.log.Debug().
		Int("at", at).
		Int("count", count).
		Int("regions", len(h.regions)).
		Int("hidden", h.numColumns).
		Msg("delete columns")
	return nil
}

func validateEdit(at, count int) error {
	if at < 0 {
		return fmt.Errorf("%w: column %d", ErrNegativeColumn, at)
	}
	if count <= 0 {
		return fmt.Errorf("%w: count %d must be positive", ErrInvalidEdit, count)
	}
	return nil
}
