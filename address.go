package hiddencols

// CoordinateMode specifies which column space a position is expressed in.
type CoordinateMode int

const (
	// AbsoluteMode specifies a column index in the full alignment, hidden columns included.
	AbsoluteMode CoordinateMode = iota

	// VisibleMode specifies a column index in the view, with hidden columns removed.
	VisibleMode
)

// String returns the mode name.
func (m CoordinateMode) String() string {
	switch m {
	case AbsoluteMode:
		return "absolute"
	case VisibleMode:
		return "visible"
	default:
		return "unknown"
	}
}

// ColumnAddress specifies a column in one of the two coordinate spaces.
type ColumnAddress struct {
	Mode   CoordinateMode
	Column int
}

// AbsoluteColumn creates a ColumnAddress in absolute mode.
func AbsoluteColumn(col int) ColumnAddress {
	return ColumnAddress{
		Mode:   AbsoluteMode,
		Column: col,
	}
}

// VisibleColumn creates a ColumnAddress in visible mode.
func VisibleColumn(col int) ColumnAddress {
	return ColumnAddress{
		Mode:   VisibleMode,
		Column: col,
	}
}

// CursorPosition is a location in the interval store: the index of a region and
// the number of hidden columns in all regions before that index.
//
// RegionIndex ranges over [0, NumberOfRegions]; the upper bound means
// "beyond the last region".
type CursorPosition struct {
	RegionIndex int
	HiddenSoFar int
}

// ToAbsolute resolves addr to an absolute column.
func (h *HiddenColumns) ToAbsolute(addr ColumnAddress) int {
	if addr.Mode == VisibleMode {
		return h.VisibleToAbsoluteColumn(addr.Column)
	}
	return addr.Column
}

// ToVisible resolves addr to a visible column. Hidden absolute columns snap
// to the nearest visible column on their left.
func (h *HiddenColumns) ToVisible(addr ColumnAddress) int {
	if addr.Mode == AbsoluteMode {
		return h.AbsoluteToVisibleColumn(addr.Column)
	}
	return addr.Column
}
