package selection

import (
	"testing"

	"github.com/bits-and-blooms/bitset"
	"github.com/phroun/hiddencols"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func selectionOf(cols ...int) *ColumnSelection {
	s := New()
	for _, c := range cols {
		s.AddElement(c)
	}
	return s
}

func hiddenOf(t *testing.T, regions ...hiddencols.Region) *hiddencols.HiddenColumns {
	t.Helper()
	hc := hiddencols.New()
	require.NoError(t, hc.HideList(regions))
	return hc
}

func TestAddRemove(t *testing.T) {
	s := selectionOf(5, 2, 5, 9, -1)

	assert.Equal(t, []int{5, 2, 9}, s.Selected())
	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Contains(2))
	assert.False(t, s.Contains(-1))

	s.RemoveElement(5)
	s.RemoveElement(40)
	assert.Equal(t, []int{2, 9}, s.Selected())

	lo, ok := s.Min()
	require.True(t, ok)
	assert.Equal(t, 2, lo)
	hi, ok := s.Max()
	require.True(t, ok)
	assert.Equal(t, 9, hi)

	s.Clear()
	assert.True(t, s.IsEmpty())
	_, ok = s.Min()
	assert.False(t, ok)
	_, ok = s.Max()
	assert.False(t, ok)
}

func TestRemoveElements(t *testing.T) {
	s := selectionOf(1, 2, 3, 4, 8)
	s.RemoveElements(2, 4)
	assert.Equal(t, []int{1, 8}, s.Selected())
}

func TestRanges(t *testing.T) {
	s := selectionOf(7, 3, 4, 5, 10, 11)
	assert.Equal(t, []hiddencols.Region{{Start: 3, End: 5}, {Start: 7, End: 7}, {Start: 10, End: 11}}, s.Ranges())
	assert.Nil(t, New().Ranges())
}

func TestRevealSelectsColumns(t *testing.T) {
	hc := hiddenOf(t, hiddencols.Region{Start: 5, End: 8})
	s := selectionOf(10)

	hc.RevealHiddenColumns(5, s)
	assert.Equal(t, []int{10, 5, 6, 7, 8}, s.Selected())
	assert.False(t, hc.HasHiddenColumns())
}

func TestHideSelectedColumns(t *testing.T) {
	hc := hiddencols.New()
	s := selectionOf(3, 4, 9, 5)

	require.NoError(t, s.HideSelectedColumns(hc))
	assert.Equal(t, []hiddencols.Region{{Start: 3, End: 5}, {Start: 9, End: 9}}, hc.Regions())
	assert.True(t, s.IsEmpty())
}

func TestHideSelectedColumnsAt(t *testing.T) {
	tests := []struct {
		name     string
		selected []int
		col      int
		want     []hiddencols.Region
		left     []int
	}{
		{"unselected column alone", []int{1, 2}, 6, []hiddencols.Region{{Start: 6, End: 6}}, []int{1, 2}},
		{"run around column", []int{1, 3, 4, 5, 6, 9}, 5, []hiddencols.Region{{Start: 3, End: 6}}, []int{1, 9}},
		{"column at left edge", []int{0, 1}, 0, []hiddencols.Region{{Start: 0, End: 1}}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hc := hiddencols.New()
			s := selectionOf(tt.selected...)

			require.NoError(t, s.HideSelectedColumnsAt(tt.col, hc))
			assert.Equal(t, tt.want, hc.Regions())
			assert.Equal(t, tt.left, s.Selected())
		})
	}
}

func TestInvertColumnSelection(t *testing.T) {
	hc := hiddenOf(t, hiddencols.Region{Start: 2, End: 3})
	s := selectionOf(0, 5)

	s.InvertColumnSelection(0, 7, hc)
	assert.Equal(t, []int{1, 4, 6}, s.Selected())

	s.InvertColumnSelection(0, 3, nil)
	assert.Equal(t, []int{4, 6, 0, 2}, s.Selected())
}

func TestSetElementsFrom(t *testing.T) {
	other := selectionOf(1, 4, 7, 8)
	hc := hiddenOf(t, hiddencols.Region{Start: 3, End: 7})

	s := selectionOf(20)
	s.SetElementsFrom(other, hc)
	assert.Equal(t, []int{1, 8}, s.Selected())

	s.SetElementsFrom(other, hiddencols.New())
	assert.Equal(t, []int{1, 4, 7, 8}, s.Selected())
}

func TestCompensateForEdits(t *testing.T) {
	s := selectionOf(2, 10, 12)

	s.CompensateForEdits(5, 3)
	assert.Equal(t, []int{2, 7, 9}, s.Selected())
	assert.True(t, s.Contains(7))
	assert.False(t, s.Contains(10))

	s.CompensateForEdits(0, -2)
	assert.Equal(t, []int{4, 9, 11}, s.Selected())

	s.CompensateForEdits(0, 5)
	assert.Equal(t, []int{4, 6}, s.Selected())
}

func TestMarkColumns(t *testing.T) {
	marked := bitset.New(0).Set(2).Set(3).Set(7)

	t.Run("replace", func(t *testing.T) {
		s := selectionOf(20)
		assert.True(t, s.MarkColumns(marked, 0, 5, false, false, false))
		assert.Equal(t, []int{2, 3}, s.Selected())
	})

	t.Run("invert", func(t *testing.T) {
		s := New()
		assert.True(t, s.MarkColumns(marked, 1, 5, true, false, false))
		assert.Equal(t, []int{1, 4, 5}, s.Selected())
	})

	t.Run("extend", func(t *testing.T) {
		s := selectionOf(20)
		assert.True(t, s.MarkColumns(marked, 0, 10, false, true, false))
		assert.Equal(t, []int{20, 2, 3, 7}, s.Selected())
	})

	t.Run("toggle", func(t *testing.T) {
		s := selectionOf(2)
		assert.True(t, s.MarkColumns(marked, 0, 4, false, false, true))
		assert.Equal(t, []int{3}, s.Selected())
	})

	t.Run("nothing marked", func(t *testing.T) {
		s := New()
		assert.False(t, s.MarkColumns(bitset.New(0), 0, 10, false, false, false))
	})
}

func TestCopy(t *testing.T) {
	s := selectionOf(1, 2)
	c := s.Copy()
	c.AddElement(3)

	assert.Equal(t, []int{1, 2}, s.Selected())
	assert.Equal(t, []int{1, 2, 3}, c.Selected())
}
