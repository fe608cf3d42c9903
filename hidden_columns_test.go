package hiddencols

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newHidden returns a HiddenColumns with the given regions hidden in order.
func newHidden(t testing.TB, regions ...Region) *HiddenColumns {
	t.Helper()
	h := New()
	for _, r := range regions {
		require.NoError(t, h.HideColumns(r.Start, r.End))
	}
	return h
}

func TestScenarios(t *testing.T) {
	t.Run("hide snaps hidden columns to the left", func(t *testing.T) {
		h := newHidden(t, Region{3, 5})

		assert.Equal(t, []Region{{3, 5}}, h.Regions())
		assert.Equal(t, 3, h.Size())
		assert.Equal(t, 3, h.AbsoluteToVisibleColumn(6))
		assert.Equal(t, 2, h.AbsoluteToVisibleColumn(4))
	})

	t.Run("overlapping ranges merge", func(t *testing.T) {
		h := newHidden(t, Region{3, 5}, Region{5, 7})

		assert.Equal(t, []Region{{3, 7}}, h.Regions())
		assert.Equal(t, 5, h.Size())
	})

	t.Run("touching ranges merge", func(t *testing.T) {
		h := newHidden(t, Region{3, 5}, Region{6, 6})

		assert.Equal(t, []Region{{3, 6}}, h.Regions())
		assert.Equal(t, 4, h.Size())
	})

	t.Run("visible to absolute skips hidden columns", func(t *testing.T) {
		h := newHidden(t, Region{3, 5}, Region{10, 12})

		assert.Equal(t, 6, h.VisibleToAbsoluteColumn(3))
	})
}

func TestEmptyIsIdentity(t *testing.T) {
	h := New()

	assert.False(t, h.HasHiddenColumns())
	assert.False(t, h.HasMultipleRegions())
	assert.Equal(t, 0, h.Size())
	assert.Equal(t, 0, h.NumberOfRegions())
	assert.Nil(t, h.Regions())

	for _, col := range []int{-5, 0, 1, 17, 1000} {
		assert.Equal(t, col, h.AbsoluteToVisibleColumn(col))
		assert.Equal(t, col, h.VisibleToAbsoluteColumn(col))
		assert.True(t, h.IsVisible(col))
	}
	assert.Equal(t, 7, h.NextHiddenBoundary(true, 7))
	assert.Equal(t, 7, h.NextHiddenBoundary(false, 7))
}

func TestAbsoluteToVisibleColumn(t *testing.T) {
	h := newHidden(t, Region{5, 10}, Region{20, 27}, Region{40, 44})

	tests := []struct {
		col  int
		want int
	}{
		{0, 0},
		{4, 4},
		{5, 4},
		{8, 4},
		{11, 5},
		{19, 13},
		{24, 13},
		{28, 14},
		{39, 25},
		{40, 25},
		{65, 46},
	}
	for _, tt := range tests {
		if got := h.AbsoluteToVisibleColumn(tt.col); got != tt.want {
			t.Errorf("AbsoluteToVisibleColumn(%d) = %d, want %d", tt.col, got, tt.want)
		}
	}

	t.Run("region at column zero", func(t *testing.T) {
		h := newHidden(t, Region{0, 3})
		assert.Equal(t, 0, h.AbsoluteToVisibleColumn(0))
		assert.Equal(t, 0, h.AbsoluteToVisibleColumn(2))
		assert.Equal(t, 0, h.AbsoluteToVisibleColumn(4))
		assert.Equal(t, 1, h.AbsoluteToVisibleColumn(5))
	})
}

func TestVisibleToAbsoluteColumn(t *testing.T) {
	h := newHidden(t, Region{5, 10}, Region{20, 27}, Region{40, 44})

	tests := []struct {
		col  int
		want int
	}{
		{-3, -3},
		{0, 0},
		{4, 4},
		{5, 11},
		{13, 19},
		{14, 28},
		{25, 39},
		{26, 45},
		{46, 65},
	}
	for _, tt := range tests {
		if got := h.VisibleToAbsoluteColumn(tt.col); got != tt.want {
			t.Errorf("VisibleToAbsoluteColumn(%d) = %d, want %d", tt.col, got, tt.want)
		}
	}

	t.Run("leading region", func(t *testing.T) {
		h := newHidden(t, Region{0, 4})
		assert.Equal(t, 5, h.VisibleToAbsoluteColumn(0))
		assert.Equal(t, 9, h.VisibleToAbsoluteColumn(4))
	})
}

func TestRoundTrip(t *testing.T) {
	h := newHidden(t, Region{0, 1}, Region{5, 10}, Region{12, 12}, Region{30, 31})

	for col := 0; col < 50; col++ {
		if !h.IsVisible(col) {
			continue
		}
		vis := h.AbsoluteToVisibleColumn(col)
		if got := h.VisibleToAbsoluteColumn(vis); got != col {
			t.Errorf("VisibleToAbsoluteColumn(AbsoluteToVisibleColumn(%d)) = %d", col, got)
		}
	}
}

func TestOffsetByVisibleColumns(t *testing.T) {
	h := newHidden(t, Region{3, 5}, Region{10, 12})

	tests := []struct {
		name     string
		distance int
		from     int
		want     int
	}{
		{"forward within visible run", 2, 0, 2},
		{"forward across region", 4, 0, 7},
		{"forward across two regions", 7, 0, 13},
		{"backward across region", -2, 7, 2},
		{"backward by one", -1, 6, 2},
		{"from hidden column", 1, 4, 6},
		{"zero distance from hidden", 0, 11, 9},
		{"off the left edge", -5, 1, -4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, h.OffsetByVisibleColumns(tt.distance, tt.from))
		})
	}

	t.Run("leading region", func(t *testing.T) {
		h := newHidden(t, Region{0, 30})
		assert.Equal(t, -31, h.OffsetByVisibleColumns(-31, 0))
		assert.Equal(t, 31, h.OffsetByVisibleColumns(0, 0))
		assert.Equal(t, 35, h.OffsetByVisibleColumns(4, 12))
	})
}

func TestIsVisible(t *testing.T) {
	h := newHidden(t, Region{2, 4}, Region{6, 7})

	visible := map[int]bool{-99: true, 0: true, 1: true, 5: true, 8: true, 100: true}
	for col := -1; col <= 10; col++ {
		want := col < 2 || col == 5 || col > 7
		visible[col] = want
	}
	for col, want := range visible {
		if got := h.IsVisible(col); got != want {
			t.Errorf("IsVisible(%d) = %v, want %v", col, got, want)
		}
	}
}

func TestVisibleStartAndEndIndex(t *testing.T) {
	const width = 26

	tests := []struct {
		name      string
		regions   []Region
		wantFirst int
		wantLast  int
	}{
		{"no hidden columns", nil, 0, 25},
		{"first column hidden", []Region{{0, 0}}, 1, 25},
		{"both ends hidden", []Region{{0, 0}, {24, 25}}, 1, 23},
		{"inner region", []Region{{3, 4}}, 0, 25},
		{"trailing region only", []Region{{20, 25}}, 0, 19},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHidden(t, tt.regions...)
			first, last := h.VisibleStartAndEndIndex(width)
			assert.Equal(t, tt.wantFirst, first)
			assert.Equal(t, tt.wantLast, last)
		})
	}
}

func TestCopy(t *testing.T) {
	h := newHidden(t, Region{5, 7}, Region{10, 11})

	c := h.Copy()
	assert.True(t, c.Equal(h))
	assert.Equal(t, h.Size(), c.Size())

	require.NoError(t, c.HideColumns(20, 22))
	assert.Equal(t, 2, h.NumberOfRegions(), "copy must be independent")
	assert.Equal(t, 3, c.NumberOfRegions())
}

func TestCopyWithin(t *testing.T) {
	h := newHidden(t, Region{5, 7}, Region{10, 11})

	tests := []struct {
		name               string
		start, end, offset int
		want               []Region
		wantSize           int
	}{
		{"first region only", 3, 9, 1, []Region{{4, 6}}, 3},
		{"second region only", 8, 15, 4, []Region{{6, 7}}, 2},
		{"nothing fully inside", 6, 10, 4, nil, 0},
		{"everything", 0, 20, 0, []Region{{5, 7}, {10, 11}}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := h.CopyWithin(tt.start, tt.end, tt.offset)
			assert.Equal(t, tt.want, c.Regions())
			assert.Equal(t, tt.wantSize, c.Size())
			require.NoError(t, c.CheckInvariants())
		})
	}
}

func TestRegionsToString(t *testing.T) {
	h := newHidden(t, Region{3, 7}, Region{10, 10}, Region{14, 15})

	assert.Equal(t, "3--7,10--10,14--15", h.RegionsToString(",", "--"))
	assert.Equal(t, "[3, 7] [10, 10] [14, 15]", h.String())
	assert.Equal(t, "", New().RegionsToString(",", "--"))
}

func TestEqualAndHash(t *testing.T) {
	a := newHidden(t, Region{3, 5}, Region{10, 12})
	b := newHidden(t, Region{10, 12}, Region{3, 5})
	c := newHidden(t, Region{3, 5})

	assert.True(t, a.Equal(a))
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))
	assert.Equal(t, a.Hash(), b.Hash())
	assert.NotEqual(t, a.Hash(), c.Hash())

	empty := New()
	assert.Positive(t, empty.Hash())
	require.NoError(t, empty.HideColumns(1, 2))
	assert.NotEqual(t, New().Hash(), empty.Hash())
}

func TestHasMultipleRegions(t *testing.T) {
	h := newHidden(t, Region{3, 5})
	assert.False(t, h.HasMultipleRegions())

	require.NoError(t, h.HideColumns(8, 9))
	assert.True(t, h.HasMultipleRegions())
}

func TestAll(t *testing.T) {
	h := newHidden(t, Region{3, 5}, Region{10, 12}, Region{20, 21})

	var got []Region
	for r := range h.All() {
		if r.Start > 15 {
			break
		}
		got = append(got, r)
	}
	assert.Equal(t, []Region{{3, 5}, {10, 12}}, got)
}

func TestLoggerOption(t *testing.T) {
	h := NewWithOptions(Options{Logger: nil})
	require.NoError(t, h.HideColumns(1, 2))
	assert.Equal(t, 2, h.Size())
}

func BenchmarkSequentialVisibleToAbsolute(b *testing.B) {
	h := New()
	for start := 0; start < 100000; start += 10 {
		_ = h.HideColumns(start, start+3)
	}
	visible := 100000 - h.Size()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h.VisibleToAbsoluteColumn(i % visible)
	}
}

func BenchmarkHideAppend(b *testing.B) {
	for i := 0; i < b.N; i++ {
		h := New()
		for start := 0; start < 10000; start += 10 {
			_ = h.HideColumns(start, start+3)
		}
	}
}
