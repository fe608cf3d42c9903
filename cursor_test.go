package hiddencols

import (
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const modelWidth = 200

// model is a brute-force reference: one flag per absolute column.
type model [modelWidth]bool

func (m *model) hide(start, end int) {
	for c := start; c <= end && c < modelWidth; c++ {
		m[c] = true
	}
}

func (m *model) clear(start, end int) {
	for c := start; c <= end && c < modelWidth; c++ {
		m[c] = false
	}
}

func (m *model) count() int {
	n := 0
	for _, hidden := range m {
		if hidden {
			n++
		}
	}
	return n
}

func (m *model) visibleToAbsolute(vis int) int {
	seen := -1
	for c := 0; c < modelWidth; c++ {
		if !m[c] {
			seen++
			if seen == vis {
				return c
			}
		}
	}
	return -1
}

func (m *model) visibleBefore(col int) int {
	n := 0
	for c := 0; c < col; c++ {
		if !m[c] {
			n++
		}
	}
	return n
}

func TestCursorLocate(t *testing.T) {
	regions := []Region{{3, 5}, {10, 12}, {20, 29}}

	tests := []struct {
		name   string
		column int
		mode   CoordinateMode
		want   CursorPosition
	}{
		{"before first region", 1, AbsoluteMode, CursorPosition{0, 0}},
		{"negative", -7, AbsoluteMode, CursorPosition{0, 0}},
		{"inside first region", 4, AbsoluteMode, CursorPosition{0, 0}},
		{"between regions", 7, AbsoluteMode, CursorPosition{1, 3}},
		{"end of second region", 12, AbsoluteMode, CursorPosition{1, 3}},
		{"after last region", 40, AbsoluteMode, CursorPosition{3, 16}},
		{"visible before first", 2, VisibleMode, CursorPosition{0, 0}},
		{"visible at first region start", 3, VisibleMode, CursorPosition{1, 3}},
		{"visible at second region start", 7, VisibleMode, CursorPosition{2, 6}},
		{"visible past everything", 100, VisibleMode, CursorPosition{3, 16}},
	}

	c := newCursor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.locate(regions, tt.column, tt.mode))
			assert.Equal(t, tt.want, scan(regions, tt.column, tt.mode))
			assert.Equal(t, tt.want, c.position(), "result is cached")
		})
	}
}

func TestCursorStaleHint(t *testing.T) {
	regions := []Region{{3, 5}, {10, 12}}

	c := newCursor()
	c.reset(9, 40)
	assert.Equal(t, CursorPosition{1, 3}, c.locate(regions, 8, AbsoluteMode))

	c.reset(-1, 0)
	assert.Equal(t, CursorPosition{2, 6}, c.locate(regions, 50, AbsoluteMode))

	assert.Equal(t, CursorPosition{}, c.locate(nil, 50, AbsoluteMode))
}

func TestCursorTransparency(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	for round := 0; round < 20; round++ {
		h := New()
		for i := 0; i < 15; i++ {
			start := rng.IntN(180)
			require.NoError(t, h.HideColumns(start, start+rng.IntN(6)))
		}
		regions := h.Regions()

		// Jump around so the hint is exercised in both directions
		for q := 0; q < 500; q++ {
			col := rng.IntN(220) - 10
			mode := CoordinateMode(rng.IntN(2))
			got := h.cursor.locate(regions, col, mode)
			want := scan(regions, col, mode)
			if got != want {
				t.Fatalf("round %d: locate(%d, %v) = %+v, want %+v", round, col, mode, got, want)
			}
		}
	}
}

func TestRandomOperationsMatchModel(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))

	for round := 0; round < 10; round++ {
		h := New()
		var m model

		for op := 0; op < 200; op++ {
			start := rng.IntN(190)
			end := start + rng.IntN(8)

			switch rng.IntN(6) {
			case 0, 1, 2:
				require.NoError(t, h.HideColumns(start, end))
				m.hide(start, end)
			case 3:
				require.NoError(t, h.ClearRange(start, end))
				m.clear(start, end)
			case 4:
				bits := bitsRange(bitsOf(), start, end)
				h.AndNot(bits)
				m.clear(start, end)
			case 5:
				for r := range h.All() {
					if r.Start >= start {
						h.RevealHiddenColumns(r.Start, nil)
						m.clear(r.Start, r.End)
						break
					}
				}
			}

			require.NoError(t, h.CheckInvariants(), "round %d op %d", round, op)
			require.Equal(t, m.count(), h.Size(), "round %d op %d", round, op)
		}

		for col := 0; col < modelWidth; col++ {
			require.Equal(t, !m[col], h.IsVisible(col), "IsVisible(%d)", col)
			if !m[col] {
				require.Equal(t, m.visibleBefore(col), h.AbsoluteToVisibleColumn(col), "AbsoluteToVisibleColumn(%d)", col)
			}
		}
		for vis := 0; vis < modelWidth-h.Size(); vis++ {
			require.Equal(t, m.visibleToAbsolute(vis), h.VisibleToAbsoluteColumn(vis), "VisibleToAbsoluteColumn(%d)", vis)
		}
	}
}

func TestConcurrentReadersAndWriter(t *testing.T) {
	h := New()
	for start := 0; start < 1000; start += 20 {
		require.NoError(t, h.HideColumns(start, start+4))
	}

	var wg sync.WaitGroup
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func(seed uint64) {
			defer wg.Done()
			rng := rand.New(rand.NewPCG(seed, seed))
			for i := 0; i < 2000; i++ {
				col := rng.IntN(1200)
				vis := h.AbsoluteToVisibleColumn(col)
				h.VisibleToAbsoluteColumn(vis)
				h.IsVisible(col)
				it := h.VisibleContigsIterator(col, col+50, false)
				for it.HasNext() {
					_, _ = it.Next()
				}
			}
		}(uint64(r + 1))
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			start := (i * 37) % 1000
			_ = h.HideColumns(start, start+2)
			_ = h.ClearRange(start+1, start+1)
		}
	}()

	wg.Wait()
	require.NoError(t, h.CheckInvariants())
}
