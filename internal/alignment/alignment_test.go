package alignment

import (
	"bytes"
	"strings"
	"testing"

	"github.com/phroun/hiddencols"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFASTA = `>seq1 first
GAL---MFW-
KQESPVICY--HRNDT

>seq2
GALCSSMFWR
KQESPVICYAAHRNDT
`

func hidden(t *testing.T, regions ...hiddencols.Region) *hiddencols.HiddenColumns {
	t.Helper()
	hc := hiddencols.New()
	require.NoError(t, hc.HideList(regions))
	return hc
}

func residues(a *Alignment) []string {
	var out []string
	for _, seq := range a.Sequences {
		out = append(out, string(seq.Residues))
	}
	return out
}

func TestReadFASTA(t *testing.T) {
	a, err := ReadFASTA(strings.NewReader(sampleFASTA), "")
	require.NoError(t, err)

	require.Equal(t, 2, a.Height())
	assert.Equal(t, "seq1 first", a.Sequences[0].Name)
	assert.Equal(t, "GAL---MFW-KQESPVICY--HRNDT", string(a.Sequences[0].Residues))
	assert.Equal(t, "seq2", a.Sequences[1].Name)
	assert.Equal(t, 26, a.Width())
	assert.Equal(t, DefaultGapChars, a.GapChars)
}

func TestReadFASTAErrors(t *testing.T) {
	_, err := ReadFASTA(strings.NewReader(""), "")
	require.ErrorIs(t, err, ErrNoSequences)

	_, err = ReadFASTA(strings.NewReader("ACGT\n>x\nAC\n"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}

func TestWriteFASTA(t *testing.T) {
	a := New("-", &Sequence{Name: "a", Residues: []byte("AC--GT")}, &Sequence{Name: "b", Residues: []byte("ACTTGT")})

	var buf bytes.Buffer
	require.NoError(t, a.WriteFASTA(&buf, nil))
	assert.Equal(t, ">a\nAC--GT\n>b\nACTTGT\n", buf.String())

	buf.Reset()
	require.NoError(t, a.WriteFASTA(&buf, hidden(t, hiddencols.Region{Start: 2, End: 3})))
	assert.Equal(t, ">a\nACGT\n>b\nACGT\n", buf.String())
}

func TestInsertions(t *testing.T) {
	a := New("", &Sequence{Name: "s", Residues: []byte("GAL---MFW-KQESPVICY--HRNDT")})

	runs, err := a.Insertions(0)
	require.NoError(t, err)
	assert.Equal(t, []hiddencols.Region{{Start: 3, End: 5}, {Start: 9, End: 9}, {Start: 19, End: 20}}, runs)

	bits, err := a.GapBits(0)
	require.NoError(t, err)
	assert.Equal(t, uint(6), bits.Count())
	assert.True(t, bits.Test(9))
	assert.False(t, bits.Test(10))

	_, err = a.Insertions(3)
	require.ErrorIs(t, err, ErrSequenceIndex)
	_, err = a.GapBits(-1)
	require.ErrorIs(t, err, ErrSequenceIndex)
}

func TestInsertionsEdges(t *testing.T) {
	tests := []struct {
		name     string
		residues string
		want     []hiddencols.Region
	}{
		{"no gaps", "ACGT", nil},
		{"leading and trailing", "--AC..", []hiddencols.Region{{Start: 0, End: 1}, {Start: 4, End: 5}}},
		{"all gaps", "---", []hiddencols.Region{{Start: 0, End: 2}}},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := New("", &Sequence{Residues: []byte(tt.residues)})
			runs, err := a.Insertions(0)
			require.NoError(t, err)
			assert.Equal(t, tt.want, runs)
		})
	}
}

func TestHideInsertionsOf(t *testing.T) {
	a, err := ReadFASTA(strings.NewReader(sampleFASTA), "")
	require.NoError(t, err)

	hc := hiddencols.New()
	require.NoError(t, a.HideInsertionsOf(0, hc))
	assert.Equal(t, []hiddencols.Region{{Start: 3, End: 5}, {Start: 9, End: 9}, {Start: 19, End: 20}}, hc.Regions())
	assert.Equal(t, "GALMFWKQESPVICYHRNDT", VisibleSequence(a.Sequences[0], hc, 0, a.Width()-1))
	assert.Equal(t, "GALMFWKQESPVICYHRNDT", VisibleSequence(a.Sequences[1], hc, 0, a.Width()-1)[:20])

	require.ErrorIs(t, a.HideInsertionsOf(5, hc), ErrSequenceIndex)
}

func TestVisibleSequence(t *testing.T) {
	seq := &Sequence{Residues: []byte("ABCDEFGHIJ")}
	hc := hidden(t, hiddencols.Region{Start: 2, End: 3}, hiddencols.Region{Start: 7, End: 7})

	tests := []struct {
		name       string
		start, end int
		want       string
	}{
		{"whole sequence", 0, 9, "ABEFGIJ"},
		{"window", 3, 8, "EFGI"},
		{"past the end", 8, 40, "IJ"},
		{"hidden only", 2, 3, ""},
		{"reversed", 5, 1, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VisibleSequence(seq, hc, tt.start, tt.end))
		})
	}
}

func TestPropagateInsertions(t *testing.T) {
	t.Run("hidden region after the gaps", func(t *testing.T) {
		a := New("-",
			&Sequence{Name: "profile", Residues: []byte("ABCDEFGHIJKLMNOPQRST")},
			&Sequence{Name: "other", Residues: []byte("abcdefghijklmnopqrst")},
		)
		gapped := New("-", &Sequence{Residues: []byte("ABCDE----FGHIJKLMNOPQRST")})
		gaps, err := gapped.GapBits(0)
		require.NoError(t, err)

		view := hidden(t, hiddencols.Region{Start: 15, End: 17})
		result, err := a.PropagateInsertions(0, gaps, view)
		require.NoError(t, err)

		assert.Equal(t, []hiddencols.Region{{Start: 11, End: 13}}, result.Regions())
		assert.Equal(t, "abcdefghijk---lmnopqrst", string(a.Sequences[1].Residues))
		assert.Equal(t, "ABCDEFGHIJKLMNOPQRST", string(a.Sequences[0].Residues), "profile untouched")
	})

	t.Run("hidden region overlapping the gaps", func(t *testing.T) {
		a := New("-",
			&Sequence{Name: "profile", Residues: []byte("ABCDEFGHIJKLMNOP")},
			&Sequence{Name: "other", Residues: []byte("abcdefghijklmnop")},
			&Sequence{Name: "short", Residues: []byte("ab")},
		)
		gapped := New("-", &Sequence{Residues: []byte("ABCDE----FGHIJKLMNOP")})
		gaps, err := gapped.GapBits(0)
		require.NoError(t, err)

		view := hidden(t, hiddencols.Region{Start: 7, End: 10})
		result, err := a.PropagateInsertions(0, gaps, view)
		require.NoError(t, err)

		assert.Equal(t, []hiddencols.Region{{Start: 9, End: 10}}, view.Regions(), "hidden gaps dropped")
		assert.Equal(t, []hiddencols.Region{{Start: 5, End: 6}}, result.Regions())
		assert.Equal(t, "abcde--fghijklmnop", string(a.Sequences[1].Residues))
		assert.Equal(t, "ab", string(a.Sequences[2].Residues), "shorter than the insertion point")
	})

	t.Run("bad profile", func(t *testing.T) {
		a := New("-", &Sequence{Residues: []byte("AC")})
		_, err := a.PropagateInsertions(4, nil, hiddencols.New())
		require.ErrorIs(t, err, ErrSequenceIndex)
	})
}

func TestColumnEdits(t *testing.T) {
	a := New("-",
		&Sequence{Residues: []byte("ABCDEFGH")},
		&Sequence{Residues: []byte("abc")},
	)
	hc := hidden(t, hiddencols.Region{Start: 5, End: 6})

	require.NoError(t, a.InsertGapColumns(2, 2, hc))
	assert.Equal(t, []string{"AB--CDEFGH", "ab--c"}, residues(a))
	assert.Equal(t, []hiddencols.Region{{Start: 7, End: 8}}, hc.Regions())

	require.NoError(t, a.DeleteColumns(1, 4, hc))
	assert.Equal(t, []string{"ADEFGH", "a"}, residues(a))
	assert.Equal(t, []hiddencols.Region{{Start: 3, End: 4}}, hc.Regions())

	require.Error(t, a.DeleteColumns(0, -1, hc))
	assert.Equal(t, []string{"ADEFGH", "a"}, residues(a), "rejected edit leaves rows alone")
}

func TestCrop(t *testing.T) {
	a := New("-",
		&Sequence{Name: "a", Residues: []byte("ABCDEFGHIJ")},
		&Sequence{Name: "b", Residues: []byte("abcd")},
	)
	hc := hidden(t, hiddencols.Region{Start: 1, End: 1}, hiddencols.Region{Start: 4, End: 5}, hiddencols.Region{Start: 8, End: 9})

	cropped, croppedHidden := a.Crop(2, 7, hc)
	assert.Equal(t, []string{"CDEFGH", "cd"}, residues(cropped))
	assert.Equal(t, "a", cropped.Sequences[0].Name)
	assert.Equal(t, []hiddencols.Region{{Start: 2, End: 3}}, croppedHidden.Regions())

	cropped.Sequences[0].Residues[0] = 'x'
	assert.Equal(t, "ABCDEFGHIJ", string(a.Sequences[0].Residues), "crop copies residues")
}
