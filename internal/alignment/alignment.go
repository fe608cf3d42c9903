// Package alignment holds a minimal multiple sequence alignment model and the
// operations that derive hidden columns from it.
package alignment

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bits-and-blooms/bitset"
	"github.com/karrick/gobls"
	"github.com/phroun/hiddencols"
)

// DefaultGapChars are the residue characters treated as gaps when none are
// configured.
const DefaultGapChars = "-."

var (
	// ErrNoSequences indicates input without any FASTA records.
	ErrNoSequences = errors.New("no sequences in input")

	// ErrSequenceIndex indicates a sequence index outside the alignment.
	ErrSequenceIndex = errors.New("sequence index out of range")
)

// Sequence is one aligned row.
type Sequence struct {
	Name     string
	Residues []byte
}

// Len returns the number of columns in the row.
func (s *Sequence) Len() int {
	return len(s.Residues)
}

// Alignment is a set of aligned sequences. Rows may differ in length; the
// alignment is as wide as its longest row.
type Alignment struct {
	Sequences []*Sequence
	GapChars  string
}

// New creates an alignment over seqs. An empty gapChars selects
// DefaultGapChars.
func New(gapChars string, seqs ...*Sequence) *Alignment {
	if gapChars == "" {
		gapChars = DefaultGapChars
	}
	return &Alignment{Sequences: seqs, GapChars: gapChars}
}

// ReadFASTA parses FASTA records from r. Sequence lines of a record are
// concatenated; blank lines are skipped.
func ReadFASTA(r io.Reader, gapChars string) (*Alignment, error) {
	a := New(gapChars)

	var current *Sequence
	scanner := gobls.NewScanner(r)
	for lineNumber := 1; scanner.Scan(); lineNumber++ {
		line := bytes.TrimSpace(scanner.Bytes())
		switch {
		case len(line) == 0:
			continue
		case line[0] == '>':
			current = &Sequence{Name: strings.TrimSpace(string(line[1:]))}
			a.Sequences = append(a.Sequences, current)
		case current == nil:
			return nil, fmt.Errorf("line %d: residues before the first header", lineNumber)
		default:
			current.Residues = append(current.Residues, line...)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read fasta: %w", err)
	}
	if len(a.Sequences) == 0 {
		return nil, ErrNoSequences
	}
	return a, nil
}

// WriteFASTA writes the visible columns of every sequence to w, one line per
// sequence. A nil hc writes every column.
func (a *Alignment) WriteFASTA(w io.Writer, hc *hiddencols.HiddenColumns) error {
	width := a.Width()
	for _, seq := range a.Sequences {
		residues := string(seq.Residues)
		if hc != nil {
			residues = VisibleSequence(seq, hc, 0, width-1)
		}
		if _, err := fmt.Fprintf(w, ">%s\n%s\n", seq.Name, residues); err != nil {
			return err
		}
	}
	return nil
}

// Width returns the length of the longest sequence.
func (a *Alignment) Width() int {
	width := 0
	for _, seq := range a.Sequences {
		width = max(width, seq.Len())
	}
	return width
}

// Height returns the number of sequences.
func (a *Alignment) Height() int {
	return len(a.Sequences)
}

// IsGap reports whether c is one of the alignment's gap characters.
func (a *Alignment) IsGap(c byte) bool {
	return strings.IndexByte(a.GapChars, c) >= 0
}

// gapChar returns the character used to pad sequences.
func (a *Alignment) gapChar() byte {
	return a.GapChars[0]
}

func (a *Alignment) sequence(i int) (*Sequence, error) {
	if i < 0 || i >= len(a.Sequences) {
		return nil, fmt.Errorf("%w: %d of %d", ErrSequenceIndex, i, len(a.Sequences))
	}
	return a.Sequences[i], nil
}

// Insertions returns the runs of gap columns in sequence i.
func (a *Alignment) Insertions(i int) ([]hiddencols.Region, error) {
	seq, err := a.sequence(i)
	if err != nil {
		return nil, err
	}

	var runs []hiddencols.Region
	runStart := -1
	for col, c := range seq.Residues {
		switch {
		case a.IsGap(c) && runStart == -1:
			runStart = col
		case !a.IsGap(c) && runStart != -1:
			runs = append(runs, hiddencols.Region{Start: runStart, End: col - 1})
			runStart = -1
		}
	}
	if runStart != -1 {
		runs = append(runs, hiddencols.Region{Start: runStart, End: seq.Len() - 1})
	}
	return runs, nil
}

// GapBits returns the gap columns of sequence i as a bitset.
func (a *Alignment) GapBits(i int) (*bitset.BitSet, error) {
	seq, err := a.sequence(i)
	if err != nil {
		return nil, err
	}

	bits := bitset.New(uint(seq.Len()))
	for col, c := range seq.Residues {
		if a.IsGap(c) {
			bits.Set(uint(col))
		}
	}
	return bits, nil
}

// HideInsertionsOf hides every gap column of sequence i in hc, so that the
// view shows the alignment from the point of view of that sequence.
func (a *Alignment) HideInsertionsOf(i int, hc *hiddencols.HiddenColumns) error {
	runs, err := a.Insertions(i)
	if err != nil {
		return err
	}
	return hc.HideList(runs)
}

// PropagateInsertions carries the hidden columns of a view onto this
// alignment after it was rebuilt around the profile sequence.
//
// origGaps holds the gap columns of the profile in the original view. Hidden
// gap columns are dropped from hc, the remaining hidden regions are moved
// left by the number of gaps before them, and every sequence other than the
// profile is padded with gaps where each region was. The returned
// HiddenColumns covers the padded columns.
func (a *Alignment) PropagateInsertions(profile int, origGaps *bitset.BitSet, hc *hiddencols.HiddenColumns) (*hiddencols.HiddenColumns, error) {
	if _, err := a.sequence(profile); err != nil {
		return nil, err
	}

	hc.AndNot(origGaps)

	propagated := hiddencols.New()
	for r := range hc.All() {
		// Hidden regions contain no gaps now, so every gap before the region
		// lies strictly before its start
		gapsBefore := 0
		if r.Start > 0 {
			gapsBefore = int(origGaps.Count()) - int(countFrom(origGaps, uint(r.Start)))
		}

		left := r.Start - gapsBefore
		right := r.End - gapsBefore
		if err := propagated.HideColumns(left, right); err != nil {
			return nil, err
		}
		a.padGaps(left, right, profile)
	}
	return propagated, nil
}

// countFrom counts the set bits at or after from.
func countFrom(bits *bitset.BitSet, from uint) uint {
	n := uint(0)
	for i, ok := bits.NextSet(from); ok; i, ok = bits.NextSet(i + 1) {
		n++
	}
	return n
}

// padGaps inserts right-left+1 gap characters at column left of every
// sequence except skip that is at least left columns long.
func (a *Alignment) padGaps(left, right, skip int) {
	pad := bytes.Repeat([]byte{a.gapChar()}, right-left+1)
	for i, seq := range a.Sequences {
		if i == skip || seq.Len() < left {
			continue
		}
		residues := make([]byte, 0, seq.Len()+len(pad))
		residues = append(residues, seq.Residues[:left]...)
		residues = append(residues, pad...)
		residues = append(residues, seq.Residues[left:]...)
		seq.Residues = residues
	}
}

// VisibleSequence returns the residues of seq in the visible columns of
// [start, end]. Columns past the end of the sequence are skipped.
func VisibleSequence(seq *Sequence, hc *hiddencols.HiddenColumns, start, end int) string {
	end = min(end, seq.Len()-1)
	if end < start {
		return ""
	}

	var sb strings.Builder
	it := hc.VisibleContigsIterator(start, end+1, false)
	for it.HasNext() {
		block, err := it.Next()
		if err != nil {
			break
		}
		sb.Write(seq.Residues[block.Start : block.End+1])
	}
	return sb.String()
}

// InsertGapColumns inserts count gap columns before column at in every
// sequence long enough to reach it, and shifts hc to match.
func (a *Alignment) InsertGapColumns(at, count int, hc *hiddencols.HiddenColumns) error {
	if err := hc.InsertColumns(at, count); err != nil {
		return err
	}
	for i := range a.Sequences {
		a.padGapsAt(i, at, count)
	}
	return nil
}

func (a *Alignment) padGapsAt(i, at, count int) {
	seq := a.Sequences[i]
	if seq.Len() < at {
		return
	}
	pad := bytes.Repeat([]byte{a.gapChar()}, count)
	seq.Residues = append(seq.Residues[:at:at], append(pad, seq.Residues[at:]...)...)
}

// DeleteColumns removes the columns [at, at+count-1] from every sequence and
// shifts hc to match.
func (a *Alignment) DeleteColumns(at, count int, hc *hiddencols.HiddenColumns) error {
	if err := hc.DeleteColumns(at, count); err != nil {
		return err
	}
	for _, seq := range a.Sequences {
		if at >= seq.Len() {
			continue
		}
		last := min(at+count, seq.Len())
		seq.Residues = append(seq.Residues[:at:at], seq.Residues[last:]...)
	}
	return nil
}

// Crop returns the columns [start, end] of the alignment as a new alignment,
// together with the hidden regions of hc that lie inside the window, re-based
// so that start becomes column 0.
func (a *Alignment) Crop(start, end int, hc *hiddencols.HiddenColumns) (*Alignment, *hiddencols.HiddenColumns) {
	cropped := New(a.GapChars)
	for _, seq := range a.Sequences {
		var residues []byte
		if start < seq.Len() {
			residues = bytes.Clone(seq.Residues[start:min(end+1, seq.Len())])
		}
		cropped.Sequences = append(cropped.Sequences, &Sequence{Name: seq.Name, Residues: residues})
	}
	return cropped, hc.CopyWithin(start, end, start)
}
