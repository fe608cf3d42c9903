// Package repl is a line-oriented shell for experimenting with hidden
// columns and a column selection.
package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/phroun/hiddencols"
	"github.com/phroun/hiddencols/internal/selection"
	"github.com/rs/zerolog"
)

const prompt = "hidecols> "

// REPL holds the state of the interactive session
type REPL struct {
	hc     *hiddencols.HiddenColumns
	sel    *selection.ColumnSelection
	reader *bufio.Reader
	out    io.Writer
	log    zerolog.Logger

	// Prompt controls whether a prompt is printed before each command.
	Prompt bool
}

// New creates a REPL reading commands from in and writing to out. A nil hc
// or sel starts empty.
func New(hc *hiddencols.HiddenColumns, sel *selection.ColumnSelection, in io.Reader, out io.Writer, log zerolog.Logger) *REPL {
	if hc == nil {
		hc = hiddencols.New()
	}
	if sel == nil {
		sel = selection.New()
	}
	return &REPL{
		hc:     hc,
		sel:    sel,
		reader: bufio.NewReader(in),
		out:    out,
		log:    log,
	}
}

// HiddenColumns returns the columns the session operates on.
func (r *REPL) HiddenColumns() *hiddencols.HiddenColumns {
	return r.hc
}

// Selection returns the session's column selection.
func (r *REPL) Selection() *selection.ColumnSelection {
	return r.sel
}

// Run reads and executes commands until quit or the end of input.
func (r *REPL) Run() error {
	for {
		if r.Prompt {
			fmt.Fprint(r.out, prompt)
		}
		input, err := r.reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read command: %w", err)
		}

		if line := strings.TrimSpace(input); line != "" {
			if !r.Execute(line) {
				return nil
			}
		}
		if err != nil {
			return nil
		}
	}
}

// Execute runs a single command line. It returns false when the session
// should end.
func (r *REPL) Execute(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]
	r.log.Debug().Str("command", cmd).Strs("args", args).Msg("execute")

	switch cmd {
	case "help":
		r.printHelp()

	case "quit", "exit":
		return false

	case "hide":
		r.cmdHide(args)

	case "hidesel":
		r.cmdHideSelected(args)

	case "reveal":
		r.cmdReveal(args)

	case "revealall":
		r.hc.RevealAllHiddenColumns(r.sel)
		r.printRegions()

	case "clear":
		r.cmdClear(args)

	case "a2v":
		r.cmdTranslate(args, r.hc.AbsoluteToVisibleColumn)

	case "v2a":
		r.cmdTranslate(args, r.hc.VisibleToAbsoluteColumn)

	case "offset":
		r.cmdOffset(args)

	case "boundary":
		r.cmdBoundary(args)

	case "visible":
		r.cmdVisible(args)

	case "regions":
		r.printRegions()

	case "contigs":
		r.cmdContigs(args)

	case "starts":
		r.cmdStarts(args)

	case "cols":
		r.cmdCols(args)

	case "select":
		r.cmdSelect(args)

	case "unselect":
		r.cmdUnselect(args)

	case "invert":
		r.cmdInvert(args)

	case "selection":
		r.printSelection()

	case "insert":
		r.cmdInsert(args)

	case "delete":
		r.cmdDelete(args)

	case "check":
		if err := r.hc.CheckInvariants(); err != nil {
			fmt.Fprintf(r.out, "Check failed: %v\n", err)
			return true
		}
		fmt.Fprintln(r.out, "OK")

	case "status":
		r.cmdStatus()

	default:
		fmt.Fprintf(r.out, "Unknown command: %s. Type 'help' for available commands.\n", cmd)
	}

	return true
}

func (r *REPL) printHelp() {
	help := `
Available Commands:
-------------------

HIDING:
  hide <start> <end>        Hide the absolute columns [start, end]
  hidesel [<col>]           Hide the selection, or <col> and its selected neighbours
  reveal <start>            Reveal the region starting at <start> and select it
  revealall                 Reveal every region and select the revealed columns
  clear <start> <end>       Make [start, end] visible without selecting anything

TRANSLATION:
  a2v <col>                 Absolute column to visible column
  v2a <col>                 Visible column to absolute column
  offset <distance> <from>  Move <distance> visible columns from absolute <from>
  boundary left|right <col> Nearest hidden region boundary
  visible <col>             Whether an absolute column is visible

ITERATION:
  regions                   List hidden regions
  contigs <start> <end> [vis]  Visible blocks of [start, end); '*' marks a block followed by hidden columns
  starts <start> <end>      Visible positions of region starts in [start, end]
  cols <lo> <hi>            Visible absolute columns in [lo, hi]

SELECTION:
  select <col>...           Add columns to the selection
  unselect <col>...         Remove columns from the selection
  invert <first> <width>    Invert the selection of [first, first+width)
  selection                 List selected ranges

EDITS:
  insert <at> <count>       Columns were inserted before <at>
  delete <at> <count>       Columns [at, at+count) were deleted

OTHER:
  check                     Verify internal consistency
  status                    Show counts and cursor position
  help                      Show this help message
  quit, exit                Exit the REPL
`
	fmt.Fprintln(r.out, help)
}

// ints parses every argument as an integer, reporting the first failure.
func (r *REPL) ints(args []string, want int, usage string) ([]int, bool) {
	if len(args) < want {
		fmt.Fprintf(r.out, "Usage: %s\n", usage)
		return nil, false
	}
	values := make([]int, len(args))
	for i, arg := range args {
		v, err := strconv.Atoi(arg)
		if err != nil {
			fmt.Fprintf(r.out, "Invalid number %q: %v\n", arg, err)
			return nil, false
		}
		values[i] = v
	}
	return values, true
}

func (r *REPL) cmdHide(args []string) {
	v, ok := r.ints(args, 2, "hide <start> <end>")
	if !ok {
		return
	}
	if err := r.hc.HideColumns(v[0], v[1]); err != nil {
		fmt.Fprintf(r.out, "Hide error: %v\n", err)
		return
	}
	r.printRegions()
}

func (r *REPL) cmdHideSelected(args []string) {
	var err error
	if len(args) == 0 {
		err = r.sel.HideSelectedColumns(r.hc)
	} else {
		v, ok := r.ints(args, 1, "hidesel [<col>]")
		if !ok {
			return
		}
		err = r.sel.HideSelectedColumnsAt(v[0], r.hc)
	}
	if err != nil {
		fmt.Fprintf(r.out, "Hide error: %v\n", err)
		return
	}
	r.printRegions()
}

func (r *REPL) cmdReveal(args []string) {
	v, ok := r.ints(args, 1, "reveal <start>")
	if !ok {
		return
	}
	before := r.hc.NumberOfRegions()
	r.hc.RevealHiddenColumns(v[0], r.sel)
	if r.hc.NumberOfRegions() == before {
		fmt.Fprintf(r.out, "No hidden region starts at %d\n", v[0])
		return
	}
	r.printRegions()
}

func (r *REPL) cmdClear(args []string) {
	v, ok := r.ints(args, 2, "clear <start> <end>")
	if !ok {
		return
	}
	if err := r.hc.ClearRange(v[0], v[1]); err != nil {
		fmt.Fprintf(r.out, "Clear error: %v\n", err)
		return
	}
	r.printRegions()
}

func (r *REPL) cmdTranslate(args []string, translate func(int) int) {
	v, ok := r.ints(args, 1, "a2v|v2a <col>")
	if !ok {
		return
	}
	fmt.Fprintln(r.out, translate(v[0]))
}

func (r *REPL) cmdOffset(args []string) {
	v, ok := r.ints(args, 2, "offset <distance> <from>")
	if !ok {
		return
	}
	fmt.Fprintln(r.out, r.hc.OffsetByVisibleColumns(v[0], v[1]))
}

func (r *REPL) cmdBoundary(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(r.out, "Usage: boundary left|right <col>")
		return
	}

	var left bool
	switch strings.ToLower(args[0]) {
	case "left":
		left = true
	case "right":
	default:
		fmt.Fprintln(r.out, "Unknown direction. Use: left or right")
		return
	}

	v, ok := r.ints(args[1:], 1, "boundary left|right <col>")
	if !ok {
		return
	}
	fmt.Fprintln(r.out, r.hc.NextHiddenBoundary(left, v[0]))
}

func (r *REPL) cmdVisible(args []string) {
	v, ok := r.ints(args, 1, "visible <col>")
	if !ok {
		return
	}
	fmt.Fprintln(r.out, r.hc.IsVisible(v[0]))
}

func (r *REPL) printRegions() {
	if !r.hc.HasHiddenColumns() {
		fmt.Fprintln(r.out, "No hidden columns")
		return
	}
	fmt.Fprintf(r.out, "Hidden: %s\n", r.hc.RegionsToString(" ", "-"))
}

func (r *REPL) cmdContigs(args []string) {
	useVisible := len(args) > 2 && strings.EqualFold(args[2], "vis")
	if useVisible {
		args = args[:2]
	}
	v, ok := r.ints(args, 2, "contigs <start> <end> [vis]")
	if !ok {
		return
	}

	it := r.hc.VisibleContigsIterator(v[0], v[1], useVisible)
	var blocks []string
	for it.HasNext() {
		block, err := it.Next()
		if err != nil {
			break
		}
		s := block.String()
		if it.EndsAtHidden() {
			s += "*"
		}
		blocks = append(blocks, s)
	}
	r.printList(blocks)
}

func (r *REPL) cmdStarts(args []string) {
	v, ok := r.ints(args, 2, "starts <start> <end>")
	if !ok {
		return
	}

	it := r.hc.StartRegionIterator(v[0], v[1])
	var starts []string
	for it.HasNext() {
		pos, err := it.Next()
		if err != nil {
			break
		}
		starts = append(starts, strconv.Itoa(pos))
	}
	r.printList(starts)
}

func (r *REPL) cmdCols(args []string) {
	v, ok := r.ints(args, 2, "cols <lo> <hi>")
	if !ok {
		return
	}

	var cols []string
	for col := range r.hc.VisibleColumns(v[0], v[1]) {
		cols = append(cols, strconv.Itoa(col))
	}
	r.printList(cols)
}

func (r *REPL) printList(items []string) {
	if len(items) == 0 {
		fmt.Fprintln(r.out, "(none)")
		return
	}
	fmt.Fprintln(r.out, strings.Join(items, " "))
}

func (r *REPL) cmdSelect(args []string) {
	v, ok := r.ints(args, 1, "select <col>...")
	if !ok {
		return
	}
	for _, col := range v {
		if col < 0 {
			fmt.Fprintf(r.out, "Invalid column: %d\n", col)
			return
		}
	}
	for _, col := range v {
		r.sel.AddElement(col)
	}
	r.printSelection()
}

func (r *REPL) cmdUnselect(args []string) {
	v, ok := r.ints(args, 1, "unselect <col>...")
	if !ok {
		return
	}
	for _, col := range v {
		r.sel.RemoveElement(col)
	}
	r.printSelection()
}

func (r *REPL) cmdInvert(args []string) {
	v, ok := r.ints(args, 2, "invert <first> <width>")
	if !ok {
		return
	}
	r.sel.InvertColumnSelection(v[0], v[1], r.hc)
	r.printSelection()
}

func (r *REPL) printSelection() {
	ranges := r.sel.Ranges()
	if len(ranges) == 0 {
		fmt.Fprintln(r.out, "Nothing selected")
		return
	}
	items := make([]string, len(ranges))
	for i, rg := range ranges {
		items[i] = rg.String()
	}
	fmt.Fprintf(r.out, "Selected: %s\n", strings.Join(items, " "))
}

func (r *REPL) cmdInsert(args []string) {
	v, ok := r.ints(args, 2, "insert <at> <count>")
	if !ok {
		return
	}
	if err := r.hc.InsertColumns(v[0], v[1]); err != nil {
		fmt.Fprintf(r.out, "Insert error: %v\n", err)
		return
	}
	r.sel.CompensateForEdits(v[0], -v[1])
	r.printRegions()
}

func (r *REPL) cmdDelete(args []string) {
	v, ok := r.ints(args, 2, "delete <at> <count>")
	if !ok {
		return
	}
	at, count := v[0], v[1]
	if err := r.hc.DeleteColumns(at, count); err != nil {
		fmt.Fprintf(r.out, "Delete error: %v\n", err)
		return
	}
	r.sel.RemoveElements(at, at+count-1)
	r.sel.CompensateForEdits(at+count, count)
	r.printRegions()
}

func (r *REPL) cmdStatus() {
	stats := r.hc.Stats()

	fmt.Fprintln(r.out, "Hidden Columns Status:")
	fmt.Fprintf(r.out, "  Regions: %d\n", stats.Regions)
	fmt.Fprintf(r.out, "  Hidden:  %d\n", stats.HiddenColumns)
	if stats.Regions > 0 {
		fmt.Fprintf(r.out, "  Widest:  %v\n", stats.Widest)
	}
	fmt.Fprintf(r.out, "  Cursor:  region=%d, hidden before=%d\n",
		stats.Cursor.RegionIndex, stats.Cursor.HiddenSoFar)
	fmt.Fprintf(r.out, "  Selected: %d\n", r.sel.Len())
}
