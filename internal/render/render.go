// Package render draws an alignment window with its hidden columns collapsed
// into marker columns.
package render

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/phroun/hiddencols"
	"github.com/phroun/hiddencols/internal/alignment"
	"github.com/phroun/hiddencols/internal/config"
	"golang.org/x/term"
)

const maxNameWidth = 20

// Options control how a window is drawn.
type Options struct {
	Marker        string // drawn where hidden columns were collapsed
	ShowRuler     bool
	RulerInterval int
	Width         int // visible columns per block; 0 draws everything in one block
	Plain         bool
	HiddenColor   string
	RulerColor    string
}

// FromConfig converts the render section of the configuration.
func FromConfig(cfg config.RenderConfig) Options {
	return Options{
		Marker:        cfg.Marker,
		ShowRuler:     cfg.ShowRuler,
		RulerInterval: cfg.RulerInterval,
		Width:         cfg.Width,
		Plain:         !cfg.Color,
		HiddenColor:   cfg.HiddenColor,
		RulerColor:    cfg.RulerColor,
	}
}

// Renderer draws alignments.
type Renderer struct {
	opts   Options
	marker lipgloss.Style
	ruler  lipgloss.Style
	name   lipgloss.Style
}

// New creates a Renderer. A missing marker or ruler interval falls back to
// the configuration defaults.
func New(opts Options) *Renderer {
	defaults := config.DefaultConfig().Render
	if opts.Marker == "" {
		opts.Marker = defaults.Marker
	}
	if opts.RulerInterval <= 0 {
		opts.RulerInterval = defaults.RulerInterval
	}

	r := &Renderer{
		opts:   opts,
		marker: lipgloss.NewStyle(),
		ruler:  lipgloss.NewStyle(),
		name:   lipgloss.NewStyle(),
	}
	if !opts.Plain {
		r.marker = r.marker.Foreground(lipgloss.Color(opts.HiddenColor)).Bold(true)
		r.ruler = r.ruler.Foreground(lipgloss.Color(opts.RulerColor))
		r.name = r.name.Bold(true)
	}
	return r
}

// Cell is one output column: either an absolute alignment column or a
// marker standing in for a hidden region.
type Cell struct {
	Column  int // absolute column, -1 for a marker
	Visible int // visible column; for a marker, the visible column after it
}

// IsMarker reports whether the cell stands in for hidden columns.
func (c Cell) IsMarker() bool {
	return c.Column < 0
}

// Layout returns the output columns for width visible columns starting at
// visible column start.
func Layout(hc *hiddencols.HiddenColumns, start, width int) []Cell {
	if width <= 0 {
		return nil
	}
	end := start + width

	var cells []Cell
	// Hidden columns just left of the window
	if starts := hc.StartRegionIterator(start, start); starts.HasNext() {
		cells = append(cells, Cell{Column: -1, Visible: start})
	}

	vis := start
	contigs := hc.VisibleContigsIterator(start, end, true)
	for contigs.HasNext() {
		block, err := contigs.Next()
		if err != nil {
			break
		}
		for col := block.Start; col <= block.End; col++ {
			cells = append(cells, Cell{Column: col, Visible: vis})
			vis++
		}
		if contigs.EndsAtHidden() {
			cells = append(cells, Cell{Column: -1, Visible: vis})
		}
	}
	return cells
}

// Window draws the rows of a for width visible columns from visible column
// start. Rows shorter than the window are padded with spaces.
func (r *Renderer) Window(a *alignment.Alignment, hc *hiddencols.HiddenColumns, start, width int) []string {
	cells := Layout(hc, start, width)
	nameWidth := NameWidth(a)

	var lines []string
	if r.opts.ShowRuler {
		lines = append(lines, strings.Repeat(" ", nameWidth)+r.rulerLine(cells))
	}
	for _, seq := range a.Sequences {
		var sb strings.Builder
		if nameWidth > 0 {
			sb.WriteString(r.name.Render(fmt.Sprintf("%-*s", nameWidth-1, truncate(seq.Name, nameWidth-1))))
			sb.WriteByte(' ')
		}
		for _, c := range cells {
			switch {
			case c.IsMarker():
				sb.WriteString(r.marker.Render(r.opts.Marker))
			case c.Column < seq.Len():
				sb.WriteByte(seq.Residues[c.Column])
			default:
				sb.WriteByte(' ')
			}
		}
		lines = append(lines, sb.String())
	}
	return lines
}

// rulerLine labels every RulerInterval-th visible column with its 1-based
// number. Labels never overwrite markers or each other.
func (r *Renderer) rulerLine(cells []Cell) string {
	line := make([]string, len(cells))
	for i := range line {
		line[i] = " "
	}

	free := 0
	for i, c := range cells {
		if c.IsMarker() {
			line[i] = r.marker.Render(r.opts.Marker)
			free = i + 1
			continue
		}
		if i < free || c.Visible%r.opts.RulerInterval != 0 {
			continue
		}
		label := strconv.Itoa(c.Visible + 1)
		n := 0
		for n < len(label) && i+n < len(cells) && !cells[i+n].IsMarker() {
			n++
		}
		if n < len(label) {
			continue
		}
		line[i] = r.ruler.Render(label)
		for j := 1; j < n; j++ {
			line[i+j] = ""
		}
		free = i + n
	}
	return strings.Join(line, "")
}

// NameWidth returns the width of the name column drawn before each row,
// including its trailing space. It is zero when no sequence has a name.
func NameWidth(a *alignment.Alignment) int {
	width := 0
	for _, seq := range a.Sequences {
		width = max(width, len(seq.Name))
	}
	if width == 0 {
		return 0
	}
	return min(width, maxNameWidth) + 1
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// VisibleWidth returns how many columns of a are visible.
func VisibleWidth(a *alignment.Alignment, hc *hiddencols.HiddenColumns) int {
	width := a.Width()
	if width == 0 {
		return 0
	}
	visible := 0
	contigs := hc.VisibleContigsIterator(0, width, false)
	for contigs.HasNext() {
		block, err := contigs.Next()
		if err != nil {
			break
		}
		visible += block.Width()
	}
	return visible
}

// Render writes the whole alignment to w in blocks of Options.Width visible
// columns separated by blank lines.
func (r *Renderer) Render(w io.Writer, a *alignment.Alignment, hc *hiddencols.HiddenColumns) error {
	total := VisibleWidth(a, hc)
	step := r.opts.Width
	if step <= 0 {
		step = total
	}

	for start := 0; start < total; start += step {
		if start > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		for _, line := range r.Window(a, hc, start, min(step, total-start)) {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

// TerminalWidth returns the width of the terminal on stdout, or fallback
// when stdout is not a terminal.
func TerminalWidth(fallback int) int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return fallback
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}
