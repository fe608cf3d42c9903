// Package viewer is an interactive terminal viewer for an alignment whose
// columns can be hidden and revealed.
package viewer

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/phroun/hiddencols"
	"github.com/phroun/hiddencols/internal/alignment"
	"github.com/phroun/hiddencols/internal/render"
	"github.com/phroun/hiddencols/internal/selection"
	"github.com/rs/zerolog"
)

const (
	defaultWidth  = 80
	rowMarkWidth  = 2
	markerSlack   = 4
	minViewColumn = 10
)


// Options configure a viewer Model.
type Options struct {
	Render     render.Options
	ScrollStep int
	Logger     zerolog.Logger

	// Copy places text on the clipboard. It defaults to the system
	// clipboard.
	Copy func(string) error
}

// Model is the bubbletea model of the viewer. The viewport origin and the
// column cursor are absolute columns and always visible.
type Model struct {
	aln      *alignment.Alignment
	hc       *hiddencols.HiddenColumns
	sel      *selection.ColumnSelection
	renderer *render.Renderer
	keys     keyMap
	help     help.Model
	log      zerolog.Logger
	copy     func(string) error

	cursorStyle lipgloss.Style
	statusStyle lipgloss.Style

	scrollStep int
	width      int
	origin     int
	cursor     int
	row        int
	status     string
}

// New creates a viewer over a with hidden columns hc.
func New(a *alignment.Alignment, hc *hiddencols.HiddenColumns, opts Options) Model {
	if opts.ScrollStep <= 0 {
		opts.ScrollStep = 20
	}
	if opts.Copy == nil {
		opts.Copy = clipboard.WriteAll
	}

	m := Model{
		aln:        a,
		hc:         hc,
		sel:        selection.New(),
		renderer:   render.New(opts.Render),
		keys:       defaultKeyMap(),
		help:       help.New(),
		log:        opts.Logger,
		copy:       opts.Copy,
		scrollStep: opts.ScrollStep,
		width:      defaultWidth,

		cursorStyle: lipgloss.NewStyle(),
		statusStyle: lipgloss.NewStyle(),
	}
	if !opts.Render.Plain {
		m.cursorStyle = m.cursorStyle.Foreground(lipgloss.Color("#7aa2f7")).Bold(true)
		m.statusStyle = m.statusStyle.Foreground(lipgloss.Color("#565f89"))
	}
	m.origin = m.snap(0)
	m.cursor = m.origin
	return m
}

// Run starts the viewer on the terminal and blocks until it exits.
func Run(a *alignment.Alignment, hc *hiddencols.HiddenColumns, opts Options) error {
	_, err := tea.NewProgram(New(a, hc, opts), tea.WithAltScreen()).Run()
	return err
}

// Selection returns the columns selected in the viewer.
func (m Model) Selection() *selection.ColumnSelection {
	return m.sel
}

// Cursor returns the absolute column under the cursor and the current row.
func (m Model) Cursor() (col, row int) {
	return m.cursor, m.row
}

// Status returns the message shown in the status line.
func (m Model) Status() string {
	return m.status
}

func (m Model) Init() tea.Cmd { return nil }

// Update handles key presses and terminal resizes.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.follow()

	case tea.KeyMsg:
		m.status = ""
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Left):
			m.moveCursor(-1)
		case key.Matches(msg, m.keys.Right):
			m.moveCursor(1)
		case key.Matches(msg, m.keys.Up):
			m.row = max(m.row-1, 0)
		case key.Matches(msg, m.keys.Down):
			m.row = min(m.row+1, max(m.aln.Height()-1, 0))
		case key.Matches(msg, m.keys.ScrollLeft):
			m.scroll(-m.scrollStep)
		case key.Matches(msg, m.keys.ScrollRight):
			m.scroll(m.scrollStep)
		case key.Matches(msg, m.keys.Select):
			m.toggleSelection()
		case key.Matches(msg, m.keys.Hide):
			m.hideAtCursor()
		case key.Matches(msg, m.keys.HideAll):
			m.hideSelection()
		case key.Matches(msg, m.keys.Reveal):
			m.revealAtCursor()
		case key.Matches(msg, m.keys.RevealAll):
			m.hc.RevealAllHiddenColumns(m.sel)
			m.status = "revealed all columns"
		case key.Matches(msg, m.keys.HideGaps):
			m.hideGaps()
		case key.Matches(msg, m.keys.Yank):
			m.yank()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}
	return m, nil
}

// lastVisible returns the last visible column of the alignment, or -1.
func (m *Model) lastVisible() int {
	for col := m.aln.Width() - 1; col >= 0; col-- {
		if m.hc.IsVisible(col) {
			return col
		}
	}
	return -1
}

// snap moves col onto a visible column inside the alignment.
func (m *Model) snap(col int) int {
	last := m.lastVisible()
	if last < 0 {
		return 0
	}
	col = min(max(col, 0), last)
	if m.hc.IsVisible(col) {
		return col
	}

	// Prefer the first visible column after the hidden region. A region at
	// column zero translates to the column after it directly.
	vis := m.hc.AbsoluteToVisibleColumn(col)
	if right := m.hc.VisibleToAbsoluteColumn(vis); right > col {
		return right
	}
	if right := m.hc.VisibleToAbsoluteColumn(vis + 1); right <= last {
		return right
	}
	return m.hc.VisibleToAbsoluteColumn(vis)
}

// viewColumns returns how many visible columns fit on screen.
func (m *Model) viewColumns() int {
	cols := m.width - rowMarkWidth - render.NameWidth(m.aln) - markerSlack
	return max(cols, minViewColumn)
}

func (m *Model) moveCursor(distance int) {
	m.cursor = m.snap(m.hc.OffsetByVisibleColumns(distance, m.cursor))
	m.follow()
}

func (m *Model) scroll(distance int) {
	m.origin = m.snap(m.hc.OffsetByVisibleColumns(distance, m.origin))
	m.cursor = m.snap(m.hc.OffsetByVisibleColumns(distance, m.cursor))
	m.follow()
}

// follow keeps the cursor inside the viewport.
func (m *Model) follow() {
	m.origin = m.snap(m.origin)
	m.cursor = m.snap(m.cursor)

	first := m.hc.AbsoluteToVisibleColumn(m.origin)
	at := m.hc.AbsoluteToVisibleColumn(m.cursor)
	cols := m.viewColumns()
	switch {
	case at < first:
		m.origin = m.cursor
	case at >= first+cols:
		m.origin = m.snap(m.hc.OffsetByVisibleColumns(-(cols - 1), m.cursor))
	}
}

func (m *Model) toggleSelection() {
	if m.sel.Contains(m.cursor) {
		m.sel.RemoveElement(m.cursor)
		return
	}
	m.sel.AddElement(m.cursor)
}

func (m *Model) hideAtCursor() {
	if m.lastVisible() < 0 {
		return
	}
	if err := m.sel.HideSelectedColumnsAt(m.cursor, m.hc); err != nil {
		m.status = err.Error()
		return
	}
	m.log.Debug().Int("column", m.cursor).Msg("hide at cursor")
	m.follow()
}

func (m *Model) hideSelection() {
	if m.sel.IsEmpty() {
		m.status = "nothing selected"
		return
	}
	if err := m.sel.HideSelectedColumns(m.hc); err != nil {
		m.status = err.Error()
		return
	}
	m.follow()
}

func (m *Model) revealAtCursor() {
	r, ok := m.hc.RegionWithEdgeAt(m.hc.AbsoluteToVisibleColumn(m.cursor))
	if !ok {
		m.status = "no hidden columns next to the cursor"
		return
	}
	m.hc.RevealHiddenColumns(r.Start, m.sel)
	m.log.Debug().Stringer("region", r).Msg("reveal at cursor")
	m.status = fmt.Sprintf("revealed %v", r)
}

func (m *Model) hideGaps() {
	if err := m.aln.HideInsertionsOf(m.row, m.hc); err != nil {
		m.status = err.Error()
		return
	}
	m.status = fmt.Sprintf("hid the gaps of row %d", m.row+1)
	m.follow()
}

func (m *Model) yank() {
	if m.row >= m.aln.Height() {
		return
	}
	seq := m.aln.Sequences[m.row]
	text := alignment.VisibleSequence(seq, m.hc, 0, seq.Len()-1)
	if err := m.copy(text); err != nil {
		m.status = "copy failed: " + err.Error()
		return
	}
	m.status = fmt.Sprintf("copied %d residues", len(text))
}

// View draws the rows, a cursor line, the status line and the help bar.
func (m Model) View() string {
	start := m.hc.AbsoluteToVisibleColumn(m.origin)
	cols := m.viewColumns()

	lines := m.renderer.Window(m.aln, m.hc, start, cols)
	var sb strings.Builder
	for i, line := range lines {
		mark := "  "
		if row := i - (len(lines) - m.aln.Height()); row == m.row {
			mark = m.cursorStyle.Render(">") + " "
		}
		sb.WriteString(mark)
		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	offset := rowMarkWidth + render.NameWidth(m.aln)
	for i, c := range render.Layout(m.hc, start, cols) {
		if c.Column == m.cursor {
			sb.WriteString(strings.Repeat(" ", offset+i))
			sb.WriteString(m.cursorStyle.Render("^"))
			break
		}
	}
	sb.WriteByte('\n')

	status := fmt.Sprintf("column %d (visible %d)  hidden %d in %d regions  selected %d",
		m.cursor+1, m.hc.AbsoluteToVisibleColumn(m.cursor)+1,
		m.hc.Size(), m.hc.NumberOfRegions(), m.sel.Len())
	if m.status != "" {
		status += "  " + m.status
	}
	sb.WriteString(m.statusStyle.Render(status))
	sb.WriteByte('\n')
	sb.WriteString(m.help.View(m.keys))
	return sb.String()
}
