package ui

import (
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tailspect/tailspect/internal/query"
	"github.com/tailspect/tailspect/internal/recache"
	"github.com/tailspect/tailspect/internal/store"
	"github.com/tailspect/tailspect/internal/view"
)

type mode int

const (
	modeBrowse mode = iota
	modeFilter
	modeSearch
)

// tickMsg drives refresh while ingestion appends in the background; the
// viewer polls and must render with zero new records.
type tickMsg time.Time

const refreshEvery = 200 * time.Millisecond

// Model is the viewer state. The store and engine are shared with the
// ingestion side; the model only reads records and issues mark toggles.
type Model struct {
	store   *store.Store
	engine  *view.Engine
	cache   *recache.Cache
	filters []NamedFilter
	title   string

	keys   keyMap
	editor view.Editor
	input  textinput.Model
	mode   mode
	search *query.Filter

	cursor int // store index of the selected record
	top    int // first visible view row
	width  int
	height int
	status string
}

func newModel(opts Options) Model {
	input := textinput.New()
	input.Prompt = ""
	return Model{
		store:   opts.Store,
		engine:  opts.Engine,
		cache:   opts.Cache,
		filters: opts.Filters,
		title:   opts.Title,
		keys:    defaultKeyMap(),
		input:   input,
	}
}

func tick() tea.Cmd {
	return tea.Tick(refreshEvery, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 2
		return m.clamped(), nil
	case tickMsg:
		return m.clamped(), tick()
	case tea.KeyMsg:
		if m.mode != modeBrowse {
			return m.updateEditing(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.editor.SetDraft(m.input.Value())
		f, ok := m.editor.Commit(m.cache)
		if !ok {
			m.status = m.editor.Err().Error()
			return m, nil
		}
		if m.mode == modeFilter {
			m.engine.Apply(f)
			m.status = ""
		} else {
			m.search = f
			m.jump(1)
		}
		m.mode = modeBrowse
		m.input.Blur()
		return m.clamped(), nil
	case "esc":
		m.editor.Cancel()
		m.mode = modeBrowse
		m.status = ""
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.editor.SetDraft(m.input.Value())
	return m, cmd
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Down):
		m.moveBy(1)
	case key.Matches(msg, m.keys.Up):
		m.moveBy(-1)
	case key.Matches(msg, m.keys.PageDown):
		m.moveBy(m.pageRows())
	case key.Matches(msg, m.keys.PageUp):
		m.moveBy(-m.pageRows())
	case key.Matches(msg, m.keys.Top):
		m.moveTo(0)
	case key.Matches(msg, m.keys.Bottom):
		m.moveTo(m.engine.Len() - 1)
	case key.Matches(msg, m.keys.Filter):
		m.mode = modeFilter
		m.beginEdit(m.activeFilterSource())
	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		m.beginEdit(m.activeSearchSource())
	case key.Matches(msg, m.keys.Next):
		m.jump(1)
	case key.Matches(msg, m.keys.Prev):
		m.jump(-1)
	case key.Matches(msg, m.keys.Mark):
		if m.cursor >= 0 && m.cursor < m.store.Len() {
			m.store.ToggleMark(m.cursor, "yellow")
		}
	case key.Matches(msg, m.keys.NextMark):
		if idx, ok := m.engine.NextMark(m.cursor); ok {
			m.cursor = idx
		} else {
			m.status = "no marks"
		}
	case key.Matches(msg, m.keys.Clear):
		m.engine.Apply(nil)
		m.search = nil
		m.status = ""
	default:
		if idx := namedFilterIndex(msg.String()); idx >= 0 && idx < len(m.filters) {
			m.engine.Apply(m.filters[idx].Filter)
			m.status = "filter: " + m.filters[idx].Name
		}
	}
	return m.clamped(), nil
}

func namedFilterIndex(s string) int {
	if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
		return int(s[0] - '1')
	}
	return -1
}

func (m *Model) beginEdit(initial string) {
	m.editor.Begin(initial)
	m.input.SetValue(initial)
	m.input.CursorEnd()
	m.input.Focus()
	m.status = ""
}

func (m Model) activeFilterSource() string {
	if f := m.engine.Filter(); f != nil {
		return f.Source()
	}
	return ""
}

func (m Model) activeSearchSource() string {
	if m.search != nil {
		return m.search.Source()
	}
	return ""
}

// jump moves the cursor to the next or previous search match in store order,
// wrapping at the ends. With no matches the cursor stays put.
func (m *Model) jump(dir int) {
	if m.search == nil {
		return
	}
	var idx int
	var ok bool
	if dir > 0 {
		idx, ok = m.engine.SearchNext(m.search, m.cursor)
	} else {
		idx, ok = m.engine.SearchPrev(m.search, m.cursor)
	}
	if !ok {
		m.status = "no matches"
		return
	}
	m.cursor = idx
	m.status = ""
}

func (m *Model) moveBy(delta int) {
	m.moveTo(m.rowOf(m.cursor) + delta)
}

func (m *Model) moveTo(row int) {
	n := m.engine.Len()
	if n == 0 {
		m.cursor = -1
		return
	}
	if row < 0 {
		row = 0
	}
	if row >= n {
		row = n - 1
	}
	m.cursor = m.engine.At(row)
}

// rowOf maps a store index back to its view row: identity without a filter,
// binary search over the match list otherwise. A cursor filtered out of the
// view lands on the nearest following row.
func (m Model) rowOf(storeIdx int) int {
	if m.engine.Filter() == nil {
		return storeIdx
	}
	ids := m.engine.Indices()
	return sort.SearchInts(ids, storeIdx)
}

func (m Model) pageRows() int {
	rows := m.height - 2
	if rows < 1 {
		rows = 1
	}
	return rows
}

// clamped keeps the cursor on a live row and scrolls the window around it.
func (m Model) clamped() Model {
	n := m.engine.Len()
	if n == 0 {
		m.cursor = -1
		m.top = 0
		return m
	}
	row := m.rowOf(m.cursor)
	if row >= n {
		row = n - 1
	}
	if row < 0 {
		row = 0
	}
	m.cursor = m.engine.At(row)

	rows := m.pageRows()
	if row < m.top {
		m.top = row
	}
	if row >= m.top+rows {
		m.top = row - rows + 1
	}
	if m.top < 0 {
		m.top = 0
	}
	return m
}
