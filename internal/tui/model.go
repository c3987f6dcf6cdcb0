// Package tui implements the interactive results view. The bubbletea model is
// a thin adapter: key events become calls on rowlist.Controller and the view
// reflects the controller's row order and visibility.
package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/colonyops/shortlist/internal/core/rowlist"
	"github.com/colonyops/shortlist/internal/core/selection"
	"github.com/colonyops/shortlist/internal/core/styles"
	"github.com/colonyops/shortlist/pkg/kv"
)

const snippetCacheSize = 256

// snippetKey identifies a rendered snippet by row and wrap width.
type snippetKey struct {
	row  *rowlist.Row
	wrap int
}

// Deps are the collaborators the view renders.
type Deps struct {
	Controller *rowlist.Controller
	Selection  *selection.Selection // optional; shown in the files pane
}

// Opts configures the TUI behavior.
type Opts struct {
	Title string // heading, e.g. the job description's first line
	Query string // initial filter
}

// Model is the bubbletea model for the results view.
type Model struct {
	ctrl      *rowlist.Controller
	selection *selection.Selection
	title     string

	search    textinput.Model
	searching bool
	cursor    int
	showFiles bool

	keys keyMap
	help help.Model

	width  int
	height int

	snippets *kv.Store[snippetKey, string]
	quitting bool
}

// New creates the model. An initial query is applied to the controller immediately.
func New(deps Deps, opts Opts) Model {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "name, skill, or score"
	ti.CharLimit = 128
	ti.SetValue(opts.Query)

	title := opts.Title
	if title == "" {
		title = "Ranked candidates"
	}

	m := Model{
		ctrl:      deps.Controller,
		selection: deps.Selection,
		title:     title,
		search:    ti,
		keys:      defaultKeyMap(),
		help:      help.New(),
		snippets:  kv.New[snippetKey, string](snippetCacheSize),
	}

	if opts.Query != "" {
		m.ctrl.Filter(opts.Query)
	}

	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.search.Width = max(msg.Width-4, 10)
		m.snippets.Clear()
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateNormal(msg)
	}

	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Accept):
		m.searching = false
		m.search.Blur()
		return m, nil
	case msg.String() == "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.applyFilter(m.search.Value())
	}
	return m, cmd
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.Clear):
		m.search.SetValue("")
		m.applyFilter("")

	case key.Matches(msg, m.keys.Sort):
		m.applySort(m.ctrl.SortKey().Next())

	case key.Matches(msg, m.keys.SortKey):
		n, err := strconv.Atoi(msg.String())
		if sortKeys := rowlist.SortKeys(); err == nil && n >= 1 && n <= len(sortKeys) {
			m.applySort(sortKeys[n-1])
		}

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.ctrl.Visible())-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Toggle):
		if row := m.Selected(); row != nil {
			m.ctrl.ToggleSnippet(row)
		}

	case key.Matches(msg, m.keys.Files):
		m.showFiles = !m.showFiles

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

// applyFilter filters and keeps the cursor on the same row when it is still visible.
func (m *Model) applyFilter(q string) {
	selected := m.Selected()
	m.ctrl.Filter(q)
	m.restoreCursor(selected)
}

func (m *Model) applySort(k rowlist.SortKey) {
	selected := m.Selected()
	m.ctrl.Sort(k)
	m.restoreCursor(selected)
}

func (m *Model) restoreCursor(selected *rowlist.Row) {
	visible := m.ctrl.Visible()
	if selected != nil {
		for i, r := range visible {
			if r == selected {
				m.cursor = i
				return
			}
		}
	}
	m.cursor = min(m.cursor, max(len(visible)-1, 0))
}

// Selected returns the row under the cursor, or nil when nothing is visible.
func (m Model) Selected() *rowlist.Row {
	visible := m.ctrl.Visible()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return nil
	}
	return visible[m.cursor]
}

// Searching reports whether the filter input has focus.
func (m Model) Searching() bool { return m.searching }

// Quitting reports whether the user asked to exit.
func (m Model) Quitting() bool { return m.quitting }

func (m Model) glamourStyle() string {
	if s := styles.CurrentPalette.Glamour; s != "" {
		return s
	}
	return "dark"
}
