package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/shortlist/internal/core/rowlist"
	"github.com/colonyops/shortlist/internal/core/selection"
	"github.com/colonyops/shortlist/pkg/tuitest"
)

func newTestModel(t *testing.T, opts Opts) (Model, *rowlist.Controller) {
	t.Helper()

	ctrl := rowlist.New([]*rowlist.Row{
		{ID: "a.txt", Name: "Ann Lee", Skills: "python, sql", Score: "0.7", Snippet: "Ann Lee python sql"},
		{ID: "b.txt", Name: "Bo Park", Skills: "excel", Score: "0.95", Snippet: "Bo Park excel"},
		{ID: "c.txt", Name: "Cy Diaz", Skills: "golang, docker", Score: "0.4", Snippet: "Cy Diaz golang"},
	})
	sel := selection.New(
		selection.File{Name: "a.txt", Path: "/r/a.txt", SizeBytes: 2048},
	)

	m := New(Deps{Controller: ctrl, Selection: sel}, opts)
	return m, ctrl
}

func send(m Model, msgs ...tea.Msg) Model {
	return tuitest.Send(m, msgs...).(Model)
}

func TestModel_InitialView(t *testing.T) {
	m, _ := newTestModel(t, Opts{Title: "Backend engineer"})

	view := tuitest.StripANSI(m.View())
	assert.Contains(t, view, "Backend engineer")
	assert.Contains(t, view, "3/3")
	assert.Contains(t, view, "Bo Park")
	assert.Contains(t, view, "[View]")
	assert.NotContains(t, view, "[Hide]")

	require.NotNil(t, m.Selected())
	assert.Equal(t, "b.txt", m.Selected().ID)
}

func TestModel_CursorMovement(t *testing.T) {
	m, _ := newTestModel(t, Opts{})

	m = send(m, tuitest.KeyDown(), tuitest.KeyPress('j'))
	assert.Equal(t, "c.txt", m.Selected().ID)

	// stays on the last row
	m = send(m, tuitest.KeyDown())
	assert.Equal(t, "c.txt", m.Selected().ID)

	m = send(m, tuitest.KeyUp(), tuitest.KeyPress('k'), tuitest.KeyUp())
	assert.Equal(t, "b.txt", m.Selected().ID)
}

func TestModel_Search(t *testing.T) {
	m, ctrl := newTestModel(t, Opts{})

	m = send(m, tuitest.KeyPress('/'))
	require.True(t, m.Searching())

	m = send(m, tuitest.KeyString("SQL")...)
	assert.Equal(t, "sql", ctrl.Query())
	require.Len(t, ctrl.Visible(), 1)
	assert.Equal(t, "a.txt", m.Selected().ID)

	m = send(m, tuitest.KeyEsc())
	assert.False(t, m.Searching())
	assert.Contains(t, tuitest.StripANSI(m.View()), "filter: sql")

	m = send(m, tuitest.KeyPress('c'))
	assert.Empty(t, ctrl.Query())
	assert.Len(t, ctrl.Visible(), 3)
	assert.Equal(t, "a.txt", m.Selected().ID, "cursor should follow the selected row")
}

func TestModel_SearchNoMatches(t *testing.T) {
	m, _ := newTestModel(t, Opts{Query: "nobody"})

	assert.Nil(t, m.Selected())
	assert.Contains(t, tuitest.StripANSI(m.View()), EmptyText)

	// toggling with nothing selected is a no-op
	m = send(m, tuitest.KeyEnter())
	assert.Nil(t, m.Selected())
}

func TestModel_SearchKeysDoNotTriggerCommands(t *testing.T) {
	m, ctrl := newTestModel(t, Opts{})

	m = send(m, tuitest.KeyPress('/'))
	m = send(m, tuitest.KeyString("qs")...)

	assert.False(t, m.Quitting())
	assert.Equal(t, rowlist.SortScoreDesc, ctrl.SortKey())
	assert.Equal(t, "qs", ctrl.Query())
}

func TestModel_Sort(t *testing.T) {
	tests := []struct {
		name    string
		keys    []tea.Msg
		wantKey rowlist.SortKey
		wantIDs []string
	}{
		{
			name:    "cycle once",
			keys:    []tea.Msg{tuitest.KeyPress('s')},
			wantKey: rowlist.SortScoreAsc,
			wantIDs: []string{"c.txt", "a.txt", "b.txt"},
		},
		{
			name:    "name ascending by number",
			keys:    []tea.Msg{tuitest.KeyPress('3')},
			wantKey: rowlist.SortNameAsc,
			wantIDs: []string{"a.txt", "b.txt", "c.txt"},
		},
		{
			name:    "name descending by number",
			keys:    []tea.Msg{tuitest.KeyPress('4')},
			wantKey: rowlist.SortNameDesc,
			wantIDs: []string{"c.txt", "b.txt", "a.txt"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ctrl := newTestModel(t, Opts{})
			m = send(m, tt.keys...)

			assert.Equal(t, tt.wantKey, ctrl.SortKey())
			ids := make([]string, 0, 3)
			for _, r := range ctrl.Visible() {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, "b.txt", m.Selected().ID, "cursor should follow the selected row")
		})
	}
}

func TestModel_ToggleSnippet(t *testing.T) {
	m, ctrl := newTestModel(t, Opts{})
	m = send(m, tuitest.WindowSize(100, 0))

	m = send(m, tuitest.KeyEnter())
	row, ok := ctrl.Row("b.txt")
	require.True(t, ok)
	assert.True(t, row.SnippetVisible())
	assert.Contains(t, tuitest.StripANSI(m.View()), "[Hide]")

	m = send(m, tuitest.KeyPress(' '))
	assert.False(t, row.SnippetVisible())
	assert.NotContains(t, tuitest.StripANSI(m.View()), "[Hide]")
}

func TestModel_ToggleAfterReorder(t *testing.T) {
	tests := []struct {
		name   string
		keys   []tea.Msg
		wantID string
	}{
		{
			name:   "sort then move up",
			keys:   []tea.Msg{tuitest.KeyPress('3'), tuitest.KeyUp()},
			wantID: "a.txt",
		},
		{
			name: "filter hides the selected row",
			keys: append(append([]tea.Msg{tuitest.KeyPress('/')}, tuitest.KeyString("docker")...),
				tuitest.KeyEsc()),
			wantID: "c.txt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ctrl := newTestModel(t, Opts{})
			m = send(m, tt.keys...)
			require.Equal(t, tt.wantID, m.Selected().ID)

			m = send(m, tuitest.KeyEnter())

			for _, r := range ctrl.Rows() {
				assert.Equal(t, r.ID == tt.wantID, r.SnippetVisible(), "row %s", r.ID)
			}
		})
	}
}

func TestModel_SnippetsOfRowsSharingAnID(t *testing.T) {
	ctrl := rowlist.New([]*rowlist.Row{
		{ID: "resume.txt", Name: "Ann Lee", Score: "0.9", Snippet: "alphasnippet"},
		{ID: "resume.txt", Name: "Bo Park", Score: "0.5", Snippet: "betasnippet"},
	})
	m := New(Deps{Controller: ctrl}, Opts{})
	m = send(m, tuitest.WindowSize(100, 0))

	m = send(m, tuitest.KeyDown(), tuitest.KeyEnter())
	view := tuitest.StripANSI(m.View())
	assert.Contains(t, view, "betasnippet")
	assert.NotContains(t, view, "alphasnippet")

	m = send(m, tuitest.KeyUp(), tuitest.KeyEnter())
	view = tuitest.StripANSI(m.View())
	assert.Contains(t, view, "alphasnippet")
	assert.Contains(t, view, "betasnippet")
}

func TestModel_FilesPane(t *testing.T) {
	m, _ := newTestModel(t, Opts{})

	assert.NotContains(t, tuitest.StripANSI(m.View()), "a.txt (2 KB)")

	m = send(m, tuitest.KeyPress('f'))
	assert.Contains(t, tuitest.StripANSI(m.View()), "a.txt (2 KB)")
}

func TestModel_Quit(t *testing.T) {
	m, _ := newTestModel(t, Opts{})

	updated, cmd := m.Update(tuitest.KeyPress('q'))
	require.NotNil(t, cmd)
	assert.True(t, updated.(Model).Quitting())
	assert.Empty(t, updated.View())
}

func TestClip(t *testing.T) {
	lines := []string{"0", "1", "2", "3", "4"}

	assert.Equal(t, lines, clip(lines, 4, 0))
	assert.Equal(t, []string{"0", "1"}, clip(lines, 1, 2))
	assert.Equal(t, []string{"3", "4"}, clip(lines, 4, 2))
}
