package rowlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func sampleRows() []*Row {
	return []*Row{
		{ID: "ann", Name: "Ann", Skills: "python, sql", Score: "70"},
		{ID: "bo", Name: "Bo", Skills: "excel", Score: "95"},
		{ID: "cy", Name: "Cy", Skills: "go, docker", Score: "95"},
	}
}

func names(rows []*Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Name
	}
	return out
}

func TestNew_Defaults(t *testing.T) {
	c := New(sampleRows())

	assert.Equal(t, SortScoreDesc, c.SortKey())
	assert.Equal(t, []string{"Bo", "Cy", "Ann"}, names(c.Rows()))
	assert.Empty(t, c.Query())

	for _, r := range c.Rows() {
		assert.True(t, r.Visible(), "row %s should start visible", r.Name)
		assert.False(t, r.SnippetVisible(), "row %s snippet should start hidden", r.Name)
		assert.Equal(t, LabelView, r.ToggleLabel())
	}
}

func TestNew_SkipsNilRows(t *testing.T) {
	c := New([]*Row{nil, {ID: "a", Name: "A", Score: "1"}, nil})
	assert.Equal(t, 1, c.Len())
}

func TestNew_InitialSortOverride(t *testing.T) {
	c := New(sampleRows(), WithInitialSort(SortNameDesc))
	assert.Equal(t, []string{"Cy", "Bo", "Ann"}, names(c.Rows()))

	c = New(sampleRows(), WithInitialSort("bogus"))
	assert.Equal(t, SortScoreDesc, c.SortKey())
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "empty query", query: "", want: []string{"Bo", "Cy", "Ann"}},
		{name: "whitespace only", query: "   ", want: []string{"Bo", "Cy", "Ann"}},
		{name: "score substring", query: "95", want: []string{"Bo", "Cy"}},
		{name: "score digit", query: "9", want: []string{"Bo", "Cy"}},
		{name: "name case insensitive", query: "  ANN ", want: []string{"Ann"}},
		{name: "skills", query: "docker", want: []string{"Cy"}},
		{name: "no match", query: "rust", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(sampleRows())
			c.Filter(tt.query)
			assert.Equal(t, tt.want, names(c.Visible()))
		})
	}
}

func TestFilter_KeepsOrder(t *testing.T) {
	c := New(sampleRows())
	before := names(c.Rows())

	c.Filter("o")

	assert.Equal(t, before, names(c.Rows()))
}

func TestFilter_EmptyRestoresAll(t *testing.T) {
	c := New(sampleRows())
	c.Filter("zzz")
	require.Empty(t, c.Visible())

	c.Filter("")
	assert.Len(t, c.Visible(), 3)
}

func TestFilter_ScoreIsLiteralContainment(t *testing.T) {
	c := New([]*Row{
		{ID: "a", Name: "A", Score: "19"},
		{ID: "b", Name: "B", Score: "9.5"},
		{ID: "c", Name: "C", Score: "42"},
	})

	c.Filter("9")

	assert.ElementsMatch(t, []string{"A", "B"}, names(c.Visible()))
}

func TestSort_ScoreDescThenAscReverses(t *testing.T) {
	rows := []*Row{
		{ID: "a", Name: "A", Score: "0.3"},
		{ID: "b", Name: "B", Score: "0.9"},
		{ID: "c", Name: "C", Score: "0.1"},
		{ID: "d", Name: "D", Score: "0.5"},
	}
	c := New(rows)

	c.Sort(SortScoreDesc)
	desc := names(c.Rows())
	c.Sort(SortScoreAsc)
	asc := names(c.Rows())

	assert.Equal(t, []string{"B", "D", "A", "C"}, desc)
	for i := range desc {
		assert.Equal(t, desc[i], asc[len(asc)-1-i])
	}
}

func TestSort_StableOnTies(t *testing.T) {
	c := New(sampleRows())
	assert.Equal(t, []string{"Bo", "Cy", "Ann"}, names(c.Rows()))

	c.Sort(SortScoreAsc)
	assert.Equal(t, []string{"Ann", "Bo", "Cy"}, names(c.Rows()))
}

func TestSort_MalformedScoreIsZero(t *testing.T) {
	c := New([]*Row{
		{ID: "a", Name: "A", Score: "n/a"},
		{ID: "b", Name: "B", Score: "-1"},
		{ID: "c", Name: "C", Score: ""},
		{ID: "d", Name: "D", Score: "2"},
	})

	c.Sort(SortScoreAsc)

	assert.Equal(t, []string{"B", "A", "C", "D"}, names(c.Rows()))
}

func TestSort_NameAscIdempotent(t *testing.T) {
	c := New([]*Row{
		{ID: "1", Name: "frank"},
		{ID: "2", Name: "Émile"},
		{ID: "3", Name: "eddie"},
		{ID: "4", Name: "Zoe"},
		{ID: "5", Name: "anna"},
	})

	c.Sort(SortNameAsc)
	first := names(c.Rows())
	c.Sort(SortNameAsc)

	assert.Equal(t, []string{"anna", "eddie", "Émile", "frank", "Zoe"}, first)
	assert.Equal(t, first, names(c.Rows()))

	c.Sort(SortNameDesc)
	assert.Equal(t, []string{"Zoe", "frank", "Émile", "eddie", "anna"}, names(c.Rows()))
}

func TestSort_LanguageOption(t *testing.T) {
	// Swedish collates "ä" after "z".
	rows := func() []*Row {
		return []*Row{{ID: "1", Name: "äpple"}, {ID: "2", Name: "zebra"}}
	}

	en := New(rows(), WithInitialSort(SortNameAsc))
	sv := New(rows(), WithInitialSort(SortNameAsc), WithLanguage(language.Swedish))

	assert.Equal(t, []string{"äpple", "zebra"}, names(en.Rows()))
	assert.Equal(t, []string{"zebra", "äpple"}, names(sv.Rows()))
}

func TestSort_UnknownKeyIsNoop(t *testing.T) {
	c := New(sampleRows())
	before := names(c.Rows())

	c.Sort("alphabetical")

	assert.Equal(t, before, names(c.Rows()))
	assert.Equal(t, SortScoreDesc, c.SortKey())
}

func TestSort_PreservesVisibility(t *testing.T) {
	c := New(sampleRows())
	c.Filter("ann")
	bo, _ := c.Row("bo")
	c.ToggleSnippet(bo)

	c.Sort(SortNameDesc)

	ann, _ := c.Row("ann")
	assert.True(t, ann.Visible())
	assert.False(t, bo.Visible())
	assert.True(t, bo.SnippetVisible())
	assert.Equal(t, []string{"Ann"}, names(c.Visible()))
}

func TestToggleSnippet(t *testing.T) {
	c := New(sampleRows())
	bo, ok := c.Row("bo")
	require.True(t, ok)
	cy, _ := c.Row("cy")

	c.ToggleSnippet(bo)
	assert.True(t, bo.SnippetVisible())
	assert.Equal(t, LabelHide, bo.ToggleLabel())
	assert.False(t, cy.SnippetVisible(), "only the toggled row changes")

	c.ToggleSnippet(bo)
	assert.False(t, bo.SnippetVisible())
	assert.Equal(t, LabelView, bo.ToggleLabel())
}

func TestToggleSnippet_IgnoresForeignRows(t *testing.T) {
	c := New(sampleRows())
	stranger := &Row{ID: "bo", Name: "Impostor"}

	c.ToggleSnippet(stranger)
	c.ToggleSnippet(nil)
	c.ToggleSnippetByID("missing")

	assert.False(t, stranger.SnippetVisible())
	for _, r := range c.Rows() {
		assert.False(t, r.SnippetVisible())
	}
}

func TestNew_DuplicateIDs(t *testing.T) {
	first := &Row{ID: "resume.txt", Name: "Ann", Score: "2"}
	second := &Row{ID: "resume.txt", Name: "Bo", Score: "1"}
	third := &Row{ID: "resume.txt", Name: "Cy", Score: "0"}

	c := New([]*Row{first, second, third, first})

	assert.Equal(t, 3, c.Len(), "a repeated pointer is owned once")
	assert.Equal(t, "resume.txt", first.ID)
	assert.Equal(t, "resume.txt#2", second.ID)
	assert.Equal(t, "resume.txt#3", third.ID)

	got, ok := c.Row("resume.txt#2")
	require.True(t, ok)
	assert.Same(t, second, got)
}

func TestToggleSnippet_SharedIDTogglesOnlyThatRow(t *testing.T) {
	first := &Row{ID: "resume.txt", Name: "Ann"}
	second := &Row{ID: "resume.txt", Name: "Bo"}
	c := New([]*Row{first, second})

	c.ToggleSnippet(first)
	assert.True(t, first.SnippetVisible())
	assert.False(t, second.SnippetVisible())

	c.ToggleSnippetByID(first.ID)
	assert.False(t, first.SnippetVisible())
	assert.False(t, second.SnippetVisible())

	c.ToggleSnippetByID(second.ID)
	assert.False(t, first.SnippetVisible())
	assert.True(t, second.SnippetVisible())
}

func TestToggleSnippet_StaleRowSharingLiveID(t *testing.T) {
	c := New(sampleRows())
	stale := &Row{ID: "bo", Name: "Bo"}
	bo, _ := c.Row("bo")

	c.ToggleSnippet(stale)

	assert.False(t, stale.SnippetVisible())
	assert.False(t, bo.SnippetVisible())
}

func TestToggleSnippet_RowsWithoutID(t *testing.T) {
	r := &Row{Name: "anon", Score: "1"}
	c := New([]*Row{r})

	c.ToggleSnippet(r)

	assert.True(t, r.SnippetVisible())
}

func TestHooks(t *testing.T) {
	var (
		reorders int
		queries  []string
		toggled  []string
	)

	c := New(sampleRows(), WithHooks(Hooks{
		OnReorder: func(rows []*Row) { reorders++ },
		OnFilter:  func(q string) { queries = append(queries, q) },
		OnToggle:  func(r *Row) { toggled = append(toggled, r.ID) },
	}))

	c.Sort(SortNameAsc)
	c.Sort("nope")
	c.Filter(" Bo ")
	c.ToggleSnippetByID("cy")

	assert.Equal(t, 2, reorders, "initial sort plus one explicit sort")
	assert.Equal(t, []string{"bo"}, queries)
	assert.Equal(t, []string{"cy"}, toggled)
}
