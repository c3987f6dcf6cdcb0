// Package rowlist holds the ordered candidate rows behind the results view and
// the filter, sort, and snippet-toggle operations that mutate them.
package rowlist

import (
	"strconv"
	"strings"
)

// Toggle control labels.
const (
	LabelView = "View"
	LabelHide = "Hide"
)

// Row is one candidate entry. The exported fields are display metadata supplied
// by the caller; visibility and snippet state are owned by the Controller.
type Row struct {
	ID      string // unique within a Controller; New renames duplicates
	Name    string
	Skills  string // tags treated as one blob for matching
	Score   string // numeric score as displayed
	Snippet string // collapsible detail payload

	visible        bool
	snippetVisible bool
}

// Visible reports whether the row passes the current filter.
func (r *Row) Visible() bool { return r.visible }

// SnippetVisible reports whether the row's snippet is expanded.
func (r *Row) SnippetVisible() bool { return r.snippetVisible }

// ToggleLabel is the text shown on the row's snippet toggle control.
func (r *Row) ToggleLabel() string {
	if r.snippetVisible {
		return LabelHide
	}
	return LabelView
}

// ScoreValue parses Score. Missing or malformed scores sort as 0.
func (r *Row) ScoreValue() float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(r.Score), 64)
	if err != nil {
		return 0
	}
	return v
}

func (r *Row) matches(q string) bool {
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.Name), q) ||
		strings.Contains(strings.ToLower(r.Skills), q) ||
		strings.Contains(strings.ToLower(r.Score), q)
}
