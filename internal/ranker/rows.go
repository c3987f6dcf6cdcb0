package ranker

import (
	"strconv"

	"github.com/colonyops/shortlist/internal/core/rowlist"
)

// Row converts a result into a row for the results view.
func (res Result) Row() *rowlist.Row {
	id := res.Path
	if id == "" {
		id = res.File
	}
	if id == "" {
		id = strconv.Itoa(res.Rank)
	}

	return &rowlist.Row{
		ID:      id,
		Name:    res.Name,
		Skills:  SkillsText(res.Skills),
		Score:   strconv.FormatFloat(res.Score, 'f', -1, 64),
		Snippet: res.Snippet,
	}
}

// Rows converts results in order.
func Rows(results []Result) []*rowlist.Row {
	out := make([]*rowlist.Row, len(results))
	for i, res := range results {
		out[i] = res.Row()
	}
	return out
}
