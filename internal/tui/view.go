package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/colonyops/shortlist/internal/core/rowlist"
	"github.com/colonyops/shortlist/internal/core/selection"
	"github.com/colonyops/shortlist/internal/core/styles"
)

// EmptyText is shown when no row matches the filter.
const EmptyText = "No matching candidates"

const (
	nameWidth    = 24
	scoreWidth   = 7
	defaultWidth = 100
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	width := m.width
	if width <= 0 {
		width = defaultWidth
	}

	header := m.renderHeader()
	footer := m.renderFooter()

	body, cursorLine := m.renderRows(width)
	if m.showFiles {
		body = append(body, "", m.renderFiles())
	}

	if m.height > 0 {
		avail := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
		body = clip(body, cursorLine, avail)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		strings.Join(body, "\n"),
		footer,
	)
}

func (m Model) renderHeader() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(m.title))
	b.WriteString("  ")
	b.WriteString(styles.MutedStyle.Render(fmt.Sprintf("%d/%d · %s",
		len(m.ctrl.Visible()), m.ctrl.Len(), m.ctrl.SortKey().Label())))

	switch {
	case m.searching:
		b.WriteString("\n")
		b.WriteString(m.search.View())
	case m.ctrl.Query() != "":
		b.WriteString("\n")
		b.WriteString(styles.SearchStyle.Render("filter: " + m.ctrl.Query()))
	}

	b.WriteString("\n")
	b.WriteString(styles.HeaderStyle.Render(fmt.Sprintf("    %-3s %-*s %*s  %s",
		"#", nameWidth, "Name", scoreWidth, "Score", "Skills")))
	return b.String()
}

// renderRows returns one or more lines per visible row and the index of the
// line holding the cursor.
func (m Model) renderRows(width int) ([]string, int) {
	visible := m.ctrl.Visible()
	if len(visible) == 0 {
		return []string{styles.MutedStyle.Render("  " + EmptyText)}, 0
	}

	var (
		lines      []string
		cursorLine int
	)
	for i, row := range visible {
		selected := i == m.cursor
		if selected {
			cursorLine = len(lines)
		}
		lines = append(lines, m.renderRow(i, row, selected, width))

		if row.SnippetVisible() {
			lines = append(lines, strings.Split(m.renderSnippet(row, width), "\n")...)
		}
	}
	return lines, cursorLine
}

func (m Model) renderRow(i int, row *rowlist.Row, selected bool, width int) string {
	marker := "  "
	nameStyle := styles.NormalStyle
	if selected {
		marker = styles.SelectedStyle.Render("▸ ")
		nameStyle = styles.SelectedStyle
	}

	toggle := styles.ToggleStyle.Render("[" + row.ToggleLabel() + "]")
	prefix := fmt.Sprintf("%s%-3s %s %s  ",
		marker,
		strconv.Itoa(i+1),
		nameStyle.Render(padRight(ansi.Truncate(row.Name, nameWidth, "…"), nameWidth)),
		styles.ScoreStyle.Render(fmt.Sprintf("%*s", scoreWidth, row.Score)),
	)

	room := width - lipgloss.Width(prefix) - lipgloss.Width(toggle) - 1
	skills := ""
	if room > 0 {
		skills = padRight(ansi.Truncate(row.Skills, room, "…"), room)
	}

	return prefix + styles.SkillsStyle.Render(skills) + " " + toggle
}

// renderSnippet renders the row's snippet as markdown, caching by row and width.
// Rendering failures fall back to the plain text.
func (m Model) renderSnippet(row *rowlist.Row, width int) string {
	wrap := max(width-10, 20)
	text := m.snippets.GetOrCompute(snippetKey{row: row, wrap: wrap}, func() string {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(m.glamourStyle()),
			glamour.WithWordWrap(wrap),
		)
		if err != nil {
			return row.Snippet
		}
		out, err := r.Render(row.Snippet)
		if err != nil {
			return row.Snippet
		}
		return strings.Trim(out, "\n")
	})

	return styles.SnippetStyle.Width(wrap).Render(text)
}

func (m Model) renderFiles() string {
	if m.selection == nil {
		return styles.MutedStyle.Render("  " + selection.EmptyText)
	}
	return styles.MutedStyle.Render(indent(m.selection.Render(), "  "))
}

func (m Model) renderFooter() string {
	return styles.StatusBarStyle.Render(m.help.View(m.keys))
}

// clip keeps at most n lines, scrolled so that line at stays in view.
func clip(lines []string, at, n int) []string {
	if n <= 0 || len(lines) <= n {
		return lines
	}
	start := 0
	if at >= n {
		start = at - n + 1
	}
	end := min(start+n, len(lines))
	return lines[start:end]
}

func padRight(s string, w int) string {
	if gap := w - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}
