package rowlist

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Hooks are UI callbacks invoked after the controller mutates its rows.
// Any of them may be nil.
type Hooks struct {
	// OnReorder receives the rows in their new order.
	OnReorder func(rows []*Row)
	// OnFilter receives the normalized query after visibility was recomputed.
	OnFilter func(query string)
	// OnToggle receives the row whose snippet flipped.
	OnToggle func(row *Row)
}

// Option configures a Controller.
type Option func(*Controller)

// WithHooks registers UI callbacks.
func WithHooks(h Hooks) Option {
	return func(c *Controller) { c.hooks = h }
}

// WithLanguage sets the collation language used for name ordering.
func WithLanguage(tag language.Tag) Option {
	return func(c *Controller) { c.collator = collate.New(tag) }
}

// WithInitialSort overrides the sort applied on construction. Invalid keys are ignored.
func WithInitialSort(k SortKey) Option {
	return func(c *Controller) {
		if k.IsValid() {
			c.sortKey = k
		}
	}
}

// Controller owns an ordered row collection. It is not safe for concurrent use;
// callers drive it from a single event loop.
type Controller struct {
	rows     []*Row
	owned    map[*Row]struct{}
	index    map[string]*Row
	query    string
	sortKey  SortKey
	collator *collate.Collator
	hooks    Hooks
}

// New takes ownership of rows. All rows start visible with hidden snippets and
// the initial sort (score_desc unless overridden) is applied. A row whose ID is
// already taken gets a "#n" suffix so IDs stay unique within the controller.
func New(rows []*Row, opts ...Option) *Controller {
	c := &Controller{
		rows:     make([]*Row, 0, len(rows)),
		owned:    make(map[*Row]struct{}, len(rows)),
		index:    make(map[string]*Row, len(rows)),
		sortKey:  DefaultSortKey,
		collator: collate.New(language.English),
	}

	for _, opt := range opts {
		opt(c)
	}

	for _, r := range rows {
		if r == nil {
			continue
		}
		if _, dup := c.owned[r]; dup {
			continue
		}
		r.visible = true
		r.snippetVisible = false
		c.rows = append(c.rows, r)
		c.owned[r] = struct{}{}
		if r.ID != "" {
			r.ID = c.uniqueID(r.ID)
			c.index[r.ID] = r
		}
	}

	c.Sort(c.sortKey)
	return c
}

// Rows returns the rows in their current order, including hidden ones.
func (c *Controller) Rows() []*Row {
	return slices.Clone(c.rows)
}

// Visible returns the rows that pass the current filter, in order.
func (c *Controller) Visible() []*Row {
	out := make([]*Row, 0, len(c.rows))
	for _, r := range c.rows {
		if r.visible {
			out = append(out, r)
		}
	}
	return out
}

// Len returns the total number of rows.
func (c *Controller) Len() int { return len(c.rows) }

// Query returns the normalized query last passed to Filter.
func (c *Controller) Query() string { return c.query }

// SortKey returns the key of the last applied sort.
func (c *Controller) SortKey() SortKey { return c.sortKey }

// Row looks up a row by ID.
func (c *Controller) Row(id string) (*Row, bool) {
	r, ok := c.index[id]
	return r, ok
}

// Filter shows rows whose name, skills, or score string contain the query,
// case-insensitively. Order is never changed.
func (c *Controller) Filter(query string) {
	q := strings.ToLower(strings.TrimSpace(query))
	c.query = q

	for _, r := range c.rows {
		r.visible = r.matches(q)
	}

	if c.hooks.OnFilter != nil {
		c.hooks.OnFilter(q)
	}
}

// Sort reorders rows in place with a stable sort. Unknown keys leave the order
// unchanged. Visibility and snippet state travel with each row.
func (c *Controller) Sort(key SortKey) {
	compare := c.comparator(key)
	if compare == nil {
		return
	}

	slices.SortStableFunc(c.rows, compare)
	c.sortKey = key

	if c.hooks.OnReorder != nil {
		c.hooks.OnReorder(c.Rows())
	}
}

func (c *Controller) comparator(key SortKey) func(a, b *Row) int {
	switch key {
	case SortScoreDesc:
		return func(a, b *Row) int { return cmp.Compare(b.ScoreValue(), a.ScoreValue()) }
	case SortScoreAsc:
		return func(a, b *Row) int { return cmp.Compare(a.ScoreValue(), b.ScoreValue()) }
	case SortNameAsc:
		return func(a, b *Row) int { return c.compareNames(a, b) }
	case SortNameDesc:
		return func(a, b *Row) int { return c.compareNames(b, a) }
	default:
		return nil
	}
}

func (c *Controller) compareNames(a, b *Row) int {
	return c.collator.CompareString(strings.ToLower(a.Name), strings.ToLower(b.Name))
}

// ToggleSnippet flips the snippet of r. Rows not owned by the controller are ignored.
func (c *Controller) ToggleSnippet(r *Row) {
	if r == nil || !c.owns(r) {
		return
	}

	r.snippetVisible = !r.snippetVisible

	if c.hooks.OnToggle != nil {
		c.hooks.OnToggle(r)
	}
}

// ToggleSnippetByID resolves id and toggles that row's snippet. Unknown IDs are ignored.
func (c *Controller) ToggleSnippetByID(id string) {
	r, ok := c.index[id]
	if !ok {
		return
	}
	c.ToggleSnippet(r)
}

func (c *Controller) owns(r *Row) bool {
	_, ok := c.owned[r]
	return ok
}

func (c *Controller) uniqueID(id string) string {
	if _, taken := c.index[id]; !taken {
		return id
	}
	for n := 2; ; n++ {
		candidate := id + "#" + strconv.Itoa(n)
		if _, taken := c.index[candidate]; !taken {
			return candidate
		}
	}
}
