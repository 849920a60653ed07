package skills

import "sync"

// Board is one visitor's skills page: the search box and the comparison
// set. The set belongs to the board and is handed to Summarize by
// reference.
type Board struct {
	mu         sync.Mutex
	categories []Category
	query      string
	selection  ComparisonSet
}

// NewBoard clamps every level and starts with no query and no selection.
func NewBoard(categories []Category) *Board {
	cats := make([]Category, len(categories))
	for i, c := range categories {
		entries := make([]Entry, len(c.Entries))
		for j, e := range c.Entries {
			e.Level = ClampLevel(e.Level)
			entries[j] = e
		}
		c.Entries = entries
		cats[i] = c
	}
	return &Board{categories: cats}
}

// Toggle flips the selection of the named skill and reports whether it is
// now selected. Unknown names are ignored.
func (b *Board) Toggle(name string) (selected, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	e, ok := b.lookup(name)
	if !ok {
		return false, false
	}
	return b.selection.Toggle(e), true
}

// Clear empties the comparison and deselects every skill.
func (b *Board) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.selection.Clear()
}

// Comparison returns the summary when more than one skill is selected.
func (b *Board) Comparison() (Comparison, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Summarize(&b.selection)
}

// Selected reports whether name is in the comparison.
func (b *Board) Selected(name string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.selection.Contains(name)
}

// SelectedNames returns the comparison in selection order.
func (b *Board) SelectedNames() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.selection.Names()
}

// Search stores the query and returns the resulting view.
func (b *Board) Search(query string) []CategoryView {
	b.mu.Lock()
	b.query = query
	b.mu.Unlock()
	return b.View()
}

// Query is the current search text.
func (b *Board) Query() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.query
}

// EntryView is one skill as rendered.
type EntryView struct {
	Entry
	Band     Band
	Visible  bool
	Selected bool
}

// CategoryView is one category as rendered. A category with no visible
// skills is hidden.
type CategoryView struct {
	Title   string
	Icon    string
	Entries []EntryView
	Visible bool
}

// View renders every category against the current query and selection.
func (b *Board) View() []CategoryView {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]CategoryView, 0, len(b.categories))
	for _, c := range b.categories {
		cv := CategoryView{Title: c.Title, Icon: c.Icon}
		for _, e := range c.Entries {
			ev := EntryView{
				Entry:    e,
				Band:     BandFor(e.Level),
				Visible:  Matches(e, b.query),
				Selected: b.selection.Contains(e.Name),
			}
			if ev.Visible {
				cv.Visible = true
			}
			cv.Entries = append(cv.Entries, ev)
		}
		out = append(out, cv)
	}
	return out
}

func (b *Board) lookup(name string) (Entry, bool) {
	for _, c := range b.categories {
		for _, e := range c.Entries {
			if e.Name == name {
				return e, true
			}
		}
	}
	return Entry{}, false
}
