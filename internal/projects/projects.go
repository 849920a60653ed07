// Package projects filters the project catalog by category tag and by a
// free-text query.
package projects

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// FilterAll is the filter control that shows every project.
const FilterAll = "all"

// Entry is one project card. Entries never change after load.
type Entry struct {
	Slug        string   `yaml:"slug"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Categories  []string `yaml:"categories"`
	Tech        []string `yaml:"tech"`
	Repo        string   `yaml:"repo"`
	Demo        string   `yaml:"demo"`
}

// InCategory reports whether the entry carries category.
func (e Entry) InCategory(category string) bool {
	return slices.Contains(e.Categories, category)
}

// MatchesFilter is the category predicate.
func MatchesFilter(e Entry, filter string) bool {
	return filter == FilterAll || e.InCategory(filter)
}

// MatchesQuery is the search predicate: a case-insensitive substring of the
// title, the description or any single technology tag.
func MatchesQuery(e Entry, query string) bool {
	q := strings.ToLower(query)
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(e.Title), q) ||
		strings.Contains(strings.ToLower(e.Description), q) {
		return true
	}
	for _, tag := range e.Tech {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// MatchMode decides how the filter and the search combine.
type MatchMode string

const (
	// Independent lets the most recent interaction alone decide
	// visibility: searching ignores the selected filter tab and
	// clicking a tab ignores the query.
	Independent MatchMode = "independent"
	// Combined shows entries that pass both predicates.
	Combined MatchMode = "combined"
)

// ParseMatchMode validates a configured mode. Empty means Independent.
func ParseMatchMode(s string) (MatchMode, error) {
	switch MatchMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", Independent:
		return Independent, nil
	case Combined:
		return Combined, nil
	}
	return "", fmt.Errorf("unknown match mode %q", s)
}

type predicate int

const (
	byNone predicate = iota
	byFilter
	byQuery
)

// Controller holds one visitor's filter tab and search box.
type Controller struct {
	mu      sync.Mutex
	entries []Entry
	filters []string
	mode    MatchMode
	filter  string
	query   string
	last    predicate
}

// NewController starts with the "all" tab active and an empty query.
func NewController(entries []Entry, mode MatchMode) *Controller {
	if mode == "" {
		mode = Independent
	}
	return &Controller{
		entries: entries,
		filters: Filters(entries),
		mode:    mode,
		filter:  FilterAll,
	}
}

// Filters returns "all" followed by every category in first-appearance
// order.
func Filters(entries []Entry) []string {
	out := []string{FilterAll}
	for _, e := range entries {
		for _, c := range e.Categories {
			if !slices.Contains(out, c) {
				out = append(out, c)
			}
		}
	}
	return out
}

// SelectFilter activates one filter tab, deselecting the others, and
// returns the visible entries.
func (c *Controller) SelectFilter(name string) []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filter = name
	c.last = byFilter
	return c.visibleLocked()
}

// Search updates the query and returns the visible entries.
func (c *Controller) Search(query string) []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query = query
	c.last = byQuery
	return c.visibleLocked()
}

// Visible returns the entries currently shown.
func (c *Controller) Visible() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visibleLocked()
}

// IsVisible reports whether e is currently shown.
func (c *Controller) IsVisible(e Entry) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visibleEntry(e)
}

func (c *Controller) visibleLocked() []Entry {
	out := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		if c.visibleEntry(e) {
			out = append(out, e)
		}
	}
	return out
}

func (c *Controller) visibleEntry(e Entry) bool {
	if c.mode == Combined {
		return MatchesFilter(e, c.filter) && MatchesQuery(e, c.query)
	}
	switch c.last {
	case byFilter:
		return MatchesFilter(e, c.filter)
	case byQuery:
		return MatchesQuery(e, c.query)
	}
	return true
}

// ActiveFilter is the selected tab. Unknown names stay selected but no
// control is highlighted for them.
func (c *Controller) ActiveFilter() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

// Query is the current search text.
func (c *Controller) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// Entries returns every entry, visible or not.
func (c *Controller) Entries() []Entry { return c.entries }

// Tabs returns the filter controls.
func (c *Controller) Tabs() []string { return c.filters }

// Mode is the configured match mode.
func (c *Controller) Mode() MatchMode { return c.mode }
