package skills

import "slices"

// ComparisonSet is the ordered set of skills picked for comparison, keyed
// by name in selection order.
type ComparisonSet struct {
	items []Entry
}

// Toggle adds e when absent and removes it when present. It reports
// whether e is selected afterwards.
func (s *ComparisonSet) Toggle(e Entry) bool {
	if i := s.index(e.Name); i >= 0 {
		s.items = slices.Delete(s.items, i, i+1)
		return false
	}
	s.items = append(s.items, e)
	return true
}

// Contains reports whether name is selected.
func (s *ComparisonSet) Contains(name string) bool {
	return s.index(name) >= 0
}

// Clear empties the set.
func (s *ComparisonSet) Clear() {
	s.items = nil
}

// Len is the number of selected skills.
func (s *ComparisonSet) Len() int { return len(s.items) }

// Names returns selected names in selection order.
func (s *ComparisonSet) Names() []string {
	out := make([]string, 0, len(s.items))
	for _, e := range s.items {
		out = append(out, e.Name)
	}
	return out
}

func (s *ComparisonSet) index(name string) int {
	return slices.IndexFunc(s.items, func(e Entry) bool { return e.Name == name })
}

// Row is one line of the comparison summary.
type Row struct {
	Name  string
	Level int
}

// Comparison is the rendered summary.
type Comparison struct {
	Rows []Row
}

// Summarize builds the comparison for set. It reports false when the set
// has fewer than two entries, in which case nothing is shown.
func Summarize(set *ComparisonSet) (Comparison, bool) {
	if set.Len() < 2 {
		return Comparison{}, false
	}
	c := Comparison{Rows: make([]Row, 0, set.Len())}
	for _, e := range set.items {
		c.Rows = append(c.Rows, Row{Name: e.Name, Level: e.Level})
	}
	return c, true
}
