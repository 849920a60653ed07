// Package skills drives the skills page: proficiency colour bands, search
// with empty-category hiding, and the side-by-side comparison set.
package skills

import (
	"strings"
	"time"
)

// Entry is one skill. Level is a percentage in [0, 100].
type Entry struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Level       int    `yaml:"level"`
}

// Category groups skills under a heading.
type Category struct {
	Title   string  `yaml:"title"`
	Icon    string  `yaml:"icon"`
	Entries []Entry `yaml:"skills"`
}

// ClampLevel forces a level into [0, 100].
func ClampLevel(level int) int {
	return max(0, min(level, 100))
}

// Band is one row of the progress-bar colour table.
type Band struct {
	Name string
	Min  int
	From string
	To   string
}

// Gradient renders the band as a CSS background.
func (b Band) Gradient() string {
	return "linear-gradient(90deg, " + b.From + ", " + b.To + ")"
}

var bands = []Band{
	{Name: "expert", Min: 90, From: "#00ff88", To: "#00cc6a"},
	{Name: "advanced", Min: 85, From: "#0099ff", To: "#007acc"},
	{Name: "proficient", Min: 80, From: "#f39c12", To: "#e67e22"},
	{Name: "intermediate", Min: 75, From: "#ff9500", To: "#ff7b00"},
	{Name: "learning", Min: 0, From: "#e74c3c", To: "#c0392b"},
}

// Bands returns the colour table, highest band first.
func Bands() []Band {
	return append([]Band(nil), bands...)
}

// BandFor picks the first band whose threshold level meets or exceeds.
func BandFor(level int) Band {
	for _, b := range bands {
		if level >= b.Min {
			return b
		}
	}
	return bands[len(bands)-1]
}

// RevealStagger spaces out progress-bar reveals within one batch.
const RevealStagger = 100 * time.Millisecond

// RevealDelay is the reveal delay for the index-th bar of a batch.
func RevealDelay(index int) time.Duration {
	return time.Duration(index) * RevealStagger
}

// Matches is the search predicate: a case-insensitive substring of the
// name or the description.
func Matches(e Entry, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(e.Name), q) ||
		strings.Contains(strings.ToLower(e.Description), q)
}
