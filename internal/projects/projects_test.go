package projects

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func catalog() []Entry {
	return []Entry{
		{Slug: "mail", Title: "Terminal Mail", Description: "Email client", Categories: []string{"cli", "backend"}, Tech: []string{"Go", "IMAP"}},
		{Slug: "music", Title: "TUI Music", Description: "Stream music from the shell", Categories: []string{"cli"}, Tech: []string{"Go", "mpv"}},
		{Slug: "recs", Title: "Game Recommender", Description: "TF-IDF recommendations", Categories: []string{"ml", "web"}, Tech: []string{"Python", "Flask"}},
		{Slug: "site", Title: "Portfolio", Description: "This site", Categories: []string{"web", "backend"}, Tech: []string{"Go", "HTMX"}},
	}
}

func slugs(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Slug)
	}
	return out
}

func TestFilterAllShowsEverything(t *testing.T) {
	c := NewController(catalog(), Independent)
	got := slugs(c.SelectFilter(FilterAll))
	if diff := cmp.Diff([]string{"mail", "music", "recs", "site"}, got); diff != "" {
		t.Fatalf("visible mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterByCategory(t *testing.T) {
	c := NewController(catalog(), Independent)
	got := slugs(c.SelectFilter("backend"))
	if diff := cmp.Diff([]string{"mail", "site"}, got); diff != "" {
		t.Fatalf("visible mismatch (-want +got):\n%s", diff)
	}
	if c.ActiveFilter() != "backend" {
		t.Fatalf("active filter = %q", c.ActiveFilter())
	}
}

func TestFilterMatchesWholeTagsOnly(t *testing.T) {
	entries := []Entry{{Slug: "a", Categories: []string{"webapp"}}}
	c := NewController(entries, Independent)
	if got := c.SelectFilter("web"); len(got) != 0 {
		t.Fatalf("substring category matched: %v", slugs(got))
	}
}

func TestSearchFields(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"mail", "music", "recs", "site"}},
		{"MUSIC", []string{"music"}},
		{"tf-idf", []string{"recs"}},
		{"htmx", []string{"site"}},
		{"go", []string{"mail", "music", "site"}},
		{"nothing here", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			c := NewController(catalog(), Independent)
			got := slugs(c.Search(tt.query))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("visible mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSearchDoesNotSpanTags(t *testing.T) {
	e := Entry{Title: "x", Tech: []string{"Go", "mpv"}}
	if MatchesQuery(e, "gompv") || MatchesQuery(e, "go mpv") {
		t.Fatal("query matched across tag boundary")
	}
}

func TestIndependentModeLastInteractionWins(t *testing.T) {
	c := NewController(catalog(), Independent)
	c.SelectFilter("ml")

	got := slugs(c.Search("go"))
	if diff := cmp.Diff([]string{"mail", "music", "site"}, got); diff != "" {
		t.Fatalf("search should ignore active filter (-want +got):\n%s", diff)
	}

	got = slugs(c.SelectFilter("ml"))
	if diff := cmp.Diff([]string{"recs"}, got); diff != "" {
		t.Fatalf("filter should ignore query (-want +got):\n%s", diff)
	}
}

func TestCombinedModeAppliesBoth(t *testing.T) {
	c := NewController(catalog(), Combined)
	c.SelectFilter("cli")
	got := slugs(c.Search("email"))
	if diff := cmp.Diff([]string{"mail"}, got); diff != "" {
		t.Fatalf("visible mismatch (-want +got):\n%s", diff)
	}
}

func TestFilters(t *testing.T) {
	got := Filters(catalog())
	want := []string{"all", "cli", "backend", "ml", "web"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("filters mismatch (-want +got):\n%s", diff)
	}
}

func TestParseMatchMode(t *testing.T) {
	for in, want := range map[string]MatchMode{"": Independent, "Combined": Combined, " independent ": Independent} {
		got, err := ParseMatchMode(in)
		if err != nil || got != want {
			t.Fatalf("ParseMatchMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseMatchMode("or"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestCountAt(t *testing.T) {
	d := 2 * time.Second
	cases := []struct {
		elapsed time.Duration
		want    int
	}{
		{0, 0},
		{500 * time.Millisecond, 6},
		{time.Second, 12},
		{1999 * time.Millisecond, 24},
		{d, 25},
		{3 * time.Second, 25},
	}
	for _, tc := range cases {
		if got := CountAt(25, tc.elapsed, d); got != tc.want {
			t.Errorf("CountAt(25, %v) = %d, want %d", tc.elapsed, got, tc.want)
		}
	}
}

func TestFrame(t *testing.T) {
	if v, done := Frame(40, 0); v != 0 || done {
		t.Fatalf("Frame(40, 0) = %d, %v", v, done)
	}
	if v, done := Frame(40, 20); v != 40 || !done {
		t.Fatalf("Frame(40, 20) = %d, %v", v, done)
	}
	if v, done := Frame(40, math.MaxInt); v != 40 || !done {
		t.Fatalf("Frame(40, MaxInt) = %d, %v", v, done)
	}
	if v, done := Frame(40, -5); v != 0 || done {
		t.Fatalf("Frame(40, -5) = %d, %v", v, done)
	}
}
