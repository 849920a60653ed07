package skills

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestBandFor(t *testing.T) {
	tests := []struct {
		level int
		want  string
	}{
		{100, "expert"},
		{90, "expert"},
		{89, "advanced"},
		{85, "advanced"},
		{84, "proficient"},
		{80, "proficient"},
		{79, "intermediate"},
		{75, "intermediate"},
		{74, "learning"},
		{0, "learning"},
	}
	for _, tt := range tests {
		if got := BandFor(tt.level).Name; got != tt.want {
			t.Errorf("BandFor(%d) = %s, want %s", tt.level, got, tt.want)
		}
	}
}

func TestBandGradient(t *testing.T) {
	want := "linear-gradient(90deg, #00ff88, #00cc6a)"
	if got := BandFor(95).Gradient(); got != want {
		t.Fatalf("Gradient = %q, want %q", got, want)
	}
}

func TestBandsAreDistinct(t *testing.T) {
	seen := map[string]bool{}
	for _, b := range Bands() {
		if seen[b.Gradient()] {
			t.Fatalf("duplicate gradient %s", b.Gradient())
		}
		seen[b.Gradient()] = true
	}
	if len(seen) != 5 {
		t.Fatalf("expected 5 bands, got %d", len(seen))
	}
}

func TestRevealDelay(t *testing.T) {
	if got := RevealDelay(3); got != 300*time.Millisecond {
		t.Fatalf("RevealDelay(3) = %v", got)
	}
}

func TestClampLevel(t *testing.T) {
	for in, want := range map[int]int{-5: 0, 0: 0, 55: 55, 100: 100, 140: 100} {
		if got := ClampLevel(in); got != want {
			t.Errorf("ClampLevel(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestMatches(t *testing.T) {
	e := Entry{Name: "Go", Description: "Concurrent services"}
	for _, q := range []string{"", "go", "GO", "services", "concurrent"} {
		if !Matches(e, q) {
			t.Errorf("Matches(%q) = false", q)
		}
	}
	if Matches(e, "rust") {
		t.Error("Matches(rust) = true")
	}
}

func TestComparisonSetToggleRoundTrip(t *testing.T) {
	var s ComparisonSet
	s.Toggle(Entry{Name: "Go", Level: 92})
	before := s.Names()

	if !s.Toggle(Entry{Name: "SQL", Level: 80}) {
		t.Fatal("first toggle should select")
	}
	if s.Toggle(Entry{Name: "SQL", Level: 80}) {
		t.Fatal("second toggle should deselect")
	}

	if diff := cmp.Diff(before, s.Names()); diff != "" {
		t.Fatalf("round trip changed set (-want +got):\n%s", diff)
	}
}

func TestComparisonSetKeepsSelectionOrder(t *testing.T) {
	var s ComparisonSet
	for _, n := range []string{"c", "a", "b"} {
		s.Toggle(Entry{Name: n})
	}
	s.Toggle(Entry{Name: "a"})
	s.Toggle(Entry{Name: "a"})

	if diff := cmp.Diff([]string{"c", "b", "a"}, s.Names()); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestSummarizeNeedsTwo(t *testing.T) {
	var s ComparisonSet
	if _, ok := Summarize(&s); ok {
		t.Fatal("summary for empty set")
	}
	s.Toggle(Entry{Name: "Go", Level: 92})
	if _, ok := Summarize(&s); ok {
		t.Fatal("summary for single entry")
	}
	s.Toggle(Entry{Name: "SQL", Level: 80})

	got, ok := Summarize(&s)
	if !ok {
		t.Fatal("no summary for two entries")
	}
	want := Comparison{Rows: []Row{{Name: "Go", Level: 92}, {Name: "SQL", Level: 80}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}
}
