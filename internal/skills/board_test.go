package skills

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testCategories() []Category {
	return []Category{
		{Title: "Languages", Entries: []Entry{
			{Name: "Go", Description: "Services and CLIs", Level: 92},
			{Name: "Python", Description: "Data work", Level: 84},
		}},
		{Title: "Databases", Entries: []Entry{
			{Name: "PostgreSQL", Description: "Relational modelling", Level: 80},
			{Name: "SQLite", Description: "Embedded storage", Level: 120},
		}},
	}
}

func TestBoardClampsLevels(t *testing.T) {
	b := NewBoard(testCategories())
	for _, c := range b.View() {
		for _, e := range c.Entries {
			if e.Name == "SQLite" && e.Level != 100 {
				t.Fatalf("SQLite level = %d", e.Level)
			}
		}
	}
}

func TestBoardComparisonLifecycle(t *testing.T) {
	b := NewBoard(testCategories())

	if sel, ok := b.Toggle("Go"); !ok || !sel {
		t.Fatalf("Toggle(Go) = %v, %v", sel, ok)
	}
	if _, ok := b.Comparison(); ok {
		t.Fatal("comparison shown for one entry")
	}

	b.Toggle("SQLite")
	cmpView, ok := b.Comparison()
	if !ok || len(cmpView.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %+v", cmpView)
	}
	if diff := cmp.Diff(Row{Name: "SQLite", Level: 100}, cmpView.Rows[1]); diff != "" {
		t.Fatalf("row mismatch (-want +got):\n%s", diff)
	}

	b.Toggle("Go")
	if _, ok := b.Comparison(); ok {
		t.Fatal("comparison still shown after deselecting down to one")
	}
	if b.Selected("Go") || !b.Selected("SQLite") {
		t.Fatalf("selection = %v", b.SelectedNames())
	}
}

func TestBoardToggleUnknown(t *testing.T) {
	b := NewBoard(testCategories())
	if _, ok := b.Toggle("COBOL"); ok {
		t.Fatal("unknown skill toggled")
	}
}

func TestBoardClear(t *testing.T) {
	b := NewBoard(testCategories())
	b.Toggle("Go")
	b.Toggle("Python")
	b.Clear()

	if _, ok := b.Comparison(); ok {
		t.Fatal("comparison shown after clear")
	}
	if len(b.SelectedNames()) != 0 {
		t.Fatalf("selection not cleared: %v", b.SelectedNames())
	}
	for _, c := range b.View() {
		for _, e := range c.Entries {
			if e.Selected {
				t.Fatalf("%s still selected", e.Name)
			}
		}
	}
}

func TestBoardSearchHidesEmptyCategories(t *testing.T) {
	b := NewBoard(testCategories())
	view := b.Search("embedded")

	got := map[string]bool{}
	for _, c := range view {
		got[c.Title] = c.Visible
	}
	want := map[string]bool{"Languages": false, "Databases": true}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("category visibility mismatch (-want +got):\n%s", diff)
	}

	for _, e := range view[1].Entries {
		if e.Visible != (e.Name == "SQLite") {
			t.Fatalf("%s visible=%v", e.Name, e.Visible)
		}
	}

	for _, c := range b.Search("") {
		if !c.Visible {
			t.Fatalf("%s hidden with empty query", c.Title)
		}
	}
}

func TestBoardViewCarriesBands(t *testing.T) {
	b := NewBoard(testCategories())
	view := b.View()
	if got := view[0].Entries[0].Band.Name; got != "expert" {
		t.Fatalf("Go band = %s", got)
	}
	if got := view[0].Entries[1].Band.Name; got != "proficient" {
		t.Fatalf("Python band = %s", got)
	}
}
