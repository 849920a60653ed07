package site

import (
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/skills"
)

func (s *Server) skillRoutes(r *gin.Engine) {
	r.GET("/skills", func(c *gin.Context) {
		v := s.visitor(c)
		v.mu.Lock()
		v.skills = skills.NewBoard(s.catalog.Skills)
		board := v.skills
		v.mu.Unlock()

		c.HTML(http.StatusOK, "skills.html", gin.H{
			"categories": categoryData(board, false),
			"comparison": comparisonData(board),
			"bands":      skills.Bands(),
		})
	})

	r.GET("/skills/search", func(c *gin.Context) {
		board := s.skillBoard(c)
		board.Search(c.Query("q"))
		c.HTML(http.StatusOK, "skill-categories", gin.H{
			"categories": categoryData(board, false),
		})
	})

	// Reveal-on-scroll: the bar container asks for its filled bar the
	// first time it is visible.
	r.GET("/skills/bar/:cat/:item", func(c *gin.Context) {
		board := s.skillBoard(c)
		item, ok := findItem(board, c.Param("cat"), c.Param("item"))
		if !ok {
			c.Status(http.StatusNotFound)
			return
		}
		item.Revealed = true
		c.HTML(http.StatusOK, "skill-progress", item)
	})

	// Items are addressed by position so names never have to fit in a
	// path segment.
	r.POST("/skills/toggle/:cat/:item", func(c *gin.Context) {
		board := s.skillBoard(c)
		item, ok := findItem(board, c.Param("cat"), c.Param("item"))
		if !ok {
			c.Status(http.StatusNotFound)
			return
		}
		if _, ok := board.Toggle(item.Name); !ok {
			c.Status(http.StatusNotFound)
			return
		}
		c.HTML(http.StatusOK, "skill-toggle-result", gin.H{
			"comparison": comparisonData(board),
			"items":      itemsNamed(board, []string{item.Name}),
		})
	})

	r.POST("/skills/comparison/clear", func(c *gin.Context) {
		board := s.skillBoard(c)
		previous := board.SelectedNames()
		board.Clear()
		c.HTML(http.StatusOK, "skill-toggle-result", gin.H{
			"comparison": comparisonData(board),
			"items":      itemsNamed(board, previous),
		})
	})
}

func (s *Server) skillBoard(c *gin.Context) *skills.Board {
	v := s.visitor(c)
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.skills == nil {
		v.skills = skills.NewBoard(s.catalog.Skills)
	}
	return v.skills
}

type skillItem struct {
	skills.EntryView
	ID       string
	Cat      int
	Item     int
	DelayMs  int64
	Revealed bool
	OOB      bool
}

type skillCategory struct {
	skills.CategoryView
	Items []skillItem
}

func categoryData(board *skills.Board, revealed bool) []skillCategory {
	view := board.View()
	out := make([]skillCategory, 0, len(view))
	for ci, cv := range view {
		sc := skillCategory{CategoryView: cv}
		for ei, ev := range cv.Entries {
			sc.Items = append(sc.Items, newSkillItem(ev, ci, ei, revealed))
		}
		out = append(out, sc)
	}
	return out
}

func newSkillItem(ev skills.EntryView, ci, ei int, revealed bool) skillItem {
	return skillItem{
		EntryView: ev,
		ID:        "skill-" + strconv.Itoa(ci) + "-" + strconv.Itoa(ei),
		Cat:       ci,
		Item:      ei,
		DelayMs:   skills.RevealDelay(ei).Milliseconds(),
		Revealed:  revealed,
	}
}

func findItem(board *skills.Board, cat, item string) (skillItem, bool) {
	ci, err := strconv.Atoi(cat)
	if err != nil {
		return skillItem{}, false
	}
	ei, err := strconv.Atoi(item)
	if err != nil {
		return skillItem{}, false
	}
	view := board.View()
	if ci < 0 || ci >= len(view) || ei < 0 || ei >= len(view[ci].Entries) {
		return skillItem{}, false
	}
	return newSkillItem(view[ci].Entries[ei], ci, ei, false), true
}

// itemsNamed returns revealed items for out-of-band swaps after a
// selection change.
func itemsNamed(board *skills.Board, names []string) []skillItem {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	var out []skillItem
	for ci, cv := range board.View() {
		for ei, ev := range cv.Entries {
			if want[ev.Name] {
				item := newSkillItem(ev, ci, ei, true)
				item.OOB = true
				out = append(out, item)
			}
		}
	}
	return out
}

func comparisonData(board *skills.Board) gin.H {
	cmp, ok := board.Comparison()
	return gin.H{"shown": ok, "rows": cmp.Rows}
}

// BarStyle is the inline style of the progress bar. Unrevealed bars start
// at zero width so the reveal animates.
func (i skillItem) BarStyle() template.CSS {
	width := 0
	if i.Revealed {
		width = i.Level
	}
	return template.CSS(fmt.Sprintf("width: %d%%; background: %s; transition-delay: %dms",
		width, i.Band.Gradient(), i.DelayMs))
}
