package site

import (
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/projects"
)

func (s *Server) projectRoutes(r *gin.Engine) {
	r.GET("/projects", func(c *gin.Context) {
		v := s.visitor(c)
		v.mu.Lock()
		v.projects = projects.NewController(s.catalog.Projects, s.opts.MatchMode)
		ctrl := v.projects
		v.mu.Unlock()

		c.HTML(http.StatusOK, "projects.html", gin.H{
			"tabs":  s.tabData(ctrl),
			"grid":  s.gridData(ctrl),
			"stats": gin.H{"frames": s.pendingFrames(), "started": false},
		})
	})

	// Selecting a tab re-renders the grid and swaps the tab bar out of band
	// so exactly one tab is highlighted.
	// Catch-all so category names containing a slash still route.
	r.POST("/projects/filter/*category", func(c *gin.Context) {
		ctrl := s.projectController(c)
		ctrl.SelectFilter(strings.TrimPrefix(c.Param("category"), "/"))
		c.HTML(http.StatusOK, "project-filter-result", gin.H{
			"tabs": s.tabData(ctrl),
			"grid": s.gridData(ctrl),
		})
	})

	r.GET("/projects/search", func(c *gin.Context) {
		ctrl := s.projectController(c)
		ctrl.Search(c.Query("q"))
		c.HTML(http.StatusOK, "project-grid", s.gridData(ctrl))
	})

	// Counters start once the stats section scrolls into view.
	r.GET("/projects/stats", func(c *gin.Context) {
		frames := make([]statFrame, 0, len(s.catalog.Stats))
		for i := range s.catalog.Stats {
			frames = append(frames, s.statFrame(i, 1))
		}
		c.HTML(http.StatusOK, "project-stats", gin.H{"frames": frames, "started": true})
	})

	r.GET("/projects/stats/:index", func(c *gin.Context) {
		i, err := strconv.Atoi(c.Param("index"))
		if err != nil || i < 0 || i >= len(s.catalog.Stats) {
			c.Status(http.StatusNotFound)
			return
		}
		frame, err := strconv.Atoi(c.DefaultQuery("frame", "0"))
		if err != nil || frame < 0 || frame > projects.FrameCount {
			c.Status(http.StatusBadRequest)
			return
		}
		c.HTML(http.StatusOK, "stat-counter", s.statFrame(i, frame))
	})
}

func (s *Server) projectController(c *gin.Context) *projects.Controller {
	v := s.visitor(c)
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.projects == nil {
		v.projects = projects.NewController(s.catalog.Projects, s.opts.MatchMode)
	}
	return v.projects
}

type tab struct {
	Name   string
	Active bool
}

func (s *Server) tabData(ctrl *projects.Controller) []tab {
	active := ctrl.ActiveFilter()
	out := make([]tab, 0, len(ctrl.Tabs()))
	for _, name := range ctrl.Tabs() {
		out = append(out, tab{Name: name, Active: name == active})
	}
	return out
}

type card struct {
	projects.Entry
	Visible bool
	Index   int
	Detail  template.HTML
}

func (s *Server) gridData(ctrl *projects.Controller) gin.H {
	cards := make([]card, 0, len(ctrl.Entries()))
	visible := 0
	for i, e := range ctrl.Entries() {
		shown := ctrl.IsVisible(e)
		if shown {
			visible++
		}
		detail, _ := s.catalog.DetailHTML(e.Slug)
		cards = append(cards, card{Entry: e, Visible: shown, Index: i, Detail: detail})
	}
	return gin.H{
		"cards":   cards,
		"visible": visible,
		"query":   ctrl.Query(),
	}
}

type statFrame struct {
	Index  int
	Label  string
	Suffix string
	Value  int
	Next   int
	Done   bool
	StepMs int64
}

// pendingFrames render every counter at zero, waiting for the section to
// scroll into view.
func (s *Server) pendingFrames() []statFrame {
	frames := make([]statFrame, 0, len(s.catalog.Stats))
	for i, st := range s.catalog.Stats {
		frames = append(frames, statFrame{Index: i, Label: st.Label, Suffix: st.Suffix, Done: true})
	}
	return frames
}

func (s *Server) statFrame(i, frame int) statFrame {
	st := s.catalog.Stats[i]
	value, done := projects.Frame(st.Target, frame)
	return statFrame{
		Index:  i,
		Label:  st.Label,
		Suffix: st.Suffix,
		Value:  value,
		Next:   frame + 1,
		Done:   done,
		StepMs: projects.FrameInterval.Milliseconds(),
	}
}
