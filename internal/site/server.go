// Package site serves the portfolio pages and the HTMX fragments behind
// the contact form, the projects browser and the skills board.
package site

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/portfolio/internal/analytics"
	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/logging"
	"github.com/Zachkp/portfolio/internal/projects"
	"github.com/Zachkp/portfolio/internal/schedule"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Options are the tunables of the site.
type Options struct {
	SendDelay       time.Duration
	ResetDelay      time.Duration
	SimulateFailure bool
	MatchMode       projects.MatchMode
	SessionTTL      time.Duration
	SweepInterval   time.Duration
	SecureCookie    bool
	AdminUsername   string
	AdminPassword   string
	Retention       time.Duration
}

// Server wires the page controllers to gin.
type Server struct {
	opts       Options
	catalog    *content.Catalog
	logger     *zap.Logger
	scheduler  *schedule.Scheduler
	sessions   *sessionStore
	store      *analytics.Store
	tracker    *analytics.Tracker
	adminToken string
	engine     *gin.Engine
}

// New builds the router. store may be nil, which disables visitor
// tracking and the admin pages.
func New(opts Options, catalog *content.Catalog, logger *zap.Logger, scheduler *schedule.Scheduler, store *analytics.Store) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.MatchMode == "" {
		opts.MatchMode = projects.Independent
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 30 * time.Minute
	}

	s := &Server{
		opts:      opts,
		catalog:   catalog,
		logger:    logger,
		scheduler: scheduler,
		sessions:  newSessionStore(opts.SessionTTL, scheduler.Clock().Now),
		store:     store,
	}

	if store != nil {
		tracker, err := analytics.NewTracker(store, logger)
		if err != nil {
			return nil, err
		}
		token, err := analytics.RandomToken()
		if err != nil {
			return nil, err
		}
		s.tracker = tracker
		s.adminToken = token
	}

	engine, err := s.buildEngine()
	if err != nil {
		return nil, err
	}
	s.engine = engine

	if opts.SweepInterval > 0 {
		scheduler.Every(opts.SweepInterval, func() {
			if n := s.sessions.sweep(); n > 0 {
				logger.Debug("expired visitor sessions", zap.Int("count", n))
			}
		})
	}
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.engine }

// Tracker returns the visitor tracker, or nil when analytics is off.
func (s *Server) Tracker() *analytics.Tracker { return s.tracker }

func (s *Server) buildEngine() (*gin.Engine, error) {
	r := gin.New()
	r.Use(logging.Middleware(s.logger), gin.Recovery())
	if s.tracker != nil {
		r.Use(s.tracker.Middleware())
	}

	tmpl, err := template.New("").Funcs(templateFuncs()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("loading static files: %w", err)
	}
	r.StaticFS("/static", http.FS(static))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", gin.H{
			"owner":     s.catalog.Owner,
			"aboutHTML": s.catalog.AboutHTML(),
			"projects":  s.catalog.Projects,
		})
	})

	s.contactRoutes(r)
	s.projectRoutes(r)
	s.skillRoutes(r)
	if s.store != nil {
		s.adminRoutes(r)
	}
	return r, nil
}

func (s *Server) newContactController() *contact.Controller {
	sender := contact.MockSender{
		Clock: s.scheduler.Clock(),
		Delay: s.opts.SendDelay,
		Fail:  s.opts.SimulateFailure,
	}
	return contact.NewController(sender, s.scheduler,
		contact.WithResetDelay(s.opts.ResetDelay),
		contact.WithLogger(s.logger),
	)
}

func (s *Server) visitor(c *gin.Context) *visitor {
	return s.sessions.get(c, s.opts.SecureCookie)
}

func renderError(c *gin.Context, status int, msg string) {
	c.HTML(status, "error.html", gin.H{"error": msg})
}
