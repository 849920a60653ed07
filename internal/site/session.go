package site

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/projects"
	"github.com/Zachkp/portfolio/internal/skills"
)

const sessionCookie = "portfolio_session"

// visitor holds the page controllers of one browser. A full page load
// replaces the controller for that page, so nothing survives a reload.
type visitor struct {
	mu       sync.Mutex
	contact  *contact.Controller
	projects *projects.Controller
	skills   *skills.Board
	lastSeen time.Time
}

type sessionStore struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	ttl      time.Duration
	now      func() time.Time
}

func newSessionStore(ttl time.Duration, now func() time.Time) *sessionStore {
	return &sessionStore{
		visitors: make(map[string]*visitor),
		ttl:      ttl,
		now:      now,
	}
}

// get returns the visitor for the request, issuing a session cookie on
// first contact.
func (s *sessionStore) get(c *gin.Context, secure bool) *visitor {
	id, err := c.Cookie(sessionCookie)
	if err == nil {
		_, err = uuid.Parse(id)
	}
	if err != nil {
		id = uuid.NewString()
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(sessionCookie, id, 0, "/", "", secure, true)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.visitors[id]
	if !ok {
		v = &visitor{}
		s.visitors[id] = v
	}
	v.lastSeen = s.now()
	return v
}

// sweep drops visitors idle for longer than the TTL and returns how many
// were removed.
func (s *sessionStore) sweep() int {
	s.mu.Lock()
	cutoff := s.now().Add(-s.ttl)
	var expired []*visitor
	for id, v := range s.visitors {
		if v.lastSeen.Before(cutoff) {
			expired = append(expired, v)
			delete(s.visitors, id)
		}
	}
	s.mu.Unlock()

	for _, v := range expired {
		v.close()
	}
	return len(expired)
}

func (s *sessionStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.visitors)
}

func (v *visitor) close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.contact != nil {
		v.contact.Close()
	}
}
