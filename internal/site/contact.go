package site

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/portfolio/internal/contact"
)

// restoreRetry is how soon the success panel polls again when it asks for
// the form before the scheduled reset has run.
const restoreRetry = 500

func (s *Server) contactRoutes(r *gin.Engine) {
	r.GET("/contact", func(c *gin.Context) {
		v := s.visitor(c)
		v.mu.Lock()
		if v.contact != nil {
			v.contact.Close()
		}
		v.contact = s.newContactController()
		ctrl := v.contact
		v.mu.Unlock()

		c.HTML(http.StatusOK, "contact.html", s.contactData(ctrl, nil))
	})

	// Blur and input events for one field. Only that field's feedback is
	// re-rendered so the input keeps focus.
	r.POST("/contact/fields/:field", func(c *gin.Context) {
		field, ok := contact.ParseField(c.Param("field"))
		if !ok {
			c.Status(http.StatusNotFound)
			return
		}
		ev, ok := contact.ParseEvent(c.PostForm("event"))
		if !ok {
			c.Status(http.StatusBadRequest)
			return
		}

		ctrl := s.contactController(c)
		fv, _ := ctrl.HandleEvent(field, ev, c.PostForm(string(field)))
		c.HTML(http.StatusOK, "contact-feedback", gin.H{
			"field": fv,
			"view":  ctrl.View(),
		})
	})

	r.POST("/contact", func(c *gin.Context) {
		ctrl := s.contactController(c)
		values := make(map[contact.Field]string, 4)
		for _, f := range contact.Fields() {
			values[f] = c.PostForm(string(f))
		}

		err := ctrl.Submit(c.Request.Context(), values)
		switch {
		case err == nil:
			c.HTML(http.StatusOK, "contact-success", gin.H{
				"retryMs": ctrl.ResetDelay().Milliseconds(),
			})
		case errors.Is(err, contact.ErrSubmissionInFlight):
			c.HTML(http.StatusConflict, "contact-alert", gin.H{
				"message": "Your message is already on its way.",
			})
		case contact.IsValidationError(err):
			c.HTML(http.StatusOK, "contact-widget", s.contactData(ctrl, nil))
		default:
			var subErr *contact.SubmissionError
			if !errors.As(err, &subErr) {
				s.logger.Error("contact submit", zap.Error(err))
			}
			c.HTML(http.StatusOK, "contact-widget", s.contactData(ctrl, &alert{Message: contact.AlertMessage}))
		}
	})

	// The success panel calls back here once the reset delay has passed.
	r.GET("/contact/form", func(c *gin.Context) {
		ctrl := s.contactController(c)
		if ctrl.View().SuccessVisible {
			c.HTML(http.StatusOK, "contact-success", gin.H{"retryMs": restoreRetry})
			return
		}
		c.HTML(http.StatusOK, "contact-widget", s.contactData(ctrl, nil))
	})
}

type alert struct {
	Message string
}

// contactController returns the visitor's controller, creating one when a
// fragment arrives without a prior page load.
func (s *Server) contactController(c *gin.Context) *contact.Controller {
	v := s.visitor(c)
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.contact == nil {
		v.contact = s.newContactController()
	}
	return v.contact
}

func (s *Server) contactData(ctrl *contact.Controller, a *alert) gin.H {
	return gin.H{
		"owner":    s.catalog.Owner,
		"tech":     s.catalog.Tech,
		"view":     ctrl.View(),
		"subjects": contact.SubjectOptions(),
		"alert":    a,
	}
}
