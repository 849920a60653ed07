package site

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	adminCookie       = "admin_token"
	recentVisitsLimit = 200
)

// adminAuth redirects to the login page unless the admin cookie matches
// this process's token.
func (s *Server) adminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(s.adminToken)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (s *Server) adminRoutes(r *gin.Engine) {
	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{
			"title":         "Privacy Policy",
			"retentionDays": int(s.opts.Retention.Hours() / 24),
		})
	})

	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{"title": "Admin Login"})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		username := c.PostForm("username")
		password := c.PostForm("password")
		userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.opts.AdminUsername)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.opts.AdminPassword)) == 1

		if userOK && passOK {
			c.SetCookie(adminCookie, s.adminToken, 3600*24, "/admin", "", s.opts.SecureCookie, true)
			s.logger.Info("admin login", zap.String("client", s.tracker.HashIP(c.ClientIP())))
			c.Redirect(http.StatusFound, "/admin/dashboard")
			return
		}
		s.logger.Warn("failed admin login", zap.String("client", s.tracker.HashIP(c.ClientIP())))
		c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
			"title": "Admin Login",
			"error": "Invalid credentials",
		})
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", s.opts.SecureCookie, true)
		c.Redirect(http.StatusFound, "/admin/login")
	})

	admin := r.Group("/admin")
	admin.Use(s.adminAuth())

	admin.GET("/dashboard", func(c *gin.Context) {
		stats, err := s.store.Stats(c.Request.Context(), time.Now())
		if err != nil {
			s.logger.Error("loading admin stats", zap.Error(err))
			renderError(c, http.StatusInternalServerError, "Failed to load statistics")
			return
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
			"stats":    stats,
			"sessions": s.sessions.len(),
		})
	})

	admin.GET("/api/stats", func(c *gin.Context) {
		stats, err := s.store.Stats(c.Request.Context(), time.Now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	admin.GET("/export/stats", func(c *gin.Context) {
		stats, err := s.store.Stats(c.Request.Context(), time.Now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=portfolio-stats.json")
		c.JSON(http.StatusOK, stats)
	})

	admin.GET("/visitors", func(c *gin.Context) {
		visits, err := s.store.Recent(c.Request.Context(), recentVisitsLimit)
		if err != nil {
			s.logger.Error("loading visitors", zap.Error(err))
			renderError(c, http.StatusInternalServerError, "Failed to load visitors")
			return
		}
		c.HTML(http.StatusOK, "admin-visitors.html", gin.H{
			"title":  "Visitors",
			"visits": visits,
		})
	})

	admin.POST("/privacy/delete-visitor-data", func(c *gin.Context) {
		s.tracker.Cleanup(c.Request.Context(), s.opts.Retention)
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup complete"})
	})
}
