package analytics

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sourcegraph/conc"
	"go.uber.org/zap"
)

// Tracker hashes visitor IPs and records visits in the background.
type Tracker struct {
	store  *Store
	salt   string
	logger *zap.Logger
	now    func() time.Time
	wg     conc.WaitGroup
}

// NewTracker uses a fresh random salt, so hashes are stable for the life
// of the process only.
func NewTracker(store *Store, logger *zap.Logger) (*Tracker, error) {
	salt, err := RandomToken()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tracker{store: store, salt: salt, logger: logger, now: time.Now}, nil
}

// RandomToken returns 32 random bytes hex-encoded.
func RandomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// HashIP is consistent per IP for this tracker's salt.
func (t *Tracker) HashIP(ip string) string {
	return hashIP(ip, t.salt)
}

func hashIP(ip, salt string) string {
	h := sha256.New()
	h.Write([]byte(ip + salt))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// Track records a visit asynchronously.
func (t *Tracker) Track(ip, userAgent, path string) {
	v := Visit{
		HashedIP:  t.HashIP(ip),
		UserAgent: userAgent,
		Path:      path,
		Timestamp: t.now(),
	}
	t.wg.Go(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := t.store.Record(ctx, v); err != nil {
			t.logger.Warn("recording visit", zap.Error(err))
		}
	})
}

// Wait blocks until every pending Track has been written.
func (t *Tracker) Wait() {
	t.wg.Wait()
}

// Cleanup drops visits older than retention.
func (t *Tracker) Cleanup(ctx context.Context, retention time.Duration) {
	n, err := t.store.Cleanup(ctx, t.now(), retention)
	if err != nil {
		t.logger.Warn("visit cleanup failed", zap.Error(err))
		return
	}
	if n > 0 {
		t.logger.Info("privacy cleanup removed old visits", zap.Int64("rows", n))
	}
}

var untrackedPrefixes = []string{
	"/static/",
	"/images/",
	"/admin/",
	"/favicon",
	"/privacy",
	"/healthz",
}

// Middleware tracks full page loads. Static files, admin pages, HTMX
// fragment requests and visitors sending DNT: 1 are skipped.
func (t *Tracker) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if c.Request.Method != "GET" || c.GetHeader("HX-Request") == "true" || c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}
		for _, prefix := range untrackedPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}
		t.Track(c.ClientIP(), c.GetHeader("User-Agent"), path)
		c.Next()
	}
}
