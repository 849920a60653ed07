// Package analytics records privacy-conscious page views: client IPs are
// salted and hashed before storage and Do-Not-Track is respected.
package analytics

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const timeLayout = "2006-01-02 15:04:05"

// Visit is one tracked page view.
type Visit struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// PageStat is the view count of one path.
type PageStat struct {
	Path  string `json:"path"`
	Views int64  `json:"views"`
}

// Stats is the admin dashboard summary.
type Stats struct {
	TotalVisits    int64      `json:"total_visits"`
	UniqueVisitors int64      `json:"unique_visitors"`
	VisitsToday    int64      `json:"visits_today"`
	VisitsThisWeek int64      `json:"visits_this_week"`
	TopPages       []PageStat `json:"top_pages"`
	RecentVisits   []Visit    `json:"recent_visits"`
}

// Store wraps the sqlite database holding visits.
type Store struct {
	db *sql.DB
}

// Open creates or opens the database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// OpenMemory creates an in-memory database, used by tests.
func OpenMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS visits (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	hashed_ip TEXT NOT NULL,
	user_agent TEXT NOT NULL DEFAULT '',
	path TEXT NOT NULL,
	timestamp TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_visits_timestamp ON visits(timestamp);
`

func (s *Store) migrate() error {
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores one visit.
func (s *Store) Record(ctx context.Context, v Visit) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO visits (hashed_ip, user_agent, path, timestamp)
		VALUES (?, ?, ?, ?)
	`, v.HashedIP, v.UserAgent, v.Path, v.Timestamp.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("recording visit: %w", err)
	}
	return nil
}

// Cleanup deletes visits older than retention and returns how many were
// removed.
func (s *Store) Cleanup(ctx context.Context, now time.Time, retention time.Duration) (int64, error) {
	cutoff := now.Add(-retention).UTC().Format(timeLayout)
	result, err := s.db.ExecContext(ctx, `DELETE FROM visits WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("cleaning up visits: %w", err)
	}
	return result.RowsAffected()
}

// Stats summarises visits relative to now.
func (s *Store) Stats(ctx context.Context, now time.Time) (*Stats, error) {
	stats := &Stats{}
	now = now.UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	counts := []struct {
		dest  *int64
		query string
		args  []any
	}{
		{&stats.TotalVisits, `SELECT COUNT(*) FROM visits`, nil},
		{&stats.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_ip) FROM visits`, nil},
		{&stats.VisitsToday, `SELECT COUNT(*) FROM visits WHERE timestamp >= ?`, []any{dayStart.Format(timeLayout)}},
		{&stats.VisitsThisWeek, `SELECT COUNT(*) FROM visits WHERE timestamp >= ?`, []any{now.Add(-7 * 24 * time.Hour).Format(timeLayout)}},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dest); err != nil {
			return nil, fmt.Errorf("counting visits: %w", err)
		}
	}

	top, err := s.TopPages(ctx, 10)
	if err != nil {
		return nil, err
	}
	stats.TopPages = top

	recent, err := s.Recent(ctx, 50)
	if err != nil {
		return nil, err
	}
	stats.RecentVisits = recent
	return stats, nil
}

// TopPages returns the most viewed paths.
func (s *Store) TopPages(ctx context.Context, limit int) ([]PageStat, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT path, COUNT(*) AS views
		FROM visits
		GROUP BY path
		ORDER BY views DESC, path ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying top pages: %w", err)
	}
	defer rows.Close()

	var out []PageStat
	for rows.Next() {
		var p PageStat
		if err := rows.Scan(&p.Path, &p.Views); err != nil {
			return nil, fmt.Errorf("scanning top pages: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Recent returns the latest visits, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Visit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, hashed_ip, user_agent, path, timestamp
		FROM visits
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent visits: %w", err)
	}
	defer rows.Close()

	var out []Visit
	for rows.Next() {
		var v Visit
		var ts string
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &ts); err != nil {
			return nil, fmt.Errorf("scanning visit: %w", err)
		}
		if v.Timestamp, err = time.Parse(timeLayout, ts); err != nil {
			return nil, fmt.Errorf("parsing visit time %q: %w", ts, err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
