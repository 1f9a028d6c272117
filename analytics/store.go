package analytics

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS visits (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	visitor_id TEXT NOT NULL,
	session_id TEXT NOT NULL,
	ip_hash TEXT NOT NULL,
	path TEXT NOT NULL,
	referrer TEXT NOT NULL DEFAULT '',
	locale TEXT NOT NULL DEFAULT 'en',
	device TEXT NOT NULL DEFAULT 'Desktop',
	timestamp DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_visits_timestamp ON visits(timestamp);
CREATE INDEX IF NOT EXISTS idx_visits_path ON visits(path);
CREATE INDEX IF NOT EXISTS idx_visits_visitor ON visits(visitor_id);

CREATE TABLE IF NOT EXISTS settings (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// Store persists visits in sqlite.
type Store struct {
	db *sql.DB
}

// NewStore opens the analytics database, enables WAL and creates the schema.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open analytics db: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping analytics db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create analytics schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// GetSetting returns the value for key or "" when absent.
func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// SetSetting stores or replaces a setting.
func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(`INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}

// RecordVisit inserts one page view.
func (s *Store) RecordVisit(v Visit) error {
	_, err := s.db.Exec(`INSERT INTO visits
		(visitor_id, session_id, ip_hash, path, referrer, locale, device, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		v.VisitorID, v.SessionID, v.IPHash, v.Path, v.Referrer, v.Locale, v.Device, v.Timestamp)
	if err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	return nil
}

// periodStart maps a period name to its start time. Unknown periods fall back
// to the last 30 days.
func periodStart(period string, now time.Time) time.Time {
	switch period {
	case "day":
		return now.AddDate(0, 0, -1)
	case "week":
		return now.AddDate(0, 0, -7)
	case "year":
		return now.AddDate(-1, 0, 0)
	default:
		return now.AddDate(0, 0, -30)
	}
}

// GetStats aggregates the visits recorded since the start of period.
func (s *Store) GetStats(period string) (*Stats, error) {
	since := periodStart(period, time.Now().UTC())
	stats := &Stats{Period: period}

	err := s.db.QueryRow(`SELECT COUNT(DISTINCT visitor_id), COUNT(*)
		FROM visits WHERE timestamp >= ?`, since).
		Scan(&stats.UniqueVisitors, &stats.TotalViews)
	if err != nil {
		return nil, fmt.Errorf("visit totals: %w", err)
	}

	stats.TopPages, err = s.topPages(since, 10)
	if err != nil {
		return nil, err
	}
	stats.LocaleStats, err = s.dimension("locale", since)
	if err != nil {
		return nil, err
	}
	stats.DeviceStats, err = s.dimension("device", since)
	if err != nil {
		return nil, err
	}
	stats.DailyViews, err = s.dailyViews(since)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *Store) topPages(since time.Time, limit int) ([]PageStat, error) {
	rows, err := s.db.Query(`SELECT path, COUNT(*) AS views FROM visits
		WHERE timestamp >= ? GROUP BY path ORDER BY views DESC LIMIT ?`, since, limit)
	if err != nil {
		return nil, fmt.Errorf("top pages: %w", err)
	}
	defer rows.Close()

	var pages []PageStat
	for rows.Next() {
		var p PageStat
		if err := rows.Scan(&p.Path, &p.Views); err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

// dimension aggregates counts by a visit column. The column name is always a
// literal from this package, never user input.
func (s *Store) dimension(column string, since time.Time) ([]DimensionStat, error) {
	rows, err := s.db.Query(`SELECT `+column+`, COUNT(*) AS n FROM visits
		WHERE timestamp >= ? GROUP BY `+column+` ORDER BY n DESC`, since)
	if err != nil {
		return nil, fmt.Errorf("%s breakdown: %w", column, err)
	}
	defer rows.Close()

	var out []DimensionStat
	for rows.Next() {
		var d DimensionStat
		if err := rows.Scan(&d.Name, &d.Count); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *Store) dailyViews(since time.Time) ([]DailyView, error) {
	rows, err := s.db.Query(`SELECT DATE(timestamp) AS day, COUNT(*) FROM visits
		WHERE timestamp >= ? GROUP BY day ORDER BY day`, since)
	if err != nil {
		return nil, fmt.Errorf("daily views: %w", err)
	}
	defer rows.Close()

	var out []DailyView
	for rows.Next() {
		var d DailyView
		if err := rows.Scan(&d.Date, &d.Views); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// StartRetention launches a background job that purges visits older than
// retainDays on the given interval. The returned function stops the job.
func (s *Store) StartRetention(retainDays int, every time.Duration) func() {
	stop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				cutoff := time.Now().UTC().AddDate(0, 0, -retainDays)
				s.PurgeBefore(cutoff)
			}
		}
	}()
	return func() { close(stop) }
}

// PurgeBefore deletes visits older than cutoff. Used by the retention job.
func (s *Store) PurgeBefore(cutoff time.Time) (int64, error) {
	res, err := s.db.Exec(`DELETE FROM visits WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge visits: %w", err)
	}
	return res.RowsAffected()
}
