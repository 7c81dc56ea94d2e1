package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// SessionRecord summarises one finished practice session.
type SessionRecord struct {
	ID           string
	StartedAt    time.Time
	EndedAt      time.Time
	Completed    int
	Shown        int
	Limit        int
	TimerSeconds int
	Categories   []string
}

// Duration returns the wall-clock length of the session.
func (r SessionRecord) Duration() time.Duration {
	if r.EndedAt.Before(r.StartedAt) {
		return 0
	}
	return r.EndedAt.Sub(r.StartedAt)
}

// AddSession stores rec. Records with an existing id are replaced.
func (s *Store) AddSession(ctx context.Context, rec SessionRecord) error {
	categories := rec.Categories
	if categories == nil {
		categories = []string{}
	}
	encoded, err := json.Marshal(categories)
	if err != nil {
		return fmt.Errorf("encode categories: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO sessions
		 (id, started_at, ended_at, completed, shown, image_limit, timer_seconds, categories)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.StartedAt.UTC().Format(timeLayout),
		rec.EndedAt.UTC().Format(timeLayout),
		rec.Completed,
		rec.Shown,
		rec.Limit,
		rec.TimerSeconds,
		string(encoded),
	)
	if err != nil {
		return fmt.Errorf("insert session %s: %w", rec.ID, err)
	}
	return nil
}

// ListSessions returns up to limit sessions, newest first. A non-positive
// limit returns all of them.
func (s *Store) ListSessions(ctx context.Context, limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, ended_at, completed, shown, image_limit, timer_seconds, categories
		 FROM sessions ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var records []SessionRecord
	for rows.Next() {
		var (
			rec        SessionRecord
			started    string
			ended      string
			categories string
		)
		if err := rows.Scan(&rec.ID, &started, &ended, &rec.Completed, &rec.Shown,
			&rec.Limit, &rec.TimerSeconds, &categories); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		if rec.StartedAt, err = time.Parse(timeLayout, started); err != nil {
			return nil, fmt.Errorf("parse started_at of %s: %w", rec.ID, err)
		}
		if rec.EndedAt, err = time.Parse(timeLayout, ended); err != nil {
			return nil, fmt.Errorf("parse ended_at of %s: %w", rec.ID, err)
		}
		if err := json.Unmarshal([]byte(categories), &rec.Categories); err != nil {
			return nil, fmt.Errorf("decode categories of %s: %w", rec.ID, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
