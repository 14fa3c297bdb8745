package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"calentry/internal/model"

	_ "modernc.org/sqlite"
)

const dbFileName = "events.sqlite"

var (
	ErrEmptySummary = errors.New("event summary is empty")
	ErrInvalidStart = errors.New("invalid event start")
)

// Store keeps drafted events in a SQLite file under Dir.
type Store struct {
	Dir string
}

// DefaultDir is the config dir; events live next to config.json.
func DefaultDir() (string, error) {
	return ConfigDir()
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) Path() string {
	return filepath.Join(s.Dir, dbFileName)
}

func (s Store) open(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.Path())
	if err != nil {
		return nil, err
	}
	// CLI and TUI can run side by side: WAL + busy_timeout avoid "database is locked".
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS events (
			id TEXT PRIMARY KEY,
			summary TEXT NOT NULL,
			notes TEXT NOT NULL DEFAULT '',
			start_date TEXT NOT NULL,
			start_time TEXT,
			created_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_events_start ON events(start_date, start_time);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

// AddEvent validates ev, assigns an id and creation time when missing, and
// stores it.
func (s Store) AddEvent(ctx context.Context, ev model.Event) (model.Event, error) {
	ev.Summary = strings.TrimSpace(ev.Summary)
	if ev.Summary == "" {
		return model.Event{}, ErrEmptySummary
	}
	if _, err := ev.Start.In(time.UTC); err != nil {
		return model.Event{}, fmt.Errorf("%w %q: %v", ErrInvalidStart, ev.Start.String(), err)
	}
	if ev.ID == "" {
		id, err := newEventID()
		if err != nil {
			return model.Event{}, err
		}
		ev.ID = id
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}

	db, err := s.open(ctx)
	if err != nil {
		return model.Event{}, err
	}
	defer db.Close()

	var startTime any
	if !ev.Start.AllDay() {
		startTime = *ev.Start.Time
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO events(id, summary, notes, start_date, start_time, created_at_unixms) VALUES(?, ?, ?, ?, ?, ?)`,
		ev.ID, ev.Summary, ev.Notes, ev.Start.Date, startTime, ev.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return model.Event{}, err
	}
	slog.Debug("event stored", "id", ev.ID, "start", ev.Start.String())
	return ev, nil
}

// ListEvents returns all events by start; all-day events sort before timed
// events on the same date.
func (s Store) ListEvents(ctx context.Context) ([]model.Event, error) {
	db, err := s.open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT id, summary, notes, start_date, start_time, created_at_unixms
		FROM events
		ORDER BY start_date, COALESCE(start_time, ''), created_at_unixms`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Event{}
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

func (s Store) GetEvent(ctx context.Context, id string) (model.Event, bool, error) {
	db, err := s.open(ctx)
	if err != nil {
		return model.Event{}, false, err
	}
	defer db.Close()

	row := db.QueryRowContext(ctx, `SELECT id, summary, notes, start_date, start_time, created_at_unixms
		FROM events WHERE id = ?`, strings.TrimSpace(id))
	ev, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Event{}, false, nil
	}
	if err != nil {
		return model.Event{}, false, err
	}
	return ev, true, nil
}

func (s Store) DeleteEvent(ctx context.Context, id string) (bool, error) {
	db, err := s.open(ctx)
	if err != nil {
		return false, err
	}
	defer db.Close()

	res, err := db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, strings.TrimSpace(id))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n > 0 {
		slog.Debug("event deleted", "id", id)
	}
	return n > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(r rowScanner) (model.Event, error) {
	var (
		ev        model.Event
		startTime sql.NullString
		createdMs int64
	)
	if err := r.Scan(&ev.ID, &ev.Summary, &ev.Notes, &ev.Start.Date, &startTime, &createdMs); err != nil {
		return model.Event{}, err
	}
	if startTime.Valid && strings.TrimSpace(startTime.String) != "" {
		hm := startTime.String
		ev.Start.Time = &hm
	}
	ev.CreatedAt = time.UnixMilli(createdMs).UTC()
	return ev, nil
}
