package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/influence-iq/influenceiq/pkg/score"
)

// Analysis is one persisted scoring run.
type Analysis struct {
	ID              int64                      `db:"id" json:"id"`
	Person          string                     `db:"person" json:"person"`
	Overall         int                        `db:"overall" json:"overall"`
	Grade           string                     `db:"grade" json:"grade"`
	NewsSentiment   float64                    `db:"news_sentiment" json:"news_sentiment"`
	NewsCredibility float64                    `db:"news_credibility" json:"news_credibility"`
	NewsLabel       string                     `db:"news_label" json:"news_label"`
	BreakdownJSON   string                     `db:"breakdown" json:"-"`
	Breakdown       map[string]score.Component `db:"-" json:"breakdown"`
	CreatedAt       time.Time                  `db:"created_at" json:"created_at"`
}

// Watch is one watchlist entry tracked by the scheduler.
type Watch struct {
	Person    string        `db:"person" json:"person"`
	AddedAt   time.Time     `db:"added_at" json:"added_at"`
	LastScore sql.NullInt64 `db:"last_score" json:"-"`
	LastRun   sql.NullTime  `db:"last_run" json:"-"`
}

// ListOpts controls analysis listing.
type ListOpts struct {
	Person string
	Limit  int
}

// Store is the persistence interface.
type Store interface {
	SaveAnalysis(ctx context.Context, a *Analysis) error
	ListAnalyses(ctx context.Context, opts ListOpts) ([]Analysis, error)
	LatestAnalysis(ctx context.Context, person string) (*Analysis, error)

	AddWatch(ctx context.Context, person string) error
	RemoveWatch(ctx context.Context, person string) error
	ListWatches(ctx context.Context) ([]Watch, error)
	TouchWatch(ctx context.Context, person string, overall int, at time.Time) error

	Close() error
}

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sqlx.DB
}

// New opens a SQLite database and runs migrations.
func New(path string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveAnalysis(ctx context.Context, a *Analysis) error {
	breakdownJSON, _ := json.Marshal(a.Breakdown)

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO analyses (person, overall, grade, news_sentiment, news_credibility, news_label, breakdown, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, a.Person, a.Overall, a.Grade, a.NewsSentiment, a.NewsCredibility, a.NewsLabel,
		string(breakdownJSON), a.CreatedAt)
	if err != nil {
		return fmt.Errorf("save analysis for %s: %w", a.Person, err)
	}

	if id, err := res.LastInsertId(); err == nil {
		a.ID = id
	}
	a.BreakdownJSON = string(breakdownJSON)
	return nil
}

func (s *SQLiteStore) ListAnalyses(ctx context.Context, opts ListOpts) ([]Analysis, error) {
	query := "SELECT * FROM analyses WHERE 1=1"
	var args []any

	if opts.Person != "" {
		query += " AND person = ?"
		args = append(args, opts.Person)
	}

	query += " ORDER BY created_at DESC"

	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	query += " LIMIT ?"
	args = append(args, limit)

	var analyses []Analysis
	if err := s.db.SelectContext(ctx, &analyses, query, args...); err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}

	for i := range analyses {
		json.Unmarshal([]byte(analyses[i].BreakdownJSON), &analyses[i].Breakdown)
	}
	return analyses, nil
}

func (s *SQLiteStore) LatestAnalysis(ctx context.Context, person string) (*Analysis, error) {
	var a Analysis
	err := s.db.GetContext(ctx, &a,
		"SELECT * FROM analyses WHERE person = ? ORDER BY created_at DESC LIMIT 1", person)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest analysis for %s: %w", person, err)
	}
	json.Unmarshal([]byte(a.BreakdownJSON), &a.Breakdown)
	return &a, nil
}

func (s *SQLiteStore) AddWatch(ctx context.Context, person string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO watchlist (person, added_at) VALUES (?, ?)
		ON CONFLICT(person) DO NOTHING
	`, person, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("add watch %s: %w", person, err)
	}
	return nil
}

func (s *SQLiteStore) RemoveWatch(ctx context.Context, person string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM watchlist WHERE person = ?", person)
	if err != nil {
		return fmt.Errorf("remove watch %s: %w", person, err)
	}
	return nil
}

func (s *SQLiteStore) ListWatches(ctx context.Context) ([]Watch, error) {
	var watches []Watch
	err := s.db.SelectContext(ctx, &watches, "SELECT * FROM watchlist ORDER BY added_at")
	if err != nil {
		return nil, fmt.Errorf("list watches: %w", err)
	}
	return watches, nil
}

func (s *SQLiteStore) TouchWatch(ctx context.Context, person string, overall int, at time.Time) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE watchlist SET last_score = ?, last_run = ? WHERE person = ?",
		overall, at, person)
	if err != nil {
		return fmt.Errorf("touch watch %s: %w", person, err)
	}
	return nil
}
