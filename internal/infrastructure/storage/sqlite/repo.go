package sqlite

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"threecommas/internal/application/port"
	"threecommas/internal/domain/model"
	"threecommas/internal/infrastructure/storage/sqlstore"
)

type Repo struct {
	db *sql.DB
}

func New(path string) (*Repo, error) {
	// ensure directory exists
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		_ = os.MkdirAll(dir, 0o755)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	r := &Repo{db: db}
	if err := r.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return r, nil
}

func (r *Repo) Close() error { return r.db.Close() }

func (r *Repo) migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS calls (
  id TEXT PRIMARY KEY,
  endpoint TEXT NOT NULL,
  method TEXT NOT NULL,
  path TEXT NOT NULL,
  query TEXT NOT NULL,
  status_code INTEGER NOT NULL,
  outcome TEXT NOT NULL,
  error TEXT NOT NULL,
  started_ms INTEGER NOT NULL,
  duration_ns INTEGER NOT NULL,
  created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_calls_started ON calls(started_ms);
CREATE INDEX IF NOT EXISTS idx_calls_endpoint ON calls(endpoint);
`)
	return err
}

func (r *Repo) Record(ctx context.Context, rec model.CallRecord) error {
	return sqlstore.InsertCall(ctx, r.db, sqlstore.Question, rec)
}

func (r *Repo) Recent(ctx context.Context, limit int) ([]model.CallRecord, error) {
	return sqlstore.RecentCalls(ctx, r.db, sqlstore.Question, limit)
}

var _ port.CallJournal = (*Repo)(nil)
