package postgres

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"

	"threecommas/internal/application/port"
	"threecommas/internal/domain/model"
	"threecommas/internal/infrastructure/storage/sqlstore"
)

type Repo struct {
	db *sql.DB
}

func New(dsn string) (*Repo, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	r, err := NewWithDB(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return r, nil
}

// NewWithDB wraps an open handle and runs the migration.
func NewWithDB(db *sql.DB) (*Repo, error) {
	r := &Repo{db: db}
	if err := r.migrate(context.Background()); err != nil {
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
  started_ms BIGINT NOT NULL,
  duration_ns BIGINT NOT NULL,
  created_at BIGINT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_calls_started ON calls(started_ms);
`)
	return err
}

func (r *Repo) Record(ctx context.Context, rec model.CallRecord) error {
	return sqlstore.InsertCall(ctx, r.db, sqlstore.Dollar, rec)
}

func (r *Repo) Recent(ctx context.Context, limit int) ([]model.CallRecord, error) {
	return sqlstore.RecentCalls(ctx, r.db, sqlstore.Dollar, limit)
}

var _ port.CallJournal = (*Repo)(nil)
