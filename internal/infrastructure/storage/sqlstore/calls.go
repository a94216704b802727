// Package sqlstore holds the SQL shared by the sqlite and postgres call journals.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"threecommas/internal/domain/model"
)

// Placeholder renders the n-th (1-based) bind parameter.
type Placeholder func(n int) string

func Question(int) string { return "?" }

func Dollar(n int) string { return fmt.Sprintf("$%d", n) }

const columns = "id, endpoint, method, path, query, status_code, outcome, error, started_ms, duration_ns"

// InsertCall writes one record.
func InsertCall(ctx context.Context, db *sql.DB, ph Placeholder, rec model.CallRecord) error {
	marks := make([]string, 11)
	for i := range marks {
		marks[i] = ph(i + 1)
	}
	q := "INSERT INTO calls(" + columns + ", created_at) VALUES(" + strings.Join(marks, ", ") + ")"
	_, err := db.ExecContext(ctx, q,
		rec.ID, rec.Endpoint, rec.Method, rec.Path, rec.Query, rec.StatusCode,
		string(rec.Outcome), rec.Error, rec.StartedAt.UnixMilli(), int64(rec.Duration),
		time.Now().UnixMilli())
	return err
}

// RecentCalls reads up to limit records, newest first.
func RecentCalls(ctx context.Context, db *sql.DB, ph Placeholder, limit int) ([]model.CallRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.QueryContext(ctx,
		"SELECT "+columns+" FROM calls ORDER BY started_ms DESC LIMIT "+ph(1), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.CallRecord
	for rows.Next() {
		var (
			rec       model.CallRecord
			outcome   string
			startedMs int64
			durNs     int64
		)
		if err := rows.Scan(&rec.ID, &rec.Endpoint, &rec.Method, &rec.Path, &rec.Query,
			&rec.StatusCode, &outcome, &rec.Error, &startedMs, &durNs); err != nil {
			return nil, err
		}
		rec.Outcome = model.Outcome(outcome)
		rec.StartedAt = time.UnixMilli(startedMs)
		rec.Duration = time.Duration(durNs)
		out = append(out, rec)
	}
	return out, rows.Err()
}
