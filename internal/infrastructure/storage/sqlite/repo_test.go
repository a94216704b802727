package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"threecommas/internal/domain/model"
)

func newTestRepo(t *testing.T) *Repo {
	t.Helper()
	repo, err := New(filepath.Join(t.TempDir(), "nested", "calls.db"))
	if err != nil {
		t.Fatalf("failed to create repo: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSQLiteRepoRecordAndRecent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	base := time.UnixMilli(1700000000000)
	recs := []model.CallRecord{
		{ID: "a", Endpoint: "accounts", Method: "GET", Path: "/public/api/ver1/accounts?", StatusCode: 200, Outcome: model.OutcomeOK, StartedAt: base, Duration: 150 * time.Millisecond},
		{ID: "b", Endpoint: "deal_panic_sell", Method: "POST", Path: "/public/api/ver1/deals/42/panic_sell?", Query: "deal_id=42", StatusCode: 0, Outcome: model.OutcomeTransport, Error: "transport failure: refused", StartedAt: base.Add(time.Second)},
	}
	for _, rec := range recs {
		if err := repo.Record(ctx, rec); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	got, err := repo.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0].ID != "b" || got[1].ID != "a" {
		t.Errorf("expected newest first, got %s, %s", got[0].ID, got[1].ID)
	}
	if got[0].Query != "deal_id=42" || got[0].Outcome != model.OutcomeTransport || got[0].Error == "" {
		t.Errorf("unexpected record: %+v", got[0])
	}
	if !got[1].StartedAt.Equal(base) || got[1].Duration != 150*time.Millisecond {
		t.Errorf("unexpected timing: %v %v", got[1].StartedAt, got[1].Duration)
	}
}

func TestSQLiteRepoRecentLimit(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for i, id := range []string{"a", "b", "c"} {
		rec := model.CallRecord{ID: id, Method: "GET", Outcome: model.OutcomeOK, StartedAt: time.UnixMilli(int64(i + 1))}
		if err := repo.Record(ctx, rec); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	got, err := repo.Recent(ctx, 1)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != "c" {
		t.Errorf("expected [c], got %+v", got)
	}
}

func TestSQLiteRepoDuplicateID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	rec := model.CallRecord{ID: "dup", Method: "GET", Outcome: model.OutcomeOK}

	if err := repo.Record(ctx, rec); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := repo.Record(ctx, rec); err == nil {
		t.Error("expected primary key violation")
	}
}
