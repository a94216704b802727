package composite

import (
	"context"
	"errors"
	"testing"

	"threecommas/internal/domain/model"
	"threecommas/internal/infrastructure/storage"
)

type failingJournal struct {
	closed bool
}

func (f *failingJournal) Record(ctx context.Context, rec model.CallRecord) error {
	return errors.New("record failed")
}

func (f *failingJournal) Recent(ctx context.Context, limit int) ([]model.CallRecord, error) {
	return nil, errors.New("recent failed")
}

func (f *failingJournal) Close() error {
	f.closed = true
	return nil
}

func TestCompositeFansOutAndKeepsFirstError(t *testing.T) {
	mem := storage.NewInMemoryJournal(10)
	bad := &failingJournal{}
	repo := New(mem, nil, bad)

	if repo.Len() != 2 {
		t.Fatalf("expected nil backend to be dropped, got %d", repo.Len())
	}

	err := repo.Record(context.Background(), model.CallRecord{ID: "x"})
	if err == nil {
		t.Fatal("expected error from failing backend")
	}

	recs, err := repo.Recent(context.Background(), 5)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(recs) != 1 || recs[0].ID != "x" {
		t.Errorf("expected record in memory backend, got %+v", recs)
	}

	if err := repo.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if !bad.closed {
		t.Error("expected every backend closed")
	}
}

func TestCompositeEmpty(t *testing.T) {
	repo := New()
	if err := repo.Record(context.Background(), model.CallRecord{}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	recs, err := repo.Recent(context.Background(), 1)
	if err != nil || recs != nil {
		t.Errorf("expected nil, nil; got %v, %v", recs, err)
	}
}
