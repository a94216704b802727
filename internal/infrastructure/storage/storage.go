package storage

import (
	"context"
	"sync"

	"threecommas/internal/application/port"
	"threecommas/internal/domain/model"
)

// InMemoryJournal keeps the most recent records in memory.
type InMemoryJournal struct {
	mu      sync.Mutex
	records []model.CallRecord
	max     int
}

// NewInMemoryJournal keeps at most max records; max <= 0 means 1000.
func NewInMemoryJournal(max int) *InMemoryJournal {
	if max <= 0 {
		max = 1000
	}
	return &InMemoryJournal{
		records: make([]model.CallRecord, 0),
		max:     max,
	}
}

func (j *InMemoryJournal) Record(ctx context.Context, rec model.CallRecord) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.records = append(j.records, rec)
	if over := len(j.records) - j.max; over > 0 {
		j.records = append(j.records[:0:0], j.records[over:]...)
	}
	return nil
}

func (j *InMemoryJournal) Recent(ctx context.Context, limit int) ([]model.CallRecord, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if limit <= 0 || limit > len(j.records) {
		limit = len(j.records)
	}
	out := make([]model.CallRecord, 0, limit)
	for i := len(j.records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, j.records[i])
	}
	return out, nil
}

func (j *InMemoryJournal) Close() error {
	return nil
}

var _ port.CallJournal = (*InMemoryJournal)(nil)
