package storage

import (
	"context"

	"threecommas/internal/application/port"
	"threecommas/internal/domain/model"
)

type noopJournal struct{}

// NewNoopJournal 未启用任何存储时使用
func NewNoopJournal() port.CallJournal { return noopJournal{} }

func (noopJournal) Record(ctx context.Context, rec model.CallRecord) error { return nil }

func (noopJournal) Recent(ctx context.Context, limit int) ([]model.CallRecord, error) {
	return nil, nil
}

func (noopJournal) Close() error { return nil }
