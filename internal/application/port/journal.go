package port

import (
	"context"

	"threecommas/internal/domain/model"
)

// CallJournal persists observed API calls.
type CallJournal interface {
	// Record stores one call record
	Record(ctx context.Context, rec model.CallRecord) error

	// Recent returns up to limit records, newest first
	Recent(ctx context.Context, limit int) ([]model.CallRecord, error)

	// Connection management
	Close() error
}
