package composite

import (
	"context"

	"threecommas/internal/application/port"
	"threecommas/internal/domain/model"
)

type Repo struct {
	repos []port.CallJournal
}

func New(repos ...port.CallJournal) *Repo {
	// nil repos are allowed; filter in constructor for safety
	out := make([]port.CallJournal, 0, len(repos))
	for _, r := range repos {
		if r != nil {
			out = append(out, r)
		}
	}
	return &Repo{repos: out}
}

// Len returns the number of backends.
func (r *Repo) Len() int { return len(r.repos) }

func (r *Repo) Record(ctx context.Context, rec model.CallRecord) error {
	var firstErr error
	for _, repo := range r.repos {
		if err := repo.Record(ctx, rec); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Recent reads from the first backend.
func (r *Repo) Recent(ctx context.Context, limit int) ([]model.CallRecord, error) {
	if len(r.repos) == 0 {
		return nil, nil
	}
	return r.repos[0].Recent(ctx, limit)
}

func (r *Repo) Close() error {
	var firstErr error
	for _, repo := range r.repos {
		if err := repo.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

var _ port.CallJournal = (*Repo)(nil)
