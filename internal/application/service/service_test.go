package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"threecommas/internal/domain/model"
)

type memJournal struct {
	mu   sync.Mutex
	recs []model.CallRecord
	err  error
	ctxs []error
}

func (m *memJournal) Record(ctx context.Context, rec model.CallRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ctxs = append(m.ctxs, ctx.Err())
	if m.err != nil {
		return m.err
	}
	m.recs = append(m.recs, rec)
	return nil
}

func (m *memJournal) Recent(ctx context.Context, limit int) ([]model.CallRecord, error) {
	return m.recs, nil
}

func (m *memJournal) Close() error { return nil }

type memSink struct {
	events []model.StreamEvent
	fail   bool
}

func (s *memSink) WriteResult(name string, status int, payload []byte, err error) error { return nil }

func (s *memSink) WriteEvent(ev model.StreamEvent) error {
	if s.fail {
		return errors.New("sink closed")
	}
	s.events = append(s.events, ev)
	return nil
}

func (s *memSink) WriteRecords(recs []model.CallRecord) error { return nil }

type countingObserver struct{ n int }

func (c *countingObserver) ObserveEvent(model.StreamEvent) { c.n++ }

func TestJournalHookRecords(t *testing.T) {
	j := &memJournal{}
	h := NewJournalHook(j)

	h.AfterCall(context.Background(), model.CallRecord{ID: "a", Endpoint: "accounts"})
	require.Len(t, j.recs, 1)
	assert.Equal(t, "a", j.recs[0].ID)
}

func TestJournalHookSurvivesCancelledContext(t *testing.T) {
	j := &memJournal{}
	h := NewJournalHook(j)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	h.AfterCall(ctx, model.CallRecord{ID: "b", Outcome: model.OutcomeTransport})

	require.Len(t, j.recs, 1)
	assert.NoError(t, j.ctxs[0])
}

func TestJournalHookSwallowsErrors(t *testing.T) {
	j := &memJournal{err: errors.New("disk full")}
	h := NewJournalHook(j)
	assert.NotPanics(t, func() {
		h.AfterCall(context.Background(), model.CallRecord{ID: "c"})
	})

	var nilHook *JournalHook
	assert.NotPanics(t, func() {
		nilHook.AfterCall(context.Background(), model.CallRecord{})
	})
}

func TestStreamServiceDeliversUntilClosed(t *testing.T) {
	sink := &memSink{}
	obs := &countingObserver{}
	svc := NewStreamService(sink, obs, nil)

	events := make(chan model.StreamEvent, 3)
	events <- model.StreamEvent{Channel: "DealsChannel", Message: []byte(`{"id":1}`)}
	events <- model.StreamEvent{Channel: "DealsChannel", Message: []byte(`{"id":2}`)}
	close(events)

	n, err := svc.Run(context.Background(), events)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, obs.n)
	require.Len(t, sink.events, 2)
	assert.JSONEq(t, `{"id":2}`, string(sink.events[1].Message))
}

func TestStreamServiceStopsOnContext(t *testing.T) {
	svc := NewStreamService(&memSink{})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	n, err := svc.Run(ctx, make(chan model.StreamEvent))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Zero(t, n)
}

func TestStreamServiceCountsOnlyDelivered(t *testing.T) {
	sink := &memSink{fail: true}
	obs := &countingObserver{}
	svc := NewStreamService(sink, obs)

	events := make(chan model.StreamEvent, 1)
	events <- model.StreamEvent{Channel: "SmartTradesChannel"}
	close(events)

	n, err := svc.Run(context.Background(), events)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, 1, obs.n)
}
