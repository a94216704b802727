package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"threecommas/internal/application/port"
	"threecommas/internal/domain/model"
)

const journalWriteTimeout = 5 * time.Second

// JournalHook 把每次调用记录写入 CallJournal
type JournalHook struct {
	journal port.CallJournal
}

func NewJournalHook(journal port.CallJournal) *JournalHook {
	return &JournalHook{journal: journal}
}

// AfterCall persists rec. A cancelled call is still recorded.
func (h *JournalHook) AfterCall(ctx context.Context, rec model.CallRecord) {
	if h == nil || h.journal == nil {
		return
	}
	wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), journalWriteTimeout)
	defer cancel()

	if err := h.journal.Record(wctx, rec); err != nil {
		log.Error().
			Err(err).
			Str("id", rec.ID).
			Str("endpoint", rec.Endpoint).
			Msg("journal record failed")
	}
}
