package port

import (
	"threecommas/internal/domain/model"
)

type Sink interface {
	// Result: one API response (or failure) for a named call
	WriteResult(name string, status int, payload []byte, err error) error
	// Event: one websocket message
	WriteEvent(ev model.StreamEvent) error
	// Records: journal listing
	WriteRecords(recs []model.CallRecord) error
}
