package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"threecommas/internal/application/port"
	"threecommas/internal/domain/model"
)

// EventObserver is notified of every stream event before it reaches the sink.
type EventObserver interface {
	ObserveEvent(ev model.StreamEvent)
}

// StreamService 消费推送事件并写到输出端口
type StreamService struct {
	sink      port.Sink
	observers []EventObserver
}

func NewStreamService(sink port.Sink, observers ...EventObserver) *StreamService {
	out := make([]EventObserver, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			out = append(out, o)
		}
	}
	return &StreamService{sink: sink, observers: out}
}

// Run drains events until the channel closes or ctx ends and returns the number delivered.
func (s *StreamService) Run(ctx context.Context, events <-chan model.StreamEvent) (int, error) {
	n := 0
	for {
		select {
		case <-ctx.Done():
			return n, ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return n, nil
			}
			for _, o := range s.observers {
				o.ObserveEvent(ev)
			}
			if err := s.sink.WriteEvent(ev); err != nil {
				log.Error().Err(err).Str("channel", ev.Channel).Msg("sink write failed")
				continue
			}
			n++
		}
	}
}
