package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"threecommas/internal/application/port"
	"threecommas/internal/domain/model"
)

// Repo 把调用记录写入 Redis Stream，并通过 Pub/Sub 广播
type Repo struct {
	rdb     *redis.Client
	stream  string
	channel string
	maxLen  int64
	ttl     time.Duration
}

func New(rdb *redis.Client, prefix, stream, channel string, maxLen int64, ttl time.Duration) *Repo {
	if strings.TrimSpace(stream) == "" {
		stream = prefix + ":calls"
	}
	if strings.TrimSpace(channel) == "" {
		channel = prefix + ":calls:pub"
	}
	return &Repo{
		rdb:     rdb,
		stream:  stream,
		channel: channel,
		maxLen:  maxLen,
		ttl:     ttl,
	}
}

func (r *Repo) xaddArgs(rec model.CallRecord, payload string) *redis.XAddArgs {
	return &redis.XAddArgs{
		Stream: r.stream,
		MaxLen: r.maxLen,
		Approx: r.maxLen > 0,
		Values: []any{"id", rec.ID, "record", payload},
	}
}

func (r *Repo) Record(ctx context.Context, rec model.CallRecord) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	payload := string(b)

	// 1) Stream: XADD <stream> MAXLEN ~ n * id record
	// 2) PubSub: PUBLISH <channel> json
	pipe := r.rdb.Pipeline()
	pipe.XAdd(ctx, r.xaddArgs(rec, payload))
	if r.ttl > 0 {
		pipe.Expire(ctx, r.stream, r.ttl)
	}
	pipe.Publish(ctx, r.channel, payload)
	_, err = pipe.Exec(ctx)
	return err
}

func (r *Repo) Recent(ctx context.Context, limit int) ([]model.CallRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	msgs, err := r.rdb.XRevRangeN(ctx, r.stream, "+", "-", int64(limit)).Result()
	if err != nil {
		return nil, err
	}

	out := make([]model.CallRecord, 0, len(msgs))
	for _, m := range msgs {
		raw, ok := m.Values["record"].(string)
		if !ok {
			continue
		}
		var rec model.CallRecord
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, fmt.Errorf("decode stream entry %s: %w", m.ID, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// Close is a no-op: the client is owned by whoever created it.
func (r *Repo) Close() error {
	return nil
}

var _ port.CallJournal = (*Repo)(nil)
