package threecommas

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"threecommas/internal/domain/model"
)

// DefaultStreamURL 3Commas ActionCable websocket
const DefaultStreamURL = "wss://ws.3commas.io/websocket"

// Channel ActionCable 频道名
type Channel string

const (
	ChannelSmartTrades Channel = "SmartTradesChannel"
	ChannelDeals       Channel = "DealsChannel"
)

// ParseChannel accepts "smart_trades", "deals" or the full channel names.
func ParseChannel(s string) (Channel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "smart_trades", "smarttrades", "smarttradeschannel":
		return ChannelSmartTrades, nil
	case "deals", "dealschannel":
		return ChannelDeals, nil
	}
	return "", fmt.Errorf("unknown stream channel %q", s)
}

// signPath 频道签名所用的路径
func (ch Channel) signPath() string {
	switch ch {
	case ChannelSmartTrades:
		return "/smart_trades"
	case ChannelDeals:
		return "/deals"
	}
	return ""
}

type streamUser struct {
	APIKey    string `json:"api_key"`
	Signature string `json:"signature"`
}

type streamIdentifier struct {
	Channel Channel      `json:"channel"`
	Users   []streamUser `json:"users"`
}

type streamCommand struct {
	Command    string `json:"command"`
	Identifier string `json:"identifier"`
}

type streamFrame struct {
	Type       string          `json:"type"`
	Identifier string          `json:"identifier"`
	Message    json.RawMessage `json:"message"`
	Reason     string          `json:"reason"`
}

// Stream 订阅 deals / smart trades 推送，断线自动重连
type Stream struct {
	wsURL       string
	credentials *Credentials
	dialer      *websocket.Dialer

	// 重连退避区间
	minBackoff time.Duration
	maxBackoff time.Duration
}

// NewStream 使用客户端凭证创建 Stream；wsURL 为空时使用 DefaultStreamURL
func (c *Client) NewStream(wsURL string) *Stream {
	if strings.TrimSpace(wsURL) == "" {
		wsURL = DefaultStreamURL
	}
	return &Stream{
		wsURL:       strings.TrimSpace(wsURL),
		credentials: c.credentials,
		dialer:      websocket.DefaultDialer,
		minBackoff:  500 * time.Millisecond,
		maxBackoff:  10 * time.Second,
	}
}

// SubscribeFrame builds the signed subscribe command for ch.
func (s *Stream) SubscribeFrame(ch Channel) ([]byte, error) {
	if !s.credentials.Complete() {
		return nil, ErrMissingCredentials
	}
	path := ch.signPath()
	if path == "" {
		return nil, fmt.Errorf("unknown stream channel %q", ch)
	}
	ident, err := json.Marshal(streamIdentifier{
		Channel: ch,
		Users: []streamUser{{
			APIKey:    s.credentials.APIKey(),
			Signature: s.credentials.Sign(path, ""),
		}},
	})
	if err != nil {
		return nil, err
	}
	return json.Marshal(streamCommand{Command: "subscribe", Identifier: string(ident)})
}

// Subscribe 返回事件通道；ctx 结束时通道关闭
func (s *Stream) Subscribe(ctx context.Context, ch Channel) (<-chan model.StreamEvent, error) {
	frame, err := s.SubscribeFrame(ch)
	if err != nil {
		return nil, err
	}
	out := make(chan model.StreamEvent, 256)
	go s.run(ctx, ch, frame, out)
	return out, nil
}

func (s *Stream) run(ctx context.Context, ch Channel, subscribe []byte, out chan<- model.StreamEvent) {
	defer close(out)

	backoff := s.minBackoff

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		log.Info().Str("channel", string(ch)).Str("url", s.wsURL).Msg("ws connecting")
		cctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		conn, _, err := s.dialer.DialContext(cctx, s.wsURL, nil)
		cancel()
		if err != nil {
			log.Error().Str("channel", string(ch)).Err(err).Msg("ws dial failed")
			if !sleepCtx(ctx, backoff) {
				return
			}
			backoff = minDur(backoff*2, s.maxBackoff)
			continue
		}

		if err := conn.WriteMessage(websocket.TextMessage, subscribe); err != nil {
			log.Error().Str("channel", string(ch)).Err(err).Msg("ws subscribe failed")
			_ = conn.Close()
			if !sleepCtx(ctx, backoff) {
				return
			}
			backoff = minDur(backoff*2, s.maxBackoff)
			continue
		}

		backoff = s.minBackoff
		log.Info().Str("channel", string(ch)).Msg("ws connected")

		err = readLoop(ctx, conn, func(b []byte) {
			ev, ok := handleFrame(ch, b)
			if !ok {
				return
			}
			select {
			case out <- ev:
			case <-ctx.Done():
			}
		})

		_ = conn.Close()

		if ctx.Err() != nil {
			return
		}

		log.Warn().Str("channel", string(ch)).Err(err).Msg("ws disconnected, reconnecting")
		if !sleepCtx(ctx, backoff) {
			return
		}
		backoff = minDur(backoff*2, s.maxBackoff)
	}
}

// handleFrame 控制帧（welcome/ping/confirm_subscription 等）返回 false
func handleFrame(ch Channel, b []byte) (model.StreamEvent, bool) {
	var f streamFrame
	if err := json.Unmarshal(b, &f); err != nil {
		log.Error().Str("channel", string(ch)).Err(err).Msg("json unmarshal failed")
		return model.StreamEvent{}, false
	}

	switch f.Type {
	case "":
	case "reject_subscription":
		log.Error().Str("channel", string(ch)).Msg("subscription rejected")
		return model.StreamEvent{}, false
	case "disconnect":
		log.Warn().Str("channel", string(ch)).Str("reason", f.Reason).Msg("server requested disconnect")
		return model.StreamEvent{}, false
	default:
		return model.StreamEvent{}, false
	}

	if len(f.Message) == 0 || string(f.Message) == "null" {
		return model.StreamEvent{}, false
	}
	return model.StreamEvent{
		Channel:    string(ch),
		Message:    []byte(f.Message),
		ReceivedAt: time.Now(),
	}, true
}

func readLoop(ctx context.Context, conn *websocket.Conn, onMsg func([]byte)) error {
	_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	pingTicker := time.NewTicker(25 * time.Second)
	defer pingTicker.Stop()

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		for {
			_, b, err := conn.ReadMessage()
			if err != nil {
				errCh <- err
				return
			}
			_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			onMsg(b)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errCh:
			return err
		case <-pingTicker.C:
			_ = conn.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(5*time.Second))
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func minDur(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}
