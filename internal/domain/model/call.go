package model

import "time"

// Outcome 一次调用的结果分类
type Outcome string

const (
	OutcomeOK                 Outcome = "ok"
	OutcomeMissingCredentials Outcome = "missing_credentials"
	OutcomeInvalidRequest     Outcome = "invalid_request"
	OutcomeTransport          Outcome = "transport_error"
	OutcomeDecode             Outcome = "decode_error"
)

// CallRecord 一次签名请求的观测记录（成功或失败都会产生）
type CallRecord struct {
	ID         string        `json:"id"`
	Endpoint   string        `json:"endpoint"` // 路由表名称，直接 Do 调用时为空
	Method     string        `json:"method"`
	Path       string        `json:"path"`  // 展开后的路径，含结尾的 '?'
	Query      string        `json:"query"` // 参与签名的查询串
	StatusCode int           `json:"status_code"`
	Outcome    Outcome       `json:"outcome"`
	Error      string        `json:"error,omitempty"`
	StartedAt  time.Time     `json:"started_at"`
	Duration   time.Duration `json:"duration_ns"`
}

// Dispatched reports whether the call reached the network.
func (r CallRecord) Dispatched() bool {
	return r.Outcome != OutcomeMissingCredentials && r.Outcome != OutcomeInvalidRequest
}

// StreamEvent websocket 推送的一条业务消息
type StreamEvent struct {
	Channel    string    `json:"channel"`
	Message    []byte    `json:"message"` // raw JSON
	ReceivedAt time.Time `json:"received_at"`
}
