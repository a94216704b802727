package threecommas

import (
	"encoding/json"
	"errors"
	"fmt"

	"threecommas/internal/domain/model"
)

var (
	// ErrMissingCredentials 未配置 API Key 或 Secret，请求不会发出
	ErrMissingCredentials = errors.New("missing api key or secret")

	// ErrMissingPathParam 路径模板中的占位参数缺失
	ErrMissingPathParam = errors.New("missing path parameter")

	// ErrInvalidPathParam 占位参数含有会在传输时被转义或改变路径结构的字符
	ErrInvalidPathParam = errors.New("invalid path parameter")

	// ErrUnknownEndpoint 路由表中没有该名称
	ErrUnknownEndpoint = errors.New("unknown endpoint")

	// ErrTransport 网络层失败（DNS、连接、超时、读取响应体）
	ErrTransport = errors.New("transport failure")

	// ErrDecode 响应体不是合法 JSON
	ErrDecode = errors.New("malformed response body")
)

// Kind tags a Result.
type Kind int

const (
	KindOK Kind = iota
	KindMissingCredentials
	KindInvalidRequest
	KindTransport
	KindDecode
)

func (k Kind) String() string {
	return string(k.Outcome())
}

// Outcome maps the kind onto the journal outcome vocabulary.
func (k Kind) Outcome() model.Outcome {
	switch k {
	case KindOK:
		return model.OutcomeOK
	case KindMissingCredentials:
		return model.OutcomeMissingCredentials
	case KindInvalidRequest:
		return model.OutcomeInvalidRequest
	case KindTransport:
		return model.OutcomeTransport
	case KindDecode:
		return model.OutcomeDecode
	default:
		return model.Outcome(fmt.Sprintf("kind(%d)", int(k)))
	}
}

// Result is the outcome of one endpoint call. Failures are values, not panics:
// check Err (or OK) before using Payload.
//
// A KindOK result carries the upstream body verbatim whatever the status code,
// so an API-level error payload is still KindOK with a non-2xx StatusCode.
type Result struct {
	Kind       Kind
	StatusCode int
	Payload    json.RawMessage
	err        error
}

func (r Result) OK() bool { return r.Kind == KindOK }

// Err returns nil for KindOK, otherwise an error wrapping one of the package sentinels.
func (r Result) Err() error {
	if r.Kind == KindOK {
		return nil
	}
	if r.err != nil {
		return r.err
	}
	return errors.New(r.Kind.String())
}

// Decode unmarshals the payload into v.
func (r Result) Decode(v any) error {
	if err := r.Err(); err != nil {
		return err
	}
	return json.Unmarshal(r.Payload, v)
}

func failure(kind Kind, err error) Result {
	return Result{Kind: kind, err: err}
}
