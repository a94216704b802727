package threecommas

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"threecommas/internal/domain/model"
)

const (
	headerAPIKey    = "APIKEY"
	headerSignature = "Signature"
)

// dispatch 凭证检查 -> 路径展开 -> 签名请求 -> 通知 hooks
func (c *Client) dispatch(ctx context.Context, ep Endpoint, params Params) Result {
	started := time.Now()
	query := params.Encode()

	rec := model.CallRecord{
		ID:        uuid.NewString(),
		Endpoint:  ep.Name,
		Method:    ep.Method,
		Path:      ep.Path,
		Query:     query,
		StartedAt: started,
	}

	res := c.prepareAndSend(ctx, ep, params, query, &rec)

	rec.StatusCode = res.StatusCode
	rec.Outcome = res.Kind.Outcome()
	if err := res.Err(); err != nil {
		rec.Error = err.Error()
	}
	rec.Duration = time.Since(started)
	c.notify(ctx, rec)
	return res
}

func (c *Client) prepareAndSend(ctx context.Context, ep Endpoint, params Params, query string, rec *model.CallRecord) Result {
	if !c.credentials.Complete() {
		return failure(KindMissingCredentials, ErrMissingCredentials)
	}
	if ep.Method == "" || ep.Path == "" {
		return failure(KindInvalidRequest, fmt.Errorf("%w: %q", ErrUnknownEndpoint, ep.Name))
	}

	path, err := ep.Expand(params)
	if err != nil {
		return failure(KindInvalidRequest, err)
	}
	rec.Path = path

	return c.signedRequest(ctx, ep.Method, path, query)
}

// signedRequest 发送签名请求；body 为空，所有参数都在 query 中
func (c *Client) signedRequest(ctx context.Context, method, path, query string) Result {
	signature := c.credentials.Sign(path, query)
	endpoint := c.baseURL + path + query

	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return failure(KindInvalidRequest, fmt.Errorf("build request: %w", err))
	}
	// 保持上游文档中的 header 大小写
	req.Header[headerAPIKey] = []string{c.credentials.APIKey()}
	req.Header[headerSignature] = []string{signature}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error().Err(err).Str("method", method).Str("path", path).Msg("3commas request failed")
		return failure(KindTransport, fmt.Errorf("%w: %v", ErrTransport, err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error().Err(err).Str("method", method).Str("path", path).Int("status", resp.StatusCode).Msg("3commas read body failed")
		res := failure(KindTransport, fmt.Errorf("%w: %v", ErrTransport, err))
		res.StatusCode = resp.StatusCode
		return res
	}

	if !json.Valid(body) {
		log.Error().Str("method", method).Str("path", path).Int("status", resp.StatusCode).Int("bytes", len(body)).Msg("3commas response is not json")
		res := failure(KindDecode, fmt.Errorf("%w: http %d", ErrDecode, resp.StatusCode))
		res.StatusCode = resp.StatusCode
		return res
	}

	log.Debug().Str("method", method).Str("path", path).Int("status", resp.StatusCode).Msg("3commas request done")
	return Result{
		Kind:       KindOK,
		StatusCode: resp.StatusCode,
		Payload:    json.RawMessage(body),
	}
}
