package threecommas

import (
	"context"
	"net/http"
	"strings"
	"time"

	"threecommas/internal/domain/model"
)

const (
	// DefaultBaseURL 3Commas 生产环境
	DefaultBaseURL = "https://api.3commas.io"

	defaultTimeout = 30 * time.Second
)

// Hook observes every call after it completes, including calls that never reached the
// network. Implementations must be safe for concurrent use.
type Hook interface {
	AfterCall(ctx context.Context, rec model.CallRecord)
}

// HookFunc adapts a function to Hook.
type HookFunc func(ctx context.Context, rec model.CallRecord)

func (f HookFunc) AfterCall(ctx context.Context, rec model.CallRecord) { f(ctx, rec) }

// Client 3Commas 签名 REST 客户端
// 构造后只读，可并发使用
type Client struct {
	credentials *Credentials
	httpClient  *http.Client
	baseURL     string
	routes      map[string]Endpoint
	hooks       []Hook
}

type clientOptions struct {
	httpClient *http.Client
	timeout    time.Duration
	routes     map[string]string
	hooks      []Hook
}

// Option configures a Client at construction time.
type Option func(*clientOptions)

// WithHTTPClient uses hc as-is; WithTimeout then has no effect.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *clientOptions) { o.httpClient = hc }
}

// WithTimeout overrides the 30s request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(o *clientOptions) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithRoute points the named endpoint at another path template, keeping its method.
func WithRoute(name, path string) Option {
	return func(o *clientOptions) {
		if o.routes == nil {
			o.routes = make(map[string]string)
		}
		o.routes[name] = path
	}
}

// WithHooks appends call observers.
func WithHooks(hooks ...Hook) Option {
	return func(o *clientOptions) {
		for _, h := range hooks {
			if h != nil {
				o.hooks = append(o.hooks, h)
			}
		}
	}
}

// NewClient 创建客户端；baseURL 为空时使用 DefaultBaseURL
// 缺少 key/secret 时仍可创建，但所有调用都会直接返回 KindMissingCredentials
func NewClient(baseURL, apiKey, apiSecret string, opts ...Option) *Client {
	o := clientOptions{timeout: defaultTimeout}
	for _, opt := range opts {
		opt(&o)
	}

	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}

	hc := o.httpClient
	if hc == nil {
		hc = newHTTPClient(o.timeout)
	}

	routes := DefaultRoutes()
	for name, path := range o.routes {
		if ep, ok := routes[name]; ok {
			ep.Path = path
			routes[name] = ep
		}
	}

	return &Client{
		credentials: NewCredentials(apiKey, apiSecret),
		httpClient:  hc,
		baseURL:     strings.TrimRight(baseURL, "/"),
		routes:      routes,
		hooks:       o.hooks,
	}
}

// NewClientV2 is NewClient with the smart-trade v2 listing moved to V2SmartTradesPath.
// Every other route is the v1 table.
func NewClientV2(baseURL, apiKey, apiSecret string, opts ...Option) *Client {
	opts = append(opts, WithRoute(EndpointSmartTradesV2, V2SmartTradesPath))
	return NewClient(baseURL, apiKey, apiSecret, opts...)
}

// newHTTPClient 不走代理
func newHTTPClient(timeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = nil
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

// BaseURL 返回当前使用的基础地址
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Credentials exposes the signer, e.g. for the websocket stream.
func (c *Client) Credentials() *Credentials {
	return c.credentials
}

// Route returns the endpoint registered under name.
func (c *Client) Route(name string) (Endpoint, bool) {
	ep, ok := c.routes[name]
	return ep, ok
}

// Routes lists the route table sorted by name.
func (c *Client) Routes() []Endpoint {
	return sortedRoutes(c.routes)
}

// Call dispatches the named endpoint with params.
func (c *Client) Call(ctx context.Context, name string, params Params) Result {
	ep, ok := c.routes[name]
	if !ok {
		return c.dispatch(ctx, Endpoint{Name: name}, params)
	}
	return c.dispatch(ctx, ep, params)
}

// Endpoint returns a function bound to the named route. The function captures only the
// client's immutable configuration.
func (c *Client) Endpoint(name string) func(ctx context.Context, params Params) Result {
	return func(ctx context.Context, params Params) Result {
		return c.Call(ctx, name, params)
	}
}

// Do signs and sends one request to a literal path (no placeholders).
func (c *Client) Do(ctx context.Context, method, path string, params Params) Result {
	return c.dispatch(ctx, Endpoint{Method: method, Path: path}, params)
}

func (c *Client) notify(ctx context.Context, rec model.CallRecord) {
	for _, h := range c.hooks {
		h.AfterCall(ctx, rec)
	}
}
