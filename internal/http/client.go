package http

import (
	"context"
	"fmt"
	"io"
	stdhttp "net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"resty.dev/v3"

	"tradewire/internal/circuitbreaker"
	"tradewire/internal/ratelimit"
	"tradewire/internal/signer"
	"tradewire/pkg/core"
)

// HeaderAPIKey carries the API key on every request when one is configured.
const HeaderAPIKey = "X-MBX-APIKEY"

// HeaderUsedWeight reports the weight consumed in the current one-minute window.
const HeaderUsedWeight = "X-Mbx-Used-Weight-1m"

// Client issues REST calls against one base host. It is safe for concurrent
// use and is meant to be shared by every endpoint group of a logical client.
type Client struct {
	client  *resty.Client
	logger  zerolog.Logger
	limiter *ratelimit.Limiter
	breaker *circuitbreaker.Breaker
	builder signer.Builder
	apiKey  string
	mu      sync.RWMutex
	closed  bool
}

type Config struct {
	BaseURL    string        `validate:"required,url"`
	Timeout    time.Duration `validate:"min=1ms"`
	APIKey     string
	SecretKey  string
	RecvWindow uint64
	Headers    map[string]string `validate:"omitempty"`
}

// Option configures optional collaborators of a Client.
type Option func(*Client)

// WithLogger sets the logger used for request and response tracing.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithLimiter paces every request by its weight.
func WithLimiter(limiter *ratelimit.Limiter) Option {
	return func(c *Client) {
		c.limiter = limiter
	}
}

// WithBreaker stops sending once the host keeps failing with transport
// errors or 5xx responses.
func WithBreaker(breaker *circuitbreaker.Breaker) Option {
	return func(c *Client) {
		c.breaker = breaker
	}
}

// WithClock replaces the clock used for request timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.builder.Now = now
	}
}

func NewClient(config *Config, opts ...Option) (*Client, error) {
	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	client := resty.New()
	client.SetBaseURL(config.BaseURL)
	client.SetTimeout(config.Timeout)
	client.SetRetryCount(0)
	client.AddContentTypeEncoder("application/json", func(w io.Writer, v any) error {
		data, err := sonic.Marshal(v)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	})
	client.AddContentTypeDecoder("application/json", func(r io.Reader, v any) error {
		data, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		return sonic.Unmarshal(data, v)
	})

	for k, v := range config.Headers {
		client.SetHeader(k, v)
	}

	c := &Client{
		client: client,
		logger: zerolog.Nop(),
		builder: signer.Builder{
			Secret:     config.SecretKey,
			RecvWindow: config.RecvWindow,
		},
		apiKey: config.APIKey,
	}
	for _, opt := range opts {
		opt(c)
	}

	client.AddRequestMiddleware(func(_ *resty.Client, req *resty.Request) error {
		c.logger.Debug().
			Str("method", req.Method).
			Str("path", pathOnly(req.URL)).
			Msg("http request")
		return nil
	})

	client.AddResponseMiddleware(func(_ *resty.Client, resp *resty.Response) error {
		evt := c.logger.Debug().
			Str("method", resp.Request.Method).
			Str("path", pathOnly(resp.Request.URL)).
			Int("status", resp.StatusCode()).
			Int("size", len(resp.Bytes()))
		if used := resp.Header().Get(HeaderUsedWeight); used != "" {
			evt = evt.Str("used_weight", used)
			if n, err := strconv.ParseInt(used, 10, 64); err == nil && c.limiter != nil {
				c.limiter.ObserveUsedWeight(n)
			}
		}
		evt.Msg("http response")
		return nil
	})

	return c, nil
}

func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.client.Close()
}

// Do sends req and decodes a successful body into out. A nil out discards the body.
func (c *Client) Do(ctx context.Context, req *core.Request, out any) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return core.ErrClientClosed
	}

	builder := c.builder
	if req.RecvWindow > 0 {
		builder = builder.WithRecvWindow(req.RecvWindow)
	}
	query, err := builder.Build(req.Params, req.Mode)
	if err != nil {
		return err
	}

	if c.breaker != nil && !c.breaker.Allow() {
		return core.ErrCircuitOpen
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, req.Weight); err != nil {
			return &core.NetworkError{Method: req.Method, Path: req.Path, Err: err}
		}
		if req.Bucket != "" {
			if err := c.limiter.WaitBucket(ctx, req.Bucket); err != nil {
				return &core.NetworkError{Method: req.Method, Path: req.Path, Err: err}
			}
		}
	}

	r := c.client.R().SetContext(ctx)
	if c.apiKey != "" {
		r.SetHeader(HeaderAPIKey, c.apiKey)
	}

	url := req.Path
	if query != "" {
		url += "?" + query
	}

	resp, err := r.Execute(req.Method, url)
	if err != nil {
		if ctx.Err() == nil {
			c.record(false)
		}
		c.logger.Error().Err(err).Str("method", req.Method).Str("path", req.Path).Msg("http request failed")
		return &core.NetworkError{Method: req.Method, Path: req.Path, Err: err}
	}

	body := resp.Bytes()
	status := resp.StatusCode()
	c.record(status < 500)
	if status < 200 || status > 299 {
		return parseAPIError(status, body)
	}

	if out == nil {
		return nil
	}
	if err := sonic.Unmarshal(body, out); err != nil {
		return core.NewDecodeError(fmt.Sprintf("%T", out), len(body), err)
	}
	return nil
}

func (c *Client) Get(ctx context.Context, path string, params core.Params, mode core.SecurityMode, out any) error {
	return c.Do(ctx, core.NewRequest(stdhttp.MethodGet, path).SetParams(params).SetMode(mode), out)
}

func (c *Client) Post(ctx context.Context, path string, params core.Params, mode core.SecurityMode, out any) error {
	return c.Do(ctx, core.NewRequest(stdhttp.MethodPost, path).SetParams(params).SetMode(mode), out)
}

func (c *Client) Put(ctx context.Context, path string, params core.Params, mode core.SecurityMode, out any) error {
	return c.Do(ctx, core.NewRequest(stdhttp.MethodPut, path).SetParams(params).SetMode(mode), out)
}

func (c *Client) Delete(ctx context.Context, path string, params core.Params, mode core.SecurityMode, out any) error {
	return c.Do(ctx, core.NewRequest(stdhttp.MethodDelete, path).SetParams(params).SetMode(mode), out)
}

func (c *Client) record(success bool) {
	if c.breaker != nil {
		c.breaker.Record(success)
	}
}

// HasSecret reports whether signed requests can be built.
func (c *Client) HasSecret() bool {
	return c.builder.Secret != ""
}

// HasAPIKey reports whether the API key header is sent.
func (c *Client) HasAPIKey() bool {
	return c.apiKey != ""
}

// Limiter returns the configured limiter, or nil.
func (c *Client) Limiter() *ratelimit.Limiter {
	return c.limiter
}

func parseAPIError(status int, body []byte) error {
	apiErr := &core.APIError{}
	if err := sonic.Unmarshal(body, apiErr); err != nil || (apiErr.Code == 0 && apiErr.Msg == "") {
		apiErr = &core.APIError{Msg: stdhttp.StatusText(status)}
	}
	apiErr.StatusCode = status
	return apiErr
}

// pathOnly strips the query so signatures never reach the logs.
func pathOnly(url string) string {
	path, _, _ := strings.Cut(url, "?")
	return path
}
