// Package spot is the REST client of the spot exchange. It shares the
// transport, signer and stream session of the futures client:
//
//	client, err := spot.New(core.DefaultSpotConfig().WithCredentials(creds))
//	book, err := client.Market.Depth(ctx, "BTCUSDT", 10)
//	order, err := client.Trade.LimitBuy(ctx, "BTCUSDT", qty, price, core.GTC)
package spot

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"tradewire/internal/circuitbreaker"
	httpClient "tradewire/internal/http"
	"tradewire/internal/ratelimit"
	"tradewire/pkg/core"
	"tradewire/pkg/stream"
)

// Order placement is limited separately from request weight.
const (
	orderBucketLimit  = 100
	orderBucketPeriod = 10 * time.Second
)

// Client groups the spot endpoint components.
type Client struct {
	config  *core.Config
	http    *httpClient.Client
	limiter *ratelimit.Limiter
	breaker *circuitbreaker.Breaker
	logger  zerolog.Logger

	General    *General
	Market     *Market
	Account    *Account
	Trade      *Trade
	UserStream *UserStream
}

// Option is a functional option for configuring the Client.
type Option func(*Options)

// Options holds optional collaborators of the Client.
type Options struct {
	Logger zerolog.Logger
	Clock  func() time.Time
}

// WithLogger returns an option that sets the logger for REST and stream tracing.
func WithLogger(l zerolog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithClock returns an option that replaces the clock used for request timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *Options) {
		o.Clock = now
	}
}

type service struct {
	http *httpClient.Client
}

func (s *service) newRequest(method string, route Route) (*core.Request, error) {
	path, err := Resolve(route)
	if err != nil {
		return nil, err
	}
	return core.NewRequest(method, path), nil
}

func (s *service) do(ctx context.Context, method string, route Route, params core.Params, mode core.SecurityMode, weight int, out any) error {
	req, err := s.newRequest(method, route)
	if err != nil {
		return err
	}
	return s.http.Do(ctx, req.SetParams(params).SetMode(mode).SetWeight(weight), out)
}

// New validates config and builds the transport. A nil config uses
// core.DefaultSpotConfig.
func New(config *core.Config, opts ...Option) (*Client, error) {
	if config == nil {
		config = core.DefaultSpotConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	options := &Options{
		Logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(options)
	}

	stack, err := httpClient.NewStack(config, httpClient.StackConfig{
		BaseURL:     config.SpotEndpoints().REST,
		OrderLimit:  orderBucketLimit,
		OrderPeriod: orderBucketPeriod,
		Logger:      options.Logger,
		Clock:       options.Clock,
	})
	if err != nil {
		return nil, err
	}

	svc := &service{http: stack.Client}
	c := &Client{
		config:     config,
		http:       stack.Client,
		limiter:    stack.Limiter,
		breaker:    stack.Breaker,
		logger:     options.Logger,
		General:    &General{svc},
		Market:     &Market{svc},
		Account:    &Account{svc},
		Trade:      &Trade{svc},
		UserStream: &UserStream{svc},
	}

	options.Logger.Debug().
		Bool("sandbox", config.Sandbox).
		Bool("signed", stack.Client.HasSecret()).
		Msg("spot client created")
	return c, nil
}

// Streams returns an idle stream session on the spot websocket host. opts
// are applied after the client defaults.
func (c *Client) Streams(handler stream.Handler, opts ...stream.Option) *stream.Session {
	base := []stream.Option{
		stream.WithSandbox(c.config.Sandbox),
		stream.WithBaseURL(c.config.SpotEndpoints().WS),
		stream.WithLogger(c.logger),
	}
	if c.config.HandshakeTimeout > 0 {
		base = append(base, stream.WithHandshakeTimeout(c.config.HandshakeTimeout))
	}
	return stream.NewSession(handler, append(base, opts...)...)
}

// Limiter returns the request-weight limiter, or nil when limiting is off.
func (c *Client) Limiter() *ratelimit.Limiter {
	return c.limiter
}

// BreakerState reports the circuit breaker state; it is CLOSED when no
// breaker is configured.
func (c *Client) BreakerState() circuitbreaker.State {
	if c.breaker == nil {
		return circuitbreaker.StateClosed
	}
	return c.breaker.State()
}

// Close releases the transport. Later calls fail with core.ErrClientClosed.
func (c *Client) Close() error {
	return c.http.Close()
}
