package http

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"tradewire/internal/circuitbreaker"
	"tradewire/internal/ratelimit"
	"tradewire/pkg/core"
)

// StackConfig carries what differs between the client families sharing a
// transport: the REST host and the order bucket of the exchange family.
type StackConfig struct {
	BaseURL     string
	OrderLimit  int
	OrderPeriod time.Duration
	Logger      zerolog.Logger
	Clock       func() time.Time
}

// Stack is a REST client together with the limiter and breaker it reports to.
// Limiter and Breaker are nil when the config disables them.
type Stack struct {
	Client  *Client
	Limiter *ratelimit.Limiter
	Breaker *circuitbreaker.Breaker
}

// NewStack builds the transport described by config. config must already be
// validated.
func NewStack(config *core.Config, sc StackConfig) (*Stack, error) {
	opts := []Option{WithLogger(sc.Logger)}
	if sc.Clock != nil {
		opts = append(opts, WithClock(sc.Clock))
	}

	stack := &Stack{}
	if config.RateLimitWeight > 0 {
		stack.Limiter = ratelimit.New(config.RateLimitWeight, config.RateLimitPeriod)
		if sc.OrderLimit > 0 {
			stack.Limiter.SetBucketLimit(ratelimit.BucketOrders, sc.OrderLimit, sc.OrderPeriod)
		}
		opts = append(opts, WithLimiter(stack.Limiter))
	}

	if config.BreakerFailThreshold > 0 {
		stack.Breaker = circuitbreaker.New(circuitbreaker.Config{
			FailThreshold:    config.BreakerFailThreshold,
			SuccessThreshold: 1,
			Timeout:          config.BreakerTimeout,
		})
		opts = append(opts, WithBreaker(stack.Breaker))
	}

	httpConfig := &Config{
		BaseURL:    sc.BaseURL,
		Timeout:    config.Timeout,
		RecvWindow: config.RecvWindow,
	}
	if config.Credentials != nil {
		httpConfig.APIKey = config.Credentials.APIKey
		httpConfig.SecretKey = config.Credentials.SecretKey
	}

	client, err := NewClient(httpConfig, opts...)
	if err != nil {
		return nil, fmt.Errorf("create http client: %w", err)
	}
	stack.Client = client
	return stack, nil
}
