package core

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables read by CredentialsFromEnv.
const (
	EnvAPIKey    = "BINANCE_API_KEY"
	EnvSecretKey = "BINANCE_API_SECRET_KEY"
)

// DefaultRecvWindow is the receive window, in milliseconds, used when none is configured.
const DefaultRecvWindow uint64 = 5000

// Credentials holds API authentication credentials. Both fields are optional;
// signed operations fail with ErrMissingCredentials when SecretKey is empty.
type Credentials struct {
	// APIKey is the public API key identifier, sent as a header.
	APIKey string `json:"api_key" yaml:"api_key"`
	// SecretKey is the private key used for signing requests.
	SecretKey string `json:"secret_key" yaml:"secret_key"`
}

// HasSecret reports whether signed requests can be built.
func (c *Credentials) HasSecret() bool {
	return c != nil && c.SecretKey != ""
}

// String masks the key material.
func (c Credentials) String() string {
	return fmt.Sprintf("Credentials{APIKey:%s, SecretKey:%s}", maskKey(c.APIKey), maskKey(c.SecretKey))
}

// Config contains all configuration options for a futures client.
type Config struct {
	MarketType  MarketType   `json:"market_type" yaml:"market_type"`
	Sandbox     bool         `json:"sandbox" yaml:"sandbox"`
	Credentials *Credentials `json:"credentials,omitempty" yaml:"credentials,omitempty"`

	// RESTEndpoint and WSEndpoint override the market type defaults.
	RESTEndpoint string `json:"rest_endpoint,omitempty" yaml:"rest_endpoint,omitempty" validate:"omitempty,url"`
	WSEndpoint   string `json:"ws_endpoint,omitempty" yaml:"ws_endpoint,omitempty" validate:"omitempty,url"`

	// RecvWindow is included in signed requests only when greater than zero.
	RecvWindow uint64 `json:"recv_window" yaml:"recv_window"`

	// Timeout is the maximum duration for HTTP requests.
	Timeout          time.Duration `json:"timeout" yaml:"timeout" validate:"min=1ms"`
	HandshakeTimeout time.Duration `json:"handshake_timeout" yaml:"handshake_timeout" validate:"min=0"`

	// RateLimitWeight is the request weight budget per RateLimitPeriod; zero disables limiting.
	RateLimitWeight int           `json:"rate_limit_weight" yaml:"rate_limit_weight" validate:"min=0"`
	RateLimitPeriod time.Duration `json:"rate_limit_period" yaml:"rate_limit_period" validate:"min=0"`

	// BreakerFailThreshold consecutive server-side failures stop requests for
	// BreakerTimeout; zero disables the breaker.
	BreakerFailThreshold int           `json:"breaker_fail_threshold" yaml:"breaker_fail_threshold" validate:"min=0"`
	BreakerTimeout       time.Duration `json:"breaker_timeout" yaml:"breaker_timeout" validate:"min=0"`

	LogLevel string `json:"log_level" yaml:"log_level" validate:"omitempty,oneof=trace debug info warn error disabled"`
}

// DefaultConfig returns a Config initialized with defaults for the market type:
// 10s timeout, 5000ms receive window, 2400 weight per minute, info logging.
func DefaultConfig(marketType MarketType) *Config {
	return &Config{
		MarketType:       marketType,
		RecvWindow:       DefaultRecvWindow,
		Timeout:          10 * time.Second,
		HandshakeTimeout: 10 * time.Second,
		RateLimitWeight:  2400,
		RateLimitPeriod:  time.Minute,
		LogLevel:         "info",
	}
}

// DefaultSpotConfig is DefaultConfig with the spot weight budget of 6000 per
// minute. The MarketType it carries is not used by the spot client.
func DefaultSpotConfig() *Config {
	config := DefaultConfig(MarketLinear)
	config.RateLimitWeight = 6000
	return config
}

var validate = validator.New()

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.MarketType != MarketLinear && c.MarketType != MarketInverse {
		return fmt.Errorf("unsupported market type %s", c.MarketType)
	}
	if c.RateLimitWeight > 0 && c.RateLimitPeriod <= 0 {
		return fmt.Errorf("RateLimitPeriod must be positive when RateLimitWeight is set")
	}
	if c.BreakerFailThreshold > 0 && c.BreakerTimeout <= 0 {
		return fmt.Errorf("BreakerTimeout must be positive when BreakerFailThreshold is set")
	}
	return nil
}

// Endpoints resolves the REST and WebSocket hosts, applying overrides.
func (c *Config) Endpoints() Endpoints {
	return c.override(EndpointsFor(c.MarketType, c.Sandbox))
}

// SpotEndpoints is Endpoints for the spot client.
func (c *Config) SpotEndpoints() Endpoints {
	return c.override(SpotEndpoints(c.Sandbox))
}

func (c *Config) override(ep Endpoints) Endpoints {
	if c.RESTEndpoint != "" {
		ep.REST = c.RESTEndpoint
	}
	if c.WSEndpoint != "" {
		ep.WS = c.WSEndpoint
	}
	return ep
}

// WithCredentials sets the API credentials and returns the config for chaining.
func (c *Config) WithCredentials(creds *Credentials) *Config {
	c.Credentials = creds
	return c
}

// WithSandbox enables or disables the testnet hosts and returns the config for chaining.
func (c *Config) WithSandbox(sandbox bool) *Config {
	c.Sandbox = sandbox
	return c
}

// WithTimeout sets the request timeout and returns the config for chaining.
func (c *Config) WithTimeout(timeout time.Duration) *Config {
	c.Timeout = timeout
	return c
}

// WithRecvWindow sets the receive window; zero omits it from signed requests.
func (c *Config) WithRecvWindow(window uint64) *Config {
	c.RecvWindow = window
	return c
}

// WithEndpoints overrides the REST and WebSocket hosts and returns the config for chaining.
func (c *Config) WithEndpoints(rest, ws string) *Config {
	c.RESTEndpoint = rest
	c.WSEndpoint = ws
	return c
}

// WithRateLimit sets the weight budget and returns the config for chaining.
func (c *Config) WithRateLimit(weight int, period time.Duration) *Config {
	c.RateLimitWeight = weight
	c.RateLimitPeriod = period
	return c
}

// WithCircuitBreaker enables the breaker and returns the config for chaining.
func (c *Config) WithCircuitBreaker(failThreshold int, timeout time.Duration) *Config {
	c.BreakerFailThreshold = failThreshold
	c.BreakerTimeout = timeout
	return c
}

// LoadConfig reads a YAML file on top of DefaultConfig and validates the result.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	config := DefaultConfig(MarketLinear)
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return config, nil
}

// CredentialsFromEnv reads BINANCE_API_KEY and BINANCE_API_SECRET_KEY, loading
// the given .env files first when they exist. Missing variables leave the
// corresponding field empty.
func CredentialsFromEnv(envFiles ...string) (*Credentials, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return &Credentials{
		APIKey:    os.Getenv(EnvAPIKey),
		SecretKey: os.Getenv(EnvSecretKey),
	}, nil
}

func maskKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "****" + key[len(key)-4:]
}
