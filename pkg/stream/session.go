package stream

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"tradewire/internal/ws"
	"tradewire/pkg/core"
)

// ErrNoTopics is returned by ConnectMultiple when called with an empty list.
var ErrNoTopics = errors.New("no stream topics")

// Session owns at most one websocket connection carrying one or more topics.
// A session is single-use: once its loop ends or it is disconnected it stays
// Closed, and a new Session is needed to reconnect.
type Session struct {
	handler          Handler
	baseURL          string
	marketType       core.MarketType
	sandbox          bool
	handshakeTimeout time.Duration
	logger           zerolog.Logger

	state ws.State
	mu    sync.Mutex
	conn  *ws.Conn
}

// Option configures a Session.
type Option func(*Session)

// WithBaseURL overrides the websocket host, e.g. for tests.
func WithBaseURL(url string) Option {
	return func(s *Session) {
		s.baseURL = url
	}
}

// WithMarketType selects the default host of the market family.
func WithMarketType(marketType core.MarketType) Option {
	return func(s *Session) {
		s.marketType = marketType
	}
}

// WithSandbox selects the testnet host.
func WithSandbox(sandbox bool) Option {
	return func(s *Session) {
		s.sandbox = sandbox
	}
}

// WithLogger sets the logger for connection lifecycle and frame tracing.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithHandshakeTimeout bounds Connect and ConnectMultiple.
func WithHandshakeTimeout(timeout time.Duration) Option {
	return func(s *Session) {
		s.handshakeTimeout = timeout
	}
}

// NewSession creates an idle session that dispatches decoded events to handler.
func NewSession(handler Handler, opts ...Option) *Session {
	if handler == nil {
		handler = func(Event) error { return nil }
	}
	s := &Session{
		handler:          handler,
		handshakeTimeout: 10 * time.Second,
		logger:           zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BaseURL returns the websocket host the session dials.
func (s *Session) BaseURL() string {
	if s.baseURL != "" {
		return s.baseURL
	}
	return core.EndpointsFor(s.marketType, s.sandbox).WS
}

// State returns the current lifecycle state.
func (s *Session) State() ConnState {
	return s.state.Load()
}

// Connect opens a single-stream connection to <base>/ws/<topic>. The topic
// may also be a user data listen key.
func (s *Session) Connect(ctx context.Context, topic string) error {
	return s.dial(ctx, SingleURL(s.BaseURL(), topic))
}

// ConnectMultiple opens one combined-stream connection for all topics.
// Frames then arrive wrapped as {"stream":..,"data":..}.
func (s *Session) ConnectMultiple(ctx context.Context, topics []string) error {
	if len(topics) == 0 {
		return ErrNoTopics
	}
	return s.dial(ctx, CombinedURL(s.BaseURL(), topics))
}

func (s *Session) dial(ctx context.Context, url string) error {
	if !s.state.CompareAndSwap(StateIdle, StateConnecting) {
		return core.ErrAlreadyConnected
	}

	conn, err := ws.Dial(ctx, url, ws.DialConfig{
		HandshakeTimeout: s.handshakeTimeout,
		Logger:           s.logger,
	})
	if err != nil {
		s.state.Store(StateIdle)
		s.logger.Error().Err(err).Str("url", url).Msg("websocket handshake failed")
		return &core.HandshakeError{URL: url, Err: err}
	}

	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()
	s.state.Store(StateConnected)

	s.logger.Info().Str("url", url).Msg("websocket connected")
	return nil
}

// EventLoop reads frames until the connection ends and blocks the caller
// meanwhile. Each text frame is decoded and passed to the handler before the
// next frame is read. It returns:
//   - nil when ctx is done or Disconnect is called; cancellation unblocks a
//     pending read immediately;
//   - the decode or handler error that stopped the loop;
//   - an error wrapping core.ErrDisconnected when the peer closed or a read failed.
//
// The session is Closed afterwards.
func (s *Session) EventLoop(ctx context.Context) error {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	if conn == nil || s.state.Load() != StateConnected {
		return core.ErrNotConnected
	}

	err := conn.Run(ctx, s.dispatch)
	if errors.Is(err, ws.ErrLoopRunning) {
		return err
	}
	s.state.Store(StateClosed)

	if err != nil && ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		return nil
	}
	return err
}

func (s *Session) dispatch(data []byte) error {
	event, err := Decode(data)
	if err != nil {
		s.logger.Error().Err(err).Msg("websocket frame rejected")
		return err
	}
	return s.handler(event)
}

// Disconnect sends a close frame and releases the socket. It fails with
// core.ErrNotConnected unless the session is Connected.
func (s *Session) Disconnect() error {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	if conn == nil || s.state.Load() != StateConnected {
		return core.ErrNotConnected
	}

	conn.Close()
	s.state.Store(StateClosed)
	s.logger.Info().Str("url", conn.URL()).Msg("websocket disconnected by client")
	return nil
}
