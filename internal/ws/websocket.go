package ws

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lxzan/gws"
	"github.com/rs/zerolog"

	"tradewire/pkg/core"
)

// closeNormal is the RFC 6455 normal-closure status code.
const closeNormal uint16 = 1000

// ErrLoopRunning is returned when a second read loop is started on one connection.
var ErrLoopRunning = errors.New("read loop already running")

// DialConfig holds handshake options for a websocket connection.
type DialConfig struct {
	// HandshakeTimeout bounds the dial and upgrade. Zero leaves it to gws.
	HandshakeTimeout time.Duration
	// Header is sent with the upgrade request.
	Header http.Header
	Logger zerolog.Logger
}

// TextHandler receives the payload of one inbound text frame. The slice is
// owned by the handler. Returning an error stops the read loop.
type TextHandler func(data []byte) error

// Conn is one live gws connection. Frames are read on the goroutine that
// calls Run, one at a time, in wire order.
type Conn struct {
	url       string
	socket    *gws.Conn
	events    *connEvents
	logger    zerolog.Logger
	running   atomic.Bool
	closeOnce sync.Once
}

type connEvents struct {
	conn        *Conn
	onText      TextHandler
	loopErr     error
	closeErr    error
	localClosed atomic.Bool
}

// Dial performs the websocket handshake against url. The handshake honours
// the earlier of cfg.HandshakeTimeout and the ctx deadline.
func Dial(ctx context.Context, url string, cfg DialConfig) (*Conn, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	timeout := cfg.HandshakeTimeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); timeout == 0 || remaining < timeout {
			timeout = remaining
		}
	}

	events := &connEvents{}
	socket, _, err := gws.NewClient(events, &gws.ClientOption{
		Addr:             url,
		RequestHeader:    cfg.Header,
		HandshakeTimeout: timeout,
	})
	if err != nil {
		return nil, err
	}

	c := &Conn{
		url:    url,
		socket: socket,
		events: events,
		logger: cfg.Logger,
	}
	events.conn = c
	return c, nil
}

// URL returns the address the connection was dialed with.
func (c *Conn) URL() string {
	return c.url
}

// Run blocks reading frames until one of the following ends the loop:
//   - onText returns an error, which is returned as is;
//   - ctx is done or Close is called, in which case Run returns nil;
//   - the peer closes or a read fails, which returns an error wrapping core.ErrDisconnected.
//
// Pings are answered with a pong. Pongs and binary frames are ignored.
func (c *Conn) Run(ctx context.Context, onText TextHandler) error {
	if !c.running.CompareAndSwap(false, true) {
		return ErrLoopRunning
	}
	c.events.onText = onText

	stop := context.AfterFunc(ctx, c.Close)
	defer stop()

	c.socket.ReadLoop()
	_ = c.socket.NetConn().Close()

	switch {
	case c.events.loopErr != nil:
		return c.events.loopErr
	case c.events.localClosed.Load():
		return nil
	case c.events.closeErr != nil:
		return fmt.Errorf("%w: %w", core.ErrDisconnected, c.events.closeErr)
	default:
		return core.ErrDisconnected
	}
}

// Close sends a normal-closure frame and releases the socket, unblocking a
// pending read. It is safe to call more than once and from any goroutine.
func (c *Conn) Close() {
	c.closeOnce.Do(func() {
		c.events.localClosed.Store(true)
		c.socket.WriteClose(closeNormal, nil)
		_ = c.socket.NetConn().Close()
	})
}

func (e *connEvents) OnOpen(socket *gws.Conn) {
	e.conn.logger.Debug().Str("url", e.conn.url).Msg("websocket read loop started")
}

func (e *connEvents) OnClose(socket *gws.Conn, err error) {
	e.closeErr = err
	if e.localClosed.Load() {
		e.conn.logger.Debug().Str("url", e.conn.url).Msg("websocket closed")
		return
	}
	e.conn.logger.Warn().Err(err).Str("url", e.conn.url).Msg("websocket disconnected")
}

func (e *connEvents) OnPing(socket *gws.Conn, payload []byte) {
	_ = socket.WritePong(payload)
}

func (e *connEvents) OnPong(socket *gws.Conn, payload []byte) {}

func (e *connEvents) OnMessage(socket *gws.Conn, message *gws.Message) {
	defer message.Close()

	if e.loopErr != nil || message.Opcode != gws.OpcodeText {
		return
	}

	// The gws buffer is recycled on Close; decoded strings may alias it.
	data := append([]byte(nil), message.Bytes()...)
	e.conn.logger.Debug().Int("size", len(data)).Msg("websocket frame")

	if err := e.onText(data); err != nil {
		e.loopErr = err
		e.conn.Close()
	}
}
