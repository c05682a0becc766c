package stream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradewire/pkg/core"
)

type peer struct {
	url      string
	mu       sync.Mutex
	requests []string
}

func (p *peer) lastRequest() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.requests) == 0 {
		return ""
	}
	return p.requests[len(p.requests)-1]
}

// newPeer starts a websocket server that records the request URI and runs
// script for every connection.
func newPeer(t *testing.T, script func(conn *websocket.Conn)) *peer {
	t.Helper()
	p := &peer{}
	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p.mu.Lock()
		p.requests = append(p.requests, r.URL.RequestURI())
		p.mu.Unlock()

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		script(conn)
	}))
	t.Cleanup(server.Close)
	p.url = "ws" + strings.TrimPrefix(server.URL, "http")
	return p
}

func drain(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func sendTrades(conn *websocket.Conn, ids ...int) {
	for _, id := range ids {
		frame := `{"stream":"btcusdt@trade","data":{"e":"trade","E":1,"s":"BTCUSDT","t":` +
			strconv.Itoa(id) + `,"p":"1.5","q":"2","T":1,"m":false}}`
		_ = conn.WriteMessage(websocket.TextMessage, []byte(frame))
	}
}

func closeNormally(conn *websocket.Conn) {
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func TestSession_DefaultBaseURL(t *testing.T) {
	assert.Equal(t, "wss://fstream.binance.com", NewSession(nil).BaseURL())
	assert.Equal(t, "wss://dstream.binance.com", NewSession(nil, WithMarketType(core.MarketInverse)).BaseURL())
	assert.Equal(t, "wss://stream.binancefuture.com", NewSession(nil, WithSandbox(true)).BaseURL())
	assert.Equal(t, "ws://localhost:1", NewSession(nil, WithBaseURL("ws://localhost:1")).BaseURL())
}

func TestSession_CombinedStreamOrder(t *testing.T) {
	p := newPeer(t, func(conn *websocket.Conn) {
		sendTrades(conn, 1, 2, 3, 4, 5)
		_ = conn.WriteMessage(websocket.BinaryMessage, []byte{0xde, 0xad})
		_ = conn.WriteControl(websocket.PingMessage, []byte("hb"), time.Now().Add(time.Second))
		_ = conn.WriteControl(websocket.PongMessage, nil, time.Now().Add(time.Second))
		sendTrades(conn, 6)
		closeNormally(conn)
		drain(conn)
	})

	var ids []int64
	session := NewSession(func(e Event) error {
		ids = append(ids, e.(*TradeEvent).TradeID)
		return nil
	}, WithBaseURL(p.url))

	require.NoError(t, session.ConnectMultiple(context.Background(), []string{"ethusdt@aggTrade", "btcusdt@trade"}))
	assert.Equal(t, StateConnected, session.State())
	assert.Equal(t, "/stream?streams=ethusdt@aggTrade/btcusdt@trade", p.lastRequest())

	err := session.EventLoop(context.Background())
	assert.ErrorIs(t, err, core.ErrDisconnected)
	assert.Equal(t, []int64{1, 2, 3, 4, 5, 6}, ids)
	assert.Equal(t, StateClosed, session.State())
}

func TestSession_SingleStreamPath(t *testing.T) {
	p := newPeer(t, func(conn *websocket.Conn) {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"e":"aggTrade","E":1,"s":"BTCUSDT","a":9,"p":"1","q":"1","f":1,"l":1,"T":1,"m":true}`))
		closeNormally(conn)
		drain(conn)
	})

	var got Event
	session := NewSession(func(e Event) error {
		got = e
		return nil
	}, WithBaseURL(p.url))

	require.NoError(t, session.Connect(context.Background(), AggTradeStream("BTCUSDT")))
	assert.Equal(t, "/ws/btcusdt@aggTrade", p.lastRequest())

	assert.ErrorIs(t, session.EventLoop(context.Background()), core.ErrDisconnected)
	require.IsType(t, &AggTradeEvent{}, got)
	assert.Equal(t, int64(9), got.(*AggTradeEvent).AggTradeID)
}

func TestSession_HandlerErrorIsFatal(t *testing.T) {
	p := newPeer(t, func(conn *websocket.Conn) {
		sendTrades(conn, 1, 2, 3)
		drain(conn)
	})

	boom := errors.New("handler failed")
	calls := 0
	session := NewSession(func(Event) error {
		calls++
		return boom
	}, WithBaseURL(p.url))

	require.NoError(t, session.Connect(context.Background(), "btcusdt@trade"))
	err := session.EventLoop(context.Background())

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
	assert.Equal(t, StateClosed, session.State())
}

func TestSession_UnknownEventIsFatal(t *testing.T) {
	p := newPeer(t, func(conn *websocket.Conn) {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"e":"somethingNew","E":1}`))
		sendTrades(conn, 1)
		drain(conn)
	})

	calls := 0
	session := NewSession(func(Event) error {
		calls++
		return nil
	}, WithBaseURL(p.url))

	require.NoError(t, session.Connect(context.Background(), "btcusdt@trade"))
	err := session.EventLoop(context.Background())

	assert.True(t, core.IsDecodeError(err))
	assert.Equal(t, 0, calls)
}

func TestSession_CancelUnblocksPendingRead(t *testing.T) {
	closed := make(chan struct{})
	p := newPeer(t, func(conn *websocket.Conn) {
		sendTrades(conn, 1)
		drain(conn)
		close(closed)
	})

	received := make(chan struct{}, 1)
	session := NewSession(func(Event) error {
		received <- struct{}{}
		return nil
	}, WithBaseURL(p.url))
	require.NoError(t, session.Connect(context.Background(), "btcusdt@trade"))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- session.EventLoop(ctx) }()

	<-received
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("EventLoop did not return after cancellation")
	}
	assert.Equal(t, StateClosed, session.State())

	select {
	case <-closed:
	case <-time.After(2 * time.Second):
		t.Fatal("peer did not observe the close")
	}
}

func TestSession_ForwardHandler(t *testing.T) {
	p := newPeer(t, func(conn *websocket.Conn) {
		sendTrades(conn, 10, 20)
		closeNormally(conn)
		drain(conn)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan Event, 4)
	session := NewSession(Forward(ctx, events), WithBaseURL(p.url))
	require.NoError(t, session.Connect(context.Background(), "btcusdt@trade"))

	assert.ErrorIs(t, session.EventLoop(ctx), core.ErrDisconnected)
	close(events)

	var ids []int64
	for e := range events {
		ids = append(ids, e.(*TradeEvent).TradeID)
	}
	assert.Equal(t, []int64{10, 20}, ids)
}

func TestSession_ForwardStopsOnCancel(t *testing.T) {
	p := newPeer(t, func(conn *websocket.Conn) {
		sendTrades(conn, 1, 2)
		drain(conn)
	})

	ctx, cancel := context.WithCancel(context.Background())
	events := make(chan Event)
	session := NewSession(Forward(ctx, events), WithBaseURL(p.url))
	require.NoError(t, session.Connect(context.Background(), "btcusdt@trade"))

	time.AfterFunc(50*time.Millisecond, cancel)
	assert.NoError(t, session.EventLoop(ctx))
}

func TestSession_HandshakeFailureStaysIdle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer server.Close()

	session := NewSession(nil,
		WithBaseURL("ws"+strings.TrimPrefix(server.URL, "http")),
		WithHandshakeTimeout(time.Second))

	err := session.Connect(context.Background(), "btcusdt@trade")
	assert.True(t, core.IsHandshakeError(err))
	assert.Equal(t, StateIdle, session.State())

	assert.ErrorIs(t, session.EventLoop(context.Background()), core.ErrNotConnected)
	assert.ErrorIs(t, session.Disconnect(), core.ErrNotConnected)
}

func TestSession_ConnectTwice(t *testing.T) {
	p := newPeer(t, drain)

	session := NewSession(nil, WithBaseURL(p.url))
	require.NoError(t, session.Connect(context.Background(), "btcusdt@trade"))
	assert.ErrorIs(t, session.Connect(context.Background(), "ethusdt@trade"), core.ErrAlreadyConnected)
	assert.ErrorIs(t, session.ConnectMultiple(context.Background(), nil), ErrNoTopics)
	require.NoError(t, session.Disconnect())
}

func TestSession_Disconnect(t *testing.T) {
	closeCode := make(chan int, 1)
	p := newPeer(t, func(conn *websocket.Conn) {
		_, _, err := conn.ReadMessage()
		var ce *websocket.CloseError
		if errors.As(err, &ce) {
			closeCode <- ce.Code
		}
	})

	session := NewSession(nil, WithBaseURL(p.url))
	assert.ErrorIs(t, session.Disconnect(), core.ErrNotConnected)

	require.NoError(t, session.Connect(context.Background(), "btcusdt@trade"))
	require.NoError(t, session.Disconnect())
	assert.Equal(t, StateClosed, session.State())

	select {
	case code := <-closeCode:
		assert.Equal(t, websocket.CloseNormalClosure, code)
	case <-time.After(2 * time.Second):
		t.Fatal("peer did not receive a close frame")
	}

	assert.ErrorIs(t, session.Disconnect(), core.ErrNotConnected)
	assert.ErrorIs(t, session.EventLoop(context.Background()), core.ErrNotConnected)
}

func TestSession_DisconnectDuringLoop(t *testing.T) {
	p := newPeer(t, func(conn *websocket.Conn) {
		sendTrades(conn, 1)
		drain(conn)
	})

	received := make(chan struct{}, 1)
	session := NewSession(func(Event) error {
		received <- struct{}{}
		return nil
	}, WithBaseURL(p.url))
	require.NoError(t, session.Connect(context.Background(), "btcusdt@trade"))

	done := make(chan error, 1)
	go func() { done <- session.EventLoop(context.Background()) }()

	<-received
	require.NoError(t, session.Disconnect())

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("EventLoop did not return after Disconnect")
	}
}

func TestChain(t *testing.T) {
	var order []string
	stop := errors.New("stop")
	h := Chain(
		func(Event) error { order = append(order, "a"); return nil },
		func(Event) error { order = append(order, "b"); return stop },
		func(Event) error { order = append(order, "c"); return nil },
	)

	assert.ErrorIs(t, h(&TradeEvent{}), stop)
	assert.Equal(t, []string{"a", "b"}, order)
}
