package spot

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/bytedance/sonic"

	"tradewire/pkg/core"
)

// Market covers public market data.
type Market struct {
	*service
}

// RangeQuery narrows historical queries. Zero fields are omitted.
type RangeQuery struct {
	StartTime time.Time
	EndTime   time.Time
	Limit     int
}

func (q RangeQuery) apply(p core.Params) core.Params {
	if !q.StartTime.IsZero() {
		p = p.AddInt("startTime", q.StartTime.UnixMilli())
	}
	if !q.EndTime.IsZero() {
		p = p.AddInt("endTime", q.EndTime.UnixMilli())
	}
	if q.Limit > 0 {
		p = p.AddInt("limit", int64(q.Limit))
	}
	return p
}

// AggTradeQuery selects compressed trades from FromID, or within a time range.
type AggTradeQuery struct {
	FromID int64
	RangeQuery
}

func symbolParams(symbol string) core.Params {
	return core.Params{}.Add("symbol", core.NormalizeSymbol(symbol))
}

// symbolsParams renders the symbols filter as the percent-encoded JSON array
// the server expects, e.g. symbols=%5B%22BTCUSDT%22%5D. No symbols means no
// filter.
func symbolsParams(symbols []string) (core.Params, error) {
	if len(symbols) == 0 {
		return nil, nil
	}
	normalized := make([]string, len(symbols))
	for i, s := range symbols {
		normalized[i] = core.NormalizeSymbol(s)
	}
	data, err := sonic.Marshal(normalized)
	if err != nil {
		return nil, fmt.Errorf("encode symbols: %w", err)
	}
	return core.Params{}.Add("symbols", url.QueryEscape(string(data))), nil
}

// depthWeight follows the server's weight table; limit 0 means the default 100.
func depthWeight(limit int) int {
	switch {
	case limit <= 100:
		return 5
	case limit <= 500:
		return 25
	case limit <= 1000:
		return 50
	default:
		return 250
	}
}

// ticker24hWeight charges by the number of symbols; none means every symbol.
func ticker24hWeight(symbols int) int {
	switch {
	case symbols == 0 || symbols > 100:
		return 80
	case symbols > 20:
		return 40
	default:
		return 2
	}
}

// Depth returns the order book. A zero limit uses the server default.
func (m *Market) Depth(ctx context.Context, symbol string, limit int) (*OrderBook, error) {
	params := symbolParams(symbol)
	if limit > 0 {
		params = params.AddInt("limit", int64(limit))
	}

	var out OrderBook
	if err := m.do(ctx, http.MethodGet, RouteDepth, params, core.ModePublic, depthWeight(limit), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Trades returns recent trades.
func (m *Market) Trades(ctx context.Context, symbol string, limit int) ([]RecentTrade, error) {
	params := RangeQuery{Limit: limit}.apply(symbolParams(symbol))

	var out []RecentTrade
	if err := m.do(ctx, http.MethodGet, RouteTrades, params, core.ModePublic, 25, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// HistoricalTrades returns older trades starting at fromID, or the most
// recent ones when fromID is zero. It needs an API key but no signature.
func (m *Market) HistoricalTrades(ctx context.Context, symbol string, limit int, fromID int64) ([]RecentTrade, error) {
	if !m.http.HasAPIKey() {
		return nil, core.ErrMissingCredentials
	}
	params := RangeQuery{Limit: limit}.apply(symbolParams(symbol))
	if fromID > 0 {
		params = params.AddInt("fromId", fromID)
	}

	var out []RecentTrade
	if err := m.do(ctx, http.MethodGet, RouteHistoricalTrades, params, core.ModePublic, 25, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AggTrades returns compressed trades.
func (m *Market) AggTrades(ctx context.Context, symbol string, q AggTradeQuery) ([]AggTrade, error) {
	params := symbolParams(symbol)
	if q.FromID > 0 {
		params = params.AddInt("fromId", q.FromID)
	}

	var out []AggTrade
	if err := m.do(ctx, http.MethodGet, RouteAggTrades, q.apply(params), core.ModePublic, 2, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Klines returns candles for interval, e.g. "1m" or "4h".
func (m *Market) Klines(ctx context.Context, symbol, interval string, q RangeQuery) ([]Kline, error) {
	params := q.apply(symbolParams(symbol).Add("interval", interval))

	var out []Kline
	if err := m.do(ctx, http.MethodGet, RouteKlines, params, core.ModePublic, 2, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AvgPrice returns the current average price of symbol.
func (m *Market) AvgPrice(ctx context.Context, symbol string) (*AvgPrice, error) {
	var out AvgPrice
	if err := m.do(ctx, http.MethodGet, RouteAvgPrice, symbolParams(symbol), core.ModePublic, 2, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func getOne[T any](ctx context.Context, s *service, route Route, symbol string, weight int) (*T, error) {
	var out T
	if err := s.do(ctx, http.MethodGet, route, symbolParams(symbol), core.ModePublic, weight, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func getMany[T any](ctx context.Context, s *service, route Route, symbols []string, weight int) ([]T, error) {
	params, err := symbolsParams(symbols)
	if err != nil {
		return nil, err
	}

	var out []T
	if err := s.do(ctx, http.MethodGet, route, params, core.ModePublic, weight, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Ticker24h returns the rolling 24h statistics of one symbol.
func (m *Market) Ticker24h(ctx context.Context, symbol string) (*Ticker24h, error) {
	return getOne[Ticker24h](ctx, m.service, RouteTicker24h, symbol, 2)
}

// Tickers24h returns the rolling 24h statistics of symbols, or of every
// symbol when none is given.
func (m *Market) Tickers24h(ctx context.Context, symbols ...string) ([]Ticker24h, error) {
	return getMany[Ticker24h](ctx, m.service, RouteTicker24h, symbols, ticker24hWeight(len(symbols)))
}

// Price returns the latest price of one symbol.
func (m *Market) Price(ctx context.Context, symbol string) (*PriceTicker, error) {
	return getOne[PriceTicker](ctx, m.service, RouteTickerPrice, symbol, 2)
}

// Prices returns the latest price of symbols, or of every symbol when none
// is given.
func (m *Market) Prices(ctx context.Context, symbols ...string) ([]PriceTicker, error) {
	return getMany[PriceTicker](ctx, m.service, RouteTickerPrice, symbols, 4)
}

// BookTicker returns the best bid and ask of one symbol.
func (m *Market) BookTicker(ctx context.Context, symbol string) (*BookTicker, error) {
	return getOne[BookTicker](ctx, m.service, RouteBookTicker, symbol, 2)
}

// BookTickers returns the best bid and ask of symbols, or of every symbol
// when none is given.
func (m *Market) BookTickers(ctx context.Context, symbols ...string) ([]BookTicker, error) {
	return getMany[BookTicker](ctx, m.service, RouteBookTicker, symbols, 4)
}
