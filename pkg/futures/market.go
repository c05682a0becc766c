package futures

import (
	"context"
	"fmt"
	"net/http"
	"time"

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

func symbolParams(symbol string) core.Params {
	return core.Params{}.Add("symbol", core.NormalizeSymbol(symbol))
}

// depthWeight follows the server's weight table; limit 0 means the default 500.
func depthWeight(limit int) int {
	switch {
	case limit == 0:
		return 10
	case limit <= 50:
		return 2
	case limit <= 100:
		return 5
	case limit <= 500:
		return 10
	default:
		return 20
	}
}

func klineWeight(limit int) int {
	switch {
	case limit == 0:
		return 2
	case limit < 100:
		return 1
	case limit < 500:
		return 2
	case limit <= 1000:
		return 5
	default:
		return 10
	}
}

// getOne fetches a per-symbol ticker. Coin-margined routes answer with a list
// even when a symbol is given.
func getOne[T any](ctx context.Context, s *service, route Route, symbol string, weight int) (*T, error) {
	params := symbolParams(symbol)
	if s.marketType == core.MarketInverse {
		var list []T
		if err := s.do(ctx, http.MethodGet, route, params, core.ModePublic, weight, &list); err != nil {
			return nil, err
		}
		if len(list) == 0 {
			return nil, fmt.Errorf("%w: %s", core.ErrUnknownSymbol, symbol)
		}
		return &list[0], nil
	}

	var out T
	if err := s.do(ctx, http.MethodGet, route, params, core.ModePublic, weight, &out); err != nil {
		return nil, err
	}
	return &out, nil
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
func (m *Market) Trades(ctx context.Context, symbol string, limit int) ([]Trade, error) {
	params := RangeQuery{Limit: limit}.apply(symbolParams(symbol))

	var out []Trade
	if err := m.do(ctx, http.MethodGet, RouteTrades, params, core.ModePublic, 5, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AggTrades returns compressed trades.
func (m *Market) AggTrades(ctx context.Context, symbol string, q RangeQuery) ([]AggTrade, error) {
	var out []AggTrade
	if err := m.do(ctx, http.MethodGet, RouteAggTrades, q.apply(symbolParams(symbol)), core.ModePublic, 20, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Klines returns candles for interval, e.g. "1m" or "4h".
func (m *Market) Klines(ctx context.Context, symbol, interval string, q RangeQuery) ([]Kline, error) {
	params := q.apply(symbolParams(symbol).Add("interval", interval))

	var out []Kline
	if err := m.do(ctx, http.MethodGet, RouteKlines, params, core.ModePublic, klineWeight(q.Limit), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Ticker24h returns the rolling 24h statistics of one symbol.
func (m *Market) Ticker24h(ctx context.Context, symbol string) (*Ticker24h, error) {
	return getOne[Ticker24h](ctx, m.service, RouteTicker24h, symbol, 1)
}

// Tickers24h returns the rolling 24h statistics of every symbol.
func (m *Market) Tickers24h(ctx context.Context) ([]Ticker24h, error) {
	var out []Ticker24h
	if err := m.do(ctx, http.MethodGet, RouteTicker24h, nil, core.ModePublic, 40, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Price returns the latest price of one symbol.
func (m *Market) Price(ctx context.Context, symbol string) (*PriceTicker, error) {
	return getOne[PriceTicker](ctx, m.service, RouteTickerPrice, symbol, 1)
}

// Prices returns the latest price of every symbol.
func (m *Market) Prices(ctx context.Context) ([]PriceTicker, error) {
	var out []PriceTicker
	if err := m.do(ctx, http.MethodGet, RouteTickerPrice, nil, core.ModePublic, 2, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// BookTicker returns the best bid and ask of one symbol.
func (m *Market) BookTicker(ctx context.Context, symbol string) (*BookTicker, error) {
	return getOne[BookTicker](ctx, m.service, RouteBookTicker, symbol, 2)
}

// MarkPrice returns the mark price and funding state of one symbol.
func (m *Market) MarkPrice(ctx context.Context, symbol string) (*MarkPrice, error) {
	return getOne[MarkPrice](ctx, m.service, RoutePremiumIndex, symbol, 1)
}

// FundingRate returns funding rate history.
func (m *Market) FundingRate(ctx context.Context, symbol string, q RangeQuery) ([]FundingRate, error) {
	var out []FundingRate
	if err := m.do(ctx, http.MethodGet, RouteFundingRate, q.apply(symbolParams(symbol)), core.ModePublic, 1, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// OpenInterest returns the present open interest of one symbol.
func (m *Market) OpenInterest(ctx context.Context, symbol string) (*OpenInterest, error) {
	var out OpenInterest
	if err := m.do(ctx, http.MethodGet, RouteOpenInterest, symbolParams(symbol), core.ModePublic, 1, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
