package spot

import (
	"context"
	"fmt"
	"net/http"

	"tradewire/pkg/core"
)

// General covers connectivity and exchange metadata.
type General struct {
	*service
}

// Ping tests connectivity to the REST API.
func (g *General) Ping(ctx context.Context) error {
	return g.do(ctx, http.MethodGet, RoutePing, nil, core.ModePublic, 1, nil)
}

// ServerTime returns the server clock in milliseconds.
func (g *General) ServerTime(ctx context.Context) (*ServerTime, error) {
	var out ServerTime
	if err := g.do(ctx, http.MethodGet, RouteTime, nil, core.ModePublic, 1, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExchangeInfo returns trading rules of the given symbols, or of every symbol
// when none is given.
func (g *General) ExchangeInfo(ctx context.Context, symbols ...string) (*ExchangeInfo, error) {
	params, err := symbolsParams(symbols)
	if err != nil {
		return nil, err
	}

	var out ExchangeInfo
	if err := g.do(ctx, http.MethodGet, RouteExchangeInfo, params, core.ModePublic, 20, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SymbolInfo returns the trading rules of one symbol. A symbol the exchange
// does not list yields an error wrapping core.ErrUnknownSymbol; the server
// rejects it with code -1121, which is kept in the chain.
func (g *General) SymbolInfo(ctx context.Context, symbol string) (*SymbolInfo, error) {
	info, err := g.ExchangeInfo(ctx, symbol)
	if apiErr, ok := core.IsAPIError(err); ok && apiErr.Code == int(core.CodeInvalidSymbol) {
		return nil, fmt.Errorf("%w: %s: %w", core.ErrUnknownSymbol, symbol, err)
	}
	if err != nil {
		return nil, err
	}

	want := core.NormalizeSymbol(symbol)
	for i := range info.Symbols {
		if info.Symbols[i].Symbol == want {
			return &info.Symbols[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", core.ErrUnknownSymbol, symbol)
}
