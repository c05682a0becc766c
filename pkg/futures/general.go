package futures

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

// ExchangeInfo returns trading rules and symbol metadata.
func (g *General) ExchangeInfo(ctx context.Context) (*ExchangeInfo, error) {
	var out ExchangeInfo
	if err := g.do(ctx, http.MethodGet, RouteExchangeInfo, nil, core.ModePublic, 1, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SymbolInfo looks symbol up in the exchange info. The lookup is
// case-insensitive; a missing symbol yields an error wrapping
// core.ErrUnknownSymbol.
func (g *General) SymbolInfo(ctx context.Context, symbol string) (*SymbolInfo, error) {
	info, err := g.ExchangeInfo(ctx)
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
