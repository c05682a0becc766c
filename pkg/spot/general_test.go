package spot

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradewire/pkg/core"
)

const exchangeInfoBody = `{
	"timezone": "UTC",
	"serverTime": 1565246363776,
	"rateLimits": [{"rateLimitType":"REQUEST_WEIGHT","interval":"MINUTE","intervalNum":1,"limit":6000}],
	"symbols": [{
		"symbol": "ETHBTC",
		"status": "TRADING",
		"baseAsset": "ETH",
		"baseAssetPrecision": 8,
		"quoteAsset": "BTC",
		"quotePrecision": 8,
		"quoteAssetPrecision": 8,
		"orderTypes": ["LIMIT","LIMIT_MAKER","MARKET","STOP_LOSS_LIMIT","TAKE_PROFIT_LIMIT"],
		"icebergAllowed": true,
		"ocoAllowed": true,
		"quoteOrderQtyMarketAllowed": true,
		"cancelReplaceAllowed": true,
		"isSpotTradingAllowed": true,
		"isMarginTradingAllowed": true,
		"filters": [
			{"filterType":"PRICE_FILTER","minPrice":"0.00000100","maxPrice":"922327.00000000","tickSize":"0.00000100"},
			{"filterType":"LOT_SIZE","minQty":"0.00010000","maxQty":"100000.00000000","stepSize":"0.00010000"},
			{"filterType":"NOTIONAL","minNotional":"0.00010000","applyMinToMarket":true,"maxNotional":"9000000.00000000","applyMaxToMarket":false,"avgPriceMins":5}
		],
		"permissions": ["SPOT","MARGIN"]
	}]
}`

func TestGeneral_PingAndServerTime(t *testing.T) {
	f := newFakeExchange(t)
	f.handle(http.MethodGet, "/api/v3/ping", `{}`)
	f.handle(http.MethodGet, "/api/v3/time", `{"serverTime":1499827319559}`)
	client := newTestClient(t, f, f.config())
	ctx := context.Background()

	require.NoError(t, client.General.Ping(ctx))
	st, err := client.General.ServerTime(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1499827319559), st.ServerTime)

	for _, r := range f.Requests() {
		assert.Empty(t, r.Query)
	}
}

func TestGeneral_ExchangeInfo(t *testing.T) {
	f := newFakeExchange(t)
	f.handle(http.MethodGet, "/api/v3/exchangeInfo", exchangeInfoBody)
	client := newTestClient(t, f, f.config())

	info, err := client.General.ExchangeInfo(context.Background(), "ethbtc", "BNBBTC")
	require.NoError(t, err)
	assert.Equal(t, "symbols=%5B%22ETHBTC%22%2C%22BNBBTC%22%5D", f.last(t).Query)

	require.Len(t, info.Symbols, 1)
	s := info.Symbols[0]
	assert.Equal(t, "ETH", s.BaseAsset)
	assert.True(t, s.CancelReplaceAllowed)
	assert.Equal(t, []string{"SPOT", "MARGIN"}, s.Permissions)

	notional, ok := s.Filter("NOTIONAL")
	require.True(t, ok)
	assert.Equal(t, "0.00010000", notional.MinNotional.String())
	assert.True(t, notional.ApplyMinToMarket)
	assert.Equal(t, 5, notional.AvgPriceMins)

	_, ok = s.Filter("ICEBERG_PARTS")
	assert.False(t, ok)
}

func TestGeneral_SymbolInfo(t *testing.T) {
	f := newFakeExchange(t)
	f.handle(http.MethodGet, "/api/v3/exchangeInfo", exchangeInfoBody)
	client := newTestClient(t, f, f.config())

	info, err := client.General.SymbolInfo(context.Background(), "ethbtc")
	require.NoError(t, err)
	assert.Equal(t, "ETHBTC", info.Symbol)
	assert.Equal(t, "symbols=%5B%22ETHBTC%22%5D", f.last(t).Query)
}

func TestGeneral_SymbolInfoUnknown(t *testing.T) {
	f := newFakeExchange(t)
	f.handleStatus(http.MethodGet, "/api/v3/exchangeInfo", http.StatusBadRequest, `{"code":-1121,"msg":"Invalid symbol."}`)
	client := newTestClient(t, f, f.config())

	_, err := client.General.SymbolInfo(context.Background(), "NOPE")
	assert.ErrorIs(t, err, core.ErrUnknownSymbol)
	apiErr, ok := core.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, -1121, apiErr.Code)
}

func TestGeneral_SymbolInfoMissingFromListing(t *testing.T) {
	f := newFakeExchange(t)
	f.handle(http.MethodGet, "/api/v3/exchangeInfo", `{"symbols":[]}`)
	client := newTestClient(t, f, f.config())

	_, err := client.General.SymbolInfo(context.Background(), "ETHBTC")
	assert.ErrorIs(t, err, core.ErrUnknownSymbol)
}
