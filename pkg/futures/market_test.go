package futures

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradewire/pkg/core"
)

func TestMarket_Depth(t *testing.T) {
	f := newFakeExchange(t)
	f.handle(http.MethodGet, "/fapi/v1/depth", `{
		"lastUpdateId": 1027024,
		"E": 1589436922972,
		"T": 1589436922959,
		"bids": [["4.00000000", "431.00000000"], ["3.99", "12"]],
		"asks": [["4.00000200", "12.00000000"]]
	}`)
	client := newTestClient(t, f, f.config(core.MarketLinear))

	book, err := client.Market.Depth(context.Background(), "btcusdt", 10)
	require.NoError(t, err)

	assert.Equal(t, "symbol=BTCUSDT&limit=10", f.last(t).Query)
	assert.Equal(t, int64(1027024), book.LastUpdateID)
	assert.Equal(t, int64(1589436922959), book.TransactionTime)
	require.Len(t, book.Bids, 2)
	assert.Equal(t, "4.00000000", book.Bids[0].Price.String())
	assert.Equal(t, "12", book.Bids[1].Quantity.String())
	require.Len(t, book.Asks, 1)
	assert.Equal(t, int64(2), client.Limiter().Metrics().TotalWeight)
}

func TestMarket_DepthDefaultLimit(t *testing.T) {
	f := newFakeExchange(t)
	f.handle(http.MethodGet, "/dapi/v1/depth", `{"lastUpdateId":1,"bids":[],"asks":[]}`)
	client := newTestClient(t, f, f.config(core.MarketInverse))

	_, err := client.Market.Depth(context.Background(), "BTCUSD_PERP", 0)
	require.NoError(t, err)
	assert.Equal(t, "symbol=BTCUSD_PERP", f.last(t).Query)
	assert.Equal(t, int64(10), client.Limiter().Metrics().TotalWeight)
}

func TestRequestWeights(t *testing.T) {
	depth := map[int]int{0: 10, 5: 2, 50: 2, 100: 5, 500: 10, 1000: 20}
	for limit, want := range depth {
		assert.Equal(t, want, depthWeight(limit), "depth limit %d", limit)
	}

	klines := map[int]int{0: 2, 99: 1, 100: 2, 499: 2, 500: 5, 1000: 5, 1500: 10}
	for limit, want := range klines {
		assert.Equal(t, want, klineWeight(limit), "kline limit %d", limit)
	}
}

func TestMarket_TradesAndAggTrades(t *testing.T) {
	f := newFakeExchange(t)
	f.handle(http.MethodGet, "/fapi/v1/trades", `[
		{"id":28457,"price":"4.00000100","qty":"12.00000000","quoteQty":"48.00","time":1499865549590,"isBuyerMaker":true}
	]`)
	f.handle(http.MethodGet, "/fapi/v1/aggTrades", `[
		{"a":26129,"p":"0.01633102","q":"4.70443515","f":27781,"l":27781,"T":1498793709153,"m":true}
	]`)
	client := newTestClient(t, f, f.config(core.MarketLinear))
	ctx := context.Background()

	trades, err := client.Market.Trades(ctx, "BTCUSDT", 1)
	require.NoError(t, err)
	assert.Equal(t, "symbol=BTCUSDT&limit=1", f.last(t).Query)
	require.Len(t, trades, 1)
	assert.Equal(t, int64(28457), trades[0].ID)
	assert.Equal(t, "48.00", trades[0].QuoteQty.String())
	assert.True(t, trades[0].IsBuyerMaker)

	aggs, err := client.Market.AggTrades(ctx, "BTCUSDT", RangeQuery{
		StartTime: time.UnixMilli(1498793700000),
		EndTime:   time.UnixMilli(1498793800000),
		Limit:     10,
	})
	require.NoError(t, err)
	assert.Equal(t, "symbol=BTCUSDT&startTime=1498793700000&endTime=1498793800000&limit=10", f.last(t).Query)
	require.Len(t, aggs, 1)
	assert.Equal(t, int64(26129), aggs[0].AggTradeID)
	assert.Equal(t, "4.70443515", aggs[0].Quantity.String())
}

func TestMarket_Klines(t *testing.T) {
	f := newFakeExchange(t)
	f.handle(http.MethodGet, "/fapi/v1/klines", `[
		[1499040000000, "0.01634790", "0.80000000", "0.01575800", "0.01577100", "148976.11427815",
		 1499644799999, "2434.19055334", 308, "1756.87402397", "28.46694368", "0"]
	]`)
	client := newTestClient(t, f, f.config(core.MarketLinear))

	klines, err := client.Market.Klines(context.Background(), "BTCUSDT", "1m", RangeQuery{Limit: 1})
	require.NoError(t, err)

	assert.Equal(t, "symbol=BTCUSDT&interval=1m&limit=1", f.last(t).Query)
	require.Len(t, klines, 1)
	k := klines[0]
	assert.Equal(t, int64(1499040000000), k.OpenTime)
	assert.Equal(t, "0.01634790", k.Open.String())
	assert.Equal(t, "0.80000000", k.High.String())
	assert.Equal(t, "0.01577100", k.Close.String())
	assert.Equal(t, int64(1499644799999), k.CloseTime)
	assert.Equal(t, int64(308), k.TradeCount)
	assert.Equal(t, "28.46694368", k.TakerBuyQuoteVolume.String())
}

func TestKline_UnmarshalErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"too_short", `[1499040000000, "1"]`},
		{"time_as_string", `["x", "1", "1", "1", "1", "1", 1, "1", 1, "1", "1"]`},
		{"bad_decimal", `[1, "abc", "1", "1", "1", "1", 1, "1", 1, "1", "1"]`},
		{"not_array", `{"openTime": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var k Kline
			assert.Error(t, k.UnmarshalJSON([]byte(tt.raw)))
		})
	}
}

func TestMarket_KlinesDecodeError(t *testing.T) {
	f := newFakeExchange(t)
	f.handle(http.MethodGet, "/fapi/v1/klines", `[[1499040000000, "1"]]`)
	client := newTestClient(t, f, f.config(core.MarketLinear))

	_, err := client.Market.Klines(context.Background(), "BTCUSDT", "1h", RangeQuery{})
	assert.True(t, core.IsDecodeError(err))
}

func TestMarket_TickerPerMarketType(t *testing.T) {
	linearTicker := `{"symbol":"BTCUSDT","priceChange":"-94.99999800","priceChangePercent":"-95.960","lastPrice":"4.00000200","volume":"8913.30000000","quoteVolume":"15.30000000","count":76}`
	inverseTicker := `[{"symbol":"BTCUSD_PERP","pair":"BTCUSD","lastPrice":"4.00000200","volume":"8913","baseVolume":"15.3","count":76}]`

	t.Run("linear_object", func(t *testing.T) {
		f := newFakeExchange(t)
		f.handle(http.MethodGet, "/fapi/v1/ticker/24hr", linearTicker)
		client := newTestClient(t, f, f.config(core.MarketLinear))

		ticker, err := client.Market.Ticker24h(context.Background(), "BTCUSDT")
		require.NoError(t, err)
		assert.Equal(t, "BTCUSDT", ticker.Symbol)
		assert.Equal(t, "-95.960", ticker.PriceChangePercent.String())
		assert.Equal(t, "15.30000000", ticker.QuoteVolume.String())
	})

	t.Run("inverse_list", func(t *testing.T) {
		f := newFakeExchange(t)
		f.handle(http.MethodGet, "/dapi/v1/ticker/24hr", inverseTicker)
		client := newTestClient(t, f, f.config(core.MarketInverse))

		ticker, err := client.Market.Ticker24h(context.Background(), "btcusd_perp")
		require.NoError(t, err)
		assert.Equal(t, "symbol=BTCUSD_PERP", f.last(t).Query)
		assert.Equal(t, "BTCUSD", ticker.Pair)
		assert.Equal(t, "15.3", ticker.BaseVolume.String())
	})

	t.Run("inverse_empty_list", func(t *testing.T) {
		f := newFakeExchange(t)
		f.handle(http.MethodGet, "/dapi/v1/ticker/price", `[]`)
		client := newTestClient(t, f, f.config(core.MarketInverse))

		_, err := client.Market.Price(context.Background(), "NOPE_PERP")
		assert.ErrorIs(t, err, core.ErrUnknownSymbol)
	})
}

func TestMarket_AllTickers(t *testing.T) {
	f := newFakeExchange(t)
	f.handle(http.MethodGet, "/fapi/v1/ticker/24hr", `[{"symbol":"BTCUSDT"},{"symbol":"ETHUSDT"}]`)
	f.handle(http.MethodGet, "/fapi/v1/ticker/price", `[{"symbol":"BTCUSDT","price":"6000.01","time":1589437530011}]`)
	client := newTestClient(t, f, f.config(core.MarketLinear))
	ctx := context.Background()

	tickers, err := client.Market.Tickers24h(ctx)
	require.NoError(t, err)
	assert.Len(t, tickers, 2)
	assert.Empty(t, f.last(t).Query)

	prices, err := client.Market.Prices(ctx)
	require.NoError(t, err)
	require.Len(t, prices, 1)
	assert.Equal(t, "6000.01", prices[0].Price.String())

	assert.Equal(t, int64(42), client.Limiter().Metrics().TotalWeight)
}

func TestMarket_PriceBookTickerMarkPrice(t *testing.T) {
	f := newFakeExchange(t)
	f.handle(http.MethodGet, "/fapi/v1/ticker/price", `{"symbol":"BTCUSDT","price":"6000.01","time":1589437530011}`)
	f.handle(http.MethodGet, "/fapi/v1/ticker/bookTicker", `{"symbol":"BTCUSDT","bidPrice":"4.00000000","bidQty":"431.00000000","askPrice":"4.00000200","askQty":"9.00000000","time":1589437530011}`)
	f.handle(http.MethodGet, "/fapi/v1/premiumIndex", `{"symbol":"BTCUSDT","markPrice":"11793.63104562","indexPrice":"11781.80495970","estimatedSettlePrice":"11781.16138815","lastFundingRate":"0.00038246","interestRate":"0.00010000","nextFundingTime":1597392000000,"time":1597370495002}`)
	client := newTestClient(t, f, f.config(core.MarketLinear))
	ctx := context.Background()

	price, err := client.Market.Price(ctx, "BTCUSDT")
	require.NoError(t, err)
	assert.Equal(t, "6000.01", price.Price.String())

	book, err := client.Market.BookTicker(ctx, "BTCUSDT")
	require.NoError(t, err)
	assert.Equal(t, "431.00000000", book.BidQty.String())
	assert.Equal(t, "4.00000200", book.AskPrice.String())

	mark, err := client.Market.MarkPrice(ctx, "BTCUSDT")
	require.NoError(t, err)
	assert.Equal(t, "0.00038246", mark.LastFundingRate.String())
	assert.Equal(t, int64(1597392000000), mark.NextFundingTime)
}

func TestMarket_FundingRateAndOpenInterest(t *testing.T) {
	f := newFakeExchange(t)
	f.handle(http.MethodGet, "/fapi/v1/fundingRate", `[
		{"symbol":"BTCUSDT","fundingRate":"-0.03750000","fundingTime":1570608000000,"markPrice":"34287.54619963"},
		{"symbol":"BTCUSDT","fundingRate":"0.00010000","fundingTime":1570636800000,"markPrice":""}
	]`)
	f.handle(http.MethodGet, "/fapi/v1/openInterest", `{"openInterest":"10659.509","symbol":"BTCUSDT","time":1589437530011}`)
	client := newTestClient(t, f, f.config(core.MarketLinear))
	ctx := context.Background()

	rates, err := client.Market.FundingRate(ctx, "BTCUSDT", RangeQuery{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, "symbol=BTCUSDT&limit=2", f.last(t).Query)
	require.Len(t, rates, 2)
	assert.Equal(t, "-0.03750000", rates[0].FundingRate.String())
	assert.Empty(t, rates[1].MarkPrice)

	oi, err := client.Market.OpenInterest(ctx, "BTCUSDT")
	require.NoError(t, err)
	assert.Equal(t, "10659.509", oi.OpenInterest.String())
}
