package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTopics(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"agg_trade", AggTradeStream("BTCUSDT"), "btcusdt@aggTrade"},
		{"trade", TradeStream("btcusdt"), "btcusdt@trade"},
		{"kline", KlineStream("ETHUSDT", "1m"), "ethusdt@kline_1m"},
		{"mini_ticker", MiniTickerStream("BNBUSDT"), "bnbusdt@miniTicker"},
		{"all_mini_ticker", AllMiniTickerStream(), "!miniTicker@arr"},
		{"ticker", TickerStream("BTCUSD_PERP"), "btcusd_perp@ticker"},
		{"all_ticker", AllTickerStream(), "!ticker@arr"},
		{"book_ticker", BookTickerStream("BTCUSDT"), "btcusdt@bookTicker"},
		{"all_book_ticker", AllBookTickerStream(), "!bookTicker"},
		{"partial_depth", PartialDepthStream("BTCUSDT", 10, 100), "btcusdt@depth10@100ms"},
		{"partial_depth_unvalidated", PartialDepthStream("BTCUSDT", 7, 250), "btcusdt@depth7@250ms"},
		{"diff_depth", DiffDepthStream("BTCUSDT", 500), "btcusdt@depth@500ms"},
		{"mark_price", MarkPriceStream("BTCUSDT", 3000), "btcusdt@markPrice"},
		{"mark_price_1s", MarkPriceStream("BTCUSDT", 1000), "btcusdt@markPrice@1s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestCombinedURL(t *testing.T) {
	topics := []string{"ethusdt@aggTrade", "btcusdt@trade"}

	assert.Equal(t, "ethusdt@aggTrade/btcusdt@trade", CombinedStreams(topics))
	assert.Equal(t,
		"wss://fstream.binance.com/stream?streams=ethusdt@aggTrade/btcusdt@trade",
		CombinedURL("wss://fstream.binance.com", topics))
	assert.Equal(t,
		"wss://fstream.binance.com/stream?streams=btcusdt@trade/ethusdt@aggTrade",
		CombinedURL("wss://fstream.binance.com/", []string{"btcusdt@trade", "ethusdt@aggTrade"}))
}

func TestSingleURL(t *testing.T) {
	assert.Equal(t, "wss://dstream.binance.com/ws/btcusd_perp@aggTrade",
		SingleURL("wss://dstream.binance.com", "btcusd_perp@aggTrade"))
}
