package stream

import (
	"fmt"
	"strings"
)

// Topic tokens for the market data streams. Symbols are lower-cased; the
// builders do not validate intervals, depth levels or speeds.

func AggTradeStream(symbol string) string {
	return lower(symbol) + "@aggTrade"
}

func TradeStream(symbol string) string {
	return lower(symbol) + "@trade"
}

// KlineStream returns <symbol>@kline_<interval>, e.g. btcusdt@kline_1m.
func KlineStream(symbol, interval string) string {
	return lower(symbol) + "@kline_" + interval
}

func MiniTickerStream(symbol string) string {
	return lower(symbol) + "@miniTicker"
}

// AllMiniTickerStream carries an array of mini tickers per frame.
func AllMiniTickerStream() string {
	return "!miniTicker@arr"
}

func TickerStream(symbol string) string {
	return lower(symbol) + "@ticker"
}

// AllTickerStream carries an array of 24h tickers per frame.
func AllTickerStream() string {
	return "!ticker@arr"
}

func BookTickerStream(symbol string) string {
	return lower(symbol) + "@bookTicker"
}

func AllBookTickerStream() string {
	return "!bookTicker"
}

// PartialDepthStream returns <symbol>@depth<levels>@<speed>ms. The server
// accepts levels 5, 10 or 20.
func PartialDepthStream(symbol string, levels, speedMs int) string {
	return fmt.Sprintf("%s@depth%d@%dms", lower(symbol), levels, speedMs)
}

// DiffDepthStream returns <symbol>@depth@<speed>ms.
func DiffDepthStream(symbol string, speedMs int) string {
	return fmt.Sprintf("%s@depth@%dms", lower(symbol), speedMs)
}

// MarkPriceStream returns <symbol>@markPrice, or <symbol>@markPrice@1s when
// speedMs is 1000.
func MarkPriceStream(symbol string, speedMs int) string {
	if speedMs == 1000 {
		return lower(symbol) + "@markPrice@1s"
	}
	return lower(symbol) + "@markPrice"
}

// CombinedStreams joins topics with '/' in the given order.
func CombinedStreams(topics []string) string {
	return strings.Join(topics, "/")
}

// SingleURL returns <base>/ws/<topic>.
func SingleURL(base, topic string) string {
	return strings.TrimRight(base, "/") + "/ws/" + topic
}

// CombinedURL returns <base>/stream?streams=<t1>/<t2>/...
func CombinedURL(base string, topics []string) string {
	return strings.TrimRight(base, "/") + "/stream?streams=" + CombinedStreams(topics)
}

func lower(symbol string) string {
	return strings.ToLower(symbol)
}
