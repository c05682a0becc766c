package spot

import "fmt"

// Route identifies a spot REST operation independently of its URL path.
type Route int

const (
	RoutePing Route = iota
	RouteTime
	RouteExchangeInfo
	RouteDepth
	RouteTrades
	RouteHistoricalTrades
	RouteAggTrades
	RouteKlines
	RouteAvgPrice
	RouteTicker24h
	RouteTickerPrice
	RouteBookTicker
	RouteOrder
	RouteOrderTest
	RouteOpenOrders
	RouteAllOrders
	RouteCancelReplace
	RouteAccount
	RouteMyTrades
	RouteUserDataStream
)

var routeNames = [...]string{
	"Ping",
	"Time",
	"ExchangeInfo",
	"Depth",
	"Trades",
	"HistoricalTrades",
	"AggTrades",
	"Klines",
	"AvgPrice",
	"Ticker24h",
	"TickerPrice",
	"BookTicker",
	"Order",
	"OrderTest",
	"OpenOrders",
	"AllOrders",
	"CancelReplace",
	"Account",
	"MyTrades",
	"UserDataStream",
}

func (r Route) String() string {
	if r < 0 || int(r) >= len(routeNames) {
		return fmt.Sprintf("Route(%d)", int(r))
	}
	return routeNames[r]
}

var routes = map[Route]string{
	RoutePing:             "/api/v3/ping",
	RouteTime:             "/api/v3/time",
	RouteExchangeInfo:     "/api/v3/exchangeInfo",
	RouteDepth:            "/api/v3/depth",
	RouteTrades:           "/api/v3/trades",
	RouteHistoricalTrades: "/api/v3/historicalTrades",
	RouteAggTrades:        "/api/v3/aggTrades",
	RouteKlines:           "/api/v3/klines",
	RouteAvgPrice:         "/api/v3/avgPrice",
	RouteTicker24h:        "/api/v3/ticker/24hr",
	RouteTickerPrice:      "/api/v3/ticker/price",
	RouteBookTicker:       "/api/v3/ticker/bookTicker",
	RouteOrder:            "/api/v3/order",
	RouteOrderTest:        "/api/v3/order/test",
	RouteOpenOrders:       "/api/v3/openOrders",
	RouteAllOrders:        "/api/v3/allOrders",
	RouteCancelReplace:    "/api/v3/order/cancelReplace",
	RouteAccount:          "/api/v3/account",
	RouteMyTrades:         "/api/v3/myTrades",
	RouteUserDataStream:   "/api/v3/userDataStream",
}

// Resolve returns the path of route.
func Resolve(route Route) (string, error) {
	path, ok := routes[route]
	if !ok {
		return "", fmt.Errorf("unknown spot route %s", route)
	}
	return path, nil
}
