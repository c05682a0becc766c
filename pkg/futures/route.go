package futures

import (
	"fmt"

	"tradewire/pkg/core"
)

// Route identifies a REST operation independently of its URL path.
type Route int

// Routes shared by every market type.
const (
	RoutePing Route = iota
	RouteTime
	RouteExchangeInfo
	RouteDepth
	RouteTrades
	RouteHistoricalTrades
	RouteAggTrades
	RouteKlines
	RouteContinuousKlines
	RouteTicker24h
	RouteTickerPrice
	RouteBookTicker
	RoutePremiumIndex
	RouteFundingRate
	RouteOpenInterest
	RouteOrder
	RouteOpenOrders
	RouteAllOpenOrders
	RoutePositionRisk
	RouteAccount
	RouteBalance
	RouteChangeInitialLeverage
	RoutePositionSide
	RouteUserDataStream
	RouteMultiAssetsMargin
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
	"ContinuousKlines",
	"Ticker24h",
	"TickerPrice",
	"BookTicker",
	"PremiumIndex",
	"FundingRate",
	"OpenInterest",
	"Order",
	"OpenOrders",
	"AllOpenOrders",
	"PositionRisk",
	"Account",
	"Balance",
	"ChangeInitialLeverage",
	"PositionSide",
	"UserDataStream",
	"MultiAssetsMargin",
}

func (r Route) String() string {
	if r < 0 || int(r) >= len(routeNames) {
		return fmt.Sprintf("Route(%d)", int(r))
	}
	return routeNames[r]
}

var linearRoutes = map[Route]string{
	RoutePing:                  "/fapi/v1/ping",
	RouteTime:                  "/fapi/v1/time",
	RouteExchangeInfo:          "/fapi/v1/exchangeInfo",
	RouteDepth:                 "/fapi/v1/depth",
	RouteTrades:                "/fapi/v1/trades",
	RouteHistoricalTrades:      "/fapi/v1/historicalTrades",
	RouteAggTrades:             "/fapi/v1/aggTrades",
	RouteKlines:                "/fapi/v1/klines",
	RouteContinuousKlines:      "/fapi/v1/continuousKlines",
	RouteTicker24h:             "/fapi/v1/ticker/24hr",
	RouteTickerPrice:           "/fapi/v1/ticker/price",
	RouteBookTicker:            "/fapi/v1/ticker/bookTicker",
	RoutePremiumIndex:          "/fapi/v1/premiumIndex",
	RouteFundingRate:           "/fapi/v1/fundingRate",
	RouteOpenInterest:          "/fapi/v1/openInterest",
	RouteOrder:                 "/fapi/v1/order",
	RouteOpenOrders:            "/fapi/v1/openOrders",
	RouteAllOpenOrders:         "/fapi/v1/allOpenOrders",
	RoutePositionRisk:          "/fapi/v2/positionRisk",
	RouteAccount:               "/fapi/v2/account",
	RouteBalance:               "/fapi/v2/balance",
	RouteChangeInitialLeverage: "/fapi/v1/leverage",
	RoutePositionSide:          "/fapi/v1/positionSide/dual",
	RouteUserDataStream:        "/fapi/v1/listenKey",
	RouteMultiAssetsMargin:     "/fapi/v1/multiAssetsMargin",
}

// Coin-margined contracts have no multi-assets mode.
var inverseRoutes = map[Route]string{
	RoutePing:                  "/dapi/v1/ping",
	RouteTime:                  "/dapi/v1/time",
	RouteExchangeInfo:          "/dapi/v1/exchangeInfo",
	RouteDepth:                 "/dapi/v1/depth",
	RouteTrades:                "/dapi/v1/trades",
	RouteHistoricalTrades:      "/dapi/v1/historicalTrades",
	RouteAggTrades:             "/dapi/v1/aggTrades",
	RouteKlines:                "/dapi/v1/klines",
	RouteContinuousKlines:      "/dapi/v1/continuousKlines",
	RouteTicker24h:             "/dapi/v1/ticker/24hr",
	RouteTickerPrice:           "/dapi/v1/ticker/price",
	RouteBookTicker:            "/dapi/v1/ticker/bookTicker",
	RoutePremiumIndex:          "/dapi/v1/premiumIndex",
	RouteFundingRate:           "/dapi/v1/fundingRate",
	RouteOpenInterest:          "/dapi/v1/openInterest",
	RouteOrder:                 "/dapi/v1/order",
	RouteOpenOrders:            "/dapi/v1/openOrders",
	RouteAllOpenOrders:         "/dapi/v1/allOpenOrders",
	RoutePositionRisk:          "/dapi/v1/positionRisk",
	RouteAccount:               "/dapi/v1/account",
	RouteBalance:               "/dapi/v1/balance",
	RouteChangeInitialLeverage: "/dapi/v1/leverage",
	RoutePositionSide:          "/dapi/v1/positionSide/dual",
	RouteUserDataStream:        "/dapi/v1/listenKey",
}

// Resolve returns the path of route for the market type. A route the market
// type does not define yields *core.UnsupportedRouteError.
func Resolve(marketType core.MarketType, route Route) (string, error) {
	var table map[Route]string
	switch marketType {
	case core.MarketLinear:
		table = linearRoutes
	case core.MarketInverse:
		table = inverseRoutes
	}

	path, ok := table[route]
	if !ok {
		return "", &core.UnsupportedRouteError{MarketType: marketType, Route: route.String()}
	}
	return path, nil
}

// MustResolve is Resolve for routes known to exist; it panics otherwise.
func MustResolve(marketType core.MarketType, route Route) string {
	path, err := Resolve(marketType, route)
	if err != nil {
		panic(err)
	}
	return path
}
