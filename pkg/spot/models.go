package spot

import (
	"github.com/cockroachdb/apd/v3"

	"tradewire/pkg/core"
	"tradewire/pkg/stream"
)

type ServerTime struct {
	ServerTime int64 `json:"serverTime"`
}

type RateLimit struct {
	RateLimitType string `json:"rateLimitType"`
	Interval      string `json:"interval"`
	IntervalNum   int    `json:"intervalNum"`
	Limit         int    `json:"limit"`
}

// SymbolFilter carries the union of the spot filter fields; which ones are
// set depends on FilterType.
type SymbolFilter struct {
	FilterType       string      `json:"filterType"`
	MinPrice         apd.Decimal `json:"minPrice"`
	MaxPrice         apd.Decimal `json:"maxPrice"`
	TickSize         apd.Decimal `json:"tickSize"`
	MinQty           apd.Decimal `json:"minQty"`
	MaxQty           apd.Decimal `json:"maxQty"`
	StepSize         apd.Decimal `json:"stepSize"`
	MinNotional      apd.Decimal `json:"minNotional"`
	MaxNotional      apd.Decimal `json:"maxNotional"`
	ApplyMinToMarket bool        `json:"applyMinToMarket"`
	ApplyMaxToMarket bool        `json:"applyMaxToMarket"`
	AvgPriceMins     int         `json:"avgPriceMins"`
	Limit            int         `json:"limit"`
	MaxNumOrders     int         `json:"maxNumOrders"`
	MaxNumAlgoOrders int         `json:"maxNumAlgoOrders"`
}

type SymbolInfo struct {
	Symbol                     string         `json:"symbol"`
	Status                     string         `json:"status"`
	BaseAsset                  string         `json:"baseAsset"`
	BaseAssetPrecision         int            `json:"baseAssetPrecision"`
	QuoteAsset                 string         `json:"quoteAsset"`
	QuotePrecision             int            `json:"quotePrecision"`
	QuoteAssetPrecision        int            `json:"quoteAssetPrecision"`
	OrderTypes                 []string       `json:"orderTypes"`
	IcebergAllowed             bool           `json:"icebergAllowed"`
	OCOAllowed                 bool           `json:"ocoAllowed"`
	QuoteOrderQtyMarketAllowed bool           `json:"quoteOrderQtyMarketAllowed"`
	CancelReplaceAllowed       bool           `json:"cancelReplaceAllowed"`
	IsSpotTradingAllowed       bool           `json:"isSpotTradingAllowed"`
	IsMarginTradingAllowed     bool           `json:"isMarginTradingAllowed"`
	Filters                    []SymbolFilter `json:"filters"`
	Permissions                []string       `json:"permissions"`
}

// Filter returns the filter of the given type, if the symbol has one.
func (s *SymbolInfo) Filter(filterType string) (SymbolFilter, bool) {
	for _, f := range s.Filters {
		if f.FilterType == filterType {
			return f, true
		}
	}
	return SymbolFilter{}, false
}

type ExchangeInfo struct {
	Timezone   string       `json:"timezone"`
	ServerTime int64        `json:"serverTime"`
	RateLimits []RateLimit  `json:"rateLimits"`
	Symbols    []SymbolInfo `json:"symbols"`
}

type OrderBook struct {
	LastUpdateID int64               `json:"lastUpdateId"`
	Bids         []stream.PriceLevel `json:"bids"`
	Asks         []stream.PriceLevel `json:"asks"`
}

type RecentTrade struct {
	ID           int64       `json:"id"`
	Price        apd.Decimal `json:"price"`
	Qty          apd.Decimal `json:"qty"`
	QuoteQty     apd.Decimal `json:"quoteQty"`
	Time         int64       `json:"time"`
	IsBuyerMaker bool        `json:"isBuyerMaker"`
	IsBestMatch  bool        `json:"isBestMatch"`
}

// AggTrade keys differ only by case ("m" and "M"), so both are declared.
type AggTrade struct {
	AggTradeID   int64       `json:"a"`
	Price        apd.Decimal `json:"p"`
	Quantity     apd.Decimal `json:"q"`
	FirstTradeID int64       `json:"f"`
	LastTradeID  int64       `json:"l"`
	Time         int64       `json:"T"`
	IsBuyerMaker bool        `json:"m"`
	IsBestMatch  bool        `json:"M"`
}

type Kline = core.Kline

type AvgPrice struct {
	Mins      int         `json:"mins"`
	Price     apd.Decimal `json:"price"`
	CloseTime int64       `json:"closeTime"`
}

type Ticker24h struct {
	Symbol             string      `json:"symbol"`
	PriceChange        apd.Decimal `json:"priceChange"`
	PriceChangePercent apd.Decimal `json:"priceChangePercent"`
	WeightedAvgPrice   apd.Decimal `json:"weightedAvgPrice"`
	PrevClosePrice     apd.Decimal `json:"prevClosePrice"`
	LastPrice          apd.Decimal `json:"lastPrice"`
	LastQty            apd.Decimal `json:"lastQty"`
	BidPrice           apd.Decimal `json:"bidPrice"`
	BidQty             apd.Decimal `json:"bidQty"`
	AskPrice           apd.Decimal `json:"askPrice"`
	AskQty             apd.Decimal `json:"askQty"`
	OpenPrice          apd.Decimal `json:"openPrice"`
	HighPrice          apd.Decimal `json:"highPrice"`
	LowPrice           apd.Decimal `json:"lowPrice"`
	Volume             apd.Decimal `json:"volume"`
	QuoteVolume        apd.Decimal `json:"quoteVolume"`
	OpenTime           int64       `json:"openTime"`
	CloseTime          int64       `json:"closeTime"`
	FirstID            int64       `json:"firstId"`
	LastID             int64       `json:"lastId"`
	Count              int64       `json:"count"`
}

type PriceTicker struct {
	Symbol string      `json:"symbol"`
	Price  apd.Decimal `json:"price"`
}

type BookTicker struct {
	Symbol   string      `json:"symbol"`
	BidPrice apd.Decimal `json:"bidPrice"`
	BidQty   apd.Decimal `json:"bidQty"`
	AskPrice apd.Decimal `json:"askPrice"`
	AskQty   apd.Decimal `json:"askQty"`
}

// Fill is one match of a FULL order response.
type Fill struct {
	Price           apd.Decimal `json:"price"`
	Qty             apd.Decimal `json:"qty"`
	Commission      apd.Decimal `json:"commission"`
	CommissionAsset string      `json:"commissionAsset"`
	TradeID         int64       `json:"tradeId"`
}

// OrderResponse answers a placement. An ACK response fills only the ids and
// TransactTime; RESULT adds the order state and FULL adds Fills.
type OrderResponse struct {
	Symbol                  string           `json:"symbol"`
	OrderID                 int64            `json:"orderId"`
	OrderListID             int64            `json:"orderListId"`
	ClientOrderID           string           `json:"clientOrderId"`
	TransactTime            int64            `json:"transactTime"`
	Price                   apd.Decimal      `json:"price"`
	OrigQty                 apd.Decimal      `json:"origQty"`
	ExecutedQty             apd.Decimal      `json:"executedQty"`
	CummulativeQuoteQty     apd.Decimal      `json:"cummulativeQuoteQty"`
	Status                  core.OrderStatus `json:"status"`
	TimeInForce             core.TimeInForce `json:"timeInForce"`
	Type                    core.OrderType   `json:"type"`
	Side                    core.OrderSide   `json:"side"`
	WorkingTime             int64            `json:"workingTime"`
	SelfTradePreventionMode string           `json:"selfTradePreventionMode"`
	Fills                   []Fill           `json:"fills"`
}

// Order is the server view of an order returned by order queries.
type Order struct {
	Symbol                  string           `json:"symbol"`
	OrderID                 int64            `json:"orderId"`
	OrderListID             int64            `json:"orderListId"`
	ClientOrderID           string           `json:"clientOrderId"`
	Price                   apd.Decimal      `json:"price"`
	OrigQty                 apd.Decimal      `json:"origQty"`
	ExecutedQty             apd.Decimal      `json:"executedQty"`
	CummulativeQuoteQty     apd.Decimal      `json:"cummulativeQuoteQty"`
	Status                  core.OrderStatus `json:"status"`
	TimeInForce             core.TimeInForce `json:"timeInForce"`
	Type                    core.OrderType   `json:"type"`
	Side                    core.OrderSide   `json:"side"`
	StopPrice               apd.Decimal      `json:"stopPrice"`
	IcebergQty              apd.Decimal      `json:"icebergQty"`
	Time                    int64            `json:"time"`
	UpdateTime              int64            `json:"updateTime"`
	IsWorking               bool             `json:"isWorking"`
	WorkingTime             int64            `json:"workingTime"`
	OrigQuoteOrderQty       apd.Decimal      `json:"origQuoteOrderQty"`
	SelfTradePreventionMode string           `json:"selfTradePreventionMode"`
}

// CanceledOrder is the state of an order right after cancellation.
type CanceledOrder struct {
	Symbol                  string           `json:"symbol"`
	OrigClientOrderID       string           `json:"origClientOrderId"`
	OrderID                 int64            `json:"orderId"`
	OrderListID             int64            `json:"orderListId"`
	ClientOrderID           string           `json:"clientOrderId"`
	TransactTime            int64            `json:"transactTime"`
	Price                   apd.Decimal      `json:"price"`
	OrigQty                 apd.Decimal      `json:"origQty"`
	ExecutedQty             apd.Decimal      `json:"executedQty"`
	CummulativeQuoteQty     apd.Decimal      `json:"cummulativeQuoteQty"`
	Status                  core.OrderStatus `json:"status"`
	TimeInForce             core.TimeInForce `json:"timeInForce"`
	Type                    core.OrderType   `json:"type"`
	Side                    core.OrderSide   `json:"side"`
	SelfTradePreventionMode string           `json:"selfTradePreventionMode"`
}

// CancelReplaceResult reports both halves of a cancel-replace. Results are
// SUCCESS, FAILURE or NOT_ATTEMPTED.
type CancelReplaceResult struct {
	CancelResult     string         `json:"cancelResult"`
	NewOrderResult   string         `json:"newOrderResult"`
	CancelResponse   *CanceledOrder `json:"cancelResponse"`
	NewOrderResponse *OrderResponse `json:"newOrderResponse"`
}

// MyTrade is one fill of the account.
type MyTrade struct {
	Symbol          string      `json:"symbol"`
	ID              int64       `json:"id"`
	OrderID         int64       `json:"orderId"`
	OrderListID     int64       `json:"orderListId"`
	Price           apd.Decimal `json:"price"`
	Qty             apd.Decimal `json:"qty"`
	QuoteQty        apd.Decimal `json:"quoteQty"`
	Commission      apd.Decimal `json:"commission"`
	CommissionAsset string      `json:"commissionAsset"`
	Time            int64       `json:"time"`
	IsBuyer         bool        `json:"isBuyer"`
	IsMaker         bool        `json:"isMaker"`
	IsBestMatch     bool        `json:"isBestMatch"`
}

type Balance struct {
	Asset  string      `json:"asset"`
	Free   apd.Decimal `json:"free"`
	Locked apd.Decimal `json:"locked"`
}

type AccountInformation struct {
	MakerCommission            int64     `json:"makerCommission"`
	TakerCommission            int64     `json:"takerCommission"`
	BuyerCommission            int64     `json:"buyerCommission"`
	SellerCommission           int64     `json:"sellerCommission"`
	CanTrade                   bool      `json:"canTrade"`
	CanWithdraw                bool      `json:"canWithdraw"`
	CanDeposit                 bool      `json:"canDeposit"`
	Brokered                   bool      `json:"brokered"`
	RequireSelfTradePrevention bool      `json:"requireSelfTradePrevention"`
	UpdateTime                 int64     `json:"updateTime"`
	AccountType                string    `json:"accountType"`
	Balances                   []Balance `json:"balances"`
	Permissions                []string  `json:"permissions"`
	UID                        int64     `json:"uid"`
}

// BalanceOf returns the balance of asset, if the account lists it.
func (a *AccountInformation) BalanceOf(asset string) (Balance, bool) {
	for _, b := range a.Balances {
		if b.Asset == asset {
			return b, true
		}
	}
	return Balance{}, false
}

type ListenKey struct {
	ListenKey string `json:"listenKey"`
}
