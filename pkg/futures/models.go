package futures

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

// SymbolFilter carries the union of the filter fields; which ones are set
// depends on FilterType.
type SymbolFilter struct {
	FilterType        string      `json:"filterType"`
	MinPrice          apd.Decimal `json:"minPrice"`
	MaxPrice          apd.Decimal `json:"maxPrice"`
	TickSize          apd.Decimal `json:"tickSize"`
	MinQty            apd.Decimal `json:"minQty"`
	MaxQty            apd.Decimal `json:"maxQty"`
	StepSize          apd.Decimal `json:"stepSize"`
	Notional          apd.Decimal `json:"notional"`
	Limit             int         `json:"limit"`
	MultiplierUp      apd.Decimal `json:"multiplierUp"`
	MultiplierDown    apd.Decimal `json:"multiplierDown"`
	MultiplierDecimal apd.Decimal `json:"multiplierDecimal"`
}

type SymbolInfo struct {
	Symbol            string         `json:"symbol"`
	Pair              string         `json:"pair"`
	ContractType      string         `json:"contractType"`
	DeliveryDate      int64          `json:"deliveryDate"`
	OnboardDate       int64          `json:"onboardDate"`
	Status            string         `json:"status"`
	ContractStatus    string         `json:"contractStatus"`
	ContractSize      int64          `json:"contractSize"`
	BaseAsset         string         `json:"baseAsset"`
	QuoteAsset        string         `json:"quoteAsset"`
	MarginAsset       string         `json:"marginAsset"`
	PricePrecision    int            `json:"pricePrecision"`
	QuantityPrecision int            `json:"quantityPrecision"`
	OrderTypes        []string       `json:"orderTypes"`
	TimeInForce       []string       `json:"timeInForce"`
	Filters           []SymbolFilter `json:"filters"`
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
	LastUpdateID    int64               `json:"lastUpdateId"`
	Time            int64               `json:"E"`
	TransactionTime int64               `json:"T"`
	Bids            []stream.PriceLevel `json:"bids"`
	Asks            []stream.PriceLevel `json:"asks"`
}

type Trade struct {
	ID           int64       `json:"id"`
	Price        apd.Decimal `json:"price"`
	Qty          apd.Decimal `json:"qty"`
	QuoteQty     apd.Decimal `json:"quoteQty"`
	BaseQty      apd.Decimal `json:"baseQty"`
	Time         int64       `json:"time"`
	IsBuyerMaker bool        `json:"isBuyerMaker"`
}

type AggTrade struct {
	AggTradeID   int64       `json:"a"`
	Price        apd.Decimal `json:"p"`
	Quantity     apd.Decimal `json:"q"`
	FirstTradeID int64       `json:"f"`
	LastTradeID  int64       `json:"l"`
	Time         int64       `json:"T"`
	IsBuyerMaker bool        `json:"m"`
}

// Kline is one candle; see core.Kline for the positional wire form.
type Kline = core.Kline

// Ticker24h is the rolling 24h statistics of a symbol. Volume is quoted in
// contracts and QuoteVolume/BaseVolume depend on the market type.
type Ticker24h struct {
	Symbol             string      `json:"symbol"`
	Pair               string      `json:"pair"`
	PriceChange        apd.Decimal `json:"priceChange"`
	PriceChangePercent apd.Decimal `json:"priceChangePercent"`
	WeightedAvgPrice   apd.Decimal `json:"weightedAvgPrice"`
	LastPrice          apd.Decimal `json:"lastPrice"`
	LastQty            apd.Decimal `json:"lastQty"`
	OpenPrice          apd.Decimal `json:"openPrice"`
	HighPrice          apd.Decimal `json:"highPrice"`
	LowPrice           apd.Decimal `json:"lowPrice"`
	Volume             apd.Decimal `json:"volume"`
	QuoteVolume        apd.Decimal `json:"quoteVolume"`
	BaseVolume         apd.Decimal `json:"baseVolume"`
	OpenTime           int64       `json:"openTime"`
	CloseTime          int64       `json:"closeTime"`
	FirstID            int64       `json:"firstId"`
	LastID             int64       `json:"lastId"`
	Count              int64       `json:"count"`
}

type PriceTicker struct {
	Symbol string      `json:"symbol"`
	Pair   string      `json:"pair"`
	Price  apd.Decimal `json:"price"`
	Time   int64       `json:"time"`
}

type BookTicker struct {
	Symbol   string      `json:"symbol"`
	Pair     string      `json:"pair"`
	BidPrice apd.Decimal `json:"bidPrice"`
	BidQty   apd.Decimal `json:"bidQty"`
	AskPrice apd.Decimal `json:"askPrice"`
	AskQty   apd.Decimal `json:"askQty"`
	Time     int64       `json:"time"`
}

type MarkPrice struct {
	Symbol               string      `json:"symbol"`
	Pair                 string      `json:"pair"`
	MarkPrice            apd.Decimal `json:"markPrice"`
	IndexPrice           apd.Decimal `json:"indexPrice"`
	EstimatedSettlePrice apd.Decimal `json:"estimatedSettlePrice"`
	LastFundingRate      apd.Decimal `json:"lastFundingRate"`
	InterestRate         apd.Decimal `json:"interestRate"`
	NextFundingTime      int64       `json:"nextFundingTime"`
	Time                 int64       `json:"time"`
}

// FundingRate is one settlement. MarkPrice is empty for old settlements, so
// it is kept as text.
type FundingRate struct {
	Symbol      string      `json:"symbol"`
	FundingRate apd.Decimal `json:"fundingRate"`
	FundingTime int64       `json:"fundingTime"`
	MarkPrice   string      `json:"markPrice"`
}

type OpenInterest struct {
	Symbol       string      `json:"symbol"`
	Pair         string      `json:"pair"`
	ContractType string      `json:"contractType"`
	OpenInterest apd.Decimal `json:"openInterest"`
	Time         int64       `json:"time"`
}

// Order is the server view of an order, returned by placement, cancellation
// and open-order queries.
type Order struct {
	OrderID       int64             `json:"orderId"`
	Symbol        string            `json:"symbol"`
	Pair          string            `json:"pair"`
	Status        core.OrderStatus  `json:"status"`
	ClientOrderID string            `json:"clientOrderId"`
	Price         apd.Decimal       `json:"price"`
	AvgPrice      apd.Decimal       `json:"avgPrice"`
	OrigQty       apd.Decimal       `json:"origQty"`
	ExecutedQty   apd.Decimal       `json:"executedQty"`
	CumQty        apd.Decimal       `json:"cumQty"`
	CumQuote      apd.Decimal       `json:"cumQuote"`
	CumBase       apd.Decimal       `json:"cumBase"`
	TimeInForce   core.TimeInForce  `json:"timeInForce"`
	Type          core.OrderType    `json:"type"`
	OrigType      core.OrderType    `json:"origType"`
	ReduceOnly    bool              `json:"reduceOnly"`
	ClosePosition bool              `json:"closePosition"`
	Side          core.OrderSide    `json:"side"`
	PositionSide  core.PositionSide `json:"positionSide"`
	StopPrice     apd.Decimal       `json:"stopPrice"`
	WorkingType   core.WorkingType  `json:"workingType"`
	PriceProtect  bool              `json:"priceProtect"`
	ActivatePrice apd.Decimal       `json:"activatePrice"`
	PriceRate     apd.Decimal       `json:"priceRate"`
	Time          int64             `json:"time"`
	UpdateTime    int64             `json:"updateTime"`
}

type Position struct {
	Symbol           string            `json:"symbol"`
	PositionAmt      apd.Decimal       `json:"positionAmt"`
	EntryPrice       apd.Decimal       `json:"entryPrice"`
	BreakEvenPrice   apd.Decimal       `json:"breakEvenPrice"`
	MarkPrice        apd.Decimal       `json:"markPrice"`
	UnRealizedProfit apd.Decimal       `json:"unRealizedProfit"`
	LiquidationPrice apd.Decimal       `json:"liquidationPrice"`
	Leverage         apd.Decimal       `json:"leverage"`
	MaxNotionalValue apd.Decimal       `json:"maxNotionalValue"`
	MarginType       string            `json:"marginType"`
	IsolatedMargin   apd.Decimal       `json:"isolatedMargin"`
	IsAutoAddMargin  string            `json:"isAutoAddMargin"`
	PositionSide     core.PositionSide `json:"positionSide"`
	Notional         apd.Decimal       `json:"notional"`
	UpdateTime       int64             `json:"updateTime"`
}

type AccountAsset struct {
	Asset                  string      `json:"asset"`
	WalletBalance          apd.Decimal `json:"walletBalance"`
	UnrealizedProfit       apd.Decimal `json:"unrealizedProfit"`
	MarginBalance          apd.Decimal `json:"marginBalance"`
	MaintMargin            apd.Decimal `json:"maintMargin"`
	InitialMargin          apd.Decimal `json:"initialMargin"`
	PositionInitialMargin  apd.Decimal `json:"positionInitialMargin"`
	OpenOrderInitialMargin apd.Decimal `json:"openOrderInitialMargin"`
	CrossWalletBalance     apd.Decimal `json:"crossWalletBalance"`
	CrossUnPnl             apd.Decimal `json:"crossUnPnl"`
	AvailableBalance       apd.Decimal `json:"availableBalance"`
	MaxWithdrawAmount      apd.Decimal `json:"maxWithdrawAmount"`
	UpdateTime             int64       `json:"updateTime"`
}

type AccountPosition struct {
	Symbol                 string            `json:"symbol"`
	InitialMargin          apd.Decimal       `json:"initialMargin"`
	MaintMargin            apd.Decimal       `json:"maintMargin"`
	UnrealizedProfit       apd.Decimal       `json:"unrealizedProfit"`
	PositionInitialMargin  apd.Decimal       `json:"positionInitialMargin"`
	OpenOrderInitialMargin apd.Decimal       `json:"openOrderInitialMargin"`
	Leverage               apd.Decimal       `json:"leverage"`
	Isolated               bool              `json:"isolated"`
	EntryPrice             apd.Decimal       `json:"entryPrice"`
	PositionSide           core.PositionSide `json:"positionSide"`
	PositionAmt            apd.Decimal       `json:"positionAmt"`
	UpdateTime             int64             `json:"updateTime"`
}

type AccountInformation struct {
	FeeTier                     int               `json:"feeTier"`
	CanTrade                    bool              `json:"canTrade"`
	CanDeposit                  bool              `json:"canDeposit"`
	CanWithdraw                 bool              `json:"canWithdraw"`
	UpdateTime                  int64             `json:"updateTime"`
	MultiAssetsMargin           bool              `json:"multiAssetsMargin"`
	TotalInitialMargin          apd.Decimal       `json:"totalInitialMargin"`
	TotalMaintMargin            apd.Decimal       `json:"totalMaintMargin"`
	TotalWalletBalance          apd.Decimal       `json:"totalWalletBalance"`
	TotalUnrealizedProfit       apd.Decimal       `json:"totalUnrealizedProfit"`
	TotalMarginBalance          apd.Decimal       `json:"totalMarginBalance"`
	TotalPositionInitialMargin  apd.Decimal       `json:"totalPositionInitialMargin"`
	TotalOpenOrderInitialMargin apd.Decimal       `json:"totalOpenOrderInitialMargin"`
	TotalCrossWalletBalance     apd.Decimal       `json:"totalCrossWalletBalance"`
	TotalCrossUnPnl             apd.Decimal       `json:"totalCrossUnPnl"`
	AvailableBalance            apd.Decimal       `json:"availableBalance"`
	MaxWithdrawAmount           apd.Decimal       `json:"maxWithdrawAmount"`
	Assets                      []AccountAsset    `json:"assets"`
	Positions                   []AccountPosition `json:"positions"`
}

type AccountBalance struct {
	AccountAlias       string      `json:"accountAlias"`
	Asset              string      `json:"asset"`
	Balance            apd.Decimal `json:"balance"`
	CrossWalletBalance apd.Decimal `json:"crossWalletBalance"`
	CrossUnPnl         apd.Decimal `json:"crossUnPnl"`
	AvailableBalance   apd.Decimal `json:"availableBalance"`
	MaxWithdrawAmount  apd.Decimal `json:"maxWithdrawAmount"`
	WithdrawAvailable  apd.Decimal `json:"withdrawAvailable"`
	MarginAvailable    bool        `json:"marginAvailable"`
	UpdateTime         int64       `json:"updateTime"`
}

type LeverageChange struct {
	Leverage         int         `json:"leverage"`
	MaxNotionalValue apd.Decimal `json:"maxNotionalValue"`
	MaxQty           apd.Decimal `json:"maxQty"`
	Symbol           string      `json:"symbol"`
}

type ListenKey struct {
	ListenKey string `json:"listenKey"`
}
