package stream

import (
	"github.com/bytedance/sonic"
	"github.com/cockroachdb/apd/v3"
)

// Event type tags carried in the "e" field of every stream payload.
const (
	EventAggTrade         = "aggTrade"
	EventTrade            = "trade"
	EventKline            = "kline"
	EventTicker           = "24hrTicker"
	EventMiniTicker       = "24hrMiniTicker"
	EventDepthUpdate      = "depthUpdate"
	EventBookTicker       = "bookTicker"
	EventMarkPrice        = "markPriceUpdate"
	EventAccountPosition  = "outboundAccountPosition"
	EventBalanceUpdate    = "balanceUpdate"
	EventExecutionReport  = "executionReport"
	EventListStatus       = "listStatus"
	EventAccountUpdate    = "ACCOUNT_UPDATE"
	EventOrderTradeUpdate = "ORDER_TRADE_UPDATE"
	EventListenKeyExpired = "listenKeyExpired"
	EventBatch            = "batch"
)

// Event is one decoded stream payload. Concrete types are pointers to the
// structs below; switch on the type to read fields.
type Event interface {
	EventType() string
}

// JSON keys match struct tags case-insensitively, so payloads that use both
// cases of a letter declare both fields. Fields named Ignore* exist only for that.

type AggTradeEvent struct {
	Type         string      `json:"e"`
	Time         int64       `json:"E"`
	Symbol       string      `json:"s"`
	AggTradeID   int64       `json:"a"`
	Price        apd.Decimal `json:"p"`
	Quantity     apd.Decimal `json:"q"`
	FirstTradeID int64       `json:"f"`
	LastTradeID  int64       `json:"l"`
	TradeTime    int64       `json:"T"`
	IsBuyerMaker bool        `json:"m"`
	IgnoreM      bool        `json:"M"`
}

func (e *AggTradeEvent) EventType() string { return EventAggTrade }

type TradeEvent struct {
	Type          string      `json:"e"`
	Time          int64       `json:"E"`
	Symbol        string      `json:"s"`
	TradeID       int64       `json:"t"`
	Price         apd.Decimal `json:"p"`
	Quantity      apd.Decimal `json:"q"`
	BuyerOrderID  int64       `json:"b"`
	SellerOrderID int64       `json:"a"`
	TradeTime     int64       `json:"T"`
	// OrderType is set by the futures trade stream (MARKET, LIQUIDATION, ...).
	OrderType    string `json:"X"`
	IsBuyerMaker bool   `json:"m"`
	IgnoreM      bool   `json:"M"`
}

func (e *TradeEvent) EventType() string { return EventTrade }

type KlineEvent struct {
	Type   string `json:"e"`
	Time   int64  `json:"E"`
	Symbol string `json:"s"`
	Kline  Kline  `json:"k"`
}

func (e *KlineEvent) EventType() string { return EventKline }

type Kline struct {
	StartTime           int64       `json:"t"`
	CloseTime           int64       `json:"T"`
	Symbol              string      `json:"s"`
	Interval            string      `json:"i"`
	FirstTradeID        int64       `json:"f"`
	LastTradeID         int64       `json:"L"`
	Open                apd.Decimal `json:"o"`
	Close               apd.Decimal `json:"c"`
	High                apd.Decimal `json:"h"`
	Low                 apd.Decimal `json:"l"`
	Volume              apd.Decimal `json:"v"`
	NumTrades           int64       `json:"n"`
	IsFinal             bool        `json:"x"`
	QuoteVolume         apd.Decimal `json:"q"`
	TakerBuyVolume      apd.Decimal `json:"V"`
	TakerBuyQuoteVolume apd.Decimal `json:"Q"`
}

type TickerEvent struct {
	Type               string      `json:"e"`
	Time               int64       `json:"E"`
	Symbol             string      `json:"s"`
	PriceChange        apd.Decimal `json:"p"`
	PriceChangePercent apd.Decimal `json:"P"`
	WeightedAvgPrice   apd.Decimal `json:"w"`
	PrevClosePrice     apd.Decimal `json:"x"`
	LastPrice          apd.Decimal `json:"c"`
	LastQty            apd.Decimal `json:"Q"`
	BidPrice           apd.Decimal `json:"b"`
	BidQty             apd.Decimal `json:"B"`
	AskPrice           apd.Decimal `json:"a"`
	AskQty             apd.Decimal `json:"A"`
	OpenPrice          apd.Decimal `json:"o"`
	HighPrice          apd.Decimal `json:"h"`
	LowPrice           apd.Decimal `json:"l"`
	Volume             apd.Decimal `json:"v"`
	QuoteVolume        apd.Decimal `json:"q"`
	OpenTime           int64       `json:"O"`
	CloseTime          int64       `json:"C"`
	FirstTradeID       int64       `json:"F"`
	LastTradeID        int64       `json:"L"`
	Count              int64       `json:"n"`
}

func (e *TickerEvent) EventType() string { return EventTicker }

type MiniTickerEvent struct {
	Type        string      `json:"e"`
	Time        int64       `json:"E"`
	Symbol      string      `json:"s"`
	ClosePrice  apd.Decimal `json:"c"`
	OpenPrice   apd.Decimal `json:"o"`
	HighPrice   apd.Decimal `json:"h"`
	LowPrice    apd.Decimal `json:"l"`
	Volume      apd.Decimal `json:"v"`
	QuoteVolume apd.Decimal `json:"q"`
}

func (e *MiniTickerEvent) EventType() string { return EventMiniTicker }

// PriceLevel is one [price, quantity] pair of an order book side.
type PriceLevel struct {
	Price    apd.Decimal
	Quantity apd.Decimal
}

// UnmarshalJSON reads the wire form ["price","qty"].
func (l *PriceLevel) UnmarshalJSON(data []byte) error {
	var pair [2]string
	if err := sonic.Unmarshal(data, &pair); err != nil {
		return err
	}
	if _, _, err := l.Price.SetString(pair[0]); err != nil {
		return err
	}
	_, _, err := l.Quantity.SetString(pair[1])
	return err
}

type DepthUpdateEvent struct {
	Type              string       `json:"e"`
	Time              int64        `json:"E"`
	TransactionTime   int64        `json:"T"`
	Symbol            string       `json:"s"`
	FirstUpdateID     int64        `json:"U"`
	FinalUpdateID     int64        `json:"u"`
	PrevFinalUpdateID int64        `json:"pu"`
	Bids              []PriceLevel `json:"b"`
	Asks              []PriceLevel `json:"a"`
}

func (e *DepthUpdateEvent) EventType() string { return EventDepthUpdate }

type BookTickerEvent struct {
	Type            string      `json:"e"`
	Time            int64       `json:"E"`
	TransactionTime int64       `json:"T"`
	UpdateID        int64       `json:"u"`
	Symbol          string      `json:"s"`
	BidPrice        apd.Decimal `json:"b"`
	BidQty          apd.Decimal `json:"B"`
	AskPrice        apd.Decimal `json:"a"`
	AskQty          apd.Decimal `json:"A"`
}

func (e *BookTickerEvent) EventType() string { return EventBookTicker }

type MarkPriceEvent struct {
	Type                 string      `json:"e"`
	Time                 int64       `json:"E"`
	Symbol               string      `json:"s"`
	MarkPrice            apd.Decimal `json:"p"`
	IndexPrice           apd.Decimal `json:"i"`
	EstimatedSettlePrice apd.Decimal `json:"P"`
	FundingRate          apd.Decimal `json:"r"`
	NextFundingTime      int64       `json:"T"`
}

func (e *MarkPriceEvent) EventType() string { return EventMarkPrice }

type AccountPositionEvent struct {
	Type           string         `json:"e"`
	Time           int64          `json:"E"`
	LastUpdateTime int64          `json:"u"`
	Balances       []AssetBalance `json:"B"`
}

func (e *AccountPositionEvent) EventType() string { return EventAccountPosition }

type AssetBalance struct {
	Asset  string      `json:"a"`
	Free   apd.Decimal `json:"f"`
	Locked apd.Decimal `json:"l"`
}

type BalanceUpdateEvent struct {
	Type      string      `json:"e"`
	Time      int64       `json:"E"`
	Asset     string      `json:"a"`
	Delta     apd.Decimal `json:"d"`
	ClearTime int64       `json:"T"`
}

func (e *BalanceUpdateEvent) EventType() string { return EventBalanceUpdate }

type ExecutionReportEvent struct {
	Type                    string      `json:"e"`
	Time                    int64       `json:"E"`
	Symbol                  string      `json:"s"`
	ClientOrderID           string      `json:"c"`
	Side                    string      `json:"S"`
	OrderType               string      `json:"o"`
	TimeInForce             string      `json:"f"`
	Quantity                apd.Decimal `json:"q"`
	Price                   apd.Decimal `json:"p"`
	StopPrice               apd.Decimal `json:"P"`
	IcebergQty              apd.Decimal `json:"F"`
	OrderListID             int64       `json:"g"`
	OrigClientOrderID       string      `json:"C"`
	ExecutionType           string      `json:"x"`
	Status                  string      `json:"X"`
	RejectReason            string      `json:"r"`
	OrderID                 int64       `json:"i"`
	IgnoreI                 int64       `json:"I"`
	LastExecutedQty         apd.Decimal `json:"l"`
	CumulativeQty           apd.Decimal `json:"z"`
	LastExecutedPrice       apd.Decimal `json:"L"`
	Commission              apd.Decimal `json:"n"`
	CommissionAsset         string      `json:"N"`
	TransactionTime         int64       `json:"T"`
	TradeID                 int64       `json:"t"`
	IsWorking               bool        `json:"w"`
	WorkingTime             int64       `json:"W"`
	IsMaker                 bool        `json:"m"`
	IgnoreM                 bool        `json:"M"`
	CreationTime            int64       `json:"O"`
	CumulativeQuoteQty      apd.Decimal `json:"Z"`
	LastQuoteQty            apd.Decimal `json:"Y"`
	QuoteOrderQty           apd.Decimal `json:"Q"`
	SelfTradePreventionMode string      `json:"V"`
	// Set on EXPIRED executions caused by self-trade prevention.
	PreventedMatchID        int64       `json:"v"`
	PreventedQty            apd.Decimal `json:"A"`
	LastPreventedQty        apd.Decimal `json:"B"`
	TradeGroupID            int64       `json:"u"`
	CounterOrderID          int64       `json:"U"`
}

func (e *ExecutionReportEvent) EventType() string { return EventExecutionReport }

type ListStatusEvent struct {
	Type              string          `json:"e"`
	Time              int64           `json:"E"`
	Symbol            string          `json:"s"`
	OrderListID       int64           `json:"g"`
	ContingencyType   string          `json:"c"`
	ListStatusType    string          `json:"l"`
	ListOrderStatus   string          `json:"L"`
	RejectReason      string          `json:"r"`
	ListClientOrderID string          `json:"C"`
	TransactionTime   int64           `json:"T"`
	Orders            []ListOrderItem `json:"O"`
}

func (e *ListStatusEvent) EventType() string { return EventListStatus }

type ListOrderItem struct {
	Symbol        string `json:"s"`
	OrderID       int64  `json:"i"`
	ClientOrderID string `json:"c"`
}

type AccountUpdateEvent struct {
	Type            string        `json:"e"`
	Time            int64         `json:"E"`
	TransactionTime int64         `json:"T"`
	Update          AccountUpdate `json:"a"`
}

func (e *AccountUpdateEvent) EventType() string { return EventAccountUpdate }

type AccountUpdate struct {
	Reason    string            `json:"m"`
	Balances  []FuturesBalance  `json:"B"`
	Positions []FuturesPosition `json:"P"`
}

type FuturesBalance struct {
	Asset              string      `json:"a"`
	WalletBalance      apd.Decimal `json:"wb"`
	CrossWalletBalance apd.Decimal `json:"cw"`
	BalanceChange      apd.Decimal `json:"bc"`
}

type FuturesPosition struct {
	Symbol              string      `json:"s"`
	Amount              apd.Decimal `json:"pa"`
	EntryPrice          apd.Decimal `json:"ep"`
	AccumulatedRealized apd.Decimal `json:"cr"`
	UnrealizedPnL       apd.Decimal `json:"up"`
	MarginType          string      `json:"mt"`
	IsolatedWallet      apd.Decimal `json:"iw"`
	PositionSide        string      `json:"ps"`
}

type OrderTradeUpdateEvent struct {
	Type            string           `json:"e"`
	Time            int64            `json:"E"`
	TransactionTime int64            `json:"T"`
	Order           OrderTradeUpdate `json:"o"`
}

func (e *OrderTradeUpdateEvent) EventType() string { return EventOrderTradeUpdate }

type OrderTradeUpdate struct {
	Symbol          string      `json:"s"`
	ClientOrderID   string      `json:"c"`
	Side            string      `json:"S"`
	OrderType       string      `json:"o"`
	TimeInForce     string      `json:"f"`
	OrigQty         apd.Decimal `json:"q"`
	OrigPrice       apd.Decimal `json:"p"`
	AvgPrice        apd.Decimal `json:"ap"`
	StopPrice       apd.Decimal `json:"sp"`
	ExecutionType   string      `json:"x"`
	Status          string      `json:"X"`
	OrderID         int64       `json:"i"`
	LastFilledQty   apd.Decimal `json:"l"`
	FilledQty       apd.Decimal `json:"z"`
	LastFilledPrice apd.Decimal `json:"L"`
	CommissionAsset string      `json:"N"`
	Commission      apd.Decimal `json:"n"`
	TradeTime       int64       `json:"T"`
	TradeID         int64       `json:"t"`
	BidsNotional    apd.Decimal `json:"b"`
	AsksNotional    apd.Decimal `json:"a"`
	IsMaker         bool        `json:"m"`
	IsReduceOnly    bool        `json:"R"`
	WorkingType     string      `json:"wt"`
	OrigType        string      `json:"ot"`
	PositionSide    string      `json:"ps"`
	ClosePosition   bool        `json:"cp"`
	ActivationPrice apd.Decimal `json:"AP"`
	CallbackRate    apd.Decimal `json:"cr"`
	RealizedProfit  apd.Decimal `json:"rp"`
}

type ListenKeyExpiredEvent struct {
	Type      string `json:"e"`
	Time      int64  `json:"E"`
	ListenKey string `json:"listenKey"`
}

func (e *ListenKeyExpiredEvent) EventType() string { return EventListenKeyExpired }

// BatchEvent holds the elements of an array frame such as !ticker@arr, in order.
type BatchEvent struct {
	Events []Event
}

func (e *BatchEvent) EventType() string { return EventBatch }
