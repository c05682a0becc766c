package spot

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/cockroachdb/apd/v3"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"tradewire/internal/ratelimit"
	"tradewire/pkg/core"
)

// ErrInvalidOrder wraps every client-side order validation failure. Nothing
// is sent when it is returned.
var ErrInvalidOrder = errors.New("invalid order")

var validate = validator.New()

// ResponseType selects how much of the order state a placement returns.
type ResponseType string

const (
	ResponseAck    ResponseType = "ACK"
	ResponseResult ResponseType = "RESULT"
	ResponseFull   ResponseType = "FULL"
)

// CancelReplaceMode decides whether the new order is placed when the cancel
// fails.
type CancelReplaceMode string

const (
	StopOnFailure CancelReplaceMode = "STOP_ON_FAILURE"
	AllowFailure  CancelReplaceMode = "ALLOW_FAILURE"
)

// Trade covers signed order placement and cancellation.
type Trade struct {
	*service
}

// OrderRequest describes a new spot order. Decimal fields left nil are omitted.
type OrderRequest struct {
	Symbol      string           `validate:"required"`
	Side        core.OrderSide   `validate:"required,oneof=BUY SELL"`
	Type        core.OrderType   `validate:"required,oneof=LIMIT MARKET STOP_LOSS STOP_LOSS_LIMIT TAKE_PROFIT TAKE_PROFIT_LIMIT LIMIT_MAKER"`
	TimeInForce core.TimeInForce `validate:"omitempty,oneof=GTC IOC FOK"`
	Quantity    *apd.Decimal
	// QuoteOrderQty spends or receives this much quote asset; MARKET only.
	QuoteOrderQty           *apd.Decimal
	Price                   *apd.Decimal
	NewClientOrderID        string `validate:"omitempty,max=36"`
	StopPrice               *apd.Decimal
	IcebergQty              *apd.Decimal
	NewOrderRespType        ResponseType `validate:"omitempty,oneof=ACK RESULT FULL"`
	SelfTradePreventionMode string       `validate:"omitempty,oneof=NONE EXPIRE_TAKER EXPIRE_MAKER EXPIRE_BOTH DECREMENT"`
	// RecvWindow overrides the client default when greater than zero.
	RecvWindow uint64
}

func limitType(t core.OrderType) bool {
	return t == core.TypeLimit || t == core.TypeStopLossLimit || t == core.TypeTakeProfitLimit
}

// Validate checks the fields the order type requires.
func (o *OrderRequest) Validate() error {
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidOrder, err)
	}

	switch o.Type {
	case core.TypeMarket:
		if (o.Quantity == nil) == (o.QuoteOrderQty == nil) {
			return fmt.Errorf("%w: MARKET order takes exactly one of quantity and quoteOrderQty", ErrInvalidOrder)
		}
	default:
		if o.Quantity == nil {
			return fmt.Errorf("%w: %s order requires a quantity", ErrInvalidOrder, o.Type)
		}
		if o.QuoteOrderQty != nil {
			return fmt.Errorf("%w: quoteOrderQty is only valid for MARKET orders", ErrInvalidOrder)
		}
	}

	if (limitType(o.Type) || o.Type == core.TypeLimitMaker) && o.Price == nil {
		return fmt.Errorf("%w: %s order requires a price", ErrInvalidOrder, o.Type)
	}
	switch o.Type {
	case core.TypeStopLoss, core.TypeStopLossLimit, core.TypeTakeProfit, core.TypeTakeProfitLimit:
		if o.StopPrice == nil {
			return fmt.Errorf("%w: %s order requires a stop price", ErrInvalidOrder, o.Type)
		}
	case core.TypeLimitMaker:
		if o.TimeInForce != "" {
			return fmt.Errorf("%w: LIMIT_MAKER order takes no time in force", ErrInvalidOrder)
		}
	}

	for _, d := range []*apd.Decimal{o.Quantity, o.QuoteOrderQty, o.Price, o.StopPrice, o.IcebergQty} {
		if d != nil && (d.Negative || d.IsZero()) {
			return fmt.Errorf("%w: quantities and prices must be positive", ErrInvalidOrder)
		}
	}
	return nil
}

// Params renders the order in wire order. Limit-priced orders without a time
// in force default to GTC.
func (o *OrderRequest) Params() core.Params {
	tif := o.TimeInForce
	if tif == "" && limitType(o.Type) {
		tif = core.GTC
	}

	return core.Params{}.
		Add("symbol", core.NormalizeSymbol(o.Symbol)).
		Add("side", string(o.Side)).
		Add("type", string(o.Type)).
		AddOptional("timeInForce", string(tif)).
		AddDecimal("quantity", o.Quantity).
		AddDecimal("quoteOrderQty", o.QuoteOrderQty).
		AddDecimal("price", o.Price).
		AddOptional("newClientOrderId", o.NewClientOrderID).
		AddDecimal("stopPrice", o.StopPrice).
		AddDecimal("icebergQty", o.IcebergQty).
		AddOptional("newOrderRespType", string(o.NewOrderRespType)).
		AddOptional("selfTradePreventionMode", o.SelfTradePreventionMode)
}

// NewClientOrderID returns a fresh id accepted by the newClientOrderId field.
func NewClientOrderID() string {
	return uuid.NewString()
}

func (t *Trade) send(ctx context.Context, method string, route Route, params core.Params, recvWindow uint64, out any) error {
	req, err := t.newRequest(method, route)
	if err != nil {
		return err
	}
	req.SetParams(params).
		SetSigned().
		SetRecvWindow(recvWindow).
		SetBucket(ratelimit.BucketOrders)
	return t.http.Do(ctx, req, out)
}

// TestOrder validates order and has the server check it without placing it.
func (t *Trade) TestOrder(ctx context.Context, order *OrderRequest) error {
	if err := order.Validate(); err != nil {
		return err
	}
	return t.send(ctx, http.MethodPost, RouteOrderTest, order.Params(), order.RecvWindow, nil)
}

// PlaceOrder validates and submits order.
func (t *Trade) PlaceOrder(ctx context.Context, order *OrderRequest) (*OrderResponse, error) {
	if err := order.Validate(); err != nil {
		return nil, err
	}

	var out OrderResponse
	if err := t.send(ctx, http.MethodPost, RouteOrder, order.Params(), order.RecvWindow, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LimitBuy places a LIMIT BUY order.
func (t *Trade) LimitBuy(ctx context.Context, symbol string, qty, price *apd.Decimal, tif core.TimeInForce) (*OrderResponse, error) {
	return t.PlaceOrder(ctx, &OrderRequest{
		Symbol:      symbol,
		Side:        core.SideBuy,
		Type:        core.TypeLimit,
		TimeInForce: tif,
		Quantity:    qty,
		Price:       price,
	})
}

// LimitSell places a LIMIT SELL order.
func (t *Trade) LimitSell(ctx context.Context, symbol string, qty, price *apd.Decimal, tif core.TimeInForce) (*OrderResponse, error) {
	return t.PlaceOrder(ctx, &OrderRequest{
		Symbol:      symbol,
		Side:        core.SideSell,
		Type:        core.TypeLimit,
		TimeInForce: tif,
		Quantity:    qty,
		Price:       price,
	})
}

// MarketBuy places a MARKET BUY order for qty of the base asset.
func (t *Trade) MarketBuy(ctx context.Context, symbol string, qty *apd.Decimal) (*OrderResponse, error) {
	return t.PlaceOrder(ctx, &OrderRequest{
		Symbol:   symbol,
		Side:     core.SideBuy,
		Type:     core.TypeMarket,
		Quantity: qty,
	})
}

// MarketBuyQuote places a MARKET BUY order spending quoteQty of the quote asset.
func (t *Trade) MarketBuyQuote(ctx context.Context, symbol string, quoteQty *apd.Decimal) (*OrderResponse, error) {
	return t.PlaceOrder(ctx, &OrderRequest{
		Symbol:        symbol,
		Side:          core.SideBuy,
		Type:          core.TypeMarket,
		QuoteOrderQty: quoteQty,
	})
}

// MarketSell places a MARKET SELL order for qty of the base asset.
func (t *Trade) MarketSell(ctx context.Context, symbol string, qty *apd.Decimal) (*OrderResponse, error) {
	return t.PlaceOrder(ctx, &OrderRequest{
		Symbol:   symbol,
		Side:     core.SideSell,
		Type:     core.TypeMarket,
		Quantity: qty,
	})
}

// CancelRequest identifies the order to cancel by exchange or client id.
type CancelRequest struct {
	Symbol            string `validate:"required"`
	OrderID           int64  `validate:"required_without=OrigClientOrderID"`
	OrigClientOrderID string `validate:"required_without=OrderID"`
	// NewClientOrderID names the cancellation itself.
	NewClientOrderID string `validate:"omitempty,max=36"`
	// RecvWindow overrides the client default when greater than zero.
	RecvWindow uint64
}

// CancelOrder cancels one open order.
func (t *Trade) CancelOrder(ctx context.Context, cancel *CancelRequest) (*CanceledOrder, error) {
	if err := validate.Struct(cancel); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOrder, err)
	}

	params := symbolParams(cancel.Symbol)
	if cancel.OrderID != 0 {
		params = params.AddInt("orderId", cancel.OrderID)
	}
	params = params.AddOptional("origClientOrderId", cancel.OrigClientOrderID).
		AddOptional("newClientOrderId", cancel.NewClientOrderID)

	var out CanceledOrder
	if err := t.send(ctx, http.MethodDelete, RouteOrder, params, cancel.RecvWindow, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CancelAllOpenOrders cancels every open order of symbol and returns them.
func (t *Trade) CancelAllOpenOrders(ctx context.Context, symbol string) ([]CanceledOrder, error) {
	var out []CanceledOrder
	if err := t.send(ctx, http.MethodDelete, RouteOpenOrders, symbolParams(symbol), 0, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CancelReplaceRequest cancels an open order and places Order in one call.
// The canceled order must be on Order.Symbol.
type CancelReplaceRequest struct {
	Mode                    CancelReplaceMode `validate:"required,oneof=STOP_ON_FAILURE ALLOW_FAILURE"`
	CancelOrderID           int64             `validate:"required_without=CancelOrigClientOrderID"`
	CancelOrigClientOrderID string            `validate:"required_without=CancelOrderID"`
	CancelNewClientOrderID  string            `validate:"omitempty,max=36"`
	Order                   OrderRequest
}

// CancelReplace cancels and replaces an order. When either half fails the
// server answers with an error status, returned as *core.APIError.
func (t *Trade) CancelReplace(ctx context.Context, r *CancelReplaceRequest) (*CancelReplaceResult, error) {
	if err := validate.StructExcept(r, "Order"); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOrder, err)
	}
	if err := r.Order.Validate(); err != nil {
		return nil, err
	}

	params := r.Order.Params().
		Add("cancelReplaceMode", string(r.Mode)).
		AddOptional("cancelNewClientOrderId", r.CancelNewClientOrderID).
		AddOptional("cancelOrigClientOrderId", r.CancelOrigClientOrderID)
	if r.CancelOrderID != 0 {
		params = params.AddInt("cancelOrderId", r.CancelOrderID)
	}

	var out CancelReplaceResult
	if err := t.send(ctx, http.MethodPost, RouteCancelReplace, params, r.Order.RecvWindow, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
