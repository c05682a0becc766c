package futures

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

// Account covers signed trading and account endpoints.
type Account struct {
	*service
}

// OrderRequest describes a new order. Decimal fields left nil are omitted.
type OrderRequest struct {
	Symbol           string            `validate:"required"`
	Side             core.OrderSide    `validate:"required,oneof=BUY SELL"`
	PositionSide     core.PositionSide `validate:"omitempty,oneof=BOTH LONG SHORT"`
	Type             core.OrderType    `validate:"required,oneof=LIMIT MARKET STOP STOP_MARKET TAKE_PROFIT TAKE_PROFIT_MARKET TRAILING_STOP_MARKET"`
	TimeInForce      core.TimeInForce  `validate:"omitempty,oneof=GTC IOC FOK GTX"`
	Quantity         *apd.Decimal
	ReduceOnly       bool
	Price            *apd.Decimal
	StopPrice        *apd.Decimal
	ClosePosition    bool
	ActivationPrice  *apd.Decimal
	CallbackRate     *apd.Decimal
	WorkingType      core.WorkingType `validate:"omitempty,oneof=MARK_PRICE CONTRACT_PRICE"`
	PriceProtect     bool
	NewClientOrderID string `validate:"omitempty,max=36"`
	// RecvWindow overrides the client default when greater than zero.
	RecvWindow uint64
}

// Validate checks the fields the order type requires.
func (o *OrderRequest) Validate() error {
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidOrder, err)
	}
	if o.Quantity == nil && !o.ClosePosition {
		return fmt.Errorf("%w: quantity is required unless closePosition is set", ErrInvalidOrder)
	}
	if o.Type.RequiresPrice() && o.Price == nil {
		return fmt.Errorf("%w: %s order requires a price", ErrInvalidOrder, o.Type)
	}
	switch o.Type {
	case core.TypeStop, core.TypeStopMarket, core.TypeTakeProfit, core.TypeTakeProfitMarket:
		if o.StopPrice == nil {
			return fmt.Errorf("%w: %s order requires a stop price", ErrInvalidOrder, o.Type)
		}
	case core.TypeTrailingStopMarket:
		if o.CallbackRate == nil {
			return fmt.Errorf("%w: %s order requires a callback rate", ErrInvalidOrder, o.Type)
		}
	}
	return nil
}

// Params renders the order in wire order. LIMIT orders without a time in
// force default to GTC.
func (o *OrderRequest) Params() core.Params {
	tif := o.TimeInForce
	if tif == "" && o.Type == core.TypeLimit {
		tif = core.GTC
	}

	p := core.Params{}.
		Add("symbol", core.NormalizeSymbol(o.Symbol)).
		Add("side", string(o.Side)).
		AddOptional("positionSide", string(o.PositionSide)).
		Add("type", string(o.Type)).
		AddOptional("timeInForce", string(tif)).
		AddDecimal("quantity", o.Quantity)
	if o.ReduceOnly {
		p = p.AddBool("reduceOnly", true)
	}
	p = p.AddDecimal("price", o.Price).
		AddOptional("newClientOrderId", o.NewClientOrderID).
		AddDecimal("stopPrice", o.StopPrice)
	if o.ClosePosition {
		p = p.AddBool("closePosition", true)
	}
	p = p.AddDecimal("activationPrice", o.ActivationPrice).
		AddDecimal("callbackRate", o.CallbackRate).
		AddOptional("workingType", string(o.WorkingType))
	if o.PriceProtect {
		p = p.Add("priceProtect", "TRUE")
	}
	return p
}

// NewClientOrderID returns a fresh id accepted by the newClientOrderId field.
func NewClientOrderID() string {
	return uuid.NewString()
}

// PlaceOrder validates and submits order.
func (a *Account) PlaceOrder(ctx context.Context, order *OrderRequest) (*Order, error) {
	if err := order.Validate(); err != nil {
		return nil, err
	}

	req, err := a.newRequest(http.MethodPost, RouteOrder)
	if err != nil {
		return nil, err
	}
	req.SetParams(order.Params()).
		SetSigned().
		SetRecvWindow(order.RecvWindow).
		SetBucket(ratelimit.BucketOrders)

	var out Order
	if err := a.http.Do(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LimitBuy places a LIMIT BUY order.
func (a *Account) LimitBuy(ctx context.Context, symbol string, qty, price *apd.Decimal, tif core.TimeInForce) (*Order, error) {
	return a.PlaceOrder(ctx, &OrderRequest{
		Symbol:      symbol,
		Side:        core.SideBuy,
		Type:        core.TypeLimit,
		TimeInForce: tif,
		Quantity:    qty,
		Price:       price,
	})
}

// LimitSell places a LIMIT SELL order.
func (a *Account) LimitSell(ctx context.Context, symbol string, qty, price *apd.Decimal, tif core.TimeInForce) (*Order, error) {
	return a.PlaceOrder(ctx, &OrderRequest{
		Symbol:      symbol,
		Side:        core.SideSell,
		Type:        core.TypeLimit,
		TimeInForce: tif,
		Quantity:    qty,
		Price:       price,
	})
}

// MarketBuy places a MARKET BUY order.
func (a *Account) MarketBuy(ctx context.Context, symbol string, qty *apd.Decimal) (*Order, error) {
	return a.PlaceOrder(ctx, &OrderRequest{
		Symbol:   symbol,
		Side:     core.SideBuy,
		Type:     core.TypeMarket,
		Quantity: qty,
	})
}

// MarketSell places a MARKET SELL order.
func (a *Account) MarketSell(ctx context.Context, symbol string, qty *apd.Decimal) (*Order, error) {
	return a.PlaceOrder(ctx, &OrderRequest{
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
	// RecvWindow overrides the client default when greater than zero.
	RecvWindow uint64
}

// CancelOrder cancels one open order.
func (a *Account) CancelOrder(ctx context.Context, cancel *CancelRequest) (*Order, error) {
	if err := validate.Struct(cancel); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOrder, err)
	}

	params := symbolParams(cancel.Symbol)
	if cancel.OrderID != 0 {
		params = params.AddInt("orderId", cancel.OrderID)
	}
	params = params.AddOptional("origClientOrderId", cancel.OrigClientOrderID)

	req, err := a.newRequest(http.MethodDelete, RouteOrder)
	if err != nil {
		return nil, err
	}
	req.SetParams(params).
		SetSigned().
		SetRecvWindow(cancel.RecvWindow).
		SetBucket(ratelimit.BucketOrders)

	var out Order
	if err := a.http.Do(ctx, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// OpenOrders lists open orders of symbol, or of every symbol when it is empty.
func (a *Account) OpenOrders(ctx context.Context, symbol string) ([]Order, error) {
	params := core.Params{}
	weight := 40
	if symbol != "" {
		params = symbolParams(symbol)
		weight = 1
	}

	var out []Order
	if err := a.do(ctx, http.MethodGet, RouteOpenOrders, params, core.ModeSigned, weight, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CancelAllOpenOrders cancels every open order of symbol.
func (a *Account) CancelAllOpenOrders(ctx context.Context, symbol string) error {
	return a.do(ctx, http.MethodDelete, RouteAllOpenOrders, symbolParams(symbol), core.ModeSigned, 1, nil)
}

// PositionInformation returns position risk of symbol, or of every symbol
// when it is empty.
func (a *Account) PositionInformation(ctx context.Context, symbol string) ([]Position, error) {
	params := core.Params{}.AddOptional("symbol", core.NormalizeSymbol(symbol))

	var out []Position
	if err := a.do(ctx, http.MethodGet, RoutePositionRisk, params, core.ModeSigned, 5, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AccountInformation returns balances, margins and positions.
func (a *Account) AccountInformation(ctx context.Context) (*AccountInformation, error) {
	var out AccountInformation
	if err := a.do(ctx, http.MethodGet, RouteAccount, nil, core.ModeSigned, 5, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AccountBalance returns the balance of every margin asset.
func (a *Account) AccountBalance(ctx context.Context) ([]AccountBalance, error) {
	var out []AccountBalance
	if err := a.do(ctx, http.MethodGet, RouteBalance, nil, core.ModeSigned, 5, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ChangeInitialLeverage sets the initial leverage of symbol, from 1 to 125.
func (a *Account) ChangeInitialLeverage(ctx context.Context, symbol string, leverage int) (*LeverageChange, error) {
	if leverage < 1 || leverage > 125 {
		return nil, fmt.Errorf("%w: leverage %d out of range 1..125", ErrInvalidOrder, leverage)
	}
	params := symbolParams(symbol).AddInt("leverage", int64(leverage))

	var out LeverageChange
	if err := a.do(ctx, http.MethodPost, RouteChangeInitialLeverage, params, core.ModeSigned, 1, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChangePositionMode switches between hedge (dual side) and one-way mode.
func (a *Account) ChangePositionMode(ctx context.Context, dualSidePosition bool) error {
	params := core.Params{}.AddBool("dualSidePosition", dualSidePosition)
	return a.do(ctx, http.MethodPost, RoutePositionSide, params, core.ModeSigned, 1, nil)
}

// ChangeMultiAssetsMode toggles multi-assets margin. Only linear contracts
// support it; inverse clients get *core.UnsupportedRouteError.
func (a *Account) ChangeMultiAssetsMode(ctx context.Context, multiAssetsMargin bool) error {
	params := core.Params{}.AddBool("multiAssetsMargin", multiAssetsMargin)
	return a.do(ctx, http.MethodPost, RouteMultiAssetsMargin, params, core.ModeSigned, 1, nil)
}
