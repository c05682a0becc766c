package futures

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"

	"tradewire/pkg/core"
)

// OrderBuilder assembles an OrderRequest fluently. The first parse error
// sticks and is reported by Build.
//
//	order, err := futures.NewOrderBuilder("BTCUSDT").
//	    Buy().
//	    Limit().
//	    Price("50000").
//	    Quantity("0.001").
//	    Build()
type OrderBuilder struct {
	order OrderRequest
	err   error
}

func NewOrderBuilder(symbol string) *OrderBuilder {
	return &OrderBuilder{order: OrderRequest{Symbol: symbol}}
}

func (b *OrderBuilder) Side(side core.OrderSide) *OrderBuilder {
	b.order.Side = side
	return b
}

func (b *OrderBuilder) Buy() *OrderBuilder  { return b.Side(core.SideBuy) }
func (b *OrderBuilder) Sell() *OrderBuilder { return b.Side(core.SideSell) }

func (b *OrderBuilder) Type(orderType core.OrderType) *OrderBuilder {
	b.order.Type = orderType
	return b
}

func (b *OrderBuilder) Limit() *OrderBuilder  { return b.Type(core.TypeLimit) }
func (b *OrderBuilder) Market() *OrderBuilder { return b.Type(core.TypeMarket) }

// StopMarket sets a STOP_MARKET trigger at stopPrice.
func (b *OrderBuilder) StopMarket(stopPrice string) *OrderBuilder {
	b.order.Type = core.TypeStopMarket
	b.order.StopPrice = b.parse("stop price", stopPrice)
	return b
}

// TrailingStop sets a TRAILING_STOP_MARKET order with a callback rate in percent.
func (b *OrderBuilder) TrailingStop(callbackRate string) *OrderBuilder {
	b.order.Type = core.TypeTrailingStopMarket
	b.order.CallbackRate = b.parse("callback rate", callbackRate)
	return b
}

func (b *OrderBuilder) Price(price string) *OrderBuilder {
	b.order.Price = b.parse("price", price)
	return b
}

func (b *OrderBuilder) PriceDecimal(price *apd.Decimal) *OrderBuilder {
	b.order.Price = price
	return b
}

func (b *OrderBuilder) Quantity(qty string) *OrderBuilder {
	b.order.Quantity = b.parse("quantity", qty)
	return b
}

func (b *OrderBuilder) QuantityDecimal(qty *apd.Decimal) *OrderBuilder {
	b.order.Quantity = qty
	return b
}

func (b *OrderBuilder) TimeInForce(tif core.TimeInForce) *OrderBuilder {
	b.order.TimeInForce = tif
	return b
}

func (b *OrderBuilder) GTC() *OrderBuilder { return b.TimeInForce(core.GTC) }
func (b *OrderBuilder) IOC() *OrderBuilder { return b.TimeInForce(core.IOC) }
func (b *OrderBuilder) FOK() *OrderBuilder { return b.TimeInForce(core.FOK) }

// PostOnly sets GTX.
func (b *OrderBuilder) PostOnly() *OrderBuilder { return b.TimeInForce(core.GTX) }

func (b *OrderBuilder) PositionSide(side core.PositionSide) *OrderBuilder {
	b.order.PositionSide = side
	return b
}

func (b *OrderBuilder) ReduceOnly() *OrderBuilder {
	b.order.ReduceOnly = true
	return b
}

// ClosePosition closes the whole position when the stop triggers; no quantity is needed.
func (b *OrderBuilder) ClosePosition() *OrderBuilder {
	b.order.ClosePosition = true
	return b
}

func (b *OrderBuilder) WorkingType(wt core.WorkingType) *OrderBuilder {
	b.order.WorkingType = wt
	return b
}

// ClientOrderID sets newClientOrderId. An empty id generates one.
func (b *OrderBuilder) ClientOrderID(id string) *OrderBuilder {
	if id == "" {
		id = NewClientOrderID()
	}
	b.order.NewClientOrderID = id
	return b
}

func (b *OrderBuilder) RecvWindow(window uint64) *OrderBuilder {
	b.order.RecvWindow = window
	return b
}

// Build validates and returns the order.
func (b *OrderBuilder) Build() (*OrderRequest, error) {
	if b.err != nil {
		return nil, b.err
	}
	order := b.order
	if err := order.Validate(); err != nil {
		return nil, err
	}
	for _, d := range []*apd.Decimal{order.Quantity, order.Price} {
		if d != nil && (d.Negative || d.IsZero()) {
			return nil, fmt.Errorf("%w: quantity and price must be positive", ErrInvalidOrder)
		}
	}
	return &order, nil
}

func (b *OrderBuilder) parse(field, s string) *apd.Decimal {
	if b.err != nil {
		return nil
	}
	d, _, err := apd.NewFromString(s)
	if err != nil {
		b.err = fmt.Errorf("%w: parse %s: %w", ErrInvalidOrder, field, err)
		return nil
	}
	return d
}
