package spot

import (
	"context"
	"fmt"
	"net/http"

	"tradewire/pkg/core"
)

// Account covers signed account queries.
type Account struct {
	*service
}

// OrderQuery identifies one order by exchange or client id.
type OrderQuery struct {
	Symbol            string `validate:"required"`
	OrderID           int64  `validate:"required_without=OrigClientOrderID"`
	OrigClientOrderID string `validate:"required_without=OrderID"`
}

func (q *OrderQuery) params() core.Params {
	params := symbolParams(q.Symbol)
	if q.OrderID != 0 {
		params = params.AddInt("orderId", q.OrderID)
	}
	return params.AddOptional("origClientOrderId", q.OrigClientOrderID)
}

// HistoryQuery pages through orders or fills. FromID applies to fills only;
// OrderID starts an order listing at that id or restricts fills to that order.
type HistoryQuery struct {
	OrderID int64
	FromID  int64
	RangeQuery
}

func (q HistoryQuery) apply(p core.Params) core.Params {
	if q.OrderID != 0 {
		p = p.AddInt("orderId", q.OrderID)
	}
	p = q.RangeQuery.apply(p)
	if q.FromID != 0 {
		p = p.AddInt("fromId", q.FromID)
	}
	return p
}

// AccountInformation returns commissions, permissions and balances.
func (a *Account) AccountInformation(ctx context.Context) (*AccountInformation, error) {
	var out AccountInformation
	if err := a.do(ctx, http.MethodGet, RouteAccount, nil, core.ModeSigned, 20, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// QueryOrder returns the state of one order.
func (a *Account) QueryOrder(ctx context.Context, q *OrderQuery) (*Order, error) {
	if err := validate.Struct(q); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOrder, err)
	}

	var out Order
	if err := a.do(ctx, http.MethodGet, RouteOrder, q.params(), core.ModeSigned, 4, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// OpenOrders lists open orders of symbol, or of every symbol when it is empty.
func (a *Account) OpenOrders(ctx context.Context, symbol string) ([]Order, error) {
	params := core.Params{}
	weight := 80
	if symbol != "" {
		params = symbolParams(symbol)
		weight = 6
	}

	var out []Order
	if err := a.do(ctx, http.MethodGet, RouteOpenOrders, params, core.ModeSigned, weight, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AllOrders lists active, canceled and filled orders of symbol.
func (a *Account) AllOrders(ctx context.Context, symbol string, q HistoryQuery) ([]Order, error) {
	q.FromID = 0

	var out []Order
	if err := a.do(ctx, http.MethodGet, RouteAllOrders, q.apply(symbolParams(symbol)), core.ModeSigned, 20, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MyTrades lists the account's fills on symbol.
func (a *Account) MyTrades(ctx context.Context, symbol string, q HistoryQuery) ([]MyTrade, error) {
	var out []MyTrade
	if err := a.do(ctx, http.MethodGet, RouteMyTrades, q.apply(symbolParams(symbol)), core.ModeSigned, 20, &out); err != nil {
		return nil, err
	}
	return out, nil
}
