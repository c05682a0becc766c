package core

import "strings"

// OrderSide represents the direction of an order (buy or sell).
type OrderSide string

// Order side constants define the direction of a trade.
const (
	// SideBuy indicates an order to purchase a contract.
	SideBuy OrderSide = "BUY"
	// SideSell indicates an order to sell a contract.
	SideSell OrderSide = "SELL"
)

// OrderType represents the type of order to place.
type OrderType string

// Order type constants define how an order is executed.
const (
	// TypeLimit executes at a specified price or better.
	TypeLimit OrderType = "LIMIT"
	// TypeMarket executes immediately at the best available price.
	TypeMarket OrderType = "MARKET"
	// TypeStop triggers a limit order when the stop price is reached.
	TypeStop OrderType = "STOP"
	// TypeStopMarket triggers a market order when the stop price is reached.
	TypeStopMarket OrderType = "STOP_MARKET"
	// TypeTakeProfit triggers a limit order when the target is reached.
	TypeTakeProfit OrderType = "TAKE_PROFIT"
	// TypeTakeProfitMarket triggers a market order when the target is reached.
	TypeTakeProfitMarket OrderType = "TAKE_PROFIT_MARKET"
	// TypeTrailingStopMarket follows the price by a callback rate.
	TypeTrailingStopMarket OrderType = "TRAILING_STOP_MARKET"

	// Spot only.
	TypeStopLoss        OrderType = "STOP_LOSS"
	TypeStopLossLimit   OrderType = "STOP_LOSS_LIMIT"
	TypeTakeProfitLimit OrderType = "TAKE_PROFIT_LIMIT"
	// TypeLimitMaker is rejected when it would match immediately.
	TypeLimitMaker OrderType = "LIMIT_MAKER"
)

// RequiresPrice reports whether the order type needs a limit price.
func (t OrderType) RequiresPrice() bool {
	return t == TypeLimit || t == TypeStop || t == TypeTakeProfit
}

// OrderStatus represents the current state of an order.
type OrderStatus string

// Order status constants track the lifecycle of an order.
const (
	StatusNew             OrderStatus = "NEW"
	StatusPartiallyFilled OrderStatus = "PARTIALLY_FILLED"
	StatusFilled          OrderStatus = "FILLED"
	StatusCanceled        OrderStatus = "CANCELED"
	StatusRejected        OrderStatus = "REJECTED"
	StatusExpired         OrderStatus = "EXPIRED"
	StatusNewInsurance    OrderStatus = "NEW_INSURANCE"
	StatusNewADL          OrderStatus = "NEW_ADL"
)

// IsTerminal returns true if the order has reached a final state.
// Terminal states are filled, canceled, rejected, and expired.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusFilled || s == StatusCanceled || s == StatusRejected || s == StatusExpired
}

// TimeInForce defines how long an order remains active.
type TimeInForce string

// Time in force constants define order lifetime behavior.
const (
	// GTC (Good Till Canceled) keeps the order active until filled or canceled.
	GTC TimeInForce = "GTC"
	// IOC (Immediate Or Cancel) requires immediate execution; unfilled portion is canceled.
	IOC TimeInForce = "IOC"
	// FOK (Fill Or Kill) requires complete immediate execution or cancellation.
	FOK TimeInForce = "FOK"
	// GTX (Good Till Crossing) is post-only.
	GTX TimeInForce = "GTX"
)

// PositionSide selects the leg of a hedge-mode position.
type PositionSide string

const (
	PositionBoth  PositionSide = "BOTH"
	PositionLong  PositionSide = "LONG"
	PositionShort PositionSide = "SHORT"
)

// WorkingType is the price stop orders are triggered against.
type WorkingType string

const (
	WorkingMarkPrice     WorkingType = "MARK_PRICE"
	WorkingContractPrice WorkingType = "CONTRACT_PRICE"
)

// NormalizeSymbol upper-cases a symbol for REST parameters. Stream topics use
// the lower-case form instead.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
