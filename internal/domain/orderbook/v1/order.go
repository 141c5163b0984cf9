package orderbookv1

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidQuantity is returned when a submission carries a zero quantity.
	ErrInvalidQuantity = errors.New("quantity must be positive")
	// ErrInvalidPrice is returned when a submission carries a zero price.
	ErrInvalidPrice = errors.New("price must be positive")
	// ErrInvalidSide is returned when a side string cannot be parsed.
	ErrInvalidSide = errors.New("side must be buy or sell")
)

// Side identifies which half of the book an order belongs to.
type Side uint8

const (
	// SideBuy marks a bid.
	SideBuy Side = iota
	// SideSell marks an ask.
	SideSell
)

// String renders the side the way it appears in the event trail.
func (s Side) String() string {
	if s == SideBuy {
		return "Buy"
	}
	return "Sell"
}

// Opposite returns the side an incoming order matches against.
func (s Side) Opposite() Side {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}

// ParseSide parses a wire-format side string.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(s) {
	case "buy", "bid":
		return SideBuy, nil
	case "sell", "ask":
		return SideSell, nil
	default:
		return 0, fmt.Errorf("%w: got %q", ErrInvalidSide, s)
	}
}

// OrderType represents the type of order.
// Only limit orders are exercised by the matching path; the remaining
// variants are accepted on the wire and skipped by the engine.
type OrderType string

const (
	// OrderTypeLimit represents a limit order.
	OrderTypeLimit OrderType = "limit"
	// OrderTypeMarket represents a market order.
	OrderTypeMarket OrderType = "market"
	// OrderTypeIOC represents an immediate-or-cancel order.
	OrderTypeIOC OrderType = "ioc"
	// OrderTypeFOK represents a fill-or-kill order.
	OrderTypeFOK OrderType = "fok"
)

// Order is a single order in the book. Prices and quantities are integers
// in minimal ticks; the matching path never touches floating point.
type Order struct {
	ID        uint64 `json:"id"`
	Side      Side   `json:"side"`
	Price     uint64 `json:"price"`
	Qty       uint64 `json:"qty"`  // original quantity, immutable
	Rest      uint64 `json:"rest"` // remaining quantity, decremented by matching only
	Timestamp int64  `json:"timestamp"`
}

// IsBuy checks if the order is a bid.
func (o *Order) IsBuy() bool {
	return o.Side == SideBuy
}

// IsFilled checks if the order has no remaining quantity.
func (o *Order) IsFilled() bool {
	return o.Rest == 0
}

// SubmitRequest is the wire format consumed from the orders topic.
type SubmitRequest struct {
	Type  OrderType `json:"type"`
	Side  string    `json:"side"`
	Price uint64    `json:"price"`
	Qty   uint64    `json:"qty"`

	Offset int64 `json:"-"` // position of the request in the stream
}
