package orderbookv1

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyLevel is returned when reducing the front of a level with no orders.
	ErrEmptyLevel = errors.New("level has no orders")
	// ErrReduceExceedsRest is returned when a reduction is larger than the front order's rest.
	ErrReduceExceedsRest = errors.New("reduction exceeds front order rest")
	// ErrSideMismatch is returned when an order is appended to a level on the wrong book side.
	ErrSideMismatch = errors.New("order side does not match book side")
	// ErrPriceMismatch is returned when an order is appended to a level at a different price.
	ErrPriceMismatch = errors.New("order price does not match level price")
)

// Level is one price level: a price and the FIFO queue of orders resting at it.
// Oldest order first. A level with an empty queue must not stay in the book.
type Level struct {
	Price  uint64   `json:"price"`
	Orders []*Order `json:"orders"`
	Volume uint64   `json:"volume"`
}

// NewLevel creates an empty level at the given price.
func NewLevel(price uint64) *Level {
	return &Level{
		Price:  price,
		Orders: make([]*Order, 0, 4),
	}
}

// Append adds an order to the back of the queue.
func (l *Level) Append(o *Order) error {
	if o.Price != l.Price {
		return fmt.Errorf("%w: level %d, order %d", ErrPriceMismatch, l.Price, o.Price)
	}

	l.Orders = append(l.Orders, o)
	l.Volume += o.Rest
	return nil
}

// Front returns the oldest resting order, or nil if the level is empty.
func (l *Level) Front() *Order {
	if len(l.Orders) == 0 {
		return nil
	}
	return l.Orders[0]
}

// ReduceFront decrements the oldest order's rest by qty and returns that
// order. The order is dequeued the moment its rest reaches zero.
func (l *Level) ReduceFront(qty uint64) (*Order, error) {
	front := l.Front()
	if front == nil {
		return nil, ErrEmptyLevel
	}
	if qty > front.Rest {
		return nil, fmt.Errorf("%w: rest %d, reduce %d", ErrReduceExceedsRest, front.Rest, qty)
	}

	front.Rest -= qty
	l.Volume -= qty
	if front.Rest == 0 {
		l.Orders = l.Orders[1:]
	}
	return front, nil
}

// IsEmpty checks if the level has no orders.
func (l *Level) IsEmpty() bool {
	return len(l.Orders) == 0
}

// OrderCount returns the number of orders resting at this level.
func (l *Level) OrderCount() int {
	return len(l.Orders)
}
