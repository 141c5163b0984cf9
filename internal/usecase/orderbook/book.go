package orderbook

import (
	"sync"
	"time"

	depthv1 "github.com/quantfeed/matchcore/internal/domain/depth/v1"
	eventlogv1 "github.com/quantfeed/matchcore/internal/domain/eventlog/v1"
	orderbookv1 "github.com/quantfeed/matchcore/internal/domain/orderbook/v1"
	"github.com/quantfeed/matchcore/pkg/errors"
)

// Book is the matching core: it owns the id allocator, both sides of the
// book and the audit trail, and exposes SubmitLimit as the only
// state-changing entry point. One mutex serializes submissions for their
// full duration; the synchronous log append is the only I/O under it.
//
// The trail is written before state is committed: fills are planned against
// the locked book without mutating it, every event is appended to the log,
// and only then are the reductions and the residual insert applied. A
// failed append therefore leaves the book exactly as it was.
type Book struct {
	mu    sync.Mutex
	alloc *IDAllocator
	bids  *BookSide
	asks  *BookSide
	log   eventlogv1.Log
	clock func() int64
}

// NewBook creates an empty book writing its audit trail to log.
func NewBook(log eventlogv1.Log) *Book {
	return &Book{
		alloc: NewIDAllocator(),
		bids:  NewBookSide(orderbookv1.SideBuy),
		asks:  NewBookSide(orderbookv1.SideSell),
		log:   log,
		clock: func() int64 { return time.Now().UnixNano() },
	}
}

// NewBookWithClock creates a book with an injected timestamp source.
func NewBookWithClock(log eventlogv1.Log, clock func() int64) *Book {
	b := NewBook(log)
	b.clock = clock
	return b
}

// SubmitLimit matches an incoming limit order against the opposite side
// under price-time priority and rests any residual quantity. It returns
// the allocated order id and the fills produced, oldest resting order
// first. Invalid input is rejected before an id is consumed or anything
// is logged. A log write failure is returned with the id; the book is
// left unmutated and the submission's durability is unconfirmed.
func (b *Book) SubmitLimit(side orderbookv1.Side, price, qty uint64) (uint64, []orderbookv1.Fill, error) {
	if qty == 0 {
		return 0, nil, orderbookv1.ErrInvalidQuantity
	}
	if price == 0 {
		return 0, nil, orderbookv1.ErrInvalidPrice
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.alloc.Next()
	order := &orderbookv1.Order{
		ID:        id,
		Side:      side,
		Price:     price,
		Qty:       qty,
		Rest:      qty,
		Timestamp: b.clock(),
	}

	same, opposite := b.sides(side)
	fills := planFills(order, opposite, b.clock)

	rest := qty
	if n := len(fills); n > 0 {
		rest = fills[n-1].TakerRest
	}

	events := make([]eventlogv1.Event, 0, len(fills)+1)
	for _, f := range fills {
		events = append(events, eventlogv1.FillEvent(f))
	}
	if rest > 0 {
		resting := *order
		resting.Rest = rest
		events = append(events, eventlogv1.NewOrderEvent(&resting, b.clock()))
	}

	if err := b.log.Record(events...); err != nil {
		return id, nil, errors.NewTracer("event log append failed").Wrap(err)
	}

	for _, f := range fills {
		if err := opposite.ReduceOrRemoveFront(f.Price, f.Qty); err != nil {
			// unreachable: the plan was computed against this exact state
			return id, nil, errors.TracerFromError(err)
		}
	}

	order.Rest = rest
	if rest > 0 {
		if err := same.Insert(order); err != nil {
			return id, nil, errors.TracerFromError(err)
		}
	}

	return id, fills, nil
}

// BestBid returns the highest resting bid price, or false if no bids rest.
func (b *Book) BestBid() (uint64, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bids.BestPrice()
}

// BestAsk returns the lowest resting ask price, or false if no asks rest.
func (b *Book) BestAsk() (uint64, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.asks.BestPrice()
}

// Depth aggregates the top levels of both sides into a snapshot. levels
// limits the count per side; levels <= 0 means no limit.
func (b *Book) Depth(levels int) *depthv1.Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	return &depthv1.Snapshot{
		Timestamp: b.clock(),
		Bids:      depthLevels(b.bids, levels),
		Asks:      depthLevels(b.asks, levels),
	}
}

func depthLevels(side *BookSide, limit int) []depthv1.PriceLevel {
	all := side.LevelsInPriorityOrder()
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}

	out := make([]depthv1.PriceLevel, 0, len(all))
	for _, level := range all {
		out = append(out, depthv1.PriceLevel{
			Price:  level.Price,
			Qty:    level.Volume,
			Orders: level.OrderCount(),
		})
	}
	return out
}

// sides returns (same, opposite) for an incoming order's side.
func (b *Book) sides(side orderbookv1.Side) (*BookSide, *BookSide) {
	if side == orderbookv1.SideBuy {
		return b.bids, b.asks
	}
	return b.asks, b.bids
}
