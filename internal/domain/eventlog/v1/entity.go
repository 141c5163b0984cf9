package eventlogv1

import (
	"strconv"

	orderbookv1 "github.com/quantfeed/matchcore/internal/domain/orderbook/v1"
)

// Kind is the event discriminator written to the audit trail.
type Kind string

const (
	// KindNew records an order resting in the book.
	KindNew Kind = "NEW"
	// KindFill records one trade against a resting order.
	KindFill Kind = "FILL"
)

// Event is one line of the audit trail. All fields describe the aggressor
// order at the moment the event was generated; FillPrice and FillQty are
// zero for NEW events.
type Event struct {
	Timestamp int64
	Kind      Kind
	OrderID   uint64
	Side      orderbookv1.Side
	Price     uint64
	OrigQty   uint64
	Rest      uint64
	FillPrice uint64
	FillQty   uint64
}

// NewOrderEvent builds the record for an order resting in the book with
// the given remaining quantity.
func NewOrderEvent(o *orderbookv1.Order, ts int64) Event {
	return Event{
		Timestamp: ts,
		Kind:      KindNew,
		OrderID:   o.ID,
		Side:      o.Side,
		Price:     o.Price,
		OrigQty:   o.Qty,
		Rest:      o.Rest,
	}
}

// FillEvent builds the record for a single fill, from the taker's perspective.
func FillEvent(f orderbookv1.Fill) Event {
	return Event{
		Timestamp: f.Timestamp,
		Kind:      KindFill,
		OrderID:   f.TakerID,
		Side:      f.TakerSide,
		Price:     f.TakerPrice,
		OrigQty:   f.TakerQty,
		Rest:      f.TakerRest,
		FillPrice: f.Price,
		FillQty:   f.Qty,
	}
}

// AppendLine appends the event's comma-separated line, newline included,
// to buf and returns the extended buffer. Layout:
//
//	<ts_ns>,<NEW|FILL>,<order_id>,<side>,<price>,<orig_qty>,<rest>,<fill_px|0>,<fill_qty|0>
func (e Event) AppendLine(buf []byte) []byte {
	buf = strconv.AppendInt(buf, e.Timestamp, 10)
	buf = append(buf, ',')
	buf = append(buf, e.Kind...)
	buf = append(buf, ',')
	buf = strconv.AppendUint(buf, e.OrderID, 10)
	buf = append(buf, ',')
	buf = append(buf, e.Side.String()...)
	buf = append(buf, ',')
	buf = strconv.AppendUint(buf, e.Price, 10)
	buf = append(buf, ',')
	buf = strconv.AppendUint(buf, e.OrigQty, 10)
	buf = append(buf, ',')
	buf = strconv.AppendUint(buf, e.Rest, 10)
	buf = append(buf, ',')
	buf = strconv.AppendUint(buf, e.FillPrice, 10)
	buf = append(buf, ',')
	buf = strconv.AppendUint(buf, e.FillQty, 10)
	buf = append(buf, '\n')
	return buf
}

// Line renders the event as a single log line, newline included.
func (e Event) Line() string {
	return string(e.AppendLine(make([]byte, 0, 96)))
}
