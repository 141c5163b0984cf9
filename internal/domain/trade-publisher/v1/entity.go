package tradepublisherv1

import (
	"encoding/json"

	"github.com/oklog/ulid/v2"
	orderbookv1 "github.com/quantfeed/matchcore/internal/domain/orderbook/v1"
)

// TradeEvent is the payload published to the trades topic, one per fill.
type TradeEvent struct {
	TradeID      string `json:"tradeID"`
	TakerOrderID uint64 `json:"takerOrderID"`
	MakerOrderID uint64 `json:"makerOrderID"`
	TakerSide    string `json:"takerSide"`
	Price        uint64 `json:"price"`
	Qty          uint64 `json:"qty"`
	Timestamp    int64  `json:"timestamp"`
}

// CreateFromFill creates a trade event from a fill.
func CreateFromFill(f orderbookv1.Fill) *TradeEvent {
	return &TradeEvent{
		TradeID:      ulid.Make().String(),
		TakerOrderID: f.TakerID,
		MakerOrderID: f.MakerID,
		TakerSide:    f.TakerSide.String(),
		Price:        f.Price,
		Qty:          f.Qty,
		Timestamp:    f.Timestamp,
	}
}

// ToBytes converts the trade event to a byte array.
func ToBytes(ev *TradeEvent) []byte {
	data, err := json.Marshal(ev)
	if err != nil {
		return nil
	}

	return data
}

// FromBytes converts a byte array to a trade event.
func FromBytes(data []byte) *TradeEvent {
	var ev TradeEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil
	}
	return &ev
}
