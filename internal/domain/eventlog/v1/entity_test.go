package eventlogv1

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderbookv1 "github.com/quantfeed/matchcore/internal/domain/orderbook/v1"
)

func TestNewOrderEvent(t *testing.T) {
	order := &orderbookv1.Order{
		ID:    7,
		Side:  orderbookv1.SideBuy,
		Price: 10,
		Qty:   120,
		Rest:  30,
	}

	event := NewOrderEvent(order, 1234567890)

	assert.Equal(t, KindNew, event.Kind)
	assert.Equal(t, int64(1234567890), event.Timestamp)
	assert.Equal(t, uint64(7), event.OrderID)
	assert.Equal(t, orderbookv1.SideBuy, event.Side)
	assert.Equal(t, uint64(10), event.Price)
	assert.Equal(t, uint64(120), event.OrigQty)
	assert.Equal(t, uint64(30), event.Rest)
	assert.Equal(t, uint64(0), event.FillPrice)
	assert.Equal(t, uint64(0), event.FillQty)
}

func TestFillEvent(t *testing.T) {
	fill := orderbookv1.Fill{
		TakerID:    3,
		TakerSide:  orderbookv1.SideBuy,
		TakerPrice: 10,
		TakerQty:   120,
		TakerRest:  20,
		MakerID:    1,
		MakerRest:  0,
		Price:      9,
		Qty:        100,
		Timestamp:  42,
	}

	event := FillEvent(fill)

	assert.Equal(t, KindFill, event.Kind)
	assert.Equal(t, int64(42), event.Timestamp)
	assert.Equal(t, uint64(3), event.OrderID)
	assert.Equal(t, orderbookv1.SideBuy, event.Side)
	assert.Equal(t, uint64(10), event.Price)
	assert.Equal(t, uint64(120), event.OrigQty)
	assert.Equal(t, uint64(20), event.Rest)
	assert.Equal(t, uint64(9), event.FillPrice)
	assert.Equal(t, uint64(100), event.FillQty)
}

func TestEvent_Line(t *testing.T) {
	testCases := []struct {
		name     string
		event    Event
		expected string
	}{
		{
			name: "NEW line with zeroed fill columns",
			event: Event{
				Timestamp: 1700000000000000001,
				Kind:      KindNew,
				OrderID:   1,
				Side:      orderbookv1.SideSell,
				Price:     10,
				OrigQty:   100,
				Rest:      100,
			},
			expected: "1700000000000000001,NEW,1,Sell,10,100,100,0,0\n",
		},
		{
			name: "FILL line carries execution price and quantity",
			event: Event{
				Timestamp: 1700000000000000002,
				Kind:      KindFill,
				OrderID:   3,
				Side:      orderbookv1.SideBuy,
				Price:     10,
				OrigQty:   120,
				Rest:      20,
				FillPrice: 10,
				FillQty:   100,
			},
			expected: "1700000000000000002,FILL,3,Buy,10,120,20,10,100\n",
		},
		{
			name: "partial fill rest after event",
			event: Event{
				Timestamp: 5,
				Kind:      KindNew,
				OrderID:   3,
				Side:      orderbookv1.SideBuy,
				Price:     10,
				OrigQty:   120,
				Rest:      30,
			},
			expected: "5,NEW,3,Buy,10,120,30,0,0\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.event.Line())
		})
	}
}

func TestEvent_AppendLine(t *testing.T) {
	first := Event{Timestamp: 1, Kind: KindNew, OrderID: 1, Side: orderbookv1.SideBuy, Price: 5, OrigQty: 10, Rest: 10}
	second := Event{Timestamp: 2, Kind: KindFill, OrderID: 2, Side: orderbookv1.SideSell, Price: 5, OrigQty: 10, Rest: 0, FillPrice: 5, FillQty: 10}

	buf := first.AppendLine(nil)
	buf = second.AppendLine(buf)

	require.Equal(t,
		"1,NEW,1,Buy,5,10,10,0,0\n2,FILL,2,Sell,5,10,0,5,10\n",
		string(buf),
	)
}
