package tradepublisherv1

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderbookv1 "github.com/quantfeed/matchcore/internal/domain/orderbook/v1"
)

func TestCreateFromFill(t *testing.T) {
	fill := orderbookv1.Fill{
		TakerID:   3,
		TakerSide: orderbookv1.SideBuy,
		MakerID:   1,
		Price:     10,
		Qty:       100,
		Timestamp: 42,
	}

	trade := CreateFromFill(fill)

	require.NotNil(t, trade)
	assert.NotEmpty(t, trade.TradeID)
	assert.Equal(t, uint64(3), trade.TakerOrderID)
	assert.Equal(t, uint64(1), trade.MakerOrderID)
	assert.Equal(t, "Buy", trade.TakerSide)
	assert.Equal(t, uint64(10), trade.Price)
	assert.Equal(t, uint64(100), trade.Qty)
	assert.Equal(t, int64(42), trade.Timestamp)

	// Trade ids must be unique across fills
	other := CreateFromFill(fill)
	assert.NotEqual(t, trade.TradeID, other.TradeID)
}

func TestTradeEvent_Serialization(t *testing.T) {
	trade := &TradeEvent{
		TradeID:      "01HZXY3GJ3V5W6K7M8N9P0Q1R2",
		TakerOrderID: 3,
		MakerOrderID: 1,
		TakerSide:    "Sell",
		Price:        9,
		Qty:          50,
		Timestamp:    7,
	}

	data := ToBytes(trade)
	require.NotNil(t, data)

	decoded := FromBytes(data)
	require.NotNil(t, decoded)
	assert.Equal(t, trade, decoded)
}

func TestFromBytes_Invalid(t *testing.T) {
	assert.Nil(t, FromBytes([]byte("not json")))
}
