package orderreaderv1

import (
	"context"

	orderbookv1 "github.com/quantfeed/matchcore/internal/domain/orderbook/v1"
	"github.com/segmentio/kafka-go"
)

// OrderReader defines the interface for reading order submissions from a source.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=orderreaderv1_mock
type OrderReader interface {
	// ReadMessage reads a message and returns the parsed submit request
	ReadMessage(ctx context.Context) (kafka.Message, *orderbookv1.SubmitRequest, error)
	// Close closes the reader
	Close() error
}
