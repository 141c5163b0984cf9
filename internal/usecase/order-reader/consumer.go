package orderreader

import (
	"context"
	"encoding/json"

	orderbookv1 "github.com/quantfeed/matchcore/internal/domain/orderbook/v1"
	"github.com/quantfeed/matchcore/pkg/config"
	"github.com/quantfeed/matchcore/pkg/logger"
	"github.com/segmentio/kafka-go"
)

// Reader consumes order submissions from the orders topic.
type Reader struct {
	kafkaReader *kafka.Reader
	logger      *logger.Logger
}

// NewReader creates a new Kafka reader for the orders topic. It returns an
// implementation of the OrderReader interface.
func NewReader(cfg config.KafkaConfig, log *logger.Logger) *Reader {
	kafkaReader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		Topic:       cfg.OrdersTopic,
		GroupID:     cfg.GroupID,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafka.LastOffset,
	})

	return &Reader{
		kafkaReader: kafkaReader,
		logger:      log,
	}
}

// logError is a helper method to log errors consistently
func (r *Reader) logError(err error, operation string) {
	r.logger.Error(err,
		logger.Field{Key: "operation", Value: operation},
	)
}

// ReadMessage reads a message from the orders topic and parses it as a
// submit request.
func (r *Reader) ReadMessage(ctx context.Context) (kafka.Message, *orderbookv1.SubmitRequest, error) {
	msg, err := r.kafkaReader.ReadMessage(ctx)
	if err != nil {
		r.logError(err, "ReadMessage")
		return kafka.Message{}, nil, err
	}

	var req orderbookv1.SubmitRequest
	if err := json.Unmarshal(msg.Value, &req); err != nil {
		r.logError(err, "UnmarshalSubmitRequest")
		return kafka.Message{}, nil, err
	}

	req.Offset = msg.Offset

	r.logger.Debug("ReadMessage",
		logger.Field{Key: "type", Value: req.Type},
		logger.Field{Key: "side", Value: req.Side},
		logger.Field{Key: "price", Value: req.Price},
		logger.Field{Key: "qty", Value: req.Qty},
		logger.Field{Key: "offset", Value: req.Offset},
	)

	return msg, &req, nil
}

// Close properly closes the Kafka reader.
func (r *Reader) Close() error {
	if err := r.kafkaReader.Close(); err != nil {
		r.logError(err, "Close")
		return err
	}
	return nil
}
