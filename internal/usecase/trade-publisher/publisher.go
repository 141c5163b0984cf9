package tradepublisher

import (
	"context"

	tradepublisherv1 "github.com/quantfeed/matchcore/internal/domain/trade-publisher/v1"
	"github.com/quantfeed/matchcore/pkg/config"
	"github.com/quantfeed/matchcore/pkg/errors"
	"github.com/quantfeed/matchcore/pkg/logger"
	"github.com/segmentio/kafka-go"
)

// Publisher publishes trade events to the trades topic.
type Publisher struct {
	kafkaWriter *kafka.Writer
	logger      *logger.Logger
}

// NewPublisher creates a new Kafka publisher for trade events.
func NewPublisher(cfg config.KafkaConfig, log *logger.Logger) *Publisher {
	kafkaWriter := kafka.NewWriter(kafka.WriterConfig{
		Brokers: cfg.Brokers,
		Topic:   cfg.TradesTopic,
	})

	return &Publisher{
		kafkaWriter: kafkaWriter,
		logger:      log,
	}
}

// PublishTrade publishes a trade event to the trades topic.
func (p *Publisher) PublishTrade(ctx context.Context, trade *tradepublisherv1.TradeEvent) error {
	msg := kafka.Message{
		Key:   []byte(trade.TradeID),
		Value: tradepublisherv1.ToBytes(trade),
	}

	if err := p.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		p.logger.Error(err,
			logger.Field{Key: "tradeID", Value: trade.TradeID},
			logger.Field{Key: "takerOrderID", Value: trade.TakerOrderID},
		)
		return errors.NewTracer("failed to publish trade event").Wrap(err)
	}
	return nil
}

// Close closes the underlying Kafka writer.
func (p *Publisher) Close() error {
	return p.kafkaWriter.Close()
}
