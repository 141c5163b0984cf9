package tradepublisherv1

import "context"

// Publisher defines the interface for publishing trade events.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=tradepublisherv1_mock
type Publisher interface {
	// PublishTrade publishes a trade event to the trades topic.
	PublishTrade(ctx context.Context, trade *TradeEvent) error
}
