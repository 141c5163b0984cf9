package depth

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	depthv1 "github.com/quantfeed/matchcore/internal/domain/depth/v1"
	"github.com/quantfeed/matchcore/pkg/errors"
	"github.com/quantfeed/matchcore/pkg/logger"
)

const keyPrefix = "depth:"

// Store publishes depth snapshots for one pair into Redis, where
// market-data consumers read them. It only ever writes: the cache is a
// view of the book, not a recovery source.
type Store struct {
	pair   string
	ttl    time.Duration
	client redis.Cmdable
	logger *logger.Logger
}

// NewStore creates a depth store for the given pair.
func NewStore(client redis.Cmdable, pair string, ttl time.Duration, log *logger.Logger) *Store {
	return &Store{
		pair:   pair,
		ttl:    ttl,
		client: client,
		logger: log,
	}
}

// Store serializes the snapshot and overwrites the pair's depth key.
func (s *Store) Store(ctx context.Context, snapshot *depthv1.Snapshot) error {
	buf, err := json.Marshal(snapshot)
	if err != nil {
		s.logger.Error(err, logger.Field{Key: "pair", Value: s.pair})
		return errors.NewTracer("depth_marshal_error").Wrap(err)
	}

	if err := s.client.Set(ctx, keyPrefix+s.pair, buf, s.ttl).Err(); err != nil {
		s.logger.Error(err, logger.Field{Key: "pair", Value: s.pair})
		return errors.NewTracer("depth_store_error").Wrap(err)
	}

	s.logger.Debug("Depth snapshot stored",
		logger.Field{Key: "pair", Value: s.pair},
		logger.Field{Key: "bidLevels", Value: len(snapshot.Bids)},
		logger.Field{Key: "askLevels", Value: len(snapshot.Asks)},
	)
	return nil
}
