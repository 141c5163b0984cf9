package engine

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	depthv1 "github.com/quantfeed/matchcore/internal/domain/depth/v1"
	depthmock "github.com/quantfeed/matchcore/internal/domain/depth/v1/mock"
	orderreadermock "github.com/quantfeed/matchcore/internal/domain/order-reader/v1/mock"
	orderbookv1 "github.com/quantfeed/matchcore/internal/domain/orderbook/v1"
	tradepublishermock "github.com/quantfeed/matchcore/internal/domain/trade-publisher/v1/mock"
	"github.com/quantfeed/matchcore/internal/usecase/eventlog"
	"github.com/quantfeed/matchcore/internal/usecase/orderbook"
	"github.com/quantfeed/matchcore/pkg/config"
	"github.com/quantfeed/matchcore/pkg/logger"
)

// Test fixtures and helpers
type testFixture struct {
	ctrl               *gomock.Controller
	mockOrderReader    *orderreadermock.MockOrderReader
	mockTradePublisher *tradepublishermock.MockPublisher
	mockDepthStore     *depthmock.MockStore
	book               *orderbook.Book
	logger             *logger.Logger
	config             *config.Config
}

func setupTestFixture(t *testing.T) *testFixture {
	ctrl := gomock.NewController(t)

	log, err := logger.NewLogger()
	require.NoError(t, err)

	trail, err := eventlog.NewWriter(filepath.Join(t.TempDir(), "events.log"))
	require.NoError(t, err)
	t.Cleanup(func() { trail.Close() })

	return &testFixture{
		ctrl:               ctrl,
		mockOrderReader:    orderreadermock.NewMockOrderReader(ctrl),
		mockTradePublisher: tradepublishermock.NewMockPublisher(ctrl),
		mockDepthStore:     depthmock.NewMockStore(ctrl),
		book:               orderbook.NewBook(trail),
		logger:             log,
		config: &config.Config{
			Pair: "BTC-USD",
			Kafka: config.KafkaConfig{
				Brokers:     []string{"localhost:9092"},
				OrdersTopic: "orders",
				TradesTopic: "trades",
				GroupID:     "matchcore",
			},
		},
	}
}

func (f *testFixture) teardown() {
	f.ctrl.Finish()
}

// Helper function to create engine with initialized context
func createTestEngine(fixture *testFixture) *Engine {
	engine := NewEngine(
		fixture.book,
		fixture.mockOrderReader,
		fixture.mockTradePublisher,
		fixture.mockDepthStore,
		fixture.logger,
		fixture.config,
	)

	// Initialize context to prevent nil pointer dereference
	engine.ctx = context.Background()

	return engine
}

func TestNewEngine(t *testing.T) {
	fixture := setupTestFixture(t)
	defer fixture.teardown()

	engine := NewEngine(
		fixture.book,
		fixture.mockOrderReader,
		fixture.mockTradePublisher,
		fixture.mockDepthStore,
		fixture.logger,
		fixture.config,
	)

	assert.NotNil(t, engine)
	assert.Equal(t, fixture.book, engine.book)
	assert.Equal(t, fixture.mockOrderReader, engine.orderReader)
	assert.Equal(t, fixture.mockTradePublisher, engine.tradePublisher)
	assert.Equal(t, fixture.mockDepthStore, engine.depthStore)
	assert.Equal(t, DefaultEngineOptions().DepthInterval, engine.depthInterval)
	assert.Equal(t, DefaultEngineOptions().DepthLevels, engine.depthLevels)
	assert.Equal(t, int64(0), engine.GetOrdersProcessed())
	assert.Equal(t, int64(0), engine.GetTotalFills())
}

func TestNewEngineWithOptions(t *testing.T) {
	fixture := setupTestFixture(t)
	defer fixture.teardown()

	options := &Options{
		DepthInterval: 10 * time.Second,
		DepthLevels:   5,
	}

	engine := NewEngineWithOptions(
		fixture.book,
		fixture.mockOrderReader,
		fixture.mockTradePublisher,
		fixture.mockDepthStore,
		fixture.logger,
		fixture.config,
		options,
	)

	assert.NotNil(t, engine)
	assert.Equal(t, 10*time.Second, engine.depthInterval)
	assert.Equal(t, 5, engine.depthLevels)
}

func TestEngine_ProcessSubmit(t *testing.T) {
	testCases := []struct {
		name               string
		request            *orderbookv1.SubmitRequest
		setupBook          func(*orderbook.Book)
		setupMocks         func(*testFixture)
		expectedError      bool
		expectedProcessed  int64
		expectedTotalFills int64
	}{
		{
			name: "resting limit order publishes no trades",
			request: &orderbookv1.SubmitRequest{
				Type:   orderbookv1.OrderTypeLimit,
				Side:   "buy",
				Price:  10,
				Qty:    100,
				Offset: 1,
			},
			setupBook:          func(b *orderbook.Book) {},
			setupMocks:         func(f *testFixture) {},
			expectedProcessed:  1,
			expectedTotalFills: 0,
		},
		{
			name: "crossing limit order publishes one trade per fill",
			request: &orderbookv1.SubmitRequest{
				Type:   orderbookv1.OrderTypeLimit,
				Side:   "buy",
				Price:  10,
				Qty:    120,
				Offset: 3,
			},
			setupBook: func(b *orderbook.Book) {
				_, _, err := b.SubmitLimit(orderbookv1.SideSell, 10, 100)
				require.NoError(t, err)
				_, _, err = b.SubmitLimit(orderbookv1.SideSell, 10, 50)
				require.NoError(t, err)
			},
			setupMocks: func(f *testFixture) {
				f.mockTradePublisher.EXPECT().
					PublishTrade(gomock.Any(), gomock.Any()).
					Return(nil).
					Times(2)
			},
			expectedProcessed:  1,
			expectedTotalFills: 2,
		},
		{
			name: "unsupported order type is skipped",
			request: &orderbookv1.SubmitRequest{
				Type:  orderbookv1.OrderTypeMarket,
				Side:  "buy",
				Price: 0,
				Qty:   10,
			},
			setupBook:  func(b *orderbook.Book) {},
			setupMocks: func(f *testFixture) {},
		},
		{
			name: "invalid side is skipped",
			request: &orderbookv1.SubmitRequest{
				Type:  orderbookv1.OrderTypeLimit,
				Side:  "hold",
				Price: 10,
				Qty:   10,
			},
			setupBook:  func(b *orderbook.Book) {},
			setupMocks: func(f *testFixture) {},
		},
		{
			name: "zero quantity is rejected, not fatal",
			request: &orderbookv1.SubmitRequest{
				Type:  orderbookv1.OrderTypeLimit,
				Side:  "sell",
				Price: 10,
				Qty:   0,
			},
			setupBook:  func(b *orderbook.Book) {},
			setupMocks: func(f *testFixture) {},
		},
		{
			name: "zero price is rejected, not fatal",
			request: &orderbookv1.SubmitRequest{
				Type:  orderbookv1.OrderTypeLimit,
				Side:  "sell",
				Price: 0,
				Qty:   10,
			},
			setupBook:  func(b *orderbook.Book) {},
			setupMocks: func(f *testFixture) {},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fixture := setupTestFixture(t)
			defer fixture.teardown()

			tc.setupBook(fixture.book)
			tc.setupMocks(fixture)

			engine := createTestEngine(fixture)

			err := engine.processSubmit(tc.request)

			if tc.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.expectedProcessed, engine.GetOrdersProcessed())
			assert.Equal(t, tc.expectedTotalFills, engine.GetTotalFills())
		})
	}
}

func TestEngine_ProcessSubmit_PublishFailureIsNotFatal(t *testing.T) {
	fixture := setupTestFixture(t)
	defer fixture.teardown()

	_, _, err := fixture.book.SubmitLimit(orderbookv1.SideSell, 10, 100)
	require.NoError(t, err)

	fixture.mockTradePublisher.EXPECT().
		PublishTrade(gomock.Any(), gomock.Any()).
		Return(assert.AnError).
		Times(1)

	engine := createTestEngine(fixture)

	err = engine.processSubmit(&orderbookv1.SubmitRequest{
		Type:  orderbookv1.OrderTypeLimit,
		Side:  "buy",
		Price: 10,
		Qty:   100,
	})

	// The fill is already durable in the trail; a publish error is logged, not returned
	assert.NoError(t, err)
	assert.Equal(t, int64(1), engine.GetOrdersProcessed())
	assert.Equal(t, int64(1), engine.GetTotalFills())
}

func TestEngine_PublishDepth(t *testing.T) {
	fixture := setupTestFixture(t)
	defer fixture.teardown()

	_, _, err := fixture.book.SubmitLimit(orderbookv1.SideBuy, 10, 100)
	require.NoError(t, err)
	_, _, err = fixture.book.SubmitLimit(orderbookv1.SideSell, 12, 50)
	require.NoError(t, err)

	var stored *depthv1.Snapshot
	fixture.mockDepthStore.EXPECT().
		Store(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, snapshot *depthv1.Snapshot) error {
			stored = snapshot
			return nil
		}).
		Times(1)

	engine := createTestEngine(fixture)
	engine.publishDepth()

	require.NotNil(t, stored)
	assert.Equal(t, "BTC-USD", stored.Pair)
	require.NotNil(t, stored.BestBid())
	assert.Equal(t, uint64(10), stored.BestBid().Price)
	require.NotNil(t, stored.BestAsk())
	assert.Equal(t, uint64(12), stored.BestAsk().Price)
}

func TestEngine_StartStop(t *testing.T) {
	fixture := setupTestFixture(t)
	defer fixture.teardown()

	fixture.mockOrderReader.EXPECT().
		ReadMessage(gomock.Any()).
		DoAndReturn(func(ctx context.Context) (kafka.Message, *orderbookv1.SubmitRequest, error) {
			<-ctx.Done()
			return kafka.Message{}, nil, ctx.Err()
		}).
		AnyTimes()
	fixture.mockOrderReader.EXPECT().Close().Return(nil).AnyTimes()
	fixture.mockDepthStore.EXPECT().Store(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	engine := NewEngineWithOptions(
		fixture.book,
		fixture.mockOrderReader,
		fixture.mockTradePublisher,
		fixture.mockDepthStore,
		fixture.logger,
		fixture.config,
		&Options{DepthInterval: 10 * time.Millisecond, DepthLevels: 10},
	)

	require.NoError(t, engine.Start(context.Background()))

	// Let the depth publisher tick at least once
	time.Sleep(50 * time.Millisecond)

	stopCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.NoError(t, engine.Stop(stopCtx))
}

func TestEngine_Stats(t *testing.T) {
	fixture := setupTestFixture(t)
	defer fixture.teardown()

	fixture.mockTradePublisher.EXPECT().
		PublishTrade(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	engine := createTestEngine(fixture)

	for i := 0; i < 5; i++ {
		err := engine.processSubmit(&orderbookv1.SubmitRequest{
			Type:  orderbookv1.OrderTypeLimit,
			Side:  "sell",
			Price: 10,
			Qty:   10,
		})
		require.NoError(t, err)
	}
	err := engine.processSubmit(&orderbookv1.SubmitRequest{
		Type:  orderbookv1.OrderTypeLimit,
		Side:  "buy",
		Price: 10,
		Qty:   50,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(6), engine.GetOrdersProcessed())
	assert.Equal(t, int64(5), engine.GetTotalFills())
}
