package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	depthv1 "github.com/quantfeed/matchcore/internal/domain/depth/v1"
	orderreaderv1 "github.com/quantfeed/matchcore/internal/domain/order-reader/v1"
	orderbookv1 "github.com/quantfeed/matchcore/internal/domain/orderbook/v1"
	tradepublisherv1 "github.com/quantfeed/matchcore/internal/domain/trade-publisher/v1"
	"github.com/quantfeed/matchcore/pkg/config"
	"github.com/quantfeed/matchcore/pkg/logger"
)

// Engine drives the matching core: it pulls submit requests off the orders
// topic, runs them through the book one at a time, fans resulting trades
// out to the trades topic and refreshes the depth cache on an interval.
type Engine struct {
	// Core components
	book           orderbookv1.Book
	orderReader    orderreaderv1.OrderReader
	tradePublisher tradepublisherv1.Publisher
	depthStore     depthv1.Store
	logger         *logger.Logger
	config         *config.Config

	// Shutdown coordination
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// Configuration
	depthInterval time.Duration
	depthLevels   int

	// Statistics
	mu              sync.RWMutex
	ordersProcessed int64
	totalFills      int64
}

// NewEngine creates a new instance of Engine with the provided dependencies.
func NewEngine(
	book orderbookv1.Book,
	orderReader orderreaderv1.OrderReader,
	tradePublisher tradepublisherv1.Publisher,
	depthStore depthv1.Store,
	log *logger.Logger,
	cfg *config.Config,
) *Engine {
	return NewEngineWithOptions(book, orderReader, tradePublisher, depthStore, log, cfg, DefaultEngineOptions())
}

// NewEngineWithOptions creates a new engine with custom options
func NewEngineWithOptions(
	book orderbookv1.Book,
	orderReader orderreaderv1.OrderReader,
	tradePublisher tradepublisherv1.Publisher,
	depthStore depthv1.Store,
	log *logger.Logger,
	cfg *config.Config,
	options *Options,
) *Engine {
	return &Engine{
		book:           book,
		orderReader:    orderReader,
		tradePublisher: tradePublisher,
		depthStore:     depthStore,
		logger:         log,
		config:         cfg,

		depthInterval: options.DepthInterval,
		depthLevels:   options.DepthLevels,
	}
}

// Start initializes the engine and starts processing routines.
func (e *Engine) Start(ctx context.Context) error {
	e.ctx, e.cancel = context.WithCancel(ctx)

	e.wg.Add(2)
	go e.runOrderProcessor()
	go e.runDepthPublisher()

	e.logger.Info("Engine started", logger.Field{
		Key:   "pair",
		Value: e.config.Pair,
	})

	return nil
}

// Stop gracefully shuts down the engine
func (e *Engine) Stop(ctx context.Context) error {
	if e.cancel != nil {
		e.cancel()
	}

	// Wait for goroutines to finish with timeout
	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		e.logger.Info("Engine stopped gracefully")
		return nil
	case <-ctx.Done():
		e.logger.Warn("Engine stop timeout exceeded")
		return ctx.Err()
	}
}

// runOrderProcessor reads and processes submissions in a single goroutine,
// so book access is naturally serialized.
func (e *Engine) runOrderProcessor() {
	defer e.wg.Done()

	e.logger.Info("Starting order processor", logger.Field{
		Key:   "pair",
		Value: e.config.Pair,
	})

	for {
		select {
		case <-e.ctx.Done():
			e.logger.Info("Order processor shutting down")
			e.orderReader.Close()
			return
		default:
			_, req, err := e.orderReader.ReadMessage(e.ctx)
			if err != nil {
				if e.ctx.Err() != nil {
					continue
				}
				e.logger.Error(err, logger.Field{
					Key:   "action",
					Value: "read_order_message",
				})
				// Simple backoff
				time.Sleep(100 * time.Millisecond)
				continue
			}

			if err := e.processSubmit(req); err != nil {
				e.logger.Error(err, logger.Field{
					Key:   "action",
					Value: "process_submit",
				})
			}
		}
	}
}

// processSubmit runs one submit request through the book and publishes the
// resulting trades. Malformed requests are dropped, not fatal.
func (e *Engine) processSubmit(req *orderbookv1.SubmitRequest) error {
	if req.Type != orderbookv1.OrderTypeLimit {
		e.logger.Warn("Skipping unsupported order type",
			logger.Field{Key: "type", Value: req.Type},
			logger.Field{Key: "offset", Value: req.Offset},
		)
		return nil
	}

	side, err := orderbookv1.ParseSide(req.Side)
	if err != nil {
		e.logger.Warn("Skipping request with invalid side",
			logger.Field{Key: "side", Value: req.Side},
			logger.Field{Key: "offset", Value: req.Offset},
		)
		return nil
	}

	id, fills, err := e.book.SubmitLimit(side, req.Price, req.Qty)
	if err != nil {
		if errors.Is(err, orderbookv1.ErrInvalidQuantity) || errors.Is(err, orderbookv1.ErrInvalidPrice) {
			e.logger.Warn("Rejected submission",
				logger.Field{Key: "reason", Value: err.Error()},
				logger.Field{Key: "offset", Value: req.Offset},
			)
			return nil
		}
		return err
	}

	for i := range fills {
		trade := tradepublisherv1.CreateFromFill(fills[i])
		if err := e.tradePublisher.PublishTrade(e.ctx, trade); err != nil {
			e.logger.Error(err, logger.Field{
				Key:   "action",
				Value: "publish_trade",
			})
		}
	}

	e.recordStats(len(fills))

	e.logger.Debug("Processed submission",
		logger.Field{Key: "orderID", Value: id},
		logger.Field{Key: "side", Value: side.String()},
		logger.Field{Key: "fills", Value: len(fills)},
	)
	return nil
}

// runDepthPublisher refreshes the depth cache on an interval.
func (e *Engine) runDepthPublisher() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.depthInterval)
	defer ticker.Stop()

	e.logger.Info("Starting depth publisher")

	for {
		select {
		case <-e.ctx.Done():
			e.logger.Info("Depth publisher shutting down")
			return
		case <-ticker.C:
			e.publishDepth()
		}
	}
}

func (e *Engine) publishDepth() {
	snapshot := e.book.Depth(e.depthLevels)
	snapshot.Pair = e.config.Pair

	if err := e.depthStore.Store(e.ctx, snapshot); err != nil {
		e.logger.Error(err, logger.Field{
			Key:   "action",
			Value: "store_depth",
		})
	}
}

func (e *Engine) recordStats(fills int) {
	e.mu.Lock()
	e.ordersProcessed++
	e.totalFills += int64(fills)
	e.mu.Unlock()
}

// GetOrdersProcessed returns the number of submissions run through the book.
func (e *Engine) GetOrdersProcessed() int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.ordersProcessed
}

// GetTotalFills returns the total number of fills produced.
func (e *Engine) GetTotalFills() int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.totalFills
}
