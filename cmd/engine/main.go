package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	app "github.com/quantfeed/matchcore/internal/app/engine"
	"github.com/quantfeed/matchcore/internal/usecase/depth"
	"github.com/quantfeed/matchcore/internal/usecase/eventlog"
	orderreader "github.com/quantfeed/matchcore/internal/usecase/order-reader"
	"github.com/quantfeed/matchcore/internal/usecase/orderbook"
	tradepublisher "github.com/quantfeed/matchcore/internal/usecase/trade-publisher"
	"github.com/quantfeed/matchcore/pkg/config"
	"github.com/quantfeed/matchcore/pkg/logger"
)

var cfg *config.Config
var log *logger.Logger

func init() {
	cfg = &config.Config{}
	if err := config.Load(cfg); err != nil {
		panic(err)
	}

	l, err := logger.NewLogger()
	if err != nil {
		panic(err)
	}

	log = l
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// The audit trail outlives everything else in this process
	trail, err := eventlog.NewWriter(cfg.EventLogPath)
	if err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "open_event_log",
		})
		return
	}
	defer trail.Close()

	rclient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rclient.Ping(ctx).Err(); err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "connect_redis",
		})
		return
	}
	defer rclient.Close()

	// Initialize components
	book := orderbook.NewBook(trail)
	oReader := orderreader.NewReader(cfg.Kafka, log)
	tPublisher := tradepublisher.NewPublisher(cfg.Kafka, log)
	depthStore := depth.NewStore(rclient, cfg.Pair, cfg.Redis.DepthTTL, log)
	engine := app.NewEngine(
		book,
		oReader,
		tPublisher,
		depthStore,
		log,
		cfg,
	)

	// Start the engine
	if err := engine.Start(ctx); err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "start_engine",
		})
		return
	}

	log.Info("Matching engine started successfully", logger.Field{
		Key:   "pair",
		Value: cfg.Pair,
	})

	// Wait for shutdown signal
	sig := <-sigChan
	log.Info("Received shutdown signal", logger.Field{
		Key:   "signal",
		Value: sig.String(),
	})

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := engine.Stop(shutdownCtx); err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "stop_engine",
		})
	}

	if err := tPublisher.Close(); err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "close_trade_publisher",
		})
	}

	log.Info("Matching engine shutdown complete")
}
