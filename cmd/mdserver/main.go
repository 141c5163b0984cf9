package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/quantfeed/matchcore/internal/app/relay"
	"github.com/quantfeed/matchcore/internal/usecase/marketdata"
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

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	hub := relay.NewHub(log)
	go hub.Run(ctx)

	generator := marketdata.NewGenerator(
		cfg.MarketData.InitialPrice,
		cfg.MarketData.Volatility,
		cfg.MarketData.Dt,
	)
	go runGenerator(ctx, generator, hub)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.ServeWS)
	mux.HandleFunc("/api/market-data", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"message": "Use WebSocket endpoint /ws for real-time data",
		})
	})

	server := &http.Server{
		Addr:    cfg.MarketData.ListenAddr,
		Handler: mux,
	}

	go func() {
		log.Info("Market data server listening", logger.Field{
			Key:   "addr",
			Value: cfg.MarketData.ListenAddr,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(err, logger.Field{
				Key:   "action",
				Value: "listen_and_serve",
			})
		}
	}()

	sig := <-sigChan
	log.Info("Received shutdown signal", logger.Field{
		Key:   "signal",
		Value: sig.String(),
	})

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "shutdown_server",
		})
	}

	log.Info("Market data server shutdown complete")
}

// runGenerator pushes one tick per interval into the hub.
func runGenerator(ctx context.Context, generator *marketdata.Generator, hub *relay.Hub) {
	ticker := time.NewTicker(cfg.MarketData.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			tick := generator.Next()
			payload, err := json.Marshal(tick)
			if err != nil {
				log.Error(err, logger.Field{
					Key:   "action",
					Value: "marshal_tick",
				})
				continue
			}
			hub.Broadcast(payload)
		}
	}
}
