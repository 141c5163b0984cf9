package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// MustLoad loads the configuration from environment variables and .env file.
func MustLoad[T any](cfg T) {
	_ = godotenv.Load() // Load environment variables from .env file

	env.Must(cfg, env.Parse(cfg))
}

// Load loads the configuration from environment variables and .env file.
func Load[T any](cfg T) error {
	_ = godotenv.Load() // .env file is optional

	if err := env.Parse(cfg); err != nil {
		return err // Return error if environment variable parsing fails
	}

	return nil
}

// Config holds the configuration for the application
type Config struct {
	Pair         string `env:"PAIR" envDefault:"BTC-USD"` // Trading pair, e.g., BTC/USD
	EventLogPath string `env:"EVENT_LOG_PATH" envDefault:"events.log"`

	Kafka      KafkaConfig      `envPrefix:"KAFKA_"` // Kafka configuration
	Redis      RedisConfig      `envPrefix:"REDIS_"` // Redis configuration
	MarketData MarketDataConfig `envPrefix:"MD_"`    // Synthetic market data configuration
}

// KafkaConfig holds the configuration for the Kafka consumer and producer.
type KafkaConfig struct {
	Brokers     []string `env:"BROKER" envDefault:"localhost:9092"`
	OrdersTopic string   `env:"ORDERS_TOPIC" envDefault:"orders"`
	TradesTopic string   `env:"TRADES_TOPIC" envDefault:"trades"`
	GroupID     string   `env:"GROUP_ID" envDefault:"matchcore"`
}

// RedisConfig holds the configuration for the Redis client.
type RedisConfig struct {
	Addr     string        `env:"ADDRESS" envDefault:"localhost:6379"`
	Username string        `env:"USERNAME" envDefault:""`
	Password string        `env:"PASSWORD" envDefault:""`
	DB       int           `env:"DB" envDefault:"0"`
	DepthTTL time.Duration `env:"DEPTH_TTL" envDefault:"30s"`
}

// MarketDataConfig holds the configuration for the synthetic tick stream.
type MarketDataConfig struct {
	ListenAddr   string        `env:"LISTEN_ADDR" envDefault:":8080"`
	InitialPrice float64       `env:"INITIAL_PRICE" envDefault:"100"`
	Volatility   float64       `env:"VOLATILITY" envDefault:"0.2"`
	Dt           float64       `env:"DT" envDefault:"0.01"`
	TickInterval time.Duration `env:"TICK_INTERVAL" envDefault:"100ms"`
}
