package config

import (
	"errors"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTP           HTTP
	Logger         Logger
	Postgres       Postgres
	Kafka          Kafka
	Acquiring      Acquiring
	Polling        Polling
	AuthServiceURL string `env:"AUTH_SERVICE_URL"`
}

type HTTP struct {
	Port          int    `env:"HTTP_PORT" envDefault:"8080"`
	APIKeyEnabled bool   `env:"HTTP_API_KEY_ENABLED" envDefault:"false"`
	APIKey        string `env:"HTTP_API_KEY" envDefault:"dev"`
}

type Logger struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type Postgres struct {
	DSN     string `env:"POSTGRES_DSN"`
	MaxConn int32  `env:"POSTGRES_MAX_CONNS" envDefault:"10"`
}

type Kafka struct {
	Brokers               []string `env:"KAFKA_BROKERS" envSeparator:","`
	PaymentsResolvedTopic string   `env:"KAFKA_PAYMENTS_RESOLVED_TOPIC" envDefault:"payments.resolved"`
}

type Acquiring struct {
	BaseURL       string        `env:"ACQUIRING_BASE_URL" envDefault:"https://securepay.tinkoff.ru/v2"`
	TerminalKey   string        `env:"ACQUIRING_TERMINAL_KEY"`
	Password      string        `env:"ACQUIRING_PASSWORD"`
	Timeout       time.Duration `env:"ACQUIRING_TIMEOUT" envDefault:"10s"`
	RetryAttempts int           `env:"ACQUIRING_RETRY_ATTEMPTS" envDefault:"2"`
}

// Polling configures payment status polling sessions.
type Polling struct {
	RetriesCount    int           `env:"PAYMENT_STATUS_RETRIES_COUNT" envDefault:"10"`
	Interval        time.Duration `env:"PAYMENT_STATUS_INTERVAL" envDefault:"3s"`
	FinishedPollTTL time.Duration `env:"PAYMENT_STATUS_FINISHED_TTL" envDefault:"10m"`
	EvictInterval   time.Duration `env:"PAYMENT_STATUS_EVICT_INTERVAL" envDefault:"1m"`
}

func New(envPath string) (Config, error) {
	err := godotenv.Load(envPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, err
	}

	c, err := env.ParseAsWithOptions[Config](env.Options{
		RequiredIfNoDef: true,
	})
	if err != nil {
		return Config{}, err
	}

	return c, nil
}
