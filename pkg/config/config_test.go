package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/samandr77/microservices/acquiring/pkg/config"
)

//nolint:paralleltest
func TestNew(t *testing.T) {
	t.Setenv("AUTH_SERVICE_URL", "http://auth")
	t.Setenv("POSTGRES_DSN", "postgres://localhost/acquiring")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("ACQUIRING_TERMINAL_KEY", "TinkoffBankTest")
	t.Setenv("ACQUIRING_PASSWORD", "secret")
	t.Setenv("PAYMENT_STATUS_RETRIES_COUNT", "5")

	c, err := config.New("testdata/missing.env")
	require.NoError(t, err)

	require.Equal(t, 8080, c.HTTP.Port)
	require.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, c.Kafka.Brokers)
	require.Equal(t, "TinkoffBankTest", c.Acquiring.TerminalKey)
	require.Equal(t, "https://securepay.tinkoff.ru/v2", c.Acquiring.BaseURL)
	require.Equal(t, 5, c.Polling.RetriesCount)
	require.Equal(t, 3*time.Second, c.Polling.Interval)
}

//nolint:paralleltest
func TestNew_MissingRequired(t *testing.T) {
	t.Setenv("AUTH_SERVICE_URL", "http://auth")

	_, err := config.New("testdata/missing.env")
	require.Error(t, err)
}
