package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "http:\n  address: \":8081\"\n"))

	require.NoError(t, err)
	assert.Equal(t, ":8081", cfg.HTTP.Address)
	assert.Equal(t, ":9090", cfg.GRPC.Address)
	assert.Equal(t, "booking_events", cfg.Kafka.EventsTopic)
	assert.True(t, cfg.Store.Seed)
	assert.Equal(t, 12*time.Hour, cfg.Auth.TokenTTL())
	assert.Equal(t, ":9102", cfg.Worker.MetricsAddress)
}

func TestLoadConfig_Full(t *testing.T) {
	body := `
database:
  host: localhost
  port: 5432
  user: safari
  password: secret
  name: safari
  ssl_mode: disable
kafka:
  brokers: ["localhost:9092"]
auth:
  enabled: true
  jwt_secret: change-me
  token_ttl_minutes: 30
store:
  seed: false
  password_cost: 4
`
	cfg, err := LoadConfig(writeConfig(t, body))

	require.NoError(t, err)
	assert.Equal(t, "host=localhost port=5432 user=safari password=secret dbname=safari sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL())
	assert.False(t, cfg.Store.Seed)
	assert.Equal(t, 4, cfg.Store.PasswordCost)
}

func TestLoadConfig_AuthNeedsSecret(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "auth:\n  enabled: true\n"))

	assert.ErrorContains(t, err, "jwt_secret")
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))

	assert.Error(t, err)
}

func TestLoadConfig_BadYAML(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "http: [unterminated"))

	assert.ErrorContains(t, err, "failed to parse config")
}

func TestLoadConfig_WorkerIntervalsMustBePositive(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "worker:\n  retention_sweep_hours: 0\n"))

	assert.ErrorContains(t, err, "retention_sweep_hours")
}
