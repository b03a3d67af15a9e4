package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[server]
http_port = 9090

[database]
host = "localhost"
dbname = "playzone"
user = "playzone"
password = "from-file"

[auth]
jwt_secret = "file-secret"

[payment]
base_url = "https://api.gateway.test"
key_id = "key"
key_secret = "secret"

[booking]
payment_mode = "online"
pending_ttl_minutes = 30
timezone = "Asia/Kolkata"

[kafka]
brokers = ["localhost:9092"]
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Server.ReadTimeout, "default kept")
	assert.Equal(t, "from-file", cfg.Database.Password)
	assert.Equal(t, 30, cfg.Booking.PendingTTLMinutes)
	assert.Equal(t, "Asia/Kolkata", cfg.Booking.Location().String())
	assert.Equal(t, TransportInline, cfg.Notifications.Transport)
	assert.Equal(t, "host=localhost port=5432 user=playzone password=from-file dbname=playzone sslmode=disable",
		cfg.Database.DSN())
}

func TestLoad_EnvOverridesSecrets(t *testing.T) {
	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
}

func TestLoad_Invalid(t *testing.T) {
	body := `
[database]
host = "localhost"
dbname = "playzone"

[booking]
payment_mode = "crypto"
timezone = "Mars/Olympus"

[notifications]
transport = "kafka"
`
	_, err := Load(writeConfig(t, body))
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "jwt_secret")
	assert.Contains(t, err.Error(), "payment_mode")
	assert.Contains(t, err.Error(), "booking.timezone")
	assert.Contains(t, err.Error(), "kafka.brokers")
}

func TestLoad_VenueModeNeedsNoGateway(t *testing.T) {
	body := `
[database]
host = "localhost"
dbname = "playzone"

[auth]
jwt_secret = "s"

[booking]
payment_mode = "venue"
`
	cfg, err := Load(writeConfig(t, body))
	require.NoError(t, err)
	assert.Equal(t, PaymentModeVenue, cfg.Booking.PaymentMode)
	assert.Equal(t, time.UTC, cfg.Booking.Location(), "default timezone")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
