package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalConfig = `
[database]
host = "localhost"
dbname = "barbershop"
`

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(minimalConfig)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, []int{20, 10, 5}, cfg.Notifications.ClientAlertMinutes)
	assert.Equal(t, 5, cfg.Notifications.AdminAlertMinutes)
	assert.Equal(t, time.Minute, cfg.Notifications.PollInterval())
	assert.Equal(t, 48*time.Hour, cfg.Redis.MarkerTTL())
	assert.Equal(t, 5, cfg.Webhook.Timeout)
	assert.Equal(t, "host=localhost port=5432 user= password= dbname=barbershop sslmode=disable", cfg.Database.DSN())
}

func TestParse_Full(t *testing.T) {
	cfg, err := Parse(`
[server]
http_port = 9000

[database]
host = "db"
dbname = "barbershop"

[redis]
enabled = true
addr = "redis:6379"

[kafka]
enabled = true
brokers = "k1:9092, k2:9092,"

[notifications]
client_alert_minutes = [15, 5]

[auth]
admin_phone = "+70000000000"
`)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.HTTPPort)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.BrokerList())
	assert.Equal(t, []int{15, 5}, cfg.Notifications.ClientAlertMinutes)
	assert.Equal(t, "+70000000000", cfg.Auth.AdminPhone)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse(`
[database]
host = ""

[redis]
enabled = true

[webhook]
enabled = true
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.host is required")
	assert.Contains(t, err.Error(), "redis.addr is required")
	assert.Contains(t, err.Error(), "webhook.url is required")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(minimalConfig), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "barbershop", cfg.Database.DBName)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
