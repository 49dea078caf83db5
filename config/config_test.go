package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("JWT_TTL", "")

	cfg := Load()

	assert.Equal(t, "postgres", cfg.StoreDriver)
	assert.Equal(t, 8760*time.Hour, cfg.JWTTTL)
	assert.Equal(t, "db/migrations", cfg.MigrationsDir)
	assert.Equal(t, "emails", cfg.RabbitMQEmailQueue)
	assert.Equal(t, "changecontrol", cfg.RabbitMQChangeQueue)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Mongo")
	t.Setenv("JWT_TTL", "0s")
	t.Setenv("MAIL_SEND_ENABLED", "true")
	t.Setenv("DB_MAX_CONNS", "not-a-number")
	t.Setenv("ALERT_NOTIFY_TO", " staff@example.org, ,board@example.org")

	cfg := Load()

	assert.Equal(t, "mongo", cfg.StoreDriver)
	assert.Equal(t, time.Duration(0), cfg.JWTTTL)
	assert.True(t, cfg.MailSendEnabled)
	assert.Equal(t, int32(10), cfg.DBMaxConns)
	assert.Equal(t, []string{"staff@example.org", "board@example.org"}, cfg.AlertRecipients())
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "5432", DBName: "d", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@h:5432/d?sslmode=disable", cfg.PostgresDSN())
}
