package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsAndEnvOverride(t *testing.T) {
	t.Setenv("CONFIG_FILE", "does-not-exist.toml")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("SESSION_SECRET", "from-env")
	t.Setenv("RABBITMQ_WELCOME_MAIL_QUEUE", "custom.queue")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "kekambas-blog", cfg.App.Name)
	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, "from-env", cfg.Session.Secret)
	assert.Equal(t, "custom.queue", cfg.RabbitMQ.WelcomeMailQueue)
	assert.Equal(t, "blog_session", cfg.Session.CookieName)
}

func TestMySQLDSN(t *testing.T) {
	cfg := defaultConfig()
	cfg.MySQL.User = "blog"
	cfg.MySQL.Password = "pw"
	cfg.MySQL.Host = "db.local"
	cfg.MySQL.Port = 3307
	cfg.MySQL.DB = "blogdb"
	cfg.MySQL.Params = "parseTime=true"

	assert.Equal(t, "blog:pw@tcp(db.local:3307)/blogdb?parseTime=true", cfg.MySQLDSN())
}

func TestHTTPAddr(t *testing.T) {
	cfg := defaultConfig()
	cfg.App.Host = "127.0.0.1"
	cfg.App.Port = 8081
	assert.Equal(t, "127.0.0.1:8081", cfg.HTTPAddr())
}

func TestGetEnvAsIntFallback(t *testing.T) {
	t.Setenv("BAD_INT", "not-a-number")
	assert.Equal(t, 42, getEnvAsInt("BAD_INT", 42))
	assert.Equal(t, 42, getEnvAsInt("UNSET_INT", 42))
}
