package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SECRET_KEY", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "bookmarket.db", cfg.Database.DSN)
	assert.Equal(t, "HS256", cfg.Auth.Algorithm)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL)
	assert.True(t, cfg.Auth.AllowSuperuserSignup)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowOrigins)
	assert.Empty(t, cfg.Notify.KafkaBrokers)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SECRET_KEY", "s3cret")
	t.Setenv("ALGORITHM", "hs512")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "5")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092")
	t.Setenv("ALLOW_SUPERUSER_SIGNUP", "false")
	t.Setenv("NOTIFY_EMAIL_DELAY", "2s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "HS512", cfg.Auth.Algorithm)
	assert.Equal(t, 5*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Notify.KafkaBrokers)
	assert.False(t, cfg.Auth.AllowSuperuserSignup)
	assert.Equal(t, 2*time.Second, cfg.Notify.EmailDelay)
}

func TestPostgresDSNAssembledFromParts(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "shop")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_NAME", "books")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "host=db user=shop password=pw dbname=books port=5432 sslmode=disable", cfg.Database.DSN)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			CORSAllowOrigins: []string{"*"},
			Database:         Database{Driver: "sqlite"},
			Auth:             Auth{SecretKey: "k", Algorithm: "HS256", TokenTTL: time.Minute},
			Notify:           Notify{QueueSize: 1},
		}
	}

	cases := map[string]func(*Config){
		"missing secret":   func(c *Config) { c.Auth.SecretKey = "" },
		"bad algorithm":    func(c *Config) { c.Auth.Algorithm = "RS256" },
		"zero ttl":         func(c *Config) { c.Auth.TokenTTL = 0 },
		"unknown driver":   func(c *Config) { c.Database.Driver = "oracle" },
		"empty queue size": func(c *Config) { c.Notify.QueueSize = 0 },
		"no cors origins":  func(c *Config) { c.CORSAllowOrigins = nil },
	}

	require.NoError(t, valid().Validate())
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := valid()
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
