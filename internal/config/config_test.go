package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Host:   "localhost",
			Port:   5432,
			User:   "rithm",
			DBName: "rithm",
		},
		JWT: JWTConfig{
			Secret:        "0123456789abcdef0123456789abcdef",
			SessionExpiry: 30 * 24 * time.Hour,
		},
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, validConfig().Validate())
	})

	t.Run("missing database host", func(t *testing.T) {
		cfg := validConfig()
		cfg.Database.Host = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		cfg := validConfig()
		cfg.JWT.Secret = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("short jwt secret", func(t *testing.T) {
		cfg := validConfig()
		cfg.JWT.Secret = "too-short"
		assert.Error(t, cfg.Validate())
	})

	t.Run("resend without from address", func(t *testing.T) {
		cfg := validConfig()
		cfg.Email.ResendAPIKey = "re_key"
		assert.Error(t, cfg.Validate())

		cfg.Email.FromAddress = "hello@rithm.app"
		assert.NoError(t, cfg.Validate())
	})
}

func TestGetDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.internal",
		Port:     5432,
		User:     "rithm",
		Password: "secret",
		DBName:   "rithm",
		SSLMode:  "disable",
	}
	assert.Equal(t,
		"host=db.internal port=5432 user=rithm password=secret dbname=rithm sslmode=disable",
		cfg.GetDSN())
}

func TestGetAddr(t *testing.T) {
	cfg := RedisConfig{Host: "cache.internal", Port: 6379}
	assert.Equal(t, "cache.internal:6379", cfg.GetAddr())
}
