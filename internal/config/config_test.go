package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Port:            "8217",
		DBPassword:      "secure-password",
		SessionSecret:   "secure-session-secret-at-least-32-chars",
		SessionTTLHours: 72,
		Env:             "development",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"Valid development config", func(c *Config) {}, false},
		{"Missing port", func(c *Config) { c.Port = "" }, true},
		{"Missing session secret", func(c *Config) { c.SessionSecret = "" }, true},
		{"Zero session TTL", func(c *Config) { c.SessionTTLHours = 0 }, true},
		{"Default secret in production", func(c *Config) {
			c.Env = "production"
			c.SessionSecret = defaultSessionSecret
		}, true},
		{"Short secret in production", func(c *Config) {
			c.Env = "production"
			c.SessionSecret = "too-short"
		}, true},
		{"Weak DB password in production", func(c *Config) {
			c.Env = "prod"
			c.DBPassword = "password"
		}, true},
		{"Strong production config", func(c *Config) {
			c.Env = "production"
			c.DBSSLMode = "require"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	defer os.Unsetenv("APP_ENV")
	defer os.Unsetenv("DB_NAME")
	defer os.Unsetenv("DB_ECHO")
	defer viper.Reset()

	os.Setenv("APP_ENV", "development")
	os.Setenv("DB_NAME", "threaded_test")
	os.Setenv("DB_ECHO", "true")

	c, err := LoadConfig()
	assert.NoError(t, err)
	assert.Equal(t, "threaded_test", c.DBName)
	assert.True(t, c.DBEcho)
}

func TestConfig_DSN(t *testing.T) {
	c := &Config{
		DBHost:     "db.internal",
		DBPort:     "5433",
		DBUser:     "openbook",
		DBPassword: "pw",
		DBName:     "threaded",
	}
	assert.Equal(t,
		"host=db.internal port=5433 user=openbook password=pw dbname=threaded sslmode=disable",
		c.DSN())
}
