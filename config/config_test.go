package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		BackendURL:   "https://backend.example.com",
		JWTSecret:    "secret",
		StateBackend: "memory",
		StateTTL:     time.Hour,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing backend", mutate: func(c *Config) { c.BackendURL = "" }, wantErr: "BACKEND_URL"},
		{name: "zero state ttl", mutate: func(c *Config) { c.StateTTL = 0 }, wantErr: "STATE_TTL must be positive"},
		{name: "negative state ttl", mutate: func(c *Config) { c.StateTTL = -time.Minute }, wantErr: "STATE_TTL must be positive"},
		{name: "postgres without dsn", mutate: func(c *Config) { c.StateBackend = "postgres" }, wantErr: "DB_DSN"},
		{name: "redis without addr", mutate: func(c *Config) { c.StateBackend = "redis" }, wantErr: "REDIS_ADDR"},
		{name: "redis with addr", mutate: func(c *Config) { c.StateBackend = "redis"; c.RedisAddr = "localhost:6379" }},
		{name: "unknown backend", mutate: func(c *Config) { c.StateBackend = "etcd" }, wantErr: `unknown STATE_BACKEND "etcd"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestR2Enabled(t *testing.T) {
	cfg := validConfig()
	assert.False(t, cfg.R2Enabled())

	cfg.R2AccountID, cfg.R2AccessKeyID, cfg.R2AccessKeySecret, cfg.R2BucketName = "acc", "id", "secret", "bucket"
	assert.True(t, cfg.R2Enabled())
}
