package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"fornada/internal/config"
)

func TestPoolConfigFrom(t *testing.T) {
	pc := PoolConfigFrom(config.DatabaseConfig{
		URL:             "postgres://localhost/fornada",
		MaxConns:        25,
		MinConns:        5,
		ConnMaxLifetime: 15 * time.Minute,
	})

	assert.Equal(t, "postgres://localhost/fornada", pc.DSN)
	assert.Equal(t, int32(25), pc.MaxConns)
	assert.Equal(t, int32(5), pc.MinConns)
	assert.Equal(t, 15*time.Minute, pc.MaxConnLifetime)
	assert.NotZero(t, pc.MaxConnIdleTime)
	assert.NotZero(t, pc.HealthCheckPeriod)
}

func TestPoolConfigFromFillsDefaults(t *testing.T) {
	pc := PoolConfigFrom(config.DatabaseConfig{URL: "postgres://localhost/fornada"})

	assert.Equal(t, int32(10), pc.MaxConns)
	assert.Equal(t, int32(2), pc.MinConns)
	assert.Equal(t, time.Hour, pc.MaxConnLifetime)
}
