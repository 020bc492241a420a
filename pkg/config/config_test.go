package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, "5432", cfg.DB.Port)
	assert.Equal(t, "backoffice", cfg.DB.DBName)
	assert.Equal(t, "disable", cfg.DB.SSLMode)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.Equal(t, "backoffice", cfg.Metrics.Prefix)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_MAX_OPEN_CONNS", "50")
	t.Setenv("DB_CONN_MAX_LIFETIME", "30m")
	t.Setenv("DB_LOG_LEVEL", "warn")
	t.Setenv("SERVER_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, 50, cfg.DB.MaxOpenConns)
	assert.Equal(t, 30*time.Minute, cfg.DB.ConnMaxLifetime)
	assert.Equal(t, gormlogger.Warn, cfg.DB.LogLevel)
	assert.Equal(t, "9090", cfg.Server.Port)
}

func TestBadEnvValuesFallBack(t *testing.T) {
	t.Setenv("DB_MAX_IDLE_CONNS", "lots")
	t.Setenv("DB_CONN_MAX_LIFETIME", "soon")
	t.Setenv("DB_LOG_LEVEL", "chatty")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.DB.MaxIdleConns)
	assert.Equal(t, time.Hour, cfg.DB.ConnMaxLifetime)
	assert.Equal(t, gormlogger.Info, cfg.DB.LogLevel)
}

func TestGetDSN(t *testing.T) {
	c := DBConfig{
		Host: "h", Port: "5432", User: "u", Password: "p",
		DBName: "d", SSLMode: "disable",
	}
	assert.Equal(t, "host=h port=5432 user=u password=p dbname=d sslmode=disable", c.GetDSN())
}
