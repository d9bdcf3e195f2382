package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "http://localhost:8080/api", cfg.Remote.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Remote.Timeout)
	assert.Equal(t, DriverSQLite, cfg.Session.Driver)
	assert.Equal(t, 1000, cfg.Catalog.MaxPrice)
	assert.Equal(t, 100, cfg.Catalog.MaxCarbon)
	assert.Equal(t, "127.0.0.1:3000", cfg.HTTP.Addr())
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("REMOTE_BASE_URL", "https://eco.example.com/api/")
	v.Set("REMOTE_TIMEOUT_SECONDS", "3")
	v.Set("SESSION_DRIVER", "POSTGRES")
	v.Set("CATALOG_MAX_PRICE", 500)

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "https://eco.example.com/api", cfg.Remote.BaseURL, "se recorta la barra final")
	assert.Equal(t, 3*time.Second, cfg.Remote.Timeout)
	assert.Equal(t, DriverPostgres, cfg.Session.Driver)
	assert.Equal(t, 500, cfg.Catalog.MaxPrice)
}

func TestFromViper_DriverDesconocido(t *testing.T) {
	v := viper.New()
	v.Set("SESSION_DRIVER", "redis")
	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestDBConfig_DSN(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "eco", Password: "p@ss:word", DBName: "store", SSLMode: "disable"}
	assert.Equal(t, "postgres://eco:p%40ss%3Aword@db:5432/store?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
