package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg := FromViper(viper.New())

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, 15, cfg.JWT.Expiration)
	assert.Equal(t, 168, cfg.JWT.RefreshExpiration)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, "farm-images", cfg.Storage.Bucket)
	assert.Equal(t, int64(5*1024*1024), cfg.Storage.MaxUploadBytes())
	assert.False(t, cfg.Storage.Enabled(), "sin SUPABASE_URL no hay bucket remoto")
}

func TestFromViper_EnvStrings(t *testing.T) {
	v := viper.New()
	v.Set("HTTP_PORT", "9090")
	v.Set("DB_PORT", "no-es-numero")
	v.Set("JWT_SECRET", "s3cret")
	v.Set("SUPABASE_URL", "https://abc.supabase.co/")
	v.Set("SUPABASE_SERVICE_KEY", "key")

	cfg := FromViper(v)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 5432, cfg.DB.Port, "un entero inválido cae al valor por defecto")
	assert.Equal(t, "https://abc.supabase.co", cfg.Storage.SupabaseURL)
	assert.True(t, cfg.Storage.Enabled())
	assert.Equal(t, "s3cret", cfg.JWT.RefreshKey(), "sin JWT_REFRESH_SECRET se reutiliza JWT_SECRET")
}

func TestDSN_EscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "farm", Password: "p@ss:word", DBName: "milk", SSLMode: "disable"}
	assert.Equal(t, "postgres://farm:p%40ss%3Aword@db:5432/milk?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}

func TestValidate(t *testing.T) {
	cfg := FromViper(viper.New())
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")

	cfg.JWT.Secret = "x"
	assert.NoError(t, cfg.Validate())

	cfg.HTTP.Port = 70000
	assert.Error(t, cfg.Validate())
}
