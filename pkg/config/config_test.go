package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/obras-api/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("STORAGE_BACKEND", "memory")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 24*60, cfg.JWT.Expiration, "el token vence a las 24 horas por defecto")
	assert.Equal(t, 2, cfg.Auth.AdminMaxCount)
	assert.Equal(t, config.StorageMemory, cfg.Storage.Backend)
	assert.False(t, cfg.Auth.OfflineMode)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_ListaDeDominios(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("STORAGE_BACKEND", "memory")
	t.Setenv("AUTH_ALLOWED_EMAIL_DOMAINS", " Obra.co.kr, ,partner.com ")
	t.Setenv("AUTH_OFFLINE_MODE", "true")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"obra.co.kr", "partner.com"}, cfg.Auth.AllowedEmailDomains)
	assert.True(t, cfg.Auth.OfflineMode)
}

func TestLoad_SinSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("STORAGE_BACKEND", "memory")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestValidate_BackendDesconocido(t *testing.T) {
	cfg := &config.Config{
		JWT:     config.JWTConfig{Secret: "x"},
		Storage: config.StorageConfig{Backend: "mongo"},
		Auth:    config.AuthConfig{AdminMaxCount: 2},
	}
	assert.Error(t, cfg.Validate())
}

func TestDSN_EscapaPassword(t *testing.T) {
	db := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/word", DBName: "obras", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/obras?sslmode=disable", db.DSN())
	assert.Equal(t, db.DSN(), db.ConnectionString())
}

func TestPhotoOrigin(t *testing.T) {
	cfg := &config.Config{HTTP: config.HTTPConfig{Host: "0.0.0.0", Port: 8080}}
	assert.Equal(t, "http://127.0.0.1:8080", cfg.PhotoOrigin(), "escucha en todas las interfaces: loopback")

	cfg.HTTP.Host = "api.interna"
	assert.Equal(t, "http://api.interna:8080", cfg.PhotoOrigin())

	cfg.Export.PhotoOrigin = "https://obras.example.kr/"
	assert.Equal(t, "https://obras.example.kr", cfg.PhotoOrigin(), "el valor explícito tiene prioridad")
}
