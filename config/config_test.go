package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PROVIDER_TIMEOUT", "")
	t.Setenv("CORS_ORIGINS", "")

	cfg := LoadConfig()
	assert.Equal(t, 15*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, IdentityFirebase, cfg.IdentityBackend)
	assert.Equal(t, DocumentFirestore, cfg.DocumentBackend)
	assert.True(t, cfg.UsesFirebase())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PROVIDER_TIMEOUT", "3s")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, ,https://b.example.com")
	t.Setenv("IDENTITY_BACKEND", IdentityLocal)
	t.Setenv("DOCUMENT_BACKEND", DocumentRedis)
	t.Setenv("REDIS_DB", "2")

	cfg := LoadConfig()
	assert.Equal(t, 3*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.True(t, cfg.UsesDatabase())
	assert.False(t, cfg.UsesFirebase())
}

func TestDatabaseDriver(t *testing.T) {
	cfg := &Config{DBDriver: "postgres", DocumentBackend: DocumentSQLite}
	assert.Equal(t, "sqlite", cfg.DatabaseDriver())

	cfg.DocumentBackend = DocumentMemory
	assert.Equal(t, "postgres", cfg.DatabaseDriver())
}
