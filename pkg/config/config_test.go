package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENV", "STORAGE", "MONGO_DATABASE", "JWT_SECRET", "JWT_TTL"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StorageMongo, cfg.Storage)
	assert.Equal(t, "petsocial", cfg.MongoDatabase)
	assert.Equal(t, DefaultJWTSecret, cfg.JWTSecret)
	assert.Equal(t, 72*time.Hour, cfg.JWTTTL)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("ENV", "production")
	t.Setenv("STORAGE", StorageMemory)
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_TTL", "15m")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 15*time.Minute, cfg.JWTTTL)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_InvalidTTLFallsBack(t *testing.T) {
	t.Setenv("JWT_TTL", "soon")
	assert.Equal(t, 72*time.Hour, Load().JWTTTL)

	t.Setenv("JWT_TTL", "-1h")
	assert.Equal(t, 72*time.Hour, Load().JWTTTL)
}

func TestInitDB_RequiresConnectionStrings(t *testing.T) {
	_, err := InitDB(context.Background(), &Config{MongoURI: "mongodb://localhost"})
	assert.ErrorContains(t, err, "POSTGRES_CONN_STR")

	_, err = InitDB(context.Background(), &Config{PostgresConnStr: "host=localhost"})
	assert.ErrorContains(t, err, "MONGO_URI")
}
