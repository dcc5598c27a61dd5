package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"DB_DRIVER", "PAGE_SIZE", "JWT_TTL_HOURS", "CORS_ALLOWED_ORIGINS", "AUTO_MIGRATE"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Empty(t, cfg.AllowedOrigins)
	assert.False(t, cfg.AutoMigrate)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("PAGE_SIZE", "25")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("AUTO_MIGRATE", "true")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_NAME", "blog")

	cfg := Load()
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 25, cfg.PageSize)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.True(t, cfg.AutoMigrate)
	assert.Contains(t, cfg.DatabaseURL(), "host=db")
	assert.Contains(t, cfg.DatabaseURL(), "dbname=blog")
}

func TestLoad_InvalidPageSizeKeepsDefault(t *testing.T) {
	t.Setenv("PAGE_SIZE", "-4")
	assert.Equal(t, 10, Load().PageSize)

	t.Setenv("PAGE_SIZE", "ten")
	assert.Equal(t, 10, Load().PageSize)
}
