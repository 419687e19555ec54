package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitConfig(t *testing.T) {
	t.Setenv("JWT_SECRET", "from-environment")
	t.Setenv("POSTGRES_PASSWORD", "pg-pass")

	cfg, err := InitConfig()
	require.NoError(t, err)

	assert.Equal(t, "3005", cfg.Server.HTTPPort)
	assert.Equal(t, "go-task-tracker", cfg.JWT.Issuer)
	assert.Equal(t, time.Hour, cfg.JWT.TokenTTL)

	// Secrets must come from the environment, not the checked-in file.
	assert.Equal(t, "from-environment", cfg.JWT.SecretKey)
	assert.Equal(t, "pg-pass", cfg.Repositories.Postgres.Password)
}
