package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitConfig_Defaults(t *testing.T) {
	cfg, err := InitConfig()
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, 20, cfg.Enrichment.Concurrency)
	assert.Equal(t, 10*time.Second, cfg.Places.Timeout)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.True(t, cfg.Schedule.UseOracle)
	assert.False(t, cfg.Scoring.LowScoreFloor)
	assert.Equal(t, "trip:", cfg.Repositories.Redis.Prefix)
}

func TestInitConfig_EnvOverrides(t *testing.T) {
	t.Setenv("GOOGLE_MAPS_API_KEY", "maps-key")
	t.Setenv("OPENAI_API_KEY", "openai-key")
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("CACHE_BACKEND", "redis")

	cfg, err := InitConfig()
	require.NoError(t, err)

	assert.Equal(t, "maps-key", cfg.Places.APIKey)
	assert.Equal(t, "redis", cfg.Cache.Backend)
	assert.Equal(t, "openai-key", cfg.LLMAPIKey())
}
