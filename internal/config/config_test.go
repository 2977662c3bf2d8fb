package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/danomnoms/server/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(noEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, core.Development, cfg.Environment())
	assert.Equal(t, ":8000", cfg.Server.Addr)
	assert.Equal(t, "mongo", cfg.CatalogStore)
	assert.Equal(t, "memory", cfg.Conversation.Store)
	assert.Equal(t, 20, cfg.Conversation.MaxMessages)
	assert.Equal(t, 10, cfg.Conversation.Tools.MaxRounds)
	assert.Equal(t, 5000, cfg.Conversation.Tools.ResultMaxChars)
	assert.Equal(t, "gemini-2.5-flash", cfg.ChatModel.Model)
	assert.Equal(t, "https://openapi.doordash.com/drive/v2", cfg.DoorDash.BaseURL)
	assert.Equal(t, 30, cfg.DoorDash.Timeout)

	ttl, err := cfg.ConversationTTL()
	require.NoError(t, err)
	assert.Zero(t, ttl)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("CONVERSATION_STORE", "redis")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("CONVERSATION_TTL", "24h")
	t.Setenv("DOORDASH_DEVELOPER_ID", "dev-1")

	cfg, err := Load(noEnvFile(t))
	require.NoError(t, err)
	assert.Equal(t, core.Production, cfg.Environment())
	assert.Equal(t, "dev-1", cfg.DoorDash.DeveloperID)

	ttl, err := cfg.ConversationTTL()
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, ttl)
}

func TestLoadRejectsBadSettings(t *testing.T) {
	cases := map[string]map[string]string{
		"catalog store":      {"CATALOG_STORE": "postgres"},
		"conversation store": {"CONVERSATION_STORE": "disk"},
		"redis without url":  {"CONVERSATION_STORE": "redis", "REDIS_URL": ""},
		"ttl":                {"CONVERSATION_TTL": "tomorrow"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load(noEnvFile(t))
			assert.Error(t, err)
		})
	}
}
