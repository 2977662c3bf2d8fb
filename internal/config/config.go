package config

import (
	"fmt"
	"time"

	"github.com/danomnoms/server/internal/agent/model"
	"github.com/danomnoms/server/internal/core"
	"github.com/danomnoms/server/internal/delivery"
	pkgmongo "github.com/danomnoms/server/pkg/mongo"
	pkgredis "github.com/danomnoms/server/pkg/redis"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// AppConfig defines all configurable parameters of the service,
// sourced from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Env string `envconfig:"APP_ENV" default:"development"`

	Server struct {
		Addr            string `envconfig:"SERVER_ADDR" default:":8000"`
		ShutdownTimeout int    `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"10"`
	}

	// CatalogStore selects the catalog backend: "mongo" or "memory" (seeded fake data).
	CatalogStore string `envconfig:"CATALOG_STORE" default:"mongo"`

	// Infrastructure
	Mongo pkgmongo.Config
	Redis pkgredis.Config

	// LLM provider. The agent endpoint is disabled when the key is empty.
	APIKey  string `envconfig:"GEMINI_API_KEY"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`

	// Agent configs
	ChatModel    model.ChatModelConfig
	Prompt       model.PromptConfig
	Conversation model.ConversationConfig

	DoorDash delivery.Config
}

// Environment returns the parsed APP_ENV.
func (c *AppConfig) Environment() core.Environment {
	return core.ParseEnvironment(c.Env)
}

// ConversationTTL parses CONVERSATION_TTL. "0" and "" mean no expiry.
func (c *AppConfig) ConversationTTL() (time.Duration, error) {
	if c.Conversation.TTL == "" || c.Conversation.TTL == "0" {
		return 0, nil
	}
	ttl, err := time.ParseDuration(c.Conversation.TTL)
	if err != nil {
		return 0, fmt.Errorf("invalid CONVERSATION_TTL %q: %w", c.Conversation.TTL, err)
	}
	return ttl, nil
}

// Load reads envFiles (missing files are skipped) and then the process environment.
func Load(envFiles ...string) (*AppConfig, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		// godotenv never overrides variables already set in the environment.
		_ = godotenv.Load(f)
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process environment config: %w", err)
	}
	if cfg.CatalogStore != "mongo" && cfg.CatalogStore != "memory" {
		return nil, fmt.Errorf("invalid CATALOG_STORE %q: want mongo or memory", cfg.CatalogStore)
	}
	if cfg.Conversation.Store != "memory" && cfg.Conversation.Store != "redis" {
		return nil, fmt.Errorf("invalid CONVERSATION_STORE %q: want memory or redis", cfg.Conversation.Store)
	}
	if cfg.Conversation.Store == "redis" && cfg.Redis.URL == "" {
		return nil, fmt.Errorf("REDIS_URL is required when CONVERSATION_STORE=redis")
	}
	if _, err := cfg.ConversationTTL(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
