package cmd

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/callbacks"
	"github.com/danomnoms/server/internal/agent"
	"github.com/danomnoms/server/internal/agent/conversations"
	agentmodel "github.com/danomnoms/server/internal/agent/model"
	"github.com/danomnoms/server/internal/agent/observers"
	"github.com/danomnoms/server/internal/agent/tools"
	"github.com/danomnoms/server/internal/catalog"
	"github.com/danomnoms/server/internal/config"
	"github.com/danomnoms/server/internal/delivery"
	"github.com/danomnoms/server/internal/restaurant"
	"github.com/danomnoms/server/internal/seed"
	logx "github.com/danomnoms/server/pkg/logger"
)

// app is the wired service graph shared by serve and chat.
type app struct {
	restaurants *restaurant.Service
	deliveries  *delivery.Client

	// nil when no Gemini key is configured
	agent *agent.Agent

	closers []func()
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func buildApp(ctx context.Context, cfg *config.AppConfig) (*app, error) {
	a := &app{}

	repo, err := buildCatalog(ctx, cfg, a)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.restaurants = restaurant.NewService(repo)
	a.deliveries = delivery.NewClient(cfg.DoorDash)

	if cfg.APIKey == "" {
		logx.Warn().Msg("GEMINI_API_KEY not set, agent chat is disabled")
		return a, nil
	}

	threads, err := buildThreadRepository(ctx, cfg, a)
	if err != nil {
		a.Close()
		return nil, err
	}

	cm, err := agent.NewGeminiChatModel(ctx, agent.ChatModelConfig{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Model:   cfg.ChatModel,
		Tools:   tools.Infos(),
	})
	if err != nil {
		a.Close()
		return nil, err
	}

	a.agent, err = agent.New(agent.Config{
		ChatModel:     cm,
		ModelName:     cfg.ChatModel.Model,
		Tools:         tools.NewExecutor(a.restaurants, a.deliveries, cfg.Conversation.Tools.ResultMaxChars),
		Conversations: conversations.NewManager(threads, cfg.Conversation),
		Prompt:        cfg.Prompt,
		MaxRounds:     cfg.Conversation.Tools.MaxRounds,
		Callbacks:     []callbacks.Handler{observers.NewAllCallbacks()},
	})
	if err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func buildCatalog(ctx context.Context, cfg *config.AppConfig, a *app) (catalog.Repository, error) {
	if cfg.CatalogStore == "memory" {
		restaurants, items := seed.Generate(seed.Options{})
		logx.Info().Int("restaurants", len(restaurants)).Int("items", len(items)).Msg("using in-memory seeded catalog")
		return catalog.NewMemoryRepository(restaurants, items), nil
	}

	client, err := cfg.Mongo.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}
	a.closers = append(a.closers, func() { _ = client.Disconnect(context.Background()) })
	logx.Info().Str("database", cfg.Mongo.Database).Msg("Connected to MongoDB")
	return catalog.NewMongoRepository(cfg.Mongo.DatabaseOf(client), cfg.Mongo.RestaurantsCollection, cfg.Mongo.ItemsCollection), nil
}

func buildThreadRepository(ctx context.Context, cfg *config.AppConfig, a *app) (agentmodel.ThreadRepository, error) {
	if cfg.Conversation.Store != "redis" {
		return conversations.NewMemoryThreadRepository(), nil
	}

	ttl, err := cfg.ConversationTTL()
	if err != nil {
		return nil, err
	}
	rdb, err := cfg.Redis.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("connect to Redis: %w", err)
	}
	a.closers = append(a.closers, func() { _ = rdb.Close() })
	logx.Info().Dur("ttl", ttl).Msg("Connected to Redis thread store")
	return conversations.NewRedisThreadRepository(rdb, ttl), nil
}
