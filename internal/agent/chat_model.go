package agent

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino/schema"
	"github.com/danomnoms/server/internal/agent/model"
	logx "github.com/danomnoms/server/pkg/logger"
	"google.golang.org/genai"
)

// ChatModelConfig holds what is needed to build the Gemini chat model.
type ChatModelConfig struct {
	APIKey  string
	BaseURL string
	Model   model.ChatModelConfig
	Tools   []*schema.ToolInfo
}

// NewGeminiChatModel creates the Gemini chat model and binds the tool menu to it.
func NewGeminiChatModel(ctx context.Context, config ChatModelConfig) (*gemini.ChatModel, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = config.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	temperature := config.Model.Temperature
	maxTokens := config.Model.MaxTokens
	cm, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       config.Model.Model,
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating chat model")
		return nil, fmt.Errorf("error creating chat model: %w", err)
	}

	if len(config.Tools) > 0 {
		if err := cm.BindTools(config.Tools); err != nil {
			logx.Error().Err(err).Msg("Failed to bind tools")
			return nil, fmt.Errorf("failed to bind tools: %w", err)
		}
	}

	logx.Debug().Str("model", config.Model.Model).Int("tools", len(config.Tools)).Msg("Chat model ready")
	return cm, nil
}
