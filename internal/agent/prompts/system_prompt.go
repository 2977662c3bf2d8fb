package prompts

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
	"github.com/danomnoms/server/internal/agent/model"
)

const defaultServiceName = "DaNomNoms"

//go:embed template/system_prompt.txt
var systemPrompt string

// RenderSystem renders the agent's system prompt and triggers prompt callbacks.
func RenderSystem(ctx context.Context, cfg model.PromptConfig) (string, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = defaultServiceName
	}

	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage(systemPrompt),
	)
	msgs, err := tpl.Format(ctx, map[string]any{
		"ServiceName": name,
	})
	if err != nil {
		return "", fmt.Errorf("system prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("system prompt render: empty result")
	}
	return strings.TrimSpace(msgs[0].Content), nil
}
