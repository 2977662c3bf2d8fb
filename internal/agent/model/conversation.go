package model

import (
	"context"

	"github.com/cloudwego/eino/schema"
)

type ThreadRepository interface {
	// LoadThread returns the stored messages of a thread, empty when the thread is unknown.
	LoadThread(ctx context.Context, threadID string) (*Thread, error)

	// SaveThread replaces the stored messages of a thread.
	SaveThread(ctx context.Context, threadID string, messages []*schema.Message) error
}

// Thread represents loaded conversation data with metadata.
type Thread struct {
	ThreadID string
	Messages []*schema.Message
}

// ChatInput is one user turn addressed to the agent.
type ChatInput struct {
	ThreadID string `json:"thread_id,omitempty"`
	Prompt   string `json:"prompt" validate:"required"`
}

// ChatOutput is the agent's reply for a turn.
type ChatOutput struct {
	Response string `json:"response"`
	ThreadID string `json:"thread_id"`
}
