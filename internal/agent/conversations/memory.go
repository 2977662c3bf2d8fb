package conversations

import (
	"context"
	"sync"

	"github.com/cloudwego/eino/schema"
	"github.com/danomnoms/server/internal/agent/model"
)

// MemoryThreadRepository keeps threads in process memory with no expiry.
type MemoryThreadRepository struct {
	mu      sync.RWMutex
	threads map[string][]*schema.Message
}

func NewMemoryThreadRepository() *MemoryThreadRepository {
	return &MemoryThreadRepository{threads: make(map[string][]*schema.Message)}
}

func (r *MemoryThreadRepository) LoadThread(_ context.Context, threadID string) (*model.Thread, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored := r.threads[threadID]
	msgs := make([]*schema.Message, len(stored))
	copy(msgs, stored)
	return &model.Thread{ThreadID: threadID, Messages: msgs}, nil
}

func (r *MemoryThreadRepository) SaveThread(_ context.Context, threadID string, messages []*schema.Message) error {
	msgs := make([]*schema.Message, len(messages))
	copy(msgs, messages)
	r.mu.Lock()
	r.threads[threadID] = msgs
	r.mu.Unlock()
	return nil
}

var _ model.ThreadRepository = (*MemoryThreadRepository)(nil)
