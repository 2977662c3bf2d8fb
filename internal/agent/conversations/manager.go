package conversations

import (
	"context"
	"sync"

	"github.com/cloudwego/eino/schema"
	"github.com/danomnoms/server/internal/agent/model"
)

const DefaultMaxMessages = 20

// Manager owns thread history: windowed reads, filtered writes and per-thread serialisation.
type Manager struct {
	repo        model.ThreadRepository
	maxMessages int

	mu    sync.Mutex
	locks map[string]*threadLock
}

type threadLock struct {
	mu   sync.Mutex
	refs int
}

func NewManager(repo model.ThreadRepository, config model.ConversationConfig) *Manager {
	maxMessages := config.MaxMessages
	if maxMessages <= 0 {
		maxMessages = DefaultMaxMessages
	}
	return &Manager{
		repo:        repo,
		maxMessages: maxMessages,
		locks:       make(map[string]*threadLock),
	}
}

// Lock serialises turns on one thread. The returned func releases it.
func (m *Manager) Lock(threadID string) (unlock func()) {
	m.mu.Lock()
	l, ok := m.locks[threadID]
	if !ok {
		l = &threadLock{}
		m.locks[threadID] = l
	}
	l.refs++
	m.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		m.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(m.locks, threadID)
		}
		m.mu.Unlock()
	}
}

// LoadWindow returns the stored thread trimmed to the window. Unknown threads are empty.
func (m *Manager) LoadWindow(ctx context.Context, threadID string) ([]*schema.Message, error) {
	thread, err := m.repo.LoadThread(ctx, threadID)
	if err != nil {
		return nil, err
	}
	return trimTail(thread.Messages, m.maxMessages), nil
}

// SaveTurn drops system messages, trims to the window and replaces the stored thread.
func (m *Manager) SaveTurn(ctx context.Context, threadID string, messages []*schema.Message) error {
	kept := make([]*schema.Message, 0, len(messages))
	for _, msg := range messages {
		if msg == nil || msg.Role == schema.System {
			continue
		}
		kept = append(kept, msg)
	}
	return m.repo.SaveThread(ctx, threadID, trimTail(kept, m.maxMessages))
}

// MaxMessages is the non-system window size.
func (m *Manager) MaxMessages() int {
	return m.maxMessages
}

// ====================== Helper function ======================

// trimTail keeps every system message plus the last maxMessages others, in order.
// A cut window always restarts at a user message, so a tool call is never separated
// from the turn that asked for it or from its results.
func trimTail(messages []*schema.Message, maxMessages int) []*schema.Message {
	var system, rest []*schema.Message
	for _, msg := range messages {
		if msg == nil {
			continue
		}
		if msg.Role == schema.System {
			system = append(system, msg)
			continue
		}
		rest = append(rest, msg)
	}

	if len(rest) > maxMessages {
		rest = rest[len(rest)-maxMessages:]
		for len(rest) > 0 && rest[0].Role != schema.User {
			rest = rest[1:]
		}
	}

	result := make([]*schema.Message, 0, len(system)+len(rest))
	result = append(result, system...)
	return append(result, rest...)
}
