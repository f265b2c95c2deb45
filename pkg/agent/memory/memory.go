// Package memory provides conversation history storage for agents.
package memory

import (
	"sync"

	"github.com/webpilot/webpilot/pkg/types"
)

// Memory stores conversation history for an agent.
type Memory interface {
	// Add appends a message to the history.
	Add(msg *types.Message)

	// GetAll returns a copy of the full history in order.
	GetAll() []*types.Message

	// Len returns the number of stored messages.
	Len() int

	// Clear removes all stored messages.
	Clear()
}

// ConversationMemory is a thread-safe in-memory Memory implementation.
type ConversationMemory struct {
	mu       sync.RWMutex
	messages []*types.Message
}

// NewConversationMemory creates an empty conversation memory.
func NewConversationMemory() *ConversationMemory {
	return &ConversationMemory{}
}

// Add appends a message to the history.
func (m *ConversationMemory) Add(msg *types.Message) {
	if msg == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
}

// GetAll returns a copy of the full history in order.
func (m *ConversationMemory) GetAll() []*types.Message {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*types.Message, len(m.messages))
	copy(out, m.messages)
	return out
}

// Len returns the number of stored messages.
func (m *ConversationMemory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.messages)
}

// Clear removes all stored messages.
func (m *ConversationMemory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = nil
}
