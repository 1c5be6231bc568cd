package services

import (
	"fmt"
	"sync"

	"github.com/custodia-labs/citewise/internal/core/domain"
)

// Conversation is the append-only message log plus the pending flag.
type Conversation struct {
	mu       sync.RWMutex
	messages []domain.Message
	pending  bool
}

// NewConversation creates a conversation seeded with the assistant greeting.
func NewConversation() *Conversation {
	return &Conversation{
		messages: []domain.Message{{Role: domain.RoleAssistant, Content: domain.GreetingText}},
	}
}

// Append adds a message to the end of the log.
func (c *Conversation) Append(msg domain.Message) error {
	if !msg.Role.IsValid() {
		return fmt.Errorf("append message with role %q: %w", msg.Role, domain.ErrInvalidInput)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, msg)
	return nil
}

// Messages returns a copy of the log in insertion order.
func (c *Conversation) Messages() []domain.Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the number of messages.
func (c *Conversation) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.messages)
}

// SetPending sets the pending flag.
func (c *Conversation) SetPending(pending bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = pending
}

// IsPending reports whether a response is awaited.
func (c *Conversation) IsPending() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pending
}
