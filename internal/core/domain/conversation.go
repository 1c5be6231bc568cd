package domain

// Role identifies who authored a conversation message.
type Role string

// Conversation roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// IsValid returns true if the role is recognised.
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAssistant
}

// Fixed assistant texts.
const (
	// GreetingText seeds every new conversation.
	GreetingText = "Hi! How can I assist you today?"

	// SearchErrorText is appended when the case match backend fails.
	SearchErrorText = "Error: Unable to fetch a response."
)

// Message is a single conversation turn. Messages are never edited once
// appended.
type Message struct {
	Role    Role
	Content string
}
