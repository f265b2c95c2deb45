package types

// MessageRole identifies the author of a conversation message.
type MessageRole string

const (
	RoleSystem    MessageRole = "system"    // RoleSystem is the system prompt role.
	RoleUser      MessageRole = "user"      // RoleUser is the end-user role.
	RoleAssistant MessageRole = "assistant" // RoleAssistant is the model response role.
)

// Message is a single conversation message exchanged with an LLM.
type Message struct {
	// Role indicates who authored the message.
	Role MessageRole `json:"role"`

	// Content is the text content of the message.
	Content string `json:"content"`
}

// NewSystemMessage creates a message with the system role.
func NewSystemMessage(content string) *Message {
	return &Message{Role: RoleSystem, Content: content}
}

// NewUserMessage creates a message with the user role.
func NewUserMessage(content string) *Message {
	return &Message{Role: RoleUser, Content: content}
}

// NewAssistantMessage creates a message with the assistant role.
func NewAssistantMessage(content string) *Message {
	return &Message{Role: RoleAssistant, Content: content}
}

// ModelInfo describes the LLM model behind a provider.
type ModelInfo struct {
	// Provider is the provider family name (e.g. "openai").
	Provider string

	// Name is the model identifier.
	Name string

	// MaxTokens is the model's context window size, if known.
	MaxTokens int

	// SupportsStreaming indicates whether the provider streams responses.
	SupportsStreaming bool

	// Metadata holds provider-specific details such as a custom base URL.
	Metadata map[string]interface{}
}
