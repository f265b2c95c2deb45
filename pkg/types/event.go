package types

// AgentEventType defines the type of event emitted by the agent.
type AgentEventType string

const (
	EventTypeThinkingStart   AgentEventType = "thinking_start"    // EventTypeThinkingStart indicates the agent is starting to think/reason.
	EventTypeThinkingContent AgentEventType = "thinking_content"  // EventTypeThinkingContent indicates content from the agent's thinking process.
	EventTypeThinkingEnd     AgentEventType = "thinking_end"      // EventTypeThinkingEnd indicates the agent has finished thinking.
	EventTypeMessageStart    AgentEventType = "message_start"     // EventTypeMessageStart indicates the agent is starting to compose a message.
	EventTypeMessageContent  AgentEventType = "message_content"   // EventTypeMessageContent indicates content from the agent's message.
	EventTypeMessageEnd      AgentEventType = "message_end"       // EventTypeMessageEnd indicates the agent has finished composing the message.
	EventTypeToolCall        AgentEventType = "tool_call"         // EventTypeToolCall indicates the agent is calling a tool.
	EventTypeToolResult      AgentEventType = "tool_result"       // EventTypeToolResult indicates a successful tool call result.
	EventTypeToolResultError AgentEventType = "tool_result_error" // EventTypeToolResultError indicates a tool call resulted in an error.
	EventTypeUpdateBusy      AgentEventType = "update_busy"       // EventTypeUpdateBusy indicates a change in the agent's busy status.
	EventTypeTokenUsage      AgentEventType = "token_usage"       // EventTypeTokenUsage indicates token usage from an LLM completion.
	EventTypeTurnEnd         AgentEventType = "turn_end"          // EventTypeTurnEnd indicates the agent finished processing the current turn.
	EventTypeError           AgentEventType = "error"             // EventTypeError indicates an error occurred during agent processing.
	EventTypeStageStart      AgentEventType = "stage_start"       // EventTypeStageStart indicates an automation flow stage has begun.
	EventTypeStageEnd        AgentEventType = "stage_end"         // EventTypeStageEnd indicates an automation flow stage has finished.
)

// AgentEvent represents an event emitted by the agent or flow during execution.
type AgentEvent struct {
	// Type indicates the kind of event.
	Type AgentEventType `json:"type"`

	// Content holds text content for content-type events (thinking, message, etc.).
	Content string `json:"content,omitempty"`

	// ToolName is the name of the tool being called (for tool events).
	ToolName string `json:"tool_name,omitempty"`

	// ToolInput is the input being sent to the tool (for tool call events).
	ToolInput map[string]interface{} `json:"tool_input,omitempty"`

	// ToolOutput is the result from the tool (for tool result events).
	ToolOutput interface{} `json:"tool_output,omitempty"`

	// Stage is the flow stage name (for stage events).
	Stage string `json:"stage,omitempty"`

	// IsBusy indicates if the agent is busy (for busy status events).
	IsBusy bool `json:"is_busy,omitempty"`

	// TokenUsage contains token counts (for token usage events).
	TokenUsage *TokenUsage `json:"token_usage,omitempty"`

	// Error contains error information for error events.
	Error error `json:"-"`

	// ErrorMessage mirrors Error for wire serialization.
	ErrorMessage string `json:"error,omitempty"`

	// Metadata holds optional additional information about the event.
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// TokenUsage contains token usage statistics from an LLM API call.
type TokenUsage struct {
	// PromptTokens is the number of tokens in the input/prompt.
	PromptTokens int `json:"prompt_tokens"`

	// CompletionTokens is the number of tokens in the generated completion.
	CompletionTokens int `json:"completion_tokens"`

	// TotalTokens is the total number of tokens used (prompt + completion).
	TotalTokens int `json:"total_tokens"`
}

// NewThinkingContentEvent creates a thinking content event.
func NewThinkingContentEvent(content string) *AgentEvent {
	return &AgentEvent{Type: EventTypeThinkingContent, Content: content}
}

// NewMessageContentEvent creates a message content event.
func NewMessageContentEvent(content string) *AgentEvent {
	return &AgentEvent{Type: EventTypeMessageContent, Content: content}
}

// NewToolCallEvent creates a tool call event with the parsed input.
func NewToolCallEvent(toolName string, input map[string]interface{}) *AgentEvent {
	return &AgentEvent{
		Type:      EventTypeToolCall,
		ToolName:  toolName,
		ToolInput: input,
		Metadata:  make(map[string]interface{}),
	}
}

// NewToolResultEvent creates a successful tool result event.
func NewToolResultEvent(toolName string, output interface{}) *AgentEvent {
	return &AgentEvent{
		Type:       EventTypeToolResult,
		ToolName:   toolName,
		ToolOutput: output,
		Metadata:   make(map[string]interface{}),
	}
}

// NewToolResultErrorEvent creates a tool result error event.
func NewToolResultErrorEvent(toolName string, err error) *AgentEvent {
	return &AgentEvent{
		Type:         EventTypeToolResultError,
		ToolName:     toolName,
		Error:        err,
		ErrorMessage: err.Error(),
	}
}

// NewUpdateBusyEvent creates a busy status event.
func NewUpdateBusyEvent(busy bool) *AgentEvent {
	return &AgentEvent{Type: EventTypeUpdateBusy, IsBusy: busy}
}

// NewTokenUsageEvent creates a token usage event.
func NewTokenUsageEvent(prompt, completion, total int) *AgentEvent {
	return &AgentEvent{
		Type: EventTypeTokenUsage,
		TokenUsage: &TokenUsage{
			PromptTokens:     prompt,
			CompletionTokens: completion,
			TotalTokens:      total,
		},
	}
}

// NewTurnEndEvent creates a turn end event.
func NewTurnEndEvent() *AgentEvent {
	return &AgentEvent{Type: EventTypeTurnEnd}
}

// NewErrorEvent creates an error event.
func NewErrorEvent(err error) *AgentEvent {
	return &AgentEvent{Type: EventTypeError, Error: err, ErrorMessage: err.Error()}
}

// NewStageStartEvent creates a flow stage start event.
func NewStageStartEvent(stage string) *AgentEvent {
	return &AgentEvent{Type: EventTypeStageStart, Stage: stage}
}

// NewStageEndEvent creates a flow stage end event.
func NewStageEndEvent(stage string) *AgentEvent {
	return &AgentEvent{Type: EventTypeStageEnd, Stage: stage}
}
