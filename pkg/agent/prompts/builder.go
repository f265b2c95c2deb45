// Package prompts constructs system prompts and recovery messages for
// the automation agent loop.
package prompts

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/webpilot/webpilot/pkg/agent/tools"
	"github.com/webpilot/webpilot/pkg/types"
)

// PromptBuilder constructs dynamic system prompts for the agent loop.
type PromptBuilder struct {
	tools              []tools.Tool
	customInstructions string
	taskContext        string
}

// NewPromptBuilder creates a new prompt builder with default settings.
func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{
		tools: []tools.Tool{},
	}
}

// WithTools sets the available tools for the agent.
func (pb *PromptBuilder) WithTools(toolsList []tools.Tool) *PromptBuilder {
	pb.tools = toolsList
	return pb
}

// WithCustomInstructions adds user-provided instructions.
func (pb *PromptBuilder) WithCustomInstructions(instructions string) *PromptBuilder {
	pb.customInstructions = instructions
	return pb
}

// WithTaskContext adds the automation task context (target URL, task
// description, complexity) produced by the planner.
func (pb *PromptBuilder) WithTaskContext(context string) *PromptBuilder {
	pb.taskContext = context
	return pb
}

// Build assembles the complete system prompt.
func (pb *PromptBuilder) Build() string {
	var builder strings.Builder

	if pb.customInstructions != "" {
		builder.WriteString("<custom_instructions>\n")
		builder.WriteString(pb.customInstructions)
		builder.WriteString("\n</custom_instructions>\n\n")
	}

	if pb.taskContext != "" {
		builder.WriteString("<task_context>\n")
		builder.WriteString(pb.taskContext)
		builder.WriteString("\n</task_context>\n\n")
	}

	builder.WriteString(SystemCapabilitiesPrompt)
	builder.WriteString("\n\n")
	builder.WriteString(AgentLoopPrompt)
	builder.WriteString("\n\n")
	builder.WriteString(ChainOfThoughtPrompt)
	builder.WriteString("\n\n")
	builder.WriteString(ToolCallingPrompt)
	builder.WriteString("\n\n")

	if len(pb.tools) > 0 {
		builder.WriteString("<available_tools>\n")
		builder.WriteString(FormatToolSchemas(pb.tools))
		builder.WriteString("</available_tools>\n\n")
	}

	builder.WriteString(AutomationGuidancePrompt)

	return builder.String()
}

// FormatToolSchemas renders tool names, descriptions, and parameter
// schemas for inclusion in the system prompt.
func FormatToolSchemas(toolsList []tools.Tool) string {
	var builder strings.Builder

	for _, tool := range toolsList {
		builder.WriteString(fmt.Sprintf("## %s\n", tool.Name()))
		builder.WriteString(tool.Description())
		builder.WriteString("\n")

		schema, err := json.MarshalIndent(tool.Schema(), "", "  ")
		if err == nil {
			builder.WriteString("Parameters (JSON schema):\n")
			builder.Write(schema)
			builder.WriteString("\n")
		}
		builder.WriteString("\n")
	}

	return builder.String()
}

// BuildMessages creates a complete message list including the system
// prompt and conversation history. The errorContext parameter carries
// ephemeral recovery messages that are not stored in permanent memory.
func BuildMessages(systemPrompt string, history []*types.Message, errorContext string) []*types.Message {
	messages := make([]*types.Message, 0, len(history)+2)

	messages = append(messages, types.NewSystemMessage(systemPrompt))

	// Skip stored system messages to avoid duplicates.
	for _, msg := range history {
		if msg.Role != types.RoleSystem {
			messages = append(messages, msg)
		}
	}

	if errorContext != "" {
		messages = append(messages, types.NewUserMessage(errorContext))
	}

	return messages
}

// ErrorRecoveryType classifies an agent loop failure.
type ErrorRecoveryType string

const (
	ErrorTypeNoToolCall    ErrorRecoveryType = "no_tool_call"   // LLM response without a tool call
	ErrorTypeParseFailed   ErrorRecoveryType = "parse_failed"   // tool call XML did not parse
	ErrorTypeUnknownTool   ErrorRecoveryType = "unknown_tool"   // tool name not registered
	ErrorTypeToolExecution ErrorRecoveryType = "tool_execution" // tool returned an error
)

// ErrorRecoveryContext carries the details needed to build a recovery
// message for the next loop iteration.
type ErrorRecoveryContext struct {
	Type           ErrorRecoveryType
	ToolName       string
	Error          error
	AvailableTools []tools.Tool
}

// BuildErrorRecoveryMessage renders an ephemeral user message that
// tells the agent what went wrong and how to proceed.
func BuildErrorRecoveryMessage(rc ErrorRecoveryContext) string {
	switch rc.Type {
	case ErrorTypeNoToolCall:
		return "Your previous response did not contain a tool call. Every response must include " +
			"exactly one tool call. If the task is finished, use task_completion; if it cannot be " +
			"completed, use report_failure."

	case ErrorTypeParseFailed:
		return fmt.Sprintf("Your previous tool call could not be parsed: %v\n"+
			"Re-send the tool call as valid XML, escaping special characters in argument values.", rc.Error)

	case ErrorTypeUnknownTool:
		names := make([]string, 0, len(rc.AvailableTools))
		for _, tool := range rc.AvailableTools {
			names = append(names, tool.Name())
		}
		return fmt.Sprintf("The tool '%s' does not exist. Available tools: %s. "+
			"Choose one of these for your next call.", rc.ToolName, strings.Join(names, ", "))

	case ErrorTypeToolExecution:
		return fmt.Sprintf("Tool '%s' failed: %v\n"+
			"Analyze the error and either retry with corrected arguments or take a different approach.",
			rc.ToolName, rc.Error)
	}

	return fmt.Sprintf("An error occurred: %v. Adjust your approach and continue.", rc.Error)
}
