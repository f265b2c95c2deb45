package prompts

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/webpilot/webpilot/pkg/agent/tools"
	"github.com/webpilot/webpilot/pkg/types"
)

type stubTool struct {
	name        string
	description string
}

func (t *stubTool) Name() string        { return t.name }
func (t *stubTool) Description() string { return t.description }
func (t *stubTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(map[string]interface{}{
		"value": map[string]interface{}{"type": "string"},
	}, []string{"value"})
}
func (t *stubTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	return "", nil, nil
}
func (t *stubTool) IsLoopBreaking() bool { return false }

func TestPromptBuilder(t *testing.T) {
	t.Run("Default", func(t *testing.T) {
		prompt := NewPromptBuilder().Build()
		if !strings.Contains(prompt, "browser automation") {
			t.Error("expected capabilities section in prompt")
		}
		if strings.Contains(prompt, "<available_tools>") {
			t.Error("expected no tools section without tools")
		}
	})

	t.Run("WithTools", func(t *testing.T) {
		prompt := NewPromptBuilder().
			WithTools([]tools.Tool{&stubTool{name: "browser_navigate", description: "Navigate to a URL."}}).
			Build()
		if !strings.Contains(prompt, "<available_tools>") {
			t.Error("expected available_tools section")
		}
		if !strings.Contains(prompt, "## browser_navigate") {
			t.Error("expected tool heading in prompt")
		}
		if !strings.Contains(prompt, "Navigate to a URL.") {
			t.Error("expected tool description in prompt")
		}
	})

	t.Run("WithTaskContext", func(t *testing.T) {
		prompt := NewPromptBuilder().
			WithTaskContext("Task: extract the page heading\nTarget URL: https://example.com").
			Build()
		if !strings.Contains(prompt, "<task_context>") {
			t.Error("expected task_context section")
		}
		if !strings.Contains(prompt, "https://example.com") {
			t.Error("expected target URL in prompt")
		}
	})

	t.Run("WithCustomInstructions", func(t *testing.T) {
		prompt := NewPromptBuilder().
			WithCustomInstructions("Always prefer text extraction.").
			Build()
		if !strings.HasPrefix(prompt, "<custom_instructions>") {
			t.Error("expected custom instructions at the start of the prompt")
		}
	})
}

func TestAutomationGuidanceUsesRegisteredToolNames(t *testing.T) {
	// Guidance must reference tools by their registered names, or the
	// model is steered straight into unknown-tool recovery.
	for _, name := range []string{
		"browser_extract_content",
		"browser_search",
		"browser_analyze_page",
		"task_completion",
	} {
		if !strings.Contains(AutomationGuidancePrompt, name) {
			t.Errorf("guidance missing tool name %q", name)
		}
	}
	for _, stale := range []string{" extract_content", " analyze_page"} {
		if strings.Contains(AutomationGuidancePrompt, stale) {
			t.Errorf("guidance references unregistered tool name %q", strings.TrimSpace(stale))
		}
	}
}

func TestFormatToolSchemas(t *testing.T) {
	out := FormatToolSchemas([]tools.Tool{
		&stubTool{name: "a_tool", description: "does a"},
		&stubTool{name: "b_tool", description: "does b"},
	})

	if !strings.Contains(out, "## a_tool") || !strings.Contains(out, "## b_tool") {
		t.Error("expected headings for both tools")
	}
	if !strings.Contains(out, "Parameters (JSON schema):") {
		t.Error("expected schema section")
	}
	if !strings.Contains(out, `"required"`) {
		t.Error("expected required fields in rendered schema")
	}
}

func TestBuildMessages(t *testing.T) {
	history := []*types.Message{
		types.NewSystemMessage("stale system prompt"),
		types.NewUserMessage("open the page"),
		types.NewAssistantMessage("opening"),
	}

	t.Run("SkipsStoredSystemMessages", func(t *testing.T) {
		messages := BuildMessages("fresh system prompt", history, "")
		if len(messages) != 3 {
			t.Fatalf("expected 3 messages, got %d", len(messages))
		}
		if messages[0].Content != "fresh system prompt" {
			t.Errorf("expected fresh system prompt first, got '%s'", messages[0].Content)
		}
		for _, msg := range messages[1:] {
			if msg.Role == types.RoleSystem {
				t.Error("stored system messages should be skipped")
			}
		}
	})

	t.Run("AppendsErrorContext", func(t *testing.T) {
		messages := BuildMessages("sp", history, "recover from the parse failure")
		last := messages[len(messages)-1]
		if last.Role != types.RoleUser || last.Content != "recover from the parse failure" {
			t.Errorf("expected error context as final user message, got %+v", last)
		}
	})
}

func TestBuildErrorRecoveryMessage(t *testing.T) {
	t.Run("NoToolCall", func(t *testing.T) {
		msg := BuildErrorRecoveryMessage(ErrorRecoveryContext{Type: ErrorTypeNoToolCall})
		if !strings.Contains(msg, "task_completion") || !strings.Contains(msg, "report_failure") {
			t.Errorf("expected loop-breaking tools named in recovery message, got: %s", msg)
		}
	})

	t.Run("ParseFailed", func(t *testing.T) {
		msg := BuildErrorRecoveryMessage(ErrorRecoveryContext{
			Type:  ErrorTypeParseFailed,
			Error: errors.New("unexpected EOF"),
		})
		if !strings.Contains(msg, "unexpected EOF") {
			t.Errorf("expected parse error included, got: %s", msg)
		}
	})

	t.Run("UnknownTool", func(t *testing.T) {
		msg := BuildErrorRecoveryMessage(ErrorRecoveryContext{
			Type:     ErrorTypeUnknownTool,
			ToolName: "browser_teleport",
			AvailableTools: []tools.Tool{
				&stubTool{name: "browser_navigate"},
				&stubTool{name: "browser_click"},
			},
		})
		if !strings.Contains(msg, "browser_teleport") {
			t.Errorf("expected unknown tool name, got: %s", msg)
		}
		if !strings.Contains(msg, "browser_navigate, browser_click") {
			t.Errorf("expected available tools listed, got: %s", msg)
		}
	})

	t.Run("ToolExecution", func(t *testing.T) {
		msg := BuildErrorRecoveryMessage(ErrorRecoveryContext{
			Type:     ErrorTypeToolExecution,
			ToolName: "browser_click",
			Error:    errors.New("selector not found"),
		})
		if !strings.Contains(msg, "browser_click") || !strings.Contains(msg, "selector not found") {
			t.Errorf("expected tool name and error, got: %s", msg)
		}
	})
}
