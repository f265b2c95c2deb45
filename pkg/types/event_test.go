package types

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestEventConstructors(t *testing.T) {
	t.Run("ToolCall", func(t *testing.T) {
		event := NewToolCallEvent("browser_navigate", map[string]interface{}{"url": "https://example.com"})
		if event.Type != EventTypeToolCall {
			t.Errorf("unexpected type: %s", event.Type)
		}
		if event.ToolInput["url"] != "https://example.com" {
			t.Errorf("unexpected tool input: %v", event.ToolInput)
		}
		if event.Metadata == nil {
			t.Error("expected metadata map initialized")
		}
	})

	t.Run("Error", func(t *testing.T) {
		event := NewErrorEvent(errors.New("boom"))
		if event.ErrorMessage != "boom" {
			t.Errorf("expected error message mirrored, got '%s'", event.ErrorMessage)
		}
	})

	t.Run("Stage", func(t *testing.T) {
		event := NewStageStartEvent("plan")
		if event.Type != EventTypeStageStart || event.Stage != "plan" {
			t.Errorf("unexpected stage event: %+v", event)
		}
	})

	t.Run("TokenUsage", func(t *testing.T) {
		event := NewTokenUsageEvent(100, 20, 120)
		if event.TokenUsage.TotalTokens != 120 {
			t.Errorf("unexpected total: %d", event.TokenUsage.TotalTokens)
		}
	})
}

func TestEventJSONSerialization(t *testing.T) {
	event := NewErrorEvent(errors.New("selector not found"))
	data, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if decoded["type"] != string(EventTypeError) {
		t.Errorf("unexpected type: %v", decoded["type"])
	}
	// The raw error value is excluded from the wire format; only the
	// message string travels.
	if decoded["error"] != "selector not found" {
		t.Errorf("unexpected error field: %v", decoded["error"])
	}
}

func TestInput(t *testing.T) {
	if !NewCancelInput().IsCancel() {
		t.Error("expected cancel input")
	}
	input := NewUserInput("check the weather")
	if !input.IsUserInput() || input.Content != "check the weather" {
		t.Errorf("unexpected input: %+v", input)
	}
}
