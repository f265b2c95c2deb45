package tools

import (
	"strings"
	"testing"
)

func TestParseToolCall(t *testing.T) {
	t.Run("ValidToolCall", func(t *testing.T) {
		text := `I will navigate to the page now.
<tool>
<tool_name>browser_navigate</tool_name>
<arguments>
<url>https://example.com</url>
</arguments>
</tool>`

		toolCall, remaining, err := ParseToolCall(text)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if toolCall.ToolName != "browser_navigate" {
			t.Errorf("expected tool name 'browser_navigate', got '%s'", toolCall.ToolName)
		}
		if remaining != "I will navigate to the page now." {
			t.Errorf("unexpected remaining text: '%s'", remaining)
		}
	})

	t.Run("NoToolCall", func(t *testing.T) {
		_, _, err := ParseToolCall("just some plain text")
		if err == nil {
			t.Error("expected error when no tool call present")
		}
	})

	t.Run("MissingToolName", func(t *testing.T) {
		text := `<tool><arguments><url>https://example.com</url></arguments></tool>`
		_, _, err := ParseToolCall(text)
		if err == nil {
			t.Error("expected error for missing tool_name")
		}
	})

	t.Run("BareAmpersandInArguments", func(t *testing.T) {
		text := `<tool>
<tool_name>browser_navigate</tool_name>
<arguments>
<url>https://example.com/search?q=cats&page=2</url>
</arguments>
</tool>`

		toolCall, _, err := ParseToolCall(text)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		argsXML := string(toolCall.GetArgumentsXML())
		if !strings.Contains(argsXML, "q=cats&page=2") && !strings.Contains(argsXML, "q=cats&amp;page=2") {
			t.Errorf("expected query string preserved in arguments, got: %s", argsXML)
		}
	})

	t.Run("OversizedInput", func(t *testing.T) {
		text := "<tool>" + strings.Repeat("x", maxXMLSize) + "</tool>"
		_, _, err := ParseToolCall(text)
		if err == nil {
			t.Error("expected error for oversized input")
		}
	})
}

func TestExtractThinkingAndToolCall(t *testing.T) {
	t.Run("ThinkingAndTool", func(t *testing.T) {
		text := `The page has loaded, so I can extract the heading now.
<tool>
<tool_name>browser_extract_content</tool_name>
<arguments>
<format>text</format>
</arguments>
</tool>
Trailing note.`

		thinking, toolCall, remaining, err := ExtractThinkingAndToolCall(text)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if thinking != "The page has loaded, so I can extract the heading now." {
			t.Errorf("unexpected thinking: '%s'", thinking)
		}
		if toolCall == nil || toolCall.ToolName != "browser_extract_content" {
			t.Fatalf("expected browser_extract_content tool call, got %+v", toolCall)
		}
		if remaining != "Trailing note." {
			t.Errorf("unexpected remaining: '%s'", remaining)
		}
	})

	t.Run("NoToolCall", func(t *testing.T) {
		thinking, toolCall, remaining, err := ExtractThinkingAndToolCall("only thoughts here")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if thinking != "only thoughts here" {
			t.Errorf("unexpected thinking: '%s'", thinking)
		}
		if toolCall != nil {
			t.Error("expected nil tool call")
		}
		if remaining != "" {
			t.Errorf("expected empty remaining, got '%s'", remaining)
		}
	})
}

func TestHasToolCall(t *testing.T) {
	if !HasToolCall("<tool><tool_name>x</tool_name></tool>") {
		t.Error("expected tool call to be detected")
	}
	if HasToolCall("no tools here") {
		t.Error("expected no tool call")
	}
}

func TestXMLToMap(t *testing.T) {
	t.Run("DirectChildren", func(t *testing.T) {
		data := []byte(`<arguments>
<url>https://example.com</url>
<wait_until>load</wait_until>
</arguments>`)

		result, err := XMLToMap(data)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result["url"] != "https://example.com" {
			t.Errorf("unexpected url: %v", result["url"])
		}
		if result["wait_until"] != "load" {
			t.Errorf("unexpected wait_until: %v", result["wait_until"])
		}
	})

	t.Run("EmptyArguments", func(t *testing.T) {
		result, err := XMLToMap([]byte(`<arguments></arguments>`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result) != 0 {
			t.Errorf("expected empty map, got %v", result)
		}
	})

	t.Run("InvalidXML", func(t *testing.T) {
		_, err := XMLToMap([]byte(`<arguments><url>unclosed`))
		if err == nil {
			t.Error("expected error for invalid XML")
		}
	})
}

func TestEscapeUnescapedAmpersands(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected string
	}{
		{"BareAmpersand", "a & b", "a &amp; b"},
		{"ExistingEntity", "a &amp; b", "a &amp; b"},
		{"NumericEntity", "&#169; 2024", "&#169; 2024"},
		{"HexEntity", "&#x2713; done", "&#x2713; done"},
		{"Mixed", "R&D &amp; QA", "R&amp;D &amp; QA"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := string(escapeUnescapedAmpersands([]byte(tc.input)))
			if got != tc.expected {
				t.Errorf("expected '%s', got '%s'", tc.expected, got)
			}
		})
	}
}
