package browser

import (
	"context"
	"strings"
	"testing"

	"github.com/webpilot/webpilot/pkg/llm"
	"github.com/webpilot/webpilot/pkg/types"
)

type fakeProvider struct{}

func (p *fakeProvider) StreamCompletion(ctx context.Context, messages []*types.Message) (<-chan *llm.StreamChunk, error) {
	ch := make(chan *llm.StreamChunk)
	close(ch)
	return ch, nil
}

func (p *fakeProvider) Complete(ctx context.Context, messages []*types.Message) (*types.Message, error) {
	return types.NewAssistantMessage(""), nil
}

func (p *fakeProvider) GetModelInfo() *types.ModelInfo { return &types.ModelInfo{} }
func (p *fakeProvider) GetModel() string               { return "fake" }
func (p *fakeProvider) GetBaseURL() string             { return "" }

func TestToolsetTools(t *testing.T) {
	t.Run("WithoutAnalysisProvider", func(t *testing.T) {
		toolset := NewToolset(NewSessionManager())
		toolsList := toolset.Tools()

		names := make(map[string]bool)
		for _, tool := range toolsList {
			names[tool.Name()] = true
		}

		expected := []string{
			"browser_start_session",
			"browser_list_sessions",
			"browser_close_session",
			"browser_navigate",
			"browser_extract_content",
			"browser_click",
			"browser_fill",
			"browser_wait",
			"browser_search",
		}
		for _, name := range expected {
			if !names[name] {
				t.Errorf("expected tool '%s' in toolset", name)
			}
		}
		if names["browser_analyze_page"] {
			t.Error("analyze_page should require a provider")
		}
	})

	t.Run("WithAnalysisProvider", func(t *testing.T) {
		toolset := NewToolset(NewSessionManager(), WithAnalysisProvider(&fakeProvider{}))
		found := false
		for _, tool := range toolset.Tools() {
			if tool.Name() == "browser_analyze_page" {
				found = true
			}
		}
		if !found {
			t.Error("expected analyze_page tool with provider configured")
		}
	})

	t.Run("ToolsAreCached", func(t *testing.T) {
		toolset := NewToolset(NewSessionManager())
		first := toolset.Tools()
		second := toolset.Tools()
		if len(first) != len(second) {
			t.Errorf("expected stable tool list, got %d then %d", len(first), len(second))
		}
	})

	t.Run("SchemasAndDescriptions", func(t *testing.T) {
		toolset := NewToolset(NewSessionManager())
		for _, tool := range toolset.Tools() {
			if tool.Description() == "" {
				t.Errorf("tool '%s' has no description", tool.Name())
			}
			schema := tool.Schema()
			if schema["type"] != "object" {
				t.Errorf("tool '%s' schema is not an object", tool.Name())
			}
			if tool.IsLoopBreaking() {
				t.Errorf("browser tool '%s' must not be loop-breaking", tool.Name())
			}
		}
	})
}

func TestToolArgumentValidation(t *testing.T) {
	// Validation failures happen before any browser interaction, so an
	// uninitialized manager is fine here.
	manager := NewSessionManager()
	ctx := context.Background()

	t.Run("NavigateRequiresURL", func(t *testing.T) {
		tool := NewNavigateTool(manager)
		_, _, err := tool.Execute(ctx, []byte(`<arguments></arguments>`))
		if err == nil || !strings.Contains(err.Error(), "URL is required") {
			t.Errorf("expected URL requirement error, got: %v", err)
		}
	})

	t.Run("ClickRequiresSelector", func(t *testing.T) {
		tool := NewClickTool(manager)
		_, _, err := tool.Execute(ctx, []byte(`<arguments></arguments>`))
		if err == nil {
			t.Error("expected error for missing selector")
		}
	})

	t.Run("FillRequiresSelectorAndValue", func(t *testing.T) {
		tool := NewFillTool(manager)
		_, _, err := tool.Execute(ctx, []byte(`<arguments><selector>#q</selector></arguments>`))
		if err == nil {
			t.Error("expected error for missing value")
		}
	})

	t.Run("SearchRequiresQuery", func(t *testing.T) {
		tool := NewSearchTool(manager)
		_, _, err := tool.Execute(ctx, []byte(`<arguments></arguments>`))
		if err == nil {
			t.Error("expected error for missing query")
		}
	})

	t.Run("UninitializedManagerRejected", func(t *testing.T) {
		tool := NewNavigateTool(manager)
		_, _, err := tool.Execute(ctx, []byte(`<arguments><url>https://example.com</url></arguments>`))
		if err == nil {
			t.Error("expected error from uninitialized session manager")
		}
	})
}
