package browser

import (
	"github.com/webpilot/webpilot/pkg/agent/tools"
	"github.com/webpilot/webpilot/pkg/llm"
)

// Toolset bundles the session manager with the tools built on it.
type Toolset struct {
	manager  *SessionManager
	headless bool
	provider llm.Provider
	tools    []tools.Tool
}

// ToolsetOption configures a Toolset.
type ToolsetOption func(*Toolset)

// WithHeadless controls whether sessions run without a visible window.
func WithHeadless(headless bool) ToolsetOption {
	return func(t *Toolset) {
		t.headless = headless
	}
}

// WithAnalysisProvider enables the AI page analysis tool using the
// given provider.
func WithAnalysisProvider(provider llm.Provider) ToolsetOption {
	return func(t *Toolset) {
		t.provider = provider
	}
}

// NewToolset creates the browser toolset backed by the given manager.
func NewToolset(manager *SessionManager, opts ...ToolsetOption) *Toolset {
	t := &Toolset{
		manager:  manager,
		headless: true,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Tools returns all browser tools, building them on first call.
func (t *Toolset) Tools() []tools.Tool {
	if len(t.tools) > 0 {
		return t.tools
	}

	t.tools = append(t.tools,
		NewStartSessionTool(t.manager, t.headless),
		NewListSessionsTool(t.manager),
		NewCloseSessionTool(t.manager),
		NewNavigateTool(t.manager),
		NewExtractContentTool(t.manager),
		NewClickTool(t.manager),
		NewFillTool(t.manager),
		NewWaitTool(t.manager),
		NewSearchTool(t.manager),
	)

	if t.provider != nil {
		t.tools = append(t.tools, NewAnalyzePageTool(t.manager, t.provider))
	}

	return t.tools
}

// Manager returns the underlying session manager.
func (t *Toolset) Manager() *SessionManager {
	return t.manager
}
