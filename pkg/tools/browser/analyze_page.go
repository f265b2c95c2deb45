package browser

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/webpilot/webpilot/pkg/agent/tools"
	"github.com/webpilot/webpilot/pkg/llm"
	"github.com/webpilot/webpilot/pkg/types"
)

// analysisMaxHTMLLength caps the cleaned HTML sent for analysis.
const analysisMaxHTMLLength = 50000

// AnalyzePageTool uses LLM analysis to provide intelligent page summaries.
type AnalyzePageTool struct {
	manager  *SessionManager
	provider llm.Provider
}

// NewAnalyzePageTool creates a new analyze page tool.
func NewAnalyzePageTool(manager *SessionManager, provider llm.Provider) *AnalyzePageTool {
	return &AnalyzePageTool{
		manager:  manager,
		provider: provider,
	}
}

func (t *AnalyzePageTool) Name() string {
	return "browser_analyze_page"
}

func (t *AnalyzePageTool) Description() string {
	return "Analyze the current page with AI to understand its purpose, key interactive elements, and working CSS selectors. Use this when a page is complex and you need to decide what to click or fill next."
}

func (t *AnalyzePageTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"focus": map[string]interface{}{
				"type":        "string",
				"description": "Optional: what to focus the analysis on (e.g., 'forms', 'navigation', 'product listings')",
			},
			"session": map[string]interface{}{
				"type":        "string",
				"description": "Optional session name. Defaults to 'main'.",
			},
		},
		nil,
	)
}

type analyzePageInput struct {
	XMLName xml.Name `xml:"arguments"`
	Focus   string   `xml:"focus"`
	Session string   `xml:"session"`
}

// Execute analyzes the current page using the LLM provider.
func (t *AnalyzePageTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	if t.provider == nil {
		return "", nil, fmt.Errorf("LLM provider not available")
	}

	var input analyzePageInput
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid parameters: %w", err)
	}

	session, err := t.manager.GetSession(input.Session)
	if err != nil {
		return "", nil, err
	}

	// Cleaned HTML keeps the selector hooks the analysis needs to cite.
	htmlContent, err := session.ExtractContent(ExtractOptions{
		Format:    FormatHTML,
		MaxLength: analysisMaxHTMLLength,
	})
	if err != nil {
		return "", nil, fmt.Errorf("failed to extract content: %w", err)
	}

	currentURL := session.Page.URL()
	title, _ := session.Page.Title()

	prompt := buildAnalysisPrompt(currentURL, title, htmlContent, input.Focus)

	response, err := t.provider.Complete(ctx, []*types.Message{
		types.NewUserMessage(prompt),
	})
	if err != nil {
		return "", nil, fmt.Errorf("failed to analyze page: %w", err)
	}

	result := fmt.Sprintf(`Page Analysis

URL: %s
Title: %s

%s`,
		currentURL,
		title,
		response.Content,
	)

	return result, nil, nil
}

// buildAnalysisPrompt creates the analysis prompt for the LLM.
func buildAnalysisPrompt(url, title, htmlContent, focus string) string {
	var prompt strings.Builder

	prompt.WriteString("Analyze the following web page and provide a structured summary. The content is cleaned HTML that preserves semantic structure and key targeting attributes.\n\n")
	fmt.Fprintf(&prompt, "URL: %s\n", url)
	fmt.Fprintf(&prompt, "Title: %s\n\n", title)

	if focus != "" {
		fmt.Fprintf(&prompt, "Analysis Focus: %s\n\n", focus)
	}

	prompt.WriteString("Page HTML:\n```html\n")
	prompt.WriteString(htmlContent)
	prompt.WriteString("\n```\n\n")

	prompt.WriteString("Provide a structured analysis with the following sections:\n\n")
	prompt.WriteString("1. PAGE TYPE: The type of page and any framework/platform hints from the HTML structure\n")
	prompt.WriteString("2. PURPOSE: What this page is for\n")
	prompt.WriteString("3. KEY ELEMENTS: Important interactive elements with working CSS selectors (prefer id, name, and data-* attributes)\n")
	prompt.WriteString("4. STRUCTURE: How the content is organized (header, nav, main sections, footer)\n")
	prompt.WriteString("5. NEXT ACTIONS: Concrete actions available on this page with the exact selectors to use\n\n")
	prompt.WriteString("Keep the analysis concise and actionable. Every suggested action must include a specific selector.")

	return prompt.String()
}

func (t *AnalyzePageTool) IsLoopBreaking() bool {
	return false
}
