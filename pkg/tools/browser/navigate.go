package browser

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/webpilot/webpilot/pkg/agent/tools"
)

// NavigateTool navigates to a URL in a browser session.
type NavigateTool struct {
	manager *SessionManager
}

// NewNavigateTool creates a new navigate tool.
func NewNavigateTool(manager *SessionManager) *NavigateTool {
	return &NavigateTool{manager: manager}
}

func (t *NavigateTool) Name() string {
	return "browser_navigate"
}

func (t *NavigateTool) Description() string {
	return "Navigate to a URL in the browser. The page is loaded and ready for extraction or interaction when this returns."
}

func (t *NavigateTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"url": map[string]interface{}{
				"type":        "string",
				"description": "URL to navigate to (must include protocol, e.g., https://example.com)",
			},
			"session": map[string]interface{}{
				"type":        "string",
				"description": "Optional session name. Defaults to 'main'.",
			},
			"wait_until": map[string]interface{}{
				"type":        "string",
				"description": "When to consider navigation complete: 'load' (default), 'domcontentloaded', or 'networkidle'",
			},
		},
		[]string{"url"},
	)
}

type navigateInput struct {
	XMLName   xml.Name `xml:"arguments"`
	URL       string   `xml:"url"`
	Session   string   `xml:"session"`
	WaitUntil string   `xml:"wait_until"`
}

var validWaitStates = map[string]bool{
	"load":             true,
	"domcontentloaded": true,
	"networkidle":      true,
}

// Execute navigates to a URL.
func (t *NavigateTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input navigateInput
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid parameters: %w", err)
	}

	if input.URL == "" {
		return "", nil, fmt.Errorf("URL is required")
	}

	session, err := t.manager.GetSession(input.Session)
	if err != nil {
		return "", nil, err
	}

	opts := NavigateOptions{WaitUntil: input.WaitUntil}
	if opts.WaitUntil == "" {
		opts.WaitUntil = "load"
	}
	if !validWaitStates[opts.WaitUntil] {
		return "", nil, fmt.Errorf("invalid wait_until value: %s (must be 'load', 'domcontentloaded', or 'networkidle')", opts.WaitUntil)
	}

	if navErr := session.Navigate(input.URL, opts); navErr != nil {
		return "", nil, navErr
	}

	title, err := session.Page.Title()
	if err != nil {
		title = "Unknown"
	}

	result := fmt.Sprintf(`Navigation successful

Page Details:
- URL: %s
- Title: %s
- Session: %s

The page has loaded. Use browser_extract_content to read it, or browser_click and browser_fill to interact with it.`,
		session.CurrentURL,
		title,
		session.Name,
	)

	return result, map[string]interface{}{"url": session.CurrentURL}, nil
}

func (t *NavigateTool) IsLoopBreaking() bool {
	return false
}
