package browser

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/webpilot/webpilot/pkg/agent/tools"
)

// ClickTool clicks an element on the current page.
type ClickTool struct {
	manager *SessionManager
}

// NewClickTool creates a new click tool.
func NewClickTool(manager *SessionManager) *ClickTool {
	return &ClickTool{manager: manager}
}

func (t *ClickTool) Name() string {
	return "browser_click"
}

func (t *ClickTool) Description() string {
	return "Click an element on the current page identified by a CSS selector. Use browser_extract_content with format 'html' first to find reliable selectors."
}

func (t *ClickTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"selector": map[string]interface{}{
				"type":        "string",
				"description": "CSS selector for the element to click (e.g., 'button#submit', 'a.next-page')",
			},
			"button": map[string]interface{}{
				"type":        "string",
				"description": "Mouse button: 'left' (default), 'right', or 'middle'",
			},
			"click_count": map[string]interface{}{
				"type":        "integer",
				"description": "Number of clicks (2 for double-click). Default: 1",
			},
			"session": map[string]interface{}{
				"type":        "string",
				"description": "Optional session name. Defaults to 'main'.",
			},
		},
		[]string{"selector"},
	)
}

type clickInput struct {
	XMLName    xml.Name `xml:"arguments"`
	Selector   string   `xml:"selector"`
	Button     string   `xml:"button"`
	ClickCount int      `xml:"click_count"`
	Session    string   `xml:"session"`
}

// Execute clicks an element.
func (t *ClickTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input clickInput
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid parameters: %w", err)
	}

	if input.Selector == "" {
		return "", nil, fmt.Errorf("selector is required")
	}
	if input.Button != "" && input.Button != "left" && input.Button != "right" && input.Button != "middle" {
		return "", nil, fmt.Errorf("invalid button: %s (must be 'left', 'right', or 'middle')", input.Button)
	}

	session, err := t.manager.GetSession(input.Session)
	if err != nil {
		return "", nil, err
	}

	if clickErr := session.Click(ClickOptions{
		Selector:   input.Selector,
		Button:     input.Button,
		ClickCount: input.ClickCount,
	}); clickErr != nil {
		return "", nil, clickErr
	}

	result := fmt.Sprintf(`Click successful

- Selector: %s
- Current URL: %s

If the click triggered navigation or changed the page, use browser_extract_content to see the new state.`,
		input.Selector,
		session.CurrentURL,
	)

	return result, nil, nil
}

func (t *ClickTool) IsLoopBreaking() bool {
	return false
}
