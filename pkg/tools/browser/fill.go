package browser

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/webpilot/webpilot/pkg/agent/tools"
)

// FillTool fills a form input on the current page.
type FillTool struct {
	manager *SessionManager
}

// NewFillTool creates a new fill tool.
func NewFillTool(manager *SessionManager) *FillTool {
	return &FillTool{manager: manager}
}

func (t *FillTool) Name() string {
	return "browser_fill"
}

func (t *FillTool) Description() string {
	return "Fill a form input identified by a CSS selector with a value. Optionally press a key afterwards, e.g. press 'Enter' to submit a search box in one step."
}

func (t *FillTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"selector": map[string]interface{}{
				"type":        "string",
				"description": "CSS selector for the input element (e.g., 'input[name=q]', '#email')",
			},
			"value": map[string]interface{}{
				"type":        "string",
				"description": "Text to fill into the input",
			},
			"press": map[string]interface{}{
				"type":        "string",
				"description": "Optional key to press after filling (e.g., 'Enter')",
			},
			"session": map[string]interface{}{
				"type":        "string",
				"description": "Optional session name. Defaults to 'main'.",
			},
		},
		[]string{"selector", "value"},
	)
}

type fillInput struct {
	XMLName  xml.Name `xml:"arguments"`
	Selector string   `xml:"selector"`
	Value    string   `xml:"value"`
	Press    string   `xml:"press"`
	Session  string   `xml:"session"`
}

// Execute fills an input element.
func (t *FillTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input fillInput
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid parameters: %w", err)
	}

	if input.Selector == "" {
		return "", nil, fmt.Errorf("selector is required")
	}
	if input.Value == "" {
		return "", nil, fmt.Errorf("value is required")
	}

	session, err := t.manager.GetSession(input.Session)
	if err != nil {
		return "", nil, err
	}

	if fillErr := session.Fill(FillOptions{
		Selector: input.Selector,
		Value:    input.Value,
		Press:    input.Press,
	}); fillErr != nil {
		return "", nil, fillErr
	}

	result := fmt.Sprintf("Filled %q with %q.", input.Selector, input.Value)
	if input.Press != "" {
		result += fmt.Sprintf(" Pressed %s. Current URL: %s", input.Press, session.CurrentURL)
	}

	return result, nil, nil
}

func (t *FillTool) IsLoopBreaking() bool {
	return false
}
