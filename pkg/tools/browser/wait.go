package browser

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/webpilot/webpilot/pkg/agent/tools"
)

// WaitTool waits for an element to reach a given state.
type WaitTool struct {
	manager *SessionManager
}

// NewWaitTool creates a new wait tool.
func NewWaitTool(manager *SessionManager) *WaitTool {
	return &WaitTool{manager: manager}
}

func (t *WaitTool) Name() string {
	return "browser_wait"
}

func (t *WaitTool) Description() string {
	return "Wait for an element matching a CSS selector to reach a state. Useful after clicks that trigger dynamic content loading."
}

func (t *WaitTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"selector": map[string]interface{}{
				"type":        "string",
				"description": "CSS selector to wait for",
			},
			"state": map[string]interface{}{
				"type":        "string",
				"description": "State to wait for: 'visible' (default), 'hidden', 'attached', or 'detached'",
			},
			"timeout": map[string]interface{}{
				"type":        "integer",
				"description": "Timeout in milliseconds. Default: 30000",
			},
			"session": map[string]interface{}{
				"type":        "string",
				"description": "Optional session name. Defaults to 'main'.",
			},
		},
		[]string{"selector"},
	)
}

type waitInput struct {
	XMLName  xml.Name `xml:"arguments"`
	Selector string   `xml:"selector"`
	State    string   `xml:"state"`
	Timeout  float64  `xml:"timeout"`
	Session  string   `xml:"session"`
}

var validWaitForStates = map[string]bool{
	"attached": true,
	"detached": true,
	"visible":  true,
	"hidden":   true,
}

// Execute waits for the element.
func (t *WaitTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input waitInput
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid parameters: %w", err)
	}

	if input.Selector == "" {
		return "", nil, fmt.Errorf("selector is required")
	}

	state := input.State
	if state == "" {
		state = "visible"
	}
	if !validWaitForStates[state] {
		return "", nil, fmt.Errorf("invalid state: %s (must be 'visible', 'hidden', 'attached', or 'detached')", state)
	}

	session, err := t.manager.GetSession(input.Session)
	if err != nil {
		return "", nil, err
	}

	if waitErr := session.Wait(WaitOptions{
		Selector: input.Selector,
		State:    state,
		Timeout:  input.Timeout,
	}); waitErr != nil {
		return "", nil, waitErr
	}

	return fmt.Sprintf("Element %q is now %s.", input.Selector, state), nil, nil
}

func (t *WaitTool) IsLoopBreaking() bool {
	return false
}
