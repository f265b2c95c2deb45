package browser

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/webpilot/webpilot/pkg/agent/tools"
)

// CloseSessionTool closes an active browser session.
type CloseSessionTool struct {
	manager *SessionManager
}

// NewCloseSessionTool creates a new close session tool.
func NewCloseSessionTool(manager *SessionManager) *CloseSessionTool {
	return &CloseSessionTool{manager: manager}
}

func (t *CloseSessionTool) Name() string {
	return "browser_close_session"
}

func (t *CloseSessionTool) Description() string {
	return "Close a browser session and release its resources. Sessions are closed automatically at the end of a run, so this is only needed to free a session early."
}

func (t *CloseSessionTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"name": map[string]interface{}{
				"type":        "string",
				"description": "Session name to close. Defaults to 'main'.",
			},
		},
		nil,
	)
}

type closeSessionInput struct {
	XMLName xml.Name `xml:"arguments"`
	Name    string   `xml:"name"`
}

// Execute closes the named session.
func (t *CloseSessionTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input closeSessionInput
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid parameters: %w", err)
	}

	name := input.Name
	if name == "" {
		name = DefaultSessionName
	}

	if err := t.manager.CloseSession(name); err != nil {
		return "", nil, err
	}

	return fmt.Sprintf("Browser session %q closed.", name), nil, nil
}

func (t *CloseSessionTool) IsLoopBreaking() bool {
	return false
}
