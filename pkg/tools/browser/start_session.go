package browser

import (
	"context"
	"encoding/xml"
	"fmt"

	"github.com/webpilot/webpilot/pkg/agent/tools"
)

// StartSessionTool launches a new browser session.
type StartSessionTool struct {
	manager  *SessionManager
	headless bool
}

// NewStartSessionTool creates a new start session tool. The headless
// flag sets the default browser mode for sessions opened by this tool.
func NewStartSessionTool(manager *SessionManager, headless bool) *StartSessionTool {
	return &StartSessionTool{
		manager:  manager,
		headless: headless,
	}
}

func (t *StartSessionTool) Name() string {
	return "browser_start_session"
}

func (t *StartSessionTool) Description() string {
	return "Start a new browser session. Most automations need only the default session, so the name can usually be omitted. Call this before any navigation or interaction tools."
}

func (t *StartSessionTool) Schema() map[string]interface{} {
	return tools.BaseToolSchema(
		map[string]interface{}{
			"name": map[string]interface{}{
				"type":        "string",
				"description": "Optional session name. Defaults to 'main'.",
			},
		},
		nil,
	)
}

type startSessionInput struct {
	XMLName xml.Name `xml:"arguments"`
	Name    string   `xml:"name"`
}

// Execute starts a browser session.
func (t *StartSessionTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var input startSessionInput
	if err := tools.UnmarshalXMLWithFallback(argsXML, &input); err != nil {
		return "", nil, fmt.Errorf("invalid parameters: %w", err)
	}

	name := input.Name
	if name == "" {
		name = DefaultSessionName
	}

	session, err := t.manager.StartSession(name, SessionOptions{
		Headless: t.headless,
	})
	if err != nil {
		return "", nil, err
	}

	result := fmt.Sprintf(`Browser session started

Session Details:
- Name: %s
- Headless: %t
- Viewport: %dx%d

Use browser_navigate to load a page, then extract or interact with it.`,
		session.Name,
		session.Headless,
		DefaultViewportWidth,
		DefaultViewportHeight,
	)

	return result, map[string]interface{}{"session": session.Name}, nil
}

func (t *StartSessionTool) IsLoopBreaking() bool {
	return false
}
