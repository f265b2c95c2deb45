package browser

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// ListSessionsTool lists all active browser sessions.
type ListSessionsTool struct {
	manager *SessionManager
}

// NewListSessionsTool creates a new list sessions tool.
func NewListSessionsTool(manager *SessionManager) *ListSessionsTool {
	return &ListSessionsTool{manager: manager}
}

func (t *ListSessionsTool) Name() string {
	return "browser_list_sessions"
}

func (t *ListSessionsTool) Description() string {
	return "List all active browser sessions with their current URL and age."
}

func (t *ListSessionsTool) Schema() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
}

// Execute lists the active sessions.
func (t *ListSessionsTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	infos := t.manager.ListSessions()

	if len(infos) == 0 {
		return "No active browser sessions. Use browser_start_session to create one.", nil, nil
	}

	var builder strings.Builder
	fmt.Fprintf(&builder, "Active browser sessions (%d):\n", len(infos))
	for _, info := range infos {
		fmt.Fprintf(&builder, "\n- %s\n  URL: %s\n  Headless: %t\n  Age: %s\n",
			info.Name,
			info.CurrentURL,
			info.Headless,
			time.Since(info.CreatedAt).Round(time.Second),
		)
	}

	return builder.String(), nil, nil
}

func (t *ListSessionsTool) IsLoopBreaking() bool {
	return false
}
