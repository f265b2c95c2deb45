package tools

import (
	"context"
	"encoding/xml"
	"fmt"
)

const taskCompletionToolName = "task_completion"

// MetadataKeyActions is the metadata key under which loop-breaking
// tools report the summary of browser actions performed.
const MetadataKeyActions = "actions_performed"

// TaskCompletionTool is a loop-breaking tool that lets the agent signal
// it has completed the automation task, returning the extracted data
// and a summary of the actions taken.
type TaskCompletionTool struct{}

// NewTaskCompletionTool creates a new task completion tool.
func NewTaskCompletionTool() *TaskCompletionTool {
	return &TaskCompletionTool{}
}

// Name returns the tool's identifier.
func (t *TaskCompletionTool) Name() string {
	return taskCompletionToolName
}

// Description returns a description of what this tool does.
func (t *TaskCompletionTool) Description() string {
	return "Signal that the automation task is complete and return the extracted data. " +
		"Use this when you have finished all browser work and gathered the requested information. " +
		"The result should contain the precise data found, not a summary of what you did."
}

// Schema returns the JSON schema for the tool's arguments.
func (t *TaskCompletionTool) Schema() map[string]interface{} {
	return BaseToolSchema(
		map[string]interface{}{
			"result": map[string]interface{}{
				"type":        "string",
				"description": "The data extracted or produced by the automation task. Should be factual and complete.",
			},
			"actions_performed": map[string]interface{}{
				"type":        "string",
				"description": "Brief summary of the browser actions taken to accomplish the task.",
			},
		},
		[]string{"result"},
	)
}

// Execute runs the tool and returns the result.
func (t *TaskCompletionTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var args struct {
		XMLName xml.Name `xml:"arguments"`
		Result  string   `xml:"result"`
		Actions string   `xml:"actions_performed"`
	}

	if err := UnmarshalXMLWithFallback(argsXML, &args); err != nil {
		return "", nil, fmt.Errorf("invalid arguments for %s: %w", taskCompletionToolName, err)
	}

	if args.Result == "" {
		return "", nil, fmt.Errorf("result cannot be empty")
	}

	var metadata map[string]interface{}
	if args.Actions != "" {
		metadata = map[string]interface{}{MetadataKeyActions: args.Actions}
	}

	return args.Result, metadata, nil
}

// IsLoopBreaking returns true because this tool terminates the agent loop.
func (t *TaskCompletionTool) IsLoopBreaking() bool {
	return true
}
