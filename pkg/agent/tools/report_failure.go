package tools

import (
	"context"
	"encoding/xml"
	"fmt"
)

const reportFailureToolName = "report_failure"

// ReportFailureTool is a loop-breaking tool that lets the agent report
// the automation task could not be completed. The flow still proceeds
// to synthesis so the user gets a useful explanation.
type ReportFailureTool struct{}

// NewReportFailureTool creates a new report failure tool.
func NewReportFailureTool() *ReportFailureTool {
	return &ReportFailureTool{}
}

// Name returns the tool's identifier.
func (t *ReportFailureTool) Name() string {
	return reportFailureToolName
}

// Description returns a description of what this tool does.
func (t *ReportFailureTool) Description() string {
	return "Report that the automation task cannot be completed. " +
		"Use this only after reasonable attempts have failed (page unreachable, " +
		"required element missing, access blocked). Explain what went wrong and what was tried."
}

// Schema returns the JSON schema for the tool's arguments.
func (t *ReportFailureTool) Schema() map[string]interface{} {
	return BaseToolSchema(
		map[string]interface{}{
			"error": map[string]interface{}{
				"type":        "string",
				"description": "Description of why the task could not be completed.",
			},
			"actions_performed": map[string]interface{}{
				"type":        "string",
				"description": "Brief summary of the browser actions attempted before giving up.",
			},
		},
		[]string{"error"},
	)
}

// Execute runs the tool and returns the failure description.
func (t *ReportFailureTool) Execute(ctx context.Context, argsXML []byte) (string, map[string]interface{}, error) {
	var args struct {
		XMLName xml.Name `xml:"arguments"`
		Error   string   `xml:"error"`
		Actions string   `xml:"actions_performed"`
	}

	if err := UnmarshalXMLWithFallback(argsXML, &args); err != nil {
		return "", nil, fmt.Errorf("invalid arguments for %s: %w", reportFailureToolName, err)
	}

	if args.Error == "" {
		return "", nil, fmt.Errorf("error description cannot be empty")
	}

	var metadata map[string]interface{}
	if args.Actions != "" {
		metadata = map[string]interface{}{MetadataKeyActions: args.Actions}
	}

	return args.Error, metadata, nil
}

// IsLoopBreaking returns true because this tool terminates the agent loop.
func (t *ReportFailureTool) IsLoopBreaking() bool {
	return true
}
