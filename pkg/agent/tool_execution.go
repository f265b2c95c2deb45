package agent

import (
	"context"
	"fmt"
	"maps"

	"github.com/webpilot/webpilot/pkg/agent/prompts"
	"github.com/webpilot/webpilot/pkg/agent/tools"
	"github.com/webpilot/webpilot/pkg/types"
)

// executeTool handles tool lookup, execution, and result processing.
// Returns (shouldContinue, errorContext) like executeIteration.
func (a *DefaultAgent) executeTool(ctx context.Context, toolCall tools.ToolCall) (bool, string) {
	tool, exists := a.getTool(toolCall.ToolName)
	if !exists {
		errMsg := prompts.BuildErrorRecoveryMessage(prompts.ErrorRecoveryContext{
			Type:           prompts.ErrorTypeUnknownTool,
			ToolName:       toolCall.ToolName,
			AvailableTools: a.getToolsList(),
		})
		if a.trackError(errMsg) {
			a.emitEvent(types.NewErrorEvent(fmt.Errorf("circuit breaker triggered: %d consecutive unknown tool errors", consecutiveErrorLimit)))
			return false, ""
		}
		a.emitEvent(types.NewErrorEvent(fmt.Errorf("unknown tool: %s", toolCall.ToolName)))
		return true, errMsg
	}

	// Emit the tool call with parsed arguments for observers.
	argsMap, err := tools.XMLToMap(toolCall.GetArgumentsXML())
	if err != nil {
		argsMap = make(map[string]interface{})
	}
	a.emitEvent(types.NewToolCallEvent(toolCall.ToolName, argsMap))

	result, metadata, toolErr := tool.Execute(ctx, toolCall.GetArgumentsXML())
	if toolErr != nil {
		a.emitEvent(types.NewToolResultErrorEvent(toolCall.ToolName, toolErr))
		errMsg := prompts.BuildErrorRecoveryMessage(prompts.ErrorRecoveryContext{
			Type:     prompts.ErrorTypeToolExecution,
			ToolName: toolCall.ToolName,
			Error:    toolErr,
		})
		if a.trackError(errMsg) {
			a.emitEvent(types.NewErrorEvent(fmt.Errorf("circuit breaker triggered: %d consecutive tool execution errors", consecutiveErrorLimit)))
			return false, ""
		}
		return true, errMsg
	}

	event := types.NewToolResultEvent(toolCall.ToolName, result)
	if len(metadata) > 0 {
		maps.Copy(event.Metadata, metadata)
	}
	a.emitEvent(event)

	a.resetErrorTracking()

	if tool.IsLoopBreaking() {
		return false, ""
	}

	// Feed the result back into the conversation and continue.
	a.memory.Add(types.NewUserMessage(fmt.Sprintf("Tool '%s' result:\n%s", toolCall.ToolName, result)))
	return true, ""
}
