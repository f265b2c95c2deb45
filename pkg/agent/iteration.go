package agent

import (
	"context"
	"fmt"

	"github.com/webpilot/webpilot/pkg/agent/core"
	"github.com/webpilot/webpilot/pkg/agent/prompts"
	"github.com/webpilot/webpilot/pkg/agent/tools"
	"github.com/webpilot/webpilot/pkg/llm/tokenizer"
	"github.com/webpilot/webpilot/pkg/types"
)

// promptContext holds the prepared prompt and related metadata.
type promptContext struct {
	systemPrompt string
	messages     []*types.Message
	promptTokens int
}

// executeIteration performs a single iteration of the agent loop.
// Returns (shouldContinue, errorContext): shouldContinue=false means
// the loop should stop; errorContext is injected as an ephemeral user
// message on the next iteration for error recovery.
func (a *DefaultAgent) executeIteration(ctx context.Context, errorContext string) (bool, string) {
	pctx := a.preparePrompt(errorContext)

	result, err := a.callLLM(ctx, pctx)
	if err != nil {
		// Context cancellation stops silently; other failures were
		// already emitted as error events.
		return false, ""
	}

	a.recordResponse(pctx, result)

	return a.processResponse(ctx, result.Message)
}

// preparePrompt builds the system prompt and message list, counting
// prompt tokens for usage events.
func (a *DefaultAgent) preparePrompt(errorContext string) *promptContext {
	systemPrompt := a.buildSystemPrompt()
	history := a.memory.GetAll()
	messages := prompts.BuildMessages(systemPrompt, history, errorContext)

	promptTokens := 0
	if a.tokenizer != nil {
		promptTokens = a.tokenizer.CountMessagesTokens(messages)
	} else {
		for _, msg := range messages {
			promptTokens += tokenizer.EstimateTokens(msg.Content)
		}
	}

	return &promptContext{
		systemPrompt: systemPrompt,
		messages:     messages,
		promptTokens: promptTokens,
	}
}

// buildSystemPrompt assembles the system prompt for this agent.
func (a *DefaultAgent) buildSystemPrompt() string {
	return prompts.NewPromptBuilder().
		WithTools(a.getToolsList()).
		WithCustomInstructions(a.customInstructions).
		WithTaskContext(a.taskContext).
		Build()
}

// callLLM streams a completion from the provider and accumulates the
// response, emitting thinking events along the way.
func (a *DefaultAgent) callLLM(ctx context.Context, pctx *promptContext) (*core.StreamResult, error) {
	stream, err := a.GetProvider().StreamCompletion(ctx, pctx.messages)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		a.emitEvent(types.NewErrorEvent(fmt.Errorf("failed to start completion: %w", err)))
		return nil, err
	}

	result := core.ProcessStream(stream, a.emitEvent)
	if result.Err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		a.emitEvent(types.NewErrorEvent(fmt.Errorf("stream failed: %w", result.Err)))
		return nil, result.Err
	}

	return result, nil
}

// recordResponse emits token usage and adds the response to memory.
func (a *DefaultAgent) recordResponse(pctx *promptContext, result *core.StreamResult) {
	completionTokens := 0
	full := result.Thinking + result.Message
	if a.tokenizer != nil {
		completionTokens = a.tokenizer.CountTokens(full)
	} else {
		completionTokens = tokenizer.EstimateTokens(full)
	}

	if pctx.promptTokens > 0 || completionTokens > 0 {
		a.emitEvent(types.NewTokenUsageEvent(pctx.promptTokens, completionTokens, pctx.promptTokens+completionTokens))
	}

	a.memory.Add(types.NewAssistantMessage(result.Message))
}

// processResponse parses the tool call out of the response and executes
// it. Responses without a valid tool call produce recovery context.
func (a *DefaultAgent) processResponse(ctx context.Context, content string) (bool, string) {
	if !tools.HasToolCall(content) {
		if content != "" {
			a.emitEvent(types.NewMessageContentEvent(content))
		}
		errMsg := prompts.BuildErrorRecoveryMessage(prompts.ErrorRecoveryContext{
			Type: prompts.ErrorTypeNoToolCall,
		})
		if a.trackError(errMsg) {
			a.emitEvent(types.NewErrorEvent(fmt.Errorf("circuit breaker triggered: %d consecutive responses without tool calls", consecutiveErrorLimit)))
			return false, ""
		}
		return true, errMsg
	}

	prose, toolCall, _, err := tools.ExtractThinkingAndToolCall(content)
	if err != nil {
		errMsg := prompts.BuildErrorRecoveryMessage(prompts.ErrorRecoveryContext{
			Type:  prompts.ErrorTypeParseFailed,
			Error: err,
		})
		if a.trackError(errMsg) {
			a.emitEvent(types.NewErrorEvent(fmt.Errorf("circuit breaker triggered: %d consecutive tool call parse failures", consecutiveErrorLimit)))
			return false, ""
		}
		a.emitEvent(types.NewErrorEvent(fmt.Errorf("tool call parse failed: %w", err)))
		return true, errMsg
	}

	// Prose outside <thinking> tags is surfaced as a message.
	if prose != "" {
		a.emitEvent(types.NewMessageContentEvent(prose))
	}

	return a.executeTool(ctx, *toolCall)
}
