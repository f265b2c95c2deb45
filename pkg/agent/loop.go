package agent

import (
	"context"
	"fmt"

	"github.com/webpilot/webpilot/pkg/types"
)

// eventLoop is the main processing loop for the agent.
func (a *DefaultAgent) eventLoop(ctx context.Context) {
	defer a.channels.Close()
	defer func() {
		a.runMu.Lock()
		a.running = false
		a.runMu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			a.emitEvent(types.NewErrorEvent(ctx.Err()))
			return

		case <-a.channels.Shutdown:
			return

		case input := <-a.channels.Input:
			if input == nil {
				// Channel closed.
				return
			}

			// Cancellation is handled synchronously so it can interrupt
			// ongoing processing; other inputs run asynchronously.
			if input.IsCancel() {
				a.processInput(ctx, input)
				continue
			}
			go a.processInput(ctx, input)
		}
	}
}

// processInput handles a single input from the executor.
func (a *DefaultAgent) processInput(ctx context.Context, input *types.Input) {
	if input.IsCancel() {
		a.cancelMu.Lock()
		if a.cancelStream != nil {
			a.cancelStream()
			a.cancelStream = nil
		}
		a.cancelMu.Unlock()
		return
	}

	if input.IsUserInput() {
		a.processUserInput(ctx, input.Content)
	}
}

// processUserInput runs the agent loop for a user text input.
func (a *DefaultAgent) processUserInput(ctx context.Context, content string) {
	a.memory.Add(types.NewUserMessage(content))

	turnCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.cancelMu.Lock()
	a.cancelStream = cancel
	a.cancelMu.Unlock()

	defer func() {
		a.cancelMu.Lock()
		a.cancelStream = nil
		a.cancelMu.Unlock()
	}()

	a.emitEvent(types.NewUpdateBusyEvent(true))
	defer a.emitEvent(types.NewUpdateBusyEvent(false))

	a.runAgentLoop(turnCtx)

	a.emitEvent(types.NewTurnEndEvent())
}

// runAgentLoop executes the tool-calling loop until a loop-breaking
// tool is used, the iteration cap is hit, or the circuit breaker trips.
func (a *DefaultAgent) runAgentLoop(ctx context.Context) {
	var errorContext string

	for iteration := 0; ; iteration++ {
		select {
		case <-ctx.Done():
			a.memory.Add(types.NewUserMessage("Operation stopped by user."))
			return
		default:
		}

		if iteration >= a.maxIterations {
			a.emitEvent(types.NewErrorEvent(
				fmt.Errorf("agent loop exceeded %d iterations without completing the task", a.maxIterations)))
			return
		}

		shouldContinue, nextErrorContext := a.executeIteration(ctx, errorContext)
		if !shouldContinue {
			return
		}

		errorContext = nextErrorContext
	}
}

// emitEvent sends an event on the event channel. The send is blocking
// so critical events like TurnEnd are not dropped; a closed channel
// during shutdown is tolerated.
func (a *DefaultAgent) emitEvent(event *types.AgentEvent) {
	defer func() {
		if r := recover(); r != nil {
			// Event channel closed during shutdown.
		}
	}()
	a.channels.Event <- event
}
