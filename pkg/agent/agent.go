// Package agent provides the core agent interface and DefaultAgent
// implementation for the webpilot automation framework.
//
// The DefaultAgent is available directly from this package:
//
//	ag := agent.NewDefaultAgent(provider, agent.WithMaxIterations(20))
//
// Agents are async event-driven components: the executor sends inputs
// on the agent's input channel and consumes events from its event
// channel while the agent iterates through an LLM tool-calling loop.
package agent

import (
	"context"

	"github.com/webpilot/webpilot/pkg/types"
)

// Agent defines the core capabilities of a webpilot agent.
type Agent interface {
	// Start begins the agent's event loop in a goroutine. The agent
	// listens for inputs and processes them asynchronously, sending
	// events to the event channel. It runs until the context is
	// canceled or the shutdown channel is closed.
	Start(ctx context.Context) error

	// Shutdown gracefully stops the agent, completing in-flight work.
	// Returns when the agent has fully stopped or the context is
	// canceled.
	Shutdown(ctx context.Context) error

	// GetChannels returns the communication channels for this agent.
	GetChannels() *types.AgentChannels
}
