package types

import "sync"

// AgentChannels bundles the communication channels between an agent and
// its executor. The executor writes to Input and reads from Event; the
// agent owns the lifecycle of all channels.
type AgentChannels struct {
	// Input carries user inputs and cancellation requests to the agent.
	Input chan *Input

	// Event carries events emitted by the agent back to the executor.
	Event chan *AgentEvent

	// Shutdown signals the agent to stop processing. Closed by Shutdown.
	Shutdown chan struct{}

	// Done is closed by the agent when its event loop has fully exited.
	Done chan struct{}

	closeOnce sync.Once
}

// NewAgentChannels creates a channel set with the given buffer size for
// the input and event channels.
func NewAgentChannels(bufferSize int) *AgentChannels {
	return &AgentChannels{
		Input:    make(chan *Input, bufferSize),
		Event:    make(chan *AgentEvent, bufferSize),
		Shutdown: make(chan struct{}),
		Done:     make(chan struct{}),
	}
}

// Close closes the event and done channels. Safe to call multiple times.
func (c *AgentChannels) Close() {
	c.closeOnce.Do(func() {
		close(c.Event)
		close(c.Done)
	})
}
