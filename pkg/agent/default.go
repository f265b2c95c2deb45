package agent

import (
	"context"
	"fmt"
	"sync"

	"github.com/webpilot/webpilot/pkg/agent/memory"
	"github.com/webpilot/webpilot/pkg/agent/tools"
	"github.com/webpilot/webpilot/pkg/llm"
	"github.com/webpilot/webpilot/pkg/llm/tokenizer"
	"github.com/webpilot/webpilot/pkg/logging"
	"github.com/webpilot/webpilot/pkg/types"
)

// defaultMaxIterations bounds the agent loop so a confused model cannot
// spin forever against a page.
const defaultMaxIterations = 25

// consecutiveErrorLimit trips the circuit breaker.
const consecutiveErrorLimit = 5

var agentDebugLog *logging.Logger

func init() {
	var err error
	agentDebugLog, err = logging.NewLogger("agent")
	if err != nil {
		agentDebugLog.Warnf("Failed to initialize agent logger, using stderr fallback: %v", err)
	}
}

// DefaultAgent is the standard Agent implementation. It processes user
// inputs through an LLM provider using an iterative tool-calling loop.
type DefaultAgent struct {
	provider           llm.Provider
	providerMu         sync.RWMutex
	channels           *types.AgentChannels
	customInstructions string
	taskContext        string
	maxIterations      int
	bufferSize         int

	tools   map[string]tools.Tool
	toolsMu sync.RWMutex
	memory  memory.Memory

	cancelMu     sync.Mutex
	cancelStream context.CancelFunc

	running bool
	runMu   sync.Mutex

	// Ring buffer of recent error messages for the circuit breaker.
	lastErrors        [consecutiveErrorLimit]string
	errorIndex        int
	consecutiveErrors int

	tokenizer *tokenizer.Tokenizer
}

// AgentOption configures a DefaultAgent.
type AgentOption func(*DefaultAgent)

// WithCustomInstructions sets user-provided instructions added to the
// system prompt.
func WithCustomInstructions(instructions string) AgentOption {
	return func(a *DefaultAgent) {
		a.customInstructions = instructions
	}
}

// WithTaskContext sets the automation task context (target URL, task
// description) the planner produced for this run.
func WithTaskContext(context string) AgentOption {
	return func(a *DefaultAgent) {
		a.taskContext = context
	}
}

// WithMaxIterations bounds the number of agent loop iterations.
func WithMaxIterations(max int) AgentOption {
	return func(a *DefaultAgent) {
		a.maxIterations = max
	}
}

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) AgentOption {
	return func(a *DefaultAgent) {
		a.bufferSize = size
	}
}

// WithTools registers additional tools at construction time.
func WithTools(toolsList ...tools.Tool) AgentOption {
	return func(a *DefaultAgent) {
		for _, tool := range toolsList {
			if tool != nil {
				a.tools[tool.Name()] = tool
			}
		}
	}
}

// NewDefaultAgent creates a new DefaultAgent with the given provider.
func NewDefaultAgent(provider llm.Provider, opts ...AgentOption) *DefaultAgent {
	tok, err := tokenizer.New()
	if err != nil {
		// Fall back to approximate counting.
		tok = nil
	}

	a := &DefaultAgent{
		provider:      provider,
		bufferSize:    10,
		maxIterations: defaultMaxIterations,
		tools:         make(map[string]tools.Tool),
		memory:        memory.NewConversationMemory(),
		tokenizer:     tok,
	}

	a.registerDefaultTools()

	for _, opt := range opts {
		opt(a)
	}

	a.channels = types.NewAgentChannels(a.bufferSize)

	return a
}

func (a *DefaultAgent) registerDefaultTools() {
	a.tools["task_completion"] = tools.NewTaskCompletionTool()
	a.tools["report_failure"] = tools.NewReportFailureTool()
}

// Start begins the agent's event loop in a goroutine.
func (a *DefaultAgent) Start(ctx context.Context) error {
	a.runMu.Lock()
	if a.running {
		a.runMu.Unlock()
		return fmt.Errorf("agent is already running")
	}
	a.running = true
	a.runMu.Unlock()

	go a.eventLoop(ctx)

	return nil
}

// Shutdown gracefully stops the agent.
func (a *DefaultAgent) Shutdown(ctx context.Context) error {
	close(a.channels.Shutdown)

	select {
	case <-a.channels.Done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// GetChannels returns the communication channels for this agent.
func (a *DefaultAgent) GetChannels() *types.AgentChannels {
	return a.channels
}

// RegisterTool adds a tool to the agent's registry. Built-in tools
// (task_completion, report_failure) cannot be overridden.
func (a *DefaultAgent) RegisterTool(tool tools.Tool) error {
	if tool == nil {
		return fmt.Errorf("tool cannot be nil")
	}

	name := tool.Name()
	if name == "" {
		return fmt.Errorf("tool name cannot be empty")
	}

	builtIns := map[string]bool{
		"task_completion": true,
		"report_failure":  true,
	}
	if builtIns[name] {
		return fmt.Errorf("cannot override built-in tool: %s", name)
	}

	a.toolsMu.Lock()
	defer a.toolsMu.Unlock()
	a.tools[name] = tool
	return nil
}

// GetTool retrieves a tool by name, or nil if not registered.
func (a *DefaultAgent) GetTool(name string) tools.Tool {
	a.toolsMu.RLock()
	defer a.toolsMu.RUnlock()
	return a.tools[name]
}

// GetProvider returns the LLM provider used by this agent.
func (a *DefaultAgent) GetProvider() llm.Provider {
	a.providerMu.RLock()
	defer a.providerMu.RUnlock()
	return a.provider
}

// SetProvider updates the LLM provider, taking effect on the next
// iteration. Thread-safe for hot-reloading provider configuration.
func (a *DefaultAgent) SetProvider(provider llm.Provider) error {
	if provider == nil {
		return fmt.Errorf("provider cannot be nil")
	}
	a.providerMu.Lock()
	defer a.providerMu.Unlock()
	a.provider = provider
	return nil
}

// getTool looks up a tool by name.
func (a *DefaultAgent) getTool(name string) (tools.Tool, bool) {
	a.toolsMu.RLock()
	defer a.toolsMu.RUnlock()
	tool, ok := a.tools[name]
	return tool, ok
}

// getToolsList returns all registered tools in stable-enough order for
// prompt building.
func (a *DefaultAgent) getToolsList() []tools.Tool {
	a.toolsMu.RLock()
	defer a.toolsMu.RUnlock()

	toolsList := make([]tools.Tool, 0, len(a.tools))
	for _, tool := range a.tools {
		toolsList = append(toolsList, tool)
	}
	return toolsList
}

// trackError records an error message and reports whether the circuit
// breaker should trip.
func (a *DefaultAgent) trackError(msg string) bool {
	a.lastErrors[a.errorIndex] = msg
	a.errorIndex = (a.errorIndex + 1) % consecutiveErrorLimit
	a.consecutiveErrors++
	return a.consecutiveErrors >= consecutiveErrorLimit
}

// resetErrorTracking clears the consecutive error count after success.
func (a *DefaultAgent) resetErrorTracking() {
	a.consecutiveErrors = 0
}
