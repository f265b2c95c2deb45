package flow

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/webpilot/webpilot/pkg/agent"
	"github.com/webpilot/webpilot/pkg/agent/tools"
	"github.com/webpilot/webpilot/pkg/llm"
	"github.com/webpilot/webpilot/pkg/logging"
	"github.com/webpilot/webpilot/pkg/tools/browser"
	"github.com/webpilot/webpilot/pkg/types"
)

// DefaultExecutionTimeout bounds the browser automation stage. Runs
// that exceed it are failed and still synthesized so the user learns
// what happened.
const DefaultExecutionTimeout = 3 * time.Minute

// Flow orchestrates a three-stage automation run: plan the task from
// the user's query, execute it with a browser-driving agent, and
// synthesize a user-facing response. A failed execution still flows
// into synthesis.
type Flow struct {
	planner     llm.Provider
	executor    llm.Provider
	synthesizer llm.Provider

	manager     *browser.SessionManager
	managerOnce sync.Once
	managerErr  error

	headless      bool
	execTimeout   time.Duration
	maxIterations int
	log           *logging.Logger
}

// Option configures a Flow.
type Option func(*Flow)

// WithExecutionTimeout bounds the execution stage.
func WithExecutionTimeout(timeout time.Duration) Option {
	return func(f *Flow) {
		f.execTimeout = timeout
	}
}

// WithHeadless controls whether automation browsers run headless.
func WithHeadless(headless bool) Option {
	return func(f *Flow) {
		f.headless = headless
	}
}

// WithMaxIterations bounds the execution agent's tool-calling loop.
func WithMaxIterations(max int) Option {
	return func(f *Flow) {
		f.maxIterations = max
	}
}

// WithPlannerModel directs the planning stage at a different model.
// Requires a provider implementing llm.ModelCloner.
func WithPlannerModel(model string) Option {
	return func(f *Flow) {
		if cloner, ok := f.planner.(llm.ModelCloner); ok && model != "" {
			f.planner = cloner.CloneWithModel(model)
		}
	}
}

// WithExecutorModel directs the execution stage at a different model.
func WithExecutorModel(model string) Option {
	return func(f *Flow) {
		if cloner, ok := f.executor.(llm.ModelCloner); ok && model != "" {
			f.executor = cloner.CloneWithModel(model)
		}
	}
}

// WithSynthesizerModel directs the synthesis stage at a different model.
func WithSynthesizerModel(model string) Option {
	return func(f *Flow) {
		if cloner, ok := f.synthesizer.(llm.ModelCloner); ok && model != "" {
			f.synthesizer = cloner.CloneWithModel(model)
		}
	}
}

// WithBrowserManager supplies a pre-built session manager, mainly for
// sharing a Playwright driver across flows.
func WithBrowserManager(manager *browser.SessionManager) Option {
	return func(f *Flow) {
		f.manager = manager
	}
}

// New creates a Flow using the given provider for all three stages.
// Per-stage models can be overridden with options.
func New(provider llm.Provider, opts ...Option) *Flow {
	log, err := logging.NewLogger("flow")
	if err != nil {
		log.Warnf("Failed to initialize flow logger, using stderr fallback: %v", err)
	}

	f := &Flow{
		planner:     provider,
		executor:    provider,
		synthesizer: provider,
		manager:     browser.NewSessionManager(),
		headless:    true,
		execTimeout: DefaultExecutionTimeout,
		log:         log,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Run executes the full automation flow for a user query. Events from
// all stages are forwarded to the events channel when non-nil; the
// caller must consume them. Run blocks until the flow completes.
func (f *Flow) Run(ctx context.Context, query string, events chan<- *types.AgentEvent) (*RunResult, error) {
	return f.RunWithID(ctx, uuid.New().String(), query, events)
}

// RunWithID is Run with a caller-supplied run ID, for callers that
// need the ID before the run starts (e.g. to return an API handle).
func (f *Flow) RunWithID(ctx context.Context, runID, query string, events chan<- *types.AgentEvent) (*RunResult, error) {
	if query == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}

	run := &RunResult{
		RunID:     runID,
		Query:     query,
		StartedAt: time.Now(),
	}
	f.log.Infof("Run %s started: %q", run.RunID, query)

	emit := func(event *types.AgentEvent) {
		if events != nil {
			events <- event
		}
	}

	// Stage 1: plan. A planning failure aborts the run since there is
	// nothing meaningful to execute or synthesize.
	emit(types.NewStageStartEvent(StagePlan))
	plan, err := f.plan(ctx, query)
	if err != nil {
		emit(types.NewErrorEvent(err))
		return nil, fmt.Errorf("planning failed: %w", err)
	}
	run.Plan = plan
	emit(types.NewStageEndEvent(StagePlan))
	f.log.Infof("Run %s planned: url=%s complexity=%s", run.RunID, plan.WebsiteURL, plan.EstimatedComplexity)

	// Stage 2: execute. Failures are captured in the result rather than
	// returned so the synthesis stage can explain them.
	emit(types.NewStageStartEvent(StageExecute))
	run.Result = f.execute(ctx, plan, emit)
	emit(types.NewStageEndEvent(StageExecute))
	f.log.Infof("Run %s executed: success=%t", run.RunID, run.Result.Success)

	// Stage 3: synthesize.
	emit(types.NewStageStartEvent(StageSynthesize))
	run.Response = f.synthesize(ctx, run.Result)
	emit(types.NewStageEndEvent(StageSynthesize))

	run.FinishedAt = time.Now()
	f.log.Infof("Run %s finished in %s", run.RunID, run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond))
	return run, nil
}

// plan asks the planner model to turn the query into an AutomationPlan.
func (f *Flow) plan(ctx context.Context, query string) (AutomationPlan, error) {
	var plan AutomationPlan

	response, err := f.planner.Complete(ctx, []*types.Message{
		types.NewSystemMessage(plannerSystemPrompt),
		types.NewUserMessage(buildPlannerPrompt(query)),
	})
	if err != nil {
		return plan, err
	}

	if err := decodeStructured(response.Content, &plan); err != nil {
		return plan, err
	}
	if plan.TaskDescription == "" {
		return plan, fmt.Errorf("planner produced no task description")
	}

	plan.ApplyDefaults()
	return plan, nil
}

// execute runs the browser automation agent against the plan. The
// returned result is always populated; errors become failed results.
func (f *Flow) execute(ctx context.Context, plan AutomationPlan, emit func(*types.AgentEvent)) AutomationResult {
	if err := f.initManager(); err != nil {
		return AutomationResult{
			Success:      false,
			ErrorMessage: fmt.Sprintf("browser setup failed: %v", err),
		}
	}
	// Every run gets fresh sessions.
	defer func() {
		if err := f.manager.CloseAll(); err != nil {
			f.log.Warnf("Failed to close browser sessions: %v", err)
		}
	}()

	execCtx, cancel := context.WithTimeout(ctx, f.execTimeout)
	defer cancel()

	toolset := browser.NewToolset(f.manager,
		browser.WithHeadless(f.headless),
		browser.WithAnalysisProvider(f.executor),
	)

	agentOpts := []agent.AgentOption{
		agent.WithTaskContext(buildTaskContext(plan)),
		agent.WithTools(toolset.Tools()...),
	}
	if f.maxIterations > 0 {
		agentOpts = append(agentOpts, agent.WithMaxIterations(f.maxIterations))
	}
	ag := agent.NewDefaultAgent(f.executor, agentOpts...)

	if err := ag.Start(execCtx); err != nil {
		return AutomationResult{
			Success:      false,
			ErrorMessage: fmt.Sprintf("failed to start automation agent: %v", err),
		}
	}

	channels := ag.GetChannels()
	channels.Input <- types.NewUserInput(plan.TaskDescription)

	result := f.collectResult(execCtx, channels, emit)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := ag.Shutdown(shutdownCtx); err != nil {
		f.log.Warnf("Agent shutdown did not complete cleanly: %v", err)
	}

	return result
}

// collectResult consumes agent events until the turn ends, the channel
// closes, or the execution deadline passes, and folds loop-breaking
// tool results into an AutomationResult.
func (f *Flow) collectResult(ctx context.Context, channels *types.AgentChannels, emit func(*types.AgentEvent)) AutomationResult {
	result := AutomationResult{
		Success:      false,
		ErrorMessage: "agent stopped without completing the task",
	}

	for {
		select {
		case <-ctx.Done():
			if ctx.Err() == context.DeadlineExceeded {
				result = AutomationResult{
					Success:      false,
					ErrorMessage: fmt.Sprintf("browser automation timed out after %s", f.execTimeout),
				}
			} else {
				result = AutomationResult{
					Success:      false,
					ErrorMessage: "browser automation canceled",
				}
			}
			return result

		case event, ok := <-channels.Event:
			if !ok {
				return result
			}
			emit(event)

			switch event.Type {
			case types.EventTypeToolResult:
				data, _ := event.ToolOutput.(string)
				actions, _ := event.Metadata[tools.MetadataKeyActions].(string)

				switch event.ToolName {
				case "task_completion":
					result = AutomationResult{
						Success:          true,
						Data:             data,
						ActionsPerformed: actions,
					}
				case "report_failure":
					result = AutomationResult{
						Success:          false,
						ErrorMessage:     data,
						ActionsPerformed: actions,
					}
				}

			case types.EventTypeError:
				if event.ErrorMessage != "" {
					result.ErrorMessage = event.ErrorMessage
				}

			case types.EventTypeTurnEnd:
				return result
			}
		}
	}
}

// synthesize turns the automation result into a user-facing response.
// Synthesis errors degrade to a response built directly from the
// result instead of failing the run.
func (f *Flow) synthesize(ctx context.Context, result AutomationResult) FinalResponse {
	response, err := f.synthesizer.Complete(ctx, []*types.Message{
		types.NewSystemMessage(synthesisSystemPrompt),
		types.NewUserMessage(buildSynthesisPrompt(result)),
	})
	if err == nil {
		var final FinalResponse
		if decodeErr := decodeStructured(response.Content, &final); decodeErr == nil && final.Summary != "" {
			return final
		}
		err = fmt.Errorf("synthesis produced no usable structured output")
	}

	f.log.Warnf("Synthesis failed, falling back to raw result: %v", err)
	return fallbackResponse(result)
}

// fallbackResponse builds a FinalResponse directly from the raw result.
func fallbackResponse(result AutomationResult) FinalResponse {
	if result.Success {
		return FinalResponse{
			Summary: "The automation task completed.",
			Details: result.Data,
		}
	}
	return FinalResponse{
		Summary:         "The automation task could not be completed.",
		Details:         result.ErrorMessage,
		Recommendations: "Try rephrasing the query or including a specific website URL.",
	}
}

// initManager starts the Playwright driver on first use.
func (f *Flow) initManager() error {
	f.managerOnce.Do(func() {
		f.managerErr = f.manager.Initialize()
	})
	return f.managerErr
}

// Close shuts down the browser driver. Call when the process is done
// running flows.
func (f *Flow) Close() error {
	return f.manager.Shutdown()
}
