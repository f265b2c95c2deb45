// Package flow orchestrates browser automation runs as a three-stage
// pipeline.
//
// A run starts from a free-form user query ("find the current price of
// X on example.com") and proceeds through:
//
//  1. Plan: a planner model turns the query into an AutomationPlan
//     with a concrete task description and target URL. Queries with no
//     URL default to a web search starting point.
//  2. Execute: a tool-calling agent drives a real browser against the
//     plan, bounded by an execution timeout. The outcome is an
//     AutomationResult whether it succeeded or not.
//  3. Synthesize: a response model turns the raw result into a
//     user-facing FinalResponse with summary, details, and
//     recommendations. Failed executions are synthesized too, so the
//     user always gets an explanation.
//
// Stages stream their progress as AgentEvents, letting callers render
// live output:
//
//	f := flow.New(provider, flow.WithHeadless(true))
//	events := make(chan *types.AgentEvent, 64)
//	go func() {
//	    for ev := range events {
//	        render(ev)
//	    }
//	}()
//	run, err := f.Run(ctx, query, events)
//	close(events)
package flow
