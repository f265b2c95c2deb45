package flow

import (
	"fmt"
	"strings"
)

// plannerSystemPrompt frames the planning stage.
const plannerSystemPrompt = `You are an expert browser automation strategist with deep knowledge of web technologies and automation best practices. You excel at breaking down complex user requests into actionable automation tasks.`

// buildPlannerPrompt produces the planning stage user prompt.
func buildPlannerPrompt(query string) string {
	var b strings.Builder

	fmt.Fprintf(&b, `Analyze the following user query and create a comprehensive automation plan:

User Query: '%s'

Your task is to:
1. Identify the target website URL from the query
2. Define the specific automation task to be performed
3. Assess the complexity level of the task (low, medium, or high)
4. Ensure the plan is actionable and specific

If no specific URL is provided, use %s as the default.`, query, DefaultWebsiteURL)

	b.WriteString(schemaInstructions(
		"The task_description must be specific enough to execute without the original query.",
		`{
  "task_description": "<what to do on the site>",
  "website_url": "<target URL including protocol>",
  "estimated_complexity": "low|medium|high"
}`))

	return b.String()
}

// buildTaskContext produces the execution agent's task context from the
// plan. It becomes part of the agent's system prompt.
func buildTaskContext(plan AutomationPlan) string {
	return fmt.Sprintf(`Execute the following browser automation task with precision:

Target Website: %s
Task Description: %s
Estimated Complexity: %s

Instructions:
1. Start a browser session and navigate to the target website
2. Perform the requested automation task
3. Extract or process the required information
4. Provide precise information found on the pages, not summaries of what you did
5. Handle errors gracefully; if the task cannot be completed, report the failure with what was tried`,
		plan.WebsiteURL,
		plan.TaskDescription,
		plan.EstimatedComplexity,
	)
}

// synthesisSystemPrompt frames the synthesis stage.
const synthesisSystemPrompt = `You are an expert communicator who specializes in translating complex technical results into user-friendly responses. You excel at providing clear summaries, actionable insights, and helpful recommendations.`

// buildSynthesisPrompt produces the synthesis stage user prompt.
func buildSynthesisPrompt(result AutomationResult) string {
	var b strings.Builder

	errorMessage := result.ErrorMessage
	if errorMessage == "" {
		errorMessage = "None"
	}
	actions := result.ActionsPerformed
	if actions == "" {
		actions = "Not specified"
	}

	fmt.Fprintf(&b, `Create a comprehensive, user-friendly response based on the automation results:

Automation Success: %t
Data/Results: %s
Error Message: %s
Actions Performed: %s

Your response should include:
1. A clear summary of what was accomplished
2. Detailed results or findings
3. Any relevant recommendations or next steps
4. If there were errors, provide helpful guidance

Make the response conversational, informative, and actionable for the end user.`,
		result.Success,
		result.Data,
		errorMessage,
		actions,
	)

	b.WriteString(schemaInstructions(
		"Recommendations may be an empty string when there is nothing useful to add.",
		`{
  "summary": "<brief summary of what was accomplished>",
  "details": "<detailed results or findings>",
  "recommendations": "<next steps for the user>"
}`))

	return b.String()
}
