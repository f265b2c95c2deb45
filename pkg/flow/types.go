package flow

import (
	"fmt"
	"strings"
	"time"
)

// DefaultWebsiteURL is used when the planner cannot identify a target
// site from the user's query.
const DefaultWebsiteURL = "https://www.google.com"

// DefaultComplexity is assumed when the planner omits an estimate.
const DefaultComplexity = "medium"

// AutomationPlan is the planner stage's structured output: what to do,
// where to do it, and how hard it looks.
type AutomationPlan struct {
	// TaskDescription is the specific automation task to perform.
	TaskDescription string `json:"task_description"`

	// WebsiteURL is the target website for the automation.
	WebsiteURL string `json:"website_url"`

	// EstimatedComplexity is the planner's estimate: low, medium, or high.
	EstimatedComplexity string `json:"estimated_complexity"`
}

// ApplyDefaults normalizes a decoded plan. Placeholder URL values the
// model sometimes produces instead of omitting the field are treated
// as absent.
func (p *AutomationPlan) ApplyDefaults() {
	switch strings.ToLower(strings.TrimSpace(p.WebsiteURL)) {
	case "", "none", "null", "n/a":
		p.WebsiteURL = DefaultWebsiteURL
	}
	if strings.TrimSpace(p.EstimatedComplexity) == "" {
		p.EstimatedComplexity = DefaultComplexity
	}
}

// AutomationResult is the execution stage's structured output.
type AutomationResult struct {
	// Success reports whether the automation completed.
	Success bool `json:"success"`

	// Data holds the extracted or produced information.
	Data string `json:"data"`

	// ErrorMessage describes the failure when Success is false.
	ErrorMessage string `json:"error_message,omitempty"`

	// ActionsPerformed summarizes the browser actions taken.
	ActionsPerformed string `json:"actions_performed,omitempty"`
}

// FinalResponse is the synthesis stage's structured output, shaped for
// presentation to the end user.
type FinalResponse struct {
	// Summary is a brief statement of what was accomplished.
	Summary string `json:"summary"`

	// Details holds the full results or findings.
	Details string `json:"details"`

	// Recommendations are optional next steps for the user.
	Recommendations string `json:"recommendations,omitempty"`
}

// Markdown renders the response in the format shown to users.
func (r *FinalResponse) Markdown() string {
	recommendations := r.Recommendations
	if recommendations == "" {
		recommendations = "No additional recommendations at this time."
	}
	return fmt.Sprintf("**Summary:** %s\n\n**Details:** %s\n\n**Recommendations:** %s",
		r.Summary, r.Details, recommendations)
}

// RunResult captures everything produced by a single automation run.
type RunResult struct {
	// RunID uniquely identifies this run.
	RunID string `json:"run_id"`

	// Query is the user's original automation query.
	Query string `json:"query"`

	// Plan is the planner stage output.
	Plan AutomationPlan `json:"plan"`

	// Result is the execution stage output.
	Result AutomationResult `json:"result"`

	// Response is the synthesized final response.
	Response FinalResponse `json:"response"`

	// StartedAt and FinishedAt bound the run.
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Flow stage names used in stage events.
const (
	StagePlan       = "plan"
	StageExecute    = "execute"
	StageSynthesize = "synthesize"
)
