package config

import (
	"sync"
)

const (
	// SectionIDLLM is the identifier for the LLM settings section
	SectionIDLLM = "llm"

	// DefaultModel is used when no model is configured.
	DefaultModel = "gpt-4o"
)

// LLMSection manages LLM provider configuration settings. The three
// flow stages can each be directed at their own model; stages without
// an override use Model.
type LLMSection struct {
	Model            string
	BaseURL          string
	APIKey           string
	PlannerModel     string // optional; planning stage override
	ExecutorModel    string // optional; browser automation stage override
	SynthesizerModel string // optional; response synthesis stage override
	mu               sync.RWMutex
}

// NewLLMSection creates a new LLM section with default settings.
func NewLLMSection() *LLMSection {
	return &LLMSection{
		Model: DefaultModel,
	}
}

// ID returns the section identifier.
func (s *LLMSection) ID() string {
	return SectionIDLLM
}

// Title returns the section title.
func (s *LLMSection) Title() string {
	return "LLM Settings"
}

// Description returns the section description.
func (s *LLMSection) Description() string {
	return "Configure LLM provider settings. planner_model, executor_model, and synthesizer_model are optional per-stage overrides; stages without one use the main model."
}

// Data returns the current configuration data.
func (s *LLMSection) Data() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]interface{}{
		"model":             s.Model,
		"base_url":          s.BaseURL,
		"api_key":           s.APIKey,
		"planner_model":     s.PlannerModel,
		"executor_model":    s.ExecutorModel,
		"synthesizer_model": s.SynthesizerModel,
	}
}

// SetData updates the configuration from the provided data.
func (s *LLMSection) SetData(data map[string]interface{}) error {
	if data == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if model, ok := data["model"].(string); ok {
		s.Model = model
	}
	if baseURL, ok := data["base_url"].(string); ok {
		s.BaseURL = baseURL
	}
	if apiKey, ok := data["api_key"].(string); ok {
		s.APIKey = apiKey
	}
	if plannerModel, ok := data["planner_model"].(string); ok {
		s.PlannerModel = plannerModel
	}
	if executorModel, ok := data["executor_model"].(string); ok {
		s.ExecutorModel = executorModel
	}
	if synthesizerModel, ok := data["synthesizer_model"].(string); ok {
		s.SynthesizerModel = synthesizerModel
	}

	return nil
}

// Validate validates the current configuration. LLM settings are
// optional here; the provider validates credentials at call time.
func (s *LLMSection) Validate() error {
	return nil
}

// Reset resets the section to default configuration.
func (s *LLMSection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Model = DefaultModel
	s.BaseURL = ""
	s.APIKey = ""
	s.PlannerModel = ""
	s.ExecutorModel = ""
	s.SynthesizerModel = ""
}

// GetModel returns the configured model name.
func (s *LLMSection) GetModel() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Model
}

// GetBaseURL returns the configured base URL.
func (s *LLMSection) GetBaseURL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.BaseURL
}

// GetAPIKey returns the configured API key.
func (s *LLMSection) GetAPIKey() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.APIKey
}

// GetPlannerModel returns the planning stage model override.
func (s *LLMSection) GetPlannerModel() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.PlannerModel
}

// GetExecutorModel returns the execution stage model override.
func (s *LLMSection) GetExecutorModel() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ExecutorModel
}

// GetSynthesizerModel returns the synthesis stage model override.
func (s *LLMSection) GetSynthesizerModel() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.SynthesizerModel
}
