package config

import (
	"fmt"
	"sync"
)

const (
	// SectionIDBrowser is the identifier for the browser settings section
	SectionIDBrowser = "browser"

	// DefaultExecutionTimeoutSeconds bounds a single automation run's
	// browser stage.
	DefaultExecutionTimeoutSeconds = 180
)

// BrowserSection manages browser automation settings.
type BrowserSection struct {
	Headless                bool
	MaxSessions             int
	ExecutionTimeoutSeconds int
	mu                      sync.RWMutex
}

// NewBrowserSection creates a new browser section with default settings.
func NewBrowserSection() *BrowserSection {
	return &BrowserSection{
		Headless:                true,
		MaxSessions:             3,
		ExecutionTimeoutSeconds: DefaultExecutionTimeoutSeconds,
	}
}

// ID returns the section identifier.
func (s *BrowserSection) ID() string {
	return SectionIDBrowser
}

// Title returns the section title.
func (s *BrowserSection) Title() string {
	return "Browser Settings"
}

// Description returns the section description.
func (s *BrowserSection) Description() string {
	return "Configure browser automation behavior: headless mode, session limits, and the execution timeout for automation runs."
}

// Data returns the current configuration data.
func (s *BrowserSection) Data() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]interface{}{
		"headless":                  s.Headless,
		"max_sessions":              s.MaxSessions,
		"execution_timeout_seconds": s.ExecutionTimeoutSeconds,
	}
}

// SetData updates the configuration from the provided data. Numeric
// values come back from JSON as float64.
func (s *BrowserSection) SetData(data map[string]interface{}) error {
	if data == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if headless, ok := data["headless"].(bool); ok {
		s.Headless = headless
	}
	if maxSessions, ok := asInt(data["max_sessions"]); ok {
		s.MaxSessions = maxSessions
	}
	if timeout, ok := asInt(data["execution_timeout_seconds"]); ok {
		s.ExecutionTimeoutSeconds = timeout
	}

	return nil
}

// Validate validates the current configuration.
func (s *BrowserSection) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.MaxSessions < 1 {
		return fmt.Errorf("max_sessions must be at least 1")
	}
	if s.ExecutionTimeoutSeconds < 10 {
		return fmt.Errorf("execution_timeout_seconds must be at least 10")
	}
	return nil
}

// Reset resets the section to default configuration.
func (s *BrowserSection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Headless = true
	s.MaxSessions = 3
	s.ExecutionTimeoutSeconds = DefaultExecutionTimeoutSeconds
}

// IsHeadless returns whether browsers run without a visible window.
func (s *BrowserSection) IsHeadless() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Headless
}

// GetMaxSessions returns the session limit.
func (s *BrowserSection) GetMaxSessions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.MaxSessions
}

// GetExecutionTimeoutSeconds returns the automation timeout.
func (s *BrowserSection) GetExecutionTimeoutSeconds() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ExecutionTimeoutSeconds
}

// asInt converts JSON-decoded numeric values to int.
func asInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		return int(n), true
	}
	return 0, false
}
