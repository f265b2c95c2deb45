package config

import (
	"fmt"
	"sync"
)

const (
	// SectionIDServer is the identifier for the web server section
	SectionIDServer = "server"

	// DefaultServerPort is the default web UI port.
	DefaultServerPort = 8510
)

// ServerSection manages web UI server settings.
type ServerSection struct {
	Host string
	Port int
	mu   sync.RWMutex
}

// NewServerSection creates a new server section with default settings.
func NewServerSection() *ServerSection {
	return &ServerSection{
		Host: "127.0.0.1",
		Port: DefaultServerPort,
	}
}

// ID returns the section identifier.
func (s *ServerSection) ID() string {
	return SectionIDServer
}

// Title returns the section title.
func (s *ServerSection) Title() string {
	return "Web Server Settings"
}

// Description returns the section description.
func (s *ServerSection) Description() string {
	return "Configure the web UI server address."
}

// Data returns the current configuration data.
func (s *ServerSection) Data() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]interface{}{
		"host": s.Host,
		"port": s.Port,
	}
}

// SetData updates the configuration from the provided data.
func (s *ServerSection) SetData(data map[string]interface{}) error {
	if data == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if host, ok := data["host"].(string); ok {
		s.Host = host
	}
	if port, ok := asInt(data["port"]); ok {
		s.Port = port
	}

	return nil
}

// Validate validates the current configuration.
func (s *ServerSection) Validate() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.Port < 1 || s.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	return nil
}

// Reset resets the section to default configuration.
func (s *ServerSection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Host = "127.0.0.1"
	s.Port = DefaultServerPort
}

// Addr returns the host:port listen address.
func (s *ServerSection) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
