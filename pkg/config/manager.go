package config

import (
	"fmt"
	"sort"
	"sync"
)

// Section represents a named group of related settings. Sections own
// their typed fields and marshal themselves to and from the generic
// map the store persists.
type Section interface {
	// ID returns the unique section identifier used as the storage key.
	ID() string

	// Title returns a human-readable section title.
	Title() string

	// Description returns a description of what the section configures.
	Description() string

	// Data returns the current configuration as a serializable map.
	Data() map[string]interface{}

	// SetData updates the section from stored data. Unknown keys are
	// ignored so configs survive version skew.
	SetData(data map[string]interface{}) error

	// Validate checks the current configuration.
	Validate() error

	// Reset restores the section to its defaults.
	Reset()
}

// Manager coordinates registered sections with a backing store.
type Manager struct {
	store    Store
	sections map[string]Section
	mu       sync.RWMutex
}

// NewManager creates a manager over the given store.
func NewManager(store Store) *Manager {
	return &Manager{
		store:    store,
		sections: make(map[string]Section),
	}
}

// RegisterSection adds a section to the manager.
func (m *Manager) RegisterSection(section Section) error {
	if section == nil {
		return fmt.Errorf("section cannot be nil")
	}
	id := section.ID()
	if id == "" {
		return fmt.Errorf("section ID cannot be empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sections[id]; exists {
		return fmt.Errorf("section %q already registered", id)
	}
	m.sections[id] = section
	return nil
}

// GetSection retrieves a registered section by ID.
func (m *Manager) GetSection(id string) (Section, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	section, ok := m.sections[id]
	return section, ok
}

// GetSections returns all registered sections sorted by ID.
func (m *Manager) GetSections() []Section {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sections := make([]Section, 0, len(m.sections))
	for _, section := range m.sections {
		sections = append(sections, section)
	}
	sort.Slice(sections, func(i, j int) bool {
		return sections[i].ID() < sections[j].ID()
	})
	return sections
}

// Store returns the backing store.
func (m *Manager) Store() Store {
	return m.store
}

// LoadAll loads the store and applies stored data to each registered
// section.
func (m *Manager) LoadAll() error {
	if err := m.store.Load(); err != nil {
		return fmt.Errorf("failed to load store: %w", err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for id, section := range m.sections {
		data, err := m.store.GetSection(id)
		if err != nil {
			return fmt.Errorf("failed to get section %q: %w", id, err)
		}
		if len(data) == 0 {
			continue
		}
		if err := section.SetData(data); err != nil {
			return fmt.Errorf("failed to apply section %q: %w", id, err)
		}
	}
	return nil
}

// SaveAll validates every section, writes their data to the store, and
// persists it.
func (m *Manager) SaveAll() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for id, section := range m.sections {
		if err := section.Validate(); err != nil {
			return fmt.Errorf("section %q is invalid: %w", id, err)
		}
	}

	for id, section := range m.sections {
		if err := m.store.SetSection(id, section.Data()); err != nil {
			return fmt.Errorf("failed to store section %q: %w", id, err)
		}
	}

	return m.store.Save()
}

// ResetAll restores every section to its defaults. The store is not
// saved until SaveAll is called.
func (m *Manager) ResetAll() {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, section := range m.sections {
		section.Reset()
	}
}
