package server

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/webpilot/webpilot/pkg/flow"
	"github.com/webpilot/webpilot/pkg/types"
)

// RunStatus tracks a run through its lifecycle.
type RunStatus string

const (
	StatusQueued    RunStatus = "queued"
	StatusRunning   RunStatus = "running"
	StatusCompleted RunStatus = "completed"
	StatusFailed    RunStatus = "failed"
)

// Run is a single automation run tracked by the server. It buffers the
// events produced so far so late-joining stream subscribers see the
// full history.
type Run struct {
	ID        string    `json:"id"`
	Query     string    `json:"query"`
	Status    RunStatus `json:"status"`
	CreatedAt time.Time `json:"created_at"`

	// Result is set when the run completes.
	Result *flow.RunResult `json:"result,omitempty"`

	// Error is set when the run fails before producing a result.
	Error string `json:"error,omitempty"`

	mu     sync.Mutex
	events []*types.AgentEvent
	subs   map[chan *types.AgentEvent]struct{}
	closed bool
}

// Snapshot returns a copy of the run safe to serialize without holding
// its lock.
func (r *Run) Snapshot() Run {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Run{
		ID:        r.ID,
		Query:     r.Query,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
		Result:    r.Result,
		Error:     r.Error,
	}
}

// Append records an event and fans it out to subscribers. Slow
// subscribers are skipped rather than blocking the run.
func (r *Run) Append(event *types.AgentEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, event)
	for sub := range r.subs {
		select {
		case sub <- event:
		default:
		}
	}
}

// Subscribe returns the event history so far plus a channel of
// subsequent events. The channel is closed when the run finishes.
// Call the returned cancel function when done.
func (r *Run) Subscribe() ([]*types.AgentEvent, <-chan *types.AgentEvent, func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	history := make([]*types.AgentEvent, len(r.events))
	copy(history, r.events)

	ch := make(chan *types.AgentEvent, 256)
	if r.closed {
		close(ch)
		return history, ch, func() {}
	}

	r.subs[ch] = struct{}{}
	cancel := func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if _, ok := r.subs[ch]; ok {
			delete(r.subs, ch)
			close(ch)
		}
	}
	return history, ch, cancel
}

// finish marks the run done and closes all subscriber channels.
func (r *Run) finish(status RunStatus, result *flow.RunResult, runErr error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Status = status
	r.Result = result
	if runErr != nil {
		r.Error = runErr.Error()
	}

	r.closed = true
	for sub := range r.subs {
		close(sub)
	}
	r.subs = make(map[chan *types.AgentEvent]struct{})
}

// setRunning transitions the run to the running state.
func (r *Run) setRunning() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Status = StatusRunning
}

// RunStore is an in-memory registry of runs.
type RunStore struct {
	mu   sync.RWMutex
	runs map[string]*Run
}

// NewRunStore creates an empty run store.
func NewRunStore() *RunStore {
	return &RunStore{
		runs: make(map[string]*Run),
	}
}

// Create registers a new queued run.
func (s *RunStore) Create(id, query string) *Run {
	run := &Run{
		ID:        id,
		Query:     query,
		Status:    StatusQueued,
		CreatedAt: time.Now(),
		subs:      make(map[chan *types.AgentEvent]struct{}),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[id] = run
	return run
}

// Get retrieves a run by ID.
func (s *RunStore) Get(id string) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	if !ok {
		return nil, fmt.Errorf("run %q not found", id)
	}
	return run, nil
}

// List returns snapshots of all runs, newest first.
func (s *RunStore) List() []Run {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshots := make([]Run, 0, len(s.runs))
	for _, run := range s.runs {
		snapshots = append(snapshots, run.Snapshot())
	}
	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].CreatedAt.After(snapshots[j].CreatedAt)
	})
	return snapshots
}
