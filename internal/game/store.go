package game

import (
	"sync"
	"time"

	"github.com/adityarawat/manch-ui/internal/logger"
	"github.com/adityarawat/manch-ui/internal/models"
)

// Store owns one session's GameState plus its allocation-stage draft. All
// mutations flow through Dispatch or the draft methods, which serialize
// writers; reads always receive a snapshot copy.
type Store struct {
	mu    sync.RWMutex
	state models.GameState
	draft *AllocationDraft
}

// NewStore creates a store holding the initial game state
func NewStore() *Store {
	return &Store{
		state: InitialState(),
		draft: NewAllocationDraft(),
	}
}

// Dispatch applies a command atomically and returns the resulting snapshot.
// Selecting a candidate or resetting the game also clears the allocation
// draft, matching the fresh state the reducer returns.
func (s *Store) Dispatch(cmd Command) models.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch cmd.(type) {
	case SelectCandidate, ResetGame:
		s.draft = NewAllocationDraft()
	}

	s.state = Reduce(s.state, cmd)
	return cloneState(s.state)
}

// AdjustDraft moves one point on a draft metric: positive delta increments,
// negative decrements. It reports whether the draft accepted the change and
// always returns the resulting points.
func (s *Store) AdjustDraft(id models.MetricID, delta int) (map[models.MetricID]int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	applied := false
	switch {
	case delta > 0:
		applied = s.draft.Increment(id)
	case delta < 0:
		applied = s.draft.Decrement(id)
	}
	return s.draft.Points(), applied
}

// AutoBalanceDraft spreads the full budget evenly and returns the points
func (s *Store) AutoBalanceDraft() map[models.MetricID]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.draft.AutoBalance()
	return s.draft.Points()
}

// DraftPoints returns a copy of the current draft allocation
func (s *Store) DraftPoints() map[models.MetricID]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.draft.Points()
}

// DraftRemaining returns the unspent part of the allocation budget
func (s *Store) DraftRemaining() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return AllocationBudget - s.draft.Total()
}

// Snapshot returns a copy of the current game state
func (s *Store) Snapshot() models.GameState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneState(s.state)
}

type registryEntry struct {
	store    *Store
	lastSeen time.Time
}

// Registry keys one Store per play session. Sessions are in-memory only
// and evicted after sitting idle; finished or abandoned games are not
// persisted anywhere.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*registryEntry
}

// NewRegistry creates an empty session registry
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*registryEntry)}
}

// Get returns the store for a session, creating it on first use
func (r *Registry) Get(sessionID string) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[sessionID]
	if !ok {
		entry = &registryEntry{store: NewStore()}
		r.entries[sessionID] = entry
	}
	entry.lastSeen = time.Now()
	return entry.store
}

// Len returns the number of live sessions
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Sweep evicts sessions idle for longer than maxIdle and returns the
// number of evicted sessions
func (r *Registry) Sweep(maxIdle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := time.Now().Add(-maxIdle)
	evicted := 0
	for id, entry := range r.entries {
		if entry.lastSeen.Before(cutoff) {
			delete(r.entries, id)
			evicted++
		}
	}

	if evicted > 0 {
		logger.Debug("Evicted idle game sessions", "evicted", evicted, "remaining", len(r.entries))
	}
	return evicted
}
