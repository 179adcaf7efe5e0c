// Package session holds the client-side authentication state: one in-memory
// snapshot for the running process, mirrored into two independent durable
// copies (the userData cookie and a local file). The in-memory copy must
// always be derivable from at least one durable copy; reconciliation on
// startup prefers the cookie and falls back to the file.
package session

import (
	"sync"
)

// Snapshot is the client-held mirror of session identity.
type Snapshot struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
	Token     string `json:"token,omitempty"`
}

// State is the lifecycle of the store.
type State int

const (
	StateUninitialized State = iota
	StateHydrating
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateHydrating:
		return "hydrating"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "uninitialized"
	}
}

// DurableStore is one persisted copy of the auth snapshot.
type DurableStore interface {
	// Load returns the stored snapshot, or ErrNoSnapshot when absent or
	// unparsable.
	Load() (*Snapshot, error)
	Save(snap Snapshot) error
	Clear() error
}

// LandingRoute is where anonymous navigation lands.
const LandingRoute = "/"

// Store owns the in-memory snapshot and keeps both durable copies in sync
// on every transition. Navigate is invoked after logout or invalidation,
// strictly after both durable copies are cleared.
type Store struct {
	mu       sync.RWMutex
	state    State
	snap     *Snapshot
	primary  DurableStore // cookie mirror: wins during hydration
	fallback DurableStore // persistent local copy
	navigate func(route string)
}

// NewStore builds an uninitialized store over the two durable copies.
// navigate may be nil when the embedding program handles navigation itself.
func NewStore(primary, fallback DurableStore, navigate func(route string)) *Store {
	if navigate == nil {
		navigate = func(string) {}
	}
	return &Store{
		state:    StateUninitialized,
		primary:  primary,
		fallback: fallback,
		navigate: navigate,
	}
}

// Hydrate settles the store from whichever durable copy is available: the
// cookie mirror first, then the local file. When both are absent or corrupt
// it clears both defensively and settles anonymous. Hydrating twice from
// the same copies yields the same snapshot.
func (s *Store) Hydrate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateHydrating

	if snap, err := s.primary.Load(); err == nil {
		s.snap = snap
		s.state = StateAuthenticated
		return
	}
	if snap, err := s.fallback.Load(); err == nil {
		s.snap = snap
		s.state = StateAuthenticated
		return
	}

	_ = s.primary.Clear()
	_ = s.fallback.Clear()
	s.snap = nil
	s.state = StateAnonymous
}

// Login adopts a fresh snapshot from a successful login response, writing
// memory and both durable copies in lockstep.
func (s *Store) Login(snap Snapshot) error {
	return s.adopt(snap)
}

// Update overwrites the snapshot after a profile change, identically in
// memory and both durable copies.
func (s *Store) Update(snap Snapshot) error {
	return s.adopt(snap)
}

func (s *Store) adopt(snap Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.primary.Save(snap); err != nil {
		return err
	}
	if err := s.fallback.Save(snap); err != nil {
		return err
	}
	s.snap = &snap
	s.state = StateAuthenticated
	return nil
}

// Logout clears memory and both durable copies, then navigates to the
// landing route. Clearing strictly precedes navigation so a reload can
// never rehydrate stale identity.
func (s *Store) Logout() {
	s.clear()
	s.navigate(LandingRoute)
}

// Invalidate is the server-initiated variant of Logout, triggered by any
// authorization failure on any outbound call.
func (s *Store) Invalidate() {
	s.clear()
	s.navigate(LandingRoute)
}

func (s *Store) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.primary.Clear()
	_ = s.fallback.Clear()
	s.snap = nil
	s.state = StateAnonymous
}

// State returns the current lifecycle state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Snapshot returns a copy of the in-memory snapshot, or nil when anonymous.
func (s *Store) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap == nil {
		return nil
	}
	snap := *s.snap
	return &snap
}

// Role returns the active role, or "" when not authenticated.
func (s *Store) Role() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap == nil {
		return ""
	}
	return s.snap.Role
}

// Token returns the held bearer token, or "" when not authenticated.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap == nil {
		return ""
	}
	return s.snap.Token
}
