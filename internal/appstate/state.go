// Package appstate holds the process-wide session and cart-badge state as
// an explicit object with read, subscribe, and update operations rather
// than an ambient singleton. It is constructed once at startup, updated on
// auth-state transitions and cart changes, and cleared on logout.
package appstate

import "sync"

// Snapshot is an immutable view of the current application state.
type Snapshot struct {
	UserID        int64 `json:"user_id"`
	Authenticated bool  `json:"authenticated"`
	CartCount     int   `json:"cart_count"`
}

type State struct {
	mu      sync.RWMutex
	current Snapshot
	subs    map[int]chan Snapshot
	nextID  int
}

func New() *State {
	return &State{
		subs: make(map[int]chan Snapshot),
	}
}

func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.current
}

// Subscribe returns a channel that receives every subsequent state change
// and a cancel function that must be called when the subscriber is done.
// A slow subscriber misses intermediate snapshots rather than blocking
// publishers; the latest state always lands.
func (s *State) Subscribe() (<-chan Snapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++

	ch := make(chan Snapshot, 1)
	s.subs[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
	}

	return ch, cancel
}

func (s *State) SetSession(userID int64) {
	s.update(func(snap *Snapshot) {
		snap.UserID = userID
		snap.Authenticated = true
	})
}

func (s *State) ClearSession() {
	s.update(func(snap *Snapshot) {
		snap.UserID = 0
		snap.Authenticated = false
		snap.CartCount = 0
	})
}

func (s *State) SetCartCount(count int) {
	s.update(func(snap *Snapshot) {
		snap.CartCount = count
	})
}

func (s *State) update(mutate func(*Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mutate(&s.current)

	for _, ch := range s.subs {
		// drain a stale snapshot so the newest one always fits
		select {
		case <-ch:
		default:
		}

		select {
		case ch <- s.current:
		default:
		}
	}
}
