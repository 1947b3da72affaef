package state

import (
	"sync"

	id "motorhub/pkg/domain"
)

// Store owns one State and applies actions one at a time.
type Store[R Report] struct {
	mu     sync.Mutex
	state  State[R]
	subs   map[int]func(State[R])
	nextID int
}

func NewStore[R Report](maxRecent, maxSaved int) *Store[R] {
	return &Store[R]{
		state: New[R](maxRecent, maxSaved),
		subs:  make(map[int]func(State[R])),
	}
}

// Dispatch reduces a into the store and returns the new state. Subscribers
// are called with that state after the lock is released, so concurrent
// dispatches may notify out of order.
func (s *Store[R]) Dispatch(a Action[R]) State[R] {
	return s.Update(func(State[R]) []Action[R] { return []Action[R]{a} })
}

// Update applies fn's actions atomically against the state it was given.
// fn runs under the store lock and must not call back into the store.
func (s *Store[R]) Update(fn func(State[R]) []Action[R]) State[R] {
	s.mu.Lock()
	for _, a := range fn(s.state) {
		s.state = Reduce(s.state, a)
	}
	next := s.state
	subs := make([]func(State[R]), 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	for _, sub := range subs {
		sub(next)
	}
	return next
}

// State returns a snapshot.
func (s *Store[R]) State() State[R] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn to be called after every dispatch.
func (s *Store[R]) Subscribe(fn func(State[R])) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	subID := s.nextID
	s.nextID++
	s.subs[subID] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, subID)
	}
}

func (s *Store[R]) AddRecentSearch(id string) State[R] {
	return s.Dispatch(AddRecentSearch[R](id))
}

func (s *Store[R]) RemoveRecentSearch(id string) State[R] {
	return s.Dispatch(RemoveRecentSearch[R](id))
}

func (s *Store[R]) ClearRecentSearches() State[R] {
	return s.Dispatch(ClearRecentSearches[R]())
}

func (s *Store[R]) SaveReport(report R) State[R] {
	return s.Dispatch(SaveReport(report))
}

func (s *Store[R]) RemoveSavedReport(key string) State[R] {
	return s.Dispatch(RemoveSavedReport[R](key))
}

func (s *Store[R]) ClearSavedReports() State[R] {
	return s.Dispatch(ClearSavedReports[R]())
}

func (s *Store[R]) SetLoading(loading bool) State[R] {
	return s.Dispatch(SetLoading[R](loading))
}

func (s *Store[R]) SetError(msg string) State[R] {
	return s.Dispatch(SetError[R](msg))
}

func (s *Store[R]) ClearError() State[R] {
	return s.Dispatch(ClearError[R]())
}

func (s *Store[R]) SetData(report R) State[R] {
	return s.Dispatch(SetData(report))
}

// Stores keeps one Store per owner, created on first use.
type Stores[R Report] struct {
	mu        sync.RWMutex
	stores    map[id.UserID]*Store[R]
	maxRecent int
	maxSaved  int
}

func NewStores[R Report](maxRecent, maxSaved int) *Stores[R] {
	return &Stores[R]{
		stores:    make(map[id.UserID]*Store[R]),
		maxRecent: maxRecent,
		maxSaved:  maxSaved,
	}
}

// For returns owner's store, creating an empty one if needed.
func (s *Stores[R]) For(owner id.UserID) *Store[R] {
	s.mu.RLock()
	store, ok := s.stores[owner]
	s.mu.RUnlock()
	if ok {
		return store
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if store, ok := s.stores[owner]; ok {
		return store
	}
	store = NewStore[R](s.maxRecent, s.maxSaved)
	s.stores[owner] = store
	return store
}

// Drop forgets owner's state.
func (s *Stores[R]) Drop(owner id.UserID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.stores, owner)
}

func (s *Stores[R]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.stores)
}
