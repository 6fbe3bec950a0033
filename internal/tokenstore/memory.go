package tokenstore

import "sync"

// MemoryStore keeps tokens in process memory. Nothing survives a restart;
// it backs tests and ephemeral one-shot CLI invocations.
type MemoryStore struct {
	mu      sync.RWMutex
	access  string
	refresh string
	events  *notifier
}

// NewMemoryStore builds an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{events: newNotifier()}
}

func (s *MemoryStore) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access
}

func (s *MemoryStore) SetAccessToken(token string) {
	s.mu.Lock()
	s.access = token
	s.mu.Unlock()
	s.events.publish()
}

func (s *MemoryStore) ClearAccessToken() {
	s.mu.Lock()
	s.access = ""
	s.refresh = ""
	s.mu.Unlock()
	s.events.publish()
}

func (s *MemoryStore) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refresh
}

func (s *MemoryStore) SetRefreshToken(token string) {
	s.mu.Lock()
	s.refresh = token
	s.mu.Unlock()
	s.events.publish()
}

func (s *MemoryStore) ClearRefreshToken() {
	s.mu.Lock()
	s.refresh = ""
	s.mu.Unlock()
	s.events.publish()
}

func (s *MemoryStore) Subscribe(fn func()) func() {
	return s.events.subscribe(fn)
}
