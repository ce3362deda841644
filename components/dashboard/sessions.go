package dashboard

import (
	"sync"
	"time"
)

// DefaultSessionTTL is how long an idle page stays mounted.
const DefaultSessionTTL = 30 * time.Minute

// SessionStore keeps mounted pages in memory. Every Get slides the expiry.
type SessionStore struct {
	ttl time.Duration
	now func() time.Time

	mu    sync.RWMutex
	pages map[string]*Page
}

// SessionOption customizes a SessionStore.
type SessionOption func(*SessionStore)

// WithSessionClock injects the clock, mostly for tests.
func WithSessionClock(now func() time.Time) SessionOption {
	return func(s *SessionStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSessionStore builds a store. A non-positive ttl uses DefaultSessionTTL.
func NewSessionStore(ttl time.Duration, opts ...SessionOption) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	store := &SessionStore{
		ttl:   ttl,
		now:   time.Now,
		pages: make(map[string]*Page),
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// TTL returns the idle timeout.
func (s *SessionStore) TTL() time.Duration {
	return s.ttl
}

// Create stores the page.
func (s *SessionStore) Create(page *Page) {
	page.Touch(s.now())
	s.mu.Lock()
	s.pages[page.ID] = page
	s.mu.Unlock()
}

// Get returns a live page. Expired pages are removed and reported as not found.
func (s *SessionStore) Get(id string) (*Page, error) {
	s.mu.RLock()
	page, ok := s.pages[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrPageNotFound(id)
	}
	now := s.now()
	if s.expired(page, now) {
		s.Delete(id)
		return nil, ErrPageNotFound(id)
	}
	page.Touch(now)
	return page, nil
}

// Delete removes a page. Unknown ids are ignored.
func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	delete(s.pages, id)
	s.mu.Unlock()
}

// Sweep drops every expired page and returns how many were removed.
func (s *SessionStore) Sweep() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, page := range s.pages {
		if s.expired(page, now) {
			delete(s.pages, id)
			removed++
		}
	}
	return removed
}

// Len reports the number of stored pages, expired ones included.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pages)
}

func (s *SessionStore) expired(page *Page, now time.Time) bool {
	return now.Sub(page.LastSeen()) > s.ttl
}
