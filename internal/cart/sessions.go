package cart

import "sync"

// Sessions hands out one cart per terminal. The map is guarded so concurrent
// HTTP requests from different terminals can fetch their carts safely; each
// individual cart still has a single writer (its terminal).
type Sessions struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

// NewSessions creates an empty session manager
func NewSessions() *Sessions {
	return &Sessions{
		carts: make(map[string]*Cart),
	}
}

// Get returns the cart for the terminal, creating it on first use
func (s *Sessions) Get(terminalID string) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[terminalID]
	if !ok {
		c = New()
		s.carts[terminalID] = c
	}
	return c
}
