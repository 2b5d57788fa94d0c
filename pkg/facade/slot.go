package facade

import "sync"

// Slot is the well-known place a client is installed in. The first Install
// wins; the real implementation replaces the stub with Attach.
type Slot struct {
	mu     sync.Mutex
	client Client
}

// Install stores the client built by newClient unless the slot is already
// occupied. It returns the client in the slot and whether it was installed now.
func (s *Slot) Install(newClient func() Client) (Client, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client != nil {
		return s.client, false
	}
	s.client = newClient()
	return s.client, true
}

// Get returns the installed client, nil if none.
func (s *Slot) Get() Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.client
}

// Attach replaces the installed client and returns the previous one.
func (s *Slot) Attach(c Client) Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.client
	s.client = c
	return prev
}
