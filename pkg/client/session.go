package client

import "sync"

// Session supplies the bearer token for outgoing calls. An empty token
// means signed out.
type Session interface {
	Token() string
}

// MemorySession keeps the token and signed-in user for one client.
type MemorySession struct {
	mu    sync.RWMutex
	token string
	user  *User
}

func NewMemorySession() *MemorySession {
	return &MemorySession{}
}

func (s *MemorySession) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *MemorySession) User() (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return User{}, false
	}
	return *s.user, true
}

func (s *MemorySession) Set(token string, user User) {
	s.mu.Lock()
	s.token = token
	s.user = &user
	s.mu.Unlock()
}

func (s *MemorySession) Clear() {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()
}

// StaticToken is a fixed-token session, handy for scripts and tests.
type StaticToken string

func (t StaticToken) Token() string { return string(t) }
