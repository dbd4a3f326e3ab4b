package session

import "sync"

// TokenStore is an interface for components that hold the access token for a
// single client session. Implementations must be safe for concurrent use,
// since responses to concurrent requests may each rotate the token.
type TokenStore interface {
	// AccessToken returns the current access token or an empty string if there
	// is none.
	AccessToken() string
	// SetAccessToken replaces the current access token.
	SetAccessToken(token string)
	// Clear discards the current access token.
	Clear()
}

// MemoryTokenStore is a TokenStore that holds the access token in memory
// only, for the lifetime of the process. The zero value is ready to use.
type MemoryTokenStore struct {
	mu          sync.RWMutex
	accessToken string
}

// NewMemoryTokenStore returns a MemoryTokenStore, optionally seeded with an
// initial access token.
func NewMemoryTokenStore(initialToken string) *MemoryTokenStore {
	return &MemoryTokenStore{accessToken: initialToken}
}

func (m *MemoryTokenStore) AccessToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.accessToken
}

func (m *MemoryTokenStore) SetAccessToken(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accessToken = token
}

func (m *MemoryTokenStore) Clear() {
	m.SetAccessToken("")
}

// HasAccessToken returns true if the store currently holds an access token.
func (m *MemoryTokenStore) HasAccessToken() bool {
	return m.AccessToken() != ""
}
